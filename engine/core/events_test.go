package core

import (
	"testing"
	"time"
)

func TestEventRegisterAndFire(t *testing.T) {
	if !EventSystemInitialize() {
		t.Fatal("event system failed to initialize")
	}
	go ProcessEvents()

	received := make(chan EventContext, 1)
	ok := EventRegister(EVENT_CODE_RESIZED, func(ctx EventContext) {
		// Listeners stay registered for the life of the process; never
		// let a later event block the delivery goroutine.
		select {
		case received <- ctx:
		default:
		}
	})
	if !ok {
		t.Fatal("EventRegister failed")
	}

	EventFire(EventContext{
		Type: EVENT_CODE_RESIZED,
		Data: &SystemEvent{WindowWidth: 640, WindowHeight: 480},
	})

	select {
	case ctx := <-received:
		ev, ok := ctx.Data.(*SystemEvent)
		if !ok {
			t.Fatalf("unexpected payload type %T", ctx.Data)
		}
		if ev.WindowWidth != 640 || ev.WindowHeight != 480 {
			t.Errorf("payload = %dx%d, want 640x480", ev.WindowWidth, ev.WindowHeight)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event never delivered")
	}
}

func TestEventFireUnregisteredCode(t *testing.T) {
	if !EventSystemInitialize() {
		t.Fatal("event system failed to initialize")
	}
	// No listener for quit; firing must not block or panic.
	EventFire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})
}
