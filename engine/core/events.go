package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01
	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02
	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03
	// Resized/resolution changed from the OS. Data is a *SystemEvent.
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
	Pressed bool
}

type SystemEvent struct {
	WindowWidth  uint32
	WindowHeight uint32
}

type FnOnEvent func(context EventContext)

type eventSystemState struct {
	mutex      sync.RWMutex
	registered map[SystemEventCode][]FnOnEvent
	queue      chan EventContext
	done       chan struct{}
}

var onceEvent sync.Once
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[SystemEventCode][]FnOnEvent),
			queue:      make(chan EventContext, 256),
			done:       make(chan struct{}),
		}
	})
	return eventState != nil
}

func EventSystemShutdown() error {
	if eventState == nil {
		return nil
	}
	close(eventState.done)
	return nil
}

// EventRegister subscribes the callback for events fired with the given code.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) bool {
	if eventState == nil {
		return false
	}
	eventState.mutex.Lock()
	defer eventState.mutex.Unlock()
	eventState.registered[code] = append(eventState.registered[code], onEvent)
	return true
}

// EventFire queues an event for delivery. Events are delivered either by the
// ProcessEvents goroutine or synchronously if the queue is full, so platform
// callbacks never stall the frame.
func EventFire(context EventContext) {
	if eventState == nil {
		return
	}
	select {
	case eventState.queue <- context:
	default:
		deliver(context)
	}
}

// ProcessEvents drains the event queue until EventSystemShutdown is called.
// Run it on its own goroutine.
func ProcessEvents() {
	for {
		select {
		case ctx := <-eventState.queue:
			deliver(ctx)
		case <-eventState.done:
			return
		}
	}
}

func deliver(context EventContext) {
	eventState.mutex.RLock()
	listeners := eventState.registered[context.Type]
	eventState.mutex.RUnlock()
	for _, cb := range listeners {
		cb(context)
	}
}
