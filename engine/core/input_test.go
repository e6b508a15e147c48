package core

import "testing"

func TestInputKeyState(t *testing.T) {
	if err := InputInitialize(); err != nil {
		t.Fatal(err)
	}

	InputProcessKey(KEY_W, true)
	if !InputIsKeyDown(KEY_W) {
		t.Error("KEY_W should be down")
	}
	if InputWasKeyDown(KEY_W) {
		t.Error("KEY_W should not be down in the previous frame yet")
	}

	if err := InputUpdate(0.016); err != nil {
		t.Fatal(err)
	}
	if !InputWasKeyDown(KEY_W) {
		t.Error("KEY_W should be down in the previous frame after InputUpdate")
	}

	InputProcessKey(KEY_W, false)
	if InputIsKeyDown(KEY_W) {
		t.Error("KEY_W should be released")
	}
}

func TestInputMouse(t *testing.T) {
	if err := InputInitialize(); err != nil {
		t.Fatal(err)
	}

	InputProcessMouseMove(120, 340)
	x, y := InputGetMousePosition()
	if x != 120 || y != 340 {
		t.Errorf("mouse position = (%d, %d), want (120, 340)", x, y)
	}

	InputProcessButton(BUTTON_RIGHT, true)
	if !InputIsButtonDown(BUTTON_RIGHT) {
		t.Error("right button should be down")
	}
	if InputIsButtonDown(BUTTON_LEFT) {
		t.Error("left button should not be down")
	}
}

func TestInputResizeLatch(t *testing.T) {
	if err := InputInitialize(); err != nil {
		t.Fatal(err)
	}

	if InputShouldResize() {
		t.Fatal("latch armed before any resize")
	}

	InputProcessResize(800, 600)
	InputProcessResize(1024, 768)
	if !InputShouldResize() {
		t.Fatal("latch not armed after resize")
	}

	// Consume reports the latest dimensions, not the first.
	w, h := InputConsumeResize()
	if w != 1024 || h != 768 {
		t.Errorf("consumed %dx%d, want 1024x768", w, h)
	}
	if InputShouldResize() {
		t.Error("latch still armed after consume")
	}
}
