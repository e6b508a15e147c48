package core

import "sync"

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions
type KeyCode uint16

const (
	KEY_BACKSPACE KeyCode = 0x08
	KEY_ENTER     KeyCode = 0x0D
	KEY_TAB       KeyCode = 0x09
	KEY_SHIFT     KeyCode = 0x10
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_A         KeyCode = 0x41
	KEY_D         KeyCode = 0x44
	KEY_E         KeyCode = 0x45
	KEY_Q         KeyCode = 0x51
	KEY_S         KeyCode = 0x53
	KEY_W         KeyCode = 0x57
	KEY_MAX_KEYS  KeyCode = 0x100
)

type keyboardState struct {
	keys [KEY_MAX_KEYS]bool
}

type mouseState struct {
	x       int32
	y       int32
	buttons [BUTTON_MAX_BUTTONS]bool
}

type inputState struct {
	mutex            sync.RWMutex
	keyboardCurrent  keyboardState
	keyboardPrevious keyboardState
	mouseCurrent     mouseState
	mousePrevious    mouseState

	// Resize latch. Set by the platform layer, consumed by the renderer's
	// update path once per resize.
	resizePending bool
	resizeWidth   uint32
	resizeHeight  uint32
}

var onceInput sync.Once
var state *inputState = nil

func InputInitialize() error {
	onceInput.Do(func() {
		state = &inputState{}
	})
	return nil
}

func InputShutdown() error {
	return nil
}

// InputUpdate copies current states to previous states. Call once per frame,
// after all input for the frame has been recorded.
func InputUpdate(deltaTime float64) error {
	state.mutex.Lock()
	defer state.mutex.Unlock()
	state.keyboardPrevious = state.keyboardCurrent
	state.mousePrevious = state.mouseCurrent
	return nil
}

func InputIsKeyDown(key KeyCode) bool {
	state.mutex.RLock()
	defer state.mutex.RUnlock()
	return state.keyboardCurrent.keys[key]
}

func InputWasKeyDown(key KeyCode) bool {
	state.mutex.RLock()
	defer state.mutex.RUnlock()
	return state.keyboardPrevious.keys[key]
}

func InputProcessKey(key KeyCode, pressed bool) {
	state.mutex.Lock()
	changed := state.keyboardCurrent.keys[key] != pressed
	state.keyboardCurrent.keys[key] = pressed
	state.mutex.Unlock()

	if !changed {
		return
	}
	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	EventFire(EventContext{Type: code, Data: &KeyEvent{KeyCode: key, Pressed: pressed}})
}

func InputIsButtonDown(button Button) bool {
	state.mutex.RLock()
	defer state.mutex.RUnlock()
	return state.mouseCurrent.buttons[button]
}

func InputProcessButton(button Button, pressed bool) {
	state.mutex.Lock()
	state.mouseCurrent.buttons[button] = pressed
	state.mutex.Unlock()
}

func InputProcessMouseMove(x, y int32) {
	state.mutex.Lock()
	state.mouseCurrent.x = x
	state.mouseCurrent.y = y
	state.mutex.Unlock()
}

func InputGetMousePosition() (int32, int32) {
	state.mutex.RLock()
	defer state.mutex.RUnlock()
	return state.mouseCurrent.x, state.mouseCurrent.y
}

// InputProcessResize records new framebuffer dimensions and arms the latch.
func InputProcessResize(width, height uint32) {
	state.mutex.Lock()
	state.resizePending = true
	state.resizeWidth = width
	state.resizeHeight = height
	state.mutex.Unlock()

	EventFire(EventContext{Type: EVENT_CODE_RESIZED, Data: &SystemEvent{WindowWidth: width, WindowHeight: height}})
}

// InputShouldResize reports whether a resize occurred since the last consume.
func InputShouldResize() bool {
	state.mutex.RLock()
	defer state.mutex.RUnlock()
	return state.resizePending
}

// InputConsumeResize disarms the latch and returns the latest dimensions.
func InputConsumeResize() (uint32, uint32) {
	state.mutex.Lock()
	defer state.mutex.Unlock()
	state.resizePending = false
	return state.resizeWidth, state.resizeHeight
}
