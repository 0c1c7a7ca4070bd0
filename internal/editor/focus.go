package editor

// PointerThreshold is how far, in pixels on either axis, the pointer has to
// travel to end the typing state.
const PointerThreshold = 20

type point struct{ x, y int }

// onInput runs on every content change from the buffer.
func (e *Editor) onInput() {
	focused := e.focus != nil && e.focus.FocusMode()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.touch()
	if focused {
		e.typing = true
	}
}

// PointerMove reports pointer movement. Moving farther than PointerThreshold
// from the last resting point clears the typing state.
func (e *Editor) PointerMove(x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pointer == nil {
		e.pointer = &point{x, y}
		return
	}
	if abs(x-e.pointer.x) > PointerThreshold || abs(y-e.pointer.y) > PointerThreshold {
		e.typing = false
		e.pointer = &point{x, y}
	}
}

// IsTyping reports whether chrome should be hidden because the writer is
// typing in focus mode.
func (e *Editor) IsTyping() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.typing
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
