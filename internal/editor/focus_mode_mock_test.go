package editor

import (
	"sync"
)

var _ focusMode = &focusModeMock{}

type focusModeMock struct {
	FocusModeFunc func() bool

	calls struct {
		FocusMode []struct{}
	}
	lockFocusMode sync.RWMutex
}

func (mock *focusModeMock) FocusMode() bool {
	if mock.FocusModeFunc == nil {
		panic("focusModeMock.FocusModeFunc: method is nil but focusMode.FocusMode was just called")
	}
	mock.lockFocusMode.Lock()
	mock.calls.FocusMode = append(mock.calls.FocusMode, struct{}{})
	mock.lockFocusMode.Unlock()
	return mock.FocusModeFunc()
}

func (mock *focusModeMock) FocusModeCalls() []struct{} {
	mock.lockFocusMode.RLock()
	calls := mock.calls.FocusMode
	mock.lockFocusMode.RUnlock()
	return calls
}
