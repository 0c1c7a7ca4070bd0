package richtext

import "sync"

// Buffer is an in-memory editing surface. It holds HTML, reports plain text
// and notifies listeners when content changes through Input.
type Buffer struct {
	mu        sync.Mutex
	html      string
	listeners []func()
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// HTML returns the current content.
func (b *Buffer) HTML() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.html
}

// Text returns the current content as plain text.
func (b *Buffer) Text() string {
	return PlainText(b.HTML())
}

// SetContent replaces the content without firing change notifications, the
// same as a programmatic load into an editor.
func (b *Buffer) SetContent(html string) {
	b.mu.Lock()
	b.html = html
	b.mu.Unlock()
}

// Input replaces the content as if the user typed it and notifies listeners.
func (b *Buffer) Input(html string) {
	b.mu.Lock()
	b.html = html
	ls := append([]func(){}, b.listeners...)
	b.mu.Unlock()

	for _, fn := range ls {
		fn()
	}
}

// OnChange registers fn to run after every Input.
func (b *Buffer) OnChange(fn func()) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}
