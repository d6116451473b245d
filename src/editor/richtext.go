package editor

import "sync"

// RichText is the content widget of the editor. The editor only ever reads
// its markup and listens for changes.
type RichText interface {
	Value() string
	OnChange(handler func(markup string))
}

// TextArea is the plain RichText the dashboard form uses: the markup comes
// in as a form value.
type TextArea struct {
	mu       sync.Mutex
	value    string
	handlers []func(string)
}

func NewTextArea(value string) *TextArea {
	return &TextArea{value: value}
}

func (t *TextArea) Value() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value
}

func (t *TextArea) OnChange(handler func(markup string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers = append(t.handlers, handler)
}

// Set changes the markup and notifies every handler.
func (t *TextArea) Set(markup string) {
	t.mu.Lock()
	t.value = markup
	handlers := append([]func(string){}, t.handlers...)
	t.mu.Unlock()

	for _, h := range handlers {
		h(markup)
	}
}
