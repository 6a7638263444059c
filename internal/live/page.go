package live

import (
	"sync"

	"cultr.xyz/cultr-web/internal/landing"
)

// anchorDocument resolves the page's section anchors. Scrolling an anchor queues a
// scroll instruction for the browser.
type anchorDocument struct {
	ids  map[string]bool
	emit func(Message)
}

func newAnchorDocument(emit func(Message), ids ...string) *anchorDocument {
	d := &anchorDocument{ids: make(map[string]bool, len(ids)), emit: emit}
	for _, id := range ids {
		d.ids[id] = true
	}
	return d
}

func (d *anchorDocument) ElementByID(id string) (landing.Element, bool) {
	if !d.ids[id] {
		return nil, false
	}
	return anchor{id: id, emit: d.emit}, true
}

type anchor struct {
	id   string
	emit func(Message)
}

func (a anchor) ScrollIntoView(b landing.ScrollBehavior) {
	a.emit(Message{Type: TypeScroll, Target: a.id, Behavior: string(b)})
}

// scrollHub fans scroll offsets read from the socket out to subscribed listeners.
type scrollHub struct {
	mu        sync.Mutex
	listeners map[int]func(float64)
	next      int
}

func newScrollHub() *scrollHub {
	return &scrollHub{listeners: map[int]func(float64){}}
}

func (h *scrollHub) OnScroll(fn func(float64)) func() {
	h.mu.Lock()
	id := h.next
	h.next++
	h.listeners[id] = fn
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

func (h *scrollHub) publish(offset float64) {
	h.mu.Lock()
	fns := make([]func(float64), 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(offset)
	}
}

func (h *scrollHub) size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}
