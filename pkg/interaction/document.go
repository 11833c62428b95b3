package interaction

import "tableflip.dev/smartboard/pkg/geometry"

// Listener receives pointer events routed through a Document.
type Listener interface {
	PointerMove(p geometry.Point)
	PointerUp(p geometry.Point)
}

// Document is the surface-wide pointer stream. A controller attaches itself
// only while a gesture is in progress, so pointer moves outside its own box
// still reach it.
type Document struct {
	listeners map[string]Listener
	order     []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{listeners: make(map[string]Listener)}
}

// Attach registers l under id, replacing any listener already there.
func (d *Document) Attach(id string, l Listener) {
	if _, ok := d.listeners[id]; !ok {
		d.order = append(d.order, id)
	}
	d.listeners[id] = l
}

// Detach removes the listener registered under id.
func (d *Document) Detach(id string) {
	if _, ok := d.listeners[id]; !ok {
		return
	}
	delete(d.listeners, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// Attached reports whether id has a listener.
func (d *Document) Attached(id string) bool {
	_, ok := d.listeners[id]
	return ok
}

// Len is the number of attached listeners.
func (d *Document) Len() int {
	return len(d.listeners)
}

// PointerMove delivers a move to every attached listener.
func (d *Document) PointerMove(p geometry.Point) {
	for _, l := range d.snapshot() {
		l.PointerMove(p)
	}
}

// PointerUp delivers a release to every attached listener. Listeners usually
// detach themselves while handling it.
func (d *Document) PointerUp(p geometry.Point) {
	for _, l := range d.snapshot() {
		l.PointerUp(p)
	}
}

func (d *Document) snapshot() []Listener {
	out := make([]Listener, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.listeners[id])
	}
	return out
}
