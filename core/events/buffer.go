package events

// Buffer collects events emitted during a state transition so they can be
// released only once the transition has been committed.
type Buffer struct {
	pending []Event
}

// Emit implements the Emitter interface.
func (b *Buffer) Emit(evt Event) {
	if b == nil || evt == nil {
		return
	}
	b.pending = append(b.pending, evt)
}

// Len reports the number of buffered events.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.pending)
}

// Flush forwards the buffered events in emission order and clears the buffer.
func (b *Buffer) Flush(downstream Emitter) {
	if b == nil {
		return
	}
	pending := b.pending
	b.pending = nil
	if downstream == nil {
		return
	}
	for _, evt := range pending {
		downstream.Emit(evt)
	}
}

// Discard drops every buffered event.
func (b *Buffer) Discard() {
	if b == nil {
		return
	}
	b.pending = nil
}

// Recorder is an Emitter that keeps every event it receives. It backs the
// in-process event log and tests.
type Recorder struct {
	Events []Event
}

// Emit implements the Emitter interface.
func (r *Recorder) Emit(evt Event) {
	if r == nil || evt == nil {
		return
	}
	r.Events = append(r.Events, evt)
}

// Types lists the recorded event types in order.
func (r *Recorder) Types() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Events))
	for _, evt := range r.Events {
		out = append(out, evt.EventType())
	}
	return out
}
