package events

// Event is a committed governance state change. EventType returns a dotted
// name such as "voting.revealed".
type Event interface {
	EventType() string
}

// Emitter delivers events to the external event log.
type Emitter interface {
	Emit(Event)
}

// NoopEmitter discards all events. Engines fall back to it when no emitter
// is configured.
type NoopEmitter struct{}

// Emit implements the Emitter interface.
func (NoopEmitter) Emit(Event) {}
