// Package engine defines the boundary with the underlying YAML
// engines: the event structure they exchange, the parser and emitter
// interfaces, and the engine error model.
//
// Two engine implementations exist, engine/yaml3 and engine/goccy,
// with independently evolved internals. Both
// produce and consume the event structure defined here. The package
// deliberately says nothing about how events are turned into host
// values; that is the job of the yamlevent package on top.
package engine

// Parser produces one event per call over a byte input. A parser is
// created with its input, yields events until the stream end, and must
// be destroyed exactly once. It is not safe for concurrent use.
type Parser interface {
	// Next returns the next event, io.EOF after the stream end
	// event has been delivered, or an *Error. The returned event
	// and its token storage remain owned by the parser and are
	// invalidated by the following call.
	Next() (*Event, error)

	// Destroy releases engine state. It is idempotent only if the
	// caller makes it so; callers destroy exactly once.
	Destroy()
}

// Emitter consumes events and writes the resulting bytes to its
// output sink. An emitter is created with its output, accepts events
// from stream start to stream end, and must be destroyed exactly once.
// It is not safe for concurrent use.
type Emitter interface {
	// Emit consumes one event. The emitter does not retain the
	// event or its token storage past the call.
	Emit(*Event) error

	// Destroy flushes and releases engine state, returning any
	// final write error. Callers destroy exactly once.
	Destroy() error
}
