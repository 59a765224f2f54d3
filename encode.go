package yamlevent

import (
	"fmt"
	"io"

	"github.com/yaml/go-yamlevent/debug"
	"github.com/yaml/go-yamlevent/engine"
	"github.com/yaml/go-yamlevent/engine/yaml3"
)

// Encoder converts host events back into engine events and pushes
// them to an emitter. It owns the emitter handle: Close destroys it
// exactly once and reports the final flush error. An Encoder is not
// safe for concurrent use.
type Encoder struct {
	e      engine.Emitter
	closed bool
	err    error

	// Engine event buffer, reused per Emit. The emitter does not
	// retain it past the call.
	ev engine.Event
}

// NewEncoder creates an Encoder over e. The encoder takes ownership
// of the emitter handle.
func NewEncoder(e engine.Emitter) *Encoder {
	return &Encoder{e: e}
}

// Emit converts and emits one event. Malformed host events fail with
// an error wrapping ErrType and leave the encoder usable; engine
// failures are sticky and abort the stream.
func (enc *Encoder) Emit(ev *Event) error {
	if enc.err != nil {
		return enc.err
	}
	if enc.closed {
		return ErrClosed
	}
	if err := enc.encode(ev); err != nil {
		return err
	}
	if debug.Emit() {
		debug.Logf("yamlevent: -> %s\n", ev)
	}
	// The byte buffers inside enc.ev alias host Str storage; ev
	// keeps them alive until Emit returns, after which the engine
	// holds no reference.
	if err := enc.e.Emit(&enc.ev); err != nil {
		enc.err = translateEmit(err)
		return enc.err
	}
	return nil
}

// Close destroys the engine emitter, flushing buffered output. Only
// the first call does anything.
func (enc *Encoder) Close() error {
	if enc.closed {
		return nil
	}
	enc.closed = true
	return translateEmit(enc.e.Destroy())
}

// encode initializes the encoder's engine event from ev, setting only
// the fields valid for the variant. Absent optional fields become
// absent tokens, never empty-string tokens.
func (enc *Encoder) encode(ev *Event) error {
	enc.ev.Reset()
	out := &enc.ev
	switch ev.Type {
	case StreamStart:
		out.Type = engine.StreamStartEvent
	case StreamEnd:
		out.Type = engine.StreamEndEvent
	case DocumentStart:
		out.Type = engine.DocumentStartEvent
		// Forwarded verbatim; this layer never copies or mutates
		// document state.
		out.State = ev.State
		out.Implicit = ev.Implicit
	case DocumentEnd:
		out.Type = engine.DocumentEndEvent
		out.Implicit = ev.Implicit
	case Alias:
		out.Type = engine.AliasEvent
		if ev.Anchor == nil {
			return fmt.Errorf("%w: alias event requires an anchor", ErrType)
		}
		anchor, err := enc.tok(ev.Anchor)
		if err != nil {
			return err
		}
		out.Anchor = anchor
	case Scalar:
		out.Type = engine.ScalarEvent
		if err := enc.node(out, ev); err != nil {
			return err
		}
		value, err := encodeStr(activeModel, ev.Value)
		if err != nil {
			return err
		}
		out.Value = engine.MakeToken(value)
		out.TagImplicit = ev.TagImplicit
		out.Style = engineStyleOf(ev.Style)
	case SequenceStart:
		out.Type = engine.SequenceStartEvent
		if err := enc.node(out, ev); err != nil {
			return err
		}
	case SequenceEnd:
		out.Type = engine.SequenceEndEvent
	case MappingStart:
		out.Type = engine.MappingStartEvent
		if err := enc.node(out, ev); err != nil {
			return err
		}
	case MappingEnd:
		out.Type = engine.MappingEndEvent
	default:
		return fmt.Errorf("%w: cannot encode event type %v", ErrType, ev.Type)
	}
	return nil
}

func (enc *Encoder) node(out *engine.Event, ev *Event) error {
	anchor, err := enc.tok(ev.Anchor)
	if err != nil {
		return err
	}
	out.Anchor = anchor
	tag, err := enc.tok(ev.Tag)
	if err != nil {
		return err
	}
	out.Tag = tag
	return nil
}

// tok converts an optional host string to a token; nil stays absent.
func (enc *Encoder) tok(s *Str) (engine.Token, error) {
	if s == nil {
		return engine.Token{}, nil
	}
	b, err := encodeStr(activeModel, *s)
	if err != nil {
		return engine.Token{}, err
	}
	return engine.MakeToken(b), nil
}

// EmitAll writes events to w through the yaml3 engine, destroying the
// emitter on every exit path.
func EmitAll(w io.Writer, events []*Event, opts ...yaml3.EmitterOption) error {
	enc := NewEncoder(yaml3.NewEmitter(w, opts...))
	var firstErr error
	for _, ev := range events {
		if err := enc.Emit(ev); err != nil {
			firstErr = err
			break
		}
	}
	if err := enc.Close(); firstErr == nil {
		firstErr = err
	}
	return firstErr
}
