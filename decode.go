package yamlevent

import (
	"fmt"
	"io"

	"github.com/yaml/go-yamlevent/debug"
	"github.com/yaml/go-yamlevent/engine"
	"github.com/yaml/go-yamlevent/engine/yaml3"
)

// DecodeOption configures a Decoder.
type DecodeOption func(*decodeOpts)

type decodeOpts struct {
	borrow bool
}

// Borrow lets decoded Str values alias engine token storage instead
// of copying it. Borrowed events are valid only until the next call
// to Next; the default is to copy into host-owned storage.
func Borrow() DecodeOption {
	return func(o *decodeOpts) {
		o.borrow = true
	}
}

// Decoder converts an engine's event stream into host events, one per
// call. It owns the engine parser handle: Close destroys it exactly
// once regardless of how the stream ended. A Decoder is not safe for
// concurrent use; independent Decoders over independent inputs share
// no state.
type Decoder struct {
	p      engine.Parser
	opts   decodeOpts
	closed bool
	err    error
}

// NewDecoder creates a Decoder over p. The decoder takes ownership of
// the parser handle.
func NewDecoder(p engine.Parser, opts ...DecodeOption) *Decoder {
	d := &Decoder{p: p}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d
}

// Next returns the next host event, io.EOF after the stream end
// event, or the translated engine failure. After an error no further
// event is returned: the failure is sticky and every later call
// reports it again.
func (d *Decoder) Next() (*Event, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.closed {
		return nil, ErrClosed
	}
	eev, err := d.p.Next()
	if err != nil {
		if err == io.EOF {
			d.err = io.EOF
		} else {
			d.err = translateParse(err)
		}
		return nil, d.err
	}
	ev, err := d.decode(eev)
	if err != nil {
		d.err = err
		return nil, err
	}
	if debug.Events() {
		debug.Logf("yamlevent: <- %s\n", ev)
	}
	return ev, nil
}

// Close destroys the engine parser. Only the first call does
// anything; the decoder is unusable afterwards.
func (d *Decoder) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.p.Destroy()
}

// decode extracts and converts every field of eev valid for its
// discriminant. All token bytes are consumed before returning, so the
// engine may reuse its storage on the following call.
func (d *Decoder) decode(eev *engine.Event) (*Event, error) {
	x := extractor{ev: eev}
	ev := &Event{Start: eev.Start, End: eev.End}
	switch eev.Type {
	case engine.StreamStartEvent:
		ev.Type = StreamStart
	case engine.StreamEndEvent:
		ev.Type = StreamEnd
	case engine.DocumentStartEvent:
		ev.Type = DocumentStart
		ev.State = x.state()
		ev.Implicit = x.implicit()
	case engine.DocumentEndEvent:
		ev.Type = DocumentEnd
		ev.Implicit = x.implicit()
	case engine.AliasEvent:
		ev.Type = Alias
		anchor, ok := x.anchor()
		if !ok {
			return nil, &InternalError{Problem: "alias event without anchor token"}
		}
		var err error
		if ev.Anchor, err = d.optStr(anchor, true); err != nil {
			return nil, err
		}
	case engine.ScalarEvent:
		ev.Type = Scalar
		if err := d.node(ev, x); err != nil {
			return nil, err
		}
		value := x.value()
		if value.IsZero() {
			return nil, &InternalError{Problem: "scalar event without value token"}
		}
		var err error
		if ev.Value, err = d.str(value); err != nil {
			return nil, err
		}
		ev.TagImplicit = x.tagImplicit()
		ev.Style = styleOf(x.scalarStyle())
	case engine.SequenceStartEvent:
		ev.Type = SequenceStart
		if err := d.node(ev, x); err != nil {
			return nil, err
		}
	case engine.SequenceEndEvent:
		ev.Type = SequenceEnd
	case engine.MappingStartEvent:
		ev.Type = MappingStart
		if err := d.node(ev, x); err != nil {
			return nil, err
		}
	case engine.MappingEndEvent:
		ev.Type = MappingEnd
	default:
		return nil, &InternalError{
			Problem: fmt.Sprintf("unrecognized event discriminant %d", eev.Type),
		}
	}
	return ev, nil
}

// node converts the optional anchor and tag shared by scalar,
// sequence start and mapping start events.
func (d *Decoder) node(ev *Event, x extractor) error {
	anchor, ok := x.anchor()
	var err error
	if ev.Anchor, err = d.optStr(anchor, ok); err != nil {
		return err
	}
	tag, ok := x.tag()
	ev.Tag, err = d.optStr(tag, ok)
	return err
}

func (d *Decoder) str(t engine.Token) (Str, error) {
	return decodeStr(activeModel, t.Bytes(), d.opts.borrow)
}

func (d *Decoder) optStr(t engine.Token, ok bool) (*Str, error) {
	if !ok {
		return nil, nil
	}
	s, err := d.str(t)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// EachEvent decodes the stream from r with the yaml3 engine, calling
// fn once per event. The parser handle is destroyed on every exit
// path.
func EachEvent(r io.Reader, fn func(*Event) error, opts ...DecodeOption) error {
	d := NewDecoder(yaml3.NewParser(r), opts...)
	defer d.Close()
	for {
		ev, err := d.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
}
