package yamlevent

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/yaml/go-yamlevent/engine"
	"github.com/yaml/go-yamlevent/engine/yaml3"
)

// stubParser scripts an engine event sequence, ending with err (io.EOF
// when unset) and counting Destroy calls.
type stubParser struct {
	events   []engine.Event
	i        int
	err      error
	destroys int
}

func (p *stubParser) Next() (*engine.Event, error) {
	if p.i >= len(p.events) {
		if p.err != nil {
			return nil, p.err
		}
		return nil, io.EOF
	}
	ev := &p.events[p.i]
	p.i++
	return ev, nil
}

func (p *stubParser) Destroy() {
	p.destroys++
}

func scalarEvent(v string) engine.Event {
	return engine.Event{
		Type:        engine.ScalarEvent,
		Value:       engine.MakeToken([]byte(v)),
		TagImplicit: true,
		Style:       engine.PlainScalarStyle,
	}
}

// Test: the flat mapping scenario decodes to the exact event sequence,
// then io.EOF.
func TestDecodeMappingScenario(t *testing.T) {
	d := NewDecoder(yaml3.NewParser(strings.NewReader("a: 1\nb: 2\n")))
	defer d.Close()

	expected := []struct {
		typ   EventType
		value string
	}{
		{StreamStart, ""},
		{DocumentStart, ""},
		{MappingStart, ""},
		{Scalar, "a"},
		{Scalar, "1"},
		{Scalar, "b"},
		{Scalar, "2"},
		{MappingEnd, ""},
		{DocumentEnd, ""},
		{StreamEnd, ""},
	}
	for i, want := range expected {
		ev, err := d.Next()
		if err != nil {
			t.Fatalf("event %d: unexpected error: %v", i, err)
		}
		if ev.Type != want.typ {
			t.Fatalf("event %d: got %v, want %v", i, ev.Type, want.typ)
		}
		if ev.Type == Scalar {
			if ev.Value.String() != want.value {
				t.Errorf("event %d: value %q, want %q", i, ev.Value, want.value)
			}
			if ev.Anchor != nil || ev.Tag != nil {
				t.Errorf("event %d: unexpected anchor or tag", i)
			}
			if !ev.TagImplicit {
				t.Errorf("event %d: expected implicit tag", i)
			}
			if ev.Style != PlainStyle {
				t.Errorf("event %d: style %v, want plain", i, ev.Style)
			}
		}
		if ev.Type == DocumentStart && ev.State == nil {
			t.Errorf("event %d: missing document state", i)
		}
	}
	if _, err := d.Next(); err != io.EOF {
		t.Errorf("expected io.EOF after stream end, got %v", err)
	}
}

// Test: a mid-stream engine failure surfaces as a ParseError, sticks,
// and yields no further events.
func TestDecodeStickyParseError(t *testing.T) {
	d := NewDecoder(yaml3.NewParser(strings.NewReader("key: [unterminated")))
	defer d.Close()

	var first error
	for {
		_, err := d.Next()
		if err != nil {
			first = err
			break
		}
	}
	if first == io.EOF {
		t.Fatal("expected a parse error, got clean stream end")
	}
	if !errors.Is(first, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", first)
	}
	var pe *ParseError
	if !errors.As(first, &pe) {
		t.Fatalf("expected *ParseError, got %T", first)
	}
	if pe.Problem == "" {
		t.Error("parse error has no problem text")
	}
	again, err := d.Next()
	if again != nil {
		t.Error("got an event after a fatal error")
	}
	if err != first {
		t.Errorf("error not sticky: got %v, want %v", err, first)
	}
}

func TestDecodeCloseDestroysOnce(t *testing.T) {
	p := &stubParser{}
	d := NewDecoder(p)
	d.Close()
	d.Close()
	if p.destroys != 1 {
		t.Errorf("destroy called %d times, want 1", p.destroys)
	}
	if _, err := d.Next(); err != ErrClosed {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}

// Test: absent optional tokens stay nil; present empty tokens surface
// as empty strings.
func TestDecodeAbsentVersusEmptyAnchor(t *testing.T) {
	p := &stubParser{events: []engine.Event{
		{Type: engine.SequenceStartEvent},
		{Type: engine.MappingStartEvent, Anchor: engine.MakeToken([]byte{})},
	}}
	d := NewDecoder(p)
	defer d.Close()

	ev, err := d.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Anchor != nil {
		t.Errorf("absent anchor decoded as present: %q", ev.Anchor)
	}
	ev, err = d.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.Anchor == nil {
		t.Fatal("present empty anchor decoded as absent")
	}
	if ev.Anchor.Len() != 0 {
		t.Errorf("empty anchor has content: %q", ev.Anchor)
	}
}

// Test: decoded events survive the engine reusing its token storage;
// with Borrow they alias it instead.
func TestDecodeCopiesTokenStorage(t *testing.T) {
	buf := []byte("aaa")
	events := func() []engine.Event {
		return []engine.Event{
			{Type: engine.ScalarEvent, Value: engine.MakeToken(buf)},
			scalarEvent("zzz"),
		}
	}

	d := NewDecoder(&stubParser{events: events()})
	ev1, err := d.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	copy(buf, "bbb") // the engine overwrites its storage
	if ev1.Value.String() != "aaa" {
		t.Errorf("copied value changed with engine storage: %q", ev1.Value)
	}
	d.Close()

	copy(buf, "aaa")
	d = NewDecoder(&stubParser{events: events()}, Borrow())
	ev1, err = d.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	copy(buf, "bbb")
	if ev1.Value.String() != "bbb" {
		t.Errorf("borrowed value does not alias engine storage: %q", ev1.Value)
	}
	d.Close()
}

func TestDecodeAliasWithoutAnchor(t *testing.T) {
	p := &stubParser{events: []engine.Event{{Type: engine.AliasEvent}}}
	d := NewDecoder(p)
	defer d.Close()

	_, err := d.Next()
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}

func TestDecodeUnknownDiscriminant(t *testing.T) {
	p := &stubParser{events: []engine.Event{{Type: engine.EventType(42)}}}
	d := NewDecoder(p)
	defer d.Close()

	_, err := d.Next()
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
	var ie *InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InternalError, got %T", err)
	}
}

func TestDecodeInvalidUTF8Scalar(t *testing.T) {
	if activeModel != textModel {
		t.Skip("text model not active")
	}
	p := &stubParser{events: []engine.Event{
		{Type: engine.ScalarEvent, Value: engine.MakeToken([]byte{0xff, 0xfe})},
	}}
	d := NewDecoder(p)
	defer d.Close()

	_, err := d.Next()
	if !errors.Is(err, ErrEncoding) {
		t.Fatalf("expected ErrEncoding, got %v", err)
	}
	if _, err2 := d.Next(); err2 != err {
		t.Errorf("encoding error not sticky: %v", err2)
	}
}

func TestEachEvent(t *testing.T) {
	var types []EventType
	err := EachEvent(strings.NewReader("- 1\n- 2\n"), func(ev *Event) error {
		types = append(types, ev.Type)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []EventType{
		StreamStart, DocumentStart, SequenceStart,
		Scalar, Scalar,
		SequenceEnd, DocumentEnd, StreamEnd,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(types), len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d: got %v, want %v", i, types[i], want[i])
		}
	}
}

func TestEachEventCallbackError(t *testing.T) {
	boom := errors.New("boom")
	err := EachEvent(strings.NewReader("a: 1\n"), func(ev *Event) error {
		if ev.Type == MappingStart {
			return boom
		}
		return nil
	})
	if err != boom {
		t.Errorf("expected callback error, got %v", err)
	}
}
