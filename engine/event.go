package engine

import "fmt"

// EventType discriminates the active case of an Event.
type EventType int8

const (
	// An empty event, the zero value.
	NoEvent EventType = iota

	StreamStartEvent
	StreamEndEvent
	DocumentStartEvent
	DocumentEndEvent
	AliasEvent
	ScalarEvent
	SequenceStartEvent
	SequenceEndEvent
	MappingStartEvent
	MappingEndEvent
)

var eventStrings = []string{
	NoEvent:            "none",
	StreamStartEvent:   "stream start",
	StreamEndEvent:     "stream end",
	DocumentStartEvent: "document start",
	DocumentEndEvent:   "document end",
	AliasEvent:         "alias",
	ScalarEvent:        "scalar",
	SequenceStartEvent: "sequence start",
	SequenceEndEvent:   "sequence end",
	MappingStartEvent:  "mapping start",
	MappingEndEvent:    "mapping end",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventStrings) {
		return fmt.Sprintf("unknown event %d", t)
	}
	return eventStrings[t]
}

// ScalarStyle is the presentation style of a scalar.
type ScalarStyle int8

const (
	// Let the emitter choose the style.
	AnyScalarStyle ScalarStyle = iota

	PlainScalarStyle
	SingleQuotedScalarStyle
	DoubleQuotedScalarStyle
	LiteralScalarStyle
	FoldedScalarStyle
)

// Mark is a position in the input or output stream. Index is a byte
// offset; engines that do not track offsets leave it zero. Line and
// Column are 1-based.
type Mark struct {
	Index  int
	Line   int
	Column int
}

func (m Mark) String() string {
	return fmt.Sprintf("line %d, column %d", m.Line, m.Column)
}

// Token is a byte span owned by the engine that produced it. A token is
// valid only until the owning event is released: engines reuse token
// storage between calls to Next, so callers that need the bytes past
// that point must copy them first.
type Token struct {
	b []byte
}

// MakeToken wraps b as a token. The engine retains ownership of b.
func MakeToken(b []byte) Token {
	return Token{b: b}
}

// IsZero reports whether the token is absent. An absent token is
// distinct from a token over an empty span.
func (t Token) IsZero() bool {
	return t.b == nil
}

// Bytes returns the underlying span without copying. The span must be
// treated as read-only and not retained past the owning event.
func (t Token) Bytes() []byte {
	return t.b
}

func (t Token) Len() int {
	return len(t.b)
}

// VersionDirective is a %YAML directive.
type VersionDirective struct {
	Major int8
	Minor int8
}

// TagDirective is a %TAG directive.
type TagDirective struct {
	Handle string
	Prefix string
}

// DocumentState is per-document engine context produced with a
// document start event. Layers above the engine forward it verbatim
// back to the emitter when round-tripping; it is never copied or
// mutated outside the engine that produced it.
type DocumentState struct {
	Version    *VersionDirective
	Directives []TagDirective
}

// Event is the engine-level event structure. It is a tagged union in
// the libyaml manner: a single struct whose fields overlap across
// cases, with Type selecting which fields are meaningful. Which field
// is valid for which type is part of the engine contract and must be
// kept in sync with every engine implementation.
//
//	NoEvent         --
//	StreamStart     --
//	StreamEnd       --
//	DocumentStart   State, Implicit
//	DocumentEnd     Implicit
//	Alias           Anchor
//	Scalar          Anchor, Tag, Value, TagImplicit, Style
//	SequenceStart   Anchor, Tag
//	SequenceEnd     --
//	MappingStart    Anchor, Tag
//	MappingEnd      --
//
// Start and End are valid for every case. Events are transient: the
// engine owns the event and its token storage and may reuse both on
// the next call.
type Event struct {
	Type EventType

	// The start and end of the event in the stream.
	Start, End Mark

	// The document state (DocumentStartEvent).
	State *DocumentState

	// The anchor (AliasEvent, ScalarEvent, SequenceStartEvent,
	// MappingStartEvent).
	Anchor Token

	// The tag (ScalarEvent, SequenceStartEvent, MappingStartEvent).
	Tag Token

	// The scalar value (ScalarEvent).
	Value Token

	// Is the document start/end indicator implicit?
	// (DocumentStartEvent, DocumentEndEvent).
	Implicit bool

	// Was the tag left to implicit resolution? (ScalarEvent).
	TagImplicit bool

	// The scalar style (ScalarEvent).
	Style ScalarStyle
}

// Reset clears the event for reuse.
func (e *Event) Reset() {
	*e = Event{}
}
