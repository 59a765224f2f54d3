package yamlevent

import (
	"fmt"
	"strings"

	"github.com/yaml/go-yamlevent/engine"
)

// EventType is the variant of a host event.
type EventType int8

const (
	NoEvent EventType = iota

	StreamStart
	StreamEnd
	DocumentStart
	DocumentEnd
	Alias
	Scalar
	SequenceStart
	SequenceEnd
	MappingStart
	MappingEnd
)

func (t EventType) String() string {
	switch t {
	case NoEvent:
		return "NoEvent"
	case StreamStart:
		return "StreamStart"
	case StreamEnd:
		return "StreamEnd"
	case DocumentStart:
		return "DocumentStart"
	case DocumentEnd:
		return "DocumentEnd"
	case Alias:
		return "Alias"
	case Scalar:
		return "Scalar"
	case SequenceStart:
		return "SequenceStart"
	case SequenceEnd:
		return "SequenceEnd"
	case MappingStart:
		return "MappingStart"
	case MappingEnd:
		return "MappingEnd"
	default:
		return "Unknown"
	}
}

func (t EventType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *EventType) UnmarshalText(d []byte) error {
	k := string(d)
	pt, ok := map[string]EventType{
		"NoEvent":       NoEvent,
		"StreamStart":   StreamStart,
		"StreamEnd":     StreamEnd,
		"DocumentStart": DocumentStart,
		"DocumentEnd":   DocumentEnd,
		"Alias":         Alias,
		"Scalar":        Scalar,
		"SequenceStart": SequenceStart,
		"SequenceEnd":   SequenceEnd,
		"MappingStart":  MappingStart,
		"MappingEnd":    MappingEnd,
	}[k]
	if ok {
		*t = pt
		return nil
	}
	return fmt.Errorf("unknown event type %q", k)
}

// Style is the presentation style of a scalar.
type Style int8

const (
	// Let the emitter choose the style.
	AnyStyle Style = iota

	PlainStyle
	SingleQuotedStyle
	DoubleQuotedStyle
	LiteralStyle
	FoldedStyle
)

func (s Style) String() string {
	switch s {
	case AnyStyle:
		return "any"
	case PlainStyle:
		return "plain"
	case SingleQuotedStyle:
		return "single-quoted"
	case DoubleQuotedStyle:
		return "double-quoted"
	case LiteralStyle:
		return "literal"
	case FoldedStyle:
		return "folded"
	default:
		return "unknown"
	}
}

// Event is one host-side step of a YAML stream. Exactly one variant is
// active at a time, selected by Type; which fields the variant carries
// follows the engine event layout:
//
//	StreamStart     --
//	StreamEnd       --
//	DocumentStart   State, Implicit
//	DocumentEnd     Implicit
//	Alias           Anchor
//	Scalar          Anchor?, Tag?, Value, TagImplicit, Style
//	SequenceStart   Anchor?, Tag?
//	SequenceEnd     --
//	MappingStart    Anchor?, Tag?
//	MappingEnd      --
//
// Optional fields are nil when absent; an absent anchor is distinct
// from an anchor whose name is the empty string. All string storage is
// host-owned: an Event remains valid indefinitely unless it was
// decoded with Borrow.
//
// State is per-document engine context, forwarded opaquely. When
// round-tripping, pass it back on the corresponding DocumentStart
// unchanged.
type Event struct {
	Type EventType

	Start, End engine.Mark

	Anchor *Str
	Tag    *Str
	Value  Str

	Implicit    bool
	TagImplicit bool
	Style       Style

	State *engine.DocumentState
}

// String renders the event for debugging, e.g.
// Scalar(anchor=a, value="1").
func (e *Event) String() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	var args []string
	if e.Anchor != nil {
		args = append(args, "anchor="+e.Anchor.String())
	}
	if e.Tag != nil {
		args = append(args, "tag="+e.Tag.String())
	}
	if e.Type == Scalar {
		args = append(args, fmt.Sprintf("value=%q", e.Value.String()))
		if e.Style > PlainStyle {
			args = append(args, "style="+e.Style.String())
		}
	}
	if e.Type == DocumentStart || e.Type == DocumentEnd {
		args = append(args, fmt.Sprintf("implicit=%v", e.Implicit))
	}
	b.WriteByte('(')
	b.WriteString(strings.Join(args, ", "))
	b.WriteByte(')')
	return b.String()
}

func styleOf(s engine.ScalarStyle) Style {
	switch s {
	case engine.PlainScalarStyle:
		return PlainStyle
	case engine.SingleQuotedScalarStyle:
		return SingleQuotedStyle
	case engine.DoubleQuotedScalarStyle:
		return DoubleQuotedStyle
	case engine.LiteralScalarStyle:
		return LiteralStyle
	case engine.FoldedScalarStyle:
		return FoldedStyle
	default:
		return AnyStyle
	}
}

func engineStyleOf(s Style) engine.ScalarStyle {
	switch s {
	case PlainStyle:
		return engine.PlainScalarStyle
	case SingleQuotedStyle:
		return engine.SingleQuotedScalarStyle
	case DoubleQuotedStyle:
		return engine.DoubleQuotedScalarStyle
	case LiteralStyle:
		return engine.LiteralScalarStyle
	case FoldedStyle:
		return engine.FoldedScalarStyle
	default:
		return engine.AnyScalarStyle
	}
}
