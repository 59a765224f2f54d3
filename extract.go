package yamlevent

import "github.com/yaml/go-yamlevent/engine"

// fieldSet enumerates which union fields a discriminant makes
// meaningful.
type fieldSet uint8

const (
	fAnchor fieldSet = 1 << iota
	fTag
	fValue
	fState
	fImplicit
	fTagImplicit
	fStyle
)

// eventFields mirrors the engine's union layout. Reading an engine
// event field outside its set is reading another variant's storage,
// so this table must track the engine contract exactly;
// TestExtractorLayout cross-checks it against events produced by the
// linked engines rather than trusting this copy alone.
var eventFields = [...]fieldSet{
	engine.NoEvent:            0,
	engine.StreamStartEvent:   0,
	engine.StreamEndEvent:     0,
	engine.DocumentStartEvent: fState | fImplicit,
	engine.DocumentEndEvent:   fImplicit,
	engine.AliasEvent:         fAnchor,
	engine.ScalarEvent:        fAnchor | fTag | fValue | fTagImplicit | fStyle,
	engine.SequenceStartEvent: fAnchor | fTag,
	engine.SequenceEndEvent:   0,
	engine.MappingStartEvent:  fAnchor | fTag,
	engine.MappingEndEvent:    0,
}

// extractor provides validity-checked access to one engine event's
// fields. Accessing a field the current discriminant does not define
// is a programming error in this package and panics; it never yields
// a silent zero.
type extractor struct {
	ev *engine.Event
}

func (x extractor) check(f fieldSet, name string) {
	t := x.ev.Type
	var fs fieldSet
	if t >= 0 && int(t) < len(eventFields) {
		fs = eventFields[t]
	}
	if fs&f == 0 {
		panic("yamlevent: " + name + " is not a field of " + t.String() + " events")
	}
}

// anchor returns the anchor token and whether one is present. Absence
// is distinct from an empty-name anchor.
func (x extractor) anchor() (engine.Token, bool) {
	x.check(fAnchor, "anchor")
	t := x.ev.Anchor
	return t, !t.IsZero()
}

func (x extractor) tag() (engine.Token, bool) {
	x.check(fTag, "tag")
	t := x.ev.Tag
	return t, !t.IsZero()
}

func (x extractor) value() engine.Token {
	x.check(fValue, "value")
	return x.ev.Value
}

func (x extractor) state() *engine.DocumentState {
	x.check(fState, "state")
	return x.ev.State
}

func (x extractor) implicit() bool {
	x.check(fImplicit, "implicit")
	return x.ev.Implicit
}

func (x extractor) tagImplicit() bool {
	x.check(fTagImplicit, "tag implicit")
	return x.ev.TagImplicit
}

func (x extractor) scalarStyle() engine.ScalarStyle {
	x.check(fStyle, "style")
	return x.ev.Style
}
