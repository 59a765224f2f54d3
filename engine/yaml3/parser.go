// Package yaml3 adapts gopkg.in/yaml.v3 to the engine interfaces.
//
// The parser streams documents through a yaml.Decoder and flattens
// each decoded node tree into the engine event sequence. The emitter
// rebuilds a node tree per document from pushed events and writes it
// through a yaml.Encoder.
package yaml3

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaml/go-yamlevent/engine"
)

type parsePhase int8

const (
	atStreamStart parsePhase = iota
	inStream
	atStreamEnd
	parseDone
)

// Parser implements engine.Parser over a yaml.Decoder.
type Parser struct {
	dec     *yaml.Decoder
	phase   parsePhase
	pending []pending
	err     error

	// Event and token storage, reused between calls to Next.
	ev  engine.Event
	buf []byte
}

// pending is a flattened event waiting to be issued. Strings are held
// here rather than tokens so that token storage can be reused per
// issued event.
type pending struct {
	typ                engine.EventType
	anchor, tag, value string
	hasAnchor, hasTag  bool
	hasValue           bool
	implicit           bool
	tagImplicit        bool
	style              engine.ScalarStyle
	state              *engine.DocumentState
	start, end         engine.Mark
}

// NewParser creates a parser reading a YAML stream from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{dec: yaml.NewDecoder(r)}
}

// Next returns the next event. The event and its tokens are owned by
// the parser and invalidated by the following call.
func (p *Parser) Next() (*engine.Event, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.phase == atStreamStart {
		p.phase = inStream
		return p.issue(pending{typ: engine.StreamStartEvent}), nil
	}
	if len(p.pending) == 0 && p.phase == inStream {
		if err := p.readDocument(); err != nil {
			p.err = err
			return nil, err
		}
	}
	if len(p.pending) > 0 {
		pd := p.pending[0]
		p.pending = p.pending[1:]
		return p.issue(pd), nil
	}
	if p.phase == atStreamEnd {
		p.phase = parseDone
		return p.issue(pending{typ: engine.StreamEndEvent}), nil
	}
	return nil, io.EOF
}

// Destroy releases parser state.
func (p *Parser) Destroy() {
	p.dec = nil
	p.pending = nil
	p.buf = nil
	if p.err == nil {
		p.err = io.EOF
	}
}

func (p *Parser) readDocument() error {
	var node yaml.Node
	err := p.dec.Decode(&node)
	if err == io.EOF {
		p.phase = atStreamEnd
		return nil
	}
	if err != nil {
		return translateError(err)
	}
	state := &engine.DocumentState{}
	p.pending = append(p.pending, pending{
		typ:      engine.DocumentStartEvent,
		implicit: true,
		state:    state,
		start:    markOf(&node),
		end:      markOf(&node),
	})
	if len(node.Content) > 0 {
		if err := p.flatten(node.Content[0]); err != nil {
			return err
		}
	}
	p.pending = append(p.pending, pending{
		typ:      engine.DocumentEndEvent,
		implicit: true,
	})
	return nil
}

func (p *Parser) flatten(n *yaml.Node) error {
	pd := pending{start: markOf(n), end: markOf(n)}
	if n.Anchor != "" {
		pd.anchor, pd.hasAnchor = n.Anchor, true
	}
	if n.Style&yaml.TaggedStyle != 0 {
		pd.tag, pd.hasTag = n.Tag, true
	}
	switch n.Kind {
	case yaml.AliasNode:
		pd.anchor, pd.hasAnchor = n.Value, true
		pd.typ = engine.AliasEvent
		p.pending = append(p.pending, pd)
		return nil
	case yaml.ScalarNode:
		pd.typ = engine.ScalarEvent
		pd.value, pd.hasValue = n.Value, true
		pd.tagImplicit = !pd.hasTag
		pd.style = scalarStyleOf(n.Style)
		p.pending = append(p.pending, pd)
		return nil
	case yaml.SequenceNode:
		pd.typ = engine.SequenceStartEvent
		p.pending = append(p.pending, pd)
		for _, c := range n.Content {
			if err := p.flatten(c); err != nil {
				return err
			}
		}
		p.pending = append(p.pending, pending{typ: engine.SequenceEndEvent})
		return nil
	case yaml.MappingNode:
		pd.typ = engine.MappingStartEvent
		p.pending = append(p.pending, pd)
		for _, c := range n.Content {
			if err := p.flatten(c); err != nil {
				return err
			}
		}
		p.pending = append(p.pending, pending{typ: engine.MappingEndEvent})
		return nil
	default:
		return &engine.Error{
			Kind:    engine.ComposerError,
			Problem: "unexpected node kind in document",
			Mark:    &engine.Mark{Line: n.Line, Column: n.Column},
		}
	}
}

// issue materializes pd into the parser-owned event, copying its
// strings into the reused token buffer.
func (p *Parser) issue(pd pending) *engine.Event {
	need := len(pd.anchor) + len(pd.tag) + len(pd.value)
	if p.buf == nil || cap(p.buf) < need {
		// One allocation up front; appends below must not grow
		// the buffer or earlier token slices would dangle.
		p.buf = make([]byte, 0, need+1)
	}
	p.buf = p.buf[:0]
	tok := func(s string, has bool) engine.Token {
		if !has {
			return engine.Token{}
		}
		off := len(p.buf)
		p.buf = append(p.buf, s...)
		return engine.MakeToken(p.buf[off:len(p.buf):len(p.buf)])
	}
	p.ev.Reset()
	p.ev.Type = pd.typ
	p.ev.Start, p.ev.End = pd.start, pd.end
	p.ev.State = pd.state
	p.ev.Anchor = tok(pd.anchor, pd.hasAnchor)
	p.ev.Tag = tok(pd.tag, pd.hasTag)
	p.ev.Value = tok(pd.value, pd.hasValue)
	p.ev.Implicit = pd.implicit
	p.ev.TagImplicit = pd.tagImplicit
	p.ev.Style = pd.style
	return &p.ev
}

func markOf(n *yaml.Node) engine.Mark {
	return engine.Mark{Line: n.Line, Column: n.Column}
}

func scalarStyleOf(s yaml.Style) engine.ScalarStyle {
	switch {
	case s&yaml.SingleQuotedStyle != 0:
		return engine.SingleQuotedScalarStyle
	case s&yaml.DoubleQuotedStyle != 0:
		return engine.DoubleQuotedScalarStyle
	case s&yaml.LiteralStyle != 0:
		return engine.LiteralScalarStyle
	case s&yaml.FoldedStyle != 0:
		return engine.FoldedScalarStyle
	default:
		return engine.PlainScalarStyle
	}
}
