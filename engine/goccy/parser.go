// Package goccy adapts github.com/goccy/go-yaml to the engine
// interfaces. Only the parse side is available: goccy has no public
// event-level emitter, so NewEmitter reports engine.ErrUnsupported and
// emission goes through the yaml3 engine instead.
//
// The goccy AST evolved independently from yaml.v3's node model, which
// keeps layers above the engine honest about depending only on the
// event contract.
package goccy

import (
	"io"
	"strings"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/yaml/go-yamlevent/engine"
)

// Parser implements engine.Parser over the goccy AST.
type Parser struct {
	pending []pending
	err     error
	lines   []string

	// Event and token storage, reused between calls to Next.
	ev  engine.Event
	buf []byte
}

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

// carried anchor/tag context while walking wrapper nodes.
type nodeCtx struct {
	anchor, tag       string
	hasAnchor, hasTag bool
}

// NewParser creates a parser over the full contents of r. goccy
// parses whole inputs, so the reader is drained up front; events are
// still produced one per call to Next.
func NewParser(r io.Reader) *Parser {
	p := &Parser{}
	src, err := io.ReadAll(r)
	if err != nil {
		p.err = &engine.Error{Kind: engine.ReaderError, Problem: err.Error()}
		return p
	}
	file, err := parser.ParseBytes(src, 0)
	if err != nil {
		p.err = translateError(err)
		return p
	}
	p.lines = strings.Split(string(src), "\n")
	p.pending = append(p.pending, pending{typ: engine.StreamStartEvent})
	for _, doc := range file.Docs {
		p.pending = append(p.pending, pending{
			typ:      engine.DocumentStartEvent,
			implicit: true,
			state:    &engine.DocumentState{},
			start:    docMark(doc),
			end:      docMark(doc),
		})
		if doc.Body != nil {
			if err := p.flatten(doc.Body, nodeCtx{}); err != nil {
				p.pending = nil
				p.err = err
				return p
			}
		} else {
			// A bare document marker still carries an empty scalar.
			p.scalar(nodeCtx{}, nil, "", engine.PlainScalarStyle)
		}
		p.pending = append(p.pending, pending{
			typ:      engine.DocumentEndEvent,
			implicit: true,
		})
	}
	p.pending = append(p.pending, pending{typ: engine.StreamEndEvent})
	return p
}

// NewEmitter reports that the goccy engine cannot emit.
func NewEmitter(io.Writer) (engine.Emitter, error) {
	return nil, engine.ErrUnsupported
}

// Next returns the next event. The event and its tokens are owned by
// the parser and invalidated by the following call.
func (p *Parser) Next() (*engine.Event, error) {
	if p.err != nil {
		return nil, p.err
	}
	if len(p.pending) == 0 {
		return nil, io.EOF
	}
	pd := p.pending[0]
	p.pending = p.pending[1:]
	return p.issue(pd), nil
}

// Destroy releases parser state.
func (p *Parser) Destroy() {
	p.pending = nil
	p.buf = nil
	if p.err == nil {
		p.err = io.EOF
	}
}

func (p *Parser) flatten(n ast.Node, ctx nodeCtx) error {
	if n == nil {
		// An absent value is an empty plain scalar.
		p.scalar(ctx, nil, "", engine.PlainScalarStyle)
		return nil
	}
	switch v := n.(type) {
	case *ast.AnchorNode:
		ctx.anchor, ctx.hasAnchor = v.Name.GetToken().Value, true
		return p.flatten(v.Value, ctx)
	case *ast.TagNode:
		ctx.tag, ctx.hasTag = v.Start.Value, true
		return p.flatten(v.Value, ctx)
	case *ast.AliasNode:
		p.pending = append(p.pending, pending{
			typ:       engine.AliasEvent,
			anchor:    v.Value.GetToken().Value,
			hasAnchor: true,
			start:     tokMark(v.Start),
			end:       tokMark(v.Start),
		})
		return nil
	case *ast.MappingNode:
		p.push(engine.MappingStartEvent, ctx, v.Start)
		for _, mv := range v.Values {
			if err := p.flatten(mv.Key, nodeCtx{}); err != nil {
				return err
			}
			if err := p.flatten(mv.Value, nodeCtx{}); err != nil {
				return err
			}
		}
		p.pending = append(p.pending, pending{typ: engine.MappingEndEvent})
		return nil
	case *ast.MappingValueNode:
		// A single key/value pair parses to a bare MappingValueNode.
		p.push(engine.MappingStartEvent, ctx, v.Start)
		if err := p.flatten(v.Key, nodeCtx{}); err != nil {
			return err
		}
		if err := p.flatten(v.Value, nodeCtx{}); err != nil {
			return err
		}
		p.pending = append(p.pending, pending{typ: engine.MappingEndEvent})
		return nil
	case *ast.SequenceNode:
		p.push(engine.SequenceStartEvent, ctx, v.Start)
		for _, c := range v.Values {
			if err := p.flatten(c, nodeCtx{}); err != nil {
				return err
			}
		}
		p.pending = append(p.pending, pending{typ: engine.SequenceEndEvent})
		return nil
	case *ast.StringNode:
		p.scalar(ctx, v.GetToken(), v.Value, stringStyleOf(v.GetToken()))
		return nil
	case *ast.LiteralNode:
		style := engine.LiteralScalarStyle
		if len(v.Start.Value) > 0 && v.Start.Value[0] == '>' {
			style = engine.FoldedScalarStyle
		}
		p.scalar(ctx, v.Start, v.Value.Value, style)
		return nil
	case *ast.NullNode:
		// goccy synthesizes a "null" token for values absent from the
		// source (an empty mapping value, a bare document); those
		// surface as empty scalars, only nulls actually spelled in
		// the input keep their literal text.
		tok := n.GetToken()
		value := ""
		if p.explicitToken(tok) {
			value = tok.Value
		}
		p.scalar(ctx, tok, value, engine.PlainScalarStyle)
		return nil
	case *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode,
		*ast.InfinityNode, *ast.NanNode, *ast.MergeKeyNode:
		tok := n.GetToken()
		p.scalar(ctx, tok, tok.Value, engine.PlainScalarStyle)
		return nil
	default:
		return &engine.Error{
			Kind:    engine.ComposerError,
			Problem: "unexpected node type " + n.Type().String(),
			Mark:    markPtr(n.GetToken()),
		}
	}
}

func (p *Parser) push(typ engine.EventType, ctx nodeCtx, tok *token.Token) {
	p.pending = append(p.pending, pending{
		typ:       typ,
		anchor:    ctx.anchor,
		hasAnchor: ctx.hasAnchor,
		tag:       ctx.tag,
		hasTag:    ctx.hasTag,
		start:     tokMark(tok),
		end:       tokMark(tok),
	})
}

func (p *Parser) scalar(ctx nodeCtx, tok *token.Token, value string, style engine.ScalarStyle) {
	p.pending = append(p.pending, pending{
		typ:         engine.ScalarEvent,
		anchor:      ctx.anchor,
		hasAnchor:   ctx.hasAnchor,
		tag:         ctx.tag,
		hasTag:      ctx.hasTag,
		value:       value,
		hasValue:    true,
		tagImplicit: !ctx.hasTag,
		style:       style,
		start:       tokMark(tok),
		end:         tokMark(tok),
	})
}

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

// explicitToken reports whether tok's text actually appears in the
// source at the token's position. Synthetic tokens point at or past
// the construct that implied them, not at their own literal text.
func (p *Parser) explicitToken(tok *token.Token) bool {
	if tok == nil || tok.Position == nil {
		return false
	}
	ln := tok.Position.Line
	if ln < 1 || ln > len(p.lines) {
		return false
	}
	col := tok.Position.Column - 1
	line := p.lines[ln-1]
	if col < 0 || col >= len(line) {
		return false
	}
	return strings.HasPrefix(line[col:], tok.Value)
}

func stringStyleOf(tok *token.Token) engine.ScalarStyle {
	if tok == nil {
		return engine.PlainScalarStyle
	}
	switch tok.Type {
	case token.SingleQuoteType:
		return engine.SingleQuotedScalarStyle
	case token.DoubleQuoteType:
		return engine.DoubleQuotedScalarStyle
	default:
		return engine.PlainScalarStyle
	}
}

func tokMark(tok *token.Token) engine.Mark {
	if tok == nil || tok.Position == nil {
		return engine.Mark{}
	}
	return engine.Mark{
		Index:  tok.Position.Offset,
		Line:   tok.Position.Line,
		Column: tok.Position.Column,
	}
}

func markPtr(tok *token.Token) *engine.Mark {
	if tok == nil || tok.Position == nil {
		return nil
	}
	m := tokMark(tok)
	return &m
}

func docMark(doc *ast.DocumentNode) engine.Mark {
	if doc.Start != nil {
		return tokMark(doc.Start)
	}
	if doc.Body != nil {
		return tokMark(doc.Body.GetToken())
	}
	return engine.Mark{}
}
