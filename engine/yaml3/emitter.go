package yaml3

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaml/go-yamlevent/engine"
)

// EmitterOption configures an Emitter.
type EmitterOption func(*emitterOpts)

type emitterOpts struct {
	indent int
}

// Indent sets the number of spaces used for indentation. The encoder
// default applies when unset.
func Indent(n int) EmitterOption {
	return func(o *emitterOpts) {
		o.indent = n
	}
}

// Emitter implements engine.Emitter over a yaml.Encoder. Events are
// buffered into a node tree per document; the document is written when
// its document end event arrives.
type Emitter struct {
	enc       *yaml.Encoder
	stack     []*yaml.Node
	root      *yaml.Node
	anchors   map[string]*yaml.Node
	inDoc     bool
	wrote     bool
	destroyed bool
}

// NewEmitter creates an emitter writing a YAML stream to w.
func NewEmitter(w io.Writer, opts ...EmitterOption) *Emitter {
	o := &emitterOpts{}
	for _, opt := range opts {
		opt(o)
	}
	enc := yaml.NewEncoder(w)
	if o.indent > 0 {
		enc.SetIndent(o.indent)
	}
	return &Emitter{enc: enc}
}

// Emit consumes one event. Token storage is not retained past the
// call.
func (e *Emitter) Emit(ev *engine.Event) error {
	switch ev.Type {
	case engine.StreamStartEvent, engine.StreamEndEvent:
		return nil
	case engine.DocumentStartEvent:
		if e.inDoc {
			return emitErr("document start inside open document")
		}
		e.inDoc = true
		e.root = nil
		e.stack = e.stack[:0]
		e.anchors = map[string]*yaml.Node{}
		return nil
	case engine.DocumentEndEvent:
		if !e.inDoc {
			return emitErr("document end without document start")
		}
		if len(e.stack) > 0 {
			return emitErr("document end inside open collection")
		}
		if e.root == nil {
			return emitErr("document has no content")
		}
		if e.root.Kind == yaml.ScalarNode && e.root.Value == "" &&
			e.root.Tag == "" && e.root.Style == 0 {
			// An empty plain scalar at the document root renders as
			// a bare newline, which re-parses as no document at all.
			e.root.Style = yaml.SingleQuotedStyle
		}
		e.inDoc = false
		if err := e.enc.Encode(e.root); err != nil {
			return &engine.Error{Kind: engine.WriterError, Problem: err.Error()}
		}
		e.wrote = true
		return nil
	case engine.AliasEvent:
		name := string(ev.Anchor.Bytes())
		target, ok := e.anchors[name]
		if !ok {
			return emitErr("alias to undefined anchor " + name)
		}
		return e.attach(&yaml.Node{Kind: yaml.AliasNode, Value: name, Alias: target})
	case engine.ScalarEvent:
		n := &yaml.Node{
			Kind:  yaml.ScalarNode,
			Value: string(ev.Value.Bytes()),
			Style: encStyleOf(ev.Style),
		}
		e.decorate(n, ev)
		return e.attach(n)
	case engine.SequenceStartEvent:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		e.decorate(n, ev)
		if err := e.attach(n); err != nil {
			return err
		}
		e.stack = append(e.stack, n)
		return nil
	case engine.MappingStartEvent:
		n := &yaml.Node{Kind: yaml.MappingNode}
		e.decorate(n, ev)
		if err := e.attach(n); err != nil {
			return err
		}
		e.stack = append(e.stack, n)
		return nil
	case engine.SequenceEndEvent, engine.MappingEndEvent:
		if len(e.stack) == 0 {
			return emitErr("collection end without collection start")
		}
		e.stack = e.stack[:len(e.stack)-1]
		return nil
	default:
		return emitErr("unexpected event " + ev.Type.String())
	}
}

// Destroy flushes the stream and releases encoder state.
func (e *Emitter) Destroy() error {
	if e.destroyed {
		return nil
	}
	e.destroyed = true
	if !e.wrote {
		// Closing the encoder before any document was written makes
		// it emit a stream end with no stream start.
		return nil
	}
	if err := e.enc.Close(); err != nil {
		return &engine.Error{Kind: engine.WriterError, Problem: err.Error()}
	}
	return nil
}

// decorate copies the anchor and tag off ev onto n. Explicit tags are
// forced with TaggedStyle so the encoder does not elide them.
func (e *Emitter) decorate(n *yaml.Node, ev *engine.Event) {
	if !ev.Anchor.IsZero() {
		n.Anchor = string(ev.Anchor.Bytes())
		e.anchors[n.Anchor] = n
	}
	if !ev.Tag.IsZero() {
		n.Tag = string(ev.Tag.Bytes())
		n.Style |= yaml.TaggedStyle
	}
}

func (e *Emitter) attach(n *yaml.Node) error {
	if !e.inDoc {
		return emitErr("node event outside document")
	}
	if len(e.stack) > 0 {
		top := e.stack[len(e.stack)-1]
		top.Content = append(top.Content, n)
		return nil
	}
	if e.root != nil {
		return emitErr("multiple document roots")
	}
	e.root = n
	return nil
}

func emitErr(problem string) *engine.Error {
	return &engine.Error{Kind: engine.EmitterError, Problem: problem}
}

func encStyleOf(s engine.ScalarStyle) yaml.Style {
	switch s {
	case engine.SingleQuotedScalarStyle:
		return yaml.SingleQuotedStyle
	case engine.DoubleQuotedScalarStyle:
		return yaml.DoubleQuotedStyle
	case engine.LiteralScalarStyle:
		return yaml.LiteralStyle
	case engine.FoldedScalarStyle:
		return yaml.FoldedStyle
	default:
		// Plain and any: let the encoder choose quoting.
		return 0
	}
}
