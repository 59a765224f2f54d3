package yamlevent

import (
	"errors"
	"fmt"

	"github.com/yaml/go-yamlevent/engine"
)

var (
	ErrEncoding = errors.New("invalid utf-8")
	ErrType     = errors.New("invalid value type")
	ErrInternal = errors.New("engine contract violation")
	ErrParse    = errors.New("parse error")
	ErrEmit     = errors.New("emit error")
	ErrClosed   = errors.New("stream closed")
)

// EncodingError reports an invalid byte sequence where text was
// expected. Off is the byte offset of the first invalid sequence
// within the offending value.
type EncodingError struct {
	Off int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid utf-8 sequence at byte %d", e.Off)
}

func (e *EncodingError) Unwrap() error {
	return ErrEncoding
}

// ParseError is an engine-reported failure on the parse side,
// carrying the engine's error kind and positions when it supplied
// them.
type ParseError struct {
	Kind        engine.ErrorKind
	Problem     string
	Mark        *engine.Mark
	Context     string
	ContextMark *engine.Mark
}

func (e *ParseError) Error() string {
	msg := e.Kind.String() + ": " + e.Problem
	if e.Mark != nil {
		msg += "\n  in " + e.Mark.String()
	}
	if e.Context != "" {
		msg += "\n" + e.Context
		if e.ContextMark != nil {
			msg += "\n  in " + e.ContextMark.String()
		}
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// EmitError is an engine-reported failure on the emit side.
type EmitError struct {
	Kind    engine.ErrorKind
	Problem string
	Mark    *engine.Mark
}

func (e *EmitError) Error() string {
	msg := e.Kind.String() + ": " + e.Problem
	if e.Mark != nil {
		msg += "\n  in " + e.Mark.String()
	}
	return msg
}

func (e *EmitError) Unwrap() error {
	return ErrEmit
}

// InternalError reports an engine contract violation: a discriminant
// or union shape this layer does not recognize. It is fatal and never
// retried.
type InternalError struct {
	Problem string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Problem
}

func (e *InternalError) Unwrap() error {
	return ErrInternal
}

// translateParse maps an engine parse failure onto the host error
// model.
func translateParse(err error) error {
	var ee *engine.Error
	if errors.As(err, &ee) {
		return &ParseError{
			Kind:        ee.Kind,
			Problem:     ee.Problem,
			Mark:        ee.Mark,
			Context:     ee.Context,
			ContextMark: ee.ContextMark,
		}
	}
	return fmt.Errorf("%w: %w", ErrParse, err)
}

// translateEmit maps an engine emit failure onto the host error
// model.
func translateEmit(err error) error {
	if err == nil {
		return nil
	}
	var ee *engine.Error
	if errors.As(err, &ee) {
		return &EmitError{Kind: ee.Kind, Problem: ee.Problem, Mark: ee.Mark}
	}
	return fmt.Errorf("%w: %w", ErrEmit, err)
}
