package engine

import (
	"errors"
	"fmt"
)

// ErrUnsupported reports an engine operation the linked engine does
// not provide.
var ErrUnsupported = errors.New("unsupported by engine")

// ErrorKind classifies where in the engine a failure occurred.
type ErrorKind int8

const (
	NoError ErrorKind = iota

	ReaderError   // cannot read or decode the input stream
	ScannerError  // cannot scan the input stream
	ParserError   // cannot parse the input stream
	ComposerError // cannot compose a document
	WriterError   // cannot write to the output stream
	EmitterError  // cannot emit a stream
)

var errorKindStrings = []string{
	NoError:       "no error",
	ReaderError:   "reader error",
	ScannerError:  "scanner error",
	ParserError:   "parser error",
	ComposerError: "composer error",
	WriterError:   "writer error",
	EmitterError:  "emitter error",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindStrings) {
		return fmt.Sprintf("unknown error kind %d", k)
	}
	return errorKindStrings[k]
}

// Error is an engine-reported failure. Problem describes what went
// wrong; Mark locates it when the engine supplies a position. Context
// and ContextMark optionally describe the enclosing construct, in the
// manner of "while parsing a flow sequence".
type Error struct {
	Kind        ErrorKind
	Problem     string
	Mark        *Mark
	Context     string
	ContextMark *Mark
}

func (e *Error) Error() string {
	msg := e.Kind.String() + ": " + e.Problem
	if e.Mark != nil {
		msg += " at " + e.Mark.String()
	}
	if e.Context != "" {
		msg += "\n" + e.Context
		if e.ContextMark != nil {
			msg += " at " + e.ContextMark.String()
		}
	}
	return msg
}
