package yamlevent

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// strModel selects how scalar bytes surface on the host side. The
// active model is fixed at build time (see model_text.go and
// model_bytestring.go); all model branching lives in this file.
type strModel int8

const (
	// textModel surfaces scalar bytes as UTF-8 text, rejecting
	// invalid sequences.
	textModel strModel = iota

	// bytestringModel passes scalar bytes through unchanged, for
	// hosts whose string type carries raw bytes.
	bytestringModel
)

// Str is a scalar string value crossing the engine boundary: an
// anchor name, a tag, or scalar content. Under the text model it is
// UTF-8 text; under the bytestring model it is an uninterpreted byte
// string. The zero Str is the empty string.
type Str struct {
	b []byte
}

// Text builds a Str from text.
func Text(s string) Str {
	return Str{b: []byte(s)}
}

// Raw builds a Str from raw bytes, copying them.
func Raw(b []byte) Str {
	return Str{b: append(make([]byte, 0, len(b)), b...)}
}

// AsStr coerces a host value to a Str. Accepted are Str, string and
// []byte; anything else is a caller error wrapping ErrType.
func AsStr(v any) (Str, error) {
	switch x := v.(type) {
	case Str:
		return x, nil
	case string:
		return Text(x), nil
	case []byte:
		return Raw(x), nil
	default:
		return Str{}, fmt.Errorf("%w: cannot make a string from %T", ErrType, v)
	}
}

func (s Str) String() string {
	return string(s.b)
}

// Bytes returns the underlying bytes without copying. The result must
// be treated as read-only.
func (s Str) Bytes() []byte {
	return s.b
}

func (s Str) Len() int {
	return len(s.b)
}

func (s Str) Equal(o Str) bool {
	return bytes.Equal(s.b, o.b)
}

// decodeStr converts engine token bytes into a host Str under model
// m. Unless borrow is set the bytes are copied into host-owned
// storage, since the engine reuses token storage on its next call.
// Under the text model invalid UTF-8 fails with an EncodingError; the
// input is never truncated or substituted.
func decodeStr(m strModel, b []byte, borrow bool) (Str, error) {
	if m == textModel {
		if off, ok := invalidUTF8(b); ok {
			return Str{}, &EncodingError{Off: off}
		}
	}
	if borrow {
		return Str{b: b}, nil
	}
	return Str{b: append(make([]byte, 0, len(b)), b...)}, nil
}

// encodeStr returns the byte form of s under model m. The result
// stays valid as long as s does; callers hand it to the engine and
// must keep s alive until the engine call returns. Go strings can
// carry arbitrary bytes, so the text model re-validates here rather
// than assuming Text was given well-formed input.
func encodeStr(m strModel, s Str) ([]byte, error) {
	if m == textModel {
		if off, ok := invalidUTF8(s.b); ok {
			return nil, &EncodingError{Off: off}
		}
	}
	if s.b == nil {
		// The zero Str is the empty string, not an absent token.
		return []byte{}, nil
	}
	return s.b, nil
}

// invalidUTF8 returns the offset of the first invalid byte sequence.
func invalidUTF8(b []byte) (int, bool) {
	if utf8.Valid(b) {
		return 0, false
	}
	off := 0
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			return off, true
		}
		b = b[size:]
		off += size
	}
	return 0, true
}
