package goccy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/yaml/go-yamlevent/debug"
	"github.com/yaml/go-yamlevent/engine"
)

// goccy renders positions into its error text as "[line:column] msg".
var posErrRegexp = regexp.MustCompile(`^\[(\d+):(\d+)\] *(.+)$`)

// translateError maps a goccy parse error onto the engine error
// model, recovering the position mark from the formatted error text.
func translateError(err error) *engine.Error {
	e := &engine.Error{Kind: engine.ParserError}
	msg := yaml.FormatError(err, false, false)
	if msg == "" {
		msg = err.Error()
	}
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	e.Problem = msg
	if m := posErrRegexp.FindStringSubmatch(msg); m != nil {
		line, lineErr := strconv.Atoi(m[1])
		col, colErr := strconv.Atoi(m[2])
		if lineErr == nil && colErr == nil {
			e.Problem = m[3]
			e.Mark = &engine.Mark{Line: line, Column: col}
		}
	}
	if debug.Engine() {
		debug.Logf("goccy: %v -> %v\n", err, e)
	}
	return e
}
