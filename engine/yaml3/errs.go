package yaml3

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaml/go-yamlevent/debug"
	"github.com/yaml/go-yamlevent/engine"
)

// yaml.v3 reports positions only inside error text, in the form
// "yaml: line 2: found character that cannot start any token".
var lineErrRegexp = regexp.MustCompile(`^yaml: line (\d+): (.+)$`)

// translateError maps a yaml.v3 decode error onto the engine error
// model, recovering the line mark from the error text when present.
func translateError(err error) *engine.Error {
	e := &engine.Error{Kind: engine.ParserError, Problem: err.Error()}
	if m := lineErrRegexp.FindStringSubmatch(e.Problem); m != nil {
		line, convErr := strconv.Atoi(m[1])
		if convErr == nil {
			e.Problem = m[2]
			e.Mark = &engine.Mark{Line: line}
		}
	} else {
		e.Problem = strings.TrimPrefix(e.Problem, "yaml: ")
	}
	if strings.Contains(e.Problem, "anchor") {
		e.Kind = engine.ComposerError
	}
	if debug.Engine() {
		debug.Logf("yaml3: %v -> %v\n", err, e)
	}
	return e
}
