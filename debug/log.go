package debug

import (
	"fmt"
	"os"
)

// Logf writes trace output to stderr.
func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
