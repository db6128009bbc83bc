package caliper

import (
	"fmt"
	"os"
)

// debugMode mirrors the most recently set SetDebugMode flag. Precondition
// violations (double Start, unbalanced enter/exit) panic when enabled and
// are tolerated silently otherwise.
var debugMode bool

// SetDebugMode enables or disables debug mode. When enabled,
// programmer-error preconditions panic with a descriptive message
// instead of being silently ignored, and the loop and controller log
// diagnostics to stderr.
func SetDebugMode(enabled bool) {
	debugMode = enabled
}

// debugCheck reports a precondition violation: panic in debug mode,
// silent no-op otherwise. Callers continue as if the violating call
// had not happened.
func debugCheck(format string, args ...any) {
	if debugMode {
		panic("caliper debug: " + fmt.Sprintf(format, args...))
	}
}

// debugLogf prints a diagnostic line to stderr when debug mode is on.
func debugLogf(format string, args ...any) {
	if !debugMode {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[caliper] "+format+"\n", args...)
}
