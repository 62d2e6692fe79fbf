package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// ForceStderr routes all log output to stderr. Required for the stdio
// transport where stdout carries protocol messages.
func ForceStderr() {
	mu.Lock()
	defer mu.Unlock()
	stdout = os.Stderr
}

// SetOutput redirects both streams. Test helper.
func SetOutput(out, err io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	stdout = out
	stderr = err
}

// writeLog formats a line and routes it by severity: ERROR/FATAL to stderr,
// everything else to stdout.
func (l *Logger) writeLog(level, msg string, fields map[string]interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] [%s] %s: %s", Timestamp(), level, l.name, msg)

	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" |")
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, fields[k])
		}
	}

	mu.RLock()
	out := stdout
	if level == "ERROR" || level == "FATAL" {
		out = stderr
	}
	mu.RUnlock()
	fmt.Fprintln(out, b.String())
}

// Timestamp returns an RFC3339 timestamp. The LOG_TIMESTAMP env var overrides
// it for deterministic test output.
func Timestamp() string {
	if override := os.Getenv("LOG_TIMESTAMP"); override != "" {
		return override
	}
	return time.Now().Format(time.RFC3339)
}
