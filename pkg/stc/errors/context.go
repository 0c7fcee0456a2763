package errors

import (
	"strings"
)

// maxContextWidth bounds the excerpt shown around long expressions.
const maxContextWidth = 72

// ExtractContext renders expr with a caret line under byte offset pos.
// Expressions wider than maxContextWidth are cut to a window around pos
// and marked with "...".
func ExtractContext(expr string, pos int) string {
	if pos < 0 {
		pos = 0
	}
	if pos > len(expr) {
		pos = len(expr)
	}

	start, end := 0, len(expr)
	if len(expr) > maxContextWidth {
		start = pos - maxContextWidth/2
		if start < 0 {
			start = 0
		}
		end = start + maxContextWidth
		if end > len(expr) {
			end = len(expr)
			start = end - maxContextWidth
		}
	}

	prefix, suffix := "", ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(expr) {
		suffix = "..."
	}

	var sb strings.Builder
	sb.WriteString("  | ")
	sb.WriteString(prefix)
	sb.WriteString(expr[start:end])
	sb.WriteString(suffix)
	sb.WriteString("\n  | ")
	sb.WriteString(strings.Repeat(" ", len(prefix)+pos-start))
	sb.WriteString("^\n")
	return sb.String()
}
