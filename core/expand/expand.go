// Package expand implements parameter expansion: $NAME and $?.
package expand

import (
	"strconv"
	"strings"
)

// Lookuper is the view of the environment expansion reads from.
type Lookuper interface {
	Getenv(key string) string
}

// Engine expands parameters against an environment and the last exit status.
// It is a pure function of those two values.
type Engine struct {
	Env    Lookuper
	Status int
}

// New creates an engine.
func New(env Lookuper, status int) *Engine {
	return &Engine{Env: env, Status: status}
}

// IsNameStart reports whether c can begin a variable name.
func IsNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// IsNameChar reports whether c can continue a variable name.
func IsNameChar(c byte) bool {
	return IsNameStart(c) || IsDigit(c)
}

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ValidName reports whether s is a valid variable name.
func ValidName(s string) bool {
	if s == "" || !IsNameStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsNameChar(s[i]) {
			return false
		}
	}
	return true
}

// Param expands the reference that starts with the '$' at text[pos]. It
// returns the value and the number of bytes the reference spans.
//
// A '$' that is not followed by a name, a digit or '?' is literal.
func (e *Engine) Param(text string, pos int) (string, int) {
	next := pos + 1
	if next >= len(text) {
		return "$", 1
	}

	switch c := text[next]; {
	case c == '?':
		return strconv.Itoa(e.Status), 2
	case IsDigit(c):
		// Positional parameters are never set.
		return "", 2
	case IsNameStart(c):
		end := next + 1
		for end < len(text) && IsNameChar(text[end]) {
			end++
		}
		return e.lookup(text[next:end]), end - pos
	default:
		return "$", 1
	}
}

func (e *Engine) lookup(name string) string {
	if e.Env == nil {
		return ""
	}
	return e.Env.Getenv(name)
}

// Expand replaces every parameter reference in text. Quote characters are
// ordinary text here, which is what here-document bodies need.
func (e *Engine) Expand(text string) string {
	if !strings.Contains(text, "$") {
		return text
	}

	var b strings.Builder
	for i := 0; i < len(text); {
		if text[i] != '$' {
			j := strings.IndexByte(text[i:], '$')
			if j < 0 {
				b.WriteString(text[i:])
				break
			}
			b.WriteString(text[i : i+j])
			i += j
			continue
		}
		value, n := e.Param(text, i)
		b.WriteString(value)
		i += n
	}
	return b.String()
}
