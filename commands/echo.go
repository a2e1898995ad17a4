package commands

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/josephlewis42/minishell/core/vos"
)

var (
	unescapeOctal   = regexp.MustCompile(`\\0[0-7][0-7]?[0-7]?`)
	unescapeHex     = regexp.MustCompile(`\\x[0-9a-fA-F][0-9a-fA-F]?`)
	unescapeReplace = strings.NewReplacer(
		`\n`, "\n", // newline
		`\r`, "\r", // carriage return
		`\t`, "\t", // horizontal tab
		`\\`, `\`, // backslash literal
		`\b`, "\b", // backspace
		`\a`, "\a", // alert
		`\f`, "\f", // form feed
		`\v`, "\v", // vertical tab
		`\e`, "\x1b", // escape
	)
)

func unescape(s string) string {
	s = unescapeReplace.Replace(s)
	s = unescapeOctal.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 8, 8)
		if err != nil {
			return arg
		}
		return string([]byte{byte(out)})
	})
	s = unescapeHex.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseUint(arg[2:], 16, 8)
		if err != nil {
			return arg
		}
		return string([]byte{byte(out)})
	})
	return s
}

// echoFlags reports whether arg is a cluster of echo options such as -n or
// -neE. Anything else, "--help" included, is printed.
func echoFlags(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	return strings.Trim(arg[1:], "neE") == ""
}

// Echo writes its arguments separated by spaces.
//
//	-n  do not output the trailing newline
//	-e  interpret backslash escapes
//	-E  do not interpret backslash escapes (default)
func Echo(p *vos.Proc, args []string) int {
	newline, escaped := true, false

	args = args[1:]
	for len(args) > 0 && echoFlags(args[0]) {
		for _, c := range args[0][1:] {
			switch c {
			case 'n':
				newline = false
			case 'e':
				escaped = true
			case 'E':
				escaped = false
			}
		}
		args = args[1:]
	}

	var b strings.Builder
	for i, arg := range args {
		if i > 0 {
			b.WriteByte(' ')
		}
		if escaped {
			arg = unescape(arg)
		}
		b.WriteString(arg)
	}
	if newline {
		b.WriteByte('\n')
	}

	if _, err := p.Stdout.Write([]byte(b.String())); err != nil {
		return writeFailed(p, err)
	}
	return 0
}

// StatusBrokenPipe is the status of a write to a pipe nobody reads, as if
// the writer had been killed by SIGPIPE.
const StatusBrokenPipe = 128 + int(syscall.SIGPIPE)

// writeFailed reports a failed echo. A reader that went away is not worth a
// message.
func writeFailed(p *vos.Proc, err error) int {
	if errors.Is(err, syscall.EPIPE) {
		return StatusBrokenPipe
	}
	p.Errorf("echo: write error: %s", vos.Describe(err))
	return 1
}

var _ vos.BuiltinFunc = Echo

func init() {
	addBuiltin("echo", "Write arguments to the standard output.", Echo)
}
