package commands

import (
	"fmt"
	"io"
	"sort"

	getopt "github.com/pborman/getopt/v2"

	"github.com/josephlewis42/minishell/core/vos"
)

const (
	EnvHome   = "HOME"
	EnvPWD    = "PWD"
	EnvOldPWD = "OLDPWD"
	EnvPath   = "PATH"
	EnvShlvl  = "SHLVL"
	EnvUser   = "USER"
)

// AllBuiltins holds every registered builtin by name.
var AllBuiltins = make(map[string]vos.BuiltinFunc)

var builtinInfo = make(map[string]string)

// addBuiltin registers a builtin with a one line description.
func addBuiltin(name, short string, fn vos.BuiltinFunc) {
	AllBuiltins[name] = fn
	builtinInfo[name] = short
}

// BuiltinEntry describes a registered builtin.
type BuiltinEntry struct {
	Name  string
	Short string
	Main  vos.BuiltinFunc
}

// ListBuiltins returns the registered builtins sorted by name.
func ListBuiltins() []BuiltinEntry {
	var out []BuiltinEntry
	for name, fn := range AllBuiltins {
		out = append(out, BuiltinEntry{Name: name, Short: builtinInfo[name], Main: fn})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run parses args and, if flag parsing was successful, calls the callback.
// Invalid options are reported with the usage line and exit with status 2.
func (s *SimpleCommand) Run(p *vos.Proc, args []string, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(args, nil); err != nil {
		p.Errorf("%s", err)
		fmt.Fprintf(p.Stderr, "usage: %s\n", s.Use)
		return 2
	}

	if *s.ShowHelp {
		s.PrintHelp(p.Stdout)
		return 0
	}

	return callback()
}
