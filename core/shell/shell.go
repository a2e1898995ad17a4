package shell

import (
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/josephlewis42/minishell/commands"
	"github.com/josephlewis42/minishell/core/config"
	"github.com/josephlewis42/minishell/core/exec"
	"github.com/josephlewis42/minishell/core/logger"
	"github.com/josephlewis42/minishell/core/terminal"
	"github.com/josephlewis42/minishell/core/vos"
)

// maxShlvl is the deepest nesting accepted before SHLVL is reset.
const maxShlvl = 999

// HistoryAdder is implemented by line readers that keep their own history.
type HistoryAdder interface {
	AddHistory(lines ...string)
}

// Shell is one interactive session: its process state, input and the
// collaborators each command cycle uses.
type Shell struct {
	Proc     *vos.Proc
	Config   *config.Configuration
	Executor *exec.Executor
	Source   *vos.LineSource
	Terminal *terminal.Terminal
	Events   *logger.SessionLogger

	// Fs is where redirections are opened and heredocs staged.
	Fs afero.Fs

	// History collects interactive input lines, oldest first.
	History []string

	// Geteuid decides between the # and $ prompts, os.Geteuid when nil.
	Geteuid func() int

	reader vos.LineReader
}

// Options configures New.
type Options struct {
	Proc     *vos.Proc
	Config   *config.Configuration
	Reader   vos.LineReader
	Terminal *terminal.Terminal
	Events   *logger.SessionLogger

	// Fs defaults to the host filesystem.
	Fs afero.Fs

	// Builtins defaults to commands.AllBuiltins.
	Builtins map[string]vos.BuiltinFunc
}

// New creates a shell. Call Init before running commands.
func New(opts Options) *Shell {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Builtins == nil {
		opts.Builtins = commands.AllBuiltins
	}
	if opts.Events == nil {
		opts.Events = logger.Discard().NewSession()
	}

	proc := opts.Proc
	if opts.Config.ShellName != "" {
		proc.Name = opts.Config.ShellName
	}

	s := &Shell{
		Proc:     proc,
		Config:   opts.Config,
		Executor: exec.New(opts.Fs, opts.Builtins),
		Source:   vos.NewLineSource(opts.Reader),
		Terminal: opts.Terminal,
		Events:   opts.Events,
		Fs:       opts.Fs,
		reader:   opts.Reader,
	}
	s.Executor.OnExit = s.recordCommand
	return s
}

// Init prepares the environment the way a login shell would: SHLVL is
// incremented, PWD points at the working directory and OLDPWD is cleared.
func (s *Shell) Init() {
	env := s.Proc.Env

	level := 1
	if raw, ok := env.LookupEnv(commands.EnvShlvl); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			level = n + 1
		}
	}
	switch {
	case level < 0:
		level = 0
	case level > maxShlvl:
		s.Proc.Errorf("warning: shell level (%d) too high, resetting to 1", level)
		level = 1
	}
	env.Setenv(commands.EnvShlvl, strconv.Itoa(level))
	env.Setenv(commands.EnvPWD, s.Proc.Dir)

	env.Unsetenv(commands.EnvOldPWD)
	env.Export(commands.EnvOldPWD)
}

// LoadHistory seeds the session history, and the line editor if it keeps
// one.
func (s *Shell) LoadHistory(lines []string) {
	s.History = append(s.History, lines...)
	if adder, ok := s.reader.(HistoryAdder); ok {
		adder.AddHistory(lines...)
	}
}

func (s *Shell) addHistory(line string) {
	if !s.Proc.Interactive || strings.TrimSpace(line) == "" {
		return
	}
	s.History = append(s.History, line)
	if adder, ok := s.reader.(HistoryAdder); ok {
		adder.AddHistory(line)
	}
}

var unknownCommandMessages = map[int]string{
	exec.StatusNotFound:      "command not found",
	exec.StatusNotExecutable: "cannot execute",
}

func (s *Shell) recordCommand(args []string, status int) {
	if msg, ok := unknownCommandMessages[status]; ok {
		s.record(&logger.UnknownCommand{Command: args, Status: status, ErrorMessage: msg})
		return
	}
	s.record(&logger.RunCommand{Command: args, Status: status})
}

func (s *Shell) record(event logger.Event) {
	if err := s.Events.Record(event); err != nil {
		s.Proc.Errorf("event log: %v", err)
	}
}
