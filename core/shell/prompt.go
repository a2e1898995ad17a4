package shell

import (
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/josephlewis42/minishell/commands"
	"github.com/josephlewis42/minishell/core/config"
)

const (
	EnvPrompt   = "PS1"
	EnvHostname = "HOSTNAME"

	DefaultPrompt      = `\u@\h:\w\$ `
	ContinuationPrompt = "> "
)

var (
	promptUserColor = color.New(color.FgGreen, color.Bold)
	promptDirColor  = color.New(color.FgBlue, color.Bold)
)

// Prompt renders the primary prompt. PS1 overrides the configured template.
//
// \u is $USER, \h the host name up to the first dot, \w the working
// directory with $HOME abbreviated to ~ and \$ is # for root, $ otherwise.
func (s *Shell) Prompt() string {
	prompt := s.Proc.Env.Getenv(EnvPrompt)
	if prompt == "" {
		prompt = s.Config.Prompt
	}
	if prompt == "" {
		prompt = DefaultPrompt
	}

	user := s.Proc.Env.Getenv(commands.EnvUser)
	host := s.hostname()
	if s.colorize() {
		user = promptUserColor.Sprint(user)
		host = promptUserColor.Sprint(host)
	}

	pwd := s.Proc.Dir
	if home := s.Proc.Env.Getenv(commands.EnvHome); home != "" && home != "/" {
		if pwd == home || strings.HasPrefix(pwd, home+"/") {
			pwd = "~" + strings.TrimPrefix(pwd, home)
		}
	}
	if s.colorize() {
		pwd = promptDirColor.Sprint(pwd)
	}

	prompt = strings.ReplaceAll(prompt, `\u`, user)
	prompt = strings.ReplaceAll(prompt, `\h`, host)
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)
	if s.euid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return prompt
}

func (s *Shell) hostname() string {
	host := s.Proc.Env.Getenv(EnvHostname)
	if host == "" {
		host, _ = os.Hostname()
	}
	host, _, _ = strings.Cut(host, ".")
	return host
}

func (s *Shell) colorize() bool {
	switch s.Config.Color {
	case config.ColorAlways:
		promptUserColor.EnableColor()
		promptDirColor.EnableColor()
		return true
	case config.ColorNever:
		return false
	default:
		return s.Proc.Interactive && !color.NoColor
	}
}

func (s *Shell) euid() int {
	if s.Geteuid != nil {
		return s.Geteuid()
	}
	return os.Geteuid()
}
