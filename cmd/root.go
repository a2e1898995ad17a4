package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/josephlewis42/minishell/commands"
	"github.com/josephlewis42/minishell/core/config"
	"github.com/josephlewis42/minishell/core/history"
	"github.com/josephlewis42/minishell/core/logger"
	"github.com/josephlewis42/minishell/core/shell"
	"github.com/josephlewis42/minishell/core/terminal"
	"github.com/josephlewis42/minishell/core/vos"
)

var (
	cfgPath    string
	script     string
	exitStatus int
)

func loadConfig() (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		log.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "minishell",
	Short: "A small POSIX-like command shell",
	Long: `minishell reads commands from the terminal, from a script on standard
input or from the -c option, and runs pipelines of simple commands with
redirections and heredocs.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := runShell(cmd)
		exitStatus = status
		return err
	},
}

func runShell(cmd *cobra.Command) (int, error) {
	diag := log.New(cmd.ErrOrStderr(), "minishell: ", 0)

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return shell.StatusFailure, err
	}

	events, closeEvents, err := openEvents(cfg)
	if err != nil {
		diag.Printf("event log disabled: %v", err)
	}
	defer closeEvents()

	dir, err := os.Getwd()
	if err != nil {
		return shell.StatusFailure, err
	}

	proc := vos.NewProc(cfg.ShellName, vos.NewEnvFromList(os.Environ()), dir, vos.OSIO())

	tty := terminal.New(os.Stdin)
	proc.Interactive = !cmd.Flags().Changed("command") && tty.IsTerminal()

	stop := terminal.InstallSignalHandlers()
	defer stop()

	if err := tty.Save(); err != nil {
		diag.Printf("saving terminal mode: %v", err)
	}
	defer tty.Restore()

	var reader vos.LineReader
	switch {
	case cmd.Flags().Changed("command"):
		// Only the script is read; heredocs past its end see end of input.
	case proc.Interactive:
		editor, err := terminal.NewLineEditor(terminal.EditorConfig{
			Stdin:        os.Stdin,
			Stdout:       os.Stdout,
			Stderr:       os.Stderr,
			HistoryLimit: cfg.HistoryLimit,
			Complete:     builtinNames(),
		})
		if err != nil {
			return shell.StatusFailure, err
		}
		defer editor.Close()
		reader = editor
	default:
		reader = terminal.NewPlainReader(os.Stdin)
	}

	sh := shell.New(shell.Options{
		Proc:     proc,
		Config:   cfg,
		Reader:   reader,
		Terminal: tty,
		Events:   events.NewSession(),
	})
	sh.Init()

	ctx := context.Background()
	if cmd.Flags().Changed("command") {
		return sh.RunScript(ctx, script), nil
	}

	var hist *history.History
	if proc.Interactive && cfg.HistoryPath() != "" {
		hist = history.New(cfg.Fs(), cfg.HistoryPath(), cfg.HistoryLimit)
		lines, err := hist.Load()
		if err != nil {
			diag.Printf("loading history: %v", err)
		}
		sh.LoadHistory(lines)
	}

	status := sh.Run(ctx)

	if hist != nil {
		if err := hist.Save(sh.History); err != nil {
			diag.Printf("saving history: %v", err)
		}
	}
	return status, nil
}

func openEvents(cfg *config.Configuration) (*logger.Logger, func(), error) {
	if !cfg.EventLog {
		return logger.Discard(), func() {}, nil
	}

	fd, err := cfg.OpenEventLog()
	if err != nil {
		return logger.Discard(), func() {}, err
	}
	return logger.NewJSONLinesLogRecorder(fd), func() { fd.Close() }, nil
}

func builtinNames() []string {
	var names []string
	for _, entry := range commands.ListBuiltins() {
		names = append(names, entry.Name)
	}
	return names
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		rootCmd.PrintErrln("minishell:", err)
		if exitStatus == 0 {
			exitStatus = shell.StatusFailure
		}
	}
	os.Exit(exitStatus)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".minishell"
	}
	return filepath.Join(home, ".minishell")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath(), "config directory")
	rootCmd.Flags().StringVarP(&script, "command", "c", "", "run the commands in the string and exit")
}
