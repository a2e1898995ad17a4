package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josephlewis42/minishell/core/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestBuiltinsCommand(t *testing.T) {
	out, err := runCommand(t, "builtins")
	require.NoError(t, err)

	for _, name := range []string{"cd", "echo", "env", "exit", "export", "pwd", "unset"} {
		assert.Contains(t, out, name)
	}
}

func TestInitAndReport(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	_, err := runCommand(t, "--config", dir, "init")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, config.ConfigurationName))

	log := `{"timestamp_micros":1,"session_id":"7","run_command":{"command":["ls"],"status":0}}
{"timestamp_micros":2,"session_id":"7","syntax_error":{"line":"| x","token":"|"}}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.EventLogName), []byte(log), 0600))

	out, err := runCommand(t, "--config", dir, "events", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "log_entries: 2")
	assert.Contains(t, out, "ls: 1")
}

func TestReport_NoConfig(t *testing.T) {
	_, err := runCommand(t, "--config", filepath.Join(t.TempDir(), "missing"), "events", "report")
	assert.Error(t, err)
}
