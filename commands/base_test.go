package commands

import (
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/josephlewis42/minishell/core/vos"
	"github.com/josephlewis42/minishell/core/vos/vostest"
)

func TestAllBuiltins(t *testing.T) {
	want := []string{"cd", "echo", "env", "exit", "export", "pwd", "unset"}

	var got []string
	for _, entry := range ListBuiltins() {
		t.Run(entry.Name, func(t *testing.T) {
			if entry.Main == nil {
				t.Fatal("nil builtin", entry.Name)
			}
			assert.NotEmpty(t, entry.Short)
		})
		got = append(got, entry.Name)
	}
	assert.Equal(t, want, got)
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Args []string
}

// Run executes each case in an environment holding A, B and C and compares
// the combined output against testdata/golden/<case>.golden.
func (gts goldenTestSuite) Run(t *testing.T, cmd vos.BuiltinFunc) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			out := &vostest.Buffer{}
			env := vos.NewEnvFromList([]string{"A=alpha", "B=bravo", "C=charlie"})
			p := vos.NewProc("minishell", env, t.TempDir(), vos.NewIO(nil, out, out))

			if status := cmd(p, tc.Args); status != 0 {
				t.Fatalf("%v exited with %d: %s", tc.Args, status, out.String())
			}

			g.Assert(t, tn, []byte(out.String()))
		})
	}
}

// run executes a builtin on p and returns its status.
func run(p *vos.Proc, cmd vos.BuiltinFunc, args ...string) int {
	return cmd(p, args)
}
