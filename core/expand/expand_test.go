package expand

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapEnv map[string]string

func (m mapEnv) Getenv(key string) string {
	return m[key]
}

func ExampleEngine_Expand() {
	engine := New(mapEnv{"USER": "root"}, 42)
	fmt.Println(engine.Expand(`hello $USER, status $? costs $5 '$USER'`))

	// Output: hello root, status 42 costs  'root'
}

func TestEngine_Param(t *testing.T) {
	engine := New(mapEnv{"HOME": "/root", "A_1": "x"}, 7)

	cases := []struct {
		text  string
		value string
		n     int
	}{
		{"$HOME", "/root", 5},
		{"$HOME/bin", "/root", 5},
		{"$A_1-", "x", 4},
		{"$?", "7", 2},
		{"$??", "7", 2},
		{"$1abc", "", 2},
		{"$UNSET", "", 6},
		{"$", "$", 1},
		{"$ x", "$", 1},
		{"$-", "$", 1},
		{"$'q'", "$", 1},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			value, n := engine.Param(tc.text, 0)
			assert.Equal(t, tc.value, value)
			assert.Equal(t, tc.n, n)
		})
	}
}

func TestEngine_Expand(t *testing.T) {
	engine := New(mapEnv{"A": "1", "B": "two"}, 0)

	cases := map[string]string{
		"":              "",
		"plain":         "plain",
		"$A$B":          "1two",
		"x$Ay":          "x",
		"${A}":          "${A}",
		"trailing $":    "trailing $",
		`"$A" '$B'`:     `"1" 'two'`,
		"$? and $A.":    "0 and 1.",
		"$$":            "$$",
		"cost: $9.99":   "cost: .99",
		"multi\n$B\n$A": "multi\ntwo\n1",
	}

	for text, want := range cases {
		assert.Equal(t, want, engine.Expand(text), "Expand(%q)", text)
	}
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"A", "_", "a_b", "PATH", "x1"} {
		assert.True(t, ValidName(name), name)
	}
	for _, name := range []string{"", "1a", "a-b", "a=b", "a b", "$A"} {
		assert.False(t, ValidName(name), name)
	}
}
