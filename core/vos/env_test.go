package vos

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleNewEnvFromList() {
	env := NewEnvFromList([]string{"A=B", "C=D", "E", "F=G=H", "A=Z"})

	fmt.Printf("Environ(): %q\n", env.Environ())
	fmt.Printf("Getenv(\"F\"): %q\n", env.Getenv("F"))

	// Output: Environ(): ["A=Z" "C=D" "F=G=H"]
	// Getenv("F"): "G=H"
}

func ExampleEnv_Unsetenv() {
	env := NewEnv()
	env.Setenv("A", "B")
	env.Setenv("C", "D")

	fmt.Println("Before:", env.Environ())
	env.Unsetenv("A")
	fmt.Println("After:", env.Environ())

	// Output: Before: [A=B C=D]
	// After: [C=D]
}

func ExampleEnv_LookupEnv() {
	env := NewEnv()
	env.Setenv("A", "B")
	env.Export("X")

	val, ok := env.LookupEnv("A")
	fmt.Println("Existing", "val:", val, "ok:", ok)
	val, ok = env.LookupEnv("B")
	fmt.Println("Missing", "val:", val, "ok:", ok)
	val, ok = env.LookupEnv("X")
	fmt.Println("Exported", "val:", val, "ok:", ok)

	// Output: Existing val: B ok: true
	// Missing val:  ok: false
	// Exported val:  ok: false
}

func TestEnv_Exported(t *testing.T) {
	env := NewEnv()
	env.Setenv("ZED", "1")
	env.Export("ALPHA")
	env.Setenv("ALPHA", "2")
	env.Export("MID")

	assert.Equal(t, []EnvEntry{
		{Key: "ALPHA", Value: "2", Set: true},
		{Key: "MID"},
		{Key: "ZED", Value: "1", Set: true},
	}, env.Exported())

	// Insertion order is kept for Environ.
	assert.Equal(t, []string{"ZED=1", "ALPHA=2"}, env.Environ())
}

func TestEnv_Clone(t *testing.T) {
	env := NewEnvFromList([]string{"A=1"})
	clone := env.Clone()
	clone.Setenv("A", "2")
	clone.Setenv("B", "3")

	assert.Equal(t, []string{"A=1"}, env.Environ())
	assert.Equal(t, []string{"A=2", "B=3"}, clone.Environ())
}

func TestEnv_Clearenv(t *testing.T) {
	env := NewEnvFromList([]string{"A=1", "B=2"})
	env.Clearenv()
	assert.Empty(t, env.Environ())

	env.Setenv("C", "3")
	assert.Equal(t, []string{"C=3"}, env.Environ())
}
