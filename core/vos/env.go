package vos

import (
	"sort"
	"strings"
	"sync"
)

// splitEnv splits a "key=value" entry. The boolean is false when the entry
// has no "=" at all.
func splitEnv(e string) (key, value string, ok bool) {
	split := strings.SplitN(e, "=", 2)
	if len(split) == 1 {
		return split[0], "", false
	}
	return split[0], split[1], true
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{}
}

// NewEnvFromList creates a new environment from entries in the form returned
// by os.Environ. Later duplicates win, entries without "=" are exported with
// no value.
func NewEnvFromList(environ []string) *Env {
	out := &Env{}

	for _, e := range environ {
		key, value, ok := splitEnv(e)
		if key == "" {
			continue
		}
		if ok {
			out.Setenv(key, value)
		} else {
			out.Export(key)
		}
	}

	return out
}

type envValue struct {
	value string
	// set is false for names that were exported without a value.
	set bool
}

// Env is an insertion ordered environment with unique keys.
type Env struct {
	rw   sync.RWMutex
	keys []string
	vals map[string]envValue
}

func (e *Env) put(key string, val envValue) {
	if e.vals == nil {
		e.vals = make(map[string]envValue)
	}
	if _, ok := e.vals[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.vals[key] = val
}

// Setenv sets the value of the environment variable named by the key.
func (e *Env) Setenv(key, value string) {
	e.rw.Lock()
	defer e.rw.Unlock()

	e.put(key, envValue{value: value, set: true})
}

// Export marks key as exported. It keeps the current value if there is one.
func (e *Env) Export(key string) {
	e.rw.Lock()
	defer e.rw.Unlock()

	if _, ok := e.vals[key]; ok {
		return
	}
	e.put(key, envValue{})
}

// Unsetenv removes a single environment variable.
func (e *Env) Unsetenv(key string) {
	e.rw.Lock()
	defer e.rw.Unlock()

	if _, ok := e.vals[key]; !ok {
		return
	}
	delete(e.vals, key)
	for i, k := range e.keys {
		if k == key {
			e.keys = append(e.keys[:i], e.keys[i+1:]...)
			break
		}
	}
}

// LookupEnv retrieves the value of the environment variable named by the key.
// Names exported without a value are reported as missing.
func (e *Env) LookupEnv(key string) (string, bool) {
	e.rw.RLock()
	defer e.rw.RUnlock()

	val, ok := e.vals[key]
	if !ok || !val.set {
		return "", false
	}
	return val.value, true
}

// Getenv retrieves the value of the environment variable named by the key.
// It returns the empty string if the variable is not present.
func (e *Env) Getenv(key string) string {
	val, _ := e.LookupEnv(key)
	return val
}

// Environ returns a copy of the set variables in the form "key=value", in
// the order they were first defined.
func (e *Env) Environ() []string {
	e.rw.RLock()
	defer e.rw.RUnlock()

	env := make([]string, 0, len(e.keys))
	for _, k := range e.keys {
		if val := e.vals[k]; val.set {
			env = append(env, k+"="+val.value)
		}
	}
	return env
}

// EnvEntry is a single exported name.
type EnvEntry struct {
	Key   string
	Value string
	Set   bool
}

// Exported lists every exported name, including those without a value,
// sorted by key.
func (e *Env) Exported() []EnvEntry {
	e.rw.RLock()
	defer e.rw.RUnlock()

	out := make([]EnvEntry, 0, len(e.keys))
	for _, k := range e.keys {
		val := e.vals[k]
		out = append(out, EnvEntry{Key: k, Value: val.value, Set: val.set})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Clone returns an independent copy of the environment.
func (e *Env) Clone() *Env {
	e.rw.RLock()
	defer e.rw.RUnlock()

	out := &Env{
		keys: append([]string(nil), e.keys...),
		vals: make(map[string]envValue, len(e.vals)),
	}
	for k, v := range e.vals {
		out.vals[k] = v
	}
	return out
}

// Clearenv deletes all environment variables.
func (e *Env) Clearenv() {
	e.rw.Lock()
	defer e.rw.Unlock()
	e.keys = nil
	e.vals = nil
}
