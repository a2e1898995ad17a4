package logger

import (
	"encoding/json"
	"sort"
	"strconv"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries int        `json:"unknown_log_entries,omitempty"`

	RunCommand     RunCommandReport     `json:"run_command_report"`
	UnknownCommand UnknownCommandReport `json:"unknown_command_report"`
	SyntaxError    SyntaxErrorReport    `json:"syntax_error_report"`
	Interrupt      InterruptReport      `json:"interrupt_report"`
	Panic          PanicReport          `json:"panic_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch {
	case le.RunCommand != nil:
		r.RunCommand.update(le.RunCommand)
	case le.UnknownCommand != nil:
		r.UnknownCommand.update(le.UnknownCommand)
	case le.SyntaxError != nil:
		r.SyntaxError.update(le.SyntaxError)
	case le.Interrupt != nil:
		r.Interrupt.update(le.Interrupt)
	case le.Panic != nil:
		r.Panic.update(le.Panic)
	default:
		r.InvalidEntries++
	}
}

type RunCommandReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Exit statuses of the commands
	Statuses StrCounter `json:"statuses"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	r.Statuses.Increment(strconv.Itoa(rc.Status))
}

type UnknownCommandReport struct {
	Commands *PathCounter `json:"commands"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if r.Commands == nil {
		r.Commands = NewPathCounter("command", "status", "error")
	}

	name := ""
	if len(logEntry.Command) > 0 {
		name = logEntry.Command[0]
	}
	r.Commands.Increment(name, strconv.Itoa(logEntry.Status), logEntry.ErrorMessage)
}

type SyntaxErrorReport struct {
	Tokens StrCounter `json:"tokens"`
}

func (r *SyntaxErrorReport) update(se *SyntaxError) {
	r.Tokens.Increment(se.Token)
}

type InterruptReport struct {
	During StrCounter `json:"during"`
}

func (r *InterruptReport) update(i *Interrupt) {
	r.During.Increment(i.During)
}

type PanicReport struct {
	Contexts []string `json:"contexts"`
}

func (r *PanicReport) update(p *Panic) {
	r.Contexts = append(r.Contexts, p.Context)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts tuples of strings.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implements a custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
