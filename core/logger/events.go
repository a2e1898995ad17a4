package logger

// LogEntry is one line of the event log. Exactly one event field is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	RunCommand     *RunCommand     `json:"run_command,omitempty"`
	UnknownCommand *UnknownCommand `json:"unknown_command,omitempty"`
	SyntaxError    *SyntaxError    `json:"syntax_error,omitempty"`
	Interrupt      *Interrupt      `json:"interrupt,omitempty"`
	Panic          *Panic          `json:"panic,omitempty"`
}

// Event is a payload of a LogEntry.
type Event interface {
	attach(le *LogEntry)
}

// RunCommand is logged for each command that ran.
type RunCommand struct {
	Command []string `json:"command"`
	Status  int      `json:"status"`
}

// UnknownCommand is logged when a command could not be found or executed.
type UnknownCommand struct {
	Command      []string `json:"command"`
	Status       int      `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
}

// SyntaxError is logged for input that failed to parse.
type SyntaxError struct {
	Line  string `json:"line"`
	Token string `json:"token"`
}

// Interrupt is logged when the user interrupts a prompt or heredoc.
type Interrupt struct {
	During string `json:"during"`
}

// Panic is logged when a command cycle panics.
type Panic struct {
	Context    string `json:"context"`
	Stacktrace string `json:"stacktrace,omitempty"`
}

func (e *RunCommand) attach(le *LogEntry)     { le.RunCommand = e }
func (e *UnknownCommand) attach(le *LogEntry) { le.UnknownCommand = e }
func (e *SyntaxError) attach(le *LogEntry)    { le.SyntaxError = e }
func (e *Interrupt) attach(le *LogEntry)      { le.Interrupt = e }
func (e *Panic) attach(le *LogEntry)          { le.Panic = e }
