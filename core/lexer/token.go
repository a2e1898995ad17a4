package lexer

import "fmt"

// Kind classifies a token.
type Kind int

const (
	Word Kind = iota
	Pipe
	InputRedirect
	OutputRedirect
	AppendRedirect
	Heredoc
)

var kindNames = map[Kind]string{
	Word:           "word",
	Pipe:           "|",
	InputRedirect:  "<",
	OutputRedirect: ">",
	AppendRedirect: ">>",
	Heredoc:        "<<",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsRedirect reports whether the kind is one of the redirection operators.
func (k Kind) IsRedirect() bool {
	switch k {
	case InputRedirect, OutputRedirect, AppendRedirect, Heredoc:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the kind is anything but a word.
func (k Kind) IsOperator() bool {
	return k != Word
}

// Token is a lexical unit of a command line.
type Token struct {
	Kind Kind

	// Text is the word after quote removal and expansion. Operators carry
	// their literal spelling.
	Text string

	// Marks holds how each byte of Text was quoted; len(Marks) == len(Text)
	// for words and is zero for operators.
	Marks []Quote

	// Raw is the source text of the token.
	Raw string

	// Pos is the byte offset of the token in the line.
	Pos int

	// HasQuotes is set when the word contained a quoted span, even an empty
	// one such as "".
	HasQuotes bool

	// Delimiter is set on the word that follows a heredoc operator. Such a
	// word is never expanded.
	Delimiter bool

	// Vanished is set on a word made only of unquoted expansions that
	// produced nothing. It takes no place in argv.
	Vanished bool
}

// Quoted reports whether the token contained a quoted span.
func (t Token) Quoted() bool {
	return t.HasQuotes
}

// Expand reports whether the body of a heredoc with this delimiter should be
// expanded: only when no part of the delimiter was quoted.
func (t Token) Expand() bool {
	return t.Delimiter && !t.Quoted()
}

func (t Token) String() string {
	if t.Kind == Word {
		return fmt.Sprintf("word(%q)", t.Text)
	}
	return t.Kind.String()
}
