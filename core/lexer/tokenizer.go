// Package lexer turns a command line into tokens.
//
// Quotes, parameter expansion and word adjacency are resolved here: the
// lexemes of `'foo'"bar"$baz` touch each other and become a single word.
package lexer

import (
	"fmt"
	"strings"

	"github.com/josephlewis42/minishell/core/expand"
)

// SyntaxError reports a token the shell cannot parse.
type SyntaxError struct {
	Token string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error near unexpected token `%s'", e.Token)
}

// IncompleteError reports input that ended inside a quoted span. The caller
// may append a continuation line and tokenize again.
type IncompleteError struct {
	Quote byte
	Pos   int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("unexpected EOF while looking for matching `%c'", e.Quote)
}

// Expander expands the parameter reference starting at the '$' in text[pos],
// returning its value and the number of bytes it spans.
type Expander interface {
	Param(text string, pos int) (value string, n int)
}

// Tokenize splits line into tokens. Single-quoted spans are copied verbatim,
// double-quoted spans and unquoted text have parameters expanded by ex, and
// the word after a heredoc operator is kept unexpanded as its delimiter.
func Tokenize(line string, ex Expander) ([]Token, error) {
	if ex == nil {
		ex = expand.New(nil, 0)
	}
	t := &tokenizer{line: line, ex: ex}
	if err := t.run(); err != nil {
		return nil, err
	}
	return t.tokens, nil
}

type word struct {
	start     int
	text      []byte
	marks     []Quote
	hasQuotes bool
	// expanded is set once an unquoted expansion was added.
	expanded bool
	// literal is set once unquoted source text was added.
	literal   bool
	delimiter bool
}

func (w *word) add(s string, q Quote) {
	w.text = append(w.text, s...)
	for i := 0; i < len(s); i++ {
		w.marks = append(w.marks, q)
	}
}

type tokenizer struct {
	line   string
	pos    int
	ex     Expander
	tokens []Token

	// cur is the word being accumulated, nil between words.
	cur *word

	// wantDelimiter is set after "<<" until the delimiter word opens.
	wantDelimiter bool
}

func (t *tokenizer) run() error {
	for t.pos < len(t.line) {
		c := t.line[t.pos]
		switch {
		case IsBlank(c):
			t.closeWord()
			t.pos++
		case IsOperator(c):
			t.closeWord()
			if err := t.operator(); err != nil {
				return err
			}
		case IsQuote(c):
			if err := t.quoted(c); err != nil {
				return err
			}
		case c == '$' && !t.inDelimiter():
			t.expansion()
		default:
			t.literal()
		}
	}
	t.closeWord()

	if t.wantDelimiter {
		return &SyntaxError{Token: "newline"}
	}
	return nil
}

func (t *tokenizer) inDelimiter() bool {
	return t.wantDelimiter || (t.cur != nil && t.cur.delimiter)
}

// wordAt returns the word a lexeme starting at pos belongs to. A lexeme that
// touches the current word is merged into it, anything else opens a new word.
func (t *tokenizer) wordAt(pos int) *word {
	if t.cur == nil || !TouchesLeft(t.line, pos) {
		t.closeWord()
		t.cur = &word{start: pos, delimiter: t.wantDelimiter}
		t.wantDelimiter = false
	}
	return t.cur
}

func (t *tokenizer) closeWord() {
	w := t.cur
	if w == nil {
		return
	}
	t.cur = nil

	t.tokens = append(t.tokens, Token{
		Kind:      Word,
		Text:      string(w.text),
		Marks:     w.marks,
		Raw:       t.line[w.start:t.pos],
		Pos:       w.start,
		HasQuotes: w.hasQuotes,
		Delimiter: w.delimiter,
		Vanished:  w.expanded && !w.literal && !w.hasQuotes && len(w.text) == 0,
	})
}

func (t *tokenizer) operator() error {
	start := t.pos
	c := t.line[start]
	doubled := start+1 < len(t.line) && t.line[start+1] == c

	kind, n := Pipe, 1
	switch {
	case c == '<' && doubled:
		kind, n = Heredoc, 2
	case c == '>' && doubled:
		kind, n = AppendRedirect, 2
	case c == '<':
		kind = InputRedirect
	case c == '>':
		kind = OutputRedirect
	}

	text := t.line[start : start+n]
	if t.wantDelimiter {
		return &SyntaxError{Token: text}
	}

	t.tokens = append(t.tokens, Token{Kind: kind, Text: text, Raw: text, Pos: start})
	t.pos += n
	if kind == Heredoc {
		t.wantDelimiter = true
	}
	return nil
}

func (t *tokenizer) quoted(c byte) error {
	start := t.pos
	w := t.wordAt(start)

	closing := strings.IndexByte(t.line[start+1:], c)
	if closing < 0 {
		if w.delimiter {
			return &SyntaxError{Token: t.line[w.start:]}
		}
		return &IncompleteError{Quote: c, Pos: start}
	}
	end := start + 1 + closing
	body := t.line[start+1 : end]

	q := quoteOf(c)
	w.hasQuotes = true
	if q == DoubleQuoted && !w.delimiter {
		t.addExpanded(w, body, q)
	} else {
		w.add(body, q)
	}
	t.pos = end + 1
	return nil
}

// addExpanded adds text to w with every parameter reference expanded.
func (t *tokenizer) addExpanded(w *word, text string, q Quote) {
	for i := 0; i < len(text); {
		j := strings.IndexByte(text[i:], '$')
		if j < 0 {
			w.add(text[i:], q)
			return
		}
		w.add(text[i:i+j], q)
		i += j

		value, n := t.ex.Param(text, i)
		w.add(value, q)
		i += n
	}
}

func (t *tokenizer) expansion() {
	start := t.pos
	w := t.wordAt(start)

	// $"..." and $'...' drop the dollar.
	if start+1 < len(t.line) && IsQuote(t.line[start+1]) {
		t.pos++
		return
	}

	value, n := t.ex.Param(t.line, start)
	if n == 1 {
		w.add(value, Unquoted)
		w.literal = true
	} else {
		w.add(value, Unquoted)
		w.expanded = true
	}
	t.pos += n
}

func (t *tokenizer) literal() {
	start := t.pos
	dollarIsText := t.inDelimiter()

	end := start
	for end < len(t.line) {
		c := t.line[end]
		if IsSeparator(c) || IsQuote(c) || (c == '$' && !dollarIsText) {
			break
		}
		end++
	}

	w := t.wordAt(start)
	w.add(t.line[start:end], Unquoted)
	w.literal = true
	t.pos = end
}
