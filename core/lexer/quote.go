package lexer

// Quote records how a byte of a word was quoted in the source.
type Quote uint8

const (
	Unquoted Quote = iota
	SingleQuoted
	DoubleQuoted
)

func (q Quote) String() string {
	switch q {
	case SingleQuoted:
		return "single"
	case DoubleQuoted:
		return "double"
	default:
		return "none"
	}
}

// quoteOf returns the Quote opened by c.
func quoteOf(c byte) Quote {
	switch c {
	case '\'':
		return SingleQuoted
	case '"':
		return DoubleQuoted
	default:
		return Unquoted
	}
}

// IsBlank reports whether c separates words.
func IsBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}

// IsOperator reports whether c starts an operator.
func IsOperator(c byte) bool {
	return c == '|' || c == '<' || c == '>'
}

// IsQuote reports whether c opens a quoted span.
func IsQuote(c byte) bool {
	return c == '\'' || c == '"'
}

// IsSeparator reports whether c ends a word when it appears unquoted.
func IsSeparator(c byte) bool {
	return IsBlank(c) || IsOperator(c)
}

// TouchesLeft reports whether the lexeme starting at pos is glued to the
// byte before it, with no blank or operator in between.
func TouchesLeft(line string, pos int) bool {
	return pos > 0 && pos <= len(line) && !IsSeparator(line[pos-1])
}

// TouchesRight reports whether the lexeme ending just before end is glued
// to the byte after it.
func TouchesRight(line string, end int) bool {
	return end >= 0 && end < len(line) && !IsSeparator(line[end])
}
