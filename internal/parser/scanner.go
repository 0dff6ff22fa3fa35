package parser

import (
	"unicode"
	"unicode/utf8"
)

// tokenKind classifies what the scanner saw at a given offset.
type tokenKind int

const (
	tokenText tokenKind = iota
	tokenObjectStart
	tokenArrayStart
	tokenContainerEnd
	tokenColon
	tokenSeparator
)

// token is a single scanner event. Text tokens carry one rune, either from
// inside a string literal or a non-whitespace rune outside one.
type token struct {
	kind   tokenKind
	text   rune
	offset int
}

// scanner splits the input into structural tokens and literal text. It only
// tracks whether it is inside a string literal; escapes are not interpreted,
// so every double quote toggles the string state.
type scanner struct {
	input    string
	pos      int
	inString bool
	// stringStart is the offset of the quote that opened the current string
	stringStart int
}

func newScanner(input string) *scanner {
	return &scanner{input: input}
}

// next returns the next token, or false at end of input.
func (s *scanner) next() (token, bool) {
	for s.pos < len(s.input) {
		r, size := utf8.DecodeRuneInString(s.input[s.pos:])
		offset := s.pos
		s.pos += size

		if r == '"' {
			s.inString = !s.inString
			if s.inString {
				s.stringStart = offset
			}
			continue
		}
		if s.inString {
			return token{kind: tokenText, text: r, offset: offset}, true
		}

		switch r {
		case '{':
			return token{kind: tokenObjectStart, offset: offset}, true
		case '[':
			return token{kind: tokenArrayStart, offset: offset}, true
		case '}', ']':
			return token{kind: tokenContainerEnd, text: r, offset: offset}, true
		case ':':
			return token{kind: tokenColon, offset: offset}, true
		case ',', '\n':
			return token{kind: tokenSeparator, text: r, offset: offset}, true
		}

		if unicode.IsSpace(r) {
			continue
		}
		return token{kind: tokenText, text: r, offset: offset}, true
	}
	return token{}, false
}
