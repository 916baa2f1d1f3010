// Package scanner implements the lexer: it turns a source file into a
// stream of lang/token.Token values, synthesizing INDENT/DEDENT/NEWLINE
// tokens from the source's indentation the way Python's tokenizer does.
//
// The scanner is adapted from the original_source lexer.rs state machine
// (states Indentation/Normal/Dedent/End), restructured into the long-lived
// *Scanner-with-New/Next idiom used by this toolchain's other stages.
package scanner

import (
	gotoken "go/token"

	"github.com/dolthub/swiss"

	"toyc/lang/token"
)

type state int

const (
	stateIndentation state = iota
	stateNormal
	stateDedent
	stateEnd
)

// Scanner tokenizes a single source file for the parser to consume. A
// Scanner is not restartable: Next returns token.END forever once the
// input is exhausted.
type Scanner struct {
	file *gotoken.File
	src  []byte

	names    *swiss.Map[string, token.NameID]
	nextName token.NameID

	off   int // current read offset into src
	state state

	indentStack []int
	parenDepth  int

	// indentLevel is carried from the Indentation state into the Dedent
	// state, mirroring the two-state handoff in the original lexer
	// (LexerState::Indentation computes indent_level then switches to
	// LexerState::Dedent, which consumes it). indentBegin is not read or
	// written by the scanner.
	indentBegin int
	indentLevel int
}

// New creates a Scanner over src, which must have exactly file.Size() bytes.
// file is used only to record line-start offsets (via AddLine) so that
// later diagnostics can report line:col positions; the scanner itself
// works purely in byte offsets.
func New(file *gotoken.File, src []byte) *Scanner {
	s := &Scanner{
		file:        file,
		src:         src,
		state:       stateIndentation,
		indentStack: []int{0},
	}
	s.names = swiss.NewMap[string, token.NameID](uint32(len(token.ReservedNames)))
	for id, name := range token.ReservedNames {
		s.names.Put(name, token.NameID(id))
	}
	s.nextName = token.NameID(len(token.ReservedNames))
	return s
}

// Next returns the next token and its value.
func (s *Scanner) Next() (token.Token, token.Value) {
	switch s.state {
	case stateIndentation:
		return s.nextIndentation()
	case stateDedent:
		return s.nextDedent()
	case stateEnd:
		return s.nextEnd()
	default:
		return s.nextNormal()
	}
}

func (s *Scanner) nextEnd() (token.Token, token.Value) {
	if len(s.indentStack) > 1 {
		s.indentStack = s.indentStack[:len(s.indentStack)-1]
		return token.DEDENT, token.Value{Range: s.point()}
	}
	return token.END, token.Value{Range: s.point()}
}

func (s *Scanner) point() token.Range {
	p := s.file.Pos(s.off)
	return token.Range{Start: p, End: p}
}

func (s *Scanner) rangeFrom(begin int) token.Range {
	return token.Range{Start: s.file.Pos(begin), End: s.file.Pos(s.off)}
}

func (s *Scanner) nextIndentation() (token.Token, token.Value) {
	level := 0
	begin := s.off
	for s.off < len(s.src) {
		switch s.src[s.off] {
		case '\n':
			s.file.AddLine(s.off + 1)
			level = 0
			s.off++
			begin = s.off
		case ' ':
			level++
			s.off++
		case '\t':
			level += 8 - level%8
			s.off++
		default:
			goto doneCounting
		}
	}
doneCounting:

	if s.off == len(s.src) {
		s.state = stateEnd
		return s.nextEnd()
	}

	top := s.indentStack[len(s.indentStack)-1]
	switch {
	case level < top:
		s.state = stateDedent
		s.indentLevel = level
		return s.nextDedent()
	case level == top:
		s.state = stateNormal
		return s.nextNormal()
	default:
		s.indentStack = append(s.indentStack, level)
		s.state = stateNormal
		return token.INDENT, token.Value{Range: s.rangeFrom(begin)}
	}
}

func (s *Scanner) nextDedent() (token.Token, token.Value) {
	top := s.indentStack[len(s.indentStack)-1]
	switch {
	case s.indentLevel < top:
		s.indentStack = s.indentStack[:len(s.indentStack)-1]
		return token.DEDENT, token.Value{Range: s.point()}
	case s.indentLevel == top:
		s.state = stateNormal
		return s.nextNormal()
	default:
		// Overshoot: the new indentation doesn't line up with any enclosing
		// level. Recover by adopting it as a level of its own so lexing can
		// continue; the parser surfaces the UNKNOWN_DEDENT as a diagnostic.
		s.indentStack = append(s.indentStack, s.indentLevel)
		s.state = stateNormal
		return token.UNKNOWN_DEDENT, token.Value{Range: s.point()}
	}
}

func (s *Scanner) nextNormal() (token.Token, token.Value) {
	for s.off < len(s.src) && (s.src[s.off] == ' ' || s.src[s.off] == '\t') {
		s.off++
	}

	if s.off == len(s.src) {
		s.state = stateEnd
		return s.nextEnd()
	}

	begin := s.off
	c := s.src[s.off]

	switch {
	case isLetter(c):
		return s.scanIdent(begin)
	case isDigit(c):
		return s.scanNumber(begin)
	}

	s.off++
	switch c {
	case '\n':
		s.file.AddLine(s.off)
		if s.parenDepth == 0 {
			s.state = stateIndentation
			return token.NEWLINE, token.Value{Range: s.rangeFrom(begin)}
		}
		return s.nextNormal()
	case '(':
		s.parenDepth++
		return token.LPAREN, token.Value{Range: s.rangeFrom(begin)}
	case ')':
		if s.parenDepth > 0 {
			s.parenDepth--
		}
		return token.RPAREN, token.Value{Range: s.rangeFrom(begin)}
	case '+':
		return token.PLUS, token.Value{Range: s.rangeFrom(begin)}
	case '.':
		return token.DOT, token.Value{Range: s.rangeFrom(begin)}
	case ',':
		return token.COMMA, token.Value{Range: s.rangeFrom(begin)}
	case ':':
		return token.COLON, token.Value{Range: s.rangeFrom(begin)}
	case '=':
		return token.EQUAL, token.Value{Range: s.rangeFrom(begin)}
	case '-':
		if s.off < len(s.src) && s.src[s.off] == '>' {
			s.off++
			return token.ARROW, token.Value{Range: s.rangeFrom(begin)}
		}
		return token.DASH, token.Value{Range: s.rangeFrom(begin)}
	default:
		return token.UNKNOWN, token.Value{Raw: string(c), Range: s.rangeFrom(begin)}
	}
}

func (s *Scanner) scanIdent(begin int) (token.Token, token.Value) {
	for s.off < len(s.src) && (isLetter(s.src[s.off]) || isDigit(s.src[s.off])) {
		s.off++
	}
	lit := string(s.src[begin:s.off])
	rng := s.rangeFrom(begin)

	if tok := token.LookupKw(lit); tok != token.IDENT {
		return tok, token.Value{Raw: lit, Range: rng}
	}

	id, ok := s.names.Get(lit)
	if !ok {
		id = s.nextName
		s.nextName++
		s.names.Put(lit, id)
	}
	return token.IDENT, token.Value{Raw: lit, Range: rng, Name: id}
}

func (s *Scanner) scanNumber(begin int) (token.Token, token.Value) {
	for s.off < len(s.src) && isDigit(s.src[s.off]) {
		s.off++
	}

	if s.off < len(s.src) && s.src[s.off] == '.' {
		s.off++
		for s.off < len(s.src) && isDigit(s.src[s.off]) {
			s.off++
		}
		lit := string(s.src[begin:s.off])
		f := parseFloat(lit)
		return token.FLOAT, token.Value{Raw: lit, Range: s.rangeFrom(begin), Float: f}
	}

	lit := string(s.src[begin:s.off])
	return token.INTEGER, token.Value{Raw: lit, Range: s.rangeFrom(begin), Int: parseUint(lit)}
}

func isLetter(c byte) bool {
	return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
