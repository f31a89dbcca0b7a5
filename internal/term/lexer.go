package term

import (
	"strconv"
	"unicode"
)

// TokenType defines the token types the term-expression lexer produces.
type TokenType int

const (
	TokenIdent  TokenType = iota // bare atom or operator symbol
	TokenString                  // double-quoted atom
	TokenHole                    // :[name] pattern variable
	TokenLParen                  // '('
	TokenRParen                  // ')'
	TokenComma                   // ','
	TokenEOF                     // end of input
)

// Token is a single lexical token with its value and starting position.
type Token struct {
	Type     TokenType
	Value    string
	Position int
}

// Lexer scans a term expression like and(:[x], or(:[x], "Apache-2.0"))
// and produces tokens for the parser.
type Lexer struct {
	input    string
	position int
	tokens   []Token
}

// NewLexer returns a new Lexer over the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, tokens: make([]Token, 0)}
}

// Tokenize processes the whole input and returns the token list, always
// terminated by an EOF token. Malformed holes and unterminated strings are
// reported as a ParseError.
func (l *Lexer) Tokenize() ([]Token, error) {
	for l.position < len(l.input) {
		startPos := l.position
		switch c := l.input[l.position]; {
		case c == ':':
			if err := l.lexHole(startPos); err != nil {
				return nil, err
			}
		case c == '"':
			if err := l.lexString(startPos); err != nil {
				return nil, err
			}
		case c == '(':
			l.addToken(TokenLParen, "(", startPos)
			l.position++
		case c == ')':
			l.addToken(TokenRParen, ")", startPos)
			l.position++
		case c == ',':
			l.addToken(TokenComma, ",", startPos)
			l.position++
		case isSpaceByte(c):
			l.position++
		case isAtomChar(c):
			l.lexIdent(startPos)
		default:
			return nil, &ParseError{Input: l.input, Position: startPos, Message: "unexpected character " + strconv.QuoteRune(rune(c))}
		}
	}
	l.addToken(TokenEOF, "", l.position)
	return l.tokens, nil
}

// lexHole scans a :[name] hole. The position is on the ':'.
func (l *Lexer) lexHole(startPos int) error {
	if l.position+1 >= len(l.input) || l.input[l.position+1] != '[' {
		return &ParseError{Input: l.input, Position: startPos, Message: "expected '[' after ':'"}
	}
	for i := l.position + 2; i < len(l.input); i++ {
		c := l.input[i]
		if c == ']' {
			if i == l.position+2 {
				return &ParseError{Input: l.input, Position: startPos, Message: "empty variable name"}
			}
			l.addToken(TokenHole, l.input[l.position+2:i], startPos)
			l.position = i + 1
			return nil
		}
		if !isAtomChar(c) {
			return &ParseError{Input: l.input, Position: i, Message: "invalid character in variable name"}
		}
	}
	return &ParseError{Input: l.input, Position: startPos, Message: "unterminated variable"}
}

// lexString scans a double-quoted atom, honoring Go escape sequences.
func (l *Lexer) lexString(startPos int) error {
	for i := l.position + 1; i < len(l.input); i++ {
		switch l.input[i] {
		case '\\':
			i++
		case '"':
			value, err := strconv.Unquote(l.input[l.position : i+1])
			if err != nil {
				return &ParseError{Input: l.input, Position: startPos, Message: "invalid string literal"}
			}
			l.addToken(TokenString, value, startPos)
			l.position = i + 1
			return nil
		}
	}
	return &ParseError{Input: l.input, Position: startPos, Message: "unterminated string literal"}
}

// lexIdent scans consecutive atom characters into one identifier token.
func (l *Lexer) lexIdent(startPos int) {
	start := l.position
	for l.position < len(l.input) && isAtomChar(l.input[l.position]) {
		l.position++
	}
	l.addToken(TokenIdent, l.input[start:l.position], startPos)
}

func (l *Lexer) addToken(tokenType TokenType, value string, pos int) {
	l.tokens = append(l.tokens, Token{Type: tokenType, Value: value, Position: pos})
}

// isAtomChar reports whether c may appear in a bare atom, an operator
// symbol, or a variable name. Dots and hyphens are allowed so version
// components and license ids stay bare; values with other characters
// (CURIEs, empty strings) must be double-quoted.
func isAtomChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-' || c == '.':
		return true
	}
	return false
}

func isSpaceByte(c byte) bool {
	return unicode.IsSpace(rune(c))
}
