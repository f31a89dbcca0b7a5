package term

import "fmt"

// ParseError reports a malformed term expression with the offending
// position in the input.
type ParseError struct {
	Input    string
	Position int
	Message  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed term at offset %d: %s", e.Position, e.Message)
}

// Parser consumes tokens produced by the lexer and builds a Term.
//
// The grammar is the functional notation used by rule definitions and the
// CLI: operator nodes as symbol(child, ...), atoms as bare words, numbers,
// or double-quoted strings, and pattern variables in hole syntax :[name].
type Parser struct {
	input   string
	tokens  []Token
	current int
}

// Parse parses a complete term expression. Trailing input after the term is
// an error.
func Parse(input string) (Term, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{input: input, tokens: tokens}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, &ParseError{Input: input, Position: tok.Position, Message: "unexpected trailing input"}
	}
	return t, nil
}

// MustParse is Parse for statically known expressions, panicking on error.
// Built-in rule tables use it; never feed it caller input.
func MustParse(input string) Term {
	t, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return t
}

func (p *Parser) parseTerm() (Term, error) {
	tok := p.peek()
	switch tok.Type {
	case TokenHole:
		p.current++
		return Var{Name: tok.Value}, nil
	case TokenString:
		p.current++
		return Atom{Value: tok.Value}, nil
	case TokenIdent:
		p.current++
		if p.peek().Type != TokenLParen {
			return Atom{Value: tok.Value}, nil
		}
		return p.parseArgs(tok.Value)
	case TokenEOF:
		return nil, &ParseError{Input: p.input, Position: tok.Position, Message: "unexpected end of input"}
	default:
		return nil, &ParseError{Input: p.input, Position: tok.Position, Message: "unexpected token " + tok.Value}
	}
}

// parseArgs parses the parenthesized child list of an operator node. The
// opening paren is the current token.
func (p *Parser) parseArgs(symbol string) (Term, error) {
	p.current++ // consume '('
	op := Op{Symbol: symbol}
	if p.peek().Type == TokenRParen {
		p.current++
		return op, nil
	}
	for {
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		op.Args = append(op.Args, arg)
		switch tok := p.peek(); tok.Type {
		case TokenComma:
			p.current++
		case TokenRParen:
			p.current++
			return op, nil
		default:
			return nil, &ParseError{Input: p.input, Position: tok.Position, Message: "expected ',' or ')'"}
		}
	}
}

func (p *Parser) peek() Token {
	if p.current >= len(p.tokens) {
		return Token{Type: TokenEOF, Position: len(p.input)}
	}
	return p.tokens[p.current]
}
