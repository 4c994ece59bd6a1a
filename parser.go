package mregexp

import (
	"strconv"

	"github.com/golang/glog"
)

// Parser splits an expression into tokens and drives a builder through the
// grammar. The arena sizer and the compiler are both builders, so they see the
// exact same sequence of productions.
type Parser struct {
	input  string
	pos    int
	tokens []Token
}

func NewParser(input string) *Parser {
	return &Parser{input: input}
}

// Tokens lexes the whole expression. The input must be valid UTF-8.
func (p *Parser) Tokens() ([]Token, error) {
	if p.tokens != nil {
		return p.tokens, nil
	}
	tokens := make([]Token, 0, len(p.input))
	for p.pos < len(p.input) {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	p.tokens = tokens
	return tokens, nil
}

func (p *Parser) next() (Token, error) {
	start := p.pos
	ch := p.consume()
	tok := Token{Start: start}
	switch ch {
	case '.':
		tok.Type = TokenDot
	case '^':
		tok.Type = TokenCaret
	case '$':
		tok.Type = TokenDollar
	case '|':
		tok.Type = TokenPipe
	case '(':
		tok.Type = TokenLParen
	case ')':
		tok.Type = TokenRParen
	case '*':
		tok.Type = TokenStar
	case '+':
		tok.Type = TokenPlus
	case '?':
		tok.Type = TokenQuestion
	case '{':
		min, max, err := p.parseRepeat(start)
		if err != nil {
			return tok, err
		}
		tok.Type, tok.Min, tok.Max = TokenRepeat, min, max
	case '[':
		ranges, negated, err := p.parseCharClass(start)
		if err != nil {
			return tok, err
		}
		tok.Type, tok.Ranges, tok.Negated = TokenClass, ranges, negated
	case '\\':
		if err := p.parseEscape(&tok); err != nil {
			return tok, err
		}
	default:
		tok.Type, tok.Val = TokenChar, ch
	}
	tok.End = p.pos
	return tok, nil
}

func (p *Parser) parseEscape(tok *Token) error {
	if p.pos >= len(p.input) {
		return newError(UnexpectedEol, p.input, tok.Start)
	}
	esc := p.consume()
	switch esc {
	case 'd', 'D':
		tok.Type, tok.Ranges, tok.Negated = TokenClass, digitRanges, esc == 'D'
	case 'w', 'W':
		tok.Type, tok.Ranges, tok.Negated = TokenClass, wordRanges, esc == 'W'
	case 's', 'S':
		tok.Type, tok.Ranges, tok.Negated = TokenClass, spaceRanges, esc == 'S'
	default:
		tok.Type, tok.Val = TokenChar, controlEscape(esc)
	}
	return nil
}

// controlEscape maps the letter after a backslash to the character it stands for.
func controlEscape(r rune) rune {
	switch r {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	}
	return r
}

// parseRepeat reads {m}, {m,}, {,n}, {m,n} or {,}. The brace is already consumed.
func (p *Parser) parseRepeat(start int) (min, max int, err error) {
	bad := newError(InvalidComplexQuant, p.input, start)

	minStr := p.digits()
	if p.pos >= len(p.input) {
		return 0, 0, bad
	}
	if p.peek() == '}' {
		p.consume()
		if minStr == "" {
			return 0, 0, bad
		}
		min, err = strconv.Atoi(minStr)
		if err != nil {
			return 0, 0, bad
		}
		return min, min, nil
	}
	if p.consume() != ',' {
		return 0, 0, bad
	}
	maxStr := p.digits()
	if p.pos >= len(p.input) || p.consume() != '}' {
		return 0, 0, bad
	}

	if minStr != "" {
		if min, err = strconv.Atoi(minStr); err != nil {
			return 0, 0, bad
		}
	}
	max = -1
	if maxStr != "" {
		if max, err = strconv.Atoi(maxStr); err != nil {
			return 0, 0, bad
		}
		if max < min {
			return 0, 0, bad
		}
	}
	return min, max, nil
}

func (p *Parser) digits() string {
	from := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	return p.input[from:p.pos]
}

// parseCharClass reads the members of [...]. The bracket is already consumed.
func (p *Parser) parseCharClass(start int) ([]RuneRange, bool, error) {
	negated := false
	if p.pos < len(p.input) && p.peek() == '^' {
		p.consume()
		negated = true
	}

	var ranges []RuneRange
	for {
		if p.pos >= len(p.input) {
			return nil, false, newError(InvalidComplexClass, p.input, start)
		}
		if p.peek() == ']' {
			p.consume()
			return ranges, negated, nil
		}

		lo, err := p.classChar()
		if err != nil {
			return nil, false, err
		}
		hi := lo

		// A '-' right before ']' is a literal member, not a range.
		if p.peek() == '-' && p.pos+1 < len(p.input) && p.input[p.pos+1] != ']' {
			p.consume()
			if hi, err = p.classChar(); err != nil {
				return nil, false, err
			}
			if hi < lo {
				return nil, false, newError(InvalidComplexClass, p.input, start)
			}
		}
		ranges = append(ranges, RuneRange{Lo: lo, Hi: hi})
	}
}

func (p *Parser) classChar() (rune, error) {
	at := p.pos
	r := p.consume()
	if r != '\\' {
		return r, nil
	}
	if p.pos >= len(p.input) {
		return 0, newError(UnexpectedEol, p.input, at)
	}
	return controlEscape(p.consume()), nil
}

// builder receives the productions of the grammar in pattern order.
type builder interface {
	atom(tok Token)
	quantify(tok Token)
	openGroup(tok Token)
	closeGroup(tok Token)
	alternate(tok Token)
}

// walk checks the structure of tokens and replays it into b. Every
// structural error is raised here so that no builder sees a broken pattern.
func walk(expr string, tokens []Token, b builder) error {
	type level struct {
		atoms int // atoms in the current alternative
		open  Token
	}
	stack := []level{{}}

	for _, tok := range tokens {
		top := &stack[len(stack)-1]
		switch {
		case tok.isQuantifier():
			if top.atoms == 0 {
				return newError(EarlyQuantifier, expr, tok.Start)
			}
			b.quantify(tok)

		case tok.Type == TokenLParen:
			b.openGroup(tok)
			stack = append(stack, level{open: tok})

		case tok.Type == TokenRParen:
			if len(stack) == 1 {
				glog.V(2).Infof("mregexp: unmatched ) at offset %d in %q taken literally", tok.Start, expr)
				b.atom(Token{Type: TokenChar, Val: ')', Start: tok.Start, End: tok.End})
				top.atoms++
				continue
			}
			stack = stack[:len(stack)-1]
			b.closeGroup(tok)
			stack[len(stack)-1].atoms++

		case tok.Type == TokenPipe:
			b.alternate(tok)
			top.atoms = 0

		default:
			b.atom(tok)
			top.atoms++
		}
	}

	if len(stack) > 1 {
		return newError(UnclosedSubexpression, expr, stack[len(stack)-1].open.Start)
	}
	return nil
}

// Helpers

func (p *Parser) peek() rune {
	return utf8Peek(p.input, p.pos)
}

func (p *Parser) consume() rune {
	r, w := utf8Decode(p.input, p.pos)
	p.pos += w
	return r
}
