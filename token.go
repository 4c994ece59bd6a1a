package mregexp

type TokenType int

const (
	TokenEOF      TokenType = iota
	TokenChar               // Literal character
	TokenDot                // .
	TokenPipe               // |
	TokenLParen             // (
	TokenRParen             // )
	TokenPlus               // +
	TokenStar               // *
	TokenQuestion           // ?
	TokenRepeat             // {m,n}
	TokenCaret              // ^
	TokenDollar             // $
	TokenClass              // [...] or \d \w \s and their negations
)

// Token is one unit of the pattern grammar. Start and End are byte offsets
// into the expression.
type Token struct {
	Type     TokenType
	Val      rune        // TokenChar
	Min, Max int         // TokenRepeat, Max -1 for unbounded
	Ranges   []RuneRange // TokenClass
	Negated  bool        // TokenClass
	Start    int
	End      int
}

func (t Token) isQuantifier() bool {
	switch t.Type {
	case TokenPlus, TokenStar, TokenQuestion, TokenRepeat:
		return true
	}
	return false
}

// bounds returns the repetition bounds of a quantifier token.
func (t Token) bounds() (min, max int) {
	switch t.Type {
	case TokenStar:
		return 0, -1
	case TokenPlus:
		return 1, -1
	case TokenQuestion:
		return 0, 1
	}
	return t.Min, t.Max
}
