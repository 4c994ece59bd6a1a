package mregexp

// Arena cost of each production. The compiler emits exactly these nodes.
const (
	costStart       = 1
	costAtom        = 1
	costQuantifier  = 2 // Quantifier + Start of its body
	costGroup       = 2 // Capture + Start of its body
	costAlternation = 3 // Alternation + Start of each branch
)

// sizer counts the nodes a token stream compiles to without building anything.
type sizer struct {
	nodes    int
	captures int
}

func (s *sizer) atom(tok Token) {
	s.nodes += costAtom
	if tok.Type == TokenClass {
		s.nodes += len(tok.Ranges)
	}
}

func (s *sizer) quantify(Token) { s.nodes += costQuantifier }

func (s *sizer) openGroup(Token) {
	s.nodes += costGroup
	s.captures++
}

func (s *sizer) closeGroup(Token) {}

func (s *sizer) alternate(Token) { s.nodes += costAlternation }

// arenaSize returns the number of nodes and capture groups the expression
// compiles to, or the error the compiler would report.
func arenaSize(expr string, tokens []Token) (nodes, captures int, err error) {
	s := sizer{nodes: costStart}
	if err := walk(expr, tokens, &s); err != nil {
		return 0, 0, err
	}
	return s.nodes, s.captures, nil
}
