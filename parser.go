package puzzled

import "fmt"

// Parser turns move notation into move trees for one topology.
//
// Notation:
//
//	r        layer turn of face r
//	R        whole-puzzle turn about face r
//	/r       inverse turn; '/' also negates a bracketed group
//	r3       repetition count after a face letter or closing bracket
//	(ru)     plain sequence
//	[ru]     commutator  r u /r /u
//	{ru}     conjugate   r u /r
//
// Groups nest arbitrarily up to the configured depth. Whitespace separates
// moves and is otherwise ignored.
type Parser struct {
	topo   *Topology
	limits Limits
}

// NewParser creates a parser for the faces of t.
// Zero limit fields take the defaults.
func NewParser(t *Topology, limits Limits) *Parser {
	return &Parser{topo: t, limits: limits.withDefaults()}
}

// Limits returns the limits enforced by the parser.
func (p *Parser) Limits() Limits {
	return p.limits
}

// parseFrame is an in-progress group on the parse stack.
type parseFrame struct {
	open     byte
	inverted bool
	pos      int
	children []Node
}

func (f *parseFrame) node() Node {
	g := group{children: f.children, count: 1, inverted: f.inverted}
	switch f.open {
	case '[':
		return &Commutator{g}
	case '{':
		return &Conjugate{g}
	default:
		return &Sequence{g}
	}
}

// Parse parses a complete token. The result is always a root Sequence with
// count 1, even for a single move. Errors are *NotationError values that
// wrap ErrMalformedNotation or ErrResourceExhausted.
func (p *Parser) Parse(s string) (*Sequence, error) {
	stack := []*parseFrame{{pos: -1}}
	negations := 0
	negPos := -1
	countable := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		top := stack[len(stack)-1]

		if negations > 0 && c != '/' && !isOpen(c) && !p.isFaceLetter(c) {
			return nil, malformed(s, negPos, "'/' must be followed by a face letter or an open bracket")
		}

		switch {
		case c == '/':
			if negations == 0 {
				negPos = i
			}
			negations++
			countable = false

		case isSpace(c):
			countable = false

		case isDigit(c):
			if !countable {
				return nil, malformed(s, i, "repetition count must follow a face letter or a closing bracket")
			}
			n := 0
			j := i
			for ; j < len(s) && isDigit(s[j]); j++ {
				n = n*10 + int(s[j]-'0')
				if n > p.limits.MaxRepeat {
					return nil, exhausted(s, i, fmt.Sprintf("repetition count above %d", p.limits.MaxRepeat))
				}
			}
			last := len(top.children) - 1
			top.children[last] = withCount(top.children[last], n)
			i = j - 1
			countable = false

		case isOpen(c):
			if len(stack) > p.limits.MaxDepth {
				return nil, exhausted(s, i, fmt.Sprintf("groups nested deeper than %d", p.limits.MaxDepth))
			}
			stack = append(stack, &parseFrame{open: c, inverted: negations%2 == 1, pos: i})
			negations = 0
			countable = false

		case isClose(c):
			if len(stack) == 1 {
				return nil, malformed(s, i, fmt.Sprintf("unmatched %q", c))
			}
			if top.open != openerOf(c) {
				return nil, malformed(s, i, fmt.Sprintf("%q cannot close %q", c, top.open))
			}
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, top.node())
			countable = true

		default:
			f, whole, ok := p.faceOf(c)
			if !ok {
				return nil, malformed(s, i, fmt.Sprintf("unexpected character %q", c))
			}
			top.children = append(top.children, &Simple{
				face:     f,
				whole:    whole,
				count:    1,
				inverted: negations%2 == 1,
			})
			negations = 0
			countable = true
		}
	}

	if negations > 0 {
		return nil, malformed(s, negPos, "'/' at end of input")
	}
	if len(stack) > 1 {
		top := stack[len(stack)-1]
		return nil, malformed(s, top.pos, fmt.Sprintf("unclosed %q", top.open))
	}

	root := &Sequence{group{children: stack[0].children, count: 1}}
	if Turns(root) > p.limits.MaxTurns {
		return nil, exhausted(s, -1, fmt.Sprintf("expands to more than %d turns", p.limits.MaxTurns))
	}
	return root, nil
}

// faceOf resolves a notation letter to a face and whether it is a
// whole-puzzle turn.
func (p *Parser) faceOf(c byte) (Face, bool, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return Face(c), false, p.topo.Has(Face(c))
	case c >= 'A' && c <= 'Z':
		f := Face(c - 'A' + 'a')
		return f, true, p.topo.Has(f)
	}
	return 0, false, false
}

func (p *Parser) isFaceLetter(c byte) bool {
	_, _, ok := p.faceOf(c)
	return ok
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isOpen(c byte) bool  { return c == '(' || c == '[' || c == '{' }
func isClose(c byte) bool { return c == ')' || c == ']' || c == '}' }

func openerOf(c byte) byte {
	switch c {
	case ')':
		return '('
	case ']':
		return '['
	case '}':
		return '{'
	}
	return 0
}
