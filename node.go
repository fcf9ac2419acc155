package puzzled

import (
	"slices"
	"strconv"
	"strings"
)

// Node is one element of a parsed move tree. The concrete types are
// *Simple, *Sequence, *Commutator and *Conjugate. Nodes are immutable once
// built.
type Node interface {
	// Count is the repetition count (default 1, 0 is a no-op).
	Count() int
	// Inverted reports whether the node was negated with '/' an odd number of times.
	Inverted() bool
	// String renders the node in move notation.
	String() string

	isNode()
}

// Simple is a single face turn: a layer turn for a lowercase letter or a
// whole-puzzle turn for an uppercase letter.
type Simple struct {
	face     Face
	whole    bool
	count    int
	inverted bool
}

// NewSimple creates a single turn node.
func NewSimple(face Face, whole bool, count int, inverted bool) *Simple {
	return &Simple{face: face, whole: whole, count: count, inverted: inverted}
}

func (*Simple) isNode() {}

// Face returns the turned face.
func (s *Simple) Face() Face { return s.face }

// Whole reports whether this is a whole-puzzle turn.
func (s *Simple) Whole() bool { return s.whole }

func (s *Simple) Count() int     { return s.count }
func (s *Simple) Inverted() bool { return s.inverted }

// Letter returns the notation letter: uppercase for whole-puzzle turns.
func (s *Simple) Letter() byte {
	if s.whole {
		return s.face.Upper()
	}
	return byte(s.face)
}

func (s *Simple) String() string {
	var b strings.Builder
	if s.inverted {
		b.WriteByte('/')
	}
	b.WriteByte(s.Letter())
	writeCount(&b, s.count)
	return b.String()
}

// group holds the fields shared by the bracketed variants.
type group struct {
	children []Node
	count    int
	inverted bool
}

func (g *group) Count() int     { return g.count }
func (g *group) Inverted() bool { return g.inverted }

// Children returns a copy of the child list.
func (g *group) Children() []Node { return slices.Clone(g.children) }

// Len returns the number of children.
func (g *group) Len() int { return len(g.children) }

// Inner renders the children without the surrounding brackets.
func (g *group) Inner() string {
	var b strings.Builder
	for _, c := range g.children {
		b.WriteString(c.String())
	}
	return b.String()
}

func (g *group) format(open, close byte) string {
	var b strings.Builder
	if g.inverted {
		b.WriteByte('/')
	}
	b.WriteByte(open)
	b.WriteString(g.Inner())
	b.WriteByte(close)
	writeCount(&b, g.count)
	return b.String()
}

// Sequence runs its children in order: "(ab)".
// The root of every parsed token is a Sequence.
type Sequence struct{ group }

// Commutator [A B] runs A B A⁻¹ B⁻¹.
type Commutator struct{ group }

// Conjugate {A B} runs A B A⁻¹.
type Conjugate struct{ group }

// NewSequence creates a plain group.
func NewSequence(count int, inverted bool, children ...Node) *Sequence {
	return &Sequence{newGroup(count, inverted, children)}
}

// NewCommutator creates a commutator group.
func NewCommutator(count int, inverted bool, children ...Node) *Commutator {
	return &Commutator{newGroup(count, inverted, children)}
}

// NewConjugate creates a conjugate group.
func NewConjugate(count int, inverted bool, children ...Node) *Conjugate {
	return &Conjugate{newGroup(count, inverted, children)}
}

func newGroup(count int, inverted bool, children []Node) group {
	return group{children: slices.Clone(children), count: count, inverted: inverted}
}

func (*Sequence) isNode()   {}
func (*Commutator) isNode() {}
func (*Conjugate) isNode()  {}

func (s *Sequence) String() string   { return s.format('(', ')') }
func (c *Commutator) String() string { return c.format('[', ']') }
func (c *Conjugate) String() string  { return c.format('{', '}') }

func writeCount(b *strings.Builder, n int) {
	if n != 1 {
		b.WriteString(strconv.Itoa(n))
	}
}

// withCount returns a copy of n with a new repetition count.
func withCount(n Node, count int) Node {
	switch n := n.(type) {
	case *Simple:
		c := *n
		c.count = count
		return &c
	case *Sequence:
		return &Sequence{group{children: n.children, count: count, inverted: n.inverted}}
	case *Commutator:
		return &Commutator{group{children: n.children, count: count, inverted: n.inverted}}
	case *Conjugate:
		return &Conjugate{group{children: n.children, count: count, inverted: n.inverted}}
	}
	return n
}
