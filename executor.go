package puzzled

import "math"

// Execute applies a move tree to the puzzle and returns the flattened trace
// of atomic turns, e.g. ["r", "u", "/r", "/u"]. With reverse set the exact
// inverse of the tree is applied.
//
// The tree is only read; executing the same tree any number of times is safe.
func (p *Puzzle) Execute(n Node, reverse bool) []string {
	e := &executor{puzzle: p}
	r := 0
	if reverse {
		r = 1
	}
	e.run(n, r)
	return e.trace
}

// executor walks a move tree. The reverse flag r is 0 or 1 and combines
// with each node's own inversion.
type executor struct {
	puzzle *Puzzle
	trace  []string
}

func parity(n Node, r int) int {
	p := r
	if n.Inverted() {
		p++
	}
	return p % 2
}

func (e *executor) run(n Node, r int) {
	switch n := n.(type) {
	case *Simple:
		e.simple(n, r)

	case *Sequence:
		p := parity(n, r)
		for c := 0; c < n.count; c++ {
			if p == 0 {
				e.forward(n.children, 0)
			} else {
				e.backward(n.children, 1)
			}
		}

	case *Commutator:
		// A B /A /B, and B A /B /A for the inverse
		p := parity(n, r)
		for c := 0; c < n.count; c++ {
			if p == 0 {
				e.forward(n.children, 0)
				e.forward(n.children, 1)
			} else {
				e.backward(n.children, 0)
				e.backward(n.children, 1)
			}
		}

	case *Conjugate:
		// The last child is conjugated by everything before it.
		if len(n.children) == 0 {
			return
		}
		prefix := n.children[:len(n.children)-1]
		p := parity(n, r)
		for c := 0; c < n.count; c++ {
			if p == 0 {
				e.forward(n.children, 0)
				e.backward(prefix, 1)
			} else {
				e.forward(prefix, 0)
				e.backward(n.children, 1)
			}
		}
	}
}

func (e *executor) forward(nodes []Node, r int) {
	for _, n := range nodes {
		e.run(n, r)
	}
}

func (e *executor) backward(nodes []Node, r int) {
	for i := len(nodes) - 1; i >= 0; i-- {
		e.run(nodes[i], r)
	}
}

// simple applies one face turn count times. The inverse of a turn is the
// same turn repeated FacePeriod-1 times.
func (e *executor) simple(n *Simple, r int) {
	turn := e.puzzle.Turn
	if n.whole {
		turn = e.puzzle.TurnAll
	}

	times := 1
	name := string(n.Letter())
	if parity(n, r) == 1 {
		times = e.puzzle.topo.period - 1
		name = "/" + name
	}

	for c := 0; c < n.count; c++ {
		for t := 0; t < times; t++ {
			turn(n.face)
		}
		e.trace = append(e.trace, name)
	}
}

// Turns returns the number of atomic turns executing n produces, the length
// of its trace. The result saturates at math.MaxInt.
func Turns(n Node) int {
	switch n := n.(type) {
	case *Simple:
		return n.count
	case *Sequence:
		return satMul(n.count, sumTurns(n.children))
	case *Commutator:
		return satMul(n.count, satMul(2, sumTurns(n.children)))
	case *Conjugate:
		if len(n.children) == 0 {
			return 0
		}
		all := sumTurns(n.children)
		prefix := sumTurns(n.children[:len(n.children)-1])
		return satMul(n.count, satAdd(all, prefix))
	}
	return 0
}

func sumTurns(nodes []Node) int {
	total := 0
	for _, n := range nodes {
		total = satAdd(total, Turns(n))
	}
	return total
}

func satAdd(a, b int) int {
	if a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

func satMul(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}
