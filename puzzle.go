package puzzled

// Puzzle couples a topology with a mutable sticker state.
// Turn and TurnAll are the only operations that change the stickers.
type Puzzle struct {
	topo     *Topology
	stickers *Stickers
}

// NewPuzzle creates a solved puzzle for the given topology.
func NewPuzzle(t *Topology) *Puzzle {
	return &Puzzle{
		topo:     t,
		stickers: newStickers(t),
	}
}

// Topology returns the puzzle's topology.
func (p *Puzzle) Topology() *Topology {
	return p.topo
}

// Stickers returns the live sticker state for inspection.
func (p *Puzzle) Stickers() *Stickers {
	return p.stickers
}

// Solved returns true if the puzzle is in the solved state.
func (p *Puzzle) Solved() bool {
	return p.stickers.Solved()
}

// Reset returns the puzzle to the solved state.
func (p *Puzzle) Reset() {
	p.stickers.reset()
}

// Clone creates an independent copy of the puzzle.
func (p *Puzzle) Clone() *Puzzle {
	return &Puzzle{
		topo:     p.topo,
		stickers: p.stickers.Clone(),
	}
}

// Turn rotates the layer of face f by one step of its neighbor cycle.
// Applying it FacePeriod times is the identity. Unknown faces are ignored.
func (p *Puzzle) Turn(f Face) {
	p.apply(p.topo.layer[f])
}

// TurnAll reorients the whole puzzle about face f: the f layer turns
// forward, the opposite layer turns backward and the middle layer follows.
func (p *Puzzle) TurnAll(f Face) {
	if !p.topo.Has(f) {
		return
	}
	p.Turn(f)
	o := p.topo.Opposite(f)
	for i := 0; i < p.topo.period-1; i++ {
		p.Turn(o)
	}
	p.apply(p.topo.middle[f])
}

func (p *Puzzle) apply(plan []swapPair) {
	for _, s := range plan {
		p.stickers.swap(s)
	}
}
