package puzzled

import (
	"fmt"
	"slices"
)

// Stickers maps every sticker location of a topology to the face id
// currently shown there. The location set is fixed by the topology; only
// the turn engine rearranges values.
type Stickers struct {
	topo   *Topology
	values []Face
}

// newStickers creates the solved state: every location shows its own face.
func newStickers(t *Topology) *Stickers {
	return &Stickers{
		topo:   t,
		values: slices.Clone(t.home),
	}
}

// Get returns the face id shown at a location.
// Unknown locations return ErrUnknownSticker.
func (s *Stickers) Get(location string) (Face, error) {
	i, ok := s.topo.index[location]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownSticker, location)
	}
	return s.values[i], nil
}

// swap exchanges the values of two slots.
func (s *Stickers) swap(p swapPair) {
	s.values[p.a], s.values[p.b] = s.values[p.b], s.values[p.a]
}

// Len returns the number of sticker locations.
func (s *Stickers) Len() int {
	return len(s.values)
}

// Locations returns every location name.
func (s *Stickers) Locations() []string {
	return s.topo.Locations()
}

// Counts returns how many locations show each face id.
// The result is the same for every reachable state.
func (s *Stickers) Counts() map[Face]int {
	counts := make(map[Face]int, len(s.topo.faces))
	for _, v := range s.values {
		counts[v]++
	}
	return counts
}

// Snapshot returns a copy of the full location to face mapping.
func (s *Stickers) Snapshot() map[string]Face {
	m := make(map[string]Face, len(s.values))
	for i, name := range s.topo.names {
		m[name] = s.values[i]
	}
	return m
}

// Clone creates a deep copy sharing the same topology.
func (s *Stickers) Clone() *Stickers {
	return &Stickers{
		topo:   s.topo,
		values: slices.Clone(s.values),
	}
}

// Equal reports whether two states over the same topology match.
// States built from different *Topology values never compare equal, even
// when the shapes agree; compare Snapshot for those.
func (s *Stickers) Equal(o *Stickers) bool {
	if o == nil || s.topo != o.topo {
		return false
	}
	return slices.Equal(s.values, o.values)
}

// Solved returns true if every location shows its own face.
func (s *Stickers) Solved() bool {
	return slices.Equal(s.values, s.topo.home)
}

// reset restores the solved state in place.
func (s *Stickers) reset() {
	copy(s.values, s.topo.home)
}
