package puzzled

import (
	"slices"
	"strings"
)

// Face identifies one face of a puzzle. Face ids are lowercase letters;
// the uppercase letter names the whole-puzzle turn about the same face.
type Face byte

func (f Face) String() string {
	return string(rune(f))
}

// Upper returns the whole-puzzle notation letter for the face.
func (f Face) Upper() byte {
	return byte(f) - 'a' + 'A'
}

func isFaceID(f Face) bool {
	return f >= 'a' && f <= 'z'
}

// Location builds a sticker location name from the faces meeting there:
// one face names a center, two an edge, three a corner.
func Location(faces ...Face) string {
	var b strings.Builder
	b.Grow(len(faces))
	for _, f := range faces {
		b.WriteByte(byte(f))
	}
	return b.String()
}

// swapPair exchanges two sticker slots by index.
type swapPair struct {
	a, b int
}

// Topology is the immutable description of a puzzle: its faces, each face's
// counter-clockwise neighbor cycle and the opposite-face pairing.
//
// The sticker layout and the swap sequences for every layer and middle-layer
// turn are derived once at construction. Any sticker name a turn would touch
// must exist, otherwise construction fails.
type Topology struct {
	faces     []Face
	neighbors map[Face][]Face
	opposites map[Face]Face
	period    int

	names []string
	index map[string]int
	home  []Face

	layer  map[Face][]swapPair
	middle map[Face][]swapPair
}

// NewTopology validates an adjacency table and an opposite-face table and
// builds a Topology. Neighbor lists are counter-clockwise.
// Errors wrap ErrConfiguration.
func NewTopology(adjacency map[Face][]Face, opposites map[Face]Face) (*Topology, error) {
	if len(adjacency) == 0 {
		return nil, configErr("no faces declared")
	}

	faces := make([]Face, 0, len(adjacency))
	for f := range adjacency {
		faces = append(faces, f)
	}
	slices.Sort(faces)

	period := -1
	for _, f := range faces {
		if !isFaceID(f) {
			return nil, configErr("face id %q is not a lowercase letter", byte(f))
		}
		n := len(adjacency[f])
		if period < 0 {
			period = n
		} else if n != period {
			return nil, configErr("face %s has %d neighbors, expected %d", f, n, period)
		}
	}
	if period < 3 {
		return nil, configErr("faces need at least 3 neighbors, got %d", period)
	}

	for _, f := range faces {
		seen := make(map[Face]bool, period)
		for _, n := range adjacency[f] {
			if n == f {
				return nil, configErr("face %s lists itself as a neighbor", f)
			}
			if _, ok := adjacency[n]; !ok {
				return nil, configErr("neighbor %q of face %s is not a declared face", byte(n), f)
			}
			if seen[n] {
				return nil, configErr("face %s lists neighbor %s twice", f, n)
			}
			seen[n] = true
		}
	}

	for f := range opposites {
		if _, ok := adjacency[f]; !ok {
			return nil, configErr("opposite table names undeclared face %q", byte(f))
		}
	}
	for _, f := range faces {
		o, ok := opposites[f]
		switch {
		case !ok:
			return nil, configErr("face %s has no opposite", f)
		case o == f:
			return nil, configErr("face %s is its own opposite", f)
		case adjacency[o] == nil:
			return nil, configErr("opposite %q of face %s is not a declared face", byte(o), f)
		case opposites[o] != f:
			return nil, configErr("opposites are not an involution: %s->%s but %s->%s", f, o, o, opposites[o])
		}
	}

	t := &Topology{
		faces:     faces,
		neighbors: make(map[Face][]Face, len(faces)),
		opposites: make(map[Face]Face, len(faces)),
		period:    period,
	}
	for _, f := range faces {
		t.neighbors[f] = slices.Clone(adjacency[f])
		t.opposites[f] = opposites[f]
	}

	t.buildLocations()
	if err := t.buildPlans(); err != nil {
		return nil, err
	}
	return t, nil
}

// StandardCube returns the 6-face, period-4 topology of a 3x3x3 cube:
// up, right, front, down, left and back.
func StandardCube() *Topology {
	t, err := NewTopology(
		map[Face][]Face{
			'u': {'f', 'r', 'b', 'l'},
			'r': {'u', 'f', 'd', 'b'},
			'f': {'u', 'l', 'd', 'r'},
			'd': {'f', 'l', 'b', 'r'},
			'l': {'u', 'b', 'd', 'f'},
			'b': {'u', 'r', 'd', 'l'},
		},
		map[Face]Face{
			'u': 'd', 'd': 'u',
			'r': 'l', 'l': 'r',
			'f': 'b', 'b': 'f',
		},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// buildLocations derives every center, edge and corner name.
func (t *Topology) buildLocations() {
	t.index = make(map[string]int)
	add := func(name string, f Face) {
		if _, ok := t.index[name]; ok {
			return
		}
		t.index[name] = len(t.names)
		t.names = append(t.names, name)
		t.home = append(t.home, f)
	}
	for _, f := range t.faces {
		add(Location(f), f)
		for i := 0; i < t.period; i++ {
			add(Location(f, t.Neighbor(f, i)), f)
			add(Location(f, t.Neighbor(f, i+1), t.Neighbor(f, i)), f)
		}
	}
}

// buildPlans records the swap sequences of every turn. The order of the
// swaps is significant: later swaps read slots written by earlier ones.
func (t *Topology) buildPlans() error {
	t.layer = make(map[Face][]swapPair, len(t.faces))
	t.middle = make(map[Face][]swapPair, len(t.faces))

	for _, f := range t.faces {
		var layer, middle []swapPair
		for n := 0; n < t.period-1; n++ {
			i := t.Neighbor(f, n)
			j := t.Neighbor(f, n+1)
			k := t.Neighbor(f, n+2)

			steps := [][2]string{
				{Location(f, j, i), Location(f, k, j)},
				{Location(i, f, j), Location(j, f, k)},
				{Location(j, i, f), Location(k, j, f)},
				{Location(f, i), Location(f, j)},
				{Location(i, f), Location(j, f)},
			}
			for _, s := range steps {
				p, err := t.pair(f, s[0], s[1])
				if err != nil {
					return err
				}
				layer = append(layer, p)
			}

			steps = [][2]string{
				{Location(i), Location(j)},
				{Location(i, j), Location(j, k)},
				{Location(j, i), Location(k, j)},
			}
			for _, s := range steps {
				p, err := t.pair(f, s[0], s[1])
				if err != nil {
					return err
				}
				middle = append(middle, p)
			}
		}
		t.layer[f] = layer
		t.middle[f] = middle
	}
	return nil
}

func (t *Topology) pair(f Face, a, b string) (swapPair, error) {
	ia, ok := t.index[a]
	if !ok {
		return swapPair{}, configErr("turning %s needs sticker %q which the adjacency table does not produce", f, a)
	}
	ib, ok := t.index[b]
	if !ok {
		return swapPair{}, configErr("turning %s needs sticker %q which the adjacency table does not produce", f, b)
	}
	return swapPair{a: ia, b: ib}, nil
}

// FacePeriod returns the length of every face's neighbor cycle.
func (t *Topology) FacePeriod() int {
	return t.period
}

// FaceCount returns the number of faces.
func (t *Topology) FaceCount() int {
	return len(t.faces)
}

// Faces returns the face ids in sorted order.
func (t *Topology) Faces() []Face {
	return slices.Clone(t.faces)
}

// Has reports whether f is a face of this topology.
func (t *Topology) Has(f Face) bool {
	_, ok := t.neighbors[f]
	return ok
}

// Neighbor returns the index-th counter-clockwise neighbor of face f.
// The index wraps modulo the face period. Unknown faces return 0.
func (t *Topology) Neighbor(f Face, index int) Face {
	nb, ok := t.neighbors[f]
	if !ok {
		return 0
	}
	index %= t.period
	if index < 0 {
		index += t.period
	}
	return nb[index]
}

// Neighbors returns a copy of the neighbor cycle of face f.
func (t *Topology) Neighbors(f Face) []Face {
	return slices.Clone(t.neighbors[f])
}

// Opposite returns the face opposite f, or 0 for unknown faces.
func (t *Topology) Opposite(f Face) Face {
	return t.opposites[f]
}

// Locations returns every sticker location name in construction order.
func (t *Topology) Locations() []string {
	return slices.Clone(t.names)
}

// StickerCount returns the number of sticker locations.
func (t *Topology) StickerCount() int {
	return len(t.names)
}
