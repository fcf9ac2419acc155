package puzzled

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeAdjacency() map[Face][]Face {
	return map[Face][]Face{
		'u': {'f', 'r', 'b', 'l'},
		'r': {'u', 'f', 'd', 'b'},
		'f': {'u', 'l', 'd', 'r'},
		'd': {'f', 'l', 'b', 'r'},
		'l': {'u', 'b', 'd', 'f'},
		'b': {'u', 'r', 'd', 'l'},
	}
}

func cubeOpposites() map[Face]Face {
	return map[Face]Face{'u': 'd', 'd': 'u', 'r': 'l', 'l': 'r', 'f': 'b', 'b': 'f'}
}

func faces(s string) []Face {
	out := make([]Face, len(s))
	for i := range s {
		out[i] = Face(s[i])
	}
	return out
}

// dodecahedron returns a 12-face, period-5 topology.
func dodecahedron(t *testing.T) *Topology {
	t.Helper()
	adj := map[Face][]Face{
		'a': faces("gfhbc"), 'b': faces("dicah"), 'c': faces("iegab"),
		'd': faces("ljibh"), 'e': faces("jkgci"), 'f': faces("klhag"),
		'g': faces("ekfac"), 'h': faces("fldba"), 'i': faces("djecb"),
		'j': faces("lkeid"), 'k': faces("ejlfg"), 'l': faces("kjdhf"),
	}
	opp := map[Face]Face{
		'a': 'j', 'j': 'a', 'b': 'k', 'k': 'b', 'c': 'l', 'l': 'c',
		'd': 'g', 'g': 'd', 'e': 'h', 'h': 'e', 'f': 'i', 'i': 'f',
	}
	topo, err := NewTopology(adj, opp)
	require.NoError(t, err)
	return topo
}

func TestStandardCube(t *testing.T) {
	topo := StandardCube()

	assert.Equal(t, 6, topo.FaceCount())
	assert.Equal(t, 4, topo.FacePeriod())
	assert.Equal(t, 54, topo.StickerCount())
	assert.Equal(t, faces("bdflru"), topo.Faces())

	assert.Equal(t, Face('r'), topo.Neighbor('u', 1))
	assert.Equal(t, Face('f'), topo.Neighbor('u', 4), "index wraps modulo the period")
	assert.Equal(t, Face('l'), topo.Neighbor('u', -1))
	assert.Equal(t, Face(0), topo.Neighbor('x', 0))
	assert.Equal(t, Face('d'), topo.Opposite('u'))
	assert.True(t, topo.Has('b'))
	assert.False(t, topo.Has('x'))
}

func TestStandardCubeLocations(t *testing.T) {
	topo := StandardCube()
	locs := topo.Locations()

	for _, name := range []string{"u", "f", "fu", "uf", "fur", "urf", "rfu", "dbl"} {
		assert.Contains(t, locs, name)
	}
	// Corners are named counter-clockwise; the clockwise spelling is absent.
	assert.NotContains(t, locs, "fru")

	var centers, edges, corners int
	for _, name := range locs {
		switch len(name) {
		case 1:
			centers++
		case 2:
			edges++
		case 3:
			corners++
		}
	}
	assert.Equal(t, 6, centers)
	assert.Equal(t, 24, edges)
	assert.Equal(t, 24, corners)
}

func TestNewTopologyMirroredCube(t *testing.T) {
	adj := cubeAdjacency()
	for f, nb := range adj {
		mirrored := make([]Face, len(nb))
		for i := range nb {
			mirrored[i] = nb[len(nb)-1-i]
		}
		adj[f] = mirrored
	}

	topo, err := NewTopology(adj, cubeOpposites())
	require.NoError(t, err)

	p := NewPuzzle(topo)
	for _, f := range topo.Faces() {
		p.Turn(f)
		assert.False(t, p.Solved())
		for i := 0; i < 3; i++ {
			p.Turn(f)
		}
		assert.True(t, p.Solved())
	}
}

func TestNewTopologyDodecahedron(t *testing.T) {
	topo := dodecahedron(t)

	assert.Equal(t, 12, topo.FaceCount())
	assert.Equal(t, 5, topo.FacePeriod())
	assert.Equal(t, 132, topo.StickerCount())

	p := NewPuzzle(topo)
	for _, f := range topo.Faces() {
		for i := 0; i < 5; i++ {
			p.Turn(f)
			if i < 4 {
				assert.False(t, p.Solved(), "face %v after %d turns", f, i+1)
			}
		}
		assert.True(t, p.Solved(), "face %v x 5", f)
	}

	for face, n := range p.Stickers().Counts() {
		assert.Equal(t, 11, n, "face %v", face)
	}
}

func TestNewTopologyErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(adj map[Face][]Face, opp map[Face]Face)
	}{
		{"empty", func(adj map[Face][]Face, opp map[Face]Face) {
			for f := range adj {
				delete(adj, f)
			}
		}},
		{"uppercase id", func(adj map[Face][]Face, opp map[Face]Face) {
			adj['X'] = faces("urdl")
		}},
		{"non uniform period", func(adj map[Face][]Face, opp map[Face]Face) {
			adj['u'] = faces("frb")
		}},
		{"self neighbor", func(adj map[Face][]Face, opp map[Face]Face) {
			adj['u'] = faces("urbl")
		}},
		{"undeclared neighbor", func(adj map[Face][]Face, opp map[Face]Face) {
			adj['u'] = faces("frbx")
		}},
		{"duplicate neighbor", func(adj map[Face][]Face, opp map[Face]Face) {
			adj['u'] = faces("frbf")
		}},
		{"missing opposite", func(adj map[Face][]Face, opp map[Face]Face) {
			delete(opp, 'u')
		}},
		{"own opposite", func(adj map[Face][]Face, opp map[Face]Face) {
			opp['u'] = 'u'
		}},
		{"undeclared opposite", func(adj map[Face][]Face, opp map[Face]Face) {
			opp['u'] = 'x'
		}},
		{"not an involution", func(adj map[Face][]Face, opp map[Face]Face) {
			opp['u'] = 'r'
		}},
		{"undeclared face in opposites", func(adj map[Face][]Face, opp map[Face]Face) {
			opp['x'] = 'u'
		}},
		{"sticker missing", func(adj map[Face][]Face, opp map[Face]Face) {
			// Swapping two neighbors breaks the corner cycle.
			adj['u'] = faces("rfbl")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj, opp := cubeAdjacency(), cubeOpposites()
			tt.mutate(adj, opp)
			_, err := NewTopology(adj, opp)
			assert.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestNewTopologyOctahedronFails(t *testing.T) {
	// Consecutive neighbors of an octahedron face do not share an edge,
	// so the corner stickers a turn needs do not exist.
	adj := map[Face][]Face{
		'a': faces("ecb"), 'b': faces("adf"), 'c': faces("agd"), 'd': faces("bch"),
		'e': faces("afg"), 'f': faces("ebh"), 'g': faces("ceh"), 'h': faces("gfd"),
	}
	opp := map[Face]Face{
		'a': 'h', 'h': 'a', 'b': 'g', 'g': 'b', 'c': 'f', 'f': 'c', 'd': 'e', 'e': 'd',
	}
	_, err := NewTopology(adj, opp)
	assert.ErrorIs(t, err, ErrConfiguration)
}
