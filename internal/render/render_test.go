package render

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/puzzled"
)

func plainRenderer(topo *puzzled.Topology, logger *slog.Logger) *Renderer {
	palette := NewPalette(map[puzzled.Face]string{'u': "white", 'f': "#C41E3A"})
	return New(topo, palette, lipgloss.NewRenderer(io.Discard), logger)
}

func TestRenderSolvedNet(t *testing.T) {
	s := puzzled.New()
	r := plainRenderer(s.Topology(), nil)

	want := strings.Join([]string{
		"       u u u ",
		"       u u u ",
		"       u u u ",
		"l l l  f f f  r r r  b b b ",
		"l l l  f f f  r r r  b b b ",
		"l l l  f f f  r r r  b b b ",
		"       d d d ",
		"       d d d ",
		"       d d d ",
	}, "\n")
	assert.True(t, r.IsNet())
	assert.Equal(t, want, r.Render(s.Puzzle().Stickers()))
}

func TestRenderAfterTurn(t *testing.T) {
	s := puzzled.New()
	require.NoError(t, s.Type("r"))
	r := plainRenderer(s.Topology(), nil)

	want := strings.Join([]string{
		"       u u f ",
		"       u u f ",
		"       u u f ",
		"l l l  f f d  r r r  u b b ",
		"l l l  f f d  r r r  u b b ",
		"l l l  f f d  r r r  u b b ",
		"       d d b ",
		"       d d b ",
		"       d d b ",
	}, "\n")
	assert.Equal(t, want, r.Render(s.Puzzle().Stickers()))
}

func TestRenderUnknownStickers(t *testing.T) {
	adj := map[puzzled.Face][]puzzled.Face{
		'u': []puzzled.Face("lbrf"),
		'r': []puzzled.Face("bdfu"),
		'f': []puzzled.Face("rdlu"),
		'd': []puzzled.Face("rblf"),
		'l': []puzzled.Face("fdbu"),
		'b': []puzzled.Face("ldru"),
	}
	opp := map[puzzled.Face]puzzled.Face{'u': 'd', 'd': 'u', 'r': 'l', 'l': 'r', 'f': 'b', 'b': 'f'}
	topo, err := puzzled.NewTopology(adj, opp)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := plainRenderer(topo, logger)
	s := puzzled.New(puzzled.WithTopology(topo))

	out := r.Render(s.Puzzle().Stickers())
	assert.Contains(t, out, "? ")

	warnings := strings.Count(buf.String(), "cannot draw sticker")
	assert.Positive(t, warnings)

	r.Render(s.Puzzle().Stickers())
	assert.Equal(t, warnings, strings.Count(buf.String(), "cannot draw sticker"), "each location is reported once")
}

func TestRenderListing(t *testing.T) {
	adj := map[puzzled.Face][]puzzled.Face{
		'a': []puzzled.Face("gfhbc"), 'b': []puzzled.Face("dicah"), 'c': []puzzled.Face("iegab"),
		'd': []puzzled.Face("ljibh"), 'e': []puzzled.Face("jkgci"), 'f': []puzzled.Face("klhag"),
		'g': []puzzled.Face("ekfac"), 'h': []puzzled.Face("fldba"), 'i': []puzzled.Face("djecb"),
		'j': []puzzled.Face("lkeid"), 'k': []puzzled.Face("ejlfg"), 'l': []puzzled.Face("kjdhf"),
	}
	opp := map[puzzled.Face]puzzled.Face{
		'a': 'j', 'j': 'a', 'b': 'k', 'k': 'b', 'c': 'l', 'l': 'c',
		'd': 'g', 'g': 'd', 'e': 'h', 'h': 'e', 'f': 'i', 'i': 'f',
	}
	topo, err := puzzled.NewTopology(adj, opp)
	require.NoError(t, err)

	r := plainRenderer(topo, nil)
	assert.False(t, r.IsNet())

	lines := strings.Split(r.Render(puzzled.NewPuzzle(topo).Stickers()), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "a: "+strings.Repeat("a ", 11), lines[0])
	assert.Equal(t, r.Width(), len(lines[0]))
	assert.Equal(t, 12, r.Height())

	f, ok := r.FaceAt(5, 3)
	assert.True(t, ok)
	assert.Equal(t, puzzled.Face('d'), f)
	_, ok = r.FaceAt(1, 3)
	assert.False(t, ok)
}

func TestFaceAt(t *testing.T) {
	r := plainRenderer(puzzled.StandardCube(), nil)

	tests := []struct {
		x, y int
		want puzzled.Face
		ok   bool
	}{
		{0, 0, 0, false},
		{7, 0, 'u', true},
		{12, 2, 'u', true},
		{13, 0, 0, false},
		{0, 3, 'l', true},
		{6, 4, 0, false},
		{8, 4, 'f', true},
		{15, 5, 'r', true},
		{26, 3, 'b', true},
		{27, 3, 0, false},
		{9, 8, 'd', true},
		{9, 9, 0, false},
		{-1, 0, 0, false},
	}
	for _, tt := range tests {
		f, ok := r.FaceAt(tt.x, tt.y)
		assert.Equal(t, tt.ok, ok, "(%d,%d)", tt.x, tt.y)
		assert.Equal(t, tt.want, f, "(%d,%d)", tt.x, tt.y)
	}
	assert.Equal(t, 27, r.Width())
	assert.Equal(t, 9, r.Height())
}

func TestPalette(t *testing.T) {
	p := NewPalette(map[puzzled.Face]string{'u': "White", 'f': "#123456", 'r': "205"})
	assert.Equal(t, lipgloss.Color("#FFFFFF"), p.Color('u'))
	assert.Equal(t, lipgloss.Color("#123456"), p.Color('f'))
	assert.Equal(t, lipgloss.Color("205"), p.Color('r'))
	assert.Equal(t, Unknown, p.Color('x'))

	r := plainRenderer(puzzled.StandardCube(), nil)
	r.SetPalette(p)
	assert.Equal(t, lipgloss.Color("#123456"), r.palette.Color('f'))
}
