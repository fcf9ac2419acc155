package puzzled

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, p *Puzzle, token string, reverse bool) []string {
	t.Helper()
	root, err := NewParser(p.Topology(), Limits{}).Parse(token)
	require.NoError(t, err, token)
	return p.Execute(root, reverse)
}

func TestExecuteTrace(t *testing.T) {
	tests := []struct {
		token string
		want  []string
	}{
		{"r", []string{"r"}},
		{"/r", []string{"/r"}},
		{"r2", []string{"r", "r"}},
		{"R", []string{"R"}},
		{"(ru)2", []string{"r", "u", "r", "u"}},
		{"[ru]", []string{"r", "u", "/r", "/u"}},
		{"/[ru]", []string{"u", "r", "/u", "/r"}},
		{"[r/u]", []string{"r", "/u", "/r", "u"}},
		{"{fr}", []string{"f", "r", "/f"}},
		{"{rud}", []string{"r", "u", "d", "/u", "/r"}},
		{"/{rud}", []string{"r", "u", "/d", "/u", "/r"}},
		{"{[ru]f}", []string{"r", "u", "/r", "/u", "f", "u", "r", "/u", "/r"}},
		{"r0", nil},
		{"{}", nil},
		{"[]", nil},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			p := NewPuzzle(StandardCube())
			assert.Equal(t, tt.want, execute(t, p, tt.token, false))
		})
	}
}

func TestExecuteReverseTrace(t *testing.T) {
	p := NewPuzzle(StandardCube())
	assert.Equal(t, []string{"u", "r", "/u", "/r"}, execute(t, p, "[ru]", true))
	assert.Equal(t, []string{"f", "/r", "/f"}, execute(t, p, "{fr}", true))
	assert.Equal(t, []string{"/u", "/r"}, execute(t, p, "ru", true))
}

func TestExecuteReverseRestoresState(t *testing.T) {
	tokens := []string{
		"r",
		"/R2",
		"ru/f",
		"[ru]2",
		"/[r{uf}]3",
		"{[ru]d(fl)3}",
		"/{[ru]d(fl)3}",
		"[ru(fd)]",
		"{r/uD}2",
		"(U[rf]/{bl})2R",
	}
	for _, token := range tokens {
		t.Run(token, func(t *testing.T) {
			p := NewPuzzle(StandardCube())
			execute(t, p, "fLdB", false)
			before := p.Stickers().Clone()

			execute(t, p, token, false)
			execute(t, p, token, true)
			assert.True(t, p.Stickers().Equal(before))
		})
	}
}

func TestExecuteOrders(t *testing.T) {
	tests := []struct {
		token string
		order int
	}{
		{"r", 4},
		{"R", 4},
		{"[ru]", 6},
		{"[rf]", 6},
		{"{fr}", 4},
		{"ru", 105},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			p := NewPuzzle(StandardCube())
			for i := 1; i <= tt.order; i++ {
				execute(t, p, tt.token, false)
				if i < tt.order {
					require.False(t, p.Solved(), "solved after %d", i)
				}
			}
			assert.True(t, p.Solved())
		})
	}
}

func TestCommutatorFourTimesIsNotSolved(t *testing.T) {
	p := NewPuzzle(StandardCube())
	execute(t, p, "[ru]4", false)
	assert.False(t, p.Solved())
	execute(t, p, "[ru]2", false)
	assert.True(t, p.Solved())
}

func TestExecuteTreeIsReusable(t *testing.T) {
	root, err := newTestParser().Parse("{[ru]f}2")
	require.NoError(t, err)

	a := NewPuzzle(StandardCube())
	b := NewPuzzle(StandardCube())
	first := a.Execute(root, false)
	a.Execute(root, false)
	b.Execute(root, false)
	second := b.Execute(root, false)

	assert.Equal(t, first, second)
	assert.Equal(t, "({[ru]f}2)", root.String())
}

func TestTurnsMatchesTrace(t *testing.T) {
	for _, token := range []string{"r", "r3", "[ru]", "{rud}", "/{[ru]f}2", "((r2)3)4", "{}", "[r{uf}](dl)0"} {
		root, err := newTestParser().Parse(token)
		require.NoError(t, err)

		p := NewPuzzle(StandardCube())
		assert.Equal(t, len(p.Execute(root, false)), Turns(root), token)
	}
}

func TestExecuteWholeTurnInverse(t *testing.T) {
	p := NewPuzzle(StandardCube())
	execute(t, p, "/U", false)

	q := NewPuzzle(p.Topology())
	execute(t, q, "U3", false)

	assert.True(t, p.Stickers().Equal(q.Stickers()))
}

func TestExecuteDodecahedron(t *testing.T) {
	p := NewPuzzle(dodecahedron(t))

	trace := execute(t, p, "/a", false)
	assert.Equal(t, []string{"/a"}, trace)

	q := NewPuzzle(p.Topology())
	execute(t, q, "a4", false)
	assert.True(t, p.Stickers().Equal(q.Stickers()))

	execute(t, p, "a", false)
	assert.True(t, p.Solved())

	for i := 0; i < 6; i++ {
		execute(t, p, "[ab]", false)
	}
	assert.True(t, p.Solved())
}
