package puzzled

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistory(t *testing.T) {
	h := NewHistory(0)

	_, ok := h.Pop()
	assert.False(t, ok)
	_, ok = h.Peek()
	assert.False(t, ok)

	h.Push("r")
	h.Push("[ru]")
	assert.Equal(t, 2, h.Len())

	last, ok := h.Peek()
	assert.True(t, ok)
	assert.Equal(t, "[ru]", last)

	last, ok = h.Pop()
	assert.True(t, ok)
	assert.Equal(t, "[ru]", last)
	assert.Equal(t, []string{"r"}, h.Entries())

	h.Clear()
	assert.Equal(t, 0, h.Len())
}

func TestHistoryLimitEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for _, token := range []string{"a", "b", "c", "d", "e"} {
		h.Push(token)
	}
	assert.Equal(t, []string{"c", "d", "e"}, h.Entries())
}

func TestHistoryEntriesIsACopy(t *testing.T) {
	h := NewHistory(0)
	h.Push("r")
	entries := h.Entries()
	entries[0] = "u"

	last, _ := h.Peek()
	assert.Equal(t, "r", last)
}
