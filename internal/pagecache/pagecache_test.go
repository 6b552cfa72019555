package pagecache

import (
	"testing"
	"time"

	"mangadesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry() Entry {
	return Entry{
		Hash:      "abc123",
		Data:      []string{"1-a.png", "2-b.png", "3-c.png"},
		DataSaver: []string{"1-a.jpg", "2-b.jpg", "3-c.jpg"},
	}
}

func TestEntry_Filename(t *testing.T) {
	t.Parallel()

	e := entry()

	name, err := e.Filename(1, false)
	require.NoError(t, err)
	assert.Equal(t, "1-a.png", name)

	name, err = e.Filename(3, true)
	require.NoError(t, err)
	assert.Equal(t, "3-c.jpg", name)

	for _, n := range []int{0, -1, 4} {
		_, err := e.Filename(n, false)
		assert.ErrorIs(t, err, domain.ErrOutOfRange, "page %d", n)
	}
}

func TestCache_ReturnsCopies(t *testing.T) {
	t.Parallel()

	c := New(0, 0)

	in := entry()
	c.Put("ch-1", in)
	in.Data[0] = "mutated-by-producer"

	out, ok := c.Get("ch-1")
	require.True(t, ok)
	assert.Equal(t, "1-a.png", out.Data[0])

	out.DataSaver[0] = "mutated-by-consumer"

	again, ok := c.Get("ch-1")
	require.True(t, ok)
	assert.Equal(t, "1-a.jpg", again.DataSaver[0])
}

func TestCache_OverwriteAndMiss(t *testing.T) {
	t.Parallel()

	c := New(0, 0)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Put("ch-1", entry())
	c.Put("ch-1", Entry{Hash: "new", Data: []string{"x.png"}})

	out, ok := c.Get("ch-1")
	require.True(t, ok)
	assert.Equal(t, "new", out.Hash)
	assert.Equal(t, 1, c.Len())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c := New(2, 0)

	c.Put("a", entry())
	c.Put("b", entry())

	_, _ = c.Get("a")
	c.Put("c", entry())

	assert.True(t, c.Contains("a"))
	assert.False(t, c.Contains("b"))
	assert.True(t, c.Contains("c"))
}

func TestCache_TTL(t *testing.T) {
	t.Parallel()

	c := New(0, 20*time.Millisecond)
	c.Put("a", entry())

	assert.Eventually(t, func() bool {
		_, ok := c.Get("a")
		return !ok
	}, time.Second, 10*time.Millisecond)
}
