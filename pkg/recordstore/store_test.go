package recordstore

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestCollection_MissingFileIsEmpty(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	items, err := NewCollection[item](s, "items").All()
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestCollection_UpdatePersists(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	c := NewCollection[item](s, "items")

	err = c.Update(func(items []item) ([]item, error) {
		return append(items, item{ID: "a", Count: 1}, item{ID: "b", Count: 2}), nil
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "items.json"))
	require.NoError(t, err)

	reopened, err := Open(dir)
	require.NoError(t, err)
	items, err := NewCollection[item](reopened, "items").All()
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "a", Count: 1}, {ID: "b", Count: 2}}, items)
}

func TestCollection_UpdateErrorWritesNothing(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	c := NewCollection[item](s, "items")
	boom := errors.New("boom")

	err = c.Update(func(items []item) ([]item, error) {
		return append(items, item{ID: "a"}), boom
	})
	assert.ErrorIs(t, err, boom)

	items, err := c.All()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCollection_FindFilterRemove(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	c := NewCollection[item](s, "items")
	require.NoError(t, c.Update(func(items []item) ([]item, error) {
		return []item{{ID: "a", Count: 1}, {ID: "b", Count: 2}, {ID: "c", Count: 3}}, nil
	}))

	found, ok, err := c.Find(func(i item) bool { return i.ID == "b" })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, found.Count)

	_, ok, err = c.Find(func(i item) bool { return i.ID == "z" })
	require.NoError(t, err)
	assert.False(t, ok)

	odd, err := c.Filter(func(i item) bool { return i.Count%2 == 1 })
	require.NoError(t, err)
	assert.Len(t, odd, 2)

	removed, err := c.Remove(func(i item) bool { return i.Count > 1 })
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	left, err := c.All()
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "a", Count: 1}}, left)
}

func TestCollection_ConcurrentUpdatesAreNotLost(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// a fresh handle per writer still shares the collection lock
			c := NewCollection[item](s, "counter")
			err := c.Update(func(items []item) ([]item, error) {
				if len(items) == 0 {
					items = append(items, item{ID: "n"})
				}
				items[0].Count++
				return items, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := NewCollection[item](s, "counter").All()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, writers, items[0].Count)
}
