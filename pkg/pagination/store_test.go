package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
)

func TestStoreRegisterValidation(t *testing.T) {
	store := NewStore()

	assert.Error(t, store.Register("", []Item{"a"}, 5))
	assert.Error(t, store.Register("tools", []Item{"a"}, 0))
	assert.Error(t, store.Register("tools", []Item{"a"}, -2))

	require.NoError(t, store.Register("tools", []Item{"a"}, 5))
	assert.Error(t, store.Register("tools", []Item{"b"}, 5), "duplicate registration")
}

func TestStoreSnapshotIsolation(t *testing.T) {
	store := NewStore()
	items := []Item{"a", "b", "c"}
	require.NoError(t, store.Register("tools", items, 2))

	// Mutating the caller's slice must not affect served pages
	items[0] = "mutated"

	page, err := store.Slice("tools", 0)
	require.NoError(t, err)
	assert.Equal(t, []Item{"a", "b"}, page)
}

func TestStoreSliceBounds(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Register("tools", []Item{"a", "b", "c"}, 2))

	page, err := store.Slice("tools", 2)
	require.NoError(t, err)
	assert.Equal(t, []Item{"c"}, page)

	page, err = store.Slice("tools", 3)
	require.NoError(t, err)
	assert.Empty(t, page)

	page, err = store.Slice("tools", 50)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestStoreSliceNegativeOffset(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Register("tools", []Item{"a"}, 2))

	_, err := store.Slice("tools", -1)
	require.Error(t, err)
	assert.True(t, mcperrors.IsInvalidOffset(err))
}

func TestStoreUnknownCollection(t *testing.T) {
	store := NewStore()

	_, err := store.Slice("missing", 0)
	assert.True(t, mcperrors.IsUnknownCollection(err))

	_, err = store.Length("missing")
	assert.True(t, mcperrors.IsUnknownCollection(err))

	_, err = store.PageSize("missing")
	assert.True(t, mcperrors.IsUnknownCollection(err))
}

func TestStoreAccessors(t *testing.T) {
	store := NewStore()
	require.NoError(t, store.Register("prompts", []Item{"p1", "p2"}, 7))

	length, err := store.Length("prompts")
	require.NoError(t, err)
	assert.Equal(t, 2, length)

	size, err := store.PageSize("prompts")
	require.NoError(t, err)
	assert.Equal(t, 7, size)

	assert.ElementsMatch(t, []string{"prompts"}, store.Names())
}
