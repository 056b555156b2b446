package pagination

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
)

func newTestService(t *testing.T, name string, length, pageSize int) *Service {
	t.Helper()
	store := NewStore()
	items := make([]Item, length)
	for i := range items {
		items[i] = fmt.Sprintf("%s_%d", name, i+1)
	}
	require.NoError(t, store.Register(name, items, pageSize))
	return NewService(store, nil)
}

// walk follows cursors from the first page until no cursor is issued,
// returning every page seen.
func walk(t *testing.T, svc *Service, name string) []Page {
	t.Helper()
	ctx := context.Background()

	var pages []Page
	cursor := ""
	for {
		page, err := svc.ListPage(ctx, name, cursor)
		require.NoError(t, err)
		pages = append(pages, page)
		if !page.HasMore() {
			return pages
		}
		cursor = page.NextCursor
	}
}

func TestListPageWalkScenarios(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		pageSize  int
		wantPages int
		wantLast  int
	}{
		{"tools", 25, 5, 5, 5},
		{"resources", 30, 10, 3, 10},
		{"prompts", 20, 7, 3, 6},
		{"single_page", 3, 10, 1, 3},
		{"single_item", 1, 1, 1, 1},
		{"empty", 0, 5, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.name, tt.length, tt.pageSize)
			pages := walk(t, svc, tt.name)

			require.Len(t, pages, tt.wantPages)
			assert.Len(t, pages[len(pages)-1].Items, tt.wantLast)

			// Full pages everywhere except possibly the last
			for _, page := range pages[:len(pages)-1] {
				assert.Len(t, page.Items, tt.pageSize)
			}

			// Completeness: every item exactly once, in order
			var got []Item
			for _, page := range pages {
				got = append(got, page.Items...)
			}
			require.Len(t, got, tt.length)
			for i, item := range got {
				assert.Equal(t, fmt.Sprintf("%s_%d", tt.name, i+1), item)
			}
		})
	}
}

func TestListPageFirstPageDefault(t *testing.T) {
	svc := newTestService(t, "tools", 25, 5)
	ctx := context.Background()

	page, err := svc.ListPage(ctx, "tools", "")
	require.NoError(t, err)

	assert.Equal(t, []Item{"tools_1", "tools_2", "tools_3", "tools_4", "tools_5"}, page.Items)
	assert.Equal(t, "5", page.NextCursor)
	assert.Equal(t, 25, page.Total)
}

func TestListPageIdempotence(t *testing.T) {
	svc := newTestService(t, "resources", 30, 10)
	ctx := context.Background()

	first, err := svc.ListPage(ctx, "resources", "10")
	require.NoError(t, err)
	second, err := svc.ListPage(ctx, "resources", "10")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListPageExactMultipleTerminates(t *testing.T) {
	// 30 items at 10 per page: the third page is full and must not issue a
	// cursor, so callers never fetch a fourth, empty page.
	svc := newTestService(t, "resources", 30, 10)
	pages := walk(t, svc, "resources")

	require.Len(t, pages, 3)
	assert.Len(t, pages[2].Items, 10)
	assert.False(t, pages[2].HasMore())
}

func TestListPageCursorAtEnd(t *testing.T) {
	svc := newTestService(t, "prompts", 20, 7)
	ctx := context.Background()

	for _, cursor := range []string{"20", "21", "100"} {
		page, err := svc.ListPage(ctx, "prompts", cursor)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasMore())
	}
}

func TestListPageInvalidCursor(t *testing.T) {
	svc := newTestService(t, "tools", 25, 5)
	ctx := context.Background()

	for _, cursor := range []string{"abc", "-1", "5.5", "  ", "5x", "0x10"} {
		_, err := svc.ListPage(ctx, "tools", cursor)
		require.Error(t, err, "cursor %q", cursor)
		assert.True(t, mcperrors.IsInvalidCursor(err), "cursor %q", cursor)
	}
}

func TestListPageUnknownCollection(t *testing.T) {
	svc := newTestService(t, "tools", 25, 5)

	_, err := svc.ListPage(context.Background(), "widgets", "")
	require.Error(t, err)
	assert.True(t, mcperrors.IsUnknownCollection(err))
}

func TestListPageCancelledContext(t *testing.T) {
	svc := newTestService(t, "tools", 25, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ListPage(ctx, "tools", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListPageConcurrentWalkers(t *testing.T) {
	svc := newTestService(t, "resources", 30, 10)

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			ctx := context.Background()
			cursor := ""
			seen := 0
			for {
				page, err := svc.ListPage(ctx, "resources", cursor)
				if err != nil {
					return err
				}
				seen += len(page.Items)
				if !page.HasMore() {
					break
				}
				cursor = page.NextCursor
			}
			if seen != 30 {
				return fmt.Errorf("walker saw %d items, want 30", seen)
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}
