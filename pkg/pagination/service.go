package pagination

import (
	"context"
)

// Page is one bounded window of a collection. NextCursor is the continuation
// token for the following page; it is empty on the final page. Total is the
// collection length at registration time.
type Page struct {
	Items      []Item
	NextCursor string
	Total      int
}

// HasMore reports whether a continuation cursor was issued
func (p Page) HasMore() bool {
	return p.NextCursor != ""
}

// Service serves pages of registered collections. It owns the cursor decode
// step so callers above it only see tokens, never offsets.
type Service struct {
	store *Store
	codec Codec
}

// NewService creates a page service over a store. A nil codec selects the
// default decimal OffsetCodec.
func NewService(store *Store, codec Codec) *Service {
	if codec == nil {
		codec = NewOffsetCodec()
	}
	return &Service{
		store: store,
		codec: codec,
	}
}

// ListPage returns the page of the named collection identified by cursor.
// An empty cursor means the first page. A cursor that does not decode
// surfaces as an errors.CodeInvalidCursor error; the caller's previous cursor
// remains valid. Cursors pointing at or past the end of the collection yield
// an empty page with no next cursor, which is the normal terminal state when
// the last page is exactly full.
func (s *Service) ListPage(ctx context.Context, name, cursor string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	offset := 0
	if cursor != "" {
		decoded, err := s.codec.Decode(cursor)
		if err != nil {
			return Page{}, err
		}
		offset = decoded
	}

	items, err := s.store.Slice(name, offset)
	if err != nil {
		return Page{}, err
	}

	total, err := s.store.Length(name)
	if err != nil {
		return Page{}, err
	}

	page := Page{
		Items: items,
		Total: total,
	}

	// Issue a continuation cursor only when items remain beyond this page
	if next := offset + len(items); next < total {
		page.NextCursor = s.codec.Encode(next)
	}

	return page, nil
}
