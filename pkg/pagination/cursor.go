package pagination

import (
	"strconv"
	"strings"

	mcperrors "github.com/mcp-extras/pagination-server/pkg/errors"
)

// Codec converts item offsets to opaque cursor tokens and back. Implementations
// must round-trip: Decode(Encode(n)) == n for any n >= 0. Tokens are only
// meaningful to the collection they were issued for; the codec itself does not
// bind tokens to collections.
type Codec interface {
	// Encode returns the cursor token for an item offset.
	Encode(offset int) string

	// Decode recovers the offset from a cursor token. It returns an
	// errors.CodeInvalidCursor error for tokens it did not produce:
	// non-numeric, negative, empty or otherwise corrupt.
	Decode(token string) (int, error)
}

// OffsetCodec is the default Codec. It encodes an offset as its decimal
// string, matching the reference wire format ("0", "5", "10", ...).
type OffsetCodec struct{}

// NewOffsetCodec creates the default decimal-string cursor codec
func NewOffsetCodec() *OffsetCodec {
	return &OffsetCodec{}
}

// Encode returns the decimal string of the offset
func (c *OffsetCodec) Encode(offset int) string {
	return strconv.Itoa(offset)
}

// Decode parses a decimal cursor token back into an offset
func (c *OffsetCodec) Decode(token string) (int, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return 0, mcperrors.InvalidCursor(token, "empty cursor token")
	}

	offset, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, mcperrors.InvalidCursor(token, "cursor is not a decimal offset")
	}

	if offset < 0 {
		return 0, mcperrors.InvalidCursor(token, "cursor encodes a negative offset")
	}

	return offset, nil
}
