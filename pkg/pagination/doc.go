// Package pagination implements cursor-based pagination over immutable,
// ordered collections of opaque items.
//
// A Store holds named collections registered once at startup. A Codec turns
// integer offsets into opaque cursor tokens and back. The Service composes
// the two: given a collection name and the cursor from a previous page it
// returns the next bounded page together with the cursor for the page after,
// omitting the cursor on the final page.
//
// Cursors are continuation tokens, not random-access handles. Callers treat
// them as opaque strings: obtain one from a page, hand it back unchanged to
// fetch the next page. A token that cannot be decoded yields an
// errors.CodeInvalidCursor error rather than silently restarting from the
// first page, so callers never lose their position to a corrupt token.
package pagination
