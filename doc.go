// Package paginationserver is the root of a JSON-RPC server module that
// serves bounded pages of tools, resources and prompts with opaque
// continuation cursors.
//
// # Layout
//
// The module consists of several sub-packages:
//
//   - pkg/pagination: the engine. A Store of registered collections, a
//     cursor Codec, and a Service that turns a collection name and cursor
//     into one page of items plus the next cursor.
//   - pkg/protocol: JSON-RPC 2.0 message types and the method, parameter
//     and result types of the listing protocol.
//   - pkg/server: the server. Provider interfaces, paginated provider
//     implementations backed by the engine, and handler wiring.
//   - pkg/transport: the stdio transport carrying one JSON message per
//     line on stdin/stdout.
//   - pkg/errors: structured errors with protocol error codes, including
//     the pagination codes for invalid cursors and unknown collections.
//   - pkg/logging: structured leveled logging to stderr.
//   - pkg/observability: Prometheus metrics and OpenTelemetry tracing.
//
// # Paging contract
//
// List results carry a nextCursor exactly when more items remain. Clients
// resume by echoing the cursor back unchanged; an empty cursor requests
// the first page. Cursors are only valid for the collection that issued
// them. An undecodable cursor fails the request with a distinguishable
// error code rather than silently restarting the walk.
//
// The reference deployment lives in cmd/pagination-server.
package paginationserver
