// Package protocol defines the JSON-RPC message types and MCP structures
// exchanged by the pagination server and its clients.
//
// The server speaks a JSON-RPC 2.0 dialect of the Model Context Protocol
// (MCP): clients list tools, resources and prompts in bounded pages and
// resume listing with an opaque cursor token.
//
// # Package Organization
//
//   - jsonrpc.go: JSON-RPC 2.0 request, response, notification and error types
//   - mcp.go: method names, capabilities, lifecycle and pagination envelopes
//   - tools.go, resources.go, prompts.go: the three listable collections
//
// # Pagination
//
// Every list request carries an optional cursor:
//
//	{
//	    "jsonrpc": "2.0",
//	    "id": 3,
//	    "method": "listTools",
//	    "params": {"cursor": "10"}
//	}
//
// Every list result carries the page of items and, when more items remain,
// a nextCursor token the client echoes back verbatim:
//
//	{
//	    "jsonrpc": "2.0",
//	    "id": 3,
//	    "result": {"tools": [...], "nextCursor": "15"}
//	}
//
// An absent cursor means "first page". An absent nextCursor means the
// listing is complete. Cursor tokens are opaque to clients; their format is
// an implementation detail of the server's cursor codec.
package protocol
