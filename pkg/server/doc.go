// Package server implements the JSON-RPC server that exposes paginated
// tools, resources and prompts collections over a transport. Providers
// supply the domain data; the bundled paginated providers serve immutable
// collections through a shared pagination service.
package server
