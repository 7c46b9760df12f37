// Package bridge exposes the tool catalog of a remote MCP provider process
// as native tools on a host MCP server.
//
// The bridge owns three concerns: connection lifecycle for the provider
// child process (ConnectionManager), one-time discovery and registration of
// the provider's catalog (Bridge), and repair of fragmented list responses
// (Normalizer). The catalog itself is opaque: operation names and argument
// schemas are discovered at runtime and proxied through unchanged.
package bridge
