// Package server implements the MCP (Model Context Protocol) server for CDN
// URL tools.
//
// The server exposes the cdnurl builder and the local preview renderer to
// MCP clients, so an assistant can compose delivery URLs and check what a
// transformation does to an image before publishing it.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - cdn_url: Build a delivery URL from a name and options
//   - cdn_transformation: Compile options to the transformation path
//   - cdn_normalize_name: Apply a format and percent-encode a name
//   - cdn_preview: Render options against a local image
//
// Option maps are decoded with json.Number, so numeric values keep the text
// the client sent.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv := server.New(resource, server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Fatal("server stopped", "err", err)
//	}
package server
