// Package mcp implements the Model Context Protocol (MCP) server for tagdex.
//
// The server exposes three tools over JSON-RPC 2.0 on stdio:
//   - index_document: run or resume tag indexing for a markdown document
//   - get_status: report an in-flight checkpoint's phase and save time
//   - reset_checkpoint: discard a saved checkpoint
//
// Indexing runs under the configured time budgets. When a run suspends, the
// index_document result carries suspended=true and the client calls the tool
// again to continue from the saved checkpoint:
//
//	Request:
//	{
//	  "name": "index_document",
//	  "arguments": {"path": "/home/me/journal.md"}
//	}
//
//	Result:
//	{
//	  "completed": false,
//	  "suspended": true,
//	  "phase": "gathering",
//	  ...
//	}
//
// The server is typically started via the serve command:
//
//	tagdex serve
package mcp
