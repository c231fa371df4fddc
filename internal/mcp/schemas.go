package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// indexDocumentTool returns the tool definition for index_document
func indexDocumentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "index_document",
		Description: "Run or resume tag indexing for a markdown document. Returns suspended=true when the time budget expired before completion; call again to continue.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the markdown document",
				},
				"force_restart": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, discard any saved checkpoint and start a fresh run",
					"default":     false,
				},
			},
			Required: []string{"path"},
		},
	}
}

// getStatusTool returns the tool definition for get_status
func getStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_status",
		Description: "Report whether a document has an in-flight indexing checkpoint, and if so its phase and save time",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the markdown document",
				},
			},
			Required: []string{"path"},
		},
	}
}

// resetCheckpointTool returns the tool definition for reset_checkpoint
func resetCheckpointTool() mcp.Tool {
	return mcp.Tool{
		Name:        "reset_checkpoint",
		Description: "Discard the saved checkpoint for a document so the next indexing run starts fresh",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the markdown document",
				},
			},
			Required: []string{"path"},
		},
	}
}
