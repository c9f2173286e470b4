/*-------------------------------------------------------------------------
 *
 * PahVenture MSSQL MCP Server
 *
 * Copyright (c) 2026, PahVenture
 * This software is released under the MIT License
 *
 *-------------------------------------------------------------------------
 */

package mcp

// NewToolError creates an error response delivered as a normal tool result.
// Execution failures use this shape so the caller sees the error text rather
// than a protocol failure.
func NewToolError(message string) (ToolResponse, error) {
	return ToolResponse{
		Content: []ContentItem{
			{
				Type: "text",
				Text: message,
			},
		},
		IsError: true,
	}, nil
}

// NewToolSuccess creates a standardized success response for tools
func NewToolSuccess(message string) (ToolResponse, error) {
	return ToolResponse{
		Content: []ContentItem{
			{
				Type: "text",
				Text: message,
			},
		},
		IsError: false,
	}, nil
}

// NewResourceSuccess creates a standardized success response for resources
func NewResourceSuccess(uri string, mimeType string, content string) (ResourceContent, error) {
	return ResourceContent{
		URI:      uri,
		MimeType: mimeType,
		Contents: []ContentItem{
			{
				Type: "text",
				Text: content,
			},
		},
	}, nil
}
