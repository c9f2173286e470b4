/*-------------------------------------------------------------------------
 *
 * PahVenture MSSQL MCP Server
 *
 * Copyright (c) 2026, PahVenture
 * This software is released under the MIT License
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
	"fmt"

	"github.com/PahVenture/pv-mcp-mssql-server/internal/mcp"
)

// Handler executes a tool call. A returned error rejects the call at the
// protocol level; tool failures that should reach the model go in the
// response with IsError set.
type Handler func(ctx context.Context, args map[string]interface{}) (mcp.ToolResponse, error)

// Tool pairs a protocol definition with its handler.
type Tool struct {
	Definition mcp.Tool
	Handler    Handler
}

// Registry holds the available tools and implements mcp.ToolProvider.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Re-registering a name replaces the handler but
// keeps the original listing position.
func (r *Registry) Register(tool Tool) {
	name := tool.Definition.Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// List implements mcp.ToolProvider.
func (r *Registry) List() []mcp.Tool {
	definitions := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		definitions = append(definitions, r.tools[name].Definition)
	}
	return definitions
}

// Execute implements mcp.ToolProvider.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) (mcp.ToolResponse, error) {
	tool, ok := r.tools[name]
	if !ok {
		return mcp.ToolResponse{}, fmt.Errorf("unknown tool: %s", name)
	}
	return tool.Handler(ctx, args)
}
