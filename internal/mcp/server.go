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

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
)

const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "pv-mcp-mssql-server"
	ServerVersion   = "1.0.0"
)

// Scanner buffer sizes for JSON-RPC message processing. The initial size
// covers typical messages; the cap bounds memory use on malformed input.
const (
	ScannerInitialBufferSize = 64 * 1024
	ScannerMaxBufferSize     = 1024 * 1024
)

// ToolProvider is an interface for listing and executing tools
type ToolProvider interface {
	List() []Tool
	Execute(ctx context.Context, name string, args map[string]interface{}) (ToolResponse, error)
}

// ResourceProvider is an interface for listing and reading resources
type ResourceProvider interface {
	List() []Resource
	Read(ctx context.Context, uri string) (ResourceContent, error)
}

// Server handles MCP protocol communication over stdio. Requests are
// processed to completion one at a time, in arrival order.
type Server struct {
	tools     ToolProvider
	resources ResourceProvider
}

// NewServer creates a new MCP server
func NewServer(tools ToolProvider) *Server {
	return &Server{
		tools: tools,
	}
}

// SetResourceProvider sets the resource provider for the server
func (s *Server) SetResourceProvider(resources ResourceProvider) {
	s.resources = resources
}

// Run starts the stdio server loop
func (s *Server) Run() error {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, ScannerInitialBufferSize), ScannerMaxBufferSize)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var req JSONRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			sendError(nil, -32700, "Parse error", err.Error())
			continue
		}

		s.handleRequest(req)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

func (s *Server) handleRequest(req JSONRPCRequest) {
	switch req.Method {
	case "initialize":
		s.handleInitialize(req)
	case "notifications/initialized":
		// Client notification - no response needed
	case "tools/list":
		s.handleToolsList(req)
	case "tools/call":
		s.handleToolCall(req)
	case "resources/list":
		s.handleResourcesList(req)
	case "resources/read":
		s.handleResourceRead(req)
	default:
		if req.ID != nil {
			sendError(req.ID, -32601, "Method not found", nil)
		}
	}
}

func (s *Server) handleInitialize(req JSONRPCRequest) {
	params, err := decodeParams[InitializeParams](req)
	if err != nil {
		sendError(req.ID, -32602, "Invalid params", err.Error())
		return
	}

	// Accept the client's protocol version for compatibility
	protocolVersion := params.ProtocolVersion
	if protocolVersion == "" {
		protocolVersion = ProtocolVersion
	}

	capabilities := map[string]interface{}{
		"tools": map[string]interface{}{},
	}
	if s.resources != nil {
		capabilities["resources"] = map[string]interface{}{}
	}

	result := InitializeResult{
		ProtocolVersion: protocolVersion,
		Capabilities:    capabilities,
		ServerInfo: Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}

	sendResponse(req.ID, result)
}

func (s *Server) handleToolsList(req JSONRPCRequest) {
	sendResponse(req.ID, ToolsListResult{Tools: s.tools.List()})
}

func (s *Server) handleToolCall(req JSONRPCRequest) {
	params, err := decodeParams[ToolCallParams](req)
	if err != nil {
		sendError(req.ID, -32602, "Invalid params", err.Error())
		return
	}

	// Stdio mode has no per-request deadline; cancellation is not supported
	// once a statement reaches the database.
	response, err := s.tools.Execute(context.Background(), params.Name, params.Arguments)
	if err != nil {
		sendError(req.ID, -32602, "Tool call rejected", err.Error())
		return
	}

	sendResponse(req.ID, response)
}

func (s *Server) handleResourcesList(req JSONRPCRequest) {
	if s.resources == nil {
		sendError(req.ID, -32601, "Resources not supported", nil)
		return
	}

	sendResponse(req.ID, ResourcesListResult{Resources: s.resources.List()})
}

func (s *Server) handleResourceRead(req JSONRPCRequest) {
	if s.resources == nil {
		sendError(req.ID, -32601, "Resources not supported", nil)
		return
	}

	params, err := decodeParams[ResourceReadParams](req)
	if err != nil {
		sendError(req.ID, -32602, "Invalid params", err.Error())
		return
	}

	content, err := s.resources.Read(context.Background(), params.URI)
	if err != nil {
		sendError(req.ID, -32603, "Resource read error", err.Error())
		return
	}

	sendResponse(req.ID, content)
}

// decodeParams round-trips req.Params through JSON into a typed struct.
func decodeParams[T any](req JSONRPCRequest) (T, error) {
	var params T
	paramsBytes, err := json.Marshal(req.Params)
	if err != nil {
		return params, err
	}
	if err := json.Unmarshal(paramsBytes, &params); err != nil {
		return params, err
	}
	return params, nil
}

func sendResponse(id, result interface{}) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}

	data, err := json.Marshal(resp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to marshal response: %v\n", err)
		return
	}
	fmt.Println(string(data))
	_ = os.Stdout.Sync()
}

func sendError(id interface{}, code int, message string, data interface{}) {
	resp := JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &RPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}

	respData, err := json.Marshal(resp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to marshal error response: %v\n", err)
		return
	}
	fmt.Println(string(respData))
	_ = os.Stdout.Sync()
}
