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
	"context"
	"errors"
	"testing"
)

// Mock implementations for testing

type mockToolProvider struct {
	tools       []Tool
	executeFunc func(ctx context.Context, name string, args map[string]interface{}) (ToolResponse, error)
}

func (m *mockToolProvider) List() []Tool {
	return m.tools
}

func (m *mockToolProvider) Execute(ctx context.Context, name string, args map[string]interface{}) (ToolResponse, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, name, args)
	}
	return NewToolSuccess("executed")
}

type mockResourceProvider struct {
	resources []Resource
	readFunc  func(ctx context.Context, uri string) (ResourceContent, error)
}

func (m *mockResourceProvider) List() []Resource {
	return m.resources
}

func (m *mockResourceProvider) Read(ctx context.Context, uri string) (ResourceContent, error) {
	if m.readFunc != nil {
		return m.readFunc(ctx, uri)
	}
	return NewResourceSuccess(uri, "text/plain", "content")
}

func TestNewServer(t *testing.T) {
	tools := &mockToolProvider{
		tools: []Tool{{Name: "execute_sql", Description: "Run SQL"}},
	}

	server := NewServer(tools)
	if server == nil {
		t.Fatal("expected non-nil server")
	}
	if server.tools == nil {
		t.Error("expected tools provider to be set")
	}
	if server.resources != nil {
		t.Error("resources should be unset until provided")
	}
}

func TestServerSetResourceProvider(t *testing.T) {
	server := NewServer(&mockToolProvider{})

	resources := &mockResourceProvider{
		resources: []Resource{{URI: "mssql://Customers/data", Name: "Table: Customers"}},
	}
	server.SetResourceProvider(resources)
	if server.resources == nil {
		t.Error("expected resource provider to be set")
	}
}

func TestServerConstants(t *testing.T) {
	if ProtocolVersion == "" {
		t.Error("ProtocolVersion should not be empty")
	}
	if ServerName != "pv-mcp-mssql-server" {
		t.Errorf("expected ServerName 'pv-mcp-mssql-server', got %q", ServerName)
	}
	if ServerVersion == "" {
		t.Error("ServerVersion should not be empty")
	}
}

func TestScannerConstants(t *testing.T) {
	if ScannerInitialBufferSize <= 0 {
		t.Error("ScannerInitialBufferSize should be positive")
	}
	if ScannerMaxBufferSize <= ScannerInitialBufferSize {
		t.Error("ScannerMaxBufferSize should be greater than the initial size")
	}
}

func TestDecodeParams(t *testing.T) {
	req := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/call",
		Params: map[string]interface{}{
			"name":      "execute_sql",
			"arguments": map[string]interface{}{"query": "SELECT 1"},
		},
	}

	params, err := decodeParams[ToolCallParams](req)
	if err != nil {
		t.Fatalf("decodeParams() error: %v", err)
	}
	if params.Name != "execute_sql" {
		t.Errorf("Name = %q", params.Name)
	}
	if params.Arguments["query"] != "SELECT 1" {
		t.Errorf("Arguments = %v", params.Arguments)
	}
}

func TestDecodeParamsNil(t *testing.T) {
	req := JSONRPCRequest{JSONRPC: "2.0", ID: 1, Method: "resources/read"}

	params, err := decodeParams[ResourceReadParams](req)
	if err != nil {
		t.Fatalf("decodeParams() error: %v", err)
	}
	if params.URI != "" {
		t.Errorf("URI = %q, want empty", params.URI)
	}
}

func TestMockProviderErrorPropagation(t *testing.T) {
	// Guard against the mocks themselves silently changing shape.
	provider := &mockToolProvider{
		executeFunc: func(ctx context.Context, name string, args map[string]interface{}) (ToolResponse, error) {
			return ToolResponse{}, errors.New("unknown tool: " + name)
		},
	}

	_, err := provider.Execute(context.Background(), "nope", nil)
	if err == nil {
		t.Fatal("expected an error from Execute")
	}
}
