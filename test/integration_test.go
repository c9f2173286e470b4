package test

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// MCPRequest represents a JSON-RPC request to the MCP server
type MCPRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// MCPResponse represents a JSON-RPC response from the MCP server
type MCPResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *MCPError       `json:"error,omitempty"`
}

// MCPError represents an error response
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MCPServer manages a running MCP server process for testing
type MCPServer struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.ReadCloser
	reader *bufio.Reader
	t      *testing.T
	nextID int
}

// StartMCPServer builds the server binary if needed and starts it with the
// given environment entries on top of dummy connection settings. No real
// database is required for protocol-level tests; the connection settings
// only have to validate.
func StartMCPServer(t *testing.T, extraEnv ...string) (*MCPServer, error) {
	binaryPath := filepath.Join("..", "bin", "pv-mcp-mssql-server")

	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Logf("Binary not found at %s, building...", binaryPath)
		buildCmd := exec.Command("go", "build", "-o", "bin/pv-mcp-mssql-server", "./cmd/pv-mcp-mssql-server")
		buildCmd.Dir = ".."
		if output, err := buildCmd.CombinedOutput(); err != nil {
			return nil, fmt.Errorf("failed to build binary: %v\nOutput: %s", err, output)
		}
	}

	cmd := exec.Command(binaryPath)
	cmd.Env = append(os.Environ(),
		"MSSQL_HOST=127.0.0.1",
		"MSSQL_USER=test-user",
		"MSSQL_PASSWORD=test-password",
		"MSSQL_DATABASE=testdb",
		"ConnectionTimeout=2",
		"LoginTimeout=2",
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdin pipe: %w", err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to get stderr pipe: %w", err)
	}

	go func() {
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			t.Logf("[SERVER STDERR] %s", scanner.Text())
		}
	}()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start server: %w", err)
	}

	return &MCPServer{
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdout,
		reader: bufio.NewReader(stdout),
		t:      t,
		nextID: 1,
	}, nil
}

// SendRequest sends a JSON-RPC request and returns the response
func (s *MCPServer) SendRequest(method string, params interface{}) (*MCPResponse, error) {
	req := MCPRequest{
		JSONRPC: "2.0",
		ID:      s.nextID,
		Method:  method,
		Params:  params,
	}
	s.nextID++

	reqJSON, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	s.t.Logf("[CLIENT] Sending: %s", string(reqJSON))

	if _, err := s.stdin.Write(append(reqJSON, '\n')); err != nil {
		return nil, fmt.Errorf("failed to write request: %w", err)
	}

	respChan := make(chan string, 1)
	errChan := make(chan error, 1)

	go func() {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			errChan <- err
			return
		}
		respChan <- line
	}()

	select {
	case line := <-respChan:
		s.t.Logf("[SERVER] Response: %s", strings.TrimSpace(line))

		var resp MCPResponse
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return &resp, nil

	case err := <-errChan:
		return nil, fmt.Errorf("failed to read response: %w", err)

	case <-time.After(10 * time.Second):
		return nil, fmt.Errorf("timeout waiting for response to %s", method)
	}
}

// Close shuts down the server process
func (s *MCPServer) Close() error {
	_ = s.stdin.Close()
	done := make(chan error, 1)
	go func() { done <- s.cmd.Wait() }()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		_ = s.cmd.Process.Kill()
		return fmt.Errorf("server did not exit, killed")
	}
}
