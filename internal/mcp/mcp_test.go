package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"

	"github.com/peterdewit/mcp-genealogy-memory/internal/config"
	"github.com/peterdewit/mcp-genealogy-memory/internal/fetch"
	"github.com/peterdewit/mcp-genealogy-memory/internal/logging"
	"github.com/peterdewit/mcp-genealogy-memory/internal/storage"
	"github.com/peterdewit/mcp-genealogy-memory/internal/version"
)

// newTestServer creates an MCP server backed by an isolated SQLite database
func newTestServer(t *testing.T) *Server {
	t.Helper()

	tempDir := t.TempDir()

	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})

	db, err := storage.Open(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(tempDir, "test.db"),
	}, logger)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	fetcher := fetch.New(db, filepath.Join(tempDir, "attachments"), logger)

	return NewServer(version.Version, db, fetcher, logger)
}

// sendRequest sends a request and returns the response
func sendRequest(t *testing.T, server *Server, method string, id int, params interface{}) *Message {
	t.Helper()

	request := Message{
		Jsonrpc: "2.0",
		Id:      id,
		Method:  method,
		Params:  params,
	}

	requestBytes, err := json.Marshal(request)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	requestBytes = append(requestBytes, '\n')

	stdin := bytes.NewReader(requestBytes)
	stdout := &bytes.Buffer{}

	server.SetStdin(stdin)
	server.SetStdout(stdout)

	msg, err := server.readMessage()
	if err != nil && err != io.EOF {
		t.Fatalf("failed to read message: %v", err)
	}

	return server.handleMessage(msg)
}

func TestServerCreation(t *testing.T) {
	server := newTestServer(t)

	if len(server.tools) != len(server.GetToolDefinitions()) {
		t.Errorf("registered %d tools but defined %d", len(server.tools), len(server.GetToolDefinitions()))
	}
}

func TestInitializeMethod(t *testing.T) {
	server := newTestServer(t)

	params := map[string]interface{}{
		"protocolVersion": "2024-11-05",
		"capabilities":    map[string]interface{}{},
		"clientInfo": map[string]interface{}{
			"name":    "test-client",
			"version": "1.0.0",
		},
	}

	response := sendRequest(t, server, "initialize", 1, params)

	if response == nil {
		t.Fatal("response should not be nil")
	}
	if response.Error != nil {
		t.Fatalf("should not have error: %v", response.Error.Message)
	}

	result, ok := response.Result.(*InitializeResult)
	if !ok {
		t.Fatalf("result should be an InitializeResult, got %T", response.Result)
	}
	if result.ProtocolVersion != "2024-11-05" {
		t.Errorf("unexpected protocol version %q", result.ProtocolVersion)
	}
	if result.ServerInfo.Name != "genealogy-memory" {
		t.Errorf("unexpected server name %q", result.ServerInfo.Name)
	}
}

func TestToolsListMethod(t *testing.T) {
	server := newTestServer(t)

	response := sendRequest(t, server, "tools/list", 1, nil)

	if response == nil {
		t.Fatal("response should not be nil")
	}
	if response.Error != nil {
		t.Fatalf("should not have error: %v", response.Error.Message)
	}

	result, ok := response.Result.(map[string]interface{})
	if !ok {
		t.Fatalf("result should be a map, got %T", response.Result)
	}

	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools should be []Tool, got %T", result["tools"])
	}
	if len(tools) != 23 {
		t.Errorf("expected 23 tools, got %d", len(tools))
	}

	for _, tool := range tools {
		if tool.Name == "" {
			t.Error("tool should have name")
		}
		if tool.Description == "" {
			t.Errorf("tool %s should have description", tool.Name)
		}
		if tool.InputSchema == nil {
			t.Errorf("tool %s should have inputSchema", tool.Name)
		}
	}
}

func TestUnknownMethod(t *testing.T) {
	server := newTestServer(t)

	response := sendRequest(t, server, "unknown/method", 1, nil)

	if response == nil {
		t.Fatal("response should not be nil")
	}
	if response.Error == nil {
		t.Fatal("should have error for unknown method")
	}
	if response.Error.Code != MethodNotFound {
		t.Errorf("expected MethodNotFound error code, got %d", response.Error.Code)
	}
}

func TestUnknownToolIsInternalError(t *testing.T) {
	server := newTestServer(t)

	params := map[string]interface{}{
		"name":      "no_such_tool",
		"arguments": map[string]interface{}{},
	}

	response := sendRequest(t, server, "tools/call", 1, params)

	if response.Error == nil {
		t.Fatal("should have error for unknown tool")
	}
	if response.Error.Code != InternalError {
		t.Errorf("expected InternalError, got %d", response.Error.Code)
	}
}

func TestNotificationHasNoResponse(t *testing.T) {
	server := newTestServer(t)

	msg := &Message{
		Jsonrpc: "2.0",
		Method:  "notifications/initialized",
	}

	if response := server.handleMessage(msg); response != nil {
		t.Errorf("notifications should not get a response, got %+v", response)
	}
}
