package mcp

import (
	"encoding/json"
	"fmt"
)

// handleMessage processes an incoming MCP message and returns a response
func (s *Server) handleMessage(msg *Message) *Message {
	if msg.IsRequest() {
		return s.handleRequest(msg)
	}

	// Notifications don't get a response
	if msg.IsNotification() {
		s.handleNotification(msg)
		return nil
	}

	return NewErrorMessage(msg.Id, InvalidRequest, "Invalid message: not a request or notification", nil)
}

// handleRequest handles a JSON-RPC request
func (s *Server) handleRequest(msg *Message) *Message {
	s.logger.Debug("Handling request", map[string]interface{}{
		"method": msg.Method,
		"id":     msg.Id,
	})

	switch msg.Method {
	case "initialize":
		return s.handleInitializeRequest(msg)
	case "tools/list":
		return s.handleListToolsRequest(msg)
	case "tools/call":
		return s.handleCallToolRequest(msg)
	default:
		return NewErrorMessage(msg.Id, MethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method), nil)
	}
}

// handleNotification handles a JSON-RPC notification
func (s *Server) handleNotification(msg *Message) {
	switch msg.Method {
	case "notifications/initialized":
		s.logger.Info("Client initialized", nil)
	default:
		s.logger.Debug("Unknown notification", map[string]interface{}{
			"method": msg.Method,
		})
	}
}

// handleInitializeRequest handles the initialize request
func (s *Server) handleInitializeRequest(msg *Message) *Message {
	return NewResultMessage(msg.Id, s.initializeResult())
}

// handleListToolsRequest handles the tools/list request
func (s *Server) handleListToolsRequest(msg *Message) *Message {
	return NewResultMessage(msg.Id, map[string]interface{}{
		"tools": s.GetToolDefinitions(),
	})
}

// handleCallToolRequest handles the tools/call request
func (s *Server) handleCallToolRequest(msg *Message) *Message {
	params, ok := msg.Params.(map[string]interface{})
	if !ok {
		return NewErrorMessage(msg.Id, InvalidParams, "Invalid params: expected object", nil)
	}

	result, err := s.handleCallTool(params)
	if err != nil {
		return NewErrorMessage(msg.Id, InternalError, err.Error(), nil)
	}

	return NewResultMessage(msg.Id, result)
}

// handleCallTool executes a tool. Tool handlers return an envelope for every
// domain outcome (success, validation failure, missing record); a non-nil Go
// error means infrastructure failed and surfaces as a JSON-RPC error instead.
func (s *Server) handleCallTool(params map[string]interface{}) (interface{}, error) {
	toolName, ok := params["name"].(string)
	if !ok {
		return nil, fmt.Errorf("missing required parameter: name")
	}

	toolParams, ok := params["arguments"].(map[string]interface{})
	if !ok {
		toolParams = make(map[string]interface{})
	}

	handler, exists := s.tools[toolName]
	if !exists {
		return nil, fmt.Errorf("unknown tool: %s", toolName)
	}

	s.logger.Info("Calling tool", map[string]interface{}{
		"tool": toolName,
	})

	resp, err := handler(toolParams)
	if err != nil {
		return nil, err
	}

	// Marshal the envelope response to JSON
	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}

	return map[string]interface{}{
		"content": []map[string]interface{}{
			{
				"type": "text",
				"text": string(jsonBytes),
			},
		},
	}, nil
}
