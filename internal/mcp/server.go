package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger is the logging surface this package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// maxLineBytes bounds a single JSON-RPC line. Stored documents arrive
// inline in tool arguments, so the default Scanner limit of 64 KiB is not
// enough.
const maxLineBytes = 10 * 1024 * 1024

// Server speaks MCP over newline-delimited JSON-RPC. Responses go to the
// writer (stdout in production), logs go elsewhere, never to the writer.
type Server struct {
	knowledge KnowledgeBase
	logger    Logger
	in        io.Reader
	out       io.Writer
	version   string
}

// NewServer creates an MCP server reading stdin and writing stdout.
func NewServer(knowledge KnowledgeBase, logger Logger) *Server {
	return &Server{
		knowledge: knowledge,
		logger:    logger,
		in:        os.Stdin,
		out:       os.Stdout,
		version:   "1.0.0",
	}
}

// NewServerWithIO creates a server over explicit streams. Used by tests.
func NewServerWithIO(knowledge KnowledgeBase, logger Logger, in io.Reader, out io.Writer) *Server {
	s := NewServer(knowledge, logger)
	s.in = in
	s.out = out
	return s
}

// Run reads messages line by line until the input closes or the context is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	s.logger.Info("MCP server started", nil)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var msg Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			s.logger.Warn("Failed to parse message", err)
			continue
		}

		resp, ok := s.handleMessage(ctx, msg)
		if !ok {
			continue
		}
		if err := s.write(resp); err != nil {
			return fmt.Errorf("mcp: write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("mcp: read input: %w", err)
	}
	return nil
}

// handleMessage dispatches one message. The bool is false for
// notifications, which never get a response.
func (s *Server) handleMessage(ctx context.Context, msg Message) (Message, bool) {
	if strings.HasPrefix(msg.Method, "notifications/") {
		return Message{}, false
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg), true
	case "tools/list":
		return s.handleToolsList(msg), true
	case "tools/call":
		return s.handleToolCall(ctx, msg), true
	default:
		return errorResponse(msg.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", msg.Method), nil), true
	}
}

func (s *Server) handleInitialize(msg Message) Message {
	return Message{
		JSONRPC: jsonRPCVersion,
		ID:      msg.ID,
		Result: InitializeResult{
			ProtocolVersion: protocolVersion,
			Capabilities: map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			ServerInfo: ServerInfo{
				Name:    "vito-mcp",
				Version: s.version,
			},
		},
	}
}

func (s *Server) handleToolsList(msg Message) Message {
	return Message{
		JSONRPC: jsonRPCVersion,
		ID:      msg.ID,
		Result:  ToolListResult{Tools: toolDefinitions()},
	}
}

func (s *Server) handleToolCall(ctx context.Context, msg Message) Message {
	paramsBytes, err := json.Marshal(msg.Params)
	if err != nil {
		return errorResponse(msg.ID, codeInvalidParams, "Invalid params", err)
	}

	var params CallToolParams
	if err := json.Unmarshal(paramsBytes, &params); err != nil {
		return errorResponse(msg.ID, codeInvalidParams, "Invalid params", err)
	}

	switch params.Name {
	case toolSearchKnowledge:
		return s.handleSearchKnowledge(ctx, msg.ID, params.Arguments)
	case toolStoreKnowledge:
		return s.handleStoreKnowledge(ctx, msg.ID, params.Arguments)
	default:
		return errorResponse(msg.ID, codeInvalidParams, "Unknown tool", fmt.Errorf("tool %s not found", params.Name))
	}
}

func (s *Server) write(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, string(data))
	return err
}

func errorResponse(id interface{}, code int, message string, err error) Message {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	return Message{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	}
}

func textResult(id interface{}, text string) Message {
	return Message{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Result: CallToolResult{
			Content: []ContentItem{{Type: "text", Text: text}},
		},
	}
}
