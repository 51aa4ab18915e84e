package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/hadv/vito-mcp/internal/vectordb"
)

const (
	toolSearchKnowledge = "search_knowledge"
	toolStoreKnowledge  = "store_knowledge"

	defaultSearchLimit = 5
)

// KnowledgeBase is the consumer interface of the MCP tools, satisfied by
// *database.Service.
type KnowledgeBase interface {
	Search(ctx context.Context, query string, limit int, scoreThreshold float32) ([]vectordb.QueryResult, error)
	StoreDomainKnowledge(ctx context.Context, text, domain string, metadata map[string]any) (string, error)
}

func toolDefinitions() []Tool {
	return []Tool{
		{
			Name:        toolSearchKnowledge,
			Description: "Search the knowledge base using semantic similarity",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{
						"type":        "string",
						"description": "The search query",
					},
					"limit": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum number of results to return (default: 5)",
						"default":     defaultSearchLimit,
					},
					"score_threshold": map[string]interface{}{
						"type":        "number",
						"description": "Minimum similarity score, 0 disables the cutoff",
						"default":     0,
					},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        toolStoreKnowledge,
			Description: "Store a piece of text in the knowledge base under a domain",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "The text to store",
					},
					"domain": map[string]interface{}{
						"type":        "string",
						"description": "The knowledge domain the text belongs to",
					},
					"metadata": map[string]interface{}{
						"type":        "object",
						"description": "Optional extra metadata for the entry",
					},
				},
				"required": []string{"text", "domain"},
			},
		},
	}
}

func (s *Server) handleSearchKnowledge(ctx context.Context, id interface{}, args map[string]interface{}) Message {
	query, ok := args["query"].(string)
	if !ok || query == "" {
		return errorResponse(id, codeInvalidParams, "Missing or invalid query parameter", nil)
	}

	limit := defaultSearchLimit
	if v, ok := args["limit"].(float64); ok && v > 0 {
		limit = int(v)
	}

	var threshold float32
	if v, ok := args["score_threshold"].(float64); ok && v > 0 {
		threshold = float32(v)
	}

	results, err := s.knowledge.Search(ctx, query, limit, threshold)
	if err != nil {
		return errorResponse(id, codeInternalError, "Search failed", err)
	}

	return textResult(id, formatSearchResults(query, results))
}

func (s *Server) handleStoreKnowledge(ctx context.Context, id interface{}, args map[string]interface{}) Message {
	text, ok := args["text"].(string)
	if !ok || text == "" {
		return errorResponse(id, codeInvalidParams, "Missing or invalid text parameter", nil)
	}

	domain, ok := args["domain"].(string)
	if !ok || domain == "" {
		return errorResponse(id, codeInvalidParams, "Missing or invalid domain parameter", nil)
	}

	var metadata map[string]interface{}
	if m, ok := args["metadata"].(map[string]interface{}); ok {
		metadata = m
	}

	entryID, err := s.knowledge.StoreDomainKnowledge(ctx, text, domain, metadata)
	if err != nil {
		return errorResponse(id, codeInternalError, "Store failed", err)
	}

	return textResult(id, fmt.Sprintf("Stored knowledge entry %s in domain '%s'", entryID, domain))
}

func formatSearchResults(query string, results []vectordb.QueryResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d results for query: '%s'\n", len(results), query)

	for i, r := range results {
		fmt.Fprintf(&sb, "\n%d. [%s] (score: %.3f)\n%s\n", i+1, r.Source(), r.Score(), r.Text)
	}
	return sb.String()
}
