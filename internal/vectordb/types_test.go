package vectordb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryResultScore(t *testing.T) {
	r := QueryResult{Metadata: map[string]any{KeyScore: 0.87}}
	assert.Equal(t, 0.87, r.Score())

	// Missing or mistyped score reads as zero.
	assert.Zero(t, QueryResult{}.Score())
	assert.Zero(t, QueryResult{Metadata: map[string]any{KeyScore: "high"}}.Score())
}

func TestQueryResultSource(t *testing.T) {
	r := QueryResult{Metadata: map[string]any{KeySource: "golang"}}
	assert.Equal(t, "golang", r.Source())
	assert.Empty(t, QueryResult{}.Source())
}

func TestValidateSearchRequest(t *testing.T) {
	valid := SearchRequest{Vector: []float32{0.1}, Limit: 5}

	assert.NoError(t, ValidateSearchRequest("knowledge", valid))
	assert.Error(t, ValidateSearchRequest("", valid))
	assert.Error(t, ValidateSearchRequest("knowledge", SearchRequest{Limit: 5}))
	assert.Error(t, ValidateSearchRequest("knowledge", SearchRequest{Vector: []float32{0.1}, Limit: 0}))
	assert.Error(t, ValidateSearchRequest("knowledge", SearchRequest{Vector: []float32{0.1}, Limit: -1}))
}

func TestValidateDocument(t *testing.T) {
	valid := Document{ID: "id-1", Text: "hello"}

	assert.NoError(t, ValidateDocument("knowledge", valid))
	assert.Error(t, ValidateDocument("", valid))
	assert.Error(t, ValidateDocument("knowledge", Document{Text: "hello"}))
	assert.Error(t, ValidateDocument("knowledge", Document{ID: "id-1"}))
}
