package pgvector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadv/vito-mcp/internal/vectordb"
)

func TestTableName(t *testing.T) {
	name, err := tableName("Domain_Knowledge")
	require.NoError(t, err)
	assert.Equal(t, "domain_knowledge", name)

	name, err = tableName("kb_v2")
	require.NoError(t, err)
	assert.Equal(t, "kb_v2", name)

	for _, bad := range []string{"", "1knowledge", "my-collection", "a b", "kb;drop table"} {
		_, err := tableName(bad)
		assert.Error(t, err, "expected rejection of %q", bad)
	}
}

func TestSearchQueryAppliesThresholdOnlyWhenPositive(t *testing.T) {
	req := vectordb.SearchRequest{
		Query:  "q",
		Vector: []float32{1, 0},
		Limit:  5,
	}

	query, args := searchQuery("kb", req)
	assert.NotContains(t, query, "WHERE")
	require.Len(t, args, 2)
	assert.Equal(t, "[1,0]", args[0])
	assert.Equal(t, 5, args[1])

	req.ScoreThreshold = 0.7
	query, args = searchQuery("kb", req)
	assert.Contains(t, query, "WHERE 1 - (embedding <=> $1) >= $3")
	require.Len(t, args, 3)
	assert.InDelta(t, 0.7, args[2], 1e-6)
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "[0.5,-1,0.25]", formatVector([]float32{0.5, -1, 0.25}))
	assert.Equal(t, "[]", formatVector(nil))
	assert.Equal(t, "[1]", formatVector([]float32{1}))
}
