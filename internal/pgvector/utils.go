package pgvector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hadv/vito-mcp/internal/vectordb"
)

// tableName validates a collection name and returns the identifier to use
// in SQL. Collection names are interpolated into DDL and queries, so only
// a conservative character set is allowed.
func tableName(collection string) (string, error) {
	if collection == "" {
		return "", fmt.Errorf("pgvector: collection name cannot be empty")
	}
	for i, r := range collection {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return "", fmt.Errorf("pgvector: invalid collection name %q", collection)
			}
		default:
			return "", fmt.Errorf("pgvector: invalid collection name %q", collection)
		}
	}
	return strings.ToLower(collection), nil
}

// searchQuery builds the nearest-neighbor SQL and its bind arguments. The
// similarity cutoff is added only for a positive threshold; zero means no
// cutoff, matching the other backends. Cosine similarity can be negative,
// so an unconditional ">= 0" would drop rows the other backends return.
func searchQuery(table string, req vectordb.SearchRequest) (string, []any) {
	args := []any{formatVector(req.Vector), req.Limit}
	where := ""
	if req.ScoreThreshold > 0 {
		where = "WHERE 1 - (embedding <=> $1) >= $3"
		args = append(args, float64(req.ScoreThreshold))
	}
	query := fmt.Sprintf(`
		SELECT text, metadata, 1 - (embedding <=> $1) AS score
		FROM %s
		%s
		ORDER BY embedding <=> $1
		LIMIT $2
	`, table, where)
	return query, args
}

// formatVector renders a float32 slice in pgvector's text format,
// e.g. "[0.1,0.2,0.3]".
func formatVector(vector []float32) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range vector {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	sb.WriteByte(']')
	return sb.String()
}
