package qdrant

import (
	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/hadv/vito-mcp/internal/vectordb"
)

// buildPayload flattens a document into the Qdrant payload: raw text at
// vectordb.KeyText, metadata fields at the top level, plus the
// embedding-source tag.
func buildPayload(doc vectordb.Document) map[string]any {
	payload := make(map[string]any, len(doc.Metadata)+2)
	for k, v := range doc.Metadata {
		payload[k] = v
	}
	payload[vectordb.KeyText] = doc.Text
	payload[payloadKeyEmbeddingSource] = "external"
	return payload
}

// scoredPointToResult converts a Qdrant hit into the shared result shape.
// Text is lifted out of the payload; every remaining payload field is
// merged into the result metadata together with the native cosine
// similarity score.
func scoredPointToResult(point *qdrant.ScoredPoint) vectordb.QueryResult {
	payload := convertPayload(point.Payload)

	text, _ := payload[vectordb.KeyText].(string)
	delete(payload, vectordb.KeyText)

	metadata := payload
	if metadata == nil {
		metadata = make(map[string]any, 1)
	}
	metadata[vectordb.KeyScore] = float64(point.Score)

	return vectordb.QueryResult{
		Text:     text,
		Metadata: metadata,
	}
}

// convertPayload converts Qdrant's protobuf payload to a generic map.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}
