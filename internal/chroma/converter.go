package chroma

import (
	"fmt"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"

	"github.com/hadv/vito-mcp/internal/vectordb"
)

// toDocumentMetadata converts the free-form metadata map into Chroma's
// typed attribute form. Chroma metadata values are scalar only.
func toDocumentMetadata(metadata map[string]any) (chroma.DocumentMetadata, error) {
	attrs := make([]*chroma.MetaAttribute, 0, len(metadata))
	for k, v := range metadata {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, chroma.NewStringAttribute(k, val))
		case int:
			attrs = append(attrs, chroma.NewIntAttribute(k, int64(val)))
		case int64:
			attrs = append(attrs, chroma.NewIntAttribute(k, val))
		case float32:
			attrs = append(attrs, chroma.NewFloatAttribute(k, float64(val)))
		case float64:
			attrs = append(attrs, chroma.NewFloatAttribute(k, val))
		case bool:
			attrs = append(attrs, chroma.NewBoolAttribute(k, val))
		default:
			return nil, fmt.Errorf("unsupported metadata value type %T for key %q", v, k)
		}
	}
	return chroma.NewDocumentMetadata(attrs...), nil
}

// metadataToMap flattens Chroma document metadata back into a generic map.
func metadataToMap(md chroma.DocumentMetadata) map[string]any {
	if md == nil {
		return make(map[string]any)
	}
	keys := md.Keys()
	out := make(map[string]any, len(keys))
	for _, k := range keys {
		if v, ok := md.GetRaw(k); ok {
			out[k] = v
		}
	}
	return out
}

// distanceToScore converts Chroma's cosine distance to a similarity score.
// Assumes the distance metric is bounded in [0,1]; for any other metric the
// conversion has to be revisited.
func distanceToScore(distance float64) float64 {
	return 1 - distance
}

// queryResponseToResults maps the first result group of a Chroma query
// (batch-of-one) into the shared result shape.
func queryResponseToResults(resp chroma.QueryResult) []vectordb.QueryResult {
	docGroups := resp.GetDocumentsGroups()
	if len(docGroups) == 0 {
		return []vectordb.QueryResult{}
	}
	docs := docGroups[0]

	var metas []chroma.DocumentMetadata
	if groups := resp.GetMetadatasGroups(); len(groups) > 0 {
		metas = groups[0]
	}
	var dists []float64
	if groups := resp.GetDistancesGroups(); len(groups) > 0 {
		dists = make([]float64, len(groups[0]))
		for i, d := range groups[0] {
			dists[i] = float64(d)
		}
	}

	results := make([]vectordb.QueryResult, 0, len(docs))
	for i, doc := range docs {
		metadata := make(map[string]any)
		if i < len(metas) && metas[i] != nil {
			metadata = metadataToMap(metas[i])
		}
		if i < len(dists) {
			metadata[vectordb.KeyScore] = distanceToScore(dists[i])
		} else {
			metadata[vectordb.KeyScore] = float64(0)
		}

		results = append(results, vectordb.QueryResult{
			Text:     doc.ContentString(),
			Metadata: metadata,
		})
	}
	return results
}
