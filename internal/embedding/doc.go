// Package embedding computes text embeddings through an OpenAI-compatible
// inference endpoint.
//
// Application code depends on *Client, which validates configuration and
// enforces the configured output dimensionality. The Provider interface is
// the seam for decorators (see internal/embcache) and test fakes.
//
// Example:
//
//	client, err := embedding.NewClient(embedding.NewConfig())
//	if err != nil {
//	    return err
//	}
//	vector, err := client.CreateEmbedding(ctx, "the sky is blue")
package embedding
