package embedding

import "context"

// Provider is the contract for anything that can turn text into vectors.
type Provider interface {
	// Create generates one embedding per input text, in input order.
	Create(ctx context.Context, texts ...string) ([][]float32, error)
}
