package embedding

import "go.uber.org/fx"

// FXModule wires the embedding client into Fx.
//
// It provides:
//   - *Config   (NewConfig)
//   - Provider  (NewProvider)
//   - *Client   (built over the Provider)
//
// The Provider is a separate graph node so applications can decorate it,
// e.g. with fx.Decorate(embcache.WrapProvider) for Redis caching.
var FXModule = fx.Module(
	"embedding",

	fx.Provide(
		NewConfig,
		NewProvider,
		func(p Provider, cfg *Config) *Client {
			return NewClientWithProvider(p, cfg.Dimensions)
		},
	),
)
