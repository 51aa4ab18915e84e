package database

import (
	"context"

	"go.uber.org/fx"

	"github.com/hadv/vito-mcp/internal/embedding"
	"github.com/hadv/vito-mcp/internal/vectordb"
)

// FXModule provides the knowledge-base Service via dependency injection.
// The concrete backend (qdrant, chroma or pgvector) is selected from the
// provided Config.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    embedding.FXModule,
//	    database.FXModule,
//	    fx.Invoke(func(svc *database.Service) { ... }),
//	)
var FXModule = fx.Module("database",
	fx.Provide(
		NewConfig,
		NewBackendWithDI,
		NewServiceWithDI,
	),
	fx.Invoke(RegisterDatabaseLifecycle),
)

// backendHandle pairs the selected backend with its close function so the
// lifecycle hook can release it.
type backendHandle struct {
	backend vectordb.Backend
	close   func() error
}

// BackendParams groups the dependencies needed to select and build the
// backend.
type BackendParams struct {
	fx.In

	Config   *Config
	Embedder *embedding.Client
	Logger   Logger
}

// NewBackendWithDI builds the configured backend for Fx.
func NewBackendWithDI(params BackendParams) (vectordb.Backend, *backendHandle, error) {
	backend, closeFn, err := NewBackend(params.Config, params.Embedder, params.Logger)
	if err != nil {
		return nil, nil, err
	}
	return backend, &backendHandle{backend: backend, close: closeFn}, nil
}

// ServiceParams groups the dependencies of the Service. The Observer is
// optional; without one the service records no metrics.
type ServiceParams struct {
	fx.In

	Config   *Config
	Backend  vectordb.Backend
	Embedder *embedding.Client
	Logger   Logger
	Observer Observer `optional:"true"`
}

// NewServiceWithDI constructs the Service for Fx.
func NewServiceWithDI(params ServiceParams) *Service {
	svc := NewService(params.Config, params.Backend, params.Embedder, params.Logger)
	if params.Observer != nil {
		svc.SetObserver(params.Observer)
	}
	return svc
}

// RegisterDatabaseLifecycle initializes the knowledge base on start and
// releases the backend client on stop.
func RegisterDatabaseLifecycle(lc fx.Lifecycle, svc *Service, handle *backendHandle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return svc.Initialize(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return handle.close()
		},
	})
}
