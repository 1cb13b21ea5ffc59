package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"someday/internal/api"
	"someday/internal/config"
	"someday/internal/logging"
	"someday/internal/persistence"
	"someday/internal/repository"
	"someday/internal/services"
)

// Backend bundles the core a command talks to
type Backend struct {
	API   api.API
	Store services.EntityStore
	repo  repository.Repository
}

// Close releases the underlying repository
func (b *Backend) Close() error {
	if b == nil || b.repo == nil {
		return nil
	}
	return b.repo.Close()
}

// BackendFactory assembles a backend from a validated configuration
type BackendFactory func(ctx context.Context, cfg *config.Config) (*Backend, error)

// NewBackend wires repository, persistence adapter, entity store and API
// for the configured environment
func NewBackend(ctx context.Context, cfg *config.Config) (*Backend, error) {
	repo, err := config.NewRepositoryFactory(config.GetEnvironment(), cfg).CreateRepository()
	if err != nil {
		return nil, err
	}

	store, err := services.NewEntityStore(ctx, persistence.NewAdapter(repo),
		services.WithWriteTimeout(cfg.GetWriteTimeout()))
	if err != nil {
		repo.Close()
		return nil, err
	}

	return &Backend{
		API:   api.New(store),
		Store: store,
		repo:  repo,
	}, nil
}

// App represents the main CLI application
type App struct {
	api     api.API
	store   services.EntityStore
	config  *config.Config
	factory BackendFactory
	backend *Backend
	out     io.Writer
	in      io.Reader
}

// NewApp creates a CLI application around an already assembled API.
// Interactive mode is unavailable because there is no entity store.
func NewApp(apiInstance api.API) *App {
	return &App{
		api:    apiInstance,
		config: config.NewConfig(),
		out:    os.Stdout,
		in:     os.Stdin,
	}
}

// NewAppWithFactory creates a CLI application that builds its backend on
// first use, after command line flags have been applied to cfg.
func NewAppWithFactory(cfg *config.Config, factory BackendFactory) *App {
	return &App{
		config:  cfg,
		factory: factory,
		out:     os.Stdout,
		in:      os.Stdin,
	}
}

// SetOutput redirects command output
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// SetInput replaces the reader confirmations are read from
func (a *App) SetInput(r io.Reader) {
	a.in = r
}

// Config returns the application configuration
func (a *App) Config() *config.Config {
	return a.config
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	return NewRootCommand(a).Execute(ctx, args)
}

// Close releases the backend if one was built
func (a *App) Close() error {
	return a.backend.Close()
}

func (a *App) ensureBackend(ctx context.Context) error {
	if a.api != nil {
		return nil
	}
	if a.factory == nil {
		return fmt.Errorf("no backend configured")
	}

	backend, err := a.factory(ctx, a.config)
	if err != nil {
		return err
	}
	logging.Debugf("backend ready: %s", a.config.Storage.Backend)

	a.backend = backend
	a.api = backend.API
	a.store = backend.Store
	return nil
}
