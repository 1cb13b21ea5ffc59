package config

import (
	"fmt"
	"os"

	"someday/internal/repository"
	"someday/internal/repository/file"
	"someday/internal/repository/memory"
	"someday/internal/repository/sqlite"
)

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment reads SD_ENV, defaulting to production
func GetEnvironment() Environment {
	switch os.Getenv("SD_ENV") {
	case "development":
		return Development
	case "testing":
		return Testing
	default:
		return Production
	}
}

// CreateRepository creates the repository backend named by the configuration
func CreateRepository(config *Config) (repository.Repository, error) {
	if config.Storage.Backend == BackendMemory {
		return memory.New(), nil
	}

	if err := os.MkdirAll(config.Storage.Dir, os.FileMode(config.Storage.DirPermissions)); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	path := config.GetStoragePath()

	switch config.Storage.Backend {
	case BackendFile:
		return file.New(path, os.FileMode(config.Storage.DirPermissions))
	default:
		repo, err := sqlite.New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	}
}

// RepositoryFactory creates repository instances based on environment
type RepositoryFactory struct {
	env    Environment
	config *Config
}

// NewRepositoryFactory creates a new repository factory for the given environment
func NewRepositoryFactory(env Environment, config *Config) *RepositoryFactory {
	return &RepositoryFactory{env: env, config: config}
}

// CreateRepository creates a repository instance based on the current environment.
// Testing always uses memory; development keeps its data in the working
// directory.
func (rf *RepositoryFactory) CreateRepository() (repository.Repository, error) {
	switch rf.env {
	case Testing:
		return memory.New(), nil
	case Development:
		cfg := *rf.config
		cfg.Storage.Dir = "."
		return CreateRepository(&cfg)
	default:
		return CreateRepository(rf.config)
	}
}
