package ports

import "go.trai.ch/hob/internal/core/domain"

// ConfigLoader defines the interface for loading the task configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration visible from the given working directory
	// and returns the task registry. Malformed entries are rejected here,
	// before any task runs.
	Load(cwd string) (*domain.Registry, error)

	// DiscoverRoot walks up from cwd to find the project root.
	// Returns the directory containing hob.yaml.
	DiscoverRoot(cwd string) (string, error)
}
