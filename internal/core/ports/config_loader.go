package ports

import "go.trai.ch/connector/internal/core/domain"

// SettingsLoader defines the interface for loading the tool settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type SettingsLoader interface {
	// Load returns the validated settings, falling back to defaults when no settings file exists.
	Load() (domain.Settings, error)
}
