package ports

import "go.trai.ch/connector/internal/core/domain"

// CacheStore persists the last resolved configuration of each project across runs.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Get retrieves the record for a project directory.
	// Returns nil, nil if not found.
	Get(dir domain.ProjectDir) (*domain.CacheRecord, error)

	// Put stores the record, replacing any previous record for the same project.
	Put(record domain.CacheRecord) error

	// List returns all stored records ordered by project directory.
	List() ([]domain.CacheRecord, error)

	// Clear removes every stored record.
	Clear() error
}
