package ports

import "context"

// Watcher observes directory trees for changes.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch blocks until ctx is done, calling onChange with the changed paths
	// once the debounce window after a burst of events has elapsed.
	Watch(ctx context.Context, roots []string, onChange func(paths []string)) error
}
