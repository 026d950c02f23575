package ports

// Hasher defines the interface for fingerprinting configuration files.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint returns a stable digest over the contents of the given files, in order.
	Fingerprint(paths ...string) (string, error)

	// Executable returns a digest identifying the program name resolves to on PATH.
	// It changes when the program is upgraded or replaced.
	Executable(name string) (string, error)
}
