package ports

// ResultWriter hands a completion result to the editor through a file.
//
//go:generate go run go.uber.org/mock/mockgen -source=handoff.go -destination=mocks/mock_handoff.go -package=mocks
type ResultWriter interface {
	// Write stores result in a fresh file and returns its path.
	Write(result string) (string, error)
}
