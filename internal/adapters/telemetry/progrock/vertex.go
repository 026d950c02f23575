package progrock

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vito/progrock"
	"go.trai.ch/connector/internal/core/domain"
	"go.trai.ch/connector/internal/core/ports"
)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex  *progrock.VertexRecorder
	name    string
	started time.Time
	logger  ports.Logger

	once   sync.Once
	cached bool
}

func newVertex(v *progrock.VertexRecorder, name string, logger ports.Logger) *Vertex {
	return &Vertex{
		vertex:  v,
		name:    name,
		started: time.Now(),
		logger:  logger,
	}
}

// Stdout returns a writer to capture standard output stream.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr returns a writer to capture error output stream.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log records a structured log message associated with this vertex.
func (v *Vertex) Log(level domain.LogLevel, msg string) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "[%s] %s\n", level.String(), msg)
}

// Complete marks the vertex as finished (successfully or with an error).
// Only the first call has an effect.
func (v *Vertex) Complete(err error) {
	v.once.Do(func() {
		v.vertex.Done(err)
		if err != nil {
			v.logger.Debug(fmt.Sprintf("%s failed after %s", v.name, time.Since(v.started).Round(time.Millisecond)))
			return
		}
		state := "done"
		if v.cached {
			state = "cached"
		}
		v.logger.Debug(fmt.Sprintf("%s %s in %s", v.name, state, time.Since(v.started).Round(time.Millisecond)))
	})
}

// Cached marks the vertex as a cache hit.
func (v *Vertex) Cached() {
	v.cached = true
	v.vertex.Cached()
}
