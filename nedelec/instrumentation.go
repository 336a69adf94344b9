package nedelec

import (
	"log/slog"
	"sync"
	"time"
)

// Event names reported through Instrumentation
const (
	EventMeshGeneration  = "mesh_generation"
	EventSignsGeneration = "signs_generation"
	EventMatrixAssembly  = "matrix_assembly"
	EventSolving         = "solving"
)

// Instrumentation receives the begin and end of each phase. args are slog
// style key value pairs describing the finished phase.
type Instrumentation interface {
	EventBegin(name string)
	EventEnd(name string, args ...any)
}

type noInstrumentation struct{}

func (noInstrumentation) EventBegin(string)       {}
func (noInstrumentation) EventEnd(string, ...any) {}

// SlogInstrumentation logs every finished event with its wall time
type SlogInstrumentation struct {
	Logger *slog.Logger
	mu     sync.Mutex
	start  map[string]time.Time
}

func NewSlogInstrumentation(logger *slog.Logger) *SlogInstrumentation {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogInstrumentation{
		Logger: logger,
		start:  make(map[string]time.Time),
	}
}

func (si *SlogInstrumentation) EventBegin(name string) {
	si.mu.Lock()
	si.start[name] = time.Now()
	si.mu.Unlock()
	si.Logger.Debug("begin", "event", name)
}

func (si *SlogInstrumentation) EventEnd(name string, args ...any) {
	si.mu.Lock()
	start, ok := si.start[name]
	delete(si.start, name)
	si.mu.Unlock()
	attrs := []any{"event", name}
	if ok {
		attrs = append(attrs, "time", time.Since(start))
	}
	si.Logger.Info("end", append(attrs, args...)...)
}
