package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/optilab/stsbench/internal/config"
	"github.com/samber/lo"
)

// WatchdogBuffer is the grace period granted to external solvers on top of
// the configured timeout before the process is killed.
const WatchdogBuffer = 10 * time.Second

// Solution payload conventions shared by every backend. In-process
// backends render the same markers external solvers print, so a single
// normalization pass covers both.
const (
	MarkerUnsat   = "=====UNSATISFIABLE====="
	MarkerUnknown = "=====UNKNOWN====="
	TimeMarker    = "% time elapsed:"
)

// RawOutcome is whatever a solver invocation produced, completely
// unjudged: the captured payload, the process exit code, the wall-clock
// duration and whether the watchdog fired. Interpretation is the output
// normalizer's job.
type RawOutcome struct {
	Payload  string
	Stderr   string
	ExitCode int
	Duration time.Duration
	TimedOut bool
	Err      string
}

// Backend runs one solver paradigm against a configuration. Invoke never
// panics and never returns an error: every failure mode is folded into
// the RawOutcome.
type Backend interface {
	Name() string
	Paradigm() string
	Dialect(cfg config.Configuration) Dialect
	Invoke(ctx context.Context, cfg config.Configuration, seed int64) RawOutcome
}

// StampElapsed appends the canonical timing marker to a payload.
func StampElapsed(payload string, elapsed time.Duration) string {
	return fmt.Sprintf("%s\n%s %.3f s\n", payload, TimeMarker, elapsed.Seconds())
}

// Registry holds the available backends by name.
type Registry struct {
	backends map[string]Backend
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{backends: map[string]Backend{}}
}

func (r *Registry) Register(backend Backend) {
	if _, exists := r.backends[backend.Name()]; !exists {
		r.order = append(r.order, backend.Name())
	}
	r.backends[backend.Name()] = backend
}

func (r *Registry) Get(name string) (Backend, bool) {
	backend, found := r.backends[name]
	return backend, found
}

// Names lists the registered backends in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Resolve maps backend names to backends, failing on the first unknown
// name. An empty selection means every registered backend.
func (r *Registry) Resolve(names []string) ([]Backend, error) {
	if len(names) == 0 {
		names = r.Names()
	}
	backends := make([]Backend, 0, len(names))
	for _, name := range names {
		backend, found := r.Get(name)
		if !found {
			return nil, fmt.Errorf("unknown solver backend %q, known: %v", name, r.Names())
		}
		backends = append(backends, backend)
	}
	return backends, nil
}

// DefaultRegistry wires up every supported backend.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, backend := range []Backend{
		NewGiniBackend(),
		NewGophersatBackend(),
		NewKissatBackend(),
		NewCadicalBackend(),
		NewChuffedBackend(),
		NewGecodeBackend(),
		NewCVC5Backend(),
		NewCBCBackend(),
	} {
		registry.Register(backend)
	}
	return registry
}

// InProcessNames lists the backends that need no external executables.
func InProcessNames() []string {
	return []string{"gini", "gophersat"}
}

func timeoutMillis(cfg config.Configuration) int64 {
	return cfg.Timeout.Milliseconds()
}

func timeoutSeconds(cfg config.Configuration) int {
	return int(lo.Max([]int64{1, int64(cfg.Timeout.Seconds())}))
}
