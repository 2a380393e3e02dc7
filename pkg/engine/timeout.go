package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/frames/pkg/geom"
)

// EvalTimeout is the default hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

var (
	// ErrTimeout is returned when a script runs past the engine timeout.
	ErrTimeout = errors.New("evaluation timed out")
	// ErrSuperseded is returned when a newer Evaluate call started while
	// this one was running.
	ErrSuperseded = errors.New("evaluation superseded by newer request")
)

// evalResult carries one sandbox run back to Evaluate.
type evalResult struct {
	registry *geom.Registry
	errors   []EvalError
	err      error
}

// generations numbers Evaluate calls. Only the registry of the latest call
// is ever handed out; a sandbox abandoned on timeout keeps running and its
// result is dropped.
type generations struct {
	mu sync.Mutex
	n  uint64
}

func (g *generations) next() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return g.n
}

func (g *generations) current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// await returns the result of run gen from ch, ErrSuperseded if a newer
// run started meanwhile, or ErrTimeout once timeout has passed.
func (g *generations) await(ch <-chan evalResult, gen uint64, timeout time.Duration) (*geom.Registry, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if gen != g.current() {
			return nil, nil, ErrSuperseded
		}
		return res.registry, res.errors, res.err
	case <-timer.C:
		return nil, nil, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}
