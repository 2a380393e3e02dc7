package geom

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// Registry is a name-keyed set of transforms. Insertion is
// insert-if-absent and entries are never replaced. It is safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Matrix
	order  []Matrix
	logger *log.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{byName: make(map[string]Matrix), logger: log.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Register inserts m under its name. An unnamed m is given a default name
// built from its kind and the first free index from the current registry
// size. When the name is
// already taken the existing entry is returned with false and m is left
// untouched. Registering a Combi or General also registers its rotation.
func (r *Registry) Register(m Matrix) (Matrix, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(m)
}

func (r *Registry) register(m Matrix) (Matrix, bool) {
	name := m.Name()
	if name == "" {
		name = r.defaultName(kindLetter(m))
	}
	if existing, ok := r.byName[name]; ok {
		if existing == m {
			return existing, true
		}
		r.logger.Debug("transform name already registered", "name", name)
		return existing, false
	}
	md := m.meta()
	md.name = name
	md.registered = true
	r.byName[name] = m
	r.order = append(r.order, m)
	r.logger.Debug("registered transform", "name", name, "class", m.Class())

	var rot *Rotation
	switch v := m.(type) {
	case *Combi:
		rot = v.rot
	case *General:
		rot = v.rot
	}
	if rot != nil && !rot.registered {
		r.register(rot)
	}
	return m, true
}

// defaultName returns <kind><index>, skipping indices taken by explicit
// names.
func (r *Registry) defaultName(kind byte) string {
	for i := len(r.order); ; i++ {
		name := fmt.Sprintf("%c%d", kind, i)
		if _, taken := r.byName[name]; !taken {
			return name
		}
	}
}

func kindLetter(m Matrix) byte {
	if _, ok := m.(*HMatrix); ok {
		return 'h'
	}
	return m.Class().kindLetter()
}

// Lookup returns the transform registered under name.
func (r *Registry) Lookup(name string) (Matrix, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.byName[name]
	if !ok {
		return nil, newError(CodeNotFound, "Registry.Lookup", "no transform named %q", name)
	}
	return m, nil
}

// All returns the registered transforms in insertion order.
func (r *Registry) All() []Matrix {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Matrix, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered transforms.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
