// Package chain accumulates placement transforms from an outermost
// container down to a leaf. Each level keeps the global matrix of the path
// so far, so popping a level restores the previous global exactly.
package chain

import (
	"fmt"

	"github.com/chazu/frames/pkg/geom"
)

// Stack is a placement stack. The zero value is an empty stack whose global
// transform is the identity.
type Stack struct {
	locals  []geom.Matrix
	globals []*geom.HMatrix
}

// New returns a stack with ms pushed in order.
func New(ms ...geom.Matrix) *Stack {
	s := &Stack{}
	for _, m := range ms {
		s.Push(m)
	}
	return s
}

// Push appends a local transform below the current level.
func (s *Stack) Push(m geom.Matrix) {
	var g *geom.HMatrix
	if n := len(s.globals); n > 0 {
		g = s.globals[n-1].Mul(m)
	} else {
		g = geom.NewHMatrixFrom(m)
	}
	s.locals = append(s.locals, m)
	s.globals = append(s.globals, g)
}

// Pop removes the deepest level and returns its local transform.
func (s *Stack) Pop() (geom.Matrix, bool) {
	n := len(s.locals)
	if n == 0 {
		return nil, false
	}
	m := s.locals[n-1]
	s.locals = s.locals[:n-1]
	s.globals = s.globals[:n-1]
	return m, true
}

// Reset empties the stack.
func (s *Stack) Reset() {
	s.locals = s.locals[:0]
	s.globals = s.globals[:0]
}

// Depth returns the number of levels.
func (s *Stack) Depth() int { return len(s.locals) }

// Local returns the local transform pushed at level i (0 is outermost).
func (s *Stack) Local(i int) geom.Matrix { return s.locals[i] }

// Global returns a copy of the global transform of the deepest level.
func (s *Stack) Global() *geom.HMatrix { return s.GlobalAt(len(s.globals) - 1) }

// GlobalAt returns a copy of the global transform of level i. A negative
// level yields the identity.
func (s *Stack) GlobalAt(i int) *geom.HMatrix {
	if i < 0 {
		return geom.NewHMatrix()
	}
	return geom.NewHMatrixFrom(s.globals[i])
}

func (s *Stack) top() geom.Matrix {
	if n := len(s.globals); n > 0 {
		return s.globals[n-1]
	}
	return geom.NewIdentity()
}

// LocalToMaster maps a point of the deepest frame to the outermost frame.
func (s *Stack) LocalToMaster(p geom.Vec3) geom.Vec3 { return s.top().LocalToMaster(p) }

// LocalToMasterVect maps a direction of the deepest frame outwards.
func (s *Stack) LocalToMasterVect(v geom.Vec3) geom.Vec3 { return s.top().LocalToMasterVect(v) }

// MasterToLocal maps a point of the outermost frame into the deepest frame.
func (s *Stack) MasterToLocal(p geom.Vec3) geom.Vec3 { return s.top().MasterToLocal(p) }

// MasterToLocalVect maps a direction of the outermost frame inwards.
func (s *Stack) MasterToLocalVect(v geom.Vec3) geom.Vec3 { return s.top().MasterToLocalVect(v) }

// Resolve looks up names in reg, outermost first.
func Resolve(reg *geom.Registry, names []string) ([]geom.Matrix, error) {
	ms := make([]geom.Matrix, 0, len(names))
	for _, name := range names {
		m, err := reg.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("chain: resolving %q: %w", name, err)
		}
		ms = append(ms, m)
	}
	return ms, nil
}
