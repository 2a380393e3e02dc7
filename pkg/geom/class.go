package geom

import (
	"strings"

	"github.com/google/uuid"
)

// Class describes which components of a transform are non-trivial. Every
// mutating method keeps it in step with the numeric content.
type Class struct {
	Translation bool
	Rotation    bool
	Scale       bool
	Reflection  bool
	Shared      bool
}

// IsIdentity reports a transform with no translation, rotation or scale.
func (c Class) IsIdentity() bool { return !c.Translation && !c.Rotation && !c.Scale }

// IsCombi reports translation together with rotation.
func (c Class) IsCombi() bool { return c.Translation && c.Rotation }

// IsGeneral reports translation, rotation and scale together.
func (c Class) IsGeneral() bool { return c.Translation && c.Rotation && c.Scale }

func (c Class) String() string {
	if c.IsIdentity() && !c.Reflection {
		return "identity"
	}
	var parts []string
	if c.Translation {
		parts = append(parts, "translation")
	}
	if c.Rotation {
		parts = append(parts, "rotation")
	}
	if c.Scale {
		parts = append(parts, "scale")
	}
	if c.Reflection {
		parts = append(parts, "reflection")
	}
	if c.Shared {
		parts = append(parts, "shared")
	}
	return strings.Join(parts, "|")
}

// kindLetter is the prefix of registry default names.
func (c Class) kindLetter() byte {
	switch {
	case c.IsGeneral():
		return 'g'
	case c.IsCombi():
		return 'c'
	case c.Scale:
		return 's'
	case c.Rotation:
		return 'r'
	case c.Translation:
		return 't'
	}
	return 'n'
}

// Meta carries the naming side of a transform. It is kept apart from the
// numeric payload and from Class.
type Meta struct {
	name       string
	id         string
	registered bool
	shared     bool
}

// Name returns the user-visible name, possibly empty.
func (m *Meta) Name() string { return m.name }

// SetName renames the transform. Renaming a registered transform does not
// move its registry entry.
func (m *Meta) SetName(name string) { m.name = name }

// ID returns a stable per-instance identity, generated on first use.
func (m *Meta) ID() string {
	if m.id == "" {
		m.id = uuid.NewString()
	}
	return m.id
}

// IsRegistered reports whether the transform was inserted into a Registry.
func (m *Meta) IsRegistered() bool { return m.registered }

// SetShared marks the transform as referenced from several places.
func (m *Meta) SetShared(flag bool) { m.shared = flag }

func (m *Meta) meta() *Meta { return m }

// copyMeta returns the metadata a clone starts with: same name, fresh
// identity, unregistered.
func (m *Meta) copyMeta() Meta { return Meta{name: m.name} }
