package geom

// rigid is the translation + rotation payload shared by Combi and General.
// The rotation may be referenced from elsewhere; it is cloned before the
// first mutation and from then on owned.
type rigid struct {
	t     Vec3
	rot   *Rotation // nil means no rotation
	owned bool
}

func (r *rigid) rotMatrix() Mat3 {
	if r.rot == nil {
		return identityMatrix
	}
	return r.rot.m
}

// ownRotation returns a rotation that may be mutated in place.
func (r *rigid) ownRotation() *Rotation {
	switch {
	case r.rot == nil:
		r.rot = NewRotation()
	case !r.owned:
		r.rot = r.rot.clone()
	}
	r.owned = true
	return r.rot
}

func (r *rigid) rotClass() (rotation, reflection bool) {
	if r.rot == nil {
		return false, false
	}
	return r.rot.rotation, r.rot.reflection
}

func (r *rigid) Translation() Vec3    { return r.t }
func (r *rigid) RotationMatrix() Mat3 { return r.rotMatrix() }

// Rotation returns the referenced rotation, or nil.
func (r *rigid) Rotation() *Rotation { return r.rot }

// IsOwned reports whether the rotation belongs to this transform alone.
func (r *rigid) IsOwned() bool { return r.owned }

// SetRotation references rot without copying it. rot is never mutated
// through this transform.
func (r *rigid) SetRotation(rot *Rotation) {
	r.rot = rot
	r.owned = false
	if rot != nil {
		rot.SetShared(true)
	}
}

// CopyRotation stores an owned copy of rot.
func (r *rigid) CopyRotation(rot *Rotation) {
	if rot == nil {
		r.rot, r.owned = nil, false
		return
	}
	r.rot, r.owned = rot.clone(), true
}

func (r *rigid) SetTranslation(dx, dy, dz float64) { r.t = Vec3{dx, dy, dz} }
func (r *rigid) SetDx(dx float64)                  { r.t[0] = dx }
func (r *rigid) SetDy(dy float64)                  { r.t[1] = dy }
func (r *rigid) SetDz(dz float64)                  { r.t[2] = dz }

// RotateX rotates the whole transform about the master X axis: both the
// rotation and the translation turn.
func (r *rigid) RotateX(angle float64) { r.rotate(0, angle) }
func (r *rigid) RotateY(angle float64) { r.rotate(1, angle) }
func (r *rigid) RotateZ(angle float64) { r.rotate(2, angle) }

func (r *rigid) rotate(axis int, angle float64) {
	e := elementary(axis, angle)
	rot := r.ownRotation()
	rot.setRaw(e.Mul(rot.m))
	r.t = e.MulVec(r.t)
}

func (r *rigid) ReflectX(leftside, rotonly bool) { r.reflect(0, leftside, rotonly) }
func (r *rigid) ReflectY(leftside, rotonly bool) { r.reflect(1, leftside, rotonly) }
func (r *rigid) ReflectZ(leftside, rotonly bool) { r.reflect(2, leftside, rotonly) }

func (r *rigid) reflect(axis int, leftside, rotonly bool) {
	rot := r.ownRotation()
	if leftside {
		if !rotonly {
			r.t[axis] = -r.t[axis]
		}
		rot.setRaw(rot.m.reflectRow(axis))
		return
	}
	rot.setRaw(rot.m.reflectColumn(axis))
}

// clone returns a deep copy; the copy owns its rotation.
func (r *rigid) clone() rigid {
	c := rigid{t: r.t}
	if r.rot != nil {
		c.rot, c.owned = r.rot.clone(), true
	}
	return c
}
