package geom

// Combi is a rotation followed by a translation: master = R·local + T.
type Combi struct {
	Meta
	rigid
}

// NewCombi returns a translation by (dx, dy, dz) after rot. rot is
// referenced, not copied; nil means no rotation.
func NewCombi(dx, dy, dz float64, rot *Rotation) *Combi {
	c := &Combi{rigid: rigid{t: Vec3{dx, dy, dz}}}
	c.SetRotation(rot)
	return c
}

// NewCombiFrom builds a Combi owning copies of tr and rot. Either may be nil.
func NewCombiFrom(tr *Translation, rot *Rotation) *Combi {
	c := &Combi{}
	if tr != nil {
		c.t = tr.t
	}
	c.CopyRotation(rot)
	return c
}

// NewCombiFromMatrix copies the translation and rotation of m. Any scale of m
// is dropped. A rotation block that is not orthonormal is rejected.
func NewCombiFromMatrix(m Matrix) (*Combi, error) {
	c := &Combi{Meta: Meta{name: m.Name()}, rigid: rigid{t: m.Translation()}}
	if !m.RotationMatrix().isIdentity(0) {
		rot, err := NewRotationFrom(m)
		if err != nil {
			return nil, err
		}
		c.rot, c.owned = rot, true
	}
	return c, nil
}

func (c *Combi) Class() Class {
	rotation, reflection := c.rotClass()
	return Class{
		Translation: !c.t.IsZero(),
		Rotation:    rotation,
		Reflection:  reflection,
		Shared:      c.shared,
	}
}

func (c *Combi) Scale() Vec3 { return unitScale }

func (c *Combi) LocalToMaster(local Vec3) Vec3     { return c.rotMatrix().MulVec(local).Add(c.t) }
func (c *Combi) LocalToMasterVect(local Vec3) Vec3 { return c.rotMatrix().MulVec(local) }
func (c *Combi) MasterToLocal(master Vec3) Vec3 {
	return c.rotMatrix().TransposeMulVec(master.Sub(c.t))
}
func (c *Combi) MasterToLocalVect(master Vec3) Vec3 { return c.rotMatrix().TransposeMulVec(master) }

// Multiply composes right into c so that right is applied first:
// T = T + R·T_right, R = R·R_right. A right operand carrying a scale, or a
// rotation block that is not orthonormal, cannot be held by a Combi.
func (c *Combi) Multiply(right Matrix) error {
	rc := right.Class()
	if rc.Scale {
		return newError(CodeUnrepresentable, "Combi.Multiply", "right operand %q carries a scale", right.Name())
	}
	rm := right.RotationMatrix()
	if rc.Rotation || rc.Reflection {
		if err := CheckMatrix(rm, DefaultTolerance); err != nil {
			return &Error{Code: CodeUnrepresentable, Op: "Combi.Multiply", Message: "right rotation block is not orthonormal", Cause: err}
		}
	}
	l := c.rotMatrix()
	c.t = c.t.Add(l.MulVec(right.Translation()))
	if rc.Rotation || rc.Reflection {
		rot := c.ownRotation()
		rot.setRaw(l.Mul(rm))
	}
	return nil
}

// Mul returns c·right as a new Combi.
func (c *Combi) Mul(right Matrix) (*Combi, error) {
	out := &Combi{rigid: c.rigid.clone()}
	if err := out.Multiply(right); err != nil {
		return nil, err
	}
	return out, nil
}

// Inverse returns a *Combi with T = -Rᵗ·T and R = Rᵗ.
func (c *Combi) Inverse() Matrix {
	out := &Combi{}
	if c.rot == nil {
		out.t = c.t.Neg()
		return out
	}
	rt := c.rot.m.Transpose()
	out.t = rt.MulVec(c.t).Neg()
	out.rot = &Rotation{}
	out.rot.setRaw(rt)
	out.owned = true
	return out
}

func (c *Combi) Clone() Matrix { return &Combi{Meta: c.copyMeta(), rigid: c.rigid.clone()} }
