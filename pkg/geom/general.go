package geom

import "math"

// General is a scale, then a rotation, then a translation:
// master = R·(S⊙local) + T.
type General struct {
	Meta
	rigid
	s Vec3
}

// NewGeneral returns the transform with translation (dx, dy, dz), scale
// (sx, sy, sz) and rot. rot is referenced, not copied; nil means no
// rotation.
func NewGeneral(dx, dy, dz, sx, sy, sz float64, rot *Rotation) (*General, error) {
	g := &General{rigid: rigid{t: Vec3{dx, dy, dz}}, s: unitScale}
	if err := g.SetScale(sx, sy, sz); err != nil {
		return nil, err
	}
	g.SetRotation(rot)
	return g, nil
}

// NewGeneralFromMatrix converts any transform. A scale baked into the
// rotation block is split out as by Normalize. A block that still is not
// orthonormal, such as a shear, is rejected with ErrUnrepresentable.
func NewGeneralFromMatrix(m Matrix) (*General, error) {
	g := &General{Meta: Meta{name: m.Name()}, rigid: rigid{t: m.Translation()}, s: m.Scale()}
	if rm := m.RotationMatrix(); !rm.isIdentity(0) {
		g.rot = &Rotation{}
		g.rot.setRaw(rm)
		g.owned = true
		g.Normalize()
		if !g.rot.m.isOrthonormal(DefaultTolerance) {
			return nil, newError(CodeUnrepresentable, "NewGeneralFromMatrix", "linear block is not a rotation times a scale")
		}
	}
	return g, nil
}

// SetScale overwrites the scale. Any zero factor is rejected and the scale
// is left unchanged.
func (g *General) SetScale(sx, sy, sz float64) error {
	v := Vec3{sx, sy, sz}
	if err := checkScale("General.SetScale", v); err != nil {
		return err
	}
	g.s = v
	return nil
}

func (g *General) Scale() Vec3 { return g.s }

func (g *General) Class() Class {
	rotation, reflection := g.rotClass()
	return Class{
		Translation: !g.t.IsZero(),
		Rotation:    rotation,
		Scale:       g.s != unitScale,
		Reflection:  reflection != (g.s[0]*g.s[1]*g.s[2] < 0),
		Shared:      g.shared,
	}
}

func (g *General) LocalToMaster(local Vec3) Vec3 {
	return g.rotMatrix().MulVec(local.Mul(g.s)).Add(g.t)
}

func (g *General) LocalToMasterVect(local Vec3) Vec3 {
	return g.rotMatrix().MulVec(local.Mul(g.s))
}

func (g *General) MasterToLocal(master Vec3) Vec3 {
	return g.unscale(g.rotMatrix().TransposeMulVec(master.Sub(g.t)))
}

func (g *General) MasterToLocalVect(master Vec3) Vec3 {
	return g.unscale(g.rotMatrix().TransposeMulVec(master))
}

func (g *General) unscale(v Vec3) Vec3 {
	return Vec3{v[0] / g.s[0], v[1] / g.s[1], v[2] / g.s[2]}
}

// Normalize moves column norms of the rotation block into the scale when the
// columns are orthogonal but not unit length. It reports whether anything
// changed.
func (g *General) Normalize() bool {
	if g.rot == nil {
		return false
	}
	q, n, ok := g.rot.m.orthogonalColumns(DefaultTolerance)
	if !ok {
		return false
	}
	if math.Abs(n[0]-1) < equalTolerance && math.Abs(n[1]-1) < equalTolerance && math.Abs(n[2]-1) < equalTolerance {
		return false
	}
	g.ownRotation().setRaw(q)
	g.s = g.s.Mul(n)
	return true
}

// Inverse returns the inverse as an *HMatrix.
func (g *General) Inverse() Matrix { return NewHMatrixFrom(g).inverse() }

func (g *General) Clone() Matrix {
	return &General{Meta: g.copyMeta(), rigid: g.rigid.clone(), s: g.s}
}
