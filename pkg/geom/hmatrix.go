package geom

import "fmt"

// factorTolerance bounds the relative column dot product accepted when a
// linear block is split back into rotation and scale.
const factorTolerance = 1e-12

// HMatrix is the dense accumulator: every component is always populated and
// any product of transforms can be held. The rotation slot normally holds an
// orthonormal matrix; when a product has no such factorization the whole
// linear block is stored there and the scale is reset to 1.
type HMatrix struct {
	Meta
	t Vec3
	r Mat3
	s Vec3
}

// NewHMatrix returns the identity accumulator.
func NewHMatrix() *HMatrix { return &HMatrix{r: identityMatrix, s: unitScale} }

// NewHMatrixFrom copies all components of m.
func NewHMatrixFrom(m Matrix) *HMatrix {
	h := &HMatrix{}
	h.CopyFrom(m)
	return h
}

// CopyFrom overwrites h with the components and name of m.
func (h *HMatrix) CopyFrom(m Matrix) {
	h.name = m.Name()
	h.t, h.r, h.s = m.Translation(), m.RotationMatrix(), m.Scale()
}

func (h *HMatrix) Class() Class {
	return Class{
		Translation: !h.t.IsZero(),
		Rotation:    !h.r.isIdentity(1e-12),
		Scale:       h.s != unitScale,
		Reflection:  h.Determinant() < 0,
		Shared:      h.shared,
	}
}

func (h *HMatrix) Translation() Vec3    { return h.t }
func (h *HMatrix) RotationMatrix() Mat3 { return h.r }
func (h *HMatrix) Scale() Vec3          { return h.s }

func (h *HMatrix) SetTranslation(dx, dy, dz float64) { h.t = Vec3{dx, dy, dz} }
func (h *HMatrix) SetDx(dx float64)                  { h.t[0] = dx }
func (h *HMatrix) SetDy(dy float64)                  { h.t[1] = dy }
func (h *HMatrix) SetDz(dz float64)                  { h.t[2] = dz }

// SetRotation stores m in the rotation slot without validation.
func (h *HMatrix) SetRotation(m Mat3) { h.r = m }

// SetScale overwrites the scale. Any zero factor is rejected.
func (h *HMatrix) SetScale(sx, sy, sz float64) error {
	v := Vec3{sx, sy, sz}
	if err := checkScale("HMatrix.SetScale", v); err != nil {
		return err
	}
	h.s = v
	return nil
}

// Clear resets h to the identity.
func (h *HMatrix) Clear() { h.t, h.r, h.s = nullVector, identityMatrix, unitScale }

// baked reports whether the rotation slot holds a non-orthonormal block.
func (h *HMatrix) baked() bool { return !h.r.isOrthonormal(1e-9) }

func (h *HMatrix) linear() Mat3 { return h.r.MulDiag(h.s) }

func (h *HMatrix) LocalToMaster(local Vec3) Vec3     { return h.r.MulVec(local.Mul(h.s)).Add(h.t) }
func (h *HMatrix) LocalToMasterVect(local Vec3) Vec3 { return h.r.MulVec(local.Mul(h.s)) }

func (h *HMatrix) MasterToLocal(master Vec3) Vec3 { return h.MasterToLocalVect(master.Sub(h.t)) }

func (h *HMatrix) MasterToLocalVect(master Vec3) Vec3 {
	var v Vec3
	if h.baked() {
		inv, ok := h.r.Inverse()
		if !ok {
			return Vec3{}
		}
		v = inv.MulVec(master)
	} else {
		v = h.r.TransposeMulVec(master)
	}
	return Vec3{v[0] / h.s[0], v[1] / h.s[1], v[2] / h.s[2]}
}

// Multiply composes right into h so that right is applied first:
// h = h·right.
func (h *HMatrix) Multiply(right Matrix) {
	h.t, h.r, h.s = product(h.t, h.r, h.s, right.Translation(), right.RotationMatrix(), right.Scale())
}

// MultiplyLeft composes left into h so that left is applied last:
// h = left·h.
func (h *HMatrix) MultiplyLeft(left Matrix) {
	h.t, h.r, h.s = product(left.Translation(), left.RotationMatrix(), left.Scale(), h.t, h.r, h.s)
}

// Mul returns h·right as a new HMatrix.
func (h *HMatrix) Mul(right Matrix) *HMatrix {
	out := &HMatrix{t: h.t, r: h.r, s: h.s}
	out.Multiply(right)
	return out
}

// product returns the components of A·B where A = (ta, ra, sa) and
// B = (tb, rb, sb).
func product(ta Vec3, ra Mat3, sa Vec3, tb Vec3, rb Mat3, sb Vec3) (Vec3, Mat3, Vec3) {
	t := ta.Add(ra.MulVec(sa.Mul(tb)))
	switch {
	case rb.isIdentity(0):
		return t, ra, sa.Mul(sb)
	case sa[0] == sa[1] && sa[1] == sa[2]:
		return t, ra.Mul(rb), sa.Mul(sb)
	}
	m := ra.MulDiag(sa).Mul(rb)
	if q, n, ok := m.orthogonalColumns(factorTolerance); ok {
		return t, q, n.Mul(sb)
	}
	return t, m.MulDiag(sb), unitScale
}

// Determinant returns det(rotation block)·sx·sy·sz.
func (h *HMatrix) Determinant() float64 {
	return h.r.Determinant() * h.s[0] * h.s[1] * h.s[2]
}

// Inverse returns the inverse as an *HMatrix. A singular linear block yields
// a transform that collapses every point onto the origin; use Invert to
// detect that case.
func (h *HMatrix) Inverse() Matrix { return h.inverse() }

// Invert returns the inverse, or an ErrSingular-coded error when the linear
// block cannot be inverted.
func (h *HMatrix) Invert() (*HMatrix, error) {
	if _, ok := h.linear().Inverse(); !ok {
		return nil, newError(CodeSingular, "HMatrix.Invert", "linear block is singular")
	}
	return h.inverse(), nil
}

func (h *HMatrix) inverse() *HMatrix {
	out := &HMatrix{}
	rs := Vec3{1 / h.s[0], 1 / h.s[1], 1 / h.s[2]}
	switch {
	case h.r.isIdentity(0):
		out.r, out.s = identityMatrix, rs
		out.t = h.t.Mul(rs).Neg()
	case h.s[0] == h.s[1] && h.s[1] == h.s[2] && !h.baked():
		out.r, out.s = h.r.Transpose(), rs
		out.t = h.r.TransposeMulVec(h.t).Mul(rs).Neg()
	default:
		li, ok := h.linear().Inverse()
		if !ok {
			out.r, out.s = Mat3{}, unitScale
			return out
		}
		if q, n, ok := li.orthogonalColumns(factorTolerance); ok {
			out.r, out.s = q, n
		} else {
			out.r, out.s = li, unitScale
		}
		out.t = li.MulVec(h.t).Neg()
	}
	return out
}

func (h *HMatrix) RotateX(angle float64) { h.rotate(0, angle) }
func (h *HMatrix) RotateY(angle float64) { h.rotate(1, angle) }
func (h *HMatrix) RotateZ(angle float64) { h.rotate(2, angle) }

func (h *HMatrix) rotate(axis int, angle float64) {
	e := elementary(axis, angle)
	h.r = e.Mul(h.r)
	h.t = e.MulVec(h.t)
}

func (h *HMatrix) ReflectX(leftside, rotonly bool) { h.reflect(0, leftside, rotonly) }
func (h *HMatrix) ReflectY(leftside, rotonly bool) { h.reflect(1, leftside, rotonly) }
func (h *HMatrix) ReflectZ(leftside, rotonly bool) { h.reflect(2, leftside, rotonly) }

func (h *HMatrix) reflect(axis int, leftside, rotonly bool) {
	if leftside {
		if !rotonly {
			h.t[axis] = -h.t[axis]
		}
		h.r = h.r.reflectRow(axis)
		return
	}
	h.r = h.r.reflectColumn(axis)
}

// FastRotZ overwrites the XY block of the rotation slot. It is only
// meaningful when IsRotAboutZ holds.
func (h *HMatrix) FastRotZ(sin, cos float64) {
	h.r[0], h.r[1] = cos, -sin
	h.r[3], h.r[4] = sin, cos
}

func (h *HMatrix) Clone() Matrix {
	return &HMatrix{Meta: h.copyMeta(), t: h.t, r: h.r, s: h.s}
}

func (h *HMatrix) String() string {
	return fmt.Sprintf("T=(%g, %g, %g) S=(%g, %g, %g) R=[%g %g %g; %g %g %g; %g %g %g]",
		h.t[0], h.t[1], h.t[2], h.s[0], h.s[1], h.s[2],
		h.r[0], h.r[1], h.r[2], h.r[3], h.r[4], h.r[5], h.r[6], h.r[7], h.r[8])
}
