package geom

import (
	"fmt"
	"math"
)

// DefaultTolerance bounds the deviation from unit length and orthogonality
// accepted for rotation matrix columns.
const DefaultTolerance = 1e-5

// lockTolerance bounds sin(theta) for Angles to take the degenerate branch.
// Below it the dropped terms are smaller than the rounding of the matrix.
const lockTolerance = 1e-12

// Rotation is an orthonormal 3x3 matrix. A determinant of -1 marks a
// reflection.
type Rotation struct {
	Meta
	m          Mat3
	rotation   bool
	reflection bool
}

// EulerAngles holds z-x-z Euler angles in degrees.
type EulerAngles struct {
	Phi, Theta, Psi float64
	// Locked reports the degenerate branch: Theta is 0 or 180, Psi is forced
	// to 0 and Phi carries the whole rotation about Z.
	Locked bool
}

// NewRotation returns the identity rotation.
func NewRotation() *Rotation { return &Rotation{m: identityMatrix} }

// NewRotationEuler returns R = Rz(phi)·Rx(theta)·Rz(psi).
func NewRotationEuler(phi, theta, psi float64) *Rotation {
	r := &Rotation{}
	r.SetAngles(phi, theta, psi)
	return r
}

// NewRotationAxes builds a rotation from the polar (theta) and azimuthal
// (phi) angles of each local axis expressed in the master frame.
func NewRotationAxes(theta1, phi1, theta2, phi2, theta3, phi3 float64) (*Rotation, error) {
	r := NewRotation()
	if err := r.SetAxesAngles(theta1, phi1, theta2, phi2, theta3, phi3); err != nil {
		return nil, err
	}
	return r, nil
}

// NewRotationMatrix validates m and wraps it.
func NewRotationMatrix(m Mat3) (*Rotation, error) {
	r := NewRotation()
	if err := r.SetMatrix(m); err != nil {
		return nil, err
	}
	return r, nil
}

// NewRotationFrom copies the rotation component of any transform. It fails
// when that component is not orthonormal, as in an HMatrix holding a baked
// non-uniform scale.
func NewRotationFrom(m Matrix) (*Rotation, error) {
	r := NewRotation()
	if err := r.SetMatrix(m.RotationMatrix()); err != nil {
		return nil, err
	}
	r.name = m.Name()
	return r, nil
}

// CheckMatrix verifies that the columns of m are unit vectors and mutually
// orthogonal within tol.
func CheckMatrix(m Mat3, tol float64) error {
	for j := 0; j < 3; j++ {
		l := m.Column(j).Length()
		if math.Abs(l-1) > tol {
			return newError(CodeInvalidParameter, "CheckMatrix", "column %d has length %g", j, l)
		}
	}
	for i := 0; i < 2; i++ {
		for j := i + 1; j < 3; j++ {
			if d := m.Column(i).Dot(m.Column(j)); math.Abs(d) > tol {
				return newError(CodeInvalidParameter, "CheckMatrix", "columns %d and %d are not orthogonal (dot %g)", i, j, d)
			}
		}
	}
	return nil
}

// setRaw stores m without validation and reclassifies. Callers guarantee m
// is orthonormal or deliberately hold a non-orthonormal block.
func (r *Rotation) setRaw(m Mat3) {
	r.m = m
	r.classify()
}

func (r *Rotation) classify() {
	r.rotation = !r.m.isIdentity(1e-12)
	r.reflection = r.m.Determinant() < 0
}

func (r *Rotation) Class() Class {
	return Class{Rotation: r.rotation, Reflection: r.reflection, Shared: r.shared}
}

func (r *Rotation) Translation() Vec3    { return nullVector }
func (r *Rotation) RotationMatrix() Mat3 { return r.m }
func (r *Rotation) Scale() Vec3          { return unitScale }

// SetAngles sets the matrix from z-x-z Euler angles (degrees).
func (r *Rotation) SetAngles(phi, theta, psi float64) {
	sphi, cphi := math.Sincos(phi * degToRad)
	sthe, cthe := math.Sincos(theta * degToRad)
	spsi, cpsi := math.Sincos(psi * degToRad)
	r.setRaw(Mat3{
		cpsi*cphi - cthe*sphi*spsi, -spsi*cphi - cthe*sphi*cpsi, sthe * sphi,
		cpsi*sphi + cthe*cphi*spsi, -spsi*sphi + cthe*cphi*cpsi, -sthe * cphi,
		spsi * sthe, cpsi * sthe, cthe,
	})
}

// SetAxesAngles sets column i to the unit vector with polar angle theta_i and
// azimuth phi_i. The result must be orthonormal; otherwise the rotation is
// left unchanged and an ErrInvalidParameter error is returned.
func (r *Rotation) SetAxesAngles(theta1, phi1, theta2, phi2, theta3, phi3 float64) error {
	var m Mat3
	for j, a := range [3][2]float64{{theta1, phi1}, {theta2, phi2}, {theta3, phi3}} {
		st, ct := math.Sincos(a[0] * degToRad)
		sp, cp := math.Sincos(a[1] * degToRad)
		m[j], m[3+j], m[6+j] = st*cp, st*sp, ct
	}
	if err := CheckMatrix(m, DefaultTolerance); err != nil {
		return &Error{Code: CodeInvalidParameter, Op: "Rotation.SetAxesAngles", Message: "axes are not orthogonal", Cause: err}
	}
	r.setRaw(m)
	return nil
}

// SetMatrix validates m with DefaultTolerance and stores it.
func (r *Rotation) SetMatrix(m Mat3) error { return r.SetMatrixTolerance(m, DefaultTolerance) }

// SetMatrixTolerance validates m with tol and stores it. An invalid matrix is
// rejected and the rotation keeps its previous value.
func (r *Rotation) SetMatrixTolerance(m Mat3, tol float64) error {
	if err := CheckMatrix(m, tol); err != nil {
		return &Error{Code: CodeInvalidParameter, Op: "Rotation.SetMatrix", Cause: err}
	}
	r.setRaw(m)
	return nil
}

// Clear resets to the identity.
func (r *Rotation) Clear() { r.setRaw(identityMatrix) }

// IsValid reports whether the matrix is orthonormal within DefaultTolerance.
func (r *Rotation) IsValid() bool { return r.m.isOrthonormal(DefaultTolerance) }

// Orthonormalize corrects accumulated drift with Gram-Schmidt on the
// columns, keeping the handedness of the third column.
func (r *Rotation) Orthonormalize() error {
	c0, c1, c2 := r.m.Column(0), r.m.Column(1), r.m.Column(2)
	c0 = c0.Normalized()
	c1 = c1.Sub(c0.MulScalar(c1.Dot(c0))).Normalized()
	c2 = c2.Sub(c0.MulScalar(c2.Dot(c0))).Sub(c1.MulScalar(c2.Dot(c1))).Normalized()
	if c0.IsZero() || c1.IsZero() || c2.IsZero() {
		return newError(CodeSingular, "Rotation.Orthonormalize", "matrix columns are linearly dependent")
	}
	r.setRaw(Mat3{
		c0[0], c1[0], c2[0],
		c0[1], c1[1], c2[1],
		c0[2], c1[2], c2[2],
	})
	return nil
}

// Determinant returns +1 for a proper rotation and -1 for a reflection.
func (r *Rotation) Determinant() float64 { return r.m.Determinant() }

// Angles returns the z-x-z Euler angles reproducing the matrix. Theta is in
// [0, 180]. When theta is 0 or 180 the decomposition is not unique; psi is
// then set to 0 and Locked is reported. A reflection has no Euler angles.
func (r *Rotation) Angles() (EulerAngles, error) {
	m := r.m
	if r.reflection {
		return EulerAngles{}, newError(CodeSingular, "Rotation.Angles", "matrix is a reflection")
	}
	sinTheta := math.Hypot(m[2], m[5])
	if sinTheta < lockTolerance {
		theta := 0.0
		if m[8] < 0 {
			theta = 180
		}
		return EulerAngles{
			Phi:    math.Atan2(-m[8]*m[1], m[0]) * radToDeg,
			Theta:  theta,
			Locked: true,
		}, nil
	}
	phi := math.Atan2(m[2], -m[5])
	// Row 0 of Rz(-phi)·R is (cos psi, -sin psi, 0). Reading psi there
	// instead of from m6, m7 keeps it accurate when sin(theta) is tiny.
	sp, cp := math.Sincos(phi)
	psi := math.Atan2(-(cp*m[1] + sp*m[4]), cp*m[0]+sp*m[3])
	return EulerAngles{
		Phi:   phi * radToDeg,
		Theta: math.Atan2(sinTheta, m[8]) * radToDeg,
		Psi:   psi * radToDeg,
	}, nil
}

// AxesAngles returns the polar and azimuthal angles of each local axis; the
// inverse of SetAxesAngles. Azimuths are in [0, 360).
func (r *Rotation) AxesAngles() (theta1, phi1, theta2, phi2, theta3, phi3 float64) {
	var out [6]float64
	for j := 0; j < 3; j++ {
		out[2*j] = math.Acos(clamp(r.m[6+j], -1, 1)) * radToDeg
		phi := math.Atan2(r.m[3+j], r.m[j]) * radToDeg
		if phi < 0 {
			phi += 360
		}
		out[2*j+1] = phi
	}
	return out[0], out[1], out[2], out[3], out[4], out[5]
}

// PhiRotation returns the angle in [0, 360) by which the local X axis is
// turned about Z. With fixX the local Y axis is used instead.
func (r *Rotation) PhiRotation(fixX bool) float64 {
	var phi float64
	if fixX {
		phi = math.Atan2(-r.m[1], r.m[4]) * radToDeg
	} else {
		phi = math.Atan2(r.m[3], r.m[0]) * radToDeg
	}
	if phi < 0 {
		phi += 360
	}
	return phi
}

// RotateX applies a rotation about the master X axis after the current one.
func (r *Rotation) RotateX(angle float64) { r.setRaw(elementary(0, angle).Mul(r.m)) }

// RotateY applies a rotation about the master Y axis after the current one.
func (r *Rotation) RotateY(angle float64) { r.setRaw(elementary(1, angle).Mul(r.m)) }

// RotateZ applies a rotation about the master Z axis after the current one.
func (r *Rotation) RotateZ(angle float64) { r.setRaw(elementary(2, angle).Mul(r.m)) }

// FastRotZ overwrites the XY block with a rotation about Z given its sine
// and cosine. It is only meaningful when IsRotAboutZ holds.
func (r *Rotation) FastRotZ(sin, cos float64) {
	r.m[0], r.m[1] = cos, -sin
	r.m[3], r.m[4] = sin, cos
	r.classify()
}

// ReflectX reflects about the YZ plane, in the master frame when leftside is
// set and in the local frame otherwise. rotonly has no effect on a pure
// rotation.
func (r *Rotation) ReflectX(leftside, rotonly bool) { r.reflect(0, leftside) }

// ReflectY reflects about the ZX plane.
func (r *Rotation) ReflectY(leftside, rotonly bool) { r.reflect(1, leftside) }

// ReflectZ reflects about the XY plane.
func (r *Rotation) ReflectZ(leftside, rotonly bool) { r.reflect(2, leftside) }

func (r *Rotation) reflect(axis int, leftside bool) {
	if leftside {
		r.setRaw(r.m.reflectRow(axis))
	} else {
		r.setRaw(r.m.reflectColumn(axis))
	}
}

// Mul returns r·other: other is applied first.
func (r *Rotation) Mul(other *Rotation) *Rotation {
	out := &Rotation{}
	out.setRaw(r.m.Mul(other.m))
	return out
}

// MultiplyBy composes other into r in place. With after, other is applied
// after r (r = other·r); otherwise before (r = r·other).
func (r *Rotation) MultiplyBy(other *Rotation, after bool) {
	if after {
		r.setRaw(other.m.Mul(r.m))
	} else {
		r.setRaw(r.m.Mul(other.m))
	}
}

// Equal compares matrices within 1e-10.
func (r *Rotation) Equal(other *Rotation) bool { return matWithin(r.m, other.m, equalTolerance) }

func (r *Rotation) LocalToMaster(local Vec3) Vec3      { return r.m.MulVec(local) }
func (r *Rotation) LocalToMasterVect(local Vec3) Vec3  { return r.m.MulVec(local) }
func (r *Rotation) MasterToLocal(master Vec3) Vec3     { return r.m.TransposeMulVec(master) }
func (r *Rotation) MasterToLocalVect(master Vec3) Vec3 { return r.m.TransposeMulVec(master) }

// Inverse returns the transpose as a *Rotation.
func (r *Rotation) Inverse() Matrix {
	out := &Rotation{}
	out.setRaw(r.m.Transpose())
	return out
}

func (r *Rotation) Clone() Matrix { return r.clone() }

func (r *Rotation) clone() *Rotation {
	return &Rotation{Meta: r.copyMeta(), m: r.m, rotation: r.rotation, reflection: r.reflection}
}

func (r *Rotation) String() string {
	return fmt.Sprintf("[%g %g %g; %g %g %g; %g %g %g]",
		r.m[0], r.m[1], r.m[2], r.m[3], r.m[4], r.m[5], r.m[6], r.m[7], r.m[8])
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
