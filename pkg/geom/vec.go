package geom

import "math"

// Vec3 is a point or direction in 3D space.
type Vec3 [3]float64

// Mat3 is a row-major 3x3 matrix. Column j holds local axis j expressed in
// the master frame.
type Mat3 [9]float64

var (
	nullVector     = Vec3{0, 0, 0}
	unitScale      = Vec3{1, 1, 1}
	identityMatrix = Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
)

const (
	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// IdentityMatrix returns the 3x3 identity.
func IdentityMatrix() Mat3 { return identityMatrix }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }

// Neg returns -v.
func (v Vec3) Neg() Vec3 { return Vec3{-v[0], -v[1], -v[2]} }

// Mul returns the component-wise product.
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v[0] * o[0], v[1] * o[1], v[2] * o[2]} }

// MulScalar returns v scaled by k.
func (v Vec3) MulScalar(k float64) Vec3 { return Vec3{v[0] * k, v[1] * k, v[2] * k} }

// Dot returns the scalar product.
func (v Vec3) Dot(o Vec3) float64 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

// Length returns the Euclidean norm.
func (v Vec3) Length() float64 { return math.Sqrt(v.Dot(v)) }

// Normalized returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.MulScalar(1 / l)
}

// IsZero reports whether every component is exactly zero.
func (v Vec3) IsZero() bool { return v[0] == 0 && v[1] == 0 && v[2] == 0 }

// Column returns column j.
func (m Mat3) Column(j int) Vec3 { return Vec3{m[j], m[3+j], m[6+j]} }

// Row returns row i.
func (m Mat3) Row(i int) Vec3 { return Vec3{m[3*i], m[3*i+1], m[3*i+2]} }

// MulVec returns m·v.
func (m Mat3) MulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// TransposeMulVec returns mᵗ·v without building the transpose.
func (m Mat3) TransposeMulVec(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[3]*v[1] + m[6]*v[2],
		m[1]*v[0] + m[4]*v[1] + m[7]*v[2],
		m[2]*v[0] + m[5]*v[1] + m[8]*v[2],
	}
}

// Mul returns m·o.
func (m Mat3) Mul(o Mat3) Mat3 {
	var r Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[3*i+j] = m[3*i]*o[j] + m[3*i+1]*o[3+j] + m[3*i+2]*o[6+j]
		}
	}
	return r
}

// Transpose returns mᵗ.
func (m Mat3) Transpose() Mat3 {
	return Mat3{m[0], m[3], m[6], m[1], m[4], m[7], m[2], m[5], m[8]}
}

// Determinant returns det(m).
func (m Mat3) Determinant() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// MulDiag returns m·diag(s), scaling column j by s[j].
func (m Mat3) MulDiag(s Vec3) Mat3 {
	return Mat3{
		m[0] * s[0], m[1] * s[1], m[2] * s[2],
		m[3] * s[0], m[4] * s[1], m[5] * s[2],
		m[6] * s[0], m[7] * s[1], m[8] * s[2],
	}
}

// DiagMul returns diag(s)·m, scaling row i by s[i].
func (m Mat3) DiagMul(s Vec3) Mat3 {
	return Mat3{
		m[0] * s[0], m[1] * s[0], m[2] * s[0],
		m[3] * s[1], m[4] * s[1], m[5] * s[1],
		m[6] * s[2], m[7] * s[2], m[8] * s[2],
	}
}

// Inverse returns m⁻¹ using the adjugate. ok is false when m is singular.
func (m Mat3) Inverse() (inv Mat3, ok bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-300 {
		return Mat3{}, false
	}
	d := 1 / det
	inv = Mat3{
		(m[4]*m[8] - m[5]*m[7]) * d,
		(m[2]*m[7] - m[1]*m[8]) * d,
		(m[1]*m[5] - m[2]*m[4]) * d,
		(m[5]*m[6] - m[3]*m[8]) * d,
		(m[0]*m[8] - m[2]*m[6]) * d,
		(m[2]*m[3] - m[0]*m[5]) * d,
		(m[3]*m[7] - m[4]*m[6]) * d,
		(m[1]*m[6] - m[0]*m[7]) * d,
		(m[0]*m[4] - m[1]*m[3]) * d,
	}
	return inv, true
}

// isIdentity reports whether m equals the identity within tol.
func (m Mat3) isIdentity(tol float64) bool {
	for i, v := range m {
		if math.Abs(v-identityMatrix[i]) > tol {
			return false
		}
	}
	return true
}

// orthogonalColumns factors m = q·diag(n) when the columns of m are mutually
// orthogonal. n holds the (positive) column lengths.
func (m Mat3) orthogonalColumns(tol float64) (q Mat3, n Vec3, ok bool) {
	c := [3]Vec3{m.Column(0), m.Column(1), m.Column(2)}
	for j := 0; j < 3; j++ {
		n[j] = c[j].Length()
		if n[j] == 0 {
			return Mat3{}, Vec3{}, false
		}
	}
	for i := 0; i < 2; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(c[i].Dot(c[j])) > tol*n[i]*n[j] {
				return Mat3{}, Vec3{}, false
			}
		}
	}
	return m.MulDiag(Vec3{1 / n[0], 1 / n[1], 1 / n[2]}), n, true
}

// isOrthonormal reports whether the columns of m are unit length and
// mutually orthogonal within tol. It is CheckMatrix without the error.
func (m Mat3) isOrthonormal(tol float64) bool {
	for j := 0; j < 3; j++ {
		if math.Abs(m.Column(j).Length()-1) > tol {
			return false
		}
	}
	return math.Abs(m.Column(0).Dot(m.Column(1))) <= tol &&
		math.Abs(m.Column(0).Dot(m.Column(2))) <= tol &&
		math.Abs(m.Column(1).Dot(m.Column(2))) <= tol
}

// elementary returns the rotation matrix about axis (0=x, 1=y, 2=z) by angle
// degrees.
func elementary(axis int, angle float64) Mat3 {
	s, c := math.Sincos(angle * degToRad)
	switch axis {
	case 0:
		return Mat3{1, 0, 0, 0, c, -s, 0, s, c}
	case 1:
		return Mat3{c, 0, s, 0, 1, 0, -s, 0, c}
	default:
		return Mat3{c, -s, 0, s, c, 0, 0, 0, 1}
	}
}

// reflectRow negates row i (a master-side reflection F·m).
func (m Mat3) reflectRow(i int) Mat3 {
	m[3*i], m[3*i+1], m[3*i+2] = -m[3*i], -m[3*i+1], -m[3*i+2]
	return m
}

// reflectColumn negates column j (a local-side reflection m·F).
func (m Mat3) reflectColumn(j int) Mat3 {
	m[j], m[3+j], m[6+j] = -m[j], -m[3+j], -m[6+j]
	return m
}
