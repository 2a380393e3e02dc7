package geom

import "math"

// equalTolerance is the component tolerance used by Equal on rotations,
// scales and composite transforms.
const equalTolerance = 1e-10

// Matrix is a transform between a local frame and its master frame. The set
// of implementations is closed: Identity, Translation, Rotation, Scale,
// Combi, General and HMatrix.
type Matrix interface {
	Name() string
	SetName(name string)
	ID() string
	IsRegistered() bool
	Class() Class

	// Translation, RotationMatrix and Scale expose the numeric components.
	// Kinds without a component return the neutral value.
	Translation() Vec3
	RotationMatrix() Mat3
	Scale() Vec3

	// LocalToMaster maps a point; LocalToMasterVect maps a direction and
	// ignores translation. MasterToLocal* are the inverse mappings.
	LocalToMaster(local Vec3) Vec3
	LocalToMasterVect(local Vec3) Vec3
	MasterToLocal(master Vec3) Vec3
	MasterToLocalVect(master Vec3) Vec3

	// Inverse returns a new transform of the narrowest kind able to hold the
	// inverse.
	Inverse() Matrix
	Clone() Matrix

	meta() *Meta
}

// Rotator is implemented by transforms that can be rotated in place about a
// master-frame axis.
type Rotator interface {
	RotateX(angle float64)
	RotateY(angle float64)
	RotateZ(angle float64)
}

// Reflector is implemented by transforms that can be reflected in place about
// a coordinate plane. With leftside the reflection is applied in the master
// frame (F·M) and, unless rotonly, also flips the translation component;
// otherwise it is applied in the local frame (M·F).
type Reflector interface {
	ReflectX(leftside, rotonly bool)
	ReflectY(leftside, rotonly bool)
	ReflectZ(leftside, rotonly bool)
}

// Compose multiplies ms left to right into a new HMatrix. The result maps a
// point through the last matrix first:
//
//	Compose(a, b).LocalToMaster(p) == a.LocalToMaster(b.LocalToMaster(p))
//
// Compose with no arguments returns the identity.
func Compose(ms ...Matrix) *HMatrix {
	h := NewHMatrix()
	for _, m := range ms {
		h.Multiply(m)
	}
	return h
}

// Equal compares the numeric components of two transforms within 1e-10.
func Equal(a, b Matrix) bool {
	return vecWithin(a.Translation(), b.Translation(), equalTolerance) &&
		matWithin(a.RotationMatrix(), b.RotationMatrix(), equalTolerance) &&
		vecWithin(a.Scale(), b.Scale(), equalTolerance)
}

// Homogeneous returns the 4x4 form of m in column-major order: the linear
// block R·diag(S) occupies the upper-left 3x3 and the translation sits at
// indices 12, 13 and 14.
func Homogeneous(m Matrix) [16]float64 {
	l := m.RotationMatrix().MulDiag(m.Scale())
	t := m.Translation()
	var h [16]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			h[4*j+i] = l[3*i+j]
		}
		h[12+i] = t[i]
	}
	h[15] = 1
	return h
}

// IsRotAboutZ reports whether the rotation part of m leaves the Z axis in
// place (possibly flipped).
func IsRotAboutZ(m Matrix) bool {
	if m.Class().IsIdentity() {
		return true
	}
	r := m.RotationMatrix()
	return math.Abs(r[2]) < 1e-9 && math.Abs(r[5]) < 1e-9 &&
		math.Abs(r[6]) < 1e-9 && math.Abs(r[7]) < 1e-9
}

func vecWithin(a, b Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func matWithin(a, b Mat3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
