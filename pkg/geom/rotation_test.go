package geom

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got Vec3, tol float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "component %d of %v", i, got)
	}
}

func assertMat(t *testing.T, want, got Mat3, tol float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], tol, "element %d of %v", i, got)
	}
}

func randomRotation(rng *rand.Rand) *Rotation {
	return NewRotationEuler(rng.Float64()*360-180, rng.Float64()*180, rng.Float64()*360-180)
}

func TestRotationOrthonormal(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		r := randomRotation(rng)
		m := r.RotationMatrix()
		assertMat(t, identityMatrix, m.Mul(m.Transpose()), 1e-12)
		assert.InDelta(t, 1, math.Abs(r.Determinant()), 1e-12)
		assert.True(t, r.IsValid())
	}
}

func TestRotationPhi90(t *testing.T) {
	r := NewRotationEuler(90, 0, 0)
	assertVec(t, Vec3{0, 1, 0}, r.LocalToMaster(Vec3{1, 0, 0}), 1e-12)
	assertVec(t, Vec3{-1, 0, 0}, r.LocalToMaster(Vec3{0, 1, 0}), 1e-12)
	assertVec(t, Vec3{1, 0, 0}, r.MasterToLocal(Vec3{0, 1, 0}), 1e-12)
	assert.True(t, r.Class().Rotation)
	assert.True(t, IsRotAboutZ(r))
	assert.InDelta(t, 90, r.PhiRotation(false), 1e-12)
}

func TestRotationThetaTiltsZ(t *testing.T) {
	// theta rotates about the X axis once phi and psi are zero.
	r := NewRotationEuler(0, 90, 0)
	assertVec(t, Vec3{0, -1, 0}, r.LocalToMaster(Vec3{0, 0, 1}), 1e-12)
	assert.False(t, IsRotAboutZ(r))
}

func TestRotationAnglesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	cases := [][3]float64{
		{0, 0, 0}, {30, 0, 40}, {10, 180, 20}, {-45, 180, 0}, {90, 90, 90}, {170, 1e-12, -30},
		{30, 0.001, 40}, {30, 0.002, 40}, {30, 179.998, 40}, {-120, 1e-6, 75}, {15, 180 - 1e-6, -60},
	}
	for i := 0; i < 100; i++ {
		cases = append(cases, [3]float64{rng.Float64()*360 - 180, rng.Float64() * 180, rng.Float64()*360 - 180})
	}
	for _, c := range cases {
		r := NewRotationEuler(c[0], c[1], c[2])
		a, err := r.Angles()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, a.Theta, 0.0)
		assert.LessOrEqual(t, a.Theta, 180.0)
		back := NewRotationEuler(a.Phi, a.Theta, a.Psi)
		assertMat(t, r.RotationMatrix(), back.RotationMatrix(), 1e-9)
	}
}

func TestRotationAnglesLocked(t *testing.T) {
	r := NewRotationEuler(30, 0, 40)
	a, err := r.Angles()
	require.NoError(t, err)
	assert.True(t, a.Locked)
	assert.Equal(t, 0.0, a.Psi)
	assert.InDelta(t, 70, a.Phi, 1e-9)

	r = NewRotationEuler(30, 180, 40)
	a, err = r.Angles()
	require.NoError(t, err)
	assert.True(t, a.Locked)
	assert.Equal(t, 180.0, a.Theta)
	assertMat(t, r.RotationMatrix(), NewRotationEuler(a.Phi, a.Theta, a.Psi).RotationMatrix(), 1e-9)

	a, err = NewRotationEuler(30, 60, 40).Angles()
	require.NoError(t, err)
	assert.False(t, a.Locked)
	assert.InDelta(t, 30, a.Phi, 1e-9)
	assert.InDelta(t, 60, a.Theta, 1e-9)
	assert.InDelta(t, 40, a.Psi, 1e-9)

	// Just off the lock the angles stay separate and rebuild the matrix.
	r = NewRotationEuler(30, 0.002, 40)
	a, err = r.Angles()
	require.NoError(t, err)
	assert.False(t, a.Locked)
	assert.InDelta(t, 0.002, a.Theta, 1e-12)
	assertMat(t, r.RotationMatrix(), NewRotationEuler(a.Phi, a.Theta, a.Psi).RotationMatrix(), 1e-12)
}

func TestRotationAnglesOfReflection(t *testing.T) {
	r := NewRotationEuler(10, 20, 30)
	r.ReflectX(true, false)
	assert.True(t, r.Class().Reflection)
	_, err := r.Angles()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSingular))
}

func TestRotationAxes(t *testing.T) {
	r, err := NewRotationAxes(90, 0, 90, 90, 0, 0)
	require.NoError(t, err)
	assertMat(t, identityMatrix, r.RotationMatrix(), 1e-12)

	src := NewRotationEuler(20, 50, 70)
	t1, p1, t2, p2, t3, p3 := src.AxesAngles()
	for _, p := range []float64{p1, p2, p3} {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.Less(t, p, 360.0)
	}
	back, err := NewRotationAxes(t1, p1, t2, p2, t3, p3)
	require.NoError(t, err)
	assertMat(t, src.RotationMatrix(), back.RotationMatrix(), 1e-9)
}

func TestRotationAxesRejectsNonOrthogonal(t *testing.T) {
	_, err := NewRotationAxes(90, 0, 90, 0, 0, 0)
	require.Error(t, err)
	assert.Equal(t, CodeInvalidParameter, GetCode(err))

	r := NewRotationEuler(10, 20, 30)
	before := r.RotationMatrix()
	require.Error(t, r.SetAxesAngles(90, 0, 90, 45, 0, 0))
	assert.Equal(t, before, r.RotationMatrix())
}

func TestRotationSetMatrix(t *testing.T) {
	r := NewRotation()
	err := r.SetMatrix(Mat3{2, 0, 0, 0, 1, 0, 0, 0, 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
	assert.Equal(t, identityMatrix, r.RotationMatrix())

	require.NoError(t, r.SetMatrixTolerance(Mat3{1.001, 0, 0, 0, 1, 0, 0, 0, 1}, 1e-2))
	assert.False(t, r.IsValid())
	require.NoError(t, r.Orthonormalize())
	assert.True(t, r.IsValid())
	assertMat(t, identityMatrix, r.RotationMatrix(), 1e-12)
}

func TestRotationRotateIsLeftMultiply(t *testing.T) {
	r := NewRotationEuler(0, 90, 0)
	r.RotateZ(90)
	want := elementary(2, 90).Mul(NewRotationEuler(0, 90, 0).RotationMatrix())
	assertMat(t, want, r.RotationMatrix(), 1e-12)

	r = NewRotation()
	r.RotateX(90)
	assertVec(t, Vec3{0, 0, 1}, r.LocalToMaster(Vec3{0, 1, 0}), 1e-12)
	r = NewRotation()
	r.RotateY(90)
	assertVec(t, Vec3{0, 0, -1}, r.LocalToMaster(Vec3{1, 0, 0}), 1e-12)
}

func TestRotationFastRotZ(t *testing.T) {
	r := NewRotationEuler(10, 0, 0)
	s, c := math.Sincos(25 * degToRad)
	r.FastRotZ(s, c)
	assertMat(t, NewRotationEuler(25, 0, 0).RotationMatrix(), r.RotationMatrix(), 1e-12)
}

func TestRotationReflect(t *testing.T) {
	base := NewRotationEuler(90, 0, 0)

	left := base.clone()
	left.ReflectX(true, false)
	// master-side: reflect the image.
	assertVec(t, Vec3{0, 1, 0}, left.LocalToMaster(Vec3{1, 0, 0}), 1e-12)
	assertVec(t, Vec3{1, 0, 0}, left.LocalToMaster(Vec3{0, 1, 0}), 1e-12)

	right := base.clone()
	right.ReflectX(false, false)
	// local-side: reflect the argument.
	assertVec(t, Vec3{0, -1, 0}, right.LocalToMaster(Vec3{1, 0, 0}), 1e-12)
	assert.True(t, right.Class().Reflection)
	assert.InDelta(t, -1, right.Determinant(), 1e-12)

	right.ReflectX(false, false)
	assert.False(t, right.Class().Reflection)
	assert.True(t, right.Equal(base))
}

func TestRotationMultiply(t *testing.T) {
	a := NewRotationEuler(30, 0, 0)
	b := NewRotationEuler(0, 45, 0)
	ab := a.Mul(b)
	p := Vec3{1, 2, 3}
	assertVec(t, a.LocalToMaster(b.LocalToMaster(p)), ab.LocalToMaster(p), 1e-12)

	c := a.clone()
	c.MultiplyBy(b, false)
	assert.True(t, c.Equal(ab))
	c = a.clone()
	c.MultiplyBy(b, true)
	assert.True(t, c.Equal(b.Mul(a)))

	inv := a.Inverse().(*Rotation)
	assertMat(t, identityMatrix, a.Mul(inv).RotationMatrix(), 1e-12)
}
