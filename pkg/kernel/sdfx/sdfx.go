// Package sdfx exposes frames transforms to the github.com/deadsy/sdfx
// SDF-based CAD library: any transform becomes an sdf.M44 and can be applied
// to an sdf.SDF3.
package sdfx

import (
	"fmt"
	"math"

	"github.com/chazu/frames/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const degToRad = math.Pi / 180

// Vec converts a frames vector to an sdfx vector.
func Vec(v geom.Vec3) v3.Vec { return v3.Vec{X: v[0], Y: v[1], Z: v[2]} }

// FromVec converts an sdfx vector to a frames vector.
func FromVec(v v3.Vec) geom.Vec3 { return geom.Vec3{v.X, v.Y, v.Z} }

// M44 returns the homogeneous sdfx matrix acting like m.LocalToMaster. The
// linear block is factored into rotation, scale and rotation so that only
// sdfx's own constructors are needed; a singular block is rejected.
func M44(m geom.Matrix) (sdf.M44, error) {
	l := m.RotationMatrix().MulDiag(m.Scale())
	u, sigma, vt, ok := decompose(l)
	if !ok {
		return sdf.M44{}, geom.New(geom.CodeSingular, "sdfx.M44", "linear block of "+describe(m)+" is singular")
	}
	left, err := rotation(u)
	if err != nil {
		return sdf.M44{}, err
	}
	right, err := rotation(vt)
	if err != nil {
		return sdf.M44{}, err
	}
	return sdf.Translate3d(Vec(m.Translation())).
		Mul(left).
		Mul(sdf.Scale3d(Vec(sigma))).
		Mul(right), nil
}

// rotation builds the sdfx form of a proper rotation from its z-x-z Euler
// angles.
func rotation(r geom.Mat3) (sdf.M44, error) {
	rot, err := geom.NewRotationMatrix(r)
	if err != nil {
		return sdf.M44{}, fmt.Errorf("sdfx: rotation factor: %w", err)
	}
	a, err := rot.Angles()
	if err != nil {
		return sdf.M44{}, fmt.Errorf("sdfx: rotation factor: %w", err)
	}
	return sdf.RotateZ(a.Phi * degToRad).
		Mul(sdf.RotateX(a.Theta * degToRad)).
		Mul(sdf.RotateZ(a.Psi * degToRad)), nil
}

// Transform places s with m: a point p of s ends up at m.LocalToMaster(p).
func Transform(s sdf.SDF3, m geom.Matrix) (sdf.SDF3, error) {
	mat, err := M44(m)
	if err != nil {
		return nil, err
	}
	return sdf.Transform3D(s, mat), nil
}

// Place applies a placement chain, outermost container first.
func Place(s sdf.SDF3, chain ...geom.Matrix) (sdf.SDF3, error) {
	return Transform(s, geom.Compose(chain...))
}

func describe(m geom.Matrix) string {
	if m.Name() != "" {
		return fmt.Sprintf("%q", m.Name())
	}
	return fmt.Sprintf("%T", m)
}
