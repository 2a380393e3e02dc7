package sdfx

import (
	"math"

	"github.com/chazu/frames/pkg/geom"
)

// decompose factors the linear block l as u·diag(sigma)·vt with u and vt
// proper rotations. A reflection shows up as a negative last factor.
func decompose(l geom.Mat3) (u geom.Mat3, sigma geom.Vec3, vt geom.Mat3, ok bool) {
	v, lambda := symEigen(l.Transpose().Mul(l))
	if v.Determinant() < 0 {
		v = negateColumn(v, 2)
	}
	for i := range lambda {
		sigma[i] = math.Sqrt(math.Max(lambda[i], 0))
		if sigma[i] < 1e-12 {
			return u, sigma, vt, false
		}
	}
	u = l.Mul(v).MulDiag(geom.Vec3{1 / sigma[0], 1 / sigma[1], 1 / sigma[2]})
	if u.Determinant() < 0 {
		u = negateColumn(u, 2)
		sigma[2] = -sigma[2]
	}
	return u, sigma, v.Transpose(), true
}

// symEigen diagonalizes the symmetric matrix a with cyclic Jacobi sweeps.
// The columns of v are the eigenvectors.
func symEigen(a geom.Mat3) (v geom.Mat3, d geom.Vec3) {
	v = geom.IdentityMatrix()
	for sweep := 0; sweep < 50; sweep++ {
		if a[1]*a[1]+a[2]*a[2]+a[5]*a[5] < 1e-30 {
			break
		}
		for _, pq := range [3][2]int{{0, 1}, {0, 2}, {1, 2}} {
			p, q := pq[0], pq[1]
			apq := a[3*p+q]
			if apq == 0 {
				continue
			}
			theta := (a[3*q+q] - a[3*p+p]) / (2 * apq)
			t := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
			if theta < 0 {
				t = -t
			}
			c := 1 / math.Sqrt(t*t+1)
			s := t * c
			for k := 0; k < 3; k++ {
				akp, akq := a[3*k+p], a[3*k+q]
				a[3*k+p], a[3*k+q] = c*akp-s*akq, s*akp+c*akq
			}
			for k := 0; k < 3; k++ {
				apk, aqk := a[3*p+k], a[3*q+k]
				a[3*p+k], a[3*q+k] = c*apk-s*aqk, s*apk+c*aqk
			}
			for k := 0; k < 3; k++ {
				vkp, vkq := v[3*k+p], v[3*k+q]
				v[3*k+p], v[3*k+q] = c*vkp-s*vkq, s*vkp+c*vkq
			}
		}
	}
	return v, geom.Vec3{a[0], a[4], a[8]}
}

func negateColumn(m geom.Mat3, j int) geom.Mat3 {
	m[j], m[3+j], m[6+j] = -m[j], -m[3+j], -m[6+j]
	return m
}
