package geom

import "math"

// minScaleProduct is the smallest |sx·sy·sz| accepted by a scale.
const minScaleProduct = 1e-10

// Scale multiplies coordinates component-wise. A negative product of the
// factors marks a reflection.
type Scale struct {
	Meta
	s Vec3
}

// NewScale returns a scale by (sx, sy, sz). Any zero factor is rejected.
func NewScale(sx, sy, sz float64) (*Scale, error) {
	s := &Scale{s: unitScale}
	if err := s.SetScale(sx, sy, sz); err != nil {
		return nil, err
	}
	return s, nil
}

// NewScaleFrom copies the scale component of any transform.
func NewScaleFrom(m Matrix) *Scale {
	return &Scale{Meta: Meta{name: m.Name()}, s: m.Scale()}
}

func checkScale(op string, s Vec3) error {
	if math.Abs(s[0]*s[1]*s[2]) < minScaleProduct {
		return newError(CodeInvalidParameter, op, "scale (%g, %g, %g) has a zero component", s[0], s[1], s[2])
	}
	return nil
}

// SetScale overwrites the factors. On error the scale is unchanged.
func (s *Scale) SetScale(sx, sy, sz float64) error {
	v := Vec3{sx, sy, sz}
	if err := checkScale("Scale.SetScale", v); err != nil {
		return err
	}
	s.s = v
	return nil
}

func (s *Scale) Class() Class {
	return Class{
		Scale:      s.s != unitScale,
		Reflection: s.s[0]*s.s[1]*s.s[2] < 0,
		Shared:     s.shared,
	}
}

func (s *Scale) Translation() Vec3    { return nullVector }
func (s *Scale) RotationMatrix() Mat3 { return identityMatrix }
func (s *Scale) Scale() Vec3          { return s.s }

func (s *Scale) LocalToMaster(local Vec3) Vec3     { return local.Mul(s.s) }
func (s *Scale) LocalToMasterVect(local Vec3) Vec3 { return local.Mul(s.s) }

func (s *Scale) MasterToLocal(master Vec3) Vec3 {
	return Vec3{master[0] / s.s[0], master[1] / s.s[1], master[2] / s.s[2]}
}

func (s *Scale) MasterToLocalVect(master Vec3) Vec3 { return s.MasterToLocal(master) }

// LocalToMasterDist converts a local distance to the master frame. Along a
// known unit direction the result is exact; without one the smallest factor
// is used so the returned distance never overshoots.
func (s *Scale) LocalToMasterDist(dist float64, dir *Vec3) float64 {
	if dir == nil {
		return dist * math.Min(math.Abs(s.s[0]), math.Min(math.Abs(s.s[1]), math.Abs(s.s[2])))
	}
	d := dir.Mul(s.s)
	return dist * d.Length()
}

// MasterToLocalDist converts a master distance to the local frame, with the
// same direction rule as LocalToMasterDist.
func (s *Scale) MasterToLocalDist(dist float64, dir *Vec3) float64 {
	if dir == nil {
		return dist / math.Max(math.Abs(s.s[0]), math.Max(math.Abs(s.s[1]), math.Abs(s.s[2])))
	}
	d := Vec3{dir[0] / s.s[0], dir[1] / s.s[1], dir[2] / s.s[2]}
	return dist * d.Length()
}

func (s *Scale) ReflectX(leftside, rotonly bool) { s.s[0] = -s.s[0] }
func (s *Scale) ReflectY(leftside, rotonly bool) { s.s[1] = -s.s[1] }
func (s *Scale) ReflectZ(leftside, rotonly bool) { s.s[2] = -s.s[2] }

// Mul returns the component-wise product of the factors.
func (s *Scale) Mul(other *Scale) *Scale { return &Scale{s: s.s.Mul(other.s)} }

// Equal compares factors within 1e-10.
func (s *Scale) Equal(other *Scale) bool { return vecWithin(s.s, other.s, equalTolerance) }

// Inverse returns the reciprocal *Scale.
func (s *Scale) Inverse() Matrix {
	return &Scale{s: Vec3{1 / s.s[0], 1 / s.s[1], 1 / s.s[2]}}
}

func (s *Scale) Clone() Matrix { return &Scale{Meta: s.copyMeta(), s: s.s} }
