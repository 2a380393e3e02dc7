package geom

// Translation shifts points by a fixed vector.
type Translation struct {
	Meta
	t Vec3
}

// NewTranslation returns a translation by (dx, dy, dz).
func NewTranslation(dx, dy, dz float64) *Translation {
	return &Translation{t: Vec3{dx, dy, dz}}
}

// NewTranslationFrom copies the translation component of any transform.
func NewTranslationFrom(m Matrix) *Translation {
	return &Translation{Meta: Meta{name: m.Name()}, t: m.Translation()}
}

func (t *Translation) Class() Class {
	return Class{Translation: !t.t.IsZero(), Shared: t.shared}
}

func (t *Translation) Translation() Vec3    { return t.t }
func (t *Translation) RotationMatrix() Mat3 { return identityMatrix }
func (t *Translation) Scale() Vec3          { return unitScale }

// SetTranslation overwrites the offset. Any finite value is accepted.
func (t *Translation) SetTranslation(dx, dy, dz float64) { t.t = Vec3{dx, dy, dz} }

func (t *Translation) SetDx(dx float64) { t.t[0] = dx }
func (t *Translation) SetDy(dy float64) { t.t[1] = dy }
func (t *Translation) SetDz(dz float64) { t.t[2] = dz }

// Add accumulates other into t.
func (t *Translation) Add(other *Translation) { t.t = t.t.Add(other.t) }

// Subtract removes other from t.
func (t *Translation) Subtract(other *Translation) { t.t = t.t.Sub(other.t) }

// Mul returns the composition t·other, which for translations is the sum.
func (t *Translation) Mul(other *Translation) *Translation {
	return &Translation{t: t.t.Add(other.t)}
}

// Equal compares offsets exactly, component by component.
func (t *Translation) Equal(other *Translation) bool { return t.t == other.t }

func (t *Translation) LocalToMaster(local Vec3) Vec3      { return local.Add(t.t) }
func (t *Translation) LocalToMasterVect(local Vec3) Vec3  { return local }
func (t *Translation) MasterToLocal(master Vec3) Vec3     { return master.Sub(t.t) }
func (t *Translation) MasterToLocalVect(master Vec3) Vec3 { return master }

// Inverse returns a *Translation by -T.
func (t *Translation) Inverse() Matrix { return &Translation{t: t.t.Neg()} }

func (t *Translation) Clone() Matrix { return &Translation{Meta: t.copyMeta(), t: t.t} }
