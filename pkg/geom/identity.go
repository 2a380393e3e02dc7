package geom

// Identity is the transform that leaves every point where it is. It holds no
// numeric state.
type Identity struct {
	Meta
}

// NewIdentity returns a new identity transform.
func NewIdentity() *Identity { return &Identity{} }

func (i *Identity) Class() Class { return Class{Shared: i.shared} }

func (i *Identity) Translation() Vec3    { return nullVector }
func (i *Identity) RotationMatrix() Mat3 { return identityMatrix }
func (i *Identity) Scale() Vec3          { return unitScale }

func (i *Identity) LocalToMaster(local Vec3) Vec3      { return local }
func (i *Identity) LocalToMasterVect(local Vec3) Vec3  { return local }
func (i *Identity) MasterToLocal(master Vec3) Vec3     { return master }
func (i *Identity) MasterToLocalVect(master Vec3) Vec3 { return master }

// Inverse returns a new Identity.
func (i *Identity) Inverse() Matrix { return NewIdentity() }

func (i *Identity) Clone() Matrix { return &Identity{Meta: i.copyMeta()} }
