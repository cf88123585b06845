package sky

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Settings is the per-frame uniform record supplied by the host application.
// It is read-only input to the compositor and lives for the duration of a
// pass. TimeOfDay is a fraction of a day cycle; the rotations are
// quaternion-shaped orientations for the sun and moon. The current blend
// accepts all three fields but does not consume them; they are reserved for
// atmospheric terms.
type Settings struct {
	TimeOfDay    float64
	SunRotation  mgl64.Vec4
	MoonRotation mgl64.Vec4
}

// RotationFromQuat packs an orientation quaternion into the Vec4 layout
// the settings record carries: (x, y, z, w)
func RotationFromQuat(q mgl64.Quat) mgl64.Vec4 {
	return mgl64.Vec4{q.V.X(), q.V.Y(), q.V.Z(), q.W}
}
