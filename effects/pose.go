package effects

import "github.com/go-gl/mathgl/mgl32"

// LocalForward is the direction an identity orientation faces.
var LocalForward = mgl32.Vec3{0, 0, -1}

// Pose is a world-space position and orientation captured at spawn time.
// It is a value type: an effect keeps its own copy.
type Pose struct {
	Position    mgl32.Vec3
	Orientation mgl32.Quat
	Forward     mgl32.Vec3
}

// NewPose builds a pose whose Forward is derived from the orientation.
func NewPose(position mgl32.Vec3, orientation mgl32.Quat) Pose {
	orientation = orientation.Normalize()
	return Pose{
		Position:    position,
		Orientation: orientation,
		Forward:     orientation.Rotate(LocalForward).Normalize(),
	}
}

// IdentityPose is a pose at the origin facing -Z.
func IdentityPose() Pose {
	return NewPose(mgl32.Vec3{}, mgl32.QuatIdent())
}

// PoseSource supplies the current viewer pose (usually the camera).
type PoseSource interface {
	Pose() Pose
}

// PoseFunc adapts a function to PoseSource.
type PoseFunc func() Pose

// Pose implements PoseSource.
func (f PoseFunc) Pose() Pose { return f() }
