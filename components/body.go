package components

import "github.com/pthm-cable/ringfx/config"

// Body holds the physical properties of a walker.
type Body struct {
	EyeHeight float32
	Grounded  bool
}

// Movement holds controller tuning shared by every walker.
type Movement struct {
	WalkSpeed    float32
	Acceleration float32 // Rate toward the wish velocity (1/s)
	Friction     float32 // Horizontal decay per second on the ground
	Gravity      float32
	JumpSpeed    float32
	Bound        float32 // Half-extent of the walkable square; 0 disables
}

// MovementFromConfig returns controller tuning from the loaded config.
func MovementFromConfig(c config.ControllerConfig) Movement {
	return Movement{
		WalkSpeed:    float32(c.WalkSpeed),
		Acceleration: float32(c.Acceleration),
		Friction:     float32(c.Friction),
		Gravity:      float32(c.Gravity),
		JumpSpeed:    float32(c.JumpSpeed),
		Bound:        float32(c.GroundSize) / 2,
	}
}
