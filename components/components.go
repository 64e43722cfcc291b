// Package components defines ECS components for the first-person controller.
package components

// Intent is the per-frame input request for a walker. The controller
// consumes look deltas and the jump request each update.
type Intent struct {
	Forward float32 // -1 back .. +1 forward
	Strafe  float32 // -1 left .. +1 right
	Jump    bool

	YawDelta   float32
	PitchDelta float32
}

// Clear resets the one-shot fields.
func (in *Intent) Clear() {
	in.Jump = false
	in.YawDelta = 0
	in.PitchDelta = 0
}
