package effects

// Volume effect constants.
const (
	// FadeDeathThreshold ends a volume once its fade drops to or below it.
	FadeDeathThreshold float32 = 0.01

	volumeHeadroom     float32 = 1.25
	minMajorNormalized float32 = 1e-4
	maxMajorNormalized float32 = 0.499
	minVolumeScale     float32 = 1e-3
)

// Volume is a single expanding torus rendered through a noise volume.
type Volume struct {
	instance

	volumeScale   float32
	majorNorm     float32
	tubeRadius    float32
	noiseStrength float32
}

// NewVolume creates an inert volume effect.
func NewVolume(p Params) *Volume {
	v := &Volume{}
	p.Sanitize()
	v.restart(p, IdentityPose(), 0)
	v.deactivate()
	return v
}

// Kind implements Effect.
func (v *Volume) Kind() Kind { return KindVolume }

// VolumeScale returns the bounding-volume edge length chosen at spawn.
func (v *Volume) VolumeScale() float32 { return v.volumeScale }

// MajorRadiusNormalized returns the ring radius as a fraction of VolumeScale.
func (v *Volume) MajorRadiusNormalized() float32 { return v.majorNorm }

func (v *Volume) restart(p Params, pose Pose, h Handle) {
	v.instance.restart(p, pose, h)
	v.tubeRadius = p.TubeRadius
	v.noiseStrength = p.NoiseStrength
	// Sized so the end radius fits with headroom: normalized radius stays below 0.4
	v.volumeScale = max(2*p.Growth.EndRadius*volumeHeadroom+2*p.TubeRadius, minVolumeScale)
	v.normalize()
}

// Step implements Effect. A volume also dies once it has faded out.
func (v *Volume) Step(dt float32) {
	v.advance(dt)
	v.normalize()
	if v.alive && v.fadeValue <= FadeDeathThreshold {
		v.alive = false
	}
}

func (v *Volume) normalize() {
	v.majorNorm = min(max(v.radius/v.volumeScale, minMajorNormalized), maxMajorNormalized)
}

// Snapshot implements Effect.
func (v *Volume) Snapshot(snap *Snapshot) {
	*snap = Snapshot{Kind: KindVolume}
	v.fillSnapshot(snap)
	snap.MajorRadiusNormalized = v.majorNorm
	snap.VolumeScale = v.volumeScale
	snap.TubeRadius = v.tubeRadius
	snap.NoiseStrength = v.noiseStrength
}
