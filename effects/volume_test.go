package effects

import (
	"testing"

	"github.com/pthm-cable/ringfx/curves"
)

func TestVolumeNormalizedRadiusInRange(t *testing.T) {
	p := testDefaults()
	p.Kind = KindVolume
	p.Fade = curves.Fade{Start: 0.9, End: 1}
	v := NewVolume(p)
	v.restart(p, IdentityPose(), 1)

	for v.Alive() {
		n := v.MajorRadiusNormalized()
		if n <= 0 || n >= 0.5 {
			t.Fatalf("normalized radius %v outside (0, 0.5) at age %v", n, v.Age())
		}
		v.Step(0.01)
	}

	// End radius fits with headroom
	if frac := p.Growth.EndRadius / v.VolumeScale(); frac >= 0.4 {
		t.Errorf("end radius fraction = %v, want < 0.4", frac)
	}
}

func TestVolumeDiesWhenFaded(t *testing.T) {
	p := testDefaults()
	p.Kind = KindVolume
	p.Life = 1
	p.Fade = curves.Fade{Start: 0.2, End: 0.5}
	v := NewVolume(p)
	v.restart(p, IdentityPose(), 1)

	v.Step(0.4)
	if !v.Alive() {
		t.Fatal("volume died before its fade reached the threshold")
	}
	v.Step(0.1)
	if v.Alive() {
		t.Errorf("volume alive with fade at zero (age %v, life %v)", v.Age(), p.Life)
	}
}

func TestVolumeDiesAtLife(t *testing.T) {
	p := testDefaults()
	p.Kind = KindVolume
	p.Life = 0.5
	p.Fade = curves.Fade{Start: 0.99, End: 1}
	v := NewVolume(p)
	v.restart(p, IdentityPose(), 1)

	v.Step(0.25)
	if !v.Alive() {
		t.Fatal("died early")
	}
	v.Step(0.25)
	if v.Alive() {
		t.Error("alive at age == life")
	}
}

func TestVolumeSnapshot(t *testing.T) {
	p := testDefaults()
	p.Kind = KindVolume
	v := NewVolume(p)
	v.restart(p, IdentityPose(), 42)
	v.Step(0.1)

	var s Snapshot
	v.Snapshot(&s)
	if s.Kind != KindVolume || s.Handle != 42 {
		t.Errorf("snapshot kind/handle = %v/%v", s.Kind, s.Handle)
	}
	if s.Bodies != nil {
		t.Error("volume snapshot should carry no bodies")
	}
	if s.TubeRadius != p.TubeRadius || s.NoiseStrength != p.NoiseStrength {
		t.Errorf("tube/noise = %v/%v", s.TubeRadius, s.NoiseStrength)
	}
}
