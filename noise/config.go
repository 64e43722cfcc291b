package noise

import "github.com/pthm-cable/ringfx/config"

// BuilderFromConfig converts the noise section of the config.
func BuilderFromConfig(c config.NoiseConfig) (Builder, error) {
	basis, err := ParseBasis(c.Basis)
	if err != nil {
		return Builder{}, err
	}
	return Builder{
		Size:      c.Size,
		Frequency: c.Frequency,
		Seed:      c.Seed,
		Basis:     basis,
	}, nil
}
