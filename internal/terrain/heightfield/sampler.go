// Package heightfield derives the continuous ground elevation from seeded
// noise and samples it into padded per-chunk grids with slope and material
// blend data.
package heightfield

import (
	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/mathx"
	"terraforge.dev/internal/terrain/noise"
	"terraforge.dev/internal/terrain/settings"
)

// Warp fields are decorrelated by sampling the second one at a fixed offset
// from the first. The offset is part of the on-disk contract.
const (
	warpOffsetX = 13.7
	warpOffsetZ = -9.2
)

const (
	warpOctaves    = 3
	warpLacunarity = 2.0
	warpGain       = 0.5
)

// HeightSampler is a pure function from world (x,z) to elevation. The same
// sampler instance drives both height-chunk and density-chunk generation:
// the visible ground surface is the zero-crossing of the density field,
// which is defined in terms of this height function.
type HeightSampler struct {
	seed geom.WorldSeed
	set  settings.HeightSettings
}

func NewSampler(seed geom.WorldSeed, set settings.HeightSettings) *HeightSampler {
	return &HeightSampler{seed: seed, set: set}
}

// HeightAtWorld evaluates the elevation at a world-space position.
func (s *HeightSampler) HeightAtWorld(x, z float32) float32 {
	sampleX := x / s.set.SampleSpacing
	sampleZ := z / s.set.SampleSpacing

	if warp := s.set.Warp; warp != nil {
		warpX := noise.FBM2(s.seed,
			sampleX*warp.Frequency,
			sampleZ*warp.Frequency,
			warpOctaves, warpLacunarity, warpGain, false)
		warpZ := noise.FBM2(s.seed,
			(sampleX+warpOffsetX)*warp.Frequency,
			(sampleZ+warpOffsetZ)*warp.Frequency,
			warpOctaves, warpLacunarity, warpGain, false)
		sampleX += warpX * warp.Amplitude
		sampleZ += warpZ * warp.Amplitude
	}

	h := noise.FBM2(s.seed,
		sampleX*s.set.Noise.Frequency,
		sampleZ*s.set.Noise.Frequency,
		s.set.Noise.Octaves, s.set.Noise.Lacunarity, s.set.Noise.Gain, s.set.Noise.Ridged)
	h = mathx.Clamp(h, -1, 1)
	return h * s.set.HeightScale
}
