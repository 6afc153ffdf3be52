// Package noise implements the seeded lattice noise the whole terrain
// pipeline is built on: integer-lattice hashing, 2D/3D value noise and
// fractal (FBM) synthesis. Everything here is a pure function of
// (seed, coordinates) — no tables, no global state.
package noise

import (
	"math"

	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/mathx"
)

const (
	hashC1 = 0x9E3779B97F4A7C15
	hashC2 = 0xBF58476D1CE4E5B9
	hashC3 = 0x94D049BB133111EB
)

// HashToUnit mixes the seed with three integer lattice coordinates and maps
// the avalanched 64-bit result to a float32 in [0,1]. The constants are not
// a contract; bit-for-bit reproducibility of this implementation is.
func HashToUnit(seed geom.WorldSeed, x, y, z int32) float32 {
	v := uint64(seed) ^ uint64(int64(x))*hashC1
	v += uint64(int64(y)) * hashC2
	v += uint64(int64(z)) * hashC3
	h := mathx.Mix64(v)
	return mathx.Clamp(float32(h)/float32(math.MaxUint64), 0, 1)
}

func floorf(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// Noise2 is smoothstep-interpolated value noise over the 4 surrounding
// lattice points, remapped to [-1,1].
func Noise2(seed geom.WorldSeed, x, z float32) float32 {
	x0 := floorf(x)
	z0 := floorf(z)
	u := mathx.Smoothstep(x - x0)
	v := mathx.Smoothstep(z - z0)

	xi := int32(x0)
	zi := int32(z0)
	v00 := HashToUnit(seed, xi, 0, zi)
	v10 := HashToUnit(seed, xi+1, 0, zi)
	v01 := HashToUnit(seed, xi, 0, zi+1)
	v11 := HashToUnit(seed, xi+1, 0, zi+1)

	i1 := mathx.Lerp(v00, v10, u)
	i2 := mathx.Lerp(v01, v11, u)
	return mathx.Lerp(i1, i2, v)*2 - 1
}

// Noise3 is the 3D analogue over the 8 surrounding lattice points.
func Noise3(seed geom.WorldSeed, x, y, z float32) float32 {
	x0 := floorf(x)
	y0 := floorf(y)
	z0 := floorf(z)
	u := mathx.Smoothstep(x - x0)
	v := mathx.Smoothstep(y - y0)
	w := mathx.Smoothstep(z - z0)

	xi := int32(x0)
	yi := int32(y0)
	zi := int32(z0)
	c000 := HashToUnit(seed, xi, yi, zi)
	c100 := HashToUnit(seed, xi+1, yi, zi)
	c010 := HashToUnit(seed, xi, yi+1, zi)
	c110 := HashToUnit(seed, xi+1, yi+1, zi)
	c001 := HashToUnit(seed, xi, yi, zi+1)
	c101 := HashToUnit(seed, xi+1, yi, zi+1)
	c011 := HashToUnit(seed, xi, yi+1, zi+1)
	c111 := HashToUnit(seed, xi+1, yi+1, zi+1)

	x00 := mathx.Lerp(c000, c100, u)
	x10 := mathx.Lerp(c010, c110, u)
	x01 := mathx.Lerp(c001, c101, u)
	x11 := mathx.Lerp(c011, c111, u)
	y0v := mathx.Lerp(x00, x10, v)
	y1v := mathx.Lerp(x01, x11, v)
	return mathx.Lerp(y0v, y1v, w)*2 - 1
}

// FBM2 sums octave layers of Noise2. Frequency multiplies by lacunarity and
// amplitude by gain each octave, starting at amplitude 0.5. When ridged,
// each octave sample becomes 1-|n| before accumulation.
func FBM2(seed geom.WorldSeed, x, z float32, octaves int, lacunarity, gain float32, ridged bool) float32 {
	var value float32
	amplitude := float32(0.5)
	frequency := float32(1)
	for i := 0; i < octaves; i++ {
		n := Noise2(seed, x*frequency, z*frequency)
		if ridged {
			n = 1 - abs32(n)
		}
		value += n * amplitude
		frequency *= lacunarity
		amplitude *= gain
	}
	return value
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
