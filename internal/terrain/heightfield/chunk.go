package heightfield

import (
	"math"

	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/settings"
)

// HeightChunk owns a padded square sample grid. Size includes the border
// layers on each side; border samples exist so neighboring chunks agree at
// shared boundaries, because both evaluate the same world-space positions.
type HeightChunk struct {
	Size            int
	Heights         []float32
	MaterialWeights [][settings.NLayers]uint8
	Slope           []float32
	Curvature       []float32 // reserved; generation leaves it nil
}

func index2(x, z, size int) int {
	return z*size + x
}

// Generate samples the height function over the padded grid for one chunk
// coordinate and derives the slope map and quantized material weights.
// It is pure in (seed, coord, settings): repeated calls agree within the
// configured determinism epsilon.
func Generate(seed geom.WorldSeed, coord geom.ChunkCoord2, set *settings.TerrainGenSettings) *HeightChunk {
	sampler := NewSampler(seed, set.Height)
	border := set.Height.BorderSamples
	size := set.Height.ChunkSamples + border*2
	stride := float32(set.Height.ChunkSamples-1) * set.Height.SampleSpacing
	originX := float32(coord.CX) * stride
	originZ := float32(coord.CZ) * stride

	heights := make([]float32, size*size)
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			worldX := originX + float32(x-border)*set.Height.SampleSpacing
			worldZ := originZ + float32(z-border)*set.Height.SampleSpacing
			heights[index2(x, z, size)] = sampler.HeightAtWorld(worldX, worldZ)
		}
	}

	slope := slopeMap(size, heights, set.Height.SampleSpacing)
	weights := materialWeights(size, heights, slope, &set.Materials)

	return &HeightChunk{
		Size:            size,
		Heights:         heights,
		MaterialWeights: weights,
		Slope:           slope,
	}
}

// slopeMap is the central-difference gradient magnitude. Neighbor indices
// clamp at grid edges rather than wrap.
func slopeMap(size int, heights []float32, spacing float32) []float32 {
	slope := make([]float32, size*size)
	clamp := func(i int) int {
		if i < 0 {
			return 0
		}
		if i > size-1 {
			return size - 1
		}
		return i
	}
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			left := heights[index2(clamp(x-1), z, size)]
			right := heights[index2(clamp(x+1), z, size)]
			down := heights[index2(x, clamp(z-1), size)]
			up := heights[index2(x, clamp(z+1), size)]
			dx := (right - left) / (2 * spacing)
			dz := (up - down) / (2 * spacing)
			slope[index2(x, z, size)] = float32(math.Sqrt(float64(dx*dx + dz*dz)))
		}
	}
	return slope
}

// rockLayer is the designated layer forced by steep slopes.
const rockLayer = 1

func materialWeights(size int, heights, slope []float32, set *settings.MaterialSettings) [][settings.NLayers]uint8 {
	weights := make([][settings.NLayers]uint8, size*size)
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			idx := index2(x, z, size)
			h := heights[idx]
			var contrib [settings.NLayers]float32
			for li, layer := range set.Layers {
				if h >= layer.MinHeight && h < layer.MaxHeight {
					contrib[li] = layer.Weight
				}
			}
			if slope[idx] > set.SlopeRockThreshold && contrib[rockLayer] < 1 {
				contrib[rockLayer] = 1
			}
			var sum float32
			for _, w := range contrib {
				sum += w
			}
			if sum <= 0 {
				sum = 1
			}
			var packed [settings.NLayers]uint8
			for li, w := range contrib {
				q := math.Round(float64(w/sum) * 255)
				if q < 0 {
					q = 0
				}
				if q > 255 {
					q = 255
				}
				packed[li] = uint8(q)
			}
			weights[idx] = packed
		}
	}
	return weights
}
