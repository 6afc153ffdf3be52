// Package densityfield builds padded volumetric signed-density grids. The
// base field is surface-minus-height (positive below ground, negative
// above); authored feature volumes perturb it locally.
package densityfield

import (
	"github.com/go-gl/mathgl/mgl32"

	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/heightfield"
	"terraforge.dev/internal/terrain/noise"
	"terraforge.dev/internal/terrain/settings"
	"terraforge.dev/internal/terrain/volume"
)

// DensityChunk owns a padded volumetric grid. Voxel index ordering is fixed:
// (z*Dims[1]+y)*Dims[0]+x.
type DensityChunk struct {
	Dims       [3]int
	Density    []float32
	MaterialID []uint16 // reserved; generation leaves it nil
}

// Index maps voxel coordinates into the flat density array.
func (c *DensityChunk) Index(x, y, z int) int {
	return (z*c.Dims[1]+y)*c.Dims[0] + x
}

// Generate evaluates the density field over the padded grid for one chunk
// coordinate. Feature volumes are applied sequentially in the order given;
// overlapping volumes accumulate. A volume only perturbs voxels whose world
// position lies inside its box (inclusive bounds).
func Generate(seed geom.WorldSeed, coord geom.ChunkCoord3, volumesInRange []volume.FeatureVolume,
	set *settings.TerrainGenSettings, sampler *heightfield.HeightSampler) *DensityChunk {

	border := set.Density.BorderSamples
	dims := [3]int{
		set.Density.ChunkDims[0] + border*2,
		set.Density.ChunkDims[1] + border*2,
		set.Density.ChunkDims[2] + border*2,
	}
	voxel := set.Density.VoxelSize
	strideX := float32(set.Density.ChunkDims[0]-1) * voxel
	strideY := float32(set.Density.ChunkDims[1]-1) * voxel
	strideZ := float32(set.Density.ChunkDims[2]-1) * voxel
	origin := mgl32.Vec3{
		float32(coord.CX) * strideX,
		float32(coord.CY) * strideY,
		float32(coord.CZ) * strideZ,
	}

	chunk := &DensityChunk{
		Dims:    dims,
		Density: make([]float32, dims[0]*dims[1]*dims[2]),
	}
	for z := 0; z < dims[2]; z++ {
		for y := 0; y < dims[1]; y++ {
			for x := 0; x < dims[0]; x++ {
				pos := mgl32.Vec3{
					origin[0] + float32(x-border)*voxel,
					origin[1] + float32(y-border)*voxel,
					origin[2] + float32(z-border)*voxel,
				}
				d := sampler.HeightAtWorld(pos[0], pos[2]) - pos[1]
				for _, v := range volumesInRange {
					if v.Shape.ContainsPoint(pos) {
						d = applyFeature(seed, v, d, pos)
					}
				}
				chunk.Density[chunk.Index(x, y, z)] = d
			}
		}
	}
	return chunk
}

// applyFeature perturbs a single voxel's density for one volume. The params
// union is closed; every variant is handled here.
func applyFeature(seed geom.WorldSeed, v volume.FeatureVolume, d float32, pos mgl32.Vec3) float32 {
	switch p := v.Params.(type) {
	case volume.CaveParams:
		n := noise.Noise3(seed, pos[0]*p.Frequency, pos[1]*p.Frequency, pos[2]*p.Frequency)
		if n > p.Threshold {
			carved := -abs32(p.Strength)
			if carved < d {
				return carved
			}
		}
		return d
	case volume.OverhangParams:
		if pos[1] > p.MaxHeight {
			return d
		}
		ridge := abs32(noise.Noise2(seed, pos[0]*p.Frequency, pos[2]*p.Frequency))
		return d + ridge*p.Strength
	case volume.CliffParams:
		n := abs32(noise.Noise2(seed, pos[0]*p.Frequency, pos[2]*p.Frequency))
		return d + n*p.Strength
	default:
		return d
	}
}

// SampleTrilinear resamples the density field at fractional voxel
// coordinates via 8-corner trilinear interpolation, clamping at the grid
// boundary. The mesher uses it for gradient normals.
func (c *DensityChunk) SampleTrilinear(x, y, z float32) float32 {
	x0 := clampFloor(x, c.Dims[0])
	y0 := clampFloor(y, c.Dims[1])
	z0 := clampFloor(z, c.Dims[2])
	x1 := min(x0+1, c.Dims[0]-1)
	y1 := min(y0+1, c.Dims[1]-1)
	z1 := min(z0+1, c.Dims[2]-1)
	tx := x - float32(x0)
	ty := y - float32(y0)
	tz := z - float32(z0)

	c000 := c.Density[c.Index(x0, y0, z0)]
	c100 := c.Density[c.Index(x1, y0, z0)]
	c010 := c.Density[c.Index(x0, y1, z0)]
	c110 := c.Density[c.Index(x1, y1, z0)]
	c001 := c.Density[c.Index(x0, y0, z1)]
	c101 := c.Density[c.Index(x1, y0, z1)]
	c011 := c.Density[c.Index(x0, y1, z1)]
	c111 := c.Density[c.Index(x1, y1, z1)]

	c00 := c000 + (c100-c000)*tx
	c10 := c010 + (c110-c010)*tx
	c01 := c001 + (c101-c001)*tx
	c11 := c011 + (c111-c011)*tx
	c0 := c00 + (c10-c00)*ty
	c1 := c01 + (c11-c01)*ty
	return c0 + (c1-c0)*tz
}

func clampFloor(v float32, dim int) int {
	i := int(floor32(v))
	if i < 0 {
		return 0
	}
	if i > dim-1 {
		return dim - 1
	}
	return i
}

func floor32(v float32) float32 {
	i := float32(int(v))
	if v < 0 && i != v {
		return i - 1
	}
	return i
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
