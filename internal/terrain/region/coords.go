// Package region orchestrates chunked terrain builds: it maps world-space
// regions to chunk coordinate ranges, generates every covered chunk and
// writes the artifacts plus a manifest to the cache directory.
package region

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/settings"
)

func floorDiv(v, stride float32) int {
	return int(math.Floor(float64(v / stride)))
}

func ceilDiv(v, stride float32) int {
	return int(math.Ceil(float64(v / stride)))
}

func heightStride(set *settings.TerrainGenSettings) float32 {
	return float32(set.Height.ChunkSamples-1) * set.Height.SampleSpacing
}

func densityStride(set *settings.TerrainGenSettings) [3]float32 {
	return [3]float32{
		float32(set.Density.ChunkDims[0]-1) * set.Density.VoxelSize,
		float32(set.Density.ChunkDims[1]-1) * set.Density.VoxelSize,
		float32(set.Density.ChunkDims[2]-1) * set.Density.VoxelSize,
	}
}

// CollectHeightChunks enumerates every height chunk coordinate covering the
// region, floor(min/stride)..ceil(max/stride) inclusive per axis, lod 0.
func CollectHeightChunks(region geom.Aabb, set *settings.TerrainGenSettings) []geom.ChunkCoord2 {
	stride := heightStride(set)
	minCX := floorDiv(region.Min[0], stride)
	maxCX := ceilDiv(region.Max[0], stride)
	minCZ := floorDiv(region.Min[2], stride)
	maxCZ := ceilDiv(region.Max[2], stride)
	var coords []geom.ChunkCoord2
	for cz := minCZ; cz <= maxCZ; cz++ {
		for cx := minCX; cx <= maxCX; cx++ {
			coords = append(coords, geom.ChunkCoord2{CX: cx, CZ: cz})
		}
	}
	return coords
}

// CollectDensityChunks is the 3-axis analogue for density chunks.
func CollectDensityChunks(region geom.Aabb, set *settings.TerrainGenSettings) []geom.ChunkCoord3 {
	stride := densityStride(set)
	minCX := floorDiv(region.Min[0], stride[0])
	maxCX := ceilDiv(region.Max[0], stride[0])
	minCY := floorDiv(region.Min[1], stride[1])
	maxCY := ceilDiv(region.Max[1], stride[1])
	minCZ := floorDiv(region.Min[2], stride[2])
	maxCZ := ceilDiv(region.Max[2], stride[2])
	var coords []geom.ChunkCoord3
	for cz := minCZ; cz <= maxCZ; cz++ {
		for cy := minCY; cy <= maxCY; cy++ {
			for cx := minCX; cx <= maxCX; cx++ {
				coords = append(coords, geom.ChunkCoord3{CX: cx, CY: cy, CZ: cz})
			}
		}
	}
	return coords
}

// HeightChunkAabb maps a height chunk coordinate back to its covering world
// box. The vertical extent is always the full height range.
func HeightChunkAabb(coord geom.ChunkCoord2, set *settings.TerrainGenSettings) geom.Aabb {
	stride := heightStride(set)
	return geom.Aabb{
		Min: mgl32.Vec3{
			float32(coord.CX) * stride,
			-set.Height.HeightScale,
			float32(coord.CZ) * stride,
		},
		Max: mgl32.Vec3{
			float32(coord.CX+1) * stride,
			set.Height.HeightScale,
			float32(coord.CZ+1) * stride,
		},
	}
}

// DensityChunkAabb maps a density chunk coordinate back to its covering
// world box.
func DensityChunkAabb(coord geom.ChunkCoord3, set *settings.TerrainGenSettings) geom.Aabb {
	stride := densityStride(set)
	return geom.Aabb{
		Min: mgl32.Vec3{
			float32(coord.CX) * stride[0],
			float32(coord.CY) * stride[1],
			float32(coord.CZ) * stride[2],
		},
		Max: mgl32.Vec3{
			float32(coord.CX+1) * stride[0],
			float32(coord.CY+1) * stride[1],
			float32(coord.CZ+1) * stride[2],
		},
	}
}
