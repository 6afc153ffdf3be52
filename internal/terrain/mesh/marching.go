// Package mesh extracts triangle surfaces from density chunks with the
// classic table-driven Marching Cubes algorithm.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"terraforge.dev/internal/terrain/densityfield"
	"terraforge.dev/internal/terrain/settings"
)

// MeshChunk is an unindexed triangle soup: every triangle contributes three
// fresh vertices, no sharing or welding. Indices are 0..len(Positions)-1 in
// emission order.
type MeshChunk struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// float32 machine epsilon, used to snap interpolated crossings onto corners.
const epsilon32 = 1.1920929e-07

// cube corner offsets in the order the tables expect.
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1},
	{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1},
}

// cube edges as pairs of corner indices, in table bit order.
var edgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// FromDensity runs Marching Cubes over a density chunk's interior voxels.
// The border layers support gradients and trilinear resampling but never
// emit geometry, so neighboring chunks cannot produce duplicate triangles.
// Traversal order is fixed (z, y, x ascending, triangle-table order within
// a cube) so repeated runs emit identical buffers.
func FromDensity(chunk *densityfield.DensityChunk, set *settings.DensitySettings) *MeshChunk {
	border := set.BorderSamples
	voxel := set.VoxelSize
	iso := set.IsoLevel
	dims := chunk.Dims

	out := &MeshChunk{}
	var nextIndex uint32

	maxX := dims[0] - 1 - border
	maxY := dims[1] - 1 - border
	maxZ := dims[2] - 1 - border

	var cube [8]float32
	var vertList [12]mgl32.Vec3

	for z := border; z < maxZ; z++ {
		for y := border; y < maxY; y++ {
			for x := border; x < maxX; x++ {
				for i, off := range cornerOffsets {
					cube[i] = chunk.Density[chunk.Index(x+off[0], y+off[1], z+off[2])]
				}
				idx := cubeIndex(cube, iso)
				edges := edgeTable[idx]
				if edges == 0 {
					continue
				}
				for e := 0; e < 12; e++ {
					if edges&(1<<e) == 0 {
						continue
					}
					a := edgeCorners[e][0]
					b := edgeCorners[e][1]
					pa := [3]int{x + cornerOffsets[a][0], y + cornerOffsets[a][1], z + cornerOffsets[a][2]}
					pb := [3]int{x + cornerOffsets[b][0], y + cornerOffsets[b][1], z + cornerOffsets[b][2]}
					vertList[e] = vertexInterp(iso, cube[a], cube[b], pa, pb, voxel)
				}

				tri := &triTable[idx]
				for t := 0; tri[t] != -1; t += 3 {
					a := vertList[tri[t]]
					b := vertList[tri[t+1]]
					c := vertList[tri[t+2]]
					out.Positions = append(out.Positions, a, b, c)
					out.Normals = append(out.Normals,
						gradientNormal(chunk, a, voxel),
						gradientNormal(chunk, b, voxel),
						gradientNormal(chunk, c, voxel))
					out.Indices = append(out.Indices, nextIndex, nextIndex+1, nextIndex+2)
					nextIndex += 3
				}
			}
		}
	}
	return out
}

// cubeIndex sets bit i iff corner i is below the iso level.
func cubeIndex(cube [8]float32, iso float32) int {
	idx := 0
	for i, v := range cube {
		if v < iso {
			idx |= 1 << i
		}
	}
	return idx
}

// vertexInterp finds the iso crossing on one cube edge. Endpoints whose
// density already sits on the iso level snap to the corner; a degenerate
// edge (equal endpoint values) snaps to the first corner.
func vertexInterp(iso, v1, v2 float32, p1, p2 [3]int, voxel float32) mgl32.Vec3 {
	corner := func(p [3]int) mgl32.Vec3 {
		return mgl32.Vec3{float32(p[0]) * voxel, float32(p[1]) * voxel, float32(p[2]) * voxel}
	}
	if abs32(iso-v1) < epsilon32 {
		return corner(p1)
	}
	if abs32(iso-v2) < epsilon32 {
		return corner(p2)
	}
	if abs32(v1-v2) < epsilon32 {
		return corner(p1)
	}
	t := (iso - v1) / (v2 - v1)
	return mgl32.Vec3{
		(float32(p1[0]) + t*float32(p2[0]-p1[0])) * voxel,
		(float32(p1[1]) + t*float32(p2[1]-p1[1])) * voxel,
		(float32(p1[2]) + t*float32(p2[2]-p1[2])) * voxel,
	}
}

// gradientNormal is the normalized central-difference gradient of the
// density field, resampled trilinearly at the exact vertex position rather
// than the nearest voxel.
func gradientNormal(chunk *densityfield.DensityChunk, pos mgl32.Vec3, voxel float32) mgl32.Vec3 {
	fx := pos[0] / voxel
	fy := pos[1] / voxel
	fz := pos[2] / voxel
	n := mgl32.Vec3{
		chunk.SampleTrilinear(fx+1, fy, fz) - chunk.SampleTrilinear(fx-1, fy, fz),
		chunk.SampleTrilinear(fx, fy+1, fz) - chunk.SampleTrilinear(fx, fy-1, fz),
		chunk.SampleTrilinear(fx, fy, fz+1) - chunk.SampleTrilinear(fx, fy, fz-1),
	}
	if n.Len() > 0 {
		return n.Normalize()
	}
	return n
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
