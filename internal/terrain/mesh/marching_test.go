package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"terraforge.dev/internal/terrain/densityfield"
	"terraforge.dev/internal/terrain/settings"
)

func densitySettings() *settings.DensitySettings {
	return &settings.DensitySettings{
		ChunkDims:     [3]int{16, 16, 16},
		BorderSamples: 1,
		VoxelSize:     1.0,
		IsoLevel:      0.0,
	}
}

// sphereChunk fills a padded grid with a signed sphere field: positive
// inside radius r around the grid center.
func sphereChunk(dims [3]int, r float32) *densityfield.DensityChunk {
	c := &densityfield.DensityChunk{
		Dims:    dims,
		Density: make([]float32, dims[0]*dims[1]*dims[2]),
	}
	cx := float32(dims[0]-1) / 2
	cy := float32(dims[1]-1) / 2
	cz := float32(dims[2]-1) / 2
	for z := 0; z < dims[2]; z++ {
		for y := 0; y < dims[1]; y++ {
			for x := 0; x < dims[0]; x++ {
				dx := float64(float32(x) - cx)
				dy := float64(float32(y) - cy)
				dz := float64(float32(z) - cz)
				dist := float32(math.Sqrt(dx*dx + dy*dy + dz*dz))
				c.Density[c.Index(x, y, z)] = r - dist
			}
		}
	}
	return c
}

func uniformChunk(dims [3]int, v float32) *densityfield.DensityChunk {
	c := &densityfield.DensityChunk{
		Dims:    dims,
		Density: make([]float32, dims[0]*dims[1]*dims[2]),
	}
	for i := range c.Density {
		c.Density[i] = v
	}
	return c
}

func TestSphereProducesClosedSurface(t *testing.T) {
	set := densitySettings()
	chunk := sphereChunk([3]int{18, 18, 18}, 6)
	m := FromDensity(chunk, set)

	if len(m.Indices) == 0 {
		t.Fatal("sphere field produced no triangles")
	}
	if len(m.Indices)%3 != 0 {
		t.Fatalf("index count %d not a multiple of 3", len(m.Indices))
	}
	if len(m.Positions) != len(m.Normals) {
		t.Fatalf("positions/normals length mismatch: %d vs %d", len(m.Positions), len(m.Normals))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			t.Fatalf("Indices[%d] = %d out of range (%d vertices)", i, idx, len(m.Positions))
		}
	}
}

func TestSphereNormalsUnitLength(t *testing.T) {
	set := densitySettings()
	chunk := sphereChunk([3]int{18, 18, 18}, 6)
	m := FromDensity(chunk, set)
	for i, n := range m.Normals {
		l := n.Len()
		if l < 0.95 || l > 1.05 {
			t.Fatalf("Normals[%d] = %v has length %v", i, n, l)
		}
	}
}

// Normals follow the raw density gradient, so on a positive-inside sphere
// they face the solid interior.
func TestSphereNormalsFollowGradient(t *testing.T) {
	set := densitySettings()
	dims := [3]int{18, 18, 18}
	chunk := sphereChunk(dims, 6)
	m := FromDensity(chunk, set)

	center := mgl32.Vec3{
		float32(dims[0]-1) / 2 * set.VoxelSize,
		float32(dims[1]-1) / 2 * set.VoxelSize,
		float32(dims[2]-1) / 2 * set.VoxelSize,
	}
	for i, p := range m.Positions {
		outward := p.Sub(center)
		if outward.Len() == 0 {
			continue
		}
		if m.Normals[i].Dot(outward.Normalize()) >= 0 {
			t.Fatalf("Normals[%d] = %v does not follow the gradient at %v", i, m.Normals[i], p)
		}
	}
}

func TestVerticesStayInsideInteriorRegion(t *testing.T) {
	set := densitySettings()
	dims := [3]int{18, 18, 18}
	chunk := sphereChunk(dims, 7.5)
	m := FromDensity(chunk, set)

	border := float32(set.BorderSamples) * set.VoxelSize
	for i, p := range m.Positions {
		for axis := 0; axis < 3; axis++ {
			lo := border
			hi := float32(dims[axis]-1-set.BorderSamples) * set.VoxelSize
			if p[axis] < lo-1e-4 || p[axis] > hi+1e-4 {
				t.Fatalf("Positions[%d] = %v escapes interior region on axis %d", i, p, axis)
			}
		}
	}
}

func TestUniformFieldsProduceNoGeometry(t *testing.T) {
	set := densitySettings()
	for _, v := range []float32{-1, 1} {
		m := FromDensity(uniformChunk([3]int{18, 18, 18}, v), set)
		if len(m.Indices) != 0 || len(m.Positions) != 0 {
			t.Fatalf("uniform field %v produced geometry: %d verts, %d indices",
				v, len(m.Positions), len(m.Indices))
		}
	}
}

func TestMeshingDeterminism(t *testing.T) {
	set := densitySettings()
	chunk := sphereChunk([3]int{18, 18, 18}, 6)
	a := FromDensity(chunk, set)
	b := FromDensity(chunk, set)
	if len(a.Positions) != len(b.Positions) || len(a.Indices) != len(b.Indices) {
		t.Fatalf("mesh sizes differ across identical runs")
	}
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("Positions[%d] differs: %v vs %v", i, a.Positions[i], b.Positions[i])
		}
	}
	for i := range a.Indices {
		if a.Indices[i] != b.Indices[i] {
			t.Fatalf("Indices[%d] differs: %d vs %d", i, a.Indices[i], b.Indices[i])
		}
	}
}

func TestEdgeTableMatchesTriangleTable(t *testing.T) {
	for ci := 0; ci < 256; ci++ {
		var used uint16
		for _, e := range triTable[ci] {
			if e < 0 {
				break
			}
			used |= 1 << uint(e)
		}
		if used != edgeTable[ci] {
			t.Fatalf("case %d: triangle table uses edges %012b, edge table says %012b", ci, used, edgeTable[ci])
		}
	}
}
