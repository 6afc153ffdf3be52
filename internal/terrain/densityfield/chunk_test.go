package densityfield

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/heightfield"
	"terraforge.dev/internal/terrain/settings"
	"terraforge.dev/internal/terrain/volume"
)

func baseSettings() *settings.TerrainGenSettings {
	return &settings.TerrainGenSettings{
		Height: settings.HeightSettings{
			ChunkSamples:  16,
			BorderSamples: 1,
			SampleSpacing: 1.0,
			HeightScale:   20.0,
			Noise: settings.NoiseSettings{
				Frequency:  0.05,
				Octaves:    4,
				Lacunarity: 2.0,
				Gain:       0.5,
			},
		},
		Density: settings.DensitySettings{
			ChunkDims:     [3]int{16, 16, 16},
			BorderSamples: 1,
			VoxelSize:     1.0,
		},
		DeterminismEpsilon: 1e-6,
	}
}

func generate(t *testing.T, seed geom.WorldSeed, coord geom.ChunkCoord3, vols []volume.FeatureVolume, set *settings.TerrainGenSettings) *DensityChunk {
	t.Helper()
	sampler := heightfield.NewSampler(seed, set.Height)
	return Generate(seed, coord, vols, set, sampler)
}

func TestGenerateGridShape(t *testing.T) {
	set := baseSettings()
	chunk := generate(t, 1337, geom.ChunkCoord3{}, nil, set)

	want := [3]int{18, 18, 18}
	if chunk.Dims != want {
		t.Fatalf("Dims = %v, want %v", chunk.Dims, want)
	}
	if len(chunk.Density) != 18*18*18 {
		t.Fatalf("len(Density) = %d, want %d", len(chunk.Density), 18*18*18)
	}
}

func TestIndexOrdering(t *testing.T) {
	c := &DensityChunk{Dims: [3]int{4, 5, 6}}
	want := 0
	for z := 0; z < 6; z++ {
		for y := 0; y < 5; y++ {
			for x := 0; x < 4; x++ {
				if got := c.Index(x, y, z); got != want {
					t.Fatalf("Index(%d,%d,%d) = %d, want %d", x, y, z, got, want)
				}
				want++
			}
		}
	}
}

func TestBaseFieldDecreasesWithHeight(t *testing.T) {
	set := baseSettings()
	chunk := generate(t, 1337, geom.ChunkCoord3{}, nil, set)

	for z := 0; z < chunk.Dims[2]; z++ {
		for x := 0; x < chunk.Dims[0]; x++ {
			for y := 0; y+1 < chunk.Dims[1]; y++ {
				lower := chunk.Density[chunk.Index(x, y, z)]
				upper := chunk.Density[chunk.Index(x, y+1, z)]
				if upper >= lower {
					t.Fatalf("density not decreasing in y at (%d,%d,%d): %v then %v", x, y, z, lower, upper)
				}
			}
		}
	}
}

func TestGenerateDeterminism(t *testing.T) {
	set := baseSettings()
	coord := geom.ChunkCoord3{CX: 1, CY: -1, CZ: 2}
	vols := []volume.FeatureVolume{{
		ID:     1,
		Shape:  geom.Aabb{Min: mgl32.Vec3{-100, -100, -100}, Max: mgl32.Vec3{100, 100, 100}},
		Params: volume.CaveParams{Frequency: 0.08, Threshold: 0.3, Strength: 8.0},
	}}
	a := generate(t, 55, coord, vols, set)
	b := generate(t, 55, coord, vols, set)
	for i := range a.Density {
		if a.Density[i] != b.Density[i] {
			t.Fatalf("Density[%d] differs across identical runs: %v vs %v", i, a.Density[i], b.Density[i])
		}
	}
}

func TestCaveOnlyCarves(t *testing.T) {
	set := baseSettings()
	coord := geom.ChunkCoord3{}
	base := generate(t, 1337, coord, nil, set)
	carved := generate(t, 1337, coord, []volume.FeatureVolume{{
		ID:     1,
		Shape:  geom.Aabb{Min: mgl32.Vec3{-100, -100, -100}, Max: mgl32.Vec3{100, 100, 100}},
		Params: volume.CaveParams{Frequency: 0.08, Threshold: 0.3, Strength: 8.0},
	}}, set)

	changed := false
	for i := range base.Density {
		if carved.Density[i] > base.Density[i] {
			t.Fatalf("cave raised density at %d: %v > %v", i, carved.Density[i], base.Density[i])
		}
		if carved.Density[i] != base.Density[i] {
			changed = true
		}
	}
	if !changed {
		t.Fatal("cave volume spanning the whole chunk carved nothing")
	}
}

func TestOverhangRespectsMaxHeight(t *testing.T) {
	set := baseSettings()
	coord := geom.ChunkCoord3{}
	maxHeight := float32(5.0)
	base := generate(t, 1337, coord, nil, set)
	raised := generate(t, 1337, coord, []volume.FeatureVolume{{
		ID:     2,
		Shape:  geom.Aabb{Min: mgl32.Vec3{-100, -100, -100}, Max: mgl32.Vec3{100, 100, 100}},
		Params: volume.OverhangParams{Frequency: 0.12, Strength: 2.5, MaxHeight: maxHeight},
	}}, set)

	border := set.Density.BorderSamples
	voxel := set.Density.VoxelSize
	for z := 0; z < base.Dims[2]; z++ {
		for y := 0; y < base.Dims[1]; y++ {
			worldY := float32(y-border) * voxel
			for x := 0; x < base.Dims[0]; x++ {
				i := base.Index(x, y, z)
				if worldY > maxHeight {
					if raised.Density[i] != base.Density[i] {
						t.Fatalf("overhang touched voxel above max height at y=%v", worldY)
					}
				} else if raised.Density[i] < base.Density[i] {
					t.Fatalf("overhang lowered density at (%d,%d,%d)", x, y, z)
				}
			}
		}
	}
}

func TestCliffOnlyRaises(t *testing.T) {
	set := baseSettings()
	coord := geom.ChunkCoord3{}
	base := generate(t, 1337, coord, nil, set)
	raised := generate(t, 1337, coord, []volume.FeatureVolume{{
		ID:     3,
		Shape:  geom.Aabb{Min: mgl32.Vec3{-100, -100, -100}, Max: mgl32.Vec3{100, 100, 100}},
		Params: volume.CliffParams{Frequency: 0.1, Strength: 3.0},
	}}, set)

	for i := range base.Density {
		if raised.Density[i] < base.Density[i] {
			t.Fatalf("cliff lowered density at %d: %v < %v", i, raised.Density[i], base.Density[i])
		}
	}
}

func TestVolumeOutsideChunkIsNoop(t *testing.T) {
	set := baseSettings()
	coord := geom.ChunkCoord3{}
	base := generate(t, 1337, coord, nil, set)
	far := generate(t, 1337, coord, []volume.FeatureVolume{{
		ID:     4,
		Shape:  geom.Aabb{Min: mgl32.Vec3{500, 500, 500}, Max: mgl32.Vec3{600, 600, 600}},
		Params: volume.CliffParams{Frequency: 0.1, Strength: 3.0},
	}}, set)
	for i := range base.Density {
		if base.Density[i] != far.Density[i] {
			t.Fatalf("distant volume perturbed voxel %d", i)
		}
	}
}

// Neighboring chunks evaluate the shared boundary plane from the same world
// positions, so densities there must agree exactly even under volumes.
func TestNeighborChunksAgreeOnSharedPlane(t *testing.T) {
	set := baseSettings()
	vols := []volume.FeatureVolume{{
		ID:     1,
		Shape:  geom.Aabb{Min: mgl32.Vec3{-100, -100, -100}, Max: mgl32.Vec3{100, 100, 100}},
		Params: volume.CaveParams{Frequency: 0.08, Threshold: 0.3, Strength: 8.0},
	}}
	left := generate(t, 1337, geom.ChunkCoord3{CX: 0}, vols, set)
	right := generate(t, 1337, geom.ChunkCoord3{CX: 1}, vols, set)

	border := set.Density.BorderSamples
	lx := set.Density.ChunkDims[0] - 1 + border
	rx := border
	for z := 0; z < left.Dims[2]; z++ {
		for y := 0; y < left.Dims[1]; y++ {
			lv := left.Density[left.Index(lx, y, z)]
			rv := right.Density[right.Index(rx, y, z)]
			if lv != rv {
				t.Fatalf("boundary plane mismatch at (y=%d,z=%d): %v vs %v", y, z, lv, rv)
			}
		}
	}
}

func TestSampleTrilinearMatchesLattice(t *testing.T) {
	c := &DensityChunk{Dims: [3]int{3, 3, 3}, Density: make([]float32, 27)}
	for z := 0; z < 3; z++ {
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				c.Density[c.Index(x, y, z)] = float32(x + 10*y + 100*z)
			}
		}
	}
	for z := 0; z < 3; z++ {
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				got := c.SampleTrilinear(float32(x), float32(y), float32(z))
				want := c.Density[c.Index(x, y, z)]
				if got != want {
					t.Fatalf("SampleTrilinear(%d,%d,%d) = %v, want %v", x, y, z, got, want)
				}
			}
		}
	}
	// Midpoint of a linear field interpolates exactly.
	if got := c.SampleTrilinear(0.5, 0, 0); got != 0.5 {
		t.Fatalf("SampleTrilinear(0.5,0,0) = %v, want 0.5", got)
	}
}
