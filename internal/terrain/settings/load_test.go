package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
world_scale: 1.0
cache_root: ./data/terrain
height:
  chunk_samples: 16
  border_samples: 1
  sample_spacing: 1.0
  height_scale: 20.0
  noise:
    frequency: 0.05
    octaves: 4
    lacunarity: 2.0
    gain: 0.5
    ridged: false
  warp:
    frequency: 0.01
    amplitude: 8.0
density:
  chunk_dims: [16, 16, 16]
  border_samples: 1
  voxel_size: 1.0
  iso_level: 0.0
  cave: { frequency: 0.08, threshold: 0.3, strength: 8.0 }
  overhang: { frequency: 0.12, strength: 2.5, max_height: 12.0 }
  cliff: { frequency: 0.1, strength: 3.0 }
materials:
  layers:
    - { min_height: -100.0, max_height: 5.0, weight: 1.0 }
    - { min_height: 5.0, max_height: 12.0, weight: 1.0 }
    - { min_height: 12.0, max_height: 18.0, weight: 1.0 }
    - { min_height: 18.0, max_height: 100.0, weight: 1.0 }
  slope_rock_threshold: 0.8
determinism_epsilon: 0.000001
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terrain.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	s, err := Load(writeSample(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Height.ChunkSamples != 16 {
		t.Errorf("ChunkSamples = %d, want 16", s.Height.ChunkSamples)
	}
	if s.Height.HeightScale != 20 {
		t.Errorf("HeightScale = %v, want 20", s.Height.HeightScale)
	}
	if s.Height.Warp == nil || s.Height.Warp.Amplitude != 8 {
		t.Errorf("Warp = %+v, want amplitude 8", s.Height.Warp)
	}
	if s.Density.ChunkDims != [3]int{16, 16, 16} {
		t.Errorf("ChunkDims = %v", s.Density.ChunkDims)
	}
	if s.Density.Cave.Threshold != 0.3 {
		t.Errorf("Cave.Threshold = %v, want 0.3", s.Density.Cave.Threshold)
	}
	if s.Materials.Layers[3].MaxHeight != 100 {
		t.Errorf("Layers[3].MaxHeight = %v, want 100", s.Materials.Layers[3].MaxHeight)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate on sample: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load of missing file succeeded")
	}
}

func TestValidateRejectsDegenerateInputs(t *testing.T) {
	valid := func() TerrainGenSettings {
		s, err := Load(writeSample(t))
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		return s
	}

	cases := []struct {
		name   string
		mutate func(*TerrainGenSettings)
		field  string
	}{
		{"empty cache root", func(s *TerrainGenSettings) { s.CacheRoot = "" }, "cache_root"},
		{"chunk samples too small", func(s *TerrainGenSettings) { s.Height.ChunkSamples = 1 }, "height.chunk_samples"},
		{"negative border", func(s *TerrainGenSettings) { s.Height.BorderSamples = -1 }, "height.border_samples"},
		{"zero spacing", func(s *TerrainGenSettings) { s.Height.SampleSpacing = 0 }, "height.sample_spacing"},
		{"zero octaves", func(s *TerrainGenSettings) { s.Height.Noise.Octaves = 0 }, "height.noise.octaves"},
		{"flat density dim", func(s *TerrainGenSettings) { s.Density.ChunkDims[1] = 1 }, "density.chunk_dims[1]"},
		{"no density border", func(s *TerrainGenSettings) { s.Density.BorderSamples = 0 }, "density.border_samples"},
		{"zero voxel", func(s *TerrainGenSettings) { s.Density.VoxelSize = 0 }, "density.voxel_size"},
		{"zero epsilon", func(s *TerrainGenSettings) { s.DeterminismEpsilon = 0 }, "determinism_epsilon"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid()
			tc.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatal("Validate accepted degenerate settings")
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("error %v is not a ConfigError", err)
			}
			if ce.Field != tc.field {
				t.Fatalf("ConfigError.Field = %q, want %q", ce.Field, tc.field)
			}
		})
	}
}
