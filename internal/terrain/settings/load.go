package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ConfigError marks a degenerate configuration detected before generation.
// Builds fail fast on it instead of propagating undefined numeric behavior.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func configErr(field, reason string) error {
	return &ConfigError{Field: field, Reason: reason}
}

// Load reads a terrain.yaml settings file.
func Load(path string) (TerrainGenSettings, error) {
	var s TerrainGenSettings
	raw, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("terrain.yaml: %w", err)
	}
	return s, nil
}

// Validate rejects settings that would make generation numerically
// undefined. It does not normalize anything.
func (s *TerrainGenSettings) Validate() error {
	if s.CacheRoot == "" {
		return configErr("cache_root", "must not be empty")
	}
	if s.Height.ChunkSamples < 2 {
		return configErr("height.chunk_samples", "must be >= 2")
	}
	if s.Height.BorderSamples < 0 {
		return configErr("height.border_samples", "must be >= 0")
	}
	if s.Height.SampleSpacing <= 0 {
		return configErr("height.sample_spacing", "must be > 0")
	}
	if s.Height.Noise.Octaves < 1 {
		return configErr("height.noise.octaves", "must be >= 1")
	}
	for axis, d := range s.Density.ChunkDims {
		if d < 2 {
			return configErr(fmt.Sprintf("density.chunk_dims[%d]", axis), "must be >= 2")
		}
	}
	if s.Density.BorderSamples < 1 {
		// One border layer is the minimum for seam-free gradients.
		return configErr("density.border_samples", "must be >= 1")
	}
	if s.Density.VoxelSize <= 0 {
		return configErr("density.voxel_size", "must be > 0")
	}
	if s.DeterminismEpsilon <= 0 {
		return configErr("determinism_epsilon", "must be > 0")
	}
	return nil
}
