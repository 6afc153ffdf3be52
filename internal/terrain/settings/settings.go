// Package settings holds the immutable value objects that parameterize a
// terrain build. Settings are loaded once, validated up front and passed by
// reference through the pipeline; nothing mutates them during generation.
package settings

import "terraforge.dev/internal/terrain/volume"

// NLayers is the number of material layers blended per height sample.
const NLayers = 4

type TerrainGenSettings struct {
	WorldScale         float32          `yaml:"world_scale" json:"world_scale"`
	CacheRoot          string           `yaml:"cache_root" json:"cache_root"`
	Height             HeightSettings   `yaml:"height" json:"height"`
	Density            DensitySettings  `yaml:"density" json:"density"`
	Materials          MaterialSettings `yaml:"materials" json:"materials"`
	DeterminismEpsilon float32          `yaml:"determinism_epsilon" json:"determinism_epsilon"`
}

type HeightSettings struct {
	ChunkSamples  int           `yaml:"chunk_samples" json:"chunk_samples"`
	BorderSamples int           `yaml:"border_samples" json:"border_samples"`
	SampleSpacing float32       `yaml:"sample_spacing" json:"sample_spacing"`
	HeightScale   float32       `yaml:"height_scale" json:"height_scale"`
	Noise         NoiseSettings `yaml:"noise" json:"noise"`
	Warp          *WarpSettings `yaml:"warp,omitempty" json:"warp,omitempty"`
}

type DensitySettings struct {
	ChunkDims     [3]int                `yaml:"chunk_dims" json:"chunk_dims"`
	BorderSamples int                   `yaml:"border_samples" json:"border_samples"`
	VoxelSize     float32               `yaml:"voxel_size" json:"voxel_size"`
	IsoLevel      float32               `yaml:"iso_level" json:"iso_level"`
	Cave          volume.CaveParams     `yaml:"cave" json:"cave"`
	Overhang      volume.OverhangParams `yaml:"overhang" json:"overhang"`
	Cliff         volume.CliffParams    `yaml:"cliff" json:"cliff"`
}

type MaterialSettings struct {
	Layers             [NLayers]MaterialLayer `yaml:"layers" json:"layers"`
	SlopeRockThreshold float32                `yaml:"slope_rock_threshold" json:"slope_rock_threshold"`
}

// MaterialLayer contributes its weight when a sample's height falls in
// [MinHeight, MaxHeight).
type MaterialLayer struct {
	MinHeight float32 `yaml:"min_height" json:"min_height"`
	MaxHeight float32 `yaml:"max_height" json:"max_height"`
	Weight    float32 `yaml:"weight" json:"weight"`
}

type NoiseSettings struct {
	Frequency  float32 `yaml:"frequency" json:"frequency"`
	Octaves    int     `yaml:"octaves" json:"octaves"`
	Lacunarity float32 `yaml:"lacunarity" json:"lacunarity"`
	Gain       float32 `yaml:"gain" json:"gain"`
	Ridged     bool    `yaml:"ridged" json:"ridged"`
}

type WarpSettings struct {
	Frequency float32 `yaml:"frequency" json:"frequency"`
	Amplitude float32 `yaml:"amplitude" json:"amplitude"`
}
