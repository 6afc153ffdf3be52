// Package volume models authored carving/raising features: axis-aligned
// boxes tagged cave, overhang or cliff. Volumes are produced by an external
// authoring tool and are immutable during a build.
package volume

import "terraforge.dev/internal/terrain/geom"

// Params is the closed union of per-kind feature parameters. The variant set
// is fixed; density generation type-switches over it exhaustively.
type Params interface {
	Kind() string
	featureParams()
}

// CaveParams carves toward air where 3D noise exceeds the threshold.
type CaveParams struct {
	Frequency float32 `yaml:"frequency" json:"frequency"`
	Threshold float32 `yaml:"threshold" json:"threshold"`
	Strength  float32 `yaml:"strength" json:"strength"`
}

// OverhangParams raises density below max_height by a 2D ridge field.
type OverhangParams struct {
	Frequency float32 `yaml:"frequency" json:"frequency"`
	Strength  float32 `yaml:"strength" json:"strength"`
	MaxHeight float32 `yaml:"max_height" json:"max_height"`
}

// CliffParams raises density unconditionally within the volume.
type CliffParams struct {
	Frequency float32 `yaml:"frequency" json:"frequency"`
	Strength  float32 `yaml:"strength" json:"strength"`
}

func (CaveParams) Kind() string     { return "cave" }
func (OverhangParams) Kind() string { return "overhang" }
func (CliffParams) Kind() string    { return "cliff" }

func (CaveParams) featureParams()     {}
func (OverhangParams) featureParams() {}
func (CliffParams) featureParams()    {}

// FeatureVolume is one authored feature box.
type FeatureVolume struct {
	ID     uint64
	Shape  geom.Aabb
	Params Params
}

// OverlappingAabb filters volumes by the closed AABB overlap test and
// returns copies of the matches, preserving the input order.
func OverlappingAabb(volumes []FeatureVolume, box geom.Aabb) []FeatureVolume {
	var out []FeatureVolume
	for _, v := range volumes {
		if v.Shape.Intersects(box) {
			out = append(out, v)
		}
	}
	return out
}
