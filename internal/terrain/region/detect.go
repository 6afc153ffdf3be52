package region

import (
	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/settings"
	"terraforge.dev/internal/terrain/volume"
)

// DetectFeatureVolumes derives feature volumes from the terrain itself
// inside the queried box. Procedural detection (cave entrances from steep
// curvature, cliff bands from slope runs) is not implemented yet; builds
// run entirely from the authored volume list.
//
// TODO(detect): derive cliff volumes from contiguous slope>threshold runs
// in the height field once curvature maps are populated.
func DetectFeatureVolumes(seed geom.WorldSeed, query geom.Aabb, set *settings.TerrainGenSettings) []volume.FeatureVolume {
	_ = seed
	_ = query
	_ = set
	return nil
}
