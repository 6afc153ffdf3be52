// Package cache writes terrain build artifacts into a cache directory:
// little-endian binary chunk files plus a JSON manifest. The formats are the
// contract with the runtime loader; nothing here is versioned beyond them.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"terraforge.dev/internal/terrain/geom"
)

const ManifestName = "manifest.json"

// RegionManifest records what one region build produced and where each
// chunk lives in world space.
type RegionManifest struct {
	RegionBounds  geom.Aabb                `json:"region_bounds"`
	HeightChunks  []geom.ChunkCoord2       `json:"height_chunks"`
	DensityChunks []geom.ChunkCoord3       `json:"density_chunks"`
	MeshChunks    []geom.ChunkCoord3       `json:"mesh_chunks"`
	ChunkBounds   map[string]geom.Aabb     `json:"chunk_bounds"`
}

// HeightKey is the manifest chunk-bounds key for a height chunk.
func HeightKey(c geom.ChunkCoord2) string {
	return fmt.Sprintf("height:%d:%d:%d", c.CX, c.CZ, c.Lod)
}

// DensityKey is the manifest chunk-bounds key for a density/mesh chunk.
func DensityKey(c geom.ChunkCoord3) string {
	return fmt.Sprintf("density:%d:%d:%d:%d", c.CX, c.CY, c.CZ, c.Lod)
}

// WriteManifest serializes the manifest as pretty-printed JSON. Map keys
// serialize in sorted order, so identical builds produce identical bytes.
func WriteManifest(root string, m *RegionManifest) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(root, ManifestName), b, 0o644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(root string) (*RegionManifest, error) {
	raw, err := os.ReadFile(filepath.Join(root, ManifestName))
	if err != nil {
		return nil, err
	}
	var m RegionManifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return &m, nil
}
