package region

import (
	"fmt"
	"os"
	"sort"

	"github.com/dgravesa/go-parallel/parallel"

	"terraforge.dev/internal/persistence/cache"
	"terraforge.dev/internal/terrain/densityfield"
	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/heightfield"
	"terraforge.dev/internal/terrain/mesh"
	"terraforge.dev/internal/terrain/settings"
	"terraforge.dev/internal/terrain/volume"
)

// BuildArtifact describes a finished region build on disk.
type BuildArtifact struct {
	OutputRoot string
	Manifest   cache.RegionManifest
}

type heightResult struct {
	err error
}

type densityResult struct {
	skipped bool
	err     error
}

// BuildRegion generates every height chunk covering regionBounds and every
// density chunk touched by a feature volume, writes the binary artifacts
// under set.CacheRoot and finishes with the manifest. Chunk generation runs
// across a worker pool; results are merged in coordinate order so repeated
// builds of the same seed and region produce byte-identical output.
func BuildRegion(seed geom.WorldSeed, regionBounds geom.Aabb, set *settings.TerrainGenSettings, authored []volume.FeatureVolume) (*BuildArtifact, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	root := set.CacheRoot
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create cache root: %w", err)
	}

	volumes := append([]volume.FeatureVolume(nil), authored...)
	volumes = append(volumes, DetectFeatureVolumes(seed, regionBounds, set)...)

	sampler := heightfield.NewSampler(seed, set.Height)

	manifest := cache.RegionManifest{
		RegionBounds: regionBounds,
		ChunkBounds:  make(map[string]geom.Aabb),
	}

	// Height pass.
	heightCoords := CollectHeightChunks(regionBounds, set)
	hres := make([]heightResult, len(heightCoords))
	parallel.For(len(heightCoords), func(i, _ int) {
		coord := heightCoords[i]
		chunk := heightfield.Generate(seed, coord, set)
		hres[i].err = cache.WriteHeightChunk(root, coord, chunk)
	})
	for i, r := range hres {
		if r.err != nil {
			return nil, fmt.Errorf("height chunk %d_%d: %w", heightCoords[i].CX, heightCoords[i].CZ, r.err)
		}
	}
	sort.Slice(heightCoords, func(a, b int) bool { return heightCoords[a].Less(heightCoords[b]) })
	for _, coord := range heightCoords {
		manifest.HeightChunks = append(manifest.HeightChunks, coord)
		manifest.ChunkBounds[cache.HeightKey(coord)] = HeightChunkAabb(coord, set)
	}

	// Density pass, driven by volume coverage: only chunks a feature volume
	// touches are candidates, and each candidate re-filters against its own
	// box before generating. The coarse per-volume coverage can name chunks
	// the volume misses at chunk-box granularity; those skip here.
	survivors := volume.OverlappingAabb(volumes, regionBounds)
	candidates := densityCandidates(survivors, set)
	dres := make([]densityResult, len(candidates))
	parallel.For(len(candidates), func(i, _ int) {
		coord := candidates[i]
		box := DensityChunkAabb(coord, set)
		inRange := volume.OverlappingAabb(survivors, box)
		if len(inRange) == 0 {
			dres[i].skipped = true
			return
		}
		chunk := densityfield.Generate(seed, coord, inRange, set, sampler)
		if err := cache.WriteDensityChunk(root, coord, chunk); err != nil {
			dres[i].err = err
			return
		}
		m := mesh.FromDensity(chunk, &set.Density)
		dres[i].err = cache.WriteMeshChunk(root, coord, m)
	})
	var builtChunks []geom.ChunkCoord3
	for i, r := range dres {
		if r.err != nil {
			c := candidates[i]
			return nil, fmt.Errorf("density chunk %d_%d_%d: %w", c.CX, c.CY, c.CZ, r.err)
		}
		if !r.skipped {
			builtChunks = append(builtChunks, candidates[i])
		}
	}
	sort.Slice(builtChunks, func(a, b int) bool { return builtChunks[a].Less(builtChunks[b]) })
	for _, coord := range builtChunks {
		manifest.DensityChunks = append(manifest.DensityChunks, coord)
		manifest.MeshChunks = append(manifest.MeshChunks, coord)
		manifest.ChunkBounds[cache.DensityKey(coord)] = DensityChunkAabb(coord, set)
	}

	// The manifest lands last: its presence marks the build complete.
	if err := cache.WriteManifest(root, &manifest); err != nil {
		return nil, err
	}
	return &BuildArtifact{OutputRoot: root, Manifest: manifest}, nil
}

// densityCandidates unions the chunk coverage of every volume, deduplicated
// and sorted.
func densityCandidates(volumes []volume.FeatureVolume, set *settings.TerrainGenSettings) []geom.ChunkCoord3 {
	seen := make(map[geom.ChunkCoord3]struct{})
	for _, v := range volumes {
		for _, coord := range CollectDensityChunks(v.Shape, set) {
			seen[coord] = struct{}{}
		}
	}
	coords := make([]geom.ChunkCoord3, 0, len(seen))
	for coord := range seen {
		coords = append(coords, coord)
	}
	sort.Slice(coords, func(a, b int) bool { return coords[a].Less(coords[b]) })
	return coords
}
