package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"terraforge.dev/internal/persistence/buildsnap"
	"terraforge.dev/internal/persistence/indexdb"
	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/region"
	"terraforge.dev/internal/terrain/settings"
	"terraforge.dev/internal/terrain/volume"
)

func main() {
	var (
		seed         = flag.Uint64("seed", 1337, "world seed")
		settingsPath = flag.String("settings", "./configs/terrain.yaml", "terrain settings path")
		volumesPath  = flag.String("volumes", "", "authored feature volumes json (optional)")
		outDir       = flag.String("out", "", "output directory (overrides cache_root from settings)")
		regionSpec   = flag.String("region", "0,-32,0,128,64,128", "region to build: minX,minY,minZ,maxX,maxY,maxZ")
		snapPath     = flag.String("snapshot", "", "build snapshot path (default: <out>/build.snap)")
		dbPath       = flag.String("db", "", "sqlite build index path (optional)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[terraforge] ", log.LstdFlags|log.Lmicroseconds)

	set, err := settings.Load(*settingsPath)
	if err != nil {
		logger.Fatalf("load settings: %v", err)
	}
	if strings.TrimSpace(*outDir) != "" {
		set.CacheRoot = *outDir
	}
	if err := set.Validate(); err != nil {
		logger.Fatalf("validate settings: %v", err)
	}

	bounds, err := parseRegion(*regionSpec)
	if err != nil {
		logger.Fatalf("parse region: %v", err)
	}

	var volumes []volume.FeatureVolume
	if strings.TrimSpace(*volumesPath) != "" {
		volumes, err = volume.LoadFile(*volumesPath)
		if err != nil {
			logger.Fatalf("load volumes: %v", err)
		}
		logger.Printf("loaded %d feature volumes from %s", len(volumes), *volumesPath)
	}

	buildID := uuid.NewString()
	logger.Printf("build %s: seed=%d region=%v..%v out=%s", buildID, *seed, bounds.Min, bounds.Max, set.CacheRoot)

	start := time.Now()
	art, err := region.BuildRegion(geom.WorldSeed(*seed), bounds, &set, volumes)
	if err != nil {
		logger.Fatalf("build region: %v", err)
	}
	logger.Printf("built %d height, %d density, %d mesh chunks in %s",
		len(art.Manifest.HeightChunks), len(art.Manifest.DensityChunks), len(art.Manifest.MeshChunks),
		time.Since(start).Round(time.Millisecond))

	snapTarget := strings.TrimSpace(*snapPath)
	if snapTarget == "" {
		snapTarget = filepath.Join(set.CacheRoot, "build.snap")
	}
	snap := buildsnap.New(buildID, geom.WorldSeed(*seed), &set, &art.Manifest)
	if err := buildsnap.Write(snapTarget, snap); err != nil {
		logger.Fatalf("write snapshot: %v", err)
	}
	logger.Printf("snapshot written to %s", snapTarget)

	if strings.TrimSpace(*dbPath) != "" {
		idx, err := indexdb.OpenSQLite(*dbPath)
		if err != nil {
			logger.Fatalf("open build index: %v", err)
		}
		defer idx.Close()
		if err := idx.RecordBuild(buildID, *seed, absOrSelf(art.OutputRoot), &art.Manifest); err != nil {
			logger.Fatalf("record build: %v", err)
		}
		logger.Printf("build indexed in %s", *dbPath)
	}
}

func parseRegion(spec string) (geom.Aabb, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 6 {
		return geom.Aabb{}, fmt.Errorf("want 6 comma-separated values, got %d", len(parts))
	}
	var v [6]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return geom.Aabb{}, fmt.Errorf("value %d: %w", i, err)
		}
		v[i] = float32(f)
	}
	box := geom.Aabb{
		Min: mgl32.Vec3{v[0], v[1], v[2]},
		Max: mgl32.Vec3{v[3], v[4], v[5]},
	}
	for i := 0; i < 3; i++ {
		if box.Min[i] > box.Max[i] {
			return geom.Aabb{}, fmt.Errorf("axis %d: min %v greater than max %v", i, box.Min[i], box.Max[i])
		}
	}
	return box, nil
}

func absOrSelf(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
