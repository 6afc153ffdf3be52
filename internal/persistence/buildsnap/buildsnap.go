// Package buildsnap archives a finished region build as a single
// zstd-compressed file: a JSON header line for quick inspection, followed
// by a gob-encoded body carrying the settings and manifest that produced
// the build.
package buildsnap

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"terraforge.dev/internal/persistence/cache"
	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/settings"
)

type Header struct {
	Version int    `json:"version"`
	BuildID string `json:"build_id"`
	Seed    uint64 `json:"seed"`
}

type BuildSnapV1 struct {
	Header Header `json:"header"`

	Settings settings.TerrainGenSettings `json:"settings"`
	Manifest cache.RegionManifest        `json:"manifest"`

	HeightChunkCount  int `json:"height_chunk_count"`
	DensityChunkCount int `json:"density_chunk_count"`
	MeshChunkCount    int `json:"mesh_chunk_count"`
}

// New assembles a snapshot from a finished build.
func New(buildID string, seed geom.WorldSeed, set *settings.TerrainGenSettings, manifest *cache.RegionManifest) BuildSnapV1 {
	return BuildSnapV1{
		Header:            Header{Version: 1, BuildID: buildID, Seed: uint64(seed)},
		Settings:          *set,
		Manifest:          *manifest,
		HeightChunkCount:  len(manifest.HeightChunks),
		DensityChunkCount: len(manifest.DensityChunks),
		MeshChunkCount:    len(manifest.MeshChunks),
	}
}

func Write(path string, snap BuildSnapV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func Read(path string) (BuildSnapV1, error) {
	var snap BuildSnapV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Header line is for humans and tooling; gob carries it too.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}
