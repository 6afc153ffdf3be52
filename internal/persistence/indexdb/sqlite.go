// Package indexdb keeps a queryable SQLite index of region builds and the
// chunk artifacts each build produced. The cache directory remains the
// source of truth; the index exists so tooling can find builds without
// walking manifests.
package indexdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"terraforge.dev/internal/persistence/cache"
)

type SQLiteIndex struct {
	db *sql.DB
}

type BuildRow struct {
	BuildID      string
	Seed         uint64
	OutputRoot   string
	RegionBounds string // JSON, as written in the manifest
	Heights      int
	Densities    int
	Meshes       int
	RecordedAt   string
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteIndex{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS builds (
			build_id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			output_root TEXT NOT NULL,
			region_bounds TEXT NOT NULL,
			height_chunks INTEGER NOT NULL,
			density_chunks INTEGER NOT NULL,
			mesh_chunks INTEGER NOT NULL,
			recorded_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS chunks (
			build_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			cx INTEGER NOT NULL,
			cy INTEGER NOT NULL,
			cz INTEGER NOT NULL,
			lod INTEGER NOT NULL,
			PRIMARY KEY (build_id, kind, cx, cy, cz, lod)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_kind_pos ON chunks(kind, cx, cz, cy);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// RecordBuild inserts a build row plus one chunk row per manifest entry,
// in a single transaction.
func (s *SQLiteIndex) RecordBuild(buildID string, seed uint64, outputRoot string, m *cache.RegionManifest) error {
	if s == nil {
		return nil
	}
	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	bounds, err := json.Marshal(m.RegionBounds)
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT OR REPLACE INTO builds(build_id,seed,output_root,region_bounds,height_chunks,density_chunks,mesh_chunks,recorded_at) VALUES(?,?,?,?,?,?,?,?)`,
		buildID, int64(seed), outputRoot, string(bounds),
		len(m.HeightChunks), len(m.DensityChunks), len(m.MeshChunks), now,
	); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO chunks(build_id,kind,cx,cy,cz,lod) VALUES(?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, c := range m.HeightChunks {
		if _, err := stmt.Exec(buildID, "height", c.CX, 0, c.CZ, int(c.Lod)); err != nil {
			return err
		}
	}
	for _, c := range m.DensityChunks {
		if _, err := stmt.Exec(buildID, "density", c.CX, c.CY, c.CZ, int(c.Lod)); err != nil {
			return err
		}
	}
	for _, c := range m.MeshChunks {
		if _, err := stmt.Exec(buildID, "mesh", c.CX, c.CY, c.CZ, int(c.Lod)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Builds returns every recorded build, newest first.
func (s *SQLiteIndex) Builds() ([]BuildRow, error) {
	rows, err := s.db.Query(
		`SELECT build_id, seed, output_root, region_bounds, height_chunks, density_chunks, mesh_chunks, recorded_at
		 FROM builds ORDER BY recorded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BuildRow
	for rows.Next() {
		var r BuildRow
		var seed int64
		if err := rows.Scan(&r.BuildID, &seed, &r.OutputRoot, &r.RegionBounds, &r.Heights, &r.Densities, &r.Meshes, &r.RecordedAt); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ChunkCount returns how many chunks of the given kind a build produced.
func (s *SQLiteIndex) ChunkCount(buildID, kind string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks WHERE build_id=? AND kind=?`, buildID, kind).Scan(&n)
	return n, err
}
