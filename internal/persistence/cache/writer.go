package cache

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"terraforge.dev/internal/terrain/densityfield"
	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/heightfield"
	"terraforge.dev/internal/terrain/mesh"
)

const (
	heightDir  = "height"
	weightsDir = "weights"
	densityDir = "density"
	meshDir    = "mesh"
)

func heightPath(root string, c geom.ChunkCoord2) string {
	return filepath.Join(root, heightDir, fmt.Sprintf("%d_%d_%d.bin", c.CX, c.CZ, c.Lod))
}

func weightsPath(root string, c geom.ChunkCoord2) string {
	return filepath.Join(root, weightsDir, fmt.Sprintf("%d_%d_%d.bin", c.CX, c.CZ, c.Lod))
}

func densityPath(root string, c geom.ChunkCoord3) string {
	return filepath.Join(root, densityDir, fmt.Sprintf("%d_%d_%d_%d.bin", c.CX, c.CY, c.CZ, c.Lod))
}

func meshPath(root string, c geom.ChunkCoord3) string {
	return filepath.Join(root, meshDir, fmt.Sprintf("%d_%d_%d_%d.meshbin", c.CX, c.CY, c.CZ, c.Lod))
}

func writeBinaryFile(path string, write func(w *bufio.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	w := bufio.NewWriterSize(f, 64*1024)
	if err := write(w); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteHeightChunk writes the raw height grid and the packed material
// weights as two sibling artifacts.
func WriteHeightChunk(root string, coord geom.ChunkCoord2, chunk *heightfield.HeightChunk) error {
	err := writeBinaryFile(heightPath(root, coord), func(w *bufio.Writer) error {
		return binary.Write(w, binary.LittleEndian, chunk.Heights)
	})
	if err != nil {
		return fmt.Errorf("write height chunk %v: %w", coord, err)
	}
	err = writeBinaryFile(weightsPath(root, coord), func(w *bufio.Writer) error {
		for _, sample := range chunk.MaterialWeights {
			if _, err := w.Write(sample[:]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("write weight chunk %v: %w", coord, err)
	}
	return nil
}

// WriteDensityChunk writes the flat density grid in its fixed voxel order.
func WriteDensityChunk(root string, coord geom.ChunkCoord3, chunk *densityfield.DensityChunk) error {
	err := writeBinaryFile(densityPath(root, coord), func(w *bufio.Writer) error {
		return binary.Write(w, binary.LittleEndian, chunk.Density)
	})
	if err != nil {
		return fmt.Errorf("write density chunk %v: %w", coord, err)
	}
	return nil
}

// WriteMeshChunk writes a mesh artifact: vertex count, index count, then
// positions, normals and indices, all little-endian.
func WriteMeshChunk(root string, coord geom.ChunkCoord3, chunk *mesh.MeshChunk) error {
	err := writeBinaryFile(meshPath(root, coord), func(w *bufio.Writer) error {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(chunk.Positions))); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, uint32(len(chunk.Indices))); err != nil {
			return err
		}
		for _, p := range chunk.Positions {
			if err := binary.Write(w, binary.LittleEndian, p); err != nil {
				return err
			}
		}
		for _, n := range chunk.Normals {
			if err := binary.Write(w, binary.LittleEndian, n); err != nil {
				return err
			}
		}
		return binary.Write(w, binary.LittleEndian, chunk.Indices)
	})
	if err != nil {
		return fmt.Errorf("write mesh chunk %v: %w", coord, err)
	}
	return nil
}
