package cache

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"terraforge.dev/internal/terrain/geom"
	"terraforge.dev/internal/terrain/mesh"
)

// ReadHeightRaw loads a height artifact as a flat float32 grid. The caller
// knows the grid size from its settings.
func ReadHeightRaw(root string, coord geom.ChunkCoord2) ([]float32, error) {
	raw, err := os.ReadFile(heightPath(root, coord))
	if err != nil {
		return nil, err
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("height chunk %v: truncated (%d bytes)", coord, len(raw))
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// ReadWeightsRaw loads a packed material-weight artifact: 4 interleaved
// layer bytes per sample, row-major.
func ReadWeightsRaw(root string, coord geom.ChunkCoord2) ([]byte, error) {
	return os.ReadFile(weightsPath(root, coord))
}

// ReadDensityRaw loads a density artifact as a flat float32 grid in the
// fixed (z*dy+y)*dx+x order.
func ReadDensityRaw(root string, coord geom.ChunkCoord3) ([]float32, error) {
	raw, err := os.ReadFile(densityPath(root, coord))
	if err != nil {
		return nil, err
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("density chunk %v: truncated (%d bytes)", coord, len(raw))
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

// ReadMeshChunk loads a mesh artifact written by WriteMeshChunk.
func ReadMeshChunk(root string, coord geom.ChunkCoord3) (*mesh.MeshChunk, error) {
	f, err := os.Open(meshPath(root, coord))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var vertexCount, indexCount uint32
	if err := binary.Read(r, binary.LittleEndian, &vertexCount); err != nil {
		return nil, fmt.Errorf("mesh chunk %v: %w", coord, err)
	}
	if err := binary.Read(r, binary.LittleEndian, &indexCount); err != nil {
		return nil, fmt.Errorf("mesh chunk %v: %w", coord, err)
	}
	out := &mesh.MeshChunk{
		Positions: make([]mgl32.Vec3, vertexCount),
		Normals:   make([]mgl32.Vec3, vertexCount),
		Indices:   make([]uint32, indexCount),
	}
	if err := binary.Read(r, binary.LittleEndian, out.Positions); err != nil {
		return nil, fmt.Errorf("mesh chunk %v positions: %w", coord, err)
	}
	if err := binary.Read(r, binary.LittleEndian, out.Normals); err != nil {
		return nil, fmt.Errorf("mesh chunk %v normals: %w", coord, err)
	}
	if err := binary.Read(r, binary.LittleEndian, out.Indices); err != nil {
		return nil, fmt.Errorf("mesh chunk %v indices: %w", coord, err)
	}
	return out, nil
}

func float32frombits(b uint32) float32 {
	return math.Float32frombits(b)
}
