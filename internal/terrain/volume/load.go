package volume

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	_ "embed"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"terraforge.dev/internal/terrain/geom"
)

//go:embed feature_volumes.schema.json
var schemaSource string

var volumesSchema = jsonschema.MustCompileString("feature_volumes.schema.json", schemaSource)

type fileVolume struct {
	ID       uint64          `json:"id"`
	Kind     string          `json:"kind"`
	Shape    fileAabb        `json:"shape"`
	Cave     *CaveParams     `json:"cave,omitempty"`
	Overhang *OverhangParams `json:"overhang,omitempty"`
	Cliff    *CliffParams    `json:"cliff,omitempty"`
}

type fileAabb struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

type volumesFile struct {
	Volumes []fileVolume `json:"volumes"`
}

// LoadFile reads an authored feature-volume list (the editor's JSON export),
// validates it against the embedded schema and maps each entry into the
// closed params union.
func LoadFile(path string) ([]FeatureVolume, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse decodes and validates an authored volume list from raw JSON.
func Parse(raw []byte) ([]FeatureVolume, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("volumes: %w", err)
	}
	if err := volumesSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("volumes schema: %w", err)
	}

	var vf volumesFile
	if err := json.Unmarshal(raw, &vf); err != nil {
		return nil, fmt.Errorf("volumes: %w", err)
	}

	out := make([]FeatureVolume, 0, len(vf.Volumes))
	for i, fv := range vf.Volumes {
		v := FeatureVolume{
			ID: fv.ID,
			Shape: geom.Aabb{
				Min: mgl32.Vec3(fv.Shape.Min),
				Max: mgl32.Vec3(fv.Shape.Max),
			},
		}
		switch fv.Kind {
		case "cave":
			if fv.Cave == nil {
				return nil, fmt.Errorf("volumes[%d]: cave params missing", i)
			}
			v.Params = *fv.Cave
		case "overhang":
			if fv.Overhang == nil {
				return nil, fmt.Errorf("volumes[%d]: overhang params missing", i)
			}
			v.Params = *fv.Overhang
		case "cliff":
			if fv.Cliff == nil {
				return nil, fmt.Errorf("volumes[%d]: cliff params missing", i)
			}
			v.Params = *fv.Cliff
		default:
			return nil, fmt.Errorf("volumes[%d]: unknown kind %q", i, fv.Kind)
		}
		out = append(out, v)
	}
	return out, nil
}
