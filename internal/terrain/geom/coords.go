package geom

// WorldSeed is the sole source of randomness in the generator. Every noise
// value is a pure function of (seed, integer lattice coordinates), so two
// processes holding the same seed produce the same world.
type WorldSeed uint64

// ChunkCoord2 identifies a height chunk. Lod is always 0 on current
// generation paths but is part of the identity and of artifact filenames.
type ChunkCoord2 struct {
	CX  int   `json:"cx"`
	CZ  int   `json:"cz"`
	Lod uint8 `json:"lod"`
}

// ChunkCoord3 identifies a density/mesh chunk.
type ChunkCoord3 struct {
	CX  int   `json:"cx"`
	CY  int   `json:"cy"`
	CZ  int   `json:"cz"`
	Lod uint8 `json:"lod"`
}

// Less orders coordinates field by field (cx, cz, lod). Region builds sort
// manifest entries with it so repeated builds serialize identically.
func (c ChunkCoord2) Less(o ChunkCoord2) bool {
	if c.CX != o.CX {
		return c.CX < o.CX
	}
	if c.CZ != o.CZ {
		return c.CZ < o.CZ
	}
	return c.Lod < o.Lod
}

func (c ChunkCoord3) Less(o ChunkCoord3) bool {
	if c.CX != o.CX {
		return c.CX < o.CX
	}
	if c.CY != o.CY {
		return c.CY < o.CY
	}
	if c.CZ != o.CZ {
		return c.CZ < o.CZ
	}
	return c.Lod < o.Lod
}
