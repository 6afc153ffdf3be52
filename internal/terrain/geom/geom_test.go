package geom

import (
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) Aabb {
	return Aabb{Min: mgl32.Vec3{minX, minY, minZ}, Max: mgl32.Vec3{maxX, maxY, maxZ}}
}

func TestIntersects(t *testing.T) {
	a := box(0, 0, 0, 10, 10, 10)
	cases := []struct {
		name string
		b    Aabb
		want bool
	}{
		{"overlapping", box(5, 5, 5, 15, 15, 15), true},
		{"contained", box(2, 2, 2, 8, 8, 8), true},
		{"touching face", box(10, 0, 0, 20, 10, 10), true},
		{"touching corner", box(10, 10, 10, 20, 20, 20), true},
		{"disjoint x", box(11, 0, 0, 20, 10, 10), false},
		{"disjoint y", box(0, -20, 0, 10, -1, 10), false},
		{"disjoint z", box(0, 0, 10.5, 10, 10, 20), false},
	}
	for _, tc := range cases {
		if got := a.Intersects(tc.b); got != tc.want {
			t.Errorf("%s: Intersects = %v, want %v", tc.name, got, tc.want)
		}
		if got := tc.b.Intersects(a); got != tc.want {
			t.Errorf("%s (flipped): Intersects = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestContainsPoint(t *testing.T) {
	a := box(-1, -1, -1, 1, 1, 1)
	if !a.ContainsPoint(mgl32.Vec3{0, 0, 0}) {
		t.Error("center not contained")
	}
	if !a.ContainsPoint(mgl32.Vec3{1, 1, 1}) {
		t.Error("max corner should be contained (inclusive bounds)")
	}
	if !a.ContainsPoint(mgl32.Vec3{-1, 0, 1}) {
		t.Error("face point should be contained")
	}
	if a.ContainsPoint(mgl32.Vec3{1.0001, 0, 0}) {
		t.Error("point past max contained")
	}
}

func TestChunkCoord2Ordering(t *testing.T) {
	coords := []ChunkCoord2{
		{CX: 1, CZ: 0},
		{CX: 0, CZ: 1},
		{CX: 0, CZ: 0},
		{CX: -1, CZ: 5},
		{CX: 0, CZ: 0, Lod: 1},
	}
	sort.Slice(coords, func(i, j int) bool { return coords[i].Less(coords[j]) })
	want := []ChunkCoord2{
		{CX: -1, CZ: 5},
		{CX: 0, CZ: 0},
		{CX: 0, CZ: 0, Lod: 1},
		{CX: 0, CZ: 1},
		{CX: 1, CZ: 0},
	}
	for i := range want {
		if coords[i] != want[i] {
			t.Fatalf("sorted[%d] = %+v, want %+v", i, coords[i], want[i])
		}
	}
}

func TestChunkCoord3Ordering(t *testing.T) {
	a := ChunkCoord3{CX: 0, CY: 0, CZ: 0}
	b := ChunkCoord3{CX: 0, CY: 0, CZ: 1}
	c := ChunkCoord3{CX: 0, CY: 1, CZ: 0}
	d := ChunkCoord3{CX: 1, CY: -5, CZ: -5}
	for _, pair := range [][2]ChunkCoord3{{a, b}, {a, c}, {a, d}, {b, d}, {c, d}} {
		if !pair[0].Less(pair[1]) {
			t.Errorf("%+v should sort before %+v", pair[0], pair[1])
		}
		if pair[1].Less(pair[0]) {
			t.Errorf("%+v should not sort before %+v", pair[1], pair[0])
		}
	}
	if a.Less(a) {
		t.Error("Less must be irreflexive")
	}
}
