package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestParseRegion(t *testing.T) {
	box, err := parseRegion("0,-32,0,128,64,128")
	if err != nil {
		t.Fatalf("parseRegion: %v", err)
	}
	if box.Min != (mgl32.Vec3{0, -32, 0}) || box.Max != (mgl32.Vec3{128, 64, 128}) {
		t.Fatalf("box = %+v", box)
	}

	if _, err := parseRegion("0, -1.5 ,0, 10,2.25,10"); err != nil {
		t.Fatalf("parseRegion with spaces and fractions: %v", err)
	}

	bad := []string{
		"",
		"1,2,3",
		"1,2,3,4,5,x",
		"10,0,0,0,1,1", // min > max on x
	}
	for _, spec := range bad {
		if _, err := parseRegion(spec); err == nil {
			t.Errorf("parseRegion(%q) succeeded", spec)
		}
	}
}
