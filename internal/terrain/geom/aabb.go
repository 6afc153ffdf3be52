package geom

import "github.com/go-gl/mathgl/mgl32"

// Aabb is an axis-aligned box in world space.
type Aabb struct {
	Min mgl32.Vec3 `json:"min"`
	Max mgl32.Vec3 `json:"max"`
}

// Intersects reports whether all three axis intervals overlap. Comparisons
// are closed: boxes touching on a face still intersect.
func (a Aabb) Intersects(b Aabb) bool {
	return a.Min[0] <= b.Max[0] && a.Max[0] >= b.Min[0] &&
		a.Min[1] <= b.Max[1] && a.Max[1] >= b.Min[1] &&
		a.Min[2] <= b.Max[2] && a.Max[2] >= b.Min[2]
}

// ContainsPoint uses inclusive bounds on every axis.
func (a Aabb) ContainsPoint(p mgl32.Vec3) bool {
	return p[0] >= a.Min[0] && p[0] <= a.Max[0] &&
		p[1] >= a.Min[1] && p[1] <= a.Max[1] &&
		p[2] >= a.Min[2] && p[2] <= a.Max[2]
}
