package mathx

// Mix64 is the splitmix64 finalizer. Every lattice hash in the generator
// funnels through it, so its bit pattern is part of the on-disk contract.
func Mix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	z := x
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Smoothstep is the cubic fade t*t*(3-2t) on [0,1].
func Smoothstep(t float32) float32 {
	return t * t * (3 - 2*t)
}

func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func AbsInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
