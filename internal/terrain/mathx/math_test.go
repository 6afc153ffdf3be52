package mathx

import "testing"

func TestMix64Avalanche(t *testing.T) {
	// Neighboring inputs must map to well-separated outputs.
	prev := Mix64(0)
	for i := uint64(1); i < 1000; i++ {
		v := Mix64(i)
		if v == prev {
			t.Fatalf("Mix64(%d) == Mix64(%d)", i, i-1)
		}
		prev = v
	}
	if Mix64(42) != Mix64(42) {
		t.Fatal("Mix64 not deterministic")
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 10, 0); got != 2 {
		t.Fatalf("Lerp(2,10,0) = %v", got)
	}
	if got := Lerp(2, 10, 1); got != 10 {
		t.Fatalf("Lerp(2,10,1) = %v", got)
	}
	if got := Lerp(2, 10, 0.5); got != 6 {
		t.Fatalf("Lerp(2,10,0.5) = %v", got)
	}
}

func TestSmoothstep(t *testing.T) {
	if Smoothstep(0) != 0 || Smoothstep(1) != 1 {
		t.Fatal("Smoothstep endpoints moved")
	}
	if Smoothstep(0.5) != 0.5 {
		t.Fatalf("Smoothstep(0.5) = %v", Smoothstep(0.5))
	}
	if Smoothstep(0.25) >= 0.25 {
		t.Fatalf("Smoothstep(0.25) = %v, want < 0.25", Smoothstep(0.25))
	}
	if Smoothstep(0.75) <= 0.75 {
		t.Fatalf("Smoothstep(0.75) = %v, want > 0.75", Smoothstep(0.75))
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 1) != 1 || Clamp(-5, 0, 1) != 0 || Clamp(0.5, 0, 1) != 0.5 {
		t.Fatal("Clamp out of contract")
	}
}
