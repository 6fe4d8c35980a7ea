package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	got := UnitX.Cross(UnitY)
	if got != UnitZ {
		t.Errorf("Vec3.Cross() = %v, want %v", got, UnitZ)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("zero vector Normalize() = %v, want zero", zero)
	}
}

func TestVec3MirrorX(t *testing.T) {
	v := Vec3{1.5, -2, 3}
	got := v.MirrorX()
	want := Vec3{-1.5, -2, 3}
	if got != want {
		t.Errorf("MirrorX() = %v, want %v", got, want)
	}
	if got.MirrorX() != v {
		t.Error("MirrorX should be its own inverse")
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -2}
	b := Vec3{3, -1, 0}
	if got, want := a.Min(b), (Vec3{1, -1, -2}); got != want {
		t.Errorf("Min() = %v, want %v", got, want)
	}
	if got, want := a.Max(b), (Vec3{3, 5, 0}); got != want {
		t.Errorf("Max() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}
