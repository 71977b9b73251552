package geom

import (
	"math"
	"testing"
)

func TestTransformDefaults(t *testing.T) {
	tr := NewTransform()
	if tr.Location() != Zero3 {
		t.Errorf("Location() = %v, want zero", tr.Location())
	}
	if tr.Scale() != One3 {
		t.Errorf("Scale() = %v, want one", tr.Scale())
	}
	if !tr.Forward().ApproxEqual(UnitY) {
		t.Errorf("Forward() = %v, want +Y", tr.Forward())
	}
	if !tr.Up().ApproxEqual(UnitZ) {
		t.Errorf("Up() = %v, want +Z", tr.Up())
	}
	if !tr.Right().ApproxEqual(UnitX) {
		t.Errorf("Right() = %v, want +X", tr.Right())
	}
}

func TestTransformNotifiesOps(t *testing.T) {
	tr := NewTransform()
	var got []Ops
	tr.Observe(func(_ *Transform, ops Ops) { got = append(got, ops) })

	tr.SetLocation(V3(1, 2, 3))
	tr.SetScale(V3(2, 2, 2))
	tr.SetRotation(QuatAxisAngle(UnitZ, 0.5))
	tr.Translate(V3(1, 0, 0))
	tr.RotateAxis(UnitX, 0.1)

	want := []Ops{OpLocation, OpScale, OpRotation, OpLocation, OpRotation}
	if len(got) != len(want) {
		t.Fatalf("got %d notifications, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notification %d = %v, want %v", i, got[i], want[i])
		}
	}
	if !tr.Location().ApproxEqual(V3(2, 2, 3)) {
		t.Errorf("Location() = %v, want (2, 2, 3)", tr.Location())
	}
}

func TestTransformObserverSeesNewValue(t *testing.T) {
	tr := NewTransform()
	var seen Vec3
	tr.Observe(func(t *Transform, _ Ops) { seen = t.Location() })
	tr.SetLocation(V3(4, 5, 6))
	if seen != V3(4, 5, 6) {
		t.Errorf("observer saw %v, want (4, 5, 6)", seen)
	}
}

func TestTransformCancelObserver(t *testing.T) {
	tr := NewTransform()
	var a, b int
	cancelA := tr.Observe(func(*Transform, Ops) { a++ })
	tr.Observe(func(*Transform, Ops) { b++ })

	tr.SetLocation(UnitX)
	cancelA()
	cancelA()
	tr.SetLocation(UnitY)

	if a != 1 {
		t.Errorf("cancelled observer called %d times, want 1", a)
	}
	if b != 2 {
		t.Errorf("remaining observer called %d times, want 2", b)
	}
}

func TestTransformCancelDuringNotify(t *testing.T) {
	tr := NewTransform()
	var calls []string
	var cancelA func()
	cancelA = tr.Observe(func(*Transform, Ops) {
		calls = append(calls, "A")
		cancelA()
	})
	tr.Observe(func(*Transform, Ops) { calls = append(calls, "B") })
	tr.Observe(func(*Transform, Ops) { calls = append(calls, "C") })

	tr.SetLocation(UnitX)
	tr.SetLocation(UnitY)

	want := []string{"A", "B", "C", "B", "C"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls = %v, want %v", calls, want)
			break
		}
	}
}

func TestTransformNormalizesRotation(t *testing.T) {
	tr := NewTransform()
	tr.SetRotation(NewQuat(0, 0, 0, 3))
	if !tr.Rotation().IsUnit() {
		t.Errorf("Rotation().Len() = %v, want 1", tr.Rotation().Len())
	}
}

func TestTransformApply(t *testing.T) {
	tr := NewTransformAt(V3(10, 0, 0))
	tr.SetScale(V3(2, 1, 1))
	tr.SetRotation(QuatAxisAngle(UnitZ, math.Pi/2))

	got := tr.Apply(UnitX)
	want := V3(10, 2, 0)
	if !got.ApproxEqual(want) {
		t.Errorf("Apply(+X) = %v, want %v", got, want)
	}
}

func TestOpsString(t *testing.T) {
	tests := []struct {
		ops  Ops
		want string
	}{
		{0, "none"},
		{OpLocation, "location"},
		{OpScale | OpRotation, "scale|rotation"},
		{OpAll, "location|scale|rotation"},
	}
	for _, tt := range tests {
		if got := tt.ops.String(); got != tt.want {
			t.Errorf("Ops(%d).String() = %q, want %q", tt.ops, got, tt.want)
		}
	}
}
