package geo

import "testing"

func TestSnapIndexMergesNearbyPoints(t *testing.T) {
	ix := NewSnapIndex(0.5)

	a := ix.Add(Pt(10, 10))
	b := ix.Add(Pt(10.2, 10.1))
	c := ix.Add(Pt(20, 20))

	if a != b {
		t.Errorf("points within tolerance got distinct ids %d and %d", a, b)
	}
	if a == c {
		t.Error("distant points merged")
	}
	if ix.Len() != 2 {
		t.Errorf("Len: got %d, want 2", ix.Len())
	}

	// The node keeps the first inserted position.
	if ix.At(a) != Pt(10, 10) {
		t.Errorf("At: got %v", ix.At(a))
	}
}

func TestSnapIndexCellBorder(t *testing.T) {
	// Points on opposite sides of a grid cell border still merge.
	ix := NewSnapIndex(1.0)
	a := ix.Add(Pt(0.95, 0))
	b := ix.Add(Pt(1.05, 0))
	if a != b {
		t.Errorf("border points got distinct ids %d and %d", a, b)
	}
}

func TestSnapIndexInsertionOrderIds(t *testing.T) {
	ix := NewSnapIndex(0.1)
	for i := 0; i < 5; i++ {
		id := ix.Add(Pt(float64(i*10), 0))
		if id != i {
			t.Fatalf("id for point %d: got %d", i, id)
		}
	}
	if got := len(ix.Points()); got != 5 {
		t.Errorf("Points: got %d entries", got)
	}
}

func TestSnapIndexZeroTolerance(t *testing.T) {
	ix := NewSnapIndex(0)
	a := ix.Add(Pt(1, 1))
	b := ix.Add(Pt(1, 1))
	c := ix.Add(Pt(1.001, 1))
	if a != b {
		t.Error("exact duplicates not merged")
	}
	if a == c {
		t.Error("distinct points merged at zero tolerance")
	}
}
