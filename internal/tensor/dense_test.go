package tensor

import "testing"

func TestZeros(t *testing.T) {
	d := Zeros(Shape{2, 3})
	if !d.Shape().Equal(Shape{2, 3}) {
		t.Errorf("Expected shape [2 3], got %v", d.Shape())
	}
	if d.NumElements() != 6 {
		t.Errorf("Expected 6 elements, got %d", d.NumElements())
	}
	for i, v := range d.Data() {
		if v != 0 {
			t.Errorf("Element %d is %v, want 0", i, v)
		}
	}
}

func TestZeros_InvalidShapePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for non-positive dimension")
		}
	}()
	Zeros(Shape{2, 0})
}

func TestScalar(t *testing.T) {
	s := Scalar(3.5)
	if s.Rank() != 0 {
		t.Errorf("Expected rank 0, got %d", s.Rank())
	}
	if s.Item() != 3.5 {
		t.Errorf("Expected 3.5, got %v", s.Item())
	}
}

func TestFromSlice(t *testing.T) {
	d, err := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if d.At(1, 2) != 6 {
		t.Errorf("Expected 6 at [1 2], got %v", d.At(1, 2))
	}

	if _, err := FromSlice([]float64{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("Expected error for element count mismatch")
	}
}

func TestAtSet(t *testing.T) {
	d := Zeros(Shape{2, 3, 4})
	d.Set(7, 1, 2, 3)
	if d.At(1, 2, 3) != 7 {
		t.Errorf("Expected 7, got %v", d.At(1, 2, 3))
	}
	// Row-major: flat index = 1*12 + 2*4 + 3 = 23.
	if d.Data()[23] != 7 {
		t.Errorf("Expected flat index 23 to be 7, got %v", d.Data()[23])
	}
}

func TestRow(t *testing.T) {
	d, _ := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	row := d.Row(1)
	if len(row) != 3 || row[0] != 4 || row[2] != 6 {
		t.Errorf("Expected row [4 5 6], got %v", row)
	}
}

func TestClone_Independent(t *testing.T) {
	d, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	c := d.Clone()
	c.Set(99, 0, 0)
	if d.At(0, 0) != 1 {
		t.Errorf("Clone mutation leaked into original: got %v", d.At(0, 0))
	}
}

func TestReshape(t *testing.T) {
	d, _ := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})

	r, err := d.Reshape(3, 2)
	if err != nil {
		t.Fatalf("Reshape failed: %v", err)
	}
	if !r.Shape().Equal(Shape{3, 2}) {
		t.Errorf("Expected shape [3 2], got %v", r.Shape())
	}
	if r.At(2, 1) != 6 {
		t.Errorf("Expected 6 at [2 1], got %v", r.At(2, 1))
	}

	// -1 inference.
	r, err = d.Reshape(-1, 2)
	if err != nil {
		t.Fatalf("Reshape with -1 failed: %v", err)
	}
	if !r.Shape().Equal(Shape{3, 2}) {
		t.Errorf("Expected inferred shape [3 2], got %v", r.Shape())
	}

	if _, err := d.Reshape(4, 2); err == nil {
		t.Error("Expected error for incompatible element count")
	}
	if _, err := d.Reshape(-1, -1); err == nil {
		t.Error("Expected error for two -1 dimensions")
	}
}

func TestTranspose2D(t *testing.T) {
	d, _ := FromSlice([]float64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	tr, err := d.Transpose()
	if err != nil {
		t.Fatalf("Transpose failed: %v", err)
	}
	if !tr.Shape().Equal(Shape{3, 2}) {
		t.Errorf("Expected shape [3 2], got %v", tr.Shape())
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if tr.At(j, i) != d.At(i, j) {
				t.Errorf("Mismatch at [%d %d]", j, i)
			}
		}
	}
}

func TestTranspose3DPermutation(t *testing.T) {
	d := Zeros(Shape{2, 3, 4})
	for i := range d.Data() {
		d.Data()[i] = float64(i)
	}
	tr, err := d.Transpose(1, 0, 2)
	if err != nil {
		t.Fatalf("Transpose failed: %v", err)
	}
	if !tr.Shape().Equal(Shape{3, 2, 4}) {
		t.Errorf("Expected shape [3 2 4], got %v", tr.Shape())
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 4; k++ {
				if tr.At(j, i, k) != d.At(i, j, k) {
					t.Errorf("Mismatch at [%d %d %d]", j, i, k)
				}
			}
		}
	}
}

func TestCat(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2, 3, 4}, Shape{2, 2})
	b, _ := FromSlice([]float64{5, 6, 7, 8, 9, 10}, Shape{2, 3})

	c, err := Cat([]*Dense{a, b}, 1)
	if err != nil {
		t.Fatalf("Cat failed: %v", err)
	}
	if !c.Shape().Equal(Shape{2, 5}) {
		t.Errorf("Expected shape [2 5], got %v", c.Shape())
	}
	want := []float64{1, 2, 5, 6, 7, 3, 4, 8, 9, 10}
	for i, v := range c.Data() {
		if v != want[i] {
			t.Errorf("Element %d is %v, want %v", i, v, want[i])
		}
	}
}

func TestCat_NegativeAxis(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2}, Shape{1, 2})
	b, _ := FromSlice([]float64{3, 4}, Shape{1, 2})
	c, err := Cat([]*Dense{a, b}, -1)
	if err != nil {
		t.Fatalf("Cat failed: %v", err)
	}
	if !c.Shape().Equal(Shape{1, 4}) {
		t.Errorf("Expected shape [1 4], got %v", c.Shape())
	}
}

func TestCat_SingleTensorClones(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2}, Shape{2})
	c, err := Cat([]*Dense{a}, 0)
	if err != nil {
		t.Fatalf("Cat failed: %v", err)
	}
	c.Set(9, 0)
	if a.At(0) != 1 {
		t.Error("Cat of single tensor must not alias the input")
	}
}

func TestCat_IncompatibleShapes(t *testing.T) {
	a := Zeros(Shape{2, 2})
	b := Zeros(Shape{3, 2})
	if _, err := Cat([]*Dense{a, b}, 1); err == nil {
		t.Error("Expected error for incompatible shapes")
	}
}

func TestNarrow(t *testing.T) {
	d := Zeros(Shape{2, 5})
	for i := range d.Data() {
		d.Data()[i] = float64(i)
	}
	n, err := d.Narrow(1, 1, 3)
	if err != nil {
		t.Fatalf("Narrow failed: %v", err)
	}
	if !n.Shape().Equal(Shape{2, 3}) {
		t.Errorf("Expected shape [2 3], got %v", n.Shape())
	}
	want := []float64{1, 2, 3, 6, 7, 8}
	for i, v := range n.Data() {
		if v != want[i] {
			t.Errorf("Element %d is %v, want %v", i, v, want[i])
		}
	}

	if _, err := d.Narrow(1, 3, 4); err == nil {
		t.Error("Expected error for out-of-bounds range")
	}
}

func TestSliceAt(t *testing.T) {
	d := Zeros(Shape{2, 3, 4})
	for i := range d.Data() {
		d.Data()[i] = float64(i)
	}
	s, err := d.SliceAt(2, 1)
	if err != nil {
		t.Fatalf("SliceAt failed: %v", err)
	}
	if !s.Shape().Equal(Shape{2, 3}) {
		t.Errorf("Expected shape [2 3], got %v", s.Shape())
	}
	for i := 0; i < 2; i++ {
		for j := 0; j < 3; j++ {
			if s.At(i, j) != d.At(i, j, 1) {
				t.Errorf("Mismatch at [%d %d]", i, j)
			}
		}
	}

	// Negative axis selects from the end.
	s2, err := d.SliceAt(-1, 1)
	if err != nil {
		t.Fatalf("SliceAt with negative axis failed: %v", err)
	}
	if !s2.Shape().Equal(Shape{2, 3}) {
		t.Errorf("Expected shape [2 3], got %v", s2.Shape())
	}
}

func TestSetSliceAt_RoundTrip(t *testing.T) {
	d := Zeros(Shape{2, 3, 4})
	src := Zeros(Shape{2, 4})
	for i := range src.Data() {
		src.Data()[i] = float64(i + 1)
	}

	if err := d.SetSliceAt(1, 2, src); err != nil {
		t.Fatalf("SetSliceAt failed: %v", err)
	}
	got, err := d.SliceAt(1, 2)
	if err != nil {
		t.Fatalf("SliceAt failed: %v", err)
	}
	for i, v := range got.Data() {
		if v != src.Data()[i] {
			t.Errorf("Element %d is %v, want %v", i, v, src.Data()[i])
		}
	}
	// Other slices untouched.
	other, _ := d.SliceAt(1, 0)
	for i, v := range other.Data() {
		if v != 0 {
			t.Errorf("Slice 0 element %d is %v, want 0", i, v)
		}
	}
}

func TestSetSliceAt_ShapeMismatch(t *testing.T) {
	d := Zeros(Shape{2, 3, 4})
	src := Zeros(Shape{2, 3})
	if err := d.SetSliceAt(1, 0, src); err == nil {
		t.Error("Expected error for shape mismatch")
	}
}

func TestSetSliceAt_Scalar(t *testing.T) {
	d := Zeros(Shape{3})
	if err := d.SetSliceAt(0, 1, Scalar(5)); err != nil {
		t.Fatalf("SetSliceAt failed: %v", err)
	}
	if d.At(1) != 5 {
		t.Errorf("Expected 5 at index 1, got %v", d.At(1))
	}
}
