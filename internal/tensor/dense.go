// Package tensor provides the dense numeric array type the Searchlight
// engine orchestrates over.
//
// Dense is a row-major, contiguous float64 tensor of arbitrary rank.
// The engine only ever needs a handful of whole-tensor operations
// (reshape, transpose, concatenate, narrow/select along an axis), so
// that is all this package implements; there is no broadcasting, no
// element-wise arithmetic and no device abstraction.
package tensor

import "fmt"

// Dense is a dense, row-major float64 tensor.
//
// A Dense of rank 0 is a scalar holding exactly one element; Item
// retrieves its value. Creation functions panic on invalid shapes
// (programmer error); operations that depend on runtime data return
// errors.
type Dense struct {
	data   []float64
	shape  Shape
	stride []int
}

// Zeros creates a tensor of the given shape filled with zeros.
func Zeros(shape Shape) *Dense {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor: invalid shape: %v", err))
	}
	return &Dense{
		data:   make([]float64, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
	}
}

// Scalar creates a rank-0 tensor holding a single value.
func Scalar(v float64) *Dense {
	return &Dense{
		data:   []float64{v},
		shape:  Shape{},
		stride: []int{},
	}
}

// FromSlice creates a tensor from a Go slice.
// The slice is copied into the tensor's memory.
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("FromSlice: invalid shape: %w", err)
	}
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("FromSlice: shape %v requires %d elements, but got %d",
			shape, shape.NumElements(), len(data))
	}
	t := Zeros(shape)
	copy(t.data, data)
	return t, nil
}

// Shape returns the tensor's shape.
func (d *Dense) Shape() Shape {
	return d.shape
}

// Rank returns the number of dimensions.
func (d *Dense) Rank() int {
	return len(d.shape)
}

// NumElements returns the total number of elements.
func (d *Dense) NumElements() int {
	return d.shape.NumElements()
}

// Data returns the underlying flat slice.
// WARNING: Modifications to the returned slice will modify the tensor.
func (d *Dense) Data() []float64 {
	return d.data
}

// Clone creates a deep copy of the tensor.
func (d *Dense) Clone() *Dense {
	c := Zeros(d.shape)
	copy(c.data, d.data)
	return c
}

// Item returns the scalar value of a single-element tensor.
// Panics if the tensor holds more than one element.
func (d *Dense) Item() float64 {
	if d.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", d.shape))
	}
	return d.data[0]
}

// At returns the element at the given indices.
// Panics if indices are out of bounds.
func (d *Dense) At(indices ...int) float64 {
	return d.data[d.flatIndex(indices)]
}

// Set sets the element at the given indices.
// Panics if indices are out of bounds.
func (d *Dense) Set(v float64, indices ...int) {
	d.data[d.flatIndex(indices)] = v
}

func (d *Dense) flatIndex(indices []int) int {
	if len(indices) != len(d.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(d.shape), len(indices)))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= d.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, d.shape[i]))
		}
		offset += idx * d.stride[i]
	}
	return offset
}

// Row returns the i-th row of a rank-2 tensor as a slice view.
// WARNING: the returned slice aliases the tensor's memory.
func (d *Dense) Row(i int) []float64 {
	if len(d.shape) != 2 {
		panic(fmt.Sprintf("Row() only works for rank-2 tensors, got shape %v", d.shape))
	}
	if i < 0 || i >= d.shape[0] {
		panic(fmt.Sprintf("row %d out of bounds for %d rows", i, d.shape[0]))
	}
	cols := d.shape[1]
	return d.data[i*cols : (i+1)*cols]
}

// String returns a human-readable representation of the tensor.
func (d *Dense) String() string {
	return fmt.Sprintf("Dense%v (%d elements)", d.shape, d.NumElements())
}
