package tensor

import "fmt"

// Reshape returns a tensor with the given shape sharing the receiver's
// data. One dimension may be -1 and is inferred from the element count.
func (d *Dense) Reshape(newShape ...int) (*Dense, error) {
	totalElements := d.NumElements()
	inferIdx := -1
	product := 1
	for i, dim := range newShape {
		switch {
		case dim == -1:
			if inferIdx >= 0 {
				return nil, fmt.Errorf("Reshape: can only have one -1 dimension")
			}
			inferIdx = i
		case dim <= 0:
			return nil, fmt.Errorf("Reshape: dimensions must be positive, got %d", dim)
		default:
			product *= dim
		}
	}

	actual := make(Shape, len(newShape))
	copy(actual, newShape)
	if inferIdx >= 0 {
		if product == 0 || totalElements%product != 0 {
			return nil, fmt.Errorf("Reshape: cannot infer dimension for shape %v from %d elements",
				Shape(newShape), totalElements)
		}
		actual[inferIdx] = totalElements / product
	}

	if actual.NumElements() != totalElements {
		return nil, fmt.Errorf("Reshape: cannot reshape %d elements to shape %v (%d elements)",
			totalElements, actual, actual.NumElements())
	}

	return &Dense{
		data:   d.data,
		shape:  actual,
		stride: actual.ComputeStrides(),
	}, nil
}

// Transpose returns a copy with dimensions permuted according to axes.
// With no axes the dimension order is reversed.
func (d *Dense) Transpose(axes ...int) (*Dense, error) {
	ndim := len(d.shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		return nil, fmt.Errorf("Transpose: axes length %d must match tensor dimensions %d", len(axes), ndim)
	}

	newShape := make(Shape, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim {
			return nil, fmt.Errorf("Transpose: axis %d out of range [0, %d)", ax, ndim)
		}
		newShape[i] = d.shape[ax]
	}

	result := Zeros(newShape)
	newStrides := newShape.ComputeStrides()

	idx := make([]int, ndim)
	for i := 0; i < result.NumElements(); i++ {
		tmp := i
		for j := ndim - 1; j >= 0; j-- {
			idx[j] = tmp % newShape[j]
			tmp /= newShape[j]
		}

		oldFlat := 0
		newFlat := 0
		for j := 0; j < ndim; j++ {
			oldFlat += idx[j] * d.stride[axes[j]]
			newFlat += idx[j] * newStrides[j]
		}
		result.data[newFlat] = d.data[oldFlat]
	}
	return result, nil
}

// Cat concatenates tensors along the given axis.
// All tensors must agree on every dimension except the concatenation axis.
func Cat(tensors []*Dense, axis int) (*Dense, error) {
	if len(tensors) == 0 {
		return nil, fmt.Errorf("Cat: at least one tensor required")
	}
	if len(tensors) == 1 {
		return tensors[0].Clone(), nil
	}

	first := tensors[0]
	ndim := len(first.shape)
	if axis < 0 {
		axis = ndim + axis
	}
	if axis < 0 || axis >= ndim {
		return nil, fmt.Errorf("Cat: axis %d out of range for %d dimensions", axis, ndim)
	}

	outShape := first.shape.Clone()
	for i, t := range tensors[1:] {
		if len(t.shape) != ndim {
			return nil, fmt.Errorf("Cat: tensor %d has rank %d, want %d", i+1, len(t.shape), ndim)
		}
		for dim := range t.shape {
			if dim != axis && t.shape[dim] != first.shape[dim] {
				return nil, fmt.Errorf("Cat: tensor %d has shape %v, incompatible with %v along axis %d",
					i+1, t.shape, first.shape, axis)
			}
		}
		outShape[axis] += t.shape[axis]
	}

	result := Zeros(outShape)

	outerSize := 1
	for i := 0; i < axis; i++ {
		outerSize *= outShape[i]
	}
	innerSize := 1
	for i := axis + 1; i < ndim; i++ {
		innerSize *= outShape[i]
	}

	offset := 0
	for outer := 0; outer < outerSize; outer++ {
		for _, t := range tensors {
			copyLen := t.shape[axis] * innerSize
			inStart := outer * copyLen
			copy(result.data[offset:offset+copyLen], t.data[inStart:inStart+copyLen])
			offset += copyLen
		}
	}
	return result, nil
}

// Narrow returns a copy of the sub-tensor covering [start, start+length)
// along the given axis.
func (d *Dense) Narrow(axis, start, length int) (*Dense, error) {
	ndim := len(d.shape)
	if axis < 0 {
		axis = ndim + axis
	}
	if axis < 0 || axis >= ndim {
		return nil, fmt.Errorf("Narrow: axis %d out of range for %d dimensions", axis, ndim)
	}
	if start < 0 || length <= 0 || start+length > d.shape[axis] {
		return nil, fmt.Errorf("Narrow: range [%d, %d) out of bounds for axis %d (size %d)",
			start, start+length, axis, d.shape[axis])
	}

	outShape := d.shape.Clone()
	outShape[axis] = length
	result := Zeros(outShape)

	outerSize := 1
	for i := 0; i < axis; i++ {
		outerSize *= d.shape[i]
	}
	innerSize := 1
	for i := axis + 1; i < ndim; i++ {
		innerSize *= d.shape[i]
	}

	copyLen := length * innerSize
	srcStride := d.shape[axis] * innerSize
	for outer := 0; outer < outerSize; outer++ {
		srcStart := outer*srcStride + start*innerSize
		copy(result.data[outer*copyLen:(outer+1)*copyLen], d.data[srcStart:srcStart+copyLen])
	}
	return result, nil
}

// SliceAt selects a single index along the given axis, returning a copy
// with that axis removed (numpy's x[..., i] for axis = last).
func (d *Dense) SliceAt(axis, index int) (*Dense, error) {
	ndim := len(d.shape)
	if axis < 0 {
		axis = ndim + axis
	}
	if axis < 0 || axis >= ndim {
		return nil, fmt.Errorf("SliceAt: axis %d out of range for %d dimensions", axis, ndim)
	}
	if index < 0 || index >= d.shape[axis] {
		return nil, fmt.Errorf("SliceAt: index %d out of bounds for axis %d (size %d)",
			index, axis, d.shape[axis])
	}

	narrowed, err := d.Narrow(axis, index, 1)
	if err != nil {
		return nil, err
	}
	outShape := make(Shape, 0, ndim-1)
	outShape = append(outShape, d.shape[:axis]...)
	outShape = append(outShape, d.shape[axis+1:]...)
	return &Dense{
		data:   narrowed.data,
		shape:  outShape,
		stride: outShape.ComputeStrides(),
	}, nil
}

// SetSliceAt writes src into the receiver at the given index along axis.
// src's shape must equal the receiver's shape with that axis removed
// (the inverse of SliceAt).
func (d *Dense) SetSliceAt(axis, index int, src *Dense) error {
	ndim := len(d.shape)
	if axis < 0 {
		axis = ndim + axis
	}
	if axis < 0 || axis >= ndim {
		return fmt.Errorf("SetSliceAt: axis %d out of range for %d dimensions", axis, ndim)
	}
	if index < 0 || index >= d.shape[axis] {
		return fmt.Errorf("SetSliceAt: index %d out of bounds for axis %d (size %d)",
			index, axis, d.shape[axis])
	}

	want := make(Shape, 0, ndim-1)
	want = append(want, d.shape[:axis]...)
	want = append(want, d.shape[axis+1:]...)
	if !src.shape.Equal(want) {
		return fmt.Errorf("SetSliceAt: source shape %v does not match destination slice shape %v",
			src.shape, want)
	}

	outerSize := 1
	for i := 0; i < axis; i++ {
		outerSize *= d.shape[i]
	}
	innerSize := 1
	for i := axis + 1; i < ndim; i++ {
		innerSize *= d.shape[i]
	}

	dstStride := d.shape[axis] * innerSize
	for outer := 0; outer < outerSize; outer++ {
		dstStart := outer*dstStride + index*innerSize
		copy(d.data[dstStart:dstStart+innerSize], src.data[outer*innerSize:(outer+1)*innerSize])
	}
	return nil
}
