// Copyright 2025 The Searchlight Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense numeric arrays
// used throughout Searchlight.
//
// The package re-exports the internal tensor implementation:
//   - Dense: dense, row-major float64 tensor of arbitrary rank
//   - Shape: tensor dimensions with stride computation
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{20, 5, 3})
//	y, err := tensor.FromSlice(data, tensor.Shape{20, 5, 3})
package tensor

import (
	"github.com/searchlight-ml/searchlight/internal/tensor"
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Dense is a dense, row-major float64 tensor.
type Dense = tensor.Dense

// Zeros creates a tensor of the given shape filled with zeros.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3})
func Zeros(shape Shape) *Dense {
	return tensor.Zeros(shape)
}

// Scalar creates a rank-0 tensor holding a single value.
func Scalar(v float64) *Dense {
	return tensor.Scalar(v)
}

// FromSlice creates a tensor from a Go slice.
//
// Example:
//
//	data := []float64{1, 2, 3, 4, 5, 6}
//	x, err := tensor.FromSlice(data, tensor.Shape{2, 3})
func FromSlice(data []float64, shape Shape) (*Dense, error) {
	return tensor.FromSlice(data, shape)
}

// Cat concatenates tensors along an axis.
//
// Example:
//
//	a := tensor.Zeros(tensor.Shape{2, 3})
//	b := tensor.Zeros(tensor.Shape{2, 5})
//	c, err := tensor.Cat([]*tensor.Dense{a, b}, 1) // Shape: [2, 8]
func Cat(tensors []*Dense, axis int) (*Dense, error) {
	return tensor.Cat(tensors, axis)
}
