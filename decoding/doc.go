// Copyright 2025 The Searchlight Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package decoding fits and applies an ensemble of independent models
// across the slices of a three-dimensional dataset.
//
// The input is a dense tensor of shape (samples × features × slices),
// where a slice is one index along the third axis: a time point, a
// frequency bin, or any other dimension along which models should not
// share parameters. Fit clones a prototype estimator once per slice and
// trains each clone on its slice alone.
//
// Two application modes are provided:
//
//   - SearchLight applies estimator i only to test slice i, producing a
//     (samples × slices [× ...]) tensor.
//   - Generalization applies every estimator to every test slice,
//     producing a (samples × estimators × slices [× ...]) tensor that
//     shows how well a model trained at one slice transfers to all
//     others.
//
// The trailing dimensions of every output depend on what the underlying
// model returns (a scalar per sample, class probabilities, ...), so
// outputs are allocated lazily from the first computed result and every
// later result must match its shape.
//
// Fitting parallelizes across slices; applying and scoring parallelize
// across the test data so the worker count does not multiply the memory
// held by the fitted ensemble. A worker count of 1 runs everything
// sequentially on the calling goroutine with identical results.
package decoding
