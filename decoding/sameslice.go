package decoding

import (
	"fmt"

	"github.com/searchlight-ml/searchlight/estimator"
	"github.com/searchlight-ml/searchlight/tensor"
)

// sameSliceApply applies estimator i to slice i of x for a chunk of the
// ensemble. The output tensor is allocated from the first estimator's
// result: shape (samples, slices, trailing...) where trailing is
// whatever the estimator returns beyond the sample axis. Every later
// result must match, or the call fails.
func sameSliceApply(ests []estimator.Estimator, x *tensor.Dense, m estimator.Method) (*tensor.Dense, error) {
	nSamples := x.Shape()[0]

	var out *tensor.Dense
	for i, est := range ests {
		apply, ok := estimator.Applier(est, m)
		if !ok {
			return nil, fmt.Errorf("%w: fitted estimator does not support %s", ErrCapability, m)
		}
		xi, err := x.SliceAt(2, i)
		if err != nil {
			return nil, err
		}
		res, err := apply(xi)
		if err != nil {
			return nil, err
		}
		if res.Rank() < 1 || res.Shape()[0] != nSamples {
			return nil, fmt.Errorf("%w: estimator returned shape %v for %d samples",
				ErrShape, res.Shape(), nSamples)
		}

		if i == 0 {
			shape := tensor.Shape{nSamples, len(ests)}
			shape = append(shape, res.Shape()[1:]...)
			out = tensor.Zeros(shape)
		}
		if err := out.SetSliceAt(1, i, res); err != nil {
			return nil, fmt.Errorf("%w: result shape changed between slices: %v", ErrShape, err)
		}
	}
	return out, nil
}

// sameSliceScore scores estimator i on slice i of x for a chunk of the
// ensemble, assembling a (slices, trailing...) tensor where trailing is
// the shape of a single score (usually empty: one scalar per pair).
func sameSliceScore(ests []estimator.Estimator, x *tensor.Dense, y []float64) (*tensor.Dense, error) {
	var out *tensor.Dense
	for i, est := range ests {
		scorer, ok := est.(estimator.Scorer)
		if !ok {
			return nil, fmt.Errorf("%w: fitted estimator does not support score", ErrCapability)
		}
		xi, err := x.SliceAt(2, i)
		if err != nil {
			return nil, err
		}
		res, err := scorer.Score(xi, y)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			shape := tensor.Shape{len(ests)}
			shape = append(shape, res.Shape()...)
			out = tensor.Zeros(shape)
		}
		if err := out.SetSliceAt(0, i, res); err != nil {
			return nil, fmt.Errorf("%w: score shape changed between slices: %v", ErrShape, err)
		}
	}
	return out, nil
}
