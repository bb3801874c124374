package decoding

import (
	"fmt"

	"github.com/searchlight-ml/searchlight/estimator"
	"github.com/searchlight-ml/searchlight/internal/parallel"
	"github.com/searchlight-ml/searchlight/tensor"
)

// Generalization fits a search-light ensemble and applies every fitted
// estimator to every slice of the test data, producing a generalization
// matrix instead of a diagonal.
//
// Fitting is inherited from SearchLight unchanged; only the apply and
// score paths differ. The test tensor may have a slice count different
// from the training tensor.
type Generalization struct {
	SearchLight
}

// NewGeneralization creates a Generalization around a prototype
// estimator. nJobs follows the same convention as New.
func NewGeneralization(base estimator.Estimator, nJobs int) (*Generalization, error) {
	s, err := New(base, nJobs)
	if err != nil {
		return nil, err
	}
	return &Generalization{SearchLight: *s}, nil
}

// Transform applies every estimator's transform to every slice of x.
// A base estimator without a transform capability falls back to predict.
// Returns a (samples × estimators × slices [× ...]) tensor.
func (g *Generalization) Transform(x *tensor.Dense) (*tensor.Dense, error) {
	return g.apply(x, estimator.MethodTransform)
}

// Predict applies every estimator's predict to every slice of x.
// Returns a (samples × estimators × slices [× ...]) tensor.
func (g *Generalization) Predict(x *tensor.Dense) (*tensor.Dense, error) {
	return g.apply(x, estimator.MethodPredict)
}

// PredictProba applies every estimator's predict_proba to every slice
// of x. Returns a (samples × estimators × slices × classes) tensor.
func (g *Generalization) PredictProba(x *tensor.Dense) (*tensor.Dense, error) {
	return g.apply(x, estimator.MethodPredictProba)
}

// DecisionFunction applies every estimator's decision_function to every
// slice of x. Returns a (samples × estimators × slices [× ...]) tensor.
func (g *Generalization) DecisionFunction(x *tensor.Dense) (*tensor.Dense, error) {
	return g.apply(x, estimator.MethodDecisionFunction)
}

// FitTransform fits the ensemble on (x, y) and transforms x with it in
// generalization mode.
func (g *Generalization) FitTransform(x *tensor.Dense, y []float64) (*tensor.Dense, error) {
	if err := g.Fit(x, y); err != nil {
		return nil, err
	}
	return g.Transform(x)
}

// apply runs one of the per-sample estimator capabilities in
// generalization mode. Work is partitioned across the test slice axis;
// every worker sees the full (read-only) ensemble but a disjoint band of
// test slices.
func (g *Generalization) apply(x *tensor.Dense, m estimator.Method) (*tensor.Dense, error) {
	if err := checkX(x); err != nil {
		return nil, err
	}
	if len(g.estimators) == 0 {
		return nil, fmt.Errorf("decoding: %w", estimator.ErrNotFitted)
	}
	effective, ok := estimator.Effective(g.base, m)
	if !ok {
		return nil, fmt.Errorf("%w: base estimator does not support %s", ErrCapability, m)
	}

	nSlices := x.Shape()[2]
	workers := parallel.ResolveWorkers(g.nJobs, nSlices)
	bounds := parallel.SplitIndices(nSlices, workers)

	jobs := make([]parallel.Job[*tensor.Dense], len(bounds))
	for c, b := range bounds {
		start, end := b[0], b[1]
		jobs[c] = func() (*tensor.Dense, error) {
			chunk, err := x.Narrow(2, start, end-start)
			if err != nil {
				return nil, err
			}
			return crossSliceApply(g.estimators, chunk, effective)
		}
	}

	chunks, err := parallel.Run(jobs, workers)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 1 {
		return chunks[0], nil
	}
	return tensor.Cat(chunks, 2)
}

// Score scores every estimator on every slice of x against y. Returns
// an (estimators × slices [× ...]) tensor.
//
// Unlike apply there is no stacked shortcut here: scoring reduces over
// samples, so merging the sample and slice axes would destroy the
// per-sample identity a score needs. The cost is one estimator call per
// (estimator, slice) pair, which grows quadratically with the slice
// count.
func (g *Generalization) Score(x *tensor.Dense, y []float64) (*tensor.Dense, error) {
	if err := checkXY(x, y); err != nil {
		return nil, err
	}
	if len(g.estimators) == 0 {
		return nil, fmt.Errorf("decoding: %w", estimator.ErrNotFitted)
	}
	if !estimator.Supports(g.base, estimator.MethodScore) {
		return nil, fmt.Errorf("%w: base estimator does not support score", ErrCapability)
	}

	nSlices := x.Shape()[2]
	workers := parallel.ResolveWorkers(g.nJobs, nSlices)
	bounds := parallel.SplitIndices(nSlices, workers)

	jobs := make([]parallel.Job[*tensor.Dense], len(bounds))
	for c, b := range bounds {
		start, end := b[0], b[1]
		jobs[c] = func() (*tensor.Dense, error) {
			chunk, err := x.Narrow(2, start, end-start)
			if err != nil {
				return nil, err
			}
			return crossSliceScore(g.estimators, chunk, y)
		}
	}

	chunks, err := parallel.Run(jobs, workers)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 1 {
		return chunks[0], nil
	}
	return tensor.Cat(chunks, 1)
}

// crossSliceApply applies every estimator to every slice of x in one
// estimator call each: the sample and slice axes are merged into a
// single pseudo-sample axis of length samples·slices, the estimator is
// invoked once over it, and the flat result is unfolded back to
// (samples, slices, trailing...). Estimators are stateless and
// row-independent during inference, so this equals the per-slice loop
// exactly while paying the call overhead once per estimator.
func crossSliceApply(ests []estimator.Estimator, x *tensor.Dense, m estimator.Method) (*tensor.Dense, error) {
	nSamples, nFeatures, nSlices := x.Shape()[0], x.Shape()[1], x.Shape()[2]

	stacked, err := x.Transpose(1, 0, 2)
	if err != nil {
		return nil, err
	}
	stacked, err = stacked.Reshape(nFeatures, nSamples*nSlices)
	if err != nil {
		return nil, err
	}
	stacked, err = stacked.Transpose()
	if err != nil {
		return nil, err
	}

	var out *tensor.Dense
	for i, est := range ests {
		apply, ok := estimator.Applier(est, m)
		if !ok {
			return nil, fmt.Errorf("%w: fitted estimator does not support %s", ErrCapability, m)
		}
		flat, err := apply(stacked)
		if err != nil {
			return nil, err
		}
		if flat.Rank() < 1 || flat.Shape()[0] != nSamples*nSlices {
			return nil, fmt.Errorf("%w: estimator returned shape %v for %d samples",
				ErrShape, flat.Shape(), nSamples*nSlices)
		}

		resShape := append([]int{nSamples, nSlices}, flat.Shape()[1:]...)
		res, err := flat.Reshape(resShape...)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			shape := tensor.Shape{nSamples, len(ests), nSlices}
			shape = append(shape, flat.Shape()[1:]...)
			out = tensor.Zeros(shape)
		}
		if err := out.SetSliceAt(1, i, res); err != nil {
			return nil, fmt.Errorf("%w: result shape changed between estimators: %v", ErrShape, err)
		}
	}
	return out, nil
}

// crossSliceScore scores every estimator on every slice of x with an
// explicit nested loop, assembling an (estimators, slices, trailing...)
// tensor laid out row-major so pair (i, j) lands at offset
// (i·slices + j)·scoreSize.
func crossSliceScore(ests []estimator.Estimator, x *tensor.Dense, y []float64) (*tensor.Dense, error) {
	nSlices := x.Shape()[2]

	var out *tensor.Dense
	var scoreShape tensor.Shape
	scoreSize := 0
	for i, est := range ests {
		scorer, ok := est.(estimator.Scorer)
		if !ok {
			return nil, fmt.Errorf("%w: fitted estimator does not support score", ErrCapability)
		}
		for j := 0; j < nSlices; j++ {
			xj, err := x.SliceAt(2, j)
			if err != nil {
				return nil, err
			}
			res, err := scorer.Score(xj, y)
			if err != nil {
				return nil, err
			}

			if out == nil {
				scoreShape = res.Shape().Clone()
				scoreSize = scoreShape.NumElements()
				shape := tensor.Shape{len(ests), nSlices}
				shape = append(shape, scoreShape...)
				out = tensor.Zeros(shape)
			}
			if !res.Shape().Equal(scoreShape) {
				return nil, fmt.Errorf("%w: score shape changed between pairs: got %v, want %v",
					ErrShape, res.Shape(), scoreShape)
			}
			offset := (i*nSlices + j) * scoreSize
			copy(out.Data()[offset:offset+scoreSize], res.Data())
		}
	}
	return out, nil
}
