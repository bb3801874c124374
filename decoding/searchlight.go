package decoding

import (
	"fmt"

	"github.com/searchlight-ml/searchlight/estimator"
	"github.com/searchlight-ml/searchlight/internal/parallel"
	"github.com/searchlight-ml/searchlight/tensor"
)

// SearchLight fits one independent estimator per data slice and applies
// each estimator only to its own slice.
//
// A SearchLight is created unfitted; Fit trains the ensemble and every
// apply or score call reuses it until the next Fit, which replaces the
// ensemble wholesale. The zero value is not usable; use New.
type SearchLight struct {
	base  estimator.Estimator
	nJobs int

	estimators []estimator.Estimator
}

// New creates a SearchLight around a prototype estimator.
//
// nJobs is the worker count for both fitting and applying: 1 runs
// sequentially, larger values bound the number of concurrent workers,
// and negative values use all available CPUs. Zero is rejected.
func New(base estimator.Estimator, nJobs int) (*SearchLight, error) {
	if base == nil {
		return nil, fmt.Errorf("%w: base estimator must not be nil", ErrConfig)
	}
	if nJobs == 0 {
		return nil, fmt.Errorf("%w: nJobs must not be 0", ErrConfig)
	}
	return &SearchLight{base: base, nJobs: nJobs}, nil
}

// Estimators returns the fitted per-slice estimators in slice order.
// The returned slice is owned by the SearchLight; treat it as read-only.
func (s *SearchLight) Estimators() []estimator.Estimator {
	return s.estimators
}

// Fit trains one clone of the base estimator per slice of x, clone i on
// x[:, :, i] and the shared target vector y. Slices are partitioned into
// contiguous chunks fitted concurrently; any single failing fit aborts
// the whole call and leaves the previous ensemble untouched.
func (s *SearchLight) Fit(x *tensor.Dense, y []float64) error {
	if err := checkXY(x, y); err != nil {
		return err
	}

	nSlices := x.Shape()[2]
	workers := parallel.ResolveWorkers(s.nJobs, nSlices)
	bounds := parallel.SplitIndices(nSlices, workers)

	jobs := make([]parallel.Job[[]estimator.Estimator], len(bounds))
	for c, b := range bounds {
		start, end := b[0], b[1]
		jobs[c] = func() ([]estimator.Estimator, error) {
			fitted := make([]estimator.Estimator, 0, end-start)
			for i := start; i < end; i++ {
				xi, err := x.SliceAt(2, i)
				if err != nil {
					return nil, err
				}
				est := s.base.Clone()
				if err := est.Fit(xi, y); err != nil {
					return nil, fmt.Errorf("fit slice %d: %w", i, err)
				}
				fitted = append(fitted, est)
			}
			return fitted, nil
		}
	}

	chunks, err := parallel.Run(jobs, workers)
	if err != nil {
		return err
	}

	estimators := make([]estimator.Estimator, 0, nSlices)
	for _, chunk := range chunks {
		estimators = append(estimators, chunk...)
	}
	s.estimators = estimators
	return nil
}

// FitTransform fits the ensemble on (x, y) and transforms x with it.
func (s *SearchLight) FitTransform(x *tensor.Dense, y []float64) (*tensor.Dense, error) {
	if err := s.Fit(x, y); err != nil {
		return nil, err
	}
	return s.Transform(x)
}

// Transform applies estimator i's transform to slice i of x. A base
// estimator without a transform capability falls back to predict.
// Returns a (samples × slices [× ...]) tensor.
func (s *SearchLight) Transform(x *tensor.Dense) (*tensor.Dense, error) {
	return s.apply(x, estimator.MethodTransform)
}

// Predict applies estimator i's predict to slice i of x.
// Returns a (samples × slices [× ...]) tensor.
func (s *SearchLight) Predict(x *tensor.Dense) (*tensor.Dense, error) {
	return s.apply(x, estimator.MethodPredict)
}

// PredictProba applies estimator i's predict_proba to slice i of x.
// Returns a (samples × slices × classes) tensor.
func (s *SearchLight) PredictProba(x *tensor.Dense) (*tensor.Dense, error) {
	return s.apply(x, estimator.MethodPredictProba)
}

// DecisionFunction applies estimator i's decision_function to slice i
// of x. Returns a (samples × slices [× ...]) tensor.
func (s *SearchLight) DecisionFunction(x *tensor.Dense) (*tensor.Dense, error) {
	return s.apply(x, estimator.MethodDecisionFunction)
}

// apply runs one of the per-sample estimator capabilities in search-light
// mode: estimator i sees only slice i. Work is partitioned across the
// slice axis together with the matching estimator sub-sequence, so each
// worker owns a disjoint piece of both.
func (s *SearchLight) apply(x *tensor.Dense, m estimator.Method) (*tensor.Dense, error) {
	if err := checkX(x); err != nil {
		return nil, err
	}
	if len(s.estimators) == 0 {
		return nil, fmt.Errorf("decoding: %w", estimator.ErrNotFitted)
	}
	effective, ok := estimator.Effective(s.base, m)
	if !ok {
		return nil, fmt.Errorf("%w: base estimator does not support %s", ErrCapability, m)
	}
	if got := x.Shape()[2]; got != len(s.estimators) {
		return nil, fmt.Errorf("%w: %d slices in input but %d fitted estimators",
			ErrShape, got, len(s.estimators))
	}

	nSlices := x.Shape()[2]
	workers := parallel.ResolveWorkers(s.nJobs, nSlices)
	bounds := parallel.SplitIndices(nSlices, workers)

	jobs := make([]parallel.Job[*tensor.Dense], len(bounds))
	for c, b := range bounds {
		start, end := b[0], b[1]
		jobs[c] = func() (*tensor.Dense, error) {
			chunk, err := x.Narrow(2, start, end-start)
			if err != nil {
				return nil, err
			}
			return sameSliceApply(s.estimators[start:end], chunk, effective)
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

// Score scores estimator i on slice i of x against y. Returns a
// (slices [× ...]) tensor, one score per estimator/slice pair.
func (s *SearchLight) Score(x *tensor.Dense, y []float64) (*tensor.Dense, error) {
	if err := checkXY(x, y); err != nil {
		return nil, err
	}
	if len(s.estimators) == 0 {
		return nil, fmt.Errorf("decoding: %w", estimator.ErrNotFitted)
	}
	if !estimator.Supports(s.base, estimator.MethodScore) {
		return nil, fmt.Errorf("%w: base estimator does not support score", ErrCapability)
	}
	if got := x.Shape()[2]; got != len(s.estimators) {
		return nil, fmt.Errorf("%w: %d slices in input but %d fitted estimators",
			ErrShape, got, len(s.estimators))
	}

	nSlices := x.Shape()[2]
	workers := parallel.ResolveWorkers(s.nJobs, nSlices)
	bounds := parallel.SplitIndices(nSlices, workers)

	jobs := make([]parallel.Job[*tensor.Dense], len(bounds))
	for c, b := range bounds {
		start, end := b[0], b[1]
		jobs[c] = func() (*tensor.Dense, error) {
			chunk, err := x.Narrow(2, start, end-start)
			if err != nil {
				return nil, err
			}
			return sameSliceScore(s.estimators[start:end], chunk, y)
		}
	}

	chunks, err := parallel.Run(jobs, workers)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 1 {
		return chunks[0], nil
	}
	return tensor.Cat(chunks, 0)
}

// checkX validates the rank of an input tensor.
func checkX(x *tensor.Dense) error {
	if x == nil {
		return fmt.Errorf("%w: input tensor is nil", ErrShape)
	}
	if x.Rank() != 3 {
		return fmt.Errorf("%w: input must have exactly 3 dimensions (samples × features × slices), got shape %v",
			ErrShape, x.Shape())
	}
	return nil
}

// checkXY validates an input tensor paired with a target vector.
func checkXY(x *tensor.Dense, y []float64) error {
	if err := checkX(x); err != nil {
		return err
	}
	if len(y) == 0 {
		return fmt.Errorf("%w: target vector is empty", ErrShape)
	}
	if len(y) != x.Shape()[0] {
		return fmt.Errorf("%w: input has %d samples but target vector has %d",
			ErrShape, x.Shape()[0], len(y))
	}
	return nil
}
