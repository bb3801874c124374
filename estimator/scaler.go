package estimator

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/searchlight-ml/searchlight/tensor"
)

// Interface conformance.
var (
	_ Estimator   = (*StandardScaler)(nil)
	_ Transformer = (*StandardScaler)(nil)
)

// StandardScaler standardizes features to zero mean and unit variance.
// It is the transform-capable estimator of this package; the target
// vector passed to Fit is ignored.
type StandardScaler struct {
	state

	means []float64
	stds  []float64
}

// NewStandardScaler creates an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Clone returns a fresh, unfitted scaler.
func (s *StandardScaler) Clone() Estimator {
	return &StandardScaler{}
}

// Fit records the per-feature mean and standard deviation of x.
func (s *StandardScaler) Fit(x *tensor.Dense, _ []float64) error {
	if x.Rank() != 2 {
		return fmt.Errorf("StandardScaler.Fit: want rank-2 input, got shape %v", x.Shape())
	}
	n, f := x.Shape()[0], x.Shape()[1]

	X := mat.NewDense(n, f, x.Data())
	s.means = make([]float64, f)
	s.stds = make([]float64, f)
	for j := 0; j < f; j++ {
		mean, std := stat.MeanStdDev(mat.Col(nil, j, X), nil)
		s.means[j] = mean
		if std == 0 {
			// Constant feature: leave it centered but unscaled.
			std = 1
		}
		s.stds[j] = std
	}
	s.setFitted()
	return nil
}

// Transform returns x standardized with the fitted statistics, shape
// (samples, features).
func (s *StandardScaler) Transform(x *tensor.Dense) (*tensor.Dense, error) {
	if !s.IsFitted() {
		return nil, fmt.Errorf("StandardScaler.Transform: %w", ErrNotFitted)
	}
	if x.Rank() != 2 {
		return nil, fmt.Errorf("StandardScaler.Transform: want rank-2 input, got shape %v", x.Shape())
	}
	n, f := x.Shape()[0], x.Shape()[1]
	if f != len(s.means) {
		return nil, fmt.Errorf("StandardScaler.Transform: input has %d features, scaler was fitted with %d",
			f, len(s.means))
	}

	out := tensor.Zeros(tensor.Shape{n, f})
	for i := 0; i < n; i++ {
		row := x.Row(i)
		dst := out.Row(i)
		for j, v := range row {
			dst[j] = (v - s.means[j]) / s.stds[j]
		}
	}
	return out, nil
}
