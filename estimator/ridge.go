package estimator

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/searchlight-ml/searchlight/tensor"
)

// Interface conformance.
var (
	_ Estimator = (*Ridge)(nil)
	_ Predictor = (*Ridge)(nil)
	_ Scorer    = (*Ridge)(nil)
)

// Ridge is an L2-regularized linear regressor solved in closed form via
// the normal equations. Score returns the coefficient of determination
// (R²), matching the regression convention.
type Ridge struct {
	state

	// Alpha is the L2 regularization strength.
	Alpha float64

	weights   *mat.VecDense
	intercept float64
}

// NewRidge creates a regressor with a small default regularization.
func NewRidge() *Ridge {
	return &Ridge{Alpha: 1.0}
}

// Clone returns a fresh, untrained copy with the same hyperparameters.
func (r *Ridge) Clone() Estimator {
	return &Ridge{Alpha: r.Alpha}
}

// Fit solves (XᵀX + αI) w = Xᵀy on centered data, so the intercept is
// not penalized.
func (r *Ridge) Fit(x *tensor.Dense, y []float64) error {
	n, f, err := checkDesign(x, y)
	if err != nil {
		return fmt.Errorf("Ridge.Fit: %w", err)
	}

	X := mat.NewDense(n, f, x.Data())

	colMeans := make([]float64, f)
	for j := 0; j < f; j++ {
		colMeans[j] = stat.Mean(mat.Col(nil, j, X), nil)
	}
	yMean := stat.Mean(y, nil)

	Xc := mat.NewDense(n, f, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < f; j++ {
			Xc.Set(i, j, X.At(i, j)-colMeans[j])
		}
	}
	yc := make([]float64, n)
	for i, v := range y {
		yc[i] = v - yMean
	}

	var gram mat.Dense
	gram.Mul(Xc.T(), Xc)
	for j := 0; j < f; j++ {
		gram.Set(j, j, gram.At(j, j)+r.Alpha)
	}

	var xty mat.VecDense
	xty.MulVec(Xc.T(), mat.NewVecDense(n, yc))

	w := mat.NewVecDense(f, nil)
	if err := w.SolveVec(&gram, &xty); err != nil {
		return fmt.Errorf("Ridge.Fit: singular system: %w", err)
	}

	r.weights = w
	r.intercept = yMean - mat.Dot(mat.NewVecDense(f, colMeans), w)
	r.setFitted()
	return nil
}

// Predict returns the fitted linear response for each sample, shape
// (samples,).
func (r *Ridge) Predict(x *tensor.Dense) (*tensor.Dense, error) {
	if !r.IsFitted() {
		return nil, fmt.Errorf("Ridge.Predict: %w", ErrNotFitted)
	}
	if x.Rank() != 2 {
		return nil, fmt.Errorf("Ridge.Predict: want rank-2 input, got shape %v", x.Shape())
	}
	n, f := x.Shape()[0], x.Shape()[1]
	if f != r.weights.Len() {
		return nil, fmt.Errorf("Ridge.Predict: input has %d features, model was fitted with %d",
			f, r.weights.Len())
	}

	X := mat.NewDense(n, f, x.Data())
	resp := mat.NewVecDense(n, nil)
	resp.MulVec(X, r.weights)
	out := make([]float64, n)
	for i := range out {
		out[i] = resp.AtVec(i) + r.intercept
	}
	return tensor.FromSlice(out, tensor.Shape{n})
}

// Score returns R² on (x, y) as a rank-0 tensor.
func (r *Ridge) Score(x *tensor.Dense, y []float64) (*tensor.Dense, error) {
	pred, err := r.Predict(x)
	if err != nil {
		return nil, err
	}
	if pred.NumElements() != len(y) {
		return nil, fmt.Errorf("Ridge.Score: %d predictions for %d targets", pred.NumElements(), len(y))
	}

	yMean := stat.Mean(y, nil)
	var ssRes, ssTot float64
	for i, v := range y {
		d := v - pred.Data()[i]
		ssRes += d * d
		m := v - yMean
		ssTot += m * m
	}
	if ssTot == 0 {
		return tensor.Scalar(0), nil
	}
	return tensor.Scalar(1 - ssRes/ssTot), nil
}
