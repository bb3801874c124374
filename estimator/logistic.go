package estimator

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/searchlight-ml/searchlight/tensor"
)

// Interface conformance.
var (
	_ Estimator      = (*LogisticRegression)(nil)
	_ Predictor      = (*LogisticRegression)(nil)
	_ ProbaPredictor = (*LogisticRegression)(nil)
	_ DecisionScorer = (*LogisticRegression)(nil)
	_ Scorer         = (*LogisticRegression)(nil)
)

// LogisticRegression is a binary classifier trained by full-batch
// gradient descent. It supports predict, predict_proba,
// decision_function and score, but deliberately not transform, so it
// also exercises the engine's transform→predict fallback.
type LogisticRegression struct {
	state

	// LearningRate is the gradient step size.
	LearningRate float64
	// Iterations is the number of full-batch gradient steps.
	Iterations int

	weights *mat.VecDense
	bias    float64
	classes [2]float64
}

// NewLogisticRegression creates a classifier with default
// hyperparameters.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		LearningRate: 0.5,
		Iterations:   500,
	}
}

// Clone returns a fresh, untrained copy with the same hyperparameters.
func (l *LogisticRegression) Clone() Estimator {
	return &LogisticRegression{
		LearningRate: l.LearningRate,
		Iterations:   l.Iterations,
	}
}

// Fit trains the classifier on a (samples × features) matrix and binary
// labels. y may use any two distinct values; they are recorded as the
// class labels returned by Predict.
func (l *LogisticRegression) Fit(x *tensor.Dense, y []float64) error {
	n, f, err := checkDesign(x, y)
	if err != nil {
		return fmt.Errorf("LogisticRegression.Fit: %w", err)
	}

	classes, err := binaryClasses(y)
	if err != nil {
		return fmt.Errorf("LogisticRegression.Fit: %w", err)
	}
	l.classes = classes

	// Targets remapped to {0, 1} in class order.
	targets := make([]float64, n)
	for i, v := range y {
		if v == classes[1] {
			targets[i] = 1
		}
	}

	X := mat.NewDense(n, f, x.Data())
	yv := mat.NewVecDense(n, targets)
	w := mat.NewVecDense(f, nil)
	bias := 0.0

	p := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(f, nil)
	step := l.LearningRate / float64(n)
	for iter := 0; iter < l.Iterations; iter++ {
		p.MulVec(X, w)
		for i := 0; i < n; i++ {
			p.SetVec(i, sigmoid(p.AtVec(i)+bias))
		}
		p.SubVec(p, yv) // p now holds the residual
		grad.MulVec(X.T(), p)
		w.AddScaledVec(w, -step, grad)
		bias -= step * floats.Sum(p.RawVector().Data)
	}

	l.weights = w
	l.bias = bias
	l.setFitted()
	return nil
}

// DecisionFunction returns the signed margin for each sample, shape
// (samples,). Positive margins map to the second class.
func (l *LogisticRegression) DecisionFunction(x *tensor.Dense) (*tensor.Dense, error) {
	margins, err := l.margins(x)
	if err != nil {
		return nil, fmt.Errorf("LogisticRegression.DecisionFunction: %w", err)
	}
	return tensor.FromSlice(margins, tensor.Shape{len(margins)})
}

// Predict returns the predicted class label for each sample, shape
// (samples,).
func (l *LogisticRegression) Predict(x *tensor.Dense) (*tensor.Dense, error) {
	margins, err := l.margins(x)
	if err != nil {
		return nil, fmt.Errorf("LogisticRegression.Predict: %w", err)
	}
	labels := make([]float64, len(margins))
	for i, m := range margins {
		if m >= 0 {
			labels[i] = l.classes[1]
		} else {
			labels[i] = l.classes[0]
		}
	}
	return tensor.FromSlice(labels, tensor.Shape{len(labels)})
}

// PredictProba returns class probabilities, shape (samples, 2), columns
// ordered like the recorded class labels.
func (l *LogisticRegression) PredictProba(x *tensor.Dense) (*tensor.Dense, error) {
	margins, err := l.margins(x)
	if err != nil {
		return nil, fmt.Errorf("LogisticRegression.PredictProba: %w", err)
	}
	n := len(margins)
	probs := make([]float64, 2*n)
	for i, m := range margins {
		p1 := sigmoid(m)
		probs[2*i] = 1 - p1
		probs[2*i+1] = p1
	}
	return tensor.FromSlice(probs, tensor.Shape{n, 2})
}

// Score returns the accuracy on (x, y) as a rank-0 tensor in [0, 1].
func (l *LogisticRegression) Score(x *tensor.Dense, y []float64) (*tensor.Dense, error) {
	pred, err := l.Predict(x)
	if err != nil {
		return nil, err
	}
	if pred.NumElements() != len(y) {
		return nil, fmt.Errorf("LogisticRegression.Score: %d predictions for %d targets",
			pred.NumElements(), len(y))
	}
	correct := 0
	for i, v := range pred.Data() {
		if v == y[i] {
			correct++
		}
	}
	return tensor.Scalar(float64(correct) / float64(len(y))), nil
}

func (l *LogisticRegression) margins(x *tensor.Dense) ([]float64, error) {
	if !l.IsFitted() {
		return nil, ErrNotFitted
	}
	if x.Rank() != 2 {
		return nil, fmt.Errorf("want rank-2 input, got shape %v", x.Shape())
	}
	n, f := x.Shape()[0], x.Shape()[1]
	if f != l.weights.Len() {
		return nil, fmt.Errorf("input has %d features, model was fitted with %d", f, l.weights.Len())
	}

	X := mat.NewDense(n, f, x.Data())
	m := mat.NewVecDense(n, nil)
	m.MulVec(X, l.weights)
	out := make([]float64, n)
	for i := range out {
		out[i] = m.AtVec(i) + l.bias
	}
	return out, nil
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

// checkDesign validates a (samples × features) design matrix against a
// target vector and returns the dimensions.
func checkDesign(x *tensor.Dense, y []float64) (n, f int, err error) {
	if x.Rank() != 2 {
		return 0, 0, fmt.Errorf("want rank-2 input, got shape %v", x.Shape())
	}
	n, f = x.Shape()[0], x.Shape()[1]
	if len(y) != n {
		return 0, 0, fmt.Errorf("%d samples but %d targets", n, len(y))
	}
	return n, f, nil
}

// binaryClasses extracts the two distinct values of y in sorted order.
func binaryClasses(y []float64) ([2]float64, error) {
	seen := make(map[float64]struct{}, 2)
	for _, v := range y {
		seen[v] = struct{}{}
		if len(seen) > 2 {
			return [2]float64{}, fmt.Errorf("more than two classes in targets")
		}
	}
	if len(seen) < 2 {
		return [2]float64{}, fmt.Errorf("need two classes in targets, got %d", len(seen))
	}
	classes := make([]float64, 0, 2)
	for v := range seen {
		classes = append(classes, v)
	}
	sort.Float64s(classes)
	return [2]float64{classes[0], classes[1]}, nil
}
