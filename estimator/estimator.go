// Copyright 2025 The Searchlight Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package estimator defines the model contract consumed by the decoding
// engine, and a few concrete models implementing it.
//
// A model is any type implementing Estimator (Fit and Clone). Everything
// else a model may support (Transform, Predict, PredictProba,
// DecisionFunction, Score) is an optional capability expressed as a
// separate single-method interface. The engine never inspects a model
// beyond these interfaces; it binds a capability with Applier and reads
// the shapes of the tensors that come back.
package estimator

import (
	"errors"

	"github.com/searchlight-ml/searchlight/tensor"
)

// ErrNotFitted is returned by inference methods called before Fit.
var ErrNotFitted = errors.New("estimator is not fitted")

// Estimator is the base interface for all models.
//
// Fit trains the model on a rank-2 design matrix x (samples × features)
// and a target vector y of matching length. Clone returns a fresh,
// untrained copy carrying the same hyperparameters; the engine clones a
// prototype once per data slice so no two slices ever share a model.
type Estimator interface {
	Fit(x *tensor.Dense, y []float64) error
	Clone() Estimator
	IsFitted() bool
}

// Transformer is the optional transform capability.
type Transformer interface {
	Transform(x *tensor.Dense) (*tensor.Dense, error)
}

// Predictor is the optional predict capability.
type Predictor interface {
	Predict(x *tensor.Dense) (*tensor.Dense, error)
}

// ProbaPredictor is the optional class-probability capability.
type ProbaPredictor interface {
	PredictProba(x *tensor.Dense) (*tensor.Dense, error)
}

// DecisionScorer is the optional decision-function capability
// (signed distance to the model's decision boundary).
type DecisionScorer interface {
	DecisionFunction(x *tensor.Dense) (*tensor.Dense, error)
}

// Scorer is the optional scoring capability. The result is typically a
// rank-0 tensor (one scalar per (X, y) pair) but the engine accepts any
// shape as long as it is consistent across calls.
type Scorer interface {
	Score(x *tensor.Dense, y []float64) (*tensor.Dense, error)
}

// Method identifies one of the optional estimator capabilities.
type Method int

// Capability kinds.
const (
	MethodTransform Method = iota
	MethodPredict
	MethodPredictProba
	MethodDecisionFunction
	MethodScore
)

// String returns the conventional method name.
func (m Method) String() string {
	switch m {
	case MethodTransform:
		return "transform"
	case MethodPredict:
		return "predict"
	case MethodPredictProba:
		return "predict_proba"
	case MethodDecisionFunction:
		return "decision_function"
	case MethodScore:
		return "score"
	default:
		return "unknown"
	}
}

// Supports reports whether e implements the capability m.
func Supports(e Estimator, m Method) bool {
	switch m {
	case MethodTransform:
		_, ok := e.(Transformer)
		return ok
	case MethodPredict:
		_, ok := e.(Predictor)
		return ok
	case MethodPredictProba:
		_, ok := e.(ProbaPredictor)
		return ok
	case MethodDecisionFunction:
		_, ok := e.(DecisionScorer)
		return ok
	case MethodScore:
		_, ok := e.(Scorer)
		return ok
	default:
		return false
	}
}

// Effective resolves the method actually invoked for a request of m on
// e: a transform request on a model without Transform falls back to
// Predict. The second return is false when e supports neither the
// requested method nor a fallback.
func Effective(e Estimator, m Method) (Method, bool) {
	if m == MethodTransform && !Supports(e, MethodTransform) {
		m = MethodPredict
	}
	return m, Supports(e, m)
}

// Apply is one estimator capability bound to one model instance.
type Apply func(x *tensor.Dense) (*tensor.Dense, error)

// Applier binds the capability m on e. The method must already be
// resolved (see Effective); Score is not an Apply and is rejected here.
func Applier(e Estimator, m Method) (Apply, bool) {
	switch m {
	case MethodTransform:
		if t, ok := e.(Transformer); ok {
			return t.Transform, true
		}
	case MethodPredict:
		if p, ok := e.(Predictor); ok {
			return p.Predict, true
		}
	case MethodPredictProba:
		if p, ok := e.(ProbaPredictor); ok {
			return p.PredictProba, true
		}
	case MethodDecisionFunction:
		if d, ok := e.(DecisionScorer); ok {
			return d.DecisionFunction, true
		}
	}
	return nil, false
}

// state tracks whether a model has been fitted. Embedded by the
// concrete estimators in this package.
type state struct {
	fitted bool
}

// IsFitted reports whether Fit has completed successfully.
func (s *state) IsFitted() bool {
	return s.fitted
}

func (s *state) setFitted() {
	s.fitted = true
}
