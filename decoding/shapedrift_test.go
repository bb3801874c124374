package decoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchlight-ml/searchlight/estimator"
	"github.com/searchlight-ml/searchlight/tensor"
)

// driftModel returns per-sample vectors whose width depends on the
// training data, so two slices can disagree on the output's trailing
// shape.
type driftModel struct {
	width  int
	fitted bool
}

func (d *driftModel) Fit(x *tensor.Dense, _ []float64) error {
	d.width = int(x.At(0, 0))
	d.fitted = true
	return nil
}

func (d *driftModel) Clone() estimator.Estimator { return &driftModel{} }
func (d *driftModel) IsFitted() bool             { return d.fitted }

func (d *driftModel) Predict(x *tensor.Dense) (*tensor.Dense, error) {
	return tensor.Zeros(tensor.Shape{x.Shape()[0], d.width}), nil
}

// driftTensor puts the value w+1 in every cell of slice w, so the clone
// fitted on slice w predicts width w+1.
func driftTensor(t *testing.T, n, f, s int) *tensor.Dense {
	t.Helper()
	x := tensor.Zeros(tensor.Shape{n, f, s})
	for i := 0; i < n; i++ {
		for j := 0; j < f; j++ {
			for k := 0; k < s; k++ {
				x.Set(float64(k+1), i, j, k)
			}
		}
	}
	return x
}

func TestApply_ResultShapeDriftFails(t *testing.T) {
	x := driftTensor(t, 4, 2, 3)
	y := rampTargets(4)

	sl, err := New(&driftModel{}, 1)
	require.NoError(t, err)
	require.NoError(t, sl.Fit(x, y))

	_, err = sl.Predict(x)
	assert.ErrorIs(t, err, ErrShape)
}

func TestGeneralization_ResultShapeDriftFails(t *testing.T) {
	x := driftTensor(t, 4, 2, 3)
	y := rampTargets(4)

	gen, err := NewGeneralization(&driftModel{}, 1)
	require.NoError(t, err)
	require.NoError(t, gen.Fit(x, y))

	_, err = gen.Predict(x)
	assert.ErrorIs(t, err, ErrShape)
}
