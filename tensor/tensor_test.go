package tensor_test

import (
	"testing"

	"github.com/searchlight-ml/searchlight/tensor"
)

func TestPublicAPI(t *testing.T) {
	x := tensor.Zeros(tensor.Shape{2, 3})
	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Expected shape [2 3], got %v", x.Shape())
	}

	y, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	c, err := tensor.Cat([]*tensor.Dense{x, y}, 0)
	if err != nil {
		t.Fatalf("Cat failed: %v", err)
	}
	if !c.Shape().Equal(tensor.Shape{4, 3}) {
		t.Errorf("Expected shape [4 3], got %v", c.Shape())
	}

	if tensor.Scalar(2.5).Item() != 2.5 {
		t.Error("Scalar round-trip failed")
	}
}
