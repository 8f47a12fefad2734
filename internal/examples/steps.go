package examples

import (
	"math"

	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// recorder accumulates the steps of one demo run.
type recorder struct {
	steps []Step
}

func (r *recorder) record(name, explanation string, t *tensor.Tensor, precision int) {
	r.steps = append(r.steps, Step{
		Name:         name,
		Explanation:  explanation,
		Tensor:       t,
		TensorString: tensor.ToString(t, precision),
	})
}

// The helpers below build the demos' fixed tensors. Their inputs are
// constants, so a construction error is a programming mistake.

func mustNew(name string, indices []string, shape tensor.Shape, data []float64) *tensor.Tensor {
	t, err := tensor.New(name, indices, shape, data)
	if err != nil {
		panic(err)
	}
	return t
}

func mustMatrix(name string, indices []string, rows [][]float64) *tensor.Tensor {
	t, err := tensor.FromMatrix(name, indices, rows)
	if err != nil {
		panic(err)
	}
	return t
}

func mustVector(name, index string, values []float64) *tensor.Tensor {
	t, err := tensor.FromVector(name, index, values)
	if err != nil {
		panic(err)
	}
	return t
}

func mustFull(name string, indices []string, shape tensor.Shape, value float64) *tensor.Tensor {
	t, err := tensor.Full(name, indices, shape, value)
	if err != nil {
		panic(err)
	}
	return t
}

func mustAdd(name string, a, b *tensor.Tensor) *tensor.Tensor {
	t, err := tensor.Add(a, b)
	if err != nil {
		panic(err)
	}
	return t.Renamed(name)
}

// oneHot returns a vector of size n with a single 1 at position k.
func oneHot(name, index string, n, k int) *tensor.Tensor {
	values := make([]float64, n)
	values[k] = 1
	return mustVector(name, index, values)
}

// patterned fills a tensor with deterministic values in [-0.5, 0.5] that
// stand in for trained weights.
func patterned(name string, indices []string, shape tensor.Shape, seed float64) *tensor.Tensor {
	data := make([]float64, shape.NumElements())
	for k := range data {
		data[k] = 0.5 * math.Sin(seed*float64(k+1))
	}
	return mustNew(name, indices, shape, data)
}
