package tensor

import (
	"fmt"
	"math"
)

// Add performs element-wise addition.
//
// Both tensors must have the same index labels in the same order and the same
// shape; there is no broadcasting. Label order is part of the layout, so
// [i,j] and [j,i] tensors are rejected even when their shapes agree.
//
// Example:
//
//	out, err := tensor.Add(activated, features) // residual connection
func Add(a, b *Tensor) (*Tensor, error) {
	return binaryOp("add", a, b, func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction with the same layout rules as Add.
func Sub(a, b *Tensor) (*Tensor, error) {
	return binaryOp("sub", a, b, func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise (Hadamard) multiplication with the same layout rules as Add.
func Mul(a, b *Tensor) (*Tensor, error) {
	return binaryOp("mul", a, b, func(x, y float64) float64 { return x * y })
}

func binaryOp(op string, a, b *Tensor, f func(x, y float64) float64) (*Tensor, error) {
	if !a.SameLayout(b) {
		return nil, fmt.Errorf("%s: %w: %s vs %s", op, ErrShapeMismatch, a, b)
	}
	out := make([]float64, len(a.data))
	for i := range out {
		out[i] = f(a.data[i], b.data[i])
	}
	return newTensor(fmt.Sprintf("%s(%s, %s)", op, a.name, b.name), a.indices, a.shape, out), nil
}

// Map applies f to every element. The result is named op(x.Name()).
func Map(x *Tensor, op string, f func(float64) float64) *Tensor {
	out := make([]float64, len(x.data))
	for i, v := range x.data {
		out[i] = f(v)
	}
	return newTensor(fmt.Sprintf("%s(%s)", op, x.name), x.indices, x.shape, out)
}

// Relu computes max(0, x) element-wise.
func Relu(x *Tensor) *Tensor {
	return Map(x, "relu", func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Sigmoid computes 1/(1+e^-x) element-wise.
func Sigmoid(x *Tensor) *Tensor {
	return Map(x, "sigmoid", func(v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	})
}

// Threshold is the Heaviside step: 1 where x > 0, else 0.
// Logic programs use it to turn rule counts back into truth values.
func Threshold(x *Tensor) *Tensor {
	return Map(x, "threshold", func(v float64) float64 {
		if v > 0 {
			return 1
		}
		return 0
	})
}

// Tanh computes the hyperbolic tangent element-wise.
func Tanh(x *Tensor) *Tensor {
	return Map(x, "tanh", math.Tanh)
}

// Exp computes e^x element-wise.
func Exp(x *Tensor) *Tensor {
	return Map(x, "exp", math.Exp)
}

// Scale multiplies every element by k.
func Scale(x *Tensor, k float64) *Tensor {
	return Map(x, "scale", func(v float64) float64 { return v * k })
}

// Normalize divides every element by the sum of all elements.
// A tensor summing to zero is returned unchanged (as a copy).
func Normalize(x *Tensor) *Tensor {
	total := 0.0
	for _, v := range x.data {
		total += v
	}
	if total == 0 {
		return Map(x, "normalize", func(v float64) float64 { return v })
	}
	return Map(x, "normalize", func(v float64) float64 { return v / total })
}

// Softmax computes exp(x_i) / sum(exp(x_j)) along the axis labelled index.
// The maximum along the axis is subtracted first for numerical stability.
func Softmax(x *Tensor, index string) (*Tensor, error) {
	dim := x.IndexOf(index)
	if dim < 0 {
		return nil, fmt.Errorf("softmax: %w: %q not in %s", ErrUnknownIndex, index, x)
	}

	dimSize := x.shape[dim]
	dimStride := x.stride[dim]
	out := make([]float64, len(x.data))

	// Every element whose coordinate along dim is 0 starts one softmax row.
	for base := range x.data {
		if (base/dimStride)%dimSize != 0 {
			continue
		}

		maxVal := math.Inf(-1)
		for k := 0; k < dimSize; k++ {
			maxVal = math.Max(maxVal, x.data[base+k*dimStride])
		}
		sum := 0.0
		for k := 0; k < dimSize; k++ {
			e := math.Exp(x.data[base+k*dimStride] - maxVal)
			out[base+k*dimStride] = e
			sum += e
		}
		for k := 0; k < dimSize; k++ {
			out[base+k*dimStride] /= sum
		}
	}

	return newTensor(fmt.Sprintf("softmax(%s)", x.name), x.indices, x.shape, out), nil
}
