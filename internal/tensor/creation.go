package tensor

import "fmt"

// New creates a tensor from a flat row-major buffer.
//
// The number of labels must match the number of dimensions, labels must be
// pairwise distinct, every dimension must be positive and the buffer must hold
// exactly product(shape) values. Otherwise the error wraps ErrShapeMismatch.
// The buffer is copied.
//
// Example:
//
//	w, err := tensor.New("Weights", []string{"d", "d_out"}, tensor.Shape{2, 2},
//	    []float64{0.5, 0.3, 0.2, 0.6})
func New(name string, indices []string, shape Shape, data []float64) (*Tensor, error) {
	if err := validateIndices(indices, shape); err != nil {
		return nil, fmt.Errorf("tensor %q: %w", name, err)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("tensor %q: %w", name, err)
	}
	if n := shape.NumElements(); n != len(data) {
		return nil, fmt.Errorf("tensor %q: %w: shape %v requires %d elements, but got %d",
			name, ErrShapeMismatch, shape, n, len(data))
	}

	buf := make([]float64, len(data))
	copy(buf, data)
	return newTensor(name, append([]string(nil), indices...), shape.Clone(), buf), nil
}

// FromMatrix creates a rank-2 tensor from rectangular rows.
// The shape is [len(rows), len(rows[0])]; ragged or empty input fails with ErrShapeMismatch.
//
// Example:
//
//	adj, err := tensor.FromMatrix("Adjacency", []string{"v", "u"}, [][]float64{
//	    {0, 1, 0},
//	    {1, 0, 1},
//	})
func FromMatrix(name string, indices []string, rows [][]float64) (*Tensor, error) {
	if len(indices) != 2 {
		return nil, fmt.Errorf("tensor %q: %w: matrix needs 2 index labels, got %d", name, ErrShapeMismatch, len(indices))
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("tensor %q: %w: matrix has no elements", name, ErrShapeMismatch)
	}

	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("tensor %q: %w: row %d has %d values, row 0 has %d",
				name, ErrShapeMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return New(name, indices, Shape{len(rows), cols}, data)
}

// FromVector creates a rank-1 tensor with a single index label.
func FromVector(name, index string, values []float64) (*Tensor, error) {
	return New(name, []string{index}, Shape{len(values)}, values)
}

// Scalar creates a rank-0 tensor.
func Scalar(name string, value float64) *Tensor {
	return newTensor(name, []string{}, Shape{}, []float64{value})
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	bias, err := tensor.Full("Bias", []string{"h"}, tensor.Shape{4}, 0.1)
func Full(name string, indices []string, shape Shape, value float64) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("tensor %q: %w", name, err)
	}
	data := make([]float64, shape.NumElements())
	for i := range data {
		data[i] = value
	}
	return New(name, indices, shape, data)
}

// Identity creates an n×n identity matrix labelled with two indices.
func Identity(name string, indices []string, n int) (*Tensor, error) {
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		data[i*n+i] = 1
	}
	return New(name, indices, Shape{n, n}, data)
}

// validateIndices checks label count against the shape and label uniqueness.
func validateIndices(indices []string, shape Shape) error {
	if len(indices) != len(shape) {
		return fmt.Errorf("%w: %d index labels for %d dimensions", ErrShapeMismatch, len(indices), len(shape))
	}
	seen := make(map[string]int, len(indices))
	for i, label := range indices {
		if label == "" {
			return fmt.Errorf("%w: empty index label at axis %d", ErrShapeMismatch, i)
		}
		if prev, ok := seen[label]; ok {
			return fmt.Errorf("%w: index label %q repeated at axes %d and %d", ErrShapeMismatch, label, prev, i)
		}
		seen[label] = i
	}
	return nil
}
