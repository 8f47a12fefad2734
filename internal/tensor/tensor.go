package tensor

import (
	"fmt"
	"strings"
)

// Tensor is an immutable dense tensor whose axes carry semantic labels.
//
// Every axis has an index label (e.g. "v", "d_out") and a size. Values are
// float64 stored row-major: the first index varies slowest. A Tensor never
// changes after construction; all operations return a new Tensor.
//
// Example:
//
//	adj, _ := tensor.FromMatrix("Adjacency", []string{"v", "u"}, [][]float64{
//	    {0, 1},
//	    {1, 0},
//	})
//	fmt.Println(adj.Shape()) // [2 2]
type Tensor struct {
	name    string
	indices []string
	shape   Shape
	stride  []int // Memory strides (row-major)
	data    []float64
}

// newTensor wraps already validated parts without copying them.
func newTensor(name string, indices []string, shape Shape, data []float64) *Tensor {
	return &Tensor{
		name:    name,
		indices: indices,
		shape:   shape,
		stride:  shape.ComputeStrides(),
		data:    data,
	}
}

// Name returns the tensor's diagnostic label.
func (t *Tensor) Name() string {
	return t.name
}

// Indices returns a copy of the tensor's axis labels.
func (t *Tensor) Indices() []string {
	return append([]string(nil), t.indices...)
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape.Clone()
}

// Strides returns a copy of the tensor's row-major strides.
func (t *Tensor) Strides() []int {
	return append([]int(nil), t.stride...)
}

// Rank returns the number of axes.
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// Data returns a copy of the flat row-major buffer.
func (t *Tensor) Data() []float64 {
	return append([]float64(nil), t.data...)
}

// IndexOf returns the axis position of label, or -1 if the tensor has no such axis.
func (t *Tensor) IndexOf(label string) int {
	for i, l := range t.indices {
		if l == label {
			return i
		}
	}
	return -1
}

// Item returns the scalar value of a rank-0 tensor.
// Panics if the tensor is not a scalar.
func (t *Tensor) Item() float64 {
	if len(t.shape) != 0 {
		panic(fmt.Sprintf("Item() only works for scalar tensors, got shape %v", t.shape))
	}
	return t.data[0]
}

// At returns the element at the given position, one value per axis.
// Panics if the number of positions or any position is out of range.
//
// Example:
//
//	v := features.At(1, 2) // node 1, feature 2
func (t *Tensor) At(indices ...int) float64 {
	return t.data[t.offset(indices)]
}

func (t *Tensor) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(t.shape), len(indices)))
	}

	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for axis %q (size %d)", idx, t.indices[i], t.shape[i]))
		}
		offset += idx * t.stride[i]
	}
	return offset
}

// Renamed returns a tensor with a new name sharing this tensor's buffer.
// Sharing is safe because neither tensor can be mutated.
func (t *Tensor) Renamed(name string) *Tensor {
	return &Tensor{
		name:    name,
		indices: t.indices,
		shape:   t.shape,
		stride:  t.stride,
		data:    t.data,
	}
}

// WithIndices returns a tensor with the same values and shape but new axis labels.
// The labels follow the same rules as New.
func (t *Tensor) WithIndices(labels ...string) (*Tensor, error) {
	if err := validateIndices(labels, t.shape); err != nil {
		return nil, fmt.Errorf("tensor %q: %w", t.name, err)
	}
	return &Tensor{
		name:    t.name,
		indices: append([]string(nil), labels...),
		shape:   t.shape,
		stride:  t.stride,
		data:    t.data,
	}, nil
}

// SameLayout reports whether both tensors have identical index labels (in order) and shape.
func (t *Tensor) SameLayout(other *Tensor) bool {
	if !t.shape.Equal(other.shape) || len(t.indices) != len(other.indices) {
		return false
	}
	for i := range t.indices {
		if t.indices[i] != other.indices[i] {
			return false
		}
	}
	return true
}

// String returns a short description such as "Adjacency[v=4, u=4]".
func (t *Tensor) String() string {
	parts := make([]string, len(t.indices))
	for i, label := range t.indices {
		parts[i] = fmt.Sprintf("%s=%d", label, t.shape[i])
	}
	return fmt.Sprintf("%s[%s]", t.name, strings.Join(parts, ", "))
}
