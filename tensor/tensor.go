// Copyright 2025 Tensor Logic Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the Tensor Logic engine.
//
// The package defines the core types and operations:
//   - Tensor: immutable dense tensor with labelled axes
//   - Shape: tensor dimensions
//   - Einsum: Einstein summation over labelled tensors
//   - Elementwise operations and the ToString formatter
//
// Example:
//
//	a, _ := tensor.FromMatrix("A", []string{"i", "j"}, [][]float64{{1, 2}, {3, 4}})
//	t, _ := tensor.Einsum("ij->ji", a)
//	fmt.Println(tensor.ToString(t, 0))
package tensor

import (
	"github.com/tensor-logic/tensorlogic/internal/einsum"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// Type aliases for public API

// Tensor is an immutable dense float64 tensor whose axes carry index labels.
//
// Example:
//
//	h, _ := tensor.New("NodeFeatures", []string{"v", "d"}, tensor.Shape{2, 2},
//	    []float64{0.8, 0.6, 0.9, 1.0})
//	fmt.Println(h) // NodeFeatures[v=2, d=2]
type Tensor = tensor.Tensor

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Equation is a parsed einsum equation.
type Equation = einsum.Equation

// Plan is an equation bound to concrete operands, ready to execute.
type Plan = einsum.Plan

// Errors

var (
	// ErrShapeMismatch reports an index/shape/data length or rank inconsistency.
	ErrShapeMismatch = tensor.ErrShapeMismatch
	// ErrDimensionMismatch reports an index bound to conflicting sizes.
	ErrDimensionMismatch = tensor.ErrDimensionMismatch
	// ErrMalformedEquation reports an invalid einsum equation.
	ErrMalformedEquation = tensor.ErrMalformedEquation
	// ErrUnknownIndex reports an index label that is not present where required.
	ErrUnknownIndex = tensor.ErrUnknownIndex
)

// Creation functions

// New creates a tensor from a flat row-major buffer (the buffer is copied).
//
// Example:
//
//	w, err := tensor.New("Weights", []string{"d", "d_out"}, tensor.Shape{2, 2},
//	    []float64{0.5, 0.3, 0.2, 0.6})
func New(name string, indices []string, shape Shape, data []float64) (*Tensor, error) {
	return tensor.New(name, indices, shape, data)
}

// FromMatrix creates a rank-2 tensor from rectangular rows.
//
// Example:
//
//	adj, err := tensor.FromMatrix("Adjacency", []string{"v", "u"}, [][]float64{
//	    {0, 1},
//	    {1, 0},
//	})
func FromMatrix(name string, indices []string, rows [][]float64) (*Tensor, error) {
	return tensor.FromMatrix(name, indices, rows)
}

// FromVector creates a rank-1 tensor.
func FromVector(name, index string, values []float64) (*Tensor, error) {
	return tensor.FromVector(name, index, values)
}

// Scalar creates a rank-0 tensor.
func Scalar(name string, value float64) *Tensor {
	return tensor.Scalar(name, value)
}

// Full creates a tensor filled with a specific value.
func Full(name string, indices []string, shape Shape, value float64) (*Tensor, error) {
	return tensor.Full(name, indices, shape, value)
}

// Identity creates an n×n identity matrix.
func Identity(name string, indices []string, n int) (*Tensor, error) {
	return tensor.Identity(name, indices, n)
}

// Einstein summation

// Einsum evaluates an equation such as "ij,jk->ik" over operands.
//
// Example:
//
//	messages, err := tensor.Einsum("vu,ud->vd", adjacency, features)
func Einsum(equation string, operands ...*Tensor) (*Tensor, error) {
	return einsum.Einsum(equation, operands...)
}

// MustEinsum is like Einsum but panics on error.
func MustEinsum(equation string, operands ...*Tensor) *Tensor {
	return einsum.MustEinsum(equation, operands...)
}

// ParseEquation parses an equation without binding it to operands.
func ParseEquation(equation string) (*Equation, error) {
	return einsum.Parse(equation)
}

// NewPlan binds a parsed equation to operands. The plan can be executed repeatedly.
func NewPlan(eq *Equation, operands ...*Tensor) (*Plan, error) {
	return einsum.NewPlan(eq, operands...)
}

// Elementwise operations

// Add performs strict element-wise addition (same labels, same order, same shape).
func Add(a, b *Tensor) (*Tensor, error) {
	return tensor.Add(a, b)
}

// Sub performs strict element-wise subtraction.
func Sub(a, b *Tensor) (*Tensor, error) {
	return tensor.Sub(a, b)
}

// Mul performs strict element-wise multiplication.
func Mul(a, b *Tensor) (*Tensor, error) {
	return tensor.Mul(a, b)
}

// Relu computes max(0, x) element-wise.
func Relu(x *Tensor) *Tensor {
	return tensor.Relu(x)
}

// Sigmoid computes 1/(1+e^-x) element-wise.
func Sigmoid(x *Tensor) *Tensor {
	return tensor.Sigmoid(x)
}

// Threshold computes 1 where x > 0, else 0.
func Threshold(x *Tensor) *Tensor {
	return tensor.Threshold(x)
}

// Tanh computes the hyperbolic tangent element-wise.
func Tanh(x *Tensor) *Tensor {
	return tensor.Tanh(x)
}

// Exp computes e^x element-wise.
func Exp(x *Tensor) *Tensor {
	return tensor.Exp(x)
}

// Scale multiplies every element by k.
func Scale(x *Tensor, k float64) *Tensor {
	return tensor.Scale(x, k)
}

// Normalize divides every element by the total sum.
func Normalize(x *Tensor) *Tensor {
	return tensor.Normalize(x)
}

// Softmax normalises exp(x) along the axis labelled index.
func Softmax(x *Tensor, index string) (*Tensor, error) {
	return tensor.Softmax(x, index)
}

// Map applies f to every element; op names the result.
func Map(x *Tensor, op string, f func(float64) float64) *Tensor {
	return tensor.Map(x, op, f)
}

// Formatting

// ToString renders x with precision digits after the decimal point.
// Identical inputs always produce identical strings.
func ToString(x *Tensor, precision int) string {
	return tensor.ToString(x, precision)
}
