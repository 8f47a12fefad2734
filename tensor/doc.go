// Copyright 2025 Tensor Logic Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor is the public API of the Tensor Logic engine.
//
// # Overview
//
// Tensor Logic expresses symbolic rules, neural layers and probabilistic
// models alike as Einstein summation over tensors whose axes carry names.
// This package provides:
//   - Immutable dense float64 tensors with labelled axes (Tensor)
//   - Einstein summation over equation strings (Einsum)
//   - Strict elementwise operations (Add, Relu, Sigmoid, Threshold, ...)
//   - A deterministic pretty-printer (ToString)
//
// # Basic Usage
//
//	import "github.com/tensor-logic/tensorlogic/tensor"
//
//	func main() {
//	    adjacency, _ := tensor.FromMatrix("Adjacency", []string{"v", "u"}, [][]float64{
//	        {0, 1},
//	        {1, 0},
//	    })
//	    features, _ := tensor.FromMatrix("Features", []string{"v", "d"}, [][]float64{
//	        {0.8, 0.6},
//	        {0.9, 1.0},
//	    })
//
//	    messages, _ := tensor.Einsum("vu,ud->vd", adjacency, features)
//	    fmt.Println(tensor.ToString(messages, 2))
//	}
//
// # Equations
//
// An equation lists one index spec per operand, separated by commas, and
// optionally "->" followed by the output spec:
//
//	"ij,jk->ik"          matrix product
//	"ij->ji"             transpose
//	"ij->"               sum of all elements
//	"ii->"               trace
//	"vd,dd_out->vd_out"  multi-character labels (d, d_out)
//	"v u, u d -> v d"    whitespace-separated labels
//
// Without "->" the output keeps every index that occurs exactly once, in order
// of first appearance ("ij,jk" is "ij,jk->ik").
//
// # Errors
//
// Failures wrap one of ErrShapeMismatch, ErrDimensionMismatch,
// ErrMalformedEquation or ErrUnknownIndex; match them with errors.Is.
//
// # Broadcasting
//
// There is none. Add, Sub and Mul require identical index labels, in the same
// order, and identical shapes.
package tensor
