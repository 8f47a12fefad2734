// Copyright 2025 Tensor Logic Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensor-logic/tensorlogic/tensor"
)

// TestErrorTaxonomy verifies failures surface the public sentinels.
func TestErrorTaxonomy(t *testing.T) {
	a, err := tensor.FromMatrix("A", []string{"i", "j"}, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := tensor.FromMatrix("B", []string{"j", "i"}, [][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	_, err = tensor.Add(a, b)
	assert.True(t, errors.Is(err, tensor.ErrShapeMismatch))

	_, err = tensor.Einsum("ij->ik", a)
	assert.True(t, errors.Is(err, tensor.ErrUnknownIndex))

	_, err = tensor.Einsum("ij,,->i", a)
	assert.True(t, errors.Is(err, tensor.ErrMalformedEquation))

	v, err := tensor.FromVector("v", "k", []float64{1, 2, 3})
	require.NoError(t, err)
	_, err = tensor.Einsum("ij,j->i", a, v)
	assert.True(t, errors.Is(err, tensor.ErrDimensionMismatch))
}

// TestPlanAPI verifies a parsed equation can be planned and executed twice.
func TestPlanAPI(t *testing.T) {
	eq, err := tensor.ParseEquation("ij,jk->ik")
	require.NoError(t, err)

	id, err := tensor.Identity("I", []string{"i", "j"}, 2)
	require.NoError(t, err)
	m, err := tensor.New("M", []string{"j", "k"}, tensor.Shape{2, 2}, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	plan, err := tensor.NewPlan(eq, id, m)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, plan.Execute("P").Data())
	assert.Equal(t, 16, plan.Cost())
}

// TestMLPLayer composes einsum and elementwise ops the way the demos do.
func TestMLPLayer(t *testing.T) {
	x, err := tensor.FromVector("x", "i", []float64{1, -1})
	require.NoError(t, err)
	w, err := tensor.FromMatrix("W", []string{"h", "i"}, [][]float64{{1, 1}, {2, -1}, {-3, 0}})
	require.NoError(t, err)
	bias, err := tensor.FromVector("b", "h", []float64{0.5, 0, 0})
	require.NoError(t, err)

	z, err := tensor.Add(tensor.MustEinsum("hi,i->h", w, x), bias)
	require.NoError(t, err)
	h := tensor.Relu(z)

	assert.Equal(t, []float64{0.5, 3, 0}, h.Data())
	assert.Equal(t, "[0.5, 3.0, 0.0]", tensor.ToString(h, 1))

	s := tensor.Sigmoid(tensor.Scalar("z", 0))
	assert.Equal(t, 0.5, s.Item())
	assert.Equal(t, []float64{1, 1, 0}, tensor.Threshold(z).Data())
}
