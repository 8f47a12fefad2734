// Copyright 2025 Tensor Logic Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"fmt"

	"github.com/tensor-logic/tensorlogic/tensor"
)

func ExampleEinsum() {
	a, _ := tensor.FromMatrix("A", []string{"i", "j"}, [][]float64{
		{1, 2},
		{3, 4},
	})
	b, _ := tensor.FromMatrix("B", []string{"j", "k"}, [][]float64{
		{1, 0},
		{1, 1},
	})

	c, _ := tensor.Einsum("ij,jk->ik", a, b)
	fmt.Println(tensor.ToString(c, 1))

	tr, _ := tensor.Einsum("ii->", a)
	fmt.Println(tensor.ToString(tr, 0))
	// Output:
	// [3.0, 2.0]
	// [7.0, 4.0]
	// 5
}

func ExampleToString() {
	x, _ := tensor.New("X", []string{"b", "i", "j"}, tensor.Shape{2, 2, 2},
		[]float64{1, 2, 3, 4, 5, 6, 7, 8})
	fmt.Println(tensor.ToString(x, 0))
	// Output:
	// b=0:
	//   [1, 2]
	//   [3, 4]
	// b=1:
	//   [5, 6]
	//   [7, 8]
}

func ExampleAdd() {
	a, _ := tensor.FromVector("a", "i", []float64{1, 2})
	b, _ := tensor.FromVector("b", "i", []float64{10, 20})
	c, _ := tensor.Add(a, b)
	fmt.Println(c.Name(), tensor.ToString(c, 0))

	t, _ := tensor.FromVector("t", "j", []float64{10, 20})
	_, err := tensor.Add(a, t)
	fmt.Println(err)
	// Output:
	// add(a, b) [11, 22]
	// add: shape mismatch: a[i=2] vs t[j=2]
}
