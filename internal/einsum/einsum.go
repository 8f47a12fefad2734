// Package einsum implements Einstein summation over labelled tensors.
//
// An equation is parsed once into an Equation, bound to operands by NewPlan
// and evaluated by Plan.Execute. Einsum does all three steps:
//
//	messages, err := einsum.Einsum("vu,ud->vd", adjacency, features)
//
// Common linear-algebra operations are special cases:
//
//	"ij->ji"     transpose
//	"ij,jk->ik"  matrix product
//	"ij->"       total sum
//	"ii->"       trace (diagonal of a repeated index)
//	"i,i->"      dot product
package einsum

import (
	"fmt"

	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// Einsum evaluates equation over operands.
// The result is named after the canonical equation, "einsum(ij,jk->ik)";
// use Tensor.Renamed to relabel it.
func Einsum(equation string, operands ...*tensor.Tensor) (*tensor.Tensor, error) {
	eq, err := Parse(equation)
	if err != nil {
		return nil, fmt.Errorf("einsum: %w", err)
	}
	plan, err := NewPlan(eq, operands...)
	if err != nil {
		return nil, fmt.Errorf("einsum %q: %w", equation, err)
	}
	return plan.Execute(fmt.Sprintf("einsum(%s)", eq)), nil
}

// MustEinsum is like Einsum but panics on error.
// Intended for fixed equations whose operands are known to fit.
func MustEinsum(equation string, operands ...*tensor.Tensor) *tensor.Tensor {
	t, err := Einsum(equation, operands...)
	if err != nil {
		panic(err)
	}
	return t
}
