package einsum

import (
	"fmt"

	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// Plan is a validated contraction: every token bound to a size, tokens
// partitioned into free and summed loop slots, operand strides resolved.
//
// Loop slots are ordered free tokens first (output order), then summed tokens
// (order of first appearance on the left side).
type Plan struct {
	eq       *Equation
	tokens   []string
	sizes    []int
	numFree  int
	operands []operandAccess
	outShape tensor.Shape
}

// operandAccess addresses one operand through the loop slots it touches.
// A token repeated inside the operand (a diagonal) maps several axes to one
// slot; its stride is the sum of those axes' strides, so only positions where
// the axes coincide are ever read.
type operandAccess struct {
	data    []float64
	slots   []int
	strides []int
}

type binding struct {
	size    int
	operand int
	axis    int
}

// NewPlan binds eq to concrete operands.
//
// Errors:
//   - tensor.ErrMalformedEquation: operand count differs from the number of specs
//   - tensor.ErrShapeMismatch: an operand is nil or its rank differs from its spec length
//   - tensor.ErrDimensionMismatch: a token is bound to two different sizes, across
//     operands or across the repeated axes of one operand
func NewPlan(eq *Equation, operands ...*tensor.Tensor) (*Plan, error) {
	if len(operands) != len(eq.Operands) {
		return nil, fmt.Errorf("%w: %s names %d operands, got %d",
			tensor.ErrMalformedEquation, eq, len(eq.Operands), len(operands))
	}

	bound := make(map[string]binding)
	for i, op := range operands {
		if op == nil {
			return nil, fmt.Errorf("%w: operand %d is nil", tensor.ErrShapeMismatch, i)
		}
		spec := eq.Operands[i]
		shape := op.Shape()
		if len(shape) != len(spec) {
			return nil, fmt.Errorf("%w: operand %d (%s) has rank %d, spec %q has %d indices",
				tensor.ErrShapeMismatch, i, op, len(shape), joinSpec(spec), len(spec))
		}
		for axis, tok := range spec {
			b, ok := bound[tok]
			if !ok {
				bound[tok] = binding{size: shape[axis], operand: i, axis: axis}
				continue
			}
			if b.size != shape[axis] {
				return nil, fmt.Errorf("%w: index %q is %d at operand %d axis %d but %d at operand %d axis %d",
					tensor.ErrDimensionMismatch, tok, b.size, b.operand, b.axis, shape[axis], i, axis)
			}
		}
	}

	p := &Plan{eq: eq, numFree: len(eq.Output)}
	slotOf := make(map[string]int)
	addSlot := func(tok string) {
		slotOf[tok] = len(p.tokens)
		p.tokens = append(p.tokens, tok)
		p.sizes = append(p.sizes, bound[tok].size)
	}
	for _, tok := range eq.Output {
		addSlot(tok)
	}
	for _, tok := range eq.Tokens() {
		if _, ok := slotOf[tok]; !ok {
			addSlot(tok)
		}
	}
	p.outShape = append(tensor.Shape{}, p.sizes[:p.numFree]...)

	p.operands = make([]operandAccess, len(operands))
	for i, op := range operands {
		access := operandAccess{data: op.Data()}
		position := make(map[int]int) // slot -> position in access.slots
		strides := op.Strides()
		for axis, tok := range eq.Operands[i] {
			slot := slotOf[tok]
			if k, ok := position[slot]; ok {
				access.strides[k] += strides[axis]
				continue
			}
			position[slot] = len(access.slots)
			access.slots = append(access.slots, slot)
			access.strides = append(access.strides, strides[axis])
		}
		p.operands[i] = access
	}

	return p, nil
}

// Equation returns the equation the plan was built from.
func (p *Plan) Equation() *Equation {
	return p.eq
}

// OutputShape returns the shape of the result.
func (p *Plan) OutputShape() tensor.Shape {
	return p.outShape.Clone()
}

// FreeIndices returns the output tokens in output order.
func (p *Plan) FreeIndices() []string {
	return append([]string(nil), p.tokens[:p.numFree]...)
}

// SummedIndices returns the contracted tokens in order of first appearance.
func (p *Plan) SummedIndices() []string {
	return append([]string(nil), p.tokens[p.numFree:]...)
}

// Size returns the dimension bound to tok, or 0 if the equation does not use it.
func (p *Plan) Size(tok string) int {
	for i, t := range p.tokens {
		if t == tok {
			return p.sizes[i]
		}
	}
	return 0
}

// Cost returns the number of multiply-accumulate steps Execute performs:
// the product of every distinct index size, times the number of operands.
func (p *Plan) Cost() int {
	n := 1
	for _, s := range p.sizes {
		n *= s
	}
	return n * len(p.operands)
}
