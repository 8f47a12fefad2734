package einsum

import (
	"fmt"

	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// Execute performs the contraction and returns the result named name.
//
// Free index values are visited in row-major output order; for each output
// cell every combination of summed index values is visited and the product of
// the addressed operand elements is accumulated. Work is proportional to the
// product of all distinct index sizes (see Cost); the loop is deliberately
// unfused.
func (p *Plan) Execute(name string) *tensor.Tensor {
	numCells := p.outShape.NumElements()
	out := make([]float64, numCells)

	vals := make([]int, len(p.tokens))
	free, summed := vals[:p.numFree], vals[p.numFree:]
	freeSizes, summedSizes := p.sizes[:p.numFree], p.sizes[p.numFree:]

	for cell := 0; cell < numCells; cell++ {
		clear(summed)
		sum := 0.0
		for {
			prod := 1.0
			for _, op := range p.operands {
				offset := 0
				for k, slot := range op.slots {
					offset += vals[slot] * op.strides[k]
				}
				prod *= op.data[offset]
			}
			sum += prod

			if !advance(summed, summedSizes) {
				break
			}
		}
		out[cell] = sum
		advance(free, freeSizes)
	}

	t, err := tensor.New(name, p.eq.Output, p.outShape, out)
	if err != nil {
		// The plan already validated labels and sizes.
		panic(fmt.Sprintf("einsum: building result: %v", err))
	}
	return t
}

// advance steps vals like an odometer, last position fastest.
// It returns false once every combination has been visited.
func advance(vals, sizes []int) bool {
	for k := len(vals) - 1; k >= 0; k-- {
		vals[k]++
		if vals[k] < sizes[k] {
			return true
		}
		vals[k] = 0
	}
	return false
}
