package examples

import (
	"github.com/tensor-logic/tensorlogic/internal/einsum"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// runMLP evaluates a two-layer perceptron on a single input vector.
func runMLP(Options) (*Result, error) {
	var r recorder

	x := mustVector("Input", "i", []float64{1.0, 0.5, -0.5})
	r.record("Input", "A single example with three features X[i].", x, 2)

	w1 := mustMatrix("W1", []string{"h", "i"}, [][]float64{
		{0.2, 0.4, -0.1},
		{0.5, -0.3, 0.8},
	})
	b1 := mustVector("b1", "h", []float64{0.1, -0.2})
	r.record("Hidden layer weights", "W1[h,i] maps three inputs to two hidden units.", w1, 2)

	z1 := mustAdd("Z1", einsum.MustEinsum("hi,i->h", w1, x), b1)
	r.record("Hidden pre-activation", `Z1[h] = Σ_i W1[h,i] · X[i] + b1[h]

The sum over i is a matrix-vector product.`, z1, 4)

	hidden := tensor.Relu(z1).Renamed("Hidden")
	r.record("Hidden activation", `Hidden[h] = ReLU(Z1[h])

Negative pre-activations are clipped to zero.`, hidden, 4)

	w2 := mustMatrix("W2", []string{"o", "h"}, [][]float64{{1.0, -1.0}})
	b2 := mustVector("b2", "o", []float64{0})
	z2 := mustAdd("Z2", einsum.MustEinsum("oh,h->o", w2, hidden), b2)
	output := tensor.Sigmoid(z2).Renamed("Output")
	r.record("Output", `Output[o] = σ( Σ_h W2[o,h] · Hidden[h] + b2[o] )

The sigmoid maps the score to a probability.`, output, 4)

	return &Result{
		Title: "Multi-Layer Perceptron",
		Description: `Each layer of a neural network is one tensor equation: an Einstein sum
over the previous layer's units followed by an elementwise nonlinearity.

The same notation that joins relations in a logic program multiplies weight
matrices in a perceptron.`,
		Code: `Z1[h]     = Σ_i W1[h,i] · X[i] + b1[h]
Hidden[h] = ReLU(Z1[h])
Output[o] = σ(Σ_h W2[o,h] · Hidden[h] + b2[o])`,
		Steps: r.steps,
	}, nil
}

// runXOR solves XOR for a batch of four inputs with a hand-wired
// threshold network. The batch index n simply rides along every equation.
func runXOR(Options) (*Result, error) {
	var r recorder

	x := mustMatrix("X", []string{"n", "i"}, [][]float64{
		{0, 0},
		{0, 1},
		{1, 0},
		{1, 1},
	})
	r.record("Input batch", "All four XOR inputs as rows of X[n,i].", x, 0)

	w1 := mustFull("W1", []string{"i", "h"}, tensor.Shape{2, 2}, 1)
	b1 := mustVector("b1", "h", []float64{-0.5, -1.5})
	ones := mustFull("Ones", []string{"n"}, tensor.Shape{4}, 1)

	// Broadcasting the bias over the batch is an outer product with ones.
	bias := einsum.MustEinsum("n,h->nh", ones, b1)
	z1 := mustAdd("Z1", einsum.MustEinsum("ni,ih->nh", x, w1), bias)
	hidden := tensor.Threshold(z1).Renamed("Hidden")
	r.record("Hidden layer", `Hidden[n,h] = H( Σ_i X[n,i] · W1[i,h] + b1[h] )

Unit 0 fires for OR (at least one input set), unit 1 for AND (both set).`, hidden, 0)

	w2 := mustVector("W2", "h", []float64{1, -2})
	b2 := mustFull("b2", []string{"n"}, tensor.Shape{4}, -0.5)
	z2 := mustAdd("Z2", einsum.MustEinsum("nh,h->n", hidden, w2), b2)
	r.record("Output score", `Z2[n] = Σ_h Hidden[n,h] · W2[h] + b2

OR minus twice AND is positive exactly when one input is set.`, z2, 1)

	output := tensor.Threshold(z2).Renamed("XOR")
	r.record("Prediction", "XOR[n] = H(Z2[n]) gives 0, 1, 1, 0 for the four inputs.", output, 0)

	return &Result{
		Title: "MLP Batch Processing: XOR",
		Description: `XOR is not linearly separable, so it needs a hidden layer.

Processing a batch adds one more index, n, to every tensor. Nothing else in
the equations changes: the einsum keeps n as a free index, so all examples
are evaluated at once.`,
		Code: `Hidden[n,h] = H(Σ_i X[n,i] · W1[i,h] + b1[h])
XOR[n]      = H(Σ_h Hidden[n,h] · W2[h] + b2)`,
		Steps: r.steps,
	}, nil
}
