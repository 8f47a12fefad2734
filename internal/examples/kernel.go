package examples

import (
	"github.com/tensor-logic/tensorlogic/internal/einsum"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// runKernel classifies query points with a degree-2 polynomial kernel
// machine. The two support vectors separate points by the sign of x·y.
func runKernel(Options) (*Result, error) {
	var r recorder

	support := mustMatrix("SupportVectors", []string{"s", "f"}, [][]float64{
		{1, 1},
		{1, -1},
	})
	alpha := mustVector("Alpha", "s", []float64{1, -1})
	r.record("Support vectors", `S[s,f] lists two support vectors with dual weights Alpha[s] = [1, -1].

(1, 1) votes for the positive class, (1, -1) against.`, support, 0)

	queries := mustMatrix("Queries", []string{"q", "f"}, [][]float64{
		{2, 1},
		{-1, -2},
		{1, -1.5},
		{-2, 0.5},
	})
	r.record("Query points", "Four points to classify, one per row of Q[q,f].", queries, 1)

	dots := einsum.MustEinsum("qf,sf->qs", queries, support).Renamed("Dot")
	r.record("Dot products", "Dot[q,s] = Σ_f Q[q,f] · S[s,f]", dots, 2)

	gram := tensor.Map(dots, "square", func(v float64) float64 { return v * v }).Renamed("Kernel")
	r.record("Kernel matrix", `K[q,s] = (Dot[q,s])²

The polynomial kernel is an elementwise function of a tensor equation.`, gram, 2)

	score := einsum.MustEinsum("qs,s->q", gram, alpha).Renamed("Score")
	r.record("Decision function", "Score[q] = Σ_s K[q,s] · Alpha[s]", score, 2)

	prediction := tensor.Threshold(score).Renamed("Prediction")
	r.record("Prediction", `Class[q] = H(Score[q])

Points in the first and third quadrants are positive: 1, 1, 0, 0.`, prediction, 0)

	return &Result{
		Title: "Kernel Machines: Polynomial SVM",
		Description: `A kernel machine predicts by comparing a query with stored support vectors
through a kernel function, then weighting the comparisons.

The comparison is an Einstein sum over features and the weighting is an
Einstein sum over support vectors; the kernel itself is elementwise. This is
the hybrid case: instance-based reasoning expressed with the same equations
as a neural layer.`,
		Code: `K[q,s]   = (Σ_f Q[q,f] · S[s,f])²
Score[q] = Σ_s K[q,s] · Alpha[s]
Class[q] = H(Score[q])`,
		Steps: r.steps,
	}, nil
}
