package examples

import (
	"github.com/tensor-logic/tensorlogic/internal/einsum"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// runGNN runs one message-passing layer over a four-person friendship graph.
func runGNN(Options) (*Result, error) {
	var r recorder

	adjacency := mustMatrix("Adjacency", []string{"v", "u"}, [][]float64{
		{0, 1, 0, 0}, // Alice - Bob
		{1, 0, 1, 1}, // Bob - Alice, Charlie, Diana
		{0, 1, 0, 0}, // Charlie - Bob
		{0, 1, 0, 0}, // Diana - Bob
	})
	r.record("Graph Structure (Adjacency Matrix)", `A[v,u] = 1 when nodes v and u are friends.

  Alice (0) - Bob (1)
  Bob (1)   - Charlie (2)
  Bob (1)   - Diana (3)

Bob is the hub. In the message-passing equation the adjacency matrix selects
which nodes contribute to each node's update.`, adjacency, 0)

	features := mustNew("NodeFeatures", []string{"v", "d"}, tensor.Shape{4, 3}, []float64{
		0.8, 0.6, 0.3, // Alice
		0.9, 1.0, 0.5, // Bob
		0.5, 0.3, 0.4, // Charlie
		0.7, 0.5, 0.3, // Diana
	})
	r.record("Initial Node Features", `H[v,d] holds three features per node: interest, activity and age group.

  Alice:   [0.8, 0.6, 0.3]
  Bob:     [0.9, 1.0, 0.5]
  Charlie: [0.5, 0.3, 0.4]
  Diana:   [0.7, 0.5, 0.3]`, features, 2)

	weights := mustNew("Weights", []string{"d", "d_out"}, tensor.Shape{3, 3}, []float64{
		0.5, 0.3, 0.2,
		0.2, 0.6, 0.2,
		0.3, 0.1, 0.6,
	})
	r.record("Weight Matrix", `W[d,d_out] mixes input features into output features.

These values are fixed for the demo; a trained network would learn them.`, weights, 2)

	messages := einsum.MustEinsum("vu,ud->vd", adjacency, features).Renamed("Messages")
	r.record("Message Aggregation", `Messages[v,d] = Σ_u A[v,u] · H[u,d]

Each node sums its neighbours' features. For Bob:
  H[Alice] + H[Charlie] + H[Diana] = [2.0, 1.4, 1.0]`, messages, 2)

	updated := einsum.MustEinsum("vd,dd_out->vd_out", messages, weights).Renamed("UpdatedFeatures")
	r.record("Feature Transformation", `H'[v,d_out] = Σ_d Messages[v,d] · W[d,d_out]

The aggregated messages pass through the weight matrix. Bob, with the most
neighbours, changes the most.`, updated, 2)

	// The residual connection is defined on the input layout [v,d].
	activated, err := tensor.Relu(updated).WithIndices("v", "d")
	if err != nil {
		return nil, err
	}
	final := mustAdd("FinalFeatures", activated, features)
	r.record("Activation and Residual Connection", `H_final[v,d] = ReLU(H'[v,d]) + H[v,d]

ReLU adds the nonlinearity and the residual keeps each node's own features.
Stacking k such layers lets information travel k hops.`, final, 2)

	return &Result{
		Title: "Graph Neural Network: Message Passing",
		Description: `A GNN layer aggregates neighbour features through the adjacency matrix and
transforms them with a weight matrix:

  H'[v,d'] = Σ_u Σ_d A[v,u] · H[u,d] · W[d,d']

The adjacency matrix plays the role a relation plays in a logic program: it
decides which facts, here which nodes, feed into each derived value.`,
		Code: `// One GNN layer
Messages[v,d]  = Σ_u A[v,u] · H[u,d]
H'[v,d']       = Σ_d Messages[v,d] · W[d,d']
H_final[v,d]   = ReLU(H'[v,d]) + H[v,d]

// Graph attention replaces A with learned weights
Attention[v,u] = softmax(Query[v,d] · Key[u,d])`,
		Steps: r.steps,
	}, nil
}
