package examples

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensor-logic/tensorlogic/internal/tensor"
	"github.com/tensor-logic/tensorlogic/internal/tokenizer"
)

func run(t *testing.T, id string) *Result {
	t.Helper()
	ex, ok := Lookup(id)
	require.True(t, ok, id)
	res, err := ex.Run(Options{})
	require.NoError(t, err)
	return res
}

func step(t *testing.T, res *Result, name string) Step {
	t.Helper()
	for _, s := range res.Steps {
		if s.Name == name {
			return s
		}
	}
	require.Failf(t, "missing step", "%q not in %s", name, res.Title)
	return Step{}
}

func last(res *Result) *tensor.Tensor {
	return res.Steps[len(res.Steps)-1].Tensor
}

// Registry Tests

func TestRegistry(t *testing.T) {
	all := All()
	require.Len(t, all, 9)
	assert.Equal(t, "logic", all[0].ID)

	seen := make(map[string]bool)
	for _, e := range all {
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
		assert.Contains(t, Categories, e.Category)
		assert.NotEmpty(t, e.Name)
	}

	_, ok := Lookup("nope")
	assert.False(t, ok)

	groups := ByCategory()
	assert.Len(t, groups[Neural], 5)
	assert.Len(t, groups[Probabilistic], 2)
	assert.Equal(t, "Hybrid Methods", Hybrid.Title())
	assert.Len(t, IDs(), 9)
}

func TestAllExamplesRun(t *testing.T) {
	for _, ex := range All() {
		t.Run(ex.ID, func(t *testing.T) {
			res, err := ex.Run(Options{})
			require.NoError(t, err)
			assert.NotEmpty(t, res.Title)
			assert.NotEmpty(t, res.Description)
			assert.NotEmpty(t, res.Code)
			require.NotEmpty(t, res.Steps)
			for _, s := range res.Steps {
				require.NotNil(t, s.Tensor, s.Name)
				assert.NotEmpty(t, s.TensorString, s.Name)
			}
		})
	}
}

func TestExamplesDeterministic(t *testing.T) {
	for _, ex := range All() {
		first, err := ex.Run(Options{})
		require.NoError(t, err)
		second, err := ex.Run(Options{})
		require.NoError(t, err)
		require.Len(t, second.Steps, len(first.Steps))
		for i := range first.Steps {
			assert.Equal(t, first.Steps[i].TensorString, second.Steps[i].TensorString, ex.ID)
		}
	}
}

// Symbolic Tests

func TestLogicTransitiveClosure(t *testing.T) {
	res := run(t, "logic")

	fix := step(t, res, "Fixpoint")
	assert.Equal(t, []float64{
		0, 1, 1, 1,
		0, 0, 1, 1,
		0, 0, 0, 1,
		0, 0, 0, 0,
	}, fix.Tensor.Data())

	assert.Equal(t, []float64{0, 1, 1, 1}, last(res).Data())
	assert.Equal(t, "[0, 1, 1, 1]", res.Steps[len(res.Steps)-1].TensorString)
}

// Neural Tests

func TestMLPOutput(t *testing.T) {
	res := run(t, "mlp")

	hidden := step(t, res, "Hidden activation").Tensor
	assert.InDeltaSlice(t, []float64{0.55, 0}, hidden.Data(), 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-0.55)), last(res).Item(), 1e-12)
}

func TestXOR(t *testing.T) {
	res := run(t, "mlp-batch")
	assert.Equal(t, []float64{0, 1, 1, 0}, last(res).Data())
	assert.Equal(t, []string{"n"}, last(res).Indices())
}

func TestTransformerAttentionRows(t *testing.T) {
	res := run(t, "transformer")

	attn := step(t, res, "Attention weights").Tensor
	require.Equal(t, tensor.Shape{6, 6}, attn.Shape())
	for p := 0; p < 6; p++ {
		sum := 0.0
		for k := 0; k < 6; k++ {
			sum += attn.At(p, k)
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "row %d", p)
	}

	// "the" appears at positions 0 and 4.
	for k := 0; k < 6; k++ {
		assert.InDelta(t, attn.At(0, k), attn.At(4, k), 1e-12)
	}

	tokens := step(t, res, "Tokens").Tensor
	assert.Equal(t, []float64{1, 2, 3, 4, 1, 5}, tokens.Data())
	assert.Equal(t, tensor.Shape{6, embedDim}, last(res).Shape())
}

func TestMultiHead(t *testing.T) {
	res := run(t, "multihead")

	attn := step(t, res, "Per-head attention").Tensor
	require.Equal(t, tensor.Shape{numHeads, 3, 3}, attn.Shape())
	for h := 0; h < numHeads; h++ {
		for p := 0; p < 3; p++ {
			assert.InDelta(t, 1.0, attn.At(h, p, 0)+attn.At(h, p, 1)+attn.At(h, p, 2), 1e-12)
		}
	}
	assert.Contains(t, step(t, res, "Per-head attention").TensorString, "h=1:")
	assert.Equal(t, []string{"p", "e"}, last(res).Indices())
}

func TestAttentionWithCustomTokenizer(t *testing.T) {
	ex, ok := Lookup("transformer")
	require.True(t, ok)

	// Every word unknown: all positions share one embedding.
	res, err := ex.Run(Options{Tokenizer: tokenizer.NewWord([]string{"<unk>"})})
	require.NoError(t, err)

	attn := step(t, res, "Attention weights").Tensor
	for k := 0; k < 6; k++ {
		assert.InDelta(t, 1.0/6, attn.At(2, k), 1e-12)
	}
}

func TestGNN(t *testing.T) {
	res := run(t, "gnn")
	require.Len(t, res.Steps, 6)

	messages := step(t, res, "Message Aggregation")
	assert.Contains(t, messages.TensorString, "[2.00, 1.40, 1.00]")

	adjacency := step(t, res, "Graph Structure (Adjacency Matrix)")
	assert.Equal(t, "[0, 1, 0, 0]\n[1, 0, 1, 1]\n[0, 1, 0, 0]\n[0, 1, 0, 0]", adjacency.TensorString)

	final := last(res)
	assert.Equal(t, []string{"v", "d"}, final.Indices())
	assert.Equal(t, "FinalFeatures", final.Name())
	assert.InDelta(t, 1.60, final.At(0, 0), 1e-12)
	assert.InDelta(t, 1.52, final.At(0, 1), 1e-12)
	assert.InDelta(t, 0.98, final.At(0, 2), 1e-12)
}

// Hybrid Tests

func TestKernelPredictions(t *testing.T) {
	res := run(t, "kernel")
	assert.Equal(t, []float64{1, 1, 0, 0}, last(res).Data())
	assert.InDeltaSlice(t, []float64{8, 8, -6, -4}, step(t, res, "Decision function").Tensor.Data(), 1e-12)
}

// Probabilistic Tests

func TestBayesianPosterior(t *testing.T) {
	res := run(t, "bayesian")

	marginal := step(t, res, "Marginal: P(WetGrass)").Tensor
	assert.InDelta(t, 0.44838, marginal.At(1), 1e-9)
	assert.InDelta(t, 1.0, marginal.At(0)+marginal.At(1), 1e-12)

	posterior := last(res)
	assert.InDelta(t, 0.16038/0.44838, posterior.At(1), 1e-9)
	assert.Equal(t, "[0.64231, 0.35769]", res.Steps[len(res.Steps)-1].TensorString)
}

func TestHMMForward(t *testing.T) {
	res := run(t, "hmm")

	alpha3 := step(t, res, `Forward step 3: observe "clean"`).Tensor
	assert.InDeltaSlice(t, []float64{0.02904, 0.004572}, alpha3.Data(), 1e-12)

	likelihood := step(t, res, "Sequence likelihood")
	assert.InDelta(t, 0.033612, likelihood.Tensor.Item(), 1e-12)
	assert.Equal(t, "0.033612", likelihood.TensorString)

	assert.InDelta(t, 1.0, last(res).At(0)+last(res).At(1), 1e-12)
}
