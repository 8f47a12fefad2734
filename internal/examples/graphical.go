package examples

import (
	"fmt"
	"strings"

	"github.com/tensor-logic/tensorlogic/internal/einsum"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// Binary variables use index 0 for false and 1 for true.

// runBayesian answers P(Rain | WetGrass) in the rain/sprinkler network.
func runBayesian(Options) (*Result, error) {
	var r recorder

	rain := mustVector("Rain", "r", []float64{0.8, 0.2})
	sprinkler := mustMatrix("Sprinkler", []string{"r", "s"}, [][]float64{
		{0.6, 0.4},   // no rain
		{0.99, 0.01}, // rain
	})
	wet := mustNew("WetGrass", []string{"s", "r", "w"}, tensor.Shape{2, 2, 2}, []float64{
		1.0, 0.0,   // sprinkler off, no rain
		0.2, 0.8,   // sprinkler off, rain
		0.1, 0.9,   // sprinkler on, no rain
		0.01, 0.99, // sprinkler on, rain
	})
	r.record("Conditional probability tables", `P(Rain) = [0.8, 0.2]
P(Sprinkler | Rain) is Sprinkler[r,s]
P(WetGrass | Sprinkler, Rain) is the tensor shown, WetGrass[s,r,w]

Index 0 is false and index 1 is true for every variable.`, wet, 2)

	joint := einsum.MustEinsum("r,rs,srw->rsw", rain, sprinkler, wet).Renamed("Joint")
	r.record("Joint distribution", `Joint[r,s,w] = P(r) · P(s|r) · P(w|s,r)

The chain rule is a product of factors with no summed index.`, joint, 5)

	marginal := einsum.MustEinsum("rsw->w", joint).Renamed("P(WetGrass)")
	r.record("Marginal: P(WetGrass)", `P(w) = Σ_r Σ_s Joint[r,s,w]

Marginalization sums out the other variables: the grass is wet with
probability 0.44838.`, marginal, 5)

	evidence := oneHot("Evidence", "w", 2, 1)
	unnormalized := einsum.MustEinsum("rsw,w->r", joint, evidence).Renamed("P(Rain, WetGrass=T)")
	r.record("Conditioning on evidence", `P(r, w=T) = Σ_s Σ_w Joint[r,s,w] · Evidence[w]

Evidence is a one-hot vector that selects w = true.`, unnormalized, 5)

	posterior := tensor.Normalize(unnormalized).Renamed("P(Rain | WetGrass=T)")
	r.record("Posterior", `P(r | w=T) = P(r, w=T) / Σ_r P(r, w=T)

Seeing wet grass raises the probability of rain from 0.2 to about 0.358.`, posterior, 5)

	return &Result{
		Title: "Bayesian Network: Inference by Summation",
		Description: `A Bayesian network factors a joint distribution into conditional
probability tables. Each table is a tensor, the joint is their product, and
every inference query is an Einstein sum that marginalizes the unobserved
variables.

Network: Rain -> Sprinkler, and both Rain and Sprinkler -> WetGrass.`,
		Code: `Joint[r,s,w]  = P(r) · P(s|r) · P(w|s,r)
P(w)          = Σ_r Σ_s Joint[r,s,w]
P(r | w=T)    ∝ Σ_s Joint[r,s,T]`,
		Steps: r.steps,
	}, nil
}

// runHMM computes the likelihood of an observation sequence with the
// forward algorithm.
func runHMM(Options) (*Result, error) {
	var r recorder

	states := []string{"Rainy", "Sunny"}
	observations := []string{"walk", "shop", "clean"}
	sequence := []int{0, 1, 2}

	initial := mustVector("Initial", "s", []float64{0.6, 0.4})
	transition := mustMatrix("Transition", []string{"i", "j"}, [][]float64{
		{0.7, 0.3},
		{0.4, 0.6},
	})
	emission := mustMatrix("Emission", []string{"s", "o"}, [][]float64{
		{0.1, 0.4, 0.5},
		{0.6, 0.3, 0.1},
	})
	r.record("Model", fmt.Sprintf(`Hidden states %s, observations %s.

Initial[s] = [0.6, 0.4]
Transition[i,j] = P(next state j | state i)
Emission[s,o] = P(observation o | state s), shown here.`, strings.Join(states, ", "), strings.Join(observations, ", ")), emission, 2)

	likelihoodOf := func(t int) *tensor.Tensor {
		obs := oneHot("Observation", "o", len(observations), sequence[t])
		return einsum.MustEinsum("so,o->s", emission, obs)
	}

	alpha := einsum.MustEinsum("s,s->s", initial, likelihoodOf(0)).Renamed("Alpha1")
	r.record(fmt.Sprintf("Forward step 1: observe %q", observations[sequence[0]]), `Alpha1[s] = Initial[s] · Emission[s, o1]`, alpha, 5)

	for t := 1; t < len(sequence); t++ {
		alpha = einsum.MustEinsum("i,ij,j->j", alpha, transition, likelihoodOf(t)).Renamed(fmt.Sprintf("Alpha%d", t+1))
		r.record(fmt.Sprintf("Forward step %d: observe %q", t+1, observations[sequence[t]]), fmt.Sprintf(`Alpha%d[j] = Σ_i Alpha%d[i] · Transition[i,j] · Emission[j, o%d]

Three factors, one summed index: the whole recursion step is one einsum.`, t+1, t, t+1), alpha, 5)
	}

	likelihood := einsum.MustEinsum("j->", alpha).Renamed("Likelihood")
	r.record("Sequence likelihood", `P(o1, o2, o3) = Σ_j Alpha3[j]`, likelihood, 6)

	filtered := tensor.Normalize(alpha).Renamed("Filtered")
	r.record("Filtered state", fmt.Sprintf(`P(state3 | o1..o3) = Alpha3 / Σ_j Alpha3[j]

After seeing %q the model is fairly sure it is %s.`, observations[sequence[len(sequence)-1]], states[0]), filtered, 4)

	return &Result{
		Title: "Hidden Markov Model: Forward Algorithm",
		Description: `A hidden Markov model is a chain of tensors: an initial distribution, a
transition matrix and an emission matrix. The forward algorithm propagates
belief along the chain, one Einstein sum per time step, and sums the final
belief to get the probability of the observations.`,
		Code: `Alpha1[s]   = Initial[s] · Emission[s,o1]
Alpha_t[j]  = Σ_i Alpha_{t-1}[i] · Transition[i,j] · Emission[j,o_t]
P(o1..oT)   = Σ_j Alpha_T[j]`,
		Steps: r.steps,
	}, nil
}
