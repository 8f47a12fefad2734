package examples

import (
	"fmt"
	"math"
	"strings"

	"github.com/tensor-logic/tensorlogic/internal/einsum"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
	"github.com/tensor-logic/tensorlogic/internal/tokenizer"
)

const (
	attentionSentence = "the cat sat on the mat"
	multiHeadSentence = "the cat sat"
	embedDim          = 4
	numHeads          = 2
	headDim           = 2
)

// embedding is a tokenized sentence mapped to dense vectors.
type embedding struct {
	ids    *tensor.Tensor // Tokens[p]: tokenizer IDs by position
	oneHot *tensor.Tensor // OneHot[p,v]: position to local vocabulary slot
	table  *tensor.Tensor // Embedding[v,e]
	x      *tensor.Tensor // X[p,e]
}

// embed tokenizes text and looks each token up in a deterministic embedding
// table. Token IDs are first compacted into a local vocabulary so that
// tokenizers with very large vocabularies keep the tensors small.
func embed(tok tokenizer.Tokenizer, text string) (*embedding, error) {
	ids, err := tok.Encode(text)
	if err != nil {
		return nil, fmt.Errorf("tokenize %q: %w", text, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("tokenize %q: no tokens", text)
	}

	slot := make(map[int32]int)
	positions := make([]float64, len(ids))
	for p, id := range ids {
		if _, ok := slot[id]; !ok {
			slot[id] = len(slot)
		}
		positions[p] = float64(id)
	}

	hot := make([]float64, len(ids)*len(slot))
	for p, id := range ids {
		hot[p*len(slot)+slot[id]] = 1
	}

	e := &embedding{
		ids:    mustVector("Tokens", "p", positions),
		oneHot: mustNew("OneHot", []string{"p", "v"}, tensor.Shape{len(ids), len(slot)}, hot),
		table:  patterned("Embedding", []string{"v", "e"}, tensor.Shape{len(slot), embedDim}, 1.3),
	}
	// Embedding lookup is a sum over the vocabulary against a one-hot row.
	e.x = einsum.MustEinsum("pv,ve->pe", e.oneHot, e.table).Renamed("X")
	return e, nil
}

func runTransformer(opts Options) (*Result, error) {
	var r recorder

	tok := opts.tokenizer()
	emb, err := embed(tok, attentionSentence)
	if err != nil {
		return nil, err
	}
	r.record("Tokens", fmt.Sprintf(`The sentence %q is split by the %s tokenizer.

Each position p holds a token ID. Repeated words share an ID.`, attentionSentence, tok.Name()), emb.ids, 0)
	r.record("Embedded sequence", `X[p,e] = Σ_v OneHot[p,v] · Embedding[v,e]

Looking up an embedding is a tensor contraction with a one-hot matrix.`, emb.x, 3)

	wq := patterned("WQ", []string{"e", "d"}, tensor.Shape{embedDim, embedDim}, 0.7)
	wk := patterned("WK", []string{"e", "d"}, tensor.Shape{embedDim, embedDim}, 1.1)
	wv := patterned("WV", []string{"e", "d"}, tensor.Shape{embedDim, embedDim}, 1.7)

	query := einsum.MustEinsum("pe,ed->pd", emb.x, wq).Renamed("Query")
	key := einsum.MustEinsum("pe,ed->pd", emb.x, wk).Renamed("Key")
	value := einsum.MustEinsum("pe,ed->pd", emb.x, wv).Renamed("Value")
	r.record("Query projection", `Query[p,d] = Σ_e X[p,e] · WQ[e,d]

Key and Value are computed the same way with WK and WV.`, query, 3)

	scores := tensor.Scale(einsum.MustEinsum("pd,kd->pk", query, key), 1/math.Sqrt(embedDim)).Renamed("Scores")
	r.record("Attention scores", `Scores[p,k] = Σ_d Query[p,d] · Key[k,d] / √d

Each query position is compared with every key position.`, scores, 3)

	weights, err := tensor.Softmax(scores, "k")
	if err != nil {
		return nil, err
	}
	weights = weights.Renamed("Attention")
	r.record("Attention weights", `Attention[p,k] = softmax_k(Scores[p,k])

Each row is a probability distribution over key positions. Both "the"
positions carry the same embedding, so their rows are identical.`, weights, 3)

	output := einsum.MustEinsum("pk,kd->pd", weights, value).Renamed("Output")
	r.record("Attention output", `Output[p,d] = Σ_k Attention[p,k] · Value[k,d]

Every position becomes a weighted mixture of all value vectors.`, output, 3)

	return &Result{
		Title: "Transformer: Self-Attention",
		Description: fmt.Sprintf(`Self-attention is four tensor equations and a softmax.

Queries and keys are projections of the same sequence; their dot products
say how strongly each position attends to each other position, and the
normalized weights mix the value vectors.

Input sentence: %q`, attentionSentence),
		Code: `Query[p,d]     = Σ_e X[p,e] · WQ[e,d]
Key[p,d]       = Σ_e X[p,e] · WK[e,d]
Value[p,d]     = Σ_e X[p,e] · WV[e,d]
Attention[p,k] = softmax_k(Σ_d Query[p,d] · Key[k,d] / √d)
Output[p,d]    = Σ_k Attention[p,k] · Value[k,d]`,
		Steps: r.steps,
	}, nil
}

func runMultiHead(opts Options) (*Result, error) {
	var r recorder

	tok := opts.tokenizer()
	emb, err := embed(tok, multiHeadSentence)
	if err != nil {
		return nil, err
	}
	r.record("Embedded sequence", fmt.Sprintf("X[p,e] for %q, tokenized by %s.", multiHeadSentence, tok.Name()), emb.x, 3)

	shape := tensor.Shape{numHeads, embedDim, headDim}
	wq := patterned("WQ", []string{"h", "e", "d"}, shape, 0.9)
	wk := patterned("WK", []string{"h", "e", "d"}, shape, 1.4)
	wv := patterned("WV", []string{"h", "e", "d"}, shape, 2.3)
	wo := patterned("WO", []string{"h", "d", "e"}, tensor.Shape{numHeads, headDim, embedDim}, 0.6)

	query := einsum.MustEinsum("pe,hed->hpd", emb.x, wq).Renamed("Query")
	key := einsum.MustEinsum("pe,hed->hpd", emb.x, wk).Renamed("Key")
	value := einsum.MustEinsum("pe,hed->hpd", emb.x, wv).Renamed("Value")
	r.record("Per-head queries", `Query[h,p,d] = Σ_e X[p,e] · WQ[h,e,d]

The head index h is just another free index: every head gets its own
projection from one equation.`, query, 3)

	scores := tensor.Scale(einsum.MustEinsum("hpd,hkd->hpk", query, key), 1/math.Sqrt(headDim)).Renamed("Scores")
	weights, err := tensor.Softmax(scores, "k")
	if err != nil {
		return nil, err
	}
	weights = weights.Renamed("Attention")
	r.record("Per-head attention", `Attention[h,p,k] = softmax_k(Σ_d Query[h,p,d] · Key[h,k,d] / √d)

Each head block is its own attention pattern.`, weights, 3)

	heads := einsum.MustEinsum("hpk,hkd->hpd", weights, value).Renamed("Heads")
	r.record("Per-head output", "Heads[h,p,d] = Σ_k Attention[h,p,k] · Value[h,k,d]", heads, 3)

	output := einsum.MustEinsum("hpd,hde->pe", heads, wo).Renamed("Output")
	r.record("Combined output", `Output[p,e] = Σ_h Σ_d Heads[h,p,d] · WO[h,d,e]

Concatenating the heads and projecting back is one contraction over both h and d.`, output, 3)

	return &Result{
		Title: "Multi-Head Attention",
		Description: fmt.Sprintf(`Multi-head attention runs %d attention patterns side by side.

Adding a head index h to the weight tensors is all it takes: the same
equations as single-head attention, with h carried as a free index until the
final projection sums it away.`, numHeads),
		Code: strings.Join([]string{
			"Query[h,p,d]     = Σ_e X[p,e] · WQ[h,e,d]",
			"Attention[h,p,k] = softmax_k(Σ_d Query[h,p,d] · Key[h,k,d] / √d)",
			"Heads[h,p,d]     = Σ_k Attention[h,p,k] · Value[h,k,d]",
			"Output[p,e]      = Σ_h Σ_d Heads[h,p,d] · WO[h,d,e]",
		}, "\n"),
		Steps: r.steps,
	}, nil
}
