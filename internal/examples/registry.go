// Package examples holds the paradigm demos: symbolic, neural, probabilistic
// and hybrid models each written as a short chain of einsum equations.
//
// Every demo returns a Result whose steps record the intermediate tensors in
// the order they were computed, ready to be printed or exported.
package examples

import (
	"fmt"
	"sort"

	"github.com/tensor-logic/tensorlogic/internal/tensor"
	"github.com/tensor-logic/tensorlogic/internal/tokenizer"
)

// Category groups demos by AI paradigm.
type Category string

// Demo categories.
const (
	Symbolic      Category = "symbolic"
	Neural        Category = "neural"
	Probabilistic Category = "probabilistic"
	Hybrid        Category = "hybrid"
)

// Categories lists the categories in display order.
var Categories = []Category{Symbolic, Neural, Probabilistic, Hybrid}

// Title returns the human-readable category heading.
func (c Category) Title() string {
	switch c {
	case Symbolic:
		return "Symbolic AI"
	case Neural:
		return "Neural Networks"
	case Probabilistic:
		return "Probabilistic Models"
	case Hybrid:
		return "Hybrid Methods"
	default:
		return string(c)
	}
}

// Step is one recorded intermediate tensor.
type Step struct {
	Name         string
	Explanation  string
	Tensor       *tensor.Tensor
	TensorString string
}

// Result is the output of a demo run.
type Result struct {
	Title       string
	Description string
	Code        string
	Steps       []Step
}

// Options configures demo runs.
type Options struct {
	// Tokenizer splits the attention demos' sentences. Nil selects the
	// word-level tokenizer over tokenizer.DefaultVocabulary.
	Tokenizer tokenizer.Tokenizer
}

func (o Options) tokenizer() tokenizer.Tokenizer {
	if o.Tokenizer == nil {
		return tokenizer.NewWord(tokenizer.DefaultVocabulary)
	}
	return o.Tokenizer
}

// Example is a registered demo.
type Example struct {
	ID       string
	Name     string
	Category Category
	run      func(Options) (*Result, error)
}

// Run executes the demo. Demos share no state and may run concurrently.
func (e Example) Run(opts Options) (*Result, error) {
	res, err := e.run(opts)
	if err != nil {
		return nil, fmt.Errorf("example %s: %w", e.ID, err)
	}
	return res, nil
}

var registry = []Example{
	{ID: "logic", Name: "Logic Programming", Category: Symbolic, run: runLogic},
	{ID: "mlp", Name: "Multi-Layer Perceptron", Category: Neural, run: runMLP},
	{ID: "mlp-batch", Name: "MLP Batch Processing (XOR)", Category: Neural, run: runXOR},
	{ID: "transformer", Name: "Transformer (Self-Attention)", Category: Neural, run: runTransformer},
	{ID: "multihead", Name: "Multi-Head Attention", Category: Neural, run: runMultiHead},
	{ID: "gnn", Name: "Graph Neural Network", Category: Neural, run: runGNN},
	{ID: "kernel", Name: "Kernel Machines (SVM)", Category: Hybrid, run: runKernel},
	{ID: "bayesian", Name: "Bayesian Network", Category: Probabilistic, run: runBayesian},
	{ID: "hmm", Name: "Hidden Markov Model", Category: Probabilistic, run: runHMM},
}

// All returns every demo in registry order.
func All() []Example {
	return append([]Example(nil), registry...)
}

// Lookup finds a demo by ID.
func Lookup(id string) (Example, bool) {
	for _, e := range registry {
		if e.ID == id {
			return e, true
		}
	}
	return Example{}, false
}

// ByCategory returns the demos of each category, in registry order.
func ByCategory() map[Category][]Example {
	out := make(map[Category][]Example, len(Categories))
	for _, e := range registry {
		out[e.Category] = append(out[e.Category], e)
	}
	return out
}

// IDs returns the sorted demo IDs.
func IDs() []string {
	ids := make([]string, len(registry))
	for i, e := range registry {
		ids[i] = e.ID
	}
	sort.Strings(ids)
	return ids
}
