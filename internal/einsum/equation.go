package einsum

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

const arrow = "->"

// Equation is a parsed einsum specification.
//
// Tokens are local to the equation: the i-th token of an operand spec binds to
// the i-th axis of that operand, whatever label the tensor itself uses.
type Equation struct {
	Operands [][]string // One token list per operand
	Output   []string   // Token list of the result (empty for a scalar)
	Implicit bool       // Output derived by the Einstein convention (no "->")
}

// Parse turns an equation such as "ij,jk->ik" into an Equation.
//
// Grammar:
//   - "spec1,spec2,...->out" names the output explicitly; an empty right side
//     means a scalar result.
//   - "spec1,spec2,..." without an arrow keeps every token that occurs exactly
//     once across all operand specs, in order of first appearance.
//   - Inside a spec containing interior whitespace, tokens are the whitespace-separated
//     identifiers ("v u", "d d_out"). Otherwise a token is a letter, followed by
//     any digits, optionally extended by "_" and identifier characters, so
//     "dd_out" is d, d_out and "x1y2" is x1, y2.
//
// Errors wrap tensor.ErrMalformedEquation. An output token that does not
// appear on the left side additionally wraps tensor.ErrUnknownIndex.
func Parse(equation string) (*Equation, error) {
	if strings.TrimSpace(equation) == "" {
		return nil, fmt.Errorf("%w: empty equation", tensor.ErrMalformedEquation)
	}

	lhs, rhs, explicit := strings.Cut(equation, arrow)
	if explicit && strings.Contains(rhs, arrow) {
		return nil, fmt.Errorf("%w: %q has more than one %q", tensor.ErrMalformedEquation, equation, arrow)
	}
	if strings.TrimSpace(lhs) == "" {
		return nil, fmt.Errorf("%w: %q has no operand specs", tensor.ErrMalformedEquation, equation)
	}

	specs := strings.Split(lhs, ",")
	eq := &Equation{Operands: make([][]string, len(specs))}
	for i, spec := range specs {
		if strings.TrimSpace(spec) == "" {
			return nil, fmt.Errorf("%w: %q: operand %d has an empty spec", tensor.ErrMalformedEquation, equation, i)
		}
		tokens, err := lexSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: operand %d: %v", tensor.ErrMalformedEquation, equation, i, err)
		}
		eq.Operands[i] = tokens
	}

	if !explicit {
		eq.Output = implicitOutput(eq.Operands)
		eq.Implicit = true
		return eq, nil
	}

	out, err := lexSpec(rhs)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: output: %v", tensor.ErrMalformedEquation, equation, err)
	}
	if err := validateOutput(out, eq.Operands); err != nil {
		return nil, fmt.Errorf("%q: %w", equation, err)
	}
	eq.Output = out
	return eq, nil
}

// MustParse is like Parse but panics on error.
func MustParse(equation string) *Equation {
	eq, err := Parse(equation)
	if err != nil {
		panic(err)
	}
	return eq
}

// lexSpec splits one operand (or output) spec into tokens.
func lexSpec(spec string) ([]string, error) {
	spec = strings.TrimSpace(spec)
	if strings.IndexFunc(spec, unicode.IsSpace) >= 0 {
		fields := strings.Fields(spec)
		for _, f := range fields {
			if !isIdentifier(f) {
				return nil, fmt.Errorf("invalid index label %q", f)
			}
		}
		return fields, nil
	}

	runes := []rune(spec)
	tokens := []string{}
	for i := 0; i < len(runes); {
		if !unicode.IsLetter(runes[i]) {
			return nil, fmt.Errorf("unexpected character %q at position %d", runes[i], i)
		}
		j := i + 1
		for j < len(runes) && unicode.IsDigit(runes[j]) {
			j++
		}
		if j < len(runes) && runes[j] == '_' {
			for j < len(runes) && isIdentRune(runes[j]) {
				j++
			}
		}
		tokens = append(tokens, string(runes[i:j]))
		i = j
	}
	return tokens, nil
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isIdentifier(s string) bool {
	for i, r := range s {
		if !isIdentRune(r) || (i == 0 && !unicode.IsLetter(r)) {
			return false
		}
	}
	return s != ""
}

// implicitOutput returns the tokens occurring exactly once, in first-appearance order.
func implicitOutput(operands [][]string) []string {
	counts := make(map[string]int)
	var order []string
	for _, spec := range operands {
		for _, tok := range spec {
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}

	out := []string{}
	for _, tok := range order {
		if counts[tok] == 1 {
			out = append(out, tok)
		}
	}
	return out
}

func validateOutput(out []string, operands [][]string) error {
	known := make(map[string]bool)
	for _, spec := range operands {
		for _, tok := range spec {
			known[tok] = true
		}
	}

	seen := make(map[string]bool, len(out))
	for _, tok := range out {
		if !known[tok] {
			return fmt.Errorf("%w: %w: output index %q does not appear in any operand",
				tensor.ErrMalformedEquation, tensor.ErrUnknownIndex, tok)
		}
		if seen[tok] {
			return fmt.Errorf("%w: output index %q repeated", tensor.ErrMalformedEquation, tok)
		}
		seen[tok] = true
	}
	return nil
}

// Tokens returns every distinct token in order of first appearance on the left side.
func (e *Equation) Tokens() []string {
	seen := make(map[string]bool)
	var tokens []string
	for _, spec := range e.Operands {
		for _, tok := range spec {
			if !seen[tok] {
				seen[tok] = true
				tokens = append(tokens, tok)
			}
		}
	}
	return tokens
}

// String renders the equation in explicit form, e.g. "vu,ud->vd".
// Specs holding multi-character tokens are written space-separated.
func (e *Equation) String() string {
	specs := make([]string, len(e.Operands))
	for i, spec := range e.Operands {
		specs[i] = joinSpec(spec)
	}
	return strings.Join(specs, ",") + arrow + joinSpec(e.Output)
}

func joinSpec(tokens []string) string {
	for _, tok := range tokens {
		if len([]rune(tok)) > 1 {
			return strings.Join(tokens, " ")
		}
	}
	return strings.Join(tokens, "")
}
