package examples

import (
	"fmt"
	"slices"

	"github.com/tensor-logic/tensorlogic/internal/einsum"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// people are the constants of the family domain, in index order.
var people = []string{"Alice", "Bob", "Charlie", "Diana"}

// maxLogicIterations bounds forward chaining; the transitive closure of an
// n-node relation needs at most n rounds.
const maxLogicIterations = 8

// runLogic derives Ancestor from Parent by forward chaining:
//
//	Ancestor(x,y) <- Parent(x,y)
//	Ancestor(x,y) <- Ancestor(x,z), Parent(z,y)
func runLogic(Options) (*Result, error) {
	var r recorder

	parent := mustMatrix("Parent", []string{"x", "y"}, [][]float64{
		{0, 1, 0, 0}, // Alice is Bob's parent
		{0, 0, 1, 0}, // Bob is Charlie's parent
		{0, 0, 0, 1}, // Charlie is Diana's parent
		{0, 0, 0, 0},
	})
	r.record("Facts: Parent relation", `A relation is a Boolean tensor: Parent[x,y] = 1 when x is a parent of y.

Alice -> Bob -> Charlie -> Diana

Rows are x, columns are y, both ordered Alice, Bob, Charlie, Diana.`, parent, 0)

	ancestor := parent.Renamed("Ancestor")
	r.record("Base rule", `Ancestor(x,y) <- Parent(x,y)

Every parent is an ancestor, so Ancestor starts as a copy of Parent.`, ancestor, 0)

	for iter := 1; iter <= maxLogicIterations; iter++ {
		// The join over z is a matrix product; threshold turns counts back into truth values.
		joined := einsum.MustEinsum("xz,zy->xy", ancestor, parent)
		next := tensor.Threshold(mustAdd("sum", parent, joined)).Renamed("Ancestor")

		if slices.Equal(next.Data(), ancestor.Data()) {
			r.record("Fixpoint", fmt.Sprintf(`Iteration %d derives no new facts, so forward chaining stops.

Ancestor now holds the transitive closure of Parent: Alice is an ancestor of
Bob, Charlie and Diana.`, iter), ancestor, 0)
			break
		}
		ancestor = next
		r.record(fmt.Sprintf("Recursive rule, iteration %d", iter), fmt.Sprintf(`Ancestor(x,y) <- Ancestor(x,z), Parent(z,y)

The join over the shared variable z is Einstein summation:
  Ancestor[x,y] = H( Parent[x,y] + Σ_z Ancestor[x,z] · Parent[z,y] )

H is the Heaviside step: any positive count of derivations becomes 1.
After %d iteration(s) chains of length up to %d are known.`, iter, iter+1), ancestor, 0)
	}

	alice := oneHot("Query", "x", len(people), 0)
	descendants := einsum.MustEinsum("x,xy->y", alice, ancestor).Renamed("Descendants")
	r.record("Query: descendants of Alice", `Querying is projection: multiply by a one-hot vector for Alice and sum over x.

  Descendants[y] = Σ_x Query[x] · Ancestor[x,y]

The 1s mark Bob, Charlie and Diana.`, descendants, 0)

	return &Result{
		Title: "Logic Programming: Ancestor from Parent",
		Description: `Datalog rules are tensor equations over Boolean tensors.

A relation R(x,y) is a 0/1 matrix. A rule body that joins two relations on a
shared variable is an Einstein sum over that variable, and the rule head
applies a step function so that the result stays Boolean. Running the rules
to a fixpoint is forward chaining.`,
		Code: `Ancestor[x,y] = Parent[x,y]
Ancestor[x,y] = H(Parent[x,y] + Σ_z Ancestor[x,z] · Parent[z,y])

einsum("xz,zy->xy", Ancestor, Parent)`,
		Steps: r.steps,
	}, nil
}
