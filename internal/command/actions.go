package command

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tensor-logic/tensorlogic/internal/einsum"
	"github.com/tensor-logic/tensorlogic/internal/examples"
	"github.com/tensor-logic/tensorlogic/internal/export"
	"github.com/tensor-logic/tensorlogic/internal/loader"
	"github.com/tensor-logic/tensorlogic/internal/parallel"
	"github.com/tensor-logic/tensorlogic/internal/serialization"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
	"github.com/tensor-logic/tensorlogic/internal/tokenizer"
)

// PrintVersion prints the application version.
func PrintVersion(w io.Writer, appVersion string) {
	if appVersion == "" {
		appVersion = "dev"
	}
	fmt.Fprintf(w, "tensorlogic %s\n", appVersion)
}

// ListExamples prints the registered demos grouped by category.
func ListExamples(w io.Writer, args *ListArguments) error {
	groups := examples.ByCategory()
	var selected []examples.Example
	for _, c := range examples.Categories {
		if args.Category == "" || string(c) == args.Category {
			selected = append(selected, groups[c]...)
		}
	}
	if len(selected) == 0 {
		return errors.Errorf("no demos in category %q", args.Category)
	}

	if args.NoTable {
		for _, e := range selected {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Category, e.Name)
		}
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Id", "Name", "Category"})
	table.SetCaption(true, fmt.Sprintf("%d Demos", len(selected)))
	table.SetBorder(false)
	for _, e := range selected {
		table.Append([]string{e.ID, e.Name, e.Category.Title()})
	}
	table.Render()
	return nil
}

// RunExamples runs the selected demos and prints every step in registry order.
func RunExamples(w io.Writer, cfg Config, args *RunArguments) error {
	selected, err := selectExamples(args.IDs, args.All)
	if err != nil {
		return err
	}
	results, err := runExamples(cfg, selected)
	if err != nil {
		return err
	}
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeDocument(w, export.FromResult(selected[i], res)); err != nil {
			return err
		}
	}
	return nil
}

// EvaluateEinsum loads the operand files, evaluates the equation and prints the result.
func EvaluateEinsum(w io.Writer, cfg Config, args *EinsumArguments) error {
	operands, err := loader.OpenAll(args.Files...)
	if err != nil {
		return errors.Wrap(err, "Could not load operands")
	}
	logrus.Debugf("Loaded %d operand(s) from %d file(s)", len(operands), len(args.Files))

	eq, err := einsum.Parse(args.Equation)
	if err != nil {
		return errors.Wrapf(err, "Parsing %q", args.Equation)
	}
	plan, err := einsum.NewPlan(eq, operands...)
	if err != nil {
		return errors.Wrapf(err, "Binding %q", eq)
	}
	logrus.Debugf("Plan for %s: free %v, summed %v, cost %d", eq, plan.FreeIndices(), plan.SummedIndices(), plan.Cost())

	name := args.Name
	if name == "" {
		name = fmt.Sprintf("einsum(%s)", eq)
	}
	result := plan.Execute(name)

	if args.Plan {
		fmt.Fprintf(w, "Equation: %s\n", eq)
		fmt.Fprintf(w, "Free:     %s\n", strings.Join(plan.FreeIndices(), " "))
		fmt.Fprintf(w, "Summed:   %s\n", strings.Join(plan.SummedIndices(), " "))
		fmt.Fprintf(w, "Cost:     %d\n\n", plan.Cost())
	}
	fmt.Fprintf(w, "%s\n%s\n", result, tensor.ToString(result, cfg.Precision))

	if args.Output != "" {
		if err := serialization.SaveFile(args.Output, []*tensor.Tensor{result}, map[string]string{"equation": eq.String()}); err != nil {
			return errors.Wrapf(err, "Writing %s", args.Output)
		}
		logrus.Debugf("Wrote %s", args.Output)
	}
	return nil
}

// ExportExamples runs the selected demos and writes them as one document array.
func ExportExamples(w io.Writer, cfg Config, args *ExportArguments) error {
	name := args.Format
	if name == "" {
		name = cfg.Format
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	selected, err := selectExamples(args.IDs, args.All)
	if err != nil {
		return err
	}
	results, err := runExamples(cfg, selected)
	if err != nil {
		return err
	}
	docs := make([]export.Document, len(results))
	for i, res := range results {
		docs[i] = export.FromResult(selected[i], res)
	}

	if args.Output == "" || args.Output == "-" {
		return export.Encode(w, format, docs)
	}
	output := args.Output
	if filepath.Ext(output) == "" {
		output += "." + format.Extension()
	}
	//nolint:gosec // G304: Output path comes from the command line.
	file, err := os.Create(output)
	if err != nil {
		return errors.Wrap(err, "Could not create output file")
	}
	if err := export.Encode(file, format, docs); err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "Writing %s", output)
	}
	logrus.Debugf("Exported %d demo(s) as %s to %s", len(docs), format, output)
	return file.Close()
}

// ShowExport prints the demo runs stored in an exported file. The format
// follows the file extension.
func ShowExport(w io.Writer, args *ShowArguments) error {
	format, err := export.ParseFormat(strings.TrimPrefix(filepath.Ext(args.File), "."))
	if err != nil {
		return err
	}
	//nolint:gosec // G304: File path comes from the command line.
	file, err := os.Open(args.File)
	if err != nil {
		return errors.Wrap(err, "Could not open export file")
	}
	defer func() {
		_ = file.Close()
	}()

	docs, err := export.Decode(file, format)
	if err != nil {
		return errors.Wrapf(err, "Reading %s", args.File)
	}
	logrus.Debugf("Read %d demo(s) from %s", len(docs), args.File)
	for i, doc := range docs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := writeDocument(w, doc); err != nil {
			return errors.Wrapf(err, "Demo %s", doc.ID)
		}
	}
	return nil
}

// SaveExample runs one demo and stores every step tensor in a SafeTensors file.
// Tensors are named "<step>.<tensor name>" so repeated names stay distinct.
func SaveExample(w io.Writer, cfg Config, args *SaveArguments) error {
	selected, err := selectExamples([]string{args.ID}, false)
	if err != nil {
		return err
	}
	results, err := runExamples(cfg, selected)
	if err != nil {
		return err
	}

	res := results[0]
	tensors := make([]*tensor.Tensor, len(res.Steps))
	for i, s := range res.Steps {
		tensors[i] = s.Tensor.Renamed(fmt.Sprintf("%02d.%s", i+1, s.Tensor.Name()))
	}
	meta := map[string]string{"example": args.ID, "title": res.Title}
	if err := serialization.SaveFile(args.Output, tensors, meta); err != nil {
		return errors.Wrapf(err, "Writing %s", args.Output)
	}
	fmt.Fprintf(w, "Saved %d tensors to %s\n", len(tensors), args.Output)
	return nil
}

func selectExamples(ids []string, all bool) ([]examples.Example, error) {
	if all {
		return examples.All(), nil
	}
	selected := make([]examples.Example, 0, len(ids))
	for _, id := range ids {
		e, ok := examples.Lookup(id)
		if !ok {
			return nil, errors.Errorf("unknown demo %q (known: %s)", id, strings.Join(examples.IDs(), ", "))
		}
		selected = append(selected, e)
	}
	return selected, nil
}

// runExamples runs demos on the worker pool and returns results in input order.
func runExamples(cfg Config, selected []examples.Example) ([]*examples.Result, error) {
	tok, err := tokenizer.New(cfg.Tokenizer)
	if err != nil {
		return nil, errors.Wrap(err, "Could not create tokenizer")
	}
	opts := examples.Options{Tokenizer: tok}

	pool := parallel.Config{
		Enabled:      cfg.Parallel,
		NumWorkers:   cfg.Workers,
		MinChunkSize: 1,
	}
	return parallel.Map(len(selected), func(i int) (*examples.Result, error) {
		start := time.Now()
		res, err := selected[i].Run(opts)
		logrus.Debugf("Ran %s in %s", selected[i].ID, time.Since(start))
		return res, err
	}, pool)
}

// writeDocument prints one demo run; step tensors are rebuilt and validated.
func writeDocument(w io.Writer, doc export.Document) error {
	fmt.Fprintf(w, "== %s [%s, %s] ==\n\n", doc.Title, doc.ID, doc.Category)
	fmt.Fprintf(w, "%s\n\n", doc.Description)
	fmt.Fprintf(w, "Code:\n%s\n", indent(doc.Code, "  "))
	for i, s := range doc.Steps {
		t, err := s.Tensor.Tensor()
		if err != nil {
			return errors.Wrapf(err, "Step %d", i+1)
		}
		fmt.Fprintf(w, "\nStep %d: %s\n", i+1, s.Name)
		fmt.Fprintf(w, "%s\n\n", s.Explanation)
		fmt.Fprintf(w, "%s\n%s\n", t, indent(s.TensorString, "  "))
	}
	return nil
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
