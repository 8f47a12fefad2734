package command

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensor-logic/tensorlogic/internal/export"
	"github.com/tensor-logic/tensorlogic/internal/serialization"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Workers = 4
	return cfg
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf, "v1.2.3")
	assert.Equal(t, "tensorlogic v1.2.3\n", buf.String())
}

func TestListExamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListExamples(&buf, &ListArguments{Category: "probabilistic", NoTable: true}))
	assert.Equal(t, "bayesian\tprobabilistic\tBayesian Network\nhmm\tprobabilistic\tHidden Markov Model\n", buf.String())

	buf.Reset()
	require.NoError(t, ListExamples(&buf, &ListArguments{}))
	assert.Contains(t, buf.String(), "Graph Neural Network")
	assert.Contains(t, buf.String(), "9 Demos")

	assert.Error(t, ListExamples(&buf, &ListArguments{Category: "quantum"}))
}

func TestListExamples_GroupedByCategory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ListExamples(&buf, &ListArguments{NoTable: true}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 9)
	rank := map[string]int{"symbolic": 0, "neural": 1, "probabilistic": 2, "hybrid": 3}
	prev := 0
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 3)
		assert.GreaterOrEqual(t, rank[fields[1]], prev, line)
		prev = rank[fields[1]]
	}
}

func TestRunExamples(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RunExamples(&buf, testConfig(), &RunArguments{IDs: []string{"gnn", "logic"}}))

	out := buf.String()
	gnn := strings.Index(out, "[gnn, neural]")
	logic := strings.Index(out, "[logic, symbolic]")
	require.GreaterOrEqual(t, gnn, 0)
	assert.Greater(t, logic, gnn, "output follows the requested order")
	assert.Contains(t, out, "Step 4: Message Aggregation")
	assert.Contains(t, out, "  [2.00, 1.40, 1.00]")

	err := RunExamples(&buf, testConfig(), &RunArguments{IDs: []string{"nope"}})
	assert.ErrorContains(t, err, `unknown demo "nope"`)
}

func TestRunExamples_ParallelMatchesSequential(t *testing.T) {
	seq := testConfig()
	seq.Parallel = false

	var a, b bytes.Buffer
	require.NoError(t, RunExamples(&a, testConfig(), &RunArguments{All: true}))
	require.NoError(t, RunExamples(&b, seq, &RunArguments{All: true}))
	assert.Equal(t, b.String(), a.String())
}

func TestRunExamples_UnknownTokenizer(t *testing.T) {
	cfg := testConfig()
	cfg.Tokenizer = "nope"
	err := RunExamples(&bytes.Buffer{}, cfg, &RunArguments{IDs: []string{"transformer"}})
	assert.Error(t, err)
}

func TestEvaluateEinsum(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	require.NoError(t, os.WriteFile(a, []byte(`{"name": "A", "indices": ["i", "j"], "rows": [[1, 2, 3], [4, 5, 6]]}`), 0o600))
	require.NoError(t, os.WriteFile(b, []byte(`{"name": "B", "indices": ["j", "k"], "rows": [[7, 8], [9, 10], [11, 12]]}`), 0o600))
	out := filepath.Join(dir, "c.safetensors")

	cfg := testConfig()
	cfg.Precision = 0

	var buf bytes.Buffer
	require.NoError(t, EvaluateEinsum(&buf, cfg, &EinsumArguments{
		Equation: "ij,jk->ik",
		Files:    []string{a, b},
		Output:   out,
		Plan:     true,
	}))
	assert.Contains(t, buf.String(), "Summed:   j\n")
	assert.Contains(t, buf.String(), "Cost:     24\n")
	assert.Contains(t, buf.String(), "einsum(ij,jk->ik)[i=2, k=2]\n[ 58,  64]\n[139, 154]\n")

	saved, meta, err := serialization.LoadFile(out)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, []float64{58, 64, 139, 154}, saved[0].Data())
	assert.Equal(t, "ij,jk->ik", meta["equation"])

	err = EvaluateEinsum(&buf, cfg, &EinsumArguments{Equation: "ij,jk->ik", Files: []string{a}})
	assert.Error(t, err)
	err = EvaluateEinsum(&buf, cfg, &EinsumArguments{Equation: "ij->ji", Files: []string{filepath.Join(dir, "x.json")}})
	assert.Error(t, err)
}

func TestExportExamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demos.msgpack")
	require.NoError(t, ExportExamples(&bytes.Buffer{}, testConfig(), &ExportArguments{
		IDs:    []string{"hmm", "kernel"},
		Format: "msgpack",
		Output: path,
	}))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	docs, err := export.Decode(file, export.MsgPack)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "hmm", docs[0].ID)
	assert.Equal(t, "kernel", docs[1].ID)

	var buf bytes.Buffer
	require.NoError(t, ExportExamples(&buf, testConfig(), &ExportArguments{IDs: []string{"logic"}, Output: "-"}))
	assert.True(t, strings.HasPrefix(buf.String(), "[\n"), "config default format is json")

	err = ExportExamples(&buf, testConfig(), &ExportArguments{All: true, Format: "xml"})
	assert.ErrorIs(t, err, export.ErrUnknownFormat)
}

func TestExportExamples_AddsExtension(t *testing.T) {
	base := filepath.Join(t.TempDir(), "demos")
	require.NoError(t, ExportExamples(&bytes.Buffer{}, testConfig(), &ExportArguments{
		IDs:    []string{"kernel"},
		Format: "yml",
		Output: base,
	}))

	_, err := os.Stat(base + ".yaml")
	assert.NoError(t, err)
	_, err = os.Stat(base)
	assert.True(t, os.IsNotExist(err))
}

func TestShowExport(t *testing.T) {
	dir := t.TempDir()
	var run bytes.Buffer
	require.NoError(t, RunExamples(&run, testConfig(), &RunArguments{IDs: []string{"gnn", "bayesian"}}))

	for _, format := range []string{"json", "yaml", "msgpack"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "demos."+format)
			require.NoError(t, ExportExamples(&bytes.Buffer{}, testConfig(), &ExportArguments{
				IDs:    []string{"gnn", "bayesian"},
				Format: format,
				Output: path,
			}))

			var shown bytes.Buffer
			require.NoError(t, ShowExport(&shown, &ShowArguments{File: path}))
			assert.Equal(t, run.String(), shown.String())
		})
	}

	err := ShowExport(&bytes.Buffer{}, &ShowArguments{File: filepath.Join(dir, "demos.csv")})
	assert.ErrorIs(t, err, export.ErrUnknownFormat)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`[{"id": "x", "steps": [{"tensor": {"name": "T", "indices": ["i"], "shape": [2], "data": [1]}}]}]`), 0o600))
	err = ShowExport(&bytes.Buffer{}, &ShowArguments{File: broken})
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch)
}

func TestSaveExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logic.safetensors")

	var buf bytes.Buffer
	require.NoError(t, SaveExample(&buf, testConfig(), &SaveArguments{ID: "logic", Output: path}))
	assert.Contains(t, buf.String(), "Saved ")

	tensors, meta, err := serialization.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "logic", meta["example"])
	require.NotEmpty(t, tensors)
	assert.Equal(t, "01.Parent", tensors[0].Name())
	assert.Equal(t, []string{"x", "y"}, tensors[0].Indices())
}
