package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArguments_Global(t *testing.T) {
	args, err := ParseArguments([]string{"app", "version"}, "")
	require.NoError(t, err)
	assert.NotNil(t, args.Version)
	assert.False(t, args.Debug)
	assert.Nil(t, args.Precision)
	assert.Nil(t, args.Workers)
	assert.Empty(t, args.ConfigFile)
}

func TestParseArguments_GlobalOverride(t *testing.T) {
	args, err := ParseArguments([]string{"app", "--config", "tl.yaml", "--debug", "--precision", "3",
		"--workers", "2", "--no-parallel", "--tokenizer", "cl100k_base", "version"}, "")
	require.NoError(t, err)
	assert.Equal(t, "tl.yaml", args.ConfigFile)
	assert.True(t, args.Debug)
	require.NotNil(t, args.Precision)
	assert.Equal(t, 3, *args.Precision)
	require.NotNil(t, args.Workers)
	assert.Equal(t, 2, *args.Workers)

	cfg := args.Apply(DefaultConfig())
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, 2, cfg.Workers)
	assert.False(t, cfg.Parallel)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "cl100k_base", cfg.Tokenizer)
}

func TestParseArguments_List(t *testing.T) {
	args, err := ParseArguments([]string{"app", "list", "--category", "neural", "--noTable"}, "")
	require.NoError(t, err)
	require.NotNil(t, args.List)
	assert.Equal(t, "neural", args.List.Category)
	assert.True(t, args.List.NoTable)
}

func TestParseArguments_Run(t *testing.T) {
	args, err := ParseArguments([]string{"app", "run", "gnn", "hmm"}, "")
	require.NoError(t, err)
	require.NotNil(t, args.Run)
	assert.Equal(t, []string{"gnn", "hmm"}, args.Run.IDs)
	assert.False(t, args.Run.All)

	args, err = ParseArguments([]string{"app", "run", "--all"}, "")
	require.NoError(t, err)
	assert.True(t, args.Run.All)

	_, err = ParseArguments([]string{"app", "run"}, "")
	assert.Equal(t, ErrMissingArgument, err)
}

func TestParseArguments_Einsum(t *testing.T) {
	args, err := ParseArguments([]string{"app", "einsum", "--name", "C", "--plan", "ij,jk->ik", "a.json", "b.json"}, "")
	require.NoError(t, err)
	require.NotNil(t, args.Einsum)
	assert.Equal(t, "ij,jk->ik", args.Einsum.Equation)
	assert.Equal(t, []string{"a.json", "b.json"}, args.Einsum.Files)
	assert.Equal(t, "C", args.Einsum.Name)
	assert.True(t, args.Einsum.Plan)

	_, err = ParseArguments([]string{"app", "einsum", "ij->ji"}, "")
	assert.Equal(t, ErrMissingArgument, err)
}

func TestParseArguments_Export(t *testing.T) {
	args, err := ParseArguments([]string{"app", "export", "--format", "yaml"}, "")
	require.NoError(t, err)
	require.NotNil(t, args.Export)
	assert.True(t, args.Export.All, "no ids exports everything")
	assert.Equal(t, "yaml", args.Export.Format)
	assert.Equal(t, "-", args.Export.Output)

	args, err = ParseArguments([]string{"app", "export", "-o", "out.json", "logic"}, "")
	require.NoError(t, err)
	assert.False(t, args.Export.All)
	assert.Equal(t, []string{"logic"}, args.Export.IDs)
	assert.Equal(t, "out.json", args.Export.Output)
}

func TestParseArguments_Save(t *testing.T) {
	args, err := ParseArguments([]string{"app", "save", "gnn"}, "")
	require.NoError(t, err)
	require.NotNil(t, args.Save)
	assert.Equal(t, "gnn", args.Save.ID)
	assert.Equal(t, "gnn.safetensors", args.Save.Output)

	_, err = ParseArguments([]string{"app", "save"}, "")
	assert.Equal(t, ErrMissingArgument, err)
}

func TestApply_Clamps(t *testing.T) {
	p, w := -2, 0
	args := &Arguments{Precision: &p, Workers: &w}
	cfg := args.Apply(DefaultConfig())
	assert.Equal(t, 0, cfg.Precision)
	assert.Equal(t, 1, cfg.Workers)
}

func TestParseArguments_Show(t *testing.T) {
	args, err := ParseArguments([]string{"app", "show", "demos.yaml"}, "")
	require.NoError(t, err)
	require.NotNil(t, args.Show)
	assert.Equal(t, "demos.yaml", args.Show.File)

	_, err = ParseArguments([]string{"app", "show"}, "")
	assert.Equal(t, ErrMissingArgument, err)
}
