package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensor-logic/tensorlogic/internal/serialization"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		tName   string
		indices []string
		shape   tensor.Shape
		data    []float64
	}{
		{
			name:    "rows",
			doc:     `{"name": "A", "indices": ["v", "u"], "rows": [[0, 1], [1, 0.5]]}`,
			tName:   "A",
			indices: []string{"v", "u"},
			shape:   tensor.Shape{2, 2},
			data:    []float64{0, 1, 1, 0.5},
		},
		{
			name:    "shape and data",
			doc:     `{"name": "H", "indices": ["b", "i", "j"], "shape": [2, 1, 2], "data": [1, 2, 3, -4e-1]}`,
			tName:   "H",
			indices: []string{"b", "i", "j"},
			shape:   tensor.Shape{2, 1, 2},
			data:    []float64{1, 2, 3, -0.4},
		},
		{
			name:    "vector without shape",
			doc:     `{"name": "x", "indices": ["i"], "data": [1, 2, 3]}`,
			tName:   "x",
			indices: []string{"i"},
			shape:   tensor.Shape{3},
			data:    []float64{1, 2, 3},
		},
		{
			name:    "scalar",
			doc:     `{"name": "s", "indices": [], "data": [2.5]}`,
			tName:   "s",
			indices: []string{},
			shape:   tensor.Shape{},
			data:    []float64{2.5},
		},
		{
			name:    "unnamed",
			doc:     `{"indices": ["i"], "data": [7]}`,
			tName:   "T0",
			indices: []string{"i"},
			shape:   tensor.Shape{1},
			data:    []float64{7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := DecodeJSON([]byte(tt.doc))
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tt.tName, out[0].Name())
			assert.Equal(t, tt.indices, out[0].Indices())
			assert.Equal(t, tt.shape, out[0].Shape())
			assert.Equal(t, tt.data, out[0].Data())
		})
	}
}

func TestDecodeJSONArray(t *testing.T) {
	out, err := DecodeJSON([]byte(`[
		{"name": "A", "indices": ["i", "j"], "rows": [[1, 2], [3, 4]]},
		{"indices": ["j"], "data": [1, 1]}
	]`))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].Name())
	assert.Equal(t, "T1", out[1].Name())
}

func TestDecodeJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"not json", `{`, ErrInvalidDocument},
		{"top-level number", `42`, ErrInvalidDocument},
		{"empty array", `[]`, ErrInvalidDocument},
		{"array of numbers", `[1, 2]`, ErrInvalidDocument},
		{"missing indices", `{"name": "x", "data": [1]}`, ErrInvalidDocument},
		{"index not a string", `{"indices": [1], "data": [1]}`, ErrInvalidDocument},
		{"missing data", `{"indices": ["i"]}`, ErrInvalidDocument},
		{"string in data", `{"indices": ["i"], "data": ["a"]}`, ErrInvalidDocument},
		{"matrix needs shape", `{"indices": ["i", "j"], "data": [1, 2]}`, ErrInvalidDocument},
		{"fractional shape", `{"indices": ["i"], "shape": [1.5], "data": [1]}`, ErrInvalidDocument},
		{"shape overflows", `{"indices": ["i", "j"], "shape": [4294967296, 4294967296], "data": [1]}`, tensor.ErrShapeMismatch},
		{"data length", `{"indices": ["i", "j"], "shape": [2, 2], "data": [1, 2, 3]}`, tensor.ErrShapeMismatch},
		{"ragged rows", `{"indices": ["i", "j"], "rows": [[1, 2], [3]]}`, tensor.ErrShapeMismatch},
		{"duplicate labels", `{"indices": ["i", "i"], "rows": [[1]]}`, tensor.ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := DecodeJSON([]byte(tt.doc))
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name": "A", "indices": ["i"], "data": [1, 2]}`), 0o600))

	b, err := tensor.FromVector("B", "j", []float64{3, 4, 5})
	require.NoError(t, err)
	stPath := filepath.Join(dir, "b.safetensors")
	require.NoError(t, serialization.SaveFile(stPath, []*tensor.Tensor{b}, nil))

	all, err := OpenAll(jsonPath, stPath)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "A", all[0].Name())
	assert.Equal(t, []float64{3, 4, 5}, all[1].Data())

	picked, err := OpenAll(jsonPath, stPath+"#B")
	require.NoError(t, err)
	require.Len(t, picked, 2)
	assert.Equal(t, "B", picked[1].Name())

	_, err = Open(stPath + "#Missing")
	assert.ErrorIs(t, err, serialization.ErrTensorNotFound)

	_, err = Open(filepath.Join(dir, "c.csv"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Open(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	f, err := DetectFormat("model.SafeTensors")
	require.NoError(t, err)
	assert.Equal(t, FormatSafeTensors, f)

	f, err = DetectFormat("dir/x.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)
}
