package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tensor-logic/tensorlogic/internal/serialization"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// ErrUnsupportedFormat reports a file extension with no decoder.
var ErrUnsupportedFormat = errors.New("unsupported tensor file format")

// Format identifies a tensor file encoding.
type Format string

// Supported formats.
const (
	FormatJSON        Format = "json"
	FormatSafeTensors Format = "safetensors"
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".safetensors":
		return FormatSafeTensors, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// Open reads every tensor in the file at path, in file order. A "#name"
// suffix selects the one tensor with that name ("weights.safetensors#W").
func Open(path string) ([]*tensor.Tensor, error) {
	file, name := splitSelector(path)
	tensors, err := openFile(file)
	if err != nil || name == "" {
		return tensors, err
	}
	t, err := serialization.Find(tensors, name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}
	return []*tensor.Tensor{t}, nil
}

func splitSelector(path string) (file, name string) {
	i := strings.LastIndexByte(path, '#')
	if i < 0 {
		return path, ""
	}
	return path[:i], path[i+1:]
}

func openFile(path string) ([]*tensor.Tensor, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatSafeTensors:
		tensors, _, err := serialization.LoadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		return tensors, nil
	default:
		//nolint:gosec // G304: File path comes from user input, which is expected for loading
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		tensors, err := DecodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		return tensors, nil
	}
}

// OpenAll reads the files in order and concatenates their tensors.
func OpenAll(paths ...string) ([]*tensor.Tensor, error) {
	var all []*tensor.Tensor
	for _, p := range paths {
		tensors, err := Open(p)
		if err != nil {
			return nil, err
		}
		all = append(all, tensors...)
	}
	return all, nil
}
