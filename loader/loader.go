// Package loader reads labelled tensors from files.
//
// This package wraps internal loader implementations and exports a clean public API
// for loading tensors from JSON documents and SafeTensors files.
//
// Example usage:
//
//	import (
//	    "github.com/tensor-logic/tensorlogic/loader"
//	    "github.com/tensor-logic/tensorlogic/tensor"
//	)
//
//	operands, err := loader.Open("graph.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	messages, err := tensor.Einsum("vu,ud->vd", operands...)
package loader

import (
	"github.com/tensor-logic/tensorlogic/internal/loader"
	"github.com/tensor-logic/tensorlogic/internal/serialization"
	"github.com/tensor-logic/tensorlogic/tensor"
)

// Format identifies a tensor file encoding.
type Format = loader.Format

// Supported formats.
const (
	FormatJSON        Format = loader.FormatJSON
	FormatSafeTensors Format = loader.FormatSafeTensors
)

// Errors.
var (
	ErrInvalidDocument   = loader.ErrInvalidDocument
	ErrUnsupportedFormat = loader.ErrUnsupportedFormat
)

// Open reads every tensor in a .json or .safetensors file, in file order.
// A "#name" suffix on path selects a single tensor.
func Open(path string) ([]*tensor.Tensor, error) {
	return loader.Open(path)
}

// DecodeJSON decodes a tensor document or an array of documents.
func DecodeJSON(data []byte) ([]*tensor.Tensor, error) {
	return loader.DecodeJSON(data)
}

// Save writes tensors to a SafeTensors file; index labels are kept in the
// file metadata so Open restores them.
func Save(path string, tensors []*tensor.Tensor, metadata map[string]string) error {
	return serialization.SaveFile(path, tensors, metadata)
}
