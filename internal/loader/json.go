package loader

import (
	"errors"
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// ErrInvalidDocument reports a JSON tensor document that cannot be decoded.
var ErrInvalidDocument = errors.New("invalid tensor document")

// DecodeJSON decodes a tensor document, or an array of documents, in input order.
func DecodeJSON(data []byte) ([]*tensor.Tensor, error) {
	value, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	switch dataType {
	case jsonparser.Object:
		t, err := decodeDocument(value, 0)
		if err != nil {
			return nil, err
		}
		return []*tensor.Tensor{t}, nil

	case jsonparser.Array:
		var (
			tensors []*tensor.Tensor
			first   error
		)
		_, err := jsonparser.ArrayEach(value, func(doc []byte, docType jsonparser.ValueType, _ int, _ error) {
			if first != nil {
				return
			}
			if docType != jsonparser.Object {
				first = fmt.Errorf("%w: element %d is %s, not an object", ErrInvalidDocument, len(tensors), docType)
				return
			}
			t, err := decodeDocument(doc, len(tensors))
			if err != nil {
				first = err
				return
			}
			tensors = append(tensors, t)
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		if first != nil {
			return nil, first
		}
		if len(tensors) == 0 {
			return nil, fmt.Errorf("%w: empty array", ErrInvalidDocument)
		}
		return tensors, nil

	default:
		return nil, fmt.Errorf("%w: top-level %s", ErrInvalidDocument, dataType)
	}
}

// decodeDocument decodes one object; pos names unnamed tensors.
func decodeDocument(doc []byte, pos int) (*tensor.Tensor, error) {
	name, err := jsonparser.GetString(doc, "name")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		name = fmt.Sprintf("T%d", pos)
	} else if err != nil {
		return nil, fmt.Errorf("%w: name: %v", ErrInvalidDocument, err)
	}

	indices, err := stringArray(doc, "indices")
	if err != nil {
		return nil, fmt.Errorf("%w: tensor %q: indices: %v", ErrInvalidDocument, name, err)
	}

	if _, _, _, err := jsonparser.Get(doc, "rows"); err == nil {
		rows, err := matrix(doc, "rows")
		if err != nil {
			return nil, fmt.Errorf("%w: tensor %q: rows: %v", ErrInvalidDocument, name, err)
		}
		return tensor.FromMatrix(name, indices, rows)
	}

	data, err := floatArray(doc, "data")
	if err != nil {
		return nil, fmt.Errorf("%w: tensor %q: data: %v", ErrInvalidDocument, name, err)
	}

	var shape tensor.Shape
	if _, _, _, err := jsonparser.Get(doc, "shape"); err == nil {
		dims, err := floatArray(doc, "shape")
		if err != nil {
			return nil, fmt.Errorf("%w: tensor %q: shape: %v", ErrInvalidDocument, name, err)
		}
		shape = make(tensor.Shape, len(dims))
		for i, d := range dims {
			if d != float64(int(d)) {
				return nil, fmt.Errorf("%w: tensor %q: shape: %v is not an integer", ErrInvalidDocument, name, d)
			}
			shape[i] = int(d)
		}
	} else {
		// Without a shape the data must be a scalar or a vector.
		switch len(indices) {
		case 0:
			shape = tensor.Shape{}
		case 1:
			shape = tensor.Shape{len(data)}
		default:
			return nil, fmt.Errorf("%w: tensor %q: rank %d needs \"shape\" or \"rows\"", ErrInvalidDocument, name, len(indices))
		}
	}

	return tensor.New(name, indices, shape, data)
}

func stringArray(doc []byte, key string) ([]string, error) {
	out := []string{}
	var first error
	_, err := jsonparser.ArrayEach(doc, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if first != nil {
			return
		}
		if dataType != jsonparser.String {
			first = fmt.Errorf("expected string, got %s", dataType)
			return
		}
		s, err := jsonparser.ParseString(value)
		if err != nil {
			first = err
			return
		}
		out = append(out, s)
	}, key)
	if err != nil {
		return nil, err
	}
	return out, first
}

func floatArray(doc []byte, keys ...string) ([]float64, error) {
	out := []float64{}
	var first error
	_, err := jsonparser.ArrayEach(doc, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if first != nil {
			return
		}
		if dataType != jsonparser.Number {
			first = fmt.Errorf("expected number, got %s", dataType)
			return
		}
		f, err := jsonparser.ParseFloat(value)
		if err != nil {
			first = err
			return
		}
		out = append(out, f)
	}, keys...)
	if err != nil {
		return nil, err
	}
	return out, first
}

func matrix(doc []byte, key string) ([][]float64, error) {
	var (
		rows  [][]float64
		first error
	)
	_, err := jsonparser.ArrayEach(doc, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if first != nil {
			return
		}
		if dataType != jsonparser.Array {
			first = fmt.Errorf("row %d: expected array, got %s", len(rows), dataType)
			return
		}
		row, err := floatArray(value)
		if err != nil {
			first = fmt.Errorf("row %d: %w", len(rows), err)
			return
		}
		rows = append(rows, row)
	}, key)
	if err != nil {
		return nil, err
	}
	return rows, first
}
