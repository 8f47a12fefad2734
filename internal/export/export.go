// Package export serializes demo results for external renderers.
//
// A Document mirrors examples.Result with every step's tensor flattened to
// name, indices, shape and row-major data. Documents encode as JSON, YAML or
// MessagePack with the same field names in every format.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack"
	"gopkg.in/yaml.v3"

	"github.com/tensor-logic/tensorlogic/internal/examples"
	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

// ErrUnknownFormat reports an unsupported export format name.
var ErrUnknownFormat = errors.New("unknown export format")

// Format selects the document encoding.
type Format string

// Supported formats.
const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, MsgPack}

// ParseFormat resolves a format name; "yml" and "mp" are accepted aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "msgpack", "mp":
		return MsgPack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Extension returns the conventional file extension, without the dot.
func (f Format) Extension() string {
	if f == MsgPack {
		return "msgpack"
	}
	return string(f)
}

// TensorData is a tensor in plain fields.
type TensorData struct {
	Name    string    `json:"name" yaml:"name" msgpack:"name"`
	Indices []string  `json:"indices" yaml:"indices,flow" msgpack:"indices"`
	Shape   []int     `json:"shape" yaml:"shape,flow" msgpack:"shape"`
	Data    []float64 `json:"data" yaml:"data,flow" msgpack:"data"`
}

// FromTensor flattens t.
func FromTensor(t *tensor.Tensor) TensorData {
	return TensorData{
		Name:    t.Name(),
		Indices: t.Indices(),
		Shape:   t.Shape(),
		Data:    t.Data(),
	}
}

// Tensor rebuilds the tensor, validating it like tensor.New.
func (d TensorData) Tensor() (*tensor.Tensor, error) {
	indices := d.Indices
	if indices == nil {
		indices = []string{}
	}
	return tensor.New(d.Name, indices, tensor.Shape(d.Shape), d.Data)
}

// Step is one recorded step.
type Step struct {
	Name         string     `json:"name" yaml:"name" msgpack:"name"`
	Explanation  string     `json:"explanation" yaml:"explanation" msgpack:"explanation"`
	TensorString string     `json:"tensorString" yaml:"tensorString" msgpack:"tensorString"`
	Tensor       TensorData `json:"tensor" yaml:"tensor" msgpack:"tensor"`
}

// Document is one exported demo run.
type Document struct {
	ID          string `json:"id" yaml:"id" msgpack:"id"`
	Name        string `json:"name" yaml:"name" msgpack:"name"`
	Category    string `json:"category" yaml:"category" msgpack:"category"`
	Title       string `json:"title" yaml:"title" msgpack:"title"`
	Description string `json:"description" yaml:"description" msgpack:"description"`
	Code        string `json:"code" yaml:"code" msgpack:"code"`
	Steps       []Step `json:"steps" yaml:"steps" msgpack:"steps"`
}

// FromResult builds the document for one run of ex.
func FromResult(ex examples.Example, res *examples.Result) Document {
	doc := Document{
		ID:          ex.ID,
		Name:        ex.Name,
		Category:    string(ex.Category),
		Title:       res.Title,
		Description: res.Description,
		Code:        res.Code,
		Steps:       make([]Step, len(res.Steps)),
	}
	for i, s := range res.Steps {
		doc.Steps[i] = Step{
			Name:         s.Name,
			Explanation:  s.Explanation,
			TensorString: s.TensorString,
			Tensor:       FromTensor(s.Tensor),
		}
	}
	return doc
}

// Encode writes docs to w as a single array.
func Encode(w io.Writer, format Format, docs []Document) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)

	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()

	case MsgPack:
		return msgpack.NewEncoder(w).Encode(docs)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Decode reads an array written by Encode.
func Decode(r io.Reader, format Format) ([]Document, error) {
	var docs []Document
	var err error
	switch format {
	case JSON:
		err = json.NewDecoder(r).Decode(&docs)
	case YAML:
		err = yaml.NewDecoder(r).Decode(&docs)
	case MsgPack:
		err = msgpack.NewDecoder(r).Decode(&docs)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	return docs, nil
}
