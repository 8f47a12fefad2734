package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tensor-logic/tensorlogic/internal/tensor"
)

const (
	metadataKey     = "__metadata__"
	metadataIndices = "indices."

	dtypeF64 = "F64"
	dtypeF32 = "F32"
)

// SafeTensorHeader represents a tensor in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// WriteSafeTensors writes tensors as F64 SafeTensors to w.
//
// Tensor data is laid out in argument order and the index labels are added
// to metadata; the caller's map is not modified.
func WriteSafeTensors(w io.Writer, tensors []*tensor.Tensor, metadata map[string]string) error {
	header := make(map[string]interface{}, len(tensors)+1)
	meta := make(map[string]string, len(metadata)+len(tensors)+1)
	for k, v := range metadata {
		meta[k] = v
	}

	var data bytes.Buffer
	var currentOffset int64
	for _, t := range tensors {
		name := t.Name()
		if err := ValidateTensorName(name); err != nil {
			return err
		}
		if _, dup := header[name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateTensor, name)
		}

		shape := t.Shape()
		shapeInt64 := make([]int64, len(shape))
		for i, dim := range shape {
			shapeInt64[i] = int64(dim)
		}

		size := int64(t.NumElements()) * 8
		header[name] = SafeTensorHeader{
			DType:       dtypeF64,
			Shape:       shapeInt64,
			DataOffsets: [2]int64{currentOffset, currentOffset + size},
		}
		meta[metadataIndices+name] = strings.Join(t.Indices(), ",")
		currentOffset += size

		var buf [8]byte
		for _, v := range t.Data() {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			data.Write(buf[:])
		}
	}

	meta[metadataChecksum] = checksumHex(data.Bytes())
	header[metadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// SaveFile writes tensors to a SafeTensors file at path.
func SaveFile(path string, tensors []*tensor.Tensor, metadata map[string]string) error {
	//nolint:gosec // G304: File path comes from user input, which is expected for saving
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteSafeTensors(file, tensors, metadata); err != nil {
		_ = file.Close() // Best effort close on error
		return err
	}
	return file.Close()
}

// ReadSafeTensors decodes a SafeTensors stream.
//
// Tensors are returned in data order, so a stream produced by
// WriteSafeTensors reads back in the order it was written. The returned
// metadata excludes the index-label and checksum entries.
func ReadSafeTensors(r io.Reader) ([]*tensor.Tensor, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(headerBytes, &rawMap); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	meta := make(map[string]string)
	if raw, ok := rawMap[metadataKey]; ok {
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}

	entries := make(map[string]SafeTensorHeader, len(rawMap))
	metas := make([]TensorMeta, 0, len(rawMap))
	for name, raw := range rawMap {
		if name == metadataKey {
			continue
		}
		var info SafeTensorHeader
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, nil, fmt.Errorf("failed to unmarshal tensor %s: %w", name, err)
		}
		if err := ValidateTensorName(name); err != nil {
			return nil, nil, err
		}
		if info.DataOffsets[0] < 0 || info.DataOffsets[1] < info.DataOffsets[0] {
			return nil, nil, &ValidationError{
				Type:    "negative_offset",
				Tensor:  name,
				Details: fmt.Sprintf("data_offsets %v are not an ascending pair of non-negative values", info.DataOffsets),
			}
		}
		entries[name] = info
		metas = append(metas, TensorMeta{
			Name:   name,
			Offset: info.DataOffsets[0],
			Size:   info.DataOffsets[1] - info.DataOffsets[0],
		})
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read tensor data: %w", err)
	}
	if err := ValidateTensorOffsets(metas, int64(len(data))); err != nil {
		return nil, nil, err
	}
	if sum, ok := meta[metadataChecksum]; ok {
		if err := ValidateChecksum(data, sum); err != nil {
			return nil, nil, err
		}
	}

	// Offsets are validated, so ordering by offset is ordering by layout.
	sort.Slice(metas, func(i, j int) bool {
		if metas[i].Offset != metas[j].Offset {
			return metas[i].Offset < metas[j].Offset
		}
		return metas[i].Name < metas[j].Name
	})

	tensors := make([]*tensor.Tensor, 0, len(metas))
	for _, m := range metas {
		t, err := decodeTensor(m, entries[m.Name], data[m.Offset:m.Offset+m.Size], meta)
		if err != nil {
			return nil, nil, err
		}
		tensors = append(tensors, t)
	}

	for k := range meta {
		if k == metadataChecksum || strings.HasPrefix(k, metadataIndices) {
			delete(meta, k)
		}
	}
	return tensors, meta, nil
}

// LoadFile reads a SafeTensors file from path.
func LoadFile(path string) ([]*tensor.Tensor, map[string]string, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for loading
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close() // Best effort close
	}()
	return ReadSafeTensors(file)
}

// Find returns the tensor with the given name.
func Find(tensors []*tensor.Tensor, name string) (*tensor.Tensor, error) {
	for _, t := range tensors {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrTensorNotFound, name)
}

func decodeTensor(m TensorMeta, info SafeTensorHeader, raw []byte, meta map[string]string) (*tensor.Tensor, error) {
	shape := make(tensor.Shape, len(info.Shape))
	for i, dim := range info.Shape {
		shape[i] = int(dim)
	}

	var elemSize int64
	switch info.DType {
	case dtypeF64:
		elemSize = 8
	case dtypeF32:
		elemSize = 4
	default:
		return nil, fmt.Errorf("tensor %q: %w: %s", m.Name, ErrUnsupportedDType, info.DType)
	}
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("tensor %q: %w", m.Name, err)
	}
	if n := int64(shape.NumElements()); n > m.Size/elemSize || n*elemSize != m.Size {
		return nil, &ValidationError{
			Type:    "size_mismatch",
			Tensor:  m.Name,
			Details: fmt.Sprintf("shape %v needs %d elements of %d bytes, data offsets span %d", shape, shape.NumElements(), elemSize, m.Size),
		}
	}

	values := make([]float64, shape.NumElements())
	for i := range values {
		if elemSize == 8 {
			values[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		} else {
			values[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:])))
		}
	}

	indices, err := labelsFor(m.Name, len(shape), meta)
	if err != nil {
		return nil, err
	}
	t, err := tensor.New(m.Name, indices, shape, values)
	if err != nil {
		return nil, fmt.Errorf("tensor %q: %w", m.Name, err)
	}
	return t, nil
}

func labelsFor(name string, rank int, meta map[string]string) ([]string, error) {
	stored, ok := meta[metadataIndices+name]
	if !ok {
		labels := make([]string, rank)
		for i := range labels {
			labels[i] = "d" + strconv.Itoa(i)
		}
		return labels, nil
	}

	labels := []string{}
	if stored != "" {
		labels = strings.Split(stored, ",")
	}
	if len(labels) != rank {
		return nil, fmt.Errorf("tensor %q: %w: %d labels for rank %d", name, ErrInvalidIndexLabel, len(labels), rank)
	}
	return labels, nil
}
