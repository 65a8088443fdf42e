// gorgonia.go - Anbindung an gorgonia-Tensoren
package nd

import (
	"fmt"
	"unsafe"

	"github.com/pdevine/tensor"

	"github.com/ndkit/ndkit/dtype"
)

// FromTensor wraps a dense gorgonia tensor, borrowing its backing
// slice. The tensor's element strides are scaled into byte strides.
func FromTensor(t *tensor.Dense) (*Array, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil tensor", ErrInvalidArgument)
	}
	d, err := descrForTensor(t.Dtype())
	if err != nil {
		return nil, err
	}

	shape := []int(t.Shape())
	strides := make([]int, len(t.Strides()))
	for i, s := range t.Strides() {
		strides[i] = s * d.Elsize
	}
	if t.Len() == 0 {
		return borrowArray(nil, d, shape, strides, 0, true, t)
	}

	var data []byte
	switch s := t.Data().(type) {
	case []bool:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s))
	case []int8:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s))
	case []int16:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*2)
	case []int32:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	case []int64:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	case []int:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	case []uint8:
		data = s
	case []uint16:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*2)
	case []uint32:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	case []uint64:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	case []uint:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	case []float32:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	case []float64:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	case []complex64:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	case []complex128:
		data = unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*16)
	default:
		return nil, fmt.Errorf("%w: unsupported tensor backing %T", ErrTypeMismatch, s)
	}

	return borrowArray(data, d, shape, strides, 0, true, t)
}

func descrForTensor(dt tensor.Dtype) (*dtype.Descr, error) {
	switch dt {
	case tensor.Bool:
		return dtype.MustFromKind(dtype.Bool), nil
	case tensor.Int8:
		return dtype.MustFromKind(dtype.Int8), nil
	case tensor.Int16:
		return dtype.MustFromKind(dtype.Int16), nil
	case tensor.Int32:
		return dtype.MustFromKind(dtype.Int32), nil
	case tensor.Int64, tensor.Int:
		return dtype.MustFromKind(dtype.Int64), nil
	case tensor.Uint8:
		return dtype.MustFromKind(dtype.Uint8), nil
	case tensor.Uint16:
		return dtype.MustFromKind(dtype.Uint16), nil
	case tensor.Uint32:
		return dtype.MustFromKind(dtype.Uint32), nil
	case tensor.Uint64, tensor.Uint:
		return dtype.MustFromKind(dtype.Uint64), nil
	case tensor.Float32:
		return dtype.MustFromKind(dtype.Float32), nil
	case tensor.Float64:
		return dtype.MustFromKind(dtype.Float64), nil
	case tensor.Complex64:
		return dtype.MustFromKind(dtype.Complex64), nil
	case tensor.Complex128:
		return dtype.MustFromKind(dtype.Complex128), nil
	}
	return nil, fmt.Errorf("%w: no element type for tensor dtype %v", ErrTypeMismatch, dt)
}
