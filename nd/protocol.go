// protocol.go - Austausch-Protokolle für fremde Array-Quellen
package nd

import (
	"fmt"
	"log/slog"

	"github.com/ndkit/ndkit/dtype"
)

// MemoryView is a borrowed window into foreign memory.
type MemoryView struct {
	Data      []byte
	Writeable bool
}

// BufferExporter exposes raw bytes for FromBuffer and as the data
// fallback of the map interface.
type BufferExporter interface {
	Buffer() (MemoryView, error)
}

// ArrayStruct flag bits, matching the Flags constants of the same
// names.
const (
	StructContiguous = 0x001
	StructFortran    = 0x002
	StructAligned    = 0x100
	StructNotSwapped = 0x200
	StructWriteable  = 0x400
)

// ArrayStruct is the compact struct-based interchange record. Version
// 2 is the only one understood.
type ArrayStruct struct {
	Version  int
	TypeKind byte
	Itemsize int
	Flags    int
	Shape    []int
	Strides  []int // nil means C contiguous
	Data     []byte
	Offset   int
}

// StructExporter publishes an ArrayStruct describing its memory.
type StructExporter interface {
	ArrayStruct() (*ArrayStruct, error)
}

// InterfaceExporter publishes the map-based interchange protocol.
// "shape" ([]int) and "typestr" (string) are mandatory; "data"
// (MemoryView or []byte), "strides" ([]int) and "offset" (int) are
// optional.
type InterfaceExporter interface {
	ArrayInterface() map[string]any
}

// AsArrayer converts itself into an array, honoring a requested
// element type when it can. A nil descriptor leaves the choice to
// the exporter.
type AsArrayer interface {
	AsArray(d *dtype.Descr) (*Array, error)
}

// FromStructExporter wraps the exporter's memory without copying.
// When the NotSwapped flag is absent the element type is tagged with
// the opposite of native byte order.
func FromStructExporter(e StructExporter) (*Array, error) {
	s, err := e.ArrayStruct()
	if err != nil {
		return nil, err
	}
	if s.Version != 2 {
		return nil, fmt.Errorf("%w: array struct version %d, only 2 is supported", ErrInvalidArgument, s.Version)
	}
	marker := byte('=')
	if s.Flags&StructNotSwapped == 0 {
		marker = swappedMarker()
	}
	d, err := dtype.ParseTypeString(fmt.Sprintf("%c%c%d", marker, s.TypeKind, s.Itemsize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return borrowArray(s.Data, d, s.Shape, s.Strides, s.Offset, s.Flags&StructWriteable != 0, e)
}

// FromInterfaceExporter builds an array over the memory the map-based
// protocol describes. Missing data falls back to the exporter's own
// buffer. A strides entry of the wrong type is ignored with a
// warning; a strides entry of the wrong length is an error.
func FromInterfaceExporter(e InterfaceExporter) (*Array, error) {
	m := e.ArrayInterface()
	if m == nil {
		return nil, fmt.Errorf("%w: no array interface", ErrInvalidArgument)
	}
	shape, ok := m["shape"].([]int)
	if !ok {
		return nil, fmt.Errorf("%w: array interface lacks a shape", ErrInvalidArgument)
	}
	typestr, ok := m["typestr"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: array interface lacks a typestr", ErrInvalidArgument)
	}
	d, err := dtype.ParseTypeString(typestr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}

	var data []byte
	writeable := false
	switch t := m["data"].(type) {
	case MemoryView:
		data = t.Data
		writeable = t.Writeable
	case []byte:
		data = t
		writeable = true
	case nil:
		b, ok := e.(BufferExporter)
		if !ok {
			return nil, fmt.Errorf("%w: array interface has no data and the exporter has no buffer", ErrInvalidArgument)
		}
		mv, err := b.Buffer()
		if err != nil {
			return nil, err
		}
		data = mv.Data
		writeable = mv.Writeable
	default:
		return nil, fmt.Errorf("%w: array interface data has type %T", ErrInvalidArgument, t)
	}

	off := 0
	if o, ok := m["offset"].(int); ok {
		off = o
	}

	var strides []int
	if raw, present := m["strides"]; present && raw != nil {
		if s, ok := raw.([]int); ok {
			if len(s) != len(shape) {
				return nil, fmt.Errorf("%w: %d strides for %d axes in array interface", ErrShapeMismatch, len(s), len(shape))
			}
			strides = s
		} else {
			slog.Warn("ignoring malformed strides in array interface", "type", fmt.Sprintf("%T", raw))
		}
	}
	return borrowArray(data, d, shape, strides, off, writeable, e)
}

// borrowArray wraps foreign memory, keeping the exporter reachable
// for the lifetime of the array.
func borrowArray(data []byte, d *dtype.Descr, shape, strides []int, off int, writeable bool, export any) (*Array, error) {
	nd := len(shape)
	if nd > MaxDims {
		return nil, fmt.Errorf("%w: %d", ErrTooBig, nd)
	}
	if strides != nil && len(strides) != nd {
		return nil, fmt.Errorf("%w: %d strides for %d axes", ErrInvalidArgument, len(strides), nd)
	}
	size := 1
	for _, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("%w: negative extent %d", ErrInvalidArgument, dim)
		}
		size *= dim
	}
	a := &Array{
		descr:   d,
		shape:   append([]int(nil), shape...),
		strides: make([]int, nd),
		data:    data,
		off:     off,
		export:  export,
	}
	a.refs.Store(1)
	if strides != nil {
		copy(a.strides, strides)
	} else {
		fillContiguousStrides(a.strides, a.shape, d.Elsize, false)
	}
	lo, hi := memoryExtents(a)
	if size > 0 && (lo < 0 || hi > len(data)) {
		return nil, fmt.Errorf("%w: exported window [%d, %d) exceeds the %d-byte buffer", ErrInvalidArgument, lo, hi, len(data))
	}
	if writeable {
		a.flags |= Writeable
	}
	a.UpdateFlags()
	return a, nil
}

// swappedMarker returns the typestring order marker opposite to the
// machine's.
func swappedMarker() byte {
	if dtype.NativeIsLittle() {
		return '>'
	}
	return '<'
}
