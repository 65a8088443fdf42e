// buffer.go - Arrays über fremden Puffern
package nd

import (
	"fmt"

	"github.com/ndkit/ndkit/dtype"
)

// FromBuffer wraps an exporter's memory as a one-dimensional array
// without copying. offset is in bytes; count < 0 means consume the
// whole remainder, which must then divide evenly by the element size.
// Object element types are rejected since raw bytes cannot hold
// references.
func FromBuffer(e BufferExporter, d *dtype.Descr, count, offset int) (*Array, error) {
	if d == nil {
		d = dtype.MustFromKind(dtype.Uint8)
	}
	if d.HasRefs() {
		return nil, fmt.Errorf("%w: cannot create an object array from a buffer", ErrTypeMismatch)
	}
	if d.Elsize == 0 {
		return nil, fmt.Errorf("%w: zero-size element type", ErrInvalidArgument)
	}
	mv, err := e.Buffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	if offset < 0 || offset > len(mv.Data) {
		return nil, fmt.Errorf("%w: offset %d outside %d-byte buffer", ErrInvalidArgument, offset, len(mv.Data))
	}
	remain := len(mv.Data) - offset
	if count < 0 {
		if remain%d.Elsize != 0 {
			return nil, fmt.Errorf("%w: buffer size %d is not a multiple of element size %d", ErrInvalidArgument, remain, d.Elsize)
		}
		count = remain / d.Elsize
	} else if count*d.Elsize > remain {
		return nil, fmt.Errorf("%w: buffer too small for %d elements of %d bytes", ErrInvalidArgument, count, d.Elsize)
	}
	return borrowArray(mv.Data, d, []int{count}, nil, offset, mv.Writeable, e)
}

// FromBytes copies raw bytes into a fresh one-dimensional array,
// interpreting them as count elements of d. count < 0 means consume
// everything, with the same divisibility rule as FromBuffer.
func FromBytes(p []byte, d *dtype.Descr, count int) (*Array, error) {
	if d == nil {
		d = dtype.MustFromKind(dtype.Uint8)
	}
	if d.HasRefs() {
		return nil, fmt.Errorf("%w: cannot create an object array from bytes", ErrTypeMismatch)
	}
	if d.Elsize == 0 {
		return nil, fmt.Errorf("%w: zero-size element type", ErrInvalidArgument)
	}
	if count < 0 {
		if len(p)%d.Elsize != 0 {
			return nil, fmt.Errorf("%w: input length %d is not a multiple of element size %d", ErrInvalidArgument, len(p), d.Elsize)
		}
		count = len(p) / d.Elsize
	} else if count*d.Elsize > len(p) {
		return nil, fmt.Errorf("%w: input too short for %d elements of %d bytes", ErrInvalidArgument, count, d.Elsize)
	}
	a, err := NewFromDescr(d, []int{count}, false, nil)
	if err != nil {
		return nil, err
	}
	copy(a.data, p[:count*d.Elsize])
	return a, nil
}
