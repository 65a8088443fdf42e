// alloc.go - Allokation neuer Arrays aus Deskriptor und Form
package nd

import (
	"fmt"
	"math"

	"github.com/ndkit/ndkit/dtype"
)

// NewFromDescr allocates a fresh array of the given shape. A non-nil
// strides slice is taken over verbatim (it must have one entry per
// axis); otherwise contiguous strides in C or Fortran order are
// filled in. A subarray descriptor is spliced: its inner shape is
// appended to the requested shape and the base element type used.
func NewFromDescr(d *dtype.Descr, shape []int, fortran bool, strides []int) (*Array, error) {
	return newFromDescr(d, shape, fortran, strides, nil)
}

func newFromDescr(d *dtype.Descr, shape []int, fortran bool, strides []int, typ *ArrayType) (*Array, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil dtype", ErrInvalidArgument)
	}
	for d.Subarray != nil {
		inner := d.Subarray.Shape
		spliced := make([]int, 0, len(shape)+len(inner))
		spliced = append(spliced, shape...)
		spliced = append(spliced, inner...)
		if strides != nil {
			// The appended axes walk the subarray contiguously.
			ext := make([]int, len(strides)+len(inner))
			copy(ext, strides)
			fillContiguousStrides(ext[len(strides):], inner, d.Subarray.Base.Elsize, false)
			strides = ext
		}
		shape = spliced
		d = d.Subarray.Base
	}
	nd := len(shape)
	if nd > MaxDims {
		return nil, fmt.Errorf("%w: %d, maximum is %d", ErrTooBig, nd, MaxDims)
	}
	if d.Elsize == 0 && d.Kind.IsFlexible() {
		// An unsized text dtype holds one character.
		d = dtype.CloneForMutation(d)
		if d.Kind == dtype.Unicode {
			d.Elsize = 4
		} else {
			d.Elsize = 1
		}
	}
	if d.Elsize <= 0 {
		return nil, fmt.Errorf("%w: dtype %s has no size", ErrInvalidArgument, d)
	}
	if strides != nil && len(strides) != nd {
		return nil, fmt.Errorf("%w: %d strides for %d axes", ErrInvalidArgument, len(strides), nd)
	}

	// Running divisor check: the product of extents must stay below
	// the representable element count for this item size.
	largest := math.MaxInt / d.Elsize
	size := 1
	for i, dim := range shape {
		if dim < 0 {
			return nil, fmt.Errorf("%w: negative extent %d on axis %d", ErrInvalidArgument, dim, i)
		}
		if dim == 0 {
			size = 0
			continue
		}
		if size > 0 && dim > largest/size {
			return nil, fmt.Errorf("%w: shape %v with itemsize %d", ErrOverflow, shape, d.Elsize)
		}
		if size > 0 {
			size *= dim
		}
	}

	a := &Array{
		descr:   d,
		shape:   append([]int(nil), shape...),
		strides: make([]int, nd),
		flags:   OwnData | Writeable,
		typ:     typ,
	}
	a.refs.Store(1)
	if strides != nil {
		copy(a.strides, strides)
	} else {
		fillContiguousStrides(a.strides, a.shape, d.Elsize, fortran)
	}

	// Zero-size arrays still get one element of storage so that a
	// valid data pointer always exists.
	nbytes := size * d.Elsize
	if nbytes == 0 {
		nbytes = d.Elsize
	}
	a.data = make([]byte, nbytes)
	a.UpdateFlags()
	if typ != nil && typ.Finalize != nil {
		if err := typ.Finalize(a, nil); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// fillContiguousStrides writes gapless strides into strides. Zero
// extents are treated as 1 so every stride stays usable.
func fillContiguousStrides(strides, shape []int, elsize int, fortran bool) {
	s := elsize
	if fortran {
		for i := 0; i < len(shape); i++ {
			strides[i] = s
			if shape[i] > 1 {
				s *= shape[i]
			} else if shape[i] == 0 {
				s *= 1
			}
		}
		return
	}
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		if shape[i] > 1 {
			s *= shape[i]
		}
	}
}

// Empty allocates an uninitialized-by-convention array. The buffer is
// zeroed regardless since Go allocations start at zero; the name
// states intent only.
func Empty(d *dtype.Descr, shape ...int) (*Array, error) {
	return NewFromDescr(d, shape, false, nil)
}

// Zeros allocates a zero-filled array.
func Zeros(d *dtype.Descr, shape ...int) (*Array, error) {
	return NewFromDescr(d, shape, false, nil)
}

// New allocates a C-ordered array of the given kind.
func New(k dtype.Kind, shape ...int) (*Array, error) {
	d, err := dtype.FromKind(k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return NewFromDescr(d, shape, false, nil)
}
