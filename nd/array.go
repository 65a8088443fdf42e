// array.go - Der N-dimensionale Array-Typ und seine Sichten
package nd

import (
	"fmt"
	"sync/atomic"

	"github.com/ndkit/ndkit/dtype"
)

// Array is a strided view over a byte buffer. Views created from an
// existing array share the buffer and keep it alive through base.
type Array struct {
	descr   *dtype.Descr
	shape   []int
	strides []int
	data    []byte
	off     int
	flags   Flags

	// base keeps the owner of a borrowed buffer reachable. For an
	// UpdateIfCopy working copy it is the array to write back into.
	base *Array
	// export pins a foreign exporter whose memory we borrow.
	export any

	refs atomic.Int64
	typ  *ArrayType
}

// Descr returns the element type. Callers must not mutate it.
func (a *Array) Descr() *dtype.Descr { return a.descr }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Shape returns the extents. The slice is shared, not copied.
func (a *Array) Shape() []int { return a.shape }

// Strides returns the byte strides per axis.
func (a *Array) Strides() []int { return a.strides }

// Len returns the total element count, 1 for a 0-d array.
func (a *Array) Len() int {
	n := 1
	for _, d := range a.shape {
		n *= d
	}
	return n
}

// NBytes returns the logical payload size in bytes.
func (a *Array) NBytes() int { return a.Len() * a.descr.Elsize }

// Data exposes the backing buffer. Offset gives the position of the
// first element within it.
func (a *Array) Data() []byte { return a.data }

// Offset returns the byte offset of element (0, ..., 0).
func (a *Array) Offset() int { return a.off }

// Flags returns the current layout flags.
func (a *Array) Flags() Flags { return a.flags }

// Base returns the array this view borrows its buffer from, or nil.
func (a *Array) Base() *Array { return a.base }

func (a *Array) IsContiguous() bool { return a.flags.has(Contiguous) }
func (a *Array) IsFortran() bool    { return a.flags.has(Fortran) }
func (a *Array) IsWriteable() bool  { return a.flags.has(Writeable) }
func (a *Array) IsAligned() bool    { return a.flags.has(Aligned) }
func (a *Array) OwnsData() bool     { return a.flags.has(OwnData) }

// IsBehaved reports aligned plus writeable, the baseline most copy
// routines assume.
func (a *Array) IsBehaved() bool { return a.flags.has(Behaved) }

// Retain increments the reference count.
func (a *Array) Retain() { a.refs.Add(1) }

// Release decrements the reference count. When the count reaches zero
// and the array is an UpdateIfCopy working copy, its contents are
// copied back into the base array first.
func (a *Array) Release() error {
	if a.refs.Add(-1) > 0 {
		return nil
	}
	if a.flags.has(UpdateIfCopy) && a.base != nil {
		a.flags &^= UpdateIfCopy
		dst := a.base
		dst.flags |= Writeable
		if err := CopyInto(dst, a); err != nil {
			return err
		}
	}
	return nil
}

// SetWriteable toggles the writeable flag. Enabling it on a view is
// only legal when the owning buffer is itself writeable.
func (a *Array) SetWriteable(w bool) error {
	if !w {
		a.flags &^= Writeable
		return nil
	}
	for b := a; b != nil; b = b.base {
		if b.base == nil && !b.flags.has(Writeable) && !b.flags.has(OwnData) {
			return fmt.Errorf("%w: base buffer is read-only", ErrNotWriteable)
		}
	}
	a.flags |= Writeable
	return nil
}

// UpdateFlags recomputes the layout bits from shape, strides and
// offset. Ownership and writeability are untouched.
func (a *Array) UpdateFlags() {
	a.flags &^= Contiguous | Fortran | Aligned
	if a.contiguousIn(false) {
		a.flags |= Contiguous
	}
	if a.contiguousIn(true) {
		a.flags |= Fortran
	}
	if a.aligned() {
		a.flags |= Aligned
	}
}

// contiguousIn checks for gapless layout in C (fortran=false) or
// Fortran order. Extent-1 axes may carry any stride; zero-size arrays
// are contiguous in both orders.
func (a *Array) contiguousIn(fortran bool) bool {
	nd := len(a.shape)
	if nd == 0 {
		return true
	}
	if nd == 1 {
		// One-dimensional arrays count as both C and Fortran ordered.
		return a.shape[0] <= 1 || a.strides[0] == a.descr.Elsize
	}
	expect := a.descr.Elsize
	if fortran {
		for i := 0; i < nd; i++ {
			if a.shape[i] == 0 {
				return true
			}
			if a.shape[i] != 1 {
				if a.strides[i] != expect {
					return false
				}
				expect *= a.shape[i]
			}
		}
		return true
	}
	for i := nd - 1; i >= 0; i-- {
		if a.shape[i] == 0 {
			return true
		}
		if a.shape[i] != 1 {
			if a.strides[i] != expect {
				return false
			}
			expect *= a.shape[i]
		}
	}
	return true
}

func (a *Array) aligned() bool {
	align := a.descr.Alignment()
	if align <= 1 {
		return true
	}
	if a.off%align != 0 {
		return false
	}
	for _, s := range a.strides {
		if s%align != 0 {
			return false
		}
	}
	return true
}

// elementStrides reports whether every stride is a multiple of the
// element size.
func (a *Array) elementStrides() bool {
	for _, s := range a.strides {
		if s%a.descr.Elsize != 0 {
			return false
		}
	}
	return true
}

// elemOffset returns the byte offset of the element at idx. idx must
// have exactly NDim entries in range.
func (a *Array) elemOffset(idx []int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, fmt.Errorf("%w: got %d indices for %d-d array", ErrInvalidArgument, len(idx), len(a.shape))
	}
	off := a.off
	for i, ix := range idx {
		if ix < 0 || ix >= a.shape[i] {
			return 0, fmt.Errorf("%w: index %d out of range for axis %d with extent %d", ErrInvalidArgument, ix, i, a.shape[i])
		}
		off += ix * a.strides[i]
	}
	return off, nil
}

// Item reads the element at idx as a Go value.
func (a *Array) Item(idx ...int) (any, error) {
	off, err := a.elemOffset(idx)
	if err != nil {
		return nil, err
	}
	return a.descr.GetItem(a.data[off : off+a.descr.Elsize])
}

// SetAt stores v at idx.
func (a *Array) SetAt(v any, idx ...int) error {
	if !a.IsWriteable() {
		return ErrNotWriteable
	}
	off, err := a.elemOffset(idx)
	if err != nil {
		return err
	}
	return a.descr.SetItem(v, a.data[off:off+a.descr.Elsize])
}

// View returns a new array sharing this one's buffer with the given
// shape and strides. The view inherits writeability.
func (a *Array) View(shape, strides []int, off int) (*Array, error) {
	if len(shape) != len(strides) {
		return nil, fmt.Errorf("%w: shape and strides disagree", ErrInvalidArgument)
	}
	if len(shape) > MaxDims {
		return nil, fmt.Errorf("%w: %d", ErrTooBig, len(shape))
	}
	v := &Array{
		descr:   a.descr,
		shape:   append([]int(nil), shape...),
		strides: append([]int(nil), strides...),
		data:    a.data,
		off:     off,
		flags:   a.flags &^ (OwnData | UpdateIfCopy),
		base:    a,
		typ:     a.typ,
	}
	v.refs.Store(1)
	a.Retain()
	v.UpdateFlags()
	return v, nil
}

// ToNested converts the array into nested Go slices of element
// values. A 0-d array yields the bare scalar.
func (a *Array) ToNested() (any, error) {
	return a.nested(a.off, 0)
}

func (a *Array) nested(off, axis int) (any, error) {
	if axis == len(a.shape) {
		return a.descr.GetItem(a.data[off : off+a.descr.Elsize])
	}
	out := make([]any, a.shape[axis])
	for i := range out {
		v, err := a.nested(off+i*a.strides[axis], axis+1)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// String gives a compact debug form, not a full element dump.
func (a *Array) String() string {
	return fmt.Sprintf("Array(shape=%v, dtype=%s)", a.shape, a.descr)
}
