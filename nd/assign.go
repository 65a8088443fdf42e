// assign.go - Befüllen von Arrays aus Werten und Sequenzen
package nd

import (
	"fmt"

	"github.com/ndkit/ndkit/dtype"
	"github.com/ndkit/ndkit/nditer"
	"github.com/ndkit/ndkit/transfer"
)

// AssignArray fills dst from src, which may be another array, a
// nested sequence or a single scalar broadcast over dst.
func AssignArray(dst *Array, src any) error {
	if !dst.IsWriteable() {
		return fmt.Errorf("%w: assignment destination", ErrNotWriteable)
	}
	if a, ok := src.(*Array); ok {
		return CopyInto(dst, a)
	}
	if _, ok := asSequence(src); ok {
		return assignFromSequence(dst, src, dst.off, 0)
	}
	return fillScalar(dst, src)
}

// assignFromSequence recursively writes the nesting level of v that
// corresponds to axis. Extents may have been shrunk for ragged input,
// so only the recorded extent is consumed from each sequence.
func assignFromSequence(a *Array, v any, off, axis int) error {
	if axis == a.NDim() {
		return a.setLeaf(v, off)
	}
	if sub, ok := v.(*Array); ok {
		view, err := a.View(a.shape[axis:], a.strides[axis:], off)
		if err != nil {
			return err
		}
		defer view.Release()
		return CopyInto(view, sub)
	}
	seq, ok := asSequence(v)
	if !ok {
		return fmt.Errorf("%w: expected a sequence at depth %d, got %T", ErrInvalidArgument, axis, v)
	}
	if seq.Len() < a.shape[axis] {
		return fmt.Errorf("%w: sequence of length %d on axis %d with extent %d", ErrShapeMismatch, seq.Len(), axis, a.shape[axis])
	}
	for i := 0; i < a.shape[axis]; i++ {
		if err := assignFromSequence(a, seq.Index(i), off+i*a.strides[axis], axis+1); err != nil {
			return err
		}
	}
	return nil
}

// setLeaf stores one scalar leaf at the given byte offset. A 0-d
// array leaf is unwrapped first.
func (a *Array) setLeaf(v any, off int) error {
	if sub, ok := v.(*Array); ok {
		if sub.NDim() != 0 {
			return fmt.Errorf("%w: setting an element with an array of shape %v", ErrShapeMismatch, sub.shape)
		}
		var err error
		if v, err = sub.Item(); err != nil {
			return err
		}
	}
	if err := a.descr.SetItem(v, a.data[off:off+a.descr.Elsize]); err != nil {
		return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	return nil
}

// fillScalar broadcasts one scalar value over every element of a.
func fillScalar(a *Array, v any) error {
	if a.Len() == 0 {
		return nil
	}
	// Write the first element, then replicate its bytes with a
	// zero-stride source so byte order and padding come along.
	if err := a.setLeaf(v, a.off); err != nil {
		return err
	}
	if a.Len() == 1 {
		return nil
	}
	it, err := nditer.NewMulti(a.shape, [][]int{a.strides}, []int{a.off})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	elsize := a.descr.Elsize
	for it.Next() {
		off, n := it.Off(0), it.Count()
		if off == a.off {
			// The seed element already holds the value.
			off += it.Stride(0)
			n--
		}
		transfer.StridedCopy(a.data, off, it.Stride(0), a.data, a.off, 0, n, elsize)
	}
	return nil
}

// FromScalar builds a 0-d array holding v. A flexible dtype with no
// size adopts the scalar's natural size.
func FromScalar(v any, d *dtype.Descr) (*Array, error) {
	if d == nil {
		var err error
		if d, err = scalarDescr(v); err != nil {
			return nil, err
		}
	}
	if d.Kind.IsFlexible() && d.Elsize == 0 {
		d = dtype.CloneForMutation(d)
		d.Elsize = d.ScalarSize(v)
	}
	a, err := NewFromDescr(d, nil, false, nil)
	if err != nil {
		return nil, err
	}
	if err := a.setLeaf(v, a.off); err != nil {
		return nil, err
	}
	return a, nil
}
