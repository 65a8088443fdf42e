// copy.go - Elementweises Kopieren zwischen Arrays
package nd

import (
	"fmt"

	"github.com/ndkit/ndkit/dtype"
	"github.com/ndkit/ndkit/nditer"
	"github.com/ndkit/ndkit/transfer"
)

// CopyInto copies every element of src into dst, casting as needed.
// The shapes must match exactly. Overlapping operands are handled:
// matching trivial layouts copy in reverse when the destination
// trails the source, anything else goes through a temporary.
func CopyInto(dst, src *Array) error {
	if dst == nil || src == nil {
		return fmt.Errorf("%w: nil array", ErrInvalidArgument)
	}
	if !dst.IsWriteable() {
		return fmt.Errorf("%w: copy destination", ErrNotWriteable)
	}
	// A scalar source into an empty destination is a no-op.
	if dst.Len() == 0 && (src.Len() == 0 || src.NDim() == 0) {
		return nil
	}
	if !shapesEqual(dst.shape, src.shape) {
		return fmt.Errorf("%w: cannot copy %v into %v", ErrShapeMismatch, src.shape, dst.shape)
	}

	if ds, ss, ok := trivialPair(dst, src); ok {
		return trivialCopy(dst, ds, src, ss)
	}

	if arraysOverlap(dst, src) {
		tmp, err := NewFromDescr(dtype.CloneForMutation(src.descr), src.shape, false, nil)
		if err != nil {
			return err
		}
		if err := CopyInto(tmp, src); err != nil {
			return err
		}
		src = tmp
	}

	fn, _, err := transfer.Select(dst.IsAligned() && src.IsAligned(),
		innerStride(src), innerStride(dst), src.descr, dst.descr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	it, err := nditer.NewMulti(dst.shape, [][]int{dst.strides, src.strides}, []int{dst.off, src.off})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	for it.Next() {
		if err := fn(dst.data, it.Off(0), it.Stride(0), src.data, it.Off(1), it.Stride(1), it.Count()); err != nil {
			return err
		}
	}
	return nil
}

// trivialPair reports whether both arrays walk their elements with a
// single stride in the same logical order, returning those strides.
func trivialPair(dst, src *Array) (dstStride, srcStride int, ok bool) {
	ds, ok1 := singleStride(dst)
	ss, ok2 := singleStride(src)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	// Multi-dimensional contiguous pairs must agree on order, else
	// the element sequences differ.
	if dst.NDim() > 1 {
		cBoth := dst.IsContiguous() && src.IsContiguous()
		fBoth := dst.IsFortran() && src.IsFortran()
		if !cBoth && !fBoth {
			return 0, 0, false
		}
	}
	return ds, ss, true
}

func singleStride(a *Array) (int, bool) {
	switch {
	case a.NDim() == 0:
		return a.descr.Elsize, true
	case a.NDim() == 1:
		return a.strides[0], true
	case a.IsContiguous() || a.IsFortran():
		return a.descr.Elsize, true
	}
	return 0, false
}

func trivialCopy(dst *Array, ds int, src *Array, ss int) error {
	fn, _, err := transfer.Select(dst.IsAligned() && src.IsAligned(), ss, ds, src.descr, dst.descr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}
	n := dst.Len()
	doff, soff := dst.off, src.off
	if ds > 0 && ss > 0 && arraysOverlap(dst, src) && dst.off > src.off {
		// Walk backward so un-copied source elements are never
		// clobbered first.
		doff += (n - 1) * ds
		soff += (n - 1) * ss
		ds, ss = -ds, -ss
	}
	return fn(dst.data, doff, ds, src.data, soff, ss, n)
}

// CopyAnyInto copies src into dst element by element in logical
// order. The shapes may differ as long as the total element counts
// agree.
func CopyAnyInto(dst, src *Array) error {
	if dst == nil || src == nil {
		return fmt.Errorf("%w: nil array", ErrInvalidArgument)
	}
	if !dst.IsWriteable() {
		return fmt.Errorf("%w: copy destination", ErrNotWriteable)
	}
	if dst.Len() != src.Len() {
		return fmt.Errorf("%w: %v and %v hold different element counts", ErrShapeMismatch, dst.shape, src.shape)
	}
	if shapesEqual(dst.shape, src.shape) {
		return CopyInto(dst, src)
	}
	if dst.Len() == 0 {
		return nil
	}
	if arraysOverlap(dst, src) {
		tmp, err := NewFromDescr(dtype.CloneForMutation(src.descr), src.shape, false, nil)
		if err != nil {
			return err
		}
		if err := CopyInto(tmp, src); err != nil {
			return err
		}
		src = tmp
	}

	dit, err := nditer.NewMulti(dst.shape, [][]int{dst.strides}, []int{dst.off})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	sit, err := nditer.NewMulti(src.shape, [][]int{src.strides}, []int{src.off})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
	fn, _, err := transfer.Select(dst.IsAligned() && src.IsAligned(),
		innerStride(src), innerStride(dst), src.descr, dst.descr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTypeMismatch, err)
	}

	// Both sides are flattened independently; each step moves the
	// shorter of the two remaining inner runs.
	var dRem, sRem, dOff, sOff int
	for {
		if dRem == 0 {
			if !dit.Next() {
				return nil
			}
			dRem = dit.Count()
			dOff = dit.Off(0)
		}
		if sRem == 0 {
			if !sit.Next() {
				return nil
			}
			sRem = sit.Count()
			sOff = sit.Off(0)
		}
		n := dRem
		if sRem < n {
			n = sRem
		}
		if err := fn(dst.data, dOff, dit.Stride(0), src.data, sOff, sit.Stride(0), n); err != nil {
			return err
		}
		dOff += n * dit.Stride(0)
		sOff += n * sit.Stride(0)
		dRem -= n
		sRem -= n
	}
}

// MoveInto copies src into dst, guaranteeing correct results for any
// overlap. The cheap path handles the cases a direct copy already
// gets right; everything else stages through a temporary laid out
// like the destination.
func MoveInto(dst, src *Array) error {
	if dst == nil || src == nil {
		return fmt.Errorf("%w: nil array", ErrInvalidArgument)
	}
	if !arraysOverlap(dst, src) {
		return CopyInto(dst, src)
	}
	if dst.NDim() <= 1 && src.NDim() <= 1 &&
		(dst.NDim() == 0 || dst.strides[0] > 0) &&
		(src.NDim() == 0 || src.strides[0] > 0) {
		return CopyInto(dst, src)
	}
	tmp, err := NewFromDescr(dtype.CloneForMutation(dst.descr), dst.shape, dst.IsFortran() && !dst.IsContiguous(), nil)
	if err != nil {
		return err
	}
	if err := CopyInto(tmp, src); err != nil {
		return err
	}
	return CopyInto(dst, tmp)
}

func innerStride(a *Array) int {
	if len(a.strides) == 0 {
		return a.descr.Elsize
	}
	return a.strides[len(a.strides)-1]
}

func shapesEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
