// arange.go - Bereichs-Konstruktion über Start, Stop und Schrittweite
package nd

import (
	"fmt"
	"math"

	"github.com/ndkit/ndkit/dtype"
	"github.com/ndkit/ndkit/transfer"
)

// Arange builds a one-dimensional array of evenly spaced values from
// start up to but excluding stop. A nil descriptor yields Float64.
// The first two elements seed the sequence; the element type's fill
// routine extrapolates the rest, so integer types step exactly.
func Arange(start, stop, step float64, d *dtype.Descr) (*Array, error) {
	if step == 0 {
		return nil, fmt.Errorf("%w: zero step", ErrInvalidArgument)
	}
	if d == nil {
		d = dtype.MustFromKind(dtype.Float64)
	}
	if !d.CanFill() {
		return nil, fmt.Errorf("%w: element type %s cannot fill a range", ErrTypeMismatch, d)
	}
	n, err := rangeLength(start, stop, step)
	if err != nil {
		return nil, err
	}

	// Swapped targets are computed in native order first and byte
	// swapped afterwards.
	native := d
	if !d.IsNativeOrder() {
		native = dtype.NewSwapped(d, dtype.NativeOrder)
	}
	a, err := NewFromDescr(dtype.CloneForMutation(native), []int{n}, false, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		a.descr = d
		return a, nil
	}
	if err := native.SetItem(start, a.data[:native.Elsize]); err != nil {
		a.Release()
		return nil, err
	}
	if n > 1 {
		if err := native.SetItem(start+step, a.data[native.Elsize:2*native.Elsize]); err != nil {
			a.Release()
			return nil, err
		}
		if err := native.Fill(a.data[:n*native.Elsize], n); err != nil {
			a.Release()
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}
	if !d.IsNativeOrder() {
		swapsize := d.Elsize
		if d.Kind.IsComplex() {
			swapsize /= 2
			transfer.SwapVector(a.data[:n*d.Elsize], 2*n, swapsize)
		} else {
			transfer.SwapVector(a.data[:n*d.Elsize], n, swapsize)
		}
		a.descr = d
	}
	return a, nil
}

// rangeLength computes ceil((stop-start)/step), clamped at zero. A
// length the allocator cannot represent is an overflow.
func rangeLength(start, stop, step float64) (int, error) {
	n := math.Ceil((stop - start) / step)
	if n <= 0 || math.IsNaN(n) {
		return 0, nil
	}
	if n > float64(math.MaxInt/2) {
		return 0, fmt.Errorf("%w: range of %g elements", ErrOverflow, n)
	}
	return int(n), nil
}
