// fromseq.go - Arrays aus Go-Iteratoren
package nd

import (
	"fmt"
	"iter"

	"github.com/ndkit/ndkit/dtype"
)

// FromIter drains a one-dimensional iterator into a fresh array.
// count < 0 consumes everything, growing the buffer geometrically;
// otherwise exactly count elements are taken and a shorter iterator
// is an error. Flexible element types are not supported since the
// element size must be known up front.
func FromIter(seq iter.Seq[any], d *dtype.Descr, count int) (*Array, error) {
	if d == nil {
		d = dtype.MustFromKind(dtype.Float64)
	}
	if d.HasRefs() {
		return nil, fmt.Errorf("%w: cannot fill an object array from an iterator", ErrTypeMismatch)
	}
	if d.Kind.IsFlexible() && d.Elsize == 0 {
		return nil, fmt.Errorf("%w: cannot size flexible element type %s from an iterator", ErrTypeMismatch, d)
	}
	elsize := d.Elsize

	capHint := count
	if capHint < 0 {
		capHint = 0
	}
	buf := make([]byte, capHint*elsize)
	i := 0
	var setErr error
	for v := range seq {
		if count >= 0 && i >= count {
			break
		}
		if (i+1)*elsize > len(buf) {
			// Growth curve: half again plus a small constant.
			elcount := (i >> 1) + i
			if i < 4 {
				elcount += 4
			} else {
				elcount += 2
			}
			grown := make([]byte, elcount*elsize)
			copy(grown, buf)
			buf = grown
		}
		if err := d.SetItem(v, buf[i*elsize:(i+1)*elsize]); err != nil {
			setErr = fmt.Errorf("%w: %v", ErrTypeMismatch, err)
			break
		}
		i++
	}
	if setErr != nil {
		return nil, setErr
	}
	if count >= 0 && i < count {
		return nil, fmt.Errorf("%w: iterator too short, got %d of %d elements", ErrInvalidArgument, i, count)
	}

	a, err := NewFromDescr(dtype.CloneForMutation(d), []int{i}, false, nil)
	if err != nil {
		return nil, err
	}
	copy(a.data, buf[:i*elsize])
	return a, nil
}
