// transfer.go - Auswahl spezialisierter Transfer-Funktionen
// Gegeben zwei Deskriptoren plus Stride/Alignment-Hinweise liefert
// Select eine Funktion, die einen Strided Run kopiert, tauscht oder
// castet.
package transfer

import (
	"fmt"

	"github.com/ndkit/ndkit/dtype"
)

// Fn copies count elements from a strided source run to a strided
// destination run. Offsets address the first element of each run.
type Fn func(dst []byte, dstOff, dstStride int, src []byte, srcOff, srcStride, count int) error

// State carries properties of a selected transfer the caller may need
// for scheduling decisions.
type State struct {
	// NeedsAPI marks transfers that call back into descriptor scalar
	// routines for every element. Pure byte transfers never do.
	NeedsAPI bool

	SrcItemsize int
	DstItemsize int
}

// Select returns a transfer function moving elements of type src into
// elements of type dst. The stride hints let a contiguous pair take
// the bulk copy path; aligned is advisory.
//
// Casting between kinds goes through the descriptors' scalar
// operations and is unrestricted here; safe-cast policy is enforced
// by the caller.
func Select(aligned bool, srcStride, dstStride int, src, dst *dtype.Descr) (Fn, *State, error) {
	_ = aligned
	if src == nil || dst == nil {
		return nil, nil, fmt.Errorf("transfer: nil descriptor")
	}
	if src.HasRefs() || dst.HasRefs() {
		return nil, nil, fmt.Errorf("transfer: reference-holding element types are not transferable")
	}

	st := &State{SrcItemsize: src.Elsize, DstItemsize: dst.Elsize}

	if dtype.Equiv(src, dst) {
		elsize := src.Elsize
		if src.IsNativeOrder() == dst.IsNativeOrder() {
			fn := func(d []byte, do, ds int, s []byte, so, ss, n int) error {
				StridedCopy(d, do, ds, s, so, ss, n, elsize)
				return nil
			}
			return fn, st, nil
		}
		// Same layout, opposite byte order: copy then swap in place.
		swapsize := elsize
		if src.Kind.IsComplex() {
			swapsize = elsize / 2
		}
		fn := func(d []byte, do, ds int, s []byte, so, ss, n int) error {
			StridedCopy(d, do, ds, s, so, ss, n, elsize)
			if src.Kind.IsComplex() {
				StridedSwap(d, do, ds, n, swapsize)
				StridedSwap(d, do+swapsize, ds, n, swapsize)
			} else {
				StridedSwap(d, do, ds, n, swapsize)
			}
			return nil
		}
		return fn, st, nil
	}

	// Differing kinds: element-wise cast through the scalar table.
	st.NeedsAPI = true
	ses, des := src.Elsize, dst.Elsize
	fn := func(d []byte, do, ds int, s []byte, so, ss, n int) error {
		for i := 0; i < n; i++ {
			v, err := src.GetItem(s[so : so+ses])
			if err != nil {
				return err
			}
			if err := dst.SetItem(v, d[do:do+des]); err != nil {
				return err
			}
			do += ds
			so += ss
		}
		return nil
	}
	return fn, st, nil
}
