// gonum.go - Anbindung an gonum-Matrizen
package nd

import (
	"fmt"
	"unsafe"

	"gonum.org/v1/gonum/mat"

	"github.com/ndkit/ndkit/dtype"
)

// FromDense wraps a gonum dense matrix as a two-dimensional Float64
// array without copying. The matrix's backing slice is borrowed, so
// writes through either side are visible to the other.
func FromDense(m *mat.Dense) (*Array, error) {
	if m == nil || m.IsEmpty() {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidArgument)
	}
	raw := m.RawMatrix()
	data := unsafe.Slice((*byte)(unsafe.Pointer(&raw.Data[0])), len(raw.Data)*8)
	d := dtype.MustFromKind(dtype.Float64)
	return borrowArray(data, d,
		[]int{raw.Rows, raw.Cols},
		[]int{raw.Stride * 8, 8},
		0, true, m)
}

// FromVecDense wraps a gonum vector as a one-dimensional Float64
// array, borrowing its backing slice.
func FromVecDense(v *mat.VecDense) (*Array, error) {
	if v == nil || v.IsEmpty() {
		return nil, fmt.Errorf("%w: empty vector", ErrInvalidArgument)
	}
	raw := v.RawVector()
	data := unsafe.Slice((*byte)(unsafe.Pointer(&raw.Data[0])), len(raw.Data)*8)
	d := dtype.MustFromKind(dtype.Float64)
	return borrowArray(data, d, []int{raw.N}, []int{raw.Inc * 8}, 0, true, v)
}

// ToDense copies a two-dimensional array into a fresh gonum dense
// matrix, casting elements to Float64 as needed.
func ToDense(a *Array) (*mat.Dense, error) {
	if a.NDim() != 2 {
		return nil, fmt.Errorf("%w: need a 2-d array, got %d-d", ErrShapeMismatch, a.NDim())
	}
	rows, cols := a.shape[0], a.shape[1]
	out := mat.NewDense(rows, cols, nil)
	wrapped, err := FromDense(out)
	if err != nil {
		return nil, err
	}
	defer wrapped.Release()
	if err := CopyInto(wrapped, a); err != nil {
		return nil, err
	}
	return out, nil
}
