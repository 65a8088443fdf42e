// nditer.go - N-dimensionale Iteration ueber Strided Layouts
// Dieses Modul liefert maximale zusammenhaengende innere Laeufe ueber
// ein oder mehrere synchron iterierte Layouts. Es rechnet nur mit
// Byte-Offsets; die eigentlichen Datenpuffer bleiben beim Aufrufer.
package nditer

import "fmt"

// Iter walks one or more strided layouts that share a shape, handing
// out maximal contiguous inner runs. For every run, Off and Stride
// give the starting byte offset and inner byte stride per operand,
// and Count the run length in elements.
//
// Trailing axes are coalesced into the inner run whenever every
// operand is contiguous across them, so a fully contiguous operand
// pair iterates in a single run.
type Iter struct {
	shape   []int
	strides [][]int
	base    []int

	idx    []int
	offs   []int
	inner  int
	runs   int
	pos    int
	primed bool
}

// New builds an iterator over a single layout.
func New(shape, strides []int, off int) *Iter {
	it, err := NewMulti(shape, [][]int{strides}, []int{off})
	if err != nil {
		// A single operand always matches its own shape.
		panic(err)
	}
	return it
}

// NewMulti builds a synchronized iterator over several layouts with a
// common shape. strides[i] and offs[i] describe operand i.
func NewMulti(shape []int, strides [][]int, offs []int) (*Iter, error) {
	if len(strides) == 0 || len(strides) != len(offs) {
		return nil, fmt.Errorf("nditer: operand stride and offset counts differ")
	}
	for i, s := range strides {
		if len(s) != len(shape) {
			return nil, fmt.Errorf("nditer: operand %d has %d strides for %d axes", i, len(s), len(shape))
		}
	}

	cshape, cstrides := coalesce(shape, strides)

	it := &Iter{
		shape:   cshape,
		strides: cstrides,
		base:    append([]int(nil), offs...),
		offs:    make([]int, len(offs)),
		idx:     make([]int, len(cshape)),
	}

	it.inner = 1
	if n := len(cshape); n > 0 {
		it.inner = cshape[n-1]
	}
	it.runs = 1
	for _, n := range cshape[:max(len(cshape)-1, 0)] {
		it.runs *= n
	}
	for _, n := range cshape {
		if n == 0 {
			it.runs = 0
		}
	}
	return it, nil
}

// coalesce drops extent-1 axes and merges trailing axes that every
// operand steps through contiguously.
func coalesce(shape []int, strides [][]int) ([]int, [][]int) {
	nops := len(strides)
	outShape := make([]int, 0, len(shape))
	outStrides := make([][]int, nops)
	for i := range outStrides {
		outStrides[i] = make([]int, 0, len(shape))
	}

	for k, n := range shape {
		if n == 1 {
			continue
		}
		outShape = append(outShape, n)
		for i := range outStrides {
			outStrides[i] = append(outStrides[i], strides[i][k])
		}
	}

	for len(outShape) >= 2 {
		last := len(outShape) - 1
		mergeable := true
		for i := 0; i < nops; i++ {
			s := outStrides[i]
			if s[last-1] != s[last]*outShape[last] {
				mergeable = false
				break
			}
		}
		if !mergeable {
			break
		}
		outShape[last-1] *= outShape[last]
		outShape = outShape[:last]
		for i := 0; i < nops; i++ {
			outStrides[i][last-1] = outStrides[i][last]
			outStrides[i] = outStrides[i][:last]
		}
	}
	return outShape, outStrides
}

// Next advances to the next run. The first call positions the
// iterator on the first run; it returns false once all runs are done.
func (it *Iter) Next() bool {
	if it.pos >= it.runs {
		return false
	}
	if !it.primed {
		it.primed = true
		copy(it.offs, it.base)
		it.pos = 1
		return true
	}
	if it.pos >= it.runs {
		return false
	}
	// Odometer over the outer axes, last outer axis fastest.
	outer := len(it.shape) - 1
	for k := outer - 1; k >= 0; k-- {
		it.idx[k]++
		if it.idx[k] < it.shape[k] {
			break
		}
		it.idx[k] = 0
	}
	for i := range it.offs {
		off := it.base[i]
		for k := 0; k < outer; k++ {
			off += it.idx[k] * it.strides[i][k]
		}
		it.offs[i] = off
	}
	it.pos++
	return true
}

// Count returns the current run length in elements.
func (it *Iter) Count() int {
	return it.inner
}

// Off returns the current starting byte offset of operand op.
func (it *Iter) Off(op int) int {
	return it.offs[op]
}

// Stride returns the inner byte stride of operand op.
func (it *Iter) Stride(op int) int {
	if len(it.shape) == 0 {
		return 0
	}
	return it.strides[op][len(it.shape)-1]
}

// Runs returns the total run count.
func (it *Iter) Runs() int {
	return it.runs
}
