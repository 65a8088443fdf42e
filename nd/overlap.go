// overlap.go - Erkennung überlappender Speicherbereiche
package nd

// memoryExtents computes the half-open byte range [lo, hi) an array
// touches within its buffer. Negative strides extend the range
// downward from the start offset.
func memoryExtents(a *Array) (lo, hi int) {
	lo = a.off
	hi = a.off + a.descr.Elsize
	for i, dim := range a.shape {
		if dim == 0 {
			return a.off, a.off
		}
		span := (dim - 1) * a.strides[i]
		if span >= 0 {
			hi += span
		} else {
			lo += span
		}
	}
	return lo, hi
}

// arraysOverlap reports whether two arrays can touch common bytes.
// Arrays over distinct buffers never overlap; within one buffer the
// check is on bounding extents, so it may report overlap for
// interleaved views that never actually share an element.
func arraysOverlap(a, b *Array) bool {
	if a == nil || b == nil {
		return false
	}
	if !sameBuffer(a.data, b.data) {
		return false
	}
	alo, ahi := memoryExtents(a)
	blo, bhi := memoryExtents(b)
	return alo < bhi && blo < ahi
}

// sameBuffer reports whether two slices alias the same allocation.
// Comparing the address of the first cell is enough here because all
// views slice from position zero of the owner's buffer.
func sameBuffer(x, y []byte) bool {
	if len(x) == 0 || len(y) == 0 {
		return false
	}
	return &x[0] == &y[0]
}
