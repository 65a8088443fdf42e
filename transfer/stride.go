// stride.go - Rohe Strided-Copy-Primitive
// Feste Elementbreiten (1/2/4/8/16) haben eigene Schleifen, alles
// andere laeuft ueber copy() pro Element.
package transfer

// StridedCopy copies count elements of elsize bytes from src to dst,
// stepping the given byte strides. Negative strides walk backwards;
// offsets address the first element of each run.
func StridedCopy(dst []byte, dstOff, dstStride int, src []byte, srcOff, srcStride, count, elsize int) {
	if count <= 0 {
		return
	}
	// Contiguous runs collapse to one copy.
	if dstStride == elsize && srcStride == elsize {
		copy(dst[dstOff:dstOff+count*elsize], src[srcOff:srcOff+count*elsize])
		return
	}

	do, so := dstOff, srcOff
	switch elsize {
	case 1:
		for i := 0; i < count; i++ {
			dst[do] = src[so]
			do += dstStride
			so += srcStride
		}
	case 2:
		for i := 0; i < count; i++ {
			dst[do] = src[so]
			dst[do+1] = src[so+1]
			do += dstStride
			so += srcStride
		}
	case 4:
		for i := 0; i < count; i++ {
			copy(dst[do:do+4], src[so:so+4])
			do += dstStride
			so += srcStride
		}
	case 8:
		for i := 0; i < count; i++ {
			copy(dst[do:do+8], src[so:so+8])
			do += dstStride
			so += srcStride
		}
	case 16:
		for i := 0; i < count; i++ {
			copy(dst[do:do+16], src[so:so+16])
			do += dstStride
			so += srcStride
		}
	default:
		for i := 0; i < count; i++ {
			copy(dst[do:do+elsize], src[so:so+elsize])
			do += dstStride
			so += srcStride
		}
	}
}
