// swap.go - Byte-Swap-Primitive fuer Elemente fester Breite
package transfer

// StridedSwap reverses the bytes of count elements of size bytes in
// place, stepping stride bytes between element starts. Complex
// elements must be swapped per component by the caller (pass the
// component size).
func StridedSwap(p []byte, off, stride, count, size int) {
	if size <= 1 {
		return
	}
	switch size {
	case 2:
		for i := 0; i < count; i++ {
			p[off], p[off+1] = p[off+1], p[off]
			off += stride
		}
	case 4:
		for i := 0; i < count; i++ {
			p[off], p[off+3] = p[off+3], p[off]
			p[off+1], p[off+2] = p[off+2], p[off+1]
			off += stride
		}
	case 8:
		for i := 0; i < count; i++ {
			p[off], p[off+7] = p[off+7], p[off]
			p[off+1], p[off+6] = p[off+6], p[off+1]
			p[off+2], p[off+5] = p[off+5], p[off+2]
			p[off+3], p[off+4] = p[off+4], p[off+3]
			off += stride
		}
	default:
		half := size / 2
		for i := 0; i < count; i++ {
			for j := 0; j < half; j++ {
				p[off+j], p[off+size-1-j] = p[off+size-1-j], p[off+j]
			}
			off += stride
		}
	}
}

// SwapVector reverses the bytes of count packed elements of size bytes.
func SwapVector(p []byte, count, size int) {
	StridedSwap(p, 0, size, count, size)
}
