// endian.go - Erkennung der nativen Byte-Reihenfolge
package dtype

import (
	"encoding/binary"
	"unsafe"
)

var (
	nativeIsLittle bool

	// NativeEndian is the machine byte order used for all native-order
	// element encoding.
	NativeEndian binary.ByteOrder
)

func init() {
	probe := uint16(1)
	nativeIsLittle = *(*byte)(unsafe.Pointer(&probe)) == 1
	if nativeIsLittle {
		NativeEndian = binary.LittleEndian
	} else {
		NativeEndian = binary.BigEndian
	}
}

// NativeIsLittle reports whether the machine is little-endian.
func NativeIsLittle() bool { return nativeIsLittle }

// swappedEndian returns the opposite of the machine byte order.
func swappedEndian() binary.ByteOrder {
	if nativeIsLittle {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// encoding returns the byte order elements of d are stored in.
func (d *Descr) encoding() binary.ByteOrder {
	if d.Order == SwappedOrder {
		return swappedEndian()
	}
	return NativeEndian
}
