// dtype.go - Element-Typ Deskriptoren fuer ndkit Arrays
// Dieses Modul definiert Kind, ByteOrder und die Descr-Struktur.
package dtype

import "fmt"

// Kind identifies an element type.
type Kind int

const (
	Bool Kind = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	BFloat16
	Float32
	Float64
	Complex64
	Complex128
	// Char is a single text character. Unlike Bytes, sequences of
	// characters keep their per-character axis during shape discovery.
	Char
	// Bytes and Unicode are flexible types: their element size is set
	// per descriptor, not per kind.
	Bytes
	Unicode
	// Object elements hold references to arbitrary values. The
	// construction core only ever rejects or zero-initializes them.
	Object
)

// String returns the type name.
func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Float16:
		return "float16"
	case BFloat16:
		return "bfloat16"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	case Char:
		return "char"
	case Bytes:
		return "bytes"
	case Unicode:
		return "unicode"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// FixedSize returns the element size in bytes, or 0 for flexible kinds.
func (k Kind) FixedSize() int {
	switch k {
	case Bool, Int8, Uint8, Char:
		return 1
	case Int16, Uint16, Float16, BFloat16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64, Complex64, Object:
		return 8
	case Complex128:
		return 16
	default:
		return 0
	}
}

// IsFlexible reports whether the element size is per-descriptor.
func (k Kind) IsFlexible() bool {
	return k == Bytes || k == Unicode
}

// IsText reports whether elements are text-like (stop shape discovery
// at string leaves unless building a Char array).
func (k Kind) IsText() bool {
	return k == Char || k == Bytes || k == Unicode
}

func (k Kind) IsInteger() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

func (k Kind) IsSigned() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

func (k Kind) IsFloat() bool {
	switch k {
	case Float16, BFloat16, Float32, Float64:
		return true
	}
	return false
}

func (k Kind) IsComplex() bool {
	return k == Complex64 || k == Complex128
}

// ByteOrder marks a descriptor as native or byte-swapped relative to
// the machine the process runs on.
type ByteOrder int

const (
	NativeOrder ByteOrder = iota
	SwappedOrder
)

func (o ByteOrder) String() string {
	if o == SwappedOrder {
		return "swapped"
	}
	return "native"
}

// Subshape describes a sub-array element type: each element is itself
// a fixed-size array of Base elements.
type Subshape struct {
	Base  *Descr
	Shape []int
}

// Descr describes one element type: its kind, size, byte order and an
// optional sub-array shape. Descriptors obtained from FromKind are
// shared singletons; mutate only copies obtained from CloneForMutation.
type Descr struct {
	Kind     Kind
	Elsize   int
	Order    ByteOrder
	Subarray *Subshape

	shared bool
}

// NeedsInit reports whether freshly allocated element storage must be
// zero-filled before use.
func (d *Descr) NeedsInit() bool {
	if d.Kind == Object {
		return true
	}
	if d.Subarray != nil {
		return d.Subarray.Base.NeedsInit()
	}
	return false
}

// HasRefs reports whether elements hold references that cannot survive
// a raw reallocation of the backing memory.
func (d *Descr) HasRefs() bool {
	if d.Kind == Object {
		return true
	}
	if d.Subarray != nil {
		return d.Subarray.Base.HasRefs()
	}
	return false
}

// Alignment returns the required element alignment in bytes.
func (d *Descr) Alignment() int {
	switch d.Kind {
	case Bytes, Unicode, Char:
		return 1
	case Complex128:
		return 8
	default:
		if d.Elsize > 8 {
			return 8
		}
		if d.Elsize < 1 {
			return 1
		}
		return d.Elsize
	}
}

// IsNativeOrder reports whether element bytes are stored in machine order.
// Single-byte and flexible byte types are order-insensitive.
func (d *Descr) IsNativeOrder() bool {
	if d.Order == NativeOrder {
		return true
	}
	return d.Elsize <= 1 || d.Kind == Bytes || d.Kind == Char
}

func (d *Descr) String() string {
	if d.Subarray != nil {
		return fmt.Sprintf("(%s, %v)", d.Subarray.Base, d.Subarray.Shape)
	}
	if d.Kind.IsFlexible() {
		return fmt.Sprintf("%s%d", d.Kind, d.Elsize)
	}
	if d.Order == SwappedOrder {
		return d.Kind.String() + " (swapped)"
	}
	return d.Kind.String()
}
