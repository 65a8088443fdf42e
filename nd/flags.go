// flags.go - Array-Flags und Anforderungs-Masken
package nd

// Flags describe layout and ownership properties of an Array. The
// same bits double as requirements for FromAny and friends.
type Flags int

const (
	// Contiguous is set when the data is laid out in C order without
	// gaps. For ndim <= 1 it is set together with Fortran.
	Contiguous Flags = 0x0001
	// Fortran is set for column-major contiguous layout.
	Fortran Flags = 0x0002
	// OwnData marks arrays whose buffer was allocated by this package
	// rather than borrowed from a base object.
	OwnData Flags = 0x0004

	// ForceCast permits casts that would otherwise be rejected as
	// unsafe.
	ForceCast Flags = 0x0010
	// EnsureCopy forces a fresh buffer even when the source already
	// satisfies every requirement. It implies Contiguous, Aligned and
	// Writeable.
	EnsureCopy Flags = 0x0020
	// EnsureArray requests a base Array rather than a subtype.
	EnsureArray Flags = 0x0040
	// ElementStrides requires every stride to be a multiple of the
	// element size.
	ElementStrides Flags = 0x0080

	// Aligned is set when the buffer offset and all strides are
	// multiples of the element alignment.
	Aligned Flags = 0x0100
	// NotSwapped requires native byte order.
	NotSwapped Flags = 0x0200
	// Writeable permits element assignment.
	Writeable Flags = 0x0400

	// UpdateIfCopy marks a working copy whose contents flow back into
	// the original array when the copy is released.
	UpdateIfCopy Flags = 0x1000
)

const (
	Behaved = Aligned | Writeable
	Carray  = Contiguous | Behaved
	Farray  = Fortran | Behaved

	// DefaultFlags is the requirement set used when a caller passes no
	// explicit flags to FromAny.
	DefaultFlags = Carray
)

// MaxDims bounds the dimensionality of any array.
const MaxDims = 32

func (f Flags) has(bits Flags) bool { return f&bits == bits }

func (f Flags) hasAny(bits Flags) bool { return f&bits != 0 }
