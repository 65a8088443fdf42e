// cast.go - Typ-Aequivalenz und sichere Cast-Regeln
package dtype

// Equiv reports whether two descriptors have the same memory layout
// apart from byte order. Equivalent types can exchange data with a
// plain (possibly swapping) copy.
func Equiv(a, b *Descr) bool {
	if a.Kind != b.Kind || a.Elsize != b.Elsize {
		return false
	}
	if (a.Subarray == nil) != (b.Subarray == nil) {
		return false
	}
	if a.Subarray != nil {
		if len(a.Subarray.Shape) != len(b.Subarray.Shape) {
			return false
		}
		for i := range a.Subarray.Shape {
			if a.Subarray.Shape[i] != b.Subarray.Shape[i] {
				return false
			}
		}
		return Equiv(a.Subarray.Base, b.Subarray.Base)
	}
	return true
}

// rank orders the numeric kinds for promotion purposes. Wider and
// "more general" kinds get higher ranks.
func rank(k Kind) int {
	switch k {
	case Bool:
		return 0
	case Int8, Uint8:
		return 1
	case Int16, Uint16, Float16, BFloat16:
		return 2
	case Int32, Uint32:
		return 3
	case Int64, Uint64:
		return 4
	case Float32:
		return 5
	case Float64:
		return 6
	case Complex64:
		return 7
	case Complex128:
		return 8
	}
	return -1
}

// CanCastTo reports whether every value of `from` is representable in
// `to` without loss of kind (the "safe casting" rule).
func CanCastTo(from, to *Descr) bool {
	if Equiv(from, to) {
		return true
	}
	if from.Subarray != nil || to.Subarray != nil {
		return false
	}

	// Everything formats losslessly into a large enough text element.
	if to.Kind == Bytes || to.Kind == Unicode {
		return from.Kind != Object
	}
	if from.Kind == Object || to.Kind == Object {
		return false
	}
	if from.Kind.IsText() || to.Kind.IsText() {
		return false
	}

	if from.Kind == Bool {
		return true
	}
	if to.Kind == Bool {
		return false
	}

	switch {
	case from.Kind.IsInteger() && to.Kind.IsInteger():
		if from.Kind.IsSigned() && !to.Kind.IsSigned() {
			return false
		}
		if !from.Kind.IsSigned() && to.Kind.IsSigned() {
			return to.Elsize > from.Elsize
		}
		return to.Elsize >= from.Elsize
	case from.Kind.IsInteger():
		// Integer to float/complex: the mantissa must cover the
		// integer range.
		if !to.Kind.IsFloat() && !to.Kind.IsComplex() {
			return false
		}
		switch to.Kind {
		case Float16, BFloat16:
			return from.Elsize < 2
		case Float32, Complex64:
			return from.Elsize < 4
		}
		return true
	case from.Kind.IsFloat() && (to.Kind.IsFloat() || to.Kind.IsComplex()):
		return rank(to.Kind) >= rank(from.Kind)
	case from.Kind.IsComplex() && to.Kind.IsComplex():
		return to.Elsize >= from.Elsize
	}
	return false
}

// Promote returns the smaller common descriptor both kinds cast to
// safely. Used when inferring a type from mixed nested scalars.
func Promote(a, b *Descr) *Descr {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.Kind == b.Kind {
		if b.Elsize > a.Elsize {
			return b
		}
		return a
	}
	if CanCastTo(a, b) {
		return b
	}
	if CanCastTo(b, a) {
		return a
	}
	// Mixed signedness or kind: climb to the first kind that holds both.
	for _, k := range []Kind{Int16, Int32, Int64, Float64, Complex128} {
		c := singletons[k]
		if CanCastTo(a, c) && CanCastTo(b, c) {
			return c
		}
	}
	return singletons[Complex128]
}
