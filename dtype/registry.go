// registry.go - Deskriptor-Registry und Copy-on-Write Verwaltung
// Dieses Modul enthaelt FromKind, CloneForMutation und die
// Typestring-Konvertierung fuer das Interchange-Protokoll.
package dtype

import (
	"fmt"
	"strconv"
)

var singletons [Object + 1]*Descr

func init() {
	for k := Bool; k <= Object; k++ {
		singletons[k] = &Descr{
			Kind:   k,
			Elsize: k.FixedSize(),
			Order:  NativeOrder,
			shared: true,
		}
	}
}

// FromKind returns the shared descriptor for a kind. Flexible kinds
// come back with Elsize 0; size them via CloneForMutation.
func FromKind(k Kind) (*Descr, error) {
	if k < Bool || k > Object {
		return nil, fmt.Errorf("dtype: unknown kind %d", int(k))
	}
	return singletons[k], nil
}

// MustFromKind is FromKind for statically known kinds.
func MustFromKind(k Kind) *Descr {
	d, err := FromKind(k)
	if err != nil {
		panic(err)
	}
	return d
}

// CloneForMutation returns a descriptor safe to mutate. Shared
// singletons are copied; an already-private descriptor is returned
// as is.
func CloneForMutation(d *Descr) *Descr {
	if !d.shared {
		return d
	}
	c := *d
	c.shared = false
	if d.Subarray != nil {
		sub := *d.Subarray
		sub.Shape = append([]int(nil), d.Subarray.Shape...)
		c.Subarray = &sub
	}
	return &c
}

// NewSubarray builds a descriptor whose elements are fixed-size arrays
// of base elements.
func NewSubarray(base *Descr, shape []int) (*Descr, error) {
	if base == nil || len(shape) == 0 {
		return nil, fmt.Errorf("dtype: subarray needs a base type and a shape")
	}
	elsize := base.Elsize
	for _, n := range shape {
		if n < 0 {
			return nil, fmt.Errorf("dtype: negative subarray extent %d", n)
		}
		elsize *= n
	}
	return &Descr{
		Kind:     base.Kind,
		Elsize:   elsize,
		Order:    base.Order,
		Subarray: &Subshape{Base: base, Shape: append([]int(nil), shape...)},
	}, nil
}

// NewSwapped returns a copy of d tagged with the given byte order.
func NewSwapped(d *Descr, order ByteOrder) *Descr {
	if d.Order == order {
		return d
	}
	c := CloneForMutation(d)
	c.Order = order
	return c
}

// ParseTypeString converts an interchange typestring like "<f8" or
// "|S5" into a descriptor. The first byte is the byte order marker
// ('<' little, '>' big, '=' or '|' native/irrelevant), the second the
// kind code, the remainder the item size in bytes.
func ParseTypeString(s string) (*Descr, error) {
	if len(s) < 3 {
		return nil, fmt.Errorf("dtype: typestring %q too short", s)
	}

	var order ByteOrder
	switch s[0] {
	case '=', '|':
		order = NativeOrder
	case '<':
		if nativeIsLittle {
			order = NativeOrder
		} else {
			order = SwappedOrder
		}
	case '>':
		if nativeIsLittle {
			order = SwappedOrder
		} else {
			order = NativeOrder
		}
	default:
		return nil, fmt.Errorf("dtype: typestring %q has no byte order marker", s)
	}

	size, err := strconv.Atoi(s[2:])
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("dtype: typestring %q has a bad item size", s)
	}

	k, err := kindFromCode(s[1], size)
	if err != nil {
		return nil, err
	}

	d := CloneForMutation(singletons[k])
	d.Order = order
	if k.IsFlexible() {
		d.Elsize = size
		if k == Unicode {
			// Unicode typestrings count code units, storage is 4 bytes each.
			d.Elsize = size * 4
		}
	} else if d.Elsize != size {
		return nil, fmt.Errorf("dtype: typestring %q size does not match kind %s", s, k)
	}
	return d, nil
}

func kindFromCode(code byte, size int) (Kind, error) {
	switch code {
	case 'b':
		return Bool, nil
	case 'i':
		switch size {
		case 1:
			return Int8, nil
		case 2:
			return Int16, nil
		case 4:
			return Int32, nil
		case 8:
			return Int64, nil
		}
	case 'u':
		switch size {
		case 1:
			return Uint8, nil
		case 2:
			return Uint16, nil
		case 4:
			return Uint32, nil
		case 8:
			return Uint64, nil
		}
	case 'f':
		switch size {
		case 2:
			return Float16, nil
		case 4:
			return Float32, nil
		case 8:
			return Float64, nil
		}
	case 'c':
		switch size {
		case 8:
			return Complex64, nil
		case 16:
			return Complex128, nil
		}
	case 'S', 'a':
		return Bytes, nil
	case 'U':
		return Unicode, nil
	}
	return 0, fmt.Errorf("dtype: unsupported typestring code %q with size %d", string(code), size)
}

// TypeString formats d as an interchange typestring.
func (d *Descr) TypeString() string {
	marker := byte('|')
	if d.Elsize > 1 && !d.Kind.IsText() {
		little := nativeIsLittle
		if d.Order == SwappedOrder {
			little = !little
		}
		if little {
			marker = '<'
		} else {
			marker = '>'
		}
	}

	var code byte
	size := d.Elsize
	switch {
	case d.Kind == Bool:
		code = 'b'
	case d.Kind.IsSigned():
		code = 'i'
	case d.Kind.IsInteger():
		code = 'u'
	case d.Kind.IsFloat():
		code = 'f'
	case d.Kind.IsComplex():
		code = 'c'
	case d.Kind == Bytes || d.Kind == Char:
		code = 'S'
	case d.Kind == Unicode:
		code = 'U'
		size = d.Elsize / 4
	default:
		code = 'V'
	}
	return fmt.Sprintf("%c%c%d", marker, code, size)
}
