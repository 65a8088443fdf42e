// discover.go - Tiefen-, Form- und Typ-Erkennung für geschachtelte Werte
package nd

import (
	"fmt"
	"reflect"

	"github.com/ndkit/ndkit/dtype"
)

// Sequence is the capability a value needs to act as one nesting
// level during construction. Slices and Go arrays get it for free
// via reflection.
type Sequence interface {
	Len() int
	Index(i int) any
}

// Record marks a heterogeneous tuple-like value. Records count as
// leaves during shape discovery even though they hold elements.
type Record []any

type reflectSeq struct{ v reflect.Value }

func (s reflectSeq) Len() int        { return s.v.Len() }
func (s reflectSeq) Index(i int) any { return s.v.Index(i).Interface() }

// asSequence adapts v to a Sequence when it is one. Strings, byte
// slices, Records and arrays are never sequences here; they are
// handled as leaves or through their own paths.
func asSequence(v any) (Sequence, bool) {
	switch v.(type) {
	case nil, string, []byte, Record, *Array:
		return nil, false
	}
	if s, ok := v.(Sequence); ok {
		return s, true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return reflectSeq{rv}, true
	}
	return nil, false
}

// discoverDepth returns the nesting depth of v, capped at maxDepth.
// Arrays and exporters report their own dimensionality instead of
// being walked. stopAtText treats strings and byte slices as leaves,
// stopAtRecord does the same for Records.
func discoverDepth(v any, maxDepth int, stopAtText, stopAtRecord bool) (int, error) {
	if maxDepth <= 0 {
		return 0, nil
	}
	switch t := v.(type) {
	case *Array:
		return min(t.NDim(), maxDepth), nil
	case string, []byte:
		if stopAtText {
			return 0, nil
		}
		return 1, nil
	case Record:
		if stopAtRecord {
			return 0, nil
		}
		v = []any(t)
	}
	if e, ok := v.(StructExporter); ok {
		if s, err := e.ArrayStruct(); err == nil {
			return min(len(s.Shape), maxDepth), nil
		}
	}
	if e, ok := v.(InterfaceExporter); ok {
		if m := e.ArrayInterface(); m != nil {
			if shape, ok := m["shape"].([]int); ok {
				return min(len(shape), maxDepth), nil
			}
		}
	}
	seq, ok := asSequence(v)
	if !ok {
		return 0, nil
	}
	if seq.Len() == 0 {
		return 1, nil
	}
	sub, err := discoverDepth(seq.Index(0), maxDepth-1, stopAtText, stopAtRecord)
	if err != nil {
		return 0, err
	}
	return sub + 1, nil
}

// discoverDimensions fills dims (length maxDepth) with the extents of
// v. With check set, every sibling must report identical extents and
// a mismatch is an error. Without it, ragged input is tolerated by
// shrinking each trailing extent to the minimum seen.
func discoverDimensions(v any, maxDepth int, dims []int, check bool) error {
	if maxDepth == 0 {
		return nil
	}
	if a, ok := v.(*Array); ok {
		// A nested array stands in for its own shape. When it is
		// shallower than expected the missing extents become zero,
		// so a 0-d array contributes an empty axis.
		for i := 0; i < maxDepth; i++ {
			if i < a.NDim() {
				dims[i] = a.shape[i]
			} else {
				dims[i] = 0
			}
		}
		return nil
	}
	seq, ok := asSequence(v)
	if !ok {
		switch t := v.(type) {
		case string:
			dims[0] = len(t)
		case []byte:
			dims[0] = len(t)
		default:
			return fmt.Errorf("%w: value of type %T at depth %d is not a sequence", ErrInvalidArgument, v, maxDepth)
		}
		for i := 1; i < maxDepth; i++ {
			dims[i] = 0
		}
		return nil
	}
	n := seq.Len()
	dims[0] = n
	if maxDepth == 1 || n == 0 {
		return nil
	}
	if err := discoverDimensions(seq.Index(0), maxDepth-1, dims[1:], check); err != nil {
		return err
	}
	tmp := make([]int, maxDepth-1)
	for i := 1; i < n; i++ {
		if err := discoverDimensions(seq.Index(i), maxDepth-1, tmp, check); err != nil {
			return err
		}
		for j, d := range tmp {
			if d == dims[1+j] {
				continue
			}
			if check {
				return fmt.Errorf("%w: inconsistent extent on axis %d (%d versus %d)", ErrShapeMismatch, 1+j, dims[1+j], d)
			}
			if d < dims[1+j] {
				dims[1+j] = d
			}
		}
	}
	return nil
}

// discoverItemsize walks the leaves of v and records the largest
// flexible element it finds into d's element size.
func discoverItemsize(v any, d *dtype.Descr) error {
	if a, ok := v.(*Array); ok {
		if a.descr.Kind.IsFlexible() {
			if a.descr.Elsize > d.Elsize {
				d.Elsize = a.descr.Elsize
			}
			return nil
		}
		// Fixed-size nested arrays have nothing to contribute.
		return nil
	}
	if seq, ok := asSequence(v); ok {
		for i := 0; i < seq.Len(); i++ {
			if err := discoverItemsize(seq.Index(i), d); err != nil {
				return err
			}
		}
		return nil
	}
	n := d.ScalarSize(v)
	if n > d.Elsize {
		d.Elsize = n
	}
	return nil
}

// inferDescr derives an element type for v by promoting the types of
// all its leaves. Depth bounds the walk.
func inferDescr(v any, depth int) (*dtype.Descr, error) {
	if a, ok := v.(*Array); ok {
		return a.descr, nil
	}
	if depth > 0 {
		if seq, ok := asSequence(v); ok {
			var out *dtype.Descr
			for i := 0; i < seq.Len(); i++ {
				d, err := inferDescr(seq.Index(i), depth-1)
				if err != nil {
					return nil, err
				}
				if out == nil {
					out = d
				} else {
					out = dtype.Promote(out, d)
				}
			}
			if out == nil {
				// Empty sequences default to double precision.
				out = dtype.MustFromKind(dtype.Float64)
			}
			return out, nil
		}
	}
	return scalarDescr(v)
}

// scalarDescr maps one Go leaf value to its natural element type.
func scalarDescr(v any) (*dtype.Descr, error) {
	switch t := v.(type) {
	case bool:
		return dtype.MustFromKind(dtype.Bool), nil
	case int8:
		return dtype.MustFromKind(dtype.Int8), nil
	case int16:
		return dtype.MustFromKind(dtype.Int16), nil
	case int32:
		return dtype.MustFromKind(dtype.Int32), nil
	case int, int64:
		return dtype.MustFromKind(dtype.Int64), nil
	case uint8:
		return dtype.MustFromKind(dtype.Uint8), nil
	case uint16:
		return dtype.MustFromKind(dtype.Uint16), nil
	case uint32:
		return dtype.MustFromKind(dtype.Uint32), nil
	case uint, uint64:
		return dtype.MustFromKind(dtype.Uint64), nil
	case float32:
		return dtype.MustFromKind(dtype.Float32), nil
	case float64:
		return dtype.MustFromKind(dtype.Float64), nil
	case complex64:
		return dtype.MustFromKind(dtype.Complex64), nil
	case complex128:
		return dtype.MustFromKind(dtype.Complex128), nil
	case string:
		d := dtype.CloneForMutation(dtype.MustFromKind(dtype.Unicode))
		d.Elsize = 4 * len([]rune(t))
		return d, nil
	case []byte:
		d := dtype.CloneForMutation(dtype.MustFromKind(dtype.Bytes))
		d.Elsize = len(t)
		return d, nil
	case Record:
		return dtype.MustFromKind(dtype.Object), nil
	case nil:
		return dtype.MustFromKind(dtype.Object), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return dtype.MustFromKind(dtype.Bool), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return dtype.MustFromKind(dtype.Int64), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return dtype.MustFromKind(dtype.Uint64), nil
	case reflect.Float32, reflect.Float64:
		return dtype.MustFromKind(dtype.Float64), nil
	}
	return dtype.MustFromKind(dtype.Object), nil
}
