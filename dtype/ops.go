// ops.go - Skalare Element-Operationen pro Deskriptor
// Dieses Modul enthaelt SetItem/GetItem sowie die Wert-Konvertierung
// aus beliebigen Go-Skalaren in den Element-Typ.
package dtype

import (
	"fmt"
	"math"
	"reflect"

	"github.com/d4l3k/go-bfloat16"
	"github.com/x448/float16"
)

// SetItem encodes a scalar value into element storage p, honoring the
// descriptor's byte order. p must hold at least Elsize bytes.
func (d *Descr) SetItem(v any, p []byte) error {
	if len(p) < d.Elsize {
		return fmt.Errorf("dtype: element buffer too small for %s", d)
	}
	bo := d.encoding()

	switch d.Kind {
	case Bool:
		b, err := asBool(v)
		if err != nil {
			return err
		}
		p[0] = 0
		if b {
			p[0] = 1
		}
	case Int8, Int16, Int32, Int64:
		n, err := asInt64(v)
		if err != nil {
			return err
		}
		switch d.Elsize {
		case 1:
			p[0] = byte(n)
		case 2:
			bo.PutUint16(p, uint16(n))
		case 4:
			bo.PutUint32(p, uint32(n))
		case 8:
			bo.PutUint64(p, uint64(n))
		}
	case Uint8, Uint16, Uint32, Uint64:
		n, err := asUint64(v)
		if err != nil {
			return err
		}
		switch d.Elsize {
		case 1:
			p[0] = byte(n)
		case 2:
			bo.PutUint16(p, uint16(n))
		case 4:
			bo.PutUint32(p, uint32(n))
		case 8:
			bo.PutUint64(p, n)
		}
	case Float16:
		f, err := asFloat64(v)
		if err != nil {
			return err
		}
		bo.PutUint16(p, float16.Fromfloat32(float32(f)).Bits())
	case BFloat16:
		f, err := asFloat64(v)
		if err != nil {
			return err
		}
		bo.PutUint16(p, uint16(bfloat16.FromFloat32(float32(f))))
	case Float32:
		f, err := asFloat64(v)
		if err != nil {
			return err
		}
		bo.PutUint32(p, math.Float32bits(float32(f)))
	case Float64:
		f, err := asFloat64(v)
		if err != nil {
			return err
		}
		bo.PutUint64(p, math.Float64bits(f))
	case Complex64:
		c, err := asComplex128(v)
		if err != nil {
			return err
		}
		bo.PutUint32(p, math.Float32bits(float32(real(c))))
		bo.PutUint32(p[4:], math.Float32bits(float32(imag(c))))
	case Complex128:
		c, err := asComplex128(v)
		if err != nil {
			return err
		}
		bo.PutUint64(p, math.Float64bits(real(c)))
		bo.PutUint64(p[8:], math.Float64bits(imag(c)))
	case Char, Bytes:
		s, err := asBytes(v)
		if err != nil {
			return err
		}
		n := copy(p[:d.Elsize], s)
		for i := n; i < d.Elsize; i++ {
			p[i] = 0
		}
	case Unicode:
		s, err := asString(v)
		if err != nil {
			return err
		}
		units := d.Elsize / 4
		runes := []rune(s)
		for i := 0; i < units; i++ {
			var r rune
			if i < len(runes) {
				r = runes[i]
			}
			bo.PutUint32(p[i*4:], uint32(r))
		}
	case Object:
		return fmt.Errorf("dtype: cannot store scalars in raw object element memory")
	default:
		return fmt.Errorf("dtype: setitem not supported for %s", d)
	}
	return nil
}

// GetItem decodes the element stored at p. Integers come back as
// int64 (uint64 for Uint64), floats as float64, text as string.
func (d *Descr) GetItem(p []byte) (any, error) {
	if len(p) < d.Elsize {
		return nil, fmt.Errorf("dtype: element buffer too small for %s", d)
	}
	bo := d.encoding()

	switch d.Kind {
	case Bool:
		return p[0] != 0, nil
	case Int8:
		return int64(int8(p[0])), nil
	case Int16:
		return int64(int16(bo.Uint16(p))), nil
	case Int32:
		return int64(int32(bo.Uint32(p))), nil
	case Int64:
		return int64(bo.Uint64(p)), nil
	case Uint8:
		return int64(p[0]), nil
	case Uint16:
		return int64(bo.Uint16(p)), nil
	case Uint32:
		return int64(bo.Uint32(p)), nil
	case Uint64:
		return bo.Uint64(p), nil
	case Float16:
		return float64(float16.Frombits(bo.Uint16(p)).Float32()), nil
	case BFloat16:
		return float64(bfloat16.ToFloat32(bfloat16.BF16(bo.Uint16(p)))), nil
	case Float32:
		return float64(math.Float32frombits(bo.Uint32(p))), nil
	case Float64:
		return math.Float64frombits(bo.Uint64(p)), nil
	case Complex64:
		re := math.Float32frombits(bo.Uint32(p))
		im := math.Float32frombits(bo.Uint32(p[4:]))
		return complex128(complex(float64(re), float64(im))), nil
	case Complex128:
		re := math.Float64frombits(bo.Uint64(p))
		im := math.Float64frombits(bo.Uint64(p[8:]))
		return complex(re, im), nil
	case Char, Bytes:
		b := p[:d.Elsize]
		for len(b) > 0 && b[len(b)-1] == 0 {
			b = b[:len(b)-1]
		}
		return string(b), nil
	case Unicode:
		units := d.Elsize / 4
		runes := make([]rune, 0, units)
		for i := 0; i < units; i++ {
			r := rune(bo.Uint32(p[i*4:]))
			runes = append(runes, r)
		}
		for len(runes) > 0 && runes[len(runes)-1] == 0 {
			runes = runes[:len(runes)-1]
		}
		return string(runes), nil
	case Object:
		return nil, fmt.Errorf("dtype: cannot read scalars from raw object element memory")
	default:
		return nil, fmt.Errorf("dtype: getitem not supported for %s", d)
	}
}

// Compare orders the elements at a and b. Only meaningful for numeric
// and text kinds; the result is -1, 0 or 1.
func (d *Descr) Compare(a, b []byte) (int, error) {
	va, err := d.GetItem(a)
	if err != nil {
		return 0, err
	}
	vb, err := d.GetItem(b)
	if err != nil {
		return 0, err
	}
	switch x := va.(type) {
	case bool:
		y := vb.(bool)
		switch {
		case x == y:
			return 0, nil
		case y:
			return -1, nil
		default:
			return 1, nil
		}
	case int64:
		y := vb.(int64)
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	case uint64:
		y := vb.(uint64)
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	case float64:
		y := vb.(float64)
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	case string:
		y := vb.(string)
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("dtype: compare not supported for %s", d)
}

func asBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	}
	if n, err := asFloat64(v); err == nil {
		return n != 0, nil
	}
	return false, fmt.Errorf("dtype: cannot convert %T to bool", v)
}

func asInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case uintptr:
		return int64(x), nil
	case float32:
		return int64(x), nil
	case float64:
		return int64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	}
	return reflectInt64(v)
}

func reflectInt64(v any) (int64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return int64(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return int64(rv.Float()), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("dtype: cannot convert %T to integer", v)
}

func asUint64(v any) (uint64, error) {
	if x, ok := v.(uint64); ok {
		return x, nil
	}
	n, err := asInt64(v)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func asFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	}
	return 0, fmt.Errorf("dtype: cannot convert %T to float", v)
}

func asComplex128(v any) (complex128, error) {
	switch x := v.(type) {
	case complex128:
		return x, nil
	case complex64:
		return complex128(x), nil
	}
	f, err := asFloat64(v)
	if err != nil {
		return 0, fmt.Errorf("dtype: cannot convert %T to complex", v)
	}
	return complex(f, 0), nil
}

func asString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case rune:
		return string(x), nil
	}
	return "", fmt.Errorf("dtype: cannot convert %T to string", v)
}

func asBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case []byte:
		return x, nil
	case string:
		return []byte(x), nil
	}
	return nil, fmt.Errorf("dtype: cannot convert %T to bytes", v)
}

// ScalarSize returns the element byte count a scalar value needs in a
// flexible type: its length, times 4 for Unicode code units.
func (d *Descr) ScalarSize(v any) int {
	switch x := v.(type) {
	case string:
		if d.Kind == Unicode {
			return len([]rune(x)) * 4
		}
		return len(x)
	case []byte:
		return len(x)
	}
	return 0
}
