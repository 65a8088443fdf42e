// fill.go - Arithmetische Progression fuer arange
package dtype

import "fmt"

// CanFill reports whether d supports arithmetic-progression fill.
func (d *Descr) CanFill() bool {
	switch {
	case d.Kind.IsInteger(), d.Kind.IsFloat(), d.Kind.IsComplex():
		return d.Subarray == nil
	}
	return false
}

// Fill extrapolates elements 2..n-1 of a contiguous buffer from the
// progression seeded in elements 0 and 1. The buffer must be in the
// descriptor's own byte order.
func (d *Descr) Fill(p []byte, n int) error {
	if !d.CanFill() {
		return fmt.Errorf("dtype: no fill capability for %s", d)
	}
	if n <= 2 {
		return nil
	}
	es := d.Elsize

	v0, err := d.GetItem(p)
	if err != nil {
		return err
	}
	v1, err := d.GetItem(p[es:])
	if err != nil {
		return err
	}

	switch d.Kind {
	case Uint64:
		start := v0.(uint64)
		delta := v1.(uint64) - start
		for i := 2; i < n; i++ {
			if err := d.SetItem(start+uint64(i)*delta, p[i*es:]); err != nil {
				return err
			}
		}
	case Complex64, Complex128:
		start := v0.(complex128)
		delta := v1.(complex128) - start
		for i := 2; i < n; i++ {
			if err := d.SetItem(start+complex(float64(i), 0)*delta, p[i*es:]); err != nil {
				return err
			}
		}
	default:
		if d.Kind.IsInteger() {
			start := v0.(int64)
			delta := v1.(int64) - start
			for i := 2; i < n; i++ {
				if err := d.SetItem(start+int64(i)*delta, p[i*es:]); err != nil {
					return err
				}
			}
			return nil
		}
		start := v0.(float64)
		delta := v1.(float64) - start
		for i := 2; i < n; i++ {
			if err := d.SetItem(start+float64(i)*delta, p[i*es:]); err != nil {
				return err
			}
		}
	}
	return nil
}
