// fromany.go - Universelle Konstruktion aus beliebigen Werten
package nd

import (
	"fmt"
	"log/slog"

	"github.com/ndkit/ndkit/dtype"
	"github.com/ndkit/ndkit/envconfig"
)

// FromAny converts an arbitrary value into an array satisfying the
// given requirement flags. Arrays pass through FromArray; exporters
// are probed in order (buffer, struct, map interface, AsArray), then nested
// sequences, then plain scalars. A nil descriptor means infer the
// element type from the value. minDepth and maxDepth of zero leave
// the dimensionality unconstrained.
func FromAny(v any, d *dtype.Descr, minDepth, maxDepth int, flags Flags) (*Array, error) {
	if a, ok := v.(*Array); ok {
		r, err := FromArray(a, d, flags)
		if err != nil {
			return nil, err
		}
		return checkDepth(r, minDepth, maxDepth)
	}
	// Writing back through a copy needs an array to write into.
	if flags.has(UpdateIfCopy) {
		return nil, fmt.Errorf("%w: writeback copy requested for non-array input", ErrInvalidArgument)
	}

	if e, ok := v.(BufferExporter); ok {
		a, err := FromBuffer(e, d, -1, 0)
		if err == nil {
			r, err := fromArrayOwned(a, d, flags)
			if err != nil {
				return nil, err
			}
			return checkDepth(r, minDepth, maxDepth)
		}
		slog.Debug("buffer export failed, falling through", "error", err)
	}
	if e, ok := v.(StructExporter); ok {
		a, err := FromStructExporter(e)
		if err == nil {
			r, err := fromArrayOwned(a, d, flags)
			if err != nil {
				return nil, err
			}
			return checkDepth(r, minDepth, maxDepth)
		}
		slog.Debug("struct export failed, falling through", "error", err)
	}
	if e, ok := v.(InterfaceExporter); ok {
		a, err := FromInterfaceExporter(e)
		if err == nil {
			r, err := fromArrayOwned(a, d, flags)
			if err != nil {
				return nil, err
			}
			return checkDepth(r, minDepth, maxDepth)
		}
		slog.Debug("interface export failed, falling through", "error", err)
	}
	if e, ok := v.(AsArrayer); ok {
		a, err := e.AsArray(d)
		if err != nil {
			return nil, err
		}
		r, err := fromArrayOwned(a, d, flags)
		if err != nil {
			return nil, err
		}
		return checkDepth(r, minDepth, maxDepth)
	}

	a, err := fromNested(v, d, flags.has(Fortran))
	if err != nil {
		return nil, err
	}
	r, err := fromArrayOwned(a, d, flags)
	if err != nil {
		return nil, err
	}
	return checkDepth(r, minDepth, maxDepth)
}

// CheckFromAny is FromAny with the two requirement bits FromAny alone
// cannot honor. NotSwapped rewrites the requested descriptor to
// native order first; ElementStrides forces a clean copy when the
// result's strides are not element multiples.
func CheckFromAny(v any, d *dtype.Descr, minDepth, maxDepth int, flags Flags) (*Array, error) {
	if flags.has(NotSwapped) && d != nil && !d.IsNativeOrder() {
		d = dtype.NewSwapped(d, dtype.NativeOrder)
	}
	a, err := FromAny(v, d, minDepth, maxDepth, flags&^NotSwapped)
	if err != nil {
		return nil, err
	}
	if flags.has(ElementStrides) && !a.elementStrides() {
		r, err := FromArray(a, nil, flags|EnsureCopy)
		a.Release()
		return r, err
	}
	return a, nil
}

// FromArray adapts an existing array to the requirement flags,
// returning it retained when it already complies and a fresh copy
// otherwise. EnsureCopy always copies. UpdateIfCopy marks the copy so
// releasing it writes the data back into the original, which stays
// read-only until then.
func FromArray(a *Array, d *dtype.Descr, flags Flags) (*Array, error) {
	if d == nil {
		d = a.descr
	}
	if flags.has(NotSwapped) && !d.IsNativeOrder() {
		d = dtype.NewSwapped(d, dtype.NativeOrder)
	}
	if !dtype.Equiv(a.descr, d) && !dtype.CanCastTo(a.descr, d) && !flags.has(ForceCast) {
		return nil, fmt.Errorf("%w: cannot cast %s to %s under safe casting", ErrTypeMismatch, a.descr, d)
	}

	if !needsCopy(a, d, flags) {
		if flags.has(EnsureArray) && !a.isBaseType() {
			return baseView(a)
		}
		a.Retain()
		return a, nil
	}

	if flags.has(UpdateIfCopy) && !a.IsWriteable() {
		return nil, fmt.Errorf("%w: cannot stage a writeback copy of a read-only array", ErrNotWriteable)
	}

	fortran := flags.has(Fortran) && !flags.has(Contiguous)
	var typ *ArrayType
	if !flags.has(EnsureArray) {
		typ = a.typ
	}
	out, err := newFromDescr(dtype.CloneForMutation(d), a.shape, fortran, nil, typ)
	if err != nil {
		return nil, err
	}
	if err := CopyInto(out, a); err != nil {
		out.Release()
		return nil, err
	}
	if flags.has(UpdateIfCopy) {
		out.flags |= UpdateIfCopy
		out.base = a
		a.Retain()
		a.flags &^= Writeable
	}
	return out, nil
}

// needsCopy decides whether a satisfies descriptor and flags in
// place. EnsureCopy implies contiguity, alignment and writeability.
func needsCopy(a *Array, d *dtype.Descr, flags Flags) bool {
	if flags.has(EnsureCopy) {
		return true
	}
	if !dtype.Equiv(a.descr, d) || a.descr.IsNativeOrder() != d.IsNativeOrder() {
		return true
	}
	if flags.has(Contiguous) && !a.IsContiguous() {
		return true
	}
	if flags.has(Fortran) && !a.IsFortran() {
		return true
	}
	if flags.has(Aligned) && !a.IsAligned() {
		return true
	}
	if flags.has(Writeable) && !a.IsWriteable() {
		return true
	}
	return false
}

// baseView re-wraps a subtype instance as a plain array sharing its
// buffer.
func baseView(a *Array) (*Array, error) {
	v, err := a.View(a.shape, a.strides, a.off)
	if err != nil {
		return nil, err
	}
	v.typ = nil
	return v, nil
}

// fromArrayOwned applies FromArray to an array the caller just built
// and owns, releasing the intermediate when a copy was made.
func fromArrayOwned(a *Array, d *dtype.Descr, flags Flags) (*Array, error) {
	r, err := FromArray(a, d, flags)
	if err != nil {
		a.Release()
		return nil, err
	}
	// FromArray retained a or took its own reference; drop the
	// constructor's.
	a.Release()
	return r, nil
}

// AsBaseArray converts v to a plain base-type array.
func AsBaseArray(v any) (*Array, error) {
	if a, ok := v.(*Array); ok && a.isBaseType() {
		a.Retain()
		return a, nil
	}
	return FromAny(v, nil, 0, 0, EnsureArray)
}

// fromNested builds an array from nested sequences or a scalar,
// inferring shape and element type as needed.
func fromNested(v any, d *dtype.Descr, fortran bool) (*Array, error) {
	isChar := d != nil && d.Kind == dtype.Char
	stopAtText := !isChar
	depth, err := discoverDepth(v, MaxDims+1, stopAtText, true)
	if err != nil {
		return nil, err
	}
	if depth > MaxDims {
		return nil, fmt.Errorf("%w: nesting exceeds %d dimensions", ErrTooBig, MaxDims)
	}
	if depth == 0 {
		return FromScalar(v, d)
	}

	dims := make([]int, depth)
	strict := envconfig.StrictDiscovery() || (d != nil && d.Kind == dtype.Object)
	if err := discoverDimensions(v, depth, dims, strict); err != nil {
		return nil, err
	}
	// Character arrays built from strings drop a trailing extent of
	// one, so a list of single characters stays one-dimensional.
	if isChar && depth > 0 && dims[depth-1] == 1 {
		depth--
		dims = dims[:depth]
	}

	if d == nil {
		if d, err = inferDescr(v, depth); err != nil {
			return nil, err
		}
	}
	if d.Kind.IsFlexible() && d.Elsize == 0 {
		d = dtype.CloneForMutation(d)
		if err := discoverItemsize(v, d); err != nil {
			return nil, err
		}
		if d.Elsize == 0 {
			d.Elsize = 1
		}
	}

	a, err := NewFromDescr(dtype.CloneForMutation(d), dims, fortran, nil)
	if err != nil {
		return nil, err
	}
	if depth == 0 {
		if err := a.setLeaf(v, a.off); err != nil {
			a.Release()
			return nil, err
		}
		return a, nil
	}
	if err := assignFromSequence(a, v, a.off, 0); err != nil {
		a.Release()
		return nil, err
	}
	return a, nil
}

// checkDepth enforces the caller's dimensionality bounds on a built
// array.
func checkDepth(a *Array, minDepth, maxDepth int) (*Array, error) {
	if minDepth > 0 && a.NDim() < minDepth {
		a.Release()
		return nil, fmt.Errorf("%w: object of too small depth for desired array", ErrShapeMismatch)
	}
	if maxDepth > 0 && a.NDim() > maxDepth {
		a.Release()
		return nil, fmt.Errorf("%w: object too deep for desired array", ErrShapeMismatch)
	}
	return a, nil
}
