// subtype.go - Erweiterungspunkt für Array-Untertypen
package nd

// ArrayType lets embedders hook array creation. Constructors that
// accept a type run Finalize on every freshly built array, passing
// the array the new one was derived from when there is one.
type ArrayType struct {
	Name string

	// Finalize is called after allocation, before the array is
	// returned. parent is nil for arrays built from scratch.
	Finalize func(a *Array, parent *Array) error
}

// BaseType is the plain array type with no finalization.
var BaseType = &ArrayType{Name: "ndarray"}

// Type returns the array's type, BaseType when none was set.
func (a *Array) Type() *ArrayType {
	if a.typ == nil {
		return BaseType
	}
	return a.typ
}

func (a *Array) isBaseType() bool {
	return a.typ == nil || a.typ == BaseType
}
