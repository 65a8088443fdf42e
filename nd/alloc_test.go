// MODUL: alloc_test
// ZWECK: Tests fuer Allokation, Stride-Berechnung und Flags
// INPUT: Synthetische Formen und Deskriptoren
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing
// HINWEISE: Prueft C/Fortran-Strides, Subarray-Splice und Ueberlauf

package nd

import (
	"errors"
	"math"
	"testing"

	"github.com/ndkit/ndkit/dtype"
)

func TestContiguousStridesC(t *testing.T) {
	a, err := New(dtype.Float64, 2, 3, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{96, 32, 8}
	for i, s := range a.Strides() {
		if s != want[i] {
			t.Errorf("Strides = %v, erwartet %v", a.Strides(), want)
			break
		}
	}
	if !a.IsContiguous() || a.IsFortran() {
		t.Errorf("Flags = %#x, erwartet C-kontiguos", a.Flags())
	}
	if !a.OwnsData() || !a.IsWriteable() || !a.IsAligned() {
		t.Errorf("Flags = %#x, erwartet OwnData|Writeable|Aligned", a.Flags())
	}
}

func TestContiguousStridesFortran(t *testing.T) {
	d := dtype.MustFromKind(dtype.Int32)
	a, err := NewFromDescr(d, []int{2, 3, 4}, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{4, 8, 24}
	for i, s := range a.Strides() {
		if s != want[i] {
			t.Errorf("Strides = %v, erwartet %v", a.Strides(), want)
			break
		}
	}
	if !a.IsFortran() || a.IsContiguous() {
		t.Errorf("Flags = %#x, erwartet Fortran-kontiguos", a.Flags())
	}
}

func TestOneDimIsBothOrders(t *testing.T) {
	a, err := New(dtype.Float64, 7)
	if err != nil {
		t.Fatal(err)
	}
	if !a.IsContiguous() || !a.IsFortran() {
		t.Error("1-d Arrays sind in beiden Ordnungen kontiguos")
	}
}

func TestZeroSizeKeepsOneElement(t *testing.T) {
	a, err := New(dtype.Float64, 3, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 0 {
		t.Errorf("Len = %d, erwartet 0", a.Len())
	}
	// Der Puffer haelt trotzdem ein Element
	if len(a.Data()) != 8 {
		t.Errorf("Puffer = %d Bytes, erwartet 8", len(a.Data()))
	}
	// Nullextents zaehlen als 1 fuer die Stride-Berechnung
	if a.Strides()[0] != 16 {
		t.Errorf("Strides = %v, erwartet [16 8 8] fuer Form [3 0 2]", a.Strides())
	}
}

func TestSubarraySplice(t *testing.T) {
	base := dtype.MustFromKind(dtype.Int16)
	sub, err := dtype.NewSubarray(base, []int{4, 5})
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewFromDescr(sub, []int{3}, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	wantShape := []int{3, 4, 5}
	if !shapesEqual(a.Shape(), wantShape) {
		t.Errorf("Shape = %v, erwartet %v", a.Shape(), wantShape)
	}
	if a.Descr().Kind != dtype.Int16 || a.Descr().Elsize != 2 {
		t.Errorf("Element-Typ = %s, erwartet int16", a.Descr())
	}
}

func TestOverflowRejected(t *testing.T) {
	big := math.MaxInt/8 + 1
	_, err := New(dtype.Float64, 2, big)
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("err = %v, erwartet ErrOverflow", err)
	}
}

func TestTooManyDims(t *testing.T) {
	shape := make([]int, MaxDims+1)
	for i := range shape {
		shape[i] = 1
	}
	_, err := New(dtype.Float64, shape...)
	if !errors.Is(err, ErrTooBig) {
		t.Errorf("err = %v, erwartet ErrTooBig", err)
	}
}

func TestNegativeExtentRejected(t *testing.T) {
	_, err := New(dtype.Float64, 2, -1)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, erwartet ErrInvalidArgument", err)
	}
}

func TestItemSetAtRoundtrip(t *testing.T) {
	a, err := New(dtype.Int64, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.SetAt(int64(42), 1, 0); err != nil {
		t.Fatal(err)
	}
	got, err := a.Item(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.(int64) != 42 {
		t.Errorf("Item = %v, erwartet 42", got)
	}
	if _, err := a.Item(2, 0); err == nil {
		t.Error("Index ausserhalb des Bereichs nicht erkannt")
	}
}

func TestSubarraySpliceWithStrides(t *testing.T) {
	base := dtype.MustFromKind(dtype.Int64)
	sub, err := dtype.NewSubarray(base, []int{2})
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewFromDescr(sub, []int{3}, false, []int{16})
	if err != nil {
		t.Fatal(err)
	}
	if !shapesEqual(a.Shape(), []int{3, 2}) {
		t.Errorf("Shape = %v, erwartet [3 2]", a.Shape())
	}
	// Die angehaengten Achsen laufen zusammenhaengend durch das
	// Subarray
	if !shapesEqual(a.Strides(), []int{16, 8}) {
		t.Errorf("Strides = %v, erwartet [16 8]", a.Strides())
	}
}

func TestUnsizedTextElementDefaults(t *testing.T) {
	a, err := NewFromDescr(dtype.MustFromKind(dtype.Bytes), []int{3}, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.Descr().Elsize != 1 {
		t.Errorf("Bytes Elsize = %d, erwartet 1", a.Descr().Elsize)
	}
	u, err := NewFromDescr(dtype.MustFromKind(dtype.Unicode), []int{2}, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if u.Descr().Elsize != 4 {
		t.Errorf("Unicode Elsize = %d, erwartet 4", u.Descr().Elsize)
	}
}
