// MODUL: fromseq_test
// ZWECK: Tests fuer die Konstruktion aus Iteratoren
// INPUT: Synthetische iter.Seq-Quellen
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing, iter
// HINWEISE: Prueft Wachstum, Zaehl-Grenzen und zu kurze Iteratoren

package nd

import (
	"errors"
	"iter"
	"testing"

	"github.com/ndkit/ndkit/dtype"
)

func counting(n int) iter.Seq[any] {
	return func(yield func(any) bool) {
		for i := 0; i < n; i++ {
			if !yield(int64(i)) {
				return
			}
		}
	}
}

func TestFromIterDrainsAll(t *testing.T) {
	a, err := FromIter(counting(100), dtype.MustFromKind(dtype.Int64), -1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 100 {
		t.Fatalf("Len = %d, erwartet 100", a.Len())
	}
	v, err := a.Item(99)
	if err != nil {
		t.Fatal(err)
	}
	if v.(int64) != 99 {
		t.Errorf("a[99] = %v, erwartet 99", v)
	}
}

func TestFromIterStopsAtCount(t *testing.T) {
	a, err := FromIter(counting(100), dtype.MustFromKind(dtype.Int64), 10)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 10 {
		t.Fatalf("Len = %d, erwartet 10", a.Len())
	}
}

func TestFromIterTooShort(t *testing.T) {
	_, err := FromIter(counting(3), dtype.MustFromKind(dtype.Int64), 5)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("err = %v, erwartet ErrInvalidArgument", err)
	}
}

func TestFromIterEmpty(t *testing.T) {
	a, err := FromIter(counting(0), nil, -1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 0 {
		t.Errorf("Len = %d, erwartet 0", a.Len())
	}
	if a.Descr().Kind != dtype.Float64 {
		t.Errorf("Kind = %s, erwartet float64", a.Descr().Kind)
	}
}

func TestFromIterBadElement(t *testing.T) {
	seq := func(yield func(any) bool) {
		yield("kein Zahlwert")
	}
	if _, err := FromIter(seq, dtype.MustFromKind(dtype.Int64), -1); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("err = %v, erwartet ErrTypeMismatch", err)
	}
}
