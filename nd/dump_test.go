// MODUL: dump_test
// ZWECK: Tests fuer die Dump-Ausgabe
// INPUT: Kleine Arrays
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing, strings
// HINWEISE: Prueft Formatierung und das Kuerzen grosser Arrays

package nd

import (
	"strings"
	"testing"

	"github.com/ndkit/ndkit/dtype"
)

func TestDumpSmallArray(t *testing.T) {
	a, err := FromAny([][]int64{{1, 2}, {3, 4}}, nil, 0, 0, DefaultFlags)
	if err != nil {
		t.Fatal(err)
	}
	s := Dump(a)
	for _, want := range []string{"1", "2", "3", "4", "["} {
		if !strings.Contains(s, want) {
			t.Errorf("Dump = %q, erwartet Teilstring %q", s, want)
		}
	}
	if strings.Contains(s, "...") {
		t.Errorf("kleines Array darf nicht gekuerzt werden: %q", s)
	}
}

func TestDumpTruncatesLargeArray(t *testing.T) {
	a := mustArange(t, 50, dtype.Int64)
	s := Dump(a, DumpWithThreshold(10), DumpWithEdgeItems(2))
	if !strings.Contains(s, "...") {
		t.Errorf("grosses Array muss gekuerzt werden: %q", s)
	}
	if !strings.Contains(s, "49") || !strings.Contains(s, "0") {
		t.Errorf("Raender fehlen im Dump: %q", s)
	}
}

func TestDumpPrecision(t *testing.T) {
	a, err := FromAny([]float64{1.23456}, nil, 0, 0, DefaultFlags)
	if err != nil {
		t.Fatal(err)
	}
	s := Dump(a, DumpWithPrecision(2))
	if !strings.Contains(s, "1.23") || strings.Contains(s, "1.2345") {
		t.Errorf("Dump = %q, erwartet zwei Nachkommastellen", s)
	}
}

func TestDumpScalar(t *testing.T) {
	a, err := FromScalar(int64(5), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s := Dump(a); !strings.Contains(s, "5") {
		t.Errorf("Dump = %q, erwartet 5", s)
	}
}
