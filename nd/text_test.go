// MODUL: text_test
// ZWECK: Tests fuer Text-Konstruktion und Separator-Logik
// INPUT: Synthetische Strings und Dateien
// OUTPUT: Testresultate
// NEBENEFFEKTE: temporaere Dateien
// ABHAENGIGKEITEN: testing, os
// HINWEISE: Prueft Separator-Toleranz, Chunk-Wachstum und sauberes Stoppen

package nd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ndkit/ndkit/dtype"
)

func TestFromStringCommaSeparated(t *testing.T) {
	// Leerraum um Separatoren ist erlaubt
	a, err := FromString("1,2, 3,4", dtype.MustFromKind(dtype.Float64), -1, ",")
	if err != nil {
		t.Fatal(err)
	}
	got := int64sOf(t, a)
	want := []int64{1, 2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got = %v, erwartet %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got = %v, erwartet %v", got, want)
		}
	}
}

func TestFromStringWhitespaceSeparator(t *testing.T) {
	a, err := FromString("  1   2\t3\n4 ", dtype.MustFromKind(dtype.Int64), -1, " ")
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 4 {
		t.Fatalf("Len = %d, erwartet 4", a.Len())
	}
}

func TestFromStringStopsOnMismatch(t *testing.T) {
	// Nach dem zweiten Element passt der Separator nicht mehr:
	// sauberer Stopp statt Fehler
	a, err := FromString("1,2;3", dtype.MustFromKind(dtype.Int64), -1, ",")
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 {
		t.Fatalf("Len = %d, erwartet 2", a.Len())
	}
}

func TestFromStringCountLimits(t *testing.T) {
	a, err := FromString("1,2,3,4", dtype.MustFromKind(dtype.Int64), 2, ",")
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 {
		t.Fatalf("Len = %d, erwartet 2", a.Len())
	}

	// Weniger Elemente als angefragt schrumpfen das Ergebnis
	b, err := FromString("1,2", dtype.MustFromKind(dtype.Int64), 5, ",")
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, erwartet 2", b.Len())
	}
}

func TestFromStringBinaryMode(t *testing.T) {
	raw := string(float64Bytes(1.5, -2.5))
	a, err := FromString(raw, dtype.MustFromKind(dtype.Float64), -1, "")
	if err != nil {
		t.Fatal(err)
	}
	v, err := a.Item(1)
	if err != nil {
		t.Fatal(err)
	}
	if v.(float64) != -2.5 {
		t.Errorf("a[1] = %v, erwartet -2.5", v)
	}
}

func TestFromStringEmptyInput(t *testing.T) {
	a, err := FromString("", dtype.MustFromKind(dtype.Float64), -1, ",")
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 0 {
		t.Errorf("Len = %d, erwartet 0", a.Len())
	}
}

func TestFromStringRejectsTextlessType(t *testing.T) {
	if _, err := FromString("1,2", dtype.MustFromKind(dtype.Complex128), -1, ","); err == nil {
		t.Error("complex aus Text muesste abgelehnt werden")
	}
}

func TestFromFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "werte.txt")
	if err := os.WriteFile(path, []byte("3, 1, 4, 1, 5"), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	a, err := FromFile(f, dtype.MustFromKind(dtype.Int64), -1, ",")
	if err != nil {
		t.Fatal(err)
	}
	got := int64sOf(t, a)
	want := []int64{3, 1, 4, 1, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got = %v, erwartet %v", got, want)
		}
	}
}

func TestFromFileBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "werte.bin")
	if err := os.WriteFile(path, float64Bytes(1, 2, 3), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	// Offene Anzahl: Dateigroesse bestimmt die Elementzahl
	a, err := FromFile(f, dtype.MustFromKind(dtype.Float64), -1, "")
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 3 {
		t.Fatalf("Len = %d, erwartet 3", a.Len())
	}
	v, err := a.Item(2)
	if err != nil {
		t.Fatal(err)
	}
	if v.(float64) != 3 {
		t.Errorf("a[2] = %v, erwartet 3", v)
	}
}

func TestFromFileBinaryRespectsPosition(t *testing.T) {
	path := filepath.Join(t.TempDir(), "werte.bin")
	if err := os.WriteFile(path, float64Bytes(1, 2, 3), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.Seek(8, 0); err != nil {
		t.Fatal(err)
	}
	a, err := FromFile(f, dtype.MustFromKind(dtype.Float64), -1, "")
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 2 {
		t.Fatalf("Len = %d, erwartet 2", a.Len())
	}
}

func TestFromFileTextReader(t *testing.T) {
	// Jeder ReadSeeker taugt als Quelle, nicht nur Dateien
	r := strings.NewReader("1 2 3")
	a, err := FromFile(r, dtype.MustFromKind(dtype.Int64), -1, " ")
	if err != nil {
		t.Fatal(err)
	}
	if a.Len() != 3 {
		t.Fatalf("Len = %d, erwartet 3", a.Len())
	}
}

func TestCleanSeparator(t *testing.T) {
	cases := map[string]string{
		",":        ",",
		" , ":      ",",
		"a  b":     "a b",
		"\t|\n":    "|",
		"   ":      "",
		", \t\n, ": ", ,",
	}
	for in, want := range cases {
		if got := cleanSeparator(in); got != want {
			t.Errorf("cleanSeparator(%q) = %q, erwartet %q", in, got, want)
		}
	}
}
