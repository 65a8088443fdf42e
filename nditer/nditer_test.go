// MODUL: nditer_test
// ZWECK: Tests fuer Koaleszierung und Lauf-Aufzaehlung
// INPUT: Synthetische Shapes und Strides
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing
// HINWEISE: Prueft Lauf-Anzahl, Offsets und das Verschmelzen von Achsen

package nditer

import "testing"

func TestContiguousCoalescesToOneRun(t *testing.T) {
	// C-kontiguoses 3x4x5 mit Elementgroesse 8
	shape := []int{3, 4, 5}
	strides := []int{160, 40, 8}
	it := New(shape, strides, 0)
	if it.Runs() != 1 {
		t.Fatalf("Runs = %d, erwartet 1", it.Runs())
	}
	if !it.Next() {
		t.Fatal("Next liefert keinen Lauf")
	}
	if it.Count() != 60 {
		t.Errorf("Count = %d, erwartet 60", it.Count())
	}
	if it.Off(0) != 0 || it.Stride(0) != 8 {
		t.Errorf("Off/Stride = %d/%d, erwartet 0/8", it.Off(0), it.Stride(0))
	}
	if it.Next() {
		t.Error("zweiter Lauf nach vollstaendiger Koaleszierung")
	}
}

func TestStridedRuns(t *testing.T) {
	// Zeilen-Schnitt mit Luecke: 3 Zeilen je 4 Elemente, Zeilen-Stride 64
	shape := []int{3, 4}
	strides := []int{64, 8}
	it := New(shape, strides, 16)
	if it.Runs() != 3 {
		t.Fatalf("Runs = %d, erwartet 3", it.Runs())
	}
	wantOffs := []int{16, 80, 144}
	i := 0
	for it.Next() {
		if it.Count() != 4 {
			t.Errorf("Lauf %d: Count = %d, erwartet 4", i, it.Count())
		}
		if it.Off(0) != wantOffs[i] {
			t.Errorf("Lauf %d: Off = %d, erwartet %d", i, it.Off(0), wantOffs[i])
		}
		i++
	}
	if i != 3 {
		t.Errorf("%d Laeufe, erwartet 3", i)
	}
}

func TestExtentOneAxesDropped(t *testing.T) {
	it := New([]int{1, 5, 1}, []int{9999, 8, 7777}, 0)
	if it.Runs() != 1 {
		t.Fatalf("Runs = %d, erwartet 1", it.Runs())
	}
	it.Next()
	if it.Count() != 5 || it.Stride(0) != 8 {
		t.Errorf("Count/Stride = %d/%d, erwartet 5/8", it.Count(), it.Stride(0))
	}
}

func TestZeroExtentHasNoRuns(t *testing.T) {
	it := New([]int{3, 0, 2}, []int{0, 0, 8}, 0)
	if it.Runs() != 0 {
		t.Errorf("Runs = %d, erwartet 0", it.Runs())
	}
	if it.Next() {
		t.Error("Next liefert Lauf fuer leere Form")
	}
}

func TestMultiOperandBlocksMerge(t *testing.T) {
	// Operand 0 kontiguos, Operand 1 mit Zeilen-Luecke: keine
	// Verschmelzung der Achsen
	shape := []int{2, 3}
	it, err := NewMulti(shape, [][]int{{24, 8}, {32, 8}}, []int{0, 4})
	if err != nil {
		t.Fatal(err)
	}
	if it.Runs() != 2 {
		t.Fatalf("Runs = %d, erwartet 2", it.Runs())
	}
	want := [][2]int{{0, 4}, {24, 36}}
	i := 0
	for it.Next() {
		if it.Off(0) != want[i][0] || it.Off(1) != want[i][1] {
			t.Errorf("Lauf %d: Offsets = %d/%d, erwartet %d/%d", i, it.Off(0), it.Off(1), want[i][0], want[i][1])
		}
		i++
	}
}

func TestOperandMismatchRejected(t *testing.T) {
	if _, err := NewMulti([]int{2, 2}, [][]int{{8}}, []int{0}); err == nil {
		t.Error("Stride-Laengen-Fehler nicht erkannt")
	}
}

func TestZeroDimSingleRun(t *testing.T) {
	it := New(nil, nil, 40)
	if it.Runs() != 1 {
		t.Fatalf("Runs = %d, erwartet 1", it.Runs())
	}
	it.Next()
	if it.Count() != 1 || it.Off(0) != 40 {
		t.Errorf("Count/Off = %d/%d, erwartet 1/40", it.Count(), it.Off(0))
	}
}
