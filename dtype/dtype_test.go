// MODUL: dtype_test
// ZWECK: Tests fuer Deskriptoren, Element-Codecs und Typestrings
// INPUT: Synthetische Werte
// OUTPUT: Testresultate
// NEBENEFFEKTE: keine
// ABHAENGIGKEITEN: testing
// HINWEISE: Testet SetItem/GetItem Roundtrips und die Typestring-Konvertierung

package dtype

import (
	"math"
	"testing"
)

func TestSetGetRoundtrip(t *testing.T) {
	cases := []struct {
		kind Kind
		in   any
		want any
	}{
		{Bool, true, true},
		{Int8, int8(-5), int64(-5)},
		{Int16, int16(-300), int64(-300)},
		{Int32, int32(70000), int64(70000)},
		{Int64, int64(-1 << 40), int64(-1 << 40)},
		{Uint8, uint8(200), int64(200)},
		{Uint64, uint64(1) << 63, uint64(1) << 63},
		{Float32, float32(1.5), float64(1.5)},
		{Float64, 3.25, 3.25},
		{Complex64, complex64(1 + 2i), complex128(1 + 2i)},
		{Complex128, complex128(3 - 4i), complex128(3 - 4i)},
	}
	for _, tc := range cases {
		d := MustFromKind(tc.kind)
		p := make([]byte, d.Elsize)
		if err := d.SetItem(tc.in, p); err != nil {
			t.Fatalf("SetItem(%v) als %s: %v", tc.in, tc.kind, err)
		}
		got, err := d.GetItem(p)
		if err != nil {
			t.Fatalf("GetItem als %s: %v", tc.kind, err)
		}
		if got != tc.want {
			t.Errorf("%s Roundtrip = %v (%T), erwartet %v (%T)", tc.kind, got, got, tc.want, tc.want)
		}
	}
}

func TestHalfPrecisionRoundtrip(t *testing.T) {
	// 1.5 ist in halber Genauigkeit exakt darstellbar
	for _, kind := range []Kind{Float16, BFloat16} {
		d := MustFromKind(kind)
		p := make([]byte, d.Elsize)
		if err := d.SetItem(1.5, p); err != nil {
			t.Fatalf("SetItem als %s: %v", kind, err)
		}
		got, err := d.GetItem(p)
		if err != nil {
			t.Fatalf("GetItem als %s: %v", kind, err)
		}
		if got.(float64) != 1.5 {
			t.Errorf("%s Roundtrip = %v, erwartet 1.5", kind, got)
		}
	}
}

func TestSwappedOrderRoundtrip(t *testing.T) {
	d := NewSwapped(MustFromKind(Float64), SwappedOrder)
	p := make([]byte, d.Elsize)
	if err := d.SetItem(2.5, p); err != nil {
		t.Fatal(err)
	}
	// Native gelesen muss der Wert verdreht sein
	native := MustFromKind(Float64)
	raw, err := native.GetItem(p)
	if err != nil {
		t.Fatal(err)
	}
	if raw.(float64) == 2.5 {
		t.Error("vertauschte Bytes lesen sich nicht nativ")
	}
	got, err := d.GetItem(p)
	if err != nil {
		t.Fatal(err)
	}
	if got.(float64) != 2.5 {
		t.Errorf("Roundtrip = %v, erwartet 2.5", got)
	}
}

func TestTextRoundtrip(t *testing.T) {
	d := MustFromKind(Bytes)
	d = CloneForMutation(d)
	d.Elsize = 5
	p := make([]byte, 5)
	if err := d.SetItem("ab", p); err != nil {
		t.Fatal(err)
	}
	got, err := d.GetItem(p)
	if err != nil {
		t.Fatal(err)
	}
	// Null-Auffuellung wird beim Lesen entfernt
	if got.(string) != "ab" {
		t.Errorf("Bytes Roundtrip = %q, erwartet %q", got, "ab")
	}

	u := CloneForMutation(MustFromKind(Unicode))
	u.Elsize = 3 * 4
	q := make([]byte, u.Elsize)
	if err := u.SetItem("äbc", q); err != nil {
		t.Fatal(err)
	}
	got, err = u.GetItem(q)
	if err != nil {
		t.Fatal(err)
	}
	if got.(string) != "äbc" {
		t.Errorf("Unicode Roundtrip = %q, erwartet %q", got, "äbc")
	}
}

func TestParseTypeString(t *testing.T) {
	cases := []struct {
		in     string
		kind   Kind
		elsize int
	}{
		{"<f8", Float64, 8},
		{"<f4", Float32, 4},
		{"<f2", Float16, 2},
		{"<i4", Int32, 4},
		{"<u2", Uint16, 2},
		{"<c16", Complex128, 16},
		{"|S5", Bytes, 5},
		{"<U3", Unicode, 12},
	}
	for _, tc := range cases {
		d, err := ParseTypeString(tc.in)
		if err != nil {
			t.Fatalf("ParseTypeString(%q): %v", tc.in, err)
		}
		if d.Kind != tc.kind || d.Elsize != tc.elsize {
			t.Errorf("ParseTypeString(%q) = %s/%d, erwartet %s/%d", tc.in, d.Kind, d.Elsize, tc.kind, tc.elsize)
		}
	}

	for _, bad := range []string{"", "f8", "<x4", "<i3", "<f0"} {
		if _, err := ParseTypeString(bad); err == nil {
			t.Errorf("ParseTypeString(%q) muesste fehlschlagen", bad)
		}
	}
}

func TestTypeStringFormat(t *testing.T) {
	d := MustFromKind(Float64)
	s := d.TypeString()
	back, err := ParseTypeString(s)
	if err != nil {
		t.Fatalf("TypeString %q nicht parsebar: %v", s, err)
	}
	if back.Kind != Float64 {
		t.Errorf("TypeString Roundtrip = %s, erwartet float64", back.Kind)
	}
}

func TestFillExtrapolates(t *testing.T) {
	d := MustFromKind(Int32)
	p := make([]byte, 5*d.Elsize)
	// Saat: 3, 5 und der Rest wird fortgeschrieben
	if err := d.SetItem(int32(3), p[:4]); err != nil {
		t.Fatal(err)
	}
	if err := d.SetItem(int32(5), p[4:8]); err != nil {
		t.Fatal(err)
	}
	if err := d.Fill(p, 5); err != nil {
		t.Fatal(err)
	}
	want := []int64{3, 5, 7, 9, 11}
	for i, w := range want {
		got, err := d.GetItem(p[i*4 : i*4+4])
		if err != nil {
			t.Fatal(err)
		}
		if got.(int64) != w {
			t.Errorf("Fill[%d] = %v, erwartet %d", i, got, w)
		}
	}
}

func TestCanCastTo(t *testing.T) {
	i32 := MustFromKind(Int32)
	i64 := MustFromKind(Int64)
	u32 := MustFromKind(Uint32)
	f32 := MustFromKind(Float32)
	f64 := MustFromKind(Float64)
	c128 := MustFromKind(Complex128)

	if !CanCastTo(i32, i64) {
		t.Error("int32 -> int64 sollte sicher sein")
	}
	if CanCastTo(i64, i32) {
		t.Error("int64 -> int32 ist nicht sicher")
	}
	if CanCastTo(u32, i32) {
		t.Error("uint32 -> int32 ist nicht sicher")
	}
	if !CanCastTo(i32, f64) {
		t.Error("int32 -> float64 sollte sicher sein")
	}
	if CanCastTo(i32, f32) {
		t.Error("int32 -> float32 verliert Praezision")
	}
	if !CanCastTo(f64, c128) {
		t.Error("float64 -> complex128 sollte sicher sein")
	}
}

func TestParseTextStopsAtSeparator(t *testing.T) {
	d := MustFromKind(Float64)
	c := NewTextCursor("  3.5,7", -1)
	p := make([]byte, 8)
	if err := d.ParseText(c, p); err != nil {
		t.Fatal(err)
	}
	got, _ := d.GetItem(p)
	if math.Abs(got.(float64)-3.5) > 1e-12 {
		t.Errorf("ParseText = %v, erwartet 3.5", got)
	}
	if b, _ := c.Peek(); b != ',' {
		t.Errorf("Cursor steht auf %q, erwartet ','", b)
	}
}
