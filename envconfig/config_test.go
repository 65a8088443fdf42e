// MODUL: config_test
// ZWECK: Tests fuer die Environment-Konfiguration
// INPUT: Gesetzte Environment-Variablen
// OUTPUT: Testresultate
// NEBENEFFEKTE: veraendert Environment-Variablen im Testprozess
// ABHAENGIGKEITEN: testing
// HINWEISE: Prueft Defaults, Parsing und die AsMap-Abdeckung

package envconfig

import (
	"log/slog"
	"testing"
)

func TestTextBufferDefault(t *testing.T) {
	t.Setenv("NDKIT_TEXT_BUFFER", "")
	if got := TextBuffer(); got != 4096 {
		t.Errorf("TextBuffer = %d, erwartet 4096", got)
	}
}

func TestTextBufferOverride(t *testing.T) {
	t.Setenv("NDKIT_TEXT_BUFFER", "128")
	if got := TextBuffer(); got != 128 {
		t.Errorf("TextBuffer = %d, erwartet 128", got)
	}

	// Ungueltige Werte fallen auf den Default zurueck
	t.Setenv("NDKIT_TEXT_BUFFER", "quatsch")
	if got := TextBuffer(); got != 4096 {
		t.Errorf("TextBuffer = %d, erwartet 4096", got)
	}
}

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"0":     slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     slog.Level(-8),
		"false": slog.LevelInfo,
	}
	for in, want := range cases {
		t.Setenv("NDKIT_DEBUG", in)
		if got := LogLevel(); got != want {
			t.Errorf("LogLevel(%q) = %v, erwartet %v", in, got, want)
		}
	}
}

func TestStrictDiscovery(t *testing.T) {
	t.Setenv("NDKIT_STRICT_DISCOVERY", "1")
	if !StrictDiscovery() {
		t.Error("StrictDiscovery muesste aktiv sein")
	}
	t.Setenv("NDKIT_STRICT_DISCOVERY", "")
	if StrictDiscovery() {
		t.Error("StrictDiscovery muesste inaktiv sein")
	}
}

func TestVarTrimsQuotes(t *testing.T) {
	t.Setenv("NDKIT_TEST_VALUE", "  \"wert\"  ")
	if got := Var("NDKIT_TEST_VALUE"); got != "wert" {
		t.Errorf("Var = %q, erwartet %q", got, "wert")
	}
}

func TestAsMapCoversAllVars(t *testing.T) {
	m := AsMap()
	for _, k := range []string{"NDKIT_DEBUG", "NDKIT_TEXT_BUFFER", "NDKIT_STRICT_DISCOVERY"} {
		if _, ok := m[k]; !ok {
			t.Errorf("AsMap enthaelt %s nicht", k)
		}
	}
}
