// config.go - Konfigurationsfunktionen fuer ndkit
//
// Dieses Modul enthaelt:
// - TextBuffer: Chunk-Groesse fuer Text-Einlesen (NDKIT_TEXT_BUFFER)
// - StrictDiscovery: Strikte Form-Pruefung (NDKIT_STRICT_DISCOVERY)
// - LogLevel: Gibt Log-Level zurueck (NDKIT_DEBUG)
// - Var/Bool/String/Uint: generische Getter
// - EnvVar/AsMap/Values: Export der Konfiguration
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Var gibt eine Environment-Variable zurueck
// Entfernt fuehrende/trailing Quotes und Leerzeichen
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// Bool gibt eine Funktion zurueck, die einen Bool liest (Default: false)
func Bool(k string) func() bool {
	return func() bool {
		if s := Var(k); s != "" {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return true
			}
			return b
		}
		return false
	}
}

// String gibt eine Funktion zurueck, die einen String liest
func String(s string) func() string {
	return func() string {
		return Var(s)
	}
}

// Uint gibt eine Funktion zurueck, die einen uint mit Default-Wert liest
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// TextBuffer gibt die Chunk-Groesse in Elementen zurueck, mit der
// Text-Eingaben eingelesen werden
// Konfigurierbar via NDKIT_TEXT_BUFFER
// Default: 4096
func TextBuffer() int {
	n := Uint("NDKIT_TEXT_BUFFER", 4096)()
	if n == 0 {
		return 4096
	}
	return int(n)
}

// StrictDiscovery erzwingt identische Extents ueber alle Geschwister
// beim Ableiten der Form aus geschachtelten Sequenzen
// Konfigurierbar via NDKIT_STRICT_DISCOVERY
var StrictDiscovery = Bool("NDKIT_STRICT_DISCOVERY")

// LogLevel gibt das Log-Level zurueck
// Konfigurierbar via NDKIT_DEBUG
// Werte: 0/false = INFO (Default), 1/true = DEBUG, 2 = TRACE
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("NDKIT_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// EnvVar repraesentiert eine Environment-Variable mit Metadaten
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap gibt alle Konfigurationen als Map zurueck
// Enthaelt Namen, aktuelle Werte und Beschreibungen
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"NDKIT_DEBUG":            {"NDKIT_DEBUG", LogLevel(), "Show additional debug information (e.g. NDKIT_DEBUG=1)"},
		"NDKIT_TEXT_BUFFER":      {"NDKIT_TEXT_BUFFER", TextBuffer(), "Chunk size in elements for reading text input (default: 4096)"},
		"NDKIT_STRICT_DISCOVERY": {"NDKIT_STRICT_DISCOVERY", StrictDiscovery(), "Reject ragged nested sequences instead of shrinking extents"},
	}
}

// Values gibt alle Konfigurationswerte als String-Map zurueck
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}
