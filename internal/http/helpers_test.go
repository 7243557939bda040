package http

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  hello  ", "hello"},
		{"a\x00b\x07c", "abc"},
		{"line\nbreaks\tstay", "line\nbreaks\tstay"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatEuros(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "€0,00"},
		{1234, "€12,34"},
		{100, "€1,00"},
		{-2550, "-€25,50"},
		{5, "€0,05"},
	}
	for _, tt := range tests {
		if got := formatEuros(tt.cents); got != tt.want {
			t.Errorf("formatEuros(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestRefDate(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/report?at=2026-03-15", nil)
	got := refDate(r)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("refDate() = %v, want %v", got, want)
	}

	// Malformed and absent values fall back to now.
	r = httptest.NewRequest("GET", "/api/report?at=tomorrow", nil)
	if refDate(r).Year() < 2026 {
		t.Error("malformed date should fall back to the current time")
	}
	r = httptest.NewRequest("GET", "/api/report", nil)
	if time.Since(refDate(r)) > time.Minute {
		t.Error("absent date should fall back to the current time")
	}
}

func TestGenerateRequestID(t *testing.T) {
	a, b := generateRequestID(), generateRequestID()
	if a == b {
		t.Error("request IDs should be unique")
	}
	if len(a) < 8 || a[:4] != "req_" {
		t.Errorf("request ID %q should carry the req_ prefix", a)
	}
}
