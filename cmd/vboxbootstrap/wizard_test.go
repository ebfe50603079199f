package main

import (
	"testing"
	"time"
)

func TestParseDiskSize(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"10", 10, true},
		{"1", 1, true},
		{"250", 250, true},
		{" 40 ", 40, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"3.5", 0, false},
		{"", 0, false},
		{"10GB", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDiskSize(tt.in)
			if ok != tt.ok {
				t.Fatalf("parseDiskSize(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseDiskSize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultMachineName(t *testing.T) {
	now := time.Date(2024, 1, 31, 14, 30, 5, 0, time.Local)
	got := defaultMachineName("TcBsd", now)
	if got != "TcBsd_20240131_143005" {
		t.Errorf("defaultMachineName() = %q, want TcBsd_20240131_143005", got)
	}
}

func TestSanitizeConsoleInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello\n", "hello"},
		{"ansi escape", "\x1b[31mred\x1b[0m\n", "red"},
		{"cpr response", "\x1b[12;40Rbox\n", "box"},
		{"caret escape", "^[[Abox\n", "box"},
		{"control chars", "bo\tx\n", "box"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeConsoleInput(tt.in); got != tt.want {
				t.Errorf("sanitizeConsoleInput(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
