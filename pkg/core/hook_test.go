package core

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		in string
		ok bool
	}{
		{"2024-06-15T12:00:00Z", true},
		{"2024-06-15T12:00:00.000+00:00", true},
		{"2024-06-15T12:00:00.000+0000", true},
		{"2024-06-15T14:00:00+0200", true},
		{"2024-06-15T12:00:00", true},
		{"2024-06-15 12:00:00", true},
		{"", false},
		{"15/06/2024", false},
	}

	for _, tt := range tests {
		got, ok := ParseTimestamp(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseTimestamp(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, want)
		}
	}
}

func TestGeneratedTimeMissing(t *testing.T) {
	if _, ok := (Hook{Hook: "x"}).GeneratedTime(); ok {
		t.Error("expected no time for a hook without generated_at")
	}
}
