package schedule

import (
	"errors"
	"testing"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"8:00", 480},
		{"9:05", 545},
		{"12:30", 750},
		{"23:59", 1439},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseTime(tc.in)
			if err != nil {
				t.Fatalf("ParseTime(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseTime(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseTime_Malformed(t *testing.T) {
	for _, in := range []string{
		"25:00", "24:00", "08:60", "abc", "", "8", "08:0", "008:00",
		"08:00:00", " 08:00", "08:00 ", "-1:00", "08h00", "08:00Z",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseTime(in)
			if !errors.Is(err, ErrMalformedTime) {
				t.Errorf("ParseTime(%q) error = %v, want ErrMalformedTime", in, err)
			}
		})
	}
}

func TestFormatTime_RoundTrip(t *testing.T) {
	for m := 0; m < MinutesPerDay; m++ {
		s := FormatTime(m)
		got, err := ParseTime(s)
		if err != nil {
			t.Fatalf("ParseTime(%q) unexpected error: %v", s, err)
		}
		if got != m {
			t.Fatalf("ParseTime(FormatTime(%d)) = %d", m, got)
		}
		if got < 0 || got > 1439 {
			t.Fatalf("ParseTime(%q) = %d out of range", s, got)
		}
		if back := FormatTime(got); back != s {
			t.Fatalf("FormatTime(%d) = %q, want %q", got, back, s)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	got, err := NormalizeTime("8:05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "08:05" {
		t.Errorf("NormalizeTime(8:05) = %q, want 08:05", got)
	}
}

func TestIsValidRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       bool
		wantErr    error
	}{
		{"positive duration", "08:00", "09:00", true, nil},
		{"one minute", "08:00", "08:01", true, nil},
		{"equal endpoints", "08:00", "08:00", false, nil},
		{"end before start", "10:00", "09:00", false, nil},
		{"malformed start", "8h", "09:00", false, ErrMalformedTime},
		{"malformed end", "08:00", "24:00", false, ErrMalformedTime},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IsValidRange(tc.start, tc.end)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("IsValidRange(%s, %s) error = %v, want %v", tc.start, tc.end, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("IsValidRange(%s, %s) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}
