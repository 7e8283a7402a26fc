package util

import "testing"

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"30/1", 30.0},
		{"30000/1001", 29.97},
		{"24000/1001", 23.976},
		{"25/1", 25.0},
		{"0/0", 0.0},
		{"30/0", 0.0},
		{"garbage", 0.0},
		{"30", 0.0},
		{"a/b", 0.0},
		{"", 0.0},
	}

	for _, tt := range tests {
		if got := ParseFrameRate(tt.input); got != tt.want {
			t.Errorf("ParseFrameRate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"00:01:05.500", 65.5, false},
		{"01:00:00.000", 3600.0, false},
		{"00:00:00.000", 0.0, false},
		{"10:30:15.250", 37815.25, false},
		{" 00:00:02.000 ", 2.0, false},
		{"01:05.500", 0, true},
		{"65.5", 0, true},
		{"aa:bb:cc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClockTime(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClockTime(%q) expected error, got %v", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClockTime(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClockTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		v      float64
		places int
		want   float64
	}{
		{0.12345678, 4, 0.1235},
		{29.97002997, 3, 29.97},
		{0.5, 0, 1},
		{12.345, 3, 12.345},
		{-0.12345, 4, -0.1235},
	}

	for _, tt := range tests {
		if got := Round(tt.v, tt.places); got != tt.want {
			t.Errorf("Round(%v, %d) = %v, want %v", tt.v, tt.places, got, tt.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{65.5, "00:01:05.500"},
		{3661.25, "01:01:01.250"},
		{0, "00:00:00.000"},
		{2.0, "00:00:02.000"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.seconds); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
