package formatting_test

import (
	"testing"

	"github.com/JaimeStill/aicomply/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{input: "0", want: 0},
		{input: "2048", want: 2048},
		{input: "16B", want: 16},
		{input: "64KB", want: 64 << 10},
		{input: "1MB", want: 1 << 20},
		{input: "1.5 mb", want: 3 << 19},
		{input: "  2GB ", want: 2 << 30},
		{input: "", wantErr: true},
		{input: "MB", wantErr: true},
		{input: "-1MB", wantErr: true},
		{input: "10XB", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseBytes(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{900, 0, "900 B"},
		{1 << 10, 0, "1 KB"},
		{1536, 1, "1.5 KB"},
		{1 << 20, -4, "1 MB"},
		{5 << 30, 0, "5 GB"},
	}

	for _, tt := range tests {
		if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
			t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range []string{"1 KB", "4 MB", "3 GB"} {
		n, err := formatting.ParseBytes(s)
		if err != nil {
			t.Fatalf("ParseBytes(%q) error = %v", s, err)
		}
		if got := formatting.FormatBytes(n, 0); got != s {
			t.Errorf("FormatBytes(ParseBytes(%q)) = %q", s, got)
		}
	}
}
