package wire

import (
	"testing"
	"time"
)

func TestEncodeThermoPro(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		mode DisplayMode
		want []byte
	}{
		{
			name: "12-hour",
			ts:   time.Date(2023, 1, 7, 17, 32, 50, 0, time.UTC),
			mode: Mode12Hour,
			want: []byte{0xA5, 0x17, 0x01, 0x07, 0x11, 0x20, 0x32, 0x06, 0x00, 0x5A},
		},
		{
			name: "24-hour",
			ts:   time.Date(2022, 12, 29, 18, 9, 1, 0, time.UTC),
			mode: Mode24Hour,
			want: []byte{0xA5, 0x16, 0x0C, 0x1D, 0x12, 0x09, 0x01, 0x04, 0x01, 0x5A},
		},
		{
			name: "sunday",
			ts:   time.Date(2023, 1, 8, 0, 0, 0, 0, time.UTC),
			mode: Mode24Hour,
			want: []byte{0xA5, 0x17, 0x01, 0x08, 0x00, 0x00, 0x00, 0x07, 0x01, 0x5A},
		},
		{
			name: "year 2100 wraps",
			ts:   time.Date(2100, 3, 1, 0, 0, 0, 0, time.UTC),
			mode: Mode24Hour,
			want: []byte{0xA5, 0x00, 0x03, 0x01, 0x00, 0x00, 0x00, 0x01, 0x01, 0x5A},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EncodeThermoPro(tt.ts, tt.mode)
			if len(got) != 10 {
				t.Fatalf("len = %d, want 10", len(got))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("byte %d = 0x%02x, want 0x%02x (got % x)", i, got[i], tt.want[i], got)
				}
			}
		})
	}
}

func TestEncodeThermoProUsesLocation(t *testing.T) {
	loc := brussels(t)
	utc := time.Date(2022, 12, 29, 17, 9, 1, 0, time.UTC)

	got := EncodeThermoPro(utc.In(loc), Mode24Hour)
	if got[4] != 18 {
		t.Errorf("hour = %d, want 18", got[4])
	}
}
