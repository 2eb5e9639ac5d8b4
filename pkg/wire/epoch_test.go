package wire

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEpochOffset(t *testing.T) {
	got, err := DecodeEpochOffset([]byte{0xDD, 0xBC, 0xB9, 0x63, 0x00}, nil)
	require.NoError(t, err)

	want := time.Date(2023, 1, 7, 18, 41, 33, 0, time.UTC)
	assert.True(t, got.Equal(want), "got %s, want %s", got.UTC(), want)
}

func TestDecodeEpochOffsetIgnoresOffsetByte(t *testing.T) {
	a, err := DecodeEpochOffset([]byte{0xDD, 0xBC, 0xB9, 0x63, 0x00}, nil)
	require.NoError(t, err)
	b, err := DecodeEpochOffset([]byte{0xDD, 0xBC, 0xB9, 0x63, 0x02}, nil)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestEncodeEpochOffset(t *testing.T) {
	loc := brussels(t)
	ts := time.Date(2023, 1, 7, 18, 41, 0, 0, loc)

	assert.Equal(t, []byte{0xAC, 0xAE, 0xB9, 0x63, 0x01}, EncodeEpochOffset(ts, Mode24Hour))
}

func TestEncodeEpochOffsetFloorsOffset(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		want   byte
	}{
		{"utc", 0, 0x00},
		{"plus 5:30", 5*3600 + 1800, 0x05},
		{"minus 3:30", -(3*3600 + 1800), 0xFC},
		{"minus 8", -8 * 3600, 0xF8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := time.Date(2023, 1, 7, 12, 0, 0, 0, time.FixedZone(tt.name, tt.offset))
			b := EncodeEpochOffset(ts, Mode24Hour)
			if b[4] != tt.want {
				t.Errorf("offset byte = 0x%02x, want 0x%02x", b[4], tt.want)
			}
		})
	}
}

func TestEpochOffsetRoundTrip(t *testing.T) {
	loc := brussels(t)
	ts := time.Date(2023, 7, 4, 17, 4, 5, 0, loc)

	got, err := DecodeEpochOffset(EncodeEpochOffset(ts, Mode24Hour), loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(ts))
}

func TestDecodeCommandEpoch(t *testing.T) {
	loc := brussels(t)
	in := []byte{0x23, 0xE5, 0x34, 0xA4, 0x64, 0x33, 0x3B, 0xA3, 0x64}

	got, err := DecodeCommandEpoch(in, loc)
	require.NoError(t, err)

	assert.Equal(t, int64(1688483045), got.Unix())
	assert.True(t, got.Equal(time.Date(2023, 7, 4, 17, 4, 5, 0, loc)))
}

func TestDecodeCommandEpochWrongCommand(t *testing.T) {
	in := []byte{0x24, 0xE5, 0x34, 0xA4, 0x64, 0x33, 0x3B, 0xA3, 0x64}

	_, err := DecodeCommandEpoch(in, time.UTC)
	assert.True(t, errors.Is(err, ErrInvalidPayload))
}

func TestDecodeCommandEpochShortPayload(t *testing.T) {
	_, err := DecodeCommandEpoch([]byte{0x23, 0xE5, 0x34, 0xA4, 0x64}, time.UTC)
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestEncodeCommandEpoch(t *testing.T) {
	loc := brussels(t)
	ts := time.Date(2023, 1, 7, 18, 41, 0, 0, loc)

	assert.Equal(t, []byte{0x23, 0xBC, 0xBC, 0xB9, 0x63}, EncodeCommandEpoch(ts, Mode24Hour))
}

func TestCommandEpochReport(t *testing.T) {
	// A device report carries the UTC time, not the shifted local value
	// that was written.
	loc := brussels(t)
	ts := time.Date(2023, 1, 7, 18, 41, 0, 0, loc)

	report := []byte{0x23, 0xAC, 0xAE, 0xB9, 0x63, 0x00, 0x00, 0x00, 0x00}
	got, err := DecodeCommandEpoch(report, loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(ts))
}

func TestEncodePrefixedEpoch(t *testing.T) {
	loc := brussels(t)
	ts := time.Date(2022, 12, 30, 16, 30, 0, 0, loc)

	assert.Equal(t, []byte{0x05, 0x09, 0x08, 0x12, 0xAF, 0x63}, EncodePrefixedEpoch(ts, Mode12Hour))
}

func TestEncodePrefixedEpochUTC(t *testing.T) {
	ts := time.Date(2022, 12, 30, 15, 30, 0, 0, time.UTC)

	// No offset in UTC: the raw Unix time 1672414200.
	assert.Equal(t, []byte{0x05, 0x09, 0xF8, 0x03, 0xAF, 0x63}, EncodePrefixedEpoch(ts, Mode24Hour))
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 1, floorDiv(3600, 3600))
	assert.Equal(t, 0, floorDiv(1800, 3600))
	assert.Equal(t, -1, floorDiv(-1800, 3600))
	assert.Equal(t, -1, floorDiv(-3600, 3600))
	assert.Equal(t, -2, floorDiv(-3601, 3600))
}
