package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test capture: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var out []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, e)
	}
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), SessionID: "s-1", Layer: LayerSession, Category: CategoryState},
		{Timestamp: time.Now(), SessionID: "s-1", Direction: DirectionOut, Layer: LayerTransport, Category: CategoryGATT},
		{Timestamp: time.Now(), SessionID: "s-2", Direction: DirectionIn, Layer: LayerCodec, Category: CategoryCodec},
	}

	reader, err := NewReader(createTestLogFile(t, events))
	require.NoError(t, err)
	defer reader.Close()

	read := readAll(t, reader)
	require.Len(t, read, 3)
	assert.Equal(t, LayerSession, read[0].Layer)
	assert.Equal(t, LayerTransport, read[1].Layer)
	assert.Equal(t, "s-2", read[2].SessionID)
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2023, 1, 7, 18, 0, 0, 0, time.UTC)
	events := []Event{
		{Timestamp: base, SessionID: "s-1", Address: "E7:2E:00:B1:38:96", Family: "Xiaomi LYWSD02", Direction: DirectionOut, Layer: LayerTransport, Category: CategoryGATT},
		{Timestamp: base.Add(time.Minute), SessionID: "s-1", Address: "E7:2E:00:B1:38:96", Family: "Xiaomi LYWSD02", Direction: DirectionIn, Layer: LayerCodec, Category: CategoryCodec},
		{Timestamp: base.Add(2 * time.Minute), SessionID: "s-2", Address: "10:76:36:14:2A:3D", Family: "ThermoPro TP358", Layer: LayerSession, Category: CategoryError},
	}
	path := createTestLogFile(t, events)

	in := DirectionIn
	errCat := CategoryError
	transport := LayerTransport
	session := LayerSession
	start := base.Add(30 * time.Second)
	end := base.Add(90 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"session", Filter{SessionID: "s-1"}, 2},
		{"address ignores case", Filter{Address: "e7:2e:00:b1:38:96"}, 2},
		{"family", Filter{Family: "ThermoPro TP358"}, 1},
		{"direction", Filter{Direction: &in}, 1},
		{"category", Filter{Category: &errCat}, 1},
		{"layer", Filter{Layer: &transport}, 1},
		{"session layer", Filter{Layer: &session}, 1},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 1},
		{"combined no match", Filter{SessionID: "s-2", Direction: &in}, 0},
		{"error has no direction", Filter{Category: &errCat, Direction: &in}, 0},
		{"empty", Filter{}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewFilteredReader(path, tt.filter)
			require.NoError(t, err)
			defer reader.Close()
			assert.Len(t, readAll(t, reader), tt.want)
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope.clog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderEmptyFile(t *testing.T) {
	reader, err := NewReader(createTestLogFile(t, nil))
	require.NoError(t, err)
	defer reader.Close()

	_, err = reader.Next()
	assert.Equal(t, io.EOF, err)
}
