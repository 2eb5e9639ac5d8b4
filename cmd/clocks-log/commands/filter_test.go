package commands

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/log"
)

func readEvents(t *testing.T, path string) []log.Event {
	t.Helper()
	r, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	var events []log.Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		events = append(events, e)
	}
}

func TestRunFilterByCategory(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())
	out := filepath.Join(t.TempDir(), "filtered.clog")

	var buf bytes.Buffer
	n, err := RunFilter(path, FilterOptions{Output: out, Category: "gatt"}, &buf)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 1 {
		t.Errorf("filtered %d events, want 1", n)
	}

	events := readEvents(t, out)
	if len(events) != 1 || events[0].GATT == nil {
		t.Fatalf("expected one GATT event, got %+v", events)
	}
	if events[0].GATT.CharacteristicUUID != lywsd02Char {
		t.Errorf("characteristic = %s, want %s", events[0].GATT.CharacteristicUUID, lywsd02Char)
	}
}

func TestRunFilterByTimeAndFamily(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())
	out := filepath.Join(t.TempDir(), "filtered.clog")

	n, err := RunFilter(path, FilterOptions{
		Output:    out,
		Family:    "Xiaomi LYWSD02",
		TimeStart: "2023-01-07T18:41:33.5Z",
	}, io.Discard)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 3 {
		t.Errorf("filtered %d events, want 3", n)
	}

	n, err = RunFilter(path, FilterOptions{Output: out, Family: "PVVX"}, io.Discard)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if n != 0 {
		t.Errorf("filtered %d events, want 0", n)
	}
}

func TestRunFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())
	out := filepath.Join(t.TempDir(), "filtered.clog")

	tests := []FilterOptions{
		{Output: out, TimeStart: "yesterday"},
		{Output: out, TimeEnd: "2023-01-07"},
		{Output: out, Layer: "wire"},
		{Output: out, Direction: "sideways"},
		{Output: out, Category: "message"},
	}
	for _, opts := range tests {
		if _, err := RunFilter(path, opts, io.Discard); err == nil {
			t.Errorf("RunFilter(%+v) should fail", opts)
		}
	}
}
