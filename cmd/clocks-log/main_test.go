package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/log"
	"github.com/koenvervloesem/bluetooth-clocks/pkg/version"
)

func writeCapture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.clog")
	fl, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	fl.Log(log.Event{
		Timestamp: time.Date(2023, 1, 7, 18, 41, 33, 0, time.UTC),
		SessionID: "0f8fad5b-d9cb-469f-a165-70867728950e",
		Address:   "E7:2E:00:B1:38:96",
		Family:    "Xiaomi LYWSD02",
		Direction: log.DirectionIn,
		Layer:     log.LayerTransport,
		Category:  log.CategoryGATT,
		GATT:      &log.GATTEvent{Op: log.GATTRead, Data: []byte{0xDD, 0xBC, 0xB9, 0x63, 0x01}},
	})
	if err := fl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return path
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("expected usage, got: %s", stderr.String())
	}

	stderr.Reset()
	if code := run([]string{"replay"}, &stdout, &stderr); code != 1 {
		t.Errorf("run(replay) = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command: replay") {
		t.Errorf("expected unknown command, got: %s", stderr.String())
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(version) = %d, want 0", code)
	}
	want := "clocks-log " + version.Current + " ("
	if !strings.HasPrefix(stdout.String(), want) {
		t.Errorf("output = %q, want prefix %q", stdout.String(), want)
	}
}

func TestRunView(t *testing.T) {
	path := writeCapture(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"view", "-layer", "transport", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(view) = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "DD BC B9 63 01") {
		t.Errorf("expected data in output, got: %s", stdout.String())
	}
}

func TestRunViewBadFlag(t *testing.T) {
	path := writeCapture(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"view", "-layer", "wire", path}, &stdout, &stderr); code != 1 {
		t.Errorf("run(view -layer wire) = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "invalid layer") {
		t.Errorf("expected invalid layer error, got: %s", stderr.String())
	}
}

func TestRunFilterRequiresOutput(t *testing.T) {
	path := writeCapture(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"filter", path}, &stdout, &stderr); code != 1 {
		t.Errorf("run(filter) = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "output file (-o) required") {
		t.Errorf("expected -o error, got: %s", stderr.String())
	}
}

func TestRunMissingPath(t *testing.T) {
	for _, cmd := range []string{"view", "export", "filter", "stats"} {
		var stdout, stderr bytes.Buffer
		if code := run([]string{cmd}, &stdout, &stderr); code != 1 {
			t.Errorf("run(%s) = %d, want 1", cmd, code)
		}
	}
}

func TestRunStats(t *testing.T) {
	path := writeCapture(t)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"stats", path}, &stdout, &stderr); code != 0 {
		t.Fatalf("run(stats) = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Clocks: 1") {
		t.Errorf("expected clock count, got: %s", stdout.String())
	}
}
