package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/koenvervloesem/bluetooth-clocks/pkg/log"
)

func TestCollectStats(t *testing.T) {
	events := sessionEvents()
	events = append(events, log.Event{
		Timestamp: events[3].Timestamp.Add(time.Minute),
		SessionID: "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		Address:   "10:76:36:14:2A:3D",
		Family:    "ThermoPro TP393",
		Layer:     log.LayerTransport,
		Category:  log.CategoryError,
		Error:     &log.ErrorEventData{Layer: log.LayerTransport, Message: "connect timeout"},
	})
	path := createTestLogFile(t, events)

	stats, err := collectStats(path)
	if err != nil {
		t.Fatalf("collectStats failed: %v", err)
	}

	if stats.TotalEvents != 5 {
		t.Errorf("TotalEvents = %d, want 5", stats.TotalEvents)
	}
	if len(stats.Sessions) != 2 {
		t.Errorf("Sessions = %d, want 2", len(stats.Sessions))
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if stats.EventsByLayer[log.LayerSession] != 2 {
		t.Errorf("session layer events = %d, want 2", stats.EventsByLayer[log.LayerSession])
	}

	lywsd02 := stats.Clocks["E7:2E:00:B1:38:96"]
	if lywsd02 == nil {
		t.Fatal("missing LYWSD02 stats")
	}
	if lywsd02.Events != 4 || lywsd02.Reads != 1 || lywsd02.Writes != 0 {
		t.Errorf("LYWSD02 stats = %+v", lywsd02)
	}
	if lywsd02.Family != "Xiaomi LYWSD02" {
		t.Errorf("Family = %q", lywsd02.Family)
	}
	if tp := stats.Clocks["10:76:36:14:2A:3D"]; tp == nil || tp.Errors != 1 {
		t.Errorf("TP393 stats = %+v", tp)
	}
}

func TestRunStatsOutput(t *testing.T) {
	path := createTestLogFile(t, sessionEvents())

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 4",
		"Sessions:     1",
		"TRANSPORT:",
		"CODEC:",
		"SESSION:",
		"Clocks: 1",
		"[E7:2E:00:B1:38:96] 4 events in 1 sessions",
		"Family: Xiaomi LYWSD02",
		"Reads: 1  Writes: 0",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if strings.Contains(output, "Errors:") {
		t.Errorf("unexpected errors line: %s", output)
	}
}

func TestRunStatsEmpty(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}
