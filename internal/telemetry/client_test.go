package telemetry

import (
	"runtime"
	"sync"
	"testing"

	"github.com/posthog/posthog-go"
)

// mockEnqueuer captures events for testing.
type mockEnqueuer struct {
	mu     sync.Mutex
	events []posthog.Capture
	closed bool
}

func (m *mockEnqueuer) Enqueue(msg posthog.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if capture, ok := msg.(posthog.Capture); ok {
		m.events = append(m.events, capture)
	}
	return nil
}

func (m *mockEnqueuer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockEnqueuer) getEvents() []posthog.Capture {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]posthog.Capture, len(m.events))
	copy(result, m.events)
	return result
}

func TestPostHogClient_Track_WhenEnabled(t *testing.T) {
	cfg := &Config{Enabled: true, AnonymousID: "anon-123"}
	mock := &mockEnqueuer{}
	client := newPostHogClientWithEnqueuer(mock, cfg, "0.3.0")

	client.Track(EventAnalysisRun, AnalysisRun("smart-task-assignment", 4))

	events := mock.getEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	event := events[0]
	if event.Event != EventAnalysisRun {
		t.Errorf("Event = %q, want %q", event.Event, EventAnalysisRun)
	}
	if event.DistinctId != "anon-123" {
		t.Errorf("DistinctId = %q", event.DistinctId)
	}
	if event.Properties["operation"] != "smart-task-assignment" {
		t.Errorf("operation = %v", event.Properties["operation"])
	}
	if event.Properties["os"] != runtime.GOOS {
		t.Errorf("os = %v", event.Properties["os"])
	}
	if event.Properties["$process_person_profile"] != false {
		t.Error("person profiles must be disabled")
	}
}

func TestPostHogClient_Track_WhenDisabled(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClientWithEnqueuer(mock, &Config{Enabled: false, AnonymousID: "x"}, "0.3.0")

	client.Track(EventAnalysisRun, nil)

	if n := len(mock.getEvents()); n != 0 {
		t.Errorf("expected no events, got %d", n)
	}
}

func TestPostHogClient_CloseStopsTracking(t *testing.T) {
	mock := &mockEnqueuer{}
	client := newPostHogClientWithEnqueuer(mock, &Config{Enabled: true, AnonymousID: "x"}, "0.3.0")

	if err := client.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !mock.closed {
		t.Error("expected enqueuer to be closed")
	}
	client.Track(EventAnalysisRun, nil)
	if n := len(mock.getEvents()); n != 0 {
		t.Errorf("expected no events after close, got %d", n)
	}
	if err := client.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNew_ReturnsNoopWithoutKeyOrConsent(t *testing.T) {
	if _, ok := New(ClientConfig{Config: &Config{Enabled: true}}).(*NoopClient); !ok {
		t.Error("expected NoopClient without API key")
	}
	if _, ok := New(ClientConfig{APIKey: "phc_test", Config: &Config{Enabled: false}}).(*NoopClient); !ok {
		t.Error("expected NoopClient when disabled")
	}
	if _, ok := New(ClientConfig{APIKey: "phc_test"}).(*NoopClient); !ok {
		t.Error("expected NoopClient with nil config")
	}
}

func TestLoad_PersistsAnonymousID(t *testing.T) {
	dir := t.TempDir()

	first, err := Load(dir, true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first.AnonymousID == "" {
		t.Fatal("expected anonymous ID")
	}

	second, err := Load(dir, true)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if second.AnonymousID != first.AnonymousID {
		t.Errorf("AnonymousID changed: %q -> %q", first.AnonymousID, second.AnonymousID)
	}
}

func TestLoad_DisabledDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir, false)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.IsEnabled() {
		t.Error("expected disabled config")
	}
	again, _ := Load(dir, false)
	if again.AnonymousID == cfg.AnonymousID {
		t.Error("disabled telemetry should not persist an ID")
	}
}
