package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsWhenMissing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "monitor_config.json"))
	v := s.Get()
	if v.PollIntervalSeconds != 30 {
		t.Errorf("poll interval = %d, want 30", v.PollIntervalSeconds)
	}
	if v.AlertThresholdCents != 1.0 {
		t.Errorf("threshold = %v, want 1.0", v.AlertThresholdCents)
	}
	if v.AddSemantics != "upsert" {
		t.Errorf("add semantics = %q, want upsert", v.AddSemantics)
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor_config.json")
	s := NewStore(path)
	if err := s.SetThreshold(2.5); err != nil {
		t.Fatalf("SetThreshold: %v", err)
	}
	if err := s.SetInterval(60); err != nil {
		t.Fatalf("SetInterval: %v", err)
	}

	re := NewStore(path)
	v := re.Get()
	if v.AlertThresholdCents != 2.5 {
		t.Errorf("reloaded threshold = %v, want 2.5", v.AlertThresholdCents)
	}
	if v.PollIntervalSeconds != 60 {
		t.Errorf("reloaded interval = %d, want 60", v.PollIntervalSeconds)
	}
}

func TestSanitizeBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monitor_config.json")
	if err := os.WriteFile(path, []byte(`{"poll_interval_seconds": 0, "alert_threshold_cents": -1, "add_semantics": "weird"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(path)
	v := s.Get()
	if v.PollIntervalSeconds != 30 || v.AlertThresholdCents != 1.0 || v.AddSemantics != "upsert" {
		t.Fatalf("sanitized values = %+v", v)
	}
}

func TestSetAddSemantics(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "monitor_config.json"))
	if err := s.SetAddSemantics("strict"); err != nil {
		t.Fatalf("SetAddSemantics: %v", err)
	}
	if got := s.Get().AddSemantics; got != "strict" {
		t.Fatalf("add semantics = %q, want strict", got)
	}
}
