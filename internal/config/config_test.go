package config

import "testing"

func TestNewDefaults(t *testing.T) {
	t.Setenv("PROJECTID", "flight-dev")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if cfg.ProjectID != "flight-dev" {
		t.Fatalf("ProjectID = %q", cfg.ProjectID)
	}
	if cfg.Addr() != ":8080" || cfg.TimeLayout != "15:04 %R" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("Location = (%v, %v)", loc, err)
	}
}

func TestNewInvalidTimeZone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus_Mons")
	if _, err := New(); err == nil {
		t.Fatalf("expected error for invalid TIMEZONE")
	}
}
