package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if s.DefaultDevice != "" || s.InventoryPath != "" || s.AuditLog != "" {
		t.Errorf("missing file should yield empty settings: %+v", s)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	s := &Settings{}
	s.SetDefaultDevice("edge1")
	s.SetInventoryPath("/srv/vygate/inventory.yaml")
	s.SetAuditLog("/var/log/vygate/audit.jsonl")

	if err := s.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	back, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if back.DefaultDevice != "edge1" {
		t.Errorf("DefaultDevice = %q", back.DefaultDevice)
	}
	if back.InventoryPath != "/srv/vygate/inventory.yaml" {
		t.Errorf("InventoryPath = %q", back.InventoryPath)
	}
	if back.AuditLog != "/var/log/vygate/audit.jsonl" {
		t.Errorf("AuditLog = %q", back.AuditLog)
	}
}

func TestLoadFromMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for malformed settings file")
	}
}

func TestGetInventoryPathFallback(t *testing.T) {
	s := &Settings{}
	if got := s.GetInventoryPath(); got != "/etc/vygate/inventory.yaml" {
		t.Errorf("fallback = %q", got)
	}
	s.SetInventoryPath("/tmp/inv.yaml")
	if got := s.GetInventoryPath(); got != "/tmp/inv.yaml" {
		t.Errorf("override = %q", got)
	}
}

func TestClear(t *testing.T) {
	s := &Settings{DefaultDevice: "edge1", AuditLog: "/tmp/a.jsonl"}
	s.Clear()
	if s.DefaultDevice != "" || s.AuditLog != "" {
		t.Errorf("Clear left: %+v", s)
	}
}
