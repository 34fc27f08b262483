// Package settings manages persistent user settings for the vygate CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/vygate-network/vygate/pkg/spec"
)

// Settings holds persistent user preferences
type Settings struct {
	// DefaultDevice is the device to use when -d is not specified
	DefaultDevice string `json:"default_device,omitempty"`

	// InventoryPath overrides the default device inventory file
	InventoryPath string `json:"inventory_path,omitempty"`

	// AuditLog is the path of the audit trail file; empty disables auditing
	AuditLog string `json:"audit_log,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "vygate_settings.json"
	}
	return filepath.Join(home, ".vygate", "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetDefaultDevice sets the default device
func (s *Settings) SetDefaultDevice(device string) {
	s.DefaultDevice = device
}

// SetInventoryPath sets the device inventory file
func (s *Settings) SetInventoryPath(path string) {
	s.InventoryPath = path
}

// GetInventoryPath returns the inventory path (with fallback)
func (s *Settings) GetInventoryPath() string {
	if s.InventoryPath != "" {
		return s.InventoryPath
	}
	return spec.InventoryPath
}

// SetAuditLog sets the audit trail file
func (s *Settings) SetAuditLog(path string) {
	s.AuditLog = path
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
