package spec

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vygate-network/vygate/pkg/util"
)

// InventoryPath is the default inventory location
var InventoryPath = "/etc/vygate/inventory.yaml"

// Loader handles loading and validating the device inventory
type Loader struct {
	path     string
	profiles map[string]*DeviceProfile
	order    []string
}

// NewLoader creates an inventory loader
func NewLoader(path string) *Loader {
	if path == "" {
		path = InventoryPath
	}
	return &Loader{
		path:     path,
		profiles: make(map[string]*DeviceProfile),
	}
}

// Load reads and validates the inventory file
func (l *Loader) Load() error {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("reading inventory: %w", err)
	}

	var inv InventoryFile
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return fmt.Errorf("parsing inventory %s: %w", l.path, err)
	}

	if err := validate(&inv); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	for _, p := range inv.Devices {
		resolveAPIKey(p)
		l.profiles[p.Name] = p
		l.order = append(l.order, p.Name)
	}
	return nil
}

// Profile returns the profile for a device name
func (l *Loader) Profile(name string) (*DeviceProfile, error) {
	p, ok := l.profiles[name]
	if !ok {
		return nil, fmt.Errorf("device %q not in inventory: %w", name, util.ErrNotFound)
	}
	return p, nil
}

// Devices returns the device names in inventory order
func (l *Loader) Devices() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

func validate(inv *InventoryFile) error {
	var v util.ValidationBuilder
	seen := make(map[string]bool)

	for i, p := range inv.Devices {
		if p.Name == "" {
			v.AddErrorf("device %d: name is required", i)
			continue
		}
		if seen[p.Name] {
			v.AddErrorf("device %s: duplicate name", p.Name)
		}
		seen[p.Name] = true

		v.Add(p.Address != "", fmt.Sprintf("device %s: address is required", p.Name))
		v.Add(p.Version != "", fmt.Sprintf("device %s: version is required", p.Name))
		if p.TimeoutSeconds < 0 {
			v.AddErrorf("device %s: negative timeout", p.Name)
		}
		if p.SSH != nil {
			v.Add(p.SSH.User != "", fmt.Sprintf("device %s: ssh.user is required", p.Name))
		}
	}
	return v.Build()
}

// resolveAPIKey fills APIKey from the named environment variable. The env
// var wins over an inline key when both are present.
func resolveAPIKey(p *DeviceProfile) {
	if p.APIKeyEnv == "" {
		return
	}
	if key := os.Getenv(p.APIKeyEnv); key != "" {
		p.APIKey = key
	}
}
