// Package spec loads and validates the device inventory.
package spec

// InventoryFile is the on-disk inventory format.
type InventoryFile struct {
	Devices []*DeviceProfile `yaml:"devices"`
}

// DeviceProfile describes how to reach one managed router.
type DeviceProfile struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"` // host or host:port of the HTTP API

	// APIKey authenticates against the device's HTTP API. APIKeyEnv names
	// an environment variable consulted when APIKey is empty, so keys can
	// stay out of the inventory file.
	APIKey    string `yaml:"api_key,omitempty"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`

	// Version is the raw firmware version string ("1.4", "1.5",
	// "VyOS 1.5-rolling-..."). Unrecognized values resolve to the latest
	// known generation.
	Version string `yaml:"version"`

	// InsecureTLS skips certificate verification. Routers commonly run
	// self-signed API certificates.
	InsecureTLS bool `yaml:"insecure_tls,omitempty"`

	// TimeoutSeconds bounds each API round trip. Zero means the default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`

	// SSH, when set, reaches the API through an SSH local-forward tunnel
	// instead of connecting to Address directly. Used for devices whose
	// API listens on loopback only.
	SSH *SSHConfig `yaml:"ssh,omitempty"`
}

// SSHConfig describes the tunnel endpoint.
type SSHConfig struct {
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Port       int    `yaml:"port,omitempty"`        // SSH port, default 22
	RemotePort int    `yaml:"remote_port,omitempty"` // API port on the device loopback, default 443
}
