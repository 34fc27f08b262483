// Package device submits compiled instruction batches to a router's HTTP
// API and maintains the per-device configuration snapshot cache.
//
// Two concurrent commits against the same device are not serialized here;
// the device's own configuration-session semantics order them. Integrators
// that need stronger guarantees should hold an external per-device lock.
package device

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vygate-network/vygate/pkg/spec"
	"github.com/vygate-network/vygate/pkg/util"
	"github.com/vygate-network/vygate/pkg/vyos"
)

const defaultTimeout = 30 * time.Second

// API is the device surface the session depends on. Satisfied by *Client;
// tests substitute a fake.
type API interface {
	Name() string
	Version() string
	Configure(ctx context.Context, ins []vyos.Instruction) (json.RawMessage, error)
	ShowConfig(ctx context.Context) (json.RawMessage, error)
}

// Client talks to one router's HTTP API.
type Client struct {
	name    string
	version string
	baseURL string
	key     string
	httpc   *http.Client
	tunnel  *SSHTunnel
}

// NewClient builds a client from an inventory profile, opening an SSH
// tunnel first when the profile asks for one.
func NewClient(p *spec.DeviceProfile) (*Client, error) {
	addr := p.Address

	var tunnel *SSHTunnel
	if p.SSH != nil {
		host := p.Address
		if h, _, err := net.SplitHostPort(p.Address); err == nil {
			host = h
		}
		tun, err := NewSSHTunnel(host, p.SSH.User, p.SSH.Password, p.SSH.Port, p.SSH.RemotePort)
		if err != nil {
			return nil, fmt.Errorf("tunnel to %s: %w", p.Name, err)
		}
		tunnel = tun
		addr = tun.LocalAddr()
	}

	timeout := defaultTimeout
	if p.TimeoutSeconds > 0 {
		timeout = time.Duration(p.TimeoutSeconds) * time.Second
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if p.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		name:    p.Name,
		version: p.Version,
		baseURL: "https://" + addr,
		key:     p.APIKey,
		httpc: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		tunnel: tunnel,
	}, nil
}

// Name returns the device name.
func (c *Client) Name() string { return c.name }

// Version returns the raw firmware version string from the inventory.
func (c *Client) Version() string { return c.version }

// Close releases the SSH tunnel, if any.
func (c *Client) Close() error {
	if c.tunnel != nil {
		return c.tunnel.Close()
	}
	return nil
}

// apiResponse is the device's response envelope.
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *string         `json:"error"`
}

// Configure submits the full ordered instruction list as one request. The
// device applies it atomically: either the whole batch is reported applied,
// or the response carries the rejection detail.
func (c *Client) Configure(ctx context.Context, ins []vyos.Instruction) (json.RawMessage, error) {
	payload, err := vyos.MarshalInstructions(ins)
	if err != nil {
		return nil, fmt.Errorf("encoding batch: %w", err)
	}
	return c.post(ctx, "configure", string(payload))
}

// ShowConfig fetches the device's full configuration tree.
func (c *Client) ShowConfig(ctx context.Context) (json.RawMessage, error) {
	return c.post(ctx, "retrieve", `{"op": "showConfig", "path": []}`)
}

// post sends one form-encoded API request. The payload travels in the
// "data" field and the API key in "key", per the device's convention.
func (c *Client) post(ctx context.Context, endpoint, data string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("data", data)
	form.Set("key", c.key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &util.DeviceCommError{Device: c.name, Op: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, &util.DeviceCommError{Device: c.name, Op: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &util.DeviceCommError{Device: c.name, Op: endpoint, Err: err}
	}

	// The device reports rejections as JSON with a non-2xx status; decode
	// the envelope before looking at the status code.
	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &util.DeviceCommError{
			Device: c.name,
			Op:     endpoint,
			Err:    fmt.Errorf("unexpected response (HTTP %d): %w", resp.StatusCode, err),
		}
	}

	if !envelope.Success {
		raw := ""
		if envelope.Error != nil {
			raw = *envelope.Error
		}
		return nil, &util.DeviceRejectedError{Device: c.name, Raw: raw}
	}
	return envelope.Data, nil
}
