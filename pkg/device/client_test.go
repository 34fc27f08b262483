package device

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vygate-network/vygate/pkg/spec"
	"github.com/vygate-network/vygate/pkg/util"
	"github.com/vygate-network/vygate/pkg/vyos"
)

// deviceRequest is one decoded form submission seen by the fake device.
type deviceRequest struct {
	endpoint string
	key      string
	data     string
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewTLSServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(&spec.DeviceProfile{
		Name:        "edge1",
		Address:     strings.TrimPrefix(srv.URL, "https://"),
		APIKey:      "sekrit",
		Version:     "VyOS 1.5-rolling",
		InsecureTLS: true,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, srv
}

func TestClientConfigure(t *testing.T) {
	var got deviceRequest
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		got = deviceRequest{
			endpoint: r.URL.Path,
			key:      r.PostFormValue("key"),
			data:     r.PostFormValue("data"),
		}
		w.Write([]byte(`{"success": true, "data": [], "error": null}`))
	})

	ins := []vyos.Instruction{
		{Op: vyos.OpSet, Path: vyos.Path{"firewall", "group", "address-group", "SERVERS"}},
		{Op: vyos.OpDelete, Path: vyos.Path{"nat", "source", "rule", "100"}},
	}
	data, err := c.Configure(context.Background(), ins)
	if err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("data = %s", data)
	}
	if got.endpoint != "/configure" {
		t.Errorf("endpoint = %q", got.endpoint)
	}
	if got.key != "sekrit" {
		t.Errorf("key = %q", got.key)
	}

	var decoded []struct {
		Op   string   `json:"op"`
		Path []string `json:"path"`
	}
	if err := json.Unmarshal([]byte(got.data), &decoded); err != nil {
		t.Fatalf("data payload is not JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Op != "set" || decoded[1].Op != "delete" {
		t.Errorf("payload = %s", got.data)
	}
}

func TestClientShowConfig(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/retrieve" {
			t.Errorf("endpoint = %q", r.URL.Path)
		}
		w.Write([]byte(`{"success": true, "data": {"interfaces": {}}, "error": null}`))
	})

	data, err := c.ShowConfig(context.Background())
	if err != nil {
		t.Fatalf("ShowConfig: %v", err)
	}
	if string(data) != `{"interfaces": {}}` {
		t.Errorf("data = %s", data)
	}
}

func TestClientRejection(t *testing.T) {
	// Rejections arrive as a JSON envelope with a non-2xx status. The raw
	// error text must come back untouched.
	raw := "Configuration path: [firewall name BAD] is not valid\n\n  Set failed\n"
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		body, _ := json.Marshal(map[string]any{
			"success": false,
			"data":    nil,
			"error":   raw,
		})
		w.Write(body)
	})

	_, err := c.Configure(context.Background(), []vyos.Instruction{
		{Op: vyos.OpSet, Path: vyos.Path{"firewall", "name", "BAD"}},
	})
	if !errors.Is(err, util.ErrDeviceRejected) {
		t.Fatalf("error does not unwrap to ErrDeviceRejected: %v", err)
	}
	var rejected *util.DeviceRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("error is not DeviceRejectedError: %v", err)
	}
	if rejected.Raw != raw {
		t.Errorf("raw = %q, want %q", rejected.Raw, raw)
	}
	if rejected.Device != "edge1" {
		t.Errorf("device = %q", rejected.Device)
	}
}

func TestClientMalformedResponse(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	})

	_, err := c.ShowConfig(context.Background())
	if !errors.Is(err, util.ErrDeviceComm) {
		t.Errorf("error does not unwrap to ErrDeviceComm: %v", err)
	}
}

func TestClientConnectionRefused(t *testing.T) {
	c, srv := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := c.ShowConfig(context.Background())
	if !errors.Is(err, util.ErrDeviceComm) {
		t.Errorf("error does not unwrap to ErrDeviceComm: %v", err)
	}
	var comm *util.DeviceCommError
	if !errors.As(err, &comm) {
		t.Fatalf("error is not DeviceCommError: %v", err)
	}
	if comm.Op != "retrieve" {
		t.Errorf("op = %q", comm.Op)
	}
}

func TestClientProfileTimeout(t *testing.T) {
	c, err := NewClient(&spec.DeviceProfile{
		Name:           "edge1",
		Address:        "192.0.2.1",
		APIKey:         "k",
		TimeoutSeconds: 5,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.httpc.Timeout.Seconds() != 5 {
		t.Errorf("timeout = %v, want 5s", c.httpc.Timeout)
	}
}
