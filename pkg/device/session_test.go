package device

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/vygate-network/vygate/pkg/audit"
	"github.com/vygate-network/vygate/pkg/util"
	"github.com/vygate-network/vygate/pkg/vyos"
)

// fakeAPI satisfies API without a network.
type fakeAPI struct {
	name       string
	version    string
	configured [][]vyos.Instruction
	configErr  error
	config     json.RawMessage
	showCalls  int
	showErr    error
}

func (f *fakeAPI) Name() string    { return f.name }
func (f *fakeAPI) Version() string { return f.version }

func (f *fakeAPI) Configure(_ context.Context, ins []vyos.Instruction) (json.RawMessage, error) {
	f.configured = append(f.configured, ins)
	if f.configErr != nil {
		return nil, f.configErr
	}
	return json.RawMessage(`[]`), nil
}

func (f *fakeAPI) ShowConfig(context.Context) (json.RawMessage, error) {
	f.showCalls++
	if f.showErr != nil {
		return nil, f.showErr
	}
	return f.config, nil
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		name:    "edge1",
		version: "VyOS 1.5-rolling",
		config:  json.RawMessage(`{"firewall":{}}`),
	}
}

func groupBatch(t *testing.T) *vyos.Batch {
	t.Helper()
	fw := vyos.NewFirewallGroups("VyOS 1.5-rolling")
	if err := fw.CreateAddressGroup("SERVERS"); err != nil {
		t.Fatalf("CreateAddressGroup: %v", err)
	}
	if err := fw.AddAddressGroupMember("SERVERS", "10.0.0.1"); err != nil {
		t.Fatalf("AddAddressGroupMember: %v", err)
	}
	return fw.Batch
}

func TestSessionCommit(t *testing.T) {
	api := newFakeAPI()
	sess := NewSession(api, nil)

	b := groupBatch(t)
	res, err := sess.Commit(context.Background(), b)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if res.Device != "edge1" {
		t.Errorf("device = %q, want edge1", res.Device)
	}
	if res.Applied != 2 {
		t.Errorf("applied = %d, want 2", res.Applied)
	}
	if len(api.configured) != 1 {
		t.Fatalf("configure calls = %d, want 1", len(api.configured))
	}
	if b.State() != vyos.StateCommitted {
		t.Errorf("batch state = %v, want committed", b.State())
	}
}

func TestSessionCommitEmptyBatch(t *testing.T) {
	api := newFakeAPI()
	sess := NewSession(api, nil)

	b := vyos.NewFirewallGroups("VyOS 1.5-rolling").Batch
	res, err := sess.Commit(context.Background(), b)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if res.Applied != 0 {
		t.Errorf("applied = %d, want 0", res.Applied)
	}
	if len(api.configured) != 0 {
		t.Errorf("empty batch reached the device")
	}
	if b.State() != vyos.StateEmpty {
		t.Errorf("batch state = %v, want empty", b.State())
	}
}

func TestSessionCommitRejection(t *testing.T) {
	api := newFakeAPI()
	api.configErr = &util.DeviceRejectedError{
		Device: "edge1",
		Raw:    "Configuration path: [firewall group address-group SERVERS] already exists",
	}
	store := NewMemoryStore()
	sess := NewSession(api, store)

	// Warm the cache so we can observe it surviving the rejection.
	if _, err := sess.GetFullConfig(context.Background(), false); err != nil {
		t.Fatalf("GetFullConfig: %v", err)
	}

	b := groupBatch(t)
	_, err := sess.Commit(context.Background(), b)
	if err == nil {
		t.Fatal("expected rejection error")
	}
	if !errors.Is(err, util.ErrDeviceRejected) {
		t.Errorf("error does not unwrap to ErrDeviceRejected: %v", err)
	}
	var rejected *util.DeviceRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("error is not DeviceRejectedError: %v", err)
	}
	if rejected.Raw != "Configuration path: [firewall group address-group SERVERS] already exists" {
		t.Errorf("raw device error altered: %q", rejected.Raw)
	}
	if b.State() != vyos.StateRejected {
		t.Errorf("batch state = %v, want rejected", b.State())
	}

	// Rejected batches roll back device-side; the snapshot stays valid.
	if _, err := sess.GetFullConfig(context.Background(), false); err != nil {
		t.Fatalf("GetFullConfig after rejection: %v", err)
	}
	if api.showCalls != 1 {
		t.Errorf("show calls = %d, want 1 (cache should survive rejection)", api.showCalls)
	}
}

func TestSessionCommitInvalidatesSnapshot(t *testing.T) {
	api := newFakeAPI()
	sess := NewSession(api, NewMemoryStore())

	if _, err := sess.GetFullConfig(context.Background(), false); err != nil {
		t.Fatalf("GetFullConfig: %v", err)
	}
	if api.showCalls != 1 {
		t.Fatalf("show calls = %d, want 1", api.showCalls)
	}

	if _, err := sess.Commit(context.Background(), groupBatch(t)); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	// The commit changed the device; a plain read must re-fetch.
	if _, err := sess.GetFullConfig(context.Background(), false); err != nil {
		t.Fatalf("GetFullConfig after commit: %v", err)
	}
	if api.showCalls != 2 {
		t.Errorf("show calls = %d, want 2 (snapshot should be invalidated)", api.showCalls)
	}
}

func TestSessionGetFullConfigCaching(t *testing.T) {
	api := newFakeAPI()
	sess := NewSession(api, NewMemoryStore())

	snap, err := sess.GetFullConfig(context.Background(), false)
	if err != nil {
		t.Fatalf("GetFullConfig: %v", err)
	}
	if string(snap.Config) != `{"firewall":{}}` {
		t.Errorf("config = %s", snap.Config)
	}
	if snap.Device != "edge1" {
		t.Errorf("device = %q", snap.Device)
	}

	for i := 0; i < 3; i++ {
		if _, err := sess.GetFullConfig(context.Background(), false); err != nil {
			t.Fatalf("GetFullConfig: %v", err)
		}
	}
	if api.showCalls != 1 {
		t.Errorf("show calls = %d, want 1 (reads should hit the cache)", api.showCalls)
	}

	if _, err := sess.GetFullConfig(context.Background(), true); err != nil {
		t.Fatalf("GetFullConfig force: %v", err)
	}
	if api.showCalls != 2 {
		t.Errorf("show calls = %d, want 2 after forced refresh", api.showCalls)
	}
}

func TestSessionGetFullConfigFetchError(t *testing.T) {
	api := newFakeAPI()
	api.showErr = &util.DeviceCommError{Device: "edge1", Op: "retrieve", Err: errors.New("dial timeout")}
	sess := NewSession(api, NewMemoryStore())

	_, err := sess.GetFullConfig(context.Background(), false)
	if !errors.Is(err, util.ErrDeviceComm) {
		t.Errorf("error does not unwrap to ErrDeviceComm: %v", err)
	}
}

// recordingLogger captures audit events in memory.
type recordingLogger struct {
	events []*audit.Event
}

func (l *recordingLogger) Log(e *audit.Event) error {
	l.events = append(l.events, e)
	return nil
}

func (l *recordingLogger) Query(audit.Filter) ([]*audit.Event, error) { return l.events, nil }
func (l *recordingLogger) Close() error                               { return nil }

func TestSessionAuditTrail(t *testing.T) {
	api := newFakeAPI()
	rec := &recordingLogger{}
	sess := NewSession(api, nil).WithAudit(rec, "operator")

	if _, err := sess.Commit(context.Background(), groupBatch(t)); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	api.configErr = &util.DeviceRejectedError{Device: "edge1", Raw: "commit failed"}
	if _, err := sess.Commit(context.Background(), groupBatch(t)); err == nil {
		t.Fatal("expected rejection")
	}

	if len(rec.events) != 2 {
		t.Fatalf("events = %d, want 2", len(rec.events))
	}

	ok := rec.events[0]
	if !ok.Success || ok.User != "operator" || ok.Device != "edge1" {
		t.Errorf("success event wrong: %+v", ok)
	}
	if ok.Family != "firewall-group" {
		t.Errorf("family = %q, want firewall-group", ok.Family)
	}
	if len(ok.Instructions) != 2 {
		t.Errorf("success event instructions = %d, want 2", len(ok.Instructions))
	}

	fail := rec.events[1]
	if fail.Success {
		t.Errorf("rejection recorded as success")
	}
	if fail.Error == "" {
		t.Errorf("rejection event missing error detail")
	}
}
