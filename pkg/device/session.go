package device

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/vygate-network/vygate/pkg/audit"
	"github.com/vygate-network/vygate/pkg/util"
	"github.com/vygate-network/vygate/pkg/vyos"
)

// Session binds a device API to the snapshot cache and (optionally) an
// audit trail. Sessions are cheap; one per device is typical.
type Session struct {
	api   API
	cache Store
	audit audit.Logger
	user  string
}

// NewSession creates a session. A nil store gets a private in-process cache.
func NewSession(api API, cache Store) *Session {
	if cache == nil {
		cache = NewMemoryStore()
	}
	return &Session{api: api, cache: cache, audit: audit.NopLogger{}}
}

// WithAudit attaches an audit logger; events carry the given user identity.
func (s *Session) WithAudit(l audit.Logger, user string) *Session {
	if l != nil {
		s.audit = l
	}
	s.user = user
	return s
}

// Name returns the bound device's name.
func (s *Session) Name() string { return s.api.Name() }

// Version returns the bound device's raw firmware version string.
func (s *Session) Version() string { return s.api.Version() }

// CommitResult reports a successfully applied batch.
type CommitResult struct {
	Device   string          `json:"device"`
	Applied  int             `json:"applied"`
	Data     json.RawMessage `json:"data,omitempty"`
	Duration time.Duration   `json:"duration"`
}

// Commit submits the batch's instruction list to the device as one atomic
// transaction. On success the device's cached snapshot is invalidated so the
// next read re-fetches. On rejection the snapshot is left untouched: the
// device rolls a failed batch back as a unit, so the cached tree is still
// accurate. No retry, no partial rollback.
//
// An empty batch is a local no-op; nothing is sent and the cache is kept.
//
// Once the request has left the process, cancelling the caller's context no
// longer aborts it: partial application is already possible at the device
// and must not be compounded by inconsistent local bookkeeping. The
// client's own timeout still bounds the round trip.
func (s *Session) Commit(ctx context.Context, b *vyos.Batch) (*CommitResult, error) {
	device := s.api.Name()
	if b.IsEmpty() {
		util.WithDevice(device).Debug("commit skipped: empty batch")
		return &CommitResult{Device: device}, nil
	}

	ins := b.Seal()
	event := audit.NewEvent(s.user, device, "commit").
		WithFamily(b.Family()).
		WithInstructions(b.Preview()).
		WithExecuteMode(true)

	start := time.Now()
	data, err := s.api.Configure(context.WithoutCancel(ctx), ins)
	elapsed := time.Since(start)

	if err != nil {
		b.MarkRejected()
		s.logAudit(event.WithError(err).WithDuration(elapsed))

		var rejected *util.DeviceRejectedError
		if errors.As(err, &rejected) {
			util.WithDevice(device).Warnf("batch rejected: %s", rejected.Raw)
		} else {
			util.WithDevice(device).Warnf("commit failed: %v", err)
		}
		return nil, err
	}

	b.MarkCommitted()
	s.logAudit(event.WithSuccess().WithDuration(elapsed))

	if err := s.cache.Invalidate(ctx, device); err != nil {
		util.WithDevice(device).Warnf("snapshot invalidate failed: %v", err)
	}

	util.WithDevice(device).Infof("committed %d instructions in %s", len(ins), elapsed)
	return &CommitResult{
		Device:   device,
		Applied:  len(ins),
		Data:     data,
		Duration: elapsed,
	}, nil
}

// GetFullConfig returns the device's full configuration tree, from cache
// when present unless forceRefresh is set. A fetch replaces the cached
// snapshot wholesale.
func (s *Session) GetFullConfig(ctx context.Context, forceRefresh bool) (*Snapshot, error) {
	device := s.api.Name()

	if !forceRefresh {
		snap, ok, err := s.cache.Get(ctx, device)
		if err != nil {
			util.WithDevice(device).Warnf("snapshot cache read failed: %v", err)
		} else if ok {
			return snap, nil
		}
	}

	config, err := s.api.ShowConfig(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		Device:    device,
		Config:    config,
		FetchedAt: time.Now(),
	}
	if err := s.cache.Put(ctx, device, snap); err != nil {
		util.WithDevice(device).Warnf("snapshot cache write failed: %v", err)
	}
	return snap, nil
}

func (s *Session) logAudit(event *audit.Event) {
	if err := s.audit.Log(event); err != nil {
		util.WithDevice(event.Device).Warnf("audit log failed: %v", err)
	}
}
