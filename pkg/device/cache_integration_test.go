//go:build integration

package device

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/vygate-network/vygate/internal/testutil"
)

const testRedisDB = 9

func TestRedisStoreRoundTrip(t *testing.T) {
	testutil.SkipIfNoRedis(t)
	testutil.FlushDB(t, testRedisDB)

	store := NewRedisStore(testutil.RedisAddr(), testRedisDB, time.Minute)
	defer store.Close()

	ctx := testutil.Context(t)

	if _, ok, err := store.Get(ctx, "edge1"); err != nil || ok {
		t.Fatalf("empty store Get = ok=%v err=%v", ok, err)
	}

	snap := &Snapshot{
		Device:    "edge1",
		Config:    json.RawMessage(`{"firewall":{"ipv4":{}}}`),
		FetchedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := store.Put(ctx, "edge1", snap); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := store.Get(ctx, "edge1")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v", ok, err)
	}
	if got.Device != "edge1" || string(got.Config) != string(snap.Config) {
		t.Errorf("snapshot = %+v", got)
	}
	if !got.FetchedAt.Equal(snap.FetchedAt) {
		t.Errorf("fetched-at = %v, want %v", got.FetchedAt, snap.FetchedAt)
	}

	if err := store.Invalidate(ctx, "edge1"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "edge1"); ok {
		t.Error("snapshot survived invalidation")
	}
}
