package audit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testLogger(t *testing.T) (*FileLogger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.log")
	l, err := NewFileLogger(path, RotationConfig{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l, path
}

func TestFileLogger_LogAndQuery(t *testing.T) {
	l, _ := testLogger(t)

	ev := NewEvent("alice", "edge1", "commit").
		WithFamily("firewall-rule").
		WithInstructions([]string{"set firewall ipv4 name WAN-IN rule 10 action 'accept'"}).
		WithExecuteMode(true).
		WithDuration(120 * time.Millisecond).
		WithSuccess()
	if err := l.Log(ev); err != nil {
		t.Fatal(err)
	}

	rejected := NewEvent("bob", "edge2", "commit").
		WithExecuteMode(true).
		WithError(errors.New("node does not exist"))
	if err := l.Log(rejected); err != nil {
		t.Fatal(err)
	}

	all, err := l.Query(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("Query all = %d events", len(all))
	}

	got, err := l.Query(Filter{Device: "edge1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].User != "alice" || !got[0].Success {
		t.Errorf("device filter: %+v", got)
	}
	if got[0].Instructions[0] != "set firewall ipv4 name WAN-IN rule 10 action 'accept'" {
		t.Errorf("instructions not preserved: %v", got[0].Instructions)
	}

	failures, err := l.Query(Filter{FailureOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 1 || failures[0].Error != "node does not exist" {
		t.Errorf("failure filter: %+v", failures)
	}
}

func TestFileLogger_QueryLimitOffset(t *testing.T) {
	l, _ := testLogger(t)
	for i := 0; i < 5; i++ {
		if err := l.Log(NewEvent("u", "d", "commit")); err != nil {
			t.Fatal(err)
		}
	}

	got, err := l.Query(Filter{Limit: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("limit: got %d", len(got))
	}

	got, err = l.Query(Filter{Offset: 4})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("offset: got %d", len(got))
	}

	got, err = l.Query(Filter{Offset: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("offset past end: got %d", len(got))
	}
}

func TestFileLogger_SkipsMalformedLines(t *testing.T) {
	l, path := testLogger(t)
	if err := l.Log(NewEvent("u", "d", "commit")); err != nil {
		t.Fatal(err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("not json\n")
	f.Close()

	if err := l.Log(NewEvent("u", "d", "commit")); err != nil {
		t.Fatal(err)
	}

	got, err := l.Query(Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d events, want 2 (malformed line skipped)", len(got))
	}
}

func TestFileLogger_Rotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")
	l, err := NewFileLogger(path, RotationConfig{MaxSize: 1, MaxBackups: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()

	// every write after the first exceeds MaxSize and rotates
	for i := 0; i < 3; i++ {
		if err := l.Log(NewEvent("u", "d", "commit")); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) < 2 {
		t.Errorf("expected rotated files, dir has %d entries", len(entries))
	}
}

func TestEvent_Builders(t *testing.T) {
	ev := NewEvent("alice", "edge1", "commit").WithExecuteMode(false)
	if !ev.DryRun || ev.ExecuteMode {
		t.Error("execute=false must mean dry run")
	}
	if ev.ID == "" || ev.Timestamp.IsZero() {
		t.Error("NewEvent must stamp ID and timestamp")
	}
}
