// internal/monitor/monitor_test.go
package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tamzrod/modbus-servo/internal/status"
)

type fakeSource struct {
	failAt string
	reads  int
}

func (f *fakeSource) Name() string { return "x_axis" }

func (f *fakeSource) ReadStatus() (status.Flags, error) {
	f.reads++
	if f.failAt == "status" {
		return nil, errors.New("fail status")
	}
	return status.Flags{status.MotorEnabled}, nil
}

func (f *fakeSource) ReadAlarms() (status.Flags, error) {
	f.reads++
	if f.failAt == "alarms" {
		return nil, errors.New("fail alarms")
	}
	return status.Flags{}, nil
}

func (f *fakeSource) EncoderCount() (uint32, error) {
	f.reads++
	if f.failAt == "encoder" {
		return 0, errors.New("fail encoder")
	}
	return 65546, nil
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{Interval: time.Second}, nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := New(Config{}, &fakeSource{}); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestPollOnce_Success(t *testing.T) {
	m, err := New(Config{Interval: time.Second}, &fakeSource{})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	snap := m.PollOnce()
	if snap.Err != nil {
		t.Fatalf("PollOnce err=%v", snap.Err)
	}
	if snap.Servo != "x_axis" || snap.Position != 65546 || !snap.Status.Has(status.MotorEnabled) {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestPollOnce_Failure(t *testing.T) {
	for _, at := range []string{"status", "alarms", "encoder"} {
		m, err := New(Config{Interval: time.Second}, &fakeSource{failAt: at})
		if err != nil {
			t.Fatalf("New() err=%v", err)
		}

		snap := m.PollOnce()
		if snap.Err == nil {
			t.Fatalf("%s: expected error, got nil", at)
		}
		if snap.Status != nil || snap.Position != 0 {
			t.Fatalf("%s: partial snapshot committed: %+v", at, snap)
		}
	}
}

func TestRun_EmitsUntilCancelled(t *testing.T) {
	m, err := New(Config{Interval: 5 * time.Millisecond}, &fakeSource{})
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Snapshot)
	done := make(chan struct{})
	go func() {
		m.Run(ctx, out)
		close(done)
	}()

	select {
	case snap := <-out:
		if snap.Err != nil {
			t.Fatalf("unexpected error: %v", snap.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no snapshot emitted")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestLatest(t *testing.T) {
	var l Latest
	if _, ok := l.Load(); ok {
		t.Fatalf("empty Latest reported a snapshot")
	}
	l.Store(Snapshot{Servo: "x_axis", Position: 7})
	s, ok := l.Load()
	if !ok || s.Position != 7 {
		t.Fatalf("unexpected snapshot: %+v ok=%v", s, ok)
	}
}
