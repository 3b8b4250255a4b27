package stats

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func TestUpdateCountsFramesPerSecond(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := newWithClock(clock.now)

	for range 59 {
		clock.advance(16 * time.Millisecond)
		s.Update()
	}
	if snap := s.Snapshot(); snap.FPS != 0 {
		t.Errorf("FPS should not be published before a second passed, got %d", snap.FPS)
	}

	clock.advance(100 * time.Millisecond)
	s.Update()

	snap := s.Snapshot()
	if snap.FPS != 60 {
		t.Errorf("expected 60 fps, got %d", snap.FPS)
	}
	if snap.FramesDrawn != 60 {
		t.Errorf("expected 60 frames drawn, got %d", snap.FramesDrawn)
	}
	if snap.Uptime < 1.0 || snap.Uptime > 1.1 {
		t.Errorf("unexpected uptime %f", snap.Uptime)
	}
}

func TestSnapshotCarriesProgramAndClients(t *testing.T) {
	s := New()
	s.SetProgram(3)
	s.SetWsClients(2)

	snap := s.Snapshot()
	if snap.ProgramID != 3 || snap.WsClients != 2 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}
