package stats

import (
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of the render statistics.
type Snapshot struct {
	Uptime      float64 `json:"uptime"`
	FPS         uint64  `json:"fps"`
	FramesDrawn uint64  `json:"frames_drawn"`
	ProgramID   uint32  `json:"program_id"`
	WsClients   int     `json:"ws_clients"`
}

type Stats struct {
	cur Snapshot

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	now          func() time.Time
	mu           sync.Mutex
}

func New() *Stats {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Stats {
	s := &Stats{now: now}
	s.start = now()
	s.frameTimer = s.start
	return s
}

// Update is called by the render loop once per drawn frame.
func (s *Stats) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.cur.FramesDrawn++
	s.frameCounter++
	if now.Sub(s.frameTimer) >= time.Second {
		s.cur.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = now
	}

	s.cur.Uptime = now.Sub(s.start).Seconds()
}

func (s *Stats) SetProgram(id uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.ProgramID = id
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.WsClients = n
}

// Snapshot returns a copy that is safe to serialise while the render loop
// keeps updating.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur
}
