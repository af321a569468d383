package stats

import (
	"sync"
	"time"
)

// Report is what the API serves.
type Report struct {
	Frames    uint64  `json:"frames"`
	Uptime    float64 `json:"uptime"`
	FPS       uint64  `json:"fps"`
	FrameTime float64 `json:"frame_time_ms"`
	State     string  `json:"state"`
	WsClients int     `json:"ws_clients"`
}

type Stats struct {
	mu     sync.Mutex
	report Report

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
}

func New() *Stats {
	s := &Stats{}
	s.start = time.Now()
	s.frameTimer = s.start
	return s
}

// Update is called once per drawn frame with the time since the last one.
func (s *Stats) Update(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.report.Frames++
	s.report.FrameTime = float64(dt.Microseconds()) / 1e3
	s.frameCounter++
	if time.Since(s.frameTimer) > 1*time.Second {
		s.report.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = time.Now()
	}
}

func (s *Stats) SetState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report.State = state
}

func (s *Stats) SetWsClients(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report.WsClients = n
}

func (s *Stats) Snapshot() Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.report
	r.Uptime = float64(time.Since(s.start).Nanoseconds()) / 1e9
	return r
}
