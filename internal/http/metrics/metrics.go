package metrics

import (
	"sync"
	"time"
)

// Collector keeps in-process request and error counters served by the
// /metrics endpoint. Not a full metrics pipeline; counters reset on
// restart.
type Collector struct {
	mu         sync.Mutex
	startedAt  time.Time
	requests   int64
	byStatus   map[int]int64
	errorCodes map[string]int64
}

func NewCollector() *Collector {
	return &Collector{
		startedAt:  time.Now().UTC(),
		byStatus:   make(map[int]int64),
		errorCodes: make(map[string]int64),
	}
}

func (c *Collector) ObserveRequest(status int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests++
	c.byStatus[status]++
}

func (c *Collector) ObserveError(code string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCodes[code]++
}

type Snapshot struct {
	UptimeSeconds int64            `json:"uptime_seconds"`
	Requests      int64            `json:"requests"`
	ByStatus      map[int]int64    `json:"by_status"`
	ErrorCodes    map[string]int64 `json:"error_codes"`
}

func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	byStatus := make(map[int]int64, len(c.byStatus))
	for status, count := range c.byStatus {
		byStatus[status] = count
	}
	errorCodes := make(map[string]int64, len(c.errorCodes))
	for code, count := range c.errorCodes {
		errorCodes[code] = count
	}
	return Snapshot{
		UptimeSeconds: int64(time.Since(c.startedAt).Seconds()),
		Requests:      c.requests,
		ByStatus:      byStatus,
		ErrorCodes:    errorCodes,
	}
}
