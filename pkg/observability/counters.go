package observability

import (
	"context"
	"maps"
	"sync"
	"time"
)

// Counters is an in-process implementation of every hook kind. It keeps
// totals only and is what `tiler serve` exposes on /stats.
type Counters struct {
	mu       sync.Mutex
	stages   map[Stage]*StageStats
	cache    map[string]map[CacheOp]int64
	requests map[string]int64
	errors   int64
}

// StageStats aggregates the events of one stage.
type StageStats struct {
	Runs   int64         `json:"runs"`
	Errors int64         `json:"errors"`
	Total  time.Duration `json:"total_ns"`
}

// Snapshot is a point-in-time copy of [Counters].
type Snapshot struct {
	Stages   map[Stage]StageStats        `json:"stages"`
	Cache    map[string]map[CacheOp]int64 `json:"cache"`
	Requests map[string]int64            `json:"requests"`
	// ServerErrors counts responses with a 5xx status.
	ServerErrors int64 `json:"server_errors"`
}

// NewCounters returns empty counters.
func NewCounters() *Counters {
	return &Counters{
		stages:   make(map[Stage]*StageStats),
		cache:    make(map[string]map[CacheOp]int64),
		requests: make(map[string]int64),
	}
}

// Hooks returns c wired into every hook kind.
func (c *Counters) Hooks() Hooks {
	return Hooks{Pipeline: c, Cache: c, HTTP: c}
}

func (c *Counters) StageStarted(context.Context, Stage, string) {}

func (c *Counters) StageFinished(_ context.Context, e StageEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stages[e.Stage]
	if s == nil {
		s = &StageStats{}
		c.stages[e.Stage] = s
	}
	s.Runs++
	s.Total += e.Duration
	if e.Err != nil {
		s.Errors++
	}
}

func (c *Counters) CacheAccessed(_ context.Context, e CacheEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ops := c.cache[e.Kind]
	if ops == nil {
		ops = make(map[CacheOp]int64)
		c.cache[e.Kind] = ops
	}
	ops[e.Op]++
}

func (c *Counters) RequestFinished(_ context.Context, e RequestEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests[e.Method+" "+e.Route]++
	if e.Status >= 500 {
		c.errors++
	}
}

// Snapshot copies the current totals.
func (c *Counters) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot{
		Stages:       make(map[Stage]StageStats, len(c.stages)),
		Cache:        make(map[string]map[CacheOp]int64, len(c.cache)),
		Requests:     maps.Clone(c.requests),
		ServerErrors: c.errors,
	}
	for k, v := range c.stages {
		s.Stages[k] = *v
	}
	for kind, ops := range c.cache {
		s.Cache[kind] = maps.Clone(ops)
	}
	return s
}
