package observability

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultsAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	Pipeline().StageStarted(ctx, StageBuild, "memory")
	Pipeline().StageFinished(ctx, StageEvent{Stage: StageBuild, Layout: "memory"})
	Cache().CacheAccessed(ctx, CacheEvent{Op: CacheHit, Kind: "layout"})
	HTTP().RequestFinished(ctx, RequestEvent{Method: "GET", Route: "/healthz", Status: 200})

	if _, ok := Pipeline().(noop); !ok {
		t.Errorf("Pipeline() = %T, want noop", Pipeline())
	}
}

func TestRegisterFillsMissingMembers(t *testing.T) {
	t.Cleanup(Reset)
	c := NewCounters()
	Register(Hooks{Cache: c})

	if Cache() != CacheHooks(c) {
		t.Errorf("Cache() = %T, want *Counters", Cache())
	}
	if _, ok := Pipeline().(noop); !ok {
		t.Errorf("Pipeline() = %T, want noop", Pipeline())
	}
	if _, ok := HTTP().(noop); !ok {
		t.Errorf("HTTP() = %T, want noop", HTTP())
	}

	Reset()
	if _, ok := Cache().(noop); !ok {
		t.Errorf("Cache() after Reset = %T, want noop", Cache())
	}
}

func TestCounters(t *testing.T) {
	t.Cleanup(Reset)
	c := NewCounters()
	Register(c.Hooks())
	ctx := context.Background()

	Pipeline().StageFinished(ctx, StageEvent{Stage: StageResolve, Duration: time.Second})
	Pipeline().StageFinished(ctx, StageEvent{Stage: StageResolve, Duration: 2 * time.Second, Err: stderrors.New("arity")})
	Pipeline().StageFinished(ctx, StageEvent{Stage: StageRender, Formats: []string{"svg"}})
	Cache().CacheAccessed(ctx, CacheEvent{Op: CacheMiss, Kind: "layout"})
	Cache().CacheAccessed(ctx, CacheEvent{Op: CacheSet, Kind: "layout", Size: 128})
	Cache().CacheAccessed(ctx, CacheEvent{Op: CacheHit, Kind: "artifact"})
	HTTP().RequestFinished(ctx, RequestEvent{Method: "GET", Route: "/layouts/{id}", Status: 404})
	HTTP().RequestFinished(ctx, RequestEvent{Method: "GET", Route: "/layouts/{id}", Status: 200})
	HTTP().RequestFinished(ctx, RequestEvent{Method: "POST", Route: "/render", Status: 500})

	want := Snapshot{
		Stages: map[Stage]StageStats{
			StageResolve: {Runs: 2, Errors: 1, Total: 3 * time.Second},
			StageRender:  {Runs: 1},
		},
		Cache: map[string]map[CacheOp]int64{
			"layout":   {CacheMiss: 1, CacheSet: 1},
			"artifact": {CacheHit: 1},
		},
		Requests:     map[string]int64{"GET /layouts/{id}": 2, "POST /render": 1},
		ServerErrors: 1,
	}
	got := c.Snapshot()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}

	// Snapshots are copies.
	got.Cache["layout"][CacheHit] = 99
	if c.Snapshot().Cache["layout"][CacheHit] != 0 {
		t.Error("Snapshot() shares maps with the counters")
	}
}
