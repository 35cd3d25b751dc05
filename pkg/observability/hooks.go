// Package observability lets applications watch the render pipeline, the
// cache and the HTTP API without those packages depending on a metrics
// backend.
//
// Libraries report finished work as events; nothing is reported until a
// [Hooks] bundle is registered:
//
//	counters := observability.NewCounters()
//	observability.Register(counters.Hooks())
//
// Inside a library:
//
//	observability.Pipeline().StageFinished(ctx, observability.StageEvent{
//	    Stage: observability.StageResolve, Layout: name, Duration: d, Err: err,
//	})
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Stage names one step of the render pipeline.
type Stage string

const (
	StageBuild   Stage = "build"
	StageResolve Stage = "resolve"
	StageRender  Stage = "render"
)

// StageEvent describes one finished pipeline stage. Count is the number of
// templates for a build, the number of cells for a resolve and the number of
// formats for a render.
type StageEvent struct {
	Stage    Stage
	Layout   string
	Formats  []string
	Count    int
	Duration time.Duration
	Err      error
}

// CacheOp is the outcome of one cache access.
type CacheOp string

const (
	CacheHit  CacheOp = "hit"
	CacheMiss CacheOp = "miss"
	CacheSet  CacheOp = "set"
)

// CacheEvent describes one cache access. Kind is "layout" or "artifact".
type CacheEvent struct {
	Op   CacheOp
	Kind string
	Size int
}

// RequestEvent describes one served HTTP request. Route is the router
// pattern, e.g. "/layouts/{id}", not the raw path.
type RequestEvent struct {
	Method   string
	Route    string
	Status   int
	Duration time.Duration
}

// PipelineHooks receives pipeline stage events.
type PipelineHooks interface {
	StageStarted(ctx context.Context, stage Stage, layout string)
	StageFinished(ctx context.Context, e StageEvent)
}

// CacheHooks receives cache access events.
type CacheHooks interface {
	CacheAccessed(ctx context.Context, e CacheEvent)
}

// HTTPHooks receives HTTP request events.
type HTTPHooks interface {
	RequestFinished(ctx context.Context, e RequestEvent)
}

// Hooks bundles the three hook kinds. Nil members are left as no-ops.
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	HTTP     HTTPHooks
}

type noop struct{}

func (noop) StageStarted(context.Context, Stage, string)   {}
func (noop) StageFinished(context.Context, StageEvent)     {}
func (noop) CacheAccessed(context.Context, CacheEvent)     {}
func (noop) RequestFinished(context.Context, RequestEvent) {}

var current atomic.Pointer[Hooks]

func init() { Reset() }

// Register installs h, filling nil members with no-ops. Call it once at
// startup, before serving.
func Register(h Hooks) {
	if h.Pipeline == nil {
		h.Pipeline = noop{}
	}
	if h.Cache == nil {
		h.Cache = noop{}
	}
	if h.HTTP == nil {
		h.HTTP = noop{}
	}
	current.Store(&h)
}

// Reset restores the no-op hooks.
func Reset() { Register(Hooks{}) }

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().Pipeline }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().Cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().HTTP }
