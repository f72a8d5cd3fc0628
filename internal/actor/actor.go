// Package actor implements on-screen tokens that can be placed instantly or
// animated toward a target point, and the resolver that turns heterogeneous
// position sources into points.
package actor

import (
	"context"
	"errors"
	"sync"
	"time"

	"chosenoffset.com/hungrypumpkin/internal/async"
	"chosenoffset.com/hungrypumpkin/internal/geom"
	"chosenoffset.com/hungrypumpkin/internal/scene"
	"chosenoffset.com/hungrypumpkin/internal/tween"
)

// DefaultStep is the per-axis distance covered per tick when no step is given.
const DefaultStep = 10.0

// DefaultTick is the interval between animation steps.
const DefaultTick = 50 * time.Millisecond

var (
	ErrUnresolvable = errors.New("target position cannot be resolved")
	ErrInvalidStep  = errors.New("animation step must be positive and finite")
	ErrCleared      = errors.New("actor has been cleared")
	ErrSuperseded   = errors.New("animation superseded by a newer one")
	ErrNotContainer = errors.New("target is not a container")
)

// Backend is the part of the render model actors need.
type Backend interface {
	CreateToken(glyph rune, style string) scene.Handle
	Bounds(h scene.Handle) (geom.Rect, bool)
	SetPosition(h scene.Handle, topLeft geom.Point) bool
	Reparent(h, parent scene.Handle) bool
	Detach(h scene.Handle)
	Remove(h scene.Handle)
	Exists(h scene.Handle) bool
	IsContainer(h scene.Handle) bool
	HasClass(h scene.Handle, class string) bool
	Query(selector string) (scene.Handle, bool)
}

// Stage creates actors that share a backend, a clock and a tick interval.
type Stage struct {
	backend  Backend
	resolver *Resolver
	clock    async.Clock
	tick     time.Duration
}

// NewStage creates a stage. A zero tick uses DefaultTick.
func NewStage(b Backend, clock async.Clock, tick time.Duration) *Stage {
	if tick <= 0 {
		tick = DefaultTick
	}
	return &Stage{
		backend:  b,
		resolver: NewResolver(b),
		clock:    clock,
		tick:     tick,
	}
}

// Resolver returns the stage's position resolver.
func (s *Stage) Resolver() *Resolver {
	return s.resolver
}

// Resolve is shorthand for s.Resolver().Resolve(src).
func (s *Stage) Resolve(src Source) (geom.Point, bool) {
	return s.resolver.Resolve(src)
}

// New creates an actor showing glyph with the given style, attached to the
// root region.
func (s *Stage) New(glyph rune, style string) *Actor {
	return &Actor{
		stage:  s,
		glyph:  glyph,
		handle: s.backend.CreateToken(glyph, style),
	}
}

// Actor is one on-screen token.
type Actor struct {
	stage *Stage
	glyph rune

	mu          sync.Mutex
	handle      scene.Handle
	inContainer bool
	cleared     bool
	generation  uint64
}

// Handle returns the scene node backing the actor.
func (a *Actor) Handle() scene.Handle {
	return a.handle
}

// Glyph returns the symbol the actor shows.
func (a *Actor) Glyph() rune {
	return a.glyph
}

// InContainer reports whether the actor currently sits inside a container.
func (a *Actor) InContainer() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inContainer
}

// Cleared reports whether Clear has been called.
func (a *Actor) Cleared() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cleared
}

// Position returns the center of the actor's token.
func (a *Actor) Position() (geom.Point, bool) {
	return a.stage.resolver.Resolve(Ref{Actor: a})
}

func (a *Actor) token() (scene.Handle, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.handle, !a.cleared
}

// Place moves the actor so its center is at target, without animation. An
// actor inside a container leaves it, since containers lay out their tokens.
func (a *Actor) Place(target Source) error {
	p, ok := a.stage.resolver.Resolve(target)
	if !ok {
		return ErrUnresolvable
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cleared {
		return ErrCleared
	}
	if a.inContainer {
		a.exitLocked()
	}
	a.setCenterLocked(p)
	return nil
}

// AnimateTo moves the actor toward target by at most step per axis per tick
// and blocks until it arrives. The actor leaves any container first; if
// target is a drop-target container the actor joins it on arrival.
// A later valid AnimateTo on the same actor makes this one return
// ErrSuperseded; an invalid one leaves it running.
func (a *Actor) AnimateTo(ctx context.Context, target Source, step float64) error {
	b := a.stage.backend
	container, named := a.stage.resolver.Element(target)
	dest, resolved := a.stage.resolver.Resolve(target)

	a.mu.Lock()
	if a.cleared {
		a.mu.Unlock()
		return ErrCleared
	}
	start, placed := b.Bounds(a.handle)
	a.exitLocked()
	switch {
	case !tween.ValidStep(step):
		a.mu.Unlock()
		return ErrInvalidStep
	case !resolved || !placed:
		a.mu.Unlock()
		return ErrUnresolvable
	}
	a.generation++
	gen := a.generation
	a.mu.Unlock()

	joins := named && b.IsContainer(container) && b.HasClass(container, scene.ClassDropTarget)
	cur := start.Center()

	for {
		next, done := tween.Step(cur, dest, step)

		a.mu.Lock()
		switch {
		case a.cleared:
			a.mu.Unlock()
			return ErrCleared
		case a.generation != gen:
			a.mu.Unlock()
			return ErrSuperseded
		}
		a.setCenterLocked(next)
		if done {
			if joins {
				a.enterLocked(container)
			}
			a.mu.Unlock()
			return nil
		}
		a.mu.Unlock()

		cur = next
		if err := async.Delay(ctx, a.stage.clock, a.stage.tick); err != nil {
			return err
		}
	}
}

// EnterContainer moves the actor's token into container.
func (a *Actor) EnterContainer(container Source) error {
	h, ok := a.stage.resolver.Element(container)
	if !ok || !a.stage.backend.IsContainer(h) {
		return ErrNotContainer
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cleared {
		return ErrCleared
	}
	a.enterLocked(h)
	return nil
}

// ExitContainer moves the actor's token back to the root region.
func (a *Actor) ExitContainer() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cleared {
		return
	}
	a.exitLocked()
}

// Clear removes the actor's token for good. A running animation stops with
// ErrCleared.
func (a *Actor) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cleared {
		return
	}
	a.stage.backend.Detach(a.handle)
	a.stage.backend.Remove(a.handle)
	a.cleared = true
	a.inContainer = false
}

func (a *Actor) enterLocked(container scene.Handle) {
	a.stage.backend.Detach(a.handle)
	a.stage.backend.Reparent(a.handle, container)
	a.inContainer = true
}

func (a *Actor) exitLocked() {
	a.stage.backend.Detach(a.handle)
	a.stage.backend.Reparent(a.handle, scene.Root)
	a.inContainer = false
}

func (a *Actor) setCenterLocked(p geom.Point) {
	r, ok := a.stage.backend.Bounds(a.handle)
	if !ok {
		return
	}
	a.stage.backend.SetPosition(a.handle, geom.Point{X: p.X - r.W/2, Y: p.Y - r.H/2})
}
