package actor

import (
	"chosenoffset.com/hungrypumpkin/internal/geom"
	"chosenoffset.com/hungrypumpkin/internal/scene"
)

// Source is anything a position can be resolved from. It is a closed set:
// Element, Selector, Ref and At.
type Source interface {
	isSource()
}

// Element refers to a scene node directly.
type Element scene.Handle

// Selector names a scene node ("#name", ".class" or a bare name).
type Selector string

// Ref refers to another actor; it resolves to that actor's token.
type Ref struct {
	Actor *Actor
}

// At is a literal point.
type At geom.Point

func (Element) isSource()  {}
func (Selector) isSource() {}
func (Ref) isSource()      {}
func (At) isSource()       {}

// Resolver turns sources into points using a scene backend.
type Resolver struct {
	backend Backend
}

// NewResolver creates a resolver over the given backend.
func NewResolver(b Backend) *Resolver {
	return &Resolver{backend: b}
}

// Resolve returns the center of the region src refers to. It reports false
// for nil sources, unknown or detached nodes, selectors matching nothing,
// cleared actors and non-finite points.
func (r *Resolver) Resolve(src Source) (geom.Point, bool) {
	switch s := src.(type) {
	case nil:
		return geom.Point{}, false
	case Element:
		b, ok := r.backend.Bounds(scene.Handle(s))
		if !ok {
			return geom.Point{}, false
		}
		return b.Center(), true
	case Selector:
		h, ok := r.backend.Query(string(s))
		if !ok {
			return geom.Point{}, false
		}
		return r.Resolve(Element(h))
	case Ref:
		if s.Actor == nil {
			return geom.Point{}, false
		}
		h, ok := s.Actor.token()
		if !ok {
			return geom.Point{}, false
		}
		return r.Resolve(Element(h))
	case At:
		p := geom.Point(s)
		if !p.Finite() {
			return geom.Point{}, false
		}
		return p, true
	default:
		return geom.Point{}, false
	}
}

// Element returns the scene node src names, for Element and Selector sources
// only.
func (r *Resolver) Element(src Source) (scene.Handle, bool) {
	switch s := src.(type) {
	case Element:
		h := scene.Handle(s)
		return h, r.backend.Exists(h)
	case Selector:
		return r.backend.Query(string(s))
	default:
		return scene.Root, false
	}
}
