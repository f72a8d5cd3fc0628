// Package scene is the in-memory render model shared by the game logic and the
// frontends. It keeps a flat tree of visual tokens and rectangular containers:
// tokens either float in the root region at an absolute position or sit
// inside a container, which lays them out centered. Frontends only read
// snapshots of it; actors mutate it through handles.
package scene

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"chosenoffset.com/hungrypumpkin/internal/geom"
)

// Handle identifies a node in the scene.
type Handle uuid.UUID

// Root is the handle of the default top-level region.
var Root = Handle(uuid.Nil)

// String returns the canonical textual form of the handle.
func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// Kind distinguishes tokens from containers.
type Kind int

const (
	KindToken Kind = iota
	KindContainer
)

// Class tags understood by the game.
const (
	// ClassDropTarget marks containers that animated actors may join.
	ClassDropTarget = "emoji-container"
	// ClassFoodSlot marks the clickable food containers.
	ClassFoodSlot = "food-container"
)

// DefaultTokenSize is used for styles without a registered size.
const DefaultTokenSize = 48.0

type node struct {
	id       Handle
	kind     Kind
	name     string
	classes  []string
	slot     int
	glyph    rune
	style    string
	rect     geom.Rect
	parent   Handle
	attached bool
}

// View is a read-only copy of a node, as handed to frontends for drawing.
type View struct {
	ID          Handle
	Kind        Kind
	Name        string
	Classes     []string
	Slot        int
	Glyph       rune
	Style       string
	Bounds      geom.Rect
	InContainer bool
}

// HasClass reports whether the view carries the given class tag.
func (v View) HasClass(class string) bool {
	return hasClass(v.Classes, class)
}

// Scene holds every node and guards them for concurrent readers and writers.
type Scene struct {
	mu     sync.RWMutex
	nodes  map[Handle]*node
	order  []Handle
	names  map[string]Handle
	sizes  map[string]float64
	width  float64
	height float64
}

// New creates an empty scene with the given logical size.
func New(width, height float64) *Scene {
	return &Scene{
		nodes:  make(map[Handle]*node),
		names:  make(map[string]Handle),
		sizes:  make(map[string]float64),
		width:  width,
		height: height,
	}
}

// Size returns the logical size of the root region.
func (s *Scene) Size() (width, height float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// SetTokenSize registers the square size used for tokens of a style.
func (s *Scene) SetTokenSize(style string, size float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sizes[style] = size
}

// AddContainer adds a named rectangular region. The name becomes queryable as
// "#name"; classes are queryable as ".class".
func (s *Scene) AddContainer(name string, r geom.Rect, classes ...string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := Handle(uuid.New())
	s.nodes[h] = &node{
		id:       h,
		kind:     KindContainer,
		name:     name,
		classes:  append([]string(nil), classes...),
		slot:     -1,
		rect:     r,
		parent:   Root,
		attached: true,
	}
	s.order = append(s.order, h)
	if name != "" {
		s.names[name] = h
	}
	return h
}

// SetSlot tags a container with the slot index it reports when clicked.
func (s *Scene) SetSlot(h Handle, slot int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n, ok := s.nodes[h]; ok {
		n.slot = slot
	}
}

// CreateToken creates a token for glyph with a style tag and attaches it to the
// root region at the origin.
func (s *Scene) CreateToken(glyph rune, style string) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	size, ok := s.sizes[style]
	if !ok {
		size = DefaultTokenSize
	}

	h := Handle(uuid.New())
	s.nodes[h] = &node{
		id:       h,
		kind:     KindToken,
		slot:     -1,
		glyph:    glyph,
		style:    style,
		rect:     geom.Rect{W: size, H: size},
		parent:   Root,
		attached: true,
	}
	s.order = append(s.order, h)
	return h
}

// Bounds returns the on-screen rectangle of an attached node.
func (s *Scene) Bounds(h Handle) (geom.Rect, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[h]
	if !ok || !n.attached {
		return geom.Rect{}, false
	}
	return s.boundsLocked(n), true
}

func (s *Scene) boundsLocked(n *node) geom.Rect {
	if n.kind == KindToken && n.parent != Root {
		if p, ok := s.nodes[n.parent]; ok {
			return geom.CenteredAt(p.rect.Center(), n.rect.W, n.rect.H)
		}
	}
	return n.rect
}

// SetPosition moves a token's top-left corner. Tokens inside a container keep
// the new position for when they leave it.
func (s *Scene) SetPosition(h Handle, topLeft geom.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[h]
	if !ok {
		return false
	}
	n.rect.X = topLeft.X
	n.rect.Y = topLeft.Y
	return true
}

// Reparent detaches a node and attaches it to parent (Root for the top-level
// region). A token leaving a container keeps the position it was drawn at.
func (s *Scene) Reparent(h, parent Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[h]
	if !ok {
		return false
	}
	if parent != Root {
		p, ok := s.nodes[parent]
		if !ok || p.kind != KindContainer {
			return false
		}
	}

	if n.attached {
		n.rect = s.boundsLocked(n)
	}
	n.parent = parent
	n.attached = true
	return true
}

// Detach removes a node from its parent without discarding it. Detaching a
// detached node does nothing.
func (s *Scene) Detach(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[h]
	if !ok || !n.attached {
		return
	}
	n.rect = s.boundsLocked(n)
	n.attached = false
	n.parent = Root
}

// Remove discards a node. Tokens held by a removed container are detached.
func (s *Scene) Remove(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[h]
	if !ok {
		return
	}
	if n.kind == KindContainer {
		for _, child := range s.nodes {
			if child.parent == h {
				child.attached = false
				child.parent = Root
			}
		}
		if s.names[n.name] == h {
			delete(s.names, n.name)
		}
	}
	delete(s.nodes, h)
	for i, id := range s.order {
		if id == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Exists reports whether the handle still refers to a live node.
func (s *Scene) Exists(h Handle) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.nodes[h]
	return ok
}

// Parent returns the parent of an attached node.
func (s *Scene) Parent(h Handle) (Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[h]
	if !ok || !n.attached {
		return Root, false
	}
	return n.parent, true
}

// IsContainer reports whether h is a container.
func (s *Scene) IsContainer(h Handle) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[h]
	return ok && n.kind == KindContainer
}

// HasClass reports whether the node carries a class tag.
func (s *Scene) HasClass(h Handle, class string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nodes[h]
	return ok && hasClass(n.classes, class)
}

// Query finds a node by selector: "#name", ".class" (first match in creation
// order) or a bare name.
func (s *Scene) Query(selector string) (Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	selector = strings.TrimSpace(selector)
	switch {
	case selector == "":
		return Root, false
	case strings.HasPrefix(selector, "."):
		class := selector[1:]
		for _, id := range s.order {
			n := s.nodes[id]
			if n.attached && hasClass(n.classes, class) {
				return id, true
			}
		}
		return Root, false
	default:
		h, ok := s.names[strings.TrimPrefix(selector, "#")]
		return h, ok
	}
}

// SlotAt returns the slot index of the food container under p.
func (s *Scene) SlotAt(p geom.Point) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		n := s.nodes[id]
		if n.kind != KindContainer || n.slot < 0 || !n.attached {
			continue
		}
		if n.rect.Contains(p) {
			return n.slot, true
		}
	}
	return -1, false
}

// Snapshot returns every attached node, containers first, then tokens in
// creation order.
func (s *Scene) Snapshot() []View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]View, 0, len(s.order))
	for _, pass := range []Kind{KindContainer, KindToken} {
		for _, id := range s.order {
			n := s.nodes[id]
			if n.kind != pass || !n.attached {
				continue
			}
			views = append(views, View{
				ID:          n.id,
				Kind:        n.kind,
				Name:        n.name,
				Classes:     append([]string(nil), n.classes...),
				Slot:        n.slot,
				Glyph:       n.glyph,
				Style:       n.style,
				Bounds:      s.boundsLocked(n),
				InContainer: n.kind == KindToken && n.parent != Root,
			})
		}
	}
	return views
}

func hasClass(classes []string, class string) bool {
	for _, c := range classes {
		if c == class {
			return true
		}
	}
	return false
}
