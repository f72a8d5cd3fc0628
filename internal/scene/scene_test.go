package scene

import (
	"testing"

	"chosenoffset.com/hungrypumpkin/internal/geom"
)

func TestCreateTokenUsesStyleSize(t *testing.T) {
	s := New(800, 600)
	s.SetTokenSize("food", 64)

	h := s.CreateToken(0x1F34E, "food")
	r, ok := s.Bounds(h)
	if !ok {
		t.Fatal("Expected token to be attached")
	}
	if r.W != 64 || r.H != 64 {
		t.Errorf("Expected 64x64 token, got %vx%v", r.W, r.H)
	}

	other := s.CreateToken(0x1F383, "unknown")
	r, _ = s.Bounds(other)
	if r.W != DefaultTokenSize {
		t.Errorf("Expected default size %v, got %v", DefaultTokenSize, r.W)
	}
}

func TestTokenInsideContainerIsCentered(t *testing.T) {
	s := New(800, 600)
	s.SetTokenSize("food", 40)
	c := s.AddContainer("slot0", geom.Rect{X: 100, Y: 200, W: 100, H: 80}, ClassDropTarget)
	h := s.CreateToken('x', "food")
	s.SetPosition(h, geom.Point{X: 5, Y: 5})

	if !s.Reparent(h, c) {
		t.Fatal("Expected reparent into container to succeed")
	}
	r, _ := s.Bounds(h)
	if r.Center() != (geom.Point{X: 150, Y: 240}) {
		t.Errorf("Expected token centered at (150, 240), got %v", r.Center())
	}

	// Leaving the container keeps the drawn position.
	s.Reparent(h, Root)
	r, _ = s.Bounds(h)
	if r.Center() != (geom.Point{X: 150, Y: 240}) {
		t.Errorf("Expected token to stay at (150, 240) after leaving, got %v", r.Center())
	}
}

func TestReparentRejectsNonContainer(t *testing.T) {
	s := New(800, 600)
	a := s.CreateToken('a', "food")
	b := s.CreateToken('b', "food")
	if s.Reparent(a, b) {
		t.Error("Expected reparenting into a token to fail")
	}
}

func TestDetachIsIdempotent(t *testing.T) {
	s := New(800, 600)
	h := s.CreateToken('a', "food")
	s.Detach(h)
	s.Detach(h)

	if _, ok := s.Bounds(h); ok {
		t.Error("Expected detached token to have no bounds")
	}
	if !s.Exists(h) {
		t.Error("Expected detached token to still exist")
	}
}

func TestRemove(t *testing.T) {
	s := New(800, 600)
	c := s.AddContainer("area", geom.Rect{W: 10, H: 10})
	h := s.CreateToken('a', "food")
	s.Reparent(h, c)

	s.Remove(c)
	if _, ok := s.Query("#area"); ok {
		t.Error("Expected removed container to no longer be queryable")
	}
	if _, ok := s.Bounds(h); ok {
		t.Error("Expected child of removed container to be detached")
	}

	s.Remove(h)
	if s.Exists(h) {
		t.Error("Expected removed token to be gone")
	}
}

func TestQuery(t *testing.T) {
	s := New(800, 600)
	door := s.AddContainer("door", geom.Rect{X: 0, Y: 0, W: 10, H: 10})
	first := s.AddContainer("slot0", geom.Rect{}, ClassFoodSlot, ClassDropTarget)
	s.AddContainer("slot1", geom.Rect{}, ClassFoodSlot, ClassDropTarget)

	tests := []struct {
		selector string
		expected Handle
		found    bool
	}{
		{"#door", door, true},
		{"door", door, true},
		{"." + ClassFoodSlot, first, true},
		{"#missing", Root, false},
		{".missing", Root, false},
		{"", Root, false},
	}

	for _, tt := range tests {
		got, ok := s.Query(tt.selector)
		if ok != tt.found {
			t.Errorf("Query(%q): expected found=%v, got %v", tt.selector, tt.found, ok)
			continue
		}
		if ok && got != tt.expected {
			t.Errorf("Query(%q): expected %v, got %v", tt.selector, tt.expected, got)
		}
	}
}

func TestSlotAt(t *testing.T) {
	s := New(800, 600)
	for i := 0; i < 4; i++ {
		c := s.AddContainer("", geom.Rect{X: float64(i) * 100, Y: 500, W: 100, H: 100}, ClassFoodSlot)
		s.SetSlot(c, i)
	}
	s.AddContainer("active", geom.Rect{X: 0, Y: 0, W: 800, H: 100})

	slot, ok := s.SlotAt(geom.Point{X: 250, Y: 550})
	if !ok || slot != 2 {
		t.Errorf("Expected slot 2, got %d (found=%v)", slot, ok)
	}
	if _, ok := s.SlotAt(geom.Point{X: 50, Y: 50}); ok {
		t.Error("Expected no slot in a container without a slot index")
	}
}

func TestSnapshotOrdersContainersFirst(t *testing.T) {
	s := New(800, 600)
	tok := s.CreateToken('a', "food")
	c := s.AddContainer("area", geom.Rect{W: 10, H: 10})
	hidden := s.CreateToken('b', "food")
	s.Detach(hidden)

	views := s.Snapshot()
	if len(views) != 2 {
		t.Fatalf("Expected 2 attached views, got %d", len(views))
	}
	if views[0].ID != c || views[1].ID != tok {
		t.Errorf("Expected container then token, got %v then %v", views[0].ID, views[1].ID)
	}
}
