package scene

import "testing"

func TestSolarSystem_SingleRingMoves(t *testing.T) {
	s := NewSolarSystem()

	if s.Highlighted() != "" {
		t.Fatalf("new system Highlighted = %q, want empty", s.Highlighted())
	}

	if err := s.HighlightIndex(4); err != nil {
		t.Fatalf("HighlightIndex(4) error = %v", err)
	}
	if s.Highlighted() != "jupiter" {
		t.Errorf("Highlighted = %q, want jupiter", s.Highlighted())
	}
	if parent := s.Ring().Parent(); parent == nil || parent.Name != "jupiter" {
		t.Errorf("ring parent = %v, want jupiter mesh", parent)
	}

	// Highlighting another planet detaches the ring from the previous one.
	if err := s.HighlightPlanet("mars"); err != nil {
		t.Fatalf("HighlightPlanet(mars) error = %v", err)
	}
	if parent := s.Ring().Parent(); parent == nil || parent.Name != "mars" {
		t.Errorf("ring parent after move = %v, want mars mesh", parent)
	}

	jupiter := s.Planets["jupiter"]
	for _, child := range jupiter.Mesh.Children() {
		if child == s.Ring() {
			t.Error("ring still attached to jupiter after moving to mars")
		}
	}
}

func TestSolarSystem_HighlightIndexOutOfRange(t *testing.T) {
	s := NewSolarSystem()
	if err := s.HighlightIndex(8); err == nil {
		t.Error("HighlightIndex(8) on an 8-planet system should fail")
	}
	if err := s.HighlightIndex(-1); err == nil {
		t.Error("HighlightIndex(-1) should fail")
	}
}

func TestSolarSystem_ClearHighlight(t *testing.T) {
	s := NewSolarSystem()
	if err := s.HighlightPlanet("earth"); err != nil {
		t.Fatalf("HighlightPlanet error = %v", err)
	}

	s.ClearHighlight()
	if s.Highlighted() != "" {
		t.Errorf("Highlighted after clear = %q, want empty", s.Highlighted())
	}
	if s.Ring().Parent() != nil {
		t.Error("ring still attached after clear")
	}
}

func TestNode_AttachReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	child := NewNode("child")

	a.AttachChild(child)
	b.AttachChild(child)

	if child.Parent() != b {
		t.Errorf("child parent = %v, want b", child.Parent())
	}
	if len(a.Children()) != 0 {
		t.Errorf("a still has %d children, want 0", len(a.Children()))
	}
}
