package scene

import (
	"fmt"

	"github.com/ayusman/orrery/internal/physics"
	"github.com/ayusman/orrery/internal/vmath"
)

// DefaultPlanetOrder is the ordered planet list used for positional
// selection, innermost first.
var DefaultPlanetOrder = []string{
	"mercury", "venus", "earth", "mars",
	"jupiter", "saturn", "uranus", "neptune",
}

// Planet is one selectable body in the solar system view.
type Planet struct {
	Name    string
	Mesh    *Node
	Gravity float64
}

// SolarSystem holds the ordered planets and the single highlight ring.
// The ring is a child of whichever planet mesh is highlighted; moving it
// always detaches it from the previous planet first.
type SolarSystem struct {
	Order   []string
	Planets map[string]*Planet

	ring        *Node
	highlighted string
}

// NewSolarSystem builds the default eight-planet system with meshes laid
// out along the x axis.
func NewSolarSystem() *SolarSystem {
	s := &SolarSystem{
		Order:   DefaultPlanetOrder,
		Planets: make(map[string]*Planet, len(DefaultPlanetOrder)),
		ring:    NewNode("highlight-ring"),
	}

	for i, name := range s.Order {
		mesh := NewNode(name)
		mesh.Position = vmath.Vec3{X: float64(10 + 12*i)}
		s.Planets[name] = &Planet{
			Name:    name,
			Mesh:    mesh,
			Gravity: physics.GravityFor(name),
		}
	}

	return s
}

// PlanetAt returns the planet at the given order index.
func (s *SolarSystem) PlanetAt(index int) (*Planet, error) {
	if index < 0 || index >= len(s.Order) {
		return nil, fmt.Errorf("planet index %d out of range", index)
	}
	return s.Planets[s.Order[index]], nil
}

// HighlightIndex highlights the planet at the given order index.
func (s *SolarSystem) HighlightIndex(index int) error {
	p, err := s.PlanetAt(index)
	if err != nil {
		return err
	}
	s.highlight(p)
	return nil
}

// HighlightPlanet highlights the named planet.
func (s *SolarSystem) HighlightPlanet(name string) error {
	p, ok := s.Planets[name]
	if !ok {
		return fmt.Errorf("unknown planet %q", name)
	}
	s.highlight(p)
	return nil
}

// highlight moves the single ring under the given planet's mesh.
func (s *SolarSystem) highlight(p *Planet) {
	if prev := s.ring.Parent(); prev != nil {
		prev.RemoveChild(s.ring)
	}
	p.Mesh.AttachChild(s.ring)
	s.highlighted = p.Name
}

// ClearHighlight detaches the ring.
func (s *SolarSystem) ClearHighlight() {
	if prev := s.ring.Parent(); prev != nil {
		prev.RemoveChild(s.ring)
	}
	s.highlighted = ""
}

// Highlighted returns the name of the highlighted planet, or "" when no
// planet is highlighted.
func (s *SolarSystem) Highlighted() string {
	return s.highlighted
}

// Ring returns the highlight ring node.
func (s *SolarSystem) Ring() *Node {
	return s.ring
}
