package kinetic

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// BodyId is an index into the World body store.
type BodyId int

const NoBody BodyId = -1

// Body is a simulated box: kinematic state plus explicit capability flags.
// Acceleration is a per-tick scratch, rebuilt by the force pass each
// simulation step.
type Body struct {
	Uid  string
	Name string

	Position     mgl32.Vec2
	Velocity     mgl32.Vec2
	Acceleration mgl32.Vec2
	Mass         float32
	HalfExtents  mgl32.Vec2
	Rotation     float32

	// Restitution is stored for bodies that configure it but the
	// detector emits contacts only, no impulse response.
	Restitution float32

	Static            bool
	AffectedByGravity bool
	HasCollider       bool
}

// World is the kinematic state store: a flat, index-addressed body array.
// Pairwise passes iterate indices and accumulate into each body's own
// Acceleration, never holding two mutable references at once.
type World struct {
	Bodies []Body
}

func NewWorld() *World {
	return &World{Bodies: make([]Body, 0, 16)}
}

// AddBody appends a body and returns its id. A missing Uid is assigned;
// non-static bodies get mass 1 when none is set, preserving the mass > 0
// invariant for gravitational participants.
func (w *World) AddBody(b Body) BodyId {
	if b.Uid == "" {
		b.Uid = uuid.NewString()
	}
	if b.Mass <= 0 && !b.Static {
		b.Mass = 1
	}
	w.Bodies = append(w.Bodies, b)
	return BodyId(len(w.Bodies) - 1)
}

func (w *World) Body(id BodyId) *Body {
	return &w.Bodies[id]
}

func (w *World) Len() int {
	return len(w.Bodies)
}

// FindByName returns the first body with the given name, or NoBody.
func (w *World) FindByName(name string) BodyId {
	for i := range w.Bodies {
		if w.Bodies[i].Name == name {
			return BodyId(i)
		}
	}
	return NoBody
}
