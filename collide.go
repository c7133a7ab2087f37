package kinetic

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Contact is one overlapping collider pair, produced and consumed within a
// tick. Normal is the unit surface normal at body A, pointing away from
// body B (from B toward A).
type Contact struct {
	A, B   BodyId
	Normal mgl32.Vec2
	Depth  float32
}

func (c Contact) Involves(id BodyId) bool {
	return c.A == id || c.B == id
}

// NormalFor orients the contact normal at the given body: for body A it is
// Normal as stored, for body B the negation.
func (c Contact) NormalFor(id BodyId) mgl32.Vec2 {
	if id == c.B {
		return c.Normal.Mul(-1)
	}
	return c.Normal
}

type ContactClass int

const (
	ContactNone ContactClass = iota
	ContactGround
	ContactCeiling
	ContactWall
)

func (c ContactClass) String() string {
	switch c {
	case ContactGround:
		return "ground"
	case ContactCeiling:
		return "ceiling"
	case ContactWall:
		return "wall"
	}
	return "none"
}

// Classify buckets a body-oriented normal against the up axis. Alignment
// above 0.9 is a ground (or, pointing down, ceiling) contact, below 0.1 a
// wall. The band between is deliberately unclassified.
func Classify(normal mgl32.Vec2) ContactClass {
	d := normal.Y()
	a := math32.Abs(d)
	switch {
	case a > 0.9 && d > 0:
		return ContactGround
	case a > 0.9:
		return ContactCeiling
	case a < 0.1:
		return ContactWall
	}
	return ContactNone
}

// Contacts holds the current tick's overlaps. Level-triggered: a pair is
// reported every tick it overlaps; edge detection is the consumer's job.
type Contacts struct {
	List []Contact
}

type aabb struct {
	min, max mgl32.Vec2
}

func (a aabb) overlaps(b aabb) bool {
	return !(a.max.X() < b.min.X() || a.max.Y() < b.min.Y() ||
		b.max.X() < a.min.X() || b.max.Y() < a.min.Y())
}

// rotatedAABB rotates the half-extent rectangle's corners about the body
// center and takes the axis-aligned bounds of the result. For rotated
// boxes this is a widened approximation of the true oriented box; the
// false positives it produces are an accepted simplification.
func rotatedAABB(b *Body) aabb {
	if b.Rotation == 0 {
		return aabb{
			min: b.Position.Sub(b.HalfExtents),
			max: b.Position.Add(b.HalfExtents),
		}
	}

	sin, cos := math32.Sincos(b.Rotation)
	ex, ey := b.HalfExtents.X(), b.HalfExtents.Y()
	corners := [4]mgl32.Vec2{
		{ex, ey}, {ex, -ey}, {-ex, ey}, {-ex, -ey},
	}

	box := aabb{
		min: mgl32.Vec2{math32.MaxFloat32, math32.MaxFloat32},
		max: mgl32.Vec2{-math32.MaxFloat32, -math32.MaxFloat32},
	}
	for _, c := range corners {
		p := mgl32.Vec2{
			b.Position.X() + c.X()*cos - c.Y()*sin,
			b.Position.Y() + c.X()*sin + c.Y()*cos,
		}
		box.min = mgl32.Vec2{math32.Min(box.min.X(), p.X()), math32.Min(box.min.Y(), p.Y())}
		box.max = mgl32.Vec2{math32.Max(box.max.X(), p.X()), math32.Max(box.max.Y(), p.Y())}
	}
	return box
}

// collisionSystem scans every collider pair, skipping static-static, and
// fills the Contacts resource for this tick. Each overlap is also pushed
// to the effect sink, fire and forget.
func collisionSystem(world *World, contacts *Contacts, effects *Effects) {
	contacts.List = contacts.List[:0]
	bodies := world.Bodies

	boxes := make([]aabb, len(bodies))
	for i := range bodies {
		if bodies[i].HasCollider {
			boxes[i] = rotatedAABB(&bodies[i])
		}
	}

	for i := 0; i < len(bodies); i++ {
		if !bodies[i].HasCollider {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			if !bodies[j].HasCollider {
				continue
			}
			if bodies[i].Static && bodies[j].Static {
				continue
			}
			if !boxes[i].overlaps(boxes[j]) {
				continue
			}

			c := makeContact(BodyId(i), BodyId(j), boxes[i], boxes[j])
			contacts.List = append(contacts.List, c)
			effects.Sink.Collision(c)
		}
	}
}

// makeContact derives the normal and depth from the minimum-penetration
// axis of the two axis-aligned extents.
func makeContact(a, b BodyId, boxA, boxB aabb) Contact {
	overlapX := math32.Min(boxA.max.X(), boxB.max.X()) - math32.Max(boxA.min.X(), boxB.min.X())
	overlapY := math32.Min(boxA.max.Y(), boxB.max.Y()) - math32.Max(boxA.min.Y(), boxB.min.Y())

	centerA := boxA.min.Add(boxA.max).Mul(0.5)
	centerB := boxB.min.Add(boxB.max).Mul(0.5)

	var normal mgl32.Vec2
	var depth float32
	if overlapX < overlapY {
		depth = overlapX
		if centerA.X() >= centerB.X() {
			normal = mgl32.Vec2{1, 0}
		} else {
			normal = mgl32.Vec2{-1, 0}
		}
	} else {
		depth = overlapY
		if centerA.Y() >= centerB.Y() {
			normal = mgl32.Vec2{0, 1}
		} else {
			normal = mgl32.Vec2{0, -1}
		}
	}

	return Contact{A: a, B: b, Normal: normal, Depth: depth}
}
