package kinetic

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

type recordSink struct {
	contacts []Contact
}

func (s *recordSink) Collision(c Contact) {
	s.contacts = append(s.contacts, c)
}

func collideOnce(world *World) *Contacts {
	contacts := &Contacts{}
	collisionSystem(world, contacts, &Effects{Sink: NopSink{}})
	return contacts
}

func TestOverlapDetection(t *testing.T) {
	cases := []struct {
		name    string
		posB    mgl32.Vec2
		overlap bool
	}{
		{"overlapping", mgl32.Vec2{0.5, 0}, true},
		{"separated", mgl32.Vec2{3, 0}, false},
		{"touching edges", mgl32.Vec2{2, 0}, true},
		{"separated vertically", mgl32.Vec2{0, 2.5}, false},
		{"diagonal corner touch", mgl32.Vec2{2, 2}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			world := NewWorld()
			world.AddBody(Body{HalfExtents: mgl32.Vec2{1, 1}, HasCollider: true})
			world.AddBody(Body{Position: tc.posB, HalfExtents: mgl32.Vec2{1, 1}, HasCollider: true})

			got := len(collideOnce(world).List) > 0
			if got != tc.overlap {
				t.Errorf("overlap = %v, want %v", got, tc.overlap)
			}
		})
	}
}

func TestRotatedBoxWidensBounds(t *testing.T) {
	world := NewWorld()
	// A unit half-extent square rotated 45 degrees spans sqrt(2) on each
	// axis, so it reaches a box whose edge sits at x = 1.3.
	world.AddBody(Body{HalfExtents: mgl32.Vec2{1, 1}, Rotation: math32.Pi / 4, HasCollider: true})
	world.AddBody(Body{Position: mgl32.Vec2{2.1, 0}, HalfExtents: mgl32.Vec2{0.8, 0.8}, HasCollider: true})

	if len(collideOnce(world).List) != 1 {
		t.Fatal("rotated bounds should reach the neighbour box")
	}

	// Unrotated, the same pair is separated.
	world.Body(0).Rotation = 0
	if len(collideOnce(world).List) != 0 {
		t.Fatal("unrotated boxes at this distance must not overlap")
	}
}

func TestRotatedAABBFullTurn(t *testing.T) {
	b := &Body{Position: mgl32.Vec2{3, -2}, HalfExtents: mgl32.Vec2{2, 1}}
	plain := rotatedAABB(b)

	b.Rotation = 2 * math32.Pi
	turned := rotatedAABB(b)

	const eps = 1e-4
	if math32.Abs(plain.min.X()-turned.min.X()) > eps ||
		math32.Abs(plain.max.Y()-turned.max.Y()) > eps {
		t.Errorf("a full turn should preserve the bounds: %v vs %v", plain, turned)
	}
}

func TestContactNormalAndDepth(t *testing.T) {
	world := NewWorld()
	floor := world.AddBody(Body{
		Position:    mgl32.Vec2{0, -300},
		HalfExtents: mgl32.Vec2{500, 50},
		Static:      true,
		HasCollider: true,
	})
	player := world.AddBody(Body{
		Position:    mgl32.Vec2{0, -210},
		HalfExtents: mgl32.Vec2{50, 50},
		HasCollider: true,
	})

	contacts := collideOnce(world)
	if len(contacts.List) != 1 {
		t.Fatalf("expected one contact, got %d", len(contacts.List))
	}

	c := contacts.List[0]
	if !c.Involves(player) || !c.Involves(floor) {
		t.Fatal("contact does not involve the expected pair")
	}

	// At the player the normal points up, away from the floor.
	n := c.NormalFor(player)
	if n != (mgl32.Vec2{0, 1}) {
		t.Errorf("player normal = %v, want (0, 1)", n)
	}
	if c.NormalFor(floor) != (mgl32.Vec2{0, -1}) {
		t.Errorf("floor normal = %v, want (0, -1)", c.NormalFor(floor))
	}

	// Penetration: floor top -250, player bottom -260.
	if math32.Abs(c.Depth-10) > 1e-4 {
		t.Errorf("depth = %f, want 10", c.Depth)
	}
}

func TestContactNormalSideHit(t *testing.T) {
	world := NewWorld()
	wall := world.AddBody(Body{
		Position:    mgl32.Vec2{100, 0},
		HalfExtents: mgl32.Vec2{50, 400},
		Static:      true,
		HasCollider: true,
	})
	player := world.AddBody(Body{
		Position:    mgl32.Vec2{10, 0},
		HalfExtents: mgl32.Vec2{50, 50},
		HasCollider: true,
	})

	contacts := collideOnce(world)
	if len(contacts.List) != 1 {
		t.Fatalf("expected one contact, got %d", len(contacts.List))
	}

	n := contacts.List[0].NormalFor(player)
	if n != (mgl32.Vec2{-1, 0}) {
		t.Errorf("player normal = %v, want (-1, 0)", n)
	}
	if Classify(n) != ContactWall {
		t.Errorf("side hit classified as %s", Classify(n))
	}
	_ = wall
}

func TestClassify(t *testing.T) {
	cases := []struct {
		normal mgl32.Vec2
		want   ContactClass
	}{
		{mgl32.Vec2{0, 1}, ContactGround},
		{mgl32.Vec2{0, -1}, ContactCeiling},
		{mgl32.Vec2{1, 0}, ContactWall},
		{mgl32.Vec2{-1, 0}, ContactWall},
		{mgl32.Vec2{0.05, 0.999}, ContactGround},
		// The band between the wall and ground thresholds stays
		// unclassified.
		{mgl32.Vec2{0.87, 0.5}, ContactNone},
		{mgl32.Vec2{0.6, -0.8}, ContactNone},
	}

	for _, tc := range cases {
		if got := Classify(tc.normal); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.normal, got, tc.want)
		}
	}
}

func TestContactsAreLevelTriggered(t *testing.T) {
	world := NewWorld()
	world.AddBody(Body{HalfExtents: mgl32.Vec2{1, 1}, HasCollider: true})
	world.AddBody(Body{Position: mgl32.Vec2{0.5, 0}, HalfExtents: mgl32.Vec2{1, 1}, HasCollider: true})

	contacts := &Contacts{}
	effects := &Effects{Sink: NopSink{}}
	for tick := 0; tick < 3; tick++ {
		collisionSystem(world, contacts, effects)
		if len(contacts.List) != 1 {
			t.Fatalf("tick %d: expected the persisting overlap to be re-reported, got %d", tick, len(contacts.List))
		}
	}
}

func TestCollisionSkipsStaticPairsAndNonColliders(t *testing.T) {
	world := NewWorld()
	world.AddBody(Body{HalfExtents: mgl32.Vec2{5, 5}, Static: true, HasCollider: true})
	world.AddBody(Body{Position: mgl32.Vec2{1, 0}, HalfExtents: mgl32.Vec2{5, 5}, Static: true, HasCollider: true})
	world.AddBody(Body{Position: mgl32.Vec2{0, 1}, HalfExtents: mgl32.Vec2{5, 5}}) // no collider

	if n := len(collideOnce(world).List); n != 0 {
		t.Errorf("expected no contacts, got %d", n)
	}
}

func TestCollisionNotifiesSink(t *testing.T) {
	world := NewWorld()
	world.AddBody(Body{HalfExtents: mgl32.Vec2{1, 1}, HasCollider: true})
	world.AddBody(Body{Position: mgl32.Vec2{1, 0}, HalfExtents: mgl32.Vec2{1, 1}, HasCollider: true})

	sink := &recordSink{}
	collisionSystem(world, &Contacts{}, &Effects{Sink: sink})

	if len(sink.contacts) != 1 {
		t.Fatalf("sink received %d contacts, want 1", len(sink.contacts))
	}
	if !sink.contacts[0].Involves(0) || !sink.contacts[0].Involves(1) {
		t.Error("sink contact does not involve the overlapping pair")
	}
}
