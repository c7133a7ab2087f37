package kinetic

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PlayerState is the jump state machine, owned by the single player body.
// Zero value means airborne with no jump armed; a ground contact arms it.
type PlayerState struct {
	Body BodyId

	CanJump      bool
	JumpHold     float32 // seconds; > 0 while a jump is in progress
	JumpReleased bool
	WallAttached bool
	// WallNormalX is the player-oriented x normal of the attached wall,
	// the push direction for a wall jump.
	WallNormalX float32
}

type JumpPhase int

const (
	PhaseGrounded JumpPhase = iota
	PhaseRising
	PhaseCutoff
	PhaseWallAttached
)

func (p *PlayerState) Phase() JumpPhase {
	switch {
	case p.WallAttached:
		return PhaseWallAttached
	case p.JumpReleased:
		return PhaseCutoff
	case p.JumpHold > 0:
		return PhaseRising
	}
	return PhaseGrounded
}

func (p *PlayerState) resetJump() {
	p.CanJump = true
	p.JumpHold = 0
	p.JumpReleased = false
	p.WallAttached = false
	p.WallNormalX = 0
}

// PlayerModule installs the player state and the control systems. The
// controller runs in FixedPreUpdate, reacting to the previous tick's
// contacts and the current key snapshot; the fast-fall nudge runs in
// FixedPostUpdate, after integration.
type PlayerModule struct{}

func (m PlayerModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&PlayerState{Body: NoBody})

	app.UseSystem(System(playerControlSystem).InStage(FixedPreUpdate))
	app.UseSystem(System(fastFallSystem).InStage(FixedPostUpdate))
}

func playerControlSystem(world *World, contacts *Contacts, input *Input, ps *PlayerState, cfg *SimConfig, tm *Time) {
	if ps.Body == NoBody {
		return
	}
	dt := tm.FixedDt
	b := world.Body(ps.Body)

	// Contact signal from the previous tick: ground re-arms the jump,
	// a wall during cutoff attaches. Ceiling and the unclassified band
	// are no-ops.
	for _, c := range contacts.List {
		if !c.Involves(ps.Body) {
			continue
		}
		n := c.NormalFor(ps.Body)
		switch Classify(n) {
		case ContactGround:
			ps.resetJump()
		case ContactWall:
			if ps.JumpReleased && !ps.WallAttached {
				ps.WallAttached = true
				ps.WallNormalX = n.X()
			}
		}
	}

	var direction mgl32.Vec2

	jumpHeld := input.Pressed[KeyW] || input.Pressed[KeyUp]
	if jumpHeld {
		switch {
		case ps.CanJump:
			ps.CanJump = false
			ps.JumpHold = dt
			if b.Velocity.Y() < cfg.MaxHorizontalSpeed {
				direction[1] = cfg.JumpBoost
			}
		case ps.WallAttached:
			ps.WallAttached = false
			ps.JumpReleased = false
			ps.JumpHold = dt
			direction[0] = cfg.WallPush * ps.WallNormalX
			ps.WallNormalX = 0
			if b.Velocity.Y() < cfg.MaxHorizontalSpeed {
				direction[1] = cfg.JumpBoost
			}
		case !ps.JumpReleased && ps.JumpHold > cfg.JumpMaxHold:
			ps.JumpReleased = true
		case ps.JumpHold > 0 && !ps.JumpReleased:
			ps.JumpHold += dt
			if b.Velocity.Y() < cfg.MaxHorizontalSpeed {
				direction[1] = cfg.JumpBoost
			}
		}
	} else if ps.JumpHold > 0 {
		ps.JumpReleased = true
	}

	// Horizontal control. Opposite keys cancel by summation.
	if (input.Pressed[KeyD] || input.Pressed[KeyRight]) && b.Velocity.X() < cfg.MaxHorizontalSpeed {
		direction[0] += cfg.HorizontalAccel
	}
	if (input.Pressed[KeyA] || input.Pressed[KeyLeft]) && -b.Velocity.X() < cfg.MaxHorizontalSpeed {
		direction[0] -= cfg.HorizontalAccel
	}

	if direction == (mgl32.Vec2{}) {
		return
	}

	v := b.Velocity.Add(direction.Mul(cfg.ControlScale * dt))

	// Soft cap: our own increment stops at the cap, overshoot from
	// external forces is not corrected.
	if direction.X() > 0 && v.X() > cfg.MaxHorizontalSpeed && b.Velocity.X() <= cfg.MaxHorizontalSpeed {
		v[0] = cfg.MaxHorizontalSpeed
	}
	if direction.X() < 0 && v.X() < -cfg.MaxHorizontalSpeed && b.Velocity.X() >= -cfg.MaxHorizontalSpeed {
		v[0] = -cfg.MaxHorizontalSpeed
	}
	b.Velocity = v
}

// fastFallSystem shortens hang time once a jump turns into descent: a
// direct position nudge of (g/2)*dt² on top of normal integration, not a
// force.
func fastFallSystem(world *World, ps *PlayerState, cfg *SimConfig, tm *Time) {
	if ps.Body == NoBody {
		return
	}
	dt := tm.FixedDt
	b := world.Body(ps.Body)

	if ps.JumpHold > 0 && b.Velocity.Y() < 0 {
		b.Position = b.Position.Sub(mgl32.Vec2{0, (cfg.Gravity / 2) * dt * dt})
	}
}
