package kinetic

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
)

// PhysicsModule installs the kinematic state store and the fixed-tick
// simulation passes: force accumulation, integration, collision detection,
// in that order. SimConfig and Effects resources are reused when another
// module provided them first.
type PhysicsModule struct{}

func (m PhysicsModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewWorld(), &Contacts{})

	if _, ok := app.resource(reflect.TypeOf(SimConfig{})); !ok {
		cmd.AddResources(DefaultSimConfig())
	}
	if _, ok := app.resource(reflect.TypeOf(Effects{})); !ok {
		cmd.AddResources(&Effects{Sink: NopSink{}})
	}

	app.UseSystem(System(forceSystem).InStage(FixedMain))
	app.UseSystem(System(integrateSystem).InStage(FixedMain))
	app.UseSystem(System(collisionSystem).InStage(FixedMain))
}

// forceSystem rebuilds every body's acceleration for this tick: constant
// gravity for non-static bodies subject to it, then pairwise attraction
// between non-static massive bodies. Pair contributions obey Newton's
// third law; coincident centers and pairs beyond the cutoff contribute
// nothing.
func forceSystem(world *World, cfg *SimConfig) {
	bodies := world.Bodies

	for i := range bodies {
		bodies[i].Acceleration = mgl32.Vec2{}
		if bodies[i].Static || !bodies[i].AffectedByGravity {
			continue
		}
		bodies[i].Acceleration = mgl32.Vec2{0, -cfg.Gravity}
	}

	if cfg.GravityConst == 0 {
		return
	}

	for i := 0; i < len(bodies); i++ {
		if bodies[i].Static || bodies[i].Mass <= 0 {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			if bodies[j].Static || bodies[j].Mass <= 0 {
				continue
			}

			d := bodies[j].Position.Sub(bodies[i].Position)
			d2 := d.Dot(d)
			if d2 == 0 {
				// Coincident centers: attraction direction is undefined.
				continue
			}
			if cfg.PairCutoff > 0 && d2 > cfg.PairCutoff {
				continue
			}

			pull := d.Mul(cfg.GravityConst / d2)
			bodies[i].Acceleration = bodies[i].Acceleration.Add(pull.Mul(bodies[j].Mass))
			bodies[j].Acceleration = bodies[j].Acceleration.Sub(pull.Mul(bodies[i].Mass))
		}
	}
}

// integrateSystem advances velocity from acceleration and position from
// velocity, then damps. Order per tick: v += a*dt, p += v*dt, v *= 1-c*dt;
// the position update always sees the pre-damping velocity. Keeping
// Damping*dt < 1 is the caller's configuration responsibility.
func integrateSystem(world *World, cfg *SimConfig, tm *Time) {
	dt := tm.FixedDt
	if dt <= 0 || dt > 1 {
		return
	}

	for i := range world.Bodies {
		b := &world.Bodies[i]
		if b.Static {
			continue
		}
		b.Velocity = b.Velocity.Add(b.Acceleration.Mul(dt))
		b.Position = b.Position.Add(b.Velocity.Mul(dt))
		b.Velocity = b.Velocity.Mul(1 - cfg.Damping*dt)
	}
}
