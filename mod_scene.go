package kinetic

import (
	"reflect"

	"github.com/go-gl/mathgl/mgl32"
)

// SceneConfig holds the level-load values: a static floor, the player box,
// optional side walls for the wall-jump variant, and an optional spinner
// platform driven by the rotate keys.
type SceneConfig struct {
	FloorSize mgl32.Vec2
	FloorPos  mgl32.Vec2

	PlayerSize mgl32.Vec2
	PlayerPos  mgl32.Vec2
	PlayerMass float32

	Walls       bool
	WallSize    mgl32.Vec2
	WallOffsetX float32

	Spinner     bool
	SpinnerSize mgl32.Vec2
	SpinnerPos  mgl32.Vec2
}

func DefaultSceneConfig() *SceneConfig {
	return &SceneConfig{
		FloorSize:   mgl32.Vec2{1000, 100},
		FloorPos:    mgl32.Vec2{0, -300},
		PlayerSize:  mgl32.Vec2{100, 100},
		PlayerPos:   mgl32.Vec2{-300, 0},
		PlayerMass:  1,
		Walls:       true,
		WallSize:    mgl32.Vec2{100, 800},
		WallOffsetX: 550,
		Spinner:     true,
		SpinnerSize: mgl32.Vec2{300, 40},
		SpinnerPos:  mgl32.Vec2{200, -100},
	}
}

// SceneModule spawns the prototype level into the World at install time.
// Requires PhysicsModule; picks up PlayerState when PlayerModule is
// installed.
type SceneModule struct {
	Config *SceneConfig
}

func (m SceneModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	if cfg == nil {
		cfg = DefaultSceneConfig()
	}
	cmd.AddResources(cfg)

	res, ok := app.resource(reflect.TypeOf(World{}))
	if !ok {
		panic("SceneModule requires PhysicsModule")
	}
	world := res.(*World)

	world.AddBody(Body{
		Name:        "Floor",
		Position:    cfg.FloorPos,
		HalfExtents: cfg.FloorSize.Mul(0.5),
		Static:      true,
		HasCollider: true,
	})

	if cfg.Walls {
		for _, side := range []float32{-1, 1} {
			name := "WallLeft"
			if side > 0 {
				name = "WallRight"
			}
			world.AddBody(Body{
				Name:        name,
				Position:    mgl32.Vec2{side * cfg.WallOffsetX, cfg.FloorPos.Y() + cfg.WallSize.Y()/2},
				HalfExtents: cfg.WallSize.Mul(0.5),
				Static:      true,
				HasCollider: true,
			})
		}
	}

	if cfg.Spinner {
		world.AddBody(Body{
			Name:        "Spinner",
			Position:    cfg.SpinnerPos,
			HalfExtents: cfg.SpinnerSize.Mul(0.5),
			Static:      true,
			HasCollider: true,
		})
		app.UseSystem(System(spinnerSystem).InStage(FixedPreUpdate))
	}

	player := world.AddBody(Body{
		Name:              "Player",
		Position:          cfg.PlayerPos,
		HalfExtents:       cfg.PlayerSize.Mul(0.5),
		Mass:              cfg.PlayerMass,
		AffectedByGravity: true,
		HasCollider:       true,
	})
	if res, ok := app.resource(reflect.TypeOf(PlayerState{})); ok {
		res.(*PlayerState).Body = player
	}

	app.Logger().Infof("scene: spawned %d bodies, player uid %s", world.Len(), world.Body(player).Uid)
}

// spinnerSystem turns the spinner platform with the rotate keys; the
// detector's rotated-AABB path is live whenever the angle is nonzero.
func spinnerSystem(world *World, input *Input, cfg *SimConfig, tm *Time) {
	id := world.FindByName("Spinner")
	if id == NoBody {
		return
	}

	var dir float32
	if input.Pressed[KeyQ] {
		dir += 1
	}
	if input.Pressed[KeyE] {
		dir -= 1
	}
	if dir != 0 {
		world.Body(id).Rotation += dir * cfg.RotateSpeed * tm.FixedDt
	}
}
