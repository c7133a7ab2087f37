package kinetic

import (
	"time"
)

// Time is the clock resource. FrameDt is the variable per-frame duration;
// FixedDt is the constant simulation step consumed by every system in the
// fixed stages. Tick counts completed fixed steps.
type Time struct {
	Now     time.Time
	FrameDt float32
	FixedDt float32
	Tick    uint64
}

type TimeModule struct {
	// FixedHz is the simulation rate; 0 means 60.
	FixedHz float32
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	hz := mod.FixedHz
	if hz <= 0 {
		hz = 60
	}
	cmd.AddResources(&Time{
		Now:     time.Now(),
		FixedDt: 1 / hz,
	})
}
