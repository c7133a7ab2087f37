package kinetic

// SimConfig collects every tuning constant of the simulation in one
// resource passed to the physics and player systems, instead of scattered
// package constants.
type SimConfig struct {
	// Gravity is the constant downward acceleration in world units/s².
	Gravity float32
	// GravityConst scales pairwise attraction between dynamic massive
	// bodies; 0 disables the N-body pass.
	GravityConst float32
	// PairCutoff culls attraction pairs whose squared center distance
	// exceeds it; 0 disables culling.
	PairCutoff float32
	// Damping is the exponential velocity decay coefficient per second.
	// Callers must keep Damping*FixedDt < 1.
	Damping float32

	// ControlScale converts controller direction units into velocity
	// change per second, as in the prototype this engine grew out of.
	ControlScale float32
	// JumpBoost is the upward direction magnitude added while a jump is
	// being driven.
	JumpBoost float32
	// JumpMaxHold is how long holding the jump key keeps boosting, in
	// seconds.
	JumpMaxHold float32
	// MaxHorizontalSpeed caps the controller's own horizontal increments
	// and gates further jump boosts on vertical speed.
	MaxHorizontalSpeed float32
	// HorizontalAccel is the per-tick horizontal direction increment.
	HorizontalAccel float32
	// WallPush is the horizontal direction magnitude applied away from a
	// wall on a wall jump.
	WallPush float32
	// RotateSpeed is how fast the rotate keys spin a spinner platform,
	// radians per second.
	RotateSpeed float32
}

func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		Gravity:            1000,
		GravityConst:       0.0667,
		PairCutoff:         1_000_000,
		Damping:            0.1,
		ControlScale:       100,
		JumpBoost:          100,
		JumpMaxHold:        0.5,
		MaxHorizontalSpeed: 300,
		HorizontalAccel:    10,
		WallPush:           50,
		RotateSpeed:        1.5,
	}
}
