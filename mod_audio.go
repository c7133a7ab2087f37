package kinetic

import (
	"math"
	"reflect"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// EffectSink receives collision notifications for presentation. Fire and
// forget; implementations must not reach back into the simulation.
type EffectSink interface {
	Collision(c Contact)
}

type NopSink struct{}

func (NopSink) Collision(Contact) {}

// Effects is the presentation sink resource consumed by the collision
// detector. PhysicsModule installs a NopSink when nothing else did.
type Effects struct {
	Sink EffectSink
}

// AudioModule replaces the effect sink with a speaker-backed one that
// plays a short synthesized blip when a contact involves the player.
// Speaker init failure degrades to silent mode, never an error.
type AudioModule struct{}

func (m AudioModule) Install(app *App, cmd *Commands) {
	sink := &hitSink{log: app.Logger(), minGap: 100 * time.Millisecond}

	if res, ok := app.resource(reflect.TypeOf(PlayerState{})); ok {
		sink.player = res.(*PlayerState)
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		sink.silent = true
		sink.log.Warnf("audio unavailable, running silent: %v", err)
	}

	if res, ok := app.resource(reflect.TypeOf(Effects{})); ok {
		res.(*Effects).Sink = sink
		return
	}
	cmd.AddResources(&Effects{Sink: sink})
}

type hitSink struct {
	log    Logger
	player *PlayerState
	silent bool

	lastPlay time.Time
	minGap   time.Duration
}

func (s *hitSink) Collision(c Contact) {
	if s.silent {
		return
	}
	if s.player != nil && s.player.Body != NoBody && !c.Involves(s.player.Body) {
		return
	}
	// Contacts are level-triggered and repeat every tick while the
	// overlap persists; the gap keeps the blip discrete.
	if time.Since(s.lastPlay) < s.minGap {
		return
	}
	s.lastPlay = time.Now()
	speaker.Play(hitSound())
}

// hitSound synthesizes the collision blip: a low square wave shaped by a
// sharp attack/release envelope, in place of the hit/hurt sample asset.
func hitSound() beep.Streamer {
	osc := newOscillator(160, 90*time.Millisecond)
	shaped := newEnvelope(osc, 90*time.Millisecond, 5*time.Millisecond, 60*time.Millisecond)
	return &effects.Volume{Streamer: shaped, Base: 2, Volume: -1}
}

// oscillator generates a raw square wave for a fixed duration.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
}

func newOscillator(freq float64, duration time.Duration) beep.Streamer {
	return &oscillator{freq: freq, duration: sampleRate.N(duration)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		val := 1.0
		if o.phase >= 0.5 {
			val = -1.0
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(sampleRate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies linear attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  sampleRate.N(attack),
		releaseSamples: sampleRate.N(release),
		totalSamples:   sampleRate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }
