package breath

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
)

const droneGain = 0.10 // constant low-frequency floor

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	buf[i*8] = byte(v)
	buf[i*8+1] = byte(v >> 8)
	buf[i*8+2] = byte(v >> 16)
	buf[i*8+3] = byte(v >> 24)
	buf[i*8+4] = byte(v)
	buf[i*8+5] = byte(v >> 8)
	buf[i*8+6] = byte(v >> 16)
	buf[i*8+7] = byte(v >> 24)
}

// softSat applies gentle tanh-like saturation instead of hard clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/(x)
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// rampAlpha converts a ramp time constant in seconds to a per-sample
// one-pole smoothing coefficient.
func rampAlpha(tau float64) float64 {
	return 1.0 - math.Exp(-1.0/(tau*SampleRate))
}

var (
	toneAlpha    = rampAlpha(ToneRampTau)
	filterAlpha  = rampAlpha(FilterRampTau)
	shimmerAlpha = rampAlpha(ShimmerFreqTau)
	masterAlpha  = rampAlpha(FadeTime / 3.0) // fades settle within FadeTime
)

// synthParams holds every live parameter of the signal graph.
type synthParams struct {
	breathFreq  float64
	breathGain  float64
	cutoff      float64
	shimmerGain float64
	shimmerFreq float64
	master      float64
}

// synthVoice is the signal graph: drone + breath tone + shimmer into a
// shared one-pole low-pass under a master gain. It implements io.Reader
// and is pulled by the oto player on its own goroutine; every parameter
// moves toward its target by per-sample ramps so re-targeting never clicks.
type synthVoice struct {
	mu     sync.Mutex
	target synthParams

	cur synthParams

	dronePhase   float64
	breathPhase  float64
	shimmerPhase float64
	wobblePhase  float64
	lp           float64
}

func newSynthVoice() *synthVoice {
	p := synthParams{
		breathFreq:  BreathFreqLow,
		cutoff:      FilterCutLow,
		shimmerFreq: ShimmerFreq,
	}
	return &synthVoice{target: p, cur: p}
}

func (v *synthVoice) setMaster(level float64) {
	v.mu.Lock()
	v.target.master = clampF(level, 0, 1)
	v.mu.Unlock()
}

func (v *synthVoice) setBreath(freq, gain, cutoff, shimmerGain float64) {
	v.mu.Lock()
	v.target.breathFreq = freq
	v.target.breathGain = gain
	v.target.cutoff = cutoff
	v.target.shimmerGain = shimmerGain
	v.mu.Unlock()
}

func (v *synthVoice) Read(p []byte) (int, error) {
	samples := len(p) / 8
	if samples == 0 {
		return 0, nil
	}
	v.mu.Lock()
	tgt := v.target
	v.mu.Unlock()

	const dt = 1.0 / SampleRate
	for i := 0; i < samples && i*8+7 < len(p); i++ {
		// Per-parameter ramps, tuned fast for tone, slower for the filter,
		// slowest for the shimmer wobble.
		v.cur.breathFreq += (tgt.breathFreq - v.cur.breathFreq) * toneAlpha
		v.cur.breathGain += (tgt.breathGain - v.cur.breathGain) * toneAlpha
		v.cur.cutoff += (tgt.cutoff - v.cur.cutoff) * filterAlpha
		v.cur.shimmerGain += (tgt.shimmerGain - v.cur.shimmerGain) * toneAlpha
		v.cur.shimmerFreq += (tgt.shimmerFreq - v.cur.shimmerFreq) * shimmerAlpha
		v.cur.master += (tgt.master - v.cur.master) * masterAlpha

		drone := math.Sin(v.dronePhase) * droneGain
		tone := math.Sin(v.breathPhase) * v.cur.breathGain
		shimmer := math.Sin(v.shimmerPhase) * v.cur.shimmerGain
		mix := drone + tone + shimmer

		// Shared one-pole low-pass: muffled on exhale, bright on inhale.
		rc := 1.0 / (2.0 * math.Pi * math.Max(v.cur.cutoff, 20.0))
		a := dt / (rc + dt)
		v.lp += a * (mix - v.lp)

		putStereoF32(p, i, softSat(v.lp*v.cur.master))

		wobble := 1.0 + 0.012*math.Sin(v.wobblePhase)
		v.dronePhase += 2 * math.Pi * DroneFreq * dt
		v.breathPhase += 2 * math.Pi * v.cur.breathFreq * dt
		v.shimmerPhase += 2 * math.Pi * v.cur.shimmerFreq * wobble * dt
		v.wobblePhase += 2 * math.Pi * 0.23 * dt
	}
	return len(p), nil
}

// AudioEngine owns the audio output and maps breath state onto the signal
// graph every tick while running.
type AudioEngine struct {
	ctx *oto.Context

	mu      sync.Mutex
	player  oto.Player
	voice   *synthVoice
	running bool
	muted   bool
	volume  float64
}

// NewAudioEngine creates the audio output context. Failure is reported to
// the caller; the rest of the system keeps running silently.
func NewAudioEngine(volume float64) (*AudioEngine, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	<-ready
	return &AudioEngine{ctx: ctx, volume: clampF(volume, 0, 1)}, nil
}

// Start builds a fresh signal graph and begins a fade-in. Idempotent while
// already running.
func (e *AudioEngine) Start() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.running = true
	e.voice = newSynthVoice()
	if !e.muted {
		e.voice.setMaster(e.volume)
	}
	if e.ctx != nil {
		p := e.ctx.NewPlayer(e.voice)
		p.SetVolume(1.0)
		p.Play()
		e.player = p
	}
}

// Stop begins a fade-out and releases the generators once it completes.
// Idempotent while already stopped; a subsequent Start builds a clean graph.
func (e *AudioEngine) Stop() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	if e.voice != nil {
		e.voice.setMaster(0)
	}
	player := e.player
	e.player = nil
	e.voice = nil
	if player != nil {
		time.AfterFunc(time.Duration((FadeTime+0.2)*float64(time.Second)), func() {
			player.Close()
		})
	}
}

// Update re-targets the live parameters from the breath snapshot.
// A no-op while stopped.
func (e *AudioEngine) Update(state BreathState) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running || e.voice == nil {
		return
	}
	intensity := clampF(state.Intensity, 0, 1)
	freq := BreathFreqLow + intensity*(BreathFreqHigh-BreathFreqLow)
	gain := BreathGainMax * intensity
	cutoff := FilterCutLow + intensity*(FilterCutHigh-FilterCutLow)
	shimmer := 0.0
	if state.Phase == PhaseHoldIn || state.Phase == PhaseHoldOut {
		shimmer = ShimmerGainMax
	}
	e.voice.setBreath(freq, gain, cutoff, shimmer)
}

// Mute ramps the master level to zero without touching per-parameter targets.
func (e *AudioEngine) Mute() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = true
	if e.voice != nil {
		e.voice.setMaster(0)
	}
}

// Unmute restores the prior audible level.
func (e *AudioEngine) Unmute() {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = false
	if e.running && e.voice != nil {
		e.voice.setMaster(e.volume)
	}
}

func (e *AudioEngine) SetVolume(v float64) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = clampF(v, 0, 1)
	if e.running && !e.muted && e.voice != nil {
		e.voice.setMaster(e.volume)
	}
}

func (e *AudioEngine) Running() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *AudioEngine) Muted() bool {
	if e == nil {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.muted
}
