package breath

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Window defaults.
const (
	WindowWidth  = 1024
	WindowHeight = 768
)

// Breath phase engine.
const (
	SmoothingFactor  = 0.15 // exponential approach toward target per update
	NeutralIntensity = 0.5

	// Fixed classification thresholds, shared by manual and microphone modes.
	// Mic RMS uses the divide-by-128 heuristic, so quiet inputs may sit low.
	ThresholdInhale = 0.8
	ThresholdHoldIn = 0.6
	ThresholdExhale = 0.2

	MicDeadband     = 0.01
	MicReferenceRMS = 128.0

	MaxDeltaTime = 0.1 // clamp for stalled/backgrounded frames
)

// Particle field.
const (
	MaxParticles      = 600
	BasePopulation    = 120
	PopulationPerCyc  = 12
	BaseSpawnInterval = 0.035 // seconds; divided by (1 + intensity*SpawnRateGain)
	SpawnRateGain     = 2.0
	SpawnRadiusMax    = 110.0
	SpawnSpeedMax     = 55.0
	MaxParticleSpeed  = 90.0
	SteerContractAt   = 0.3 // below: pull to center, above: push outward
	SteerStrength     = 26.0
	MotionScale       = 1.0 // position integration normalization
	GlowSizeFactor    = 3.0
	BackgroundStars   = 140
	MaxParticleRender = 4 * MaxParticles // sprites per draw call upper bound
)

// Audio synthesis.
const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)

	DroneFreq      = 82.0
	BreathFreqLow  = 200.0
	BreathFreqHigh = 800.0
	BreathGainMax  = 0.28
	ShimmerFreq    = 1900.0
	ShimmerGainMax = 0.10
	FilterCutLow   = 350.0
	FilterCutHigh  = 3800.0

	ToneRampTau    = 0.10 // seconds, breath tone freq/gain
	FilterRampTau  = 0.15
	ShimmerFreqTau = 0.50
	FadeTime       = 1.2 // start/stop master fade
)

// Config holds host tunables overridable from the environment.
type Config struct {
	Seed         uint64  `env:"BREATHE_SEED"`
	Width        int     `env:"BREATHE_WIDTH" envDefault:"1024"`
	Height       int     `env:"BREATHE_HEIGHT" envDefault:"768"`
	Volume       float64 `env:"BREATHE_VOLUME" envDefault:"0.5"`
	PaletteName  string  `env:"BREATHE_PALETTE" envDefault:"cosmos"`
	MaxParticles int     `env:"BREATHE_MAX_PARTICLES" envDefault:"600"`

	// Guided pattern durations in seconds (4-7-8 relaxation breath by default).
	GuidedInhale  float64 `env:"BREATHE_GUIDED_INHALE" envDefault:"4"`
	GuidedHoldIn  float64 `env:"BREATHE_GUIDED_HOLD_IN" envDefault:"7"`
	GuidedExhale  float64 `env:"BREATHE_GUIDED_EXHALE" envDefault:"8"`
	GuidedHoldOut float64 `env:"BREATHE_GUIDED_HOLD_OUT" envDefault:"0"`
}

// LoadConfig parses environment overrides on top of defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.Width <= 0 {
		cfg.Width = WindowWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = WindowHeight
	}
	cfg.Volume = clampF(cfg.Volume, 0, 1)
	if cfg.MaxParticles <= 0 || cfg.MaxParticles > 5000 {
		cfg.MaxParticles = MaxParticles
	}
	return cfg, nil
}

// GuidedPattern returns the configured guided durations as a pattern.
func (c Config) GuidedPattern() BreathPattern {
	return BreathPattern{
		Inhale:  c.GuidedInhale,
		HoldIn:  c.GuidedHoldIn,
		Exhale:  c.GuidedExhale,
		HoldOut: c.GuidedHoldOut,
	}
}
