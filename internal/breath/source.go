package breath

import "math"

// SourceKind selects how the engine obtains its target intensity.
type SourceKind uint8

const (
	SourceManual SourceKind = iota
	SourceMicrophone
	SourceGuided
)

// BreathPattern holds the four guided phase durations in seconds.
// Any duration may be zero; zero-length phases collapse and can be
// skipped within a single update.
type BreathPattern struct {
	Inhale  float64
	HoldIn  float64
	Exhale  float64
	HoldOut float64
}

func (bp BreathPattern) Total() float64 {
	return bp.Inhale + bp.HoldIn + bp.Exhale + bp.HoldOut
}

// At maps an elapsed time within one cycle onto phase and intensity.
// Ramps use an ease-in-out curve; holds are flat 1.0 / 0.0.
func (bp BreathPattern) At(elapsed float64) (Phase, float64) {
	t := elapsed
	if t < bp.Inhale && bp.Inhale > 0 {
		return PhaseInhale, easeInOutQuad(t / bp.Inhale)
	}
	t -= bp.Inhale
	if t < bp.HoldIn && bp.HoldIn > 0 {
		return PhaseHoldIn, 1.0
	}
	t -= bp.HoldIn
	if t < bp.Exhale && bp.Exhale > 0 {
		return PhaseExhale, 1.0 - easeInOutQuad(t/bp.Exhale)
	}
	return PhaseHoldOut, 0.0
}

// signalSource is a tagged variant over the three input kinds. Each kind
// carries only the state it needs; the engine dispatches on Kind once per
// update.
type signalSource struct {
	Kind SourceKind

	// Manual.
	pressed bool

	// Microphone.
	mic     *MicCapture
	magBuf  []uint8
	micTgt  float64 // last applied target, held inside the deadband
	micInit bool

	// Guided.
	pattern BreathPattern
	timer   float64
}

// targetIntensity returns the raw target for the smoothing step.
// Guided mode does not go through here; it sets phase directly.
func (s *signalSource) targetIntensity() float64 {
	switch s.Kind {
	case SourceManual:
		if s.pressed {
			return 1.0
		}
		return 0.0
	case SourceMicrophone:
		level := s.micLevel()
		// Deadband suppresses frame-to-frame jitter from the analyser.
		if !s.micInit || math.Abs(level-s.micTgt) > MicDeadband {
			s.micTgt = level
			s.micInit = true
		}
		return s.micTgt
	}
	return 0.0
}

// micLevel computes RMS over the latest frequency-magnitude buffer and
// normalizes by the fixed reference level. The divide-by-128 scaling is a
// heuristic carried over from the analyser byte range; quiet inputs can
// read low against the shared phase thresholds.
func (s *signalSource) micLevel() float64 {
	if s.mic == nil {
		return 0
	}
	s.magBuf = s.mic.Magnitudes(s.magBuf)
	if len(s.magBuf) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.magBuf {
		f := float64(v)
		sum += f * f
	}
	rms := math.Sqrt(sum / float64(len(s.magBuf)))
	return clampF(rms/MicReferenceRMS, 0, 1)
}

// advanceGuided moves the pattern timer and reports the derived phase,
// intensity, and whether the cycle wrapped this update.
func (s *signalSource) advanceGuided(dt float64) (Phase, float64, bool) {
	total := s.pattern.Total()
	if total <= 0 {
		return PhaseExhale, 0, false
	}
	s.timer += dt
	wrapped := false
	for s.timer >= total {
		s.timer -= total
		wrapped = true
	}
	phase, intensity := s.pattern.At(s.timer)
	return phase, intensity, wrapped
}
