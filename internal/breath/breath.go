package breath

// Phase is a discrete classification of the breathing cycle.
type Phase uint8

const (
	PhaseInhale Phase = iota
	PhaseHoldIn
	PhaseExhale
	PhaseHoldOut
)

func (p Phase) String() string {
	switch p {
	case PhaseInhale:
		return "inhale"
	case PhaseHoldIn:
		return "hold-in"
	case PhaseExhale:
		return "exhale"
	case PhaseHoldOut:
		return "hold-out"
	}
	return "unknown"
}

// BreathState is the per-tick snapshot shared with the particle field and
// audio engine. It is written only by the BreathEngine.
type BreathState struct {
	Phase           Phase
	Intensity       float64 // smoothed, always in [0,1]
	DurationInPhase float64 // seconds since the last phase transition
	TotalCycles     int     // monotonically non-decreasing while active
	IsActive        bool
}

// BreathEngine converts a raw intensity signal into discrete phases and
// cycle counts, emitting phase-change and cycle-complete events.
type BreathEngine struct {
	state  BreathState
	source signalSource
	events *EventBus

	// True once the current breath has passed through the exhale side
	// (Exhale or HoldOut) since the last counted inhale onset. Entering
	// Inhale with this set counts one completed cycle.
	exhaled bool
}

func NewBreathEngine(events *EventBus) *BreathEngine {
	e := &BreathEngine{
		events: events,
		source: signalSource{Kind: SourceManual},
	}
	e.Reset()
	return e
}

// State returns a copy of the current snapshot.
func (e *BreathEngine) State() BreathState { return e.state }

// Start resumes updates. Cycle count is preserved.
func (e *BreathEngine) Start() { e.state.IsActive = true }

// Pause freezes the state at its last values. Cycle count is preserved.
func (e *BreathEngine) Pause() { e.state.IsActive = false }

// Reset zeros the session: cycle count and phase duration cleared,
// intensity re-seeded to neutral, phase set to Exhale.
func (e *BreathEngine) Reset() {
	active := e.state.IsActive
	e.state = BreathState{
		Phase:     PhaseExhale,
		Intensity: NeutralIntensity,
		IsActive:  active,
	}
	e.exhaled = true
	e.source.timer = 0
	e.source.micInit = false
}

// SetManualPressed records a press/release edge for manual mode.
func (e *BreathEngine) SetManualPressed(pressed bool) {
	e.source.pressed = pressed
}

// UseManual switches the engine to manual input.
func (e *BreathEngine) UseManual() {
	e.source.Kind = SourceManual
	e.source.pressed = false
}

// UseMicrophone switches to microphone input backed by the given capture.
func (e *BreathEngine) UseMicrophone(mic *MicCapture) {
	e.source.Kind = SourceMicrophone
	e.source.mic = mic
	e.source.micInit = false
}

// UseGuided switches to a guided timing pattern.
func (e *BreathEngine) UseGuided(pattern BreathPattern) {
	e.source.Kind = SourceGuided
	e.source.pattern = pattern
	e.source.timer = 0
}

// Kind reports the active signal source.
func (e *BreathEngine) Kind() SourceKind { return e.source.Kind }

// Update advances the engine by deltaTime seconds. A no-op while paused;
// negative deltas are ignored and oversized ones clamped.
func (e *BreathEngine) Update(deltaTime float64) {
	if !e.state.IsActive {
		return
	}
	if deltaTime < 0 {
		deltaTime = 0
	}
	if deltaTime > MaxDeltaTime {
		deltaTime = MaxDeltaTime
	}

	if e.source.Kind == SourceGuided {
		phase, intensity, wrapped := e.source.advanceGuided(deltaTime)
		e.state.Intensity = clampF(intensity, 0, 1)
		if wrapped {
			e.state.TotalCycles++
			e.emit(Event{Type: EventCycleComplete, Cycle: e.state.TotalCycles})
		}
		e.transitionTo(phase, false)
		e.state.DurationInPhase += deltaTime
		return
	}

	target := e.source.targetIntensity()
	e.state.Intensity += (target - e.state.Intensity) * SmoothingFactor
	e.state.Intensity = clampF(e.state.Intensity, 0, 1)

	e.transitionTo(classify(e.state.Intensity), true)
	e.state.DurationInPhase += deltaTime
}

// classify maps a smoothed intensity onto a phase by fixed thresholds.
func classify(intensity float64) Phase {
	switch {
	case intensity > ThresholdInhale:
		return PhaseInhale
	case intensity > ThresholdHoldIn:
		return PhaseHoldIn
	case intensity > ThresholdExhale:
		return PhaseExhale
	default:
		return PhaseHoldOut
	}
}

// transitionTo applies a phase change, resetting the phase timer and
// emitting events. countCycles enables the exhale→inhale cycle counter
// (guided mode counts at pattern wrap instead).
func (e *BreathEngine) transitionTo(next Phase, countCycles bool) {
	if next == e.state.Phase {
		return
	}
	e.state.Phase = next
	e.state.DurationInPhase = 0
	e.emit(Event{Type: EventPhaseChange, Phase: next})

	if !countCycles {
		return
	}
	switch next {
	case PhaseExhale, PhaseHoldOut:
		e.exhaled = true
	case PhaseInhale:
		if e.exhaled {
			e.exhaled = false
			e.state.TotalCycles++
			e.emit(Event{Type: EventCycleComplete, Cycle: e.state.TotalCycles})
		}
	}
}

func (e *BreathEngine) emit(ev Event) {
	if e.events != nil {
		e.events.Emit(ev)
	}
}
