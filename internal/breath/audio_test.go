package breath

import (
	"encoding/binary"
	"math"
	"testing"
)

// Engines under test carry no oto context so they run on headless CI; every
// state transition short of actual playback is still exercised.
func newSilentEngine(volume float64) *AudioEngine {
	return &AudioEngine{volume: clampF(volume, 0, 1)}
}

func TestStart_IsIdempotent(t *testing.T) {
	e := newSilentEngine(0.5)
	e.Start()
	if !e.Running() {
		t.Fatal("Expected engine running after Start")
	}
	voice := e.voice
	e.Start()
	if e.voice != voice {
		t.Error("Second Start replaced the signal graph")
	}
}

func TestStop_IsIdempotentAndReleasesVoice(t *testing.T) {
	e := newSilentEngine(0.5)
	e.Stop()
	if e.Running() {
		t.Fatal("Stop on a stopped engine must stay stopped")
	}
	e.Start()
	e.Stop()
	if e.Running() || e.voice != nil {
		t.Error("Expected stopped engine with released voice")
	}
	e.Stop()
	e.Start()
	if !e.Running() || e.voice == nil {
		t.Error("Start after Stop must build a fresh graph")
	}
}

func TestUpdate_WhileStoppedIsNoop(t *testing.T) {
	e := newSilentEngine(0.5)
	e.Update(BreathState{Phase: PhaseInhale, Intensity: 1.0, IsActive: true})
	if e.voice != nil {
		t.Error("Update while stopped must not create a voice")
	}
}

func TestUpdate_MapsIntensityOntoTargets(t *testing.T) {
	e := newSilentEngine(0.5)
	e.Start()

	e.Update(BreathState{Phase: PhaseExhale, Intensity: 0})
	tgt := e.voice.target
	if tgt.breathFreq != BreathFreqLow || tgt.cutoff != FilterCutLow {
		t.Errorf("Intensity 0: freq=%v cutoff=%v, expected lows", tgt.breathFreq, tgt.cutoff)
	}
	if tgt.breathGain != 0 || tgt.shimmerGain != 0 {
		t.Errorf("Intensity 0: gain=%v shimmer=%v, expected silence", tgt.breathGain, tgt.shimmerGain)
	}

	e.Update(BreathState{Phase: PhaseInhale, Intensity: 1})
	tgt = e.voice.target
	if tgt.breathFreq != BreathFreqHigh || tgt.cutoff != FilterCutHigh {
		t.Errorf("Intensity 1: freq=%v cutoff=%v, expected highs", tgt.breathFreq, tgt.cutoff)
	}
	if tgt.breathGain != BreathGainMax {
		t.Errorf("Intensity 1: gain=%v, expected %v", tgt.breathGain, BreathGainMax)
	}
	if tgt.shimmerGain != 0 {
		t.Error("Shimmer must stay silent outside hold phases")
	}

	e.Update(BreathState{Phase: PhaseHoldIn, Intensity: 1})
	if e.voice.target.shimmerGain != ShimmerGainMax {
		t.Error("Expected shimmer during breath hold")
	}
}

func TestMute_OnlyTouchesMaster(t *testing.T) {
	e := newSilentEngine(0.7)
	e.Start()
	e.Update(BreathState{Phase: PhaseInhale, Intensity: 1})
	before := e.voice.target

	e.Mute()
	if !e.Muted() {
		t.Fatal("Expected muted")
	}
	tgt := e.voice.target
	if tgt.master != 0 {
		t.Errorf("Muted master target = %v, expected 0", tgt.master)
	}
	if tgt.breathFreq != before.breathFreq || tgt.breathGain != before.breathGain || tgt.cutoff != before.cutoff {
		t.Error("Mute must not alter synthesis targets")
	}

	e.Unmute()
	if e.voice.target.master != 0.7 {
		t.Errorf("Unmute master target = %v, expected volume 0.7", e.voice.target.master)
	}
}

func TestMute_SurvivesRestart(t *testing.T) {
	e := newSilentEngine(0.5)
	e.Mute()
	e.Start()
	if e.voice.target.master != 0 {
		t.Error("Starting while muted must come up silent")
	}
	e.Unmute()
	if e.voice.target.master != 0.5 {
		t.Error("Unmute while running must restore the configured volume")
	}
}

func TestSetVolume_ClampsAndRetargets(t *testing.T) {
	e := newSilentEngine(0.5)
	e.Start()
	e.SetVolume(3.0)
	if e.voice.target.master != 1.0 {
		t.Errorf("Master target = %v, expected clamp to 1", e.voice.target.master)
	}
	e.Mute()
	e.SetVolume(0.2)
	if e.voice.target.master != 0 {
		t.Error("SetVolume while muted must stay silent")
	}
}

func readFrames(t *testing.T, v *synthVoice, frames int) []float64 {
	t.Helper()
	buf := make([]byte, frames*8)
	n, err := v.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("Read returned %d of %d bytes", n, len(buf))
	}
	out := make([]float64, frames)
	for i := range out {
		left := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8:]))
		right := math.Float32frombits(binary.LittleEndian.Uint32(buf[i*8+4:]))
		if left != right {
			t.Fatalf("Frame %d: channels differ (%v vs %v)", i, left, right)
		}
		out[i] = float64(left)
	}
	return out
}

func TestVoice_SamplesStayInRange(t *testing.T) {
	v := newSynthVoice()
	v.setMaster(1.0)
	v.setBreath(BreathFreqHigh, BreathGainMax, FilterCutHigh, ShimmerGainMax)
	for _, s := range readFrames(t, v, SampleRate) {
		if s < -1.0 || s > 1.0 {
			t.Fatalf("Sample %v outside [-1,1]", s)
		}
	}
}

func TestVoice_MasterRampsTowardTarget(t *testing.T) {
	v := newSynthVoice()
	v.setBreath(BreathFreqHigh, BreathGainMax, FilterCutHigh, 0)
	v.setMaster(1.0)

	// The first few milliseconds must still be quiet.
	for _, s := range readFrames(t, v, 64) {
		if math.Abs(s) > 0.05 {
			t.Fatalf("Fade-in jumped to %v within the first 64 frames", s)
		}
	}
	if v.cur.master <= 0 {
		t.Fatal("Master did not begin ramping")
	}

	// After two fade times the ramp has settled.
	readFrames(t, v, int(2*FadeTime*SampleRate))
	if v.cur.master < 0.98 {
		t.Errorf("Master = %v after fade, expected near 1", v.cur.master)
	}

	v.setMaster(0)
	readFrames(t, v, int(2*FadeTime*SampleRate))
	if v.cur.master > 0.02 {
		t.Errorf("Master = %v after fade-out, expected near 0", v.cur.master)
	}
}

func TestVoice_ShortBufferIsSafe(t *testing.T) {
	v := newSynthVoice()
	n, err := v.Read(make([]byte, 5))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 0 {
		t.Errorf("Read returned %d for a sub-frame buffer, expected 0", n)
	}
}
