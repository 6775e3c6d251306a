package breath

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// RunDesktop drives the per-tick sequence: advance the phase engine, read
// one breath snapshot, update particles, update audio, render. Strictly in
// that order so every component observes the same state each tick.
func RunDesktop() {
	runtime.LockOSThread()

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	window, err := initWindow(cfg.Width, cfg.Height)
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	audio, err := NewAudioEngine(cfg.Volume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing silent): %v\n", err)
		audio = nil
	}

	events := NewEventBus()
	events.Subscribe(EventCycleComplete, func(e Event) {
		fmt.Fprintf(os.Stderr, "cycle %d complete\n", e.Cycle)
	})

	engine := NewBreathEngine(events)
	engine.Start()

	fbW, fbH := window.GetFramebufferSize()
	field := NewParticleField(fbW, fbH, cfg.MaxParticles, seed)
	field.SetPalette(cfg.PaletteName)

	var mic *MicCapture
	defer func() {
		if mic != nil {
			mic.Close()
		}
	}()

	audio.Start()
	defer audio.Stop()

	var glowBuf, coreBuf, starBuf []float32
	manualDown := false
	lastW, lastH := fbW, fbH

	last := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > MaxDeltaTime {
			dt = MaxDeltaTime
		}

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH = window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		if fbW != lastW || fbH != lastH {
			field.Resize(fbW, fbH)
			lastW, lastH = fbW, fbH
		}

		handleKeys(window, engine, field, audio, cfg, &mic)

		// Manual breath edges: space held = inhaling.
		if engine.Kind() == SourceManual {
			down := window.GetKey(glfw.KeySpace) == glfw.Press
			if down != manualDown {
				manualDown = down
				engine.SetManualPressed(down)
			}
		}

		engine.Update(dt)
		state := engine.State()
		field.Update(state, dt)
		audio.Update(state)

		rend.BeginFrame(fbW, fbH)
		starBuf = field.StarRenderData(starBuf)
		rend.DrawSprites(starBuf, fbW, fbH, false)
		glowBuf, coreBuf = field.RenderData(glowBuf, coreBuf)
		rend.DrawGlowSprites(glowBuf, fbW, fbH)
		rend.DrawSprites(coreBuf, fbW, fbH, true)

		window.SwapBuffers()
	}
}

var keyInput = NewInput()

func handleKeys(window *glfw.Window, engine *BreathEngine, field *ParticleField, audio *AudioEngine, cfg Config, mic **MicCapture) {
	if keyInput.JustPressed(window, glfw.KeyM) {
		if engine.Kind() == SourceMicrophone {
			engine.UseManual()
		} else {
			if *mic == nil {
				m, err := OpenMicrophone()
				if err != nil {
					fmt.Fprintf(os.Stderr, "microphone unavailable, staying manual: %v\n", err)
				} else {
					*mic = m
				}
			}
			if *mic != nil {
				engine.UseMicrophone(*mic)
			}
		}
	}
	if keyInput.JustPressed(window, glfw.KeyG) {
		if engine.Kind() == SourceGuided {
			engine.UseManual()
		} else {
			engine.UseGuided(cfg.GuidedPattern())
		}
	}
	if keyInput.JustPressed(window, glfw.KeyP) {
		if engine.State().IsActive {
			engine.Pause()
			audio.Stop()
		} else {
			engine.Start()
			audio.Start()
		}
	}
	if keyInput.JustPressed(window, glfw.KeyR) {
		engine.Reset()
		field.Reset()
	}
	if keyInput.JustPressed(window, glfw.KeyA) {
		if audio.Running() {
			audio.Stop()
		} else {
			audio.Start()
		}
	}
	if keyInput.JustPressed(window, glfw.KeyU) {
		if audio.Muted() {
			audio.Unmute()
		} else {
			audio.Mute()
		}
	}
	for i, key := range []glfw.Key{glfw.Key1, glfw.Key2, glfw.Key3, glfw.Key4} {
		if keyInput.JustPressed(window, key) && i < len(Palettes) {
			field.SetPalette(Palettes[i].Name)
		}
	}
}
