package breath

// Update advances spawning, physics, and lifecycle for one tick. Zero or
// negative delta time is a no-op for motion. While the breath engine is
// paused only the twinkle oscillators keep running.
func (f *ParticleField) Update(state BreathState, dt float64) {
	if dt <= 0 {
		return
	}
	if dt > MaxDeltaTime {
		dt = MaxDeltaTime
	}
	f.time += dt

	if !state.IsActive {
		for i := range f.P {
			f.P[i].TwinklePhase += f.P[i].TwinkleSpeed * dt
		}
		f.advanceStars(dt)
		return
	}

	f.maybeSpawn(state, dt)

	center := Vec2{X: f.Width * 0.5, Y: f.Height * 0.5}
	contract := state.Intensity < SteerContractAt

	for i := 0; i < len(f.P); {
		p := &f.P[i]

		p.Age += dt
		if p.Life() <= 0 {
			f.P[i] = f.P[len(f.P)-1]
			f.P = f.P[:len(f.P)-1]
			continue
		}

		// Steering: exhale pulls the field inward, inhale pushes it out.
		dir := center.Sub(p.Pos)
		if !contract {
			dir = dir.Scale(-1)
		}
		p.Acc = p.Acc.Add(dir.Normalize().Scale(SteerStrength * state.Intensity))

		p.Vel = p.Vel.Add(p.Acc.Scale(dt)).Limit(MaxParticleSpeed)
		p.Pos = f.wrap(p.Pos.Add(p.Vel.Scale(dt * MotionScale)))
		p.Acc = Vec2{} // forces are re-applied each tick, never accumulated

		p.TwinklePhase += p.TwinkleSpeed * dt
		p.Size = clampF(p.BaseSize*(1.0+1.4*state.Intensity), p.BaseSize, p.MaxSize)

		i++
	}

	f.advanceStars(dt)
}
