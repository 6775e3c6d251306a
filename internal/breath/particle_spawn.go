package breath

import "math"

// maybeSpawn accumulates the spawn timer and emits new particles. The
// interval shrinks as intensity rises, so inhales thicken the field.
func (f *ParticleField) maybeSpawn(state BreathState, dt float64) {
	interval := BaseSpawnInterval / (1.0 + state.Intensity*SpawnRateGain)
	target := f.targetPopulation(state.TotalCycles)

	f.spawnAcc += dt
	for f.spawnAcc >= interval {
		f.spawnAcc -= interval
		if len(f.P) >= target || len(f.P) >= f.Max {
			continue
		}
		f.spawnOne(state.Intensity)
	}
}

// spawnOne places a particle near the field center within a radius
// proportional to intensity, moving radially outward.
func (f *ParticleField) spawnOne(intensity float64) {
	r := f.rng
	center := Vec2{X: f.Width * 0.5, Y: f.Height * 0.5}

	ang := r.RangeF(0, 2*math.Pi)
	radius := r.Float64() * (4.0 + SpawnRadiusMax*intensity)
	speed := r.RangeF(0.2, 1.0) * SpawnSpeedMax * intensity

	baseSize := r.RangeF(1.0, 2.6)
	f.P = append(f.P, Particle{
		Pos:          f.wrap(center.Add(VecFromAngle(ang, radius))),
		Vel:          VecFromAngle(ang, speed),
		BaseSize:     baseSize,
		Size:         baseSize,
		MaxSize:      baseSize * 3.0,
		MaxLifetime:  r.RangeF(4.0, 9.0),
		ColorPos:     r.Float64(),
		TwinklePhase: r.RangeF(0, 2*math.Pi),
		TwinkleSpeed: r.RangeF(1.0, 4.0),
		Opacity:      0.85,
	})
}
