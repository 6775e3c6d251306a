package breath

import "math"

// Particle is one glowing mote in the field.
type Particle struct {
	Pos Vec2
	Vel Vec2
	Acc Vec2

	BaseSize float64
	Size     float64
	MaxSize  float64

	Age         float64
	MaxLifetime float64

	ColorPos float64 // fixed palette stop position, set at spawn

	TwinklePhase float64
	TwinkleSpeed float64

	Opacity float64
}

// Life is the remaining life fraction; the particle expires at zero.
func (p *Particle) Life() float64 {
	if p.MaxLifetime <= 0 {
		return 0
	}
	return 1.0 - p.Age/p.MaxLifetime
}

// ParticleField owns a bounded particle population plus a static starfield
// and renders both as point sprites.
type ParticleField struct {
	Width  float64
	Height float64
	Max    int

	P     []Particle
	stars []BackgroundStar

	palette  Palette
	rng      *Rand
	seed     uint64
	spawnAcc float64
	time     float64
}

func NewParticleField(width, height, maxParticles int, seed uint64) *ParticleField {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	if seed == 0 {
		seed = 1
	}
	f := &ParticleField{
		Width:   float64(width),
		Height:  float64(height),
		Max:     maxParticles,
		P:       make([]Particle, 0, maxParticles),
		palette: PaletteCosmos,
		rng:     NewRand(seed),
		seed:    seed,
	}
	f.regenerateStars()
	return f
}

// SetPalette switches the active colour palette by name.
func (f *ParticleField) SetPalette(name string) {
	f.palette = PaletteByName(name)
}

// Reset clears the live population and spawn timer. Stars are kept.
func (f *ParticleField) Reset() {
	f.P = f.P[:0]
	f.spawnAcc = 0
}

// Resize updates the field bounds and regenerates the starfield.
// Live particles are preserved and re-wrapped into the new bounds.
func (f *ParticleField) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	f.Width = float64(width)
	f.Height = float64(height)
	f.regenerateStars()
	for i := range f.P {
		f.P[i].Pos = f.wrap(f.P[i].Pos)
	}
}

// targetPopulation grows with completed cycles, capped at the hard maximum.
func (f *ParticleField) targetPopulation(totalCycles int) int {
	target := BasePopulation + totalCycles*PopulationPerCyc
	return clamp(target, 0, f.Max)
}

// wrap folds a position across the field boundaries (toroidal).
func (f *ParticleField) wrap(pos Vec2) Vec2 {
	if f.Width <= 0 || f.Height <= 0 {
		return pos
	}
	pos.X = math.Mod(pos.X, f.Width)
	if pos.X < 0 {
		pos.X += f.Width
	}
	pos.Y = math.Mod(pos.Y, f.Height)
	if pos.Y < 0 {
		pos.Y += f.Height
	}
	return pos
}

// RenderData fills glow (outer soft halo, additive) and core (inner solid
// dot) sprite buffers. Format: [x, y, size, r, g, b, a, rotation] * N.
func (f *ParticleField) RenderData(glowBuf, coreBuf []float32) ([]float32, []float32) {
	glowBuf = glowBuf[:0]
	coreBuf = coreBuf[:0]

	for i := range f.P {
		p := &f.P[i]
		life := p.Life()
		if life <= 0 {
			continue
		}
		twinkle := 0.75 + 0.25*math.Sin(p.TwinklePhase)
		a := clampF(p.Opacity*life*twinkle, 0, 1)
		if a <= 0 {
			continue
		}
		col := f.palette.Sample(p.ColorPos)
		rc := float32(col.R) / 255.0
		gc := float32(col.G) / 255.0
		bc := float32(col.B) / 255.0
		ac := float32(a)

		x := float32(p.Pos.X)
		y := float32(p.Pos.Y)

		// Outer glow: radius scaled up, colour pre-multiplied by alpha so the
		// additive pass brightens where glows overlap.
		gs := float32(p.Size * GlowSizeFactor)
		glowBuf = append(glowBuf, x, y, gs, rc*ac*0.55, gc*ac*0.55, bc*ac*0.55, ac, 0)

		// Inner core.
		cs := float32(p.Size)
		coreBuf = append(coreBuf, x, y, cs, rc*ac, gc*ac, bc*ac, ac, 0)
	}
	return glowBuf, coreBuf
}
