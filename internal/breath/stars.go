package breath

import "math"

// BackgroundStar is a static decorative point, regenerated on resize.
type BackgroundStar struct {
	Pos          Vec2
	Size         float64
	Opacity      float64
	TwinklePhase float64
	TwinkleSpeed float64
}

func (f *ParticleField) regenerateStars() {
	r := NewRand(f.seed ^ 0x57A125)
	if cap(f.stars) < BackgroundStars {
		f.stars = make([]BackgroundStar, BackgroundStars)
	}
	f.stars = f.stars[:BackgroundStars]
	for i := range f.stars {
		f.stars[i] = BackgroundStar{
			Pos:          Vec2{X: r.Float64() * f.Width, Y: r.Float64() * f.Height},
			Size:         r.RangeF(0.6, 1.8),
			Opacity:      r.RangeF(0.25, 0.8),
			TwinklePhase: r.RangeF(0, 2*math.Pi),
			TwinkleSpeed: r.RangeF(0.4, 1.6),
		}
	}
}

func (f *ParticleField) advanceStars(dt float64) {
	for i := range f.stars {
		f.stars[i].TwinklePhase += f.stars[i].TwinkleSpeed * dt
	}
}

// StarRenderData fills a sprite buffer for the starfield, drawn first with
// alpha blending. Format matches RenderData.
func (f *ParticleField) StarRenderData(buf []float32) []float32 {
	buf = buf[:0]
	for i := range f.stars {
		s := &f.stars[i]
		a := s.Opacity * (0.6 + 0.4*math.Sin(s.TwinklePhase))
		if a <= 0 {
			continue
		}
		buf = append(buf,
			float32(s.Pos.X), float32(s.Pos.Y), float32(s.Size),
			0.92, 0.94, 1.0, float32(a), 0)
	}
	return buf
}
