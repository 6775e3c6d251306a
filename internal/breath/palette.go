package breath

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k float64) RGB {
	k = clampF(k, 0, 1)
	return RGB{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
	}
}

// ColorStop anchors a colour at a position in [0,1] along a palette gradient.
type ColorStop struct {
	Pos float64
	Col RGB
}

// Palette is an ordered list of colour stops, sampled by position.
type Palette struct {
	Name  string
	Stops []ColorStop
}

// Sample returns the palette colour at position t in [0,1] using
// piecewise-linear interpolation between adjacent stops.
func (p Palette) Sample(t float64) RGB {
	if len(p.Stops) == 0 {
		return RGB{}
	}
	t = clampF(t, 0, 1)
	if t <= p.Stops[0].Pos {
		return p.Stops[0].Col
	}
	last := p.Stops[len(p.Stops)-1]
	if t >= last.Pos {
		return last.Col
	}
	for i := 1; i < len(p.Stops); i++ {
		a := p.Stops[i-1]
		b := p.Stops[i]
		if t > b.Pos {
			continue
		}
		span := b.Pos - a.Pos
		if span <= 0 {
			return b.Col
		}
		return lerpRGB(a.Col, b.Col, (t-a.Pos)/span)
	}
	return last.Col
}

var (
	PaletteCosmos = Palette{
		Name: "cosmos",
		Stops: []ColorStop{
			{0.00, RGB{R: 88, G: 40, B: 160}},
			{0.35, RGB{R: 56, G: 80, B: 220}},
			{0.70, RGB{R: 60, G: 170, B: 235}},
			{1.00, RGB{R: 170, G: 235, B: 255}},
		},
	}
	PaletteAurora = Palette{
		Name: "aurora",
		Stops: []ColorStop{
			{0.00, RGB{R: 10, G: 90, B: 70}},
			{0.40, RGB{R: 40, G: 190, B: 120}},
			{0.75, RGB{R: 120, G: 230, B: 180}},
			{1.00, RGB{R: 220, G: 255, B: 235}},
		},
	}
	PaletteEmber = Palette{
		Name: "ember",
		Stops: []ColorStop{
			{0.00, RGB{R: 120, G: 30, B: 20}},
			{0.45, RGB{R: 220, G: 90, B: 40}},
			{0.80, RGB{R: 255, G: 170, B: 70}},
			{1.00, RGB{R: 255, G: 235, B: 170}},
		},
	}
	PaletteOcean = Palette{
		Name: "ocean",
		Stops: []ColorStop{
			{0.00, RGB{R: 8, G: 40, B: 90}},
			{0.40, RGB{R: 20, G: 90, B: 160}},
			{0.75, RGB{R: 50, G: 160, B: 200}},
			{1.00, RGB{R: 180, G: 230, B: 240}},
		},
	}
)

// Palettes lists every selectable palette in display order.
var Palettes = []Palette{PaletteCosmos, PaletteAurora, PaletteEmber, PaletteOcean}

// PaletteByName returns the named palette, falling back to cosmos.
func PaletteByName(name string) Palette {
	for _, p := range Palettes {
		if p.Name == name {
			return p
		}
	}
	return PaletteCosmos
}
