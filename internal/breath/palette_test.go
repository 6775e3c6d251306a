package breath

import "testing"

func TestSample_Endpoints(t *testing.T) {
	for _, p := range Palettes {
		first := p.Stops[0].Col
		last := p.Stops[len(p.Stops)-1].Col
		if got := p.Sample(0); got != first {
			t.Errorf("%s: Sample(0) = %v, expected first stop %v", p.Name, got, first)
		}
		if got := p.Sample(1); got != last {
			t.Errorf("%s: Sample(1) = %v, expected last stop %v", p.Name, got, last)
		}
	}
}

func TestSample_LinearBlendBetweenStops(t *testing.T) {
	p := Palette{
		Name: "test",
		Stops: []ColorStop{
			{0.0, RGB{R: 0, G: 0, B: 0}},
			{1.0, RGB{R: 255, G: 255, B: 255}},
		},
	}
	got := p.Sample(0.5)
	want := RGB{R: 127, G: 127, B: 127}
	if got != want {
		t.Errorf("Sample(0.5) = %v, expected %v", got, want)
	}

	uneven := Palette{
		Name: "uneven",
		Stops: []ColorStop{
			{0.0, RGB{R: 0, G: 100, B: 200}},
			{0.5, RGB{R: 100, G: 200, B: 0}},
			{1.0, RGB{R: 200, G: 0, B: 100}},
		},
	}
	got = uneven.Sample(0.25)
	want = RGB{R: 50, G: 150, B: 100}
	if got != want {
		t.Errorf("Sample(0.25) = %v, expected midpoint of first segment %v", got, want)
	}
}

func TestSample_ClampsOutOfRange(t *testing.T) {
	p := PaletteCosmos
	if p.Sample(-3) != p.Stops[0].Col {
		t.Error("Expected negative t to clamp to the first stop")
	}
	if p.Sample(7) != p.Stops[len(p.Stops)-1].Col {
		t.Error("Expected t>1 to clamp to the last stop")
	}
}

func TestPaletteByName_FallsBackToCosmos(t *testing.T) {
	if got := PaletteByName("aurora"); got.Name != "aurora" {
		t.Errorf("Expected aurora, got %s", got.Name)
	}
	if got := PaletteByName("nope"); got.Name != PaletteCosmos.Name {
		t.Errorf("Expected fallback to cosmos, got %s", got.Name)
	}
}
