package breath

import (
	"math"
	"testing"
)

func TestVec2_NormalizeZeroIsSafe(t *testing.T) {
	z := Vec2{}.Normalize()
	if z.X != 0 || z.Y != 0 {
		t.Errorf("Normalize of zero = %v, expected zero vector", z)
	}
	u := Vec2{X: 3, Y: 4}.Normalize()
	if math.Abs(u.Mag()-1) > 1e-12 {
		t.Errorf("Normalized magnitude = %v, expected 1", u.Mag())
	}
}

func TestVec2_LimitPreservesDirection(t *testing.T) {
	v := Vec2{X: 30, Y: 40}
	capped := v.Limit(5)
	if math.Abs(capped.Mag()-5) > 1e-9 {
		t.Errorf("Limited magnitude = %v, expected 5", capped.Mag())
	}
	if capped.X <= 0 || capped.Y <= 0 {
		t.Error("Limit flipped the direction")
	}
	small := Vec2{X: 1, Y: 1}
	if small.Limit(5) != small {
		t.Error("Limit below the cap must return the vector unchanged")
	}
}

func TestEventBus_FansOutInOrder(t *testing.T) {
	bus := NewEventBus()
	var order []int
	bus.Subscribe(EventCycleComplete, func(Event) { order = append(order, 1) })
	bus.Subscribe(EventCycleComplete, func(Event) { order = append(order, 2) })
	bus.Subscribe(EventPhaseChange, func(Event) { order = append(order, 3) })

	bus.Emit(Event{Type: EventCycleComplete, Cycle: 1})
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("Handlers ran as %v, expected [1 2]", order)
	}
}
