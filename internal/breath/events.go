package breath

type EventType int

const (
	EventPhaseChange EventType = iota
	EventCycleComplete
)

type Event struct {
	Type  EventType
	Phase Phase // new phase for EventPhaseChange
	Cycle int   // completed cycle count for EventCycleComplete
}

type EventHandler func(Event)

// EventBus fans each emitted event out to subscribers in registration order.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
