package models

// EventKind classifies a Person notification.
type EventKind int

const (
	// FieldChanged fires after a field commits, and after a rollback so
	// bound views can resynchronize to the unchanged value.
	FieldChanged EventKind = iota + 1
	// ValidationFailed fires when a setter rejects a value. Err carries the message.
	ValidationFailed
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case FieldChanged:
		return "field_changed"
	case ValidationFailed:
		return "validation_failed"
	default:
		return "unknown"
	}
}

// Event is a notification emitted by a Person.
type Event struct {
	Kind   EventKind
	Person *Person
	Field  Field
	Err    error
}

// Message returns the human-readable validation message, or "".
func (e Event) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// Listener receives Person events synchronously.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn for this person's events and returns a function
// that removes it. Listeners run in registration order.
func (p *Person) Subscribe(fn Listener) (unsubscribe func()) {
	p.nextSub++
	id := p.nextSub
	p.subs = append(p.subs, subscription{id: id, fn: fn})
	return func() {
		for i := range p.subs {
			if p.subs[i].id == id {
				p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
				return
			}
		}
	}
}

func (p *Person) emit(e Event) {
	e.Person = p
	subs := make([]subscription, len(p.subs))
	copy(subs, p.subs)
	for _, s := range subs {
		s.fn(e)
	}
}
