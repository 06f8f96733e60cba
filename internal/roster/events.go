package roster

import "github.com/ajitpratap0/zodiac-roster/internal/models"

// EventKind classifies a roster notification.
type EventKind int

const (
	// ViewReset fires whenever the visible subset is recomputed.
	ViewReset EventKind = iota + 1
	// FieldChanged relays a member's field notification after it was persisted.
	FieldChanged
	// ValidationFailed relays a member's rejected edit.
	ValidationFailed
	// PersistFailed fires when a write-through save fails.
	PersistFailed
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case ViewReset:
		return "view_reset"
	case FieldChanged:
		return "field_changed"
	case ValidationFailed:
		return "validation_failed"
	case PersistFailed:
		return "persist_failed"
	default:
		return "unknown"
	}
}

// Event is a roster notification. Person and Field are empty for ViewReset.
type Event struct {
	Kind   EventKind
	Person *models.Person
	Field  models.Field
	Err    error
}

// Listener receives roster events synchronously.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn and returns a function that removes it.
func (r *Roster) Subscribe(fn Listener) (unsubscribe func()) {
	r.nextSub++
	id := r.nextSub
	r.subs = append(r.subs, subscription{id: id, fn: fn})
	return func() {
		for i := range r.subs {
			if r.subs[i].id == id {
				r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

func (r *Roster) emit(e Event) {
	subs := make([]subscription, len(r.subs))
	copy(subs, r.subs)
	for _, s := range subs {
		s.fn(e)
	}
}

// onPersonEvent is subscribed to every member. Field changes are written
// through to the gateway before being relayed.
func (r *Roster) onPersonEvent(e models.Event) {
	switch e.Kind {
	case models.FieldChanged:
		if r.batching {
			r.dirty = true
		} else {
			r.persist()
		}
		r.emit(Event{Kind: FieldChanged, Person: e.Person, Field: e.Field})
	case models.ValidationFailed:
		r.countValidationFailure(e)
		r.emit(Event{Kind: ValidationFailed, Person: e.Person, Field: e.Field, Err: e.Err})
	}
}
