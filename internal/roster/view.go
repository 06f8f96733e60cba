package roster

import (
	"slices"
	"strings"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
)

// SetFilter shows only people whose first name, last name, email, sun sign
// or chinese sign contains text, ignoring case. Blank text shows everyone.
func (r *Roster) SetFilter(text string) {
	r.filter = text
	r.rebuild()
}

// SortBy orders the view ascending by the named field and keeps that order
// across later rebuilds. An empty name restores insertion order.
func (r *Roster) SortBy(fieldName string) error {
	if strings.TrimSpace(fieldName) == "" {
		r.sortKey = ""
		r.rebuild()
		return nil
	}
	f, err := models.ParseField(fieldName)
	if err != nil {
		return err
	}
	r.sortKey = f
	r.rebuild()
	return nil
}

// View returns the visible people in display order.
func (r *Roster) View() []*models.Person { return slices.Clone(r.view) }

// FilterText returns the current filter.
func (r *Roster) FilterText() string { return r.filter }

// SortKey returns the current sort field, or "" when unsorted.
func (r *Roster) SortKey() models.Field { return r.sortKey }

// rebuild recomputes the view from the collection and emits ViewReset.
func (r *Roster) rebuild() {
	blank := strings.TrimSpace(r.filter) == ""
	q := strings.ToLower(r.filter)
	view := make([]*models.Person, 0, len(r.all))
	for _, p := range r.all {
		if blank || matches(p, q) {
			view = append(view, p)
		}
	}
	if r.sortKey != "" {
		key := r.sortKey
		slices.SortStableFunc(view, func(a, b *models.Person) int {
			return models.Compare(key, a, b)
		})
	}
	r.view = view
	r.emit(Event{Kind: ViewReset})
}

func matches(p *models.Person, q string) bool {
	for _, f := range models.FilterFields {
		if v, ok := p.Lookup(f); ok && strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}
