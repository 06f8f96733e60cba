package roster

import (
	"errors"
	"fmt"
	"slices"

	"github.com/ajitpratap0/zodiac-roster/internal/metrics"
	"github.com/ajitpratap0/zodiac-roster/internal/models"
	"github.com/ajitpratap0/zodiac-roster/pkg/civil"
)

// Default values for AddPerson.
const (
	DefaultFirstName = "New"
	DefaultLastName  = "User"
	DefaultEmail     = "new@mail.com"
	DefaultAge       = 20
)

// NewPerson builds a validated person on the roster's clock without adding it.
func (r *Roster) NewPerson(firstName, lastName string, email *string, birthDate *civil.Date) (*models.Person, error) {
	return models.NewPerson(firstName, lastName, email, birthDate, models.WithClock(r.now))
}

// AddPerson adds the default new person, born DefaultAge years ago today.
func (r *Roster) AddPerson() (*models.Person, error) {
	email := DefaultEmail
	birth := r.today().AddYears(-DefaultAge)
	p, err := r.NewPerson(DefaultFirstName, DefaultLastName, &email, &birth)
	if err != nil {
		return nil, fmt.Errorf("building default person: %w", err)
	}
	if err := r.Add(p); err != nil {
		return p, err
	}
	return p, nil
}

// Add appends p, rebuilds the view and persists. Adding a member twice is a no-op.
func (r *Roster) Add(p *models.Person) error {
	if p == nil {
		return errors.New("person is required")
	}
	if r.contains(p) {
		return nil
	}
	r.begin()
	r.attach(p)
	metrics.Inc(metrics.PeopleAdded)
	r.logger.Debug("person added", "person", p.String())
	r.rebuild()
	r.persist()
	return r.finish()
}

// Delete removes p from the collection, clears the selection if it pointed
// at p, rebuilds the view and persists.
func (r *Roster) Delete(p *models.Person) error {
	idx := slices.Index(r.all, p)
	if p == nil || idx < 0 {
		return ErrNotFound
	}
	r.begin()
	r.all = slices.Delete(r.all, idx, idx+1)
	r.detach[p]()
	delete(r.detach, p)
	if r.selected == p {
		r.selected = nil
	}
	metrics.Inc(metrics.PeopleDeleted)
	r.logger.Debug("person deleted", "person", p.String())
	r.rebuild()
	r.persist()
	return r.finish()
}

// DeleteSelected deletes the selected person.
func (r *Roster) DeleteSelected() error {
	if r.selected == nil {
		return ErrNoSelection
	}
	return r.Delete(r.selected)
}

// Select marks p as the selected person. Nil clears the selection.
func (r *Roster) Select(p *models.Person) error {
	if p != nil && !r.contains(p) {
		return ErrNotFound
	}
	r.selected = p
	return nil
}

// Selected returns the selected person, or nil.
func (r *Roster) Selected() *models.Person { return r.selected }

// SetField applies a text edit to one field of p. The returned error joins
// the validation failure, if any, with any write-through failure.
func (r *Roster) SetField(p *models.Person, fieldName, text string) error {
	if !r.contains(p) {
		return ErrNotFound
	}
	f, err := models.ParseField(fieldName)
	if err != nil {
		return err
	}
	r.begin()
	verr := p.SetField(f, text)
	return errors.Join(verr, r.finish())
}

// Refresh recomputes every member's derived fields as of today and saves
// once if anything changed.
func (r *Roster) Refresh() error {
	r.begin()
	r.batching, r.dirty = true, false
	for _, p := range r.all {
		p.Rederive()
	}
	r.batching = false
	if r.dirty {
		r.dirty = false
		r.persist()
		r.rebuild()
	}
	return r.finish()
}
