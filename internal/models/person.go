package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/zodiac-roster/internal/zodiac"
	"github.com/ajitpratap0/zodiac-roster/pkg/civil"
)

// Person is a roster entry. Entered fields change only through validating
// setters; the derived fields follow the birth date.
//
// A Person is not safe for concurrent use.
type Person struct {
	id  string
	now func() time.Time

	firstName string
	lastName  string
	email     *string
	birthDate *civil.Date

	isAdult     *bool
	sunSign     *string
	chineseSign *string
	isBirthday  *bool

	subs    []subscription
	nextSub int
}

// Option configures a Person.
type Option func(*Person)

// WithClock sets the clock that defines "today" for validation and derivation.
func WithClock(now func() time.Time) Option {
	return func(p *Person) {
		if now != nil {
			p.now = now
		}
	}
}

func newPerson(opts []Option) *Person {
	p := &Person{
		id:  uuid.New().String(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewPerson validates every field and builds a Person with its derived
// fields computed. Invalid input fails the call with a *ValidationError;
// no events are emitted.
func NewPerson(firstName, lastName string, email *string, birthDate *civil.Date, opts ...Option) (*Person, error) {
	p := newPerson(opts)
	today := p.today()
	email = normalizeEmail(email)

	if err := ValidateFirstName(firstName); err != nil {
		return nil, &ValidationError{Field: FieldFirstName, Value: firstName, Err: err}
	}
	if err := ValidateLastName(lastName); err != nil {
		return nil, &ValidationError{Field: FieldLastName, Value: lastName, Err: err}
	}
	if err := ValidateEmail(email); err != nil {
		return nil, &ValidationError{Field: FieldEmail, Value: derefString(email), Err: err}
	}
	if err := ValidateBirthDate(birthDate, today); err != nil {
		return nil, &ValidationError{Field: FieldBirthDate, Value: dateText(birthDate), Err: err}
	}

	p.firstName = firstName
	p.lastName = lastName
	p.email = cloneString(email)
	p.birthDate = cloneDate(birthDate)

	prof := zodiac.Derive(*p.birthDate, today)
	p.isAdult = &prof.IsAdult
	sun, chinese := string(prof.SunSign), string(prof.ChineseSign)
	p.sunSign = &sun
	p.chineseSign = &chinese
	p.isBirthday = &prof.IsBirthday
	return p, nil
}

// RestorePerson rebuilds a Person from persisted state without validating
// or re-deriving anything.
func RestorePerson(r Record, opts ...Option) *Person {
	p := newPerson(opts)
	r = r.Clone()
	p.firstName = r.FirstName
	p.lastName = r.LastName
	p.email = r.Email
	p.birthDate = r.BirthDate
	p.isAdult = r.IsAdult
	p.sunSign = r.SunSign
	p.chineseSign = r.ChineseSign
	p.isBirthday = r.IsBirthday
	return p
}

// Record snapshots the person for persistence.
func (p *Person) Record() Record {
	return Record{
		FirstName:   p.firstName,
		LastName:    p.lastName,
		Email:       cloneString(p.email),
		BirthDate:   cloneDate(p.birthDate),
		IsAdult:     cloneBool(p.isAdult),
		SunSign:     cloneString(p.sunSign),
		ChineseSign: cloneString(p.chineseSign),
		IsBirthday:  cloneBool(p.isBirthday),
	}
}

// ID is a per-process handle for addressing the person from long-lived
// presentation surfaces. It is not persisted.
func (p *Person) ID() string { return p.id }

// FirstName returns the first name.
func (p *Person) FirstName() string { return p.firstName }

// LastName returns the last name.
func (p *Person) LastName() string { return p.lastName }

// Email returns a copy of the email, or nil if absent.
func (p *Person) Email() *string { return cloneString(p.email) }

// BirthDate returns a copy of the birth date, or nil if absent.
func (p *Person) BirthDate() *civil.Date { return cloneDate(p.birthDate) }

// IsAdult returns the derived adult flag.
func (p *Person) IsAdult() *bool { return cloneBool(p.isAdult) }

// SunSign returns the derived western sign.
func (p *Person) SunSign() *string { return cloneString(p.sunSign) }

// ChineseSign returns the derived animal-year sign.
func (p *Person) ChineseSign() *string { return cloneString(p.chineseSign) }

// IsBirthday returns the derived birthday-today flag.
func (p *Person) IsBirthday() *bool { return cloneBool(p.isBirthday) }

func (p *Person) String() string { return p.firstName + " " + p.lastName }

func (p *Person) today() civil.Date { return civil.DateOf(p.now()) }

// SetFirstName validates and stores v. It returns nil if v is unchanged.
func (p *Person) SetFirstName(v string) error {
	if v == p.firstName {
		return nil
	}
	if err := ValidateFirstName(v); err != nil {
		return p.reject(FieldFirstName, v, err)
	}
	p.firstName = v
	p.emit(Event{Kind: FieldChanged, Field: FieldFirstName})
	return nil
}

// SetLastName validates and stores v. It returns nil if v is unchanged.
func (p *Person) SetLastName(v string) error {
	if v == p.lastName {
		return nil
	}
	if err := ValidateLastName(v); err != nil {
		return p.reject(FieldLastName, v, err)
	}
	p.lastName = v
	p.emit(Event{Kind: FieldChanged, Field: FieldLastName})
	return nil
}

// SetEmail validates and stores v. Nil or blank clears the email.
func (p *Person) SetEmail(v *string) error {
	v = normalizeEmail(v)
	if equalString(v, p.email) {
		return nil
	}
	if err := ValidateEmail(v); err != nil {
		return p.reject(FieldEmail, *v, err)
	}
	p.email = cloneString(v)
	p.emit(Event{Kind: FieldChanged, Field: FieldEmail})
	return nil
}

// SetBirthDate validates and stores d, then recomputes the derived fields.
// Each derived field that changes emits its own FieldChanged after the
// birth date's.
func (p *Person) SetBirthDate(d *civil.Date) error {
	if equalDate(d, p.birthDate) {
		return nil
	}
	today := p.today()
	if err := ValidateBirthDate(d, today); err != nil {
		return p.reject(FieldBirthDate, dateText(d), err)
	}
	p.birthDate = cloneDate(d)
	p.emit(Event{Kind: FieldChanged, Field: FieldBirthDate})
	p.derive(today)
	return nil
}

// Rederive recomputes the derived fields from the stored birth date as of
// today. Persons restored from storage keep their stored derived values
// until this is called.
func (p *Person) Rederive() {
	if p.birthDate == nil {
		return
	}
	p.derive(p.today())
}

func (p *Person) derive(today civil.Date) {
	prof := zodiac.Derive(*p.birthDate, today)
	p.setIsAdult(prof.IsAdult)
	p.setSunSign(string(prof.SunSign))
	p.setChineseSign(string(prof.ChineseSign))
	p.setIsBirthday(prof.IsBirthday)
}

func (p *Person) setIsAdult(v bool) {
	if p.isAdult != nil && *p.isAdult == v {
		return
	}
	p.isAdult = &v
	p.emit(Event{Kind: FieldChanged, Field: FieldIsAdult})
}

func (p *Person) setSunSign(v string) {
	if p.sunSign != nil && *p.sunSign == v {
		return
	}
	p.sunSign = &v
	p.emit(Event{Kind: FieldChanged, Field: FieldSunSign})
}

func (p *Person) setChineseSign(v string) {
	if p.chineseSign != nil && *p.chineseSign == v {
		return
	}
	p.chineseSign = &v
	p.emit(Event{Kind: FieldChanged, Field: FieldChineseSign})
}

func (p *Person) setIsBirthday(v bool) {
	if p.isBirthday != nil && *p.isBirthday == v {
		return
	}
	p.isBirthday = &v
	p.emit(Event{Kind: FieldChanged, Field: FieldIsBirthday})
}

// reject reports a failed mutation. The stored value is untouched; the
// trailing FieldChanged lets bound views redraw the kept value.
func (p *Person) reject(f Field, value string, err error) error {
	verr := &ValidationError{Field: f, Value: value, Err: err}
	p.emit(Event{Kind: ValidationFailed, Field: f, Err: verr})
	p.emit(Event{Kind: FieldChanged, Field: f})
	return verr
}

func normalizeEmail(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalDate(a, b *civil.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func dateText(d *civil.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
