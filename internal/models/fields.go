package models

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/ajitpratap0/zodiac-roster/pkg/civil"
)

// Field names one attribute of a Person.
type Field string

const (
	FieldFirstName   Field = "first_name"
	FieldLastName    Field = "last_name"
	FieldEmail       Field = "email"
	FieldBirthDate   Field = "birth_date"
	FieldIsAdult     Field = "is_adult"
	FieldSunSign     Field = "sun_sign"
	FieldChineseSign Field = "chinese_sign"
	FieldIsBirthday  Field = "is_birthday"
)

// ValidFields lists every field in display order.
var ValidFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldBirthDate,
	FieldIsAdult,
	FieldSunSign,
	FieldChineseSign,
	FieldIsBirthday,
}

// FilterFields are the fields searched by free-text filtering.
var FilterFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldSunSign,
	FieldChineseSign,
}

// IsValid returns true if the field is recognized.
func (f Field) IsValid() bool {
	_, ok := accessors[f]
	return ok
}

// IsDerived reports whether the field is computed from the birth date.
func (f Field) IsDerived() bool {
	a, ok := accessors[f]
	return ok && a.set == nil
}

// Label is the human-readable name used in messages.
func (f Field) Label() string {
	return strings.ReplaceAll(string(f), "_", " ")
}

// ParseField resolves a field token. It accepts "birth_date", "birthDate"
// and "BirthDate" alike.
func ParseField(s string) (Field, error) {
	key := normalizeFieldKey(s)
	for _, f := range ValidFields {
		if normalizeFieldKey(string(f)) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

func normalizeFieldKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
}

// accessor is the typed view of one field.
type accessor struct {
	// lookup returns the display text and whether the value is present.
	lookup func(p *Person) (string, bool)
	// compare orders two people by this field, absent values first.
	compare func(a, b *Person) int
	// set applies a text value through the validating setter. Nil for derived fields.
	set func(p *Person, text string) error
}

var accessors = map[Field]accessor{
	FieldFirstName: {
		lookup:  func(p *Person) (string, bool) { return p.firstName, true },
		compare: func(a, b *Person) int { return compareText(a.firstName, b.firstName) },
		set:     func(p *Person, text string) error { return p.SetFirstName(text) },
	},
	FieldLastName: {
		lookup:  func(p *Person) (string, bool) { return p.lastName, true },
		compare: func(a, b *Person) int { return compareText(a.lastName, b.lastName) },
		set:     func(p *Person, text string) error { return p.SetLastName(text) },
	},
	FieldEmail: {
		lookup:  func(p *Person) (string, bool) { return optString(p.email) },
		compare: func(a, b *Person) int { return compareOptString(a.email, b.email) },
		set:     setEmailText,
	},
	FieldBirthDate: {
		lookup: func(p *Person) (string, bool) {
			if p.birthDate == nil {
				return "", false
			}
			return p.birthDate.String(), true
		},
		compare: func(a, b *Person) int { return compareOptDate(a.birthDate, b.birthDate) },
		set:     setBirthDateText,
	},
	FieldIsAdult: {
		lookup:  func(p *Person) (string, bool) { return optBool(p.isAdult) },
		compare: func(a, b *Person) int { return compareOptBool(a.isAdult, b.isAdult) },
	},
	FieldSunSign: {
		lookup:  func(p *Person) (string, bool) { return optString(p.sunSign) },
		compare: func(a, b *Person) int { return compareOptString(a.sunSign, b.sunSign) },
	},
	FieldChineseSign: {
		lookup:  func(p *Person) (string, bool) { return optString(p.chineseSign) },
		compare: func(a, b *Person) int { return compareOptString(a.chineseSign, b.chineseSign) },
	},
	FieldIsBirthday: {
		lookup:  func(p *Person) (string, bool) { return optBool(p.isBirthday) },
		compare: func(a, b *Person) int { return compareOptBool(a.isBirthday, b.isBirthday) },
	},
}

// Lookup returns the display text of field f and whether it is present.
// Unknown fields are reported as absent.
func (p *Person) Lookup(f Field) (string, bool) {
	a, ok := accessors[f]
	if !ok {
		return "", false
	}
	return a.lookup(p)
}

// SetField applies a text value to an editable field through its validating
// setter. An empty value clears optional fields.
func (p *Person) SetField(f Field, text string) error {
	a, ok := accessors[f]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if a.set == nil {
		return fmt.Errorf("%w: %s", ErrReadOnlyField, f)
	}
	return a.set(p, text)
}

// Compare orders a and b by field f: absent values first, false before true,
// text case-insensitively, dates chronologically.
func Compare(f Field, a, b *Person) int {
	acc, ok := accessors[f]
	if !ok {
		return 0
	}
	return acc.compare(a, b)
}

func setEmailText(p *Person, text string) error {
	if strings.TrimSpace(text) == "" {
		return p.SetEmail(nil)
	}
	return p.SetEmail(&text)
}

func setBirthDateText(p *Person, text string) error {
	if strings.TrimSpace(text) == "" {
		return p.SetBirthDate(nil)
	}
	d, err := civil.Parse(text)
	if err != nil {
		return p.reject(FieldBirthDate, text, ErrInvalidDate)
	}
	return p.SetBirthDate(&d)
}

func optString(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func optBool(b *bool) (string, bool) {
	if b == nil {
		return "", false
	}
	return strconv.FormatBool(*b), true
}

func compareText(a, b string) int {
	if c := cmp.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func compareOptString(a, b *string) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return compareText(*a, *b)
	}
}

func compareOptBool(a, b *bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a == *b:
		return 0
	case !*a:
		return -1
	default:
		return 1
	}
}

func compareOptDate(a, b *civil.Date) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}
