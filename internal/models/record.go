package models

import "github.com/ajitpratap0/zodiac-roster/pkg/civil"

// Record is the persisted form of a Person: four entered fields and the
// four derived from the birth date.
type Record struct {
	FirstName   string      `json:"first_name" yaml:"first_name"`
	LastName    string      `json:"last_name" yaml:"last_name"`
	Email       *string     `json:"email" yaml:"email"`
	BirthDate   *civil.Date `json:"birth_date" yaml:"birth_date"`
	IsAdult     *bool       `json:"is_adult" yaml:"is_adult"`
	SunSign     *string     `json:"sun_sign" yaml:"sun_sign"`
	ChineseSign *string     `json:"chinese_sign" yaml:"chinese_sign"`
	IsBirthday  *bool       `json:"is_birthday" yaml:"is_birthday"`
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	r.Email = cloneString(r.Email)
	r.BirthDate = cloneDate(r.BirthDate)
	r.IsAdult = cloneBool(r.IsAdult)
	r.SunSign = cloneString(r.SunSign)
	r.ChineseSign = cloneString(r.ChineseSign)
	r.IsBirthday = cloneBool(r.IsBirthday)
	return r
}

// CloneRecords deep-copies a slice of records.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i := range records {
		out[i] = records[i].Clone()
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func cloneDate(d *civil.Date) *civil.Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
