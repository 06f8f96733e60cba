package roster

// Stats summarizes the roster from each member's stored fields.
type Stats struct {
	Total          int            `json:"total"`
	Adults         int            `json:"adults"`
	Minors         int            `json:"minors"`
	BirthdaysToday int            `json:"birthdays_today"`
	MissingEmail   int            `json:"missing_email"`
	BySunSign      map[string]int `json:"by_sun_sign"`
	ByChineseSign  map[string]int `json:"by_chinese_sign"`
}

// Stats computes totals over the whole collection, ignoring the filter.
func (r *Roster) Stats() Stats {
	s := Stats{
		Total:         len(r.all),
		BySunSign:     make(map[string]int),
		ByChineseSign: make(map[string]int),
	}
	for _, p := range r.all {
		if a := p.IsAdult(); a != nil {
			if *a {
				s.Adults++
			} else {
				s.Minors++
			}
		}
		if b := p.IsBirthday(); b != nil && *b {
			s.BirthdaysToday++
		}
		if p.Email() == nil {
			s.MissingEmail++
		}
		if sign := p.SunSign(); sign != nil {
			s.BySunSign[*sign]++
		}
		if sign := p.ChineseSign(); sign != nil {
			s.ByChineseSign[*sign]++
		}
	}
	return s
}
