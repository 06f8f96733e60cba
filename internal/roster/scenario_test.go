package roster_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
	"github.com/ajitpratap0/zodiac-roster/internal/roster"
	"github.com/ajitpratap0/zodiac-roster/internal/store"
	"github.com/ajitpratap0/zodiac-roster/pkg/civil"
)

type seed struct {
	first, last, email, birth string
}

// openWith builds a roster whose people are created through the validating
// constructor, so derived fields are accurate for the fixed clock.
func openWith(t *testing.T, people ...seed) (*roster.Roster, *store.MemoryStore) {
	t.Helper()
	records := make([]models.Record, 0, len(people))
	for _, s := range people {
		var email *string
		if s.email != "" {
			e := s.email
			email = &e
		}
		birth := civil.MustParse(s.birth)
		p, err := models.NewPerson(s.first, s.last, email, &birth, models.WithClock(fixedClock))
		require.NoError(t, err)
		records = append(records, p.Record())
	}
	gw := store.NewMemoryStoreWith(records)
	r, err := roster.Open(gw, roster.WithClock(fixedClock))
	require.NoError(t, err)
	return r, gw
}

func names(people []*models.Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.FirstName()
	}
	return out
}

// defaultPeople on 2024-01-01: Ada is an Aries Dragon, Brian a Capricorn
// Horse with a birthday today, Cleo a minor Leo Dragon with no email and
// Dennis a Virgo Dragon.
func defaultPeople() []seed {
	return []seed{
		{"Ada", "Lovelace", "ada@example.com", "2000-03-21"},
		{"Brian", "Kernighan", "bwk@example.com", "1990-01-01"},
		{"Cleo", "Patra", "", "2012-07-30"},
		{"Dennis", "Ritchie", "dmr@example.com", "1988-09-09"},
	}
}

func TestFilter_MatchesDerivedSigns(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)

	r.SetFilter("drag")
	assert.Equal(t, []string{"Ada", "Cleo", "Dennis"}, names(r.View()))
	assert.Equal(t, "drag", r.FilterText())

	r.SetFilter("EXAMPLE.com")
	assert.Equal(t, []string{"Ada", "Brian", "Dennis"}, names(r.View()))

	r.SetFilter("capri")
	assert.Equal(t, []string{"Brian"}, names(r.View()))

	r.SetFilter("   ")
	assert.Len(t, r.View(), 4)

	// Surrounding spaces are part of the query.
	r.SetFilter("drag ")
	assert.Empty(t, r.View())
	r.SetFilter(" Love")
	assert.Empty(t, r.View())

	r.SetFilter("nobody")
	assert.Empty(t, r.View())
	assert.Len(t, r.All(), 4)
}

func TestSortBy_IsAdultAbsentFalseTrue(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	noFlag := models.RestorePerson(models.Record{FirstName: "Zed", LastName: "Unknown"})
	require.NoError(t, r.Add(noFlag))

	require.NoError(t, r.SortBy("isAdult"))
	// Stable within equal keys: adults keep insertion order.
	assert.Equal(t, []string{"Zed", "Cleo", "Ada", "Brian", "Dennis"}, names(r.View()))
	assert.Equal(t, models.FieldIsAdult, r.SortKey())
}

func TestSortBy_KeyIsSticky(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	require.NoError(t, r.SortBy("birth_date"))
	assert.Equal(t, []string{"Dennis", "Brian", "Ada", "Cleo"}, names(r.View()))

	p, err := r.NewPerson("Eve", "Young", nil, ptr(civil.MustParse("1995-05-05")))
	require.NoError(t, err)
	require.NoError(t, r.Add(p))
	assert.Equal(t, []string{"Dennis", "Brian", "Eve", "Ada", "Cleo"}, names(r.View()))

	// Editing a member re-sorts on the next rebuild.
	require.NoError(t, r.SetField(p, "birth_date", "2015-01-01"))
	r.SetFilter("")
	assert.Equal(t, []string{"Dennis", "Brian", "Ada", "Cleo", "Eve"}, names(r.View()))

	require.NoError(t, r.SortBy(""))
	assert.Equal(t, []string{"Ada", "Brian", "Cleo", "Dennis", "Eve"}, names(r.View()))
}

func TestSortBy_UnknownField(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	err := r.SortBy("age")
	assert.ErrorIs(t, err, models.ErrUnknownField)
	assert.Equal(t, models.Field(""), r.SortKey())
}

func TestSortBy_TextAndAbsentEmail(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	require.NoError(t, r.SortBy("email"))
	assert.Equal(t, []string{"Cleo", "Ada", "Brian", "Dennis"}, names(r.View()))
}

func TestSetField_PersistsEveryChange(t *testing.T) {
	r, gw := openWith(t, defaultPeople()...)
	ada := r.All()[0]

	before := gw.Saves()
	require.NoError(t, r.SetField(ada, "first_name", "Augusta"))
	assert.Equal(t, before+1, gw.Saves())
	assert.Equal(t, "Augusta", gw.Records()[0].FirstName)

	// Birth date plus is_adult, sun_sign, chinese_sign and is_birthday.
	before = gw.Saves()
	require.NoError(t, r.SetField(ada, "birthDate", "2010-01-01"))
	assert.Equal(t, before+5, gw.Saves())
	stored := gw.Records()[0]
	assert.Equal(t, "Capricorn", *stored.SunSign)
	assert.Equal(t, "Tiger", *stored.ChineseSign)
	assert.False(t, *stored.IsAdult)
	assert.True(t, *stored.IsBirthday)
}

func TestSetField_ValidationFailureKeepsStoredValue(t *testing.T) {
	r, gw := openWith(t, defaultPeople()...)
	ada := r.All()[0]

	var events []roster.Event
	r.Subscribe(func(e roster.Event) { events = append(events, e) })

	err := r.SetField(ada, "email", "not-an-email")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidEmail)
	assert.Contains(t, err.Error(), "not-an-email")
	assert.Equal(t, "ada@example.com", *ada.Email())
	assert.Equal(t, "ada@example.com", *gw.Records()[0].Email)

	require.Len(t, events, 2)
	assert.Equal(t, roster.ValidationFailed, events[0].Kind)
	assert.Same(t, ada, events[0].Person)
	assert.Equal(t, models.FieldEmail, events[0].Field)
	assert.Equal(t, roster.FieldChanged, events[1].Kind)
}

func TestSetField_Errors(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	ada := r.All()[0]

	assert.ErrorIs(t, r.SetField(ada, "sun_sign", "Leo"), models.ErrReadOnlyField)
	assert.ErrorIs(t, r.SetField(ada, "age", "3"), models.ErrUnknownField)

	stranger := models.RestorePerson(models.Record{FirstName: "X", LastName: "Y"})
	assert.ErrorIs(t, r.SetField(stranger, "first_name", "Z"), roster.ErrNotFound)
}

func TestSetField_PersistFailureJoinsErrors(t *testing.T) {
	r, gw := openWith(t, defaultPeople()...)
	ada := r.All()[0]
	gw.FailSaves(errors.New("disk full"))

	err := r.SetField(ada, "email", "bad")
	assert.ErrorIs(t, err, models.ErrInvalidEmail)
	assert.ErrorIs(t, err, store.ErrPersistence)

	// The next command starts clean once saves recover.
	gw.FailSaves(nil)
	assert.NoError(t, r.SetField(ada, "last_name", "King"))
}

func TestAddPerson_Defaults(t *testing.T) {
	r, gw := openWith(t, defaultPeople()...)
	before := gw.Saves()

	p, err := r.AddPerson()
	require.NoError(t, err)
	assert.Equal(t, "New", p.FirstName())
	assert.Equal(t, "User", p.LastName())
	assert.Equal(t, "new@mail.com", *p.Email())
	assert.Equal(t, "2004-01-01", p.BirthDate().String())
	assert.True(t, *p.IsAdult())
	assert.True(t, *p.IsBirthday())

	assert.Equal(t, 5, r.Len())
	assert.Contains(t, r.View(), p)
	assert.Equal(t, before+1, gw.Saves())
	assert.Len(t, gw.Records(), 5)

	// Edits to an added person are written through too.
	require.NoError(t, r.SetField(p, "first_name", "Newer"))
	assert.Equal(t, "Newer", gw.Records()[4].FirstName)
}

func TestAdd_HiddenByFilter(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	r.SetFilter("drag")

	p, err := r.AddPerson()
	require.NoError(t, err)
	// 2004 is a Monkey year.
	assert.NotContains(t, r.View(), p)
	assert.Contains(t, r.All(), p)

	require.NoError(t, r.Add(p))
	assert.Equal(t, 5, r.Len())
}

func TestDelete(t *testing.T) {
	r, gw := openWith(t, defaultPeople()...)
	brian := r.All()[1]
	require.NoError(t, r.Select(brian))

	require.NoError(t, r.Delete(brian))
	assert.Nil(t, r.Selected())
	assert.Equal(t, []string{"Ada", "Cleo", "Dennis"}, names(r.All()))
	assert.Equal(t, []string{"Ada", "Cleo", "Dennis"}, names(r.View()))
	assert.Len(t, gw.Records(), 3)

	// A deleted person's edits no longer reach the store.
	saves := gw.Saves()
	require.NoError(t, brian.SetFirstName("Ghost"))
	assert.Equal(t, saves, gw.Saves())

	assert.ErrorIs(t, r.Delete(brian), roster.ErrNotFound)
	assert.ErrorIs(t, r.Delete(nil), roster.ErrNotFound)
}

func TestDelete_WhileFilteredRemovesFromCollection(t *testing.T) {
	r, gw := openWith(t, defaultPeople()...)
	r.SetFilter("drag")
	cleo := r.View()[1]
	require.Equal(t, "Cleo", cleo.FirstName())

	require.NoError(t, r.Delete(cleo))
	assert.Equal(t, []string{"Ada", "Dennis"}, names(r.View()))
	assert.Equal(t, []string{"Ada", "Brian", "Dennis"}, names(r.All()))
	assert.Len(t, gw.Records(), 3)
}

func TestDeleteSelected(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	assert.ErrorIs(t, r.DeleteSelected(), roster.ErrNoSelection)

	dennis := r.All()[3]
	require.NoError(t, r.Select(dennis))
	assert.Same(t, dennis, r.Selected())
	require.NoError(t, r.DeleteSelected())
	assert.Equal(t, 3, r.Len())
	assert.Nil(t, r.Selected())

	stranger := models.RestorePerson(models.Record{FirstName: "X", LastName: "Y"})
	assert.ErrorIs(t, r.Select(stranger), roster.ErrNotFound)
	assert.NoError(t, r.Select(nil))
}

func TestViewResetEvents(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	resets := 0
	stop := r.Subscribe(func(e roster.Event) {
		if e.Kind == roster.ViewReset {
			resets++
		}
	})

	r.SetFilter("a")
	require.NoError(t, r.SortBy("last_name"))
	_, err := r.AddPerson()
	require.NoError(t, err)
	assert.Equal(t, 3, resets)

	stop()
	r.SetFilter("")
	assert.Equal(t, 3, resets)
}

func TestViewIsACopy(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	v := r.View()
	v[0] = nil
	assert.NotNil(t, r.View()[0])
}

func TestRefresh(t *testing.T) {
	gw := store.NewMemoryStoreWith([]models.Record{staleRecord()})
	r, err := roster.Open(gw, roster.WithClock(fixedClock))
	require.NoError(t, err)

	require.NoError(t, r.Refresh())
	assert.Equal(t, 1, gw.Saves())
	assert.Equal(t, "Aries", *gw.Records()[0].SunSign)

	// Nothing changes the second time.
	require.NoError(t, r.Refresh())
	assert.Equal(t, 1, gw.Saves())
}

func TestFind(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	ada := r.All()[0]
	got, err := r.Find(ada.ID())
	require.NoError(t, err)
	assert.Same(t, ada, got)

	_, err = r.Find("missing")
	assert.ErrorIs(t, err, roster.ErrNotFound)
}

func TestStats(t *testing.T) {
	r, _ := openWith(t, defaultPeople()...)
	s := r.Stats()
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Adults)
	assert.Equal(t, 1, s.Minors)
	assert.Equal(t, 1, s.BirthdaysToday)
	assert.Equal(t, 1, s.MissingEmail)
	assert.Equal(t, 3, s.ByChineseSign["Dragon"])
	assert.Equal(t, 1, s.ByChineseSign["Horse"])
	assert.Equal(t, 1, s.BySunSign["Capricorn"])

	// Stats ignore the filter.
	r.SetFilter("zzz")
	assert.Equal(t, 4, r.Stats().Total)
}

func ptr[T any](v T) *T { return &v }
