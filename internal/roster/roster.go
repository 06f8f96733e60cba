// Package roster owns the collection of people, the filtered and sorted
// view over it, the current selection, and write-through persistence.
package roster

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/ajitpratap0/zodiac-roster/internal/metrics"
	"github.com/ajitpratap0/zodiac-roster/internal/models"
	"github.com/ajitpratap0/zodiac-roster/internal/store"
	"github.com/ajitpratap0/zodiac-roster/pkg/civil"
)

// DefaultSeedSize is the number of people generated for a fresh store.
const DefaultSeedSize = 50

var (
	// ErrNotFound is returned when a person is not a member of the roster.
	ErrNotFound = errors.New("person not in roster")
	// ErrNoSelection is returned by DeleteSelected when nothing is selected.
	ErrNoSelection = errors.New("no person selected")
)

// Roster is the authoritative collection plus its presentation state.
//
// A Roster is not safe for concurrent use; callers serialize commands.
type Roster struct {
	gw         store.Gateway
	logger     *slog.Logger
	now        func() time.Time
	rng        *rand.Rand
	seedSize   int
	revalidate bool

	all      []*models.Person
	view     []*models.Person
	filter   string
	sortKey  models.Field
	selected *models.Person
	detach   map[*models.Person]func()

	subs    []subscription
	nextSub int

	// pendingErr collects the first write-through failure of the running command.
	pendingErr error
	batching   bool
	dirty      bool
}

// Option configures a Roster.
type Option func(*Roster)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Roster) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock sets the clock that defines "today".
func WithClock(now func() time.Time) Option {
	return func(r *Roster) {
		if now != nil {
			r.now = now
		}
	}
}

// WithRand sets the random source used to generate seed data.
func WithRand(rng *rand.Rand) Option {
	return func(r *Roster) {
		if rng != nil {
			r.rng = rng
		}
	}
}

// WithSeedSize sets how many people are generated for an empty store.
func WithSeedSize(n int) Option {
	return func(r *Roster) {
		if n > 0 {
			r.seedSize = n
		}
	}
}

// WithRevalidateOnLoad recomputes derived fields of loaded people instead of
// trusting the stored values.
func WithRevalidateOnLoad(on bool) Option {
	return func(r *Roster) { r.revalidate = on }
}

// Open loads the roster from gw. If nothing is stored yet it generates
// seed data and persists it. Any other load failure is returned.
func Open(gw store.Gateway, opts ...Option) (*Roster, error) {
	if gw == nil {
		return nil, errors.New("store gateway is required")
	}
	r := &Roster{
		gw:       gw,
		logger:   slog.New(slog.DiscardHandler),
		now:      time.Now,
		seedSize: DefaultSeedSize,
		detach:   make(map[*models.Person]func()),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		seed := uint64(r.now().UnixNano())
		r.rng = rand.New(rand.NewPCG(seed, seed>>32))
	}

	records, err := gw.Load()
	switch {
	case errors.Is(err, store.ErrNotFound):
		if err := r.generate(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("loading roster: %w", err)
	default:
		if err := r.restore(records); err != nil {
			return nil, fmt.Errorf("revalidating roster: %w", err)
		}
	}
	r.rebuild()
	return r, nil
}

func (r *Roster) restore(records []models.Record) error {
	for _, rec := range records {
		r.attach(models.RestorePerson(rec, models.WithClock(r.now)))
	}
	r.logger.Info("roster loaded", "count", len(r.all))
	if !r.revalidate {
		return nil
	}
	return r.Refresh()
}

// generate fills an empty roster with seed people born 10 to 60 years ago.
func (r *Roster) generate() error {
	today := r.today()
	for i := 1; i <= r.seedSize; i++ {
		birth := today.AddDays(-(365*10 + r.rng.IntN(365*50)))
		email := fmt.Sprintf("user%d@mail.com", i)
		p, err := models.NewPerson(fmt.Sprintf("Name%d", i), fmt.Sprintf("Last%d", i), &email, &birth, models.WithClock(r.now))
		if err != nil {
			return fmt.Errorf("generating person %d: %w", i, err)
		}
		r.attach(p)
	}
	metrics.PeopleGenerated.Add(int64(r.seedSize))
	r.logger.Info("generated roster", "count", r.seedSize)
	if err := r.save(); err != nil {
		return fmt.Errorf("saving generated roster: %w", err)
	}
	return nil
}

func (r *Roster) today() civil.Date { return civil.DateOf(r.now()) }

// Today returns the date the roster validates and derives against.
func (r *Roster) Today() civil.Date { return r.today() }

// attach adds p to the collection and starts write-through for it.
func (r *Roster) attach(p *models.Person) {
	r.all = append(r.all, p)
	r.detach[p] = p.Subscribe(r.onPersonEvent)
}

func (r *Roster) records() []models.Record {
	out := make([]models.Record, len(r.all))
	for i, p := range r.all {
		out[i] = p.Record()
	}
	return out
}

func (r *Roster) save() error {
	if err := r.gw.Save(r.records()); err != nil {
		metrics.Inc(metrics.SaveFailures)
		return err
	}
	metrics.Inc(metrics.SaveTotal)
	return nil
}

// persist writes the whole collection. A failure is logged, emitted and
// kept for the running command to return.
func (r *Roster) persist() {
	err := r.save()
	if err == nil {
		return
	}
	r.logger.Error("saving roster", "error", err, "count", len(r.all))
	if r.pendingErr == nil {
		r.pendingErr = err
	}
	r.emit(Event{Kind: PersistFailed, Err: err})
}

// begin starts a command; finish returns the persistence error it produced.
func (r *Roster) begin() { r.pendingErr = nil }

func (r *Roster) finish() error {
	err := r.pendingErr
	r.pendingErr = nil
	return err
}

func (r *Roster) countValidationFailure(e models.Event) {
	metrics.Inc(metrics.ValidationFailures)
	r.logger.Debug("validation failed", "field", string(e.Field), "error", e.Err)
}

func (r *Roster) contains(p *models.Person) bool {
	_, ok := r.detach[p]
	return ok
}

// All returns the authoritative collection in insertion order.
func (r *Roster) All() []*models.Person { return slices.Clone(r.all) }

// Len returns the number of people in the roster.
func (r *Roster) Len() int { return len(r.all) }

// Find returns the member with the given ID.
func (r *Roster) Find(id string) (*models.Person, error) {
	for _, p := range r.all {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}
