// Package metrics provides application-level counters using stdlib expvar.
// Counters are exported on /debug/vars when the binary serves expvar.
package metrics

import "expvar"

var counters = map[string]*expvar.Int{}

// Roster counters.
var (
	PeopleAdded        = newInt("roster_people_added_total")
	PeopleDeleted      = newInt("roster_people_deleted_total")
	PeopleGenerated    = newInt("roster_people_generated_total")
	ValidationFailures = newInt("roster_validation_failures_total")
	SaveTotal          = newInt("roster_save_total")
	SaveFailures       = newInt("roster_save_failures_total")
)

func newInt(name string) *expvar.Int {
	c := expvar.NewInt(name)
	counters[name] = c
	return c
}

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }

// Snapshot returns the current value of every roster counter by name.
func Snapshot() map[string]int64 {
	out := make(map[string]int64, len(counters))
	for name, c := range counters {
		out[name] = c.Value()
	}
	return out
}
