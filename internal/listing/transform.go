// Package listing derives the admin trip list: upcoming trips only, sorted by
// start date, optionally reversed and narrowed by a free-text query.
package listing

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/xyz-asif/travlr/internal/features/trips"
)

const isoMillis = "2006-01-02T15:04:05.000Z"

// View is the render shape of one trip.
type View struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Resort         string    `json:"resort"`
	Start          time.Time `json:"start"`
	LengthDays     int       `json:"lengthDays"`
	PricePerPerson float64   `json:"pricePerPerson"`
	DaysUntil      int       `json:"daysUntil"`
	StartISO       string    `json:"startISO"`
}

// Metrics summarise the unfiltered upcoming list.
type Metrics struct {
	Count     int    `json:"count"`
	NextStart string `json:"nextStart,omitempty"`
}

// IsUpcoming reports whether t starts strictly after now.
func IsUpcoming(t trips.Trip, now time.Time) bool {
	return t.IsUpcomingAt(now)
}

// FilterUpcoming keeps trips that start after now, in input order.
func FilterUpcoming(list []trips.Trip, now time.Time) []trips.Trip {
	out := make([]trips.Trip, 0, len(list))
	for _, t := range list {
		if IsUpcoming(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// ToView maps a trip. DaysUntil rounds partial days up.
func ToView(t trips.Trip, now time.Time) View {
	id := ""
	if !t.ID.IsZero() {
		id = t.ID.Hex()
	}

	days := t.Start.Sub(now).Hours() / 24
	return View{
		ID:             id,
		Code:           t.Code,
		Name:           t.Name,
		Resort:         t.Resort,
		Start:          t.Start,
		LengthDays:     t.Length,
		PricePerPerson: t.PerPerson,
		DaysUntil:      int(math.Ceil(days)),
		StartISO:       t.Start.UTC().Format(isoMillis),
	}
}

// SortByStart returns a copy sorted ascending by start. Equal starts keep input order.
func SortByStart(views []View) []View {
	out := append([]View(nil), views...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// Arrange returns views unchanged when ascending, otherwise an exact reversal.
// It never re-sorts, so ties keep their mirrored order.
func Arrange(views []View, ascending bool) []View {
	out := append([]View(nil), views...)
	if ascending {
		return out
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// FilterText keeps views whose name, code or resort contains query, ignoring
// case. A blank query keeps everything.
func FilterText(views []View, query string) []View {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]View(nil), views...)
	}

	out := make([]View, 0, len(views))
	for _, v := range views {
		if strings.Contains(strings.ToLower(v.Name), q) ||
			strings.Contains(strings.ToLower(v.Code), q) ||
			strings.Contains(strings.ToLower(v.Resort), q) {
			out = append(out, v)
		}
	}
	return out
}

// Build runs filter, map and sort: the base list before any user input.
func Build(list []trips.Trip, now time.Time) []View {
	upcoming := FilterUpcoming(list, now)
	views := make([]View, 0, len(upcoming))
	for _, t := range upcoming {
		views = append(views, ToView(t, now))
	}
	return SortByStart(views)
}

// Apply layers the user's sort direction and query over a base list.
func Apply(base []View, query string, ascending bool) []View {
	return FilterText(Arrange(base, ascending), query)
}

// ComputeMetrics expects an ascending base list.
func ComputeMetrics(base []View) Metrics {
	m := Metrics{Count: len(base)}
	if len(base) > 0 {
		m.NextStart = base[0].StartISO
	}
	return m
}
