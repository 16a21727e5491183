package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/travlr/internal/features/trips"
)

var now = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

func trip(code, name, resort string, start time.Time) trips.Trip {
	return trips.Trip{Code: code, Name: name, Resort: resort, Start: start, Length: 4, PerPerson: 799}
}

func sample() []trips.Trip {
	return []trips.Trip{
		trip("GALR210214", "Gale Reef", "Emerald Bay, 3 stars", now.Add(72*time.Hour)),
		trip("PAST000001", "Old Trip", "Nowhere", now.Add(-time.Hour)),
		trip("DAWS210214", "Dawson's Reef", "Blue Lagoon, 4 stars", now.Add(24*time.Hour)),
		trip("CLAR210214", "Claire's Reef", "Coral Sands, 5 stars", now.Add(48*time.Hour)),
		trip("EXACTNOW01", "Starts Now", "Here", now),
	}
}

func codes(views []View) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Code)
	}
	return out
}

func TestFilterUpcoming_ExcludesPastAndNow(t *testing.T) {
	got := FilterUpcoming(sample(), now)

	require.Len(t, got, 3)
	for _, tr := range got {
		assert.True(t, tr.Start.After(now))
	}
}

func TestToView_DaysUntilRoundsUp(t *testing.T) {
	v := ToView(trip("A", "A", "R", now.Add(25*time.Hour)), now)
	assert.Equal(t, 2, v.DaysUntil)

	v = ToView(trip("B", "B", "R", now.Add(24*time.Hour)), now)
	assert.Equal(t, 1, v.DaysUntil)

	v = ToView(trip("C", "C", "R", now.Add(time.Minute)), now)
	assert.Equal(t, 1, v.DaysUntil)
}

func TestToView_FieldsAndISO(t *testing.T) {
	start := time.Date(2030, 2, 14, 8, 0, 0, 0, time.FixedZone("x", 3600))
	v := ToView(trip("GALR210214", "Gale Reef", "Emerald Bay", start), now)

	assert.Equal(t, "2030-02-14T07:00:00.000Z", v.StartISO)
	assert.Equal(t, 4, v.LengthDays)
	assert.Equal(t, 799.0, v.PricePerPerson)
	assert.Empty(t, v.ID)
}

func TestBuild_SortsAscending(t *testing.T) {
	got := Build(sample(), now)
	assert.Equal(t, []string{"DAWS210214", "CLAR210214", "GALR210214"}, codes(got))
}

func TestSortByStart_StableAndCopies(t *testing.T) {
	same := now.Add(time.Hour)
	in := []View{{Code: "B", Start: same}, {Code: "A", Start: same}, {Code: "C", Start: now}}

	got := SortByStart(in)

	assert.Equal(t, []string{"C", "B", "A"}, codes(got))
	assert.Equal(t, "B", in[0].Code)
}

func TestArrange_ReverseIsExactMirror(t *testing.T) {
	base := Build(sample(), now)

	assert.Equal(t, codes(base), codes(Arrange(base, true)))
	assert.Equal(t, []string{"GALR210214", "CLAR210214", "DAWS210214"}, codes(Arrange(base, false)))
	assert.Equal(t, codes(base), codes(Arrange(Arrange(base, false), false)))
}

func TestFilterText(t *testing.T) {
	base := Build(sample(), now)

	assert.Equal(t, []string{"GALR210214"}, codes(FilterText(base, "  gale ")))
	assert.Equal(t, []string{"CLAR210214"}, codes(FilterText(base, "clar2")))
	assert.Equal(t, []string{"DAWS210214"}, codes(FilterText(base, "LAGOON")))
	assert.Len(t, FilterText(base, "reef"), 3)
	assert.Len(t, FilterText(base, "   "), 3)
	assert.Empty(t, FilterText(base, "zzz"))
}

func TestApply_FilterKeepsDirection(t *testing.T) {
	base := Build(sample(), now)
	assert.Equal(t, []string{"GALR210214", "CLAR210214", "DAWS210214"}, codes(Apply(base, "reef", false)))
}

func TestComputeMetrics(t *testing.T) {
	base := Build(sample(), now)
	m := ComputeMetrics(base)

	assert.Equal(t, 3, m.Count)
	assert.Equal(t, base[0].StartISO, m.NextStart)

	assert.Equal(t, Metrics{}, ComputeMetrics(nil))
}
