package listing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/travlr/internal/features/trips"
)

func fetchSample(context.Context) ([]trips.Trip, error) {
	return sample(), nil
}

func newTestController(opts ...Option) *Controller {
	opts = append([]Option{WithClock(func() time.Time { return now }), WithDebounce(MinDebounce)}, opts...)
	return NewController(opts...)
}

func TestController_LoadBuildsBaseList(t *testing.T) {
	c := newTestController()
	defer c.Close()

	require.NoError(t, c.Load(context.Background(), fetchSample))

	st := c.State()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.True(t, st.Ascending)
	assert.Equal(t, []string{"DAWS210214", "CLAR210214", "GALR210214"}, codes(st.Visible))
	assert.Equal(t, 3, st.Metrics.Count)
}

func TestController_LoadFailure(t *testing.T) {
	c := newTestController()
	defer c.Close()
	require.NoError(t, c.Load(context.Background(), fetchSample))

	boom := errors.New("connection refused")
	err := c.Load(context.Background(), func(context.Context) ([]trips.Trip, error) { return nil, boom })

	require.ErrorIs(t, err, boom)
	st := c.State()
	assert.Equal(t, LoadErrorMessage, st.Error)
	assert.Empty(t, st.Visible)
	assert.Zero(t, st.Metrics.Count)
}

func TestController_ToggleSortIsImmediate(t *testing.T) {
	c := newTestController()
	defer c.Close()
	require.NoError(t, c.Load(context.Background(), fetchSample))

	assert.False(t, c.ToggleSort())
	assert.Equal(t, []string{"GALR210214", "CLAR210214", "DAWS210214"}, codes(c.State().Visible))

	assert.True(t, c.ToggleSort())
	assert.Equal(t, []string{"DAWS210214", "CLAR210214", "GALR210214"}, codes(c.State().Visible))
}

func TestController_SearchIsDebounced(t *testing.T) {
	c := newTestController()
	defer c.Close()
	require.NoError(t, c.Load(context.Background(), fetchSample))

	c.SetSearch("g")
	c.SetSearch("ga")
	c.SetSearch("gale")

	assert.Len(t, c.State().Visible, 3)
	require.Eventually(t, func() bool {
		return len(c.State().Visible) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "gale", c.State().Query)
	// metrics ignore the query
	assert.Equal(t, 3, c.State().Metrics.Count)
}

func TestController_RepeatedQueryDoesNotNotify(t *testing.T) {
	var changes atomic.Int32
	c := newTestController(WithOnChange(func(State) { changes.Add(1) }))
	defer c.Close()

	c.SetSearch("reef")
	require.Eventually(t, func() bool { return changes.Load() == 1 }, time.Second, 10*time.Millisecond)
	before := changes.Load()

	c.SetSearch("reef")
	time.Sleep(3 * MinDebounce)
	assert.Equal(t, before, changes.Load())
}

func TestController_CloseDropsPendingSearch(t *testing.T) {
	c := newTestController()
	c.SetSearch("gale")
	c.Close()

	time.Sleep(2 * MinDebounce)
	assert.Empty(t, c.State().Query)
}
