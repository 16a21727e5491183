package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	p := New(2, 10, 35)
	assert.Equal(t, 4, p.Pages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
	assert.Equal(t, 10, p.Offset)

	empty := New(0, 0, 0)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, DefaultLimit, empty.Limit)
	assert.Equal(t, 1, empty.Pages)
	assert.False(t, empty.HasNext)
}

func TestFromRequest(t *testing.T) {
	r := FromRequest("3", "500")
	assert.Equal(t, 3, r.Page)
	assert.Equal(t, MaxLimit, r.Limit)
	assert.Equal(t, int64(200), r.Skip())

	r = FromRequest("abc", "")
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, DefaultLimit, r.Limit)
	assert.Equal(t, int64(0), r.Skip())
}
