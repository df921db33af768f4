package interval_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linewrap/linewrap/internal/interval"
)

func TestGet(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	m.Insert(0, 4, "a")
	m.Insert(10, 14, "b")
	assert.Equal(t, 2, m.Len())

	tests := []struct {
		key  int
		want string
		ok   bool
	}{
		{0, "a", true},
		{2, "a", true},
		{4, "a", true},
		{5, "", false},
		{9, "", false},
		{10, "b", true},
		{14, "b", true},
		{15, "", false},
	}

	for _, test := range tests {
		got := m.Get(test.key)
		if !test.ok {
			assert.Nil(t, got.Value, "Get(%d)", test.key)
			continue
		}
		if assert.NotNil(t, got.Value, "Get(%d)", test.key) {
			assert.Equal(t, test.want, *got.Value, "Get(%d)", test.key)
		}
	}
}

func TestOverlapping(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	m.Insert(0, 4, "a")
	m.Insert(10, 14, "b")
	m.Insert(20, 24, "c")

	collect := func(start, end int) []string {
		var got []string
		for iv := range m.Overlapping(start, end) {
			got = append(got, *iv.Value)
		}
		return got
	}

	assert.Equal(t, []string{"a", "b", "c"}, collect(0, 100))
	assert.Equal(t, []string{"a", "b"}, collect(3, 11))
	assert.Equal(t, []string{"b"}, collect(14, 14))
	assert.Nil(t, collect(5, 9))
	assert.Nil(t, collect(25, 30))
}

func TestIntervals(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	m.Insert(10, 14, "b")
	m.Insert(0, 4, "a")

	var got []interval.Interval[int, string]
	for iv := range m.Intervals() {
		got = append(got, iv)
	}

	if assert.Len(t, got, 2) {
		assert.Equal(t, 0, got[0].Start)
		assert.Equal(t, 4, got[0].End)
		assert.Equal(t, 10, got[1].Start)
		assert.Equal(t, 14, got[1].End)
	}
}

func TestInsertBackwards(t *testing.T) {
	t.Parallel()

	var m interval.Map[int, string]
	assert.Panics(t, func() { m.Insert(4, 0, "a") })
}
