package hashset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddRemoveFind(t *testing.T) {
	s := New(0)
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("a"))
	assert.True(t, s.Find("a"))
	assert.False(t, s.Find("b"))

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.False(t, s.Find("a"))
}

func TestLen(t *testing.T) {
	s := New(0)
	s.Add("a")
	s.Add("b")
	s.Add("b")
	assert.Equal(t, 2, s.Len())
}

func TestRandomKeyOnEmptyPanics(t *testing.T) {
	s := New(0)
	assert.Panics(t, func() { s.RandomKey() })
}

func TestRandomKeyReturnsMember(t *testing.T) {
	s := New(0)
	for _, k := range []string{"a", "b", "c", "d"} {
		s.Add(k)
	}
	for i := 0; i < 50; i++ {
		assert.True(t, s.Find(s.RandomKey()))
	}
}

func TestIterVisitsAllMembers(t *testing.T) {
	s := New(0)
	want := map[string]struct{}{"a": {}, "b": {}, "c": {}}
	for k := range want {
		s.Add(k)
	}

	got := map[string]struct{}{}
	s.Iter(func(k string) { got[k] = struct{}{} })
	assert.Equal(t, want, got)
}
