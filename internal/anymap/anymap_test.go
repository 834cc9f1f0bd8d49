package anymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type marker struct{}

func TestMap_InsertAndGet(t *testing.T) {
	m := New()

	_, had := Insert(m, 42)
	assert.False(t, had)

	v, ok := Get[int](m)
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	// A second insert of the same type replaces and returns the previous.
	prev, had := Insert(m, 7)
	assert.True(t, had)
	assert.Equal(t, 42, prev)

	v, _ = Get[int](m)
	assert.Equal(t, 7, v)
}

func TestMap_DistinctTypesDoNotCollide(t *testing.T) {
	m := New()

	Insert(m, 1)
	Insert(m, "one")
	Insert(m, marker{})

	assert.Equal(t, 3, m.Len())

	s, ok := Get[string](m)
	assert.True(t, ok)
	assert.Equal(t, "one", s)
	assert.True(t, Has[marker](m))
}

func TestMap_Remove(t *testing.T) {
	m := New()
	Insert(m, "value")

	v, ok := Remove[string](m)
	assert.True(t, ok)
	assert.Equal(t, "value", v)

	_, ok = Get[string](m)
	assert.False(t, ok)

	_, ok = Remove[string](m)
	assert.False(t, ok)
}

func TestMap_GetMissing(t *testing.T) {
	m := New()
	_, ok := Get[int](m)
	assert.False(t, ok)
}
