package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("title", "author")
	s.Add("keywords")
	s.Add("title")

	assert.Len(t, s, 3)
	assert.True(t, s.Has("author"))
	assert.False(t, s.Has("Author"))
	assert.Equal(t, []string{"author", "keywords", "title"}, Sorted(s))
}

func TestNilSetHasNothing(t *testing.T) {
	var s Set[string]
	assert.False(t, s.Has("title"))
	assert.Empty(t, Sorted(s))
}
