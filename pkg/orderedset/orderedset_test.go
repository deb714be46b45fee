package orderedset_test

import (
	"testing"

	"github.com/coldharbor-labs/suppression-screen/pkg/orderedset"
	"github.com/stretchr/testify/assert"
)

func TestAdd_PreservesFirstSeenOrder(t *testing.T) {
	set := orderedset.New[string]()
	assert.True(t, set.Add("b"))
	assert.True(t, set.Add("a"))
	assert.False(t, set.Add("b"))
	assert.True(t, set.Add("c"))

	assert.Equal(t, []string{"b", "a", "c"}, set.Items())
	assert.Equal(t, 3, set.Len())
}

func TestContains(t *testing.T) {
	set := orderedset.New[int]()
	set.Add(7)
	assert.True(t, set.Contains(7))
	assert.False(t, set.Contains(8))
}

func TestItems_EmptySet(t *testing.T) {
	set := orderedset.New[string]()
	assert.Empty(t, set.Items())
	assert.Equal(t, 0, set.Len())
}
