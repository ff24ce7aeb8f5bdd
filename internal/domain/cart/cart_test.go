package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func price(v float64) *float64 {
	return &v
}

func TestAdd_NewItem(t *testing.T) {
	c := NewCart()

	changed := c.Add(Item{CourseID: "go-101", Title: "Go Basics", Price: price(49.99)})

	assert.True(t, changed)
	assert.Equal(t, 1, c.Count())
	assert.True(t, c.Contains("go-101"))
}

func TestAdd_DuplicateIsNoOp(t *testing.T) {
	c := NewCart()

	c.Add(Item{CourseID: "go-101", Price: price(49.99)})
	changed := c.Add(Item{CourseID: "go-101", Price: price(99.99)})

	assert.False(t, changed)
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, 49.99, c.Subtotal())
}

func TestAdd_EmptyCourseIDRejected(t *testing.T) {
	c := NewCart()

	changed := c.Add(Item{CourseID: ""})

	assert.False(t, changed)
	assert.True(t, c.IsEmpty())
}

func TestRemove(t *testing.T) {
	c := NewCart()
	c.Add(Item{CourseID: "go-101"})
	c.Add(Item{CourseID: "go-201"})

	assert.True(t, c.Remove("go-101"))
	assert.False(t, c.Remove("go-101"))
	assert.Equal(t, []string{"go-201"}, c.CourseIDs())
}

func TestSubtotal_MissingPriceCountsAsZero(t *testing.T) {
	c := NewCart()
	c.Add(Item{CourseID: "go-101", Price: price(30)})
	c.Add(Item{CourseID: "go-201", Price: nil})
	c.Add(Item{CourseID: "go-301", Price: price(20)})

	assert.Equal(t, 50.0, c.Subtotal())
}

func TestClear(t *testing.T) {
	c := NewCart()
	c.Add(Item{CourseID: "go-101"})
	c.Add(Item{CourseID: "go-201"})

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Empty(t, c.CourseIDs())
}
