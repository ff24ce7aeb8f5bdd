package cart

// Item references a purchasable course. Price is a pointer because the
// catalog may list a course without a price; a missing price counts as
// zero toward the subtotal.
type Item struct {
	CourseID       string   `json:"course_id"`
	Title          string   `json:"title"`
	Price          *float64 `json:"price"`
	InstructorName string   `json:"instructor_name,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
}

// Cart is an ordered collection of items with at most one entry per
// course ID. It is a pure in-memory value; persistence is the store's
// concern.
type Cart struct {
	Items []Item `json:"items"`
}

func NewCart() *Cart {
	return &Cart{Items: []Item{}}
}

// Add inserts the item unless its course ID is already present.
// Returns true when the cart changed.
func (c *Cart) Add(item Item) bool {
	if item.CourseID == "" {
		return false
	}
	if c.Contains(item.CourseID) {
		return false
	}
	c.Items = append(c.Items, item)
	return true
}

// Remove deletes the entry with the matching course ID.
// Returns true when the cart changed.
func (c *Cart) Remove(courseID string) bool {
	for i, item := range c.Items {
		if item.CourseID == courseID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Cart) Clear() {
	c.Items = []Item{}
}

func (c *Cart) Contains(courseID string) bool {
	for _, item := range c.Items {
		if item.CourseID == courseID {
			return true
		}
	}
	return false
}

func (c *Cart) Count() int {
	return len(c.Items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) Subtotal() float64 {
	var sum float64
	for _, item := range c.Items {
		if item.Price != nil {
			sum += *item.Price
		}
	}
	return sum
}

func (c *Cart) CourseIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.CourseID)
	}
	return ids
}
