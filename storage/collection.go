package storage

import "xlister/models"

// Collection is the ordered, append-only set of listings for one run.
// It is not safe for concurrent use.
type Collection struct {
	listings []*models.Listing
}

// NewCollection returns an empty Collection.
func NewCollection() *Collection {
	return &Collection{listings: make([]*models.Listing, 0)}
}

// Append adds l to the end. Listings are expected to be validated already.
func (c *Collection) Append(l *models.Listing) {
	if l == nil {
		return
	}
	c.listings = append(c.listings, l)
}

// AppendAll adds ls in order.
func (c *Collection) AppendAll(ls []*models.Listing) {
	for _, l := range ls {
		c.Append(l)
	}
}

// All returns the listings in insertion order. The slice is a copy.
func (c *Collection) All() []*models.Listing {
	out := make([]*models.Listing, len(c.listings))
	copy(out, c.listings)
	return out
}

func (c *Collection) Count() int {
	return len(c.listings)
}

// TotalValue sums price * quantity over every listing; 0 when empty.
func (c *Collection) TotalValue() float64 {
	var total float64
	for _, l := range c.listings {
		total += l.Value()
	}
	return total
}
