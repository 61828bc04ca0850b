package cart

import (
	"fmt"
	"math"
)

// Product is what the catalogue hands to AddToCart: an item without a quantity.
type Product struct {
	ID       string
	Title    string
	ImageURL string
	Price    float64
}

type Item struct {
	ID       string
	Title    string
	ImageURL string
	Price    float64
	Quantity int
}

// NewItem starts a line item for p with quantity 1.
func NewItem(p Product) Item {
	return Item{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    p.Price,
		Quantity: 1,
	}
}

func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidProduct)
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return fmt.Errorf("%w: price must be a finite number", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	return nil
}

// Cart is ordered by insertion and holds at most one item per ID.
type Cart []Item

func (c Cart) IndexOf(id string) int {
	for i, item := range c {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

func (c Cart) TotalQuantity() int {
	var n int
	for _, item := range c {
		n += item.Quantity
	}
	return n
}

func (c Cart) TotalPrice() float64 {
	var total float64
	for _, item := range c {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
