package cart

import (
	"encoding/json"
	"fmt"
)

type wireItem struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	ImageURL    string  `json:"image_url"`
	ImageURLAlt string  `json:"imageUrl,omitempty"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// Encode serialises the whole cart as a JSON array.
func Encode(c Cart) (string, error) {
	wire := make([]wireItem, 0, len(c))
	for _, item := range c {
		wire = append(wire, wireItem{
			ID:       item.ID,
			Title:    item.Title,
			ImageURL: item.ImageURL,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}
	b, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a persisted cart. Both image_url and imageUrl are accepted.
func Decode(raw string) (Cart, error) {
	var wire []wireItem
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCart, err)
	}

	c := make(Cart, 0, len(wire))
	for _, w := range wire {
		image := w.ImageURL
		if image == "" {
			image = w.ImageURLAlt
		}
		if c.IndexOf(w.ID) >= 0 {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformedCart, w.ID)
		}
		c = append(c, Item{
			ID:       w.ID,
			Title:    w.Title,
			ImageURL: image,
			Price:    w.Price,
			Quantity: w.Quantity,
		})
	}
	return c, nil
}
