package cart

import (
	"fmt"
	"strings"
)

// DecrementPolicy decides what happens to an item's quantity on Decrement.
type DecrementPolicy string

const (
	// AllowNegative subtracts without a floor and never removes the item.
	AllowNegative DecrementPolicy = "allow-negative"
	// ClampAtZero never lets the quantity drop below zero.
	ClampAtZero DecrementPolicy = "clamp-zero"
	// RemoveAtZero drops the item once its quantity reaches zero.
	RemoveAtZero DecrementPolicy = "remove-at-zero"
)

func ParseDecrementPolicy(s string) (DecrementPolicy, error) {
	switch p := DecrementPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return AllowNegative, nil
	case AllowNegative, ClampAtZero, RemoveAtZero:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Apply decrements the item at idx and returns the resulting cart and whether
// it changed. c is modified in place.
func (p DecrementPolicy) Apply(c Cart, idx int) (Cart, bool) {
	switch p {
	case ClampAtZero:
		if c[idx].Quantity <= 0 {
			return c, false
		}
		c[idx].Quantity--
	case RemoveAtZero:
		c[idx].Quantity--
		if c[idx].Quantity <= 0 {
			return append(c[:idx], c[idx+1:]...), true
		}
	default:
		c[idx].Quantity--
	}
	return c, true
}
