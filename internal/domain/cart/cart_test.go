package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDecrementPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    DecrementPolicy
		wantErr bool
	}{
		{in: "", want: AllowNegative},
		{in: "allow-negative", want: AllowNegative},
		{in: " Clamp-Zero ", want: ClampAtZero},
		{in: "remove-at-zero", want: RemoveAtZero},
		{in: "floor", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDecrementPolicy(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPolicy)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRemoveAtZero_KeepsOrder(t *testing.T) {
	c := Cart{{ID: "a", Quantity: 2}, {ID: "b", Quantity: 1}, {ID: "c", Quantity: 4}}

	next, changed := RemoveAtZero.Apply(c.Clone(), 1)

	require.True(t, changed)
	require.Equal(t, Cart{{ID: "a", Quantity: 2}, {ID: "c", Quantity: 4}}, next)
}

func TestTotals(t *testing.T) {
	c := Cart{{ID: "a", Price: 2.5, Quantity: 2}, {ID: "b", Price: 10, Quantity: 1}}

	require.Equal(t, 3, c.TotalQuantity())
	require.InDelta(t, 15.0, c.TotalPrice(), 1e-9)
}

func TestProductValidate(t *testing.T) {
	require.NoError(t, Product{ID: "a", Title: "A", Price: 0}.Validate())

	tests := []struct {
		name    string
		product Product
	}{
		{name: "empty", product: Product{}},
		{name: "missing title", product: Product{ID: "a", Price: 1}},
		{name: "negative price", product: Product{ID: "a", Title: "A", Price: -1}},
		{name: "nan price", product: Product{ID: "a", Title: "A", Price: math.NaN()}},
		{name: "positive inf price", product: Product{ID: "a", Title: "A", Price: math.Inf(1)}},
		{name: "negative inf price", product: Product{ID: "a", Title: "A", Price: math.Inf(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.product.Validate(), ErrInvalidProduct)
		})
	}
}
