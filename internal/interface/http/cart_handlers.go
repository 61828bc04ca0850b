package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domcart "example.com/gomarketplace/internal/domain/cart"
	cartuc "example.com/gomarketplace/internal/usecase/cart"
)

type addCartItemRequest struct {
	ID       string  `json:"id" validate:"required"`
	Title    string  `json:"title" validate:"required"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price" validate:"gte=0"`
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	c, err := cartuc.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	items, err := c.Items(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(items))
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := cartuc.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondValidationError(w, err)
		return
	}

	items, added, err := c.AddToCart(r.Context(), domcart.Product{
		ID:       req.ID,
		Title:    req.Title,
		ImageURL: req.ImageURL,
		Price:    req.Price,
	})
	if err != nil {
		handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, mapCart(items))
}

func (a *API) handleIncrementCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := cartuc.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	items, err := c.Increment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(items))
}

func (a *API) handleDecrementCartItem(w http.ResponseWriter, r *http.Request) {
	c, err := cartuc.FromContext(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err)
		return
	}

	items, err := c.Decrement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(items))
}
