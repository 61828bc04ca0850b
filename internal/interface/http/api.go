package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domcart "example.com/gomarketplace/internal/domain/cart"
	cartuc "example.com/gomarketplace/internal/usecase/cart"
)

type API struct {
	cartSvc   *cartuc.Service
	logger    *zap.Logger
	validator *validator.Validate
}

type Dependencies struct {
	CartService *cartuc.Service
	Logger      *zap.Logger
}

func NewAPI(deps Dependencies) *API {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		cartSvc:   deps.CartService,
		logger:    logger,
		validator: validator.New(),
	}
}

func (a *API) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(a.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.AllowContentType("application/json", "text/plain"))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1/cart", func(cr chi.Router) {
		cr.Use(a.provideCart)
		cr.Get("/", a.handleGetCart)
		cr.Post("/items", a.handleAddCartItem)
		cr.Post("/items/{id}/increment", a.handleIncrementCartItem)
		cr.Post("/items/{id}/decrement", a.handleDecrementCartItem)
	})

	return r
}

func (a *API) decodeAndValidate(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return err
	}
	return a.validator.Struct(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func respondError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func respondValidationError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Details: details})
}

func mapCart(items []domcart.Item) map[string]any {
	c := domcart.Cart(items)
	out := make([]map[string]any, 0, len(c))
	for _, item := range c {
		out = append(out, map[string]any{
			"id":        item.ID,
			"title":     item.Title,
			"image_url": item.ImageURL,
			"price":     item.Price,
			"quantity":  item.Quantity,
		})
	}
	return map[string]any{
		"items":          out,
		"total_quantity": c.TotalQuantity(),
		"total_price":    c.TotalPrice(),
	}
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domcart.ErrInvalidProduct):
		respondError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, domcart.ErrMalformedCart):
		// Stored cart can't be read; nothing is served until it is repaired.
		respondError(w, http.StatusServiceUnavailable, err)
	default:
		respondError(w, http.StatusInternalServerError, err)
	}
}
