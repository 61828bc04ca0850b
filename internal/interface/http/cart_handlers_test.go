package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	domcart "example.com/gomarketplace/internal/domain/cart"
	"example.com/gomarketplace/internal/infra/persistence/memory"
	cartuc "example.com/gomarketplace/internal/usecase/cart"
)

type failingStorage struct {
	value string
	found bool
	err   error
}

func (f *failingStorage) Get(ctx context.Context, key string) (string, bool, error) {
	return f.value, f.found, nil
}

func (f *failingStorage) Set(ctx context.Context, key, value string) error {
	return f.err
}

func setupCartAPI(t *testing.T, opts cartuc.Options) (http.Handler, *memory.KVStore, *cartuc.Service) {
	t.Helper()
	storage := memory.NewKVStore()
	svc, err := cartuc.NewService(storage, opts)
	require.NoError(t, err)
	api := NewAPI(Dependencies{CartService: svc})
	return api.Router(), storage, svc
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type cartResponse struct {
	Items []struct {
		ID       string  `json:"id"`
		Title    string  `json:"title"`
		ImageURL string  `json:"image_url"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	} `json:"items"`
	TotalQuantity int     `json:"total_quantity"`
	TotalPrice    float64 `json:"total_price"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

var addX = map[string]any{"id": "x", "title": "X", "image_url": "i", "price": 5}

func TestCart_GetEmptyCartReturnsEmptyArray(t *testing.T) {
	router, _, _ := setupCartAPI(t, cartuc.Options{})

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"items":[],"total_quantity":0,"total_price":0}`, rec.Body.String())
}

func TestCart_AddItemSuccess(t *testing.T) {
	router, storage, svc := setupCartAPI(t, cartuc.Options{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", addX)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "x", resp.Items[0].ID)
	require.Equal(t, 1, resp.Items[0].Quantity)

	raw, found, err := storage.Get(context.Background(), svc.Key())
	require.NoError(t, err)
	require.True(t, found)
	require.JSONEq(t, `[{"id":"x","title":"X","image_url":"i","price":5,"quantity":1}]`, raw)
}

func TestCart_AddExistingItemReturns200Unchanged(t *testing.T) {
	router, _, _ := setupCartAPI(t, cartuc.Options{})
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/cart/items", addX).Code)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		map[string]any{"id": "x", "title": "Other", "price": 50})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "X", resp.Items[0].Title)
	require.Equal(t, 5.0, resp.Items[0].Price)
}

func TestCart_AddItemValidation(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{name: "missing id", body: map[string]any{"title": "X", "price": 1}},
		{name: "missing title", body: map[string]any{"id": "x", "price": 1}},
		{name: "negative price", body: map[string]any{"id": "x", "title": "X", "price": -1}},
		{name: "not an object", body: []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, _ := setupCartAPI(t, cartuc.Options{})

			rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestCart_IncrementAndDecrement(t *testing.T) {
	router, _, _ := setupCartAPI(t, cartuc.Options{})
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/cart/items", addX).Code)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items/x/increment", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeCart(t, rec)
	require.Equal(t, 2, resp.Items[0].Quantity)
	require.Equal(t, 2, resp.TotalQuantity)
	require.InDelta(t, 10.0, resp.TotalPrice, 1e-9)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/cart/items/x/decrement", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, decodeCart(t, rec).Items[0].Quantity)
}

func TestCart_IncrementUnknownIsNoop(t *testing.T) {
	router, _, _ := setupCartAPI(t, cartuc.Options{})

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items/missing/increment", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Empty(t, decodeCart(t, rec).Items)
}

func TestCart_DecrementRemoveAtZeroPolicy(t *testing.T) {
	router, _, _ := setupCartAPI(t, cartuc.Options{DecrementPolicy: domcart.RemoveAtZero})
	require.Equal(t, http.StatusCreated, doJSON(t, router, http.MethodPost, "/api/v1/cart/items", addX).Code)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items/x/decrement", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Empty(t, decodeCart(t, rec).Items)
}

func TestCart_MalformedStoredCartReturns503(t *testing.T) {
	svc, err := cartuc.NewService(&failingStorage{value: "not json", found: true}, cartuc.Options{})
	require.NoError(t, err)
	router := NewAPI(Dependencies{CartService: svc}).Router()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code, rec.Body.String())
}

func TestCart_PersistFailureReturns500(t *testing.T) {
	svc, err := cartuc.NewService(&failingStorage{err: errors.New("disk full")}, cartuc.Options{})
	require.NoError(t, err)
	router := NewAPI(Dependencies{CartService: svc}).Router()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", addX)

	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), "disk full")
}

func TestCart_MissingProviderReturns500(t *testing.T) {
	router := NewAPI(Dependencies{}).Router()

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), domcart.ErrMissingProvider.Error())
}

func TestHealth(t *testing.T) {
	router, _, _ := setupCartAPI(t, cartuc.Options{})

	rec := doJSON(t, router, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
