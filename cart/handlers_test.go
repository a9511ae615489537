package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"verdia/catalog"
	"verdia/globals"
	"verdia/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// asUser injects a user id the way the auth middleware does.
func asUser(userID string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if userID != "" {
			r = r.WithContext(context.WithValue(r.Context(), globals.UserIDKey, userID))
		}
		next(w, r, ps)
	}
}

func newTestRouter(userID string) (*httprouter.Router, *fakeStore, *fakeCatalog) {
	eng, store, cat := newTestEngine()
	h := NewHandler(eng)

	router := httprouter.New()
	router.POST("/api/cart", asUser(userID, h.AddToCart))
	router.GET("/api/cart", asUser(userID, h.GetCart))
	router.PATCH("/api/cart", asUser(userID, h.UpdateCartItem))
	router.DELETE("/api/cart", asUser(userID, h.RemoveFromCart))
	return router, store, cat
}

func doJSON(t *testing.T, router *httprouter.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAddToCartHTTP(t *testing.T) {
	router, _, cat := newTestRouter("u1")
	plantID := primitive.NewObjectID().Hex()
	cat.items[catKey(models.KindPlant, plantID, nil)] = &catalog.Resolved{
		Price: 50000, Name: "Monstera", Available: true, Stock: 10,
	}

	rec := doJSON(t, router, http.MethodPost, "/api/cart",
		`{"kind":"plant","itemId":"`+plantID+`","quantity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool        `json:"success"`
		Cart    models.Cart `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Cart.Lines, 1)
	assert.Equal(t, 2, resp.Cart.Lines[0].Quantity)
}

func TestAddToCartHTTPStatusMapping(t *testing.T) {
	router, _, cat := newTestRouter("u1")
	plantID := primitive.NewObjectID().Hex()
	cat.items[catKey(models.KindPlant, plantID, nil)] = &catalog.Resolved{
		Price: 50000, Name: "Monstera", Available: true, Stock: 1,
	}
	missing := primitive.NewObjectID().Hex()

	// validation error
	rec := doJSON(t, router, http.MethodPost, "/api/cart",
		`{"kind":"bonsai","itemId":"`+plantID+`","quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// not found
	rec = doJSON(t, router, http.MethodPost, "/api/cart",
		`{"kind":"plant","itemId":"`+missing+`","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// business rejection
	rec = doJSON(t, router, http.MethodPost, "/api/cart",
		`{"kind":"plant","itemId":"`+plantID+`","quantity":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// malformed JSON
	rec = doJSON(t, router, http.MethodPost, "/api/cart", `{"kind":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHTTPUnauthorized(t *testing.T) {
	router, _, _ := newTestRouter("")

	for _, method := range []string{http.MethodPost, http.MethodGet, http.MethodPatch, http.MethodDelete} {
		rec := doJSON(t, router, method, "/api/cart", `{}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, method)
	}
}

func TestGetCartHTTPEmpty(t *testing.T) {
	router, _, _ := newTestRouter("u1")

	rec := doJSON(t, router, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool              `json:"success"`
		Items   []models.CartLine `json:"items"`
		Skipped int               `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Items)
	assert.Equal(t, 0, resp.Skipped)
}

func TestGetCartHTTPReportsSkipped(t *testing.T) {
	router, store, _ := newTestRouter("u1")
	valid := primitive.NewObjectID().Hex()
	store.carts["u1"] = &models.Cart{UserID: "u1", Lines: []models.CartLine{
		{Kind: models.KindPlant, ItemID: valid, Quantity: 1},
		{Kind: models.KindPlant, ItemID: "broken", Quantity: 1},
	}}

	rec := doJSON(t, router, http.MethodGet, "/api/cart", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items   []models.CartLine `json:"items"`
		Skipped int               `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 1, resp.Skipped)
}

func TestUpdateCartItemHTTP(t *testing.T) {
	router, store, cat := newTestRouter("u1")
	plantID := primitive.NewObjectID().Hex()
	cat.items[catKey(models.KindPlant, plantID, nil)] = &catalog.Resolved{
		Price: 50000, Name: "Monstera", Available: true, Stock: 10,
	}
	store.carts["u1"] = &models.Cart{UserID: "u1", Lines: []models.CartLine{
		{Kind: models.KindPlant, ItemID: plantID, Quantity: 2},
	}}

	rec := doJSON(t, router, http.MethodPatch, "/api/cart",
		`{"kind":"plant","itemId":"`+plantID+`","quantity":4}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 4, store.carts["u1"].Lines[0].Quantity)

	// no matching line
	other := primitive.NewObjectID().Hex()
	cat.items[catKey(models.KindPlant, other, nil)] = &catalog.Resolved{
		Price: 10000, Name: "Pothos", Available: true, Stock: 10,
	}
	rec = doJSON(t, router, http.MethodPatch, "/api/cart",
		`{"kind":"plant","itemId":"`+other+`","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCartHTTP(t *testing.T) {
	router, store, cat := newTestRouter("u1")
	plantID := primitive.NewObjectID().Hex()
	cat.items[catKey(models.KindPlant, plantID, nil)] = &catalog.Resolved{
		Price: 50000, Name: "Monstera", Available: true, Stock: 10,
	}
	store.carts["u1"] = &models.Cart{UserID: "u1", Lines: []models.CartLine{
		{Kind: models.KindPlant, ItemID: plantID, Quantity: 2},
	}}

	// remove one line
	rec := doJSON(t, router, http.MethodDelete, "/api/cart",
		`{"kind":"plant","itemId":"`+plantID+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, store.carts["u1"].Lines)

	// clearAll, twice: both succeed
	rec = doJSON(t, router, http.MethodDelete, "/api/cart", `{"clearAll":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cart cleared")

	rec = doJSON(t, router, http.MethodDelete, "/api/cart", `{"clearAll":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cart already empty")
}

func TestClearAllEmitsOnlyWhenDeleted(t *testing.T) {
	eng, store, _ := newTestEngine()
	h := NewHandler(eng)

	events := make(chan string, 4)
	h.emit = func(ctx context.Context, eventName string, content models.Index) {
		events <- eventName
	}

	router := httprouter.New()
	router.DELETE("/api/cart", asUser("u1", h.RemoveFromCart))

	store.carts["u1"] = &models.Cart{UserID: "u1", Lines: []models.CartLine{
		{Kind: models.KindPlant, ItemID: primitive.NewObjectID().Hex(), Quantity: 1},
	}}

	rec := doJSON(t, router, http.MethodDelete, "/api/cart", `{"clearAll":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	select {
	case name := <-events:
		assert.Equal(t, "cart-cleared", name)
	case <-time.After(time.Second):
		t.Fatal("expected cart-cleared event")
	}

	// clearing an already-empty cart must not publish anything
	rec = doJSON(t, router, http.MethodDelete, "/api/cart", `{"clearAll":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	select {
	case name := <-events:
		t.Fatalf("unexpected event %q for no-op clear", name)
	case <-time.After(50 * time.Millisecond):
	}
}
