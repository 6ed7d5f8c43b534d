package cart

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/angelmondragon/velora-storefront/api/controllers/cart/dto"
	"github.com/angelmondragon/velora-storefront/api/middleware"
	cartsvc "github.com/angelmondragon/velora-storefront/internal/cart"
	"github.com/angelmondragon/velora-storefront/internal/catalog"
	"github.com/angelmondragon/velora-storefront/internal/render"
	pkgerrors "github.com/angelmondragon/velora-storefront/pkg/errors"
)

type failingCartService struct {
	cartsvc.Service
	err error
}

func (s failingCartService) Snapshot(context.Context, string) (*cartsvc.State, error) {
	return nil, s.err
}

func newTestDeps(t *testing.T) (cartsvc.Service, *render.Renderer) {
	t.Helper()
	svc, err := cartsvc.NewService(cartsvc.ServiceParams{Store: cartsvc.NewMemoryStore()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	rnd, err := render.New(render.Options{})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return svc, rnd
}

func newRequest(method, target, body, sessionID string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := req.Context()
	if sessionID != "" {
		ctx = middleware.WithSessionID(ctx, sessionID)
	}
	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeMutation(t *testing.T, resp *httptest.ResponseRecorder) cartdto.MutationResponse {
	t.Helper()
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Data cartdto.MutationResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func decodeErrorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return envelope.Error.Code
}

func TestCartAddItemAndFetch(t *testing.T) {
	svc, rnd := newTestDeps(t)

	body := `{"id":"coat","name":"Cashmere Coat","brand":"Maison","price":1250,"image":"coat.jpg"}`
	resp := httptest.NewRecorder()
	CartAddItem(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", body, "s1", nil))
	data := decodeMutation(t, resp)
	if !data.Applied || data.Message != "Cashmere Coat added to cart!" {
		t.Fatalf("unexpected mutation %+v", data)
	}
	if data.Cart.Title != "Items in Your Bag (1)" || data.Cart.Lines[0].Size != "M" {
		t.Fatalf("unexpected cart %+v", data.Cart)
	}
	if data.InWishlist != nil {
		t.Fatal("expected in_wishlist omitted for cart additions")
	}

	resp = httptest.NewRecorder()
	CartFetch(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/cart", "", "s1", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data render.CartView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != "EGP 1,250.00" {
		t.Fatalf("unexpected total %q", envelope.Data.Total)
	}
}

func TestCartAddItemKeepsMultibyteName(t *testing.T) {
	svc, rnd := newTestDeps(t)

	name := strings.Repeat("معطف ", 30)
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > maxFieldLength || len(name) <= maxFieldLength {
		t.Fatalf("fixture should exceed %d bytes within %d runes", maxFieldLength, maxFieldLength)
	}

	body, err := json.Marshal(map[string]any{"id": "coat-ar", "name": name, "price": 900})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp := httptest.NewRecorder()
	CartAddItem(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", string(body), "s1", nil))
	data := decodeMutation(t, resp)
	if data.Message != name+" added to cart!" {
		t.Fatalf("unexpected message %q", data.Message)
	}

	state, err := svc.Snapshot(context.Background(), "s1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	stored := state.Items()[0].Name
	if stored != name || !utf8.ValidString(stored) {
		t.Fatalf("stored name has %d runes, want %d", utf8.RuneCountInString(stored), utf8.RuneCountInString(name))
	}
}

func TestCartAddItemValidation(t *testing.T) {
	svc, rnd := newTestDeps(t)

	cases := map[string]string{
		"missing id":     `{"name":"Coat","price":10}`,
		"negative price": `{"id":"a","price":-1}`,
		"unknown field":  `{"id":"a","discount":5}`,
		"malformed":      `{"id":`,
	}
	for name, body := range cases {
		resp := httptest.NewRecorder()
		CartAddItem(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items", body, "s1", nil))
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", name, resp.Code)
		}
		if code := decodeErrorCode(t, resp); code != string(pkgerrors.CodeValidation) {
			t.Fatalf("%s: unexpected code %s", name, code)
		}
	}
}

func TestCartRequiresSession(t *testing.T) {
	svc, rnd := newTestDeps(t)

	resp := httptest.NewRecorder()
	CartFetch(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/cart", "", "", nil))
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestCartAddFromCard(t *testing.T) {
	svc, rnd := newTestDeps(t)
	extractor := catalog.NewExtractor(nil)

	body, _ := json.Marshal(map[string]string{
		"html": `<div class="pro" data-product-id="bag"><img class="pro-img-primary" src="bag.jpg"><div class="description"><span>Velora</span><h5>Tote</h5><h4>EGP 3,400.50</h4></div></div>`,
	})
	resp := httptest.NewRecorder()
	CartAddFromCard(svc, extractor, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items/from-card", string(body), "s1", nil))
	data := decodeMutation(t, resp)
	if data.Message != "Tote added to cart!" || data.Cart.Lines[0].LinePrice != "EGP 3,400.50" {
		t.Fatalf("unexpected mutation %+v", data)
	}

	resp = httptest.NewRecorder()
	CartAddFromCard(svc, extractor, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items/from-card", `{"html":"<p>no card</p>"}`, "s1", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartQuantityEndpoints(t *testing.T) {
	svc, rnd := newTestDeps(t)
	if _, err := svc.AddToCart(context.Background(), "s1", cartsvc.Product{ID: "a", Name: "A", Price: 10}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	params := map[string]string{"itemId": "a"}

	resp := httptest.NewRecorder()
	CartUpdateQuantity(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPatch, "/api/v1/cart/items/a", `{"quantity":11}`, "s1", params))
	if data := decodeMutation(t, resp); data.Applied || data.Cart.Lines[0].Quantity != 1 {
		t.Fatalf("expected out-of-range quantity ignored, got %+v", data)
	}

	resp = httptest.NewRecorder()
	CartUpdateQuantity(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPatch, "/api/v1/cart/items/a", `{"quantity":10}`, "s1", params))
	if data := decodeMutation(t, resp); !data.Applied || data.Cart.Lines[0].Quantity != 10 {
		t.Fatalf("expected quantity 10, got %+v", data)
	}

	resp = httptest.NewRecorder()
	CartIncrease(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items/a/increase", "", "s1", params))
	if data := decodeMutation(t, resp); data.Applied {
		t.Fatalf("expected increase at max ignored, got %+v", data)
	}

	resp = httptest.NewRecorder()
	CartDecrease(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items/a/decrease", "", "s1", params))
	if data := decodeMutation(t, resp); !data.Applied || data.Cart.Lines[0].Quantity != 9 {
		t.Fatalf("expected quantity 9, got %+v", data)
	}

	resp = httptest.NewRecorder()
	CartUpdateQuantity(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPatch, "/api/v1/cart/items/a", `{}`, "s1", params))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing quantity got %d", resp.Code)
	}
}

func TestCartRemoveAndSaveForLater(t *testing.T) {
	svc, rnd := newTestDeps(t)
	ctx := context.Background()
	_, _ = svc.AddToCart(ctx, "s1", cartsvc.Product{ID: "a", Name: "A", Price: 10})
	_, _ = svc.AddToCart(ctx, "s1", cartsvc.Product{ID: "b", Name: "B", Price: 20})

	resp := httptest.NewRecorder()
	CartSaveForLater(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodPost, "/api/v1/cart/items/a/save-for-later", "", "s1", map[string]string{"itemId": "a"}))
	data := decodeMutation(t, resp)
	if data.InWishlist == nil || !*data.InWishlist || data.Cart.Title != "Items in Your Bag (1)" {
		t.Fatalf("unexpected save for later %+v", data)
	}

	resp = httptest.NewRecorder()
	CartRemoveItem(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodDelete, "/api/v1/cart/items/b", "", "s1", map[string]string{"itemId": "b"}))
	data = decodeMutation(t, resp)
	if !data.Applied || !data.Cart.Empty || data.Message != "Item removed from cart" {
		t.Fatalf("unexpected remove %+v", data)
	}

	resp = httptest.NewRecorder()
	CartRemoveItem(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodDelete, "/api/v1/cart/items/ghost", "", "s1", map[string]string{"itemId": "ghost"}))
	if data = decodeMutation(t, resp); data.Applied {
		t.Fatalf("expected no-op remove, got %+v", data)
	}
}

func TestCartBadge(t *testing.T) {
	svc, _ := newTestDeps(t)
	_, _ = svc.AddToCart(context.Background(), "s1", cartsvc.Product{ID: "a", Name: "A", Price: 10})
	_, _ = svc.AddToCart(context.Background(), "s1", cartsvc.Product{ID: "a", Name: "A", Price: 10})

	resp := httptest.NewRecorder()
	CartBadge(svc, nil).ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/cart/badge", "", "s1", nil))
	var envelope struct {
		Data render.BadgeView `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Count != 2 || envelope.Data.Display != "flex" {
		t.Fatalf("unexpected badge %+v", envelope.Data)
	}
}

func TestCartFetchDependencyError(t *testing.T) {
	_, rnd := newTestDeps(t)
	svc := failingCartService{err: pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("invalid character"), "decode veloraCart slot")}

	resp := httptest.NewRecorder()
	CartFetch(svc, rnd, nil).ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/cart", "", "s1", nil))
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
	if code := decodeErrorCode(t, resp); code != string(pkgerrors.CodeDependency) {
		t.Fatalf("unexpected code %s", code)
	}
}

func TestCartNilService(t *testing.T) {
	resp := httptest.NewRecorder()
	CartFetch(nil, nil, nil).ServeHTTP(resp, newRequest(http.MethodGet, "/api/v1/cart", "", "s1", nil))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
