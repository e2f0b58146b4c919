package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/TimBERNIC/tedvin-backend/internal/adapter/http/middleware"
	"github.com/TimBERNIC/tedvin-backend/internal/domain"
	"github.com/TimBERNIC/tedvin-backend/internal/usecase"
)

var testOwner = &domain.User{ID: "owner-1", Token: "token-a", Account: domain.Account{Username: "tim"}}

func withUser(req *http.Request, user *domain.User) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UserCtxKey, user))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestOfferHandler_Publish(t *testing.T) {
	offers := new(MockOfferService)
	h := NewOfferHandler(offers, zap.NewNop())

	published := &domain.Offer{
		ID:      "offer-1",
		Title:   "Blue jeans",
		Price:   25,
		Details: domain.ProductDetails{Condition: "good", Color: "blue"},
		Image:   &domain.MediaObject{ID: "key", URL: "http://store/key"},
		OwnerID: testOwner.ID,
		Owner:   testOwner,
	}
	offers.On("Publish", mock.Anything, testOwner, usecase.PublishInput{
		Title:     "Blue jeans",
		Price:     25,
		Condition: "good",
		Color:     "blue",
		Picture:   []byte("img"),
	}).Return(published, nil).Once()

	req := multipartRequest(http.MethodPost, "/offer/publish", map[string]string{
		"title":     "Blue jeans",
		"price":     "25",
		"condition": "good",
		"color":     "blue",
	}, map[string][]byte{"picture": []byte("img")})
	rec := httptest.NewRecorder()

	h.Publish(rec, withUser(req, testOwner))

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "offer-1", body["_id"])
	// The publish response never carried the name field.
	assert.NotContains(t, body, "product_name")
	assert.Contains(t, body, "product_details")
	owner, ok := body["owner"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "owner-1", owner["_id"])
	offers.AssertExpectations(t)
}

func TestOfferHandler_Publish_ValidationError(t *testing.T) {
	offers := new(MockOfferService)
	h := NewOfferHandler(offers, zap.NewNop())
	offers.On("Publish", mock.Anything, testOwner, mock.Anything).
		Return(nil, domain.ErrTitleTooLong).Once()

	req := multipartRequest(http.MethodPost, "/offer/publish", map[string]string{"title": "x"}, nil)
	rec := httptest.NewRecorder()

	h.Publish(rec, withUser(req, testOwner))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"Title length is not available"}`, rec.Body.String())
}

func TestOfferHandler_List(t *testing.T) {
	min, max := 10.0, 50.0
	expected := domain.OfferFilter{Title: "jeans", PriceMin: &min, PriceMax: &max, SortDesc: true, Page: 2}

	offers := new(MockOfferService)
	h := NewOfferHandler(offers, zap.NewNop())
	offers.On("Search", mock.Anything, expected).
		Return([]*domain.OfferPreview{{Title: "Blue jeans", Price: 25}}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/offers?title=jeans&priceMin=10&priceMax=50&sort=price-desc&page=2", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"product_name":"Blue jeans","product_price":25}]`, rec.Body.String())
	offers.AssertExpectations(t)
}

func TestOfferHandler_List_DefaultsAndBadNumbersIgnored(t *testing.T) {
	offers := new(MockOfferService)
	h := NewOfferHandler(offers, zap.NewNop())
	offers.On("Search", mock.Anything, domain.OfferFilter{Page: 1}).
		Return([]*domain.OfferPreview{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/offers?priceMin=abc&page=zero", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	offers.AssertExpectations(t)
}

func TestOfferHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		offers := new(MockOfferService)
		h := NewOfferHandler(offers, zap.NewNop())
		offer := &domain.Offer{ID: "offer-1", Title: "Blue jeans", Owner: testOwner}
		offers.On("GetByID", mock.Anything, "offer-1").Return(offer, nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/offers/offer-1", nil), "id", "offer-1")
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Blue jeans", body["product_name"])
	})

	t.Run("NotFound", func(t *testing.T) {
		offers := new(MockOfferService)
		h := NewOfferHandler(offers, zap.NewNop())
		offers.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrOfferNotFound).Once()

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/offers/missing", nil), "id", "missing")
		rec := httptest.NewRecorder()

		h.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Not Found"}`, rec.Body.String())
	})
}

func TestOfferHandler_Update(t *testing.T) {
	offers := new(MockOfferService)
	h := NewOfferHandler(offers, zap.NewNop())

	var captured usecase.UpdateInput
	updated := &domain.Offer{ID: "offer-1", Title: "Red jeans", Owner: testOwner}
	offers.On("Update", mock.Anything, "offer-1", mock.AnythingOfType("usecase.UpdateInput")).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).(usecase.UpdateInput)
		}).Return(updated, nil).Once()

	req := multipartRequest(http.MethodPut, "/offer/update?id=offer-1", map[string]string{
		"title": "Red jeans",
		"price": "30",
	}, nil)
	rec := httptest.NewRecorder()

	h.Update(rec, withUser(req, testOwner))

	assert.Equal(t, http.StatusCreated, rec.Code)

	// Only the submitted fields are present; the rest stay nil.
	require.NotNil(t, captured.Title)
	assert.Equal(t, "Red jeans", *captured.Title)
	require.NotNil(t, captured.Price)
	assert.Equal(t, 30.0, *captured.Price)
	assert.Nil(t, captured.Description)
	assert.Nil(t, captured.Color)
	assert.Nil(t, captured.Picture)
	offers.AssertExpectations(t)
}

func TestOfferHandler_Delete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		offers := new(MockOfferService)
		h := NewOfferHandler(offers, zap.NewNop())
		offers.On("Delete", mock.Anything, testOwner, "offer-1").Return(nil).Once()

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/offer/delete/offer-1", nil), "id", "offer-1")
		rec := httptest.NewRecorder()

		h.Delete(rec, withUser(req, testOwner))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Object delete"}`, rec.Body.String())
	})

	t.Run("NotOwner", func(t *testing.T) {
		offers := new(MockOfferService)
		h := NewOfferHandler(offers, zap.NewNop())
		offers.On("Delete", mock.Anything, testOwner, "offer-1").Return(domain.ErrUnauthorizedAction).Once()

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/offer/delete/offer-1", nil), "id", "offer-1")
		rec := httptest.NewRecorder()

		h.Delete(rec, withUser(req, testOwner))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"message":"Unauthorized action"}`, rec.Body.String())
	})
}
