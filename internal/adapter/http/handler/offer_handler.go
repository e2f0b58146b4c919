package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/TimBERNIC/tedvin-backend/internal/adapter/http/middleware"
	"github.com/TimBERNIC/tedvin-backend/internal/domain"
	"github.com/TimBERNIC/tedvin-backend/internal/usecase"
)

type OfferService interface {
	Publish(ctx context.Context, owner *domain.User, in usecase.PublishInput) (*domain.Offer, error)
	Search(ctx context.Context, filter domain.OfferFilter) ([]*domain.OfferPreview, error)
	GetByID(ctx context.Context, id string) (*domain.Offer, error)
	Update(ctx context.Context, id string, in usecase.UpdateInput) (*domain.Offer, error)
	Delete(ctx context.Context, requester *domain.User, id string) error
}

type OfferHandler struct {
	offers OfferService
	logger *zap.Logger
}

func NewOfferHandler(offers OfferService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{
		offers: offers,
		logger: logger.Named("OfferHandler"),
	}
}

// ownerView is the reduced owner projection embedded in offer responses.
type ownerView struct {
	ID      string         `json:"_id"`
	Account domain.Account `json:"account"`
}

type offerResponse struct {
	ID          string              `json:"_id"`
	Name        string              `json:"product_name"`
	Description string              `json:"product_description"`
	Price       float64             `json:"product_price"`
	Details     []map[string]string `json:"product_details"`
	Image       *domain.MediaObject `json:"product_image"`
	Owner       *ownerView          `json:"owner"`
}

// publishResponse mirrors offerResponse minus the name field; the publish
// endpoint has always answered without it and clients rely on the shape.
type publishResponse struct {
	ID          string              `json:"_id"`
	Description string              `json:"product_description"`
	Price       float64             `json:"product_price"`
	Details     []map[string]string `json:"product_details"`
	Image       *domain.MediaObject `json:"product_image"`
	Owner       *ownerView          `json:"owner"`
}

func toOwnerView(owner *domain.User) *ownerView {
	if owner == nil {
		return nil
	}
	return &ownerView{ID: owner.ID, Account: owner.Account}
}

func toOfferResponse(offer *domain.Offer) offerResponse {
	return offerResponse{
		ID:          offer.ID,
		Name:        offer.Title,
		Description: offer.Description,
		Price:       offer.Price,
		Details:     offer.Details.Slots(),
		Image:       offer.Image,
		Owner:       toOwnerView(offer.Owner),
	}
}

func (h *OfferHandler) Publish(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, domain.ErrMissingParameters)
		return
	}

	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	in := usecase.PublishInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
		Condition:   r.FormValue("condition"),
		Location:    r.FormValue("location"),
		Brand:       r.FormValue("brand"),
		Size:        r.FormValue("size"),
		Color:       r.FormValue("color"),
		Picture:     readFormFile(r, "picture"),
	}

	offer, err := h.offers.Publish(r.Context(), owner, in)
	if err != nil {
		h.logger.Warn("Publish failed", zap.String("ownerID", owner.ID), zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, publishResponse{
		ID:          offer.ID,
		Description: offer.Description,
		Price:       offer.Price,
		Details:     offer.Details.Slots(),
		Image:       offer.Image,
		Owner:       toOwnerView(offer.Owner),
	})
}

type offerPreviewResponse struct {
	Name  string  `json:"product_name"`
	Price float64 `json:"product_price"`
}

func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)

	previews, err := h.offers.Search(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]offerPreviewResponse, 0, len(previews))
	for _, p := range previews {
		out = append(out, offerPreviewResponse{Name: p.Title, Price: p.Price})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OfferHandler) Get(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offers.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOfferResponse(offer))
}

// Update targets the offer named by the id query parameter; that has always
// been this route's contract, unlike delete which takes a path parameter.
func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if err := r.ParseForm(); err != nil {
			writeError(w, domain.ErrMissingParameters)
			return
		}
	}

	in := usecase.UpdateInput{
		Title:       formString(r, "title"),
		Description: formString(r, "description"),
		Price:       formFloat(r, "price"),
		Condition:   formString(r, "condition"),
		Location:    formString(r, "location"),
		Brand:       formString(r, "brand"),
		Size:        formString(r, "size"),
		Color:       formString(r, "color"),
		Picture:     readFormFile(r, "picture"),
	}

	offer, err := h.offers.Update(r.Context(), id, in)
	if err != nil {
		h.logger.Warn("Update failed", zap.String("offerID", id), zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOfferResponse(offer))
}

func (h *OfferHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requester, _ := middleware.UserFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := h.offers.Delete(r.Context(), requester, id); err != nil {
		h.logger.Warn("Offer deletion failed", zap.String("offerID", id), zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Object delete"})
}

// filterFromQuery maps the search query parameters onto an OfferFilter.
// Invalid numeric values are ignored rather than rejected.
func filterFromQuery(r *http.Request) domain.OfferFilter {
	q := r.URL.Query()
	filter := domain.OfferFilter{Title: q.Get("title"), Page: 1}

	if v, err := strconv.ParseFloat(q.Get("priceMin"), 64); err == nil {
		filter.PriceMin = &v
	}
	if v, err := strconv.ParseFloat(q.Get("priceMax"), 64); err == nil {
		filter.PriceMax = &v
	}
	if sort := q.Get("sort"); sort != "" {
		filter.SortDesc = strings.TrimPrefix(sort, "price-") == "desc"
	}
	if page, err := strconv.ParseInt(q.Get("page"), 10, 64); err == nil && page > 0 {
		filter.Page = page
	}
	return filter
}

func formString(r *http.Request, key string) *string {
	if values, ok := r.Form[key]; ok && len(values) > 0 {
		return &values[0]
	}
	return nil
}

func formFloat(r *http.Request, key string) *float64 {
	s := formString(r, key)
	if s == nil {
		return nil
	}
	v, err := strconv.ParseFloat(*s, 64)
	if err != nil {
		return nil
	}
	return &v
}
