package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/stretchr/testify/mock"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
	"github.com/TimBERNIC/tedvin-backend/internal/usecase"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Register(ctx context.Context, in usecase.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteAccount(ctx context.Context, requester *domain.User, targetID string) error {
	args := m.Called(ctx, requester, targetID)
	return args.Error(0)
}

type MockOfferService struct{ mock.Mock }

func (m *MockOfferService) Publish(ctx context.Context, owner *domain.User, in usecase.PublishInput) (*domain.Offer, error) {
	args := m.Called(ctx, owner, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferService) Search(ctx context.Context, filter domain.OfferFilter) ([]*domain.OfferPreview, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OfferPreview), args.Error(1)
}
func (m *MockOfferService) GetByID(ctx context.Context, id string) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferService) Update(ctx context.Context, id string, in usecase.UpdateInput) (*domain.Offer, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferService) Delete(ctx context.Context, requester *domain.User, id string) error {
	args := m.Called(ctx, requester, id)
	return args.Error(0)
}

// multipartRequest builds a multipart form request with string fields and
// optional file parts.
func multipartRequest(method, target string, fields map[string]string, files map[string][]byte) *http.Request {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		writer.WriteField(key, value)
	}
	for field, data := range files {
		part, _ := writer.CreateFormFile(field, field+".jpg")
		part.Write(data)
	}
	writer.Close()

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
