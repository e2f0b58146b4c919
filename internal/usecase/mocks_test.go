package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) FindByToken(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockOfferRepository struct{ mock.Mock }

func (m *MockOfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}
func (m *MockOfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}
func (m *MockOfferRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockOfferRepository) FindByID(ctx context.Context, id string) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferRepository) FindByFilter(ctx context.Context, filter domain.OfferFilter) ([]*domain.OfferPreview, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.OfferPreview), args.Error(1)
}
func (m *MockOfferRepository) FindByOwner(ctx context.Context, ownerID string) ([]*domain.Offer, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Offer), args.Error(1)
}
func (m *MockOfferRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

type MockOfferCache struct{ mock.Mock }

func (m *MockOfferCache) Get(ctx context.Context, id string) (*domain.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferCache) Set(ctx context.Context, offer *domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}
func (m *MockOfferCache) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishOfferCreated(ctx context.Context, offer *domain.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishOfferDeleted(ctx context.Context, offerID string) error {
	args := m.Called(ctx, offerID)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishUserDeleted(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) SendEmail(to []string, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

// recordingStorage is a fake media store that records every call in order
// and can be armed to fail on specific calls. Cascade tests use it to verify
// the object-before-folder deletion ordering.
type recordingStorage struct {
	calls  *[]string
	failOn map[string]error
}

func newRecordingStorage(calls *[]string) *recordingStorage {
	return &recordingStorage{calls: calls, failOn: map[string]error{}}
}

func (s *recordingStorage) record(call string) error {
	*s.calls = append(*s.calls, call)
	return s.failOn[call]
}

func (s *recordingStorage) Upload(ctx context.Context, data []byte, folder string) (*domain.MediaObject, error) {
	if err := s.record("upload " + folder); err != nil {
		return nil, err
	}
	return &domain.MediaObject{ID: folder + "/object", URL: "http://store/" + folder + "/object"}, nil
}

func (s *recordingStorage) Delete(ctx context.Context, id string) error {
	return s.record("delete " + id)
}

func (s *recordingStorage) DeleteFolder(ctx context.Context, path string) error {
	return s.record("deleteFolder " + path)
}
