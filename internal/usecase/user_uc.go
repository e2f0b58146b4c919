package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/pbkdf2"

	"github.com/TimBERNIC/tedvin-backend/internal/domain"
	"github.com/TimBERNIC/tedvin-backend/internal/mailer"
)

const (
	pbkdf2Iterations = 4096
	pbkdf2KeyLength  = 32
)

type UserUsecase struct {
	users     domain.UserRepository
	offers    domain.OfferRepository
	storage   domain.MediaStorage
	cache     OfferCache
	publisher EventPublisher
	mail      mailer.Sender
	namespace string
	logger    *zap.Logger
}

func NewUserUsecase(
	users domain.UserRepository,
	offers domain.OfferRepository,
	storage domain.MediaStorage,
	cache OfferCache,
	publisher EventPublisher,
	mail mailer.Sender,
	namespace string,
	logger *zap.Logger,
) *UserUsecase {
	return &UserUsecase{
		users:     users,
		offers:    offers,
		storage:   storage,
		cache:     cache,
		publisher: publisher,
		mail:      mail,
		namespace: namespace,
		logger:    logger.Named("UserUsecase"),
	}
}

type RegisterInput struct {
	Username   string
	Email      string
	Password   string
	Newsletter bool
	Avatar     []byte
}

// Register creates a new account. The avatar is uploaded to a folder scoped
// by the new user's id before the record is persisted, so a registered user
// always carries a non-nil avatar reference.
func (uc *UserUsecase) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" || len(in.Avatar) == 0 {
		return nil, domain.ErrMissingParameters
	}

	if _, err := uc.users.FindByEmail(ctx, in.Email); err == nil {
		uc.logger.Warn("Registration with already registered email", zap.String("email", in.Email))
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	salt := uuid.NewString()
	user := &domain.User{
		ID:         domain.NewID(),
		Email:      in.Email,
		Account:    domain.Account{Username: in.Username},
		Newsletter: in.Newsletter,
		Token:      uuid.NewString(),
		Salt:       salt,
		Hash:       hashPassword(in.Password, salt),
	}

	avatar, err := uc.storage.Upload(ctx, in.Avatar, domain.UserFolder(uc.namespace, user.ID))
	if err != nil {
		uc.logger.Error("Avatar upload failed", zap.String("email", in.Email), zap.Error(err))
		return nil, err
	}
	user.Account.Avatar = avatar

	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.logger.Info("User registered", zap.String("userID", user.ID), zap.String("email", user.Email))

	if in.Newsletter && uc.mail != nil {
		subject := "Welcome to Tedvin"
		body := fmt.Sprintf("Hello %s,\n\nYour account has been created and you are subscribed to our newsletter.", in.Username)
		if err := uc.mail.SendEmail([]string{user.Email}, subject, body); err != nil {
			uc.logger.Warn("Failed to send welcome email", zap.String("email", user.Email), zap.Error(err))
		}
	}

	return user, nil
}

// Login verifies credentials. Unknown emails and wrong passwords fail with
// the same error so the two cases cannot be told apart.
func (uc *UserUsecase) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if hashPassword(password, user.Salt) != user.Hash {
		return nil, domain.ErrInvalidCredentials
	}
	uc.logger.Info("User logged in", zap.String("userID", user.ID))
	return user, nil
}

// Authenticate resolves a bearer token to its user by exact match. Tokens
// never expire; they die with the account.
func (uc *UserUsecase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	user, err := uc.users.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes a user, every offer they own, and all remote media
// tied to either. The remote store rejects deleting a non-empty folder, so
// each step deletes objects before their folder, and listing cleanup runs
// before local record removal: a crash mid-cascade leaves remote orphans
// rather than user-visible dangling records.
//
// Remote deletions are best-effort; a failure is logged and the cascade
// continues. Nothing is rolled back.
func (uc *UserUsecase) DeleteAccount(ctx context.Context, requester *domain.User, targetID string) error {
	if requester == nil || requester.ID != targetID {
		return domain.ErrUnauthorized
	}

	user, err := uc.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	owned, err := uc.offers.FindByOwner(ctx, user.ID)
	if err != nil {
		return err
	}

	for _, offer := range owned {
		if offer.Image != nil {
			if err := uc.storage.Delete(ctx, offer.Image.ID); err != nil {
				uc.logger.Warn("Cascade: failed to delete offer image", zap.String("offerID", offer.ID), zap.Error(err))
			}
		}
		if err := uc.storage.DeleteFolder(ctx, domain.OfferFolder(uc.namespace, offer.ID)); err != nil {
			uc.logger.Warn("Cascade: failed to delete offer folder", zap.String("offerID", offer.ID), zap.Error(err))
		}
		if uc.cache != nil {
			if err := uc.cache.Delete(ctx, offer.ID); err != nil {
				uc.logger.Warn("Cascade: failed to invalidate offer cache", zap.String("offerID", offer.ID), zap.Error(err))
			}
		}
	}

	deleted, err := uc.offers.DeleteByOwner(ctx, user.ID)
	if err != nil {
		uc.logger.Error("Cascade: failed to bulk-delete offers", zap.String("userID", user.ID), zap.Error(err))
		return err
	}

	if user.Account.Avatar != nil {
		if err := uc.storage.Delete(ctx, user.Account.Avatar.ID); err != nil {
			uc.logger.Warn("Cascade: failed to delete avatar", zap.String("userID", user.ID), zap.Error(err))
		}
	}
	if err := uc.storage.DeleteFolder(ctx, domain.UserFolder(uc.namespace, user.ID)); err != nil {
		uc.logger.Warn("Cascade: failed to delete user folder", zap.String("userID", user.ID), zap.Error(err))
	}

	if err := uc.users.Delete(ctx, user.ID); err != nil {
		uc.logger.Error("Cascade: failed to delete user record", zap.String("userID", user.ID), zap.Error(err))
		return err
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishUserDeleted(ctx, user.ID); err != nil {
			uc.logger.Warn("Failed to publish user.deleted event", zap.String("userID", user.ID), zap.Error(err))
		}
	}

	uc.logger.Info("Account deleted", zap.String("userID", user.ID), zap.Int64("offers_deleted", deleted))
	return nil
}

func hashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLength, sha256.New)
	return base64.StdEncoding.EncodeToString(key)
}
