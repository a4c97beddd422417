package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"devconnect-service/internal/config"
	"devconnect-service/internal/event"
	"devconnect-service/internal/models"
	"devconnect-service/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"golang.org/x/crypto/bcrypt"
)

func bsonObjectID(hexID string) (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(hexID)
}

const bcryptCost = 10

// UserStore is the persistence surface for the user directory.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

type UserService struct {
	store     UserStore
	publisher event.Publisher
	jwtConfig config.JWTConfig
}

func NewUserService(store UserStore, publisher event.Publisher, jwtConfig config.JWTConfig) *UserService {
	return &UserService{
		store:     store,
		publisher: publisher,
		jwtConfig: jwtConfig,
	}
}

// Register creates a new user with a bcrypt password hash and a gravatar
// avatar derived from the email.
func (s *UserService) Register(ctx context.Context, in *models.RegisterInput) (*models.User, error) {
	if errs := validation.ValidateRegisterInput(in); errs != nil {
		return nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.store.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       GravatarURL(email),
	}

	created, err := s.store.Insert(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if s.publisher != nil {
		evt := &models.UserRegisteredEvent{
			EventType: models.EventTypeUserRegistered,
			UserID:    created.ID.Hex(),
			Name:      created.Name,
			Email:     created.Email,
			Avatar:    created.Avatar,
			Timestamp: time.Now().Unix(),
		}
		if err := s.publisher.PublishUserEvent(evt); err != nil {
			log.Printf("Failed to publish user registered event: %v", err)
		}
	}

	return created, nil
}

// Login verifies the credentials and issues a signed token carrying the user's
// id, name and avatar.
func (s *UserService) Login(ctx context.Context, in *models.LoginInput) (string, *models.User, error) {
	if errs := validation.ValidateLoginInput(in); errs != nil {
		return "", nil, errs
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Summary resolves a user's display name and avatar for profile decoration.
func (s *UserService) Summary(ctx context.Context, userID string) (*models.UserSummary, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &models.UserSummary{
		ID:     user.ID.Hex(),
		Name:   user.Name,
		Avatar: user.Avatar,
	}, nil
}

// SyncFromEvent keeps the local directory in step with registrations that
// happened in another service.
func (s *UserService) SyncFromEvent(ctx context.Context, evt *models.UserRegisteredEvent) error {
	user := &models.User{
		Name:   evt.Name,
		Email:  evt.Email,
		Avatar: evt.Avatar,
	}
	if evt.UserID != "" {
		id, err := bsonObjectID(evt.UserID)
		if err != nil {
			return fmt.Errorf("invalid user ID in event: %w", err)
		}
		user.ID = id
	}
	if user.Avatar == "" {
		user.Avatar = GravatarURL(user.Email)
	}

	return s.store.Upsert(ctx, user)
}

func (s *UserService) generateToken(user *models.User) (string, error) {
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.jwtConfig.Lifetime)),
			Issuer:    s.jwtConfig.Issuer,
			Subject:   user.ID.Hex(),
		},
		UserID: user.ID.Hex(),
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", fmt.Errorf("error generating token string: %w", err)
	}
	return signed, nil
}

// GravatarURL builds the gravatar avatar URL for an email address
// (size 200, rating pg, mystery-man fallback).
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=200&r=pg&d=mm", hex.EncodeToString(sum[:]))
}
