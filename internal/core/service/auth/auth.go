package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hazard-watch/internal/config"
	"hazard-watch/internal/core/domain"
	"hazard-watch/internal/core/port"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type authService struct {
	metadata port.MetadataStore
	cfg      config.AuthConfig
	logger   *slog.Logger
}

// NewAuthService creates the credential service backed by the metadata store
func NewAuthService(meta port.MetadataStore, cfg config.AuthConfig, logger *slog.Logger) port.AuthService {
	return &authService{
		metadata: meta,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register creates an account and returns a signed token for it
func (a *authService) Register(ctx context.Context, username, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	userID, err := a.metadata.CreateUser(ctx, username, string(hash), domain.RoleUser)
	if err != nil {
		return "", err
	}
	a.logger.Info("user registered", "username", username, "user_id", userID)

	return a.issue(userID, username)
}

// Authenticate verifies the password and returns a signed token
func (a *authService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := a.metadata.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	return a.issue(user.ID, user.Username)
}

// ValidateToken parses a token and recovers the caller identity
func (a *authService) ValidateToken(token string) (*domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(a.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", domain.ErrUnauthorized)
	}

	return &domain.Identity{UserID: userID, Username: c.Username}, nil
}

func (a *authService) issue(userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.TokenTTL)),
		},
	})

	signed, err := token.SignedString([]byte(a.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
