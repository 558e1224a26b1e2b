package services

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/notablehq/notable-backend/internal/config"
	"github.com/notablehq/notable-backend/internal/models"
	"github.com/notablehq/notable-backend/internal/security"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("inactive user")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	tokens *security.TokenManager
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		tokens: security.NewTokenManager(cfg.JWTSecret),
	}
}

// Authenticate looks up the user by email (exact, case-sensitive match)
// and checks the password. Both "no such user" and "wrong password"
// collapse into ErrInvalidCredentials so nothing leaks to the caller.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := security.VerifyPassword(password, user.HashedPassword)
	if err != nil {
		slog.Error("stored password hash is malformed", "user_id", user.ID.String(), "error", err.Error())
		return nil, ErrInvalidCredentials
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Login authenticates and issues an access token for the user. Inactive
// users can authenticate but not log in.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.Authenticate(email, password)
	if err != nil {
		return "", err
	}
	if !user.IsActive {
		return "", ErrUserInactive
	}

	return s.tokens.Issue(user.ID.String(), s.cfg.JWTAccessExpiry)
}

// Resolve turns a raw bearer token into the user it identifies.
// Token-level failures (malformed, bad signature, expired, bad subject)
// all surface as ErrInvalidCredentials; the user must exist and be
// active.
func (s *AuthService) Resolve(tokenString string) (*models.User, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			slog.Info("rejected expired token")
		}
		return nil, ErrInvalidCredentials
	}

	return s.ResolveSubject(claims.Subject)
}

// ResolveSubject loads the user for an already-verified sub claim.
func (s *AuthService) ResolveSubject(subject string) (*models.User, error) {
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return &user, nil
}

// GetUserByEmail is an exact-match lookup; returns nil when absent.
func (s *AuthService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
