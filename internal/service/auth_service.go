package service

import (
	"context"
	"log"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamhive/teamhive-backend/internal/config"
	"github.com/teamhive/teamhive-backend/internal/email"
	"github.com/teamhive/teamhive-backend/internal/repository"
	"github.com/teamhive/teamhive-backend/internal/types"
)

// TokenWithExpiry pairs a signed JWT with its expiry time
type TokenWithExpiry struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

// AuthTokens is an access/refresh token pair
type AuthTokens struct {
	Access  TokenWithExpiry `json:"access"`
	Refresh TokenWithExpiry `json:"refresh"`
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*repository.User, error)
	Login(ctx context.Context, email, password string) (*repository.User, error)
	Logout(ctx context.Context, refreshToken string) error
	GenerateAuthTokens(ctx context.Context, userID string) (*AuthTokens, error)
	RefreshAuth(ctx context.Context, refreshToken string) (*AuthTokens, error)
	ValidateAccessToken(ctx context.Context, tokenString string) (*repository.User, error)
	BlacklistToken(ctx context.Context, tokenString string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, tokenString, newPassword string) error
	SendVerificationEmail(ctx context.Context, userID string) error
	VerifyEmail(ctx context.Context, tokenString string) error
}

type authService struct {
	cfg       *config.Config
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	emailSvc  *email.Service
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, tokenRepo repository.TokenRepository, emailSvc *email.Service) AuthService {
	return &authService{cfg: cfg, userRepo: userRepo, tokenRepo: tokenRepo, emailSvc: emailSvc}
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrWeakPassword
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}
	return nil
}

func (s *authService) Register(ctx context.Context, name, emailAddr, password string) (*repository.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &repository.User{
		Name:     name,
		Email:    emailAddr,
		Password: string(hashed),
		Role:     "user",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if err == repository.ErrDuplicate {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, emailAddr, password string) (*repository.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	row, err := s.tokenRepo.FindByToken(ctx, refreshToken, types.TokenRefresh)
	if err != nil {
		return err
	}
	if row == nil || row.Blacklisted {
		return ErrNotFound
	}
	return s.tokenRepo.DeleteByID(ctx, row.ID)
}

// GenerateToken signs a JWT for the given user and type
func (s *authService) GenerateToken(userID string, expires time.Time, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"type": tokenType,
		"iat":  time.Now().Unix(),
		"exp":  expires.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *authService) saveToken(ctx context.Context, tokenString, userID, tokenType string, expires time.Time) error {
	err := s.tokenRepo.Create(ctx, &repository.Token{
		Token:   tokenString,
		UserID:  userID,
		Type:    tokenType,
		Expires: expires,
	})
	if err == repository.ErrInvalidTokenType {
		return ErrInvalidTokenType
	}
	return err
}

// verifyToken parses the JWT, checks its type claim and, for persisted
// types, requires a live non-blacklisted DB row.
func (s *authService) verifyToken(ctx context.Context, tokenString, expectedType string) (*repository.Token, string, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, "", ErrInvalidToken
	}
	if claimType, _ := claims["type"].(string); claimType != expectedType {
		return nil, "", ErrInvalidToken
	}
	userID, _ := claims["sub"].(string)
	if userID == "" {
		return nil, "", ErrInvalidToken
	}

	if !types.PersistedTokenTypes[expectedType] {
		return nil, userID, nil
	}

	row, err := s.tokenRepo.FindByToken(ctx, tokenString, expectedType)
	if err != nil {
		return nil, "", err
	}
	if row == nil || row.Blacklisted || row.UserID != userID {
		return nil, "", ErrInvalidToken
	}
	if time.Now().After(row.Expires) {
		return nil, "", ErrInvalidToken
	}
	return row, userID, nil
}

func (s *authService) GenerateAuthTokens(ctx context.Context, userID string) (*AuthTokens, error) {
	accessExpires := time.Now().Add(time.Duration(s.cfg.AccessExpiryMinutes) * time.Minute)
	accessToken, err := s.GenerateToken(userID, accessExpires, types.TokenAccess)
	if err != nil {
		return nil, err
	}

	refreshExpires := time.Now().Add(time.Duration(s.cfg.RefreshExpiryDays) * 24 * time.Hour)
	refreshToken, err := s.GenerateToken(userID, refreshExpires, types.TokenRefresh)
	if err != nil {
		return nil, err
	}
	if err := s.saveToken(ctx, refreshToken, userID, types.TokenRefresh, refreshExpires); err != nil {
		return nil, err
	}

	return &AuthTokens{
		Access:  TokenWithExpiry{Token: accessToken, Expires: accessExpires},
		Refresh: TokenWithExpiry{Token: refreshToken, Expires: refreshExpires},
	}, nil
}

func (s *authService) RefreshAuth(ctx context.Context, refreshToken string) (*AuthTokens, error) {
	row, userID, err := s.verifyToken(ctx, refreshToken, types.TokenRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	// Rotate: the old refresh token is consumed
	if err := s.tokenRepo.DeleteByID(ctx, row.ID); err != nil {
		return nil, err
	}
	return s.GenerateAuthTokens(ctx, user.ID)
}

func (s *authService) ValidateAccessToken(ctx context.Context, tokenString string) (*repository.User, error) {
	_, userID, err := s.verifyToken(ctx, tokenString, types.TokenAccess)
	if err != nil {
		return nil, ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// BlacklistToken marks a stored token as revoked without deleting it,
// keeping the row for audit until the expiry purge collects it.
func (s *authService) BlacklistToken(ctx context.Context, tokenString string) error {
	rows, err := s.tokenRepo.Blacklist(ctx, tokenString)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *authService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	expires := time.Now().Add(time.Duration(s.cfg.ResetPasswordExpiryMinutes) * time.Minute)
	tokenString, err := s.GenerateToken(user.ID, expires, types.TokenResetPassword)
	if err != nil {
		return err
	}
	if err := s.saveToken(ctx, tokenString, user.ID, types.TokenResetPassword, expires); err != nil {
		return err
	}

	if s.emailSvc != nil {
		go func() {
			if err := s.emailSvc.SendPasswordReset(user.Email, user.Name, tokenString); err != nil {
				log.Printf("⚠️ Failed to send password reset email to %s: %v", user.Email, err)
			}
		}()
	}
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, tokenString, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	_, userID, err := s.verifyToken(ctx, tokenString, types.TokenResetPassword)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// All outstanding tokens for the user are revoked on reset
	if _, err := s.tokenRepo.DeleteByUserAndType(ctx, user.ID, types.TokenResetPassword); err != nil {
		return err
	}
	if _, err := s.tokenRepo.DeleteByUserAndType(ctx, user.ID, types.TokenRefresh); err != nil {
		return err
	}
	return nil
}

func (s *authService) SendVerificationEmail(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	expires := time.Now().Add(time.Duration(s.cfg.VerifyEmailExpiryMinutes) * time.Minute)
	tokenString, err := s.GenerateToken(user.ID, expires, types.TokenVerifyEmail)
	if err != nil {
		return err
	}
	if err := s.saveToken(ctx, tokenString, user.ID, types.TokenVerifyEmail, expires); err != nil {
		return err
	}

	if s.emailSvc != nil {
		go func() {
			if err := s.emailSvc.SendEmailVerification(user.Email, user.Name, tokenString); err != nil {
				log.Printf("⚠️ Failed to send verification email to %s: %v", user.Email, err)
			}
		}()
	}
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, tokenString string) error {
	_, userID, err := s.verifyToken(ctx, tokenString, types.TokenVerifyEmail)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidToken
	}

	user.IsEmailVerified = true
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	_, err = s.tokenRepo.DeleteByUserAndType(ctx, user.ID, types.TokenVerifyEmail)
	return err
}
