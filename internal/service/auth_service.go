package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"athletrack/backend/internal/domain"
	"athletrack/backend/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

const minPasswordLength = 8

// JWTConfig holds the token signing parameters.
type JWTConfig struct {
	Secret     string
	Issuer     string
	Audience   string
	Expiration time.Duration
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginResult is the issued token and the instant it stops being valid.
type LoginResult struct {
	Token      string
	Expiration time.Time
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// ParseToken verifies signature, expiry, issuer and audience and returns
	// the user id carried by the token.
	ParseToken(tokenString string) (int64, error)
}

// authService implements the AuthService interface.
type authService struct {
	userRepo repository.UserRepository
	jwt      JWTConfig
	now      func() time.Time
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, cfg JWTConfig) AuthService {
	if cfg.Secret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = 3 * time.Hour
	}
	return &authService{
		userRepo: userRepo,
		jwt:      cfg,
		now:      time.Now,
	}
}

// validatePassword enforces the password policy: minimum length plus at least
// one digit, one lower-case and one upper-case letter.
func validatePassword(password string) error {
	var problems []string
	if len(password) < minPasswordLength {
		problems = append(problems, "password must be at least 8 characters long")
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}
	if !hasDigit {
		problems = append(problems, "password must contain a digit")
	}
	if !hasLower {
		problems = append(problems, "password must contain a lowercase letter")
	}
	if !hasUpper {
		problems = append(problems, "password must contain an uppercase letter")
	}

	if len(problems) > 0 {
		return validationError("%s", strings.Join(problems, "; "))
	}
	return nil
}

// Register handles new user registration.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return nil, validationError("email is required")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		DateJoined:   s.now().UTC(),
	}

	// The unique index catches a concurrent registration that slipped past
	// the lookup above.
	if _, err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication and JWT generation.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, ErrAuthenticationFailed
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrAuthenticationFailed
	}

	result, err := s.generateJWT(user)
	if err != nil {
		return nil, ErrTokenGeneration
	}
	return result, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given user.
func (s *authService) generateJWT(user *domain.User) (*LoginResult, error) {
	now := s.now()
	expirationTime := now.Add(s.jwt.Expiration)

	claims := &jwtClaims{
		UserID: strconv.FormatInt(user.ID, 10),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.jwt.Issuer,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if s.jwt.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.jwt.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwt.Secret))
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: signedToken, Expiration: expirationTime.UTC()}, nil
}

func (s *authService) ParseToken(tokenString string) (int64, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwt.Secret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	if s.jwt.Issuer != "" && !claims.VerifyIssuer(s.jwt.Issuer, true) {
		return 0, ErrInvalidToken
	}
	if s.jwt.Audience != "" && !claims.VerifyAudience(s.jwt.Audience, true) {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
