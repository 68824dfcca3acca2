package service

import (
	"context"
	"errors"
	"time"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrAuthenticationFailed = errors.New("authentication failed: invalid username or password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
)

// --- Service Interface ---
//
// There is no self-registration: credentials come into existence only through
// the identity reconciler, in lockstep with a client or trainer profile.
type AuthService interface {
	Login(ctx context.Context, username, password string) (token string, cred *domain.Credential, err error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	credentialRepo repository.CredentialRepository
	hasher         PasswordHasher
	jwtSecret      string
	jwtExpiration  time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(credentialRepo repository.CredentialRepository, hasher PasswordHasher, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	return &authService{
		credentialRepo: credentialRepo,
		hasher:         hasher,
		jwtSecret:      jwtSecret,
		jwtExpiration:  jwtExpiration,
	}
}

// Login authenticates a credential by username and issues a JWT.
func (s *authService) Login(ctx context.Context, username, password string) (token string, cred *domain.Credential, err error) {
	if username == "" || password == "" {
		err = errors.New("username and password cannot be empty")
		return
	}

	cred, err = s.credentialRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = ErrAuthenticationFailed // Unknown username maps to auth failure
			cred = nil
			return
		}
		cred = nil
		return
	}

	if err = s.hasher.Compare(cred.PasswordHash, password); err != nil {
		err = ErrAuthenticationFailed
		cred = nil
		return
	}

	token, err = s.generateJWT(cred)
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	// Clear password hash before returning the credential
	cred.PasswordHash = ""
	return token, cred, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID   string      `json:"uid"`
	Username string      `json:"uname"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// generateJWT creates a new JWT token for the given credential.
func (s *authService) generateJWT(cred *domain.Credential) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID:   cred.ID.Hex(),
		Username: cred.Username,
		Role:     cred.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   cred.ID.Hex(),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "membership-server",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
