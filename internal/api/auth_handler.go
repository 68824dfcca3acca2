package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CredentialResponse excludes sensitive info like password hash
type CredentialResponse struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  CredentialResponse `json:"user"`
}

// --- Handler Methods ---

// Login authenticates a credential and returns a JWT token.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	token, cred, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else if errors.Is(err, service.ErrTokenGeneration) {
			abortWithError(c, http.StatusInternalServerError, "Could not process login")
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  mapCredentialToResponse(cred),
	})
}

// CurrentIdentity returns the username and role of the authenticated
// credential, straight from the verified token claims. Unlike /clients/me it
// works for any role and never touches the stores.
// GET /api/v1/me
func (h *AuthHandler) CurrentIdentity(c *gin.Context) {
	username, err := getUsernameFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get username from token")
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get role from token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": username, "role": role})
}

// mapCredentialToResponse converts a domain Credential to its DTO.
// Crucially excludes PasswordHash and converts the ObjectID to a string.
func mapCredentialToResponse(cred *domain.Credential) CredentialResponse {
	if cred == nil {
		return CredentialResponse{}
	}
	return CredentialResponse{
		ID:        cred.ID.Hex(),
		Username:  cred.Username,
		Role:      cred.Role,
		CreatedAt: cred.CreatedAt,
	}
}
