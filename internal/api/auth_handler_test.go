package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, *domain.Credential, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Credential, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) GetJWTSecret() string { return "stub" }

func newLoginRouter(stub *stubAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", NewAuthHandler(stub).Login)
	return router
}

func postLogin(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestLoginHandler_Success(t *testing.T) {
	credID := primitive.NewObjectID()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.Credential, error) {
			assert.Equal(t, "admin", username)
			assert.Equal(t, "admin123", password)
			return "signed-token", &domain.Credential{ID: credID, Username: username, Role: domain.RoleAdmin}, nil
		},
	}

	w := postLogin(t, newLoginRouter(stub), `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, credID.Hex(), resp.User.ID)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)
	assert.NotContains(t, w.Body.String(), "passwordHash")
}

func TestLoginHandler_BadCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.Credential, error) {
			return "", nil, service.ErrAuthenticationFailed
		},
	}

	w := postLogin(t, newLoginRouter(stub), `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginHandler_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.Credential, error) {
			t.Fatal("service must not be called on a malformed request")
			return "", nil, nil
		},
	}

	w := postLogin(t, newLoginRouter(stub), `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentIdentityHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(&stubAuthService{})
	router.GET("/me", func(c *gin.Context) {
		c.Set(ContextUsernameKey, "ivan")
		c.Set(ContextUserRoleKey, domain.RoleClient)
	}, handler.CurrentIdentity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"ivan","role":"CLIENT"}`, w.Body.String())
}

func TestCurrentIdentityHandler_MissingClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", NewAuthHandler(&stubAuthService{}).CurrentIdentity)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLoginHandler_TokenGenerationFailure(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.Credential, error) {
			return "", nil, service.ErrTokenGeneration
		},
	}

	w := postLogin(t, newLoginRouter(stub), `{"username":"admin","password":"admin123"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
