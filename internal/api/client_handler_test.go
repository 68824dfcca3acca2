package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
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

// stubClientService lets each test script the service behavior per method.
type stubClientService struct {
	createFn func(ctx context.Context, draft service.ClientDraft, trainerID *primitive.ObjectID) (*domain.Client, error)
	updateFn func(ctx context.Context, id primitive.ObjectID, draft service.ClientDraft, trainerID *primitive.ObjectID) (*domain.Client, error)
	getFn    func(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	listFn   func(ctx context.Context) ([]domain.Client, error)
	deleteFn func(ctx context.Context, id primitive.ObjectID) error
	countFn  func(ctx context.Context) (int64, error)
}

func (s *stubClientService) CreateClient(ctx context.Context, draft service.ClientDraft, trainerID *primitive.ObjectID) (*domain.Client, error) {
	return s.createFn(ctx, draft, trainerID)
}

func (s *stubClientService) UpdateClient(ctx context.Context, id primitive.ObjectID, draft service.ClientDraft, trainerID *primitive.ObjectID) (*domain.Client, error) {
	return s.updateFn(ctx, id, draft, trainerID)
}

func (s *stubClientService) GetClient(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	return s.getFn(ctx, id)
}

func (s *stubClientService) GetClientByUsername(ctx context.Context, username string) (*domain.Client, error) {
	return nil, fmt.Errorf("not scripted")
}

func (s *stubClientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.listFn(ctx)
}

func (s *stubClientService) DeleteClient(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteFn(ctx, id)
}

func (s *stubClientService) CountClients(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}

func newClientRouter(stub *stubClientService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewClientHandler(stub)
	router.GET("/clients", handler.ListClients)
	router.GET("/clients/count", handler.CountClients)
	router.GET("/clients/:id", handler.GetClient)
	router.POST("/clients", handler.CreateClient)
	router.PUT("/clients/:id", handler.UpdateClient)
	router.DELETE("/clients/:id", handler.DeleteClient)
	return router
}

func clientRequestBody(t *testing.T) ([]byte, primitive.ObjectID) {
	t.Helper()
	subID := primitive.NewObjectID()
	body, err := json.Marshal(gin.H{
		"name":           "Мария Петрова",
		"phone":          "+79991234567",
		"username":       "maria",
		"password":       "maria123",
		"subscriptionId": subID.Hex(),
	})
	require.NoError(t, err)
	return body, subID
}

func TestCreateClientHandler_Success(t *testing.T) {
	body, subID := clientRequestBody(t)

	stub := &stubClientService{
		createFn: func(ctx context.Context, draft service.ClientDraft, trainerID *primitive.ObjectID) (*domain.Client, error) {
			assert.Equal(t, "maria", draft.Username)
			assert.Equal(t, subID, draft.SubscriptionID)
			assert.Nil(t, trainerID)
			return &domain.Client{
				ID:             primitive.NewObjectID(),
				Name:           draft.Name,
				Phone:          draft.Phone,
				Username:       draft.Username,
				SubscriptionID: draft.SubscriptionID,
			}, nil
		},
	}
	router := newClientRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "maria", resp.Username)
	assert.Equal(t, subID.Hex(), resp.SubscriptionID)
	assert.Nil(t, resp.TrainerID)
	assert.NotContains(t, w.Body.String(), "password", "hash must never appear in responses")
}

func TestCreateClientHandler_TrainerQueryParam(t *testing.T) {
	body, _ := clientRequestBody(t)
	trainerID := primitive.NewObjectID()

	stub := &stubClientService{
		createFn: func(ctx context.Context, draft service.ClientDraft, gotTrainer *primitive.ObjectID) (*domain.Client, error) {
			require.NotNil(t, gotTrainer)
			assert.Equal(t, trainerID, *gotTrainer)
			return &domain.Client{
				ID:             primitive.NewObjectID(),
				Username:       draft.Username,
				SubscriptionID: draft.SubscriptionID,
				TrainerID:      gotTrainer,
			}, nil
		},
	}
	router := newClientRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/clients?trainerId="+trainerID.Hex(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp ClientResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.TrainerID)
	assert.Equal(t, trainerID.Hex(), *resp.TrainerID)
}

func TestCreateClientHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &service.ValidationError{Message: "phone number must start with +7 followed by 10 digits"}, http.StatusBadRequest},
		{"username taken", service.ErrUsernameTaken, http.StatusConflict},
		{"dangling trainer", &service.ReferenceNotFoundError{Kind: "trainer", ID: primitive.NewObjectID().Hex()}, http.StatusBadRequest},
		{"unexpected", fmt.Errorf("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := clientRequestBody(t)
			stub := &stubClientService{
				createFn: func(context.Context, service.ClientDraft, *primitive.ObjectID) (*domain.Client, error) {
					return nil, tc.err
				},
			}
			router := newClientRouter(stub)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestCreateClientHandler_MissingFields(t *testing.T) {
	stub := &stubClientService{
		createFn: func(context.Context, service.ClientDraft, *primitive.ObjectID) (*domain.Client, error) {
			t.Fatal("service must not be called on a malformed request")
			return nil, nil
		},
	}
	router := newClientRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewReader([]byte(`{"name":"Мария Петрова"}`)))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetClientHandler_NotFound(t *testing.T) {
	id := primitive.NewObjectID()
	stub := &stubClientService{
		getFn: func(ctx context.Context, gotID primitive.ObjectID) (*domain.Client, error) {
			assert.Equal(t, id, gotID)
			return nil, &service.NotFoundError{Kind: "client", ID: gotID.Hex()}
		},
	}
	router := newClientRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients/"+id.Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetClientHandler_InvalidID(t *testing.T) {
	stub := &stubClientService{
		getFn: func(context.Context, primitive.ObjectID) (*domain.Client, error) {
			t.Fatal("service must not be called with an unparseable id")
			return nil, nil
		},
	}
	router := newClientRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients/not-a-hex-id", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCountClientsHandler(t *testing.T) {
	stub := &stubClientService{
		countFn: func(context.Context) (int64, error) { return 42, nil },
	}
	router := newClientRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients/count", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":42}`, w.Body.String())
}

func TestUpdateClientHandler_Success(t *testing.T) {
	body, _ := clientRequestBody(t)
	id := primitive.NewObjectID()

	stub := &stubClientService{
		updateFn: func(ctx context.Context, gotID primitive.ObjectID, draft service.ClientDraft, trainerID *primitive.ObjectID) (*domain.Client, error) {
			assert.Equal(t, id, gotID)
			assert.Nil(t, trainerID, "omitted trainerId arrives as nil")
			return &domain.Client{
				ID:             gotID,
				Username:       draft.Username,
				SubscriptionID: draft.SubscriptionID,
			}, nil
		},
	}
	router := newClientRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/clients/"+id.Hex(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteClientHandler(t *testing.T) {
	id := primitive.NewObjectID()
	stub := &stubClientService{
		deleteFn: func(ctx context.Context, gotID primitive.ObjectID) error {
			assert.Equal(t, id, gotID)
			return nil
		},
	}
	router := newClientRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/clients/"+id.Hex(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
