package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientHandler holds the client service dependency.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// --- Request/Response Structs ---

type ClientRequest struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Username       string `json:"username" binding:"required"`
	Password       string `json:"password"`
	SubscriptionID string `json:"subscriptionId" binding:"required"`
}

// ClientResponse excludes the password hash and converts ObjectIDs to strings.
type ClientResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	Username       string    `json:"username"`
	SubscriptionID string    `json:"subscriptionId"`
	TrainerID      *string   `json:"trainerId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// --- Handler Methods ---

// ListClients returns all client profiles.
// GET /api/v1/clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.clientService.ListClients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]ClientResponse, len(clients))
	for i := range clients {
		resp[i] = mapClientToResponse(&clients[i])
	}
	c.JSON(http.StatusOK, resp)
}

// CountClients returns the total number of clients.
// GET /api/v1/clients/count
func (h *ClientHandler) CountClients(c *gin.Context) {
	count, err := h.clientService.CountClients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// GetClient returns a single client profile by id.
// GET /api/v1/clients/:id
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapClientToResponse(client))
}

// GetCurrentClient returns the client profile of the authenticated identity.
// GET /api/v1/clients/me
func (h *ClientHandler) GetCurrentClient(c *gin.Context) {
	username, err := getUsernameFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get username from token")
		return
	}

	client, err := h.clientService.GetClientByUsername(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapClientToResponse(client))
}

// CreateClient creates a client profile together with its credential.
// The optional trainer assignment is passed as a `trainerId` query parameter.
// POST /api/v1/clients?trainerId=...
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	draft, trainerID, err := h.buildDraft(c, req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), draft, trainerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapClientToResponse(client))
}

// UpdateClient updates a client profile and keeps its credential in sync.
// Omitting `trainerId` clears any current trainer assignment.
// PUT /api/v1/clients/:id?trainerId=...
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	draft, trainerID, err := h.buildDraft(c, req)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), id, draft, trainerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapClientToResponse(client))
}

// DeleteClient removes a client profile.
// DELETE /api/v1/clients/:id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// buildDraft converts the request DTO and the optional trainerId query
// parameter into service-layer inputs.
func (h *ClientHandler) buildDraft(c *gin.Context, req ClientRequest) (service.ClientDraft, *primitive.ObjectID, error) {
	subscriptionID, err := parseObjectID(req.SubscriptionID)
	if err != nil {
		return service.ClientDraft{}, nil, fmt.Errorf("invalid subscription ID format")
	}

	var trainerID *primitive.ObjectID
	if raw := c.Query("trainerId"); raw != "" {
		id, err := parseObjectID(raw)
		if err != nil {
			return service.ClientDraft{}, nil, fmt.Errorf("invalid trainer ID format")
		}
		trainerID = &id
	}

	draft := service.ClientDraft{
		Name:           req.Name,
		Phone:          req.Phone,
		Username:       req.Username,
		Password:       req.Password,
		SubscriptionID: subscriptionID,
	}
	return draft, trainerID, nil
}

// mapClientToResponse converts a domain Client to its DTO.
func mapClientToResponse(client *domain.Client) ClientResponse {
	if client == nil {
		return ClientResponse{}
	}

	resp := ClientResponse{
		ID:             client.ID.Hex(),
		Name:           client.Name,
		Phone:          client.Phone,
		Username:       client.Username,
		SubscriptionID: client.SubscriptionID.Hex(),
		CreatedAt:      client.CreatedAt,
	}
	if client.TrainerID != nil && *client.TrainerID != primitive.NilObjectID {
		trainerIDHex := (*client.TrainerID).Hex()
		resp.TrainerID = &trainerIDHex
	}
	return resp
}

// parseObjectID converts a hex string into an ObjectID.
func parseObjectID(raw string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(raw)
}
