package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/service"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler holds the subscription service dependency.
type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

// --- Request/Response Structs ---

type SubscriptionRequest struct {
	PlanType     string  `json:"planType" binding:"required"`
	Cost         float64 `json:"cost" binding:"required"`
	DurationDays int     `json:"durationDays" binding:"required"`
}

type SubscriptionResponse struct {
	ID           string    `json:"id"`
	PlanType     string    `json:"planType"`
	Cost         float64   `json:"cost"`
	DurationDays int       `json:"durationDays"`
	CreatedAt    time.Time `json:"createdAt"`
}

// --- Handler Methods ---

// ListSubscriptions returns all subscription plans.
// GET /api/v1/subscriptions
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	subs, err := h.subscriptionService.ListSubscriptions(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]SubscriptionResponse, len(subs))
	for i := range subs {
		resp[i] = mapSubscriptionToResponse(&subs[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetSubscription returns a single plan by id.
// GET /api/v1/subscriptions/:id
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid subscription ID format")
		return
	}

	sub, err := h.subscriptionService.GetSubscription(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSubscriptionToResponse(sub))
}

// CreateSubscription creates a new plan.
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sub, err := h.subscriptionService.CreateSubscription(c.Request.Context(), service.SubscriptionDraft{
		PlanType:     req.PlanType,
		Cost:         req.Cost,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapSubscriptionToResponse(sub))
}

// UpdateSubscription updates an existing plan.
// PUT /api/v1/subscriptions/:id
func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid subscription ID format")
		return
	}

	var req SubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	sub, err := h.subscriptionService.UpdateSubscription(c.Request.Context(), id, service.SubscriptionDraft{
		PlanType:     req.PlanType,
		Cost:         req.Cost,
		DurationDays: req.DurationDays,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapSubscriptionToResponse(sub))
}

// DeleteSubscription removes a plan. Clients keep their (now dangling)
// reference; there is no cascade.
// DELETE /api/v1/subscriptions/:id
func (h *SubscriptionHandler) DeleteSubscription(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid subscription ID format")
		return
	}

	if err := h.subscriptionService.DeleteSubscription(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// mapSubscriptionToResponse converts a domain Subscription to its DTO.
func mapSubscriptionToResponse(sub *domain.Subscription) SubscriptionResponse {
	if sub == nil {
		return SubscriptionResponse{}
	}
	return SubscriptionResponse{
		ID:           sub.ID.Hex(),
		PlanType:     sub.PlanType,
		Cost:         sub.Cost,
		DurationDays: sub.DurationDays,
		CreatedAt:    sub.CreatedAt,
	}
}
