package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/service"

	"github.com/gin-gonic/gin"
)

// TrainerHandler holds the trainer service dependency.
type TrainerHandler struct {
	trainerService service.TrainerService
}

// NewTrainerHandler creates a new TrainerHandler.
func NewTrainerHandler(trainerService service.TrainerService) *TrainerHandler {
	return &TrainerHandler{trainerService: trainerService}
}

// --- Request/Response Structs ---

type TrainerRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
}

type TrainerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// --- Handler Methods ---

// ListTrainers returns all trainer profiles.
// GET /api/v1/trainers
func (h *TrainerHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.trainerService.ListTrainers(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := make([]TrainerResponse, len(trainers))
	for i := range trainers {
		resp[i] = mapTrainerToResponse(&trainers[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetTrainer returns a single trainer profile by id.
// GET /api/v1/trainers/:id
func (h *TrainerHandler) GetTrainer(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	trainer, err := h.trainerService.GetTrainer(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapTrainerToResponse(trainer))
}

// CreateTrainer creates a trainer profile together with its credential.
// POST /api/v1/trainers
func (h *TrainerHandler) CreateTrainer(c *gin.Context) {
	var req TrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainer, err := h.trainerService.CreateTrainer(c.Request.Context(), service.TrainerDraft{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, mapTrainerToResponse(trainer))
}

// UpdateTrainer updates a trainer profile and keeps its credential in sync.
// PUT /api/v1/trainers/:id
func (h *TrainerHandler) UpdateTrainer(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	var req TrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	trainer, err := h.trainerService.UpdateTrainer(c.Request.Context(), id, service.TrainerDraft{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapTrainerToResponse(trainer))
}

// DeleteTrainer removes a trainer profile.
// DELETE /api/v1/trainers/:id
func (h *TrainerHandler) DeleteTrainer(c *gin.Context) {
	id, err := parseObjectID(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	if err := h.trainerService.DeleteTrainer(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// mapTrainerToResponse converts a domain Trainer to its DTO.
func mapTrainerToResponse(trainer *domain.Trainer) TrainerResponse {
	if trainer == nil {
		return TrainerResponse{}
	}
	return TrainerResponse{
		ID:        trainer.ID.Hex(),
		Name:      trainer.Name,
		Username:  trainer.Username,
		CreatedAt: trainer.CreatedAt,
	}
}
