package service

import (
	"context"
	"errors"
	"strings"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubscriptionDraft carries the requested fields for a subscription plan.
type SubscriptionDraft struct {
	PlanType     string
	Cost         float64
	DurationDays int
}

// --- Service Interface ---
type SubscriptionService interface {
	CreateSubscription(ctx context.Context, draft SubscriptionDraft) (*domain.Subscription, error)
	UpdateSubscription(ctx context.Context, id primitive.ObjectID, draft SubscriptionDraft) (*domain.Subscription, error)
	GetSubscription(ctx context.Context, id primitive.ObjectID) (*domain.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)
	DeleteSubscription(ctx context.Context, id primitive.ObjectID) error
	CountSubscriptions(ctx context.Context) (int64, error)
}

// --- Service Implementation ---

// subscriptionService implements the SubscriptionService interface.
type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
}

// NewSubscriptionService creates a new instance of subscriptionService.
func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository) SubscriptionService {
	return &subscriptionService{subscriptionRepo: subscriptionRepo}
}

// validateSubscriptionDraft checks the plan fields and normalizes the plan
// type in place (trimmed).
func validateSubscriptionDraft(draft *SubscriptionDraft) error {
	if strings.TrimSpace(draft.PlanType) == "" {
		return validationErrorf("subscription plan type cannot be empty")
	}
	cleaned := strings.TrimSpace(draft.PlanType)
	if len([]rune(cleaned)) < 2 || len([]rune(cleaned)) > 50 {
		return validationErrorf("subscription plan type must contain between 2 and 50 characters")
	}
	draft.PlanType = cleaned

	if draft.Cost <= 0 {
		return validationErrorf("subscription cost must be greater than zero")
	}
	if draft.DurationDays <= 0 || draft.DurationDays > 365 {
		return validationErrorf("subscription duration must be between 1 and 365 days")
	}
	return nil
}

// CreateSubscription validates and persists a new plan.
func (s *subscriptionService) CreateSubscription(ctx context.Context, draft SubscriptionDraft) (*domain.Subscription, error) {
	if err := validateSubscriptionDraft(&draft); err != nil {
		return nil, err
	}

	sub := &domain.Subscription{
		PlanType:     draft.PlanType,
		Cost:         draft.Cost,
		DurationDays: draft.DurationDays,
	}
	subID, err := s.subscriptionRepo.Create(ctx, sub)
	if err != nil {
		return nil, err
	}
	sub.ID = subID
	return sub, nil
}

// UpdateSubscription validates the draft and updates an existing plan.
func (s *subscriptionService) UpdateSubscription(ctx context.Context, id primitive.ObjectID, draft SubscriptionDraft) (*domain.Subscription, error) {
	existing, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "subscription", ID: id.Hex()}
		}
		return nil, err
	}

	if err := validateSubscriptionDraft(&draft); err != nil {
		return nil, err
	}

	existing.PlanType = draft.PlanType
	existing.Cost = draft.Cost
	existing.DurationDays = draft.DurationDays

	if err := s.subscriptionRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "subscription", ID: id.Hex()}
		}
		return nil, err
	}
	return existing, nil
}

// GetSubscription retrieves a plan by id.
func (s *subscriptionService) GetSubscription(ctx context.Context, id primitive.ObjectID) (*domain.Subscription, error) {
	sub, err := s.subscriptionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "subscription", ID: id.Hex()}
		}
		return nil, err
	}
	return sub, nil
}

// ListSubscriptions retrieves all plans.
func (s *subscriptionService) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	return s.subscriptionRepo.List(ctx)
}

// DeleteSubscription removes a plan. Clients holding the plan keep their
// reference (no cascade).
func (s *subscriptionService) DeleteSubscription(ctx context.Context, id primitive.ObjectID) error {
	if err := s.subscriptionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Kind: "subscription", ID: id.Hex()}
		}
		return err
	}
	return nil
}

// CountSubscriptions returns the total number of plans.
func (s *subscriptionService) CountSubscriptions(ctx context.Context) (int64, error) {
	return s.subscriptionRepo.Count(ctx)
}
