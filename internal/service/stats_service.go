package service

import (
	"context"

	"github.com/fitclub/membership-server/internal/repository"
)

// Statistics aggregates club-wide counters for the dashboard.
type Statistics struct {
	TotalClients            int64   `json:"totalClients"`
	TotalSubscriptions      int64   `json:"totalSubscriptions"`
	AverageSubscriptionCost float64 `json:"averageSubscriptionCost"`
}

// --- Service Interface ---
type StatisticsService interface {
	GetStatistics(ctx context.Context) (*Statistics, error)
}

// statisticsService implements the StatisticsService interface.
type statisticsService struct {
	clientRepo       repository.ClientRepository
	subscriptionRepo repository.SubscriptionRepository
}

// NewStatisticsService creates a new instance of statisticsService.
func NewStatisticsService(
	clientRepo repository.ClientRepository,
	subscriptionRepo repository.SubscriptionRepository,
) StatisticsService {
	return &statisticsService{
		clientRepo:       clientRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// GetStatistics returns total client and subscription counts and the average
// subscription cost (0 when no plans exist).
func (s *statisticsService) GetStatistics(ctx context.Context) (*Statistics, error) {
	totalClients, err := s.clientRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalSubscriptions, err := s.subscriptionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	subs, err := s.subscriptionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	average := 0.0
	if len(subs) > 0 {
		sum := 0.0
		for _, sub := range subs {
			sum += sub.Cost
		}
		average = sum / float64(len(subs))
	}

	return &Statistics{
		TotalClients:            totalClients,
		TotalSubscriptions:      totalSubscriptions,
		AverageSubscriptionCost: average,
	}, nil
}
