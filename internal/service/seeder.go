package service

import (
	"context"
	"log"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/repository"
)

// Seeder bootstraps demo data on an empty database: two subscription plans,
// an admin credential with its client profile, and two demo clients. Seeding
// is skipped entirely when any credential already exists.
type Seeder struct {
	credentialRepo   repository.CredentialRepository
	clientRepo       repository.ClientRepository
	subscriptionRepo repository.SubscriptionRepository
	hasher           PasswordHasher
}

// NewSeeder creates a new Seeder.
func NewSeeder(
	credentialRepo repository.CredentialRepository,
	clientRepo repository.ClientRepository,
	subscriptionRepo repository.SubscriptionRepository,
	hasher PasswordHasher,
) *Seeder {
	return &Seeder{
		credentialRepo:   credentialRepo,
		clientRepo:       clientRepo,
		subscriptionRepo: subscriptionRepo,
		hasher:           hasher,
	}
}

// Seed populates the stores if they are empty.
func (s *Seeder) Seed(ctx context.Context) error {
	count, err := s.credentialRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Println("Seeding initial data...")

	monthly := &domain.Subscription{PlanType: "Месячный", Cost: 5000.00, DurationDays: 30}
	if _, err := s.subscriptionRepo.Create(ctx, monthly); err != nil {
		return err
	}
	yearly := &domain.Subscription{PlanType: "Годовой", Cost: 45000.00, DurationDays: 365}
	if _, err := s.subscriptionRepo.Create(ctx, yearly); err != nil {
		return err
	}

	if err := s.seedMember(ctx, "admin", "admin123", domain.RoleAdmin, "Админ Админов", "+79999999999", monthly); err != nil {
		return err
	}
	if err := s.seedMember(ctx, "ivan", "ivan123", domain.RoleClient, "Иван Иванов", "+79876543210", monthly); err != nil {
		return err
	}
	if err := s.seedMember(ctx, "maria", "maria123", domain.RoleClient, "Мария Петрова", "+79991234567", yearly); err != nil {
		return err
	}

	log.Println("Seeding completed.")
	return nil
}

// seedMember creates a credential and its paired client profile directly at
// the repository level (the admin carries a non-CLIENT role, which the
// reconciler would not produce).
func (s *Seeder) seedMember(ctx context.Context, username, password string, role domain.Role, name, phone string, sub *domain.Subscription) error {
	credHash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	cred := &domain.Credential{Username: username, PasswordHash: credHash, Role: role}
	if _, err := s.credentialRepo.Create(ctx, cred); err != nil {
		return err
	}

	profileHash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	client := &domain.Client{
		Name:           name,
		Phone:          phone,
		Username:       username,
		PasswordHash:   profileHash,
		SubscriptionID: sub.ID,
	}
	_, err = s.clientRepo.Create(ctx, client)
	return err
}
