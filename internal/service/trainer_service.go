package service

import (
	"context"
	"errors"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainerDraft carries the requested profile fields for a trainer create or
// update. Password semantics mirror ClientDraft.
type TrainerDraft struct {
	Name     string
	Username string
	Password string
}

// --- Service Interface ---
type TrainerService interface {
	CreateTrainer(ctx context.Context, draft TrainerDraft) (*domain.Trainer, error)
	UpdateTrainer(ctx context.Context, id primitive.ObjectID, draft TrainerDraft) (*domain.Trainer, error)
	GetTrainer(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error)
	ListTrainers(ctx context.Context) ([]domain.Trainer, error)
	DeleteTrainer(ctx context.Context, id primitive.ObjectID) error
}

// --- Service Implementation ---

// trainerService implements the TrainerService interface.
type trainerService struct {
	trainerRepo repository.TrainerRepository
	reconciler  *identityReconciler
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	trainerRepo repository.TrainerRepository,
	clientRepo repository.ClientRepository,
	credentialRepo repository.CredentialRepository,
	hasher PasswordHasher,
) TrainerService {
	return &trainerService{
		trainerRepo: trainerRepo,
		reconciler:  newIdentityReconciler(credentialRepo, clientRepo, trainerRepo, hasher),
	}
}

// CreateTrainer validates the draft, creates the paired credential with role
// TRAINER, and persists the profile.
func (s *trainerService) CreateTrainer(ctx context.Context, draft TrainerDraft) (*domain.Trainer, error) {
	if err := validateTrainerDraft(&draft, true); err != nil {
		return nil, err
	}

	if err := s.reconciler.createCredential(ctx, draft.Username, draft.Password, domain.RoleTrainer); err != nil {
		return nil, err
	}

	hash, err := s.reconciler.hasher.Hash(draft.Password)
	if err != nil {
		return nil, err
	}

	trainer := &domain.Trainer{
		Name:         draft.Name,
		Username:     draft.Username,
		PasswordHash: hash,
	}

	trainerID, err := s.trainerRepo.Create(ctx, trainer)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	trainer.ID = trainerID
	return trainer, nil
}

// UpdateTrainer loads the existing profile, validates the draft, synchronizes
// the paired credential, copies the draft fields over, and persists.
func (s *trainerService) UpdateTrainer(ctx context.Context, id primitive.ObjectID, draft TrainerDraft) (*domain.Trainer, error) {
	existing, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "trainer", ID: id.Hex()}
		}
		return nil, err
	}

	if err := validateTrainerDraft(&draft, false); err != nil {
		return nil, err
	}

	if err := s.reconciler.syncCredential(ctx, existing.Username, draft.Username, draft.Password); err != nil {
		return nil, err
	}

	existing.Name = draft.Name
	existing.Username = draft.Username
	if err := s.reconciler.applyPassword(&existing.PasswordHash, draft.Password); err != nil {
		return nil, err
	}

	if err := s.trainerRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "trainer", ID: id.Hex()}
		}
		return nil, err
	}
	return existing, nil
}

// GetTrainer retrieves a trainer profile by id.
func (s *trainerService) GetTrainer(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	trainer, err := s.trainerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "trainer", ID: id.Hex()}
		}
		return nil, err
	}
	return trainer, nil
}

// ListTrainers retrieves all trainer profiles.
func (s *trainerService) ListTrainers(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainerRepo.List(ctx)
}

// DeleteTrainer removes a trainer profile. Clients pointing at the trainer
// keep their reference; the paired credential is left in place.
func (s *trainerService) DeleteTrainer(ctx context.Context, id primitive.ObjectID) error {
	if err := s.trainerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Kind: "trainer", ID: id.Hex()}
		}
		return err
	}
	return nil
}
