package service

import (
	"context"
	"errors"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientDraft carries the requested profile fields for a client create or
// update. Password holds whatever the caller supplied: plaintext to be
// hashed, an already-encoded value to leave untouched, or empty (on update)
// to keep the existing hash.
type ClientDraft struct {
	Name           string
	Phone          string
	Username       string
	Password       string
	SubscriptionID primitive.ObjectID
}

// --- Service Interface ---
type ClientService interface {
	CreateClient(ctx context.Context, draft ClientDraft, trainerID *primitive.ObjectID) (*domain.Client, error)
	UpdateClient(ctx context.Context, id primitive.ObjectID, draft ClientDraft, trainerID *primitive.ObjectID) (*domain.Client, error)
	GetClient(ctx context.Context, id primitive.ObjectID) (*domain.Client, error)
	GetClientByUsername(ctx context.Context, username string) (*domain.Client, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	DeleteClient(ctx context.Context, id primitive.ObjectID) error
	CountClients(ctx context.Context) (int64, error)
}

// --- Service Implementation ---

// clientService implements the ClientService interface.
type clientService struct {
	clientRepo  repository.ClientRepository
	trainerRepo repository.TrainerRepository
	reconciler  *identityReconciler
}

// NewClientService creates a new instance of clientService.
func NewClientService(
	clientRepo repository.ClientRepository,
	trainerRepo repository.TrainerRepository,
	credentialRepo repository.CredentialRepository,
	hasher PasswordHasher,
) ClientService {
	return &clientService{
		clientRepo:  clientRepo,
		trainerRepo: trainerRepo,
		reconciler:  newIdentityReconciler(credentialRepo, clientRepo, trainerRepo, hasher),
	}
}

// CreateClient validates the draft, creates the paired credential with role
// CLIENT, resolves the optional trainer reference, and persists the profile.
func (s *clientService) CreateClient(ctx context.Context, draft ClientDraft, trainerID *primitive.ObjectID) (*domain.Client, error) {
	if err := validateClientDraft(&draft, true); err != nil {
		return nil, err
	}

	if err := s.reconciler.createCredential(ctx, draft.Username, draft.Password, domain.RoleClient); err != nil {
		return nil, err
	}

	resolvedTrainer, err := s.resolveTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	// The profile keeps its own hash of the same plaintext. Hashing twice
	// yields different salts, but both copies verify against the password.
	hash, err := s.reconciler.hasher.Hash(draft.Password)
	if err != nil {
		return nil, err
	}

	client := &domain.Client{
		Name:           draft.Name,
		Phone:          draft.Phone,
		Username:       draft.Username,
		PasswordHash:   hash,
		SubscriptionID: draft.SubscriptionID,
		TrainerID:      resolvedTrainer,
	}

	clientID, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	client.ID = clientID
	return client, nil
}

// UpdateClient loads the existing profile, validates the draft, synchronizes
// the paired credential, copies the draft fields over, resolves the trainer
// reference (absence of a trainer id clears any current assignment), and
// persists the result.
func (s *clientService) UpdateClient(ctx context.Context, id primitive.ObjectID, draft ClientDraft, trainerID *primitive.ObjectID) (*domain.Client, error) {
	existing, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "client", ID: id.Hex()}
		}
		return nil, err
	}

	if err := validateClientDraft(&draft, false); err != nil {
		return nil, err
	}

	if err := s.reconciler.syncCredential(ctx, existing.Username, draft.Username, draft.Password); err != nil {
		return nil, err
	}

	resolvedTrainer, err := s.resolveTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	existing.Name = draft.Name
	existing.Username = draft.Username
	if err := s.reconciler.applyPassword(&existing.PasswordHash, draft.Password); err != nil {
		return nil, err
	}
	existing.Phone = draft.Phone
	existing.SubscriptionID = draft.SubscriptionID
	existing.TrainerID = resolvedTrainer

	if err := s.clientRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "client", ID: id.Hex()}
		}
		return nil, err
	}
	return existing, nil
}

// resolveTrainer maps an optional trainer id to a reference for the profile.
// A nil id yields a nil reference, which on update means "detach the current
// trainer". An unknown id is a dangling reference.
func (s *clientService) resolveTrainer(ctx context.Context, trainerID *primitive.ObjectID) (*primitive.ObjectID, error) {
	if trainerID == nil {
		return nil, nil
	}
	trainer, err := s.trainerRepo.GetByID(ctx, *trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ReferenceNotFoundError{Kind: "trainer", ID: trainerID.Hex()}
		}
		return nil, err
	}
	return &trainer.ID, nil
}

// GetClient retrieves a client profile by id.
func (s *clientService) GetClient(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "client", ID: id.Hex()}
		}
		return nil, err
	}
	return client, nil
}

// GetClientByUsername retrieves a client profile by its username copy.
// Used by the "current client" endpoint after authentication.
func (s *clientService) GetClientByUsername(ctx context.Context, username string) (*domain.Client, error) {
	client, err := s.clientRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Kind: "client", ID: username}
		}
		return nil, err
	}
	return client, nil
}

// ListClients retrieves all client profiles.
func (s *clientService) ListClients(ctx context.Context) ([]domain.Client, error) {
	return s.clientRepo.List(ctx)
}

// DeleteClient removes a client profile. The paired credential is left in
// place (admin cleanup path, outside the reconciliation core).
func (s *clientService) DeleteClient(ctx context.Context, id primitive.ObjectID) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Kind: "client", ID: id.Hex()}
		}
		return err
	}
	return nil
}

// CountClients returns the total number of clients.
func (s *clientService) CountClients(ctx context.Context) (int64, error) {
	return s.clientRepo.Count(ctx)
}
