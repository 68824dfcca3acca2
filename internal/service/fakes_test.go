package service

import (
	"context"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// -------- in-memory repository fakes --------
//
// The fakes enforce the same username uniqueness the real stores back with
// unique indexes, surfacing repository.ErrConflict, and hand out copies so
// tests can compare stored state before and after an operation.

type memCredentialRepo struct {
	creds map[primitive.ObjectID]domain.Credential
}

func newMemCredentialRepo() *memCredentialRepo {
	return &memCredentialRepo{creds: make(map[primitive.ObjectID]domain.Credential)}
}

func (r *memCredentialRepo) Create(ctx context.Context, cred *domain.Credential) (primitive.ObjectID, error) {
	for _, existing := range r.creds {
		if existing.Username == cred.Username {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	cred.ID = primitive.NewObjectID()
	r.creds[cred.ID] = *cred
	return cred.ID, nil
}

func (r *memCredentialRepo) GetByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	for _, cred := range r.creds {
		if cred.Username == username {
			cp := cred
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memCredentialRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Credential, error) {
	cred, ok := r.creds[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := cred
	return &cp, nil
}

func (r *memCredentialRepo) Update(ctx context.Context, cred *domain.Credential) error {
	if _, ok := r.creds[cred.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.creds {
		if id != cred.ID && existing.Username == cred.Username {
			return repository.ErrConflict
		}
	}
	r.creds[cred.ID] = *cred
	return nil
}

func (r *memCredentialRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.creds[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.creds, id)
	return nil
}

func (r *memCredentialRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.creds)), nil
}

type memClientRepo struct {
	clients map[primitive.ObjectID]domain.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: make(map[primitive.ObjectID]domain.Client)}
}

func (r *memClientRepo) Create(ctx context.Context, client *domain.Client) (primitive.ObjectID, error) {
	for _, existing := range r.clients {
		if existing.Username == client.Username {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	client.ID = primitive.NewObjectID()
	r.clients[client.ID] = *client
	return client.ID, nil
}

func (r *memClientRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := client
	return &cp, nil
}

func (r *memClientRepo) GetByUsername(ctx context.Context, username string) (*domain.Client, error) {
	for _, client := range r.clients {
		if client.Username == username {
			cp := client
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	out := make([]domain.Client, 0, len(r.clients))
	for _, client := range r.clients {
		out = append(out, client)
	}
	return out, nil
}

func (r *memClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if _, ok := r.clients[client.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.clients {
		if id != client.ID && existing.Username == client.Username {
			return repository.ErrConflict
		}
	}
	r.clients[client.ID] = *client
	return nil
}

func (r *memClientRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.clients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.clients, id)
	return nil
}

func (r *memClientRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.clients)), nil
}

type memTrainerRepo struct {
	trainers map[primitive.ObjectID]domain.Trainer
}

func newMemTrainerRepo() *memTrainerRepo {
	return &memTrainerRepo{trainers: make(map[primitive.ObjectID]domain.Trainer)}
}

func (r *memTrainerRepo) Create(ctx context.Context, trainer *domain.Trainer) (primitive.ObjectID, error) {
	for _, existing := range r.trainers {
		if existing.Username == trainer.Username {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	trainer.ID = primitive.NewObjectID()
	r.trainers[trainer.ID] = *trainer
	return trainer.ID, nil
}

func (r *memTrainerRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Trainer, error) {
	trainer, ok := r.trainers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := trainer
	return &cp, nil
}

func (r *memTrainerRepo) GetByUsername(ctx context.Context, username string) (*domain.Trainer, error) {
	for _, trainer := range r.trainers {
		if trainer.Username == username {
			cp := trainer
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memTrainerRepo) List(ctx context.Context) ([]domain.Trainer, error) {
	out := make([]domain.Trainer, 0, len(r.trainers))
	for _, trainer := range r.trainers {
		out = append(out, trainer)
	}
	return out, nil
}

func (r *memTrainerRepo) Update(ctx context.Context, trainer *domain.Trainer) error {
	if _, ok := r.trainers[trainer.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.trainers {
		if id != trainer.ID && existing.Username == trainer.Username {
			return repository.ErrConflict
		}
	}
	r.trainers[trainer.ID] = *trainer
	return nil
}

func (r *memTrainerRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.trainers[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.trainers, id)
	return nil
}

func (r *memTrainerRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.trainers)), nil
}

type memSubscriptionRepo struct {
	subs map[primitive.ObjectID]domain.Subscription
}

func newMemSubscriptionRepo() *memSubscriptionRepo {
	return &memSubscriptionRepo{subs: make(map[primitive.ObjectID]domain.Subscription)}
}

func (r *memSubscriptionRepo) Create(ctx context.Context, sub *domain.Subscription) (primitive.ObjectID, error) {
	sub.ID = primitive.NewObjectID()
	r.subs[sub.ID] = *sub
	return sub.ID, nil
}

func (r *memSubscriptionRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := sub
	return &cp, nil
}

func (r *memSubscriptionRepo) List(ctx context.Context) ([]domain.Subscription, error) {
	out := make([]domain.Subscription, 0, len(r.subs))
	for _, sub := range r.subs {
		out = append(out, sub)
	}
	return out, nil
}

func (r *memSubscriptionRepo) Update(ctx context.Context, sub *domain.Subscription) error {
	if _, ok := r.subs[sub.ID]; !ok {
		return repository.ErrNotFound
	}
	r.subs[sub.ID] = *sub
	return nil
}

func (r *memSubscriptionRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, ok := r.subs[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.subs, id)
	return nil
}

func (r *memSubscriptionRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.subs)), nil
}
