package service

import (
	"context"
	"errors"
	"log"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/repository"
)

// identityReconciler keeps a profile (client or trainer) and its paired
// credential record mutually consistent: it enforces username uniqueness
// across all three stores, creates the credential in lockstep with a profile
// create, and renames/re-hashes the credential when a profile update changes
// the username or supplies a new plaintext password.
//
// The reconciliation is best-effort, not transactional: a credential write
// can succeed while a later profile write fails, leaving transient
// inconsistency for the caller (or an operator) to resolve.
type identityReconciler struct {
	credentials repository.CredentialRepository
	clients     repository.ClientRepository
	trainers    repository.TrainerRepository
	hasher      PasswordHasher
}

func newIdentityReconciler(
	credentials repository.CredentialRepository,
	clients repository.ClientRepository,
	trainers repository.TrainerRepository,
	hasher PasswordHasher,
) *identityReconciler {
	return &identityReconciler{
		credentials: credentials,
		clients:     clients,
		trainers:    trainers,
		hasher:      hasher,
	}
}

// usernameTaken reports whether the username exists in the credential,
// client, or trainer store. The three lookups are sequential and not
// serialized against concurrent writers; the unique indexes on the stores
// are the final line of defense (surfaced as repository.ErrConflict).
func (r *identityReconciler) usernameTaken(ctx context.Context, username string) (bool, error) {
	if _, err := r.credentials.GetByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if _, err := r.clients.GetByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	if _, err := r.trainers.GetByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	return false, nil
}

// createCredential checks global username uniqueness and persists a new
// credential with the hashed password and the given role.
func (r *identityReconciler) createCredential(ctx context.Context, username, password string, role domain.Role) error {
	taken, err := r.usernameTaken(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return ErrUsernameTaken
	}

	hash, err := r.hasher.Hash(password)
	if err != nil {
		return err
	}

	cred := &domain.Credential{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if _, err := r.credentials.Create(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Lost the race between the pre-check and the insert.
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// syncCredential brings the paired credential in line with a profile update.
// The credential is located by the profile's old username. A missing
// credential is tolerated (best-effort sync, matching the historical
// behavior) but logged, since it indicates drift between the stores.
func (r *identityReconciler) syncCredential(ctx context.Context, oldUsername, newUsername, password string) error {
	if newUsername != oldUsername {
		taken, err := r.usernameTaken(ctx, newUsername)
		if err != nil {
			return err
		}
		if taken {
			return ErrUsernameTaken
		}

		cred, err := r.credentials.GetByUsername(ctx, oldUsername)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Printf("WARN: no credential paired with username %q while renaming to %q; stores have drifted", oldUsername, newUsername)
				return nil
			}
			return err
		}

		cred.Username = newUsername
		if password != "" && !r.hasher.IsHashed(password) {
			hash, err := r.hasher.Hash(password)
			if err != nil {
				return err
			}
			cred.PasswordHash = hash
		}
		if err := r.credentials.Update(ctx, cred); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return ErrUsernameTaken
			}
			return err
		}
		return nil
	}

	// Username unchanged: only a freshly supplied plaintext password needs
	// to reach the credential.
	if password == "" || r.hasher.IsHashed(password) {
		return nil
	}

	cred, err := r.credentials.GetByUsername(ctx, oldUsername)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Printf("WARN: no credential paired with username %q while updating its password; stores have drifted", oldUsername)
			return nil
		}
		return err
	}

	hash, err := r.hasher.Hash(password)
	if err != nil {
		return err
	}
	cred.PasswordHash = hash
	return r.credentials.Update(ctx, cred)
}

// applyPassword writes the hash of a newly supplied plaintext password over
// the current profile hash. An empty value and a value already carrying the
// bcrypt prefix both leave the current hash untouched (see bcryptHashPrefix
// for the known edge of this heuristic).
func (r *identityReconciler) applyPassword(currentHash *string, password string) error {
	if password == "" || r.hasher.IsHashed(password) {
		return nil
	}
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return err
	}
	*currentHash = hash
	return nil
}
