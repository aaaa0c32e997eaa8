// Package usecase implements the name registry business rules.
//
// Registering a name stores it together with its hname and guarantees, inside
// one transaction, that neither the name nor the hname is already taken. An
// hname held by a different name is a collision: two distinct names would route
// to the same selector, so the second registration is refused with
// ErrHNameCollision instead of silently shadowing the first.
package usecase

import (
	"context"

	"github.com/allisson/hname/internal/database"
	apperrors "github.com/allisson/hname/internal/errors"
	"github.com/allisson/hname/internal/hname"
	registryDomain "github.com/allisson/hname/internal/registry/domain"
)

type registryUseCase struct {
	txManager database.TxManager
	entryRepo EntryRepository
	hasher    Hasher
}

// Hash returns the hname of each name in order. Any string is accepted,
// including the empty string.
func (r *registryUseCase) Hash(ctx context.Context, names []string) ([]hname.HName, error) {
	result := make([]hname.HName, len(names))
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result[i] = r.hasher.Hash(name)
	}
	return result, nil
}

// Register stores name with its hname.
//
// Returns ErrEntryAlreadyExists if the name is registered and ErrHNameCollision
// if a different name already owns the hname.
func (r *registryUseCase) Register(
	ctx context.Context,
	name string,
	kind registryDomain.Kind,
) (*registryDomain.Entry, error) {
	entry, err := registryDomain.NewEntry(name, kind, r.hasher.Hash(name))
	if err != nil {
		return nil, err
	}

	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.entryRepo.GetByName(ctx, name); err == nil {
			return registryDomain.ErrEntryAlreadyExists
		} else if !apperrors.Is(err, registryDomain.ErrEntryNotFound) {
			return err
		}

		existing, err := r.entryRepo.GetByHName(ctx, entry.HName)
		switch {
		case err == nil:
			return apperrors.Wrapf(
				registryDomain.ErrHNameCollision,
				"%q and %q both hash to %s", existing.Name, name, entry.HName,
			)
		case !apperrors.Is(err, registryDomain.ErrEntryNotFound):
			return err
		}

		return r.entryRepo.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// GetByName retrieves the entry registered under name.
func (r *registryUseCase) GetByName(ctx context.Context, name string) (*registryDomain.Entry, error) {
	return r.entryRepo.GetByName(ctx, name)
}

// GetByHName retrieves the entry owning h.
func (r *registryUseCase) GetByHName(ctx context.Context, h hname.HName) (*registryDomain.Entry, error) {
	return r.entryRepo.GetByHName(ctx, h)
}

// List returns entries ordered by name.
func (r *registryUseCase) List(ctx context.Context, offset, limit int) ([]*registryDomain.Entry, error) {
	return r.entryRepo.List(ctx, offset, limit)
}

// Delete removes the entry owning h.
func (r *registryUseCase) Delete(ctx context.Context, h hname.HName) error {
	return r.entryRepo.Delete(ctx, h)
}

// NewRegistryUseCase creates a registry use case.
func NewRegistryUseCase(
	txManager database.TxManager,
	entryRepo EntryRepository,
	hasher Hasher,
) RegistryUseCase {
	return &registryUseCase{
		txManager: txManager,
		entryRepo: entryRepo,
		hasher:    hasher,
	}
}
