package usecase

import (
	"context"

	"github.com/allisson/hname/internal/hname"
	registryDomain "github.com/allisson/hname/internal/registry/domain"
)

// Hasher computes hnames. *hname.Memo satisfies it.
type Hasher interface {
	Hash(name string) hname.HName
}

// EntryRepository defines the interface for registry entry persistence.
type EntryRepository interface {
	Create(ctx context.Context, entry *registryDomain.Entry) error
	GetByName(ctx context.Context, name string) (*registryDomain.Entry, error)
	GetByHName(ctx context.Context, h hname.HName) (*registryDomain.Entry, error)
	List(ctx context.Context, offset, limit int) ([]*registryDomain.Entry, error)
	Delete(ctx context.Context, h hname.HName) error
}

// RegistryUseCase defines hashing and name registry operations.
type RegistryUseCase interface {
	// Hash returns the hname of every name, in order. It never touches storage.
	Hash(ctx context.Context, names []string) ([]hname.HName, error)
	Register(ctx context.Context, name string, kind registryDomain.Kind) (*registryDomain.Entry, error)
	GetByName(ctx context.Context, name string) (*registryDomain.Entry, error)
	GetByHName(ctx context.Context, h hname.HName) (*registryDomain.Entry, error)
	List(ctx context.Context, offset, limit int) ([]*registryDomain.Entry, error)
	Delete(ctx context.Context, h hname.HName) error
}
