package usecase

import (
	"context"
	"time"

	"github.com/allisson/hname/internal/hname"
	"github.com/allisson/hname/internal/metrics"
	registryDomain "github.com/allisson/hname/internal/registry/domain"
)

// registryUseCaseWithMetrics decorates RegistryUseCase with metrics instrumentation.
type registryUseCaseWithMetrics struct {
	next    RegistryUseCase
	metrics metrics.BusinessMetrics
}

// NewRegistryUseCaseWithMetrics wraps a RegistryUseCase with metrics recording.
func NewRegistryUseCaseWithMetrics(useCase RegistryUseCase, m metrics.BusinessMetrics) RegistryUseCase {
	return &registryUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (r *registryUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "registry", operation, status)
	r.metrics.RecordDuration(ctx, "registry", operation, time.Since(start), status)
}

// Hash records metrics for hashing operations.
func (r *registryUseCaseWithMetrics) Hash(ctx context.Context, names []string) ([]hname.HName, error) {
	start := time.Now()
	result, err := r.next.Hash(ctx, names)
	r.record(ctx, "hash", start, err)
	if err == nil {
		r.metrics.RecordNamesHashed(ctx, len(result))
	}
	return result, err
}

// Register records metrics for registrations.
func (r *registryUseCaseWithMetrics) Register(
	ctx context.Context,
	name string,
	kind registryDomain.Kind,
) (*registryDomain.Entry, error) {
	start := time.Now()
	entry, err := r.next.Register(ctx, name, kind)
	r.record(ctx, "entry_register", start, err)
	return entry, err
}

// GetByName records metrics for lookups by name.
func (r *registryUseCaseWithMetrics) GetByName(ctx context.Context, name string) (*registryDomain.Entry, error) {
	start := time.Now()
	entry, err := r.next.GetByName(ctx, name)
	r.record(ctx, "entry_get_by_name", start, err)
	return entry, err
}

// GetByHName records metrics for reverse lookups.
func (r *registryUseCaseWithMetrics) GetByHName(ctx context.Context, h hname.HName) (*registryDomain.Entry, error) {
	start := time.Now()
	entry, err := r.next.GetByHName(ctx, h)
	r.record(ctx, "entry_get_by_hname", start, err)
	return entry, err
}

// List records metrics for listing.
func (r *registryUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*registryDomain.Entry, error) {
	start := time.Now()
	entries, err := r.next.List(ctx, offset, limit)
	r.record(ctx, "entry_list", start, err)
	return entries, err
}

// Delete records metrics for deletions.
func (r *registryUseCaseWithMetrics) Delete(ctx context.Context, h hname.HName) error {
	start := time.Now()
	err := r.next.Delete(ctx, h)
	r.record(ctx, "entry_delete", start, err)
	return err
}
