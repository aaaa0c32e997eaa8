// Package repository implements persistence for the name registry.
//
// Each repository has a PostgreSQL and a MySQL implementation. Both are
// transaction-aware via database.GetTx, so use cases can run a collision check
// and the insert atomically:
//
//	err := txManager.WithTx(ctx, func(txCtx context.Context) error {
//	    if _, err := repo.GetByHName(txCtx, entry.HName); err == nil {
//	        return domain.ErrHNameCollision
//	    }
//	    return repo.Create(txCtx, entry)
//	})
//
// The unique indexes on name and hname back up the check when two writers race.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/allisson/hname/internal/database"
	apperrors "github.com/allisson/hname/internal/errors"
	"github.com/allisson/hname/internal/hname"
	registryDomain "github.com/allisson/hname/internal/registry/domain"
)

const (
	nameIndex  = "uq_registry_entries_name"
	hnameIndex = "uq_registry_entries_hname"
)

// PostgreSQLEntryRepository implements entry persistence for PostgreSQL.
//
// Schema (migrations/postgresql):
//   - id: UUID PRIMARY KEY
//   - name: TEXT, unique
//   - kind: TEXT
//   - hname: BIGINT, unique (uint32 widened, PostgreSQL has no unsigned types)
//   - created_at: TIMESTAMPTZ
type PostgreSQLEntryRepository struct {
	db *sql.DB
}

// Create inserts a new entry.
func (p *PostgreSQLEntryRepository) Create(ctx context.Context, entry *registryDomain.Entry) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO registry_entries (id, name, kind, hname, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.Name,
		string(entry.Kind),
		int64(entry.HName),
		entry.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return uniqueViolation(pqErr.Constraint)
		}
		return database.WrapError(err, "failed to create registry entry")
	}
	return nil
}

// GetByName retrieves the entry registered under name.
func (p *PostgreSQLEntryRepository) GetByName(ctx context.Context, name string) (*registryDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, kind, hname, created_at
			  FROM registry_entries
			  WHERE name = $1`

	entry, err := scanPostgreSQLEntry(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registryDomain.ErrEntryNotFound
		}
		return nil, database.WrapError(err, "failed to get registry entry by name")
	}
	return entry, nil
}

// GetByHName retrieves the entry owning h.
func (p *PostgreSQLEntryRepository) GetByHName(ctx context.Context, h hname.HName) (*registryDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, kind, hname, created_at
			  FROM registry_entries
			  WHERE hname = $1`

	entry, err := scanPostgreSQLEntry(querier.QueryRowContext(ctx, query, int64(h)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registryDomain.ErrEntryNotFound
		}
		return nil, database.WrapError(err, "failed to get registry entry by hname")
	}
	return entry, nil
}

// List returns entries ordered by name.
func (p *PostgreSQLEntryRepository) List(ctx context.Context, offset, limit int) ([]*registryDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, name, kind, hname, created_at
			  FROM registry_entries
			  ORDER BY name ASC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, database.WrapError(err, "failed to list registry entries")
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*registryDomain.Entry, 0)
	for rows.Next() {
		entry, err := scanPostgreSQLEntry(rows)
		if err != nil {
			return nil, database.WrapError(err, "failed to scan registry entry")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, database.WrapError(err, "failed to iterate registry entries")
	}

	return entries, nil
}

// Delete removes the entry owning h. Returns ErrEntryNotFound when nothing was deleted.
func (p *PostgreSQLEntryRepository) Delete(ctx context.Context, h hname.HName) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM registry_entries WHERE hname = $1`, int64(h))
	if err != nil {
		return database.WrapError(err, "failed to delete registry entry")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return database.WrapError(err, "failed to get affected rows")
	}
	if affected == 0 {
		return registryDomain.ErrEntryNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPostgreSQLEntry(row rowScanner) (*registryDomain.Entry, error) {
	var entry registryDomain.Entry
	var kind string
	var h int64

	if err := row.Scan(&entry.ID, &entry.Name, &kind, &h, &entry.CreatedAt); err != nil {
		return nil, err
	}
	entry.Kind = registryDomain.Kind(kind)
	entry.HName = hname.HName(uint32(h))
	return &entry, nil
}

// uniqueViolation maps the violated index to the matching domain error.
func uniqueViolation(index string) error {
	switch index {
	case hnameIndex:
		return registryDomain.ErrHNameCollision
	case nameIndex:
		return registryDomain.ErrEntryAlreadyExists
	}
	return apperrors.Wrap(apperrors.ErrConflict, "registry entry violates a unique constraint")
}

// mysqlDuplicateKey extracts the index from a MySQL 1062 message such as
// "Duplicate entry 'x' for key 'registry_entries.uq_registry_entries_name'".
// The duplicated value can contain anything, so only the trailing key is read.
func mysqlDuplicateKey(message string) string {
	const marker = " for key '"
	i := strings.LastIndex(message, marker)
	if i < 0 || !strings.HasSuffix(message, "'") {
		return ""
	}
	key := strings.TrimSuffix(message[i+len(marker):], "'")
	if dot := strings.LastIndex(key, "."); dot >= 0 {
		key = key[dot+1:]
	}
	return key
}

// NewPostgreSQLEntryRepository creates a new PostgreSQL entry repository.
func NewPostgreSQLEntryRepository(db *sql.DB) *PostgreSQLEntryRepository {
	return &PostgreSQLEntryRepository{db: db}
}
