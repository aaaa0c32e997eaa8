package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/allisson/hname/internal/database"
	apperrors "github.com/allisson/hname/internal/errors"
	"github.com/allisson/hname/internal/hname"
	registryDomain "github.com/allisson/hname/internal/registry/domain"
)

// MySQLEntryRepository implements entry persistence for MySQL.
//
// Schema (migrations/mysql):
//   - id: BINARY(16) PRIMARY KEY
//   - name: VARCHAR(255), unique
//   - kind: VARCHAR(16)
//   - hname: INT UNSIGNED, unique
//   - created_at: DATETIME(6)
type MySQLEntryRepository struct {
	db *sql.DB
}

// Create inserts a new entry.
func (m *MySQLEntryRepository) Create(ctx context.Context, entry *registryDomain.Entry) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO registry_entries (id, name, kind, hname, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := entry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal entry id")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		entry.Name,
		string(entry.Kind),
		int64(entry.HName),
		entry.CreatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return uniqueViolation(mysqlDuplicateKey(mysqlErr.Message))
		}
		return database.WrapError(err, "failed to create registry entry")
	}
	return nil
}

// GetByName retrieves the entry registered under name.
func (m *MySQLEntryRepository) GetByName(ctx context.Context, name string) (*registryDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, kind, hname, created_at
			  FROM registry_entries
			  WHERE name = ?`

	entry, err := scanMySQLEntry(querier.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registryDomain.ErrEntryNotFound
		}
		return nil, database.WrapError(err, "failed to get registry entry by name")
	}
	return entry, nil
}

// GetByHName retrieves the entry owning h.
func (m *MySQLEntryRepository) GetByHName(ctx context.Context, h hname.HName) (*registryDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, kind, hname, created_at
			  FROM registry_entries
			  WHERE hname = ?`

	entry, err := scanMySQLEntry(querier.QueryRowContext(ctx, query, int64(h)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, registryDomain.ErrEntryNotFound
		}
		return nil, database.WrapError(err, "failed to get registry entry by hname")
	}
	return entry, nil
}

// List returns entries ordered by name.
func (m *MySQLEntryRepository) List(ctx context.Context, offset, limit int) ([]*registryDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, name, kind, hname, created_at
			  FROM registry_entries
			  ORDER BY name ASC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, database.WrapError(err, "failed to list registry entries")
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*registryDomain.Entry, 0)
	for rows.Next() {
		entry, err := scanMySQLEntry(rows)
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
func (m *MySQLEntryRepository) Delete(ctx context.Context, h hname.HName) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM registry_entries WHERE hname = ?`, int64(h))
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

func scanMySQLEntry(row rowScanner) (*registryDomain.Entry, error) {
	var entry registryDomain.Entry
	var id []byte
	var kind string
	var h int64

	if err := row.Scan(&id, &entry.Name, &kind, &h, &entry.CreatedAt); err != nil {
		return nil, err
	}
	if err := entry.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal entry id")
	}
	entry.Kind = registryDomain.Kind(kind)
	entry.HName = hname.HName(uint32(h))
	return &entry, nil
}

// NewMySQLEntryRepository creates a new MySQL entry repository.
func NewMySQLEntryRepository(db *sql.DB) *MySQLEntryRepository {
	return &MySQLEntryRepository{db: db}
}
