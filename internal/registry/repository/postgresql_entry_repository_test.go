package repository

import (
	"context"
	"database/sql"
	"net"
	"regexp"
	"syscall"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/hname/internal/database"
	apperrors "github.com/allisson/hname/internal/errors"
	"github.com/allisson/hname/internal/hname"
	registryDomain "github.com/allisson/hname/internal/registry/domain"
)

var entryColumns = []string{"id", "name", "kind", "hname", "created_at"}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func newTestEntry(t *testing.T, name string, kind registryDomain.Kind) *registryDomain.Entry {
	t.Helper()
	entry, err := registryDomain.NewEntry(name, kind, hname.Hash(name))
	require.NoError(t, err)
	return entry
}

func TestNewPostgreSQLEntryRepository(t *testing.T) {
	db, _ := setupMockDB(t)

	repo := NewPostgreSQLEntryRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &PostgreSQLEntryRepository{}, repo)
}

func TestPostgreSQLEntryRepository_Create(t *testing.T) {
	insert := regexp.QuoteMeta("INSERT INTO registry_entries (id, name, kind, hname, created_at)")

	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)
		entry := newTestEntry(t, "lockBets", registryDomain.KindFunction)

		mock.ExpectExec(insert).
			WithArgs(sqlmock.AnyArg(), "lockBets", "function", int64(0xe163b43c), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(context.Background(), entry))
	})

	t.Run("Success_WithinTransaction", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)
		entry := newTestEntry(t, "fairroulette", registryDomain.KindContract)

		mock.ExpectBegin()
		mock.ExpectExec(insert).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := database.NewTxManager(db).WithTx(context.Background(), func(ctx context.Context) error {
			return repo.Create(ctx, entry)
		})
		assert.NoError(t, err)
	})

	t.Run("Error_DuplicateName", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec(insert).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_registry_entries_name"})

		err := repo.Create(context.Background(), newTestEntry(t, "lockBets", registryDomain.KindFunction))
		assert.ErrorIs(t, err, registryDomain.ErrEntryAlreadyExists)
	})

	t.Run("Error_DuplicateHName", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec(insert).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_registry_entries_hname"})

		err := repo.Create(context.Background(), newTestEntry(t, "lockBets", registryDomain.KindFunction))
		assert.ErrorIs(t, err, registryDomain.ErrHNameCollision)
	})

	t.Run("Error_Database", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec(insert).WillReturnError(assert.AnError)

		err := repo.Create(context.Background(), newTestEntry(t, "lockBets", registryDomain.KindFunction))
		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestPostgreSQLEntryRepository_GetByName(t *testing.T) {
	query := regexp.QuoteMeta("FROM registry_entries") + `\s+WHERE name = \$1`

	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		id := uuid.Must(uuid.NewV7())
		createdAt := time.Now().UTC()
		mock.ExpectQuery(query).
			WithArgs("payWinners").
			WillReturnRows(sqlmock.NewRows(entryColumns).
				AddRow(id.String(), "payWinners", "function", int64(0xfb2b0144), createdAt))

		entry, err := repo.GetByName(context.Background(), "payWinners")
		require.NoError(t, err)
		assert.Equal(t, id, entry.ID)
		assert.Equal(t, "payWinners", entry.Name)
		assert.Equal(t, registryDomain.KindFunction, entry.Kind)
		assert.Equal(t, hname.HName(0xfb2b0144), entry.HName)
		assert.Equal(t, createdAt, entry.CreatedAt)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectQuery(query).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByName(context.Background(), "missing")
		assert.ErrorIs(t, err, registryDomain.ErrEntryNotFound)
	})
}

func TestPostgreSQLEntryRepository_GetByHName(t *testing.T) {
	query := regexp.QuoteMeta("FROM registry_entries") + `\s+WHERE hname = \$1`

	t.Run("Success_HighBitSet", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectQuery(query).
			WithArgs(int64(0xdf79d138)).
			WillReturnRows(sqlmock.NewRows(entryColumns).
				AddRow(uuid.Must(uuid.NewV7()).String(), "fairroulette", "contract", int64(0xdf79d138), time.Now()))

		entry, err := repo.GetByHName(context.Background(), hname.HName(0xdf79d138))
		require.NoError(t, err)
		assert.Equal(t, "fairroulette", entry.Name)
		assert.Equal(t, hname.HName(0xdf79d138), entry.HName)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectQuery(query).WillReturnRows(sqlmock.NewRows(entryColumns))

		_, err := repo.GetByHName(context.Background(), hname.HName(1))
		assert.ErrorIs(t, err, registryDomain.ErrEntryNotFound)
	})
}

func TestPostgreSQLEntryRepository_List(t *testing.T) {
	query := regexp.QuoteMeta("ORDER BY name ASC")

	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		now := time.Now().UTC()
		mock.ExpectQuery(query).
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(entryColumns).
				AddRow(uuid.Must(uuid.NewV7()).String(), "lockBets", "function", int64(0xe163b43c), now).
				AddRow(uuid.Must(uuid.NewV7()).String(), "payWinners", "function", int64(0xfb2b0144), now))

		entries, err := repo.List(context.Background(), 0, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "lockBets", entries[0].Name)
		assert.Equal(t, "payWinners", entries[1].Name)
	})

	t.Run("Success_Empty", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectQuery(query).WithArgs(50, 100).WillReturnRows(sqlmock.NewRows(entryColumns))

		entries, err := repo.List(context.Background(), 100, 50)
		require.NoError(t, err)
		assert.NotNil(t, entries)
		assert.Empty(t, entries)
	})

	t.Run("Error_Query", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectQuery(query).WillReturnError(assert.AnError)

		_, err := repo.List(context.Background(), 0, 10)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestPostgreSQLEntryRepository_Delete(t *testing.T) {
	query := regexp.QuoteMeta("DELETE FROM registry_entries WHERE hname = $1")

	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec(query).WithArgs(int64(0xe163b43c)).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), hname.HName(0xe163b43c)))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec(query).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), hname.HName(0xe163b43c))
		assert.ErrorIs(t, err, registryDomain.ErrEntryNotFound)
	})
}

func TestPostgreSQLEntryRepository_Unavailable(t *testing.T) {
	byHName := regexp.QuoteMeta("FROM registry_entries") + `\s+WHERE hname = \$1`
	entryErrors := []struct {
		name string
		err  error
	}{
		{name: "connection refused", err: &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}},
		{name: "deadline exceeded", err: context.DeadlineExceeded},
		{name: "connection failure", err: &pq.Error{Code: "08006"}},
	}

	for _, tt := range entryErrors {
		t.Run("GetByHName_"+tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostgreSQLEntryRepository(db)

			mock.ExpectQuery(byHName).WillReturnError(tt.err)

			_, err := repo.GetByHName(context.Background(), hname.HName(0xdf79d138))
			assert.ErrorIs(t, err, apperrors.ErrUnavailable)
			assert.NotErrorIs(t, err, registryDomain.ErrEntryNotFound)
		})
	}

	t.Run("Create", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO registry_entries")).
			WillReturnError(&net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET})

		err := repo.Create(context.Background(), newTestEntry(t, "lockBets", registryDomain.KindFunction))
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
		assert.NotErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("List", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY name ASC")).WillReturnError(context.DeadlineExceeded)

		_, err := repo.List(context.Background(), 0, 10)
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})

	t.Run("Delete", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM registry_entries")).
			WillReturnError(&pq.Error{Code: "08003"})

		err := repo.Delete(context.Background(), hname.HName(0xe163b43c))
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})

	t.Run("QueryErrorStaysInternal", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectQuery(byHName).WillReturnError(&pq.Error{Code: "42P01"})

		_, err := repo.GetByHName(context.Background(), hname.HName(1))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrUnavailable)
	})
}
