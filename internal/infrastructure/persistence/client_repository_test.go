package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/finapp/backend/internal/domain/partner"
	"github.com/finapp/backend/internal/domain/shared"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormClientRepository_FindByID(t *testing.T) {
	t.Run("finds existing client", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(db)

		clientID := uuid.New()
		now := time.Now().UTC()

		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name", "industry", "contact_email"}).
			AddRow(clientID, now, now, "Acme Corp", "Manufacturing", "ops@acme.test")

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, 1).
			WillReturnRows(rows)

		client, err := repo.FindByID(context.Background(), clientID)

		require.NoError(t, err)
		assert.Equal(t, clientID, client.ID)
		assert.Equal(t, "Acme Corp", client.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(db)

		clientID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(clientID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), clientID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormClientRepository_FindByName(t *testing.T) {
	t.Run("trims the lookup name", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(db)

		clientID := uuid.New()
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "name"}).
			AddRow(clientID, now, now, "Acme Corp")

		mock.ExpectQuery(`SELECT \* FROM "clients" WHERE name = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("Acme Corp", 1).
			WillReturnRows(rows)

		client, err := repo.FindByName(context.Background(), "  Acme Corp  ")
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", client.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormClientRepository_Create(t *testing.T) {
	t.Run("maps duplicate key to ErrAlreadyExists", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(db)

		client, err := partner.NewClient("Acme Corp", "Manufacturing", "", "", "")
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "clients"`).
			WillReturnError(gorm.ErrDuplicatedKey)

		err = repo.Create(context.Background(), client)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestGormClientRepository_Update(t *testing.T) {
	t.Run("zero rows affected means not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(db)

		client, err := partner.NewClient("Acme Corp", "", "", "", "")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "clients" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), client)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormClientRepository_Delete(t *testing.T) {
	t.Run("deletes existing client", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(db)

		clientID := uuid.New()
		mock.ExpectExec(`DELETE FROM "clients" WHERE id = \$1`).
			WithArgs(clientID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), clientID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("zero rows affected means not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormClientRepository(db)

		mock.ExpectExec(`DELETE FROM "clients" WHERE id = \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), shared.ErrNotFound)
	})
}
