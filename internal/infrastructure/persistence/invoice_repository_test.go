package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/finapp/backend/internal/domain/billing"
	"github.com/finapp/backend/internal/domain/shared"
)

func TestGormInvoiceRepository_FindByID(t *testing.T) {
	t.Run("status is derived from amounts, not the stored column", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		invoiceID := uuid.New()
		now := time.Now().UTC()

		// Stored status deliberately contradicts the amounts.
		rows := sqlmock.NewRows([]string{
			"id", "created_at", "updated_at", "client_id", "created_by",
			"invoice_date", "due_date", "amount_due", "amount_paid", "status",
		}).AddRow(invoiceID, now, now, uuid.New(), uuid.New(),
			now.AddDate(0, -1, 0), now.AddDate(0, 1, 0),
			decimal.NewFromInt(1000), decimal.NewFromInt(1000), "PENDING")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnRows(rows)

		invoice, err := repo.FindByID(context.Background(), invoiceID)
		require.NoError(t, err)
		assert.Equal(t, billing.InvoiceStatusPaid, invoice.Status)
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		invoiceID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(invoiceID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.FindByID(context.Background(), invoiceID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormInvoiceRepository_FindOverdue(t *testing.T) {
	t.Run("filters by due date and unpaid status", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{
			"id", "created_at", "updated_at", "client_id", "created_by",
			"invoice_date", "due_date", "amount_due", "amount_paid", "status",
		}).AddRow(uuid.New(), now, now, uuid.New(), uuid.New(),
			now.AddDate(0, -2, 0), now.AddDate(0, 0, -10),
			decimal.NewFromInt(500), decimal.Zero, "PENDING")

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE due_date < \$1 AND status <> \$2 ORDER BY due_date ASC`).
			WithArgs(sqlmock.AnyArg(), "PAID").
			WillReturnRows(rows)

		invoices, err := repo.FindOverdue(context.Background(), nil)
		require.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.True(t, invoices[0].IsOverdue())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("scopes to a client when given", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		clientID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE \(due_date < \$1 AND status <> \$2\) AND client_id = \$3 ORDER BY due_date ASC`).
			WithArgs(sqlmock.AnyArg(), "PAID", clientID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		invoices, err := repo.FindOverdue(context.Background(), &clientID)
		require.NoError(t, err)
		assert.Empty(t, invoices)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_Search(t *testing.T) {
	t.Run("combines criteria into the query", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		clientID := uuid.New()
		status := billing.InvoiceStatusPending
		minAmount := decimal.NewFromInt(100)

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE client_id = \$1 AND status = \$2 AND amount_due >= \$3 ORDER BY invoice_date DESC`).
			WithArgs(clientID, "PENDING", minAmount).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.Search(context.Background(), billing.SearchCriteria{
			ClientID:  &clientID,
			Status:    &status,
			MinAmount: &minAmount,
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_Update(t *testing.T) {
	t.Run("zero rows affected means not found", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormInvoiceRepository(db)

		invoice, err := billing.NewInvoice(uuid.New(), uuid.New(),
			time.Now().UTC().AddDate(0, -1, 0), time.Now().UTC().AddDate(0, 1, 0),
			decimal.NewFromInt(100), decimal.Zero)
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "invoices" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(context.Background(), invoice), shared.ErrNotFound)
	})
}
