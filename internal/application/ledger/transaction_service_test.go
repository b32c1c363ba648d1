package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditapp "github.com/finapp/backend/internal/application/audit"
	"github.com/finapp/backend/internal/domain/audit"
	"github.com/finapp/backend/internal/domain/ledger"
	"github.com/finapp/backend/internal/domain/partner"
	"github.com/finapp/backend/internal/domain/shared"
)

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]ledger.Transaction, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByCategory(ctx context.Context, category string) ([]ledger.Transaction, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]ledger.Transaction, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ledger.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByName(ctx context.Context, name string) (*partner.Client, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByEmail(ctx context.Context, email string) (*partner.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIndustry(ctx context.Context, industry string) ([]partner.Client, error) {
	args := m.Called(ctx, industry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Search(ctx context.Context, term string) ([]partner.Client, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Create(ctx context.Context, client *partner.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, client *partner.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockLogRepository is a mock implementation of audit.LogRepository
type MockLogRepository struct {
	mock.Mock
}

func (m *MockLogRepository) Create(ctx context.Context, log *audit.Log) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockLogRepository) FindByRecordID(ctx context.Context, recordID uuid.UUID) ([]audit.Log, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.Log), args.Error(1)
}

func (m *MockLogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]audit.Log, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]audit.Log), args.Error(1)
}

func newTestTransactionService() (*TransactionService, *MockTransactionRepository, *MockClientRepository, *MockLogRepository) {
	transactions := new(MockTransactionRepository)
	clients := new(MockClientRepository)
	logs := new(MockLogRepository)
	return NewTransactionService(transactions, clients, auditapp.NewRecorder(logs)), transactions, clients, logs
}

func TestTransactionService_Create(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()
	clientID := uuid.New()
	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	t.Run("records transaction and audits", func(t *testing.T) {
		svc, transactions, clients, logs := newTestTransactionService()

		client, err := partner.NewClient("Acme Corp", "", "", "", "")
		require.NoError(t, err)
		clients.On("FindByID", ctx, clientID).Return(client, nil)
		transactions.On("Create", ctx, mock.AnythingOfType("*ledger.Transaction")).Return(nil)
		logs.On("Create", ctx, mock.MatchedBy(func(l *audit.Log) bool {
			return l.TableName == "financial_transactions" && l.ChangeType == audit.ChangeTypeCreate
		})).Return(nil)

		resp, err := svc.Create(ctx, actor, CreateTransactionRequest{
			ClientID:        clientID,
			TransactionDate: yesterday,
			Amount:          decimal.NewFromFloat(249.99),
			Description:     "Consulting fee",
			Category:        "services",
		})

		require.NoError(t, err)
		assert.Equal(t, clientID, resp.ClientID)
		assert.Equal(t, actor, resp.CreatedBy)
		logs.AssertExpectations(t)
	})

	t.Run("rejects unknown client", func(t *testing.T) {
		svc, transactions, clients, _ := newTestTransactionService()
		clients.On("FindByID", ctx, clientID).Return(nil, shared.ErrNotFound)

		_, err := svc.Create(ctx, actor, CreateTransactionRequest{
			ClientID:        clientID,
			TransactionDate: yesterday,
			Amount:          decimal.NewFromInt(10),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc, _, clients, _ := newTestTransactionService()
		client, err := partner.NewClient("Acme Corp", "", "", "", "")
		require.NoError(t, err)
		clients.On("FindByID", ctx, clientID).Return(client, nil)

		_, err = svc.Create(ctx, actor, CreateTransactionRequest{
			ClientID:        clientID,
			TransactionDate: yesterday,
			Amount:          decimal.Zero,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_AMOUNT", domainErr.Code)
	})
}

func TestTransactionService_Update(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()
	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	t.Run("updates amount and audits", func(t *testing.T) {
		svc, transactions, _, logs := newTestTransactionService()

		tx, err := ledger.NewTransaction(uuid.New(), actor, yesterday, decimal.NewFromInt(100), "initial", "fees")
		require.NoError(t, err)

		transactions.On("FindByID", ctx, tx.ID).Return(tx, nil)
		transactions.On("Update", ctx, tx).Return(nil)
		logs.On("Create", ctx, mock.MatchedBy(func(l *audit.Log) bool {
			return l.ChangeType == audit.ChangeTypeUpdate
		})).Return(nil)

		amount := decimal.NewFromInt(250)
		resp, err := svc.Update(ctx, actor, tx.ID, UpdateTransactionRequest{Amount: &amount})

		require.NoError(t, err)
		assert.True(t, resp.Amount.Equal(amount))
	})

	t.Run("invalid amount leaves transaction unchanged", func(t *testing.T) {
		svc, transactions, _, _ := newTestTransactionService()

		tx, err := ledger.NewTransaction(uuid.New(), actor, yesterday, decimal.NewFromInt(100), "initial", "fees")
		require.NoError(t, err)

		transactions.On("FindByID", ctx, tx.ID).Return(tx, nil)

		negative := decimal.NewFromInt(-5)
		_, err = svc.Update(ctx, actor, tx.ID, UpdateTransactionRequest{Amount: &negative})

		require.Error(t, err)
		assert.True(t, tx.Amount.Equal(decimal.NewFromInt(100)))
		transactions.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestTransactionService_ListByDateRange(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects inverted range", func(t *testing.T) {
		svc, transactions, _, _ := newTestTransactionService()

		_, err := svc.ListByDateRange(ctx, DateRangeRequest{
			Start: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_RANGE", domainErr.Code)
		transactions.AssertNotCalled(t, "FindByDateRange", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("passes bounds through", func(t *testing.T) {
		svc, transactions, _, _ := newTestTransactionService()

		start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		transactions.On("FindByDateRange", ctx, start, end).Return([]ledger.Transaction{}, nil)

		_, err := svc.ListByDateRange(ctx, DateRangeRequest{Start: start, End: end})
		require.NoError(t, err)
		transactions.AssertExpectations(t)
	})
}

func TestTransactionService_Delete(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()
	yesterday := time.Now().UTC().AddDate(0, 0, -1)

	t.Run("deletes and audits", func(t *testing.T) {
		svc, transactions, _, logs := newTestTransactionService()

		tx, err := ledger.NewTransaction(uuid.New(), actor, yesterday, decimal.NewFromInt(42), "", "")
		require.NoError(t, err)

		transactions.On("FindByID", ctx, tx.ID).Return(tx, nil)
		transactions.On("Delete", ctx, tx.ID).Return(nil)
		logs.On("Create", ctx, mock.MatchedBy(func(l *audit.Log) bool {
			return l.ChangeType == audit.ChangeTypeDelete && l.RecordID == tx.ID
		})).Return(nil)

		require.NoError(t, svc.Delete(ctx, actor, tx.ID))
		logs.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		svc, transactions, _, _ := newTestTransactionService()
		id := uuid.New()
		transactions.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		err := svc.Delete(ctx, actor, id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
