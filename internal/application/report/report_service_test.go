package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finapp/backend/internal/domain/billing"
	"github.com/finapp/backend/internal/domain/ledger"
	"github.com/finapp/backend/internal/domain/partner"
	"github.com/finapp/backend/internal/domain/shared"
	"github.com/finapp/backend/internal/infrastructure/ratelimit"
	"github.com/finapp/backend/internal/infrastructure/report"
)

type stubClientRepository struct {
	partner.ClientRepository
	client *partner.Client
	calls  int
}

func (s *stubClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	s.calls++
	if s.client == nil || s.client.ID != id {
		return nil, shared.ErrNotFound
	}
	return s.client, nil
}

type stubInvoiceRepository struct {
	billing.InvoiceRepository
	invoices []billing.Invoice
}

func (s *stubInvoiceRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]billing.Invoice, error) {
	return s.invoices, nil
}

type stubTransactionRepository struct {
	ledger.TransactionRepository
	transactions []ledger.Transaction
}

func (s *stubTransactionRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]ledger.Transaction, error) {
	return s.transactions, nil
}

func newTestReportService(t *testing.T) (*ReportService, *partner.Client, *stubClientRepository) {
	t.Helper()

	client, err := partner.NewClient("Acme Corp", "manufacturing", "", "", "")
	require.NoError(t, err)

	invoice, err := billing.NewInvoice(client.ID, uuid.New(),
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(1000), decimal.NewFromInt(400))
	require.NoError(t, err)

	tx, err := ledger.NewTransaction(client.ID, uuid.New(),
		time.Now().UTC().AddDate(0, 0, -2), decimal.NewFromInt(400), "partial payment", "payments")
	require.NoError(t, err)

	clients := &stubClientRepository{client: client}
	svc := NewReportService(
		ratelimit.New(ratelimit.DefaultMaxRequests, ratelimit.DefaultWindow),
		clients,
		&stubInvoiceRepository{invoices: []billing.Invoice{*invoice}},
		&stubTransactionRepository{transactions: []ledger.Transaction{*tx}},
		report.NewPDFRenderer(),
	)
	return svc, client, clients
}

func TestReportService_GenerateClientReport(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("renders a PDF for the client", func(t *testing.T) {
		svc, client, _ := newTestReportService(t)

		generated, err := svc.GenerateClientReport(ctx, userID, client.ID)

		require.NoError(t, err)
		assert.Equal(t, "application/pdf", generated.ContentType)
		assert.Contains(t, generated.Filename, ".pdf")
		assert.True(t, bytes.HasPrefix(generated.Content, []byte("%PDF")))
	})

	t.Run("unknown client propagates not found", func(t *testing.T) {
		svc, _, _ := newTestReportService(t)

		_, err := svc.GenerateClientReport(ctx, userID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("sixth request within the window is rejected before any work", func(t *testing.T) {
		svc, client, clients := newTestReportService(t)

		for i := 0; i < 5; i++ {
			_, err := svc.GenerateClientReport(ctx, userID, client.ID)
			require.NoError(t, err)
		}
		fetchesBefore := clients.calls

		_, err := svc.GenerateClientReport(ctx, userID, client.ID)

		var exceeded *ratelimit.ExceededError
		require.ErrorAs(t, err, &exceeded)
		assert.Greater(t, exceeded.Wait, time.Duration(0))
		assert.Equal(t, fetchesBefore, clients.calls)
	})

	t.Run("limit is per user", func(t *testing.T) {
		svc, client, _ := newTestReportService(t)

		for i := 0; i < 5; i++ {
			_, err := svc.GenerateClientReport(ctx, userID, client.ID)
			require.NoError(t, err)
		}

		_, err := svc.GenerateClientReport(ctx, uuid.New(), client.ID)
		assert.NoError(t, err)
	})
}

func TestBuildReportTotals(t *testing.T) {
	client, err := partner.NewClient("Acme Corp", "", "", "", "")
	require.NoError(t, err)

	first, err := billing.NewInvoice(client.ID, uuid.New(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(1000), decimal.NewFromInt(1000))
	require.NoError(t, err)

	second, err := billing.NewInvoice(client.ID, uuid.New(),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		decimal.NewFromInt(500), decimal.NewFromInt(200))
	require.NoError(t, err)

	data := buildReport(client, []billing.Invoice{*first, *second}, nil)

	assert.True(t, data.TotalInvoiced.Equal(decimal.NewFromInt(1500)))
	assert.True(t, data.TotalPaid.Equal(decimal.NewFromInt(1200)))
	assert.True(t, data.TotalOutstanding.Equal(decimal.NewFromInt(300)))
	assert.Len(t, data.Invoices, 2)
	assert.Empty(t, data.Transactions)
}
