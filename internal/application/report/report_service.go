package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finapp/backend/internal/domain/billing"
	"github.com/finapp/backend/internal/domain/ledger"
	"github.com/finapp/backend/internal/domain/partner"
	"github.com/finapp/backend/internal/infrastructure/ratelimit"
	"github.com/finapp/backend/internal/infrastructure/report"
)

// GeneratedReport is a rendered report ready to be served
type GeneratedReport struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReportService generates client financial reports. Generation is
// rate limited per requesting user because rendering is expensive.
type ReportService struct {
	limiter      *ratelimit.Limiter
	clients      partner.ClientRepository
	invoices     billing.InvoiceRepository
	transactions ledger.TransactionRepository
	renderer     *report.PDFRenderer
}

// NewReportService creates a new ReportService
func NewReportService(limiter *ratelimit.Limiter, clients partner.ClientRepository, invoices billing.InvoiceRepository, transactions ledger.TransactionRepository, renderer *report.PDFRenderer) *ReportService {
	return &ReportService{
		limiter:      limiter,
		clients:      clients,
		invoices:     invoices,
		transactions: transactions,
		renderer:     renderer,
	}
}

// GenerateClientReport renders a PDF summarizing a client's invoices
// and transactions. The rate limit is checked before any data is
// fetched; a rejected request costs nothing.
func (s *ReportService) GenerateClientReport(ctx context.Context, userID, clientID uuid.UUID) (*GeneratedReport, error) {
	if err := s.limiter.Check(userID.String()); err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoices.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.transactions.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	data := buildReport(client, invoices, transactions)
	content, filename, err := s.renderer.Render(data)
	if err != nil {
		return nil, err
	}

	return &GeneratedReport{
		Filename:    filename,
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func buildReport(client *partner.Client, invoices []billing.Invoice, transactions []ledger.Transaction) report.ClientReport {
	data := report.ClientReport{
		ClientName:       client.Name,
		Industry:         client.Industry,
		GeneratedAt:      time.Now().UTC(),
		TotalInvoiced:    decimal.Zero,
		TotalPaid:        decimal.Zero,
		TotalOutstanding: decimal.Zero,
	}

	for i := range invoices {
		inv := &invoices[i]
		data.Invoices = append(data.Invoices, report.InvoiceLine{
			InvoiceDate: inv.InvoiceDate,
			DueDate:     inv.DueDate,
			AmountDue:   inv.AmountDue,
			AmountPaid:  inv.AmountPaid,
			Status:      inv.Status.String(),
		})
		data.TotalInvoiced = data.TotalInvoiced.Add(inv.AmountDue)
		data.TotalPaid = data.TotalPaid.Add(inv.AmountPaid)
		data.TotalOutstanding = data.TotalOutstanding.Add(inv.OutstandingAmount())
	}

	for i := range transactions {
		tx := &transactions[i]
		data.Transactions = append(data.Transactions, report.TransactionLine{
			Date:        tx.TransactionDate,
			Amount:      tx.Amount,
			Category:    tx.Category,
			Description: tx.Description,
		})
	}

	return data
}
