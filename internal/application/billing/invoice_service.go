package billing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	auditapp "github.com/finapp/backend/internal/application/audit"
	"github.com/finapp/backend/internal/domain/audit"
	"github.com/finapp/backend/internal/domain/billing"
	"github.com/finapp/backend/internal/domain/partner"
	"github.com/finapp/backend/internal/domain/shared"
)

const invoiceTable = "invoices"

// InvoiceService handles invoice-related business operations
type InvoiceService struct {
	invoices billing.InvoiceRepository
	clients  partner.ClientRepository
	recorder *auditapp.Recorder
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoices billing.InvoiceRepository, clients partner.ClientRepository, recorder *auditapp.Recorder) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		clients:  clients,
		recorder: recorder,
	}
}

// Create creates a new invoice for an existing client
func (s *InvoiceService) Create(ctx context.Context, actor uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	if _, err := s.clients.FindByID(ctx, req.ClientID); err != nil {
		return nil, err
	}

	amountPaid := decimal.Zero
	if req.AmountPaid != nil {
		amountPaid = *req.AmountPaid
	}

	invoice, err := billing.NewInvoice(req.ClientID, actor, req.InvoiceDate, req.DueDate, req.AmountDue, amountPaid)
	if err != nil {
		return nil, err
	}

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, err
	}

	if err := s.recorder.LogChange(ctx, &actor, invoiceTable, invoice.ID, audit.ChangeTypeCreate,
		fmt.Sprintf("Created invoice for %s due %s", invoice.AmountDue.StringFixed(2), invoice.DueDate.Format("2006-01-02"))); err != nil {
		return nil, err
	}

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Get returns an invoice by ID
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// List returns invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, filter shared.Filter) ([]InvoiceResponse, error) {
	invoices, err := s.invoices.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

// ListByClient returns all invoices for a client
func (s *InvoiceService) ListByClient(ctx context.Context, clientID uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoices.FindByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

// Search returns invoices matching the criteria
func (s *InvoiceService) Search(ctx context.Context, req SearchInvoicesRequest) ([]InvoiceResponse, error) {
	criteria := billing.SearchCriteria{
		ClientID:  req.ClientID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		MinAmount: req.MinAmount,
		MaxAmount: req.MaxAmount,
		IsOverdue: req.IsOverdue,
	}
	if req.Status != nil {
		status := billing.InvoiceStatus(*req.Status)
		if !status.IsValid() {
			return nil, shared.NewDomainError("INVALID_STATUS", "Status must be PENDING, PARTIALLY_PAID, or PAID")
		}
		criteria.Status = &status
	}

	invoices, err := s.invoices.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

// Overdue returns unpaid invoices past their due date, optionally
// scoped to a single client
func (s *InvoiceService) Overdue(ctx context.Context, clientID *uuid.UUID) ([]InvoiceResponse, error) {
	invoices, err := s.invoices.FindOverdue(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponses(invoices), nil
}

// RecordPayment applies a payment to an invoice
func (s *InvoiceService) RecordPayment(ctx context.Context, actor, id uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := invoice.RecordPayment(req.Amount); err != nil {
		return nil, err
	}

	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}

	if err := s.recorder.LogChange(ctx, &actor, invoiceTable, invoice.ID, audit.ChangeTypeUpdate,
		fmt.Sprintf("Recorded payment of %s, status %s", req.Amount.StringFixed(2), invoice.Status)); err != nil {
		return nil, err
	}

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Update updates an invoice's amounts and dates
func (s *InvoiceService) Update(ctx context.Context, actor, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AmountDue != nil || req.AmountPaid != nil {
		amountDue := invoice.AmountDue
		amountPaid := invoice.AmountPaid
		if req.AmountDue != nil {
			amountDue = *req.AmountDue
		}
		if req.AmountPaid != nil {
			amountPaid = *req.AmountPaid
		}
		if err := invoice.UpdateAmounts(amountDue, amountPaid); err != nil {
			return nil, err
		}
	}

	if req.InvoiceDate != nil || req.DueDate != nil {
		invoiceDate := invoice.InvoiceDate
		dueDate := invoice.DueDate
		if req.InvoiceDate != nil {
			invoiceDate = *req.InvoiceDate
		}
		if req.DueDate != nil {
			dueDate = *req.DueDate
		}
		if err := invoice.UpdateDates(invoiceDate, dueDate); err != nil {
			return nil, err
		}
	}

	if err := s.invoices.Update(ctx, invoice); err != nil {
		return nil, err
	}

	if err := s.recorder.LogChange(ctx, &actor, invoiceTable, invoice.ID, audit.ChangeTypeUpdate,
		"Updated invoice amounts/dates"); err != nil {
		return nil, err
	}

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Delete removes an invoice. Paid invoices cannot be deleted.
func (s *InvoiceService) Delete(ctx context.Context, actor, id uuid.UUID) error {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !invoice.CanBeDeleted() {
		return shared.NewDomainError("INVOICE_PAID", "Paid invoices cannot be deleted")
	}

	if err := s.invoices.Delete(ctx, id); err != nil {
		return err
	}

	return s.recorder.LogChange(ctx, &actor, invoiceTable, id, audit.ChangeTypeDelete,
		fmt.Sprintf("Deleted invoice for %s", invoice.AmountDue.StringFixed(2)))
}
