package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finapp/backend/internal/domain/billing"
	"github.com/finapp/backend/internal/domain/shared"
)

const invoiceNamespace = "invoice"

// Overdue lists go stale as time passes even without writes, so they
// carry their own short TTL.
const overdueTTL = 300 * time.Second

// CachedInvoiceRepository wraps an InvoiceRepository with cache-aside
// reads and invalidate-on-write.
type CachedInvoiceRepository struct {
	inner  billing.InvoiceRepository
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedInvoiceRepository(inner billing.InvoiceRepository, store Store, ttl time.Duration, logger *zap.Logger) *CachedInvoiceRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedInvoiceRepository{inner: inner, store: store, ttl: ttl, logger: logger}
}

func (r *CachedInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	key := IDKey(invoiceNamespace, id)

	if payload, hit, err := r.store.Get(ctx, key); err != nil {
		r.logger.Warn("invoice cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		var doc invoiceDocument
		if err := decode(payload, &doc); err == nil {
			if invoice, err := doc.toDomain(); err == nil {
				return invoice, nil
			}
		}
		r.logger.Warn("invoice cache entry unreadable, falling back to store", zap.String("key", key))
	}

	invoice, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.populate(ctx, key, newInvoiceDocument(invoice), r.ttl)
	return invoice, nil
}

func (r *CachedInvoiceRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]billing.Invoice, error) {
	key := ListKey(invoiceNamespace, "client", clientID.String())
	return r.cachedList(ctx, key, r.ttl, func() ([]billing.Invoice, error) {
		return r.inner.FindByClientID(ctx, clientID)
	})
}

func (r *CachedInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	filter = filter.Normalize()
	key := ListKey(invoiceNamespace,
		strconv.Itoa(filter.Skip), strconv.Itoa(filter.Limit), keyPart(filter.Search))
	return r.cachedList(ctx, key, r.ttl, func() ([]billing.Invoice, error) {
		return r.inner.FindAll(ctx, filter)
	})
}

func (r *CachedInvoiceRepository) Search(ctx context.Context, criteria billing.SearchCriteria) ([]billing.Invoice, error) {
	key := ListKey(invoiceNamespace, "search", searchVariant(criteria))
	return r.cachedList(ctx, key, r.ttl, func() ([]billing.Invoice, error) {
		return r.inner.Search(ctx, criteria)
	})
}

func (r *CachedInvoiceRepository) FindOverdue(ctx context.Context, clientID *uuid.UUID) ([]billing.Invoice, error) {
	key := OverdueKey(clientID)
	return r.cachedList(ctx, key, overdueTTL, func() ([]billing.Invoice, error) {
		return r.inner.FindOverdue(ctx, clientID)
	})
}

func (r *CachedInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	if err := r.inner.Create(ctx, invoice); err != nil {
		return err
	}
	r.invalidate(ctx, invoice.ID)
	return nil
}

func (r *CachedInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	if err := r.inner.Update(ctx, invoice); err != nil {
		return err
	}
	r.invalidate(ctx, invoice.ID)
	return nil
}

func (r *CachedInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedInvoiceRepository) cachedList(ctx context.Context, key string, ttl time.Duration, load func() ([]billing.Invoice, error)) ([]billing.Invoice, error) {
	if payload, hit, err := r.store.Get(ctx, key); err != nil {
		r.logger.Warn("invoice cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		var docs []invoiceDocument
		if err := decode(payload, &docs); err == nil {
			invoices := make([]billing.Invoice, 0, len(docs))
			ok := true
			for _, doc := range docs {
				invoice, err := doc.toDomain()
				if err != nil {
					ok = false
					break
				}
				invoices = append(invoices, *invoice)
			}
			if ok {
				return invoices, nil
			}
		}
		r.logger.Warn("invoice cache entry unreadable, falling back to store", zap.String("key", key))
	}

	invoices, err := load()
	if err != nil {
		return nil, err
	}

	docs := make([]invoiceDocument, len(invoices))
	for i := range invoices {
		docs[i] = newInvoiceDocument(&invoices[i])
	}
	r.populate(ctx, key, docs, ttl)
	r.index(ctx, key)
	return invoices, nil
}

func (r *CachedInvoiceRepository) populate(ctx context.Context, key string, doc any, ttl time.Duration) {
	payload, err := encode(doc)
	if err != nil {
		r.logger.Warn("invoice cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, key, payload, ttl); err != nil {
		r.logger.Warn("invoice cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// index registers list and overdue keys so a single index sweep clears
// every derived entry on write.
func (r *CachedInvoiceRepository) index(ctx context.Context, key string) {
	if err := r.store.AddToIndex(ctx, ListIndexKey(invoiceNamespace), key); err != nil {
		r.logger.Warn("invoice cache index add failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedInvoiceRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.store.Delete(ctx, IDKey(invoiceNamespace, id)); err != nil {
		r.logger.Warn("invoice cache invalidation failed", zap.String("id", id.String()), zap.Error(err))
	}
	if err := r.store.InvalidateIndex(ctx, ListIndexKey(invoiceNamespace)); err != nil {
		r.logger.Warn("invoice list cache invalidation failed", zap.Error(err))
	}
}

func searchVariant(criteria billing.SearchCriteria) string {
	var sb strings.Builder
	if criteria.ClientID != nil {
		sb.WriteString(criteria.ClientID.String())
	}
	sb.WriteByte('|')
	if criteria.Status != nil {
		sb.WriteString(criteria.Status.String())
	}
	sb.WriteByte('|')
	if criteria.StartDate != nil {
		sb.WriteString(criteria.StartDate.UTC().Format(time.RFC3339))
	}
	sb.WriteByte('|')
	if criteria.EndDate != nil {
		sb.WriteString(criteria.EndDate.UTC().Format(time.RFC3339))
	}
	sb.WriteByte('|')
	if criteria.MinAmount != nil {
		sb.WriteString(criteria.MinAmount.String())
	}
	sb.WriteByte('|')
	if criteria.MaxAmount != nil {
		sb.WriteString(criteria.MaxAmount.String())
	}
	sb.WriteByte('|')
	sb.WriteString(strconv.FormatBool(criteria.IsOverdue))
	return keyPart(sb.String())
}

var _ billing.InvoiceRepository = (*CachedInvoiceRepository)(nil)
