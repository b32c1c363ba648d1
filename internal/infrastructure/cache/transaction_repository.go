package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finapp/backend/internal/domain/ledger"
	"github.com/finapp/backend/internal/domain/shared"
)

const transactionNamespace = "transaction"

// CachedTransactionRepository wraps a TransactionRepository with
// cache-aside reads and invalidate-on-write.
type CachedTransactionRepository struct {
	inner  ledger.TransactionRepository
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedTransactionRepository(inner ledger.TransactionRepository, store Store, ttl time.Duration, logger *zap.Logger) *CachedTransactionRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedTransactionRepository{inner: inner, store: store, ttl: ttl, logger: logger}
}

func (r *CachedTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	key := IDKey(transactionNamespace, id)

	if payload, hit, err := r.store.Get(ctx, key); err != nil {
		r.logger.Warn("transaction cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		var doc transactionDocument
		if err := decode(payload, &doc); err == nil {
			if tx, err := doc.toDomain(); err == nil {
				return tx, nil
			}
		}
		r.logger.Warn("transaction cache entry unreadable, falling back to store", zap.String("key", key))
	}

	tx, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.populate(ctx, key, newTransactionDocument(tx))
	return tx, nil
}

func (r *CachedTransactionRepository) FindByClientID(ctx context.Context, clientID uuid.UUID) ([]ledger.Transaction, error) {
	key := ListKey(transactionNamespace, "client", clientID.String())
	return r.cachedList(ctx, key, func() ([]ledger.Transaction, error) {
		return r.inner.FindByClientID(ctx, clientID)
	})
}

func (r *CachedTransactionRepository) FindByCategory(ctx context.Context, category string) ([]ledger.Transaction, error) {
	key := ListKey(transactionNamespace, "category", keyPart(category))
	return r.cachedList(ctx, key, func() ([]ledger.Transaction, error) {
		return r.inner.FindByCategory(ctx, category)
	})
}

func (r *CachedTransactionRepository) FindByDateRange(ctx context.Context, start, end time.Time) ([]ledger.Transaction, error) {
	key := ListKey(transactionNamespace, "range",
		keyPart(start.UTC().Format(time.RFC3339)+"|"+end.UTC().Format(time.RFC3339)))
	return r.cachedList(ctx, key, func() ([]ledger.Transaction, error) {
		return r.inner.FindByDateRange(ctx, start, end)
	})
}

func (r *CachedTransactionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Transaction, error) {
	filter = filter.Normalize()
	key := ListKey(transactionNamespace,
		strconv.Itoa(filter.Skip), strconv.Itoa(filter.Limit), keyPart(filter.Search))
	return r.cachedList(ctx, key, func() ([]ledger.Transaction, error) {
		return r.inner.FindAll(ctx, filter)
	})
}

func (r *CachedTransactionRepository) Create(ctx context.Context, tx *ledger.Transaction) error {
	if err := r.inner.Create(ctx, tx); err != nil {
		return err
	}
	r.invalidate(ctx, tx.ID)
	return nil
}

func (r *CachedTransactionRepository) Update(ctx context.Context, tx *ledger.Transaction) error {
	if err := r.inner.Update(ctx, tx); err != nil {
		return err
	}
	r.invalidate(ctx, tx.ID)
	return nil
}

func (r *CachedTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *CachedTransactionRepository) cachedList(ctx context.Context, key string, load func() ([]ledger.Transaction, error)) ([]ledger.Transaction, error) {
	if payload, hit, err := r.store.Get(ctx, key); err != nil {
		r.logger.Warn("transaction cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		var docs []transactionDocument
		if err := decode(payload, &docs); err == nil {
			txs := make([]ledger.Transaction, 0, len(docs))
			ok := true
			for _, doc := range docs {
				tx, err := doc.toDomain()
				if err != nil {
					ok = false
					break
				}
				txs = append(txs, *tx)
			}
			if ok {
				return txs, nil
			}
		}
		r.logger.Warn("transaction cache entry unreadable, falling back to store", zap.String("key", key))
	}

	txs, err := load()
	if err != nil {
		return nil, err
	}

	docs := make([]transactionDocument, len(txs))
	for i := range txs {
		docs[i] = newTransactionDocument(&txs[i])
	}
	r.populate(ctx, key, docs)
	r.index(ctx, key)
	return txs, nil
}

func (r *CachedTransactionRepository) populate(ctx context.Context, key string, doc any) {
	payload, err := encode(doc)
	if err != nil {
		r.logger.Warn("transaction cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, key, payload, r.ttl); err != nil {
		r.logger.Warn("transaction cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedTransactionRepository) index(ctx context.Context, key string) {
	if err := r.store.AddToIndex(ctx, ListIndexKey(transactionNamespace), key); err != nil {
		r.logger.Warn("transaction cache index add failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedTransactionRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.store.Delete(ctx, IDKey(transactionNamespace, id)); err != nil {
		r.logger.Warn("transaction cache invalidation failed", zap.String("id", id.String()), zap.Error(err))
	}
	if err := r.store.InvalidateIndex(ctx, ListIndexKey(transactionNamespace)); err != nil {
		r.logger.Warn("transaction list cache invalidation failed", zap.Error(err))
	}
}

var _ ledger.TransactionRepository = (*CachedTransactionRepository)(nil)
