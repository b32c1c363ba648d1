package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finapp/backend/internal/domain/partner"
	"github.com/finapp/backend/internal/domain/shared"
)

const clientNamespace = "client"

// CachedClientRepository wraps a ClientRepository with cache-aside
// reads and invalidate-on-write. Cache failures degrade to store-only
// reads; they never fail the request.
type CachedClientRepository struct {
	inner  partner.ClientRepository
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedClientRepository(inner partner.ClientRepository, store Store, ttl time.Duration, logger *zap.Logger) *CachedClientRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClientRepository{inner: inner, store: store, ttl: ttl, logger: logger}
}

func (r *CachedClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	key := IDKey(clientNamespace, id)

	if payload, hit, err := r.store.Get(ctx, key); err != nil {
		r.logger.Warn("client cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		var doc clientDocument
		if err := decode(payload, &doc); err == nil {
			if client, err := doc.toDomain(); err == nil {
				return client, nil
			}
		}
		r.logger.Warn("client cache entry unreadable, falling back to store", zap.String("key", key))
	}

	client, err := r.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.populate(ctx, key, newClientDocument(client))
	return client, nil
}

func (r *CachedClientRepository) FindByName(ctx context.Context, name string) (*partner.Client, error) {
	return r.cachedOne(ctx, ListKey(clientNamespace, "name", keyPart(name)), func() (*partner.Client, error) {
		return r.inner.FindByName(ctx, name)
	})
}

func (r *CachedClientRepository) FindByEmail(ctx context.Context, email string) (*partner.Client, error) {
	return r.cachedOne(ctx, ListKey(clientNamespace, "email", keyPart(email)), func() (*partner.Client, error) {
		return r.inner.FindByEmail(ctx, email)
	})
}

func (r *CachedClientRepository) FindByIndustry(ctx context.Context, industry string) ([]partner.Client, error) {
	return r.cachedList(ctx, ListKey(clientNamespace, "industry", keyPart(industry)), func() ([]partner.Client, error) {
		return r.inner.FindByIndustry(ctx, industry)
	})
}

func (r *CachedClientRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Client, error) {
	filter = filter.Normalize()
	key := ListKey(clientNamespace,
		strconv.Itoa(filter.Skip), strconv.Itoa(filter.Limit), keyPart(filter.Search))
	return r.cachedList(ctx, key, func() ([]partner.Client, error) {
		return r.inner.FindAll(ctx, filter)
	})
}

func (r *CachedClientRepository) Search(ctx context.Context, term string) ([]partner.Client, error) {
	return r.cachedList(ctx, ListKey(clientNamespace, "search", keyPart(term)), func() ([]partner.Client, error) {
		return r.inner.Search(ctx, term)
	})
}

func (r *CachedClientRepository) Create(ctx context.Context, client *partner.Client) error {
	if err := r.inner.Create(ctx, client); err != nil {
		return err
	}
	r.invalidate(ctx, client.ID)
	return nil
}

func (r *CachedClientRepository) Update(ctx context.Context, client *partner.Client) error {
	if err := r.inner.Update(ctx, client); err != nil {
		return err
	}
	r.invalidate(ctx, client.ID)
	return nil
}

func (r *CachedClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

// cachedOne serves a single-entity finder through a list-namespace key
// so writes invalidate it along with every other derived lookup.
func (r *CachedClientRepository) cachedOne(ctx context.Context, key string, load func() (*partner.Client, error)) (*partner.Client, error) {
	if payload, hit, err := r.store.Get(ctx, key); err != nil {
		r.logger.Warn("client cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		var doc clientDocument
		if err := decode(payload, &doc); err == nil {
			if client, err := doc.toDomain(); err == nil {
				return client, nil
			}
		}
		r.logger.Warn("client cache entry unreadable, falling back to store", zap.String("key", key))
	}

	client, err := load()
	if err != nil {
		return nil, err
	}
	r.populate(ctx, key, newClientDocument(client))
	r.index(ctx, key)
	return client, nil
}

func (r *CachedClientRepository) cachedList(ctx context.Context, key string, load func() ([]partner.Client, error)) ([]partner.Client, error) {
	if payload, hit, err := r.store.Get(ctx, key); err != nil {
		r.logger.Warn("client cache read failed", zap.String("key", key), zap.Error(err))
	} else if hit {
		var docs []clientDocument
		if err := decode(payload, &docs); err == nil {
			clients := make([]partner.Client, 0, len(docs))
			ok := true
			for _, doc := range docs {
				client, err := doc.toDomain()
				if err != nil {
					ok = false
					break
				}
				clients = append(clients, *client)
			}
			if ok {
				return clients, nil
			}
		}
		r.logger.Warn("client cache entry unreadable, falling back to store", zap.String("key", key))
	}

	clients, err := load()
	if err != nil {
		return nil, err
	}

	docs := make([]clientDocument, len(clients))
	for i := range clients {
		docs[i] = newClientDocument(&clients[i])
	}
	r.populate(ctx, key, docs)
	r.index(ctx, key)
	return clients, nil
}

func (r *CachedClientRepository) populate(ctx context.Context, key string, doc any) {
	payload, err := encode(doc)
	if err != nil {
		r.logger.Warn("client cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := r.store.Set(ctx, key, payload, r.ttl); err != nil {
		r.logger.Warn("client cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedClientRepository) index(ctx context.Context, key string) {
	if err := r.store.AddToIndex(ctx, ListIndexKey(clientNamespace), key); err != nil {
		r.logger.Warn("client cache index add failed", zap.String("key", key), zap.Error(err))
	}
}

func (r *CachedClientRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.store.Delete(ctx, IDKey(clientNamespace, id)); err != nil {
		r.logger.Warn("client cache invalidation failed", zap.String("id", id.String()), zap.Error(err))
	}
	if err := r.store.InvalidateIndex(ctx, ListIndexKey(clientNamespace)); err != nil {
		r.logger.Warn("client list cache invalidation failed", zap.Error(err))
	}
}

var _ partner.ClientRepository = (*CachedClientRepository)(nil)
