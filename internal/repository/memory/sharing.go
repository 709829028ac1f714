package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
)

type grantRepository struct {
	c *collection[model.ShareGrant]

	mu     sync.RWMutex
	byCode map[string]uuid.UUID
}

func NewGrantRepository() repository.GrantRepository {
	return &grantRepository{
		c:      newCollection((*model.ShareGrant).Clone),
		byCode: make(map[string]uuid.UUID),
	}
}

func (r *grantRepository) Create(ctx context.Context, grant *model.ShareGrant) error {
	grant.ID = uuid.New()
	grant.CreatedAt = time.Now()
	grant.UpdatedAt = time.Now()
	r.c.put(grant.ID, grant)

	r.mu.Lock()
	r.byCode[grant.AccessCode] = grant.ID
	r.mu.Unlock()
	return nil
}

func (r *grantRepository) Get(ctx context.Context, id uuid.UUID) (*model.ShareGrant, error) {
	grant, ok := r.c.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return grant, nil
}

func (r *grantRepository) GetByAccessCode(ctx context.Context, code string) (*model.ShareGrant, error) {
	r.mu.RLock()
	id, ok := r.byCode[code]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *grantRepository) Update(ctx context.Context, grant *model.ShareGrant) error {
	grant.UpdatedAt = time.Now()
	r.c.replace(grant.ID, grant)
	return nil
}

// Grants are never deleted; revocation only flips the active flag, so
// the collection doubles as the audit trail.

func (r *grantRepository) List(ctx context.Context) ([]*model.ShareGrant, error) {
	return r.c.list(), nil
}
