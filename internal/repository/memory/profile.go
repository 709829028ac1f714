package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
)

type profileRepository struct {
	mu      sync.RWMutex
	profile *model.UserProfile
}

func NewProfileRepository() repository.ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) Get(ctx context.Context) (*model.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.profile == nil {
		return nil, repository.ErrNotFound
	}
	return r.profile.Clone(), nil
}

func (r *profileRepository) Save(ctx context.Context, profile *model.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
		profile.CreatedAt = time.Now()
	}
	profile.UpdatedAt = time.Now()
	r.profile = profile.Clone()
	return nil
}
