package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
)

type medicationRepository struct {
	c *collection[model.Medication]
}

func NewMedicationRepository() repository.MedicationRepository {
	return &medicationRepository{c: newCollection((*model.Medication).Clone)}
}

func (r *medicationRepository) Create(ctx context.Context, med *model.Medication) error {
	med.ID = uuid.New()
	med.CreatedAt = time.Now()
	med.UpdatedAt = time.Now()
	if med.Taken == nil {
		med.Taken = make(map[string]bool)
	}
	r.c.put(med.ID, med)
	return nil
}

func (r *medicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	med, ok := r.c.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return med, nil
}

func (r *medicationRepository) Update(ctx context.Context, med *model.Medication) error {
	med.UpdatedAt = time.Now()
	r.c.replace(med.ID, med)
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.c.remove(id)
	return nil
}

func (r *medicationRepository) List(ctx context.Context) ([]*model.Medication, error) {
	return r.c.list(), nil
}
