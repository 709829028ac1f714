package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
)

type diseaseRepository struct {
	c *collection[model.Disease]
}

func NewDiseaseRepository() repository.DiseaseRepository {
	return &diseaseRepository{c: newCollection((*model.Disease).Clone)}
}

func (r *diseaseRepository) Create(ctx context.Context, disease *model.Disease) error {
	disease.ID = uuid.New()
	disease.CreatedAt = time.Now()
	disease.UpdatedAt = time.Now()
	if disease.OngoingTreatments == nil {
		disease.OngoingTreatments = []model.OngoingTreatment{}
	}
	r.c.put(disease.ID, disease)
	return nil
}

func (r *diseaseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Disease, error) {
	disease, ok := r.c.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return disease, nil
}

func (r *diseaseRepository) Update(ctx context.Context, disease *model.Disease) error {
	disease.UpdatedAt = time.Now()
	r.c.replace(disease.ID, disease)
	return nil
}

// Delete does not cascade to medical records; their disease reference
// is weak and simply dangles.
func (r *diseaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.c.remove(id)
	return nil
}

func (r *diseaseRepository) List(ctx context.Context) ([]*model.Disease, error) {
	return r.c.list(), nil
}
