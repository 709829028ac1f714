package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
)

type recordRepository struct {
	c *collection[model.MedicalRecord]
}

func NewRecordRepository() repository.RecordRepository {
	return &recordRepository{c: newCollection((*model.MedicalRecord).Clone)}
}

func (r *recordRepository) Create(ctx context.Context, rec *model.MedicalRecord) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()
	r.c.put(rec.ID, rec)
	return nil
}

func (r *recordRepository) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	rec, ok := r.c.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return rec, nil
}

func (r *recordRepository) Update(ctx context.Context, rec *model.MedicalRecord) error {
	rec.UpdatedAt = time.Now()
	r.c.replace(rec.ID, rec)
	return nil
}

func (r *recordRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.c.remove(id)
	return nil
}

func (r *recordRepository) List(ctx context.Context) ([]*model.MedicalRecord, error) {
	return r.c.list(), nil
}

// ListByDisease matches on the weak disease reference; records with no
// reference never match.
func (r *recordRepository) ListByDisease(ctx context.Context, diseaseID uuid.UUID) ([]*model.MedicalRecord, error) {
	var out []*model.MedicalRecord
	for _, rec := range r.c.list() {
		if rec.DiseaseID != nil && *rec.DiseaseID == diseaseID {
			out = append(out, rec)
		}
	}
	return out, nil
}
