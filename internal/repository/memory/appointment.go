package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
)

type appointmentRepository struct {
	c *collection[model.Appointment]
}

func NewAppointmentRepository() repository.AppointmentRepository {
	return &appointmentRepository{c: newCollection((*model.Appointment).Clone)}
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()
	r.c.put(apt.ID, apt)
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.c.get(id)
	if !ok {
		return nil, repository.ErrNotFound
	}
	return apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	apt.UpdatedAt = time.Now()
	r.c.replace(apt.ID, apt)
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.c.remove(id)
	return nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	return r.c.list(), nil
}
