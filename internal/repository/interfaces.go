package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
)

// ErrNotFound is returned by Get-style lookups on unknown ids.
var ErrNotFound = errors.New("not found")

// All repository interfaces in one file. Every implementation keeps the
// store's forgiving semantics: Update and Delete on an unknown id are
// silent no-ops, so callers that need a not-found signal must Get first.
type (
	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, apt *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Appointment, error)
	}

	MedicationRepository interface {
		Create(ctx context.Context, med *model.Medication) error
		Get(ctx context.Context, id uuid.UUID) (*model.Medication, error)
		Update(ctx context.Context, med *model.Medication) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Medication, error)
	}

	DiseaseRepository interface {
		Create(ctx context.Context, disease *model.Disease) error
		Get(ctx context.Context, id uuid.UUID) (*model.Disease, error)
		Update(ctx context.Context, disease *model.Disease) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Disease, error)
	}

	RecordRepository interface {
		Create(ctx context.Context, rec *model.MedicalRecord) error
		Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error)
		Update(ctx context.Context, rec *model.MedicalRecord) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.MedicalRecord, error)
		ListByDisease(ctx context.Context, diseaseID uuid.UUID) ([]*model.MedicalRecord, error)
	}

	GrantRepository interface {
		Create(ctx context.Context, grant *model.ShareGrant) error
		Get(ctx context.Context, id uuid.UUID) (*model.ShareGrant, error)
		GetByAccessCode(ctx context.Context, code string) (*model.ShareGrant, error)
		Update(ctx context.Context, grant *model.ShareGrant) error
		List(ctx context.Context) ([]*model.ShareGrant, error)
	}

	ProfileRepository interface {
		Get(ctx context.Context) (*model.UserProfile, error)
		Save(ctx context.Context, profile *model.UserProfile) error
	}

	OutboxRepository interface {
		Append(ctx context.Context, event *model.OutboxEvent) error
		PendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkPublished(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID) error
	}
)
