package medication

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
	"github.com/healthvault/health-api/internal/service/event"
	apperrors "github.com/healthvault/health-api/pkg/errors"
)

type Service struct {
	repo   repository.MedicationRepository
	events *event.Service
}

func NewService(repo repository.MedicationRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) Create(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error) {
	remaining := req.Total
	if req.Remaining != nil {
		remaining = *req.Remaining
	}
	if remaining > req.Total {
		return nil, apperrors.BadRequest("remaining cannot exceed total", nil)
	}

	med := &model.Medication{
		Name:         req.Name,
		Dosage:       req.Dosage,
		Frequency:    req.Frequency,
		Times:        req.Times,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Total:        req.Total,
		Remaining:    remaining,
		Reminders:    req.Reminders,
		Taken:        make(map[string]bool),
		Instructions: req.Instructions,
		Prescriber:   req.Prescriber,
		Condition:    req.Condition,
	}

	if err := s.repo.Create(ctx, med); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}

	if err := s.events.Record(ctx, "medication.created", med); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return med, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	med, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("medication")
	}
	return med, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	med, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("medication")
	}

	if req.Name != nil {
		med.Name = *req.Name
	}
	if req.Dosage != nil {
		med.Dosage = *req.Dosage
	}
	if req.Frequency != nil {
		med.Frequency = *req.Frequency
	}
	if req.Times != nil {
		med.Times = *req.Times
	}
	if req.StartDate != nil {
		med.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		med.EndDate = *req.EndDate
	}
	if req.Total != nil {
		med.Total = *req.Total
	}
	if req.Remaining != nil {
		med.Remaining = *req.Remaining
	}
	if req.Reminders != nil {
		med.Reminders = *req.Reminders
	}
	if req.Instructions != nil {
		med.Instructions = *req.Instructions
	}
	if req.Prescriber != nil {
		med.Prescriber = *req.Prescriber
	}
	if req.Condition != nil {
		med.Condition = *req.Condition
	}

	if med.Remaining > med.Total {
		return nil, apperrors.BadRequest("remaining cannot exceed total", nil)
	}

	if err := s.repo.Update(ctx, med); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}

	if err := s.events.Record(ctx, "medication.updated", med); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return med, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	return s.events.Record(ctx, "medication.deleted", map[string]interface{}{"id": id})
}

func (s *Service) List(ctx context.Context) ([]*model.Medication, error) {
	return s.repo.List(ctx)
}

// MarkTaken flags the dose slot and decrements the remaining count,
// floored at zero. The taken map is never reset across days; a new day
// does not clear previous marks.
func (s *Service) MarkTaken(ctx context.Context, id uuid.UUID, slot string) (*model.Medication, error) {
	med, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("medication")
	}

	if med.Taken == nil {
		med.Taken = make(map[string]bool)
	}
	med.Taken[slot] = true
	if med.Remaining > 0 {
		med.Remaining--
	}

	if err := s.repo.Update(ctx, med); err != nil {
		return nil, fmt.Errorf("failed to mark dose taken: %w", err)
	}

	if err := s.events.Record(ctx, "medication.dose_taken", map[string]interface{}{
		"id":        med.ID,
		"time":      slot,
		"remaining": med.Remaining,
	}); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return med, nil
}
