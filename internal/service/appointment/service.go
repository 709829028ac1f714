package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
	"github.com/healthvault/health-api/internal/service/event"
	apperrors "github.com/healthvault/health-api/pkg/errors"
)

type Service struct {
	repo   repository.AppointmentRepository
	events *event.Service
}

func NewService(repo repository.AppointmentRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) Create(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	apt := &model.Appointment{
		DoctorName: req.DoctorName,
		Specialty:  req.Specialty,
		Date:       req.Date,
		Time:       req.Time,
		Duration:   req.Duration,
		Location:   req.Location,
		Address:    req.Address,
		Phone:      req.Phone,
		Type:       model.AppointmentType(req.Type),
		Notes:      req.Notes,
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := s.events.Record(ctx, "appointment.created", apt); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return apt, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment")
	}
	return apt, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment")
	}

	if req.DoctorName != nil {
		apt.DoctorName = *req.DoctorName
	}
	if req.Specialty != nil {
		apt.Specialty = *req.Specialty
	}
	if req.Date != nil {
		apt.Date = *req.Date
	}
	if req.Time != nil {
		apt.Time = *req.Time
	}
	if req.Duration != nil {
		apt.Duration = *req.Duration
	}
	if req.Location != nil {
		apt.Location = *req.Location
	}
	if req.Address != nil {
		apt.Address = *req.Address
	}
	if req.Phone != nil {
		apt.Phone = *req.Phone
	}
	if req.Type != nil {
		apt.Type = model.AppointmentType(*req.Type)
	}
	if req.Notes != nil {
		apt.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if err := s.events.Record(ctx, "appointment.updated", apt); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return apt, nil
}

// Complete marks a past visit as done and attaches the visit summary.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, summary string) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("appointment")
	}

	apt.Completed = true
	apt.Summary = summary

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to complete appointment: %w", err)
	}

	if err := s.events.Record(ctx, "appointment.completed", apt); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return apt, nil
}

// Delete is idempotent; deleting an unknown appointment is a no-op.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return s.events.Record(ctx, "appointment.deleted", map[string]interface{}{"id": id})
}

func (s *Service) List(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.List(ctx)
}

// Upcoming and Past split the collection by date relative to now; the
// split is derived on every read and never stored.
func (s *Service) Upcoming(ctx context.Context, now time.Time) ([]*model.Appointment, error) {
	return s.filter(ctx, func(a *model.Appointment) bool { return a.IsUpcoming(now) })
}

func (s *Service) Past(ctx context.Context, now time.Time) ([]*model.Appointment, error) {
	return s.filter(ctx, func(a *model.Appointment) bool { return !a.IsUpcoming(now) })
}

func (s *Service) filter(ctx context.Context, keep func(*model.Appointment) bool) ([]*model.Appointment, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Appointment, 0, len(all))
	for _, apt := range all {
		if keep(apt) {
			out = append(out, apt)
		}
	}
	return out, nil
}
