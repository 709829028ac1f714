package disease

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

const dateLayout = "2006-01-02"

type Service struct {
	repo   repository.DiseaseRepository
	events *event.Service
}

func NewService(repo repository.DiseaseRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDiseaseRequest) (*model.Disease, error) {
	disease := &model.Disease{
		Name:                req.Name,
		DiagnosisDate:       req.DiagnosisDate,
		Doctor:              req.Doctor,
		Facility:            req.Facility,
		Status:              model.DiseaseStatus(req.Status),
		Severity:            model.DiseaseSeverity(req.Severity),
		PreviousMedications: req.PreviousMedications,
		CurrentMedications:  req.CurrentMedications,
		OngoingTreatments:   []model.OngoingTreatment{},
		SurgeryHistory:      req.SurgeryHistory,
		FamilyHistory:       req.FamilyHistory,
		Symptoms:            req.Symptoms,
		Notes:               req.Notes,
		LastUpdated:         time.Now().Format(dateLayout),
	}

	if err := s.repo.Create(ctx, disease); err != nil {
		return nil, fmt.Errorf("failed to create condition: %w", err)
	}

	if err := s.events.Record(ctx, "disease.created", disease); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return disease, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Disease, error) {
	disease, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("condition")
	}
	return disease, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDiseaseRequest) (*model.Disease, error) {
	disease, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("condition")
	}

	if req.Name != nil {
		disease.Name = *req.Name
	}
	if req.DiagnosisDate != nil {
		disease.DiagnosisDate = *req.DiagnosisDate
	}
	if req.Doctor != nil {
		disease.Doctor = *req.Doctor
	}
	if req.Facility != nil {
		disease.Facility = *req.Facility
	}
	if req.Status != nil {
		disease.Status = model.DiseaseStatus(*req.Status)
	}
	if req.Severity != nil {
		disease.Severity = model.DiseaseSeverity(*req.Severity)
	}
	if req.PreviousMedications != nil {
		disease.PreviousMedications = *req.PreviousMedications
	}
	if req.CurrentMedications != nil {
		disease.CurrentMedications = *req.CurrentMedications
	}
	if req.SurgeryHistory != nil {
		disease.SurgeryHistory = *req.SurgeryHistory
	}
	if req.FamilyHistory != nil {
		disease.FamilyHistory = *req.FamilyHistory
	}
	if req.Symptoms != nil {
		disease.Symptoms = *req.Symptoms
	}
	if req.Notes != nil {
		disease.Notes = *req.Notes
	}
	disease.LastUpdated = time.Now().Format(dateLayout)

	if err := s.repo.Update(ctx, disease); err != nil {
		return nil, fmt.Errorf("failed to update condition: %w", err)
	}

	if err := s.events.Record(ctx, "disease.updated", disease); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return disease, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete condition: %w", err)
	}
	return s.events.Record(ctx, "disease.deleted", map[string]interface{}{"id": id})
}

func (s *Service) List(ctx context.Context) ([]*model.Disease, error) {
	return s.repo.List(ctx)
}

func treatmentFromRequest(req *model.TreatmentRequest) model.OngoingTreatment {
	status := model.TreatmentStatus(req.Status)
	if status == "" {
		status = model.TreatmentStatusActive
	}
	return model.OngoingTreatment{
		Name:              req.Name,
		Type:              model.TreatmentType(req.Type),
		Frequency:         req.Frequency,
		Duration:          req.Duration,
		StartDate:         req.StartDate,
		NextScheduled:     req.NextScheduled,
		EndDate:           req.EndDate,
		Provider:          req.Provider,
		Facility:          req.Facility,
		Status:            status,
		TotalSessions:     req.TotalSessions,
		CompletedSessions: req.CompletedSessions,
		SideEffects:       req.SideEffects,
		Instructions:      req.Instructions,
		Notes:             req.Notes,
	}
}

// AddTreatment embeds a new treatment in the owning disease and
// refreshes its LastUpdated stamp.
func (s *Service) AddTreatment(ctx context.Context, diseaseID uuid.UUID, req *model.TreatmentRequest) (*model.Disease, error) {
	disease, err := s.repo.Get(ctx, diseaseID)
	if err != nil {
		return nil, apperrors.NotFound("condition")
	}

	treatment := treatmentFromRequest(req)
	treatment.ID = uuid.New()
	disease.OngoingTreatments = append(disease.OngoingTreatments, treatment)
	disease.LastUpdated = time.Now().Format(dateLayout)

	if err := s.repo.Update(ctx, disease); err != nil {
		return nil, fmt.Errorf("failed to add treatment: %w", err)
	}

	if err := s.events.Record(ctx, "treatment.added", treatment); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return disease, nil
}

func (s *Service) UpdateTreatment(ctx context.Context, diseaseID, treatmentID uuid.UUID, req *model.TreatmentRequest) (*model.Disease, error) {
	disease, err := s.repo.Get(ctx, diseaseID)
	if err != nil {
		return nil, apperrors.NotFound("condition")
	}

	found := false
	for i := range disease.OngoingTreatments {
		if disease.OngoingTreatments[i].ID == treatmentID {
			treatment := treatmentFromRequest(req)
			treatment.ID = treatmentID
			disease.OngoingTreatments[i] = treatment
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.NotFound("treatment")
	}
	disease.LastUpdated = time.Now().Format(dateLayout)

	if err := s.repo.Update(ctx, disease); err != nil {
		return nil, fmt.Errorf("failed to update treatment: %w", err)
	}

	if err := s.events.Record(ctx, "treatment.updated", map[string]interface{}{
		"disease_id":   diseaseID,
		"treatment_id": treatmentID,
	}); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return disease, nil
}

func (s *Service) DeleteTreatment(ctx context.Context, diseaseID, treatmentID uuid.UUID) (*model.Disease, error) {
	disease, err := s.repo.Get(ctx, diseaseID)
	if err != nil {
		return nil, apperrors.NotFound("condition")
	}

	kept := disease.OngoingTreatments[:0]
	for _, t := range disease.OngoingTreatments {
		if t.ID != treatmentID {
			kept = append(kept, t)
		}
	}
	disease.OngoingTreatments = kept
	disease.LastUpdated = time.Now().Format(dateLayout)

	if err := s.repo.Update(ctx, disease); err != nil {
		return nil, fmt.Errorf("failed to delete treatment: %w", err)
	}

	if err := s.events.Record(ctx, "treatment.deleted", map[string]interface{}{
		"disease_id":   diseaseID,
		"treatment_id": treatmentID,
	}); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return disease, nil
}
