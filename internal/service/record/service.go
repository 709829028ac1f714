package record

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
	repo   repository.RecordRepository
	events *event.Service
}

func NewService(repo repository.RecordRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) Create(ctx context.Context, req *model.CreateRecordRequest) (*model.MedicalRecord, error) {
	rec := &model.MedicalRecord{
		Title:    req.Title,
		Date:     req.Date,
		Doctor:   req.Doctor,
		Facility: req.Facility,
		Type:     req.Type,
		Status:   req.Status,
		FileType: req.FileType,
		Size:     req.Size,
		Category: model.RecordCategory(req.Category),
		Notes:    req.Notes,
		Results:  req.Results,
	}

	// The disease reference is weak: it is stored as given and never
	// checked against the disease collection.
	if req.DiseaseID != "" {
		id, err := uuid.Parse(req.DiseaseID)
		if err != nil {
			return nil, apperrors.BadRequest("invalid disease id", err)
		}
		rec.DiseaseID = &id
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	if err := s.events.Record(ctx, "record.created", rec); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.MedicalRecord, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("record")
	}
	return rec, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateRecordRequest) (*model.MedicalRecord, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("record")
	}

	if req.Title != nil {
		rec.Title = *req.Title
	}
	if req.Date != nil {
		rec.Date = *req.Date
	}
	if req.Doctor != nil {
		rec.Doctor = *req.Doctor
	}
	if req.Facility != nil {
		rec.Facility = *req.Facility
	}
	if req.Type != nil {
		rec.Type = *req.Type
	}
	if req.Status != nil {
		rec.Status = *req.Status
	}
	if req.FileType != nil {
		rec.FileType = *req.FileType
	}
	if req.Size != nil {
		rec.Size = *req.Size
	}
	if req.Category != nil {
		rec.Category = model.RecordCategory(*req.Category)
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	if req.Results != nil {
		rec.Results = *req.Results
	}
	if req.DiseaseID != nil {
		if *req.DiseaseID == "" {
			rec.DiseaseID = nil
		} else {
			id, err := uuid.Parse(*req.DiseaseID)
			if err != nil {
				return nil, apperrors.BadRequest("invalid disease id", err)
			}
			rec.DiseaseID = &id
		}
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}

	if err := s.events.Record(ctx, "record.updated", rec); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return rec, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return s.events.Record(ctx, "record.deleted", map[string]interface{}{"id": id})
}

func (s *Service) List(ctx context.Context) ([]*model.MedicalRecord, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category model.RecordCategory) ([]*model.MedicalRecord, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.MedicalRecord, 0)
	for _, rec := range all {
		if rec.Category == category {
			out = append(out, rec)
		}
	}
	return out, nil
}

// RelatedRecords partitions the records linked to a disease by
// category. Every category key is present, with an empty slice when
// nothing matches.
func (s *Service) RelatedRecords(ctx context.Context, diseaseID uuid.UUID) (map[model.RecordCategory][]*model.MedicalRecord, error) {
	linked, err := s.repo.ListByDisease(ctx, diseaseID)
	if err != nil {
		return nil, err
	}

	related := make(map[model.RecordCategory][]*model.MedicalRecord, len(model.RecordCategories))
	for _, cat := range model.RecordCategories {
		related[cat] = []*model.MedicalRecord{}
	}
	for _, rec := range linked {
		related[rec.Category] = append(related[rec.Category], rec)
	}
	return related, nil
}
