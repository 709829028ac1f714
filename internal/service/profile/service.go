package profile

import (
	"context"
	"fmt"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
	"github.com/healthvault/health-api/internal/service/event"
	apperrors "github.com/healthvault/health-api/pkg/errors"
	"github.com/healthvault/health-api/pkg/security"
)

type Service struct {
	repo   repository.ProfileRepository
	events *event.Service
}

func NewService(repo repository.ProfileRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

// Seed creates the owner profile at startup when none exists yet.
func (s *Service) Seed(ctx context.Context, name, emailAddr, password string, hasher security.Hasher) error {
	if _, err := s.repo.Get(ctx); err == nil {
		return nil
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash owner password: %w", err)
	}

	return s.repo.Save(ctx, &model.UserProfile{
		Name:         name,
		Email:        emailAddr,
		PasswordHash: hash,
		Plan:         "free",
	})
}

func (s *Service) Get(ctx context.Context) (*model.UserProfile, error) {
	profile, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apperrors.NotFound("profile")
	}
	return profile, nil
}

func (s *Service) Update(ctx context.Context, req *model.UpdateProfileRequest) (*model.UserProfile, error) {
	profile, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apperrors.NotFound("profile")
	}

	if req.Name != nil {
		profile.Name = *req.Name
	}
	if req.Email != nil {
		profile.Email = *req.Email
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		profile.DateOfBirth = *req.DateOfBirth
	}
	if req.BloodType != nil {
		profile.BloodType = *req.BloodType
	}
	if req.Allergies != nil {
		profile.Allergies = *req.Allergies
	}
	if req.EmergencyContact != nil {
		profile.EmergencyContact = *req.EmergencyContact
	}

	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	if err := s.events.Record(ctx, "profile.updated", profile); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return profile, nil
}

// Plans is the static subscription catalog; there is no billing behind
// it.
func (s *Service) Plans() []model.SubscriptionPlan {
	return []model.SubscriptionPlan{
		{
			ID:       "free",
			Name:     "Basic",
			Price:    "$0",
			Interval: "month",
			Features: []string{"Medication tracking", "Appointment calendar", "Medical records"},
		},
		{
			ID:       "plus",
			Name:     "Plus",
			Price:    "$4.99",
			Interval: "month",
			Features: []string{"Everything in Basic", "Record sharing", "Refill alerts"},
		},
		{
			ID:       "premium",
			Name:     "Premium",
			Price:    "$9.99",
			Interval: "month",
			Features: []string{"Everything in Plus", "Family profiles", "Priority support"},
		},
	}
}

func (s *Service) SelectPlan(ctx context.Context, planID string) (*model.UserProfile, error) {
	valid := false
	for _, p := range s.Plans() {
		if p.ID == planID {
			valid = true
			break
		}
	}
	if !valid {
		return nil, apperrors.BadRequest("unknown plan", nil)
	}

	profile, err := s.repo.Get(ctx)
	if err != nil {
		return nil, apperrors.NotFound("profile")
	}
	profile.Plan = planID
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}
