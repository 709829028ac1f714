package model

import (
	"slices"
)

// UserProfile is the single account owning all collections. The service
// is single-user; the profile is seeded at startup.
type UserProfile struct {
	Base
	Name             string           `json:"name"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone,omitempty"`
	DateOfBirth      string           `json:"date_of_birth,omitempty"`
	BloodType        string           `json:"blood_type,omitempty"`
	Allergies        []string         `json:"allergies,omitempty"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	PasswordHash     string           `json:"-"`
	Plan             string           `json:"plan"`
}

// Clone returns a deep copy sharing no state with the receiver.
func (p *UserProfile) Clone() *UserProfile {
	out := *p
	out.Allergies = slices.Clone(p.Allergies)
	return &out
}

type UpdateProfileRequest struct {
	Name             *string           `json:"name"`
	Email            *string           `json:"email" binding:"omitempty,email"`
	Phone            *string           `json:"phone"`
	DateOfBirth      *string           `json:"date_of_birth"`
	BloodType        *string           `json:"blood_type"`
	Allergies        *[]string         `json:"allergies"`
	EmergencyContact *EmergencyContact `json:"emergency_contact"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// SubscriptionPlan is a static catalog entry; there is no billing
// integration behind it.
type SubscriptionPlan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Interval string   `json:"interval"`
	Features []string `json:"features"`
}
