package model

import (
	"slices"
	"time"
)

type RecipientType string

const (
	RecipientDoctor    RecipientType = "doctor"
	RecipientNurse     RecipientType = "nurse"
	RecipientHospital  RecipientType = "hospital"
	RecipientFamily    RecipientType = "family"
	RecipientEmergency RecipientType = "emergency"
)

type ShareType string

const (
	ShareTypeEmergency ShareType = "emergency"
	ShareTypeTemporary ShareType = "temporary"
	ShareTypePermanent ShareType = "permanent"
)

// SharePermissions is the six view scopes a grant may expose.
type SharePermissions struct {
	ViewProfile      bool `json:"view_profile"`
	ViewMedications  bool `json:"view_medications"`
	ViewAppointments bool `json:"view_appointments"`
	ViewRecords      bool `json:"view_records"`
	ViewTreatments   bool `json:"view_treatments"`
	ViewEmergency    bool `json:"view_emergency"`
}

// Labels returns human-readable labels for the enabled scopes, in a
// fixed order.
func (p SharePermissions) Labels() []string {
	labels := make([]string, 0, 6)
	if p.ViewProfile {
		labels = append(labels, "Profile")
	}
	if p.ViewMedications {
		labels = append(labels, "Medications")
	}
	if p.ViewAppointments {
		labels = append(labels, "Appointments")
	}
	if p.ViewRecords {
		labels = append(labels, "Medical Records")
	}
	if p.ViewTreatments {
		labels = append(labels, "Treatments")
	}
	if p.ViewEmergency {
		labels = append(labels, "Emergency Info")
	}
	return labels
}

type EmergencyContact struct {
	Name     string `json:"name"`
	Relation string `json:"relation"`
	Phone    string `json:"phone"`
}

type TemporaryAccess struct {
	DurationHours  int `json:"duration_hours"`
	MaxAccessCount int `json:"max_access_count"`
}

type ShareGrant struct {
	Base
	RecipientName    string            `json:"recipient_name"`
	RecipientEmail   string            `json:"recipient_email,omitempty"`
	RecipientType    RecipientType     `json:"recipient_type"`
	ShareType        ShareType         `json:"share_type"`
	DataShared       []string          `json:"data_shared"`
	ExpirationDate   *time.Time        `json:"expiration_date,omitempty"`
	LastAccessed     *time.Time        `json:"last_accessed,omitempty"`
	AccessCount      int               `json:"access_count"`
	IsActive         bool              `json:"is_active"`
	Permissions      SharePermissions  `json:"permissions"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	TemporaryAccess  *TemporaryAccess  `json:"temporary_access,omitempty"`
	QRCode           string            `json:"qr_code"`
	AccessCode       string            `json:"access_code"`
}

// Clone returns a deep copy sharing no state with the receiver.
func (g *ShareGrant) Clone() *ShareGrant {
	out := *g
	out.DataShared = slices.Clone(g.DataShared)
	if g.ExpirationDate != nil {
		exp := *g.ExpirationDate
		out.ExpirationDate = &exp
	}
	if g.LastAccessed != nil {
		at := *g.LastAccessed
		out.LastAccessed = &at
	}
	if g.EmergencyContact != nil {
		ec := *g.EmergencyContact
		out.EmergencyContact = &ec
	}
	if g.TemporaryAccess != nil {
		ta := *g.TemporaryAccess
		out.TemporaryAccess = &ta
	}
	return &out
}

// IsExpired is a query-time predicate; nothing ever stores the expired
// state back onto the grant.
func (g *ShareGrant) IsExpired(now time.Time) bool {
	if g.ExpirationDate == nil {
		return false
	}
	return g.ExpirationDate.Before(now)
}

type IssueGrantRequest struct {
	RecipientName    string            `json:"recipient_name" validate:"required"`
	RecipientEmail   string            `json:"recipient_email" validate:"omitempty,email"`
	RecipientType    RecipientType     `json:"recipient_type" validate:"required,oneof=doctor nurse hospital family emergency"`
	ShareType        ShareType         `json:"share_type" validate:"required,oneof=emergency temporary permanent"`
	Permissions      SharePermissions  `json:"permissions"`
	DurationHours    int               `json:"duration_hours" validate:"omitempty,min=1,max=720"`
	MaxAccessCount   int               `json:"max_access_count" validate:"omitempty,min=1"`
	EmergencyContact *EmergencyContact `json:"emergency_contact"`
}
