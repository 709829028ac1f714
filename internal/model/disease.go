package model

import (
	"math"
	"slices"

	"github.com/google/uuid"
)

type DiseaseStatus string

const (
	DiseaseStatusActive     DiseaseStatus = "Active"
	DiseaseStatusMonitoring DiseaseStatus = "Monitoring"
	DiseaseStatusResolved   DiseaseStatus = "Resolved"
	DiseaseStatusChronic    DiseaseStatus = "Chronic"
)

type DiseaseSeverity string

const (
	SeverityMild     DiseaseSeverity = "Mild"
	SeverityModerate DiseaseSeverity = "Moderate"
	SeveritySevere   DiseaseSeverity = "Severe"
)

type TreatmentStatus string

const (
	TreatmentStatusActive    TreatmentStatus = "Active"
	TreatmentStatusScheduled TreatmentStatus = "Scheduled"
	TreatmentStatusCompleted TreatmentStatus = "Completed"
	TreatmentStatusPaused    TreatmentStatus = "Paused"
	TreatmentStatusCancelled TreatmentStatus = "Cancelled"
)

type TreatmentType string

const (
	TreatmentTypeDialysis      TreatmentType = "Dialysis"
	TreatmentTypePhysiotherapy TreatmentType = "Physiotherapy"
	TreatmentTypeChemotherapy  TreatmentType = "Chemotherapy"
	TreatmentTypeInjection     TreatmentType = "Injection"
	TreatmentTypeTherapy       TreatmentType = "Therapy"
	TreatmentTypeOther         TreatmentType = "Other"
)

// OngoingTreatment is embedded in exactly one Disease and is not
// addressable outside of it.
type OngoingTreatment struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Type              TreatmentType   `json:"type"`
	Frequency         string          `json:"frequency"`
	Duration          string          `json:"duration"`
	StartDate         string          `json:"start_date"`
	NextScheduled     string          `json:"next_scheduled,omitempty"`
	EndDate           string          `json:"end_date,omitempty"`
	Provider          string          `json:"provider"`
	Facility          string          `json:"facility"`
	Status            TreatmentStatus `json:"status"`
	TotalSessions     int             `json:"total_sessions,omitempty"`
	CompletedSessions int             `json:"completed_sessions,omitempty"`
	SideEffects       []string        `json:"side_effects,omitempty"`
	Instructions      string          `json:"instructions,omitempty"`
	Notes             string          `json:"notes,omitempty"`
}

// Progress returns the session completion percentage, or 0 when no
// session total has been set.
func (t *OngoingTreatment) Progress() int {
	if t.TotalSessions <= 0 {
		return 0
	}
	return int(math.Round(float64(t.CompletedSessions) / float64(t.TotalSessions) * 100))
}

type Disease struct {
	Base
	Name                string             `json:"name"`
	DiagnosisDate       string             `json:"diagnosis_date"`
	Doctor              string             `json:"doctor"`
	Facility            string             `json:"facility"`
	Status              DiseaseStatus      `json:"status"`
	Severity            DiseaseSeverity    `json:"severity"`
	PreviousMedications []string           `json:"previous_medications,omitempty"`
	CurrentMedications  []string           `json:"current_medications,omitempty"`
	OngoingTreatments   []OngoingTreatment `json:"ongoing_treatments"`
	SurgeryHistory      []string           `json:"surgery_history,omitempty"`
	FamilyHistory       []string           `json:"family_history,omitempty"`
	Symptoms            []string           `json:"symptoms,omitempty"`
	Notes               string             `json:"notes,omitempty"`
	LastUpdated         string             `json:"last_updated"`
}

// Clone returns a deep copy sharing no state with the receiver.
func (d *Disease) Clone() *Disease {
	out := *d
	out.PreviousMedications = slices.Clone(d.PreviousMedications)
	out.CurrentMedications = slices.Clone(d.CurrentMedications)
	out.SurgeryHistory = slices.Clone(d.SurgeryHistory)
	out.FamilyHistory = slices.Clone(d.FamilyHistory)
	out.Symptoms = slices.Clone(d.Symptoms)
	out.OngoingTreatments = slices.Clone(d.OngoingTreatments)
	for i := range out.OngoingTreatments {
		out.OngoingTreatments[i].SideEffects = slices.Clone(d.OngoingTreatments[i].SideEffects)
	}
	return &out
}

// DisplayToken maps a disease status to its presentation token. Unknown
// values fall into the default bucket.
func (s DiseaseStatus) DisplayToken() string {
	switch s {
	case DiseaseStatusActive:
		return "status-active"
	case DiseaseStatusMonitoring:
		return "status-monitoring"
	case DiseaseStatusResolved:
		return "status-resolved"
	case DiseaseStatusChronic:
		return "status-chronic"
	default:
		return "status-unknown"
	}
}

func (s DiseaseSeverity) DisplayToken() string {
	switch s {
	case SeverityMild:
		return "severity-mild"
	case SeverityModerate:
		return "severity-moderate"
	case SeveritySevere:
		return "severity-severe"
	default:
		return "severity-unknown"
	}
}

type CreateDiseaseRequest struct {
	Name                string   `json:"name" binding:"required"`
	DiagnosisDate       string   `json:"diagnosis_date" binding:"required"`
	Doctor              string   `json:"doctor"`
	Facility            string   `json:"facility"`
	Status              string   `json:"status" binding:"required,oneof=Active Monitoring Resolved Chronic"`
	Severity            string   `json:"severity" binding:"required,oneof=Mild Moderate Severe"`
	PreviousMedications []string `json:"previous_medications"`
	CurrentMedications  []string `json:"current_medications"`
	SurgeryHistory      []string `json:"surgery_history"`
	FamilyHistory       []string `json:"family_history"`
	Symptoms            []string `json:"symptoms"`
	Notes               string   `json:"notes"`
}

type UpdateDiseaseRequest struct {
	Name                *string   `json:"name"`
	DiagnosisDate       *string   `json:"diagnosis_date"`
	Doctor              *string   `json:"doctor"`
	Facility            *string   `json:"facility"`
	Status              *string   `json:"status"`
	Severity            *string   `json:"severity"`
	PreviousMedications *[]string `json:"previous_medications"`
	CurrentMedications  *[]string `json:"current_medications"`
	SurgeryHistory      *[]string `json:"surgery_history"`
	FamilyHistory       *[]string `json:"family_history"`
	Symptoms            *[]string `json:"symptoms"`
	Notes               *string   `json:"notes"`
}

type TreatmentRequest struct {
	Name              string   `json:"name" binding:"required"`
	Type              string   `json:"type" binding:"required,oneof=Dialysis Physiotherapy Chemotherapy Injection Therapy Other"`
	Frequency         string   `json:"frequency"`
	Duration          string   `json:"duration"`
	StartDate         string   `json:"start_date"`
	NextScheduled     string   `json:"next_scheduled"`
	EndDate           string   `json:"end_date"`
	Provider          string   `json:"provider"`
	Facility          string   `json:"facility"`
	Status            string   `json:"status" binding:"omitempty,oneof=Active Scheduled Completed Paused Cancelled"`
	TotalSessions     int      `json:"total_sessions"`
	CompletedSessions int      `json:"completed_sessions"`
	SideEffects       []string `json:"side_effects"`
	Instructions      string   `json:"instructions"`
	Notes             string   `json:"notes"`
}
