package model

import (
	"maps"
	"slices"
)

type Medication struct {
	Base
	Name         string          `json:"name"`
	Dosage       string          `json:"dosage"`
	Frequency    string          `json:"frequency"`
	Times        []string        `json:"times"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date,omitempty"`
	Remaining    int             `json:"remaining"`
	Total        int             `json:"total"`
	Reminders    bool            `json:"reminders"`
	Taken        map[string]bool `json:"taken"`
	Instructions string          `json:"instructions,omitempty"`
	Prescriber   string          `json:"prescriber,omitempty"`
	Condition    string          `json:"condition,omitempty"`
}

// Clone returns a deep copy sharing no state with the receiver.
func (m *Medication) Clone() *Medication {
	out := *m
	out.Times = slices.Clone(m.Times)
	out.Taken = maps.Clone(m.Taken)
	return &out
}

// RefillLevel is the three-tier classification of remaining supply.
type RefillLevel string

const (
	RefillCritical RefillLevel = "Critical"
	RefillLow      RefillLevel = "Low"
	RefillGood     RefillLevel = "Good"
)

// DoseEntry is one medication/time-slot pair in the daily schedule.
type DoseEntry struct {
	MedicationID string `json:"medication_id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Time         string `json:"time"`
	Taken        bool   `json:"taken"`
}

type CreateMedicationRequest struct {
	Name         string   `json:"name" binding:"required"`
	Dosage       string   `json:"dosage" binding:"required"`
	Frequency    string   `json:"frequency"`
	Times        []string `json:"times" binding:"required,min=1"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Total        int      `json:"total" binding:"min=0"`
	Remaining    *int     `json:"remaining"`
	Reminders    bool     `json:"reminders"`
	Instructions string   `json:"instructions"`
	Prescriber   string   `json:"prescriber"`
	Condition    string   `json:"condition"`
}

type UpdateMedicationRequest struct {
	Name         *string   `json:"name"`
	Dosage       *string   `json:"dosage"`
	Frequency    *string   `json:"frequency"`
	Times        *[]string `json:"times"`
	StartDate    *string   `json:"start_date"`
	EndDate      *string   `json:"end_date"`
	Total        *int      `json:"total"`
	Remaining    *int      `json:"remaining"`
	Reminders    *bool     `json:"reminders"`
	Instructions *string   `json:"instructions"`
	Prescriber   *string   `json:"prescriber"`
	Condition    *string   `json:"condition"`
}

type MarkTakenRequest struct {
	Time string `json:"time" binding:"required"`
}
