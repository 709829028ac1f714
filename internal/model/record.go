package model

import (
	"github.com/google/uuid"
)

type RecordCategory string

const (
	CategoryLabResults    RecordCategory = "lab-results"
	CategoryImaging       RecordCategory = "imaging"
	CategoryPrescriptions RecordCategory = "prescriptions"
	CategoryVaccinations  RecordCategory = "vaccinations"
)

// RecordCategories lists every category in presentation order. Derived
// views return all of them even when empty.
var RecordCategories = []RecordCategory{
	CategoryLabResults,
	CategoryImaging,
	CategoryPrescriptions,
	CategoryVaccinations,
}

func (c RecordCategory) Valid() bool {
	switch c {
	case CategoryLabResults, CategoryImaging, CategoryPrescriptions, CategoryVaccinations:
		return true
	}
	return false
}

type MedicalRecord struct {
	Base
	Title    string         `json:"title"`
	Date     string         `json:"date"`
	Doctor   string         `json:"doctor"`
	Facility string         `json:"facility"`
	Type     string         `json:"type"`
	Status   string         `json:"status"`
	FileType string         `json:"file_type"`
	Size     string         `json:"size"`
	Category RecordCategory `json:"category"`
	Notes    string         `json:"notes,omitempty"`
	Results  string         `json:"results,omitempty"`
	// DiseaseID is a weak reference; deleting the disease does not
	// cascade to its records.
	DiseaseID *uuid.UUID `json:"disease_id,omitempty"`
}

// Clone returns a deep copy sharing no state with the receiver.
func (r *MedicalRecord) Clone() *MedicalRecord {
	out := *r
	if r.DiseaseID != nil {
		id := *r.DiseaseID
		out.DiseaseID = &id
	}
	return &out
}

type CreateRecordRequest struct {
	Title     string `json:"title" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Doctor    string `json:"doctor"`
	Facility  string `json:"facility"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	FileType  string `json:"file_type"`
	Size      string `json:"size"`
	Category  string `json:"category" binding:"required,oneof=lab-results imaging prescriptions vaccinations"`
	Notes     string `json:"notes"`
	Results   string `json:"results"`
	DiseaseID string `json:"disease_id" binding:"omitempty,uuid"`
}

type UpdateRecordRequest struct {
	Title     *string `json:"title"`
	Date      *string `json:"date"`
	Doctor    *string `json:"doctor"`
	Facility  *string `json:"facility"`
	Type      *string `json:"type"`
	Status    *string `json:"status"`
	FileType  *string `json:"file_type"`
	Size      *string `json:"size"`
	Category  *string `json:"category" binding:"omitempty,oneof=lab-results imaging prescriptions vaccinations"`
	Notes     *string `json:"notes"`
	Results   *string `json:"results"`
	DiseaseID *string `json:"disease_id" binding:"omitempty,uuid"`
}
