package model

import (
	"time"
)

type AppointmentType string

const (
	AppointmentTypeConsultation  AppointmentType = "consultation"
	AppointmentTypeFollowUp      AppointmentType = "followup"
	AppointmentTypeAnnualCheckup AppointmentType = "annual_checkup"
	AppointmentTypeUrgentCare    AppointmentType = "urgent_care"
)

type Appointment struct {
	Base
	DoctorName string          `json:"doctor_name"`
	Specialty  string          `json:"specialty"`
	Date       string          `json:"date"`
	Time       string          `json:"time"`
	Duration   string          `json:"duration"`
	Location   string          `json:"location"`
	Address    string          `json:"address,omitempty"`
	Phone      string          `json:"phone,omitempty"`
	Type       AppointmentType `json:"type"`
	Notes      string          `json:"notes,omitempty"`
	Completed  bool            `json:"completed"`
	Summary    string          `json:"summary,omitempty"`
}

// Clone returns a copy sharing no state with the receiver.
func (a *Appointment) Clone() *Appointment {
	out := *a
	return &out
}

// IsUpcoming reports whether the appointment date falls on or after the
// given day. The date is stored as YYYY-MM-DD; unparseable dates are
// treated as past.
func (a *Appointment) IsUpcoming(now time.Time) bool {
	d, err := time.Parse("2006-01-02", a.Date)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !d.Before(today)
}

type CreateAppointmentRequest struct {
	DoctorName string `json:"doctor_name" binding:"required"`
	Specialty  string `json:"specialty" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Duration   string `json:"duration"`
	Location   string `json:"location"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Type       string `json:"type" binding:"required,oneof=consultation followup annual_checkup urgent_care"`
	Notes      string `json:"notes" binding:"max=1000"`
}

type UpdateAppointmentRequest struct {
	DoctorName *string `json:"doctor_name"`
	Specialty  *string `json:"specialty"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	Duration   *string `json:"duration"`
	Location   *string `json:"location"`
	Address    *string `json:"address"`
	Phone      *string `json:"phone"`
	Type       *string `json:"type"`
	Notes      *string `json:"notes"`
}

type CompleteAppointmentRequest struct {
	Summary string `json:"summary" binding:"required,max=2000"`
}
