package dashboard

import (
	"context"
	"time"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/service/appointment"
	"github.com/healthvault/health-api/internal/service/medication"
	"github.com/healthvault/health-api/internal/service/sharing"
)

// Summary is the aggregate view backing the home screen.
type Summary struct {
	NextAppointment *model.Appointment  `json:"next_appointment"`
	TodaysSchedule  []model.DoseEntry   `json:"todays_schedule"`
	DosesTaken      int                 `json:"doses_taken"`
	DosesTotal      int                 `json:"doses_total"`
	RefillAlerts    []*model.Medication `json:"refill_alerts"`
	ActiveShares    int                 `json:"active_shares"`
}

type Service struct {
	appointments *appointment.Service
	medications  *medication.Service
	shares       *sharing.Service
}

func NewService(appointments *appointment.Service, medications *medication.Service, shares *sharing.Service) *Service {
	return &Service{appointments: appointments, medications: medications, shares: shares}
}

// earlier orders appointments by date, then by clock time for same-day
// pairs. Unparseable times sort after every real clock time within
// their day.
func earlier(a, b *model.Appointment) bool {
	if a.Date != b.Date {
		return a.Date < b.Date
	}
	return clockMinute(a.Time) < clockMinute(b.Time)
}

func clockMinute(s string) int {
	t, err := time.Parse("3:04 PM", s)
	if err != nil {
		return 24 * 60
	}
	return t.Hour()*60 + t.Minute()
}

func (s *Service) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	upcoming, err := s.appointments.Upcoming(ctx, now)
	if err != nil {
		return nil, err
	}
	var next *model.Appointment
	for _, apt := range upcoming {
		if next == nil || earlier(apt, next) {
			next = apt
		}
	}

	schedule, err := s.medications.TodaysSchedule(ctx)
	if err != nil {
		return nil, err
	}
	taken := 0
	for _, entry := range schedule {
		if entry.Taken {
			taken++
		}
	}

	alerts, err := s.medications.RefillAlerts(ctx)
	if err != nil {
		return nil, err
	}

	grants, err := s.shares.List(ctx)
	if err != nil {
		return nil, err
	}
	active := 0
	for _, g := range grants {
		if g.IsActive && !g.IsExpired(now) {
			active++
		}
	}

	return &Summary{
		NextAppointment: next,
		TodaysSchedule:  schedule,
		DosesTaken:      taken,
		DosesTotal:      len(schedule),
		RefillAlerts:    alerts,
		ActiveShares:    active,
	}, nil
}
