package medication

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/healthvault/health-api/internal/model"
)

// clockLayout matches time-of-day strings like "8:00 AM".
const clockLayout = "3:04 PM"

// unparseable time strings sort after every real clock time.
const sortLast = 24 * 60

// minuteOfDay parses a clock string against a fixed reference date so
// only the hour and minute matter for ordering.
func minuteOfDay(s string) int {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return sortLast
	}
	return t.Hour()*60 + t.Minute()
}

// TodaysSchedule flattens every medication's dose times into discrete
// entries sorted by time of day. The sort is stable: entries at the
// same clock time keep the original collection order.
func (s *Service) TodaysSchedule(ctx context.Context) ([]model.DoseEntry, error) {
	meds, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildSchedule(meds), nil
}

// BuildSchedule is the pure core of TodaysSchedule.
func BuildSchedule(meds []*model.Medication) []model.DoseEntry {
	var entries []model.DoseEntry
	for _, med := range meds {
		for _, t := range med.Times {
			entries = append(entries, model.DoseEntry{
				MedicationID: med.ID.String(),
				Name:         med.Name,
				Dosage:       med.Dosage,
				Time:         t,
				Taken:        med.Taken[t],
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return minuteOfDay(entries[i].Time) < minuteOfDay(entries[j].Time)
	})
	return entries
}

// AdherencePercent is the share of the prescribed supply already taken,
// rounded to the nearest whole percent. A zero total reads as 0%.
func AdherencePercent(med *model.Medication) int {
	if med.Total == 0 {
		return 0
	}
	pct := float64(med.Total-med.Remaining) / float64(med.Total) * 100
	return int(math.Round(pct))
}

// RefillStatus classifies the remaining supply. The lower bounds are
// inclusive: exactly 20% is Critical and exactly 50% is Low. A zero
// total counts as Critical.
func RefillStatus(remaining, total int) model.RefillLevel {
	if total == 0 {
		return model.RefillCritical
	}
	pct := float64(remaining) / float64(total) * 100
	switch {
	case pct <= 20:
		return model.RefillCritical
	case pct <= 50:
		return model.RefillLow
	default:
		return model.RefillGood
	}
}

// RefillAlerts returns medications at or below half supply.
func (s *Service) RefillAlerts(ctx context.Context) ([]*model.Medication, error) {
	meds, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []*model.Medication
	for _, med := range meds {
		if RefillStatus(med.Remaining, med.Total) != model.RefillGood {
			out = append(out, med)
		}
	}
	return out, nil
}
