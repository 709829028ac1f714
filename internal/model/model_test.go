package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayTokens(t *testing.T) {
	assert.Equal(t, "status-active", DiseaseStatusActive.DisplayToken())
	assert.Equal(t, "status-chronic", DiseaseStatusChronic.DisplayToken())
	assert.Equal(t, "severity-severe", SeveritySevere.DisplayToken())

	// Unrecognized values land in the fallback bucket.
	assert.Equal(t, "status-unknown", DiseaseStatus("???").DisplayToken())
	assert.Equal(t, "severity-unknown", DiseaseSeverity("").DisplayToken())
}

func TestGrantIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	permanent := ShareGrant{ShareType: ShareTypePermanent}
	assert.False(t, permanent.IsExpired(now))
	assert.False(t, permanent.IsExpired(now.AddDate(10, 0, 0)))

	expiry := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	temporary := ShareGrant{ShareType: ShareTypeTemporary, ExpirationDate: &expiry}
	assert.False(t, temporary.IsExpired(now))
	assert.False(t, temporary.IsExpired(expiry), "expiry instant itself is not yet expired")
	assert.True(t, temporary.IsExpired(expiry.Add(time.Second)))
}

func TestAppointmentIsUpcoming(t *testing.T) {
	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)

	assert.True(t, (&Appointment{Date: "2026-03-10"}).IsUpcoming(now), "same day counts as upcoming")
	assert.True(t, (&Appointment{Date: "2026-03-11"}).IsUpcoming(now))
	assert.False(t, (&Appointment{Date: "2026-03-09"}).IsUpcoming(now))
	assert.False(t, (&Appointment{Date: "soon"}).IsUpcoming(now))
}

func TestRecordCategoryValid(t *testing.T) {
	for _, cat := range RecordCategories {
		assert.True(t, cat.Valid())
	}
	assert.False(t, RecordCategory("genetics").Valid())
}
