package disease

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository/memory"
	"github.com/healthvault/health-api/internal/service/event"
)

func newTestService() *Service {
	events := event.NewService(memory.NewOutboxRepository())
	return NewService(memory.NewDiseaseRepository(), events)
}

func createCondition(t *testing.T, svc *Service) *model.Disease {
	t.Helper()
	disease, err := svc.Create(context.Background(), &model.CreateDiseaseRequest{
		Name:          "Type 2 Diabetes",
		DiagnosisDate: "2024-06-01",
		Doctor:        "Dr. Patel",
		Status:        "Chronic",
		Severity:      "Moderate",
	})
	require.NoError(t, err)
	return disease
}

func TestCreateStampsLastUpdated(t *testing.T) {
	svc := newTestService()
	disease := createCondition(t, svc)

	assert.Equal(t, time.Now().Format(dateLayout), disease.LastUpdated)
	assert.NotNil(t, disease.OngoingTreatments)
	assert.Empty(t, disease.OngoingTreatments)
}

func TestAddTreatment(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	disease := createCondition(t, svc)

	updated, err := svc.AddTreatment(ctx, disease.ID, &model.TreatmentRequest{
		Name:      "Physio Sessions",
		Type:      "Physiotherapy",
		Frequency: "Twice weekly",
	})
	require.NoError(t, err)

	require.Len(t, updated.OngoingTreatments, 1)
	got := updated.OngoingTreatments[0]
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, model.TreatmentStatusActive, got.Status, "status defaults to Active")
	assert.Equal(t, time.Now().Format(dateLayout), updated.LastUpdated)
}

func TestUpdateTreatment(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	disease := createCondition(t, svc)

	withTreatment, err := svc.AddTreatment(ctx, disease.ID, &model.TreatmentRequest{
		Name:          "Dialysis",
		Type:          "Dialysis",
		TotalSessions: 10,
	})
	require.NoError(t, err)
	treatmentID := withTreatment.OngoingTreatments[0].ID

	updated, err := svc.UpdateTreatment(ctx, disease.ID, treatmentID, &model.TreatmentRequest{
		Name:              "Dialysis",
		Type:              "Dialysis",
		Status:            "Paused",
		TotalSessions:     10,
		CompletedSessions: 4,
	})
	require.NoError(t, err)

	require.Len(t, updated.OngoingTreatments, 1)
	got := updated.OngoingTreatments[0]
	assert.Equal(t, treatmentID, got.ID, "treatment keeps its id across updates")
	assert.Equal(t, model.TreatmentStatusPaused, got.Status)
	assert.Equal(t, 40, got.Progress())
}

func TestUpdateTreatmentUnknownID(t *testing.T) {
	svc := newTestService()
	disease := createCondition(t, svc)

	_, err := svc.UpdateTreatment(context.Background(), disease.ID, uuid.New(), &model.TreatmentRequest{
		Name: "Ghost",
		Type: "Other",
	})
	assert.Error(t, err)
}

func TestDeleteTreatment(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	disease := createCondition(t, svc)

	withTreatment, err := svc.AddTreatment(ctx, disease.ID, &model.TreatmentRequest{
		Name: "Injections",
		Type: "Injection",
	})
	require.NoError(t, err)
	treatmentID := withTreatment.OngoingTreatments[0].ID

	updated, err := svc.DeleteTreatment(ctx, disease.ID, treatmentID)
	require.NoError(t, err)
	assert.Empty(t, updated.OngoingTreatments)

	// Removing a treatment that is already gone leaves the disease as is.
	again, err := svc.DeleteTreatment(ctx, disease.ID, treatmentID)
	require.NoError(t, err)
	assert.Empty(t, again.OngoingTreatments)
}

func TestTreatmentProgress(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		want      int
	}{
		{"no total", 0, 3, 0},
		{"halfway", 10, 5, 50},
		{"rounds up", 3, 2, 67},
		{"complete", 8, 8, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := model.OngoingTreatment{TotalSessions: tt.total, CompletedSessions: tt.completed}
			assert.Equal(t, tt.want, tr.Progress())
		})
	}
}

func TestDeleteDiseaseIsIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	disease := createCondition(t, svc)

	require.NoError(t, svc.Delete(ctx, disease.ID))
	require.NoError(t, svc.Delete(ctx, disease.ID))

	_, err := svc.Get(ctx, disease.ID)
	assert.Error(t, err)
}
