package record

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository/memory"
	"github.com/healthvault/health-api/internal/service/event"
)

func newTestService() *Service {
	events := event.NewService(memory.NewOutboxRepository())
	return NewService(memory.NewRecordRepository(), events)
}

func createLinked(t *testing.T, svc *Service, diseaseID uuid.UUID, title, category string) *model.MedicalRecord {
	t.Helper()
	rec, err := svc.Create(context.Background(), &model.CreateRecordRequest{
		Title:     title,
		Date:      "2026-02-14",
		Category:  category,
		DiseaseID: diseaseID.String(),
	})
	require.NoError(t, err)
	return rec
}

func TestRelatedRecordsIncludesEveryCategory(t *testing.T) {
	svc := newTestService()
	diseaseID := uuid.New()

	createLinked(t, svc, diseaseID, "CBC Panel", "lab-results")
	createLinked(t, svc, diseaseID, "Chest X-Ray", "imaging")
	createLinked(t, svc, uuid.New(), "Other Condition Scan", "imaging")

	related, err := svc.RelatedRecords(context.Background(), diseaseID)
	require.NoError(t, err)

	require.Len(t, related, len(model.RecordCategories))
	for _, cat := range model.RecordCategories {
		_, ok := related[cat]
		assert.True(t, ok, "category %s must be present", cat)
	}

	assert.Len(t, related[model.CategoryLabResults], 1)
	assert.Len(t, related[model.CategoryImaging], 1)
	assert.Equal(t, "Chest X-Ray", related[model.CategoryImaging][0].Title)
	assert.Empty(t, related[model.CategoryPrescriptions])
	assert.Empty(t, related[model.CategoryVaccinations])
}

func TestRelatedRecordsForUnknownDisease(t *testing.T) {
	svc := newTestService()

	related, err := svc.RelatedRecords(context.Background(), uuid.New())
	require.NoError(t, err)

	require.Len(t, related, len(model.RecordCategories))
	for cat, recs := range related {
		assert.NotNil(t, recs, "category %s must map to an empty slice, not nil", cat)
		assert.Empty(t, recs)
	}
}

func TestDiseaseReferenceIsNotValidated(t *testing.T) {
	svc := newTestService()

	// Any well-formed uuid is accepted even if no such disease exists.
	rec := createLinked(t, svc, uuid.New(), "Orphan Report", "lab-results")
	assert.NotNil(t, rec.DiseaseID)

	_, err := svc.Create(context.Background(), &model.CreateRecordRequest{
		Title:     "Bad Link",
		Date:      "2026-02-14",
		Category:  "lab-results",
		DiseaseID: "not-a-uuid",
	})
	assert.Error(t, err)
}

func TestUpdateCanClearDiseaseLink(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rec := createLinked(t, svc, uuid.New(), "Linked Report", "lab-results")

	empty := ""
	updated, err := svc.Update(ctx, rec.ID, &model.UpdateRecordRequest{DiseaseID: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.DiseaseID)
}

func TestListByCategory(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	createLinked(t, svc, uuid.New(), "Flu Shot", "vaccinations")
	createLinked(t, svc, uuid.New(), "Tetanus Booster", "vaccinations")
	createLinked(t, svc, uuid.New(), "MRI", "imaging")

	vaccinations, err := svc.ListByCategory(ctx, model.CategoryVaccinations)
	require.NoError(t, err)
	assert.Len(t, vaccinations, 2)

	prescriptions, err := svc.ListByCategory(ctx, model.CategoryPrescriptions)
	require.NoError(t, err)
	assert.Empty(t, prescriptions)
}

func TestDeleteIsIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rec := createLinked(t, svc, uuid.New(), "Temp", "imaging")

	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.NoError(t, svc.Delete(ctx, rec.ID))
	require.NoError(t, svc.Delete(ctx, uuid.New()))
}
