package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
)

func TestMedicationCRUD(t *testing.T) {
	repo := NewMedicationRepository()
	ctx := context.Background()

	med := &model.Medication{Name: "Metformin", Total: 60, Remaining: 60}
	require.NoError(t, repo.Create(ctx, med))
	assert.NotEqual(t, uuid.Nil, med.ID)
	assert.NotNil(t, med.Taken, "taken map is initialized on create")

	got, err := repo.Get(ctx, med.ID)
	require.NoError(t, err)
	assert.Equal(t, "Metformin", got.Name)

	_, err = repo.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateUnknownIDIsSilentNoOp(t *testing.T) {
	repo := NewMedicationRepository()
	ctx := context.Background()

	ghost := &model.Medication{Name: "Ghost"}
	ghost.ID = uuid.New()
	require.NoError(t, repo.Update(ctx, ghost))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "updating an unknown id must not insert")
}

func TestDeleteUnknownIDIsSilentNoOp(t *testing.T) {
	repo := NewMedicationRepository()
	ctx := context.Background()

	med := &model.Medication{Name: "Metformin"}
	require.NoError(t, repo.Create(ctx, med))

	require.NoError(t, repo.Delete(ctx, uuid.New()))
	require.NoError(t, repo.Delete(ctx, med.ID))
	require.NoError(t, repo.Delete(ctx, med.ID))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListPreservesInsertionOrder(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()

	names := []string{"Dr. A", "Dr. B", "Dr. C"}
	for _, name := range names {
		require.NoError(t, repo.Create(ctx, &model.Appointment{DoctorName: name}))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, apt := range all {
		assert.Equal(t, names[i], apt.DoctorName)
	}
}

func TestOrderSurvivesDeletion(t *testing.T) {
	repo := NewAppointmentRepository()
	ctx := context.Background()

	a := &model.Appointment{DoctorName: "Dr. A"}
	b := &model.Appointment{DoctorName: "Dr. B"}
	c := &model.Appointment{DoctorName: "Dr. C"}
	for _, apt := range []*model.Appointment{a, b, c} {
		require.NoError(t, repo.Create(ctx, apt))
	}

	require.NoError(t, repo.Delete(ctx, b.ID))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Dr. A", all[0].DoctorName)
	assert.Equal(t, "Dr. C", all[1].DoctorName)
}

func TestGetReturnsDetachedCopy(t *testing.T) {
	repo := NewMedicationRepository()
	ctx := context.Background()

	med := &model.Medication{Name: "Metformin", Times: []string{"8:00 AM"}, Total: 60, Remaining: 60}
	require.NoError(t, repo.Create(ctx, med))

	got, err := repo.Get(ctx, med.ID)
	require.NoError(t, err)
	got.Name = "Scribbled"
	got.Taken["8:00 AM"] = true
	got.Times[0] = "noon"

	fresh, err := repo.Get(ctx, med.ID)
	require.NoError(t, err)
	assert.Equal(t, "Metformin", fresh.Name, "mutating a fetched copy must not touch the store")
	assert.False(t, fresh.Taken["8:00 AM"])
	assert.Equal(t, "8:00 AM", fresh.Times[0])
}

func TestListReturnsDetachedCopies(t *testing.T) {
	repo := NewMedicationRepository()
	ctx := context.Background()

	med := &model.Medication{Name: "Metformin", Times: []string{"8:00 AM"}}
	require.NoError(t, repo.Create(ctx, med))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	all[0].Taken["8:00 AM"] = true

	fresh, err := repo.Get(ctx, med.ID)
	require.NoError(t, err)
	assert.False(t, fresh.Taken["8:00 AM"])
}

func TestStoreDetachesFromCallerPointer(t *testing.T) {
	repo := NewMedicationRepository()
	ctx := context.Background()

	med := &model.Medication{Name: "Metformin"}
	require.NoError(t, repo.Create(ctx, med))
	med.Name = "Renamed after create"
	med.Taken["8:00 AM"] = true

	fresh, err := repo.Get(ctx, med.ID)
	require.NoError(t, err)
	assert.Equal(t, "Metformin", fresh.Name)
	assert.Empty(t, fresh.Taken)
}

func TestGrantAccessCodeLookup(t *testing.T) {
	repo := NewGrantRepository()
	ctx := context.Background()

	grant := &model.ShareGrant{AccessCode: "PER-4821", IsActive: true}
	require.NoError(t, repo.Create(ctx, grant))

	got, err := repo.GetByAccessCode(ctx, "PER-4821")
	require.NoError(t, err)
	assert.Equal(t, grant.ID, got.ID)

	_, err = repo.GetByAccessCode(ctx, "PER-0000")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecordListByDisease(t *testing.T) {
	repo := NewRecordRepository()
	ctx := context.Background()

	diseaseID := uuid.New()
	linked := &model.MedicalRecord{Title: "Linked", DiseaseID: &diseaseID}
	other := uuid.New()
	unrelated := &model.MedicalRecord{Title: "Unrelated", DiseaseID: &other}
	orphan := &model.MedicalRecord{Title: "Orphan"}
	for _, rec := range []*model.MedicalRecord{linked, unrelated, orphan} {
		require.NoError(t, repo.Create(ctx, rec))
	}

	got, err := repo.ListByDisease(ctx, diseaseID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Linked", got[0].Title)
}
