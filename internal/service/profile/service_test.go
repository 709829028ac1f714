package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository/memory"
	"github.com/healthvault/health-api/internal/service/event"
	"github.com/healthvault/health-api/pkg/security"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(memory.NewProfileRepository(), event.NewService(memory.NewOutboxRepository()))
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, svc.Seed(context.Background(), "Demo Owner", "demo@healthvault.local", "demo-password", hasher))
	return svc
}

func TestSeedIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	name := "Renamed Owner"
	_, err := svc.Update(ctx, &model.UpdateProfileRequest{Name: &name})
	require.NoError(t, err)

	// A second seed must not overwrite the existing profile.
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, svc.Seed(ctx, "Demo Owner", "demo@healthvault.local", "demo-password", hasher))

	profile, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Owner", profile.Name)
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	bloodType := "O+"
	updated, err := svc.Update(ctx, &model.UpdateProfileRequest{BloodType: &bloodType})
	require.NoError(t, err)
	assert.Equal(t, "O+", updated.BloodType)
	assert.Equal(t, "Demo Owner", updated.Name)
	assert.Equal(t, "demo@healthvault.local", updated.Email)
}

func TestSelectPlan(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	profile, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "free", profile.Plan)

	updated, err := svc.SelectPlan(ctx, "plus")
	require.NoError(t, err)
	assert.Equal(t, "plus", updated.Plan)

	_, err = svc.SelectPlan(ctx, "enterprise")
	assert.Error(t, err)
}

func TestPlansCatalog(t *testing.T) {
	svc := newTestService(t)

	plans := svc.Plans()
	require.Len(t, plans, 3)
	assert.Equal(t, "free", plans[0].ID)
	assert.Equal(t, "plus", plans[1].ID)
	assert.Equal(t, "premium", plans[2].ID)
}
