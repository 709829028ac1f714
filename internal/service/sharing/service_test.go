package sharing

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthvault/health-api/internal/email"
	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository/memory"
	"github.com/healthvault/health-api/internal/service/event"
	"github.com/healthvault/health-api/pkg/logger"
	"github.com/healthvault/health-api/pkg/metrics"
)

// Registered once; promauto panics on duplicate registration.
var testMetrics = metrics.New("sharing_test")

var fixedNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func newTestService() *Service {
	log := logger.New(nil)
	svc := NewService(
		memory.NewGrantRepository(),
		event.NewService(memory.NewOutboxRepository()),
		email.NewNoopService(log),
		testMetrics,
		"https://health-records.app/share",
	)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestIssueTemporaryGrant(t *testing.T) {
	svc := newTestService()

	grant, err := svc.Issue(context.Background(), &model.IssueGrantRequest{
		RecipientName: "Dr. Chen",
		RecipientType: model.RecipientDoctor,
		ShareType:     model.ShareTypeTemporary,
		DurationHours: 48,
		Permissions: model.SharePermissions{
			ViewProfile: true,
			ViewRecords: true,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Profile", "Medical Records"}, grant.DataShared)
	assert.Regexp(t, regexp.MustCompile(`^TMP-\d{4}$`), grant.AccessCode)
	assert.Equal(t, "https://health-records.app/share/"+grant.AccessCode, grant.QRCode)
	assert.True(t, grant.IsActive)
	assert.Equal(t, 0, grant.AccessCount)
	assert.Nil(t, grant.LastAccessed)

	// now + 48h truncated to the calendar date
	require.NotNil(t, grant.ExpirationDate)
	want := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, *grant.ExpirationDate)
}

func TestIssuePermanentAndEmergencyHaveNoExpiration(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	perm, err := svc.Issue(ctx, &model.IssueGrantRequest{
		RecipientName: "Mom",
		RecipientType: model.RecipientFamily,
		ShareType:     model.ShareTypePermanent,
	})
	require.NoError(t, err)
	assert.Nil(t, perm.ExpirationDate)
	assert.Regexp(t, regexp.MustCompile(`^PER-\d{4}$`), perm.AccessCode)

	emg, err := svc.Issue(ctx, &model.IssueGrantRequest{
		RecipientName: "City Hospital",
		RecipientType: model.RecipientEmergency,
		ShareType:     model.ShareTypeEmergency,
	})
	require.NoError(t, err)
	assert.Nil(t, emg.ExpirationDate)
	assert.Regexp(t, regexp.MustCompile(`^EMG-\d{4}$`), emg.AccessCode)
	assert.False(t, emg.IsExpired(fixedNow.Add(100*365*24*time.Hour)))
}

func TestDataSharedLabelOrder(t *testing.T) {
	p := model.SharePermissions{
		ViewProfile:      true,
		ViewMedications:  true,
		ViewAppointments: true,
		ViewRecords:      true,
		ViewTreatments:   true,
		ViewEmergency:    true,
	}
	assert.Equal(t, []string{
		"Profile", "Medications", "Appointments",
		"Medical Records", "Treatments", "Emergency Info",
	}, p.Labels())

	assert.Empty(t, model.SharePermissions{}.Labels())
}

func TestRevokeIsTerminalAndIdempotent(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	grant, err := svc.Issue(ctx, &model.IssueGrantRequest{
		RecipientName: "Dr. Chen",
		RecipientType: model.RecipientDoctor,
		ShareType:     model.ShareTypePermanent,
	})
	require.NoError(t, err)

	revoked, err := svc.Revoke(ctx, grant.ID)
	require.NoError(t, err)
	assert.False(t, revoked.IsActive)

	again, err := svc.Revoke(ctx, grant.ID)
	require.NoError(t, err)
	assert.False(t, again.IsActive)

	// Revocation never deletes the grant.
	grants, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, grants, 1)
}

func TestIsExpiredIsQueryTimeOnly(t *testing.T) {
	svc := newTestService()

	grant, err := svc.Issue(context.Background(), &model.IssueGrantRequest{
		RecipientName: "Nurse Kim",
		RecipientType: model.RecipientNurse,
		ShareType:     model.ShareTypeTemporary,
		DurationHours: 24,
	})
	require.NoError(t, err)

	assert.False(t, grant.IsExpired(fixedNow))
	assert.True(t, grant.IsExpired(fixedNow.Add(72*time.Hour)))
	// An expired grant keeps its active flag; expiry is derived.
	assert.True(t, grant.IsActive)
}

func TestRedeemStampsAccess(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	grant, err := svc.Issue(ctx, &model.IssueGrantRequest{
		RecipientName: "Dr. Chen",
		RecipientType: model.RecipientDoctor,
		ShareType:     model.ShareTypePermanent,
		Permissions:   model.SharePermissions{ViewRecords: true},
	})
	require.NoError(t, err)

	result, err := svc.Redeem(ctx, grant.AccessCode)
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionToken)
	assert.Equal(t, 1, result.Grant.AccessCount)
	require.NotNil(t, result.Grant.LastAccessed)
	assert.Equal(t, fixedNow, *result.Grant.LastAccessed)

	resolved, err := svc.Session(ctx, result.SessionToken)
	require.NoError(t, err)
	assert.Equal(t, grant.ID, resolved.ID)
}

func TestRedeemRejectsRevokedGrant(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	grant, err := svc.Issue(ctx, &model.IssueGrantRequest{
		RecipientName: "Dr. Chen",
		RecipientType: model.RecipientDoctor,
		ShareType:     model.ShareTypePermanent,
	})
	require.NoError(t, err)

	_, err = svc.Revoke(ctx, grant.ID)
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, grant.AccessCode)
	assert.Error(t, err)
}

func TestRedeemRejectsExpiredGrant(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	grant, err := svc.Issue(ctx, &model.IssueGrantRequest{
		RecipientName: "Nurse Kim",
		RecipientType: model.RecipientNurse,
		ShareType:     model.ShareTypeTemporary,
		DurationHours: 24,
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return fixedNow.Add(96 * time.Hour) }

	_, err = svc.Redeem(ctx, grant.AccessCode)
	assert.Error(t, err)
}

func TestRedeemEnforcesAccessLimit(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	grant, err := svc.Issue(ctx, &model.IssueGrantRequest{
		RecipientName:  "Dr. Chen",
		RecipientType:  model.RecipientDoctor,
		ShareType:      model.ShareTypeTemporary,
		DurationHours:  48,
		MaxAccessCount: 2,
	})
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, grant.AccessCode)
	require.NoError(t, err)
	_, err = svc.Redeem(ctx, grant.AccessCode)
	require.NoError(t, err)

	_, err = svc.Redeem(ctx, grant.AccessCode)
	assert.Error(t, err)
}

func TestIssueValidatesRequest(t *testing.T) {
	svc := newTestService()

	_, err := svc.Issue(context.Background(), &model.IssueGrantRequest{
		RecipientType: model.RecipientDoctor,
		ShareType:     model.ShareTypePermanent,
	})
	assert.Error(t, err, "missing recipient name must be rejected")

	_, err = svc.Issue(context.Background(), &model.IssueGrantRequest{
		RecipientName: "Dr. Chen",
		RecipientType: "alien",
		ShareType:     model.ShareTypePermanent,
	})
	assert.Error(t, err, "unknown recipient type must be rejected")
}

func TestAccessCodesAvoidCollisions(t *testing.T) {
	svc := newTestService()
	calls := 0
	// Force the same candidate twice, then a fresh one.
	svc.rand = func(n int) int {
		calls++
		if calls <= 2 {
			return 500
		}
		return 501
	}

	ctx := context.Background()
	first, err := svc.Issue(ctx, &model.IssueGrantRequest{
		RecipientName: "A",
		RecipientType: model.RecipientFamily,
		ShareType:     model.ShareTypePermanent,
	})
	require.NoError(t, err)

	second, err := svc.Issue(ctx, &model.IssueGrantRequest{
		RecipientName: "B",
		RecipientType: model.RecipientFamily,
		ShareType:     model.ShareTypePermanent,
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.AccessCode, second.AccessCode)
}
