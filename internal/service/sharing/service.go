package sharing

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/healthvault/health-api/internal/email"
	"github.com/healthvault/health-api/internal/model"
	"github.com/healthvault/health-api/internal/repository"
	"github.com/healthvault/health-api/internal/service/event"
	apperrors "github.com/healthvault/health-api/pkg/errors"
	"github.com/healthvault/health-api/pkg/metrics"
	"github.com/healthvault/health-api/pkg/validator"
)

const (
	// codeAttempts bounds the uniqueness retry loop for access codes.
	codeAttempts = 10

	sessionTTL = time.Hour
)

type Service struct {
	repo     repository.GrantRepository
	events   *event.Service
	emails   email.Service
	validate *validator.Validator
	metrics  *metrics.Metrics
	shareURL string

	// sessions holds short-lived redemption sessions keyed by token.
	sessions *gocache.Cache

	now  func() time.Time
	rand func(n int) int
}

func NewService(
	repo repository.GrantRepository,
	events *event.Service,
	emails email.Service,
	m *metrics.Metrics,
	shareURL string,
) *Service {
	return &Service{
		repo:     repo,
		events:   events,
		emails:   emails,
		validate: validator.New(),
		metrics:  m,
		shareURL: shareURL,
		sessions: gocache.New(sessionTTL, 10*time.Minute),
		now:      time.Now,
		rand:     rand.Intn,
	}
}

func prefixFor(t model.ShareType) string {
	switch t {
	case model.ShareTypeEmergency:
		return "EMG"
	case model.ShareTypeTemporary:
		return "TMP"
	default:
		return "PER"
	}
}

// generateAccessCode builds prefix-NNNN with NNNN in [1000,9999],
// retrying on the rare collision with an existing grant.
func (s *Service) generateAccessCode(ctx context.Context, shareType model.ShareType) (string, error) {
	prefix := prefixFor(shareType)
	for i := 0; i < codeAttempts; i++ {
		code := fmt.Sprintf("%s-%d", prefix, s.rand(9000)+1000)
		if _, err := s.repo.GetByAccessCode(ctx, code); err == repository.ErrNotFound {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique access code")
}

// Issue creates a grant with its credential computed synchronously:
// shared-data labels from the permission set, an access code, the share
// link, and for temporary shares an expiration date truncated to the
// calendar day.
func (s *Service) Issue(ctx context.Context, req *model.IssueGrantRequest) (*model.ShareGrant, error) {
	if err := s.validate.Validate(req); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	code, err := s.generateAccessCode(ctx, req.ShareType)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	grant := &model.ShareGrant{
		RecipientName:    req.RecipientName,
		RecipientEmail:   req.RecipientEmail,
		RecipientType:    req.RecipientType,
		ShareType:        req.ShareType,
		DataShared:       req.Permissions.Labels(),
		AccessCount:      0,
		IsActive:         true,
		Permissions:      req.Permissions,
		EmergencyContact: req.EmergencyContact,
		AccessCode:       code,
		QRCode:           fmt.Sprintf("%s/%s", s.shareURL, code),
	}

	if req.ShareType == model.ShareTypeTemporary {
		duration := req.DurationHours
		if duration <= 0 {
			duration = 24
		}
		expiry := s.now().Add(time.Duration(duration) * time.Hour)
		day := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, expiry.Location())
		grant.ExpirationDate = &day
		grant.TemporaryAccess = &model.TemporaryAccess{
			DurationHours:  duration,
			MaxAccessCount: req.MaxAccessCount,
		}
	}

	if err := s.repo.Create(ctx, grant); err != nil {
		return nil, fmt.Errorf("failed to store grant: %w", err)
	}

	s.metrics.GrantsIssued.WithLabelValues(string(grant.ShareType)).Inc()

	if grant.RecipientEmail != "" {
		if err := s.emails.SendShareInvite(ctx, grant.RecipientEmail, grant.RecipientName, grant.AccessCode, grant.QRCode); err != nil {
			// Delivery is best effort; the grant stands either way.
			_ = s.events.Record(ctx, "grant.invite_failed", map[string]interface{}{
				"grant_id": grant.ID,
				"error":    err.Error(),
			})
		}
	}

	if err := s.events.Record(ctx, "grant.issued", grant); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return grant, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.ShareGrant, error) {
	grant, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("grant")
	}
	return grant, nil
}

func (s *Service) List(ctx context.Context) ([]*model.ShareGrant, error) {
	return s.repo.List(ctx)
}

// Revoke flips the active flag and nothing else. Revocation is terminal
// and idempotent; the grant stays in the collection as an audit trail.
func (s *Service) Revoke(ctx context.Context, id uuid.UUID) (*model.ShareGrant, error) {
	grant, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NotFound("grant")
	}

	if grant.IsActive {
		grant.IsActive = false
		if err := s.repo.Update(ctx, grant); err != nil {
			return nil, fmt.Errorf("failed to revoke grant: %w", err)
		}
		if err := s.events.Record(ctx, "grant.revoked", map[string]interface{}{"id": grant.ID}); err != nil {
			return nil, fmt.Errorf("failed to record event: %w", err)
		}
	}
	return grant, nil
}

// RedeemResult is an ephemeral view session opened by a valid access
// code.
type RedeemResult struct {
	SessionToken string                 `json:"session_token"`
	Grant        *model.ShareGrant      `json:"grant"`
	ExpiresAt    time.Time              `json:"expires_at"`
	Scopes       model.SharePermissions `json:"scopes"`
}

// Redeem exchanges an access code for a short-lived view session. It
// rejects revoked and expired grants, enforces the temporary-access
// redemption cap, and stamps the access counters.
func (s *Service) Redeem(ctx context.Context, accessCode string) (*RedeemResult, error) {
	grant, err := s.repo.GetByAccessCode(ctx, accessCode)
	if err != nil {
		s.metrics.GrantRedemptions.WithLabelValues("unknown_code").Inc()
		return nil, apperrors.NotFound("grant")
	}

	now := s.now()
	if !grant.IsActive {
		s.metrics.GrantRedemptions.WithLabelValues("revoked").Inc()
		return nil, apperrors.Forbidden("grant has been revoked")
	}
	if grant.IsExpired(now) {
		s.metrics.GrantRedemptions.WithLabelValues("expired").Inc()
		return nil, apperrors.Forbidden("grant has expired")
	}
	if grant.TemporaryAccess != nil && grant.TemporaryAccess.MaxAccessCount > 0 &&
		grant.AccessCount >= grant.TemporaryAccess.MaxAccessCount {
		s.metrics.GrantRedemptions.WithLabelValues("limit_reached").Inc()
		return nil, apperrors.Forbidden("grant access limit reached")
	}

	grant.AccessCount++
	grant.LastAccessed = &now
	if err := s.repo.Update(ctx, grant); err != nil {
		return nil, fmt.Errorf("failed to stamp access: %w", err)
	}

	token := uuid.New().String()
	result := &RedeemResult{
		SessionToken: token,
		Grant:        grant,
		ExpiresAt:    now.Add(sessionTTL),
		Scopes:       grant.Permissions,
	}
	s.sessions.Set(token, grant.ID, sessionTTL)

	s.metrics.GrantRedemptions.WithLabelValues("ok").Inc()
	if err := s.events.Record(ctx, "grant.redeemed", map[string]interface{}{
		"id":           grant.ID,
		"access_count": grant.AccessCount,
	}); err != nil {
		return nil, fmt.Errorf("failed to record event: %w", err)
	}
	return result, nil
}

// Session resolves a redemption session token to its grant, if the
// session is still live.
func (s *Service) Session(ctx context.Context, token string) (*model.ShareGrant, error) {
	v, ok := s.sessions.Get(token)
	if !ok {
		return nil, apperrors.Unauthorized("session expired or unknown")
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil, apperrors.Internal(fmt.Errorf("malformed session entry"))
	}
	return s.Get(ctx, id)
}
