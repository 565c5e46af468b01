package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fancall/config"
	"fancall/infras/otel/mocks"
	"fancall/internal/domains/availability"
	repoMocks "fancall/internal/domains/settings/mocks"
	"fancall/internal/domains/settings/model"
	"fancall/internal/domains/settings/model/dto"
	"fancall/internal/domains/settings/service"
	cacheMocks "fancall/shared/cache/mocks"
	"fancall/shared/constant"
	"fancall/shared/failure"
)

type settingsMocks struct {
	repo  *repoMocks.MockBookingPolicy
	cache *cacheMocks.MockRedisCache
}

func newSettingsService(t *testing.T) (service.BookingPolicy, *settingsMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &settingsMocks{
		repo:  repoMocks.NewMockBookingPolicy(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func policyFixture() model.BookingPolicy {
	return model.BookingPolicy{
		CreatorID:           "creator-1",
		ActivityStatus:      model.ActivityStatusActive,
		Timezone:            "UTC",
		MinBookingTime:      15,
		MaxBookingTime:      120,
		DefaultRate:         2,
		AfterHourRate:       3,
		BookingBuffer:       10,
		DefaultWorkingHours: model.Hours{Start: "09:00:00", End: "17:00:00"},
		AfterHours:          model.Hours{Start: "17:00:00", End: "21:00:00"},
	}
}

func (m *settingsMocks) cacheAlwaysMisses() {
	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		AnyTimes()
}

// allowAsyncCacheOps covers the fire-and-forget cache writes the service
// spawns after reads and updates.
func (m *settingsMocks) allowAsyncCacheOps() {
	m.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	m.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func (m *settingsMocks) policyAlwaysFound(policy model.BookingPolicy) {
	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(policy, nil).
		AnyTimes()
}

func TestSettingsService_GetPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("missing creator id", func(t *testing.T) {
		svc, _ := newSettingsService(t)

		_, err := svc.GetPolicy(ctx, "")

		assert.Error(t, err)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		svc, m := newSettingsService(t)

		m.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, dst any) error {
				policy, ok := dst.(*model.BookingPolicy)
				if !ok {
					t.Fatalf("unexpected cache destination type %T", dst)
				}

				*policy = policyFixture()

				return nil
			})

		policy, err := svc.GetPolicy(ctx, "creator-1")

		assert.NoError(t, err)
		assert.Equal(t, "creator-1", policy.CreatorID)
	})

	t.Run("cache miss falls back to the repository", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.allowAsyncCacheOps()
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(policyFixture(), nil)

		policy, err := svc.GetPolicy(ctx, "creator-1")

		assert.NoError(t, err)
		assert.Equal(t, 10, policy.BookingBuffer)
	})

	t.Run("missing record is a not found failure", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.BookingPolicy{}, nil)

		_, err := svc.GetPolicy(ctx, "creator-unknown")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("repository error is surfaced", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.BookingPolicy{}, errors.New("db down"))

		_, err := svc.GetPolicy(ctx, "creator-1")

		assert.Error(t, err)
	})
}

func TestSettingsService_Get(t *testing.T) {
	svc, m := newSettingsService(t)
	m.cacheAlwaysMisses()
	m.allowAsyncCacheOps()
	m.policyAlwaysFound(policyFixture())

	res, err := svc.Get(context.Background(), "creator-1")

	assert.NoError(t, err)
	assert.Equal(t, "creator-1", res.CreatorID)
	assert.Equal(t, 15, res.MinBookingTime)
	assert.Equal(t, model.Hours{Start: "09:00:00", End: "17:00:00"}, res.DefaultWorkingHours)
	assert.NotNil(t, res.Suspensions)
}

func TestSettingsService_EffectiveHours(t *testing.T) {
	svc, m := newSettingsService(t)
	m.cacheAlwaysMisses()
	m.allowAsyncCacheOps()
	m.policyAlwaysFound(policyFixture())

	res, err := svc.EffectiveHours(context.Background(), "creator-1")

	assert.NoError(t, err)
	assert.Equal(t, "creator-1", res.CreatorID)
	assert.Equal(t, []availability.ClockWindow{{Start: "09:00:00", End: "21:00"}}, res.Windows)
	assert.Equal(t, []availability.ClockWindow{
		{Start: "17:00:00", End: "17:00:00"},
		{Start: "21:00:00", End: "09:00:00"},
	}, res.Offline)
}

func TestSettingsService_Update(t *testing.T) {
	t.Run("inactive creator is rejected", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.allowAsyncCacheOps()

		inactive := policyFixture()
		inactive.ActivityStatus = "disabled"
		m.policyAlwaysFound(inactive)

		err := svc.Update(context.Background(), "creator-1", dto.UpdateBookingPolicyRequest{})

		assert.Error(t, err)
	})

	t.Run("stale expected value aborts with a field conflict", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.allowAsyncCacheOps()
		m.policyAlwaysFound(policyFixture())

		req := dto.UpdateBookingPolicyRequest{
			Expected: map[string]json.RawMessage{
				"min_charge": json.RawMessage("5"),
			},
		}

		err := svc.Update(context.Background(), "creator-1", req)

		assert.Error(t, err)
		assert.Equal(t, "min_charge", failure.ConflictFieldOf(err))
	})

	t.Run("matching expected value lets the update through", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.allowAsyncCacheOps()
		m.policyAlwaysFound(policyFixture())

		var captured map[string]any
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				captured = fields

				return nil
			})

		minCharge := 30
		req := dto.UpdateBookingPolicyRequest{
			MinCharge: &minCharge,
			Expected: map[string]json.RawMessage{
				"min_charge": json.RawMessage("0"),
			},
		}

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "creator-1")
		err := svc.Update(ctx, "creator-1", req)

		assert.NoError(t, err)
		assert.Equal(t, 30, captured[model.FieldMinCharge])
		assert.Equal(t, "creator-1", captured[constant.FieldModifiedBy])
	})

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.allowAsyncCacheOps()
		m.policyAlwaysFound(policyFixture())

		var captured map[string]any
		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				captured = fields

				return nil
			})

		buffer := 20
		err := svc.Update(context.Background(), "creator-1", dto.UpdateBookingPolicyRequest{BookingBuffer: &buffer})

		assert.NoError(t, err)
		assert.Equal(t, 20, captured[model.FieldBookingBuffer])
		assert.Equal(t, 15, captured[model.FieldMinBookingTime])
		assert.Equal(t, model.Hours{Start: "09:00:00", End: "17:00:00"}, captured[model.FieldDefaultWorkingHours])
	})
}

func TestSettingsService_EnsureUserActive(t *testing.T) {
	t.Run("active user passes", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.allowAsyncCacheOps()
		m.policyAlwaysFound(policyFixture())

		assert.NoError(t, svc.EnsureUserActive(context.Background(), "creator-1"))
	})

	t.Run("missing policy reads as inactive", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.BookingPolicy{}, nil)

		err := svc.EnsureUserActive(context.Background(), "creator-unknown")

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestSettingsService_Location(t *testing.T) {
	t.Run("resolves the configured timezone", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.allowAsyncCacheOps()

		policy := policyFixture()
		policy.Timezone = "Asia/Jakarta"
		m.policyAlwaysFound(policy)

		loc, err := svc.Location(context.Background(), "creator-1")

		assert.NoError(t, err)
		assert.Equal(t, "Asia/Jakarta", loc.String())
	})

	t.Run("invalid timezone fails", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.allowAsyncCacheOps()

		policy := policyFixture()
		policy.Timezone = "Not/AZone"
		m.policyAlwaysFound(policy)

		_, err := svc.Location(context.Background(), "creator-1")

		assert.Error(t, err)
	})

	t.Run("empty timezone fails", func(t *testing.T) {
		svc, m := newSettingsService(t)
		m.cacheAlwaysMisses()
		m.allowAsyncCacheOps()

		policy := policyFixture()
		policy.Timezone = ""
		m.policyAlwaysFound(policy)

		_, err := svc.Location(context.Background(), "creator-1")

		assert.Error(t, err)
	})
}

func TestSettingsService_PolicyAccessors(t *testing.T) {
	svc, m := newSettingsService(t)
	m.cacheAlwaysMisses()
	m.allowAsyncCacheOps()

	policy := policyFixture()
	policy.AdvanceBooking = true
	policy.NegotiationPhase = false
	m.policyAlwaysFound(policy)

	ctx := context.Background()

	booking, err := svc.HasEnabledBooking(ctx, "creator-1")
	assert.NoError(t, err)
	assert.True(t, booking)

	negotiation, err := svc.HasEnabledNegotiation(ctx, "creator-1")
	assert.NoError(t, err)
	assert.False(t, negotiation)

	buffer, err := svc.BufferTime(ctx, "creator-1")
	assert.NoError(t, err)
	assert.Equal(t, 10, buffer)

	minimum, err := svc.MinimumBookingTime(ctx, "creator-1")
	assert.NoError(t, err)
	assert.Equal(t, 15, minimum)

	maximum, err := svc.MaximumBookingTime(ctx, "creator-1")
	assert.NoError(t, err)
	assert.Equal(t, 120, maximum)
}
