package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"fancall/config"
	"fancall/infras/otel"
	"fancall/internal/domains/availability"
	"fancall/internal/domains/settings/model"
	"fancall/internal/domains/settings/model/dto"
	"fancall/internal/domains/settings/repository"
	"fancall/shared"
	"fancall/shared/cache"
	"fancall/shared/constant"
	"fancall/shared/failure"
	"fancall/shared/timezone"
)

const (
	cacheGetPolicy = "booking_policy:get"
)

type BookingPolicy interface {
	GetPolicy(ctx context.Context, creatorID string) (model.BookingPolicy, error)
	Get(ctx context.Context, creatorID string) (dto.BookingPolicyResponse, error)
	EffectiveHours(ctx context.Context, creatorID string) (dto.EffectiveHoursResponse, error)
	Update(ctx context.Context, creatorID string, req dto.UpdateBookingPolicyRequest) error
	EnsureUserActive(ctx context.Context, userID string) error
	Location(ctx context.Context, creatorID string) (*time.Location, error)
	EnsureNotSuspended(ctx context.Context, creatorID, date string) error
	AddSuspensionPeriod(ctx context.Context, creatorID, startDate, endDate string, noShowBookingIDs []string, status string) error
	RevokeSuspension(ctx context.Context, creatorID, date string) (bool, error)
	LiftExpiredSuspensions(ctx context.Context, creatorID string) (bool, error)
	IncrementNoShowCount(ctx context.Context, creatorID string) error
	HasEnabledBooking(ctx context.Context, creatorID string) (bool, error)
	HasEnabledNegotiation(ctx context.Context, creatorID string) (bool, error)
	BufferTime(ctx context.Context, creatorID string) (int, error)
	MinimumBookingTime(ctx context.Context, creatorID string) (int, error)
	MaximumBookingTime(ctx context.Context, creatorID string) (int, error)
}

type serviceImpl struct {
	repo  repository.BookingPolicy
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.BookingPolicy, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) BookingPolicy {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// GetPolicy loads a creator's policy through the cache. A missing record is a
// booking_setting_not_found failure.
func (s *serviceImpl) GetPolicy(ctx context.Context, creatorID string) (res model.BookingPolicy, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPolicy")
	defer scope.End()
	defer scope.TraceIfError(err)

	if creatorID == constant.Empty {
		return res, failure.BadRequestKind("missing_required_fields", "creator id is required") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetPolicy, creatorID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking policy")

		return res, nil
	}

	res, err = s.repo.Get(ctx, shared.FilterByID(creatorID, model.FieldCreatorID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking policy")

		return res, fmt.Errorf("failed to get booking policy: %w", err)
	}

	if res.CreatorID == constant.Empty {
		return res, failure.NotFoundKind("booking_setting_not_found", fmt.Sprintf("booking settings not found for creator %s", creatorID)) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking policy to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, creatorID string) (res dto.BookingPolicyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return res, err
	}

	res.FromModel(policy)

	return res, nil
}

func (s *serviceImpl) EffectiveHours(ctx context.Context, creatorID string) (res dto.EffectiveHoursResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EffectiveHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return res, err
	}

	res.CreatorID = creatorID
	res.Windows = availability.ResolveEffectiveHours(policy.DefaultWorkingHours.Window(), policy.AfterHours.Window())
	res.Offline = availability.OfflineHours(policy.DefaultWorkingHours.Window(), policy.AfterHours.Window())

	return res, nil
}

// Update merges the request onto the stored policy and writes the whole
// record back. When the request carries expected values, each one is compared
// against the stored field first; the first mismatch aborts with a conflict
// naming the field.
func (s *serviceImpl) Update(ctx context.Context, creatorID string, req dto.UpdateBookingPolicyRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.EnsureUserActive(ctx, creatorID); err != nil {
		return err
	}

	existing, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return err
	}

	if err = checkExpected(existing, req.Expected); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updated := req.Apply(existing)
	updated.ModifiedAt = timezone.Now()
	updated.ModifiedBy = user

	if err = s.repo.Update(ctx, policyFields(updated), shared.FilterByID(creatorID, model.FieldCreatorID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update booking policy")

		return fmt.Errorf("failed to update booking policy: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPolicy, creatorID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking policy from cache")
		}
	}()

	return nil
}

// EnsureUserActive checks that the user has a policy record in active status.
func (s *serviceImpl) EnsureUserActive(ctx context.Context, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureUserActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	policy, err := s.GetPolicy(ctx, userID)
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			return failure.BadRequestKind("user_not_active", "user is either inactive or not found") // nolint:wrapcheck
		}

		return err
	}

	if policy.ActivityStatus != model.ActivityStatusActive {
		return failure.BadRequestKind("user_not_active", "user is either inactive or not found") // nolint:wrapcheck
	}

	return nil
}

// Location resolves a creator's timezone, surfacing a timezone_error failure
// when it cannot be loaded.
func (s *serviceImpl) Location(ctx context.Context, creatorID string) (loc *time.Location, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Location")
	defer scope.End()
	defer scope.TraceIfError(err)

	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	if policy.Timezone == constant.Empty {
		return nil, failure.BadRequestKind("timezone_error", fmt.Sprintf("no timezone configured for creator %s", creatorID)) // nolint:wrapcheck
	}

	loc, err = policy.Location()
	if err != nil {
		log.Error().Err(err).Str("creatorId", creatorID).Msg("failed to load creator timezone")

		return nil, failure.BadRequestKind("timezone_error", fmt.Sprintf("invalid timezone for creator %s", creatorID)) // nolint:wrapcheck
	}

	return loc, nil
}

func (s *serviceImpl) HasEnabledBooking(ctx context.Context, creatorID string) (bool, error) {
	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return false, err
	}

	return policy.AdvanceBooking, nil
}

func (s *serviceImpl) HasEnabledNegotiation(ctx context.Context, creatorID string) (bool, error) {
	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return false, err
	}

	return policy.NegotiationPhase, nil
}

func (s *serviceImpl) BufferTime(ctx context.Context, creatorID string) (int, error) {
	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return 0, err
	}

	return policy.BookingBuffer, nil
}

func (s *serviceImpl) MinimumBookingTime(ctx context.Context, creatorID string) (int, error) {
	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return 0, err
	}

	return policy.MinBookingTime, nil
}

func (s *serviceImpl) MaximumBookingTime(ctx context.Context, creatorID string) (int, error) {
	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return 0, err
	}

	return policy.MaxBookingTime, nil
}

// checkExpected compares the caller's last-seen values against the stored
// policy, field by field, as canonical JSON.
func checkExpected(existing model.BookingPolicy, expected map[string]json.RawMessage) error {
	if len(expected) == 0 {
		return nil
	}

	encoded, err := json.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to encode existing policy: %w", err)
	}

	var current map[string]json.RawMessage
	if err := json.Unmarshal(encoded, &current); err != nil {
		return fmt.Errorf("failed to decode existing policy: %w", err)
	}

	for key, expectedVal := range expected {
		expectedCanonical, err := canonicalJSON(expectedVal)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid expected value for %s", key)) // nolint:wrapcheck
		}

		actualCanonical, err := canonicalJSON(current[key])
		if err != nil {
			actualCanonical = "null"
		}

		if expectedCanonical != actualCanonical {
			return failure.ConflictOnField(key, "booking settings have changed since you last fetched them, try again") // nolint:wrapcheck
		}
	}

	return nil
}

func canonicalJSON(raw json.RawMessage) (string, error) {
	if raw == nil {
		return "null", nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("failed to parse value: %w", err)
	}

	out, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to re-encode value: %w", err)
	}

	return string(out), nil
}

// policyFields flattens a policy into the column map the repository expects.
func policyFields(policy model.BookingPolicy) map[string]any {
	return map[string]any{
		model.FieldTimezone:               policy.Timezone,
		model.FieldMinCharge:              policy.MinCharge,
		model.FieldBookingBuffer:          policy.BookingBuffer,
		model.FieldAdvanceBooking:         policy.AdvanceBooking,
		model.FieldInstantBooking:         policy.InstantBooking,
		model.FieldMinBookingTime:         policy.MinBookingTime,
		model.FieldMaxBookingTime:         policy.MaxBookingTime,
		model.FieldNegotiationPhase:       policy.NegotiationPhase,
		model.FieldAfterHourSurcharge:     policy.AfterHourSurcharge,
		model.FieldBookingWindowInMinutes: policy.BookingWindowInMinutes,
		model.FieldAfterHourRate:          policy.AfterHourRate,
		model.FieldDefaultRate:            policy.DefaultRate,
		model.FieldNoShowCount:            policy.NoShowCount,
		model.FieldDefaultWorkingHours:    policy.DefaultWorkingHours,
		model.FieldAfterHours:             policy.AfterHours,
		model.FieldSuspensions:            policy.Suspensions,
		constant.FieldModifiedAt:          policy.ModifiedAt,
		constant.FieldModifiedBy:          policy.ModifiedBy,
	}
}
