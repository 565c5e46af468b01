package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"fancall/internal/domains/settings/model"
	"fancall/shared"
	"fancall/shared/constant"
	"fancall/shared/failure"
	"fancall/shared/timezone"
)

// EnsureNotSuspended rejects the date when any active suspension window
// contains it. Bounds are inclusive; the first matching suspension wins. The
// timezone must resolve before the list is consulted.
func (s *serviceImpl) EnsureNotSuspended(ctx context.Context, creatorID, date string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureNotSuspended")
	defer scope.End()
	defer scope.TraceIfError(err)

	loc, err := s.Location(ctx, creatorID)
	if err != nil {
		return err
	}

	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return err
	}

	if len(policy.Suspensions) == 0 {
		return nil
	}

	checkDate, err := time.ParseInLocation(constant.DateOnlyLayout, date, loc)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date %q", date)) // nolint:wrapcheck
	}

	for _, suspension := range policy.Suspensions {
		if suspension.Status != model.SuspensionStatusActive {
			continue
		}

		contains, err := suspensionContains(suspension, checkDate, loc)
		if err != nil {
			log.Error().Err(err).Str("creatorId", creatorID).Msg("skipping malformed suspension window")

			continue
		}

		if contains {
			return failure.ConflictKind("suspensions_found", fmt.Sprintf("suspensions found for creator %s, please try another date", creatorID)) // nolint:wrapcheck
		}
	}

	return nil
}

// AddSuspensionPeriod appends a suspension window to the creator's policy.
func (s *serviceImpl) AddSuspensionPeriod(ctx context.Context, creatorID, startDate, endDate string, noShowBookingIDs []string, status string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddSuspensionPeriod")
	defer scope.End()
	defer scope.TraceIfError(err)

	if creatorID == constant.Empty || startDate == constant.Empty || endDate == constant.Empty {
		return failure.BadRequestKind("missing_required_fields", "creator id, start date and end date are required") // nolint:wrapcheck
	}

	if status == constant.Empty {
		status = model.SuspensionStatusActive
	}

	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return err
	}

	suspension := model.Suspension{
		StartDate:         startDate,
		EndDate:           endDate,
		Status:            status,
		NoShowsBookingIDs: noShowBookingIDs,
	}

	policy.Suspensions = append(policy.Suspensions, suspension)

	return s.saveSuspensions(ctx, creatorID, policy.Suspensions)
}

// RevokeSuspension drops every suspension window containing the date and
// reports whether anything was removed. An empty date means today in the
// creator's timezone.
func (s *serviceImpl) RevokeSuspension(ctx context.Context, creatorID, date string) (removed bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RevokeSuspension")
	defer scope.End()
	defer scope.TraceIfError(err)

	loc, err := s.Location(ctx, creatorID)
	if err != nil {
		return false, err
	}

	if date == constant.Empty {
		date = timezone.Now().In(loc).Format(constant.DateOnlyLayout)
	}

	checkDate, err := time.ParseInLocation(constant.DateOnlyLayout, date, loc)
	if err != nil {
		return false, failure.BadRequestFromString(fmt.Sprintf("invalid date %q", date)) // nolint:wrapcheck
	}

	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return false, err
	}

	kept := make(model.SuspensionList, 0, len(policy.Suspensions))
	for _, suspension := range policy.Suspensions {
		contains, err := suspensionContains(suspension, checkDate, loc)
		if err != nil || !contains {
			kept = append(kept, suspension)
		}
	}

	if len(kept) == len(policy.Suspensions) {
		return false, nil
	}

	if err = s.saveSuspensions(ctx, creatorID, kept); err != nil {
		return false, err
	}

	return true, nil
}

// LiftExpiredSuspensions resets the creator's no-show counter and marks every
// active suspension whose end date has passed as lifted. It reports whether
// any suspension changed state.
func (s *serviceImpl) LiftExpiredSuspensions(ctx context.Context, creatorID string) (lifted bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LiftExpiredSuspensions")
	defer scope.End()
	defer scope.TraceIfError(err)

	loc, err := s.Location(ctx, creatorID)
	if err != nil {
		return false, err
	}

	if err = s.setNoShowCount(ctx, creatorID, 0); err != nil {
		return false, err
	}

	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return false, err
	}

	today, err := time.ParseInLocation(constant.DateOnlyLayout, timezone.Now().In(loc).Format(constant.DateOnlyLayout), loc)
	if err != nil {
		return false, fmt.Errorf("failed to anchor current date: %w", err)
	}

	changed := false
	for i, suspension := range policy.Suspensions {
		if suspension.Status != model.SuspensionStatusActive {
			continue
		}

		endDate, err := parseSuspensionDate(suspension.EndDate, loc)
		if err != nil {
			log.Error().Err(err).Str("creatorId", creatorID).Msg("skipping malformed suspension window")

			continue
		}

		if !endDate.After(today) {
			policy.Suspensions[i].Status = model.SuspensionStatusLifted
			changed = true
		}
	}

	if !changed {
		return false, nil
	}

	if err = s.saveSuspensions(ctx, creatorID, policy.Suspensions); err != nil {
		return false, err
	}

	return true, nil
}

// IncrementNoShowCount bumps the creator's no-show counter by one.
func (s *serviceImpl) IncrementNoShowCount(ctx context.Context, creatorID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IncrementNoShowCount")
	defer scope.End()
	defer scope.TraceIfError(err)

	policy, err := s.GetPolicy(ctx, creatorID)
	if err != nil {
		return err
	}

	return s.setNoShowCount(ctx, creatorID, policy.NoShowCount+1)
}

func (s *serviceImpl) setNoShowCount(ctx context.Context, creatorID string, count int) error {
	fields := map[string]any{
		model.FieldNoShowCount:   count,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(creatorID, model.FieldCreatorID, model.TableName)); err != nil {
		log.Error().Err(err).Str("creatorId", creatorID).Msg("failed to update no-show count")

		return fmt.Errorf("failed to update no-show count: %w", err)
	}

	s.invalidatePolicy(ctx, creatorID)

	return nil
}

func (s *serviceImpl) saveSuspensions(ctx context.Context, creatorID string, suspensions model.SuspensionList) error {
	fields := map[string]any{
		model.FieldSuspensions:   suspensions,
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err := s.repo.Update(ctx, fields, shared.FilterByID(creatorID, model.FieldCreatorID, model.TableName)); err != nil {
		log.Error().Err(err).Str("creatorId", creatorID).Msg("failed to save suspensions")

		return fmt.Errorf("failed to save suspensions: %w", err)
	}

	s.invalidatePolicy(ctx, creatorID)

	return nil
}

func (s *serviceImpl) invalidatePolicy(ctx context.Context, creatorID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPolicy, creatorID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking policy from cache")
		}
	}()
}

func suspensionContains(suspension model.Suspension, date time.Time, loc *time.Location) (bool, error) {
	start, err := parseSuspensionDate(suspension.StartDate, loc)
	if err != nil {
		return false, fmt.Errorf("failed to parse suspension start date: %w", err)
	}

	end, err := parseSuspensionDate(suspension.EndDate, loc)
	if err != nil {
		return false, fmt.Errorf("failed to parse suspension end date: %w", err)
	}

	return !date.Before(start) && !date.After(end), nil
}

// parseSuspensionDate accepts either a bare date or a full wall-clock stamp;
// windows written by the no-show flow store the latter.
func parseSuspensionDate(value string, loc *time.Location) (time.Time, error) {
	if ts, err := time.ParseInLocation(constant.DateOnlyLayout, value, loc); err == nil {
		return ts, nil
	}

	ts, err := time.ParseInLocation(constant.WallClockLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse suspension date %q: %w", value, err)
	}

	return ts, nil
}
