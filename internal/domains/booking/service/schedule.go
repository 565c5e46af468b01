package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/teambition/rrule-go"

	"fancall/internal/domains/availability"
	"fancall/internal/domains/booking/model"
	"fancall/internal/domains/booking/model/dto"
	settingsModel "fancall/internal/domains/settings/model"
	"fancall/shared"
	"fancall/shared/constant"
	gDto "fancall/shared/dto"
	"fancall/shared/failure"
	"fancall/shared/timezone"
)

// IsRequestedTimeAvailable checks a candidate interval against the creator's
// effective windows and existing bookings. A recurrence rule expands into
// occurrences over the configured horizon; every occurrence must be
// independently available.
func (s *serviceImpl) IsRequestedTimeAvailable(ctx context.Context, creatorID, requestedStart, requestedEnd, recurrenceRule string) (available bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsRequestedTimeAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	loc, err := s.settings.Location(ctx, creatorID)
	if err != nil {
		return false, err
	}

	start, err := parseStamp(requestedStart, loc)
	if err != nil {
		return false, failure.BadRequestKind("invalid_booking_duration", "requested start time could not be parsed") // nolint:wrapcheck
	}

	end, err := parseStamp(requestedEnd, loc)
	if err != nil {
		return false, failure.BadRequestKind("invalid_booking_duration", "requested end time could not be parsed") // nolint:wrapcheck
	}

	if recurrenceRule != constant.Empty {
		opt, err := rrule.StrToROption(recurrenceRule)
		if err != nil {
			return false, failure.BadRequestKind("invalid_recurrence_rule", fmt.Sprintf("recurrence rule could not be parsed: %v", err)) // nolint:wrapcheck
		}

		opt.Dtstart = start

		rule, err := rrule.NewRRule(*opt)
		if err != nil {
			return false, failure.BadRequestKind("invalid_recurrence_rule", fmt.Sprintf("recurrence rule could not be built: %v", err)) // nolint:wrapcheck
		}

		now := timezone.Now().In(loc)
		horizon := now.AddDate(0, s.cfg.Booking.RecurrenceHorizonMonths, 0)
		duration := end.Sub(start)

		for _, occ := range rule.Between(now, horizon, true) {
			occStart, err := availability.ParseClockOn(occ.In(loc).Format(constant.DateOnlyLayout), start.Format("15:04:05"), loc)
			if err != nil {
				return false, fmt.Errorf("failed to anchor recurrence occurrence: %w", err)
			}

			occAvailable, err := s.slotFree(ctx, creatorID, occStart, occStart.Add(duration), loc)
			if err != nil {
				return false, err
			}

			if !occAvailable {
				return false, nil
			}
		}
	}

	return s.slotFree(ctx, creatorID, start, end, loc)
}

// slotFree is the single-occurrence availability check: duration bounds,
// effective-window containment, then buffered conflicts against same-day
// bookings.
func (s *serviceImpl) slotFree(ctx context.Context, creatorID string, start, end time.Time, loc *time.Location) (bool, error) {
	policy, err := s.settings.GetPolicy(ctx, creatorID)
	if err != nil {
		return false, err
	}

	windows := availability.ResolveEffectiveHours(policy.DefaultWorkingHours.Window(), policy.AfterHours.Window())

	if !availability.ValidDuration(start, end, policy.MinBookingTime, policy.MaxBookingTime) {
		return false, nil
	}

	within, err := availability.WithinEffectiveWindows(start, end, windows, loc)
	if err != nil {
		return false, fmt.Errorf("failed to check effective windows: %w", err)
	}

	if !within {
		return false, nil
	}

	existing, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(creatorID, model.FieldCreatorID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("creatorId", creatorID).Msg("failed to load creator bookings for conflict check")

		return false, fmt.Errorf("failed to load creator bookings: %w", err)
	}

	buffer := time.Duration(s.cfg.Booking.ConflictBufferMinutes) * time.Minute
	requested := availability.Interval{Start: start, End: end}
	date := start.Format(constant.DateOnlyLayout)

	for _, booking := range existing {
		if booking.Date() != date {
			continue
		}

		existingStart, err := availability.ParseClockOn(booking.Date(), booking.StartClock(), loc)
		if err != nil {
			log.Error().Err(err).Str("bookingId", booking.ID).Msg("skipping booking with malformed start time")

			continue
		}

		existingEnd, err := availability.ParseClockOn(booking.Date(), booking.EndClock(), loc)
		if err != nil {
			log.Error().Err(err).Str("bookingId", booking.ID).Msg("skipping booking with malformed end time")

			continue
		}

		if availability.ConflictsWithBuffer(requested, availability.Interval{Start: existingStart, End: existingEnd}, buffer) {
			return false, nil
		}
	}

	return true, nil
}

// UpcomingBookings lists pending bookings for a user (either side) starting
// within the configured window, expanding recurrence rules.
func (s *serviceImpl) UpcomingBookings(ctx context.Context, userID string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpcomingBookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	if userID == constant.Empty {
		return nil, failure.BadRequestKind("missing_required_fields", "user id is required") // nolint:wrapcheck
	}

	asFan, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(userID, model.FieldFanID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list upcoming bookings by fan")

		return nil, fmt.Errorf("failed to list upcoming bookings by fan: %w", err)
	}

	asCreator, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(userID, model.FieldCreatorID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list upcoming bookings by creator")

		return nil, fmt.Errorf("failed to list upcoming bookings by creator: %w", err)
	}

	now := timezone.Now()
	windowEnd := now.Add(time.Duration(s.cfg.Booking.UpcomingWindowMinutes) * time.Minute)

	res = make([]dto.BookingResponse, 0)

	for _, booking := range dedupByID(append(asFan, asCreator...)) {
		if booking.Status != model.StatusPending {
			continue
		}

		upcoming, err := s.startsWithinWindow(booking, now, windowEnd)
		if err != nil {
			log.Error().Err(err).Str("bookingId", booking.ID).Msg("skipping booking with unreadable schedule")

			continue
		}

		if upcoming {
			res = append(res, dto.BookingResponse{}.FromModel(booking))
		}
	}

	return res, nil
}

// startsWithinWindow decides whether a booking's next start falls inside
// [now, windowEnd]. One-time bookings on today's date compare clocks only;
// later dates compare full timestamps; recurring bookings expand the rule.
func (s *serviceImpl) startsWithinWindow(booking model.Booking, now, windowEnd time.Time) (bool, error) {
	loc := now.Location()
	if booking.Timezone != constant.Empty {
		if bookingLoc, err := time.LoadLocation(booking.Timezone); err == nil {
			loc = bookingLoc
		}
	}

	if booking.RecurrenceRule != constant.Empty {
		opt, err := rrule.StrToROption(booking.RecurrenceRule)
		if err != nil {
			return false, fmt.Errorf("failed to parse recurrence rule: %w", err)
		}

		start, err := booking.StartAt(loc)
		if err != nil {
			return false, err
		}

		opt.Dtstart = start

		rule, err := rrule.NewRRule(*opt)
		if err != nil {
			return false, fmt.Errorf("failed to build recurrence rule: %w", err)
		}

		return len(rule.Between(now, windowEnd, true)) > 0, nil
	}

	today := now.In(loc).Format(constant.DateOnlyLayout)

	if booking.Date() == today {
		nowClock := now.In(loc).Format("15:04:05")
		endClock := windowEnd.In(loc).Format("15:04:05")
		startClock := booking.StartClock()

		return startClock >= nowClock && startClock <= endClock, nil
	}

	if booking.Date() > today {
		start, err := booking.StartAt(loc)
		if err != nil {
			return false, err
		}

		return !start.Before(now) && !start.After(windowEnd), nil
	}

	return false, nil
}

// UpcomingSessions lists the creator's pending bookings starting within the
// session lookahead, in the creator's zone.
func (s *serviceImpl) UpcomingSessions(ctx context.Context, creatorID string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpcomingSessions")
	defer scope.End()
	defer scope.TraceIfError(err)

	loc, err := s.settings.Location(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(creatorID, model.FieldCreatorID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list creator bookings")

		return nil, fmt.Errorf("failed to list creator bookings: %w", err)
	}

	now := timezone.Now().In(loc)
	lookahead := now.Add(time.Duration(s.cfg.Booking.SessionLookaheadMinutes) * time.Minute)

	res = make([]dto.BookingResponse, 0)

	for _, booking := range bookings {
		if booking.Status != model.StatusPending {
			continue
		}

		start, err := booking.StartAt(loc)
		if err != nil {
			log.Error().Err(err).Str("bookingId", booking.ID).Msg("skipping booking with malformed start time")

			continue
		}

		if !start.Before(now) && !start.After(lookahead) {
			res = append(res, dto.BookingResponse{}.FromModel(booking))
		}
	}

	return res, nil
}

// AvailableSlotWindows returns the free windows of one calendar day, carved
// out around the creator's buffered bookings.
func (s *serviceImpl) AvailableSlotWindows(ctx context.Context, creatorID, date string) (res dto.SlotWindowsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AvailableSlotWindows")
	defer scope.End()
	defer scope.TraceIfError(err)

	policy, err := s.settings.GetPolicy(ctx, creatorID)
	if err != nil {
		return res, err
	}

	loc, err := s.settings.Location(ctx, creatorID)
	if err != nil {
		return res, err
	}

	rangeStart, err := availability.ParseClockOn(date, "00:00:00", loc)
	if err != nil {
		return res, failure.BadRequestKind("missing_required_fields", "date could not be parsed") // nolint:wrapcheck
	}

	rangeEnd := rangeStart.AddDate(0, 0, 1)

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(creatorID, model.FieldCreatorID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list creator bookings")

		return res, fmt.Errorf("failed to list creator bookings: %w", err)
	}

	booked := make([]availability.Interval, 0, len(bookings))

	for _, booking := range bookings {
		if booking.Date() != date {
			continue
		}

		start, err := availability.ParseClockOn(booking.Date(), booking.StartClock(), loc)
		if err != nil {
			continue
		}

		end, err := availability.ParseClockOn(booking.Date(), booking.EndClock(), loc)
		if err != nil {
			continue
		}

		if !end.After(start) {
			end = end.AddDate(0, 0, 1)
		}

		booked = append(booked, availability.Interval{Start: start, End: end})
	}

	buffer := time.Duration(policy.BookingBuffer) * time.Minute

	res.Date = date
	res.Windows = make([]availability.ClockWindow, 0)

	for _, slot := range availability.FreeSlots(rangeStart, rangeEnd, booked, buffer) {
		res.Windows = append(res.Windows, availability.ClockWindow{
			Start: slot.Start.In(loc).Format("15:04:05"),
			End:   slot.End.In(loc).Format("15:04:05"),
		})
	}

	return res, nil
}

// HandleCreatorSuspension suspends a creator whose no-show count reached the
// threshold.
func (s *serviceImpl) HandleCreatorSuspension(ctx context.Context, creatorID string) (suspended bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleCreatorSuspension")
	defer scope.End()
	defer scope.TraceIfError(err)

	if creatorID == constant.Empty {
		return false, failure.BadRequestKind("missing_required_fields", "creator id is required") // nolint:wrapcheck
	}

	policy, err := s.settings.GetPolicy(ctx, creatorID)
	if err != nil {
		return false, err
	}

	if policy.NoShowCount < s.cfg.Booking.NoShowSuspensionThreshold {
		return false, nil
	}

	if err = s.ApplyNoShowSuspension(ctx, creatorID); err != nil {
		return false, err
	}

	return true, nil
}

// ApplyNoShowSuspension opens a suspension window from now over the
// configured number of months, tagged with the creator's no-show bookings
// not already covered by a previously lifted suspension.
func (s *serviceImpl) ApplyNoShowSuspension(ctx context.Context, creatorID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ApplyNoShowSuspension")
	defer scope.End()
	defer scope.TraceIfError(err)

	policy, err := s.settings.GetPolicy(ctx, creatorID)
	if err != nil {
		return err
	}

	loc, err := s.settings.Location(ctx, creatorID)
	if err != nil {
		return err
	}

	covered := make(map[string]struct{})

	for _, suspension := range policy.Suspensions {
		if suspension.Status != settingsModel.SuspensionStatusLifted {
			continue
		}

		for _, id := range suspension.NoShowsBookingIDs {
			covered[id] = struct{}{}
		}
	}

	bookings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(creatorID, model.FieldCreatorID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list creator bookings")

		return fmt.Errorf("failed to list creator bookings: %w", err)
	}

	noShowIDs := make([]string, 0)

	for _, booking := range bookings {
		if booking.CallStatus != model.CallStatusNoShow {
			continue
		}

		if _, ok := covered[booking.ID]; ok {
			continue
		}

		noShowIDs = append(noShowIDs, booking.ID)
	}

	now := timezone.Now().In(loc)
	startDate := now.Format(constant.WallClockLayout)
	endDate := now.AddDate(0, s.cfg.Booking.SuspensionMonths, 0).Format(constant.WallClockLayout)

	return s.settings.AddSuspensionPeriod(ctx, creatorID, startDate, endDate, noShowIDs, settingsModel.SuspensionStatusActive)
}

func parseStamp(stamp string, loc *time.Location) (time.Time, error) {
	if len(stamp) <= len(constant.DateOnlyLayout)+1 {
		return time.Time{}, fmt.Errorf("wall-clock stamp %q is too short", stamp)
	}

	return availability.ParseClockOn(stamp[:len(constant.DateOnlyLayout)], stamp[len(constant.DateOnlyLayout)+1:], loc)
}
