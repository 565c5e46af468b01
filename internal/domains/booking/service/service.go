package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"fancall/config"
	"fancall/infras/ledger"
	"fancall/infras/otel"
	"fancall/internal/domains/availability"
	"fancall/internal/domains/booking/model"
	"fancall/internal/domains/booking/model/dto"
	"fancall/internal/domains/booking/repository"
	notificationModel "fancall/internal/domains/notification/model"
	notificationService "fancall/internal/domains/notification/service"
	settingsService "fancall/internal/domains/settings/service"
	"fancall/shared"
	"fancall/shared/cache"
	"fancall/shared/constant"
	gDto "fancall/shared/dto"
	"fancall/shared/failure"
	"fancall/shared/timezone"
)

const (
	cacheGetBooking   = "booking:get"
	cacheBookingParty = "booking:party"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, bookingID string) (dto.BookingResponse, error)
	GetDetails(ctx context.Context, bookingID string) (model.Booking, error)
	GetStatus(ctx context.Context, bookingID string) (string, error)
	Exists(ctx context.Context, bookingID string) (bool, error)
	UserIDFromBooking(ctx context.Context, bookingID, role string) (string, error)
	ListForUser(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	UpdateStatus(ctx context.Context, bookingID, newStatus string) error
	SetStatus(ctx context.Context, bookingID, newStatus string) error
	UpcomingBookings(ctx context.Context, userID string) ([]dto.BookingResponse, error)
	UpcomingSessions(ctx context.Context, creatorID string) ([]dto.BookingResponse, error)
	Reschedule(ctx context.Context, creatorID, bookingID string, req dto.RescheduleBookingRequest) error
	RequestReschedule(ctx context.Context, creatorID, bookingID string, req dto.RequestRescheduleRequest) error
	AcceptReschedule(ctx context.Context, bookingID string) error
	DeclineReschedule(ctx context.Context, creatorID, bookingID string, req dto.DeclineRescheduleRequest) error
	RegisterReadyState(ctx context.Context, bookingID, userType string) error
	RegisterMissedBooking(ctx context.Context, bookingID, missedBy string) error
	HandleNoShow(ctx context.Context, bookingID string) (bool, error)
	HandleCreatorSuspension(ctx context.Context, creatorID string) (bool, error)
	ApplyNoShowSuspension(ctx context.Context, creatorID string) error
	AddAdminNote(ctx context.Context, bookingID, note string) error
	EditAdminNote(ctx context.Context, bookingID string, req dto.EditAdminNoteRequest) error
	IsRequestedTimeAvailable(ctx context.Context, creatorID, requestedStart, requestedEnd, recurrenceRule string) (bool, error)
	AvailableSlotWindows(ctx context.Context, creatorID, date string) (dto.SlotWindowsResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	settings settingsService.BookingPolicy
	notifier notificationService.Notifier
	ledger   ledger.Ledger
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	settings settingsService.BookingPolicy,
	notifier notificationService.Notifier,
	ledger ledger.Ledger,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		settings: settings,
		notifier: notifier,
		ledger:   ledger,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

// Create runs the full validation chain before a single insert. The
// check-then-insert is not conditional: two concurrent calls for overlapping
// times on the same creator can both pass the conflict check and both insert.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.FanID == constant.Empty || req.CreatorID == constant.Empty ||
		req.BookingDate == constant.Empty || req.BookingStart == constant.Empty || req.BookingEnd == constant.Empty {
		return res, failure.BadRequestKind("missing_required_fields", "one or more required fields are missing") // nolint:wrapcheck
	}

	balance, err := s.ledger.GetBalance(ctx, req.FanID)
	if err != nil {
		log.Error().Err(err).Str("fanId", req.FanID).Msg("failed to fetch fan token balance")

		return res, fmt.Errorf("failed to fetch fan token balance: %w", err)
	}

	if balance <= 0 {
		return res, failure.PaymentRequiredKind("insufficient_token", "you do not have enough tokens to create the booking") // nolint:wrapcheck
	}

	if err = s.settings.EnsureUserActive(ctx, req.FanID); err != nil {
		return res, err
	}

	if err = s.settings.EnsureUserActive(ctx, req.CreatorID); err != nil {
		return res, err
	}

	policy, err := s.settings.GetPolicy(ctx, req.CreatorID)
	if err != nil {
		return res, err
	}

	loc, err := s.settings.Location(ctx, req.CreatorID)
	if err != nil {
		return res, err
	}

	if err = s.settings.EnsureNotSuspended(ctx, req.CreatorID, req.BookingDate); err != nil {
		return res, err
	}

	start, err := availability.ParseClockOn(req.BookingDate, req.BookingStart, loc)
	if err != nil {
		return res, failure.BadRequestKind("invalid_booking_duration", "booking start time could not be parsed") // nolint:wrapcheck
	}

	end, err := availability.ParseClockOn(req.BookingDate, req.BookingEnd, loc)
	if err != nil {
		return res, failure.BadRequestKind("invalid_booking_duration", "booking end time could not be parsed") // nolint:wrapcheck
	}

	if !availability.ValidDuration(start, end, policy.MinBookingTime, policy.MaxBookingTime) {
		return res, failure.BadRequestKind("invalid_booking_duration", fmt.Sprintf("booking duration must be between %d and %d minutes", policy.MinBookingTime, policy.MaxBookingTime)) // nolint:wrapcheck
	}

	withinOffline, err := availability.WithinOfflineHours(req.BookingDate, req.BookingStart, req.BookingEnd, policy.DefaultWorkingHours.Window(), policy.AfterHours.Window(), loc)
	if err != nil {
		return res, fmt.Errorf("failed to check offline hours: %w", err)
	}

	if withinOffline {
		return res, failure.BadRequestKind("booking_within_offline_hours", "the requested time falls within the creator's offline hours") // nolint:wrapcheck
	}

	requestedStart := req.BookingDate + " " + req.BookingStart
	requestedEnd := req.BookingDate + " " + req.BookingEnd

	available, err := s.IsRequestedTimeAvailable(ctx, req.CreatorID, requestedStart, requestedEnd, req.RecurrenceRule)
	if err != nil {
		return res, err
	}

	if !available {
		return res, failure.ConflictKind("unavailable_time_slot", "the requested time slot is not available for the selected creator") // nolint:wrapcheck
	}

	if policy.DefaultRate == 0 || policy.AfterHourRate == 0 {
		return res, failure.BadRequestKind("missing_token_price_fields", fmt.Sprintf("token price fields are missing in the booking settings for creator %s", req.CreatorID)) // nolint:wrapcheck
	}

	crossover, err := availability.ComputeCrossover(req.BookingDate, req.BookingStart, req.BookingEnd, policy.DefaultWorkingHours.Window(), policy.AfterHours.Window(), loc)
	if err != nil {
		return res, fmt.Errorf("failed to compute crossover: %w", err)
	}

	breakdown := availability.CalculatePrice(crossover, policy.DefaultRate, policy.AfterHourRate)

	if breakdown.TotalPrice <= 0 {
		return res, failure.BadRequestKind("invalid_price_breakdown", fmt.Sprintf("invalid price breakdown for creator %s", req.CreatorID)) // nolint:wrapcheck
	}

	if balance < breakdown.TotalPrice {
		return res, failure.PaymentRequiredKind("insufficient_token", "you do not have enough tokens to complete the booking") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking := req.ToModel(policy.Timezone, user)
	booking.DefaultFee = breakdown.RegularPrice
	booking.SurchargeFee = breakdown.SurchargePrice

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Str("fanId", req.FanID).Str("creatorId", req.CreatorID).Msg("failed to insert booking")

		return res, failure.InternalErrorKind("booking_insertion_failed", fmt.Sprintf("failed to insert booking for fan %s and creator %s", req.FanID, req.CreatorID)) // nolint:wrapcheck
	}

	s.notifyAsync(ctx, notificationModel.ConditionSuccessBooking, booking)

	return dto.BookingResponse{}.FromModel(booking), nil
}

func (s *serviceImpl) Get(ctx context.Context, bookingID string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return res, err
	}

	return dto.BookingResponse{}.FromModel(booking), nil
}

// GetDetails loads one booking through the cache. A missing record is a
// booking_not_found failure.
func (s *serviceImpl) GetDetails(ctx context.Context, bookingID string) (res model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetDetails")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bookingID == constant.Empty {
		return res, failure.BadRequestKind("missing_required_fields", "booking id is required") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, bookingID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	res, err = s.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if res.ID == constant.Empty {
		return res, failure.NotFoundKind("booking_not_found", fmt.Sprintf("booking %s not found", bookingID)) // nolint:wrapcheck
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetStatus(ctx context.Context, bookingID string) (status string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return constant.Empty, err
	}

	return booking.Status, nil
}

func (s *serviceImpl) Exists(ctx context.Context, bookingID string) (exists bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Exists")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bookingID == constant.Empty {
		return false, nil
	}

	exists, err = s.repo.Exist(ctx, shared.FilterByID(bookingID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking existence")

		return false, fmt.Errorf("failed to check booking existence: %w", err)
	}

	return exists, nil
}

// UserIDFromBooking resolves the fan or creator id behind a booking, cached
// per role and booking.
func (s *serviceImpl) UserIDFromBooking(ctx context.Context, bookingID, role string) (userID string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UserIDFromBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bookingID == constant.Empty || (role != model.PartyFan && role != model.PartyCreator) {
		return constant.Empty, failure.BadRequestKind("missing_required_fields", "booking id and a fan or creator role are required") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheBookingParty, role+":"+bookingID)

	err = s.cache.Get(ctx, cacheKey, &userID)
	if err == nil {
		return userID, nil
	}

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return constant.Empty, err
	}

	userID = booking.FanID
	if role == model.PartyCreator {
		userID = booking.CreatorID
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, userID, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking party to cache")
		}
	}()

	return userID, nil
}

// ListForUser merges the fan-side and creator-side indexes, deduplicated by
// booking id.
func (s *serviceImpl) ListForUser(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListForUser")
	defer scope.End()
	defer scope.TraceIfError(err)

	if userID == constant.Empty {
		return res, failure.BadRequestKind("missing_required_fields", "user id is required") // nolint:wrapcheck
	}

	asFan, err := s.repo.GetAll(ctx, params, shared.FilterByID(userID, model.FieldFanID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings by fan")

		return res, fmt.Errorf("failed to list bookings by fan: %w", err)
	}

	asCreator, err := s.repo.GetAll(ctx, params, shared.FilterByID(userID, model.FieldCreatorID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings by creator")

		return res, fmt.Errorf("failed to list bookings by creator: %w", err)
	}

	merged := dedupByID(append(asFan, asCreator...))

	return dto.GetBookingsResponse{}.FromModels(merged, len(merged), params.Limit), nil
}

// UpdateStatus applies an admin status transition with an audit entry.
func (s *serviceImpl) UpdateStatus(ctx context.Context, bookingID, newStatus string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.applyStatus(ctx, bookingID, newStatus, model.ActionUpdateStatus)
}

// SetStatus force-sets a status the same way UpdateStatus does, recorded
// under its own audit action.
func (s *serviceImpl) SetStatus(ctx context.Context, bookingID, newStatus string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.applyStatus(ctx, bookingID, newStatus, model.ActionSetStatus)
}

func (s *serviceImpl) applyStatus(ctx context.Context, bookingID, newStatus, action string) error {
	if bookingID == constant.Empty || !slices.Contains(model.ValidStatuses, newStatus) {
		return failure.BadRequestKind("invalid_status", fmt.Sprintf("status must be one of %v", model.ValidStatuses)) // nolint:wrapcheck
	}

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return err
	}

	audit := appendAudit(booking.AuditTrail, model.AuditEntry{
		Action: action,
		Actor:  model.ActorAdmin,
		Metadata: map[string]any{
			"newStatus": newStatus,
		},
	})

	err = s.patchBooking(ctx, bookingID, map[string]any{
		model.FieldStatus:     newStatus,
		model.FieldAuditTrail: audit,
	})
	if err != nil {
		return err
	}

	if newStatus == model.StatusCancelled {
		s.notifyAsync(ctx, notificationModel.ConditionCancelBooking, booking)
	}

	return nil
}

// patchBooking writes a partial update and invalidates the booking cache.
func (s *serviceImpl) patchBooking(ctx context.Context, bookingID string, fields map[string]any) error {
	fields[constant.FieldModifiedAt] = timezone.Now()

	if err := s.repo.Update(ctx, fields, shared.FilterByID(bookingID, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("bookingId", bookingID).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, bookingID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}
	}()

	return nil
}

// notifyAsync publishes a booking notification without blocking or failing
// the calling operation.
func (s *serviceImpl) notifyAsync(ctx context.Context, condition string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notifier.NotifyBookingParties(c, condition, booking); err != nil {
			log.Error().Err(err).Str("condition", condition).Str("bookingId", booking.ID).Msg("failed to notify booking parties")
		}
	}()
}

func dedupByID(bookings []model.Booking) []model.Booking {
	seen := make(map[string]struct{}, len(bookings))
	res := make([]model.Booking, 0, len(bookings))

	for _, b := range bookings {
		if _, ok := seen[b.ID]; ok {
			continue
		}

		seen[b.ID] = struct{}{}
		res = append(res, b)
	}

	return res
}
