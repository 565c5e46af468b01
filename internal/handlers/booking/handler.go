package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"fancall/infras/otel"
	"fancall/internal/domains/booking/model/dto"
	"fancall/internal/domains/booking/service"
	"fancall/shared/constant"
	gDto "fancall/shared/dto"
	"fancall/shared/failure"
	"fancall/shared/validator"
	"fancall/transport/http/middleware"
	"fancall/transport/http/response"
)

type Handler struct {
	service    service.Booking
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.Booking, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)

		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/mybookings", handler.GetMyBookings)
		routerGroup.Get("/upcoming", handler.GetUpcomingBookings)
		routerGroup.Get("/sessions", handler.GetUpcomingSessions)
		routerGroup.Get("/availability", handler.CheckAvailability)
		routerGroup.Get("/slots", handler.GetAvailableSlots)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Get("/{id}/status", handler.GetBookingStatus)
		routerGroup.Patch("/{id}/status", handler.UpdateBookingStatus)
		routerGroup.Put("/{id}/status", handler.SetBookingStatus)
		routerGroup.Post("/{id}/ready", handler.RegisterReadyState)
		routerGroup.Post("/{id}/missed", handler.RegisterMissedBooking)
		routerGroup.Post("/{id}/no-show", handler.HandleNoShow)
		routerGroup.Post("/{id}/reschedule", handler.RescheduleBooking)
		routerGroup.Post("/{id}/reschedule/request", handler.RequestReschedule)
		routerGroup.Post("/{id}/reschedule/accept", handler.AcceptReschedule)
		routerGroup.Post("/{id}/reschedule/decline", handler.DeclineReschedule)
		routerGroup.Post("/{id}/notes", handler.AddAdminNote)
		routerGroup.Patch("/{id}/notes", handler.EditAdminNote)
	})

	router.With(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC).
		Post("/creators/{creatorId}/no-show-review", handler.ReviewCreatorNoShows)
}

// CreateBooking creates a booking after the full validation chain.
// @Summary Create a new booking
// @Description Create a booking for a creator, validating balance, activity, suspension, duration, placement, availability and price.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking created successfully"
// @Failure 400 {object} response.Error
// @Failure 402 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
// @Security BearerAuth
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created successfully")

	response.WithJSON(writer, http.StatusCreated, booking)
}

// GetMyBookings lists the authenticated user's bookings on both sides.
// @Summary Get my bookings
// @Description Retrieve the authenticated user's bookings as fan and as creator, deduplicated.
// @Tags Booking
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of user's bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/mybookings [get]
// @Security BearerAuth
func (handler *Handler) GetMyBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyBookings")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	bookings, err := handler.service.ListForUser(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Bookings retrieved successfully for user " + userID)

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetUpcomingBookings lists pending bookings starting within the configured window.
// @Summary Get upcoming bookings
// @Description List the authenticated user's pending bookings starting soon, with recurrence expansion.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Upcoming bookings"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/upcoming [get]
// @Security BearerAuth
func (handler *Handler) GetUpcomingBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUpcomingBookings")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	bookings, err := handler.service.UpcomingBookings(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list upcoming bookings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Upcoming bookings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetUpcomingSessions lists the creator's sessions starting within the lookahead.
// @Summary Get upcoming sessions
// @Description List the authenticated creator's pending sessions starting within the next few minutes.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[[]dto.BookingResponse] "Upcoming sessions"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/sessions [get]
// @Security BearerAuth
func (handler *Handler) GetUpcomingSessions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUpcomingSessions")
	defer scope.End()

	creatorID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || creatorID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	sessions, err := handler.service.UpcomingSessions(ctx, creatorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list upcoming sessions")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Upcoming sessions retrieved successfully")

	response.WithJSON(writer, http.StatusOK, sessions)
}

// CheckAvailability reports whether a candidate interval is bookable.
// @Summary Check slot availability
// @Description Check a candidate interval (optionally recurring) against the creator's effective hours and existing bookings.
// @Tags Booking
// @Produce json
// @Param creatorId query string true "Creator ID"
// @Param startTime query string true "Requested start (YYYY-MM-DD HH:mm:ss)"
// @Param endTime query string true "Requested end (YYYY-MM-DD HH:mm:ss)"
// @Param recurrenceRule query string false "RFC 5545 recurrence rule"
// @Success 200 {object} response.Data[bool] "Availability flag"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/availability [get]
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	query := request.URL.Query()
	creatorID := query.Get(constant.RequestParamCreatorID)
	startTime := query.Get("startTime")
	endTime := query.Get("endTime")
	recurrenceRule := query.Get("recurrenceRule")

	if creatorID == "" || startTime == "" || endTime == "" {
		err := failure.BadRequestKind("missing_required_fields", "creatorId, startTime and endTime are required")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	available, err := handler.service.IsRequestedTimeAvailable(ctx, creatorID, startTime, endTime, recurrenceRule)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check availability")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Availability checked successfully")

	response.WithJSON(writer, http.StatusOK, available)
}

// GetAvailableSlots lists the free windows of one calendar day.
// @Summary Get available slot windows
// @Description List the free windows of one calendar day around the creator's buffered bookings.
// @Tags Booking
// @Produce json
// @Param creatorId query string true "Creator ID"
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.SlotWindowsResponse] "Free slot windows"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/slots [get]
func (handler *Handler) GetAvailableSlots(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableSlots")
	defer scope.End()

	query := request.URL.Query()
	creatorID := query.Get(constant.RequestParamCreatorID)
	date := query.Get("date")

	if creatorID == "" || date == "" {
		err := failure.BadRequestKind("missing_required_fields", "creatorId and date are required")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	slots, err := handler.service.AvailableSlotWindows(ctx, creatorID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list available slots")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Available slots retrieved successfully")

	response.WithJSON(writer, http.StatusOK, slots)
}

// GetBookingByID retrieves a booking by its ID.
// @Summary Get a booking by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse] "Booking details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	booking, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking by ID")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking retrieved successfully")

	response.WithJSON(writer, http.StatusOK, booking)
}

// GetBookingStatus retrieves only the status of a booking.
// @Summary Get a booking's status
// @Description Retrieve the current status of a booking.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[string] "Booking status"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [get]
// @Security BearerAuth
func (handler *Handler) GetBookingStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingStatus")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	status, err := handler.service.GetStatus(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking status")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking status retrieved successfully")

	response.WithJSON(writer, http.StatusOK, status)
}

// UpdateBookingStatus applies an admin status transition.
// @Summary Update a booking's status
// @Description Apply an administrative status transition with an audit entry.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message "Booking status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBookingStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, id, req.Status); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking status")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking status updated successfully")

	response.WithMessage(writer, http.StatusOK, "Booking status updated successfully")
}

// SetBookingStatus force-sets a booking status.
// @Summary Set a booking's status
// @Description Force-set a booking status, recorded under its own audit action.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.UpdateStatusRequest true "Set Status Request"
// @Success 200 {object} response.Message "Booking status set successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/status [put]
// @Security BearerAuth
func (handler *Handler) SetBookingStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetBookingStatus")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.SetStatus(ctx, id, req.Status); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set booking status")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking status set successfully")

	response.WithMessage(writer, http.StatusOK, "Booking status set successfully")
}

// RegisterReadyState marks a party ready for the session.
// @Summary Register ready state
// @Description Mark the fan or the creator as ready for the upcoming session.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RegisterReadyStateRequest true "Ready State Request"
// @Success 200 {object} response.Message "Ready state registered successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/ready [post]
// @Security BearerAuth
func (handler *Handler) RegisterReadyState(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterReadyState")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.RegisterReadyStateRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.RegisterReadyState(ctx, id, req.UserType); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register ready state")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Ready state registered successfully")

	response.WithMessage(writer, http.StatusOK, "Ready state registered successfully")
}

// RegisterMissedBooking marks a booking as missed by one or both parties.
// @Summary Register a missed booking
// @Description Mark a booking as a no-show, applying the misser's penalties.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RegisterMissedBookingRequest true "Missed Booking Request"
// @Success 200 {object} response.Message "Missed booking registered successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/missed [post]
// @Security BearerAuth
func (handler *Handler) RegisterMissedBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterMissedBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.RegisterMissedBookingRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.RegisterMissedBooking(ctx, id, req.MissedBy); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register missed booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Missed booking registered successfully")

	response.WithMessage(writer, http.StatusOK, "Missed booking registered successfully")
}

// HandleNoShow evaluates the ready state and registers the resulting miss.
// @Summary Handle a no-show
// @Description Evaluate the booking's ready state against the grace period and register a miss for whichever party failed to ready up.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Data[bool] "Whether a miss was recorded"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/no-show [post]
// @Security BearerAuth
func (handler *Handler) HandleNoShow(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".HandleNoShow")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	missed, err := handler.service.HandleNoShow(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle no-show")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("No-show handled successfully")

	response.WithJSON(writer, http.StatusOK, missed)
}

// RescheduleBooking moves a booking to a new time.
// @Summary Reschedule a booking
// @Description Move a booking to a new time, preserving the original duration. Partial keeps the date; full takes a new one.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RescheduleBookingRequest true "Reschedule Request"
// @Success 200 {object} response.Message "Booking rescheduled successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reschedule [post]
// @Security BearerAuth
func (handler *Handler) RescheduleBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RescheduleBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	creatorID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.RescheduleBookingRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Reschedule(ctx, creatorID, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reschedule booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking rescheduled successfully")

	response.WithMessage(writer, http.StatusOK, "Booking rescheduled successfully")
}

// RequestReschedule records a reschedule request on the audit trail.
// @Summary Request a reschedule
// @Description Record a creator's reschedule request without touching the schedule.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.RequestRescheduleRequest true "Request Reschedule Request"
// @Success 200 {object} response.Message "Reschedule requested successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reschedule/request [post]
// @Security BearerAuth
func (handler *Handler) RequestReschedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestReschedule")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	creatorID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.RequestRescheduleRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.RequestReschedule(ctx, creatorID, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to request reschedule")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reschedule requested successfully")

	response.WithMessage(writer, http.StatusOK, "Reschedule requested successfully")
}

// AcceptReschedule accepts a pending reschedule request.
// @Summary Accept a reschedule
// @Description Move the booking into rescheduled status on behalf of the system.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message "Reschedule accepted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reschedule/accept [post]
// @Security BearerAuth
func (handler *Handler) AcceptReschedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AcceptReschedule")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.AcceptReschedule(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to accept reschedule")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reschedule accepted successfully")

	response.WithMessage(writer, http.StatusOK, "Reschedule accepted successfully")
}

// DeclineReschedule declines a pending reschedule request.
// @Summary Decline a reschedule
// @Description Decline a pending reschedule with a required reason, moving the booking to declined.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.DeclineRescheduleRequest true "Decline Reschedule Request"
// @Success 200 {object} response.Message "Reschedule declined successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/reschedule/decline [post]
// @Security BearerAuth
func (handler *Handler) DeclineReschedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeclineReschedule")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)
	creatorID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.DeclineRescheduleRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.DeclineReschedule(ctx, creatorID, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decline reschedule")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Reschedule declined successfully")

	response.WithMessage(writer, http.StatusOK, "Reschedule declined successfully")
}

// AddAdminNote appends an administrative note to a booking.
// @Summary Add an admin note
// @Description Append a timestamped administrative note with an audit entry.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.AdminNoteRequest true "Admin Note Request"
// @Success 200 {object} response.Message "Admin note added successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/notes [post]
// @Security BearerAuth
func (handler *Handler) AddAdminNote(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddAdminNote")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.AdminNoteRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.AddAdminNote(ctx, id, req.Note); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add admin note")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Admin note added successfully")

	response.WithMessage(writer, http.StatusOK, "Admin note added successfully")
}

// EditAdminNote replaces an administrative note in place.
// @Summary Edit an admin note
// @Description Replace one administrative note by index, restamping it.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking ID"
// @Param request body dto.EditAdminNoteRequest true "Edit Admin Note Request"
// @Success 200 {object} response.Message "Admin note edited successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id}/notes [patch]
// @Security BearerAuth
func (handler *Handler) EditAdminNote(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EditAdminNote")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	req := dto.EditAdminNoteRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.EditAdminNote(ctx, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to edit admin note")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Admin note edited successfully")

	response.WithMessage(writer, http.StatusOK, "Admin note edited successfully")
}

// ReviewCreatorNoShows suspends a creator whose no-show count reached the threshold.
// @Summary Review a creator's no-shows
// @Description Suspend the creator when the no-show count has reached the configured threshold.
// @Tags Booking
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Success 200 {object} response.Data[bool] "Whether a suspension was opened"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/creators/{creatorId}/no-show-review [post]
// @Security BearerAuth
func (handler *Handler) ReviewCreatorNoShows(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReviewCreatorNoShows")
	defer scope.End()

	creatorID := chi.URLParam(request, constant.RequestParamCreatorID)

	suspended, err := handler.service.HandleCreatorSuspension(ctx, creatorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to review creator no-shows")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Creator no-shows reviewed successfully")

	response.WithJSON(writer, http.StatusOK, suspended)
}
