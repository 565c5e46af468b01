package settings

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"fancall/infras/otel"
	"fancall/internal/domains/settings/model/dto"
	"fancall/internal/domains/settings/service"
	"fancall/shared/constant"
	"fancall/shared/failure"
	"fancall/shared/validator"
	"fancall/transport/http/middleware"
	"fancall/transport/http/response"
)

type Handler struct {
	service    service.BookingPolicy
	middleware middleware.AuthRole
	otel       otel.Otel
}

func New(service service.BookingPolicy, middleware middleware.AuthRole, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/settings/{creatorId}", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.APIKey, handler.middleware.Auth, handler.middleware.RBAC)

		routerGroup.Get("/", handler.GetSettings)
		routerGroup.Patch("/", handler.UpdateSettings)
		routerGroup.Get("/effective-hours", handler.GetEffectiveHours)
		routerGroup.Post("/suspensions", handler.AddSuspension)
		routerGroup.Post("/suspensions/revoke", handler.RevokeSuspension)
		routerGroup.Post("/suspensions/lift", handler.LiftExpiredSuspensions)
	})
}

// GetSettings retrieves a creator's booking policy.
// @Summary Get booking settings
// @Description Retrieve a creator's booking policy, resolved against defaults.
// @Tags Settings
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Success 200 {object} response.Data[dto.BookingPolicyResponse] "Booking settings"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{creatorId} [get]
// @Security BearerAuth
func (handler *Handler) GetSettings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSettings")
	defer scope.End()

	creatorID := chi.URLParam(request, constant.RequestParamCreatorID)

	policy, err := handler.service.Get(ctx, creatorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking settings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking settings retrieved successfully")

	response.WithJSON(writer, http.StatusOK, policy)
}

// UpdateSettings patches a creator's booking policy.
// @Summary Update booking settings
// @Description Patch a creator's booking policy. Omitted fields keep their stored values.
// @Tags Settings
// @Accept json
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Param request body dto.UpdateBookingPolicyRequest true "Update Settings Request"
// @Success 200 {object} response.Message "Booking settings updated successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{creatorId} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSettings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSettings")
	defer scope.End()

	creatorID := chi.URLParam(request, constant.RequestParamCreatorID)

	req := dto.UpdateBookingPolicyRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, creatorID, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking settings")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking settings updated successfully")

	response.WithMessage(writer, http.StatusOK, "Booking settings updated successfully")
}

// GetEffectiveHours retrieves the creator's merged bookable windows.
// @Summary Get effective hours
// @Description Retrieve the creator's working and after hours merged into effective bookable windows.
// @Tags Settings
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Success 200 {object} response.Data[dto.EffectiveHoursResponse] "Effective hours"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{creatorId}/effective-hours [get]
// @Security BearerAuth
func (handler *Handler) GetEffectiveHours(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEffectiveHours")
	defer scope.End()

	creatorID := chi.URLParam(request, constant.RequestParamCreatorID)

	hours, err := handler.service.EffectiveHours(ctx, creatorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get effective hours")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Effective hours retrieved successfully")

	response.WithJSON(writer, http.StatusOK, hours)
}

// AddSuspension opens a suspension window on the creator's policy.
// @Summary Add a suspension period
// @Description Open a suspension window on the creator's policy for the given date range.
// @Tags Settings
// @Accept json
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Param request body dto.AddSuspensionRequest true "Add Suspension Request"
// @Success 200 {object} response.Message "Suspension period added successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{creatorId}/suspensions [post]
// @Security BearerAuth
func (handler *Handler) AddSuspension(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddSuspension")
	defer scope.End()

	creatorID := chi.URLParam(request, constant.RequestParamCreatorID)

	req := dto.AddSuspensionRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.AddSuspensionPeriod(ctx, creatorID, req.StartDate, req.EndDate, req.NoShowsBookingIDs, req.Status); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add suspension period")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Suspension period added successfully")

	response.WithMessage(writer, http.StatusOK, "Suspension period added successfully")
}

// RevokeSuspension lifts the suspension covering the given date.
// @Summary Revoke a suspension
// @Description Lift the creator's suspension covering the given date, if one exists.
// @Tags Settings
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Param date query string true "Date inside the suspension period (YYYY-MM-DD)"
// @Success 200 {object} response.Data[bool] "Whether a suspension was revoked"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/settings/{creatorId}/suspensions/revoke [post]
// @Security BearerAuth
func (handler *Handler) RevokeSuspension(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RevokeSuspension")
	defer scope.End()

	creatorID := chi.URLParam(request, constant.RequestParamCreatorID)
	date := request.URL.Query().Get("date")

	if date == "" {
		err := failure.BadRequestKind("missing_required_fields", "date is required")
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	revoked, err := handler.service.RevokeSuspension(ctx, creatorID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to revoke suspension")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Suspension revoked successfully")

	response.WithJSON(writer, http.StatusOK, revoked)
}

// LiftExpiredSuspensions lifts every suspension whose end date has passed.
// @Summary Lift expired suspensions
// @Description Lift every suspension of the creator whose end date has passed.
// @Tags Settings
// @Produce json
// @Param creatorId path string true "Creator ID"
// @Success 200 {object} response.Data[bool] "Whether any suspension was lifted"
// @Failure 500 {object} response.Error
// @Router /v1/settings/{creatorId}/suspensions/lift [post]
// @Security BearerAuth
func (handler *Handler) LiftExpiredSuspensions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".LiftExpiredSuspensions")
	defer scope.End()

	creatorID := chi.URLParam(request, constant.RequestParamCreatorID)

	lifted, err := handler.service.LiftExpiredSuspensions(ctx, creatorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to lift expired suspensions")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Expired suspensions lifted successfully")

	response.WithJSON(writer, http.StatusOK, lifted)
}
