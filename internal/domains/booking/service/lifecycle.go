package service

import (
	"context"
	"fmt"
	"time"

	"fancall/internal/domains/availability"
	"fancall/internal/domains/booking/model"
	"fancall/internal/domains/booking/model/dto"
	notificationModel "fancall/internal/domains/notification/model"
	"fancall/shared/constant"
	"fancall/shared/failure"
	"fancall/shared/timezone"
)

// Reschedule moves a booking to a new time, preserving the original
// duration. Partial keeps the booking's date; full takes a new one.
func (s *serviceImpl) Reschedule(ctx context.Context, creatorID, bookingID string, req dto.RescheduleBookingRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	if creatorID == constant.Empty || bookingID == constant.Empty {
		return failure.BadRequestKind("missing_required_fields", "creator id and booking id are required") // nolint:wrapcheck
	}

	loc, err := s.settings.Location(ctx, creatorID)
	if err != nil {
		return err
	}

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return err
	}

	oldStart, err := booking.StartAt(loc)
	if err != nil {
		return fmt.Errorf("failed to parse booking start time: %w", err)
	}

	oldEnd, err := booking.EndAt(loc)
	if err != nil {
		return fmt.Errorf("failed to parse booking end time: %w", err)
	}

	if !oldEnd.After(oldStart) {
		oldEnd = oldEnd.AddDate(0, 0, 1)
	}

	duration := oldEnd.Sub(oldStart)

	newDate := booking.Date()
	if req.RescheduleType == "full" {
		if req.NewDate == constant.Empty {
			return failure.BadRequestKind("missing_required_fields", "a full reschedule requires a new date") // nolint:wrapcheck
		}

		newDate = req.NewDate
	}

	newStart, err := availability.ParseClockOn(newDate, req.NewTime, loc)
	if err != nil {
		return failure.BadRequestKind("missing_required_fields", "new time could not be parsed") // nolint:wrapcheck
	}

	startTime := newDate + " " + req.NewTime
	endTime := newDate + " " + newStart.Add(duration).Format("15:04:05")

	audit := appendAudit(booking.AuditTrail, model.AuditEntry{
		Action: model.ActionRescheduled,
		Actor:  creatorID,
		Metadata: map[string]any{
			"rescheduleType": req.RescheduleType,
			"startTime":      startTime,
			"endTime":        endTime,
		},
	})

	err = s.patchBooking(ctx, bookingID, map[string]any{
		model.FieldStartTime:  startTime,
		model.FieldEndTime:    endTime,
		model.FieldAuditTrail: audit,
	})
	if err != nil {
		return err
	}

	s.notifyAsync(ctx, notificationModel.ConditionSuccessReschedule, booking)

	return nil
}

// RequestReschedule records a creator's reschedule request in the audit
// trail without touching the schedule itself.
func (s *serviceImpl) RequestReschedule(ctx context.Context, creatorID, bookingID string, req dto.RequestRescheduleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RequestReschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	if creatorID == constant.Empty || bookingID == constant.Empty {
		return failure.BadRequestKind("missing_required_fields", "creator id and booking id are required") // nolint:wrapcheck
	}

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return err
	}

	audit := appendAudit(booking.AuditTrail, model.AuditEntry{
		Action: model.ActionRequestReschedule,
		Actor:  creatorID,
		Metadata: map[string]any{
			"percentBase": req.PercentBase,
		},
	})

	err = s.patchBooking(ctx, bookingID, map[string]any{
		model.FieldAuditTrail: audit,
	})
	if err != nil {
		return err
	}

	s.notifyAsync(ctx, notificationModel.ConditionRequestReschedule, booking)

	return nil
}

// AcceptReschedule moves the booking into rescheduled status on behalf of
// the system.
func (s *serviceImpl) AcceptReschedule(ctx context.Context, bookingID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AcceptReschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return err
	}

	audit := appendAudit(booking.AuditTrail, model.AuditEntry{
		Action: model.ActionAcceptReschedule,
		Actor:  model.ActorSystem,
	})

	err = s.patchBooking(ctx, bookingID, map[string]any{
		model.FieldStatus:     model.StatusRescheduled,
		model.FieldAuditTrail: audit,
	})
	if err != nil {
		return err
	}

	s.notifyAsync(ctx, notificationModel.ConditionApproveReschedule, booking)

	return nil
}

// DeclineReschedule declines a pending reschedule, recording the trimmed
// reason, and moves the booking to declined.
func (s *serviceImpl) DeclineReschedule(ctx context.Context, creatorID, bookingID string, req dto.DeclineRescheduleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeclineReschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	reason := req.TrimmedReason()

	if creatorID == constant.Empty || bookingID == constant.Empty || reason == constant.Empty {
		return failure.BadRequestKind("missing_required_fields", "creator id, booking id and a reason are required") // nolint:wrapcheck
	}

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return err
	}

	audit := appendAudit(booking.AuditTrail, model.AuditEntry{
		Action: model.ActionDeclineReschedule,
		Actor:  creatorID,
		Reason: reason,
	})

	err = s.patchBooking(ctx, bookingID, map[string]any{
		model.FieldStatus:     model.StatusDeclined,
		model.FieldAuditTrail: audit,
	})
	if err != nil {
		return err
	}

	s.notifyAsync(ctx, notificationModel.ConditionDeclineReschedule, booking)

	return nil
}

// RegisterReadyState marks which party is ready for the session.
func (s *serviceImpl) RegisterReadyState(ctx context.Context, bookingID, userType string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegisterReadyState")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bookingID == constant.Empty || (userType != model.PartyFan && userType != model.PartyCreator) {
		return failure.BadRequestKind("missing_required_fields", "booking id and a fan or creator user type are required") // nolint:wrapcheck
	}

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return err
	}

	actor := booking.FanID
	if userType == model.PartyCreator {
		actor = booking.CreatorID
	}

	audit := appendAudit(booking.AuditTrail, model.AuditEntry{
		Action: model.ActionRegisterReadyState,
		Actor:  actor,
	})

	return s.patchBooking(ctx, bookingID, map[string]any{
		model.FieldReadyStateTime: timezone.Now().Format(constant.WallClockLayout),
		model.FieldReadyBy:        userType,
		model.FieldAuditTrail:     audit,
	})
}

// RegisterMissedBooking marks a no-show. A creator miss bumps the creator's
// no-show count; a fan miss releases the held deposit.
func (s *serviceImpl) RegisterMissedBooking(ctx context.Context, bookingID, missedBy string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RegisterMissedBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bookingID == constant.Empty ||
		(missedBy != model.PartyFan && missedBy != model.PartyCreator && missedBy != model.PartyBoth) {
		return failure.BadRequestKind("missing_required_fields", "booking id and a fan, creator or both misser are required") // nolint:wrapcheck
	}

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return err
	}

	actor := booking.FanID
	if missedBy == model.PartyCreator {
		actor = booking.CreatorID
	}

	audit := appendAudit(booking.AuditTrail, model.AuditEntry{
		Action: model.ActionMissedBooking,
		Actor:  actor,
	})

	err = s.patchBooking(ctx, bookingID, map[string]any{
		model.FieldCallStatus: model.CallStatusNoShow,
		model.FieldMissedBy:   missedBy,
		model.FieldAuditTrail: audit,
	})
	if err != nil {
		return err
	}

	if missedBy == model.PartyCreator || missedBy == model.PartyBoth {
		if err = s.settings.IncrementNoShowCount(ctx, booking.CreatorID); err != nil {
			return err
		}
	}

	if missedBy == model.PartyFan || missedBy == model.PartyBoth {
		if err = s.ledger.ReleaseDepositTokens(ctx, bookingID); err != nil {
			return err
		}
	}

	return nil
}

// HandleNoShow inspects the ready state against the pre-session grace period
// and registers a missed booking for whichever party failed to ready up.
// Returns whether a miss was recorded.
func (s *serviceImpl) HandleNoShow(ctx context.Context, bookingID string) (missed bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".HandleNoShow")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return false, err
	}

	loc, err := s.settings.Location(ctx, booking.CreatorID)
	if err != nil {
		return false, err
	}

	start, err := booking.StartAt(loc)
	if err != nil {
		return false, fmt.Errorf("failed to parse booking start time: %w", err)
	}

	deadline := start.Add(-time.Duration(s.cfg.Booking.ReadyGraceSeconds) * time.Second)

	readyOnTime := false

	if booking.ReadyStateTime != constant.Empty {
		readyAt, err := time.ParseInLocation(constant.WallClockLayout, booking.ReadyStateTime, loc)
		if err == nil && !readyAt.After(deadline) {
			readyOnTime = true
		}
	}

	if !readyOnTime {
		return true, s.RegisterMissedBooking(ctx, bookingID, model.PartyBoth)
	}

	switch booking.ReadyBy {
	case model.PartyFan:
		return true, s.RegisterMissedBooking(ctx, bookingID, model.PartyCreator)
	case model.PartyCreator:
		return true, s.RegisterMissedBooking(ctx, bookingID, model.PartyFan)
	default:
		return false, nil
	}
}

// AddAdminNote appends a timestamped note with an audit entry.
func (s *serviceImpl) AddAdminNote(ctx context.Context, bookingID, note string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddAdminNote")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bookingID == constant.Empty || note == constant.Empty {
		return failure.BadRequestKind("missing_required_fields", "booking id and a note are required") // nolint:wrapcheck
	}

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return err
	}

	audit := appendAudit(booking.AuditTrail, model.AuditEntry{
		Action: model.ActionAddAdminNote,
		Actor:  model.ActorAdmin,
	})

	notes := append(booking.AdminNotes, model.AdminNote{
		At:   timezone.Now().Format(constant.WallClockLayout),
		Note: note,
	})

	return s.patchBooking(ctx, bookingID, map[string]any{
		model.FieldAdminNotes: notes,
		model.FieldAuditTrail: audit,
	})
}

// EditAdminNote replaces one note in place, restamping it.
func (s *serviceImpl) EditAdminNote(ctx context.Context, bookingID string, req dto.EditAdminNoteRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EditAdminNote")
	defer scope.End()
	defer scope.TraceIfError(err)

	if bookingID == constant.Empty || req.Note == constant.Empty {
		return failure.BadRequestKind("missing_required_fields", "booking id and a note are required") // nolint:wrapcheck
	}

	booking, err := s.GetDetails(ctx, bookingID)
	if err != nil {
		return err
	}

	if req.Index < 0 || req.Index >= len(booking.AdminNotes) {
		return failure.BadRequestKind("note_index_out_of_bounds", fmt.Sprintf("note index %d is out of bounds", req.Index)) // nolint:wrapcheck
	}

	audit := appendAudit(booking.AuditTrail, model.AuditEntry{
		Action: model.ActionEditAdminNote,
		Actor:  model.ActorAdmin,
		Metadata: map[string]any{
			"index": req.Index,
		},
	})

	notes := booking.AdminNotes
	notes[req.Index] = model.AdminNote{
		At:   timezone.Now().Format(constant.WallClockLayout),
		Note: req.Note,
	}

	return s.patchBooking(ctx, bookingID, map[string]any{
		model.FieldAdminNotes: notes,
		model.FieldAuditTrail: audit,
	})
}

// appendAudit stamps and appends one entry without mutating the original
// slice.
func appendAudit(trail model.AuditTrail, entry model.AuditEntry) model.AuditTrail {
	entry.At = timezone.Now().Format(constant.WallClockLayout)

	res := make(model.AuditTrail, 0, len(trail)+1)
	res = append(res, trail...)
	res = append(res, entry)

	return res
}
