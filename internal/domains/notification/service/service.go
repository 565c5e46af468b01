package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"fancall/config"
	"fancall/infras/kafka"
	"fancall/infras/otel"
	bookingModel "fancall/internal/domains/booking/model"
	"fancall/internal/domains/notification/model"
	"fancall/shared/constant"
	"fancall/shared/failure"
)

const defaultSubject = "Booking Notification"

// notifyTargets lists who hears about each booking event.
var notifyTargets = map[string][]string{
	model.ConditionRequestReschedule: {model.RecipientFan, model.RecipientCreator},
	model.ConditionApproveReschedule: {model.RecipientFan, model.RecipientCreator},
	model.ConditionSuccessReschedule: {model.RecipientBoth},
	model.ConditionDeclineReschedule: {model.RecipientFan, model.RecipientCreator},
	model.ConditionSuccessBooking:    {model.RecipientBoth},
	model.ConditionCancelBooking:     {model.RecipientBoth},
	model.ConditionBookingReminder:   {model.RecipientBoth},
	model.ConditionSessionStart:      {model.RecipientBoth},
}

var subjects = map[string]map[string]string{
	model.ConditionRequestReschedule: {
		model.RecipientFan:     "Reschedule Request Received",
		model.RecipientCreator: "New Reschedule Request",
	},
	model.ConditionApproveReschedule: {
		model.RecipientFan:     "Reschedule Approved",
		model.RecipientCreator: "Reschedule Approved",
	},
	model.ConditionSuccessReschedule: {
		model.RecipientFan:     "Reschedule Successful",
		model.RecipientCreator: "Reschedule Successful",
	},
	model.ConditionDeclineReschedule: {
		model.RecipientFan:     "Reschedule Request Declined",
		model.RecipientCreator: "Reschedule Declined",
	},
	model.ConditionSuccessBooking: {
		model.RecipientFan:     "Booking Confirmed",
		model.RecipientCreator: "New Booking Confirmed",
	},
	model.ConditionCancelBooking: {
		model.RecipientFan:     "Booking Canceled",
		model.RecipientCreator: "Booking Canceled",
	},
	model.ConditionBookingReminder: {
		model.RecipientFan:     "Upcoming Session Reminder",
		model.RecipientCreator: "Upcoming Session Reminder",
	},
	model.ConditionSessionStart: {
		model.RecipientFan:     "Your Session Has Started",
		model.RecipientCreator: "Your Session Has Started",
	},
}

const bodyTemplate = `
		<h2>Booking Notification</h2>
		<p>Dear {recipient_name},</p>
		<p>Your booking (No: {booking_id}) has been updated based on the following status: {status}.</p>
		<p>Date: {date}</p>
		<p>Time: {time}</p>
		<p>Thank you,</p>
		<p>Fansocial Team</p>
	`

type Notifier interface {
	NotifyBookingParties(ctx context.Context, condition string, booking bookingModel.Booking) error
}

type serviceImpl struct {
	broker kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func New(broker kafka.Client, cfg *config.Config, otel otel.Otel) Notifier {
	return &serviceImpl{
		broker: broker,
		cfg:    cfg,
		otel:   otel,
	}
}

// NotifyBookingParties fans one booking event out to the parties the
// condition names, publishing an email plus an in-app notice per recipient.
func (s *serviceImpl) NotifyBookingParties(ctx context.Context, condition string, booking bookingModel.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".NotifyBookingParties")
	defer scope.End()
	defer scope.TraceIfError(err)

	targets, ok := notifyTargets[condition]
	if !ok {
		return failure.BadRequestKind("unknown_notify_condition", fmt.Sprintf("no notification targets for condition %s", condition)) // nolint:wrapcheck
	}

	if booking.FanID == constant.Empty || booking.CreatorID == constant.Empty {
		return failure.BadRequestKind("missing_required_fields", "booking is missing fan or creator id") // nolint:wrapcheck
	}

	messages := make([]kafka.Message, 0, len(targets)*2)

	for _, target := range targets {
		recipients := []string{target}
		if target == model.RecipientBoth {
			recipients = []string{model.RecipientFan, model.RecipientCreator}
		}

		for _, recipient := range recipients {
			messages = append(messages, kafka.Message{
				Key:   booking.ID,
				Value: s.buildEnvelope(condition, recipient, booking),
			})
		}
	}

	if err = s.broker.SendMessages(ctx, s.cfg.Kafka.Topic.Notifications, messages...); err != nil {
		log.Error().Err(err).Str("condition", condition).Str("bookingId", booking.ID).Msg("failed to publish booking notifications")

		return fmt.Errorf("failed to publish booking notifications: %w", err)
	}

	return nil
}

func (s *serviceImpl) buildEnvelope(condition, recipient string, booking bookingModel.Booking) model.Envelope {
	recipientID := booking.FanID
	if recipient == model.RecipientCreator {
		recipientID = booking.CreatorID
	}

	subject := defaultSubject
	if byTarget, ok := subjects[condition]; ok {
		if s, ok := byTarget[recipient]; ok {
			subject = s
		}
	}

	return model.Envelope{
		BookingID: booking.ID,
		Condition: condition,
		Email: model.EmailMessage{
			RecipientID: recipientID,
			Subject:     subject,
			Body:        emailBody(condition, recipientID, booking),
		},
		Notice: model.Notice{
			RecipientID: recipientID,
			Message:     noticeMessage(condition, booking.ID),
			Type:        model.NoticeTypeInfo,
			Priority:    model.NoticePriorityHigh,
			Flag:        model.NoticeFlagBooking,
			Icon:        model.NoticeIconInfo,
		},
	}
}

func emailBody(condition, recipientID string, booking bookingModel.Booking) string {
	replacer := strings.NewReplacer(
		"{recipient_name}", recipientID,
		"{booking_id}", booking.ID,
		"{status}", capitalizeCondition(condition),
		"{date}", booking.Date(),
		"{time}", booking.StartClock(),
	)

	return replacer.Replace(bodyTemplate)
}

func noticeMessage(condition, bookingID string) string {
	return capitalizeCondition(condition) + " for Booking ID " + bookingID
}

// capitalizeCondition turns "success_booking" into "Success booking".
func capitalizeCondition(condition string) string {
	spaced := strings.ReplaceAll(condition, "_", " ")
	if spaced == "" {
		return spaced
	}

	return strings.ToUpper(spaced[:1]) + spaced[1:]
}
