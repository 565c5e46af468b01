package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fancall/config"
	"fancall/infras/kafka"
	kafkaMocks "fancall/infras/kafka/mocks"
	"fancall/infras/otel/mocks"
	bookingModel "fancall/internal/domains/booking/model"
	"fancall/internal/domains/notification/model"
	"fancall/internal/domains/notification/service"
)

func newNotifier(t *testing.T) (service.Notifier, *kafkaMocks.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	broker := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Topic.Notifications = "booking-notifications"

	return service.New(broker, cfg, mocks.NewOtel()), broker
}

func notifiedBooking() bookingModel.Booking {
	return bookingModel.Booking{
		ID:        "1747000000000",
		FanID:     "fan-1",
		CreatorID: "creator-1",
		StartTime: "2030-05-20 10:00:00",
		EndTime:   "2030-05-20 11:00:00",
		Timezone:  "UTC",
	}
}

func envelopes(t *testing.T, messages []kafka.Message) []model.Envelope {
	t.Helper()

	out := make([]model.Envelope, 0, len(messages))
	for _, msg := range messages {
		env, ok := msg.Value.(model.Envelope)
		if !ok {
			t.Fatalf("unexpected payload type %T", msg.Value)
		}

		out = append(out, env)
	}

	return out
}

func TestNotifier_NotifyBookingParties(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown condition", func(t *testing.T) {
		svc, _ := newNotifier(t)

		err := svc.NotifyBookingParties(ctx, "made_up_condition", notifiedBooking())

		assert.Error(t, err)
	})

	t.Run("booking without parties", func(t *testing.T) {
		svc, _ := newNotifier(t)

		booking := notifiedBooking()
		booking.FanID = ""

		err := svc.NotifyBookingParties(ctx, model.ConditionSuccessBooking, booking)

		assert.Error(t, err)
	})

	t.Run("both-party condition reaches fan and creator once each", func(t *testing.T) {
		svc, broker := newNotifier(t)

		var published []model.Envelope
		broker.EXPECT().
			SendMessages(gomock.Any(), "booking-notifications", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				published = envelopes(t, messages)

				return nil
			})

		err := svc.NotifyBookingParties(ctx, model.ConditionSuccessBooking, notifiedBooking())

		assert.NoError(t, err)
		assert.Len(t, published, 2)
		assert.Equal(t, "fan-1", published[0].Email.RecipientID)
		assert.Equal(t, "Booking Confirmed", published[0].Email.Subject)
		assert.Equal(t, "creator-1", published[1].Email.RecipientID)
		assert.Equal(t, "New Booking Confirmed", published[1].Email.Subject)
	})

	t.Run("email body carries the booking details", func(t *testing.T) {
		svc, broker := newNotifier(t)

		var published []model.Envelope
		broker.EXPECT().
			SendMessages(gomock.Any(), "booking-notifications", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				published = envelopes(t, messages)

				return nil
			})

		err := svc.NotifyBookingParties(ctx, model.ConditionCancelBooking, notifiedBooking())

		assert.NoError(t, err)
		assert.Len(t, published, 2)
		assert.Contains(t, published[0].Email.Body, "1747000000000")
		assert.Contains(t, published[0].Email.Body, "2030-05-20")
		assert.Contains(t, published[0].Email.Body, "10:00:00")
		assert.Contains(t, published[0].Email.Body, "Cancel booking")
		assert.Equal(t, "Cancel booking for Booking ID 1747000000000", published[0].Notice.Message)
		assert.Equal(t, model.NoticeFlagBooking, published[0].Notice.Flag)
	})

	t.Run("reschedule request uses per-recipient subjects", func(t *testing.T) {
		svc, broker := newNotifier(t)

		var published []model.Envelope
		broker.EXPECT().
			SendMessages(gomock.Any(), "booking-notifications", gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
				published = envelopes(t, messages)

				return nil
			})

		err := svc.NotifyBookingParties(ctx, model.ConditionRequestReschedule, notifiedBooking())

		assert.NoError(t, err)
		assert.Len(t, published, 2)
		assert.Equal(t, "Reschedule Request Received", published[0].Email.Subject)
		assert.Equal(t, "New Reschedule Request", published[1].Email.Subject)
	})

	t.Run("broker failure is surfaced", func(t *testing.T) {
		svc, broker := newNotifier(t)

		broker.EXPECT().
			SendMessages(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("broker unreachable"))

		err := svc.NotifyBookingParties(ctx, model.ConditionSessionStart, notifiedBooking())

		assert.Error(t, err)
	})
}
