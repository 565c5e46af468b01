package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fancall/config"
	ledgerMocks "fancall/infras/ledger/mocks"
	"fancall/infras/otel/mocks"
	bookingMocks "fancall/internal/domains/booking/mocks"
	"fancall/internal/domains/booking/model"
	"fancall/internal/domains/booking/model/dto"
	"fancall/internal/domains/booking/service"
	notifierMocks "fancall/internal/domains/notification/service/mocks"
	settingsModel "fancall/internal/domains/settings/model"
	settingsMocks "fancall/internal/domains/settings/service/mocks"
	cacheMocks "fancall/shared/cache/mocks"
	"fancall/shared/constant"
	gDto "fancall/shared/dto"
)

type serviceMocks struct {
	repo     *bookingMocks.MockBooking
	settings *settingsMocks.MockBookingPolicy
	notifier *notifierMocks.MockNotifier
	ledger   *ledgerMocks.MockLedger
	cache    *cacheMocks.MockRedisCache
}

func newService(t *testing.T) (service.Booking, *serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := &serviceMocks{
		repo:     bookingMocks.NewMockBooking(ctrl),
		settings: settingsMocks.NewMockBookingPolicy(ctrl),
		notifier: notifierMocks.NewMockNotifier(ctrl),
		ledger:   ledgerMocks.NewMockLedger(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Booking.ConflictBufferMinutes = 10
	cfg.Booking.RecurrenceHorizonMonths = 3
	cfg.Booking.NoShowSuspensionThreshold = 3
	cfg.Booking.SuspensionMonths = 1
	cfg.Booking.ReadyGraceSeconds = 300
	cfg.Booking.UpcomingWindowMinutes = 60
	cfg.Booking.SessionLookaheadMinutes = 5

	svc := service.New(m.repo, m.settings, m.notifier, m.ledger, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func testPolicy() settingsModel.BookingPolicy {
	return settingsModel.BookingPolicy{
		CreatorID:           "creator-1",
		ActivityStatus:      "active",
		Timezone:            "UTC",
		MinBookingTime:      15,
		MaxBookingTime:      120,
		DefaultRate:         2,
		AfterHourRate:       3,
		BookingBuffer:       10,
		DefaultWorkingHours: settingsModel.Hours{Start: "09:00:00", End: "17:00:00"},
		AfterHours:          settingsModel.Hours{Start: "17:00:00", End: "21:00:00"},
	}
}

func testBooking() model.Booking {
	return model.Booking{
		ID:        "1747000000000",
		FanID:     "fan-1",
		CreatorID: "creator-1",
		StartTime: "2030-05-20 10:00:00",
		EndTime:   "2030-05-20 11:00:00",
		Timezone:  "UTC",
		Status:    model.StatusPending,
	}
}

// allowAsyncCacheOps covers the fire-and-forget cache writes the service
// spawns after reads and updates.
func (m *serviceMocks) allowAsyncCacheOps() {
	m.cache.EXPECT().
		Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
	m.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func (m *serviceMocks) allowNotifications() {
	m.notifier.EXPECT().
		NotifyBookingParties(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()
}

func (m *serviceMocks) cacheAlwaysMisses() {
	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		AnyTimes()
}

func TestBookingService_Create(t *testing.T) {
	svc, m := newService(t)

	m.settings.EXPECT().EnsureUserActive(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.settings.EXPECT().GetPolicy(gomock.Any(), "creator-1").Return(testPolicy(), nil).AnyTimes()
	m.settings.EXPECT().Location(gomock.Any(), "creator-1").Return(time.UTC, nil).AnyTimes()
	m.settings.EXPECT().EnsureNotSuspended(gomock.Any(), "creator-1", gomock.Any()).Return(nil).AnyTimes()
	m.allowNotifications()

	validReq := dto.CreateBookingRequest{
		FanID:        "fan-1",
		CreatorID:    "creator-1",
		BookingDate:  "2030-05-20",
		BookingStart: "10:00:00",
		BookingEnd:   "11:00:00",
	}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "missing required fields",
			req:       dto.CreateBookingRequest{FanID: "fan-1"},
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name: "balance lookup failure",
			req:  validReq,
			setupMock: func() {
				m.ledger.EXPECT().
					GetBalance(gomock.Any(), "fan-1").
					Return(0, errors.New("ledger unavailable"))
			},
			wantErr: true,
		},
		{
			name: "zero balance",
			req:  validReq,
			setupMock: func() {
				m.ledger.EXPECT().
					GetBalance(gomock.Any(), "fan-1").
					Return(0, nil)
			},
			wantErr: true,
		},
		{
			name: "duration above maximum",
			req: dto.CreateBookingRequest{
				FanID:        "fan-1",
				CreatorID:    "creator-1",
				BookingDate:  "2030-05-20",
				BookingStart: "10:00:00",
				BookingEnd:   "13:00:00",
			},
			setupMock: func() {
				m.ledger.EXPECT().
					GetBalance(gomock.Any(), "fan-1").
					Return(500, nil)
			},
			wantErr: true,
		},
		{
			name: "outside effective hours",
			req: dto.CreateBookingRequest{
				FanID:        "fan-1",
				CreatorID:    "creator-1",
				BookingDate:  "2030-05-20",
				BookingStart: "07:00:00",
				BookingEnd:   "08:00:00",
			},
			setupMock: func() {
				m.ledger.EXPECT().
					GetBalance(gomock.Any(), "fan-1").
					Return(500, nil)
			},
			wantErr: true,
		},
		{
			name: "conflicting booking",
			req:  validReq,
			setupMock: func() {
				m.ledger.EXPECT().
					GetBalance(gomock.Any(), "fan-1").
					Return(500, nil)

				existing := testBooking()
				existing.StartTime = "2030-05-20 10:30:00"
				existing.EndTime = "2030-05-20 11:30:00"

				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{existing}, nil)
			},
			wantErr: true,
		},
		{
			name: "balance below total price",
			req:  validReq,
			setupMock: func() {
				m.ledger.EXPECT().
					GetBalance(gomock.Any(), "fan-1").
					Return(10, nil)
				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "insert failure",
			req:  validReq,
			setupMock: func() {
				m.ledger.EXPECT().
					GetBalance(gomock.Any(), "fan-1").
					Return(500, nil)
				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func() {
				m.ledger.EXPECT().
					GetBalance(gomock.Any(), "fan-1").
					Return(500, nil)
				m.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{}, nil)
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, model.StatusPending, res.Status)
				assert.Equal(t, 120, res.DefaultFee)
				assert.Equal(t, 0, res.SurchargeFee)
			}
		})
	}
}

func TestBookingService_GetDetails(t *testing.T) {
	svc, m := newService(t)
	m.allowAsyncCacheOps()

	tests := []struct {
		name      string
		bookingID string
		setupMock func()
		wantErr   bool
	}{
		{
			name:      "missing booking id",
			bookingID: "",
			setupMock: func() {},
			wantErr:   true,
		},
		{
			name:      "cache hit",
			bookingID: "1747000000000",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*model.Booking)) = testBooking()

						return nil
					})
			},
			wantErr: false,
		},
		{
			name:      "cache miss resolves from repository",
			bookingID: "1747000000000",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testBooking(), nil)
			},
			wantErr: false,
		},
		{
			name:      "booking not found",
			bookingID: "does-not-exist",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name:      "repository error",
			bookingID: "1747000000000",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.GetDetails(context.Background(), tt.bookingID)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "1747000000000", res.ID)
			}
		})
	}
}

func TestBookingService_UserIDFromBooking(t *testing.T) {
	svc, m := newService(t)
	m.allowAsyncCacheOps()
	m.cacheAlwaysMisses()

	t.Run("invalid role", func(t *testing.T) {
		_, err := svc.UserIDFromBooking(context.Background(), "1747000000000", "admin")
		assert.Error(t, err)
	})

	t.Run("resolves fan id", func(t *testing.T) {
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testBooking(), nil)

		userID, err := svc.UserIDFromBooking(context.Background(), "1747000000000", model.PartyFan)
		assert.NoError(t, err)
		assert.Equal(t, "fan-1", userID)
	})

	t.Run("resolves creator id", func(t *testing.T) {
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testBooking(), nil)

		userID, err := svc.UserIDFromBooking(context.Background(), "1747000000000", model.PartyCreator)
		assert.NoError(t, err)
		assert.Equal(t, "creator-1", userID)
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	svc, m := newService(t)
	m.allowAsyncCacheOps()
	m.allowNotifications()
	m.cacheAlwaysMisses()

	t.Run("invalid status", func(t *testing.T) {
		err := svc.UpdateStatus(context.Background(), "1747000000000", "archived")
		assert.Error(t, err)
	})

	t.Run("negotiation is not an admin status", func(t *testing.T) {
		err := svc.UpdateStatus(context.Background(), "1747000000000", model.StatusNegotiation)
		assert.Error(t, err)
	})

	t.Run("valid transition writes status and audit", func(t *testing.T) {
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testBooking(), nil)

		var captured map[string]any

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				captured = fields

				return nil
			})

		err := svc.UpdateStatus(context.Background(), "1747000000000", model.StatusConfirmed)
		assert.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, captured[model.FieldStatus])

		audit, ok := captured[model.FieldAuditTrail].(model.AuditTrail)
		assert.True(t, ok)
		assert.Len(t, audit, 1)
		assert.Equal(t, model.ActionUpdateStatus, audit[0].Action)
		assert.Equal(t, model.ActorAdmin, audit[0].Actor)
		assert.Equal(t, model.StatusConfirmed, audit[0].Metadata["newStatus"])
	})

	t.Run("set status uses its own audit action", func(t *testing.T) {
		m.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(testBooking(), nil)

		var captured map[string]any

		m.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				captured = fields

				return nil
			})

		err := svc.SetStatus(context.Background(), "1747000000000", model.StatusCompleted)
		assert.NoError(t, err)

		audit, ok := captured[model.FieldAuditTrail].(model.AuditTrail)
		assert.True(t, ok)
		assert.Equal(t, model.ActionSetStatus, audit[0].Action)
	})
}

func TestBookingService_ListForUser(t *testing.T) {
	svc, m := newService(t)

	t.Run("missing user id", func(t *testing.T) {
		_, err := svc.ListForUser(context.Background(), "", gDto.QueryParams{})
		assert.Error(t, err)
	})

	t.Run("merges both sides without duplicates", func(t *testing.T) {
		booking := testBooking()
		booking.FanID = "user-1"
		booking.CreatorID = "user-1"

		m.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Booking{booking}, nil).
			Times(2)

		res, err := svc.ListForUser(context.Background(), "user-1", gDto.QueryParams{Limit: 10})
		assert.NoError(t, err)
		assert.Len(t, res.Bookings, 1)
		assert.Equal(t, 1, res.Total)
	})
}
