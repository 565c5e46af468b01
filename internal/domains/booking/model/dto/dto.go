package dto

import (
	"fmt"
	"strings"

	"fancall/internal/domains/availability"
	"fancall/internal/domains/booking/model"
	"fancall/shared"
	gModel "fancall/shared/model"
	"fancall/shared/timezone"
)

// CreateBookingRequest carries the fields a fan submits when requesting a
// session. Times are the creator's wall clock, not UTC.
type CreateBookingRequest struct {
	FanID              string   `json:"fanId" validate:"required"`
	CreatorID          string   `json:"creatorId" validate:"required"`
	BookingDate        string   `json:"bookingDate" validate:"required,datetime=2006-01-02"`
	BookingStart       string   `json:"bookingStart" validate:"required,clock"`
	BookingEnd         string   `json:"bookingEnd" validate:"required,clock"`
	NegotiationPhase   bool     `json:"negotiationPhase"`
	InitialTokenCharge []string `json:"initialTokenCharge,omitempty"`
	RecurrenceRule     string   `json:"recurrenceRule,omitempty"`
}

func (d CreateBookingRequest) ToModel(tz, user string) model.Booking {
	status := model.StatusPending
	if d.NegotiationPhase {
		status = model.StatusNegotiation
	}

	now := timezone.Now()

	return model.Booking{
		ID:                 fmt.Sprintf("%d", now.UnixMilli()),
		FanID:              d.FanID,
		CreatorID:          d.CreatorID,
		StartTime:          d.BookingDate + " " + d.BookingStart,
		EndTime:            d.BookingDate + " " + d.BookingEnd,
		Timezone:           tz,
		Status:             status,
		NegotiationPhase:   d.NegotiationPhase,
		InitialTokenCharge: d.InitialTokenCharge,
		RecurrenceRule:     d.RecurrenceRule,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			CreatedBy:  user,
			ModifiedAt: now,
			ModifiedBy: user,
		},
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type RegisterReadyStateRequest struct {
	UserType string `json:"userType" validate:"required,oneof=fan creator"`
}

type RegisterMissedBookingRequest struct {
	MissedBy string `json:"missedBy" validate:"required,oneof=fan creator both"`
}

// RescheduleBookingRequest moves a booking. Partial keeps the original date
// and only shifts the start clock; full moves both date and clock. The end
// clock is recomputed from the original duration either way.
type RescheduleBookingRequest struct {
	RescheduleType string `json:"rescheduleType" validate:"required,oneof=partial full"`
	NewDate        string `json:"newDate" validate:"omitempty,datetime=2006-01-02"`
	NewTime        string `json:"newTime" validate:"required,clock"`
}

type RequestRescheduleRequest struct {
	PercentBase float64 `json:"percentBase" validate:"gte=0"`
}

type DeclineRescheduleRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// TrimmedReason strips surrounding whitespace before the reason lands in
// the audit trail.
func (d DeclineRescheduleRequest) TrimmedReason() string {
	return strings.TrimSpace(d.Reason)
}

type AdminNoteRequest struct {
	Note string `json:"note" validate:"required"`
}

type EditAdminNoteRequest struct {
	Index int    `json:"index" validate:"gte=0"`
	Note  string `json:"note" validate:"required"`
}

type BookingResponse struct {
	ID                 string             `json:"booking_ID"`
	FanID              string             `json:"user_ID"`
	CreatorID          string             `json:"creatorId"`
	StartTime          string             `json:"startTime"`
	EndTime            string             `json:"endTime"`
	Timezone           string             `json:"timezone"`
	Status             string             `json:"status"`
	NegotiationPhase   bool               `json:"negotiationPhase"`
	SurchargeFee       int                `json:"surchargeFee"`
	DefaultFee         int                `json:"defaultFee"`
	CallStatus         string             `json:"callStatus,omitempty"`
	MissedBy           string             `json:"missedBy,omitempty"`
	ReadyStateTime     string             `json:"readyStateTime,omitempty"`
	ReadyBy            string             `json:"readyBy,omitempty"`
	RecurrenceRule     string             `json:"recurrenceRule,omitempty"`
	InitialTokenCharge []string           `json:"initialTokenCharge,omitempty"`
	AuditTrail         []model.AuditEntry `json:"auditTrail"`
	AdminNotes         []model.AdminNote  `json:"adminNotes"`
	CreatedAt          string             `json:"createdAt"`
}

func (d BookingResponse) FromModel(data model.Booking) BookingResponse {
	audit := data.AuditTrail
	if audit == nil {
		audit = model.AuditTrail{}
	}

	notes := data.AdminNotes
	if notes == nil {
		notes = model.AdminNotes{}
	}

	return BookingResponse{
		ID:                 data.ID,
		FanID:              data.FanID,
		CreatorID:          data.CreatorID,
		StartTime:          data.StartTime,
		EndTime:            data.EndTime,
		Timezone:           data.Timezone,
		Status:             data.Status,
		NegotiationPhase:   data.NegotiationPhase,
		SurchargeFee:       data.SurchargeFee,
		DefaultFee:         data.DefaultFee,
		CallStatus:         data.CallStatus,
		MissedBy:           data.MissedBy,
		ReadyStateTime:     data.ReadyStateTime,
		ReadyBy:            data.ReadyBy,
		RecurrenceRule:     data.RecurrenceRule,
		InitialTokenCharge: data.InitialTokenCharge,
		AuditTrail:         audit,
		AdminNotes:         notes,
		CreatedAt:          data.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

type GetBookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
	Page     int               `json:"total_page"`
}

func (d GetBookingsResponse) FromModels(data []model.Booking, totalData, limit int) GetBookingsResponse {
	bookings := make([]BookingResponse, 0, len(data))
	for _, item := range data {
		bookings = append(bookings, BookingResponse{}.FromModel(item))
	}

	return GetBookingsResponse{
		Bookings: bookings,
		Total:    totalData,
		Page:     shared.CalculateTotalPage(totalData, limit),
	}
}

type PriceQuoteResponse struct {
	Crossover availability.Crossover      `json:"crossover"`
	Breakdown availability.PriceBreakdown `json:"breakdown"`
}

type SlotWindowsResponse struct {
	Date    string                     `json:"date"`
	Windows []availability.ClockWindow `json:"windows"`
}
