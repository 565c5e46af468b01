package dto

import (
	"encoding/json"

	"fancall/internal/domains/availability"
	"fancall/internal/domains/settings/model"
)

// HoursPayload mirrors a stored wall-clock window on the wire.
type HoursPayload struct {
	Start string `json:"start" validate:"required,clock"`
	End   string `json:"end"   validate:"required,clock"`
}

func (h HoursPayload) ToModel() model.Hours {
	return model.Hours{Start: h.Start, End: h.End}
}

type SuspensionPayload struct {
	StartDate         string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate           string   `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Status            string   `json:"status"     validate:"required,oneof=active suspension_lifted"`
	NoShowsBookingIDs []string `json:"no_shows_booking_ids" validate:"omitempty,dive,required"`
}

func (s SuspensionPayload) ToModel() model.Suspension {
	return model.Suspension{
		StartDate:         s.StartDate,
		EndDate:           s.EndDate,
		Status:            s.Status,
		NoShowsBookingIDs: s.NoShowsBookingIDs,
	}
}

// AddSuspensionRequest opens a suspension window on a creator's policy. Status
// defaults to active when omitted.
type AddSuspensionRequest struct {
	StartDate         string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate           string   `json:"end_date"   validate:"required,datetime=2006-01-02"`
	Status            string   `json:"status"     validate:"omitempty,oneof=active suspension_lifted"`
	NoShowsBookingIDs []string `json:"no_shows_booking_ids" validate:"omitempty,dive,required"`
}

// UpdateBookingPolicyRequest is a partial settings update. Only the schema
// fields below are writable; unknown keys in the payload are dropped by the
// decoder. Expected carries the caller's last-seen values for an optimistic
// concurrency check, keyed by the same wire names.
type UpdateBookingPolicyRequest struct {
	Timezone               *string             `json:"timezone"                                    validate:"omitempty,timezone"`
	MinCharge              *int                `json:"min_charge"                                  validate:"omitempty,gte=0"`
	BookingBuffer          *int                `json:"booking_buffer"                              validate:"omitempty,gte=0"`
	AdvanceBooking         *bool               `json:"advance_booking"`
	InstantBooking         *bool               `json:"instant_booking"`
	MinBookingTime         *int                `json:"min_booking_time"                            validate:"omitempty,gte=0"`
	MaxBookingTime         *int                `json:"max_booking_time"                            validate:"omitempty,gte=0"`
	NegotiationPhase       *bool               `json:"negotiation_phase"`
	AfterHourSurcharge     *bool               `json:"after_hour_surcharge"`
	BookingWindowInMinutes *int                `json:"booking_window_in_minutes"                   validate:"omitempty,gte=0"`
	AfterHourRate          *int                `json:"after_hour_token_price_per_minute"           validate:"omitempty,gte=0"`
	DefaultRate            *int                `json:"default_working_hour_token_price_per_minute" validate:"omitempty,gte=0"`
	DefaultWorkingHours    *HoursPayload       `json:"default_working_hours"                       validate:"omitempty"`
	AfterHours             *HoursPayload       `json:"after_hours"                                 validate:"omitempty"`
	Suspensions            []SuspensionPayload `json:"suspensions"                                 validate:"omitempty,dive"`

	Expected map[string]json.RawMessage `json:"expected" validate:"omitempty"`
}

// Apply merges the set fields onto the existing policy.
func (r *UpdateBookingPolicyRequest) Apply(policy model.BookingPolicy) model.BookingPolicy {
	if r.Timezone != nil {
		policy.Timezone = *r.Timezone
	}
	if r.MinCharge != nil {
		policy.MinCharge = *r.MinCharge
	}
	if r.BookingBuffer != nil {
		policy.BookingBuffer = *r.BookingBuffer
	}
	if r.AdvanceBooking != nil {
		policy.AdvanceBooking = *r.AdvanceBooking
	}
	if r.InstantBooking != nil {
		policy.InstantBooking = *r.InstantBooking
	}
	if r.MinBookingTime != nil {
		policy.MinBookingTime = *r.MinBookingTime
	}
	if r.MaxBookingTime != nil {
		policy.MaxBookingTime = *r.MaxBookingTime
	}
	if r.NegotiationPhase != nil {
		policy.NegotiationPhase = *r.NegotiationPhase
	}
	if r.AfterHourSurcharge != nil {
		policy.AfterHourSurcharge = *r.AfterHourSurcharge
	}
	if r.BookingWindowInMinutes != nil {
		policy.BookingWindowInMinutes = *r.BookingWindowInMinutes
	}
	if r.AfterHourRate != nil {
		policy.AfterHourRate = *r.AfterHourRate
	}
	if r.DefaultRate != nil {
		policy.DefaultRate = *r.DefaultRate
	}
	if r.DefaultWorkingHours != nil {
		policy.DefaultWorkingHours = r.DefaultWorkingHours.ToModel()
	}
	if r.AfterHours != nil {
		policy.AfterHours = r.AfterHours.ToModel()
	}
	if r.Suspensions != nil {
		suspensions := make(model.SuspensionList, len(r.Suspensions))
		for i, s := range r.Suspensions {
			suspensions[i] = s.ToModel()
		}
		policy.Suspensions = suspensions
	}

	return policy
}

type BookingPolicyResponse struct {
	CreatorID              string              `json:"creator_id"`
	ActivityStatus         string              `json:"activity_status"`
	Timezone               string              `json:"timezone"`
	MinCharge              int                 `json:"min_charge"`
	BookingBuffer          int                 `json:"booking_buffer"`
	AdvanceBooking         bool                `json:"advance_booking"`
	InstantBooking         bool                `json:"instant_booking"`
	MinBookingTime         int                 `json:"min_booking_time"`
	MaxBookingTime         int                 `json:"max_booking_time"`
	NegotiationPhase       bool                `json:"negotiation_phase"`
	AfterHourSurcharge     bool                `json:"after_hour_surcharge"`
	BookingWindowInMinutes int                 `json:"booking_window_in_minutes"`
	AfterHourRate          int                 `json:"after_hour_token_price_per_minute"`
	DefaultRate            int                 `json:"default_working_hour_token_price_per_minute"`
	NoShowCount            int                 `json:"no_show_count"`
	DefaultWorkingHours    model.Hours         `json:"default_working_hours"`
	AfterHours             model.Hours         `json:"after_hours"`
	Suspensions            []model.Suspension  `json:"suspensions"`
}

func (r *BookingPolicyResponse) FromModel(policy model.BookingPolicy) {
	r.CreatorID = policy.CreatorID
	r.ActivityStatus = policy.ActivityStatus
	r.Timezone = policy.Timezone
	r.MinCharge = policy.MinCharge
	r.BookingBuffer = policy.BookingBuffer
	r.AdvanceBooking = policy.AdvanceBooking
	r.InstantBooking = policy.InstantBooking
	r.MinBookingTime = policy.MinBookingTime
	r.MaxBookingTime = policy.MaxBookingTime
	r.NegotiationPhase = policy.NegotiationPhase
	r.AfterHourSurcharge = policy.AfterHourSurcharge
	r.BookingWindowInMinutes = policy.BookingWindowInMinutes
	r.AfterHourRate = policy.AfterHourRate
	r.DefaultRate = policy.DefaultRate
	r.NoShowCount = policy.NoShowCount
	r.DefaultWorkingHours = policy.DefaultWorkingHours
	r.AfterHours = policy.AfterHours
	r.Suspensions = policy.Suspensions
	if r.Suspensions == nil {
		r.Suspensions = []model.Suspension{}
	}
}

// EffectiveHoursResponse is the resolved, merged window list for a creator.
type EffectiveHoursResponse struct {
	CreatorID string                     `json:"creator_id"`
	Windows   []availability.ClockWindow `json:"windows"`
	Offline   []availability.ClockWindow `json:"offline"`
}
