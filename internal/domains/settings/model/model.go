package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"fancall/internal/domains/availability"
	"fancall/shared/model"
)

const (
	TableName  = "booking_policies"
	EntityName = "booking_policy"

	FieldCreatorID              = "creator_id"
	FieldActivityStatus         = "activity_status"
	FieldTimezone               = "timezone"
	FieldMinCharge              = "min_charge"
	FieldBookingBuffer          = "booking_buffer"
	FieldAdvanceBooking         = "advance_booking"
	FieldInstantBooking         = "instant_booking"
	FieldMinBookingTime         = "min_booking_time"
	FieldMaxBookingTime         = "max_booking_time"
	FieldNegotiationPhase       = "negotiation_phase"
	FieldAfterHourSurcharge     = "after_hour_surcharge"
	FieldBookingWindowInMinutes = "booking_window_in_minutes"
	FieldAfterHourRate          = "after_hour_token_price_per_minute"
	FieldDefaultRate            = "default_working_hour_token_price_per_minute"
	FieldNoShowCount            = "no_show_count"
	FieldDefaultWorkingHours    = "default_working_hours"
	FieldAfterHours             = "after_hours"
	FieldSuspensions            = "suspensions"
)

const (
	ActivityStatusActive = "active"

	SuspensionStatusActive = "active"
	SuspensionStatusLifted = "suspension_lifted"
)

// Hours is a wall-clock window stored as a JSONB column.
type Hours availability.ClockWindow

func (h Hours) Window() availability.ClockWindow {
	return availability.ClockWindow(h)
}

func (h Hours) Value() (driver.Value, error) {
	return json.Marshal(h) //nolint:wrapcheck
}

func (h *Hours) Scan(src any) error {
	return scanJSON(src, h)
}

// Suspension is one booking-suspension window on a creator, stored inside the
// policy's suspensions JSONB array. Dates are inclusive "YYYY-MM-DD" bounds in
// the creator's timezone.
type Suspension struct {
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	Status            string   `json:"status"`
	NoShowsBookingIDs []string `json:"no_shows_booking_ids,omitempty"`
}

type SuspensionList []Suspension

func (s SuspensionList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal(SuspensionList{}) //nolint:wrapcheck
	}

	return json.Marshal(s) //nolint:wrapcheck
}

func (s *SuspensionList) Scan(src any) error {
	return scanJSON(src, s)
}

// BookingPolicy is a creator's booking configuration. JSON tags use the wire
// names settings payloads have always carried.
type BookingPolicy struct {
	CreatorID              string         `db:"creator_id"                                  json:"creator_id"`
	ActivityStatus         string         `db:"activity_status"                             json:"activity_status"`
	Timezone               string         `db:"timezone"                                    json:"timezone"`
	MinCharge              int            `db:"min_charge"                                  json:"min_charge"`
	BookingBuffer          int            `db:"booking_buffer"                              json:"booking_buffer"`
	AdvanceBooking         bool           `db:"advance_booking"                             json:"advance_booking"`
	InstantBooking         bool           `db:"instant_booking"                             json:"instant_booking"`
	MinBookingTime         int            `db:"min_booking_time"                            json:"min_booking_time"`
	MaxBookingTime         int            `db:"max_booking_time"                            json:"max_booking_time"`
	NegotiationPhase       bool           `db:"negotiation_phase"                           json:"negotiation_phase"`
	AfterHourSurcharge     bool           `db:"after_hour_surcharge"                        json:"after_hour_surcharge"`
	BookingWindowInMinutes int            `db:"booking_window_in_minutes"                   json:"booking_window_in_minutes"`
	AfterHourRate          int            `db:"after_hour_token_price_per_minute"           json:"after_hour_token_price_per_minute"`
	DefaultRate            int            `db:"default_working_hour_token_price_per_minute" json:"default_working_hour_token_price_per_minute"`
	NoShowCount            int            `db:"no_show_count"                               json:"no_show_count"`
	DefaultWorkingHours    Hours          `db:"default_working_hours"                       json:"default_working_hours"`
	AfterHours             Hours          `db:"after_hours"                                 json:"after_hours"`
	Suspensions            SuspensionList `db:"suspensions"                                 json:"suspensions"`
	model.Metadata
}

// Location resolves the creator's IANA timezone.
func (p BookingPolicy) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "loading timezone %q", p.Timezone)
	}

	return loc, nil
}

func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case []byte:
		return errors.Wrap(json.Unmarshal(v, dst), "scanning jsonb column")
	case string:
		return errors.Wrap(json.Unmarshal([]byte(v), dst), "scanning jsonb column")
	case nil:
		return nil
	default:
		return errors.Errorf("unsupported jsonb source type %T", src)
	}
}
