package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"fancall/shared/constant"
	"fancall/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "booking_id"
	FieldFanID              = "fan_id"
	FieldCreatorID          = "creator_id"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldTimezone           = "timezone"
	FieldStatus             = "status"
	FieldNegotiationPhase   = "negotiation_phase"
	FieldSurchargeFee       = "surcharge_fee"
	FieldDefaultFee         = "default_fee"
	FieldCallStatus         = "call_status"
	FieldMissedBy           = "missed_by"
	FieldReadyStateTime     = "ready_state_time"
	FieldReadyBy            = "ready_by"
	FieldRecurrenceRule     = "recurrence_rule"
	FieldInitialTokenCharge = "initial_token_charge"
	FieldAuditTrail         = "audit_trail"
	FieldAdminNotes         = "admin_notes"
)

const (
	StatusPending     = "pending"
	StatusConfirmed   = "confirmed"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusMissed      = "missed"
	StatusRescheduled = "rescheduled"
	StatusNegotiation = "negotiation"
	StatusDeclined    = "declined"

	CallStatusNoShow = "no_show"
)

const (
	PartyFan     = "fan"
	PartyCreator = "creator"
	PartyBoth    = "both"
)

const (
	ActionUpdateStatus       = "update_status"
	ActionSetStatus          = "set_status"
	ActionRegisterReadyState = "register_ready_state"
	ActionMissedBooking      = "missed_booking"
	ActionRescheduled        = "rescheduled"
	ActionRequestReschedule  = "request_reschedule"
	ActionAcceptReschedule   = "accept_reschedule"
	ActionDeclineReschedule  = "decline_reschedule"
	ActionAddAdminNote       = "add_admin_note"
	ActionEditAdminNote      = "edit_admin_note"

	ActorAdmin  = "admin"
	ActorSystem = "system"
)

// ValidStatuses are the states an admin status transition may target.
var ValidStatuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusMissed,
	StatusRescheduled,
}

// AuditEntry is one append-only record of who did what to a booking.
type AuditEntry struct {
	At       string         `json:"at"`
	Action   string         `json:"action"`
	Actor    string         `json:"actor"`
	Reason   string         `json:"reason,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type AuditTrail []AuditEntry

func (a AuditTrail) Value() (driver.Value, error) {
	if a == nil {
		return json.Marshal(AuditTrail{}) //nolint:wrapcheck
	}

	return json.Marshal(a) //nolint:wrapcheck
}

func (a *AuditTrail) Scan(src any) error {
	return scanJSON(src, a)
}

// AdminNote is a timestamped free-form note left by an operator.
type AdminNote struct {
	At   string `json:"at"`
	Note string `json:"note"`
}

type AdminNotes []AdminNote

func (n AdminNotes) Value() (driver.Value, error) {
	if n == nil {
		return json.Marshal(AdminNotes{}) //nolint:wrapcheck
	}

	return json.Marshal(n) //nolint:wrapcheck
}

func (n *AdminNotes) Scan(src any) error {
	return scanJSON(src, n)
}

// TokenCharges are the optional upfront charge entries attached at creation.
type TokenCharges []string

func (t TokenCharges) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal(TokenCharges{}) //nolint:wrapcheck
	}

	return json.Marshal(t) //nolint:wrapcheck
}

func (t *TokenCharges) Scan(src any) error {
	return scanJSON(src, t)
}

// Booking stores start and end as wall-clock strings in the creator's
// timezone, never as UTC instants. Wraparound bookings keep an end clock
// earlier than the start clock; readers roll the end into the next day.
type Booking struct {
	ID                 string       `db:"booking_id"`
	FanID              string       `db:"fan_id"`
	CreatorID          string       `db:"creator_id"`
	StartTime          string       `db:"start_time"`
	EndTime            string       `db:"end_time"`
	Timezone           string       `db:"timezone"`
	Status             string       `db:"status"`
	NegotiationPhase   bool         `db:"negotiation_phase"`
	SurchargeFee       int          `db:"surcharge_fee"`
	DefaultFee         int          `db:"default_fee"`
	CallStatus         string       `db:"call_status"`
	MissedBy           string       `db:"missed_by"`
	ReadyStateTime     string       `db:"ready_state_time"`
	ReadyBy            string       `db:"ready_by"`
	RecurrenceRule     string       `db:"recurrence_rule"`
	InitialTokenCharge TokenCharges `db:"initial_token_charge"`
	AuditTrail         AuditTrail   `db:"audit_trail"`
	AdminNotes         AdminNotes   `db:"admin_notes"`
	model.Metadata
}

// Date returns the calendar-date half of the start stamp.
func (b Booking) Date() string {
	if len(b.StartTime) < len(constant.DateOnlyLayout) {
		return ""
	}

	return b.StartTime[:len(constant.DateOnlyLayout)]
}

// StartClock returns the time-of-day half of the start stamp.
func (b Booking) StartClock() string {
	return clockPart(b.StartTime)
}

// EndClock returns the time-of-day half of the end stamp.
func (b Booking) EndClock() string {
	return clockPart(b.EndTime)
}

// StartAt anchors the start stamp in the given location.
func (b Booking) StartAt(loc *time.Location) (time.Time, error) {
	return parseWallClock(b.StartTime, loc)
}

// EndAt anchors the end stamp in the given location.
func (b Booking) EndAt(loc *time.Location) (time.Time, error) {
	return parseWallClock(b.EndTime, loc)
}

func clockPart(stamp string) string {
	if len(stamp) <= len(constant.DateOnlyLayout)+1 {
		return ""
	}

	return stamp[len(constant.DateOnlyLayout)+1:]
}

func parseWallClock(stamp string, loc *time.Location) (time.Time, error) {
	ts, err := time.ParseInLocation(constant.WallClockLayout, stamp, loc)
	if err == nil {
		return ts, nil
	}

	ts, err = time.ParseInLocation(constant.DateOnlyLayout+" 15:04", stamp, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing wall-clock stamp %q", stamp)
	}

	return ts, nil
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
