package model

const (
	ConditionRequestReschedule = "request_reschedule"
	ConditionApproveReschedule = "approve_reschedule"
	ConditionSuccessReschedule = "success_reschedule"
	ConditionDeclineReschedule = "decline_reschedule"
	ConditionSuccessBooking    = "success_booking"
	ConditionCancelBooking     = "cancel_booking"
	ConditionBookingReminder   = "booking_reminder"
	ConditionSessionStart      = "session_start"
)

const (
	RecipientFan     = "fan"
	RecipientCreator = "creator"
	RecipientBoth    = "both"
)

const (
	NoticeTypeInfo     = "info"
	NoticePriorityHigh = "high"
	NoticeFlagBooking  = "booking-notification"
	NoticeIconInfo     = "info"
)

// EmailMessage is the payload published for the mail worker.
type EmailMessage struct {
	RecipientID string `json:"recipient_id"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
}

// Notice is the in-app notification payload.
type Notice struct {
	RecipientID string `json:"recipient_id"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Flag        string `json:"flag"`
	Icon        string `json:"icon"`
}

// Envelope bundles the deliveries for one recipient of a booking event.
type Envelope struct {
	BookingID string       `json:"booking_id"`
	Condition string       `json:"condition"`
	Email     EmailMessage `json:"email"`
	Notice    Notice       `json:"notice"`
}
