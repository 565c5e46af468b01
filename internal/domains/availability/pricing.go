package availability

import (
	"time"
)

// Crossover describes how an appointment splits between default working hours
// and after-hours. CrossOver is true only when both buckets received minutes.
type Crossover struct {
	CrossOver           bool `json:"cross_over"`
	MinutesInDefault    int  `json:"minutes_in_default"`
	MinutesInAfterHours int  `json:"minutes_in_after_hours"`
}

// PriceBreakdown is the token cost of an appointment split by rate bucket.
type PriceBreakdown struct {
	TotalPrice        int `json:"total_price"`
	RegularMinutes    int `json:"regular_minutes"`
	AfterHoursMinutes int `json:"after_hours_minutes"`
	RegularPrice      int `json:"regular_price"`
	SurchargePrice    int `json:"surcharge_price"`
}

// ComputeCrossover allocates an appointment's minutes between the default and
// after-hours windows on the given date. Appointments touching an offline gap
// get an empty allocation. Windows and the appointment itself are shifted a
// day forward when their end precedes their start, and late-night starts are
// re-anchored onto the following date before the split is measured.
func ComputeCrossover(date, apptStart, apptEnd string, defaultHours, afterHours ClockWindow, loc *time.Location) (Crossover, error) {
	offline, err := WithinOfflineHours(date, apptStart, apptEnd, defaultHours, afterHours, loc)
	if err != nil {
		return Crossover{}, err
	}
	if offline {
		return Crossover{}, nil
	}

	apptStartTs, err := unixClock(date, apptStart, loc)
	if err != nil {
		return Crossover{}, err
	}
	apptEndTs, err := unixClock(date, apptEnd, loc)
	if err != nil {
		return Crossover{}, err
	}
	workStartTs, err := unixClock(date, defaultHours.Start, loc)
	if err != nil {
		return Crossover{}, err
	}
	workEndTs, err := unixClock(date, defaultHours.End, loc)
	if err != nil {
		return Crossover{}, err
	}
	afterStartTs, err := unixClock(date, afterHours.Start, loc)
	if err != nil {
		return Crossover{}, err
	}
	afterEndTs, err := unixClock(date, afterHours.End, loc)
	if err != nil {
		return Crossover{}, err
	}

	const day = int64(24 * 60 * 60)

	if workEndTs < workStartTs {
		workEndTs += day
	}
	if afterEndTs < afterStartTs {
		afterEndTs += day
	}
	if apptEndTs < apptStartTs {
		apptEndTs += day
	}

	var minutesInDefault, minutesInAfterHours int64

	switch {
	case apptStartTs >= workStartTs && apptEndTs <= workEndTs:
		minutesInDefault = (apptEndTs - apptStartTs) / 60

	case apptStartTs >= afterStartTs && apptEndTs <= afterEndTs:
		minutesInAfterHours = (apptEndTs - apptStartTs) / 60

	case apptStartTs < workEndTs && apptEndTs > afterStartTs:
		if apptStartTs < workEndTs && apptEndTs < workEndTs {
			apptStartTs += day
			apptEndTs += day
		}
		minutesInDefault = (workEndTs - apptStartTs) / 60
		minutesInAfterHours = (apptEndTs - workEndTs) / 60

	default:
		// Neither window contains the appointment on this date; decide by the
		// bare clock strings whether it belongs to the offline gap or to the
		// after-hours stretch rolling past midnight.
		if apptStart > defaultHours.End && apptStart < afterHours.Start {
			break
		}

		nextDate := date
		if apptStart < defaultHours.Start && apptStart < defaultHours.End {
			anchor, parseErr := time.ParseInLocation(dateLayout, date, loc)
			if parseErr != nil {
				return Crossover{}, parseErr
			}
			nextDate = anchor.AddDate(0, 0, 1).Format(dateLayout)
		}

		apptStartTs, err = unixClock(nextDate, apptStart, loc)
		if err != nil {
			return Crossover{}, err
		}
		apptEndTs, err = unixClock(nextDate, apptEnd, loc)
		if err != nil {
			return Crossover{}, err
		}

		if nextDate != date {
			minutesInAfterHours = (apptEndTs - apptStartTs) / 60
		} else {
			minutesInDefault = (workEndTs - apptStartTs) / 60
			minutesInAfterHours = (apptEndTs - workEndTs) / 60
		}
	}

	return Crossover{
		CrossOver:           minutesInDefault > 0 && minutesInAfterHours > 0,
		MinutesInDefault:    int(minutesInDefault),
		MinutesInAfterHours: int(minutesInAfterHours),
	}, nil
}

// CalculatePrice turns a crossover allocation into a token price using the
// creator's per-minute rates.
func CalculatePrice(crossover Crossover, defaultRatePerMinute, surchargeRatePerMinute int) PriceBreakdown {
	regularPrice := crossover.MinutesInDefault * defaultRatePerMinute
	surchargePrice := crossover.MinutesInAfterHours * surchargeRatePerMinute

	return PriceBreakdown{
		TotalPrice:        regularPrice + surchargePrice,
		RegularMinutes:    crossover.MinutesInDefault,
		AfterHoursMinutes: crossover.MinutesInAfterHours,
		RegularPrice:      regularPrice,
		SurchargePrice:    surchargePrice,
	}
}

func unixClock(date, clock string, loc *time.Location) (int64, error) {
	t, err := ParseClockOn(date, clock, loc)
	if err != nil {
		return 0, err
	}

	return t.Unix(), nil
}
