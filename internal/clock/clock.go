// Package clock formats the day, date and time lines of the overlay clock.
package clock

import (
	"fmt"
	"time"

	"github.com/guidoenr/wallvis/internal/params"
)

// Interval is the refresh cadence of the clock text.
const Interval = time.Second

// Text holds the three clock lines.
type Text struct {
	Day  string `json:"day"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// Format renders now into clock text.
func Format(now time.Time, format params.TimeFormat, showSeconds bool) Text {
	return Text{
		Day:  now.Weekday().String(),
		Date: fmt.Sprintf("%02d %s", now.Day(), now.Month().String()),
		Time: FormatTime(now, format, showSeconds),
	}
}

// FormatTime renders HH:MM[:SS] in 24-hour mode or hh:MM[:SS] AM/PM in
// 12-hour mode, where hour 0 reads as 12.
func FormatTime(now time.Time, format params.TimeFormat, showSeconds bool) string {
	h, m, s := now.Clock()
	if format == params.Format24Hour {
		if showSeconds {
			return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
		}
		return fmt.Sprintf("%02d:%02d", h, m)
	}

	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	if showSeconds {
		return fmt.Sprintf("%02d:%02d:%02d %s", h12, m, s, suffix)
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m, suffix)
}
