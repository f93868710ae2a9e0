package decision

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrBadDateFormat reports a date that matches neither accepted layout.
	ErrBadDateFormat = errors.New("unrecognized date format")
	// ErrBadTimeFormat reports a start time that is neither HH:MM nor HH:MM:SS.
	ErrBadTimeFormat = errors.New("invalid time format")
)

const isoDateLayout = "2006-01-02"

// NormalizeDate canonicalizes "YYYY-MM-DD" or "DD-MM-YYYY" (either separator)
// into the ISO form. ISO is tried first; the four-digit year keeps the two
// layouts from colliding. Idempotent on its own output.
func NormalizeDate(raw string) (string, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), "/", "-")

	if d, err := time.Parse(isoDateLayout, s); err == nil {
		return d.Format(isoDateLayout), nil
	}
	if d, err := time.Parse("02-01-2006", s); err == nil {
		return d.Format(isoDateLayout), nil
	}

	return "", fmt.Errorf("%w: %q", ErrBadDateFormat, raw)
}

// EventSpec is the calendar-ready shape of a decision. All-day events span
// one calendar day with an exclusive end date; timed events last one hour
// (the model never supplies an end time).
type EventSpec struct {
	Title       string
	Description string
	AllDay      bool
	Start       time.Time
	End         time.Time
}

// BuildEventSpec turns a decision with a normalized date into a concrete
// event spec in loc. An empty StartTime yields an all-day spec; otherwise the
// time is parsed as HH:MM with an HH:MM:SS fallback.
func BuildEventSpec(d EventDecision, normalizedDate string, loc *time.Location) (EventSpec, error) {
	day, err := time.ParseInLocation(isoDateLayout, normalizedDate, loc)
	if err != nil {
		return EventSpec{}, fmt.Errorf("%w: %q", ErrBadDateFormat, normalizedDate)
	}

	spec := EventSpec{
		Title:       d.Title,
		Description: d.Description,
	}

	if d.StartTime == "" {
		spec.AllDay = true
		spec.Start = day
		spec.End = day.AddDate(0, 0, 1)
		return spec, nil
	}

	stamp := normalizedDate + " " + d.StartTime
	start, err := time.ParseInLocation(isoDateLayout+" 15:04", stamp, loc)
	if err != nil {
		start, err = time.ParseInLocation(isoDateLayout+" 15:04:05", stamp, loc)
		if err != nil {
			return EventSpec{}, fmt.Errorf("%w: %q", ErrBadTimeFormat, d.StartTime)
		}
	}

	spec.Start = start
	spec.End = start.Add(time.Hour)
	return spec, nil
}
