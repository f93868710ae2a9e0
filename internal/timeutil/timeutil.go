package timeutil

import "time"

// FallbackTimezone is used whenever the configured identifier cannot be
// resolved. Event creation must not fail because of a bad timezone setting.
const FallbackTimezone = "Europe/Rome"

// ResolveLocation loads an IANA timezone identifier. It returns the fallback
// location (Europe/Rome) when the identifier is empty or unknown; the second
// return value reports whether the fallback was taken.
func ResolveLocation(timezone string) (*time.Location, bool) {
	if timezone == "" {
		return fallbackLocation(), true
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fallbackLocation(), true
	}
	return loc, false
}

func fallbackLocation() *time.Location {
	loc, err := time.LoadLocation(FallbackTimezone)
	if err != nil {
		// No tzdata at all; UTC keeps the pipeline running.
		return time.UTC
	}
	return loc
}
