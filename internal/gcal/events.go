package gcal

import (
	"fmt"
	"time"

	"google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

// EventInput represents the input for creating a calendar event. AllDay events
// carry date-only start/end where the end date is exclusive, per calendar
// convention; timed events carry full instants.
type EventInput struct {
	Summary     string
	Description string
	AllDay      bool
	Start       time.Time
	End         time.Time
	Timezone    string // IANA identifier attached to both endpoints
}

// InsertEvent creates a new event in Google Calendar and returns the event ID
func (c *Client) InsertEvent(calendarID string, input EventInput) (string, error) {
	if c.service == nil {
		return "", fmt.Errorf("calendar service not initialized")
	}

	if calendarID == "" {
		calendarID = "primary"
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
	}

	if input.AllDay {
		event.Start = &calendar.EventDateTime{
			Date:     input.Start.Format(dateLayout),
			TimeZone: input.Timezone,
		}
		event.End = &calendar.EventDateTime{
			Date:     input.End.Format(dateLayout),
			TimeZone: input.Timezone,
		}
	} else {
		// RFC3339 format includes the offset, so Google Calendar can infer the
		// instant; the explicit TimeZone keeps recurring display correct.
		event.Start = &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: input.Timezone,
		}
		event.End = &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: input.Timezone,
		}
	}

	created, err := c.service.Events.Insert(calendarID, event).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create event: %w", err)
	}

	return created.Id, nil
}
