// Package decision turns the loosely-typed JSON object coming back from the
// model into a strongly-typed decision and the calendar-ready event shape.
package decision

import (
	"fmt"
	"strings"
)

const (
	affirmativeToken = "si"
	defaultTitle     = "Evento"
)

// EventDecision is the parsed outcome of a model analysis for one message.
// Date and StartTime are the raw strings the model produced ("" = absent);
// normalization happens separately so callers can distinguish "no date" from
// "bad date".
type EventDecision struct {
	Create      bool
	Title       string
	Description string
	Date        string // GG-MM-AAAA or AAAA-MM-GG as emitted by the model
	StartTime   string // HH:MM, empty for all-day events
}

// Parse maps the decision object into an EventDecision. The payload is
// untrusted: fields may be missing, carry the literal string "null", or hold
// non-string values. Everything degrades to a safe default; Parse never fails.
func Parse(raw map[string]any) EventDecision {
	d := EventDecision{
		Create:      strings.EqualFold(strings.TrimSpace(stringField(raw, "creare_evento")), affirmativeToken),
		Title:       strings.TrimSpace(stringField(raw, "titolo")),
		Description: strings.TrimSpace(stringField(raw, "descrizione")),
		Date:        optionalField(raw, "data"),
		StartTime:   optionalField(raw, "ora_inizio"),
	}

	if d.Title == "" {
		d.Title = defaultTitle
	}

	return d
}

// stringField coerces any field value to its string form; malformed values
// must not take the parser down.
func stringField(raw map[string]any, key string) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}

// optionalField treats the literal "null" (any case) as absent: the prompt
// instructs the model to emit that literal, not a native JSON null, so it must
// be checked explicitly on top of true absence.
func optionalField(raw map[string]any, key string) string {
	s := strings.TrimSpace(stringField(raw, key))
	if strings.EqualFold(s, "null") {
		return ""
	}
	return s
}
