package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      map[string]any
		expected EventDecision
	}{
		{
			name: "affirmative with trimmed title",
			raw:  map[string]any{"creare_evento": "SI", "titolo": " Riunione "},
			expected: EventDecision{
				Create: true,
				Title:  "Riunione",
			},
		},
		{
			name: "lowercase si with fields",
			raw: map[string]any{
				"creare_evento": "si",
				"titolo":        "Dentista",
				"descrizione":   " controllo annuale ",
				"data":          "12-09-2025",
				"ora_inizio":    "15:00",
			},
			expected: EventDecision{
				Create:      true,
				Title:       "Dentista",
				Description: "controllo annuale",
				Date:        "12-09-2025",
				StartTime:   "15:00",
			},
		},
		{
			name:     "negative decision",
			raw:      map[string]any{"creare_evento": "no"},
			expected: EventDecision{Title: "Evento"},
		},
		{
			name:     "missing decision field means no",
			raw:      map[string]any{"titolo": "Qualcosa"},
			expected: EventDecision{Title: "Qualcosa"},
		},
		{
			name:     "empty object",
			raw:      map[string]any{},
			expected: EventDecision{Title: "Evento"},
		},
		{
			name: "literal null strings are absent",
			raw: map[string]any{
				"creare_evento": "si",
				"data":          "null",
				"ora_inizio":    "NULL",
			},
			expected: EventDecision{Create: true, Title: "Evento"},
		},
		{
			name: "native null values are absent",
			raw: map[string]any{
				"creare_evento": "si",
				"data":          nil,
			},
			expected: EventDecision{Create: true, Title: "Evento"},
		},
		{
			name: "blank title falls back",
			raw:  map[string]any{"creare_evento": "si", "titolo": "   "},
			expected: EventDecision{
				Create: true,
				Title:  "Evento",
			},
		},
		{
			name: "non-string values are coerced not fatal",
			raw: map[string]any{
				"creare_evento": true,
				"titolo":        float64(42),
				"data":          float64(20251225),
			},
			expected: EventDecision{
				// Only the literal "si" is affirmative; boolean true is not.
				Create: false,
				Title:  "42",
				Date:   "2.0251225e+07",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.raw))
		})
	}
}
