package decision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "iso", input: "2025-12-25", expected: "2025-12-25"},
		{name: "day first", input: "25-12-2025", expected: "2025-12-25"},
		{name: "iso with slashes", input: "2025/12/25", expected: "2025-12-25"},
		{name: "day first with slashes", input: "25/12/2025", expected: "2025-12-25"},
		{name: "surrounding whitespace", input: "  25-12-2025  ", expected: "2025-12-25"},
		{name: "day first with low values", input: "03-04-2025", expected: "2025-04-03"},
		{name: "day above 12", input: "13-04-2025", expected: "2025-04-13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)

			// Idempotent: normalizing the output changes nothing.
			again, err := NormalizeDate(got)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestNormalizeDateRejectsMalformed(t *testing.T) {
	inputs := []string{
		"13-13-2025",
		"not-a-date",
		"2025-13-01",
		"32-01-2025",
		"25-12",
		"",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeDate(input)
			assert.ErrorIs(t, err, ErrBadDateFormat)
		})
	}
}

func TestBuildEventSpec(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	t.Run("all-day event has exclusive end date", func(t *testing.T) {
		d := EventDecision{Create: true, Title: "Natale", Date: "25-12-2025"}

		spec, err := BuildEventSpec(d, "2025-12-25", rome)
		require.NoError(t, err)

		assert.True(t, spec.AllDay)
		assert.Equal(t, "2025-12-25", spec.Start.Format("2006-01-02"))
		assert.Equal(t, "2025-12-26", spec.End.Format("2006-01-02"))
	})

	t.Run("timed event lasts one hour in the target zone", func(t *testing.T) {
		d := EventDecision{Create: true, Title: "Riunione", StartTime: "09:30"}

		spec, err := BuildEventSpec(d, "2025-03-10", rome)
		require.NoError(t, err)

		assert.False(t, spec.AllDay)
		assert.Equal(t, time.Date(2025, time.March, 10, 9, 30, 0, 0, rome), spec.Start)
		assert.Equal(t, time.Date(2025, time.March, 10, 10, 30, 0, 0, rome), spec.End)
		assert.Equal(t, "Europe/Rome", spec.Start.Location().String())
	})

	t.Run("seconds layout accepted", func(t *testing.T) {
		d := EventDecision{StartTime: "09:30:15"}

		spec, err := BuildEventSpec(d, "2025-03-10", rome)
		require.NoError(t, err)
		assert.Equal(t, 15, spec.Start.Second())
	})

	t.Run("bad time fails", func(t *testing.T) {
		d := EventDecision{StartTime: "le nove e mezza"}

		_, err := BuildEventSpec(d, "2025-03-10", rome)
		assert.ErrorIs(t, err, ErrBadTimeFormat)
	})

	t.Run("title and description carried through", func(t *testing.T) {
		d := EventDecision{Title: "Visita", Description: "portare referti"}

		spec, err := BuildEventSpec(d, "2025-05-01", rome)
		require.NoError(t, err)
		assert.Equal(t, "Visita", spec.Title)
		assert.Equal(t, "portare referti", spec.Description)
	})
}
