package gemini

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	assert.NoError(t, err)
	// A Wednesday.
	now := time.Date(2025, time.March, 12, 9, 30, 0, 0, rome)

	t.Run("temporal anchor", func(t *testing.T) {
		prompt := BuildPrompt("ci vediamo domani", "Cena", now, "Europe/Rome")

		assert.Contains(t, prompt, "Data di oggi: 12-03-2025 (mercoledì)")
		assert.Contains(t, prompt, "Anno corrente: 2025")
		assert.Contains(t, prompt, "l'anno successivo")
		assert.Contains(t, prompt, "usa 2026")
		assert.Contains(t, prompt, "il fuso Europe/Rome")
	})

	t.Run("subject block", func(t *testing.T) {
		prompt := BuildPrompt("testo", "Visita medica", now, "Europe/Rome")
		assert.Contains(t, prompt, "Oggetto: Visita medica\n")
	})

	t.Run("no subject block when subject is empty", func(t *testing.T) {
		prompt := BuildPrompt("testo", "", now, "Europe/Rome")
		assert.NotContains(t, prompt, "Oggetto:")
	})

	t.Run("output contract spelled out", func(t *testing.T) {
		prompt := BuildPrompt("testo", "", now, "Europe/Rome")

		for _, field := range []string{`"creare_evento"`, `"titolo"`, `"descrizione"`, `"data"`, `"ora_inizio"`} {
			assert.Contains(t, prompt, field)
		}
		assert.Contains(t, prompt, `"si" o "no"`)
		assert.Contains(t, prompt, "GG-MM-AAAA")
		assert.Contains(t, prompt, "SOLO un oggetto JSON")
	})

	t.Run("deterministic for fixed inputs", func(t *testing.T) {
		a := BuildPrompt("stesso testo", "stesso oggetto", now, "Europe/Rome")
		b := BuildPrompt("stesso testo", "stesso oggetto", now, "Europe/Rome")
		assert.Equal(t, a, b)
	})

	t.Run("body is embedded between markers", func(t *testing.T) {
		prompt := BuildPrompt("appuntamento il 25/12", "", now, "Europe/Rome")
		assert.Contains(t, prompt, "---\nappuntamento il 25/12\n---")
	})
}
