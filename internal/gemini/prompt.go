package gemini

import (
	"fmt"
	"strings"
	"time"
)

// The analysed mail is Italian and so is the prompt: field names and literal
// tokens ("si", "null", GG-MM-AAAA) are part of the contract the parser
// expects back.
const promptTemplate = `Sei un assistente che analizza email in italiano per capire se contengono un evento, appuntamento o scadenza da aggiungere al calendario.

INFORMAZIONI TEMPORALI CORRENTI:
- Data di oggi: %[1]s (%[2]s)
- Anno corrente: %[3]d
- Quando una email non specifica l'anno, ASSUMI SEMPRE l'anno corrente (%[3]d) o l'anno successivo se la data è già passata quest'anno.

Istruzioni e vincoli:
- Luogo/Fuso orario: Italia. Usa sempre il fuso %[4]s e considera l'ora legale alla data indicata.
- Se la mail contiene solo una data (senza orario), crea un evento di GIORNATA INTERA per quella data.
- Se è presente anche un orario, crea un evento con orario (l'inizio coincide con l'orario indicato). Se l'orario non specifica fuso, interpretalo come orario italiano. Se è indicato un fuso diverso, converti all'ora italiana per la data specifica.
- Riconosci anche espressioni relative: "oggi", "domani", "dopodomani", "questo venerdì", "la prossima settimana", ecc. Calcola la data assoluta rispetto a oggi (%[1]s).
- IMPORTANTE: Se una data come "25 dicembre" non ha anno, usa %[3]d. Se la data è già passata quest'anno, usa %[5]d.
- Ignora firme, disclaimer e contenuti non rilevanti. Se ci sono più date, scegli quella più plausibile per l'azione richiesta.
- Restituisci SOLO un oggetto JSON, nessun testo aggiuntivo, nessun commento, nessun backtick.

Formato della risposta JSON (campi obbligatori):
- "creare_evento": "si" o "no".
- "titolo": titolo breve e descrittivo.
- "descrizione": breve descrizione dell'evento (max 200 caratteri); stringa vuota se non disponibile.
- "data": data in formato GG-MM-AAAA; "null" se non determinabile.
- "ora_inizio": orario 24h HH:MM in ora italiana; "null" se evento di giornata intera.

Contenuto da analizzare:
%[6]sTesto:
---
%[7]s
---`

var italianWeekdays = map[time.Weekday]string{
	time.Monday:    "lunedì",
	time.Tuesday:   "martedì",
	time.Wednesday: "mercoledì",
	time.Thursday:  "giovedì",
	time.Friday:    "venerdì",
	time.Saturday:  "sabato",
	time.Sunday:    "domenica",
}

// BuildPrompt renders the instruction prompt for one email. The current date,
// Italian weekday name and year anchor the model so year-less and relative
// dates resolve consistently. Deterministic given (emailText, subject, now):
// the clock is injected, never read here.
func BuildPrompt(emailText, subject string, now time.Time, timezone string) string {
	todayStr := now.Format("02-01-2006")
	dayName := italianWeekdays[now.Weekday()]
	year := now.Year()

	subjectBlock := ""
	if subject != "" {
		subjectBlock = fmt.Sprintf("Oggetto: %s\n", subject)
	}

	return strings.TrimSpace(fmt.Sprintf(promptTemplate,
		todayStr, dayName, year, timezone, year+1, subjectBlock, emailText))
}
