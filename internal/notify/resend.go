// Package notify delivers the end-of-run summary email via Resend.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/fmassi/mail2cal/internal/processor"
)

// ResendNotifier sends run summary emails via the Resend API
type ResendNotifier struct {
	client *resend.Client
	from   string
	to     string
}

// NewResendNotifier creates a new Resend notifier, or nil when any of the
// settings is missing so the caller can simply skip notification.
func NewResendNotifier(apiKey, from, to string) *ResendNotifier {
	if apiKey == "" || from == "" || to == "" {
		return nil
	}
	return &ResendNotifier{
		client: resend.NewClient(apiKey),
		from:   from,
		to:     to,
	}
}

// SendRunSummary emails the outcome of one batch run
func (r *ResendNotifier) SendRunSummary(ctx context.Context, stats processor.RunStats) error {
	subject := fmt.Sprintf("Email scan: %d eventi creati, %d saltate", stats.Created, stats.Skipped)
	if stats.RateLimited {
		subject += " (quota Gemini esaurita)"
	}

	params := &resend.SendEmailRequest{
		From:    r.from,
		To:      []string{r.to},
		Subject: subject,
		Html:    r.formatSummaryHTML(stats),
	}

	if _, err := r.client.Emails.Send(params); err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}

	fmt.Printf("Run summary sent to %s\n", r.to)
	return nil
}

// formatSummaryHTML creates the HTML email body
func (r *ResendNotifier) formatSummaryHTML(stats processor.RunStats) string {
	rateLimitHTML := ""
	if stats.RateLimited {
		hint := "riprova più tardi"
		if stats.RetryAfterSeconds > 0 {
			hint = fmt.Sprintf("riprova tra %d secondi", stats.RetryAfterSeconds)
		}
		rateLimitHTML = fmt.Sprintf(`<p style="margin: 16px 0; color: #dc3545;">La scansione si è interrotta per limite di quota Gemini (%s). I messaggi non elaborati restano da leggere.</p>`, hint)
	}

	errorsHTML := ""
	if stats.Errors > 0 {
		errorsHTML = fmt.Sprintf(`<p style="margin: 8px 0;"><strong>Errori:</strong> %d (i messaggi restano da leggere)</p>`, stats.Errors)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
  <div style="background-color: white; border-radius: 8px; padding: 24px; box-shadow: 0 2px 4px rgba(0,0,0,0.1);">
    <h2 style="margin: 0 0 16px 0; color: #333;">Scansione email completata</h2>

    <div style="background: #f8f9fa; padding: 16px; border-radius: 8px; margin: 16px 0; border-left: 4px solid #007bff;">
      <p style="margin: 8px 0;"><strong>Messaggi esaminati:</strong> %d</p>
      <p style="margin: 8px 0;"><strong>Eventi creati:</strong> %d</p>
      <p style="margin: 8px 0;"><strong>Messaggi saltati:</strong> %d</p>
      %s
    </div>

    %s

    <hr style="margin-top: 32px; border: none; border-top: 1px solid #eee;">
    <p style="color: #999; font-size: 12px; margin-top: 16px;">
      mail2cal<br>
      <span style="color: #ccc;">Inviato il %s</span>
    </p>
  </div>
</body>
</html>`,
		stats.Listed,
		stats.Created,
		stats.Skipped,
		errorsHTML,
		rateLimitHTML,
		time.Now().Format("02-01-2006 15:04"),
	)
}
