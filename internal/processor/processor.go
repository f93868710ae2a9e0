// Package processor drives the per-message pipeline: fetch, extract, ask the
// model, normalize, create the calendar event, and only then mark the message
// read.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fmassi/mail2cal/internal/decision"
	"github.com/fmassi/mail2cal/internal/gcal"
	"github.com/fmassi/mail2cal/internal/gemini"
	"github.com/fmassi/mail2cal/internal/gmail"
	"github.com/fmassi/mail2cal/internal/timeutil"
)

// Mailbox is the unread-mail source the pipeline consumes.
type Mailbox interface {
	ListUnread(limit int64) ([]string, error)
	GetMessage(id string) (*gmail.Email, error)
	MarkRead(id string) error
}

// Decider asks the generation backend for a decision object. A nil map with a
// nil error means no parsable decision came back.
type Decider interface {
	Decide(ctx context.Context, prompt string) (map[string]any, error)
}

// Calendar creates events and returns the created event ID.
type Calendar interface {
	InsertEvent(calendarID string, input gcal.EventInput) (string, error)
}

// Notifier receives the end-of-run summary. Optional; failures are logged and
// never affect message outcomes.
type Notifier interface {
	SendRunSummary(ctx context.Context, stats RunStats) error
}

// Outcome is the terminal state of one message's pipeline run.
type Outcome int

const (
	// OutcomeCreated means an event was created and the message marked read.
	OutcomeCreated Outcome = iota
	// OutcomeSkippedNoBody means extraction yielded nothing; no model call made.
	OutcomeSkippedNoBody
	// OutcomeSkippedNoDecision means the model answered but no JSON object
	// could be recovered; the message stays unread for a future run.
	OutcomeSkippedNoDecision
	// OutcomeSkippedNoEvent means the model judged no event is warranted.
	OutcomeSkippedNoEvent
	// OutcomeSkippedNoDate means the model wanted an event but gave no date.
	OutcomeSkippedNoDate
)

// RunStats summarizes one batch run.
type RunStats struct {
	Listed            int
	Created           int
	Skipped           int
	Errors            int
	RateLimited       bool
	RetryAfterSeconds int
}

// Config contains the values the committer needs; it is built once in main
// and passed in, never read from the environment here.
type Config struct {
	CalendarID      string
	Timezone        string
	MaxMessages     int
	PerMessageDelay time.Duration
	// Now is the clock used for prompt construction. Injectable so tests can
	// pin it; defaults to time.Now.
	Now func() time.Time
}

// Processor orchestrates the decision-and-commit pipeline for a batch of
// unread messages.
type Processor struct {
	mailbox  Mailbox
	decider  Decider
	calendar Calendar
	notifier Notifier

	calendarID  string
	loc         *time.Location
	timezone    string
	maxMessages int64
	delay       time.Duration
	now         func() time.Time
}

// New creates a processor. An unknown timezone silently falls back to
// Europe/Rome so a bad setting never blocks event creation.
func New(mailbox Mailbox, decider Decider, calendar Calendar, notifier Notifier, cfg Config) *Processor {
	loc, fellBack := timeutil.ResolveLocation(cfg.Timezone)
	if fellBack && cfg.Timezone != "" {
		log.Printf("Warning: unknown timezone %q, falling back to %s", cfg.Timezone, loc)
	}

	maxMessages := int64(cfg.MaxMessages)
	if maxMessages <= 0 {
		maxMessages = 10
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Processor{
		mailbox:     mailbox,
		decider:     decider,
		calendar:    calendar,
		notifier:    notifier,
		calendarID:  cfg.CalendarID,
		loc:         loc,
		timezone:    loc.String(),
		maxMessages: maxMessages,
		delay:       cfg.PerMessageDelay,
		now:         now,
	}
}

// Run processes one batch of unread messages, strictly one at a time in list
// order. A rate-limit signal from the decider stops the batch immediately;
// events committed before it stand and their messages stay marked read. Any
// other per-message error leaves that message unread and moves on.
func (p *Processor) Run(ctx context.Context) (RunStats, error) {
	var stats RunStats

	ids, err := p.mailbox.ListUnread(p.maxMessages)
	if err != nil {
		return stats, fmt.Errorf("failed to list unread messages: %w", err)
	}
	stats.Listed = len(ids)

	if len(ids) == 0 {
		log.Printf("No unread messages, nothing to do")
		return stats, nil
	}
	log.Printf("Processing %d unread messages (cap %d)", len(ids), p.maxMessages)

	for _, id := range ids {
		if id == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			p.sendSummary(stats)
			return stats, err
		}

		outcome, err := p.processMessage(ctx, id)
		if err != nil {
			var rateLimit *gemini.RateLimitError
			if errors.As(err, &rateLimit) {
				stats.RateLimited = true
				stats.RetryAfterSeconds = rateLimit.RetryAfterSeconds
				if rateLimit.RetryAfterSeconds > 0 {
					log.Printf("Gemini quota exhausted, suggested retry after %d seconds; stopping the batch", rateLimit.RetryAfterSeconds)
				} else {
					log.Printf("Gemini quota exhausted; stopping the batch")
				}
				break
			}
			stats.Errors++
			// Message stays unread and will be retried on the next run.
			log.Printf("Error processing message %s: %v", id, err)
			continue
		}

		if outcome == OutcomeCreated {
			stats.Created++
		} else {
			stats.Skipped++
		}

		if p.delay > 0 {
			select {
			case <-ctx.Done():
				p.sendSummary(stats)
				return stats, ctx.Err()
			case <-time.After(p.delay):
			}
		}
	}

	p.sendSummary(stats)
	return stats, nil
}

// processMessage walks one message through the state machine. The ordering
// invariant lives here: MarkRead is only ever called after InsertEvent
// succeeded.
func (p *Processor) processMessage(ctx context.Context, id string) (Outcome, error) {
	email, err := p.mailbox.GetMessage(id)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch message: %w", err)
	}
	log.Printf("Processing message %s: %s", id, email.Subject)

	if strings.TrimSpace(email.Body) == "" {
		log.Printf("Message %s has no body, skipping", id)
		return OutcomeSkippedNoBody, nil
	}

	prompt := gemini.BuildPrompt(email.Body, email.Subject, p.now().In(p.loc), p.timezone)

	raw, err := p.decider.Decide(ctx, prompt)
	if err != nil {
		return 0, err
	}
	if raw == nil {
		log.Printf("No parsable decision for message %s, leaving it unread", id)
		return OutcomeSkippedNoDecision, nil
	}

	d := decision.Parse(raw)
	if !d.Create {
		log.Printf("No event to create for message %s", id)
		return OutcomeSkippedNoEvent, nil
	}
	if d.Date == "" {
		log.Printf("Decision for message %s has no date, skipping", id)
		return OutcomeSkippedNoDate, nil
	}

	normalizedDate, err := decision.NormalizeDate(d.Date)
	if err != nil {
		return 0, err
	}

	if d.Description == "" {
		d.Description = fmt.Sprintf("Generato automaticamente da email con oggetto: %s", email.Subject)
	}

	spec, err := decision.BuildEventSpec(d, normalizedDate, p.loc)
	if err != nil {
		return 0, err
	}

	eventID, err := p.calendar.InsertEvent(p.calendarID, gcal.EventInput{
		Summary:     spec.Title,
		Description: spec.Description,
		AllDay:      spec.AllDay,
		Start:       spec.Start,
		End:         spec.End,
		Timezone:    p.timezone,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create event: %w", err)
	}
	log.Printf("Event created: %s (%s)", spec.Title, eventID)

	// Only now does the message stop being unread.
	if err := p.mailbox.MarkRead(id); err != nil {
		// The event stands; the message will be seen again next run.
		log.Printf("Warning: failed to mark message %s read: %v", id, err)
		return OutcomeCreated, nil
	}
	log.Printf("Message %s marked read", id)

	return OutcomeCreated, nil
}

func (p *Processor) sendSummary(stats RunStats) {
	if p.notifier == nil || stats.Listed == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := p.notifier.SendRunSummary(ctx, stats); err != nil {
		log.Printf("Warning: failed to send run summary: %v", err)
	}
}
