package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fmassi/mail2cal/internal/config"
	"github.com/fmassi/mail2cal/internal/gcal"
	"github.com/fmassi/mail2cal/internal/gemini"
	"github.com/fmassi/mail2cal/internal/gmail"
	"github.com/fmassi/mail2cal/internal/notify"
	"github.com/fmassi/mail2cal/internal/processor"
)

func main() {
	cfg := config.LoadFromEnv()

	closeLog := setupLogging(cfg.LogFile)
	defer closeLog()

	if cfg.GeminiAPIKey == "" {
		fatal("configuration", fmt.Errorf("GEMINI_API_KEY (or GOOGLE_API_KEY) is required"))
	}

	gcalClient, err := gcal.NewClient(cfg.GoogleCredentialsFile, cfg.GoogleTokenFile)
	if err != nil {
		fatal("creating calendar client", err)
	}
	if !gcalClient.IsAuthenticated() {
		fatal("authentication", fmt.Errorf("no valid Google token at %s (run the authorization flow first; Gmail modify and Calendar events scopes are required)", cfg.GoogleTokenFile))
	}

	gmailClient, err := gmail.NewClient(gcalClient.GetOAuthConfig(), gcalClient.GetToken())
	if err != nil {
		fatal("creating gmail client", err)
	}
	if !gmailClient.IsAuthenticated() {
		fatal("authentication", fmt.Errorf("gmail client not authenticated (the stored token may lack the Gmail modify scope)"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	geminiClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		fatal("creating gemini client", err)
	}
	log.Printf("Gemini client configured (model %s)", cfg.GeminiModel)

	var notifier processor.Notifier
	if resendNotifier := notify.NewResendNotifier(cfg.ResendAPIKey, cfg.SummaryEmailFrom, cfg.SummaryEmailTo); resendNotifier != nil {
		notifier = resendNotifier
		log.Printf("Run summary email configured (Resend)")
	}

	proc := processor.New(gmailClient, geminiClient, gcalClient, notifier, processor.Config{
		CalendarID:      cfg.CalendarID,
		Timezone:        cfg.Timezone,
		MaxMessages:     cfg.MaxUnreadToProcess,
		PerMessageDelay: time.Duration(cfg.PerEmailSleepSecs * float64(time.Second)),
	})

	stats, err := proc.Run(ctx)
	if err != nil {
		fatal("processing", err)
	}

	log.Printf("Run complete: %d listed, %d created, %d skipped, %d errors",
		stats.Listed, stats.Created, stats.Skipped, stats.Errors)
	if stats.RateLimited {
		log.Printf("Run stopped early on Gemini quota; remaining messages stay unread for the next run")
	}
}

// setupLogging mirrors every log line to the log file when one is configured.
func setupLogging(path string) func() {
	log.SetFlags(log.LstdFlags)

	if path == "" {
		return func() {}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v\n", path, err)
		return func() {}
	}

	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return func() { f.Close() }
}

func fatal(context string, err error) {
	log.Printf("Error %s: %v", context, err)
	os.Exit(1)
}
