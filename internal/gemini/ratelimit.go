package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	genai "google.golang.org/genai"
)

// RateLimitError signals that Gemini rejected the call for quota reasons.
// The batch loop must stop on it instead of burning quota on the remaining
// messages; RetryAfterSeconds is a hint for the operator (0 = no hint), not a
// schedule for automatic retry.
type RateLimitError struct {
	RetryAfterSeconds int
	cause             error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfterSeconds > 0 {
		return fmt.Sprintf("gemini quota exhausted (retry after %ds): %v", e.RetryAfterSeconds, e.cause)
	}
	return fmt.Sprintf("gemini quota exhausted: %v", e.cause)
}

func (e *RateLimitError) Unwrap() error {
	return e.cause
}

// The API embeds the suggested delay in the error text as
// "retry_delay { seconds: N }".
var retryDelayPattern = regexp.MustCompile(`retry_delay\s*\{\s*seconds:\s*(\d+)\s*\}`)

// classifyRateLimit returns a *RateLimitError when err looks like quota
// exhaustion (HTTP 429 or the usual keywords), nil otherwise.
func classifyRateLimit(err error) *RateLimitError {
	if err == nil {
		return nil
	}

	msg := err.Error()

	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return &RateLimitError{RetryAfterSeconds: retryAfterHint(msg), cause: err}
	}

	lower := strings.ToLower(msg)
	if strings.Contains(msg, "429") ||
		strings.Contains(lower, "quota") ||
		strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "resource_exhausted") {
		return &RateLimitError{RetryAfterSeconds: retryAfterHint(msg), cause: err}
	}

	return nil
}

func retryAfterHint(msg string) int {
	m := retryDelayPattern.FindStringSubmatch(msg)
	if len(m) < 2 {
		return 0
	}
	seconds, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return seconds
}
