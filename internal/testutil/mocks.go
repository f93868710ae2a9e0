// Package testutil provides in-memory doubles for the pipeline's external
// dependencies.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/fmassi/mail2cal/internal/gcal"
	"github.com/fmassi/mail2cal/internal/gmail"
)

// MockMailbox simulates the Gmail mailbox for testing
type MockMailbox struct {
	mu          sync.Mutex
	emails      []*gmail.Email
	readIDs     []string
	markReadErr map[string]error
	getErr      map[string]error
	listErr     error
}

// NewMockMailbox creates a new mock mailbox
func NewMockMailbox() *MockMailbox {
	return &MockMailbox{
		markReadErr: make(map[string]error),
		getErr:      make(map[string]error),
	}
}

// AddEmail adds an unread email to the mock
func (m *MockMailbox) AddEmail(email *gmail.Email) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emails = append(m.emails, email)
}

// SetListError makes ListUnread fail
func (m *MockMailbox) SetListError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}

// SetGetError makes GetMessage fail for the given ID
func (m *MockMailbox) SetGetError(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr[id] = err
}

// SetMarkReadError makes MarkRead fail for the given ID
func (m *MockMailbox) SetMarkReadError(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.markReadErr[id] = err
}

// ListUnread returns the IDs of the stored emails, in insertion order
func (m *MockMailbox) ListUnread(limit int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var ids []string
	for _, e := range m.emails {
		if int64(len(ids)) >= limit {
			break
		}
		ids = append(ids, e.ID)
	}
	return ids, nil
}

// GetMessage returns the stored email with the given ID
func (m *MockMailbox) GetMessage(id string) (*gmail.Email, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.getErr[id]; err != nil {
		return nil, err
	}
	for _, e := range m.emails {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("message %s not found", id)
}

// MarkRead records the ID as read
func (m *MockMailbox) MarkRead(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.markReadErr[id]; err != nil {
		return err
	}
	m.readIDs = append(m.readIDs, id)
	return nil
}

// ReadIDs returns the IDs marked read so far
func (m *MockMailbox) ReadIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.readIDs...)
}

// MockCalendar simulates the Google Calendar client for testing
type MockCalendar struct {
	mu        sync.Mutex
	events    []MockCalendarEvent
	insertErr error
}

// MockCalendarEvent records one InsertEvent call
type MockCalendarEvent struct {
	ID         string
	CalendarID string
	Input      gcal.EventInput
}

// NewMockCalendar creates a new mock calendar
func NewMockCalendar() *MockCalendar {
	return &MockCalendar{}
}

// SetInsertError makes InsertEvent fail
func (m *MockCalendar) SetInsertError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insertErr = err
}

// InsertEvent records the event and returns a synthetic event ID
func (m *MockCalendar) InsertEvent(calendarID string, input gcal.EventInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return "", m.insertErr
	}
	id := fmt.Sprintf("event-%d", len(m.events)+1)
	m.events = append(m.events, MockCalendarEvent{ID: id, CalendarID: calendarID, Input: input})
	return id, nil
}

// Events returns all events created so far
func (m *MockCalendar) Events() []MockCalendarEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCalendarEvent{}, m.events...)
}

// DeciderResponse is one queued answer for the mock decider
type DeciderResponse struct {
	Decision map[string]any
	Err      error
}

// MockDecider simulates the Gemini client for testing. Responses are consumed
// in FIFO order, one per Decide call; running out of responses is a test bug.
type MockDecider struct {
	mu        sync.Mutex
	responses []DeciderResponse
	prompts   []string
}

// NewMockDecider creates a new mock decider
func NewMockDecider() *MockDecider {
	return &MockDecider{}
}

// QueueResponse appends an answer for a future Decide call
func (m *MockDecider) QueueResponse(resp DeciderResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// Decide records the prompt and pops the next queued response
func (m *MockDecider) Decide(ctx context.Context, prompt string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	if len(m.responses) == 0 {
		return nil, fmt.Errorf("no response queued for prompt %d", len(m.prompts))
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Decision, resp.Err
}

// Prompts returns the prompts received so far
func (m *MockDecider) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.prompts...)
}
