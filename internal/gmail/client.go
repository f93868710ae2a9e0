package gmail

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const noSubject = "(senza oggetto)"

// Client wraps the Gmail API client
type Client struct {
	service *gmail.Service
	token   *oauth2.Token
	config  *oauth2.Config
}

// Email represents a parsed email message
type Email struct {
	ID       string
	ThreadID string
	Subject  string
	Snippet  string
	Body     string // Plain text body, snippet fallback applied
}

// NewClient creates a new Gmail client using an existing OAuth2 config and token
// This reuses the same credentials as Google Calendar
func NewClient(config *oauth2.Config, token *oauth2.Token) (*Client, error) {
	if token == nil {
		return &Client{config: config}, nil
	}

	client := &Client{
		config: config,
		token:  token,
	}

	if err := client.initService(context.Background()); err != nil {
		return nil, err
	}

	return client, nil
}

// initService initializes the Gmail service with the current token
func (c *Client) initService(ctx context.Context) error {
	if c.token == nil {
		return fmt.Errorf("no token available")
	}

	httpClient := c.config.Client(ctx, c.token)
	service, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return fmt.Errorf("failed to create Gmail service: %w", err)
	}

	c.service = service
	return nil
}

// SetToken updates the token and reinitializes the service
func (c *Client) SetToken(token *oauth2.Token) error {
	c.token = token
	return c.initService(context.Background())
}

// IsAuthenticated returns true if the client has a valid service
func (c *Client) IsAuthenticated() bool {
	return c.service != nil
}

// ListUnread returns up to limit unread message IDs. The API typically hands
// them back most-recent-first, though that ordering is not formally guaranteed.
func (c *Client) ListUnread(limit int64) ([]string, error) {
	if c.service == nil {
		return nil, fmt.Errorf("Gmail service not initialized")
	}

	pageSize := int64(50)
	if limit > 0 && limit < pageSize {
		pageSize = limit
	}

	var ids []string
	pageToken := ""
	for {
		call := c.service.Users.Messages.List("me").Q("is:unread").MaxResults(pageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list unread messages: %w", err)
		}
		if len(resp.Messages) == 0 {
			break
		}
		for _, msg := range resp.Messages {
			ids = append(ids, msg.Id)
		}
		if limit > 0 && int64(len(ids)) >= limit {
			ids = ids[:limit]
			break
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return ids, nil
}

// GetMessage retrieves a full message by ID and extracts its plain-text body.
// When the payload yields no text the snippet is used instead.
func (c *Client) GetMessage(messageID string) (*Email, error) {
	if c.service == nil {
		return nil, fmt.Errorf("Gmail service not initialized")
	}

	msg, err := c.service.Users.Messages.Get("me", messageID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}

	email := &Email{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
		Subject:  noSubject,
	}

	if msg.Payload != nil {
		for _, header := range msg.Payload.Headers {
			if strings.EqualFold(header.Name, "Subject") && header.Value != "" {
				email.Subject = header.Value
				break
			}
		}
	}

	email.Body = ExtractText(msg.Payload)
	if email.Body == "" {
		email.Body = msg.Snippet
	}

	return email, nil
}

// MarkRead clears the UNREAD label from a message
func (c *Client) MarkRead(messageID string) error {
	if c.service == nil {
		return fmt.Errorf("Gmail service not initialized")
	}

	_, err := c.service.Users.Messages.Modify("me", messageID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	}).Do()
	if err != nil {
		return fmt.Errorf("failed to mark message %s read: %w", messageID, err)
	}

	return nil
}
