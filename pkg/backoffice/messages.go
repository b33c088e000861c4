package backoffice

import (
	"context"
	"net/url"
	"strconv"

	"github.com/brisatech/backoffice/pkg/models"
)

// MessagesService manages contact-form submissions. Creation is public; every
// other operation requires an authenticated session.
type MessagesService struct {
	c *Client
}

// MessageInput is the public contact-form payload.
type MessageInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Message string `json:"message"`
}

// MessageUpdate is a partial update; nil fields are left untouched.
type MessageUpdate struct {
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	RespondedBy *string `json:"respondedBy,omitempty"`
}

// MessageListParams filters List. Zero values are omitted from the query.
type MessageListParams struct {
	Page     int
	PageSize int
	Status   string
	Search   string
}

func (p MessageListParams) values() url.Values {
	q := url.Values{}
	setInt(q, "page", p.Page)
	setInt(q, "pageSize", p.PageSize)
	setString(q, "status", p.Status)
	setString(q, "search", p.Search)
	return q
}

// Create submits a contact message. No token is attached when the session is
// anonymous, so the public site can call this before any login.
func (s *MessagesService) Create(ctx context.Context, input MessageInput) (*models.Message, error) {
	var m models.Message
	if err := s.c.post(ctx, "/api/messages", input, &m); err != nil {
		return nil, err
	}

	m.SyncID()
	return &m, nil
}

// List returns messages matching params with the pagination metadata
// stripped; use ListPage when totals matter.
func (s *MessagesService) List(ctx context.Context, params MessageListParams) ([]models.Message, error) {
	msgs, _, err := s.ListPage(ctx, params)
	return msgs, err
}

// ListPage returns one page of messages plus the pagination metadata.
func (s *MessagesService) ListPage(ctx context.Context, params MessageListParams) ([]models.Message, models.Pagination, error) {
	var payload struct {
		Messages   []models.Message  `json:"messages"`
		Pagination models.Pagination `json:"pagination"`
	}
	if err := s.c.get(ctx, "/api/messages", params.values(), &payload); err != nil {
		return nil, models.Pagination{}, err
	}

	for i := range payload.Messages {
		payload.Messages[i].SyncID()
	}
	return payload.Messages, payload.Pagination, nil
}

// Get returns one message by id.
func (s *MessagesService) Get(ctx context.Context, id string) (*models.Message, error) {
	var m models.Message
	if err := s.c.get(ctx, "/api/messages/"+id, nil, &m); err != nil {
		return nil, err
	}

	m.SyncID()
	return &m, nil
}

// Update applies a partial update and returns the updated message.
func (s *MessagesService) Update(ctx context.Context, id string, update MessageUpdate) (*models.Message, error) {
	var m models.Message
	if err := s.c.patch(ctx, "/api/messages/"+id, update, &m); err != nil {
		return nil, err
	}

	m.SyncID()
	return &m, nil
}

// MarkRead sets the message status to read.
func (s *MessagesService) MarkRead(ctx context.Context, id string) (*models.Message, error) {
	status := models.MessageStatusRead
	return s.Update(ctx, id, MessageUpdate{Status: &status})
}

// MarkResponded sets the status to responded, with optional response notes.
func (s *MessagesService) MarkResponded(ctx context.Context, id, notes string) (*models.Message, error) {
	status := models.MessageStatusResponded
	update := MessageUpdate{Status: &status}
	if notes != "" {
		update.Notes = &notes
	}
	return s.Update(ctx, id, update)
}

// Delete removes a message. Deleting a missing id surfaces a not-found error.
func (s *MessagesService) Delete(ctx context.Context, id string) error {
	return s.c.delete(ctx, "/api/messages/"+id)
}

// Stats returns aggregate message counts.
func (s *MessagesService) Stats(ctx context.Context) (*models.MessageStats, error) {
	var stats models.MessageStats
	if err := s.c.get(ctx, "/api/messages/stats", nil, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// Recent returns the latest messages, newest first.
func (s *MessagesService) Recent(ctx context.Context, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.List(ctx, MessageListParams{Page: 1, PageSize: limit})
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

func setBool(q url.Values, key string, v *bool) {
	if v != nil {
		q.Set(key, strconv.FormatBool(*v))
	}
}
