package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/flight-events/internal/errs"
	"github.com/GregMSThompson/flight-events/internal/models"
)

type messageStore struct {
	client *firestore.Client
}

func NewMessageStore(client *firestore.Client) *messageStore {
	return &messageStore{client: client}
}

func (s *messageStore) messages(flightID string) *firestore.CollectionRef {
	return s.client.Collection("flights").Doc(flightID).Collection("messages")
}

func (s *messageStore) notifications(uid string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(uid).Collection("notifications")
}

func (s *messageStore) AddMessage(ctx context.Context, flightID string, m *models.Message) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	_, err := s.messages(flightID).Doc(m.MessageID).Set(ctx, m)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to save flight message", err)
	}
	return nil
}

func (s *messageStore) ListMessages(ctx context.Context, flightID string) ([]models.Message, error) {
	docs, err := s.messages(flightID).OrderBy("createdAt", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list flight messages", err)
	}
	out := make([]models.Message, 0, len(docs))
	for _, d := range docs {
		var m models.Message
		if err := d.DataTo(&m); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse flight message", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *messageStore) AddNotification(ctx context.Context, uid string, n *models.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	_, err := s.notifications(uid).Doc(n.NotificationID).Set(ctx, n)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to save notification", err)
	}
	return nil
}

func (s *messageStore) ListNotifications(ctx context.Context, uid string, limit int) ([]models.Notification, error) {
	q := s.notifications(uid).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list notifications", err)
	}
	out := make([]models.Notification, 0, len(docs))
	for _, d := range docs {
		var n models.Notification
		if err := d.DataTo(&n); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse notification", err)
		}
		out = append(out, n)
	}
	return out, nil
}
