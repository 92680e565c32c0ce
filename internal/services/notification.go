package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/GregMSThompson/flight-events/internal/eventgrid"
	"github.com/GregMSThompson/flight-events/internal/models"
	"github.com/GregMSThompson/flight-events/pkg/logger"
)

type notificationStore interface {
	AddNotification(ctx context.Context, uid string, n *models.Notification) error
	ListNotifications(ctx context.Context, uid string, limit int) ([]models.Notification, error)
}

type notificationService struct {
	store notificationStore
}

func NewNotificationService(store notificationStore) *notificationService {
	return &notificationService{store: store}
}

// Notify stores n for uid. Failures are logged and never returned: a lost
// notification must not fail the request that raised it.
func (s *notificationService) Notify(ctx context.Context, uid string, n models.Notification) {
	if n.NotificationID == "" {
		n.NotificationID = uuid.New().String()
	}
	log := logger.FromContext(ctx)
	if err := s.store.AddNotification(ctx, uid, &n); err != nil {
		log.Error("failed to store notification", "type", n.Type, "error", err)
		return
	}
	log.Debug("notification stored", "type", n.Type, "notification_id", n.NotificationID)
}

func (s *notificationService) ListNotifications(ctx context.Context, uid string) ([]models.Notification, error) {
	return s.store.ListNotifications(ctx, uid, 50)
}

// ForUser binds the service to uid as an eventgrid.Notifier.
func (s *notificationService) ForUser(uid string) eventgrid.Notifier {
	return userNotifier{svc: s, uid: uid}
}

type userNotifier struct {
	svc *notificationService
	uid string
}

func (n userNotifier) Notify(ctx context.Context, note models.Notification) {
	n.svc.Notify(ctx, n.uid, note)
}
