package services

import (
	"context"

	"github.com/hendrawanp/passvault-app/models"
)

// overlayStatuses pairs every notification with the user's status row,
// synthesizing an empty status where none exists. The pairing is 1:1, no
// notification is dropped or duplicated here.
func (s *ListingService) overlayStatuses(ctx context.Context, notifs []models.Notification, userID string) ([]notificationWithStatus, error) {
	ids := make([]string, len(notifs))
	for i, notif := range notifs {
		ids[i] = notif.ID
	}

	statuses, err := s.repo.ListStatuses(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	byNotification := make(map[string]models.NotificationStatus, len(statuses))
	for _, status := range statuses {
		byNotification[status.NotificationID] = status
	}

	paired := make([]notificationWithStatus, len(notifs))
	for i, notif := range notifs {
		paired[i] = notificationWithStatus{
			Notification: notif,
			Status:       byNotification[notif.ID],
		}
	}
	return paired, nil
}
