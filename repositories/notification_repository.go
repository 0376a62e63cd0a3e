package repositories

import (
	"context"
	"errors"

	"github.com/hendrawanp/passvault-app/models"
	"gorm.io/gorm"
)

// NotificationRepository is the store consumed by the listing engine and the
// status mutation endpoints. Implementations must treat a missing status row
// as "no state yet", never as an error.
type NotificationRepository interface {
	// GetByID fetches a single notification, nil when not found.
	GetByID(ctx context.Context, id string) (*models.Notification, error)

	// ListGlobal fetches notifications visible to every principal.
	ListGlobal(ctx context.Context) ([]models.Notification, error)

	// ListByUser fetches notifications targeted at one specific user.
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)

	// ListByOrganizations fetches notifications targeted at any of the given
	// organizations.
	ListByOrganizations(ctx context.Context, organizationIDs []string) ([]models.Notification, error)

	// GetStatus fetches the status row for one (notification, user) pair,
	// nil when the user has no state for that notification.
	GetStatus(ctx context.Context, notificationID, userID string) (*models.NotificationStatus, error)

	// ListStatuses fetches a user's status rows for the given notifications.
	ListStatuses(ctx context.Context, userID string, notificationIDs []string) ([]models.NotificationStatus, error)

	// SaveStatus inserts or updates a status row.
	SaveStatus(ctx context.Context, status *models.NotificationStatus) error

	// OrganizationIDsForUser returns the ids of every organization the user
	// belongs to.
	OrganizationIDsForUser(ctx context.Context, userID string) ([]string, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	var notif models.Notification
	err := r.db.WithContext(ctx).First(&notif, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListGlobal(ctx context.Context) ([]models.Notification, error) {
	var notifs []models.Notification
	err := r.db.WithContext(ctx).
		Where("global = ?", true).
		Find(&notifs).Error
	return notifs, err
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifs []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&notifs).Error
	return notifs, err
}

func (r *notificationRepository) ListByOrganizations(ctx context.Context, organizationIDs []string) ([]models.Notification, error) {
	if len(organizationIDs) == 0 {
		return nil, nil
	}
	var notifs []models.Notification
	err := r.db.WithContext(ctx).
		Where("organization_id IN ?", organizationIDs).
		Find(&notifs).Error
	return notifs, err
}

func (r *notificationRepository) GetStatus(ctx context.Context, notificationID, userID string) (*models.NotificationStatus, error) {
	var status models.NotificationStatus
	err := r.db.WithContext(ctx).
		First(&status, "notification_id = ? AND user_id = ?", notificationID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &status, nil
}

func (r *notificationRepository) ListStatuses(ctx context.Context, userID string, notificationIDs []string) ([]models.NotificationStatus, error) {
	if len(notificationIDs) == 0 {
		return nil, nil
	}
	var statuses []models.NotificationStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND notification_id IN ?", userID, notificationIDs).
		Find(&statuses).Error
	return statuses, err
}

func (r *notificationRepository) SaveStatus(ctx context.Context, status *models.NotificationStatus) error {
	return r.db.WithContext(ctx).Save(status).Error
}

func (r *notificationRepository) OrganizationIDsForUser(ctx context.Context, userID string) ([]string, error) {
	var orgIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.OrganizationUser{}).
		Where("user_id = ?", userID).
		Pluck("organization_id", &orgIDs).Error
	return orgIDs, err
}
