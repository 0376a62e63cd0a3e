package services

import (
	"context"
	"time"

	"github.com/hendrawanp/passvault-app/models"
	"github.com/hendrawanp/passvault-app/repositories"
)

// Principal is the already-authenticated actor a listing is computed for.
// The auth layer resolves it before the engine is invoked.
type Principal struct {
	UserID          string
	OrganizationIDs []string
}

// ListOptions are the caller-supplied knobs of one listing request. Nil
// pointers mean "no constraint" / "use the default".
type ListOptions struct {
	ContinuationToken   string
	PageSize            *int
	ReadStatusFilter    *bool
	DeletedStatusFilter *bool
}

// NotificationView is one row of a listing page. Title and Body stay
// encrypted; Date carries the revision date.
type NotificationView struct {
	Object      string     `json:"object"`
	ID          string     `json:"id"`
	Priority    int        `json:"priority"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Date        time.Time  `json:"date"`
	ReadDate    *time.Time `json:"readDate"`
	DeletedDate *time.Time `json:"deletedDate"`
}

type NotificationListResult struct {
	Data              []NotificationView `json:"data"`
	ContinuationToken *string            `json:"continuationToken"`
}

// notificationWithStatus pairs a notification with the requesting user's
// status. A user with no status row gets the zero value (both dates nil), so
// later stages never special-case missing state.
type notificationWithStatus struct {
	Notification models.Notification
	Status       models.NotificationStatus
}

// ListingService answers "which notifications does this principal see, in
// what order, on which page". It is stateless and read-only; concurrent
// calls are independent and a store failure propagates unchanged.
type ListingService struct {
	repo repositories.NotificationRepository
}

func NewListingService(repo repositories.NotificationRepository) *ListingService {
	return &ListingService{repo: repo}
}

// List validates the request, then runs resolve -> overlay -> filter ->
// order -> paginate. Validation failures surface as ValidationErrors before
// any store read.
func (s *ListingService) List(ctx context.Context, principal Principal, clientType string, opts ListOptions) (*NotificationListResult, error) {
	pageNumber, pageSize, verrs := validatePageRequest(opts.ContinuationToken, opts.PageSize)
	if len(verrs) > 0 {
		return nil, verrs
	}

	visible, err := s.resolveVisible(ctx, principal, clientType)
	if err != nil {
		return nil, err
	}

	paired, err := s.overlayStatuses(ctx, visible, principal.UserID)
	if err != nil {
		return nil, err
	}

	filtered := filterByStatus(paired, opts.ReadStatusFilter, opts.DeletedStatusFilter)
	orderNotifications(filtered)
	page, nextToken := paginate(filtered, pageNumber, pageSize)

	views := make([]NotificationView, 0, len(page))
	for _, item := range page {
		views = append(views, NotificationView{
			Object:      "notification",
			ID:          item.Notification.ID,
			Priority:    item.Notification.Priority,
			Title:       item.Notification.Title,
			Body:        item.Notification.Body,
			Date:        item.Notification.RevisionDate,
			ReadDate:    item.Status.ReadDate,
			DeletedDate: item.Status.DeletedDate,
		})
	}

	return &NotificationListResult{Data: views, ContinuationToken: nextToken}, nil
}

// UnreadCount counts the principal's visible notifications that are neither
// read nor deleted, for badge display.
func (s *ListingService) UnreadCount(ctx context.Context, principal Principal, clientType string) (int, error) {
	visible, err := s.resolveVisible(ctx, principal, clientType)
	if err != nil {
		return 0, err
	}

	paired, err := s.overlayStatuses(ctx, visible, principal.UserID)
	if err != nil {
		return 0, err
	}

	unread := false
	return len(filterByStatus(paired, &unread, &unread)), nil
}
