package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hendrawanp/passvault-app/models"
	"github.com/hendrawanp/passvault-app/repositories"
	"github.com/hendrawanp/passvault-app/services"
	"github.com/hendrawanp/passvault-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB      *gorm.DB
	Repo    repositories.NotificationRepository
	Listing *services.ListingService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	repo := repositories.NewNotificationRepository(db)
	return &NotificationController{
		DB:      db,
		Repo:    repo,
		Listing: services.NewListingService(repo),
	}
}

func currentUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok && userID != ""
}

// currentPrincipal assembles the requesting principal: the authenticated
// user id plus the user's organization membership set.
func (nc *NotificationController) currentPrincipal(c *gin.Context) (services.Principal, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return services.Principal{}, false
	}

	orgIDs, err := nc.Repo.OrganizationIDsForUser(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return services.Principal{}, false
	}

	return services.Principal{UserID: userID, OrganizationIDs: orgIDs}, true
}

// requestClientType reads the client platform from the Device-Type header,
// defaulting to web for unknown or absent values.
func requestClientType(c *gin.Context) string {
	clientType := strings.ToLower(strings.TrimSpace(c.GetHeader("Device-Type")))
	if !models.ValidClientType(clientType) {
		return models.ClientTypeWeb
	}
	return clientType
}

// ListNotifications
// GET /api/notifications?continuationToken=&pageSize=&readStatusFilter=&deletedStatusFilter=
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	principal, ok := nc.currentPrincipal(c)
	if !ok {
		return
	}

	opts := services.ListOptions{
		ContinuationToken: strings.TrimSpace(c.Query("continuationToken")),
	}

	verrs := make(map[string][]string)
	if raw := strings.TrimSpace(c.Query("pageSize")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			verrs["PageSize"] = append(verrs["PageSize"], "The field PageSize must be an integer.")
		} else {
			opts.PageSize = &size
		}
	}
	if raw := strings.TrimSpace(c.Query("readStatusFilter")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			verrs["ReadStatusFilter"] = append(verrs["ReadStatusFilter"], "The field ReadStatusFilter must be a boolean.")
		} else {
			opts.ReadStatusFilter = &value
		}
	}
	if raw := strings.TrimSpace(c.Query("deletedStatusFilter")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			verrs["DeletedStatusFilter"] = append(verrs["DeletedStatusFilter"], "The field DeletedStatusFilter must be a boolean.")
		} else {
			opts.DeletedStatusFilter = &value
		}
	}
	if len(verrs) > 0 {
		utils.RespondValidationErrors(c, verrs)
		return
	}

	result, err := nc.Listing.List(c.Request.Context(), principal, requestClientType(c), opts)
	if err != nil {
		var validationErrs services.ValidationErrors
		if errors.As(err, &validationErrs) {
			utils.RespondValidationErrors(c, validationErrs)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", result)
}

// GetUnreadCount
// GET /api/notifications/unread-count
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	principal, ok := nc.currentPrincipal(c)
	if !ok {
		return
	}

	count, err := nc.Listing.UnreadCount(c.Request.Context(), principal, requestClientType(c))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Unread notifications", gin.H{"unread": count})
}

// MarkNotificationRead
// PATCH /api/notifications/:notification_id/read
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	nc.markNotification(c, models.EventNotificationRead)
}

// MarkNotificationDeleted soft-deletes a notification for the current user
// only; the notification row itself stays untouched.
// PATCH /api/notifications/:notification_id/deleted
func (nc *NotificationController) MarkNotificationDeleted(c *gin.Context) {
	nc.markNotification(c, models.EventNotificationDeleted)
}

func (nc *NotificationController) markNotification(c *gin.Context, eventType string) {
	principal, ok := nc.currentPrincipal(c)
	if !ok {
		return
	}

	notifID := c.Param("notification_id")
	notif, err := nc.Repo.GetByID(c.Request.Context(), notifID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	// Out-of-scope notifications look the same as missing ones.
	if notif == nil || !services.VisibleTo(notif, principal) {
		utils.RespondError(c, http.StatusNotFound, errors.New("notification not found"))
		return
	}

	status, err := nc.Repo.GetStatus(c.Request.Context(), notifID, principal.UserID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if status == nil {
		status = &models.NotificationStatus{
			NotificationID: notifID,
			UserID:         principal.UserID,
		}
	}

	now := time.Now()
	switch eventType {
	case models.EventNotificationRead:
		if status.ReadDate == nil {
			status.ReadDate = &now
		}
	case models.EventNotificationDeleted:
		if status.DeletedDate == nil {
			status.DeletedDate = &now
		}
	}

	if err := nc.Repo.SaveStatus(c.Request.Context(), status); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	services.RecordEvent(nc.DB, eventType, principal.UserID, &notifID)
	utils.RespondJSON(c, http.StatusOK, "Notification updated", gin.H{"notification_id": notifID})
}
