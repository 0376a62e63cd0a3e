package services

import (
	"time"

	"github.com/hendrawanp/passvault-app/models"
	"github.com/hendrawanp/passvault-app/utils"
	"gorm.io/gorm"
)

const eventBatchSize = 100

// EventProcessor drains the event queue into the audit log from a single
// background goroutine. A poll that finds nothing (or fails) backs off for
// Backoff instead of Interval, so an idle or broken queue is not hammered.
type EventProcessor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
	Backoff  time.Duration
}

func NewEventProcessor(db *gorm.DB) *EventProcessor {
	return &EventProcessor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
		Backoff:  5 * time.Second,
	}
}

func (ep *EventProcessor) Start() {
	go func() {
		for {
			processed, err := ep.DrainOnce()
			if err != nil {
				utils.ErrorLogger.Printf("Error processing event queue: %v", err)
			}

			delay := ep.Interval
			if err != nil || processed == 0 {
				delay = ep.Backoff
			}

			select {
			case <-time.After(delay):
			case <-ep.StopChan:
				return
			}
		}
	}()
}

func (ep *EventProcessor) Stop() {
	close(ep.StopChan)
}

// DrainOnce moves up to one batch of pending queue items into the events
// table and returns how many it handled.
func (ep *EventProcessor) DrainOnce() (int, error) {
	var items []models.EventQueueItem

	tx := ep.DB.Begin()
	if tx.Error != nil {
		return 0, tx.Error
	}

	if err := tx.Where("processed = ?", false).
		Order("occurred_at ASC").
		Limit(eventBatchSize).
		Find(&items).Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	for _, item := range items {
		event := models.Event{
			Type:           item.Type,
			UserID:         item.UserID,
			NotificationID: item.NotificationID,
			OccurredAt:     item.OccurredAt,
			RecordedAt:     time.Now(),
		}
		if err := tx.Create(&event).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
		if err := tx.Model(&models.EventQueueItem{}).
			Where("id = ?", item.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			return 0, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return 0, err
	}

	if len(items) > 0 {
		utils.InfoLogger.Printf("Processed %d queued events", len(items))
	}
	return len(items), nil
}

// RecordEvent appends one entry to the event queue. Audit logging is best
// effort, a failure is logged and never bubbles into the request path.
func RecordEvent(db *gorm.DB, eventType, userID string, notificationID *string) {
	item := models.EventQueueItem{
		Type:           eventType,
		UserID:         userID,
		NotificationID: notificationID,
		OccurredAt:     time.Now(),
	}
	if err := db.Create(&item).Error; err != nil {
		utils.ErrorLogger.Printf("Error queueing %s event: %v", eventType, err)
	}
}
