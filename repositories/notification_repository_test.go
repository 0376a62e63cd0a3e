package repositories

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hendrawanp/passvault-app/models"
)

func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrganizationUser{},
		&models.Notification{},
		&models.NotificationStatus{},
	))
	return db
}

func storeNotification(t *testing.T, db *gorm.DB, global bool, userID, orgID *string) models.Notification {
	now := time.Now().UTC().Truncate(time.Second)
	notif := models.Notification{
		ID:             uuid.NewString(),
		Global:         global,
		UserID:         userID,
		OrganizationID: orgID,
		ClientType:     models.ClientTypeAll,
		Priority:       models.PriorityMedium,
		Title:          "2.title==|data==|mac=",
		Body:           "2.body==|data==|mac=",
		CreationDate:   now,
		RevisionDate:   now,
	}
	require.NoError(t, db.Create(&notif).Error)
	return notif
}

func TestNotificationRepository_ScopeFetches(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	userID := uuid.NewString()
	otherUserID := uuid.NewString()
	orgA := uuid.NewString()
	orgB := uuid.NewString()
	orgC := uuid.NewString()

	global := storeNotification(t, db, true, nil, nil)
	forUser := storeNotification(t, db, false, &userID, nil)
	storeNotification(t, db, false, &otherUserID, nil)
	inOrgA := storeNotification(t, db, false, nil, &orgA)
	inOrgB := storeNotification(t, db, false, nil, &orgB)
	storeNotification(t, db, false, nil, &orgC)

	globals, err := repo.ListGlobal(ctx)
	require.NoError(t, err)
	require.Len(t, globals, 1)
	assert.Equal(t, global.ID, globals[0].ID)

	userNotifs, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, userNotifs, 1)
	assert.Equal(t, forUser.ID, userNotifs[0].ID)

	orgNotifs, err := repo.ListByOrganizations(ctx, []string{orgA, orgB})
	require.NoError(t, err)
	gotIDs := []string{orgNotifs[0].ID, orgNotifs[1].ID}
	assert.ElementsMatch(t, []string{inOrgA.ID, inOrgB.ID}, gotIDs)

	empty, err := repo.ListByOrganizations(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestNotificationRepository_GetByID(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	notif := storeNotification(t, db, true, nil, nil)

	found, err := repo.GetByID(ctx, notif.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, notif.ID, found.ID)

	missing, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNotificationRepository_StatusLookups(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	userID := uuid.NewString()
	withStatus := storeNotification(t, db, true, nil, nil)
	withoutStatus := storeNotification(t, db, true, nil, nil)

	readAt := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, db.Create(&models.NotificationStatus{
		NotificationID: withStatus.ID,
		UserID:         userID,
		ReadDate:       &readAt,
	}).Error)

	status, err := repo.GetStatus(ctx, withStatus.ID, userID)
	require.NoError(t, err)
	require.NotNil(t, status)
	require.NotNil(t, status.ReadDate)
	assert.Nil(t, status.DeletedDate)

	// a missing row is not an error
	status, err = repo.GetStatus(ctx, withoutStatus.ID, userID)
	require.NoError(t, err)
	assert.Nil(t, status)

	statuses, err := repo.ListStatuses(ctx, userID, []string{withStatus.ID, withoutStatus.ID})
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, withStatus.ID, statuses[0].NotificationID)

	statuses, err = repo.ListStatuses(ctx, userID, nil)
	require.NoError(t, err)
	assert.Empty(t, statuses)
}

func TestNotificationRepository_SaveStatusUpsert(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	userID := uuid.NewString()
	notif := storeNotification(t, db, true, nil, nil)

	readAt := time.Now().UTC().Truncate(time.Second)
	status := &models.NotificationStatus{
		NotificationID: notif.ID,
		UserID:         userID,
		ReadDate:       &readAt,
	}
	require.NoError(t, repo.SaveStatus(ctx, status))

	deletedAt := readAt.Add(time.Minute)
	status.DeletedDate = &deletedAt
	require.NoError(t, repo.SaveStatus(ctx, status))

	saved, err := repo.GetStatus(ctx, notif.ID, userID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.NotNil(t, saved.ReadDate)
	assert.NotNil(t, saved.DeletedDate)

	var count int64
	require.NoError(t, db.Model(&models.NotificationStatus{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestNotificationRepository_OrganizationIDsForUser(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()

	userID := uuid.NewString()
	orgA := uuid.NewString()
	orgB := uuid.NewString()

	for _, orgID := range []string{orgA, orgB} {
		require.NoError(t, db.Create(&models.OrganizationUser{
			ID:             uuid.NewString(),
			OrganizationID: orgID,
			UserID:         userID,
			Role:           "member",
		}).Error)
	}
	require.NoError(t, db.Create(&models.OrganizationUser{
		ID:             uuid.NewString(),
		OrganizationID: uuid.NewString(),
		UserID:         uuid.NewString(),
		Role:           "member",
	}).Error)

	orgIDs, err := repo.OrganizationIDsForUser(ctx, userID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{orgA, orgB}, orgIDs)
}
