package audit

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))
	return db
}

func TestDispatcherWritesEvents(t *testing.T) {
	db := newTestDB(t)
	d := NewDispatcher(New(db))

	userID := uuid.New()
	d.Dispatch(Event{
		UserID:   UserRef(userID),
		Action:   ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: "abc",
		Metadata: map[string]any{"services": 2},
	})
	d.Dispatch(Event{Action: ActionShopReplaced, Entity: "shop"})
	d.Close()

	var logs []models.AuditLog
	require.NoError(t, db.Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)

	assert.Equal(t, ActionAppointmentCreated, logs[0].Action)
	require.NotNil(t, logs[0].UserID)
	assert.Equal(t, userID, *logs[0].UserID)
	assert.JSONEq(t, `{"services":2}`, logs[0].Metadata)

	assert.Nil(t, logs[1].UserID)
	assert.Empty(t, logs[1].Metadata)
}

func TestUserRef(t *testing.T) {
	assert.Nil(t, UserRef(uuid.Nil))
	id := uuid.New()
	assert.Equal(t, id, *UserRef(id))
}
