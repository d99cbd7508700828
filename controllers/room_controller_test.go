package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/services"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.BookingRoom{},
		&models.Message{},
	))
	return db
}

func newAvailabilityRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	rc := NewRoomController(services.NewRoomService(db))
	r := gin.New()
	r.GET("/api/rooms/availability", rc.GetAvailability)
	return r
}

func get(r *gin.Engine, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetAvailability_ParameterValidation(t *testing.T) {
	r := newAvailabilityRouter(newTestDB(t))

	w := get(r, "/api/rooms/availability")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/api/rooms/availability?startDate=not-a-date&endDate=2025-01-14")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Reversed and equal ranges are usage errors, not empty results.
	w = get(r, "/api/rooms/availability?startDate=2025-01-14&endDate=2025-01-12")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/api/rooms/availability?startDate=2025-01-12&endDate=2025-01-12")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(r, "/api/rooms/availability?startDate=2025-01-12&endDate=2025-01-14&available=maybe")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAvailability_FiltersBookedRooms(t *testing.T) {
	db := newTestDB(t)
	r := newAvailabilityRouter(db)

	roles := []models.Role{{Base: models.Base{ID: "1"}, Name: models.RoleUser}}
	require.NoError(t, db.Create(&roles).Error)
	user := models.User{Email: "guest@example.com", Username: "guest", HashedPassword: "x", RoleID: "1"}
	require.NoError(t, db.Create(&user).Error)

	booked := models.Room{Price: 500, Clean: true}
	free := models.Room{Price: 700, Clean: true}
	require.NoError(t, db.Create(&booked).Error)
	require.NoError(t, db.Create(&free).Error)

	bookings := services.NewBookingService(db, nil)
	_, err := bookings.Create(services.BookingInput{
		Adults:       1,
		OccupiedFrom: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		OccupiedTill: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		RoomIDs:      []string{booked.ID},
		UserID:       user.ID,
	})
	require.NoError(t, err)

	w := get(r, "/api/rooms/availability?startDate=2025-01-12&endDate=2025-01-14")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), free.ID)
	assert.NotContains(t, w.Body.String(), booked.ID)

	w = get(r, "/api/rooms/availability?startDate=2025-01-12&endDate=2025-01-14&available=false")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), booked.ID)
	assert.NotContains(t, w.Body.String(), free.ID)

	// Touching the booking's end is not an overlap.
	w = get(r, "/api/rooms/availability?startDate=2025-01-15&endDate=2025-01-16")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), booked.ID)
	assert.Contains(t, w.Body.String(), free.ID)
}

func TestGetAvailability_EmptyResultMessages(t *testing.T) {
	db := newTestDB(t)
	r := newAvailabilityRouter(db)

	// No rooms at all: the "available" list is empty, which is a message,
	// not an error.
	w := get(r, "/api/rooms/availability?startDate=2025-01-12&endDate=2025-01-14")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable in the specified date range")

	w = get(r, "/api/rooms/availability?startDate=2025-01-12&endDate=2025-01-14&available=false")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "All rooms are available")
}
