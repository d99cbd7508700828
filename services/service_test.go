package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
)

// newTestDB opens a per-test in-memory database. The DSN is named after the
// test so parallel tests never share state, and _fk enables the cascade
// behavior the MySQL schema gets from its FK constraints.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.BookingRoom{},
		&models.Message{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

func seedRoles(t *testing.T, db *gorm.DB) {
	t.Helper()
	roles := []models.Role{
		{Base: models.Base{ID: "1"}, Name: models.RoleUser},
		{Base: models.Base{ID: "2"}, Name: models.RoleCleaningStaff},
		{Base: models.Base{ID: "3"}, Name: models.RoleReception},
		{Base: models.Base{ID: "4"}, Name: models.RoleAdmin},
	}
	if err := db.Create(&roles).Error; err != nil {
		t.Fatalf("seed roles: %v", err)
	}
}

func seedRoom(t *testing.T, db *gorm.DB, price float64) models.Room {
	t.Helper()
	room := models.Room{Beds: 2, KingBeds: 1, Price: price, Clean: true}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}
	return room
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Username: "guest", HashedPassword: "x", RoleID: "1"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func date(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}
