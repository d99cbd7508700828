package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/utils"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		// Instants are stored as UTC; never let the driver re-interpret them.
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "hotel_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: newLogger,
		// Store and compare every timestamp as a UTC instant.
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return err
	}

	DB = db

	// Parent tables first so the FK constraints can be created.
	if err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.BookingRoom{},
		&models.Message{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase ensures the fixed role set, a default admin account and a
// starter room inventory exist. Safe to run on every boot.
func SeedDatabase() {
	// ---------------- Roles ----------------
	// Fixed ids so role references stay stable across environments.
	desiredRoles := []models.Role{
		{Base: models.Base{ID: "1"}, Name: models.RoleUser, Description: "Hotel guest"},
		{Base: models.Base{ID: "2"}, Name: models.RoleCleaningStaff, Description: "Housekeeping access"},
		{Base: models.Base{ID: "3"}, Name: models.RoleReception, Description: "Front desk operations"},
		{Base: models.Base{ID: "4"}, Name: models.RoleAdmin, Description: "Full access"},
	}
	for i := range desiredRoles {
		role := desiredRoles[i]
		var existing models.Role
		if err := DB.Where("name = ?", role.Name).First(&existing).Error; err == nil {
			continue
		}
		if err := DB.Create(&role).Error; err != nil {
			log.Printf("warning: failed to seed role %s: %v", role.Name, err)
		}
	}
	log.Println("Roles ensured")

	// ---------------- Admin account ----------------
	var adminCount int64
	DB.Model(&models.User{}).Where("role_id = ?", "4").Count(&adminCount)
	if adminCount == 0 {
		password := utils.EnvOrDefault("ADMIN_PASSWORD", "Admin123!")
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				Email:          utils.EnvOrDefault("ADMIN_EMAIL", "admin@hotel.local"),
				Username:       "Admin",
				HashedPassword: string(hash),
				RoleID:         "4",
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{KingBeds: 1, Size: 28, TV: 1, Bathroom: true, WiFi: true, Price: 495, Clean: true,
				Description: "Standard double with a king bed"},
			{QueenBeds: 1, TwinBeds: 1, Size: 34, TV: 1, Bathroom: true, WiFi: true, Fridge: true, Price: 695, Clean: true,
				Description: "Family room, queen plus twin"},
			{KingBeds: 1, QueenBeds: 1, Size: 46, TV: 2, Bathroom: true, WiFi: true, Fridge: true, Stove: true, Oven: true, Microwave: true, Price: 1195, Clean: true,
				Description: "Suite with a kitchenette"},
			{TwinBeds: 2, Size: 24, TV: 1, Bathroom: true, WiFi: true, Price: 395, Clean: true,
				Description: "Twin room"},
		}
		for i := range rooms {
			rooms[i].Beds = rooms[i].KingBeds + rooms[i].QueenBeds + rooms[i].TwinBeds
		}
		if err := DB.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}
}
