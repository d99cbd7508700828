package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room *models.Room) error {
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id string) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return room, ErrRoomNotFound
		}
		return room, err
	}
	return room, nil
}

func (s *RoomService) Update(id string, fields map[string]interface{}) error {
	// Identity and bookkeeping columns are never client-writable.
	delete(fields, "id")
	delete(fields, "created_at")
	delete(fields, "updated_at")

	// Existence is checked up front: MySQL reports changed rows, not matched
	// rows, so a no-op update of identical values would look like a miss.
	room, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.DB.Model(&room).Updates(fields).Error; err != nil {
		return fmt.Errorf("update room %s: %w", id, err)
	}
	return nil
}

func (s *RoomService) Delete(id string) error {
	res := s.DB.Delete(&models.Room{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// GetByCleanliness lists rooms housekeeping still has to visit (or not).
func (s *RoomService) GetByCleanliness(clean bool) ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Where("clean = ?", clean).Find(&rooms).Error
	return rooms, err
}

// SetClean flips the housekeeping flag. Flipping to the current state is an
// error so staff notice double submissions.
func (s *RoomService) SetClean(id string, clean bool) (models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return room, err
	}
	if room.Clean == clean {
		return room, ErrCleanUnchanged
	}
	if err := s.DB.Model(&room).Update("clean", clean).Error; err != nil {
		return room, fmt.Errorf("update room %s clean flag: %w", id, err)
	}
	room.Clean = clean
	return room, nil
}

// FindByAvailability returns the rooms free (or taken) during [start, end).
// A room is taken iff some non-cancelled booking strictly overlaps the query:
// occupied_from < end AND occupied_till > start. Touching endpoints do not
// overlap, so a booking ending exactly at start leaves the room free.
func (s *RoomService) FindByAvailability(start, end time.Time, available bool) ([]models.Room, error) {
	if !start.Before(end) {
		return nil, ErrInvalidDateRange
	}
	start = start.UTC()
	end = end.UTC()

	var occupiedIDs []string
	err := s.DB.Model(&models.BookingRoom{}).
		Distinct("bookings_rooms.room_id").
		Joins("JOIN bookings ON bookings.id = bookings_rooms.booking_id").
		Where("bookings.occupied_from < ? AND bookings.occupied_till > ?", end, start).
		Where("bookings.status <> ?", models.BookingStatusCancelled).
		Pluck("bookings_rooms.room_id", &occupiedIDs).Error
	if err != nil {
		return nil, fmt.Errorf("query occupied rooms: %w", err)
	}

	var rooms []models.Room
	query := s.DB
	switch {
	case available && len(occupiedIDs) > 0:
		query = query.Where("id NOT IN ?", occupiedIDs)
	case !available && len(occupiedIDs) > 0:
		query = query.Where("id IN ?", occupiedIDs)
	case !available:
		// Nothing is occupied, so the "unavailable" set is empty.
		return []models.Room{}, nil
	}
	if err := query.Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("query rooms: %w", err)
	}
	return rooms, nil
}
