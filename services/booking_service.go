package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/utils"
)

// Nightly base rate and flat add-on prices, in the hotel's display currency.
const (
	nightlyRate     = 495
	roomServiceRate = 195
	breakfastRate   = 100
	dinnerRate      = 295
)

type BookingService struct {
	DB    *gorm.DB
	Clock utils.Clock
}

func NewBookingService(db *gorm.DB, clock utils.Clock) *BookingService {
	if clock == nil {
		clock = utils.UTCClock{}
	}
	return &BookingService{DB: db, Clock: clock}
}

// BookingInput is everything needed to create a booking. UserID comes from
// the caller's token, never from the request body.
type BookingInput struct {
	Adults      int
	Children    int
	RoomService bool
	Breakfast   bool
	Dinner      bool

	OccupiedFrom time.Time
	OccupiedTill time.Time

	RoomIDs    []string
	GuestNames []string
	UserID     string
}

// Create validates the input, then writes the booking and one bookings_rooms
// row per selected room in a single transaction. Any failure rolls the whole
// set back: there is never a booking without its room links or vice versa.
//
// Overlap with an existing non-cancelled booking for any selected room aborts
// with ErrRoomUnavailable. MySQL has no exclusion constraints, so concurrent
// transactions racing past this check can still double-book; the window is
// the transaction itself.
func (s *BookingService) Create(in BookingInput) (*models.Booking, error) {
	if in.Adults < 1 {
		return nil, ErrNoAdults
	}
	if !in.OccupiedFrom.Before(in.OccupiedTill) {
		return nil, ErrInvalidDateRange
	}
	if len(in.RoomIDs) == 0 {
		return nil, ErrNoRoomsSelected
	}

	// A repeated room id must not produce a second join row or a second
	// nightly charge for the same room.
	roomIDs := make([]string, 0, len(in.RoomIDs))
	seen := make(map[string]struct{}, len(in.RoomIDs))
	for _, id := range in.RoomIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		roomIDs = append(roomIDs, id)
	}

	from := in.OccupiedFrom.UTC()
	till := in.OccupiedTill.UTC()

	var guestNames datatypes.JSON
	if len(in.GuestNames) > 0 {
		raw, err := json.Marshal(in.GuestNames)
		if err != nil {
			return nil, fmt.Errorf("encode guest names: %w", err)
		}
		guestNames = raw
	}

	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		rooms := make([]models.Room, 0, len(roomIDs))
		for _, roomID := range roomIDs {
			var room models.Room
			if err := tx.First(&room, "id = ?", roomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
				}
				return fmt.Errorf("load room %s: %w", roomID, err)
			}
			rooms = append(rooms, room)
		}

		for _, room := range rooms {
			var overlapping int64
			err := tx.Model(&models.BookingRoom{}).
				Joins("JOIN bookings ON bookings.id = bookings_rooms.booking_id").
				Where("bookings_rooms.room_id = ?", room.ID).
				Where("bookings.occupied_from < ? AND bookings.occupied_till > ?", till, from).
				Where("bookings.status <> ?", models.BookingStatusCancelled).
				Count(&overlapping).Error
			if err != nil {
				return fmt.Errorf("check availability of room %s: %w", room.ID, err)
			}
			if overlapping > 0 {
				return fmt.Errorf("%w: %s", ErrRoomUnavailable, room.ID)
			}
		}

		booking = models.Booking{
			Adults:       in.Adults,
			Children:     in.Children,
			RoomService:  in.RoomService,
			Breakfast:    in.Breakfast,
			Dinner:       in.Dinner,
			OccupiedFrom: from,
			OccupiedTill: till,
			Status:       models.BookingStatusPending,
			UserID:       in.UserID,
			GuestNames:   guestNames,
			TotalPrice:   totalPrice(rooms, in, from, till),
		}
		if err := tx.Create(&booking).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateBooking
			}
			return fmt.Errorf("create booking: %w", err)
		}

		links := make([]models.BookingRoom, 0, len(rooms))
		for _, room := range rooms {
			links = append(links, models.BookingRoom{BookingID: booking.ID, RoomID: room.ID})
		}
		if err := tx.Create(&links).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrDuplicateBooking
			}
			return fmt.Errorf("create booking rooms: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func totalPrice(rooms []models.Room, in BookingInput, from, till time.Time) float64 {
	nights := int(math.Ceil(till.Sub(from).Hours() / 24))
	if nights < 1 {
		nights = 1
	}

	price := float64(nights * nightlyRate)
	if in.RoomService {
		price += roomServiceRate
	}
	if in.Breakfast {
		price += breakfastRate
	}
	if in.Dinner {
		price += dinnerRate
	}
	for _, room := range rooms {
		price += room.Price * float64(nights)
	}
	return price
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") || strings.Contains(msg, "unique constraint")
}

func (s *BookingService) GetAll() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Rooms").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) GetByID(id string) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Rooms.Room").First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return booking, ErrBookingNotFound
		}
		return booking, err
	}
	return booking, nil
}

// Cancel flips the booking to cancelled, which releases its rooms for the
// availability filter. The row itself stays for the guest's history.
func (s *BookingService) Cancel(id string) (models.Booking, error) {
	booking, err := s.GetByID(id)
	if err != nil {
		return booking, err
	}
	if booking.Status == models.BookingStatusCancelled {
		return booking, ErrAlreadyCancelled
	}
	if err := s.DB.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
		return booking, fmt.Errorf("cancel booking %s: %w", id, err)
	}
	booking.Status = models.BookingStatusCancelled
	return booking, nil
}

// Delete removes the booking; its bookings_rooms rows go with it via the
// foreign-key cascade.
func (s *BookingService) Delete(id string) error {
	res := s.DB.Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// BookingDetails aggregates the numbers the reception dashboard shows.
type BookingDetails struct {
	TotalBookings          int     `json:"totalBookings"`
	TotalAdults            int     `json:"totalAdults"`
	TotalChildren          int     `json:"totalChildren"`
	TotalBookedRooms       int     `json:"totalBookedRooms"`
	TotalBookedDays        int     `json:"totalBookedDays"`
	TotalRoomService       int     `json:"totalRoomService"`
	TotalBreakfast         int     `json:"totalBreakfast"`
	TotalDinner            int     `json:"totalDinner"`
	TotalActiveBookings    int     `json:"totalActiveBookings"`
	TotalInactiveBookings  int     `json:"totalInactiveBookings"`
	TotalActiveBookedRooms int     `json:"totalActiveBookedRooms"`
	TotalBookingsPrice     float64 `json:"totalBookingsPrice"`
	AvgPrice               float64 `json:"avgPrice"`
	HighestPrice           float64 `json:"highestPrice"`
	LowestPrice            float64 `json:"lowestPrice"`
}

// Details computes booking statistics. A booking is active while its interval
// has not ended and it is not cancelled.
func (s *BookingService) Details() (BookingDetails, error) {
	var details BookingDetails

	var bookings []models.Booking
	if err := s.DB.Preload("Rooms").Find(&bookings).Error; err != nil {
		return details, fmt.Errorf("load bookings: %w", err)
	}

	now := s.Clock.Now()
	for i, b := range bookings {
		details.TotalBookings++
		details.TotalAdults += b.Adults
		details.TotalChildren += b.Children
		details.TotalBookedRooms += len(b.Rooms)
		details.TotalBookedDays += int(math.Ceil(b.OccupiedTill.Sub(b.OccupiedFrom).Hours() / 24))
		if b.RoomService {
			details.TotalRoomService++
		}
		if b.Breakfast {
			details.TotalBreakfast++
		}
		if b.Dinner {
			details.TotalDinner++
		}

		active := b.Status != models.BookingStatusCancelled && b.OccupiedTill.After(now)
		if active {
			details.TotalActiveBookings++
			details.TotalActiveBookedRooms += len(b.Rooms)
		} else {
			details.TotalInactiveBookings++
		}

		details.TotalBookingsPrice += b.TotalPrice
		if i == 0 || b.TotalPrice > details.HighestPrice {
			details.HighestPrice = b.TotalPrice
		}
		if i == 0 || b.TotalPrice < details.LowestPrice {
			details.LowestPrice = b.TotalPrice
		}
	}
	if details.TotalBookings > 0 {
		details.AvgPrice = details.TotalBookingsPrice / float64(details.TotalBookings)
	}
	return details, nil
}

// Join-row surface. Links are read and deleted here but only ever created by
// the booking transaction above.

func (s *BookingService) GetRoomLinks() ([]models.BookingRoom, error) {
	var links []models.BookingRoom
	err := s.DB.Find(&links).Error
	return links, err
}

func (s *BookingService) GetRoomLink(id string) (models.BookingRoom, error) {
	var link models.BookingRoom
	err := s.DB.First(&link, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return link, ErrLinkNotFound
		}
		return link, err
	}
	return link, nil
}

func (s *BookingService) DeleteRoomLink(id string) error {
	res := s.DB.Delete(&models.BookingRoom{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLinkNotFound
	}
	return nil
}
