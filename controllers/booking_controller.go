package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/middleware"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/services"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/utils"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

type createBookingRequest struct {
	Adults      int  `json:"adults" binding:"required,min=1"`
	Children    int  `json:"children"`
	RoomService bool `json:"roomService"`
	Breakfast   bool `json:"breakfast"`
	Dinner      bool `json:"dinner"`

	OccupiedFrom time.Time `json:"occupiedFrom" binding:"required"`
	OccupiedTill time.Time `json:"occupiedTill" binding:"required"`

	RoomIDs    []string `json:"roomIds" binding:"required,min=1"`
	GuestNames []string `json:"guestNames"`
}

// POST /api/bookings
//
// The acting user comes from the bearer token, never from the body. Room
// lookups, the availability conflict check and all inserts run inside one
// transaction; a failure leaves nothing behind.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "no user identity in token")
		return
	}

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	booking, err := bc.bookings.Create(services.BookingInput{
		Adults:       req.Adults,
		Children:     req.Children,
		RoomService:  req.RoomService,
		Breakfast:    req.Breakfast,
		Dinner:       req.Dinner,
		OccupiedFrom: req.OccupiedFrom,
		OccupiedTill: req.OccupiedTill,
		RoomIDs:      req.RoomIDs,
		GuestNames:   req.GuestNames,
		UserID:       userID,
	})
	if err != nil {
		bc.writeCreateError(c, err)
		return
	}

	log.Printf("booking %s created for user %s (%d rooms)", booking.ID, userID, len(req.RoomIDs))
	c.JSON(http.StatusCreated, gin.H{
		"message": "booking created",
		"booking": booking,
	})
}

func (bc *BookingController) writeCreateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrNoAdults),
		errors.Is(err, services.ErrNoRoomsSelected):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRoomUnavailable),
		errors.Is(err, services.ErrDuplicateBooking):
		utils.JSONError(c, http.StatusConflict, err.Error())
	default:
		log.Printf("booking creation failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to save booking")
	}
}

// GET /api/bookings
func (bc *BookingController) GetBookings(c *gin.Context) {
	bookings, err := bc.bookings.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/details
func (bc *BookingController) GetBookingDetails(c *gin.Context) {
	details, err := bc.bookings.Details()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute booking details")
		return
	}
	c.JSON(http.StatusOK, details)
}

// GET /api/bookings/:id
//
// Guests may read their own bookings; staff may read any.
func (bc *BookingController) GetBooking(c *gin.Context) {
	booking, err := bc.bookings.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	if !bc.mayAccess(c, booking) {
		utils.JSONError(c, http.StatusForbidden, "not your booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// POST /api/bookings/:id/cancel
//
// Guests may cancel their own bookings; staff may cancel any.
func (bc *BookingController) CancelBooking(c *gin.Context) {
	booking, err := bc.bookings.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	if !bc.mayAccess(c, booking) {
		utils.JSONError(c, http.StatusForbidden, "not your booking")
		return
	}

	booking, err = bc.bookings.Cancel(booking.ID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "booking cancelled", "booking": booking})
	case errors.Is(err, services.ErrAlreadyCancelled):
		utils.JSONError(c, http.StatusBadRequest, "booking is already cancelled")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "failed to cancel booking")
	}
}

// DELETE /api/bookings/:id
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	booking, err := bc.bookings.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking")
		return
	}
	if !bc.mayAccess(c, booking) {
		utils.JSONError(c, http.StatusForbidden, "not your booking")
		return
	}

	if err := bc.bookings.Delete(booking.ID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete booking")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "booking deleted")
}

// mayAccess is the owner-or-staff rule shared by read, cancel and delete.
func (bc *BookingController) mayAccess(c *gin.Context, booking models.Booking) bool {
	role := c.GetString(middleware.ContextRole)
	if role == models.RoleAdmin || role == models.RoleReception {
		return true
	}
	callerID, _ := middleware.CallerID(c)
	return callerID == booking.UserID
}

// GET /api/bookings-rooms
func (bc *BookingController) GetBookingRooms(c *gin.Context) {
	links, err := bc.bookings.GetRoomLinks()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking rooms")
		return
	}
	c.JSON(http.StatusOK, links)
}

// GET /api/bookings-rooms/:id
func (bc *BookingController) GetBookingRoom(c *gin.Context) {
	link, err := bc.bookings.GetRoomLink(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrLinkNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking-room link not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load booking room")
		return
	}
	c.JSON(http.StatusOK, link)
}

// DELETE /api/bookings-rooms/:id
func (bc *BookingController) DeleteBookingRoom(c *gin.Context) {
	if err := bc.bookings.DeleteRoomLink(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrLinkNotFound) {
			utils.JSONError(c, http.StatusNotFound, "booking-room link not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete booking room")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "booking-room link deleted")
}
