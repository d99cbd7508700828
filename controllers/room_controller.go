package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/services"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/utils"
)

type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

// Accepted timestamp layouts for the availability query, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// GET /api/rooms
func (rc *RoomController) GetRooms(c *gin.Context) {
	rooms, err := rc.rooms.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load rooms")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /api/rooms/availability?startDate=...&endDate=...&available=bool
//
// Answers the room list, or an informational message when the list is empty.
// An empty result is not an error; a reversed date range is.
func (rc *RoomController) GetAvailability(c *gin.Context) {
	rawStart := c.Query("startDate")
	rawEnd := c.Query("endDate")
	if rawStart == "" || rawEnd == "" {
		utils.JSONError(c, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	start, err := parseDate(rawStart)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid startDate")
		return
	}
	end, err := parseDate(rawEnd)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid endDate")
		return
	}

	available := true
	if raw := c.Query("available"); raw != "" {
		available, err = strconv.ParseBool(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid available flag")
			return
		}
	}

	rooms, err := rc.rooms.FindByAvailability(start, end, available)
	if err != nil {
		if errors.Is(err, services.ErrInvalidDateRange) {
			utils.JSONError(c, http.StatusBadRequest, "startDate must be earlier than endDate")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to query availability")
		return
	}

	if len(rooms) == 0 {
		if available {
			c.String(http.StatusOK, "All rooms are unavailable in the specified date range.")
		} else {
			c.String(http.StatusOK, "All rooms are available in the specified date range.")
		}
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /api/rooms/clean and /api/rooms/unclean
func (rc *RoomController) GetCleanRooms(c *gin.Context) {
	rc.listByCleanliness(c, true)
}

func (rc *RoomController) GetUncleanRooms(c *gin.Context) {
	rc.listByCleanliness(c, false)
}

func (rc *RoomController) listByCleanliness(c *gin.Context, clean bool) {
	rooms, err := rc.rooms.GetByCleanliness(clean)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load rooms")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// GET /api/rooms/:id
func (rc *RoomController) GetRoom(c *gin.Context) {
	room, err := rc.rooms.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load room")
		return
	}
	c.JSON(http.StatusOK, room)
}

type roomRequest struct {
	Beds        int     `json:"beds"`
	KingBeds    int     `json:"kingBeds"`
	QueenBeds   int     `json:"queenBeds"`
	TwinBeds    int     `json:"twinBeds"`
	Size        int     `json:"size"`
	TV          int     `json:"tv"`
	Bathroom    bool    `json:"bathroom"`
	WiFi        bool    `json:"wifi"`
	Fridge      bool    `json:"fridge"`
	Stove       bool    `json:"stove"`
	Oven        bool    `json:"oven"`
	Microwave   bool    `json:"microwave"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
}

// POST /api/rooms
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	room := req.toModel()
	if err := rc.rooms.Create(&room); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create room")
		return
	}
	c.JSON(http.StatusCreated, room)
}

// PUT /api/rooms/:id
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	if err := rc.rooms.Update(c.Param("id"), fields); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update room")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "room updated")
}

// DELETE /api/rooms/:id
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	if err := rc.rooms.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, "room not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete room")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "room deleted")
}

// PATCH /api/rooms/:id/clean and /api/rooms/:id/unclean
func (rc *RoomController) CleanRoom(c *gin.Context) {
	rc.setClean(c, true)
}

func (rc *RoomController) UncleanRoom(c *gin.Context) {
	rc.setClean(c, false)
}

func (rc *RoomController) setClean(c *gin.Context, clean bool) {
	room, err := rc.rooms.SetClean(c.Param("id"), clean)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"id": room.ID, "clean": room.Clean})
	case errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, "room not found")
	case errors.Is(err, services.ErrCleanUnchanged):
		state := "unclean"
		if clean {
			state = "clean"
		}
		utils.JSONError(c, http.StatusBadRequest, "room already marked "+state)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "failed to update room")
	}
}

func (r roomRequest) toModel() (room models.Room) {
	room.Beds = r.Beds
	if room.Beds == 0 {
		room.Beds = r.KingBeds + r.QueenBeds + r.TwinBeds
	}
	room.KingBeds = r.KingBeds
	room.QueenBeds = r.QueenBeds
	room.TwinBeds = r.TwinBeds
	room.Size = r.Size
	room.TV = r.TV
	room.Bathroom = r.Bathroom
	room.WiFi = r.WiFi
	room.Fridge = r.Fridge
	room.Stove = r.Stove
	room.Oven = r.Oven
	room.Microwave = r.Microwave
	room.Price = r.Price
	room.Description = r.Description
	room.Clean = true
	return room
}
