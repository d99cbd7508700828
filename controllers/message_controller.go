package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/middleware"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/services"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/utils"
)

// Messages are stored and served here; pushing them to connected clients is
// the frontend's concern.
type MessageController struct {
	messages *services.MessageService
}

func NewMessageController(messages *services.MessageService) *MessageController {
	return &MessageController{messages: messages}
}

// GET /api/messages
func (mc *MessageController) GetMessages(c *gin.Context) {
	messages, err := mc.messages.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GET /api/messages/:id
func (mc *MessageController) GetMessage(c *gin.Context) {
	message, err := mc.messages.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			utils.JSONError(c, http.StatusNotFound, "message not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load message")
		return
	}
	c.JSON(http.StatusOK, message)
}

// GET /api/messages/by-user?userId=...
//
// Callers may only read their own messages unless they are staff.
func (mc *MessageController) GetMessagesByUser(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		utils.JSONError(c, http.StatusBadRequest, "userId is required")
		return
	}

	callerID, _ := middleware.CallerID(c)
	role := c.GetString(middleware.ContextRole)
	if callerID != userID && role != models.RoleAdmin {
		utils.JSONError(c, http.StatusForbidden, "cannot read another user's messages")
		return
	}

	messages, err := mc.messages.ForUser(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

type createMessageRequest struct {
	DestinationID *string `json:"destinationId"`
	Content       string  `json:"content" binding:"required"`
}

// POST /api/messages
func (mc *MessageController) CreateMessage(c *gin.Context) {
	senderID, ok := middleware.CallerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "no user identity in token")
		return
	}

	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	message, err := mc.messages.Create(senderID, req.DestinationID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "destination user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to save message")
		return
	}
	c.JSON(http.StatusCreated, message)
}

// DELETE /api/messages/:id
func (mc *MessageController) DeleteMessage(c *gin.Context) {
	if err := mc.messages.Delete(c.Param("id")); err != nil {
		if errors.Is(err, services.ErrMessageNotFound) {
			utils.JSONError(c, http.StatusNotFound, "message not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete message")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "message deleted")
}
