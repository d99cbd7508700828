package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/middleware"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/services"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/utils"
)

type UserController struct {
	users  *services.UserService
	tokens *utils.TokenService
}

func NewUserController(users *services.UserService, tokens *utils.TokenService) *UserController {
	return &UserController{users: users, tokens: tokens}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func userSummary(user *models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role.Name,
	}
}

// POST /api/users/register
func (uc *UserController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	user, err := uc.users.Register(req.Email, req.Username, req.Password)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"message": "user created", "user": userSummary(user)})
	case errors.Is(err, services.ErrWeakPassword):
		utils.JSONError(c, http.StatusBadRequest,
			"password must be at least 8 characters with upper- and lower-case letters, a digit and a special character")
	case errors.Is(err, services.ErrEmailTaken):
		utils.JSONError(c, http.StatusBadRequest, "a user with this email already exists")
	default:
		log.Printf("register failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to register user")
	}
}

// POST /api/users/login
func (uc *UserController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	user, err := uc.users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "incorrect email or password")
			return
		}
		log.Printf("login failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to log in")
		return
	}

	token, err := uc.tokens.Generate(user, user.Role.Name)
	if err != nil {
		log.Printf("token generation failed for user %s: %v", user.ID, err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	log.Printf("user %s logged in", user.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   token,
		"user":    userSummary(user),
	})
}

// GET /api/users/me
func (uc *UserController) GetCurrentUser(c *gin.Context) {
	userID, ok := middleware.CallerID(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "no user identity in token")
		return
	}

	user, err := uc.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// GET /api/users
func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.users.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load users")
		return
	}
	c.JSON(http.StatusOK, users)
}

// GET /api/users/:id
func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.users.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Username string `json:"username"`
}

// PUT /api/users/:id
func (uc *UserController) UpdateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	user, err := uc.users.Update(c.Param("id"), req.Email, req.Username)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, user)
	case errors.Is(err, services.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "user not found")
	case errors.Is(err, services.ErrEmailTaken):
		utils.JSONError(c, http.StatusBadRequest, "a user with this email already exists")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "failed to update user")
	}
}

// DELETE /api/users/:id
func (uc *UserController) DeleteUser(c *gin.Context) {
	user, err := uc.users.Delete(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted", "user": userSummary(&user)})
}

type changeRoleRequest struct {
	RoleName string `json:"roleName" binding:"required"`
}

// PATCH /api/users/role/:id
func (uc *UserController) ChangeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	user, err := uc.users.ChangeRole(c.Param("id"), req.RoleName)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "role updated", "user": userSummary(&user)})
	case errors.Is(err, services.ErrUserNotFound):
		utils.JSONError(c, http.StatusNotFound, "user not found")
	case errors.Is(err, services.ErrRoleNotFound):
		utils.JSONError(c, http.StatusBadRequest, "role not found: "+req.RoleName)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "failed to change role")
	}
}
