package routes

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/controllers"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/middleware"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/utils"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	rc *controllers.RoomController,
	bc *controllers.BookingController,
	uc *controllers.UserController,
	mc *controllers.MessageController,
	sc *controllers.StatusController,
	tokens *utils.TokenService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(), middleware.Metrics())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middleware.Auth(tokens)
	staff := middleware.RequireRoles(models.StaffRoles()...)
	cleaningView := middleware.RequireRoles(models.RoleCleaningStaff, models.RoleAdmin, models.RoleReception)
	cleaningEdit := middleware.RequireRoles(models.RoleCleaningStaff, models.RoleAdmin)

	api := r.Group("/api")
	{
		api.GET("/status", sc.GetStatus)

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/availability", rc.GetAvailability)

			// Fixed paths before /:id so they don't collide.
			rooms.GET("/clean", auth, cleaningView, rc.GetCleanRooms)
			rooms.GET("/unclean", auth, cleaningView, rc.GetUncleanRooms)

			rooms.GET("/:id", rc.GetRoom)
			rooms.POST("", auth, staff, rc.CreateRoom)
			rooms.PUT("/:id", auth, staff, rc.UpdateRoom)
			rooms.PATCH("/:id", auth, staff, rc.UpdateRoom)
			rooms.DELETE("/:id", auth, staff, rc.DeleteRoom)

			rooms.PATCH("/:id/clean", auth, cleaningEdit, rc.CleanRoom)
			rooms.PATCH("/:id/unclean", auth, cleaningEdit, rc.UncleanRoom)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", auth, staff, bc.GetBookings)
			bookings.GET("/details", auth, staff, bc.GetBookingDetails)
			bookings.POST("", auth, middleware.RequireRoles(models.RoleUser), bc.CreateBooking)
			bookings.GET("/:id", auth, bc.GetBooking)
			bookings.POST("/:id/cancel", auth, bc.CancelBooking)
			bookings.DELETE("/:id", auth, bc.DeleteBooking)
		}

		bookingRooms := api.Group("/bookings-rooms", auth, staff)
		{
			bookingRooms.GET("", bc.GetBookingRooms)
			bookingRooms.GET("/:id", bc.GetBookingRoom)
			bookingRooms.DELETE("/:id", bc.DeleteBookingRoom)
		}

		users := api.Group("/users")
		{
			users.POST("/register", uc.Register)
			users.POST("/login", uc.Login)
			users.GET("/me", auth, uc.GetCurrentUser)
			users.GET("", auth, staff, uc.GetUsers)
			users.GET("/:id", auth, staff, uc.GetUser)
			users.PUT("/:id", auth, staff, uc.UpdateUser)
			users.DELETE("/:id", auth, staff, uc.DeleteUser)
			users.PATCH("/role/:id", auth, middleware.RequireRoles(models.RoleAdmin), uc.ChangeRole)
		}

		messages := api.Group("/messages")
		{
			messages.GET("", auth, middleware.RequireRoles(models.RoleAdmin), mc.GetMessages)
			messages.GET("/by-user", auth, mc.GetMessagesByUser)
			messages.GET("/:id", auth, middleware.RequireRoles(models.RoleAdmin), mc.GetMessage)
			messages.POST("", auth, mc.CreateMessage)
			messages.DELETE("/:id", auth, middleware.RequireRoles(models.RoleAdmin), mc.DeleteMessage)
		}
	}

	return r
}
