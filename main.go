package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/config"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/controllers"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/routes"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/services"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	db := config.DB
	log.Println("database connection established, migrations applied")

	clock := utils.UTCClock{}
	tokens := utils.NewTokenServiceFromEnv()

	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db, clock)
	userService := services.NewUserService(db, clock)
	messageService := services.NewMessageService(db)

	roomController := controllers.NewRoomController(roomService)
	bookingController := controllers.NewBookingController(bookingService)
	userController := controllers.NewUserController(userService, tokens)
	messageController := controllers.NewMessageController(messageService)
	statusController := controllers.NewStatusController(db)

	router := routes.SetupRouter(
		roomController,
		bookingController,
		userController,
		messageController,
		statusController,
		tokens,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt, then shut down with a deadline.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server stopped gracefully")
}
