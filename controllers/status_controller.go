package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StatusController struct {
	db *gorm.DB
}

func NewStatusController(db *gorm.DB) *StatusController {
	return &StatusController{db: db}
}

// GET /api/status
func (sc *StatusController) GetStatus(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := sc.db.DB(); err != nil {
		dbStatus = "unavailable"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "unavailable"
	}

	code := http.StatusOK
	if dbStatus != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": "ok", "database": dbStatus})
}
