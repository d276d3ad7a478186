package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var apiResources = []string{
	"accounts", "accounts/managers", "accounts/users",
	"buildings", "categories", "services", "orders", "orderhistories", "clients",
}

// Index lists the resource URLs of the API.
func Index(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	base := scheme + "://" + c.Request.Host + "/api/"

	links := make(map[string]string, len(apiResources))
	for _, r := range apiResources {
		links[r] = base + r
	}
	c.JSON(http.StatusOK, links)
}

// Health reports whether the database answers.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
