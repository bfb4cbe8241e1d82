package controllers

import (
	"net/http"

	"innovation-registry-api/services"

	"github.com/gin-gonic/gin"
)

// GetPublicListing serves the moderated public listing. The payload is a
// pre-rendered JSON document from the read-through cache.
func GetPublicListing(c *gin.Context) {
	svc := services.NewListingService(nil, nil)

	payload, err := svc.PublicListing(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch listing"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
}
