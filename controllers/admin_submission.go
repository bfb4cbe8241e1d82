package controllers

import (
	"net/http"
	"strconv"

	"innovation-registry-api/config"
	"innovation-registry-api/models"
	"innovation-registry-api/services"

	"github.com/gin-gonic/gin"
)

// AdminListSubmissions returns submissions for the review queue, newest
// first, optionally filtered by kind and status.
func AdminListSubmissions(c *gin.Context) {
	limit := parseIntOrDefault(c.Query("limit"), 50)
	offset := parseIntOrDefault(c.Query("offset"), 0)

	query := config.DB.Model(&models.Submission{})
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch submissions"})
		return
	}

	var submissions []models.Submission
	if err := query.Preload("Image").
		Order("create_at DESC, submission_id DESC").
		Limit(limit).Offset(offset).
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    submissions,
		"paging": gin.H{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}

// GetSubmissionDetails returns one submission with its attachments.
func GetSubmissionDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid submission ID"})
		return
	}

	var submission models.Submission
	if err := config.DB.
		Preload("Image").
		Preload("ProjectFiles.ProjectFile").
		First(&submission, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "submission": submission})
}

// ApproveSubmission publishes a submission to the public listing.
func ApproveSubmission(c *gin.Context) {
	moderateSubmission(c, models.StatusApproved)
}

// RejectSubmission marks a submission as rejected.
func RejectSubmission(c *gin.Context) {
	moderateSubmission(c, models.StatusRejected)
}

func moderateSubmission(c *gin.Context, status string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid submission ID"})
		return
	}

	var req struct {
		Note   string `json:"note"`
		Reason string `json:"reason"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request data"})
			return
		}
	}
	note := req.Note
	if note == "" {
		note = req.Reason
	}

	svc := services.NewSubmissionService(nil, nil, nil)
	submission, err := svc.Moderate(c.Request.Context(), uint(id), status, note)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Submission " + status,
		"submission": submission,
	})
}

// DeleteSubmission removes a submission, its attachment rows and the stored
// objects behind them.
func DeleteSubmission(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid submission ID"})
		return
	}

	svc := services.NewSubmissionService(nil, nil, nil)
	if err := svc.Delete(c.Request.Context(), uint(id)); err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Submission deleted successfully"})
}
