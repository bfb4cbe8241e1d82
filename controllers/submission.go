package controllers

import (
	"errors"
	"net/http"
	"strings"

	"innovation-registry-api/models"
	"innovation-registry-api/services"
	"innovation-registry-api/utils"

	"github.com/gin-gonic/gin"
)

var allowedStages = map[string]bool{
	models.StageIdea:      true,
	models.StagePrototype: true,
	models.StageLaunched:  true,
	models.StageScaling:   true,
}

// CreateInnovatorSubmission handles the public innovator registration form.
func CreateInnovatorSubmission(c *gin.Context) {
	createSubmission(c, models.KindInnovator)
}

// CreateCollaboratorSubmission handles the public collaborator registration form.
func CreateCollaboratorSubmission(c *gin.Context) {
	createSubmission(c, models.KindCollaborator)
}

func createSubmission(c *gin.Context, kind string) {
	name := utils.SanitizeInput(c.PostForm("name"))
	email := strings.ToLower(utils.SanitizeInput(c.PostForm("email")))
	phone := utils.SanitizeInput(c.PostForm("phone"))
	projectTitle := utils.SanitizeInput(c.PostForm("project_title"))

	if name == "" || projectTitle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "name and project_title are required"})
		return
	}
	if !utils.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid email address", "field": "email"})
		return
	}
	if !utils.ValidatePhone(phone) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid phone number", "field": "phone"})
		return
	}

	stage := utils.SanitizeInput(c.PostForm("stage"))
	if stage != "" && !allowedStages[stage] {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid stage"})
		return
	}

	input := &services.SubmissionInput{
		Kind:         kind,
		Name:         name,
		Email:        email,
		Phone:        phone,
		ProjectTitle: projectTitle,
		Stage:        stage,
	}
	if org := utils.SanitizeInput(c.PostForm("organization")); org != "" {
		input.Organization = &org
	}
	if desc := utils.SanitizeInput(c.PostForm("project_description")); desc != "" {
		input.ProjectDescription = &desc
	}

	if header, err := c.FormFile("image"); err == nil {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unable to read uploaded image"})
			return
		}
		defer file.Close()
		input.Image = &services.AttachmentUpload{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Size:     header.Size,
			Reader:   file,
		}
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		labels := form.Value["file_labels"]
		for i, header := range form.File["files"] {
			file, err := header.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unable to read uploaded file"})
				return
			}
			defer file.Close()
			att := services.AttachmentUpload{
				Filename: header.Filename,
				MimeType: header.Header.Get("Content-Type"),
				Size:     header.Size,
				Reader:   file,
			}
			if i < len(labels) && strings.TrimSpace(labels[i]) != "" {
				label := strings.TrimSpace(labels[i])
				att.Label = &label
			}
			input.Files = append(input.Files, att)
		}
	}

	svc := services.NewSubmissionService(nil, nil, nil)
	submission, err := svc.Submit(c.Request.Context(), input)
	if err != nil {
		respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Submission received and awaiting review",
		"submission": submission,
	})
}

// respondPipelineError maps pipeline errors to HTTP responses. Duplicate
// identity failures stay field-attributable; upload and persistence failures
// collapse into a generic retry message without internal detail.
func respondPipelineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidAttachmentType),
		errors.Is(err, services.ErrAttachmentTooLarge),
		errors.Is(err, services.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "field": "email"})
	case errors.Is(err, services.ErrDuplicatePhone):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error(), "field": "phone"})
	case errors.Is(err, services.ErrSubmissionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Submission not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong, please try again"})
	}
}
