package services

import (
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"innovation-registry-api/config"
	"innovation-registry-api/models"
)

// Swap point for tests.
var sendMailFunc = config.SendMail

// sendMailSafe delivers best-effort email: a failed send is logged and
// swallowed, it never changes the outcome of the operation that triggered it.
func sendMailSafe(to []string, subject, html string) {
	if err := sendMailFunc(to, subject, html); err != nil {
		log.Printf("notification email send failed (subject=%q to=%v): %v", subject, to, err)
	}
}

// notifySubmissionReceived alerts every administrator about a new pending
// submission, via in-app notification rows and one email. Both channels are
// best effort.
func (s *SubmissionService) notifySubmissionReceived(submission *models.Submission) {
	admins, err := s.loadAdmins()
	if err != nil {
		log.Printf("notification skipped, failed to load admins: %v", err)
		return
	}

	title := fmt.Sprintf("New %s submission", submission.Kind)
	message := fmt.Sprintf("%s registered %q and is awaiting review.", submission.Name, submission.ProjectTitle)
	s.createNotifications(admins, title, message, "info", submission.SubmissionID)

	sendMailSafe(adminEmails(admins), title, buildNotificationEmailHTML(title, "Administrator", message))
}

// notifyModerated records the decision for administrators and emails the
// submitter. Each channel fails independently without affecting the other or
// the already-committed status change.
func (s *SubmissionService) notifyModerated(submission *models.Submission) {
	notifType := "success"
	decision := "approved and published to the public listing"
	if submission.Status == models.StatusRejected {
		notifType = "warning"
		decision = "rejected"
	}

	title := fmt.Sprintf("Submission %s", submission.Status)
	message := fmt.Sprintf("Submission %q by %s was %s.", submission.ProjectTitle, submission.Name, decision)

	if admins, err := s.loadAdmins(); err != nil {
		log.Printf("notification skipped, failed to load admins: %v", err)
	} else {
		s.createNotifications(admins, title, message, notifType, submission.SubmissionID)
	}

	body := fmt.Sprintf("Your %s registration %q has been %s.", submission.Kind, submission.ProjectTitle, decision)
	if submission.ModerationNote != nil && strings.TrimSpace(*submission.ModerationNote) != "" {
		body += "\n\nReviewer note: " + strings.TrimSpace(*submission.ModerationNote)
	}
	sendMailSafe([]string{submission.Email}, title, buildNotificationEmailHTML(title, submission.Name, body))
}

func (s *SubmissionService) loadAdmins() ([]models.User, error) {
	var admins []models.User
	err := s.db.
		Where("role_id = ? AND delete_at IS NULL", models.RoleAdmin).
		Find(&admins).Error
	return admins, err
}

func (s *SubmissionService) createNotifications(users []models.User, title, message, notifType string, submissionID uint) {
	for _, user := range users {
		n := models.Notification{
			UserID:              user.UserID,
			Title:               title,
			Message:             message,
			Type:                notifType,
			RelatedSubmissionID: &submissionID,
			IsRead:              false,
			CreateAt:            time.Now(),
		}
		if err := s.db.Create(&n).Error; err != nil {
			log.Printf("in-app notification create failed (user=%d): %v", user.UserID, err)
		}
	}
}

func adminEmails(admins []models.User) []string {
	emails := make([]string, 0, len(admins))
	for _, admin := range admins {
		if strings.TrimSpace(admin.Email) != "" {
			emails = append(emails, admin.Email)
		}
	}
	return emails
}

func buildNotificationEmailHTML(subject, recipientName, message string) string {
	name := strings.TrimSpace(recipientName)
	if name == "" {
		name = "there"
	}

	escapedSubject := template.HTMLEscapeString(subject)
	escapedGreeting := template.HTMLEscapeString(fmt.Sprintf("Dear %s,", name))
	escapedMessage := template.HTMLEscapeString(strings.TrimSpace(message))
	escapedMessage = strings.ReplaceAll(strings.ReplaceAll(escapedMessage, "\r\n", "\n"), "\r", "\n")
	escapedMessage = strings.ReplaceAll(escapedMessage, "\n", "<br />")

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
</head>
<body style="margin:0;padding:0;background-color:#f9fafb;font-family:'Segoe UI',Tahoma,Arial,sans-serif;">
<div style="max-width:640px;margin:0 auto;padding:24px 20px;">
  <div style="background-color:#ffffff;border:1px solid #e5e7eb;border-radius:12px;padding:24px 24px 28px 24px;">
    <p style="margin:0 0 16px 0;font-size:16px;line-height:1.7;color:#111827;">%s</p>
    <p style="margin:0 0 0 0;font-size:16px;line-height:1.7;color:#111827;word-break:break-word;">%s</p>
  </div>
</div>
</body>
</html>`, escapedSubject, escapedGreeting, escapedMessage)
}
