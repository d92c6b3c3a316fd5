package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"

	"github.com/Nguyeniris123/JobApp/models"
	"gorm.io/gorm"
)

// Mailer sends a best-effort broadcast; delivery failures are swallowed by
// callers, never retried.
type Mailer interface {
	Send(subject, body string, recipients []string) error
}

// SMTPMailer sends mail through the server configured by SMTP_HOST,
// SMTP_PORT, SMTP_USER, SMTP_PASSWORD and EMAIL_SEND.
type SMTPMailer struct{}

func (m *SMTPMailer) Send(subject, body string, recipients []string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	password := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("EMAIL_SEND")

	if host == "" || from == "" {
		return fmt.Errorf("SMTP_HOST and EMAIL_SEND environment variables are required")
	}
	if port == "" {
		port = "587"
	}

	msg := []byte("From: " + from + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	auth := smtp.PlainAuth("", user, password, host)
	return smtp.SendMail(host+":"+port, auth, from, recipients, msg)
}

// NotificationService handles follower broadcasts and in-app notifications.
type NotificationService struct {
	Mailer Mailer
}

func NewNotificationService(mailer Mailer) *NotificationService {
	return &NotificationService{Mailer: mailer}
}

// NotifyFollowersOfJobPost tells everyone following the posting recruiter
// about a new job post. One broadcast message, fire-and-forget: a mail
// failure never fails the job-post creation.
func (ns *NotificationService) NotifyFollowersOfJobPost(db *gorm.DB, job *models.JobPost) {
	var recruiter models.User
	if err := db.First(&recruiter, job.RecruiterID).Error; err != nil {
		log.Printf("notifications: recruiter %d not found: %v", job.RecruiterID, err)
		return
	}

	var follows []models.Follow
	if err := db.Preload("Follower").
		Where("recruiter_id = ?", job.RecruiterID).
		Find(&follows).Error; err != nil {
		log.Printf("notifications: could not load followers of recruiter %d: %v", job.RecruiterID, err)
		return
	}

	subject := fmt.Sprintf("[%s] just posted a new job!", recruiter.Username)
	body := fmt.Sprintf(
		"New job post: %s\n"+
			"Specialization: %s\n"+
			"Salary: %.2f\n"+
			"Location: %s\n\n"+
			"Posted by: %s",
		job.Title, job.Specialized, job.Salary, job.Location, recruiter.Username)

	var recipients []string
	for _, follow := range follows {
		if follow.Follower.Email != "" {
			recipients = append(recipients, follow.Follower.Email)
		}

		notification := models.Notification{
			UserID: follow.FollowerID,
			Type:   "new_job_post",
			Title:  subject,
			Body:   body,
		}
		if err := db.Create(&notification).Error; err != nil {
			log.Printf("notifications: could not persist notification for user %d: %v", follow.FollowerID, err)
		}
	}

	if len(recipients) == 0 {
		return
	}

	if err := ns.Mailer.Send(subject, body, recipients); err != nil {
		log.Printf("notifications: broadcast for job %d failed: %v", job.ID, err)
	}
}

// NotifyApplicationDecision records an in-app notification for the applicant
// when a recruiter accepts or rejects their application.
func (ns *NotificationService) NotifyApplicationDecision(db *gorm.DB, application *models.Application, status models.ApplicationStatus) {
	notificationType := "application_rejected"
	title := "Your application was rejected"
	if status == models.ApplicationAccepted {
		notificationType = "application_accepted"
		title = "Your application was accepted"
	}

	notification := models.Notification{
		UserID: application.ApplicantID,
		Type:   notificationType,
		Title:  title,
		Body:   fmt.Sprintf("Application for job post #%d is now %s.", application.JobID, status),
	}
	if err := db.Create(&notification).Error; err != nil {
		log.Printf("notifications: could not persist decision notification for user %d: %v", application.ApplicantID, err)
	}
}
