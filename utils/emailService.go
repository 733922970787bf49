package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends an HTML email through SendGrid. Skipped with a log
// line when no API key is configured (local development).
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("Email skipped (no SendGrid key): %s -> %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Course Marketplace", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}

	if response.StatusCode >= 400 {
		log.Printf("Failed to send email to %s, code: %d", toEmail, response.StatusCode)
		return fmt.Errorf("failed to send email, code: %d", response.StatusCode)
	}

	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<html>
	<body style="font-family: Arial, sans-serif; color: #333;">
		<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #2c3e50;">%s</h2>
			%s
			<p style="margin-top: 30px; font-size: 12px; color: #999;">
				You are receiving this email because you have an account on Course Marketplace.
			</p>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendWelcomeEmail sends a welcome email after signup
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to Course Marketplace! Browse the catalog and start learning today.</p>`, name)

	if err := SendEmail(email, name, "Welcome to Course Marketplace", getEmailTemplate("Welcome!", body)); err != nil {
		log.Printf("Error sending welcome email to %s: %v", email, err)
	}
}

// SendEnrollmentEmail confirms a successful course enrollment
func SendEnrollmentEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You are now enrolled in <strong>%s</strong>. Head to your dashboard to start the first lesson.</p>`, name, courseTitle)

	if err := SendEmail(email, name, "Enrollment confirmed", getEmailTemplate("Enrollment confirmed", body)); err != nil {
		log.Printf("Error sending enrollment email to %s: %v", email, err)
	}
}

// SendCourseCompletedEmail congratulates a student on finishing a course
func SendCourseCompletedEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations, you completed <strong>%s</strong>!</p>`, name, courseTitle)

	if err := SendEmail(email, name, "Course completed", getEmailTemplate("Congratulations!", body)); err != nil {
		log.Printf("Error sending completion email to %s: %v", email, err)
	}
}
