package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"lms/config"
)

// Mailer sends transactional mail. It is constructed once and injected
// wherever notifications are needed; when a SendGrid key is configured it
// is used, otherwise mail goes out over plain SMTP.
type Mailer struct {
	cfg *config.Config
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// Send delivers a single HTML email. Failures are logged, not returned to
// the request path; senders fire this on a goroutine.
func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	if m.cfg.EmailSender == "" {
		log.Printf("Email not configured, dropping %q to %v", subject, to)
		return nil
	}

	if m.cfg.SendgridAPIKey != "" {
		return m.sendViaSendgrid(to, subject, htmlBody)
	}
	return m.sendViaSMTP(to, subject, htmlBody)
}

func (m *Mailer) sendViaSendgrid(to []string, subject, htmlBody string) error {
	from := mail.NewEmail("Learning Platform", m.cfg.EmailSender)
	client := sendgrid.NewSendClient(m.cfg.SendgridAPIKey)

	for _, rcpt := range to {
		message := mail.NewSingleEmail(from, subject, mail.NewEmail("", rcpt), "", htmlBody)
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email via sendgrid: %v", err)
			return err
		}
		if resp.StatusCode >= 400 {
			log.Printf("Sendgrid rejected email: %d %s", resp.StatusCode, resp.Body)
			return fmt.Errorf("sendgrid returned %d", resp.StatusCode)
		}
	}
	return nil
}

func (m *Mailer) sendViaSMTP(to []string, subject, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := m.cfg.EmailSender
	password := m.cfg.EmailPassword

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learning Platform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1B3A4B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A4B; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #2E86AB; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNING PLATFORM</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Learning Platform. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendVerificationEmail mails the account verification link after signup
func (m *Mailer) SendVerificationEmail(email, username, token string) {
	subject := "Verify your account"
	link := fmt.Sprintf("%s/verify/%s", m.cfg.FrontendURL, token)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thanks for registering. Please confirm your email address to activate your account.</p>
		<a href="%s" class="btn">Verify Email</a>
	`, username, link)

	go m.Send([]string{email}, subject, emailTemplate("Confirm your email", body))
}

// SendWelcomeEmail mails a greeting once the account is verified
func (m *Mailer) SendWelcomeEmail(email, username string) {
	subject := "Welcome to the Learning Platform"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your account is verified. Browse the catalog and enroll in your first course.</p>
	`, username)

	go m.Send([]string{email}, subject, emailTemplate("Welcome aboard!", body))
}
