package email

import (
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for applicant and subscriber emails
type EmailService interface {
	SendApprovalEmail(toEmail, toName, courseName, studentNumber string) error
	SendRejectionEmail(toEmail, toName, courseName string, reason *string) error
	SendNewsletterWelcome(toEmail string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	FromName        string
	FromEmail       string
	UseTLS          bool
	InstitutionName string
	ContactPhone    string
	Website         string
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	if !config.UseTLS && config.Port == 465 {
		config.UseTLS = true
	}
	return &EmailServiceImpl{
		config: config,
		logger: logger.With().Str("component", "email").Logger(),
	}
}

func (s *EmailServiceImpl) configured() bool {
	return s.config.Host != "" && s.config.Username != "" && s.config.Password != ""
}

// SendApprovalEmail tells an applicant they were accepted
func (s *EmailServiceImpl) SendApprovalEmail(toEmail, toName, courseName, studentNumber string) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("studentNumber", studentNumber).
			Msg("SMTP not configured - approval email not sent")
		return nil
	}
	subject := fmt.Sprintf("Application Approved - %s", s.config.InstitutionName)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Congratulations, %s!</h2>
				<p>Your application for <strong>%s</strong> has been approved.</p>
				<p>Your student number is <strong>%s</strong>. Please quote it in all correspondence.</p>
				<p>Visit our offices to complete registration and bring your ID document, your Matric certificate and proof of payment.</p>
				<p>Questions? Call us on %s or visit %s.</p>
				<p>Best regards,<br>%s</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(toName), html.EscapeString(courseName), html.EscapeString(studentNumber),
		html.EscapeString(s.config.ContactPhone), html.EscapeString(s.config.Website), html.EscapeString(s.config.InstitutionName))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendRejectionEmail tells an applicant their application was unsuccessful
func (s *EmailServiceImpl) SendRejectionEmail(toEmail, toName, courseName string, reason *string) error {
	if !s.configured() {
		s.logger.Warn().Str("toEmail", toEmail).Msg("SMTP not configured - rejection email not sent")
		return nil
	}
	subject := fmt.Sprintf("Application Update - %s", s.config.InstitutionName)

	reasonHTML := ""
	if reason != nil && strings.TrimSpace(*reason) != "" {
		reasonHTML = fmt.Sprintf("<p><strong>Reason:</strong> %s</p>", html.EscapeString(*reason))
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<p>Dear %s,</p>
				<p>Thank you for your interest in <strong>%s</strong>. After careful review, we regret to inform you that your application has been unsuccessful at this time.</p>
				%s
				<p>You are welcome to reapply in the future when you meet the minimum requirements.</p>
				<p>Kind regards,<br>%s</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(toName), html.EscapeString(courseName), reasonHTML, html.EscapeString(s.config.InstitutionName))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendNewsletterWelcome confirms a newsletter subscription
func (s *EmailServiceImpl) SendNewsletterWelcome(toEmail string) error {
	if !s.configured() {
		s.logger.Warn().Str("toEmail", toEmail).Msg("SMTP not configured - newsletter welcome not sent")
		return nil
	}
	subject := fmt.Sprintf("Welcome to the %s newsletter", s.config.InstitutionName)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Thanks for subscribing!</h2>
				<p>You will now receive news about courses, intakes and events at %s.</p>
				<p>Best regards,<br>%s</p>
			</div>
		</body>
		</html>
	`, html.EscapeString(s.config.InstitutionName), html.EscapeString(s.config.InstitutionName))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// buildMessage assembles headers and body in a stable order
func (s *EmailServiceImpl) buildMessage(toEmail, subject, htmlBody string) string {
	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", k, headers[k])
	}
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return b.String()
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	message := s.buildMessage(toEmail, subject, htmlBody)
	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if !s.config.UseTLS {
		err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, []byte(message))
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to create SMTP client")
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		s.logger.Error().Err(err).Msg("SMTP authentication failed")
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
