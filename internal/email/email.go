// Package email provides email sending functionality
package email

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"strings"
)

// Config holds email configuration
type Config struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	FromName    string
	UseTLS      bool
	FrontendURL string
}

// Service handles email sending
type Service struct {
	config    *Config
	templates map[string]*template.Template
}

// NewService creates a new email service
func NewService(config *Config) *Service {
	s := &Service{
		config:    config,
		templates: make(map[string]*template.Template),
	}
	s.loadTemplates()
	return s
}

// Email represents an email message
type Email struct {
	To       []string
	CC       []string
	BCC      []string
	Subject  string
	Body     string
	HTMLBody string
}

// loadTemplates loads all email templates
func (s *Service) loadTemplates() {

	// Team Invitation Template
	s.templates["team_invitation"] = template.Must(template.New("team_invitation").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #f59e0b; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .btn { display: inline-block; background: #f59e0b; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>You're Invited to TeamHive</h2>
    </div>
    <div class="content">
        <p>Hello,</p>
        <p><strong>{{.InvitedBy}}</strong> invited you to join <strong>{{.TeamName}}</strong>.</p>

        <a href="{{.InviteURL}}" class="btn">View Invitation</a>

        <p style="margin-top: 16px; font-size: 14px; color: #6b7280;">
            If you were not expecting this email, you can ignore it.
        </p>
    </div>
    <div class="footer">
        TeamHive • Team Collaboration Platform
    </div>
</div>
</body>
</html>
`))

	// Password Reset Template
	s.templates["reset_password"] = template.Must(template.New("reset_password").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #ef4444; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .btn { display: inline-block; background: #ef4444; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>Reset Your Password</h2>
    </div>
    <div class="content">
        <p>Hi {{.Name}},</p>
        <p>We received a request to reset your password. Click the button below to choose a new one.</p>

        <a href="{{.ResetURL}}" class="btn">Reset Password</a>

        <p style="margin-top: 16px; font-size: 14px; color: #6b7280;">
            This link expires shortly. If you did not request a reset, you can ignore this email.
        </p>
    </div>
    <div class="footer">
        TeamHive • Team Collaboration Platform
    </div>
</div>
</body>
</html>
`))

	// Email Verification Template
	s.templates["verify_email"] = template.Must(template.New("verify_email").Parse(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Helvetica, Arial, sans-serif; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #10b981; color: white; padding: 24px; border-radius: 8px 8px 0 0; }
        .content { background: #f9fafb; padding: 24px; border-radius: 0 0 8px 8px; }
        .btn { display: inline-block; background: #10b981; color: white; padding: 12px 20px; text-decoration: none; border-radius: 6px; margin-top: 16px; }
        .footer { margin-top: 24px; font-size: 12px; color: #6b7280; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <div class="header">
        <h2>Verify Your Email</h2>
    </div>
    <div class="content">
        <p>Hi {{.Name}},</p>
        <p>Please confirm your email address to finish setting up your account.</p>

        <a href="{{.VerifyURL}}" class="btn">Verify Email</a>
    </div>
    <div class="footer">
        TeamHive • Team Collaboration Platform
    </div>
</div>
</body>
</html>
`))
}

// Send sends an email message over SMTP
func (s *Service) Send(email *Email) error {
	if s.config.Host == "" {
		log.Println("Email not configured, skipping send")
		return nil
	}

	// Build message
	var msg bytes.Buffer

	// Headers
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.config.FromName, s.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ", ")))
	if len(email.CC) > 0 {
		msg.WriteString(fmt.Sprintf("Cc: %s\r\n", strings.Join(email.CC, ", ")))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	msg.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody != "" {
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.HTMLBody)
	} else {
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(email.Body)
	}

	// Build recipient list
	recipients := append(email.To, email.CC...)
	recipients = append(recipients, email.BCC...)

	// Create auth
	auth := smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	if s.config.UseTLS {
		// TLS connection
		tlsConfig := &tls.Config{
			ServerName: s.config.Host,
		}

		conn, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return fmt.Errorf("TLS dial error: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			return fmt.Errorf("SMTP client error: %w", err)
		}
		defer client.Close()

		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("auth error: %w", err)
		}

		if err = client.Mail(s.config.From); err != nil {
			return fmt.Errorf("mail error: %w", err)
		}

		for _, rcpt := range recipients {
			if err = client.Rcpt(rcpt); err != nil {
				return fmt.Errorf("rcpt error: %w", err)
			}
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("data error: %w", err)
		}

		_, err = w.Write(msg.Bytes())
		if err != nil {
			return fmt.Errorf("write error: %w", err)
		}

		err = w.Close()
		if err != nil {
			return fmt.Errorf("close error: %w", err)
		}

		return client.Quit()
	}

	// Non-TLS
	return smtp.SendMail(addr, auth, s.config.From, recipients, msg.Bytes())
}

// SendWithTemplate renders a named template and sends it as HTML
func (s *Service) SendWithTemplate(to []string, subject, templateName string, data interface{}) error {
	tmpl, ok := s.templates[templateName]
	if !ok {
		return fmt.Errorf("template not found: %s", templateName)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	return s.Send(&Email{
		To:       to,
		Subject:  subject,
		HTMLBody: body.String(),
	})
}

// ============================================
// Convenience Methods
// ============================================

// SendTeamInvitation sends a team invitation email
func (s *Service) SendTeamInvitation(to, teamName, invitedBy string) error {
	data := struct {
		TeamName  string
		InvitedBy string
		InviteURL string
	}{
		TeamName:  teamName,
		InvitedBy: invitedBy,
		InviteURL: fmt.Sprintf("%s/invitations", s.config.FrontendURL),
	}
	subject := fmt.Sprintf("%s invited you to join %s", invitedBy, teamName)
	return s.SendWithTemplate([]string{to}, subject, "team_invitation", data)
}

// SendPasswordReset sends a password reset email
func (s *Service) SendPasswordReset(to, name, token string) error {
	data := struct {
		Name     string
		ResetURL string
	}{
		Name:     name,
		ResetURL: fmt.Sprintf("%s/reset-password?token=%s", s.config.FrontendURL, token),
	}
	return s.SendWithTemplate([]string{to}, "Reset your password", "reset_password", data)
}

// SendEmailVerification sends an email verification email
func (s *Service) SendEmailVerification(to, name, token string) error {
	data := struct {
		Name      string
		VerifyURL string
	}{
		Name:      name,
		VerifyURL: fmt.Sprintf("%s/verify-email?token=%s", s.config.FrontendURL, token),
	}
	return s.SendWithTemplate([]string{to}, "Verify your email", "verify_email", data)
}
