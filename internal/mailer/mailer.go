package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/mohammedafaaz/Neonexus-qr-meal-management/internal/config"
	log "github.com/sirupsen/logrus"
	gomail "gopkg.in/gomail.v2"
)

var ErrNothingToSend = errors.New("mailer: nothing to send")

// PassAttachment is one rendered QR image to bundle into the delivery.
type PassAttachment struct {
	SessionName string
	ImagePath   string
}

// Mailer delivers a batch of rendered passes to a participant in a single
// message.
type Mailer interface {
	SendPassBundle(recipient string, attachments []PassAttachment) error
}

// SMTPMailer sends pass bundles over SMTP with an HTML body and one PNG
// attachment per session.
type SMTPMailer struct {
	cfg  config.MailConfig
	pass config.PassConfig
}

func NewSMTPMailer(cfg config.MailConfig, pass config.PassConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, pass: pass}
}

func (m *SMTPMailer) SendPassBundle(recipient string, attachments []PassAttachment) error {
	if len(attachments) == 0 {
		return ErrNothingToSend
	}

	sessionNames := make([]string, 0, len(attachments))
	for _, a := range attachments {
		sessionNames = append(sessionNames, a.SessionName)
	}

	body, err := m.renderBody(sessionNames)
	if err != nil {
		return fmt.Errorf("mailer: render body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", fmt.Sprintf("🎟️ Your %s Meal Passes - %s",
		m.pass.EventName, strings.Join(sessionNames, ", ")))
	msg.SetBody("text/html", body)

	for _, a := range attachments {
		msg.Attach(a.ImagePath, gomail.Rename(a.SessionName+".png"))
	}

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: send: %w", err)
	}

	log.WithFields(log.Fields{
		"recipient": recipient,
		"passes":    len(attachments),
	}).Info("sent pass bundle")
	return nil
}

func (m *SMTPMailer) renderBody(sessionNames []string) (string, error) {
	var buf bytes.Buffer
	err := bundleTemplate.Execute(&buf, bundleData{
		EventName: m.pass.EventName,
		Organizer: m.pass.Organizer,
		Sessions:  sessionNames,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

type bundleData struct {
	EventName string
	Organizer string
	Sessions  []string
}

var bundleTemplate = template.Must(template.New("bundle").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f4f4f4;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; border-radius: 10px; overflow: hidden;">
    <div style="background: linear-gradient(135deg, #6b46c1 0%, #9333ea 100%); color: white; padding: 30px; text-align: center;">
      <h1 style="margin: 0; font-size: 28px; letter-spacing: 2px;">{{.EventName}}</h1>
      <p style="margin: 10px 0 0 0; font-size: 14px; opacity: 0.9;">{{.Organizer}}</p>
    </div>
    <div style="padding: 30px;">
      <h2 style="color: #333; margin-top: 0;">Your Meal QR Passes are Ready!</h2>
      <p style="color: #555; line-height: 1.6;">Dear Participant,</p>
      <p style="color: #555; line-height: 1.6;">
        Your QR passes for the following sessions are attached to this email:
      </p>
      <ul style="color: #555; line-height: 1.6;">
        {{range .Sessions}}<li><strong>{{.}}</strong></li>{{end}}
      </ul>
      <p style="color: #555; line-height: 1.6;">
        Please save these QR codes with the session name (e.g. DINNER DAY-1)
        and present them during the respective meal times for scanning.
      </p>
      <div style="background-color: #fff3cd; border: 1px solid #ffeeba; border-radius: 5px; padding: 15px; margin: 20px 0;">
        <h3 style="color: #856404; margin-top: 0; font-size: 16px;">📋 Important Instructions:</h3>
        <ul style="color: #856404; margin-bottom: 0;">
          <li>Each QR code is valid for <strong>ONE-TIME USE ONLY</strong></li>
          <li>Present the QR code on your device</li>
          <li>Each QR code is unique and non-transferable</li>
          <li>Contact the organizers if you face any issues</li>
        </ul>
      </div>
      <p style="color: #555; line-height: 1.6;">
        Best regards,<br>
        <strong>{{.Organizer}}</strong>
      </p>
    </div>
    <div style="background-color: #f8f9fa; padding: 20px; text-align: center; border-top: 1px solid #e9ecef;">
      <p style="margin: 0; color: #6c757d; font-size: 12px;">
        This is an automated email for {{.EventName}} participants. Please do not respond.
      </p>
    </div>
  </div>
</body>
</html>
`))
