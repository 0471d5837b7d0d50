package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/bugra455/stajuygulamasi-sub001/config"
)

// Mailer bildirim e-postası gönderme arayüzü
// Servis katmanı somut SMTP yerine bu arayüze bağımlıdır.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer net/smtp üzerinden düz metin e-posta gönderir
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPMailer yapılandırmadan SMTPMailer oluşturur
func NewSMTPMailer(cfg *config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}
}

// Send tek alıcıya UTF-8 düz metin e-posta gönderir
func (m *SMTPMailer) Send(to, subject, body string) error {
	message := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	return smtp.SendMail(
		fmt.Sprintf("%s:%d", m.host, m.port),
		auth,
		m.from,
		[]string{to},
		message,
	)
}
