package services

import (
	"github.com/Chandanpatidar24/Project-Management/logging"
	"github.com/Chandanpatidar24/Project-Management/utils"

	"github.com/sony/gobreaker"
)

// Mailer sends email through the SMTP collaborator behind a circuit breaker,
// so a dead mail server cannot hold up request handling for long.
type Mailer struct {
	breaker *gobreaker.CircuitBreaker
	send    func(to, subject, body string) error
}

func NewMailer(breaker *gobreaker.CircuitBreaker) *Mailer {
	return &Mailer{
		breaker: breaker,
		send:    utils.SendEmail,
	}
}

func (m *Mailer) Send(to, subject, body string) error {
	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, m.send(to, subject, body)
	})
	if err != nil {
		logging.Logger.Warnf("Event ID: EMAIL_SEND_FAILED, Description: Failed to send email to %s: %v", to, err)
	}
	return err
}
