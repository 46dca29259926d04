// Package mail is the outbound mail collaborator. Delivery failures
// propagate to the caller; there is no retry or queueing. Re-requesting an
// OTP is safe because issuance overwrites.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Sender delivers a verification code to an address. The display name is
// only used to address the recipient in the body.
type Sender interface {
	Send(to, code, name string) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(host string, port int, user, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, user, password),
		from:   from,
	}
}

func (s *SMTPSender) Send(to, code, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your StagePass Verification Code")
	m.SetBody("text/html", otpBody(code, name))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

func otpBody(code, name string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; border: 1px solid #eee; padding: 20px;">
  <h2>Hello %s,</h2>
  <p>Your StagePass one-time passcode is:</p>
  <div style="font-size: 28px; font-weight: bold; background: #f9f9f9; padding: 12px; text-align: center; border-radius: 5px;">%s</div>
  <p>This code expires in <strong>10 minutes</strong>. Do not share it with anyone.</p>
  <p>If you did not request this, you can safely ignore this email.</p>
</div>`, name, code)
}
