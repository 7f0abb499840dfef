package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendDeadlineReminder(toEmail, programName, universityName string, deadline time.Time) error
	SendLowCreditNotice(toEmail string, remaining int) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	clientURL   string
}

func NewEmailService(host string, port int, username, password, senderEmail, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendDeadlineReminder(toEmail, programName, universityName string, deadline time.Time) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Application deadline approaching: %s", programName))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Deadline Reminder</h2>
			<p>Your application to <strong>%s</strong> at <strong>%s</strong> is due on <strong>%s</strong>.</p>
			<a href="%s/applications" style="background-color: #007BFF; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">Open GradAid</a>
			<p>Good luck!</p>
		</div>
	`, programName, universityName, deadline.Format("January 2, 2006"), s.clientURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send deadline reminder to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Deadline reminder sent to %s\n", toEmail)
	return nil
}

func (s *emailService) SendLowCreditNotice(toEmail string, remaining int) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your AI credits are running low")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Low Credit Balance</h2>
			<p>You have <strong>%d</strong> AI credits remaining.</p>
			<p>Top up to keep generating statements of purpose and recommendation letters.</p>
			<a href="%s/credits" style="background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px; display: inline-block;">View Credits</a>
		</div>
	`, remaining, s.clientURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send low credit notice to %s: %v\n", toEmail, err)
		return err
	}

	return nil
}
