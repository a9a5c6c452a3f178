package service

import (
	"context"
	"fmt"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.Debug("Email sent", "to", to, "subject", subject)
	return nil
}

func (s *emailService) SendHandoffAssignedNotification(ctx context.Context, staffEmail, staffName, clientName string, handoff *domain.DeliveryPickup) error {
	subject := fmt.Sprintf("New %s assignment #%d", handoff.Type, handoff.ID)
	if clientName == "" {
		clientName = "the client"
	}
	body := fmt.Sprintf("Hello %s,\n\nYou have been assigned %s #%d for %s, scheduled %s between %s and %s.\nDestination: %s, %s %s.\n\nRentDesk",
		staffName, handoff.Type, handoff.ID, clientName, handoff.ScheduledDate, handoff.ScheduledTimeStart, handoff.ScheduledTimeEnd,
		handoff.Address, handoff.City, handoff.PostalCode)
	return s.send(staffEmail, staffName, subject, body)
}

func (s *emailService) SendHandoffCompletedNotification(ctx context.Context, staffEmail, staffName string, handoff *domain.DeliveryPickup) error {
	subject := fmt.Sprintf("%s #%d completed", handoff.Type, handoff.ID)
	body := fmt.Sprintf("Hello %s,\n\n%s #%d for reservation %d has been marked completed.\n\nRentDesk",
		staffName, handoff.Type, handoff.ID, handoff.ReservationID)
	return s.send(staffEmail, staffName, subject, body)
}

func (s *emailService) SendScheduleReminder(ctx context.Context, staffEmail, staffName, date string, handoffCount int) error {
	subject := fmt.Sprintf("Schedule reminder for %s", date)
	body := fmt.Sprintf("Hello %s,\n\nYou have %d handoff(s) scheduled for %s. Check your dashboard for details.\n\nRentDesk",
		staffName, handoffCount, date)
	return s.send(staffEmail, staffName, subject, body)
}
