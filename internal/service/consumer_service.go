package service

import (
	"context"

	"gradaid-be/internal/pkg/logger"
	"gradaid-be/pkg/events"
	pkgNats "gradaid-be/pkg/nats"

	"github.com/google/uuid"
)

// Subjects consumed from the external event bus. Top-ups happen in a separate
// billing system and arrive here as events.
const (
	SubjectCreditTopup = "events.CREDIT_TOPUP"
)

type IConsumerService interface {
	Start() error
}

type consumerService struct {
	subscriber    *pkgNats.Subscriber
	creditService ICreditService
	log           logger.ILogger
}

func NewConsumerService(subscriber *pkgNats.Subscriber, creditService ICreditService, log logger.ILogger) IConsumerService {
	return &consumerService{
		subscriber:    subscriber,
		creditService: creditService,
		log:           log,
	}
}

func (s *consumerService) Start() error {
	return s.subscriber.Subscribe(SubjectCreditTopup, "gradaid-credit-topup", s.handleCreditTopup)
}

func (s *consumerService) handleCreditTopup(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	userIdRaw, ok := payload["user_id"].(string)
	if !ok {
		s.log.Warn("CONSUMER", "Topup event missing user_id", map[string]interface{}{"payload": payload})
		return nil // malformed, do not retry
	}
	userId, err := uuid.Parse(userIdRaw)
	if err != nil {
		s.log.Warn("CONSUMER", "Topup event has invalid user_id", map[string]interface{}{"user_id": userIdRaw})
		return nil
	}

	amountRaw, ok := payload["amount"].(float64)
	if !ok || amountRaw <= 0 {
		s.log.Warn("CONSUMER", "Topup event has invalid amount", map[string]interface{}{"payload": payload})
		return nil
	}

	if err := s.creditService.Topup(ctx, userId, int(amountRaw)); err != nil {
		s.log.Error("CONSUMER", "Failed to apply credit topup", map[string]interface{}{
			"user_id": userId,
			"amount":  int(amountRaw),
			"error":   err.Error(),
		})
		return err // nack, redeliver
	}

	s.log.Info("CONSUMER", "Credit topup applied", map[string]interface{}{
		"user_id": userId,
		"amount":  int(amountRaw),
	})
	return nil
}
