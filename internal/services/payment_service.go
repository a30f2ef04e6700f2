// internal/services/payment_service.go
package services

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bazaarline/storefront-backend/internal/config"
	"github.com/bazaarline/storefront-backend/internal/utils"
)

// PaymentService handles the card path of checkout. There is no payment
// gateway behind it: a card capture is a fixed delay followed by success,
// matching the storefront's stated behavior. COD orders never touch it.
type PaymentService struct {
	cfg *config.Config
}

type PaymentResult struct {
	Success    bool      `json:"success"`
	Reference  string    `json:"reference"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	CapturedAt time.Time `json:"captured_at"`
}

func NewPaymentService(cfg *config.Config) *PaymentService {
	return &PaymentService{cfg: cfg}
}

// ChargeCard simulates a card capture: wait out the configured processing
// latency, mint a reference, succeed.
func (s *PaymentService) ChargeCard(amount float64) (*PaymentResult, error) {
	time.Sleep(time.Duration(s.cfg.Shop.CardProcessingMs) * time.Millisecond)

	reference, err := utils.GeneratePaymentReference()
	if err != nil {
		return nil, err
	}

	result := &PaymentResult{
		Success:    true,
		Reference:  reference,
		Amount:     amount,
		Currency:   s.cfg.Shop.Currency,
		CapturedAt: time.Now(),
	}

	logrus.WithFields(logrus.Fields{
		"reference": result.Reference,
		"amount":    result.Amount,
		"currency":  result.Currency,
	}).Info("Simulated card capture completed")

	return result, nil
}
