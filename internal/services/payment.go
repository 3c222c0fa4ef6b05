package services

import (
	"fmt"
	"log"
	"math"
	"time"
)

// MockPaymentService simulates charge processing for the payment
// screen. No real gateway is involved; every charge succeeds and the
// reservation write is what actually records the sale.
type MockPaymentService struct{}

// NewMockPaymentService creates a new mock payment service
func NewMockPaymentService() *MockPaymentService {
	log.Println("Payment service: using mock (payment screen is a simulation)")
	return &MockPaymentService{}
}

// PaymentResult is the outcome of a simulated charge
type PaymentResult struct {
	PaymentID   string    `json:"payment_id"`
	Status      string    `json:"status"`
	Amount      float64   `json:"amount"`
	ProcessedAt time.Time `json:"processed_at"`
}

// ProcessPayment simulates a successful charge
func (s *MockPaymentService) ProcessPayment(amount float64, paymentMethod string, installments int) (*PaymentResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid payment amount: %.2f", amount)
	}
	if installments < 1 {
		return nil, fmt.Errorf("invalid installment count: %d", installments)
	}

	paymentID := fmt.Sprintf("mock_pay_%d", time.Now().UnixNano())
	log.Printf("Mock Payment: processing R$ %.2f via %s in %dx", amount, paymentMethod, installments)

	return &PaymentResult{
		PaymentID:   paymentID,
		Status:      "success",
		Amount:      amount,
		ProcessedAt: time.Now(),
	}, nil
}

// InstallmentAmount returns the per-installment value for a total,
// rounded to cents
func (s *MockPaymentService) InstallmentAmount(total float64, installments int) float64 {
	if installments < 1 {
		installments = 1
	}
	return math.Round(total/float64(installments)*100) / 100
}
