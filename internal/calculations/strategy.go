package calculations

import "fmt"

// Split разбивка платежа одного месяца
type Split struct {
	Payment   float64
	Interest  float64
	Principal float64
}

// PaymentStrategy считает платеж одного месяца по текущему остатку
type PaymentStrategy interface {
	// Split возвращает платеж, проценты и основной долг для месяца,
	// periodsRemaining включает текущий месяц
	Split(balance float64, periodsRemaining int) Split
	// NominalPayment платеж первого месяца без досрочных платежей
	NominalPayment() float64
}

// NewStrategy выбирает стратегию платежа один раз на весь расчет
func NewStrategy(t PaymentType, principal, monthlyRate float64, months int) (PaymentStrategy, error) {
	if months <= 0 {
		return nil, fmt.Errorf("months must be positive, got %d", months)
	}
	switch t {
	case Annuity:
		return newAnnuityStrategy(principal, monthlyRate, months), nil
	case Differentiated:
		return newDifferentiatedStrategy(principal, monthlyRate, months), nil
	default:
		return nil, fmt.Errorf("unsupported payment type %s", t)
	}
}
