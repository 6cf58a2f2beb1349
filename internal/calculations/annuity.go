package calculations

import "math"

// annuityStrategy аннуитетный платеж: сумма платежа постоянна,
// доля процентов в нем со временем уменьшается
type annuityStrategy struct {
	rate    float64
	payment float64
}

func newAnnuityStrategy(principal, r float64, n int) *annuityStrategy {
	return &annuityStrategy{
		rate:    r,
		payment: AnnuityPayment(principal, r, n),
	}
}

// AnnuityPayment рассчитывает аннуитетный платеж.
// При нулевой ставке долг гасится равными частями.
func AnnuityPayment(principal, r float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	if r == 0.0 {
		return principal / float64(n)
	}
	return principal * r / (1.0 - math.Pow(1.0+r, float64(-n)))
}

func (s *annuityStrategy) Split(balance float64, _ int) Split {
	interest := balance * s.rate
	return Split{
		Payment:   s.payment,
		Interest:  interest,
		Principal: s.payment - interest,
	}
}

func (s *annuityStrategy) NominalPayment() float64 {
	return s.payment
}
