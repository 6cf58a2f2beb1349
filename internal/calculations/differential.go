package calculations

// differentiatedStrategy дифференцированный платеж: основной долг гасится
// равными долями, проценты начисляются на остаток
type differentiatedStrategy struct {
	rate          float64
	principalPart float64
	firstPayment  float64
}

func newDifferentiatedStrategy(principal, r float64, n int) *differentiatedStrategy {
	part := principal / float64(n)
	return &differentiatedStrategy{
		rate:          r,
		principalPart: part,
		firstPayment:  part + principal*r,
	}
}

func (s *differentiatedStrategy) Split(balance float64, _ int) Split {
	interest := balance * s.rate
	return Split{
		Payment:   s.principalPart + interest,
		Interest:  interest,
		Principal: s.principalPart,
	}
}

func (s *differentiatedStrategy) NominalPayment() float64 {
	return s.firstPayment
}
