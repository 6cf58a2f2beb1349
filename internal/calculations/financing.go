package calculations

import (
	"fmt"
)

// ResolveAmount переводит долю в сумму; nil дает ноль
func ResolveAmount(s Share, base float64) float64 {
	if s == nil {
		return 0
	}
	return s.Resolve(base)
}

// ResolveFinancing рассчитывает аванс, выкуп и сумму финансирования.
// Для кредита без выкупа это сумма кредита минус первоначальный взнос.
func ResolveFinancing(req LoanRequest) (FinancingPlan, error) {
	down := ResolveAmount(req.DownPayment, req.AssetValue)
	buyout := ResolveAmount(req.Buyout, req.AssetValue)
	financed := req.AssetValue - down - buyout

	if financed < 0 {
		return FinancingPlan{}, fmt.Errorf("%w: asset %.2f, down payment %.2f, buyout %.2f",
			ErrNegativeFinancedAmount, req.AssetValue, down, buyout)
	}

	return FinancingPlan{
		FinancedAmount:    financed,
		DownPaymentAmount: down,
		BuyoutAmount:      buyout,
	}, nil
}
