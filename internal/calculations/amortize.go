package calculations

import (
	"fmt"
)

// Amortize выполняет расчет по уже проверенному запросу:
// суммы финансирования, стратегия платежа, график и итоги.
func Amortize(req LoanRequest) (*AmortizationResult, error) {
	plan, err := ResolveFinancing(req)
	if err != nil {
		return nil, err
	}

	strategy, err := NewStrategy(req.PaymentType, plan.FinancedAmount, req.MonthlyRate(), req.TermMonths)
	if err != nil {
		return nil, fmt.Errorf("ошибка выбора стратегии платежа: %w", err)
	}

	schedule, err := GenerateSchedule(strategy, plan.FinancedAmount, req.AdditionalPayment, req.TermMonths)
	if err != nil {
		return nil, err
	}

	result := Aggregate(schedule, plan, strategy.NominalPayment())
	result.PaymentType = req.PaymentType.String()
	result.RequestedTermMonths = req.TermMonths

	return &result, nil
}
