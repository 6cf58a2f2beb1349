package calculations

import (
	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// CompareLoans сравнивает аннуитетный и дифференцированный графики
// для одного и того же запроса
func CompareLoans(req LoanRequest) (*ComparisonResult, error) {
	annuityResult, err := Amortize(req.WithPaymentType(Annuity))
	if err != nil {
		return nil, err
	}

	differentiatedResult, err := Amortize(req.WithPaymentType(Differentiated))
	if err != nil {
		return nil, err
	}

	totalPaidDiff := utils.Round2(annuityResult.TotalPayments - differentiatedResult.TotalPayments)
	interestDiff := utils.Round2(annuityResult.TotalInterest - differentiatedResult.TotalInterest)

	var cheaperType string
	var savings float64
	var recommendation string

	if totalPaidDiff > 0 {
		cheaperType = Differentiated.String()
		savings = totalPaidDiff
		recommendation = "Дифференцированный платеж выгоднее по общей сумме выплат, но первые платежи будут выше аннуитетных."
	} else if totalPaidDiff < 0 {
		cheaperType = Annuity.String()
		savings = -totalPaidDiff
		recommendation = "Аннуитетный платеж выгоднее по общей сумме выплат, платеж одинаковый каждый месяц."
	} else {
		cheaperType = "equal"
		recommendation = "Оба типа платежа дают одинаковую общую сумму выплат."
	}

	return &ComparisonResult{
		Annuity:        *annuityResult,
		Differentiated: *differentiatedResult,
		TotalPaidDiff:  totalPaidDiff,
		InterestDiff:   interestDiff,
		CheaperType:    cheaperType,
		Savings:        savings,
		Recommendation: recommendation,
	}, nil
}

// CompareOverpayment показывает, сколько месяцев и процентов экономят
// досрочные платежи по сравнению с тем же графиком без них
func CompareOverpayment(req LoanRequest) (*OverpaymentEffect, error) {
	with, err := Amortize(req)
	if err != nil {
		return nil, err
	}

	without, err := Amortize(req.WithAdditionalPayment(0))
	if err != nil {
		return nil, err
	}

	return &OverpaymentEffect{
		WithAdditional:    *with,
		WithoutAdditional: *without,
		MonthsSaved:       without.EffectiveTermMonths - with.EffectiveTermMonths,
		InterestSaved:     utils.Round2(without.TotalInterest - with.TotalInterest),
	}, nil
}
