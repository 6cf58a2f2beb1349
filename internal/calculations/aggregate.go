package calculations

import (
	"github.com/shopspring/decimal"

	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// Aggregate сводит график в итоговые показатели.
// Суммы считаются точно по уже округленным строкам графика, поэтому итоги
// совпадают с суммой столбцов выгруженной таблицы.
func Aggregate(schedule []ScheduleEntry, plan FinancingPlan, nominalPayment float64) AmortizationResult {
	totalPayments := decimal.Zero
	totalInterest := decimal.Zero
	for _, e := range schedule {
		totalPayments = totalPayments.Add(utils.Cents(e.Payment))
		totalInterest = totalInterest.Add(utils.Cents(e.Interest))
	}

	financed := utils.Cents(plan.FinancedAmount)
	down := utils.Cents(plan.DownPaymentAmount)
	buyout := utils.Cents(plan.BuyoutAmount)

	// выкуп оплачивается отдельно в конце срока и в график не входит
	totalCost := totalPayments.Add(down).Add(buyout)
	overpayment := totalPayments.Sub(financed)

	var overpaymentPercent float64
	if financed.IsPositive() {
		overpaymentPercent = utils.Round2(overpayment.InexactFloat64() / financed.InexactFloat64() * 100)
	}

	return AmortizationResult{
		Schedule:              schedule,
		MonthlyPayment:        utils.Round2(nominalPayment),
		TotalPayments:         totalPayments.InexactFloat64(),
		TotalInterest:         totalInterest.InexactFloat64(),
		TotalCost:             totalCost.InexactFloat64(),
		OverpaymentAmount:     overpayment.InexactFloat64(),
		OverpaymentPercentage: overpaymentPercent,
		EffectiveTermMonths:   len(schedule),
		FinancingPlan: FinancingPlan{
			FinancedAmount:    financed.InexactFloat64(),
			DownPaymentAmount: down.InexactFloat64(),
			BuyoutAmount:      buyout.InexactFloat64(),
		},
		BuyoutAmount: buyout.InexactFloat64(),
	}
}
