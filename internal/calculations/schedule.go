package calculations

import (
	"github.com/shopspring/decimal"

	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// splitTolerance допуск на погрешность float64 в доле основного долга
const splitTolerance = 1e-6

// settled остаток, округляющийся до нуля копеек, считается погашенным
func settled(balance float64) bool {
	return utils.Cents(balance).IsZero()
}

type scheduleState int

const (
	stateAccumulating scheduleState = iota
	stateSettled
)

// period значения одного месяца до округления
type period struct {
	index     int
	interest  float64
	principal float64
	balance   float64
}

// GenerateSchedule строит график платежей.
// Досрочный платеж добавляется к основному долгу каждого месяца; последний
// платеж обрезается до остатка. Если остаток погашен раньше срока, оставшиеся
// месяцы не создаются.
func GenerateSchedule(strategy PaymentStrategy, financed, additional float64, months int) ([]ScheduleEntry, error) {
	if months < 1 || months > MaxTermMonths {
		return nil, inconsistency(0, "term %d months outside [1; %d]", months, MaxTermMonths)
	}
	if !utils.IsFinite(financed) || financed < 0 {
		return nil, inconsistency(0, "financed amount %v is not a non-negative number", financed)
	}
	if !utils.IsFinite(additional) || additional < 0 {
		return nil, inconsistency(0, "additional payment %v is not a non-negative number", additional)
	}

	balance := financed
	state := stateAccumulating
	if settled(balance) {
		balance = 0
		state = stateSettled
	}

	periods := make([]period, 0, months)
	for m := 1; state == stateAccumulating; m++ {
		split := strategy.Split(balance, months-m+1)
		if !utils.IsFinite(split.Interest) || !utils.IsFinite(split.Principal) {
			return nil, inconsistency(m, "non-finite payment split")
		}
		if split.Interest < 0 {
			return nil, inconsistency(m, "negative interest %v on balance %v", split.Interest, balance)
		}
		if split.Principal < -splitTolerance {
			return nil, inconsistency(m, "payment %v does not cover interest %v", split.Payment, split.Interest)
		}

		principal := split.Principal + additional
		if principal < 0 {
			principal = 0
		}
		if m == months || principal >= balance || settled(balance-principal) {
			principal = balance
		}

		balance -= principal
		if settled(balance) {
			balance = 0
		}

		periods = append(periods, period{
			index:     m,
			interest:  split.Interest,
			principal: principal,
			balance:   balance,
		})

		if balance == 0 {
			state = stateSettled
		}
	}

	return roundSchedule(periods, financed), nil
}

// roundSchedule округляет значения до копеек по нарастающему итогу:
// доля месяца равна разнице округленных сумм, поэтому ошибка округления
// не накапливается и сумма основного долга совпадает с суммой финансирования.
func roundSchedule(periods []period, financed float64) []ScheduleEntry {
	financedCents := utils.Cents(financed)
	entries := make([]ScheduleEntry, 0, len(periods))

	var cumPrincipal, cumInterest float64
	prevPrincipal, prevInterest := decimal.Zero, decimal.Zero

	for _, p := range periods {
		cumPrincipal += p.principal
		cumInterest += p.interest

		curPrincipal := utils.Cents(cumPrincipal)
		if p.balance == 0 || curPrincipal.GreaterThan(financedCents) {
			curPrincipal = financedCents
		}
		curInterest := utils.Cents(cumInterest)

		principal := curPrincipal.Sub(prevPrincipal)
		interest := curInterest.Sub(prevInterest)
		remaining := financedCents.Sub(curPrincipal)

		entries = append(entries, ScheduleEntry{
			Period:           p.index,
			Payment:          principal.Add(interest).InexactFloat64(),
			Interest:         interest.InexactFloat64(),
			Principal:        principal.InexactFloat64(),
			RemainingBalance: remaining.InexactFloat64(),
		})

		prevPrincipal, prevInterest = curPrincipal, curInterest
	}

	return entries
}
