// Package engine связывает проверку входных данных с расчетом графика.
//
// Calculate является чистой функцией: одинаковый запрос всегда дает
// одинаковый результат, состояние между вызовами не хранится.
package engine

import (
	"errors"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/validators"
)

// Engine рассчитывает графики платежей в пределах заданных ограничений
type Engine struct {
	limits validators.Limits
}

// New создает Engine
func New(limits validators.Limits) *Engine {
	return &Engine{limits: limits}
}

// Limits ограничения, которыми проверяются запросы
func (e *Engine) Limits() validators.Limits {
	return e.limits
}

// Validate возвращает все нарушения запроса
func (e *Engine) Validate(req calculations.LoanRequest) validators.Violations {
	return validators.ValidateLoanRequest(e.limits, req)
}

// Calculate проверяет запрос и строит график.
// Ошибки проверки возвращаются целым списком как validators.Violations,
// расчет в этом случае не выполняется.
func (e *Engine) Calculate(req calculations.LoanRequest) (*calculations.AmortizationResult, error) {
	if err := e.Validate(req).Err(); err != nil {
		return nil, err
	}
	return asViolation(calculations.Amortize(req))
}

// Compare строит оба типа графика для одного запроса
func (e *Engine) Compare(req calculations.LoanRequest) (*calculations.ComparisonResult, error) {
	if err := e.Validate(req).Err(); err != nil {
		return nil, err
	}
	return asViolation(calculations.CompareLoans(req))
}

// OverpaymentEffect сравнивает график с досрочными платежами и без них
func (e *Engine) OverpaymentEffect(req calculations.LoanRequest) (*calculations.OverpaymentEffect, error) {
	if err := e.Validate(req).Err(); err != nil {
		return nil, err
	}
	return asViolation(calculations.CompareOverpayment(req))
}

// asViolation переводит отрицательную сумму финансирования в ошибку проверки
func asViolation[T any](result *T, err error) (*T, error) {
	if errors.Is(err, calculations.ErrNegativeFinancedAmount) {
		return nil, validators.Violations{{
			Field:   validators.FieldFinancing,
			Code:    validators.CodeNegativeFinancedAmount,
			Message: err.Error(),
		}}
	}
	return result, err
}
