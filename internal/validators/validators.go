package validators

import (
	"fmt"
	"strings"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/pkg/utils"
)

// Limits определяет интерфейс для получения допустимых границ
type Limits interface {
	PrincipalLimit() float64
	RateLimit() float64
	MonthsLimit() int
	AdditionalPaymentLimit() float64
}

// Code машиночитаемый код нарушения
type Code string

const (
	CodeNotFinite              Code = "not_finite"
	CodeNotPositive            Code = "not_positive"
	CodeNegative               Code = "negative"
	CodeTooLarge               Code = "too_large"
	CodeOutOfRange             Code = "out_of_range"
	CodeNotLessThanAsset       Code = "not_less_than_asset_value"
	CodeFinancingExceedsAsset  Code = "financing_exceeds_asset_value"
	CodeNegativeFinancedAmount Code = "negative_financed_amount"
	CodeNotAllowed             Code = "not_allowed"
	CodeUnknownValue           Code = "unknown_value"
	CodeRequired               Code = "required"
)

// Поля запроса, на которые ссылаются нарушения
const (
	FieldAssetValue        = "asset_value"
	FieldRate              = "annual_rate_percent"
	FieldMonths            = "months"
	FieldYears             = "years"
	FieldExtraMonths       = "extra_months"
	FieldDownPayment       = "down_payment"
	FieldBuyout            = "buyout"
	FieldFinancing         = "financing"
	FieldAdditionalPayment = "additional_payment"
	FieldPaymentType       = "payment_type"
)

// Violation одно нарушенное ограничение входных данных
type Violation struct {
	Field   string `json:"field"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Violations все нарушения одного запроса. Пустой список означает, что запрос корректен.
type Violations []Violation

func (v Violations) Error() string {
	msgs := make([]string, 0, len(v))
	for _, violation := range v {
		msgs = append(msgs, violation.Error())
	}
	return "неверные параметры: " + strings.Join(msgs, "; ")
}

// Has сообщает, есть ли нарушение с кодом code для поля field
func (v Violations) Has(field string, code Code) bool {
	for _, violation := range v {
		if violation.Field == field && violation.Code == code {
			return true
		}
	}
	return false
}

// Err возвращает nil для пустого списка
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v *Violations) add(field string, code Code, format string, args ...interface{}) {
	*v = append(*v, Violation{Field: field, Code: code, Message: fmt.Sprintf(format, args...)})
}

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) *Violation {
	if !utils.IsFinite(value) {
		return &Violation{Field: name, Code: CodeNotFinite, Message: "значение не является конечным числом"}
	}
	if value < minInclusive {
		return &Violation{Field: name, Code: CodeOutOfRange, Message: fmt.Sprintf("значение должно быть ≥ %g", minInclusive)}
	}
	if value > maxInclusive {
		return &Violation{Field: name, Code: CodeTooLarge, Message: fmt.Sprintf("значение слишком велико (>%g)", maxInclusive)}
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) *Violation {
	if value < minInclusive || value > maxInclusive {
		return &Violation{
			Field:   name,
			Code:    CodeOutOfRange,
			Message: fmt.Sprintf("значение должно быть в диапазоне [%d; %d]", minInclusive, maxInclusive),
		}
	}
	return nil
}

func (v *Violations) collect(violation *Violation) bool {
	if violation == nil {
		return true
	}
	*v = append(*v, *violation)
	return false
}

// monthsLimit срок не может превышать жесткий предел графика
func monthsLimit(limits Limits) int {
	if limits.MonthsLimit() < calculations.MaxTermMonths {
		return limits.MonthsLimit()
	}
	return calculations.MaxTermMonths
}

// rateLimit ставка не может превышать жесткий предел, даже если
// в конфигурации задано больше или не число
func rateLimit(limits Limits) float64 {
	if l := limits.RateLimit(); l >= 0 && l < calculations.MaxAnnualRatePercent {
		return l
	}
	return calculations.MaxAnnualRatePercent
}

// ValidateTermParts проверяет срок, введенный как годы и дополнительные месяцы
func ValidateTermParts(limits Limits, years, extraMonths int) Violations {
	var v Violations
	if years < 0 {
		v.add(FieldYears, CodeNegative, "значение должно быть ≥ 0")
	}
	v.collect(ValidateIntRange(FieldExtraMonths, extraMonths, 0, 11))
	if len(v) == 0 {
		v.collect(ValidateIntRange(FieldMonths, calculations.TermMonths(years, extraMonths), 1, monthsLimit(limits)))
	}
	return v
}

// ValidateLoanRequest проверяет запрос и возвращает все нарушения сразу
func ValidateLoanRequest(limits Limits, req calculations.LoanRequest) Violations {
	var v Violations

	assetOK := true
	if !utils.IsFinite(req.AssetValue) {
		v.add(FieldAssetValue, CodeNotFinite, "значение не является конечным числом")
		assetOK = false
	} else if req.AssetValue <= 0 {
		v.add(FieldAssetValue, CodeNotPositive, "значение должно быть > 0")
		assetOK = false
	} else if req.AssetValue > limits.PrincipalLimit() {
		v.add(FieldAssetValue, CodeTooLarge, "значение слишком велико (>%g)", limits.PrincipalLimit())
	}

	v.collect(ValidatePositiveNumber(FieldRate, req.AnnualRatePercent, 0, rateLimit(limits)))
	v.collect(ValidateIntRange(FieldMonths, req.TermMonths, 1, monthsLimit(limits)))

	if req.PaymentType != calculations.Annuity && req.PaymentType != calculations.Differentiated {
		v.add(FieldPaymentType, CodeUnknownValue, "неизвестный тип платежа %s", req.PaymentType)
	}

	downOK := v.checkShare(FieldDownPayment, req.DownPayment, req.AssetValue, assetOK)

	var buyoutOK bool
	if req.Buyout != nil && !req.Variant.AllowsBuyout() {
		v.add(FieldBuyout, CodeNotAllowed, "выкупной платеж не применяется для калькулятора %s", req.Variant)
		buyoutOK = false
	} else {
		buyoutOK = v.checkShare(FieldBuyout, req.Buyout, req.AssetValue, assetOK)
	}

	if assetOK && downOK && buyoutOK {
		down := calculations.ResolveAmount(req.DownPayment, req.AssetValue)
		buyout := calculations.ResolveAmount(req.Buyout, req.AssetValue)
		if down+buyout >= req.AssetValue {
			v.add(FieldFinancing, CodeFinancingExceedsAsset,
				"аванс (%.2f) и выкуп (%.2f) должны быть меньше стоимости (%.2f)", down, buyout, req.AssetValue)
		}
	}

	if !utils.IsFinite(req.AdditionalPayment) {
		v.add(FieldAdditionalPayment, CodeNotFinite, "значение не является конечным числом")
	} else if req.AdditionalPayment < 0 {
		v.add(FieldAdditionalPayment, CodeNegative, "значение должно быть ≥ 0")
	} else if req.AdditionalPayment > limits.AdditionalPaymentLimit() {
		v.add(FieldAdditionalPayment, CodeTooLarge, "значение слишком велико (>%g)", limits.AdditionalPaymentLimit())
	}

	return v
}

// checkShare проверяет аванс или выкуп; nil означает, что поле не заполнено
func (v *Violations) checkShare(field string, s calculations.Share, asset float64, assetOK bool) bool {
	if s == nil {
		return true
	}
	value := s.Value()
	if !utils.IsFinite(value) {
		v.add(field, CodeNotFinite, "значение не является конечным числом")
		return false
	}
	if value < 0 {
		v.add(field, CodeNegative, "значение должно быть ≥ 0")
		return false
	}

	switch s.(type) {
	case calculations.Percent:
		if value > 100 {
			v.add(field, CodeOutOfRange, "процент должен быть в диапазоне [0; 100]")
			return false
		}
	case calculations.Amount:
		if assetOK && value >= asset {
			v.add(field, CodeNotLessThanAsset, "сумма должна быть меньше стоимости (%.2f)", asset)
			return false
		}
	}
	return true
}
