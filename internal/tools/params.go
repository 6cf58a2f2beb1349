package tools

import (
	"fmt"
	"math"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/validators"
)

// numberParam извлекает число; JSON числа приходят как float64
func numberParam(params map[string]interface{}, name string) (float64, bool, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return v, true, nil
	case float32:
		return float64(v), true, nil
	case int:
		return float64(v), true, nil
	case int64:
		return float64(v), true, nil
	default:
		return 0, true, fmt.Errorf("invalid parameter: %s", name)
	}
}

func stringParam(params map[string]interface{}, name string) (string, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("invalid parameter: %s", name)
	}
	return s, nil
}

type paramReader struct {
	params     map[string]interface{}
	violations validators.Violations
}

func (p *paramReader) fail(field string, code validators.Code, msg string) {
	p.violations = append(p.violations, validators.Violation{Field: field, Code: code, Message: msg})
}

func (p *paramReader) number(name string, required bool) (float64, bool) {
	v, present, err := numberParam(p.params, name)
	if err != nil {
		p.fail(name, validators.CodeNotFinite, "значение должно быть числом")
		return 0, false
	}
	if !present && required {
		p.fail(name, validators.CodeRequired, "обязательный параметр")
	}
	return v, present
}

func (p *paramReader) integer(name string) (int, bool) {
	v, present := p.number(name, false)
	if present && v != math.Trunc(v) {
		p.fail(name, validators.CodeOutOfRange, "значение должно быть целым")
		return 0, false
	}
	return int(v), present
}

func (p *paramReader) text(name string) string {
	s, err := stringParam(p.params, name)
	if err != nil {
		p.fail(name, validators.CodeUnknownValue, "значение должно быть строкой")
	}
	return s
}

func (p *paramReader) share(field, kindField string) calculations.Share {
	value, present := p.number(field, false)
	kind := p.text(kindField)
	if !present {
		return nil
	}
	s, err := calculations.ParseShare(value, kind)
	if err != nil {
		p.fail(kindField, validators.CodeUnknownValue, err.Error())
		return nil
	}
	return s
}

// parseLoanRequest собирает LoanRequest из параметров инструмента.
// Все ошибки разбора возвращаются вместе, как и ошибки проверки.
func parseLoanRequest(cfg validators.Limits, params map[string]interface{}, variant calculations.Variant) (calculations.LoanRequest, validators.Violations) {
	p := &paramReader{params: params}
	req := calculations.LoanRequest{Variant: variant}

	principalField := "asset_value"
	if variant == calculations.VariantLoan {
		principalField = "principal"
	}
	before := len(p.violations)
	principal, present := p.number(principalField, false)
	if !present && principalField != "principal" {
		principal, present = p.number("principal", false)
	}
	if !present && len(p.violations) == before {
		p.fail(principalField, validators.CodeRequired, "обязательный параметр")
	}
	req.AssetValue = principal

	req.AnnualRatePercent, _ = p.number("annual_rate_percent", true)

	if _, given := params["months"]; given {
		req.TermMonths, _ = p.integer("months")
	} else {
		years, hasYears := p.integer("years")
		extra, hasExtra := p.integer("extra_months")
		if !hasYears && !hasExtra {
			p.fail(validators.FieldMonths, validators.CodeRequired, "укажите months или years и extra_months")
		} else if v := validators.ValidateTermParts(cfg, years, extra); len(v) > 0 {
			p.violations = append(p.violations, v...)
		} else {
			req.TermMonths = calculations.TermMonths(years, extra)
		}
	}

	req.DownPayment = p.share("down_payment", "down_payment_kind")
	req.Buyout = p.share("buyout", "buyout_kind")
	req.AdditionalPayment, _ = p.number("additional_payment", false)

	pt, err := calculations.ParsePaymentType(p.text("payment_type"))
	if err != nil {
		p.fail(validators.FieldPaymentType, validators.CodeUnknownValue, err.Error())
	}
	req.PaymentType = pt

	return req, p.violations
}

// mergeViolations дополняет ошибки разбора ошибками проверки по другим полям
func mergeViolations(parsed, validated validators.Violations) validators.Violations {
	if len(parsed) == 0 {
		return validated
	}
	reported := make(map[string]bool, len(parsed))
	for _, v := range parsed {
		reported[v.Field] = true
	}
	// поля, выведенные из неразобранных параметров, повторно не сообщаются
	if reported[validators.FieldYears] || reported[validators.FieldExtraMonths] {
		reported[validators.FieldMonths] = true
	}
	if reported["principal"] || reported["asset_value"] {
		reported[validators.FieldAssetValue] = true
		reported[validators.FieldFinancing] = true
	}
	merged := append(validators.Violations{}, parsed...)
	for _, v := range validated {
		if !reported[v.Field] {
			merged = append(merged, v)
		}
	}
	return merged
}
