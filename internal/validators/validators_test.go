package validators

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/config"
)

func validRequest() calculations.LoanRequest {
	return calculations.LoanRequest{
		Variant:           calculations.VariantLeasing,
		AssetValue:        2000000,
		AnnualRatePercent: 12,
		TermMonths:        36,
		DownPayment:       calculations.Percent(20),
		Buyout:            calculations.Percent(10),
		PaymentType:       calculations.Annuity,
	}
}

type issue struct {
	field string
	code  Code
}

func TestValidateLoanRequest(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name   string
		modify func(r *calculations.LoanRequest)
		want   []issue
	}{
		{
			name:   "valid leasing",
			modify: func(r *calculations.LoanRequest) {},
		},
		{
			name: "valid loan without down payment",
			modify: func(r *calculations.LoanRequest) {
				r.Variant = calculations.VariantLoan
				r.DownPayment = nil
				r.Buyout = nil
				r.AnnualRatePercent = 0
				r.AdditionalPayment = 5000
			},
		},
		{
			name:   "invalid principal zero",
			modify: func(r *calculations.LoanRequest) { r.AssetValue = 0 },
			want:   []issue{{FieldAssetValue, CodeNotPositive}},
		},
		{
			name:   "invalid principal NaN",
			modify: func(r *calculations.LoanRequest) { r.AssetValue = math.NaN() },
			want:   []issue{{FieldAssetValue, CodeNotFinite}},
		},
		{
			name:   "invalid rate negative",
			modify: func(r *calculations.LoanRequest) { r.AnnualRatePercent = -1 },
			want:   []issue{{FieldRate, CodeOutOfRange}},
		},
		{
			name:   "rate at upper bound",
			modify: func(r *calculations.LoanRequest) { r.AnnualRatePercent = 1000 },
		},
		{
			name:   "invalid rate above bound",
			modify: func(r *calculations.LoanRequest) { r.AnnualRatePercent = 1000.01 },
			want:   []issue{{FieldRate, CodeTooLarge}},
		},
		{
			name:   "invalid months zero",
			modify: func(r *calculations.LoanRequest) { r.TermMonths = 0 },
			want:   []issue{{FieldMonths, CodeOutOfRange}},
		},
		{
			name:   "invalid months above 600",
			modify: func(r *calculations.LoanRequest) { r.TermMonths = 601 },
			want:   []issue{{FieldMonths, CodeOutOfRange}},
		},
		{
			name:   "down payment percent above 100",
			modify: func(r *calculations.LoanRequest) { r.DownPayment = calculations.Percent(101) },
			want:   []issue{{FieldDownPayment, CodeOutOfRange}},
		},
		{
			name:   "down payment amount equal to asset",
			modify: func(r *calculations.LoanRequest) { r.DownPayment = calculations.Amount(2000000) },
			want:   []issue{{FieldDownPayment, CodeNotLessThanAsset}},
		},
		{
			name:   "negative down payment",
			modify: func(r *calculations.LoanRequest) { r.DownPayment = calculations.Amount(-1) },
			want:   []issue{{FieldDownPayment, CodeNegative}},
		},
		{
			name: "down payment and buyout cover asset",
			modify: func(r *calculations.LoanRequest) {
				r.DownPayment = calculations.Percent(60)
				r.Buyout = calculations.Amount(800000)
			},
			want: []issue{{FieldFinancing, CodeFinancingExceedsAsset}},
		},
		{
			name: "full down payment on loan",
			modify: func(r *calculations.LoanRequest) {
				r.Variant = calculations.VariantLoan
				r.Buyout = nil
				r.DownPayment = calculations.Percent(100)
			},
			want: []issue{{FieldFinancing, CodeFinancingExceedsAsset}},
		},
		{
			name: "buyout on plain loan",
			modify: func(r *calculations.LoanRequest) {
				r.Variant = calculations.VariantLoan
			},
			want: []issue{{FieldBuyout, CodeNotAllowed}},
		},
		{
			name:   "negative additional payment",
			modify: func(r *calculations.LoanRequest) { r.AdditionalPayment = -100 },
			want:   []issue{{FieldAdditionalPayment, CodeNegative}},
		},
		{
			name:   "unknown payment type",
			modify: func(r *calculations.LoanRequest) { r.PaymentType = 0 },
			want:   []issue{{FieldPaymentType, CodeUnknownValue}},
		},
		{
			name: "all violations collected",
			modify: func(r *calculations.LoanRequest) {
				r.AssetValue = -5
				r.AnnualRatePercent = -1
				r.TermMonths = 0
				r.DownPayment = calculations.Percent(150)
				r.Buyout = calculations.Amount(-3)
				r.AdditionalPayment = -1
			},
			want: []issue{
				{FieldAssetValue, CodeNotPositive},
				{FieldRate, CodeOutOfRange},
				{FieldMonths, CodeOutOfRange},
				{FieldDownPayment, CodeOutOfRange},
				{FieldBuyout, CodeNegative},
				{FieldAdditionalPayment, CodeNegative},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.modify(&req)

			got := ValidateLoanRequest(cfg, req)
			assert.Len(t, got, len(tt.want), "violations: %v", got)
			for _, w := range tt.want {
				assert.True(t, got.Has(w.field, w.code), "missing %s/%s in %v", w.field, w.code, got)
			}
			if len(tt.want) == 0 {
				assert.NoError(t, got.Err())
			}
		})
	}
}

func TestValidateLoanRequestUsesConfiguredLimits(t *testing.T) {
	cfg := config.Default()
	cfg.MaxMonths = 120
	cfg.MaxPrincipal = 1000000

	req := validRequest()
	req.TermMonths = 121

	got := ValidateLoanRequest(cfg, req)
	assert.True(t, got.Has(FieldMonths, CodeOutOfRange))
	assert.True(t, got.Has(FieldAssetValue, CodeTooLarge))
}

func TestRateHardLimitIgnoresConfiguredLimit(t *testing.T) {
	tests := []struct {
		name    string
		maxRate float64
	}{
		{name: "limit above hard cap", maxRate: 5000},
		{name: "limit NaN", maxRate: math.NaN()},
		{name: "limit Inf", maxRate: math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.MaxRate = tt.maxRate

			req := validRequest()
			req.AnnualRatePercent = 2500
			assert.True(t, ValidateLoanRequest(cfg, req).Has(FieldRate, CodeTooLarge))

			req.AnnualRatePercent = 1000
			assert.Empty(t, ValidateLoanRequest(cfg, req))
		})
	}
}

func TestValidateTermParts(t *testing.T) {
	cfg := config.Default()

	assert.Empty(t, ValidateTermParts(cfg, 5, 0))
	assert.Empty(t, ValidateTermParts(cfg, 0, 1))
	assert.Empty(t, ValidateTermParts(cfg, 50, 0))
	assert.True(t, ValidateTermParts(cfg, 2, 12).Has(FieldExtraMonths, CodeOutOfRange))
	assert.True(t, ValidateTermParts(cfg, -1, 0).Has(FieldYears, CodeNegative))
	assert.True(t, ValidateTermParts(cfg, 0, 0).Has(FieldMonths, CodeOutOfRange))
	assert.True(t, ValidateTermParts(cfg, 50, 1).Has(FieldMonths, CodeOutOfRange))
}

func TestViolationsError(t *testing.T) {
	var err error = Violations{
		{Field: FieldRate, Code: CodeOutOfRange, Message: "bad"},
		{Field: FieldMonths, Code: CodeOutOfRange, Message: "worse"},
	}

	var violations Violations
	assert.True(t, errors.As(err, &violations))
	assert.Len(t, violations, 2)
	assert.Contains(t, err.Error(), "annual_rate_percent: bad")
	assert.Contains(t, err.Error(), "months: worse")
	assert.Nil(t, Violations(nil).Err())
}
