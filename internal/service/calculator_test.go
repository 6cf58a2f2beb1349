package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-ru/loan-engine-go/internal/cache"
	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/config"
	"github.com/cloud-ru/loan-engine-go/internal/engine"
	"github.com/cloud-ru/loan-engine-go/internal/validators"
)

type failingCache struct{ sets int }

func (c *failingCache) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (c *failingCache) Set(context.Context, string, []byte) error {
	c.sets++
	return errors.New("redis unavailable")
}

func newCalculator(c cache.Cache) *Calculator {
	log, _ := test.NewNullLogger()
	return NewCalculator(engine.New(config.Default()), c, log)
}

func request() calculations.LoanRequest {
	return calculations.LoanRequest{
		AssetValue:        1000000,
		AnnualRatePercent: 12,
		TermMonths:        60,
		PaymentType:       calculations.Annuity,
	}
}

func TestCalculatorCachesResults(t *testing.T) {
	mem := cache.NewMemoryCache(time.Minute)
	calc := newCalculator(mem)
	ctx := context.Background()

	first, err := calc.Calculate(ctx, "loan_overpayment", request())
	require.NoError(t, err)
	assert.Equal(t, 1, mem.Len())

	second, err := calc.Calculate(ctx, "loan_overpayment", request())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, mem.Len())
}

func TestCalculatorDistinguishesShareKinds(t *testing.T) {
	mem := cache.NewMemoryCache(time.Minute)
	calc := newCalculator(mem)
	ctx := context.Background()

	percent := request()
	percent.DownPayment = calculations.Percent(20)
	amount := request()
	amount.DownPayment = calculations.Amount(20)

	byPercent, err := calc.Calculate(ctx, "loan_overpayment", percent)
	require.NoError(t, err)
	byAmount, err := calc.Calculate(ctx, "loan_overpayment", amount)
	require.NoError(t, err)

	assert.Equal(t, 800000.0, byPercent.FinancingPlan.FinancedAmount)
	assert.Equal(t, 999980.0, byAmount.FinancingPlan.FinancedAmount)
	assert.Equal(t, 2, mem.Len())
}

func TestCalculatorIgnoresCacheErrors(t *testing.T) {
	fc := &failingCache{}
	calc := newCalculator(fc)

	result, err := calc.Calculate(context.Background(), "loan_overpayment", request())
	require.NoError(t, err)
	assert.Equal(t, 22244.45, result.MonthlyPayment)
	assert.Equal(t, 1, fc.sets)
}

func TestCalculatorWithoutCache(t *testing.T) {
	calc := newCalculator(nil)

	result, err := calc.Compare(context.Background(), "compare_payment_types", request())
	require.NoError(t, err)
	assert.Equal(t, "differentiated", result.CheaperType)
}

func TestCalculatorViolations(t *testing.T) {
	mem := cache.NewMemoryCache(time.Minute)
	calc := newCalculator(mem)

	req := request()
	req.TermMonths = 0
	_, err := calc.OverpaymentEffect(context.Background(), "overpayment_effect", req)

	var violations validators.Violations
	require.True(t, errors.As(err, &violations))
	assert.True(t, violations.Has(validators.FieldMonths, validators.CodeOutOfRange))
	assert.Equal(t, 0, mem.Len())
}
