package calculations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnuityPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal float64
		rate      float64
		months    int
		want      float64
	}{
		{name: "basic annuity", principal: 1000000, rate: 0.01, months: 60, want: 22244.45},
		{name: "zero rate", principal: 100000, rate: 0, months: 10, want: 10000},
		{name: "single month", principal: 1000, rate: 0.01, months: 1, want: 1010},
		{name: "no months", principal: 1000, rate: 0.01, months: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AnnuityPayment(tt.principal, tt.rate, tt.months), 0.005)
		})
	}
}

func TestStrategySplit(t *testing.T) {
	annuity, err := NewStrategy(Annuity, 1000000, 0.01, 60)
	require.NoError(t, err)

	split := annuity.Split(1000000, 60)
	assert.InDelta(t, 10000, split.Interest, 1e-9)
	assert.InDelta(t, split.Payment-split.Interest, split.Principal, 1e-9)
	assert.Equal(t, annuity.NominalPayment(), split.Payment)

	differentiated, err := NewStrategy(Differentiated, 1000000, 0.01, 60)
	require.NoError(t, err)

	split = differentiated.Split(500000, 30)
	assert.InDelta(t, 16666.6667, split.Principal, 1e-4)
	assert.InDelta(t, 5000, split.Interest, 1e-9)
	assert.InDelta(t, 21666.6667, split.Payment, 1e-4)
	assert.InDelta(t, 26666.6667, differentiated.NominalPayment(), 1e-4)
}

func TestNewStrategyErrors(t *testing.T) {
	_, err := NewStrategy(Annuity, 1000, 0.01, 0)
	assert.Error(t, err)

	_, err = NewStrategy(PaymentType(0), 1000, 0.01, 12)
	assert.Error(t, err)
}

func TestParsePaymentType(t *testing.T) {
	tests := []struct {
		input   string
		want    PaymentType
		wantErr bool
	}{
		{input: "annuity", want: Annuity},
		{input: "", want: Annuity},
		{input: " Differentiated ", want: Differentiated},
		{input: "differential", want: Differentiated},
		{input: "balloon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePaymentType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShare(t *testing.T) {
	s, err := ParseShare(20, "percent")
	require.NoError(t, err)
	assert.Equal(t, Percent(20), s)
	assert.Equal(t, 400000.0, s.Resolve(2000000))
	assert.Equal(t, "percent", ShareKind(s))

	s, err = ParseShare(150000, "")
	require.NoError(t, err)
	assert.Equal(t, Amount(150000), s)
	assert.Equal(t, 150000.0, s.Resolve(2000000))
	assert.Equal(t, "amount", ShareKind(s))

	_, err = ParseShare(1, "fraction")
	assert.Error(t, err)

	assert.Equal(t, 0.0, ResolveAmount(nil, 1000))
}

func TestTermMonths(t *testing.T) {
	assert.Equal(t, 60, TermMonths(5, 0))
	assert.Equal(t, 27, TermMonths(2, 3))
}

func TestResolveFinancingLoan(t *testing.T) {
	plan, err := ResolveFinancing(LoanRequest{AssetValue: 1000000, DownPayment: Amount(250000)})
	require.NoError(t, err)

	assert.Equal(t, FinancingPlan{FinancedAmount: 750000, DownPaymentAmount: 250000}, plan)
}
