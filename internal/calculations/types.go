package calculations

import (
	"fmt"
	"strings"
)

// MaxTermMonths жесткий предел длины графика (50 лет)
const MaxTermMonths = 600

// MaxAnnualRatePercent жесткий предел годовой ставки
const MaxAnnualRatePercent = 1000.0

// PaymentType тип платежа по кредиту
type PaymentType int

const (
	// Annuity аннуитетный платеж: одинаковый каждый месяц
	Annuity PaymentType = iota + 1
	// Differentiated дифференцированный платеж: равные доли основного долга
	Differentiated
)

func (t PaymentType) String() string {
	switch t {
	case Annuity:
		return "annuity"
	case Differentiated:
		return "differentiated"
	default:
		return fmt.Sprintf("PaymentType(%d)", int(t))
	}
}

// ParsePaymentType разбирает тип платежа из строки
func ParsePaymentType(s string) (PaymentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "annuity", "аннуитетный":
		return Annuity, nil
	case "differentiated", "differential", "дифференцированный":
		return Differentiated, nil
	default:
		return 0, fmt.Errorf("unknown payment type %q", s)
	}
}

// Variant вид калькулятора, для которого строится график
type Variant int

const (
	// VariantLoan калькулятор досрочного погашения кредита, без выкупа
	VariantLoan Variant = iota
	// VariantLeasing лизинг с авансом и выкупной стоимостью
	VariantLeasing
	// VariantAutoLoan автокредит с первоначальным взносом и остаточным платежом
	VariantAutoLoan
)

func (v Variant) String() string {
	switch v {
	case VariantLoan:
		return "loan"
	case VariantLeasing:
		return "leasing"
	case VariantAutoLoan:
		return "auto_loan"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// AllowsBuyout сообщает, допускает ли вид калькулятора выкупной платеж
func (v Variant) AllowsBuyout() bool {
	return v == VariantLeasing || v == VariantAutoLoan
}

// Share сумма, заданная либо процентом от стоимости, либо абсолютным значением.
// Реализации: Percent и Amount.
type Share interface {
	// Resolve переводит долю в абсолютную сумму относительно base
	Resolve(base float64) float64
	// Value исходное значение, введенное пользователем
	Value() float64
	isShare()
}

// Percent доля в процентах от стоимости
type Percent float64

// Resolve returns base*p/100.
func (p Percent) Resolve(base float64) float64 { return base * float64(p) / 100.0 }

func (p Percent) Value() float64 { return float64(p) }

func (Percent) isShare() {}

// Amount абсолютная сумма
type Amount float64

func (a Amount) Resolve(float64) float64 { return float64(a) }

func (a Amount) Value() float64 { return float64(a) }

func (Amount) isShare() {}

// ParseShare собирает Share из значения и вида ("percent" или "amount")
func ParseShare(value float64, kind string) (Share, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "amount", "sum":
		return Amount(value), nil
	case "percent", "%":
		return Percent(value), nil
	default:
		return nil, fmt.Errorf("unknown amount kind %q", kind)
	}
}

// ShareKind возвращает строковое имя вида доли
func ShareKind(s Share) string {
	switch s.(type) {
	case Percent:
		return "percent"
	case Amount:
		return "amount"
	default:
		return ""
	}
}

// TermMonths переводит срок в годах и месяцах в общее число месяцев
func TermMonths(years, extraMonths int) int {
	return years*12 + extraMonths
}

// LoanRequest входные данные одного расчета. Значение не изменяется после создания.
type LoanRequest struct {
	Variant           Variant
	AssetValue        float64 // сумма кредита или стоимость имущества
	AnnualRatePercent float64
	TermMonths        int
	DownPayment       Share // nil означает отсутствие взноса
	AdditionalPayment float64
	PaymentType       PaymentType
	Buyout            Share // nil означает отсутствие выкупа
}

// MonthlyRate месячная ставка в долях
func (r LoanRequest) MonthlyRate() float64 {
	return r.AnnualRatePercent / 100.0 / 12.0
}

// WithPaymentType возвращает копию запроса с другим типом платежа
func (r LoanRequest) WithPaymentType(t PaymentType) LoanRequest {
	r.PaymentType = t
	return r
}

// WithAdditionalPayment возвращает копию запроса с другим досрочным платежом
func (r LoanRequest) WithAdditionalPayment(amount float64) LoanRequest {
	r.AdditionalPayment = amount
	return r
}

// FinancingPlan суммы, рассчитанные из входных данных до построения графика
type FinancingPlan struct {
	FinancedAmount    float64 `json:"financed_amount"`
	DownPaymentAmount float64 `json:"down_payment_amount"`
	BuyoutAmount      float64 `json:"buyout_amount"`
}

// ScheduleEntry представляет одну запись в графике платежей
type ScheduleEntry struct {
	Period           int     `json:"period"`
	Payment          float64 `json:"payment"`
	Interest         float64 `json:"interest"`
	Principal        float64 `json:"principal"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// AmortizationResult результат расчета кредита или лизинга
type AmortizationResult struct {
	Schedule              []ScheduleEntry `json:"schedule"`
	PaymentType           string          `json:"payment_type"`
	// MonthlyPayment номинальный платеж первого месяца, округленный до копеек.
	// Из-за округления по нарастающему итогу платежи в графике могут
	// отличаться от него на одну-две копейки.
	MonthlyPayment        float64         `json:"monthly_payment"`
	TotalPayments         float64         `json:"total_payments"`
	TotalInterest         float64         `json:"total_interest"`
	TotalCost             float64         `json:"total_cost"`
	OverpaymentAmount     float64         `json:"overpayment_amount"`
	OverpaymentPercentage float64         `json:"overpayment_percentage"`
	EffectiveTermMonths   int             `json:"effective_term_months"`
	RequestedTermMonths   int             `json:"requested_term_months"`
	FinancingPlan         FinancingPlan   `json:"financing_plan"`
	BuyoutAmount          float64         `json:"buyout_amount"`
}

// FirstPayment платеж первого месяца
func (r *AmortizationResult) FirstPayment() float64 {
	if len(r.Schedule) == 0 {
		return 0
	}
	return r.Schedule[0].Payment
}

// LastPayment платеж последнего месяца
func (r *AmortizationResult) LastPayment() float64 {
	if len(r.Schedule) == 0 {
		return 0
	}
	return r.Schedule[len(r.Schedule)-1].Payment
}

// ComparisonResult представляет результат сравнения типов платежа
type ComparisonResult struct {
	Annuity        AmortizationResult `json:"annuity"`
	Differentiated AmortizationResult `json:"differentiated"`
	TotalPaidDiff  float64            `json:"total_paid_diff"`
	InterestDiff   float64            `json:"interest_diff"`
	CheaperType    string             `json:"cheaper_type"`
	Savings        float64            `json:"savings"`
	Recommendation string             `json:"recommendation"`
}

// OverpaymentEffect эффект досрочных платежей по сравнению с графиком без них
type OverpaymentEffect struct {
	WithAdditional    AmortizationResult `json:"with_additional"`
	WithoutAdditional AmortizationResult `json:"without_additional"`
	MonthsSaved       int                `json:"months_saved"`
	InterestSaved     float64            `json:"interest_saved"`
}
