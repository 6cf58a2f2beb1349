package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/config"
	"github.com/cloud-ru/loan-engine-go/internal/engine"
	"github.com/cloud-ru/loan-engine-go/internal/validators"
)

// loanFlags параметры расчета, общие для всех команд
type loanFlags struct {
	variant         string
	principal       float64
	rate            float64
	months          int
	years           int
	extraMonths     int
	downPayment     float64
	downPaymentKind string
	buyout          float64
	buyoutKind      string
	additional      float64
	paymentType     string
}

func (f *loanFlags) register(c *cobra.Command) {
	fs := c.Flags()
	fs.StringVar(&f.variant, "variant", "loan", "Вид калькулятора: loan, leasing, auto_loan")
	fs.Float64VarP(&f.principal, "principal", "p", 0, "Сумма кредита или стоимость имущества")
	fs.Float64VarP(&f.rate, "rate", "r", 0, "Годовая ставка, %")
	fs.IntVarP(&f.months, "months", "m", 0, "Срок в месяцах")
	fs.IntVar(&f.years, "years", 0, "Срок в годах (вместе с --extra-months)")
	fs.IntVar(&f.extraMonths, "extra-months", 0, "Дополнительные месяцы к сроку в годах")
	fs.Float64Var(&f.downPayment, "down-payment", 0, "Первоначальный взнос")
	fs.StringVar(&f.downPaymentKind, "down-payment-kind", "amount", "Вид взноса: amount или percent")
	fs.Float64Var(&f.buyout, "buyout", 0, "Выкупная стоимость")
	fs.StringVar(&f.buyoutKind, "buyout-kind", "amount", "Вид выкупа: amount или percent")
	fs.Float64VarP(&f.additional, "additional", "a", 0, "Ежемесячный досрочный платеж")
	fs.StringVarP(&f.paymentType, "type", "t", "annuity", "Тип платежа: annuity или differentiated")
}

func (f *loanFlags) request(c *cobra.Command, limits validators.Limits) (calculations.LoanRequest, error) {
	req := calculations.LoanRequest{
		AssetValue:        f.principal,
		AnnualRatePercent: f.rate,
		TermMonths:        f.months,
		AdditionalPayment: f.additional,
	}

	switch f.variant {
	case "loan":
		req.Variant = calculations.VariantLoan
	case "leasing":
		req.Variant = calculations.VariantLeasing
	case "auto_loan":
		req.Variant = calculations.VariantAutoLoan
	default:
		return req, fmt.Errorf("unknown variant %q", f.variant)
	}

	if !c.Flags().Changed("months") && (c.Flags().Changed("years") || c.Flags().Changed("extra-months")) {
		if err := validators.ValidateTermParts(limits, f.years, f.extraMonths).Err(); err != nil {
			return req, err
		}
		req.TermMonths = calculations.TermMonths(f.years, f.extraMonths)
	}

	pt, err := calculations.ParsePaymentType(f.paymentType)
	if err != nil {
		return req, err
	}
	req.PaymentType = pt

	if c.Flags().Changed("down-payment") {
		if req.DownPayment, err = calculations.ParseShare(f.downPayment, f.downPaymentKind); err != nil {
			return req, err
		}
	}
	if c.Flags().Changed("buyout") {
		if req.Buyout, err = calculations.ParseShare(f.buyout, f.buyoutKind); err != nil {
			return req, err
		}
	}

	return req, nil
}

// NewRootCmd собирает дерево команд с ограничениями из cfg
func NewRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "loancalc",
		Short: "Калькулятор кредита, лизинга и автокредита",
		Long: `loancalc строит график платежей и считает переплату.

Команды:
  schedule - график платежей и итоги
  compare  - сравнение аннуитетного и дифференцированного платежей
  effect   - экономия от ежемесячных досрочных платежей`,
		SilenceUsage: true,
	}

	eng := engine.New(cfg)
	root.AddCommand(newScheduleCmd(eng), newCompareCmd(eng), newEffectCmd(eng))
	return root
}

func Execute() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return NewRootCmd(cfg).Execute()
}
