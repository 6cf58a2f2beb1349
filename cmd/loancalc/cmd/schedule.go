package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/engine"
	"github.com/cloud-ru/loan-engine-go/internal/export"
)

func newScheduleCmd(eng *engine.Engine) *cobra.Command {
	var flags loanFlags
	var format string

	c := &cobra.Command{
		Use:   "schedule",
		Short: "График платежей и итоги",
		RunE: func(c *cobra.Command, args []string) error {
			req, err := flags.request(c, eng.Limits())
			if err != nil {
				return err
			}
			result, err := eng.Calculate(req)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			switch format {
			case "csv":
				return export.WriteScheduleCSV(out, result.Schedule)
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			case "table":
				printSummary(out, result)
				fmt.Fprintln(out)
				return printSchedule(out, result.Schedule)
			default:
				return fmt.Errorf("unknown format %q", format)
			}
		},
	}

	flags.register(c)
	c.Flags().StringVarP(&format, "format", "f", "table", "Формат вывода: table, csv, json")
	return c
}

// money форматирует сумму с разделителями разрядов
func money(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func printSummary(w io.Writer, r *calculations.AmortizationResult) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Сумма финансирования:\t%s\n", money(r.FinancingPlan.FinancedAmount))
	if r.FinancingPlan.DownPaymentAmount > 0 {
		fmt.Fprintf(tw, "Первоначальный взнос:\t%s\n", money(r.FinancingPlan.DownPaymentAmount))
	}
	if r.BuyoutAmount > 0 {
		fmt.Fprintf(tw, "Выкупной платеж:\t%s\n", money(r.BuyoutAmount))
	}
	fmt.Fprintf(tw, "Ежемесячный платеж:\t%s\n", money(r.MonthlyPayment))
	fmt.Fprintf(tw, "Сумма платежей:\t%s\n", money(r.TotalPayments))
	fmt.Fprintf(tw, "Проценты:\t%s\n", money(r.TotalInterest))
	fmt.Fprintf(tw, "Переплата:\t%s (%.2f%%)\n", money(r.OverpaymentAmount), r.OverpaymentPercentage)
	fmt.Fprintf(tw, "Полная стоимость:\t%s\n", money(r.TotalCost))
	fmt.Fprintf(tw, "Срок:\t%d из %d мес.\n", r.EffectiveTermMonths, r.RequestedTermMonths)
	tw.Flush()
}

func printSchedule(w io.Writer, schedule []calculations.ScheduleEntry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Месяц\tПлатеж\tПроценты\tОсновной долг\tОстаток\t")
	for _, e := range schedule {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t\n",
			e.Period, money(e.Payment), money(e.Interest), money(e.Principal), money(e.RemainingBalance))
	}
	return tw.Flush()
}
