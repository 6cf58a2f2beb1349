package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/loan-engine-go/internal/engine"
)

func newCompareCmd(eng *engine.Engine) *cobra.Command {
	var flags loanFlags

	c := &cobra.Command{
		Use:   "compare",
		Short: "Сравнение аннуитетного и дифференцированного платежей",
		RunE: func(c *cobra.Command, args []string) error {
			req, err := flags.request(c, eng.Limits())
			if err != nil {
				return err
			}
			result, err := eng.Compare(req)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(c.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "\tАннуитетный\tДифференцированный")
			fmt.Fprintf(tw, "Первый платеж\t%s\t%s\n", money(result.Annuity.FirstPayment()), money(result.Differentiated.FirstPayment()))
			fmt.Fprintf(tw, "Последний платеж\t%s\t%s\n", money(result.Annuity.LastPayment()), money(result.Differentiated.LastPayment()))
			fmt.Fprintf(tw, "Проценты\t%s\t%s\n", money(result.Annuity.TotalInterest), money(result.Differentiated.TotalInterest))
			fmt.Fprintf(tw, "Сумма платежей\t%s\t%s\n", money(result.Annuity.TotalPayments), money(result.Differentiated.TotalPayments))
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "\nВыгоднее: %s, экономия %s\n%s\n", result.CheaperType, money(result.Savings), result.Recommendation)
			return nil
		},
	}

	flags.register(c)
	return c
}

func newEffectCmd(eng *engine.Engine) *cobra.Command {
	var flags loanFlags

	c := &cobra.Command{
		Use:   "effect",
		Short: "Экономия от ежемесячных досрочных платежей",
		RunE: func(c *cobra.Command, args []string) error {
			req, err := flags.request(c, eng.Limits())
			if err != nil {
				return err
			}
			result, err := eng.OverpaymentEffect(req)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "Срок: %d мес. вместо %d\n", result.WithAdditional.EffectiveTermMonths, result.WithoutAdditional.EffectiveTermMonths)
			fmt.Fprintf(out, "Сокращение срока: %d мес.\n", result.MonthsSaved)
			fmt.Fprintf(out, "Экономия на процентах: %s\n", money(result.InterestSaved))
			return nil
		},
	}

	flags.register(c)
	return c
}
