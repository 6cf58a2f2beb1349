// Package export выгружает график платежей в CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
)

// Header заголовок CSV, порядок столбцов фиксирован
var Header = []string{"period", "payment", "interest", "principal", "remaining_balance"}

// WriteScheduleCSV пишет по одной строке на месяц в порядке периодов
func WriteScheduleCSV(w io.Writer, schedule []calculations.ScheduleEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range schedule {
		record := []string{
			strconv.Itoa(e.Period),
			money(e.Payment),
			money(e.Interest),
			money(e.Principal),
			money(e.RemainingBalance),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", e.Period, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
