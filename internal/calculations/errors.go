package calculations

import (
	"errors"
	"fmt"
)

var (
	// ErrNegativeFinancedAmount аванс и выкуп покрывают всю стоимость или больше
	ErrNegativeFinancedAmount = errors.New("negative financed amount")
	// ErrCalculationInconsistency нарушен внутренний инвариант расчета
	ErrCalculationInconsistency = errors.New("calculation inconsistency")
)

// InconsistencyError описывает, на каком месяце и почему расчет стал некорректным
type InconsistencyError struct {
	Period int
	Reason string
}

func (e *InconsistencyError) Error() string {
	if e.Period > 0 {
		return fmt.Sprintf("calculation inconsistency at period %d: %s", e.Period, e.Reason)
	}
	return fmt.Sprintf("calculation inconsistency: %s", e.Reason)
}

func (e *InconsistencyError) Unwrap() error {
	return ErrCalculationInconsistency
}

func inconsistency(period int, format string, args ...interface{}) error {
	return &InconsistencyError{Period: period, Reason: fmt.Sprintf(format, args...)}
}
