package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// ValidationViolations счетчик нарушений входных данных по полям
	ValidationViolations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_violations_total",
			Help: "Количество нарушений входных данных",
		},
		[]string{"field", "code"},
	)

	// APICalls счетчик вызовов API
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Вызовы API инструментов",
		},
		[]string{"service", "endpoint", "status"},
	)

	// EffectiveTerm фактический срок построенных графиков
	EffectiveTerm = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schedule_effective_term_months",
			Help:    "Фактический срок графика в месяцах",
			Buckets: []float64{6, 12, 24, 36, 60, 120, 240, 360, 600},
		},
		[]string{"payment_type"},
	)

	// CacheLookups попадания и промахи кэша результатов
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_lookups_total",
			Help: "Обращения к кэшу результатов",
		},
		[]string{"result"},
	)
)
