package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/config"
	"github.com/cloud-ru/loan-engine-go/internal/metrics"
	"github.com/cloud-ru/loan-engine-go/internal/service"
	"github.com/cloud-ru/loan-engine-go/internal/validators"
)

// ToolHandler представляет обработчик инструмента
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Tool описание инструмента для списка доступных расчетов
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Handler     ToolHandler `json:"-"`
}

const (
	LoanOverpaymentTool     = "loan_overpayment"
	LeasingTool             = "leasing"
	AutoLoanTool            = "auto_loan"
	ComparePaymentTypesTool = "compare_payment_types"
	OverpaymentEffectTool   = "overpayment_effect"
)

// Registry набор инструментов по имени
type Registry map[string]Tool

// NewRegistry регистрирует все инструменты калькуляторов
func NewRegistry(cfg *config.Config, svc *service.Calculator, tracer trace.Tracer) Registry {
	r := Registry{}
	r.add(LoanOverpaymentTool, "График кредита с досрочными платежами",
		LoanOverpaymentHandler(cfg, svc, tracer))
	r.add(LeasingTool, "График лизинга с авансом и выкупной стоимостью",
		LeasingHandler(cfg, svc, tracer))
	r.add(AutoLoanTool, "График автокредита с первоначальным взносом и остаточным платежом",
		AutoLoanHandler(cfg, svc, tracer))
	r.add(ComparePaymentTypesTool, "Сравнение аннуитетного и дифференцированного платежей",
		ComparePaymentTypesHandler(cfg, svc, tracer))
	r.add(OverpaymentEffectTool, "Экономия от досрочных платежей",
		OverpaymentEffectHandler(cfg, svc, tracer))
	return r
}

func (r Registry) add(name, description string, h ToolHandler) {
	r[name] = Tool{Name: name, Description: description, Handler: h}
}

// List инструменты в алфавитном порядке
func (r Registry) List() []Tool {
	list := make([]Tool, 0, len(r))
	for _, t := range r {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// LoanOverpaymentHandler обрабатывает запрос на расчет кредита с досрочными платежами
func LoanOverpaymentHandler(cfg *config.Config, svc *service.Calculator, tracer trace.Tracer) ToolHandler {
	return scheduleHandler(LoanOverpaymentTool, calculations.VariantLoan, cfg, svc, tracer)
}

// LeasingHandler обрабатывает запрос на расчет лизинга
func LeasingHandler(cfg *config.Config, svc *service.Calculator, tracer trace.Tracer) ToolHandler {
	return scheduleHandler(LeasingTool, calculations.VariantLeasing, cfg, svc, tracer)
}

// AutoLoanHandler обрабатывает запрос на расчет автокредита
func AutoLoanHandler(cfg *config.Config, svc *service.Calculator, tracer trace.Tracer) ToolHandler {
	return scheduleHandler(AutoLoanTool, calculations.VariantAutoLoan, cfg, svc, tracer)
}

func scheduleHandler(toolName string, variant calculations.Variant, cfg *config.Config,
	svc *service.Calculator, tracer trace.Tracer) ToolHandler {

	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return invoke(ctx, toolName, variant, cfg, tracer, params,
			func(ctx context.Context, req calculations.LoanRequest) (interface{}, error) {
				result, err := svc.Calculate(ctx, toolName, req)
				if err != nil {
					return nil, err
				}
				trace.SpanFromContext(ctx).SetAttributes(
					attribute.Float64("monthly_payment", result.MonthlyPayment),
					attribute.Float64("total_payments", result.TotalPayments),
					attribute.Int("effective_term_months", result.EffectiveTermMonths),
				)
				return result, nil
			})
	}
}

// ComparePaymentTypesHandler обрабатывает запрос на сравнение типов платежа
func ComparePaymentTypesHandler(cfg *config.Config, svc *service.Calculator, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return invoke(ctx, ComparePaymentTypesTool, variantParam(params), cfg, tracer, params,
			func(ctx context.Context, req calculations.LoanRequest) (interface{}, error) {
				return svc.Compare(ctx, ComparePaymentTypesTool, req)
			})
	}
}

// OverpaymentEffectHandler обрабатывает запрос на расчет экономии от досрочных платежей
func OverpaymentEffectHandler(cfg *config.Config, svc *service.Calculator, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		return invoke(ctx, OverpaymentEffectTool, variantParam(params), cfg, tracer, params,
			func(ctx context.Context, req calculations.LoanRequest) (interface{}, error) {
				return svc.OverpaymentEffect(ctx, OverpaymentEffectTool, req)
			})
	}
}

// variantParam вид калькулятора для сравнительных инструментов
func variantParam(params map[string]interface{}) calculations.Variant {
	s, _ := stringParam(params, "variant")
	switch s {
	case "leasing":
		return calculations.VariantLeasing
	case "auto_loan":
		return calculations.VariantAutoLoan
	default:
		return calculations.VariantLoan
	}
}

func invoke(ctx context.Context, toolName string, variant calculations.Variant, cfg *config.Config,
	tracer trace.Tracer, params map[string]interface{},
	run func(context.Context, calculations.LoanRequest) (interface{}, error)) (interface{}, error) {

	ctx, span := tracer.Start(ctx, toolName)
	defer span.End()

	metrics.APICalls.WithLabelValues("tools", toolName, "started").Inc()

	req, parsed := parseLoanRequest(cfg, params, variant)
	span.SetAttributes(
		attribute.String("variant", variant.String()),
		attribute.Float64("asset_value", req.AssetValue),
		attribute.Float64("annual_rate_percent", req.AnnualRatePercent),
		attribute.Int("months", req.TermMonths),
		attribute.Float64("additional_payment", req.AdditionalPayment),
		attribute.String("payment_type", req.PaymentType.String()),
	)

	// Валидация
	if len(parsed) > 0 {
		violations := mergeViolations(parsed, validators.ValidateLoanRequest(cfg, req))
		return nil, validationFailure(span, toolName, violations)
	}

	// Расчет
	result, err := run(ctx, req)
	if err != nil {
		var violations validators.Violations
		if errors.As(err, &violations) {
			return nil, validationFailure(span, toolName, violations)
		}
		span.SetAttributes(attribute.String("error", "calculation_error"))
		metrics.ToolCalls.WithLabelValues(toolName, "error").Inc()
		metrics.CalculationErrors.WithLabelValues(toolName, "calculation").Inc()
		metrics.APICalls.WithLabelValues("tools", toolName, "error").Inc()
		return nil, fmt.Errorf("ошибка при выполнении расчета: %w", err)
	}

	span.SetAttributes(attribute.Bool("success", true))
	metrics.ToolCalls.WithLabelValues(toolName, "success").Inc()
	metrics.APICalls.WithLabelValues("tools", toolName, "success").Inc()

	return result, nil
}

func validationFailure(span trace.Span, toolName string, violations validators.Violations) error {
	span.SetAttributes(
		attribute.String("error", "validation_error"),
		attribute.Int("violations", len(violations)),
	)
	metrics.ToolCalls.WithLabelValues(toolName, "validation_error").Inc()
	metrics.CalculationErrors.WithLabelValues(toolName, "validation").Inc()
	metrics.APICalls.WithLabelValues("tools", toolName, "error").Inc()
	return violations
}
