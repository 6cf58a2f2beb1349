package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/cloud-ru/loan-engine-go/internal/cache"
	"github.com/cloud-ru/loan-engine-go/internal/calculations"
	"github.com/cloud-ru/loan-engine-go/internal/engine"
	"github.com/cloud-ru/loan-engine-go/internal/metrics"
	"github.com/cloud-ru/loan-engine-go/internal/validators"
)

// Calculator выполняет расчеты через engine и кэширует готовые результаты
type Calculator struct {
	engine *engine.Engine
	cache  cache.Cache
	log    logrus.FieldLogger
}

// NewCalculator создает сервис; cache может быть nil
func NewCalculator(e *engine.Engine, c cache.Cache, log logrus.FieldLogger) *Calculator {
	return &Calculator{engine: e, cache: c, log: log}
}

// requestKey однозначное представление запроса для ключа кэша
type requestKey struct {
	Variant           string  `json:"variant"`
	AssetValue        float64 `json:"asset_value"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermMonths        int     `json:"months"`
	DownPayment       float64 `json:"down_payment"`
	DownPaymentKind   string  `json:"down_payment_kind"`
	AdditionalPayment float64 `json:"additional_payment"`
	PaymentType       string  `json:"payment_type"`
	Buyout            float64 `json:"buyout"`
	BuyoutKind        string  `json:"buyout_kind"`
}

func keyOf(req calculations.LoanRequest) requestKey {
	k := requestKey{
		Variant:           req.Variant.String(),
		AssetValue:        req.AssetValue,
		AnnualRatePercent: req.AnnualRatePercent,
		TermMonths:        req.TermMonths,
		AdditionalPayment: req.AdditionalPayment,
		PaymentType:       req.PaymentType.String(),
	}
	if req.DownPayment != nil {
		k.DownPayment = req.DownPayment.Value()
		k.DownPaymentKind = calculations.ShareKind(req.DownPayment)
	}
	if req.Buyout != nil {
		k.Buyout = req.Buyout.Value()
		k.BuyoutKind = calculations.ShareKind(req.Buyout)
	}
	return k
}

// Calculate строит график платежей
func (s *Calculator) Calculate(ctx context.Context, operation string, req calculations.LoanRequest) (*calculations.AmortizationResult, error) {
	result, err := cached(ctx, s, operation, req, s.engine.Calculate)
	if err == nil {
		metrics.EffectiveTerm.WithLabelValues(result.PaymentType).Observe(float64(result.EffectiveTermMonths))
	}
	return result, err
}

// Compare сравнивает аннуитетный и дифференцированный графики
func (s *Calculator) Compare(ctx context.Context, operation string, req calculations.LoanRequest) (*calculations.ComparisonResult, error) {
	return cached(ctx, s, operation, req, s.engine.Compare)
}

// OverpaymentEffect считает экономию от досрочных платежей
func (s *Calculator) OverpaymentEffect(ctx context.Context, operation string, req calculations.LoanRequest) (*calculations.OverpaymentEffect, error) {
	return cached(ctx, s, operation, req, s.engine.OverpaymentEffect)
}

func cached[T any](ctx context.Context, s *Calculator, operation string, req calculations.LoanRequest,
	calc func(calculations.LoanRequest) (*T, error)) (*T, error) {

	log := s.log.WithField("operation", operation)

	var key string
	if s.cache != nil {
		k, err := cache.Key(operation, keyOf(req))
		if err != nil {
			log.WithError(err).Warn("не удалось построить ключ кэша")
		} else {
			key = k
		}
	}

	if key != "" {
		if payload, ok := s.cache.Get(ctx, key); ok {
			var result T
			if err := json.Unmarshal(payload, &result); err == nil {
				metrics.CacheLookups.WithLabelValues("hit").Inc()
				log.Debug("результат взят из кэша")
				return &result, nil
			}
			log.Warn("поврежденная запись кэша, расчет выполняется заново")
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	result, err := calc(req)
	if err != nil {
		var violations validators.Violations
		if errors.As(err, &violations) {
			for _, v := range violations {
				metrics.ValidationViolations.WithLabelValues(v.Field, string(v.Code)).Inc()
			}
			log.WithField("violations", len(violations)).Info("запрос не прошел проверку")
		} else {
			log.WithError(err).Error("ошибка при выполнении расчета")
		}
		return nil, err
	}

	if key != "" {
		payload, err := json.Marshal(result)
		if err == nil {
			err = s.cache.Set(ctx, key, payload)
		}
		// кэш необязателен, ошибка записи не прерывает расчет
		if err != nil {
			log.WithError(err).Warn("не удалось сохранить результат в кэш")
		}
	}

	return result, nil
}
