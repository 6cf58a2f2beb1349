package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round2 округляет число до 2 знаков после запятой.
// Половина округляется от нуля: 2.675 -> 2.68, -0.125 -> -0.13.
// Число берется в кратчайшем десятичном представлении, поэтому
// двоичный хвост вида 2.67499999... на результат не влияет.
func Round2(value float64) float64 {
	if !IsFinite(value) {
		return value
	}
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}

// Cents переводит сумму в десятичное значение с точностью до копейки
func Cents(value float64) decimal.Decimal {
	if !IsFinite(value) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(value).Round(2)
}

// SumCents точно складывает суммы, уже округленные до копеек
func SumCents(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(Cents(v))
	}
	return total.InexactFloat64()
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}
