package logic

import (
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var zhPrinter = message.NewPrinter(language.SimplifiedChinese)

var five = big.NewInt(5)

// fixed formats v with exactly dp decimals, rounding the exact binary value
// half away from zero: 2.125 -> "2.13", while 1.005 (stored as
// 1.00499...) -> "1.00".
func fixed(v float64, dp int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', dp, 64)
	}
	return exactDecimal(v).StringFixed(int32(dp))
}

// exactDecimal converts v to a decimal with no loss: v = mant * 2^exp, and
// for negative exp that is mant * 5^-exp * 10^exp.
func exactDecimal(v float64) decimal.Decimal {
	frac, exp := math.Frexp(v)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	scale := new(big.Int).Exp(five, big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, scale), int32(exp))
}

// roundInt rounds half away from zero.
func roundInt(v float64) int {
	return int(math.Round(v))
}

// FormatNumber groups thousands the way zh-CN readers expect: 12345 -> "12,345".
func FormatNumber(n int) string {
	return zhPrinter.Sprintf("%d", n)
}
