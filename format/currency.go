package format

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// FormatCurrency 比索金额：不保留小数，千位用点分隔
// 1250000 -> $1.250.000，-500 -> -$500
func (l *Locale) FormatCurrency(amount decimal.Decimal) string {
	digits := amount.Abs().Round(0).String()
	sign := ""
	if amount.IsNegative() {
		sign = "-"
	}
	return sign + l.symbol + groupThousands(digits)
}

// FormatCurrency 使用默认地区设置
func FormatCurrency(amount decimal.Decimal) string {
	return defaultLocale.FormatCurrency(amount)
}

// ParseCurrency 去掉数字和负号以外的字符后解析，无法解析时返回 0
// "$1.250.000" -> 1250000
func ParseCurrency(value string) int64 {
	var b strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	// 只取开头的 [-]数字 部分
	end := 0
	if strings.HasPrefix(cleaned, "-") {
		end = 1
	}
	start := end
	for end < len(cleaned) && cleaned[end] >= '0' && cleaned[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, err := strconv.ParseInt(cleaned[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatCurrencyInput 输入框中边输入边格式化，只保留数字
// "1250000" -> "1.250.000"，没有数字时返回空串
func FormatCurrencyInput(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")
	if b.Len() == 0 {
		return ""
	}
	if digits == "" {
		digits = "0"
	}
	return groupThousands(digits)
}

// groupThousands 每三位插入一个点，digits 只含数字
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(n + n/3)
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercentage 0.1234 -> "12.3%"
func FormatPercentage(value float64) string {
	return decimal.NewFromFloat(value).Mul(decimal.NewFromInt(100)).StringFixed(1) + "%"
}

var (
	million  = decimal.NewFromInt(1_000_000)
	thousand = decimal.NewFromInt(1_000)
)

// FormatCompactNumber 1250000 -> "1.3M"，1500 -> "1.5K"，小于一千原样输出
func FormatCompactNumber(value float64) string {
	d := decimal.NewFromFloat(value)
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(1) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(1) + "K"
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Capitalize 首字母大写
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// Truncate 超过 maxLen 个字符时截断并追加 "..."
func Truncate(s string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
