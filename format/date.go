package format

import (
	"strconv"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	timeLayout  = "15:04"
	monthLayout = "2006-01"
)

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var monthAbbr = [...]string{
	"ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sept", "oct", "nov", "dic",
}

// FormatDate "2025-11-27" -> "27 nov 2025"，无法解析时原样返回
func FormatDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02") + " " + monthAbbr[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// FormatTime "14:30" -> "2:30 p. m."，小时可以是一位 ("9:30")，无法解析时原样返回
func FormatTime(clock string) string {
	t, err := time.Parse(timeLayout, clock)
	if err != nil {
		return clock
	}
	suffix := "a. m."
	if t.Hour() >= 12 {
		suffix = "p. m."
	}
	return t.Format("3:04") + " " + suffix
}

// FormatDateTime "27 nov 2025, 2:30 p. m."
func FormatDateTime(date, clock string) string {
	return FormatDate(date) + ", " + FormatTime(clock)
}

// FormatMonth "2025-11" -> "noviembre 2025"，无法解析时原样返回
func FormatMonth(month string) string {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return month
	}
	return monthNames[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// FormatRelativeDate 今天显示 "Hoy"，昨天显示 "Ayer"，其他日期同 FormatDate
func (l *Locale) FormatRelativeDate(date string) string {
	return FormatRelativeDateAt(date, l.Now())
}

// FormatRelativeDate 使用默认地区设置
func FormatRelativeDate(date string) string {
	return defaultLocale.FormatRelativeDate(date)
}

// FormatRelativeDateAt 以 now 所在时区的日期为“今天”
func FormatRelativeDateAt(date string, now time.Time) string {
	switch date {
	case now.Format(dateLayout):
		return "Hoy"
	case now.Add(-24 * time.Hour).Format(dateLayout):
		return "Ayer"
	}
	return FormatDate(date)
}

// MonthRange 月份的首尾日期，用于按字符串比较日期
// 结束日期固定为 31 号，YYYY-MM-DD 的字典序保证不会越界
func MonthRange(month string) (start, end string, ok bool) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return "", "", false
	}
	return month + "-01", month + "-31", true
}
