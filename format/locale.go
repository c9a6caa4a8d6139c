// Package format 哥伦比亚地区的金额、日期、时间格式化
package format

import (
	"fmt"
	"time"

	"gastos/config"
)

const (
	// DefaultTimezone 所有“当前日期/时间”都按该时区计算
	DefaultTimezone = "America/Bogota"
	// DefaultSymbol 比索符号
	DefaultSymbol = "$"
)

// Locale 时区与货币符号
type Locale struct {
	loc    *time.Location
	symbol string
	now    func() time.Time
}

// NewLocale 按配置创建，时区无法加载时返回错误
func NewLocale(cfg config.LocaleConfig) (*Locale, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	switch {
	case err != nil && tz == DefaultTimezone:
		loc = bogota()
	case err != nil:
		return nil, fmt.Errorf("加载时区 %s 失败: %w", tz, err)
	}
	symbol := cfg.CurrencySymbol
	if symbol == "" {
		symbol = DefaultSymbol
	}
	return &Locale{loc: loc, symbol: symbol, now: time.Now}, nil
}

// bogota 系统缺少时区数据库时退回固定的 UTC-5（哥伦比亚没有夏令时）
func bogota() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.FixedZone("COT", -5*60*60)
	}
	return loc
}

// WithClock 返回使用指定时钟的副本
func (l *Locale) WithClock(now func() time.Time) *Locale {
	cp := *l
	cp.now = now
	return &cp
}

// Location 时区
func (l *Locale) Location() *time.Location {
	return l.loc
}

// Now 当前时区的当前时间
func (l *Locale) Now() time.Time {
	return l.now().In(l.loc)
}

// CurrentDate YYYY-MM-DD
func (l *Locale) CurrentDate() string {
	return l.Now().Format(dateLayout)
}

// CurrentTime HH:mm
func (l *Locale) CurrentTime() string {
	return l.Now().Format(timeLayout)
}

// CurrentMonth YYYY-MM
func (l *Locale) CurrentMonth() string {
	return l.Now().Format(monthLayout)
}

var defaultLocale = &Locale{loc: bogota(), symbol: DefaultSymbol, now: time.Now}

// Default 包级函数使用的地区设置
func Default() *Locale {
	return defaultLocale
}

// SetDefault 启动时按配置替换默认地区设置
func SetDefault(l *Locale) {
	if l != nil {
		defaultLocale = l
	}
}

// CurrentDate 默认时区的当前日期
func CurrentDate() string {
	return defaultLocale.CurrentDate()
}

// CurrentTime 默认时区的当前时间
func CurrentTime() string {
	return defaultLocale.CurrentTime()
}

// CurrentMonth 默认时区的当前月份
func CurrentMonth() string {
	return defaultLocale.CurrentMonth()
}
