package warehouse

import (
	"time"

	"github.com/ecomdw/warehouse/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CalendarDate is a lazily populated calendar dimension row. Rows are only
// ever added, never deleted.
type CalendarDate struct {
	DateKey    string `gorm:"column:date_key;type:varchar(10);primaryKey"`
	Year       int    `gorm:"not null"`
	Quarter    int    `gorm:"not null"`
	Month      int    `gorm:"not null"`
	Day        int    `gorm:"not null"`
	WeekOfYear int    `gorm:"column:week_of_year;not null"`
	IsWeekend  bool   `gorm:"column:is_weekend;not null"`
}

func (CalendarDate) TableName() string {
	return "wh_dim_date"
}

// NewCalendarDate derives a calendar row for the given day.
func NewCalendarDate(d time.Time) *CalendarDate {
	d = d.UTC()
	_, week := d.ISOWeek()
	wd := d.Weekday()
	return &CalendarDate{
		DateKey:    shared.DateKeyOf(d),
		Year:       d.Year(),
		Quarter:    (int(d.Month())-1)/3 + 1,
		Month:      int(d.Month()),
		Day:        d.Day(),
		WeekOfYear: week,
		IsWeekend:  wd == time.Saturday || wd == time.Sunday,
	}
}

// CalendarRange derives calendar rows for every day from start to end
// inclusive. Returns nil when start is after end.
func CalendarRange(start, end time.Time) []CalendarDate {
	keys := shared.DateKeysBetween(start, end)
	rows := make([]CalendarDate, 0, len(keys))
	for _, key := range keys {
		d, _ := shared.ParseDateKey(key)
		rows = append(rows, *NewCalendarDate(d))
	}
	return rows
}

// FxRate is a currency-passthrough rate row. The pipeline only writes the
// MYR=1.0 identity rate; real exchange rates are out of scope.
type FxRate struct {
	DateKey  string          `gorm:"column:date_key;type:varchar(10);primaryKey"`
	Currency string          `gorm:"type:varchar(3);primaryKey"`
	ToMYR    decimal.Decimal `gorm:"column:to_myr;type:decimal(18,8);not null"`
}

func (FxRate) TableName() string {
	return "wh_fx_rates"
}

// PassthroughRate returns the identity MYR rate for a date key.
func PassthroughRate(dateKey string) *FxRate {
	return &FxRate{
		DateKey:  dateKey,
		Currency: "MYR",
		ToMYR:    decimal.NewFromInt(1),
	}
}
