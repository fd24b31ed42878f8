package types

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Required columns of the payroll source file.
const (
	ColEmployeeID    = "employee_id"
	ColName          = "name"
	ColCompetency    = "competency"
	ColGrossValue    = "gross_value"
	ColNetValue      = "net_value"
	ColINSSDeduction = "inss_deduction"
	ColBonusValue    = "bonus_value"
	ColPaymentDate   = "payment_date"
)

var RequiredColumns = []string{
	ColEmployeeID,
	ColName,
	ColCompetency,
	ColGrossValue,
	ColNetValue,
	ColINSSDeduction,
	ColBonusValue,
	ColPaymentDate,
}

// Competency is the year-month a payroll record pertains to.
type Competency struct {
	Year  int
	Month time.Month
}

func (c Competency) String() string {
	return fmt.Sprintf("%04d-%02d", c.Year, int(c.Month))
}

func (c Competency) IsZero() bool {
	return c.Year == 0 && c.Month == 0
}

func (c Competency) Before(other Competency) bool {
	if c.Year != other.Year {
		return c.Year < other.Year
	}
	return c.Month < other.Month
}

// FirstDay returns midnight UTC of the first day of the competency month.
func (c Competency) FirstDay() time.Time {
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (c Competency) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func CompetencyOf(t time.Time) Competency {
	return Competency{Year: t.Year(), Month: t.Month()}
}

type PayrollRecord struct {
	EmployeeID    string          `json:"employee_id"`
	Name          string          `json:"name"`
	Competency    Competency      `json:"competency"`
	GrossValue    decimal.Decimal `json:"gross_value"`
	NetValue      decimal.Decimal `json:"net_value"`
	INSSDeduction decimal.Decimal `json:"inss_deduction"`
	BonusValue    decimal.Decimal `json:"bonus_value"`
	PaymentDate   time.Time       `json:"payment_date"`
}

// Key identifies a record; unique across the store.
func (r PayrollRecord) Key() string {
	return r.EmployeeID + "|" + r.Competency.String()
}

// Value returns the amount of the given metric.
func (r PayrollRecord) Value(m Metric) decimal.Decimal {
	switch m {
	case MetricGross:
		return r.GrossValue
	case MetricINSS:
		return r.INSSDeduction
	case MetricBonus:
		return r.BonusValue
	default:
		return r.NetValue
	}
}

type Metric string

const (
	MetricNet   Metric = "net"
	MetricGross Metric = "gross"
	MetricINSS  Metric = "inss"
	MetricBonus Metric = "bonus"
)

var MetricNames = map[Metric]string{
	MetricNet:   "líquido",
	MetricGross: "bruto",
	MetricINSS:  "desconto de INSS",
	MetricBonus: "bônus",
}

type Aggregation string

const (
	AggLookup  Aggregation = "lookup-single"
	AggSum     Aggregation = "sum"
	AggMax     Aggregation = "max"
	AggMin     Aggregation = "min"
	AggCount   Aggregation = "count"
	AggAverage Aggregation = "average"
)
