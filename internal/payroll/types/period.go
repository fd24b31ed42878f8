package types

import "time"

type PeriodKind string

const (
	PeriodMonth        PeriodKind = "month"
	PeriodRange        PeriodKind = "range"
	PeriodQuarter      PeriodKind = "quarter"
	PeriodSemester     PeriodKind = "semester"
	PeriodYear         PeriodKind = "year"
	PeriodMonthAnyYear PeriodKind = "month-any-year"
)

// Period is a competency predicate. Bounded kinds use From..To inclusive;
// PeriodMonthAnyYear matches Month (through ToMonth when set) in every year.
type Period struct {
	Kind    PeriodKind `json:"kind"`
	From    Competency `json:"from"`
	To      Competency `json:"to"`
	Month   time.Month `json:"month,omitempty"`
	ToMonth time.Month `json:"to_month,omitempty"`
	Label   string     `json:"label"`
}

func (p Period) Contains(c Competency) bool {
	if p.Kind == PeriodMonthAnyYear {
		if p.ToMonth == 0 {
			return c.Month == p.Month
		}
		return c.Month >= p.Month && c.Month <= p.ToMonth
	}
	return !c.Before(p.From) && !p.To.Before(c)
}

// Single reports whether the period names exactly one competency.
func (p Period) Single() bool {
	return p.Kind != PeriodMonthAnyYear && p.From == p.To
}

func MonthPeriod(c Competency, label string) Period {
	return Period{Kind: PeriodMonth, From: c, To: c, Label: label}
}

func RangePeriod(kind PeriodKind, from, to Competency, label string) Period {
	if to.Before(from) {
		from, to = to, from
	}
	return Period{Kind: kind, From: from, To: to, Label: label}
}
