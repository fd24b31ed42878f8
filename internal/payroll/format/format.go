// Package format renders values the way the answers show them to users:
// Brazilian currency, dd/mm/yyyy dates and "maio de 2025" competencies.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/farxc/folha-assistente/internal/payroll/period"
	"github.com/farxc/folha-assistente/internal/payroll/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// BRL formats d as "R$ 8.418,75", rounding half away from zero to cents.
func BRL(d decimal.Decimal) string {
	r := d.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Abs()
	}
	whole := r.IntPart()
	cents := r.Sub(decimal.NewFromInt(whole)).Shift(2).IntPart()
	return fmt.Sprintf("%sR$ %s,%02d", sign, printer.Sprintf("%d", whole), cents)
}

func Integer(n int) string {
	return printer.Sprintf("%d", n)
}

func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// Competency renders "05/2025".
func Competency(c types.Competency) string {
	return fmt.Sprintf("%02d/%04d", int(c.Month), c.Year)
}

// CompetencyLong renders "maio de 2025".
func CompetencyLong(c types.Competency) string {
	return period.CompetencyLabel(c)
}

// List joins items as "a, b e c".
func List(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	return strings.Join(items[:len(items)-1], ", ") + " e " + items[len(items)-1]
}
