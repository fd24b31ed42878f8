package converter

import (
	"fmt"
	"strings"

	"github.com/farxc/folha-assistente/internal/payroll/types"
	"github.com/farxc/folha-assistente/internal/payroll/utils"
	"github.com/go-gota/gota/dataframe"
	"github.com/shopspring/decimal"
)

// FieldError describes the first cell of a row that failed coercion.
type FieldError struct {
	Column string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("column %s: %s (value %q)", e.Column, e.Reason, e.Value)
}

func DfRowToRecord(df dataframe.DataFrame, rowIdx int) (types.PayrollRecord, error) {
	cell := func(col string) (string, error) {
		v := strings.TrimSpace(utils.GetStr(col, rowIdx, &df))
		if v == "" || v == "NaN" {
			return "", &FieldError{Column: col, Value: v, Reason: "empty value"}
		}
		return v, nil
	}

	var rec types.PayrollRecord
	var err error

	if rec.EmployeeID, err = cell(types.ColEmployeeID); err != nil {
		return rec, err
	}
	if rec.Name, err = cell(types.ColName); err != nil {
		return rec, err
	}
	rec.Name = strings.Join(strings.Fields(rec.Name), " ")

	raw, err := cell(types.ColCompetency)
	if err != nil {
		return rec, err
	}
	if rec.Competency, err = utils.ParseCompetency(raw); err != nil {
		return rec, &FieldError{Column: types.ColCompetency, Value: raw, Reason: "unparsable competency"}
	}

	amounts := []struct {
		col string
		dst *decimal.Decimal
	}{
		{types.ColGrossValue, &rec.GrossValue},
		{types.ColNetValue, &rec.NetValue},
		{types.ColINSSDeduction, &rec.INSSDeduction},
		{types.ColBonusValue, &rec.BonusValue},
	}
	for _, a := range amounts {
		raw, err := cell(a.col)
		if err != nil {
			return rec, err
		}
		val, err := utils.ParseAmount(raw)
		if err != nil {
			return rec, &FieldError{Column: a.col, Value: raw, Reason: "non-numeric amount"}
		}
		if val.IsNegative() {
			return rec, &FieldError{Column: a.col, Value: raw, Reason: "negative amount"}
		}
		*a.dst = val
	}

	raw, err = cell(types.ColPaymentDate)
	if err != nil {
		return rec, err
	}
	if rec.PaymentDate, err = utils.ParseDate(raw); err != nil {
		return rec, &FieldError{Column: types.ColPaymentDate, Value: raw, Reason: "unparsable date"}
	}
	if rec.PaymentDate.Before(rec.Competency.FirstDay()) {
		return rec, &FieldError{Column: types.ColPaymentDate, Value: raw, Reason: "payment date before competency"}
	}

	return rec, nil
}
