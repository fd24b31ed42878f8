package tabular

import (
	"errors"
	"strings"
	"testing"

	"github.com/farxc/folha-assistente/internal/payroll/files"
	"github.com/farxc/folha-assistente/internal/payroll/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "employee_id,name,competency,gross_value,net_value,inss_deduction,bonus_value,payment_date\n"

const sample = header +
	"E002,Bruno Lima,2025-02,6000,5480.00,660,0,2025-02-28\n" +
	"E001,Ana Souza,2025-03,8500,1000.00,935,0,2025-03-28\n" +
	"E001,Ana Souza,2025-04,8500,1100.00,935,0,2025-04-28\n" +
	"E002,Bruno Lima,2025-04,6000,5756.25,660,300,2025-04-28\n" +
	"E001,Ana Souza,2025-05,8500,1200.00,935,800,2025-05-28\n"

func load(t *testing.T, csv string) *Store {
	t.Helper()
	s, err := Load(strings.NewReader(csv), files.EncodingUTF8)
	require.NoError(t, err)
	return s
}

func schemaErr(t *testing.T, csv string) *SchemaError {
	t.Helper()
	_, err := Load(strings.NewReader(csv), files.EncodingUTF8)
	var se *SchemaError
	require.True(t, errors.As(err, &se), "want SchemaError, got %v", err)
	return se
}

func TestLoad_Summary(t *testing.T) {
	s := load(t, sample)
	assert.Equal(t, 5, s.Len())
	assert.Equal(t, map[string]string{"E001": "Ana Souza", "E002": "Bruno Lima"}, s.Employees())

	comps := []string{}
	for _, c := range s.Competencies() {
		comps = append(comps, c.String())
	}
	assert.Equal(t, []string{"2025-02", "2025-03", "2025-04", "2025-05"}, comps)

	keys := []string{}
	for _, r := range s.Records() {
		keys = append(keys, r.Key())
	}
	assert.Equal(t, []string{"E002|2025-02", "E001|2025-03", "E001|2025-04", "E002|2025-04", "E001|2025-05"}, keys)
}

func TestLoad_UniqueKeys(t *testing.T) {
	s := load(t, sample)
	seen := map[string]bool{}
	for _, r := range s.Records() {
		assert.False(t, seen[r.Key()], r.Key())
		seen[r.Key()] = true
	}
}

func TestLoad_SchemaErrors(t *testing.T) {
	se := schemaErr(t, "employee_id,name,competency\nE001,Ana,2025-01\n")
	assert.Equal(t, 0, se.Row)
	assert.Contains(t, se.Column, "net_value")

	se = schemaErr(t, sample+"E003,Carla Dias,2025-05,abc,1,1,0,2025-05-28\n")
	assert.Equal(t, 6, se.Row)
	assert.Equal(t, "gross_value", se.Column)

	se = schemaErr(t, sample+"E001,Ana Souza,2025-05,1,1,1,0,2025-05-28\n")
	assert.Equal(t, 6, se.Row)
	assert.Contains(t, se.Reason, "duplicate")

	se = schemaErr(t, sample+"E001,Ana Pereira,2025-06,1,1,1,0,2025-06-28\n")
	assert.Equal(t, "name", se.Column)

	se = schemaErr(t, sample+"E003,Carla Dias,2025-05,1,1,1,0,ontem\n")
	assert.Equal(t, "payment_date", se.Column)
}

func TestFilter(t *testing.T) {
	s := load(t, sample)

	all, err := s.Filter(Predicate{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	q1 := types.RangePeriod(types.PeriodQuarter, types.Competency{Year: 2025, Month: 1}, types.Competency{Year: 2025, Month: 3}, "1º trimestre de 2025")
	got, err := s.Filter(Predicate{EmployeeIDs: []string{"E001"}, Period: &q1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "E001|2025-03", got[0].Key())
	assert.True(t, decimal.RequireFromString("1000").Equal(got[0].NetValue))

	april := types.MonthPeriod(types.Competency{Year: 2025, Month: 4}, "abril de 2025")
	got, err = s.Filter(Predicate{Period: &april})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "E001", got[0].EmployeeID)
	assert.Equal(t, "E002", got[1].EmployeeID)

	none := types.MonthPeriod(types.Competency{Year: 2024, Month: 4}, "abril de 2024")
	got, err = s.Filter(Predicate{Period: &none})
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = s.Filter(Predicate{EmployeeIDs: []string{"E999"}})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFilter_MonthAnyYear(t *testing.T) {
	s := load(t, sample+"E001,Ana Souza,2024-04,8000,900,880,0,2024-04-28\n")
	p := types.Period{Kind: types.PeriodMonthAnyYear, Month: 4, Label: "abril"}
	got, err := s.Filter(Predicate{EmployeeIDs: []string{"E001"}, Period: &p})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2024-04", got[0].Competency.String())
	assert.Equal(t, "2025-04", got[1].Competency.String())
}
