package converter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/farxc/folha-assistente/internal/payroll/files"
	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "employee_id,name,competency,gross_value,net_value,inss_deduction,bonus_value,payment_date\n"

func frame(t *testing.T, rows string) dataframe.DataFrame {
	t.Helper()
	df, err := files.Decode(strings.NewReader(header+rows), files.EncodingUTF8)
	require.NoError(t, err)
	return df
}

func TestDfRowToRecord(t *testing.T) {
	df := frame(t, "E001,  Ana   Souza ,2025-05,8500.00,8418.75,935.00,800.00,2025-05-28\n")

	rec, err := DfRowToRecord(df, 0)
	require.NoError(t, err)
	assert.Equal(t, "E001", rec.EmployeeID)
	assert.Equal(t, "Ana Souza", rec.Name)
	assert.Equal(t, "2025-05", rec.Competency.String())
	assert.Equal(t, "8418.75", rec.NetValue.String())
	assert.Equal(t, "800", rec.BonusValue.String())
	assert.Equal(t, time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC), rec.PaymentDate)
}

func TestDfRowToRecord_Rejects(t *testing.T) {
	cases := []struct {
		row    string
		column string
		reason string
	}{
		{"E001,Ana,2025-05,abc,1,1,0,2025-05-28\n", "gross_value", "non-numeric amount"},
		{"E001,Ana,2025-05,1,1,-5,0,2025-05-28\n", "inss_deduction", "negative amount"},
		{"E001,Ana,maio,1,1,1,0,2025-05-28\n", "competency", "unparsable competency"},
		{"E001,Ana,2025-05,1,1,1,0,28-05-2025\n", "payment_date", "unparsable date"},
		{"E001,Ana,2025-05,1,1,1,0,2025-04-30\n", "payment_date", "payment date before competency"},
		{",Ana,2025-05,1,1,1,0,2025-05-28\n", "employee_id", "empty value"},
	}
	for _, tc := range cases {
		_, err := DfRowToRecord(frame(t, tc.row), 0)
		var fe *FieldError
		require.True(t, errors.As(err, &fe), tc.row)
		assert.Equal(t, tc.column, fe.Column, tc.row)
		assert.Equal(t, tc.reason, fe.Reason, tc.row)
	}
}
