// Package payrolltest holds CSV fixtures shared by the payroll tests.
package payrolltest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/farxc/folha-assistente/internal/payroll/files"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
)

const Header = "employee_id,name,competency,gross_value,net_value,inss_deduction,bonus_value,payment_date\n"

// Standard mirrors data/payroll.csv: Ana Souza (E001) and Bruno Lima (E002),
// January to June 2025.
const Standard = `employee_id,name,competency,gross_value,net_value,inss_deduction,bonus_value,payment_date
E001,Ana Souza,2025-01,8500.00,7725.00,935.00,0.00,2025-01-28
E001,Ana Souza,2025-02,8500.00,7447.50,935.00,0.00,2025-02-28
E001,Ana Souza,2025-03,8500.00,8048.75,935.00,500.00,2025-03-28
E001,Ana Souza,2025-04,8500.00,7980.00,935.00,0.00,2025-04-28
E001,Ana Souza,2025-05,8500.00,8418.75,935.00,800.00,2025-05-28
E001,Ana Souza,2025-06,8500.00,8100.00,935.00,0.00,2025-06-28
E002,Bruno Lima,2025-01,6000.00,5600.00,660.00,0.00,2025-01-28
E002,Bruno Lima,2025-02,6000.00,5480.00,660.00,0.00,2025-02-28
E002,Bruno Lima,2025-03,6000.00,5700.00,660.00,0.00,2025-03-28
E002,Bruno Lima,2025-04,6000.00,5756.25,660.00,300.00,2025-04-28
E002,Bruno Lima,2025-05,6000.00,6400.00,660.00,1200.00,2025-05-28
E002,Bruno Lima,2025-06,6000.00,5550.00,660.00,300.00,2025-06-28
`

// Challenge has Ana with net 1000/1100/1200 in March-May 2025 and Bruno with
// equal bonuses in April and June.
const Challenge = Header +
	"E001,Ana Souza,2025-03,1500.00,1000.00,120.00,0.00,2025-03-31\n" +
	"E001,Ana Souza,2025-04,1600.00,1100.00,130.00,0.00,2025-04-30\n" +
	"E001,Ana Souza,2025-05,1700.00,1200.00,140.00,0.00,2025-05-30\n" +
	"E002,Bruno Lima,2025-04,3000.00,2500.00,300.00,200.00,2025-04-30\n" +
	"E002,Bruno Lima,2025-05,3000.00,2400.00,300.00,100.00,2025-05-30\n" +
	"E002,Bruno Lima,2025-06,3000.00,2500.00,300.00,200.00,2025-06-30\n"

// Homonyms has two employees sharing the first name Ana.
const Homonyms = Header +
	"E001,Ana Souza,2025-05,8500.00,8418.75,935.00,800.00,2025-05-28\n" +
	"E003,Ana Paula Ribeiro,2025-05,7000.00,6100.00,770.00,0.00,2025-05-28\n" +
	"E002,Bruno Lima,2025-05,6000.00,6400.00,660.00,1200.00,2025-05-28\n"

// Fleet returns a dataset with n distinct employees, one record each in
// May 2025, net value 1000 + 100*i.
func Fleet(n int) string {
	var b strings.Builder
	b.WriteString(Header)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "F%03d,Pessoa%d Teste,2025-05,2000.00,%d.00,200.00,0.00,2025-05-28\n", i, i, 1000+100*i)
	}
	return b.String()
}

// Load builds a store from csv or fails the test.
func Load(t testing.TB, csv string) *tabular.Store {
	t.Helper()
	s, err := tabular.Load(strings.NewReader(csv), files.EncodingUTF8)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return s
}
