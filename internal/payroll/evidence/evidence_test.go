package evidence

import (
	"testing"

	"github.com/farxc/folha-assistente/internal/payroll/aggregate"
	"github.com/farxc/folha-assistente/internal/payroll/payrolltest"
	"github.com/farxc/folha-assistente/internal/payroll/query"
	"github.com/farxc/folha-assistente/internal/payroll/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecords_Order(t *testing.T) {
	s := payrolltest.Load(t, payrolltest.Standard)
	recs := s.Records()
	// Reverse to make sure ordering is not inherited from the input.
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}

	ev := FromRecords(recs)
	assert.Equal(t, 12, ev.TotalRecords)
	assert.Equal(t, "E001|2025-01", ev.Keys()[0])
	assert.Equal(t, "E002|2025-01", ev.Keys()[1])
	assert.Equal(t, "E002|2025-06", ev.Keys()[11])
	assert.Equal(t, []string{"E001", "E002"}, ev.EmployeeIDs)
	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03", "2025-04", "2025-05", "2025-06"}, ev.Competencies)
}

// Every record that contributed to a result is cited, and nothing else.
func TestFromRecords_MatchesContributors(t *testing.T) {
	s := payrolltest.Load(t, payrolltest.Standard)
	p := query.ForStore(s)
	for _, question := range []string{
		"Qual o total líquido da Ana no 1º trimestre de 2025?",
		"Qual foi o maior bônus do Bruno?",
		"Quantos funcionários receberam em maio/2025?",
		"Qual a média bruta da folha em 2025?",
		"Quanto o Bruno recebeu em abril/2025?",
	} {
		q := p.Parse(question, nil)
		res, err := aggregate.Execute(q, s)
		require.NoError(t, err, question)

		want := []string{}
		switch q.Aggregation {
		case types.AggMax, types.AggMin, types.AggLookup:
			if res.Selected != nil {
				want = append(want, res.Selected.Key())
				break
			}
			fallthrough
		default:
			for _, r := range s.Records() {
				inEmployees := len(q.EmployeeIDs) == 0
				for _, id := range q.EmployeeIDs {
					inEmployees = inEmployees || id == r.EmployeeID
				}
				if inEmployees && (q.Period == nil || q.Period.Contains(r.Competency)) {
					want = append(want, r.Key())
				}
			}
		}
		assert.Equal(t, want, FromRecords(res.SupportingRecords).Keys(), question)
	}
}

func TestFromSources(t *testing.T) {
	ev := FromSources([]Source{{Title: "CLT", URL: "https://www.gov.br/trabalho"}})
	assert.Len(t, ev.Sources, 1)
	assert.Zero(t, ev.TotalRecords)
	assert.Nil(t, (*Evidence)(nil).Keys())
}
