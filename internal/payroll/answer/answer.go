package answer

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/farxc/folha-assistente/internal/payroll/aggregate"
	"github.com/farxc/folha-assistente/internal/payroll/format"
	"github.com/farxc/folha-assistente/internal/payroll/types"
)

// Reason tags every answer next to the tool that produced it.
type Reason string

const (
	ReasonOK                Reason = "ok"
	ReasonMultiplePeriods   Reason = "multiple_periods"
	ReasonNoMatch           Reason = "no_match"
	ReasonUnresolvable      Reason = "unresolvable_entity"
	ReasonAmbiguous         Reason = "ambiguous_entity"
	ReasonNotReady          Reason = "not_ready"
	ReasonDependencyTimeout Reason = "dependency_timeout"
	ReasonDependencyFailure Reason = "dependency_failure"
)

var metricPhrase = map[types.Metric]string{
	types.MetricNet:   "salário líquido",
	types.MetricGross: "salário bruto",
	types.MetricINSS:  "desconto de INSS",
	types.MetricBonus: "bônus",
}

// Writer renders results and clarifications in Portuguese. Names maps
// employee_id to display name.
type Writer struct {
	Names map[string]string
}

func (w Writer) name(id string) string {
	if n, ok := w.Names[id]; ok {
		return n
	}
	return id
}

func (w Writer) subject(res aggregate.Result) string {
	if res.Query.FleetWide || len(res.Query.EmployeeIDs) == 0 {
		return "todos os funcionários"
	}
	names := make([]string, 0, len(res.Query.EmployeeIDs))
	for _, id := range res.Query.EmployeeIDs {
		names = append(names, w.name(id))
	}
	sort.Strings(names)
	return format.List(names)
}

func periodSuffix(res aggregate.Result) string {
	if res.Query.Period == nil {
		return ""
	}
	switch res.Query.Period.Kind {
	case types.PeriodMonth:
		return " em " + res.Query.Period.Label
	case types.PeriodMonthAnyYear:
		return " nos meses de " + res.Query.Period.Label
	case types.PeriodYear:
		return " em " + res.Query.Period.Label
	case types.PeriodRange:
		return " de " + res.Query.Period.Label
	default:
		return " no " + res.Query.Period.Label
	}
}

// Result renders a successful aggregation.
func (w Writer) Result(res aggregate.Result) (string, Reason) {
	q := res.Query
	metric := metricPhrase[q.Metric]

	if res.MultipleMatches {
		return w.multiple(res), ReasonMultiplePeriods
	}

	switch q.Aggregation {
	case types.AggCount:
		text := fmt.Sprintf("Temos %s funcionários", format.Integer(res.Count))
		if res.Count == 1 {
			text = "Temos 1 funcionário"
		}
		if q.Period != nil {
			return text + " com registros de folha" + periodSuffix(res) + ".", ReasonOK
		}
		return text + " na base de folha de pagamento.", ReasonOK

	case types.AggSum:
		return fmt.Sprintf("O total de %s de %s%s foi de %s (%s).",
			metric, w.subject(res), periodSuffix(res), format.BRL(res.Value), records(len(res.SupportingRecords))), ReasonOK

	case types.AggAverage:
		return fmt.Sprintf("A média de %s de %s%s foi de %s (%s).",
			metric, w.subject(res), periodSuffix(res), format.BRL(res.Value), records(len(res.SupportingRecords))), ReasonOK

	case types.AggMax, types.AggMin:
		sel := res.Selected
		adj := "maior"
		if q.Aggregation == types.AggMin {
			adj = "menor"
		}
		who := ""
		if len(q.EmployeeIDs) != 1 {
			who = fmt.Sprintf(" (%s)", sel.Name)
		}
		return fmt.Sprintf("O %s %s de %s%s foi de %s%s, em %s (competência %s, pago em %s).",
			adj, metric, w.subject(res), periodSuffix(res), format.BRL(res.Value), who,
			format.CompetencyLong(sel.Competency), format.Competency(sel.Competency), format.Date(sel.PaymentDate)), ReasonOK
	}

	sel := res.Selected
	if q.WantsPaymentDate {
		return fmt.Sprintf("O pagamento de %s referente a %s foi feito em %s (%s de %s).",
			sel.Name, format.CompetencyLong(sel.Competency), format.Date(sel.PaymentDate), metric, format.BRL(res.Value)), ReasonOK
	}
	return fmt.Sprintf("O %s de %s em %s foi de %s (pago em %s).",
		metric, sel.Name, format.CompetencyLong(sel.Competency), format.BRL(res.Value), format.Date(sel.PaymentDate)), ReasonOK
}

func (w Writer) multiple(res aggregate.Result) string {
	q := res.Query
	var b strings.Builder
	fmt.Fprintf(&b, "Encontrei %s para %s%s:", records(len(res.SupportingRecords)), w.subject(res), periodSuffix(res))
	for _, r := range res.SupportingRecords {
		line := fmt.Sprintf("\n- %s, %s: %s", r.Name, format.Competency(r.Competency), format.BRL(r.Value(q.Metric)))
		if q.WantsPaymentDate {
			line += ", pago em " + format.Date(r.PaymentDate)
		}
		b.WriteString(line)
	}
	b.WriteString("\nInforme o mês desejado (por exemplo, maio/2025) para um valor único.")
	return b.String()
}

func records(n int) string {
	if n == 1 {
		return "1 registro"
	}
	return fmt.Sprintf("%s registros", format.Integer(n))
}

// Clarification turns a resolution or matching failure into a question for
// the user. ok is false for errors it does not know.
func (w Writer) Clarification(err error) (string, Reason, bool) {
	var unresolvable *aggregate.UnresolvableEntityError
	var ambiguous *aggregate.AmbiguousEntityError
	var noMatch *aggregate.NoMatchError

	switch {
	case errors.As(err, &unresolvable):
		if unresolvable.Ref == "" {
			return "Não consegui identificar de qual funcionário você está falando. Informe o nome, por exemplo: \"Qual o salário da Ana Souza em maio/2025?\"", ReasonUnresolvable, true
		}
		return fmt.Sprintf("Não encontrei nenhum funcionário chamado %s na folha de pagamento. Confira o nome e tente novamente.", unresolvable.Ref), ReasonUnresolvable, true

	case errors.As(err, &ambiguous):
		names := make([]string, 0, len(ambiguous.Candidates))
		for _, id := range ambiguous.Candidates {
			names = append(names, w.name(id))
		}
		sort.Strings(names)
		return fmt.Sprintf("Encontrei mais de um funcionário para \"%s\": %s. Qual deles você quer consultar? Use o nome completo.",
			ambiguous.Ref, format.List(names)), ReasonAmbiguous, true

	case errors.As(err, &noMatch):
		who := "a folha"
		if len(noMatch.EmployeeIDs) > 0 {
			names := make([]string, 0, len(noMatch.EmployeeIDs))
			for _, id := range noMatch.EmployeeIDs {
				names = append(names, w.name(id))
			}
			who = format.List(names)
		}
		text := "Não encontrei registros de folha para " + who
		if noMatch.Period != "" {
			text += " em " + noMatch.Period
		}
		return text + ".", ReasonNoMatch, true
	}
	return "", "", false
}
