package query

import (
	"slices"

	"github.com/farxc/folha-assistente/internal/payroll/entity"
	"github.com/farxc/folha-assistente/internal/payroll/period"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/farxc/folha-assistente/internal/payroll/types"
	"github.com/farxc/folha-assistente/internal/payroll/utils"
)

type Status string

const (
	StatusResolved     Status = "resolved"
	StatusUnresolvable Status = "unresolvable-entity"
	StatusAmbiguous    Status = "ambiguous-entity"
)

// Query is the structured form of a tabular question.
type Query struct {
	Question         string            `json:"question"`
	EmployeeRef      string            `json:"employee_ref"`
	EmployeeIDs      []string          `json:"resolved_employee_ids"`
	Period           *types.Period     `json:"period_predicate,omitempty"`
	Metric           types.Metric      `json:"metric"`
	MetricSpecified  bool              `json:"metric_specified"`
	Aggregation      types.Aggregation `json:"aggregation"`
	FleetWide        bool              `json:"fleet_wide"`
	WantsPaymentDate bool              `json:"wants_payment_date"`
	UsedHint         bool              `json:"used_hint"`
	Status           Status            `json:"status"`
}

type keywordRule[T any] struct {
	value T
	terms []string
}

// Checked in order; first hit wins.
var metricRules = []keywordRule[types.Metric]{
	{types.MetricINSS, []string{"inss", "previdencia", "contribuicao previdenciaria"}},
	{types.MetricBonus, []string{"bonus", "bonificacao", "bonificacoes", "premio", "premiacao", "gratificacao"}},
	{types.MetricGross, []string{"bruto", "bruta", "brutos", "remuneracao bruta"}},
	{types.MetricNet, []string{"liquido", "liquida", "liquidos", "salario liquido"}},
}

var aggregationRules = []keywordRule[types.Aggregation]{
	{types.AggCount, []string{
		"quantos funcionarios", "quantos colaboradores", "quantos empregados", "quantas pessoas",
		"numero de funcionarios", "quantidade de funcionarios", "total de funcionarios",
		"numero de colaboradores", "quantidade de colaboradores", "total de colaboradores",
	}},
	{types.AggAverage, []string{"media", "medio", "medios", "em media"}},
	{types.AggMax, []string{"maior", "maximo", "maxima", "mais alto", "mais alta", "recorde"}},
	{types.AggMin, []string{"menor", "minimo", "minima", "mais baixo", "mais baixa"}},
	{types.AggSum, []string{"total", "soma", "somado", "somados", "acumulado", "acumulada", "no total", "ao todo"}},
}

var fleetTerms = []string{"folha", "empresa", "todos", "todas", "geral", "funcionarios", "colaboradores"}

var paymentDateTerms = []string{
	"quando", "data de pagamento", "data do pagamento", "dia do pagamento", "dia de pagamento", "que dia",
}

func match[T any](text string, rules []keywordRule[T], fallback T) (T, bool) {
	for _, rule := range rules {
		if containsAny(text, rule.terms) {
			return rule.value, true
		}
	}
	return fallback, false
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if utils.ContainsTerm(text, term) {
			return true
		}
	}
	return false
}

// Parser combines entity and period resolution with keyword detection.
type Parser struct {
	entities *entity.Resolver
	periods  period.Resolver
}

func NewParser(entities *entity.Resolver, periods period.Resolver) *Parser {
	return &Parser{entities: entities, periods: periods}
}

// ForStore builds a parser over the store's employees. Quarters named
// without a year default to the latest year in the data, and bare numbers
// only read as years present in the data.
func ForStore(s *tabular.Store) *Parser {
	periods := period.Resolver{}
	comps := s.Competencies()
	for _, c := range comps {
		if !slices.Contains(periods.Years, c.Year) {
			periods.Years = append(periods.Years, c.Year)
		}
	}
	if len(comps) > 0 {
		periods.DefaultYear = comps[len(comps)-1].Year
	}
	return NewParser(entity.NewResolver(s.Employees()), periods)
}

func (p *Parser) Resolver() *entity.Resolver {
	return p.entities
}

// Parse never fails: entity problems are recorded in Status for the
// aggregation engine to report.
func (p *Parser) Parse(question string, employeeHint []string) Query {
	q := Query{Question: question, Status: StatusResolved}

	q.Metric, q.MetricSpecified = match(question, metricRules, types.MetricNet)
	q.Aggregation, _ = match(question, aggregationRules, types.AggLookup)
	q.WantsPaymentDate = containsAny(question, paymentDateTerms)

	m := p.entities.Match(question)
	q.EmployeeRef = m.Mention
	q.EmployeeIDs = m.IDs
	// Names are not periods: "Marco" must not read as March.
	q.Period = p.periods.Resolve(utils.Blank(question, m.Spans))

	named := len(m.IDs) > 0 || m.Mention != ""
	fleetStat := !named &&
		(q.Aggregation == types.AggCount || q.Aggregation == types.AggAverage || containsAny(question, fleetTerms))

	if !named && !fleetStat && len(employeeHint) > 0 {
		q.EmployeeIDs = append([]string(nil), employeeHint...)
		q.UsedHint = true
	}

	switch {
	case m.Ambiguous:
		q.Status = StatusAmbiguous
	case len(q.EmployeeIDs) == 0 && fleetStat:
		q.FleetWide = true
	case len(q.EmployeeIDs) == 0:
		q.Status = StatusUnresolvable
	}
	return q
}
