package period

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/farxc/folha-assistente/internal/payroll/types"
	"github.com/farxc/folha-assistente/internal/payroll/utils"
)

var MonthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var monthByName = map[string]time.Month{
	"janeiro": 1, "fevereiro": 2, "marco": 3, "abril": 4, "maio": 5, "junho": 6,
	"julho": 7, "agosto": 8, "setembro": 9, "outubro": 10, "novembro": 11, "dezembro": 12,
}

// Abbreviations are only trusted when a year follows ("jun/2025").
var monthByAbbrev = map[string]time.Month{
	"jan": 1, "fev": 2, "mar": 3, "abr": 4, "mai": 5, "jun": 6,
	"jul": 7, "ago": 8, "set": 9, "out": 10, "nov": 11, "dez": 12,
}

var ordinalWords = map[string]int{"primeiro": 1, "segundo": 2, "terceiro": 3, "quarto": 4}

const yearSuffix = `(?:\s*(?:/|-|de|do ano de|do ano|em)?\s*(\d{4}))?`

var (
	reQuarter    = regexp.MustCompile(`\b(?:([1-4])\s*o?|(primeiro|segundo|terceiro|quarto))\s+trimestre` + yearSuffix)
	reSemester   = regexp.MustCompile(`\b(?:([12])\s*o?|(primeiro|segundo))\s+semestre` + yearSuffix)
	reDate       = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
	reISOMonth   = regexp.MustCompile(`\b(\d{4})-(\d{1,2})\b`)
	reNumMonth   = regexp.MustCompile(`\b(\d{1,2})/(\d{4})\b`)
	reNamedMonth = regexp.MustCompile(`\b(` + alternation() + `)\s*(?:/|-|de|do ano de)?\s*(\d{4})\b`)
	reBareMonth  = regexp.MustCompile(`\b(janeiro|fevereiro|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\b`)
	reBareYear   = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
)

func alternation() string {
	names := make([]string, 0, len(monthByName)+len(monthByAbbrev))
	for n := range monthByName {
		names = append(names, n)
	}
	for n := range monthByAbbrev {
		names = append(names, n)
	}
	// Longest first so "marco" wins over "mar".
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return strings.Join(names, "|")
}

// Resolver turns temporal expressions into period predicates. DefaultYear is
// used for quarters and semesters named without a year; zero means the
// current year. When Years is set, a bare number only reads as a year if it
// is one of them.
type Resolver struct {
	DefaultYear int
	Years       []int
}

type mention struct {
	pos        int
	competency types.Competency
}

// Resolve returns nil when text carries no temporal expression, meaning no
// period constraint.
func (r Resolver) Resolve(text string) *types.Period {
	s := utils.Fold(text)

	if p, ok := r.span(s, reQuarter, types.PeriodQuarter, 3, "trimestre"); ok {
		return p
	}
	if p, ok := r.span(s, reSemester, types.PeriodSemester, 6, "semestre"); ok {
		return p
	}

	var dated []mention
	for _, m := range reDate.FindAllStringSubmatchIndex(s, -1) {
		day, _ := strconv.Atoi(s[m[2]:m[3]])
		month, _ := strconv.Atoi(s[m[4]:m[5]])
		year, _ := strconv.Atoi(s[m[6]:m[7]])
		s = mask(s, m[0], m[1])
		if !validDate(year, month, day) {
			continue
		}
		dated = append(dated, mention{pos: m[0], competency: types.Competency{Year: year, Month: time.Month(month)}})
	}
	for _, m := range reISOMonth.FindAllStringSubmatchIndex(s, -1) {
		year, _ := strconv.Atoi(s[m[2]:m[3]])
		month, _ := strconv.Atoi(s[m[4]:m[5]])
		if month < 1 || month > 12 {
			continue
		}
		dated = append(dated, mention{pos: m[0], competency: types.Competency{Year: year, Month: time.Month(month)}})
		s = mask(s, m[0], m[1])
	}
	for _, m := range reNumMonth.FindAllStringSubmatchIndex(s, -1) {
		month, _ := strconv.Atoi(s[m[2]:m[3]])
		year, _ := strconv.Atoi(s[m[4]:m[5]])
		if month < 1 || month > 12 {
			continue
		}
		dated = append(dated, mention{pos: m[0], competency: types.Competency{Year: year, Month: time.Month(month)}})
		s = mask(s, m[0], m[1])
	}
	for _, m := range reNamedMonth.FindAllStringSubmatchIndex(s, -1) {
		name := s[m[2]:m[3]]
		month, ok := monthByName[name]
		if !ok {
			month = monthByAbbrev[name]
		}
		year, _ := strconv.Atoi(s[m[4]:m[5]])
		dated = append(dated, mention{pos: m[0], competency: types.Competency{Year: year, Month: month}})
		s = mask(s, m[0], m[1])
	}

	var bareMonths []mention
	for _, m := range reBareMonth.FindAllStringSubmatchIndex(s, -1) {
		bareMonths = append(bareMonths, mention{pos: m[0], competency: types.Competency{Month: monthByName[s[m[2]:m[3]]]}})
		s = mask(s, m[0], m[1])
	}
	bareYears := r.findBareYears(s)

	// Bare months borrow the year of the nearest dated mention or bare year
	// after them ("de janeiro a março de 2025"), else the closest one before.
	if len(bareMonths) > 0 {
		anchors := append(append([]mention{}, dated...), bareYears...)
		if len(anchors) == 0 {
			return monthsAnyYear(bareMonths)
		}
		for _, bm := range bareMonths {
			bm.competency.Year = nearestYear(bm.pos, anchors)
			dated = append(dated, bm)
		}
		bareYears = nil
	}

	if len(dated) > 0 {
		from, to := dated[0].competency, dated[0].competency
		for _, d := range dated[1:] {
			if d.competency.Before(from) {
				from = d.competency
			}
			if to.Before(d.competency) {
				to = d.competency
			}
		}
		if from == to {
			p := types.MonthPeriod(from, CompetencyLabel(from))
			return &p
		}
		p := types.RangePeriod(types.PeriodRange, from, to, CompetencyLabel(from)+" a "+CompetencyLabel(to))
		return &p
	}

	if len(bareYears) > 0 {
		first, last := bareYears[0].competency.Year, bareYears[0].competency.Year
		for _, y := range bareYears[1:] {
			first = min(first, y.competency.Year)
			last = max(last, y.competency.Year)
		}
		label := strconv.Itoa(first)
		if first != last {
			label = fmt.Sprintf("%d a %d", first, last)
		}
		p := types.RangePeriod(types.PeriodYear, types.Competency{Year: first, Month: 1}, types.Competency{Year: last, Month: 12}, label)
		return &p
	}
	return nil
}

// span resolves quarter/semester expressions: ordinal n of size months.
func (r Resolver) span(s string, re *regexp.Regexp, kind types.PeriodKind, size int, noun string) (*types.Period, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		n = ordinalWords[m[2]]
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		year = r.defaultYear()
		if years := r.findBareYears(s); len(years) > 0 {
			year = years[0].competency.Year
		}
	}
	from := types.Competency{Year: year, Month: time.Month((n-1)*size + 1)}
	to := types.Competency{Year: year, Month: time.Month(n * size)}
	p := types.RangePeriod(kind, from, to, fmt.Sprintf("%dº %s de %d", n, noun, year))
	return &p, true
}

// Words that introduce a year ("em 2025", "no ano 2024"). "a" and "e" only
// continue a list that already holds a year ("de 2024 a 2025").
var yearLeads = map[string]bool{
	"em": true, "de": true, "do": true, "no": true, "ano": true,
	"desde": true, "ate": true, "entre": true, "durante": true, "para": true,
}

// findBareYears returns the four-digit numbers of s that read as years, so
// amounts such as "maior que 2000" stay out.
func (r Resolver) findBareYears(s string) []mention {
	var years []mention
	for _, m := range reBareYear.FindAllStringSubmatchIndex(s, -1) {
		before := utils.Tokens(s[:m[0]])
		if len(before) == 0 {
			continue
		}
		lead := before[len(before)-1]
		if !yearLeads[lead] && !(len(years) > 0 && (lead == "a" || lead == "e")) {
			continue
		}
		year, _ := strconv.Atoi(s[m[2]:m[3]])
		if len(r.Years) > 0 && !slices.Contains(r.Years, year) {
			continue
		}
		years = append(years, mention{pos: m[0], competency: types.Competency{Year: year}})
	}
	return years
}

// monthsAnyYear covers every named month in all years: "em maio" is May,
// "de janeiro a maio" is January through May.
func monthsAnyYear(months []mention) *types.Period {
	from, to := months[0].competency.Month, months[0].competency.Month
	for _, m := range months[1:] {
		from = min(from, m.competency.Month)
		to = max(to, m.competency.Month)
	}
	p := types.Period{Kind: types.PeriodMonthAnyYear, Month: from, Label: monthLabel(from)}
	if to != from {
		p.ToMonth = to
		p.Label = monthLabel(from) + " a " + monthLabel(to)
	}
	return &p
}

func (r Resolver) defaultYear() int {
	if r.DefaultYear != 0 {
		return r.DefaultYear
	}
	return time.Now().Year()
}

func nearestYear(pos int, anchors []mention) int {
	best, bestDist := 0, -1
	for _, a := range anchors {
		if a.pos > pos && (bestDist < 0 || a.pos-pos < bestDist) {
			best, bestDist = a.competency.Year, a.pos-pos
		}
	}
	if bestDist >= 0 {
		return best
	}
	for _, a := range anchors {
		if bestDist < 0 || pos-a.pos < bestDist {
			best, bestDist = a.competency.Year, pos-a.pos
		}
	}
	return best
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day
}

func mask(s string, from, to int) string {
	return s[:from] + strings.Repeat(" ", to-from) + s[to:]
}

func monthLabel(m time.Month) string {
	return MonthNames[m-1]
}

// CompetencyLabel renders a competency as "maio de 2025".
func CompetencyLabel(c types.Competency) string {
	return monthLabel(c.Month) + " de " + strconv.Itoa(c.Year)
}
