package evidence

import (
	"sort"
	"time"

	"github.com/farxc/folha-assistente/internal/payroll/types"
)

// Item is one cited payroll record.
type Item struct {
	EmployeeID  string           `json:"employee_id"`
	Name        string           `json:"name"`
	Competency  types.Competency `json:"competency"`
	PaymentDate time.Time        `json:"payment_date"`
}

// Source is an external document cited by a retrieval answer.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Evidence is the citation bundle attached to an answer. Tabular answers
// fill Records; external answers fill Sources.
type Evidence struct {
	Records      []Item   `json:"records,omitempty"`
	EmployeeIDs  []string `json:"employee_ids,omitempty"`
	Competencies []string `json:"competencies,omitempty"`
	TotalRecords int      `json:"total_records"`
	Sources      []Source `json:"sources,omitempty"`
}

// FromRecords cites exactly the given records, ordered by competency then
// employee_id.
func FromRecords(records []types.PayrollRecord) *Evidence {
	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, Item{
			EmployeeID:  r.EmployeeID,
			Name:        r.Name,
			Competency:  r.Competency,
			PaymentDate: r.PaymentDate,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Competency != items[j].Competency {
			return items[i].Competency.Before(items[j].Competency)
		}
		return items[i].EmployeeID < items[j].EmployeeID
	})

	ev := &Evidence{Records: items, TotalRecords: len(items)}
	ids := map[string]struct{}{}
	comps := map[string]struct{}{}
	for _, it := range items {
		if _, ok := ids[it.EmployeeID]; !ok {
			ids[it.EmployeeID] = struct{}{}
			ev.EmployeeIDs = append(ev.EmployeeIDs, it.EmployeeID)
		}
		if _, ok := comps[it.Competency.String()]; !ok {
			comps[it.Competency.String()] = struct{}{}
			ev.Competencies = append(ev.Competencies, it.Competency.String())
		}
	}
	sort.Strings(ev.EmployeeIDs)
	return ev
}

func FromSources(sources []Source) *Evidence {
	return &Evidence{Sources: append([]Source(nil), sources...)}
}

// Keys returns "employee_id|competency" for every cited record.
func (e *Evidence) Keys() []string {
	if e == nil {
		return nil
	}
	keys := make([]string, 0, len(e.Records))
	for _, it := range e.Records {
		keys = append(keys, it.EmployeeID+"|"+it.Competency.String())
	}
	return keys
}
