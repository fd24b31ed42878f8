package aggregate

import (
	"fmt"

	"github.com/farxc/folha-assistente/internal/payroll/query"
	"github.com/farxc/folha-assistente/internal/payroll/tabular"
	"github.com/farxc/folha-assistente/internal/payroll/types"
	"github.com/shopspring/decimal"
)

// Fractional digits kept by averages.
const averagePrecision = 16

// Result of executing a query. Value is the amount for lookup/sum/max/min/
// average, Count the distinct employees for count. Selected is set for
// lookups that found one record and for max/min.
type Result struct {
	Query             query.Query
	Value             decimal.Decimal
	Count             int
	Selected          *types.PayrollRecord
	SupportingRecords []types.PayrollRecord
	// MultipleMatches flags a lookup that matched more than one record.
	// SupportingRecords then holds all of them and Value is unset.
	MultipleMatches bool
}

// Execute runs q against s.
func Execute(q query.Query, s *tabular.Store) (Result, error) {
	switch q.Status {
	case query.StatusUnresolvable:
		return Result{}, &UnresolvableEntityError{Ref: q.EmployeeRef}
	case query.StatusAmbiguous:
		return Result{}, &AmbiguousEntityError{Ref: q.EmployeeRef, Candidates: append([]string(nil), q.EmployeeIDs...)}
	}

	records, err := s.Filter(tabular.Predicate{EmployeeIDs: q.EmployeeIDs, Period: q.Period})
	if err != nil {
		return Result{}, err
	}
	if len(records) == 0 {
		nm := &NoMatchError{EmployeeIDs: q.EmployeeIDs}
		if q.Period != nil {
			nm.Period = q.Period.Label
		}
		return Result{}, nm
	}

	res := Result{Query: q}
	switch q.Aggregation {
	case types.AggLookup, "":
		res.SupportingRecords = records
		if len(records) > 1 {
			res.MultipleMatches = true
			break
		}
		res.Selected = &records[0]
		res.Value = records[0].Value(q.Metric)

	case types.AggSum:
		res.SupportingRecords = records
		res.Value = Sum(records, q.Metric)

	case types.AggAverage:
		res.SupportingRecords = records
		res.Value = Sum(records, q.Metric).DivRound(decimal.NewFromInt(int64(len(records))), averagePrecision)

	case types.AggMax, types.AggMin:
		best := Extreme(records, q.Metric, q.Aggregation == types.AggMax)
		res.Selected = &best
		res.Value = best.Value(q.Metric)
		res.SupportingRecords = []types.PayrollRecord{best}

	case types.AggCount:
		res.SupportingRecords = records
		res.Count = len(DistinctEmployees(records))
		res.Value = decimal.NewFromInt(int64(res.Count))

	default:
		return Result{}, fmt.Errorf("unsupported aggregation %q", q.Aggregation)
	}
	return res, nil
}

func Sum(records []types.PayrollRecord, m types.Metric) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Value(m))
	}
	return total
}

// Extreme returns the record with the largest (or smallest) metric. records
// must be in canonical order; on a tie the earliest competency wins.
func Extreme(records []types.PayrollRecord, m types.Metric, largest bool) types.PayrollRecord {
	best := records[0]
	for _, r := range records[1:] {
		cmp := r.Value(m).Cmp(best.Value(m))
		if (largest && cmp > 0) || (!largest && cmp < 0) {
			best = r
		}
	}
	return best
}

// DistinctEmployees lists employee ids in first-seen order.
func DistinctEmployees(records []types.PayrollRecord) []string {
	seen := make(map[string]struct{}, len(records))
	ids := []string{}
	for _, r := range records {
		if _, ok := seen[r.EmployeeID]; ok {
			continue
		}
		seen[r.EmployeeID] = struct{}{}
		ids = append(ids, r.EmployeeID)
	}
	return ids
}
